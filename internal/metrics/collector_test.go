package metrics

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollectorFrameCounters(t *testing.T) {
	t.Parallel()

	c := NewCollector()
	c.ObserveFrame(10 * time.Millisecond)
	c.ObserveFrame(30 * time.Millisecond)

	s := c.Snapshot()
	assert.Equal(t, uint64(2), s.FramesProcessed)
	assert.Equal(t, 30*time.Millisecond, s.LastFrame)
	assert.Equal(t, 20*time.Millisecond, s.AvgFrame)
}

func TestCollectorFPS(t *testing.T) {
	t.Parallel()

	c := NewCollector()
	assert.Zero(t, c.Snapshot().FPS, "no rate before the first frame")

	c.ObserveFrame(time.Millisecond)
	assert.Zero(t, c.Snapshot().FPS, "one frame gives no interval yet")

	time.Sleep(5 * time.Millisecond)
	c.ObserveFrame(time.Millisecond)
	first := c.Snapshot().FPS
	assert.Greater(t, first, 0.0)

	time.Sleep(5 * time.Millisecond)
	c.ObserveFrame(time.Millisecond)
	assert.Greater(t, c.Snapshot().FPS, 0.0)
}

func TestCollectorNodeTimings(t *testing.T) {
	t.Parallel()

	c := NewCollector()
	c.ObserveNode("Feedback", 4*time.Millisecond)
	c.ObserveNode("Glow", 10*time.Millisecond)
	c.ObserveNode("Feedback", 8*time.Millisecond)

	s := c.Snapshot()
	require.Len(t, s.Nodes, 2)

	assert.Equal(t, "Feedback", s.Nodes[0].Name, "first-observed node comes first")
	assert.Equal(t, uint64(2), s.Nodes[0].Count)
	assert.Equal(t, 8*time.Millisecond, s.Nodes[0].Last)
	assert.Equal(t, 6*time.Millisecond, s.Nodes[0].Avg)

	assert.Equal(t, "Glow", s.Nodes[1].Name)
	assert.Equal(t, uint64(1), s.Nodes[1].Count)
}

func TestCollectorReset(t *testing.T) {
	t.Parallel()

	c := NewCollector()
	c.ObserveFrame(time.Millisecond)
	c.ObserveNode("Glow", time.Millisecond)
	c.Reset()

	s := c.Snapshot()
	assert.Zero(t, s.FramesProcessed)
	assert.Zero(t, s.FPS)
	assert.Zero(t, s.AvgFrame)
	assert.Empty(t, s.Nodes)
}

func TestCollectorConcurrentAccess(t *testing.T) {
	t.Parallel()

	c := NewCollector()
	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				c.ObserveFrame(time.Millisecond)
				c.ObserveNode("Glow", time.Millisecond)
				_ = c.Snapshot()
			}
		}()
	}
	wg.Wait()

	s := c.Snapshot()
	assert.Equal(t, uint64(400), s.FramesProcessed)
	require.Len(t, s.Nodes, 1)
	assert.Equal(t, uint64(400), s.Nodes[0].Count)
}
