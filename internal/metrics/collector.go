// Runtime statistics for the frame processing loop
package metrics

import (
	"sync"
	"time"
)

// fpsAlpha weights the exponential moving average of the frame rate.
const fpsAlpha = 0.2

// NodeTiming reports processing durations for one effect node.
type NodeTiming struct {
	Name  string
	Last  time.Duration
	Avg   time.Duration
	Count uint64
}

// Snapshot is a point-in-time copy of the collector's counters.
type Snapshot struct {
	FramesProcessed uint64
	FPS             float64
	LastFrame       time.Duration
	AvgFrame        time.Duration
	Nodes           []NodeTiming
}

type nodeAccum struct {
	last  time.Duration
	total time.Duration
	count uint64
}

// Collector accumulates frame and per-node timings. All methods are safe
// for concurrent use; the engine writes from its loop goroutine while the
// GUI polls snapshots.
type Collector struct {
	mu        sync.Mutex
	frames    uint64
	fps       float64
	last      time.Duration
	total     time.Duration
	lastSeen  time.Time
	nodeOrder []string
	nodes     map[string]*nodeAccum
}

func NewCollector() *Collector {
	return &Collector{
		nodes: make(map[string]*nodeAccum),
	}
}

// ObserveFrame records one completed frame and its processing duration.
// The frame rate is estimated from the wall time between calls.
func (c *Collector) ObserveFrame(d time.Duration) {
	now := time.Now()
	c.mu.Lock()
	defer c.mu.Unlock()

	c.frames++
	c.last = d
	c.total += d
	if !c.lastSeen.IsZero() {
		if gap := now.Sub(c.lastSeen).Seconds(); gap > 0 {
			inst := 1 / gap
			if c.fps == 0 {
				c.fps = inst
			} else {
				c.fps = fpsAlpha*inst + (1-fpsAlpha)*c.fps
			}
		}
	}
	c.lastSeen = now
}

// ObserveNode records one node's processing duration within a frame.
func (c *Collector) ObserveNode(name string, d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	acc, exists := c.nodes[name]
	if !exists {
		acc = &nodeAccum{}
		c.nodes[name] = acc
		c.nodeOrder = append(c.nodeOrder, name)
	}
	acc.last = d
	acc.total += d
	acc.count++
}

// Reset clears all counters, typically at the start of a run.
func (c *Collector) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.frames = 0
	c.fps = 0
	c.last = 0
	c.total = 0
	c.lastSeen = time.Time{}
	c.nodeOrder = nil
	c.nodes = make(map[string]*nodeAccum)
}

// Snapshot copies the current counters. Node timings keep the order in
// which nodes were first observed, which is the pipeline order.
func (c *Collector) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := Snapshot{
		FramesProcessed: c.frames,
		FPS:             c.fps,
		LastFrame:       c.last,
	}
	if c.frames > 0 {
		s.AvgFrame = c.total / time.Duration(c.frames)
	}
	for _, name := range c.nodeOrder {
		acc := c.nodes[name]
		s.Nodes = append(s.Nodes, NodeTiming{
			Name:  name,
			Last:  acc.last,
			Avg:   acc.total / time.Duration(acc.count),
			Count: acc.count,
		})
	}
	return s
}
