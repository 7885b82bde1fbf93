// Status bar polling playback state and throughput
package gui

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"video-fx-engine/internal/engine"
)

const statusPollInterval = 500 * time.Millisecond

// StatusBar shows playback state and throughput. It refreshes on a
// fixed poll instead of per frame so label churn stays off the hot
// path.
type StatusBar struct {
	engine *engine.Engine

	stateLabel *widget.Label
	nodesLabel *widget.Label
	box        *fyne.Container

	mu       sync.Mutex
	fileName string
	stopCh   chan struct{}
}

func NewStatusBar(eng *engine.Engine) *StatusBar {
	bar := &StatusBar{
		engine:     eng,
		stateLabel: widget.NewLabel("stopped  |  no video loaded"),
		nodesLabel: widget.NewLabel(""),
	}
	bar.box = container.NewVBox(widget.NewSeparator(), bar.stateLabel, bar.nodesLabel)
	return bar
}

// SetFileName records the name shown next to the playback state.
func (sb *StatusBar) SetFileName(name string) {
	sb.mu.Lock()
	sb.fileName = name
	sb.mu.Unlock()
}

// Start launches the poll loop.
func (sb *StatusBar) Start() {
	sb.mu.Lock()
	if sb.stopCh != nil {
		sb.mu.Unlock()
		return
	}
	stopCh := make(chan struct{})
	sb.stopCh = stopCh
	sb.mu.Unlock()

	go sb.poll(stopCh)
}

// Stop ends the poll loop.
func (sb *StatusBar) Stop() {
	sb.mu.Lock()
	stopCh := sb.stopCh
	sb.stopCh = nil
	sb.mu.Unlock()

	if stopCh != nil {
		close(stopCh)
	}
}

func (sb *StatusBar) poll(stopCh <-chan struct{}) {
	ticker := time.NewTicker(statusPollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-stopCh:
			return
		case <-ticker.C:
			state, nodes := sb.render()
			fyne.Do(func() {
				sb.stateLabel.SetText(state)
				sb.nodesLabel.SetText(nodes)
			})
		}
	}
}

func (sb *StatusBar) render() (string, string) {
	sb.mu.Lock()
	fileName := sb.fileName
	sb.mu.Unlock()

	if fileName == "" {
		fileName = "no video loaded"
	}

	stats := sb.engine.Stats()
	line := fmt.Sprintf("%s  |  %s  |  %.1f FPS  |  %d frames  |  %.1f ms/frame",
		sb.engine.State(), fileName, stats.FPS, stats.FramesProcessed,
		stats.AvgFrame.Seconds()*1000.0)
	if sb.engine.Recording() {
		line += "  |  REC"
	}

	parts := make([]string, 0, len(stats.Nodes))
	for _, node := range stats.Nodes {
		parts = append(parts, fmt.Sprintf("%s %.1f ms", node.Name, node.Avg.Seconds()*1000.0))
	}
	return line, strings.Join(parts, "   ")
}

func (sb *StatusBar) GetContainer() fyne.CanvasObject {
	return sb.box
}
