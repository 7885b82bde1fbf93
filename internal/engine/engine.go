// Engine lifecycle and the paced processing loop
package engine

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"video-fx-engine/internal/effects"
	"video-fx-engine/internal/metrics"
)

// ErrEndOfStream is returned by Source.Next when the stream is exhausted.
var ErrEndOfStream = errors.New("end of stream")

// defaultFrameInterval paces sources that do not report a frame rate.
const defaultFrameInterval = 33 * time.Millisecond

// Source supplies frames at a native cadence. Frame dimensions stay
// constant for the life of a stream.
type Source interface {
	// Next returns the next frame, or ErrEndOfStream when the stream
	// is exhausted.
	Next() (*effects.Frame, error)
	// FrameInterval is the native time between frames; zero or negative
	// means unknown and the engine falls back to a default.
	FrameInterval() time.Duration
	Close() error
}

// Rewinder is implemented by sources that can restart their stream from
// the beginning. The engine rewinds such sources on Start.
type Rewinder interface {
	Rewind() error
}

// Sink consumes processed frames. Present is never called concurrently
// with itself and frames arrive in processing order; implementations
// must copy what they keep, the frame is not theirs after returning.
type Sink interface {
	Present(frame *effects.Frame) error
	Close() error
}

// State is the engine lifecycle state.
type State int

const (
	StateStopped State = iota
	StateRunning
	StatePaused
)

func (s State) String() string {
	switch s {
	case StateStopped:
		return "stopped"
	case StateRunning:
		return "running"
	case StatePaused:
		return "paused"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// Engine pulls frames from a source, runs them through the pipeline and
// presents the results, paced to the source's frame interval. It owns a
// single processing goroutine per run; all control methods are safe to
// call from any goroutine.
//
// Lifecycle: Stopped -> Running <-> Paused -> Stopped. Stop works from
// any state and releases what the run acquired. The display sink is
// bound for the engine's lifetime.
type Engine struct {
	mu       sync.Mutex
	state    State
	source   Source
	recorder Sink
	stopCh   chan struct{}
	doneCh   chan struct{}

	pipeline  *Pipeline
	sink      Sink
	collector *metrics.Collector
	logger    *logrus.Logger

	onState       func(State)
	onError       func(error)
	onEndOfStream func()
}

// NewEngine creates a stopped engine over the given pipeline and display
// sink. The pipeline's per-node timings feed the engine's collector.
func NewEngine(pipeline *Pipeline, sink Sink, logger *logrus.Logger) *Engine {
	collector := metrics.NewCollector()
	pipeline.SetCollector(collector)
	return &Engine{
		state:     StateStopped,
		pipeline:  pipeline,
		sink:      sink,
		collector: collector,
		logger:    logger,
	}
}

// SetCallbacks registers lifecycle notifications. onState fires on every
// transition with the new state, onError on processing failures, and
// onEndOfStream when the source runs out. Terminal callbacks come from
// the processing goroutine; GUI code must marshal to its own thread.
func (e *Engine) SetCallbacks(onState func(State), onError func(error), onEndOfStream func()) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.onState = onState
	e.onError = onError
	e.onEndOfStream = onEndOfStream
}

// SetSource attaches the source for the next run. Only valid while
// stopped; any previous source is closed.
func (e *Engine) SetSource(src Source) error {
	e.mu.Lock()
	if e.state != StateStopped {
		state := e.state
		e.mu.Unlock()
		return fmt.Errorf("cannot change source while %s", state)
	}
	old := e.source
	e.source = src
	e.mu.Unlock()

	if old != nil {
		if err := old.Close(); err != nil {
			e.logger.WithError(err).Warn("Failed to close previous source")
		}
	}
	return nil
}

// HasSource reports whether a source is currently attached.
func (e *Engine) HasSource() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.source != nil
}

// Start begins a run. Only valid while stopped with a source attached.
func (e *Engine) Start() error {
	e.mu.Lock()
	if e.state != StateStopped {
		state := e.state
		e.mu.Unlock()
		return fmt.Errorf("cannot start while %s", state)
	}
	if e.source == nil {
		e.mu.Unlock()
		return fmt.Errorf("no source set")
	}
	src := e.source
	interval := src.FrameInterval()
	if interval <= 0 {
		interval = defaultFrameInterval
	}
	if r, ok := src.(Rewinder); ok {
		if err := r.Rewind(); err != nil {
			e.mu.Unlock()
			return fmt.Errorf("rewind source: %w", err)
		}
	}
	runID := uuid.NewString()
	e.stopCh = make(chan struct{})
	e.doneCh = make(chan struct{})
	e.state = StateRunning
	stopCh, doneCh := e.stopCh, e.doneCh
	e.mu.Unlock()

	// Each run starts from a clean slate so replaying the same source
	// reproduces the same output.
	e.pipeline.Reset()
	e.collector.Reset()
	runLog := e.logger.WithFields(logrus.Fields{
		"run_id":      runID,
		"interval_ms": interval.Milliseconds(),
	})
	runLog.Info("Engine started")

	e.notifyState(StateRunning)
	go e.run(src, interval, stopCh, doneCh, runLog)
	return nil
}

// Pause suspends frame pulls. Only valid while running; the sink keeps
// showing the last presented frame.
func (e *Engine) Pause() error {
	e.mu.Lock()
	if e.state != StateRunning {
		state := e.state
		e.mu.Unlock()
		return fmt.Errorf("cannot pause while %s", state)
	}
	e.state = StatePaused
	e.mu.Unlock()

	e.logger.Info("Engine paused")
	e.notifyState(StatePaused)
	return nil
}

// Resume continues a paused run. Only valid while paused.
func (e *Engine) Resume() error {
	e.mu.Lock()
	if e.state != StatePaused {
		state := e.state
		e.mu.Unlock()
		return fmt.Errorf("cannot resume while %s", state)
	}
	e.state = StateRunning
	e.mu.Unlock()

	e.logger.Info("Engine resumed")
	e.notifyState(StateRunning)
	return nil
}

// Stop ends the run from any state, waits for the processing goroutine
// to exit and releases the source and any recorder. It is idempotent.
func (e *Engine) Stop() {
	e.mu.Lock()
	if e.state == StateStopped && e.stopCh == nil {
		e.mu.Unlock()
		return
	}
	prevState := e.state
	e.state = StateStopped
	stopCh, doneCh := e.stopCh, e.doneCh
	e.stopCh, e.doneCh = nil, nil
	src, rec := e.source, e.recorder
	e.source, e.recorder = nil, nil
	e.mu.Unlock()

	if stopCh != nil {
		close(stopCh)
	}
	if doneCh != nil {
		<-doneCh
	}
	if src != nil {
		if err := src.Close(); err != nil {
			e.logger.WithError(err).Warn("Failed to close source")
		}
	}
	if rec != nil {
		if err := rec.Close(); err != nil {
			e.logger.WithError(err).Warn("Failed to close recorder")
		}
	}

	e.logger.Info("Engine stopped")
	if prevState != StateStopped {
		e.notifyState(StateStopped)
	}
}

// State returns the current lifecycle state.
func (e *Engine) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// SetParameter updates one node parameter. Callable from any goroutine
// in any state; the change lands before the node's next frame, never in
// the middle of one.
func (e *Engine) SetParameter(nodeIndex int, name string, value interface{}) error {
	return e.pipeline.SetParameter(nodeIndex, name, value)
}

// Pipeline returns the engine's pipeline for node enumeration.
func (e *Engine) Pipeline() *Pipeline {
	return e.pipeline
}

// Stats returns a snapshot of the current run's counters.
func (e *Engine) Stats() metrics.Snapshot {
	return e.collector.Snapshot()
}

// StartRecording attaches a second sink that receives every processed
// frame before the display. Requires an attached source.
func (e *Engine) StartRecording(sink Sink) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.source == nil {
		return fmt.Errorf("no source set")
	}
	if e.recorder != nil {
		return fmt.Errorf("already recording")
	}
	e.recorder = sink
	e.logger.Info("Recording started")
	return nil
}

// StopRecording detaches and closes the recording sink, if any.
func (e *Engine) StopRecording() {
	e.mu.Lock()
	rec := e.recorder
	e.recorder = nil
	e.mu.Unlock()

	if rec == nil {
		return
	}
	if err := rec.Close(); err != nil {
		e.logger.WithError(err).Warn("Failed to close recorder")
	}
	e.logger.Info("Recording stopped")
}

// Recording reports whether a recording sink is attached.
func (e *Engine) Recording() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.recorder != nil
}

// run is the processing loop; one goroutine per run.
func (e *Engine) run(src Source, interval time.Duration, stopCh <-chan struct{}, doneCh chan<- struct{}, runLog *logrus.Entry) {
	defer close(doneCh)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-stopCh:
			runLog.Debug("Processing loop stopped")
			return
		case <-ticker.C:
		}
		if e.State() != StateRunning {
			continue
		}

		frame, err := src.Next()
		if errors.Is(err, ErrEndOfStream) {
			runLog.Info("Source exhausted")
			e.finish(nil)
			return
		}
		if err != nil {
			runLog.WithError(err).Error("Source read failed")
			e.finish(fmt.Errorf("source: %w", err))
			return
		}

		start := time.Now()
		out, err := e.pipeline.Process(frame)
		if err != nil {
			runLog.WithError(err).Error("Frame processing failed")
			e.finish(err)
			return
		}
		e.record(out, runLog)
		if err := e.sink.Present(out); err != nil {
			runLog.WithError(err).Error("Present failed")
			e.finish(fmt.Errorf("sink: %w", err))
			return
		}
		e.collector.ObserveFrame(time.Since(start))
	}
}

// record tees the frame to the recorder when one is attached. A failing
// recorder is detached and reported without ending the run.
func (e *Engine) record(frame *effects.Frame, runLog *logrus.Entry) {
	e.mu.Lock()
	rec := e.recorder
	e.mu.Unlock()
	if rec == nil {
		return
	}
	if err := rec.Present(frame); err != nil {
		runLog.WithError(err).Error("Recording failed, detaching recorder")
		e.mu.Lock()
		if e.recorder == rec {
			e.recorder = nil
		}
		e.mu.Unlock()
		if cerr := rec.Close(); cerr != nil {
			runLog.WithError(cerr).Warn("Failed to close recorder")
		}
		e.notifyError(fmt.Errorf("recording: %w", err))
	}
}

// finish moves the engine to Stopped from inside the loop, either on
// source exhaustion (err nil) or on a processing failure. A concurrent
// Stop wins and this becomes a no-op.
func (e *Engine) finish(err error) {
	e.mu.Lock()
	if e.state == StateStopped {
		e.mu.Unlock()
		return
	}
	e.state = StateStopped
	src, rec := e.source, e.recorder
	e.source, e.recorder = nil, nil
	e.mu.Unlock()

	if src != nil {
		if cerr := src.Close(); cerr != nil {
			e.logger.WithError(cerr).Warn("Failed to close source")
		}
	}
	if rec != nil {
		if cerr := rec.Close(); cerr != nil {
			e.logger.WithError(cerr).Warn("Failed to close recorder")
		}
	}

	if err != nil {
		e.notifyError(err)
	} else {
		e.notifyEndOfStream()
	}
	e.notifyState(StateStopped)
}

func (e *Engine) notifyState(state State) {
	e.mu.Lock()
	cb := e.onState
	e.mu.Unlock()
	if cb != nil {
		cb(state)
	}
}

func (e *Engine) notifyError(err error) {
	e.mu.Lock()
	cb := e.onError
	e.mu.Unlock()
	if cb != nil {
		cb(err)
	}
}

func (e *Engine) notifyEndOfStream() {
	e.mu.Lock()
	cb := e.onEndOfStream
	e.mu.Unlock()
	if cb != nil {
		cb()
	}
}
