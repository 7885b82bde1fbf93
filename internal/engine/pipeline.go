// Ordered effect pipeline
package engine

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"video-fx-engine/internal/effects"
	"video-fx-engine/internal/metrics"
)

// Pipeline folds frames through a fixed, ordered chain of effect nodes.
// The chain is set at construction and never restructured; live tuning
// happens through the parameters of the individual nodes, which makes
// SetParameter safe to call from any goroutine while frames flow.
type Pipeline struct {
	nodes     []effects.Node
	collector *metrics.Collector
	logger    *logrus.Logger
}

// NewPipeline creates a pipeline over the given nodes in processing order.
func NewPipeline(nodes []effects.Node, logger *logrus.Logger) *Pipeline {
	return &Pipeline{
		nodes:  nodes,
		logger: logger,
	}
}

// SetCollector attaches a collector that receives per-node timings.
func (p *Pipeline) SetCollector(c *metrics.Collector) {
	p.collector = c
}

// Process runs the frame through every node in order. The output of each
// node feeds the next; an empty pipeline returns the input unchanged. The
// first failing node aborts the fold.
func (p *Pipeline) Process(frame *effects.Frame) (*effects.Frame, error) {
	if frame == nil {
		return nil, fmt.Errorf("nil frame")
	}

	current := frame
	for i, node := range p.nodes {
		start := time.Now()
		result, err := node.Apply(current)
		if err != nil {
			return nil, fmt.Errorf("node %d (%s): %w", i, node.Name(), err)
		}
		if result == nil || !result.SameSize(current) {
			return nil, &effects.ConfigError{
				Node:   node.Name(),
				Reason: fmt.Sprintf("returned a frame that does not match the %dx%d input", current.Width(), current.Height()),
			}
		}
		if p.collector != nil {
			p.collector.ObserveNode(node.Name(), time.Since(start))
		}
		current = result
	}
	return current, nil
}

// SetParameter updates one parameter of the node at the given index.
func (p *Pipeline) SetParameter(nodeIndex int, name string, value interface{}) error {
	if nodeIndex < 0 || nodeIndex >= len(p.nodes) {
		return fmt.Errorf("node index %d out of range, pipeline has %d nodes", nodeIndex, len(p.nodes))
	}
	node := p.nodes[nodeIndex]
	if err := node.SetParameters(map[string]interface{}{name: value}); err != nil {
		return err
	}
	p.logger.WithFields(logrus.Fields{
		"node":      node.Name(),
		"parameter": name,
		"value":     value,
	}).Debug("Parameter updated")
	return nil
}

// Nodes returns a copy of the node list in processing order.
func (p *Pipeline) Nodes() []effects.Node {
	nodes := make([]effects.Node, len(p.nodes))
	copy(nodes, p.nodes)
	return nodes
}

// Len returns the number of nodes in the pipeline.
func (p *Pipeline) Len() int {
	return len(p.nodes)
}

// Reset clears the internal state of every node, unbinding any dimension
// baseline so the pipeline can serve a new stream.
func (p *Pipeline) Reset() {
	for _, node := range p.nodes {
		node.Reset()
	}
	p.logger.Debug("Pipeline reset")
}
