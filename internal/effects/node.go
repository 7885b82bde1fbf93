// Effect node contract and registry
package effects

import (
	"fmt"
	"sort"
	"sync"
)

// Node is a single effect in the processing chain. Apply never mutates its
// input and always returns a frame with the input's dimensions. Parameter
// access is safe from any goroutine: SetParameters swaps a complete
// parameter record, and Apply reads exactly one snapshot of it per call,
// so a write never lands halfway through a frame. Apply and Reset are
// driven from a single goroutine.
type Node interface {
	Name() string
	Description() string
	Apply(frame *Frame) (*Frame, error)
	GetParameters() map[string]interface{}
	SetParameters(params map[string]interface{}) error
	GetParameterInfo() []ParameterInfo
	Reset()
}

// ParameterInfo describes a parameter for UI generation
type ParameterInfo struct {
	Name        string      `json:"name"`
	Type        string      `json:"type"` // "int", "float", "bool"
	Min         interface{} `json:"min,omitempty"`
	Max         interface{} `json:"max,omitempty"`
	Default     interface{} `json:"default"`
	Description string      `json:"description"`
}

var (
	registryMu sync.RWMutex
	registry   = make(map[string]func() Node)
)

// Register adds a node factory under the given name.
func Register(name string, factory func() Node) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[name] = factory
}

// New creates a fresh node instance with default parameters.
func New(name string) (Node, error) {
	registryMu.RLock()
	factory, exists := registry[name]
	registryMu.RUnlock()
	if !exists {
		return nil, fmt.Errorf("effect not found: %s", name)
	}
	return factory(), nil
}

// List returns the registered node names in sorted order.
func List() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DefaultChain builds the standard effect chain in processing order.
func DefaultChain() []Node {
	return []Node{
		NewFeedbackNode(),
		NewGlowNode(),
		NewRGBSplitNode(),
	}
}

func init() {
	Register("feedback", func() Node { return NewFeedbackNode() })
	Register("glow", func() Node { return NewGlowNode() })
	Register("rgb_split", func() Node { return NewRGBSplitNode() })
}
