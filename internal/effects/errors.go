// Error types for frame access and node configuration
package effects

import "fmt"

// BoundsError reports a frame access outside the valid coordinate range.
type BoundsError struct {
	X, Y, C int
	Width   int
	Height  int
}

func (e *BoundsError) Error() string {
	return fmt.Sprintf("coordinates (%d, %d) channel %d out of bounds for %dx%dx%d frame",
		e.X, e.Y, e.C, e.Width, e.Height, Channels)
}

// ConfigError reports an invalid parameter value, an invalid construction,
// or a frame that does not match the dimensions a node is bound to.
type ConfigError struct {
	Node   string
	Reason string
}

func (e *ConfigError) Error() string {
	if e.Node == "" {
		return e.Reason
	}
	return fmt.Sprintf("%s: %s", e.Node, e.Reason)
}
