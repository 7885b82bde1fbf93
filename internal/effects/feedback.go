// Feedback effect: blends each frame with a decaying history buffer
package effects

import (
	"fmt"
	"sync/atomic"
)

type feedbackParams struct {
	decay  float64
	mix    float64
	bypass bool
}

// FeedbackNode keeps a history frame and blends it into the output,
// producing motion trails. The history starts as a copy of the first
// frame, so the first output equals the first input.
type FeedbackNode struct {
	params  atomic.Pointer[feedbackParams]
	history *Frame
}

// NewFeedbackNode creates a feedback node with default parameters.
func NewFeedbackNode() *FeedbackNode {
	n := &FeedbackNode{}
	n.params.Store(&feedbackParams{decay: 0.90, mix: 0.50})
	return n
}

func (n *FeedbackNode) Name() string {
	return "Feedback"
}

func (n *FeedbackNode) Description() string {
	return "Motion trails from a decaying frame history"
}

func (n *FeedbackNode) Apply(frame *Frame) (*Frame, error) {
	if frame == nil {
		return nil, &ConfigError{Node: n.Name(), Reason: "nil frame"}
	}
	p := n.params.Load()
	if p.bypass {
		return frame, nil
	}
	if n.history != nil && !n.history.SameSize(frame) {
		return nil, &ConfigError{
			Node: n.Name(),
			Reason: fmt.Sprintf("bound to %dx%d frames, got %dx%d",
				n.history.Width(), n.history.Height(), frame.Width(), frame.Height()),
		}
	}
	if n.history == nil {
		n.history = frame.Clone()
	}

	mi := scale256(p.mix)
	di := scale256(p.decay)
	out, err := NewFrame(frame.Width(), frame.Height())
	if err != nil {
		return nil, err
	}
	src := frame.Pix()
	hist := n.history.Pix()
	dst := out.Pix()
	for i := range src {
		s := src[i]
		h := hist[i]
		dst[i] = blendByte(s, h, mi)
		hist[i] = blendByte(s, h, di)
	}
	return out, nil
}

func (n *FeedbackNode) GetParameters() map[string]interface{} {
	p := n.params.Load()
	return map[string]interface{}{
		"decay":  p.decay,
		"mix":    p.mix,
		"bypass": p.bypass,
	}
}

func (n *FeedbackNode) SetParameters(params map[string]interface{}) error {
	for {
		old := n.params.Load()
		next := *old
		for name, value := range params {
			var err error
			switch name {
			case "decay":
				next.decay, err = floatParam(name, value, 0, 1)
			case "mix":
				next.mix, err = floatParam(name, value, 0, 1)
			case "bypass":
				next.bypass, err = boolParam(name, value)
			default:
				err = fmt.Errorf("unknown parameter: %s", name)
			}
			if err != nil {
				return &ConfigError{Node: n.Name(), Reason: err.Error()}
			}
		}
		if n.params.CompareAndSwap(old, &next) {
			return nil
		}
	}
}

func (n *FeedbackNode) GetParameterInfo() []ParameterInfo {
	return []ParameterInfo{
		{
			Name:        "decay",
			Type:        "float",
			Min:         0.0,
			Max:         1.0,
			Default:     0.90,
			Description: "How strongly the history persists between frames",
		},
		{
			Name:        "mix",
			Type:        "float",
			Min:         0.0,
			Max:         1.0,
			Default:     0.50,
			Description: "History share blended into the output",
		},
		{
			Name:        "bypass",
			Type:        "bool",
			Default:     false,
			Description: "Pass frames through unchanged",
		},
	}
}

// Reset drops the history buffer so the node can serve a new stream.
func (n *FeedbackNode) Reset() {
	n.history = nil
}
