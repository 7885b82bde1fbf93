// Glow effect: bright-pass, separable box blur, additive blend
package effects

import (
	"fmt"
	"sync/atomic"
)

type glowParams struct {
	threshold int
	radius    int
	intensity float64
	bypass    bool
}

// GlowNode extracts pixels brighter than a luminance threshold, blurs
// them, and adds the result back onto the frame. It keeps no state
// between frames.
type GlowNode struct {
	params atomic.Pointer[glowParams]
}

// NewGlowNode creates a glow node with default parameters.
func NewGlowNode() *GlowNode {
	n := &GlowNode{}
	n.params.Store(&glowParams{threshold: 200, radius: 3, intensity: 0.8})
	return n
}

func (n *GlowNode) Name() string {
	return "Glow"
}

func (n *GlowNode) Description() string {
	return "Soft bloom around bright regions"
}

func (n *GlowNode) Apply(frame *Frame) (*Frame, error) {
	if frame == nil {
		return nil, &ConfigError{Node: n.Name(), Reason: "nil frame"}
	}
	p := n.params.Load()
	if p.bypass {
		return frame, nil
	}

	w := frame.Width()
	h := frame.Height()
	src := frame.Pix()

	// Bright pass: pixels strictly above the luminance threshold keep
	// their color, everything else contributes black.
	bright := make([]uint8, len(src))
	for i := 0; i < len(src); i += Channels {
		if luminance(src[i], src[i+1], src[i+2]) > p.threshold {
			bright[i] = src[i]
			bright[i+1] = src[i+1]
			bright[i+2] = src[i+2]
		}
	}

	blurred := boxBlur(bright, w, h, p.radius)

	out, err := NewFrame(w, h)
	if err != nil {
		return nil, err
	}
	dst := out.Pix()
	ii := scale256(p.intensity)
	for i := range src {
		add := (int(blurred[i])*ii + 128) >> 8
		dst[i] = clampU8(int(src[i]) + add)
	}
	return out, nil
}

// boxBlur runs a separable box filter over an interleaved RGB buffer.
// Each axis is a sliding window of size 2*radius+1 with edge-clamped
// sampling and rounded integer division, so results are exact and
// platform independent. radius 0 returns a copy.
func boxBlur(src []uint8, w, h, radius int) []uint8 {
	tmp := make([]uint8, len(src))
	if radius <= 0 {
		copy(tmp, src)
		return tmp
	}
	win := 2*radius + 1

	// Horizontal pass.
	for y := 0; y < h; y++ {
		row := y * w * Channels
		for c := 0; c < Channels; c++ {
			sum := 0
			for k := -radius; k <= radius; k++ {
				sum += int(src[row+clampInt(k, 0, w-1)*Channels+c])
			}
			for x := 0; x < w; x++ {
				tmp[row+x*Channels+c] = uint8((sum + win/2) / win)
				enter := clampInt(x+radius+1, 0, w-1)
				leave := clampInt(x-radius, 0, w-1)
				sum += int(src[row+enter*Channels+c]) - int(src[row+leave*Channels+c])
			}
		}
	}

	// Vertical pass.
	dst := make([]uint8, len(src))
	stride := w * Channels
	for x := 0; x < w; x++ {
		for c := 0; c < Channels; c++ {
			col := x*Channels + c
			sum := 0
			for k := -radius; k <= radius; k++ {
				sum += int(tmp[clampInt(k, 0, h-1)*stride+col])
			}
			for y := 0; y < h; y++ {
				dst[y*stride+col] = uint8((sum + win/2) / win)
				enter := clampInt(y+radius+1, 0, h-1)
				leave := clampInt(y-radius, 0, h-1)
				sum += int(tmp[enter*stride+col]) - int(tmp[leave*stride+col])
			}
		}
	}
	return dst
}

func (n *GlowNode) GetParameters() map[string]interface{} {
	p := n.params.Load()
	return map[string]interface{}{
		"threshold": float64(p.threshold),
		"radius":    float64(p.radius),
		"intensity": p.intensity,
		"bypass":    p.bypass,
	}
}

func (n *GlowNode) SetParameters(params map[string]interface{}) error {
	for {
		old := n.params.Load()
		next := *old
		for name, value := range params {
			var err error
			switch name {
			case "threshold":
				next.threshold, err = intParam(name, value, 0, 255)
			case "radius":
				next.radius, err = intParam(name, value, 0, 25)
			case "intensity":
				next.intensity, err = floatParam(name, value, 0, 3)
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

func (n *GlowNode) GetParameterInfo() []ParameterInfo {
	return []ParameterInfo{
		{
			Name:        "threshold",
			Type:        "int",
			Min:         0.0,
			Max:         255.0,
			Default:     200.0,
			Description: "Luminance a pixel must exceed to glow",
		},
		{
			Name:        "radius",
			Type:        "int",
			Min:         0.0,
			Max:         25.0,
			Default:     3.0,
			Description: "Blur radius of the glow halo in pixels",
		},
		{
			Name:        "intensity",
			Type:        "float",
			Min:         0.0,
			Max:         3.0,
			Default:     0.8,
			Description: "Strength of the glow added back onto the frame",
		},
		{
			Name:        "bypass",
			Type:        "bool",
			Default:     false,
			Description: "Pass frames through unchanged",
		},
	}
}

func (n *GlowNode) Reset() {}
