// RGB split effect: offsets the red and blue channels independently
package effects

import (
	"fmt"
	"sync/atomic"
)

type rgbSplitParams struct {
	dxR    int
	dyR    int
	dxB    int
	dyB    int
	bypass bool
}

// RGBSplitNode shifts the red and blue channels by independent offsets
// while the green channel stays put. Samples that would fall outside
// the frame clamp to the nearest edge pixel. It keeps no state between
// frames.
type RGBSplitNode struct {
	params atomic.Pointer[rgbSplitParams]
}

// NewRGBSplitNode creates an RGB split node with zero offsets.
func NewRGBSplitNode() *RGBSplitNode {
	n := &RGBSplitNode{}
	n.params.Store(&rgbSplitParams{})
	return n
}

func (n *RGBSplitNode) Name() string {
	return "RGB Split"
}

func (n *RGBSplitNode) Description() string {
	return "Chromatic aberration from shifted color channels"
}

func (n *RGBSplitNode) Apply(frame *Frame) (*Frame, error) {
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
	out, err := NewFrame(w, h)
	if err != nil {
		return nil, err
	}
	dst := out.Pix()
	for y := 0; y < h; y++ {
		syR := clampInt(y-p.dyR, 0, h-1)
		syB := clampInt(y-p.dyB, 0, h-1)
		di := y * w * Channels
		for x := 0; x < w; x++ {
			sxR := clampInt(x-p.dxR, 0, w-1)
			sxB := clampInt(x-p.dxB, 0, w-1)
			dst[di] = src[(syR*w+sxR)*Channels]
			dst[di+1] = src[di+1]
			dst[di+2] = src[(syB*w+sxB)*Channels+2]
			di += Channels
		}
	}
	return out, nil
}

func (n *RGBSplitNode) GetParameters() map[string]interface{} {
	p := n.params.Load()
	return map[string]interface{}{
		"dx_r":   float64(p.dxR),
		"dy_r":   float64(p.dyR),
		"dx_b":   float64(p.dxB),
		"dy_b":   float64(p.dyB),
		"bypass": p.bypass,
	}
}

func (n *RGBSplitNode) SetParameters(params map[string]interface{}) error {
	for {
		old := n.params.Load()
		next := *old
		for name, value := range params {
			var err error
			switch name {
			case "dx_r":
				next.dxR, err = intParam(name, value, -50, 50)
			case "dy_r":
				next.dyR, err = intParam(name, value, -50, 50)
			case "dx_b":
				next.dxB, err = intParam(name, value, -50, 50)
			case "dy_b":
				next.dyB, err = intParam(name, value, -50, 50)
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

func (n *RGBSplitNode) GetParameterInfo() []ParameterInfo {
	offset := func(name, description string) ParameterInfo {
		return ParameterInfo{
			Name:        name,
			Type:        "int",
			Min:         -50.0,
			Max:         50.0,
			Default:     0.0,
			Description: description,
		}
	}
	return []ParameterInfo{
		offset("dx_r", "Horizontal shift of the red channel in pixels"),
		offset("dy_r", "Vertical shift of the red channel in pixels"),
		offset("dx_b", "Horizontal shift of the blue channel in pixels"),
		offset("dy_b", "Vertical shift of the blue channel in pixels"),
		{
			Name:        "bypass",
			Type:        "bool",
			Default:     false,
			Description: "Pass frames through unchanged",
		},
	}
}

func (n *RGBSplitNode) Reset() {}
