// Frame model for the video processing pipeline
package effects

import (
	"bytes"
	"fmt"
	"image"
)

// Channels is the number of interleaved color channels per pixel.
const Channels = 3

// Frame is a fixed-size RGB raster with 8-bit interleaved channels.
// Pixel data is row-major with stride Width*Channels; the channel order
// is R, G, B. The zero value is not usable, construct with NewFrame.
type Frame struct {
	width  int
	height int
	pix    []uint8
}

// NewFrame creates a black frame with the given dimensions.
func NewFrame(width, height int) (*Frame, error) {
	if width <= 0 || height <= 0 {
		return nil, &ConfigError{Reason: fmt.Sprintf("invalid frame dimensions %dx%d", width, height)}
	}
	return &Frame{
		width:  width,
		height: height,
		pix:    make([]uint8, width*height*Channels),
	}, nil
}

// NewFrameFromPix creates a frame that takes ownership of pix.
func NewFrameFromPix(width, height int, pix []uint8) (*Frame, error) {
	if width <= 0 || height <= 0 {
		return nil, &ConfigError{Reason: fmt.Sprintf("invalid frame dimensions %dx%d", width, height)}
	}
	if len(pix) != width*height*Channels {
		return nil, &ConfigError{Reason: fmt.Sprintf("pixel buffer has %d bytes, %dx%d needs %d",
			len(pix), width, height, width*height*Channels)}
	}
	return &Frame{width: width, height: height, pix: pix}, nil
}

func (f *Frame) Width() int  { return f.width }
func (f *Frame) Height() int { return f.height }

func (f *Frame) Channels() int { return Channels }

// Pix returns the backing pixel slice. Callers that index it directly are
// responsible for staying in bounds.
func (f *Frame) Pix() []uint8 { return f.pix }

// At returns the value of channel c at (x, y).
func (f *Frame) At(x, y, c int) (uint8, error) {
	if x < 0 || x >= f.width || y < 0 || y >= f.height || c < 0 || c >= Channels {
		return 0, &BoundsError{X: x, Y: y, C: c, Width: f.width, Height: f.height}
	}
	return f.pix[(y*f.width+x)*Channels+c], nil
}

// Set stores v into channel c at (x, y).
func (f *Frame) Set(x, y, c int, v uint8) error {
	if x < 0 || x >= f.width || y < 0 || y >= f.height || c < 0 || c >= Channels {
		return &BoundsError{X: x, Y: y, C: c, Width: f.width, Height: f.height}
	}
	f.pix[(y*f.width+x)*Channels+c] = v
	return nil
}

// Fill sets every pixel to the given color.
func (f *Frame) Fill(r, g, b uint8) {
	for i := 0; i < len(f.pix); i += Channels {
		f.pix[i] = r
		f.pix[i+1] = g
		f.pix[i+2] = b
	}
}

// Clone returns a deep copy of the frame.
func (f *Frame) Clone() *Frame {
	pix := make([]uint8, len(f.pix))
	copy(pix, f.pix)
	return &Frame{width: f.width, height: f.height, pix: pix}
}

// SameSize reports whether both frames have identical dimensions.
func (f *Frame) SameSize(other *Frame) bool {
	return other != nil && f.width == other.width && f.height == other.height
}

// Equal reports whether both frames have identical dimensions and pixels.
func (f *Frame) Equal(other *Frame) bool {
	if f == nil || other == nil {
		return f == other
	}
	return f.width == other.width && f.height == other.height && bytes.Equal(f.pix, other.pix)
}

// ToRGBA converts the frame to an opaque image.RGBA for display.
func (f *Frame) ToRGBA() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, f.width, f.height))
	for y := 0; y < f.height; y++ {
		si := y * f.width * Channels
		di := y * img.Stride
		for x := 0; x < f.width; x++ {
			img.Pix[di] = f.pix[si]
			img.Pix[di+1] = f.pix[si+1]
			img.Pix[di+2] = f.pix[si+2]
			img.Pix[di+3] = 0xff
			si += Channels
			di += 4
		}
	}
	return img
}
