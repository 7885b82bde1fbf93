// Conversion between OpenCV's BGR byte layout and the RGB frame model
package video

import (
	"fmt"

	"video-fx-engine/internal/effects"
)

// frameFromBGR converts interleaved BGR bytes into an RGB frame.
func frameFromBGR(data []byte, width, height int) (*effects.Frame, error) {
	if len(data) != width*height*effects.Channels {
		return nil, fmt.Errorf("frame data has %d bytes, %dx%d needs %d",
			len(data), width, height, width*height*effects.Channels)
	}
	pix := make([]uint8, len(data))
	for i := 0; i < len(data); i += effects.Channels {
		pix[i] = data[i+2]
		pix[i+1] = data[i+1]
		pix[i+2] = data[i]
	}
	return effects.NewFrameFromPix(width, height, pix)
}

// bgrFromFrame converts an RGB frame into interleaved BGR bytes.
func bgrFromFrame(frame *effects.Frame) []byte {
	pix := frame.Pix()
	data := make([]byte, len(pix))
	for i := 0; i < len(pix); i += effects.Channels {
		data[i] = pix[i+2]
		data[i+1] = pix[i+1]
		data[i+2] = pix[i]
	}
	return data
}
