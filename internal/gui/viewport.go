// Live viewport presenting processed frames
package gui

import (
	"image"
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/widget"

	"video-fx-engine/internal/effects"
)

// Viewport renders frames into a fyne canvas image. It doubles as the
// engine's display sink, so Present is called from the processing
// goroutine and the actual canvas swap is marshalled through fyne.Do.
type Viewport struct {
	image *canvas.Image
	card  *widget.Card
}

func NewViewport() *Viewport {
	img := canvas.NewImageFromImage(placeholderImage())
	img.FillMode = canvas.ImageFillContain
	img.ScaleMode = canvas.ImageScalePixels
	img.SetMinSize(fyne.NewSize(640, 360))

	return &Viewport{
		image: img,
		card:  widget.NewCard("Preview", "", img),
	}
}

func placeholderImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 640, 360))
	dark := color.RGBA{R: 24, G: 24, B: 24, A: 255}
	for y := 0; y < 360; y++ {
		for x := 0; x < 640; x++ {
			img.Set(x, y, dark)
		}
	}
	return img
}

// Present implements engine.Sink.
func (v *Viewport) Present(frame *effects.Frame) error {
	rgba := frame.ToRGBA()
	fyne.Do(func() {
		v.image.Image = rgba
		v.image.Refresh()
	})
	return nil
}

// Close implements engine.Sink. The viewport outlives engine runs, so
// there is nothing to release.
func (v *Viewport) Close() error {
	return nil
}

// Clear restores the placeholder after the current video is replaced.
func (v *Viewport) Clear() {
	fyne.Do(func() {
		v.image.Image = placeholderImage()
		v.image.Refresh()
	})
}

func (v *Viewport) GetContainer() fyne.CanvasObject {
	return v.card
}
