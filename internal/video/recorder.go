// Recording sink backed by an OpenCV video writer
package video

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"gocv.io/x/gocv"

	"video-fx-engine/internal/effects"
)

// defaultRecordingFPS is used when the source did not report a rate.
const defaultRecordingFPS = 30.0

// Recorder writes processed frames to a video file. It implements the
// engine's sink contract and is attached with StartRecording.
type Recorder struct {
	writer *gocv.VideoWriter
	path   string
	width  int
	height int
	frames int
	logger *logrus.Logger
}

// NewRecorder opens an mp4 writer for frames of the given size. A
// non-positive fps falls back to a default rate.
func NewRecorder(path string, fps float64, width, height int, logger *logrus.Logger) (*Recorder, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid recording dimensions %dx%d", width, height)
	}
	if fps <= 0 {
		fps = defaultRecordingFPS
	}

	writer, err := gocv.VideoWriterFile(path, "mp4v", fps, width, height, true)
	if err != nil {
		return nil, fmt.Errorf("failed to open video writer: %w", err)
	}
	if !writer.IsOpened() {
		writer.Close()
		return nil, fmt.Errorf("failed to open video writer: %s", path)
	}

	logger.WithFields(logrus.Fields{
		"path":   path,
		"fps":    fps,
		"width":  width,
		"height": height,
	}).Info("Recording to file")

	return &Recorder{
		writer: writer,
		path:   path,
		width:  width,
		height: height,
		logger: logger,
	}, nil
}

func (r *Recorder) Present(frame *effects.Frame) error {
	if frame.Width() != r.width || frame.Height() != r.height {
		return fmt.Errorf("frame is %dx%d, recorder expects %dx%d",
			frame.Width(), frame.Height(), r.width, r.height)
	}
	mat, err := gocv.NewMatFromBytes(r.height, r.width, gocv.MatTypeCV8UC3, bgrFromFrame(frame))
	if err != nil {
		return fmt.Errorf("failed to convert frame: %w", err)
	}
	defer mat.Close()

	if err := r.writer.Write(mat); err != nil {
		return fmt.Errorf("failed to write frame: %w", err)
	}
	r.frames++
	return nil
}

func (r *Recorder) Close() error {
	r.logger.WithFields(logrus.Fields{
		"path":   r.path,
		"frames": r.frames,
	}).Info("Recording finished")
	return r.writer.Close()
}

func (r *Recorder) Path() string { return r.path }
