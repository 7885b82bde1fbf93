// Video sources backed by OpenCV capture devices
package video

import (
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"gocv.io/x/gocv"

	"video-fx-engine/internal/effects"
	"video-fx-engine/internal/engine"
)

// FileSource streams the frames of a video file at its native rate.
type FileSource struct {
	capture  *gocv.VideoCapture
	mat      gocv.Mat
	path     string
	fps      float64
	width    int
	height   int
	interval time.Duration
	logger   *logrus.Logger
}

// NewFileSource opens a video file and probes its frame rate and size.
func NewFileSource(path string, logger *logrus.Logger) (*FileSource, error) {
	if !isSupportedVideoFormat(path) {
		return nil, fmt.Errorf("unsupported video format: %s", path)
	}

	capture, err := gocv.VideoCaptureFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open video: %w", err)
	}
	if !capture.IsOpened() {
		capture.Close()
		return nil, fmt.Errorf("failed to open video: %s", path)
	}

	s := &FileSource{
		capture: capture,
		mat:     gocv.NewMat(),
		path:    path,
		fps:     capture.Get(gocv.VideoCaptureFPS),
		width:   int(capture.Get(gocv.VideoCaptureFrameWidth)),
		height:  int(capture.Get(gocv.VideoCaptureFrameHeight)),
		logger:  logger,
	}
	if s.fps > 0 {
		s.interval = time.Duration(float64(time.Second) / s.fps)
	}

	logger.WithFields(logrus.Fields{
		"path":   path,
		"fps":    s.fps,
		"width":  s.width,
		"height": s.height,
	}).Info("Video opened")

	return s, nil
}

func (s *FileSource) Next() (*effects.Frame, error) {
	if ok := s.capture.Read(&s.mat); !ok || s.mat.Empty() {
		return nil, engine.ErrEndOfStream
	}
	return frameFromBGR(s.mat.ToBytes(), s.mat.Cols(), s.mat.Rows())
}

func (s *FileSource) FrameInterval() time.Duration { return s.interval }

// Rewind seeks back to the first frame.
func (s *FileSource) Rewind() error {
	s.capture.Set(gocv.VideoCapturePosFrames, 0)
	return nil
}

func (s *FileSource) Close() error {
	s.mat.Close()
	s.logger.WithField("path", s.path).Debug("Video closed")
	return s.capture.Close()
}

func (s *FileSource) Path() string { return s.path }
func (s *FileSource) FPS() float64 { return s.fps }
func (s *FileSource) Width() int   { return s.width }
func (s *FileSource) Height() int  { return s.height }

// CameraSource streams frames from a capture device. The device does not
// report a frame rate, so the engine paces it with its default interval.
type CameraSource struct {
	capture *gocv.VideoCapture
	mat     gocv.Mat
	device  int
	width   int
	height  int
	logger  *logrus.Logger
}

// NewCameraSource opens the capture device with the given ID.
func NewCameraSource(device int, logger *logrus.Logger) (*CameraSource, error) {
	capture, err := gocv.VideoCaptureDevice(device)
	if err != nil {
		return nil, fmt.Errorf("failed to open camera %d: %w", device, err)
	}
	if !capture.IsOpened() {
		capture.Close()
		return nil, fmt.Errorf("failed to open camera %d", device)
	}

	s := &CameraSource{
		capture: capture,
		mat:     gocv.NewMat(),
		device:  device,
		width:   int(capture.Get(gocv.VideoCaptureFrameWidth)),
		height:  int(capture.Get(gocv.VideoCaptureFrameHeight)),
		logger:  logger,
	}

	logger.WithFields(logrus.Fields{
		"device": device,
		"width":  s.width,
		"height": s.height,
	}).Info("Camera opened")

	return s, nil
}

func (s *CameraSource) Next() (*effects.Frame, error) {
	if ok := s.capture.Read(&s.mat); !ok || s.mat.Empty() {
		return nil, engine.ErrEndOfStream
	}
	return frameFromBGR(s.mat.ToBytes(), s.mat.Cols(), s.mat.Rows())
}

func (s *CameraSource) FrameInterval() time.Duration { return 0 }

func (s *CameraSource) Close() error {
	s.mat.Close()
	s.logger.WithField("device", s.device).Debug("Camera closed")
	return s.capture.Close()
}

func (s *CameraSource) Width() int  { return s.width }
func (s *CameraSource) Height() int { return s.height }

func isSupportedVideoFormat(path string) bool {
	ext := strings.ToLower(getFileExtension(path))
	for _, format := range SupportedExtensions() {
		if ext == format {
			return true
		}
	}
	return false
}

func getFileExtension(path string) string {
	for i := len(path) - 1; i >= 0; i-- {
		if path[i] == '.' {
			return path[i:]
		}
		if path[i] == '/' || path[i] == '\\' {
			break
		}
	}
	return ""
}

// SupportedExtensions lists the video file extensions the file source
// accepts, for building file dialog filters.
func SupportedExtensions() []string {
	return []string{".mp4", ".avi", ".mov", ".mkv", ".webm"}
}
