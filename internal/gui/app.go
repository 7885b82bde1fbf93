// Main application window wiring the engine to the fyne UI
package gui

import (
	"fmt"
	"path/filepath"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
	"github.com/sirupsen/logrus"

	"video-fx-engine/internal/effects"
	"video-fx-engine/internal/engine"
	"video-fx-engine/internal/video"
)

// Application owns the window, the processing engine and the panels
// around it.
type Application struct {
	app    fyne.App
	window fyne.Window
	logger *logrus.Logger

	// Core components
	pipeline *engine.Pipeline
	engine   *engine.Engine

	// Last attached source, for reopening after a stop and for sizing
	// the recorder. lastCamera is -1 while a file is loaded.
	lastPath   string
	lastCamera int
	srcFPS     float64
	srcWidth   int
	srcHeight  int

	// GUI components
	viewport *Viewport
	controls *ControlPanel
	effects  *EffectsPanel
	status   *StatusBar

	// Layout containers
	mainContent *container.Split
}

func NewApplication(app fyne.App, logger *logrus.Logger) *Application {
	window := app.NewWindow("Video FX Engine")
	window.Resize(fyne.NewSize(1280, 800))
	window.CenterOnScreen()

	appInstance := &Application{
		app:        app,
		window:     window,
		logger:     logger,
		lastCamera: -1,
	}

	appInstance.initializeCore()
	appInstance.initializeGUI()
	appInstance.setupLayout()
	appInstance.setupCallbacks()

	return appInstance
}

func (a *Application) initializeCore() {
	a.pipeline = engine.NewPipeline(effects.DefaultChain(), a.logger)
	// The viewport is created alongside the engine because it is the
	// engine's display sink.
	a.viewport = NewViewport()
	a.engine = engine.NewEngine(a.pipeline, a.viewport, a.logger)
}

func (a *Application) initializeGUI() {
	a.controls = NewControlPanel(a.window, a.engine, a.logger)
	a.effects = NewEffectsPanel(a.engine, a.logger)
	a.status = NewStatusBar(a.engine)
}

func (a *Application) setupLayout() {
	centerPanel := container.NewBorder(
		container.NewVBox(a.controls.GetContainer(), widget.NewSeparator()), // top
		nil, // bottom
		nil, // left
		nil, // right
		container.NewPadded(a.viewport.GetContainer()),
	)

	a.mainContent = container.NewHSplit(
		centerPanel,
		container.NewVScroll(a.effects.GetContainer()),
	)
	a.mainContent.SetOffset(0.72)

	a.window.SetContent(container.NewBorder(
		nil, // top
		a.status.GetContainer(), // bottom
		nil, // left
		nil, // right
		a.mainContent,
	))
}

func (a *Application) setupCallbacks() {
	// Engine callbacks arrive on whatever goroutine hit the transition,
	// so every widget touch goes through fyne.Do.
	a.engine.SetCallbacks(
		// onState
		func(state engine.State) {
			fyne.Do(func() {
				a.controls.SetState(state)
			})
		},
		// onError
		func(err error) {
			fyne.Do(func() {
				a.showError("Processing Error", err)
			})
		},
		// onEndOfStream
		func() {
			a.logger.Info("Playback finished")
		},
	)

	a.controls.SetCallbacks(
		// onOpenVideo
		func(path string) {
			if err := a.LoadVideo(path); err != nil {
				a.showError("Failed to Open Video", err)
			}
		},
		// onStart
		func() {
			if err := a.startPlayback(); err != nil {
				a.showError("Playback Error", err)
			}
		},
		// onRecord
		func(path string) {
			if err := a.startRecording(path); err != nil {
				a.showError("Recording Error", err)
			}
		},
	)
}

// LoadVideo stops any current run and attaches the given file as the
// engine source.
func (a *Application) LoadVideo(path string) error {
	a.engine.Stop()

	src, err := video.NewFileSource(path, a.logger)
	if err != nil {
		return fmt.Errorf("failed to open video: %w", err)
	}
	if err := a.engine.SetSource(src); err != nil {
		src.Close()
		return fmt.Errorf("failed to attach source: %w", err)
	}

	a.lastPath = path
	a.lastCamera = -1
	a.srcFPS = src.FPS()
	a.srcWidth = src.Width()
	a.srcHeight = src.Height()

	fyne.Do(func() {
		a.viewport.Clear()
		a.status.SetFileName(filepath.Base(path))
		a.controls.SetVideoLoaded(true)
	})

	a.logger.WithField("path", path).Info("Video loaded")
	return nil
}

// LoadCamera stops any current run and attaches a capture device as the
// engine source.
func (a *Application) LoadCamera(device int) error {
	a.engine.Stop()

	src, err := video.NewCameraSource(device, a.logger)
	if err != nil {
		return fmt.Errorf("failed to open camera: %w", err)
	}
	if err := a.engine.SetSource(src); err != nil {
		src.Close()
		return fmt.Errorf("failed to attach source: %w", err)
	}

	a.lastPath = ""
	a.lastCamera = device
	a.srcFPS = 0
	a.srcWidth = src.Width()
	a.srcHeight = src.Height()

	fyne.Do(func() {
		a.viewport.Clear()
		a.status.SetFileName(fmt.Sprintf("camera %d", device))
		a.controls.SetVideoLoaded(true)
	})

	a.logger.WithField("device", device).Info("Camera attached")
	return nil
}

func (a *Application) startPlayback() error {
	if !a.engine.HasSource() {
		// Stop released the previous source, so reopen it.
		var (
			src engine.Source
			err error
		)
		switch {
		case a.lastCamera >= 0:
			src, err = video.NewCameraSource(a.lastCamera, a.logger)
		case a.lastPath != "":
			src, err = video.NewFileSource(a.lastPath, a.logger)
		default:
			return fmt.Errorf("no video loaded")
		}
		if err != nil {
			return fmt.Errorf("failed to reopen source: %w", err)
		}
		if err := a.engine.SetSource(src); err != nil {
			src.Close()
			return err
		}
	}
	return a.engine.Start()
}

func (a *Application) startRecording(path string) error {
	if a.srcWidth == 0 || a.srcHeight == 0 {
		return fmt.Errorf("no video loaded")
	}

	rec, err := video.NewRecorder(path, a.srcFPS, a.srcWidth, a.srcHeight, a.logger)
	if err != nil {
		return err
	}
	if err := a.engine.StartRecording(rec); err != nil {
		rec.Close()
		return err
	}
	return nil
}

func (a *Application) ShowAndRun() {
	a.logger.Info("Showing main application window")

	a.window.SetCloseIntercept(func() {
		a.cleanup()
		a.app.Quit()
	})

	a.status.Start()
	a.window.ShowAndRun()
}

func (a *Application) cleanup() {
	a.logger.Info("Cleaning up application resources")
	a.status.Stop()
	a.engine.Stop()
}

func (a *Application) showError(title string, err error) {
	a.logger.WithError(err).Error(title)
	dialog.ShowError(err, a.window)
}
