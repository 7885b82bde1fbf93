// Transport and file controls for the playback engine
package gui

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/sirupsen/logrus"

	"video-fx-engine/internal/engine"
	"video-fx-engine/internal/video"
)

// ControlPanel holds the open, transport and record buttons. Opening a
// video, starting a run and arming a recorder all need a source built
// outside the panel, so those actions are forwarded through callbacks;
// pause, resume and stop drive the engine directly.
type ControlPanel struct {
	window fyne.Window
	engine *engine.Engine
	logger *logrus.Logger

	box *fyne.Container

	openBtn   *widget.Button
	startBtn  *widget.Button
	pauseBtn  *widget.Button
	stopBtn   *widget.Button
	recordBtn *widget.Button

	videoLoaded bool

	onOpenVideo func(string)
	onStart     func()
	onRecord    func(string)
}

func NewControlPanel(window fyne.Window, eng *engine.Engine, logger *logrus.Logger) *ControlPanel {
	panel := &ControlPanel{
		window: window,
		engine: eng,
		logger: logger,
	}

	panel.initializeUI()
	return panel
}

func (cp *ControlPanel) initializeUI() {
	cp.openBtn = widget.NewButtonWithIcon("Open Video", theme.FolderOpenIcon(), cp.openVideo)
	cp.openBtn.Importance = widget.HighImportance

	cp.startBtn = widget.NewButtonWithIcon("Start", theme.MediaPlayIcon(), func() {
		if cp.onStart != nil {
			cp.onStart()
		}
	})
	cp.startBtn.Importance = widget.HighImportance
	cp.startBtn.Disable()

	cp.pauseBtn = widget.NewButtonWithIcon("Pause", theme.MediaPauseIcon(), cp.togglePause)
	cp.pauseBtn.Disable()

	cp.stopBtn = widget.NewButtonWithIcon("Stop", theme.MediaStopIcon(), func() {
		cp.engine.Stop()
	})
	cp.stopBtn.Disable()

	cp.recordBtn = widget.NewButtonWithIcon("Record", theme.MediaRecordIcon(), cp.toggleRecord)
	cp.recordBtn.Disable()

	cp.box = container.NewHBox(
		cp.openBtn,
		widget.NewSeparator(),
		cp.startBtn,
		cp.pauseBtn,
		cp.stopBtn,
		widget.NewSeparator(),
		cp.recordBtn,
	)
}

func (cp *ControlPanel) openVideo() {
	cp.logger.Info("Opening file dialog for video selection")

	fileDialog := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil {
			cp.showError("File Dialog Error", err)
			return
		}
		if reader == nil {
			return
		}
		defer reader.Close()

		path := reader.URI().Path()
		if cp.onOpenVideo != nil {
			cp.onOpenVideo(path)
		}
	}, cp.window)

	fileDialog.SetFilter(storage.NewExtensionFileFilter(video.SupportedExtensions()))
	fileDialog.Show()
}

func (cp *ControlPanel) togglePause() {
	var err error
	if cp.engine.State() == engine.StatePaused {
		err = cp.engine.Resume()
	} else {
		err = cp.engine.Pause()
	}
	if err != nil {
		cp.showError("Playback Error", err)
	}
}

func (cp *ControlPanel) toggleRecord() {
	if cp.engine.Recording() {
		cp.engine.StopRecording()
		cp.refreshRecordButton()
		return
	}
	if !cp.engine.HasSource() {
		cp.showError("Recording Error", fmt.Errorf("open a video before recording"))
		return
	}

	cp.logger.Info("Opening file dialog for recording target")

	fileDialog := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil {
			cp.showError("File Dialog Error", err)
			return
		}
		if writer == nil {
			return
		}
		defer writer.Close()

		path := writer.URI().Path()
		if cp.onRecord != nil {
			cp.onRecord(path)
		}
		cp.refreshRecordButton()
	}, cp.window)

	fileDialog.SetFileName("processed.mp4")
	fileDialog.SetFilter(storage.NewExtensionFileFilter([]string{".mp4", ".avi"}))
	fileDialog.Show()
}

// SetState aligns button availability with an engine state change.
// Runs on the fyne goroutine.
func (cp *ControlPanel) SetState(state engine.State) {
	switch state {
	case engine.StateRunning:
		cp.startBtn.Disable()
		cp.pauseBtn.SetText("Pause")
		cp.pauseBtn.SetIcon(theme.MediaPauseIcon())
		cp.pauseBtn.Enable()
		cp.stopBtn.Enable()
		cp.recordBtn.Enable()
	case engine.StatePaused:
		cp.startBtn.Disable()
		cp.pauseBtn.SetText("Resume")
		cp.pauseBtn.SetIcon(theme.MediaPlayIcon())
		cp.pauseBtn.Enable()
		cp.stopBtn.Enable()
		cp.recordBtn.Enable()
	case engine.StateStopped:
		if cp.videoLoaded {
			cp.startBtn.Enable()
		} else {
			cp.startBtn.Disable()
		}
		cp.pauseBtn.SetText("Pause")
		cp.pauseBtn.SetIcon(theme.MediaPauseIcon())
		cp.pauseBtn.Disable()
		cp.stopBtn.Disable()
		cp.recordBtn.Disable()
	}
	cp.refreshRecordButton()
}

// SetVideoLoaded marks whether a file is available to start from.
func (cp *ControlPanel) SetVideoLoaded(loaded bool) {
	cp.videoLoaded = loaded
	cp.SetState(cp.engine.State())
}

func (cp *ControlPanel) refreshRecordButton() {
	if cp.engine.Recording() {
		cp.recordBtn.SetText("Stop Recording")
	} else {
		cp.recordBtn.SetText("Record")
	}
}

func (cp *ControlPanel) SetCallbacks(onOpenVideo func(string), onStart func(), onRecord func(string)) {
	cp.onOpenVideo = onOpenVideo
	cp.onStart = onStart
	cp.onRecord = onRecord
}

func (cp *ControlPanel) GetContainer() fyne.CanvasObject {
	return cp.box
}

func (cp *ControlPanel) showError(title string, err error) {
	cp.logger.WithError(err).Error(title)
	dialog.ShowError(err, cp.window)
}
