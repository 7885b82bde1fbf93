// Video FX Engine - Real-time video effects playground
// Author: Ervins Strauhmanis
// License: MIT
// Version: 1.0.0

package main

import (
	"flag"
	"os"

	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/theme"
	"github.com/sirupsen/logrus"

	"video-fx-engine/internal/gui"
)

const (
	AppName    = "Video FX Engine"
	AppID      = "com.strauhmanis.video-fx-engine"
	AppVersion = "1.0.0"
)

func main() {
	// Parse command line flags
	debugMode := flag.Bool("debug", false, "Enable debug mode with verbose logging")
	inputPath := flag.String("input", "", "Video file to load on startup")
	cameraID := flag.Int("camera", -1, "Capture device to open on startup instead of a file")
	flag.Parse()

	// Initialize logger
	logger := initLogger(*debugMode)
	logger.WithFields(logrus.Fields{
		"version":    AppVersion,
		"debug_mode": *debugMode,
	}).Info("Starting Video FX Engine")

	// Create Fyne application
	myApp := app.NewWithID(AppID)
	myApp.SetIcon(theme.MediaVideoIcon())
	myApp.Settings().SetTheme(theme.DefaultTheme())

	// Create and show main application window
	mainApp := gui.NewApplication(myApp, logger)
	switch {
	case *cameraID >= 0:
		if err := mainApp.LoadCamera(*cameraID); err != nil {
			logger.WithError(err).WithField("device", *cameraID).Error("Failed to open startup camera")
		}
	case *inputPath != "":
		if err := mainApp.LoadVideo(*inputPath); err != nil {
			logger.WithError(err).WithField("path", *inputPath).Error("Failed to load startup video")
		}
	}
	mainApp.ShowAndRun()

	logger.Info("Application shutting down gracefully")
	os.Exit(0)
}

// initLogger initializes the logger with appropriate level
func initLogger(debugMode bool) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stdout)

	if debugMode {
		logger.SetLevel(logrus.DebugLevel)
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
			ForceColors:   true,
		})
		logger.Debug("Debug logging enabled")
	} else {
		logger.SetLevel(logrus.InfoLevel)
		logger.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: "2006-01-02 15:04:05",
		})
	}

	return logger
}
