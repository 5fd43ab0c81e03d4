// Package app provides the main application logic for the FingerFrame
// index-rectangle inverter.
package app

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"gocv.io/x/gocv"

	"github.com/ayusman/fingerframe/internal/capture"
	"github.com/ayusman/fingerframe/internal/detector"
	"github.com/ayusman/fingerframe/internal/geom"
	"github.com/ayusman/fingerframe/internal/hub"
	"github.com/ayusman/fingerframe/internal/overlay"
	"github.com/ayusman/fingerframe/internal/roi"
	"github.com/ayusman/fingerframe/internal/store"
)

// Pipeline timing constants.
const (
	// PipelineFPS is the target frame rate of the headless pipeline.
	PipelineFPS = 15
	// IdleTimeoutMs is the still-scene time in milliseconds after which
	// fingertip detection is skipped until motion returns.
	IdleTimeoutMs = 2000
)

// HUD text.
const (
	hudInstruction = "Show both index fingers to invert the colors inside the rectangle."
	hudKeys        = "[Q] Quit  [R] Reset  [S] Snapshot"
)

// Config holds configuration options for the application.
type Config struct {
	Store        *store.Store
	CameraID     int
	SmoothAlpha  float64
	MinRectSize  int
	Mirror       bool
	DrawTips     bool
	MotionThresh float64
	SnapshotDir  string
	WindowTitle  string
}

// App is the main application that orchestrates capture, fingertip
// detection, rectangle tracking and the inversion effect.
type App struct {
	config     Config
	camera     capture.Camera
	motion     *capture.MotionDetector
	detector   detector.Detector
	controller *roi.Controller
	drawer     *overlay.Drawer
	frames     *hub.Hub

	enabled bool
	mu      sync.RWMutex
	stopCh  chan struct{}

	fps      float64
	lastTime time.Time
}

// New creates a new App instance with the given configuration.
// It fails if the smoothing factor or minimum rectangle size is invalid.
func New(config Config) (*App, error) {
	controller, err := roi.NewController(config.SmoothAlpha, config.MinRectSize)
	if err != nil {
		return nil, fmt.Errorf("build rectangle controller: %w", err)
	}

	motionThreshold := config.MotionThresh
	if motionThreshold <= 0 {
		motionThreshold = 1.0 // Default threshold: 1% pixel change
	}

	if config.WindowTitle == "" {
		config.WindowTitle = "FingerFrame"
	}

	a := &App{
		config:     config,
		camera:     capture.NewCamera(config.CameraID),
		motion:     capture.NewMotionDetector(motionThreshold),
		controller: controller,
		drawer:     overlay.NewDrawer(),
		frames:     hub.New(),
		enabled:    true,
		lastTime:   time.Now(),
	}
	a.camera.SetMirror(config.Mirror)

	// Try MediaPipe first, fall back to mock detector
	if mp, err := detector.NewMediaPipeDetector(detector.DefaultConfig()); err == nil {
		a.detector = mp
		log.Println("Using MediaPipe fingertip detection")
	} else {
		log.Printf("MediaPipe not available (%v), using mock detector", err)
		a.detector = detector.NewMockDetector()
	}

	return a, nil
}

// SetEnabled enables or disables fingertip detection and the effect.
func (a *App) SetEnabled(enabled bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.enabled = enabled
}

// IsEnabled returns whether detection is currently enabled.
func (a *App) IsEnabled() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.enabled
}

// SetDetector sets the fingertip detector implementation to use.
func (a *App) SetDetector(d detector.Detector) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.detector = d
}

// SetCamera sets the camera implementation to use.
func (a *App) SetCamera(c capture.Camera) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.camera = c
}

// Reset clears the rectangle controller and the motion baseline, returning
// the tracking to its initial no-rectangle state. Bound to the R key and
// the tray reset item.
func (a *App) Reset() {
	a.controller.Reset()
	a.motion.Reset()
	log.Println("Tracking state reset")
}

// Frames returns the hub carrying the latest processed frame for the
// HTTP server.
func (a *App) Frames() *hub.Hub {
	return a.frames
}

// Camera returns the camera instance.
func (a *App) Camera() capture.Camera {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.camera
}

// Detector returns the fingertip detector.
func (a *App) Detector() detector.Detector {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.detector
}

// Controller returns the rectangle controller.
func (a *App) Controller() *roi.Controller {
	return a.controller
}

// Close releases the camera, motion detector and fingertip detector.
func (a *App) Close() {
	if err := a.camera.Close(); err != nil {
		log.Printf("Error closing camera: %v", err)
	}

	a.motion.Close()

	if a.detector != nil {
		if err := a.detector.Close(); err != nil {
			log.Printf("Error closing detector: %v", err)
		}
	}
}

// updateFPS refreshes the smoothed frames-per-second estimate. The blend
// keeps the readout stable against single-frame hiccups.
func (a *App) updateFPS() {
	now := time.Now()
	dt := now.Sub(a.lastTime).Seconds()
	if dt > 0 {
		a.fps = 0.9*a.fps + 0.1*(1.0/dt)
	}
	a.lastTime = now
}

// SaveSnapshot writes the frame to the snapshot directory and records its
// metadata in the store. Returns the snapshot ID.
func (a *App) SaveSnapshot(frame *gocv.Mat, rect geom.Rect, hasRect bool) (string, error) {
	dir := a.config.SnapshotDir
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve snapshot directory: %w", err)
		}
		dir = filepath.Join(home, ".fingerframe", "snapshots")
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create snapshot directory: %w", err)
	}

	id := uuid.NewString()
	path := filepath.Join(dir, id+".jpg")
	if ok := gocv.IMWrite(path, *frame); !ok {
		return "", fmt.Errorf("write snapshot %s", path)
	}

	if a.config.Store != nil {
		snap := &store.Snapshot{ID: id, Path: path}
		if hasRect {
			snap.Rect = rect
		}
		if err := a.config.Store.Snapshots().Create(snap); err != nil {
			return "", fmt.Errorf("record snapshot: %w", err)
		}
	}

	log.Printf("Saved snapshot %s", path)
	return id, nil
}
