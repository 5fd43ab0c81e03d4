package app

import (
	"log"
	"time"

	"gocv.io/x/gocv"

	"github.com/ayusman/fingerframe/internal/effect"
	"github.com/ayusman/fingerframe/internal/geom"
	"github.com/ayusman/fingerframe/internal/hub"
)

// frameResult is what one pipeline step produced for the current frame.
type frameResult struct {
	tips    []geom.Point
	rect    geom.Rect
	hasRect bool
}

// processFrame runs one detection -> rectangle -> effect step, modifying
// the frame in place. When detection is idle (no recent motion) the
// detector is skipped; the controller then simply returns the held
// rectangle, so the effect keeps applying to the last known-good region.
func (a *App) processFrame(frame *gocv.Mat, detect bool) frameResult {
	var tips []geom.Point

	if detect {
		d := a.Detector()
		if d != nil {
			found, err := d.Detect(frame)
			if err != nil {
				log.Printf("Error detecting fingertips: %v", err)
			} else {
				tips = found
			}
		}
	}

	rect, ok := a.controller.Update(tips, frame.Cols(), frame.Rows())
	if ok {
		effect.InvertRegion(frame, rect)
	}

	return frameResult{tips: tips, rect: rect, hasRect: ok}
}

// drawOverlays renders fingertip markers, the rectangle and the HUD onto
// the processed frame.
func (a *App) drawOverlays(frame *gocv.Mat, res frameResult) {
	if a.config.DrawTips {
		a.drawer.DrawTips(frame, res.tips)
	}
	if res.hasRect {
		a.drawer.DrawRect(frame, res.rect)
	}
	a.drawer.HUD(frame, hudInstruction, hudKeys)
	a.drawer.FPS(frame, a.fps)
}

// publish pushes the finished frame and its tracking state to the hub for
// the HTTP server.
func (a *App) publish(frame *gocv.Mat, res frameResult) {
	buf, err := gocv.IMEncode(".jpg", *frame)
	if err != nil {
		log.Printf("Error encoding frame: %v", err)
		return
	}
	defer buf.Close()

	state := hub.State{Tips: res.tips, FPS: a.fps}
	if res.hasRect {
		rect := res.rect
		state.Rect = &rect
	}
	a.frames.Publish(buf.GetBytes(), state)
}

// Run drives the windowed application: read, process, display, handle
// keys. It blocks until the user quits, the window is closed, or the
// frame source ends.
func (a *App) Run() error {
	if err := a.camera.Open(); err != nil {
		return err
	}
	defer a.Close()

	window := gocv.NewWindow(a.config.WindowTitle)
	defer window.Close()
	window.ResizeWindow(960, 540)

	activeMode := true
	lastMotionTime := time.Now()

	for {
		frame, err := a.camera.ReadFrame()
		if err != nil {
			// End of stream or capture failure: leave cleanly.
			log.Printf("Frame source ended: %v", err)
			return nil
		}

		activeMode, lastMotionTime = a.gateOnMotion(frame, activeMode, lastMotionTime)

		var res frameResult
		if a.IsEnabled() {
			res = a.processFrame(frame, activeMode)
		}

		a.updateFPS()
		a.drawOverlays(frame, res)
		a.publish(frame, res)

		window.IMShow(*frame)

		quit := false
		switch window.WaitKey(1) {
		case 'q', 'Q':
			quit = true
		case 'r', 'R':
			a.Reset()
		case 's', 'S':
			if _, err := a.SaveSnapshot(frame, res.rect, res.hasRect); err != nil {
				log.Printf("Error saving snapshot: %v", err)
			}
		}

		// Closing the window with [X] also ends the session.
		if window.GetWindowProperty(gocv.WindowPropertyVisible) < 1 {
			quit = true
		}

		frame.Close()

		if quit {
			return nil
		}
	}
}

// gateOnMotion tracks whether the scene has moved recently. After
// IdleTimeoutMs of stillness detection is idled until motion returns;
// the held rectangle continues to apply either way.
func (a *App) gateOnMotion(frame *gocv.Mat, activeMode bool, lastMotionTime time.Time) (bool, time.Time) {
	moved, _ := a.motion.Detect(frame)

	if moved {
		if !activeMode {
			log.Println("Motion detected, resuming fingertip detection")
		}
		return true, time.Now()
	}

	if activeMode && time.Since(lastMotionTime) > time.Duration(IdleTimeoutMs)*time.Millisecond {
		log.Println("Scene still, idling fingertip detection")
		return false, lastMotionTime
	}

	return activeMode, lastMotionTime
}

// Start begins the headless pipeline, feeding processed frames to the hub
// instead of a window. Used in tray/server mode.
func (a *App) Start() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	// Don't start if already running
	if a.stopCh != nil {
		return nil
	}

	if err := a.camera.Open(); err != nil {
		return err
	}

	a.stopCh = make(chan struct{})
	go a.runPipeline(a.stopCh)

	log.Println("Headless pipeline started")
	return nil
}

// Stop halts the headless pipeline and releases resources.
func (a *App) Stop() {
	a.mu.Lock()
	if a.stopCh != nil {
		close(a.stopCh)
		a.stopCh = nil
	}
	a.mu.Unlock()

	a.Close()
	log.Println("Headless pipeline stopped")
}

// runPipeline is the headless processing loop.
func (a *App) runPipeline(stopCh <-chan struct{}) {
	ticker := time.NewTicker(time.Second / PipelineFPS)
	defer ticker.Stop()

	activeMode := true
	lastMotionTime := time.Now()

	for {
		select {
		case <-stopCh:
			return
		case <-ticker.C:
			frame, err := a.Camera().ReadFrame()
			if err != nil {
				log.Printf("Error reading frame: %v", err)
				continue
			}

			activeMode, lastMotionTime = a.gateOnMotion(frame, activeMode, lastMotionTime)

			var res frameResult
			if a.IsEnabled() {
				res = a.processFrame(frame, activeMode)
			}

			a.updateFPS()
			a.drawOverlays(frame, res)
			a.publish(frame, res)

			frame.Close()
		}
	}
}
