package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/ayusman/fingerframe/internal/app"
	"github.com/ayusman/fingerframe/internal/server"
	"github.com/ayusman/fingerframe/internal/store"
	"github.com/ayusman/fingerframe/internal/tray"
)

func main() {
	var (
		cameraID    = flag.Int("camera", -1, "camera device ID (-1 uses the saved setting)")
		alpha       = flag.Float64("alpha", -1, "smoothing factor in [0,1] (-1 uses the saved setting)")
		minSize     = flag.Int("min-size", -1, "minimum rectangle extent in pixels (-1 uses the saved setting)")
		noMirror    = flag.Bool("no-mirror", false, "disable the selfie-view mirror")
		listen      = flag.String("listen", "", "start the HTTP server on this address (e.g. :8080)")
		headless    = flag.Bool("headless", false, "run without a preview window, controlled from the system tray")
		dbPath      = flag.String("db", "", "path to the settings database (default ~/.fingerframe/fingerframe.db)")
		snapshotDir = flag.String("snapshot-dir", "", "directory for saved snapshots (default ~/.fingerframe/snapshots)")
	)
	flag.Parse()

	fmt.Println("FingerFrame - Index-Rectangle Inverter")

	st, err := openStore(*dbPath)
	if err != nil {
		log.Fatalf("Failed to initialize store: %v", err)
	}
	defer st.Close()

	settings, err := st.Settings().Load()
	if err != nil {
		log.Fatalf("Failed to load settings: %v", err)
	}

	// Command line flags override saved settings for this run.
	if *cameraID >= 0 {
		settings.CameraID = *cameraID
	}
	if *alpha >= 0 {
		settings.SmoothAlpha = *alpha
	}
	if *minSize >= 0 {
		settings.MinRectSize = *minSize
	}
	if *noMirror {
		settings.Mirror = false
	}

	a, err := app.New(app.Config{
		Store:       st,
		CameraID:    settings.CameraID,
		SmoothAlpha: settings.SmoothAlpha,
		MinRectSize: settings.MinRectSize,
		Mirror:      settings.Mirror,
		DrawTips:    true,
		SnapshotDir: *snapshotDir,
	})
	if err != nil {
		log.Fatalf("Failed to initialize pipeline: %v", err)
	}
	defer a.Close()

	if *listen != "" {
		webDir := findWebDir()
		if webDir != "" {
			fmt.Printf("Serving static files from: %s\n", webDir)
		}

		srv := server.New(server.Config{
			StaticDir: webDir,
			Store:     st,
			Frames:    a.Frames(),
		})

		go func() {
			fmt.Printf("Starting server on %s\n", *listen)
			if err := srv.ListenAndServe(*listen); err != nil {
				log.Fatalf("Server failed: %v", err)
			}
		}()
	}

	if *headless {
		runHeadless(a)
		return
	}

	if err := a.Run(); err != nil {
		log.Fatalf("Pipeline failed: %v", err)
	}
}

// runHeadless starts the pipeline without a preview window and blocks on the
// system tray event loop.
func runHeadless(a *app.App) {
	if err := a.Start(); err != nil {
		log.Fatalf("Failed to start pipeline: %v", err)
	}

	t := tray.New()
	t.OnToggle(func(enabled bool) {
		a.SetEnabled(enabled)
	})
	t.OnReset(func() {
		a.Reset()
	})
	t.OnQuit(func() {
		a.Stop()
	})

	done := make(chan struct{})
	go updateTrayStatus(t, a, done)
	defer close(done)

	t.Run()
}

// updateTrayStatus mirrors the tracking state into the tray menu.
func updateTrayStatus(t *tray.Tray, a *app.App, done <-chan struct{}) {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			state := a.Frames().State()
			if state.Rect != nil {
				r := *state.Rect
				t.SetStatus(fmt.Sprintf("Rectangle %dx%d", r.Width(), r.Height()))
			} else {
				t.SetStatus("No rectangle")
			}
		}
	}
}

// openStore opens the settings database, creating the data directory when
// the default location is used.
func openStore(path string) (*store.Store, error) {
	if path == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("get home directory: %w", err)
		}

		dbDir := filepath.Join(homeDir, ".fingerframe")
		if err := os.MkdirAll(dbDir, 0755); err != nil {
			return nil, fmt.Errorf("create data directory: %w", err)
		}

		path = filepath.Join(dbDir, "fingerframe.db")
	}

	return store.New(path)
}

// findWebDir searches for the web directory in common locations.
// It checks: "web", "../web", "../../web", and ~/.fingerframe/web.
// Returns the first existing directory or empty string if none found.
func findWebDir() string {
	relativePaths := []string{"web", "../web", "../../web"}
	for _, p := range relativePaths {
		if info, err := os.Stat(p); err == nil && info.IsDir() {
			absPath, err := filepath.Abs(p)
			if err == nil {
				return absPath
			}
			return p
		}
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}

	homeWebDir := filepath.Join(homeDir, ".fingerframe", "web")
	if info, err := os.Stat(homeWebDir); err == nil && info.IsDir() {
		return homeWebDir
	}

	return ""
}
