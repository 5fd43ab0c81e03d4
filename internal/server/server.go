// Package server provides the HTTP preview and control surface for
// FingerFrame: a live MJPEG stream of the processed frames, a WebSocket
// feed of the tracking state, and JSON APIs over settings and snapshots.
package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/ayusman/fingerframe/internal/hub"
	"github.com/ayusman/fingerframe/internal/server/api"
	"github.com/ayusman/fingerframe/internal/store"
)

// Config holds the server configuration.
type Config struct {
	StaticDir string
	Store     *store.Store
	Frames    *hub.Hub
}

// Server represents the HTTP server for the FingerFrame application.
type Server struct {
	config Config
	mux    *http.ServeMux
	start  time.Time
}

// New creates a new Server with the given configuration.
func New(config Config) *Server {
	s := &Server{
		config: config,
		mux:    http.NewServeMux(),
		start:  time.Now(),
	}
	s.setupRoutes()
	return s
}

// setupRoutes configures all HTTP routes for the server.
func (s *Server) setupRoutes() {
	s.mux.HandleFunc("/api/health", s.handleHealth)

	// Register store-backed APIs if a Store is configured
	if s.config.Store != nil {
		s.mux.Handle("/api/settings", api.NewSettingsHandler(s.config.Store))

		snapshotHandler := api.NewSnapshotHandler(s.config.Store)
		s.mux.Handle("/api/snapshots", snapshotHandler)
		s.mux.Handle("/api/snapshots/", snapshotHandler)
	}

	// Register the live endpoints if the pipeline publishes frames
	if s.config.Frames != nil {
		s.mux.Handle("/api/stream", NewStreamHandler(s.config.Frames))
		s.mux.Handle("/api/state", NewStateHandler(s.config.Frames))
	}

	// Serve static files if StaticDir is configured
	if s.config.StaticDir != "" {
		fs := http.FileServer(http.Dir(s.config.StaticDir))
		s.mux.Handle("/", fs)
	}
}

// ServeHTTP implements the http.Handler interface.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// handleHealth handles GET requests to /api/health.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	uptime := time.Since(s.start)

	response := map[string]interface{}{
		"status": "ok",
		"uptime": uptime.String(),
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		return
	}
}

// ListenAndServe starts the HTTP server on the given address.
func (s *Server) ListenAndServe(addr string) error {
	return http.ListenAndServe(addr, s)
}
