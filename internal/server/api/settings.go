package api

import (
	"encoding/json"
	"net/http"

	"github.com/ayusman/fingerframe/internal/store"
)

// SettingsHandler handles HTTP requests for the application settings.
type SettingsHandler struct {
	store *store.Store
}

// NewSettingsHandler creates a new SettingsHandler with the given store.
func NewSettingsHandler(s *store.Store) *SettingsHandler {
	return &SettingsHandler{store: s}
}

type settingsPayload struct {
	SmoothAlpha float64 `json:"smooth_alpha"`
	MinRectSize int     `json:"min_rect_size"`
	CameraID    int     `json:"camera_id"`
	Mirror      bool    `json:"mirror"`
}

// ServeHTTP implements the http.Handler interface.
func (h *SettingsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.get(w, r)
	case http.MethodPut:
		h.put(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// get handles GET /api/settings.
func (h *SettingsHandler) get(w http.ResponseWriter, r *http.Request) {
	settings, err := h.store.Settings().Load()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load settings")
		return
	}

	writeJSON(w, http.StatusOK, settingsPayload{
		SmoothAlpha: settings.SmoothAlpha,
		MinRectSize: settings.MinRectSize,
		CameraID:    settings.CameraID,
		Mirror:      settings.Mirror,
	})
}

// put handles PUT /api/settings. New settings take effect on the next
// application start.
func (h *SettingsHandler) put(w http.ResponseWriter, r *http.Request) {
	var req settingsPayload
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.SmoothAlpha < 0.0 || req.SmoothAlpha > 1.0 {
		writeError(w, http.StatusBadRequest, "smooth_alpha must be in [0, 1]")
		return
	}
	if req.MinRectSize < 0 {
		writeError(w, http.StatusBadRequest, "min_rect_size must be >= 0")
		return
	}

	settings := store.Settings{
		SmoothAlpha: req.SmoothAlpha,
		MinRectSize: req.MinRectSize,
		CameraID:    req.CameraID,
		Mirror:      req.Mirror,
	}
	if err := h.store.Settings().Save(settings); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save settings")
		return
	}

	writeJSON(w, http.StatusOK, req)
}
