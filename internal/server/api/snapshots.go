// Package api provides HTTP API handlers for the FingerFrame application.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/ayusman/fingerframe/internal/store"
)

// SnapshotHandler handles HTTP requests for snapshot resources.
type SnapshotHandler struct {
	store *store.Store
}

// NewSnapshotHandler creates a new SnapshotHandler with the given store.
func NewSnapshotHandler(s *store.Store) *SnapshotHandler {
	return &SnapshotHandler{store: s}
}

// ServeHTTP implements the http.Handler interface and routes requests to
// appropriate methods.
func (h *SnapshotHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	// Expected paths: /api/snapshots or /api/snapshots/{id}
	path := strings.TrimPrefix(r.URL.Path, "/api/snapshots")
	path = strings.TrimPrefix(path, "/")

	if path == "" {
		// Collection endpoint: /api/snapshots
		switch r.Method {
		case http.MethodGet:
			h.list(w, r)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
		return
	}

	// Item endpoint: /api/snapshots/{id}
	id := path
	switch r.Method {
	case http.MethodGet:
		h.get(w, r, id)
	case http.MethodDelete:
		h.delete(w, r, id)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

type rectResponse struct {
	X1 int `json:"x1"`
	Y1 int `json:"y1"`
	X2 int `json:"x2"`
	Y2 int `json:"y2"`
}

type snapshotResponse struct {
	ID        string       `json:"id"`
	Path      string       `json:"path"`
	Rect      rectResponse `json:"rect"`
	CreatedAt string       `json:"created_at"`
}

type listSnapshotsResponse struct {
	Snapshots []snapshotResponse `json:"snapshots"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// toResponse converts a store.Snapshot to a snapshotResponse.
func toResponse(s *store.Snapshot) snapshotResponse {
	return snapshotResponse{
		ID:   s.ID,
		Path: s.Path,
		Rect: rectResponse{
			X1: s.Rect.X1,
			Y1: s.Rect.Y1,
			X2: s.Rect.X2,
			Y2: s.Rect.Y2,
		},
		CreatedAt: s.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// list handles GET /api/snapshots and returns all snapshots.
func (h *SnapshotHandler) list(w http.ResponseWriter, r *http.Request) {
	snapshots, err := h.store.Snapshots().List()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list snapshots")
		return
	}

	response := listSnapshotsResponse{
		Snapshots: make([]snapshotResponse, 0, len(snapshots)),
	}
	for i := range snapshots {
		response.Snapshots = append(response.Snapshots, toResponse(&snapshots[i]))
	}

	writeJSON(w, http.StatusOK, response)
}

// get handles GET /api/snapshots/{id} and returns a single snapshot.
func (h *SnapshotHandler) get(w http.ResponseWriter, r *http.Request, id string) {
	snapshot, err := h.store.Snapshots().Get(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Snapshot not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to get snapshot")
		return
	}

	writeJSON(w, http.StatusOK, toResponse(snapshot))
}

// delete handles DELETE /api/snapshots/{id} and removes a snapshot record.
func (h *SnapshotHandler) delete(w http.ResponseWriter, r *http.Request, id string) {
	if err := h.store.Snapshots().Delete(id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Snapshot not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to delete snapshot")
		return
	}

	writeJSON(w, http.StatusNoContent, nil)
}
