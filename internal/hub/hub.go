// Package hub holds the latest processed frame and tracking state so the
// HTTP server can serve them without touching the camera. The pipeline is
// the only writer; stream and websocket handlers are readers.
package hub

import (
	"sync"
	"time"

	"github.com/ayusman/fingerframe/internal/geom"
)

// State is one frame's worth of tracking output.
type State struct {
	Tips      []geom.Point `json:"tips"`
	Rect      *geom.Rect   `json:"rect,omitempty"`
	FPS       float64      `json:"fps"`
	Timestamp int64        `json:"timestamp"`
}

// Hub is a single-slot buffer for the most recent frame and state.
type Hub struct {
	mu    sync.RWMutex
	jpeg  []byte
	state State
	seq   uint64
}

// New creates an empty Hub.
func New() *Hub {
	return &Hub{}
}

// Publish stores the encoded frame and its tracking state, replacing the
// previous one. The jpeg slice is copied; callers may reuse their buffer.
func (h *Hub) Publish(jpeg []byte, state State) {
	frame := make([]byte, len(jpeg))
	copy(frame, jpeg)

	state.Timestamp = time.Now().UnixMilli()

	h.mu.Lock()
	h.jpeg = frame
	h.state = state
	h.seq++
	h.mu.Unlock()
}

// Frame returns the most recent encoded frame and a sequence number that
// increments on every Publish. Returns false before the first Publish.
func (h *Hub) Frame() ([]byte, uint64, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if h.jpeg == nil {
		return nil, 0, false
	}
	return h.jpeg, h.seq, true
}

// State returns the most recent tracking state.
func (h *Hub) State() State {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.state
}
