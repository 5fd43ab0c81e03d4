package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/ayusman/fingerframe/internal/hub"
)

// StreamHandler serves the processed frames from the pipeline as MJPEG.
type StreamHandler struct {
	frames *hub.Hub
}

// NewStreamHandler creates a new StreamHandler reading from the given hub.
func NewStreamHandler(frames *hub.Hub) *StreamHandler {
	return &StreamHandler{frames: frames}
}

// ServeHTTP streams MJPEG frames to connected clients. Each client polls
// the hub and only writes when a new frame has been published.
func (h *StreamHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	w.Header().Set("Content-Type", "multipart/x-mixed-replace; boundary=frame")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	var lastSeq uint64

	for {
		select {
		case <-r.Context().Done():
			return
		default:
		}

		frame, seq, ok := h.frames.Frame()
		if !ok || seq == lastSeq {
			time.Sleep(33 * time.Millisecond)
			continue
		}
		lastSeq = seq

		// Write MJPEG frame
		fmt.Fprintf(w, "--frame\r\n")
		fmt.Fprintf(w, "Content-Type: image/jpeg\r\n")
		fmt.Fprintf(w, "Content-Length: %d\r\n\r\n", len(frame))
		if _, err := w.Write(frame); err != nil {
			return
		}
		fmt.Fprintf(w, "\r\n")

		if f, ok := w.(http.Flusher); ok {
			f.Flush()
		}
	}
}
