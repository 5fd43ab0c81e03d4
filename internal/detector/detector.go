package detector

import (
	"gocv.io/x/gocv"

	"github.com/ayusman/fingerframe/internal/geom"
)

// Detector defines the interface for index-fingertip detection
// implementations.
//
// Detect returns the fingertip positions found in the frame, in pixel
// coordinates of that frame, ordered as the underlying model reports them.
// The order carries no cross-frame identity: the first tip of one frame is
// not guaranteed to be the same physical finger as the first tip of the
// previous frame.
type Detector interface {
	// Detect analyzes a video frame and returns zero or more fingertip
	// positions. Returns an empty slice when no hands are detected.
	Detect(frame *gocv.Mat) ([]geom.Point, error)

	// Close releases any resources held by the detector.
	Close() error
}

// Config holds configuration options for fingertip detection.
type Config struct {
	// MaxHands is the maximum number of hands to detect (default: 2).
	MaxHands int

	// ModelComplexity selects the MediaPipe model variant
	// (0 = fast, 1 = balanced, 2 = precise).
	ModelComplexity int

	// MinConfidence is the minimum detection confidence threshold (0.0-1.0).
	MinConfidence float64

	// MinTrackingConf is the minimum tracking confidence threshold (0.0-1.0).
	MinTrackingConf float64
}

// DefaultConfig returns a Config with sensible default values.
func DefaultConfig() Config {
	return Config{
		MaxHands:        2,
		ModelComplexity: 1,
		MinConfidence:   0.6,
		MinTrackingConf: 0.5,
	}
}
