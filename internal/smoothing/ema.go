// Package smoothing implements the temporal point filter that stabilizes raw
// fingertip detections. Each tracked slot gets its own exponential moving
// average so that a jittery detector still produces fingertip positions with
// bounded frame-to-frame displacement.
package smoothing

import (
	"errors"

	"github.com/ayusman/fingerframe/internal/geom"
)

// ErrInvalidAlpha is returned when the smoothing factor is outside [0, 1].
var ErrInvalidAlpha = errors.New("smoothing factor must be in [0, 1]")

// EMA is an exponential-moving-average filter over a single 2D point.
//
// Alpha weights the newest observation: near 0 the output carries heavy
// inertia and follows new observations slowly, near 1 smoothing is
// negligible and the output tracks the raw input.
type EMA struct {
	alpha       float64
	prev        geom.Point
	initialized bool
}

// New creates an EMA filter with the given smoothing factor.
// The factor is fixed for the filter's lifetime.
func New(alpha float64) (*EMA, error) {
	if alpha < 0.0 || alpha > 1.0 {
		return nil, ErrInvalidAlpha
	}
	return &EMA{alpha: alpha}, nil
}

// Update feeds a new raw observation through the filter and returns the
// smoothed point. The first observation after construction or Reset passes
// through unchanged and becomes the filter state. Subsequent observations
// blend with the previous output per axis:
//
//	smoothed = prev*(1-alpha) + observed*alpha
//
// The blend is truncated toward zero when converted back to integer pixels.
func (e *EMA) Update(p geom.Point) geom.Point {
	if !e.initialized {
		e.prev = p
		e.initialized = true
		return p
	}

	sx := int(float64(e.prev.X)*(1.0-e.alpha) + float64(p.X)*e.alpha)
	sy := int(float64(e.prev.Y)*(1.0-e.alpha) + float64(p.Y)*e.alpha)

	e.prev = geom.Point{X: sx, Y: sy}
	return e.prev
}

// Reset discards the remembered point. The next Update behaves like the
// first observation again.
func (e *EMA) Reset() {
	e.prev = geom.Point{}
	e.initialized = false
}

// Alpha returns the smoothing factor the filter was built with.
func (e *EMA) Alpha() float64 {
	return e.alpha
}
