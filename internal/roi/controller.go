// Package roi derives a stable region of interest from the per-frame
// fingertip observations. The controller smooths the two tracked fingertips
// independently, spans a rectangle between them and holds on to the last
// accepted rectangle across detection dropouts so the effect does not
// flicker off when a hand briefly leaves the frame.
package roi

import (
	"errors"

	"github.com/ayusman/fingerframe/internal/geom"
	"github.com/ayusman/fingerframe/internal/smoothing"
)

// ErrInvalidMinSize is returned when the minimum rectangle size is negative.
var ErrInvalidMinSize = errors.New("minimum rectangle size must be >= 0")

// Controller turns raw fingertip observations into a clamped, validated
// rectangle. It owns one smoother per tracked slot.
//
// Routing is positional: slot 0 always receives whichever point comes first
// in the detector's output for that frame, even if the detector reordered
// its output between frames. A reorder causes a brief corner swap that the
// smoothers converge out of within a few frames; it is not treated as an
// error.
//
// A Controller is not safe for concurrent use. One Update call per frame,
// strictly sequential.
type Controller struct {
	minSize  int
	slot0    *smoothing.EMA
	slot1    *smoothing.EMA
	lastRect geom.Rect
	hasRect  bool
}

// NewController builds a controller with the given smoothing factor and
// minimum accepted rectangle dimension. The factor is validated by the
// smoothers; minSize must be non-negative.
func NewController(alpha float64, minSize int) (*Controller, error) {
	if minSize < 0 {
		return nil, ErrInvalidMinSize
	}

	slot0, err := smoothing.New(alpha)
	if err != nil {
		return nil, err
	}
	slot1, err := smoothing.New(alpha)
	if err != nil {
		return nil, err
	}

	return &Controller{
		minSize: minSize,
		slot0:   slot0,
		slot1:   slot1,
	}, nil
}

// Update consumes this frame's observed fingertips and the frame dimensions
// and returns the current rectangle, if any.
//
// With at least two observed points, the first two are smoothed through
// their slots, spanned into a rectangle, ordered, clamped to
// [0,w-1]x[0,h-1] and checked against the minimum size. A rectangle that
// passes replaces the retained one. Fewer than two points, or a rectangle
// that fails validation, leaves the retained rectangle untouched.
//
// The second return value is false until a rectangle has been accepted
// since construction or the last Reset.
func (c *Controller) Update(tips []geom.Point, w, h int) (geom.Rect, bool) {
	if len(tips) >= 2 {
		p0 := c.slot0.Update(tips[0])
		p1 := c.slot1.Update(tips[1])

		rect := geom.NewRect(p0, p1).Ordered().Clamp(w, h)
		if rect.Valid(c.minSize) {
			c.lastRect = rect
			c.hasRect = true
		}
	}

	return c.lastRect, c.hasRect
}

// Reset returns the controller to its initial state: both smoothers cleared
// and no retained rectangle. Bound to the user's reset key in the app.
func (c *Controller) Reset() {
	c.slot0.Reset()
	c.slot1.Reset()
	c.lastRect = geom.Rect{}
	c.hasRect = false
}

// MinSize returns the minimum accepted rectangle dimension.
func (c *Controller) MinSize() int {
	return c.minSize
}
