// Package effect applies pixel effects to rectangular regions of a frame.
package effect

import (
	"image"

	"gocv.io/x/gocv"

	"github.com/ayusman/fingerframe/internal/geom"
)

// InvertRegion inverts the colors inside the rectangle, in place: every
// channel value v becomes 255-v, producing a photographic-negative patch.
// The affected rows and columns are [Y1,Y2) x [X1,X2); a degenerate
// rectangle is a no-op. The rectangle is expected to be ordered and clamped
// to the frame already.
func InvertRegion(frame *gocv.Mat, r geom.Rect) {
	if frame == nil || frame.Empty() {
		return
	}
	if r.Width() <= 0 || r.Height() <= 0 {
		return
	}

	region := frame.Region(image.Rect(r.X1, r.Y1, r.X2, r.Y2))
	defer region.Close()

	// A Region view shares pixels with the frame, so this writes through.
	gocv.BitwiseNot(region, &region)
}
