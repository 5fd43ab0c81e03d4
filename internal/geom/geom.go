// Package geom provides the 2D primitives shared across the FingerFrame
// pipeline: integer pixel points and rectangles defined by two opposite
// corners.
package geom

// Point is an integer 2D coordinate in image pixel space.
type Point struct {
	X int
	Y int
}

// Rect is a rectangle given by two opposite corners (X1,Y1) and (X2,Y2).
// No corner order is enforced at construction: the two corners come straight
// from the detector and may arrive in any relative position. Ordered, Clamp
// and Valid establish the invariants on demand.
type Rect struct {
	X1 int
	Y1 int
	X2 int
	Y2 int
}

// NewRect builds a rectangle spanning two opposite corner points.
func NewRect(a, b Point) Rect {
	return Rect{X1: a.X, Y1: a.Y, X2: b.X, Y2: b.Y}
}

// Ordered returns a rectangle with X1 <= X2 and Y1 <= Y2, sorting the x-pair
// and the y-pair independently.
func (r Rect) Ordered() Rect {
	x1, x2 := r.X1, r.X2
	if x1 > x2 {
		x1, x2 = x2, x1
	}
	y1, y2 := r.Y1, r.Y2
	if y1 > y2 {
		y1, y2 = y2, y1
	}
	return Rect{X1: x1, Y1: y1, X2: x2, Y2: y2}
}

// Clamp restricts each coordinate to [0, w-1] on the x axis and [0, h-1] on
// the y axis, then re-orders. Re-ordering matters only for degenerate
// zero-size frames, where clamping can invert a previously ordered pair.
func (r Rect) Clamp(w, h int) Rect {
	c := Rect{
		X1: clampInt(r.X1, 0, w-1),
		Y1: clampInt(r.Y1, 0, h-1),
		X2: clampInt(r.X2, 0, w-1),
		Y2: clampInt(r.Y2, 0, h-1),
	}
	return c.Ordered()
}

// Valid reports whether the rectangle is at least minSize pixels wide and
// tall. Anything smaller is treated as detection noise.
func (r Rect) Valid(minSize int) bool {
	return (r.X2-r.X1) >= minSize && (r.Y2-r.Y1) >= minSize
}

// Width returns the horizontal extent X2-X1.
func (r Rect) Width() int {
	return r.X2 - r.X1
}

// Height returns the vertical extent Y2-Y1.
func (r Rect) Height() int {
	return r.Y2 - r.Y1
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
