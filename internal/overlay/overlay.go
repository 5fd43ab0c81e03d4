// Package overlay draws the on-screen feedback layer: fingertip markers,
// the selection rectangle and the HUD. All GoCV drawing calls live here so
// the pipeline stays free of rendering details.
package overlay

import (
	"fmt"
	"image"
	"image/color"

	"gocv.io/x/gocv"

	"github.com/ayusman/fingerframe/internal/geom"
)

// Drawing colors. GoCV takes RGBA and converts to OpenCV's BGR internally.
var (
	colorTipRing   = color.RGBA{R: 255, G: 255, B: 255}
	colorTipCenter = color.RGBA{R: 255, G: 255, B: 0}
	colorRect      = color.RGBA{R: 255, G: 200, B: 0}
	colorHUD       = color.RGBA{R: 255, G: 220, B: 180}
	colorFPS       = color.RGBA{R: 120, G: 255, B: 120}
)

// Drawer renders overlay elements onto video frames.
type Drawer struct{}

// NewDrawer creates a Drawer.
func NewDrawer() *Drawer {
	return &Drawer{}
}

// DrawTips marks each detected fingertip with a white ring around a filled
// yellow center, visible against any background.
func (d *Drawer) DrawTips(frame *gocv.Mat, tips []geom.Point) {
	for _, p := range tips {
		center := image.Point{X: p.X, Y: p.Y}
		gocv.Circle(frame, center, 8, colorTipRing, 2)
		gocv.Circle(frame, center, 4, colorTipCenter, -1)
	}
}

// DrawRect outlines the selection rectangle and marks its two defining
// corners with filled dots.
func (d *Drawer) DrawRect(frame *gocv.Mat, r geom.Rect) {
	gocv.Rectangle(frame, image.Rect(r.X1, r.Y1, r.X2, r.Y2), colorRect, 2)
	gocv.Circle(frame, image.Point{X: r.X1, Y: r.Y1}, 6, colorRect, -1)
	gocv.Circle(frame, image.Point{X: r.X2, Y: r.Y2}, 6, colorRect, -1)
}

// HUD writes the instruction line at the top of the frame and the key help
// at the bottom.
func (d *Drawer) HUD(frame *gocv.Mat, msgTop, msgBottom string) {
	h := frame.Rows()
	gocv.PutText(frame, msgTop, image.Point{X: 10, Y: 24},
		gocv.FontHersheySimplex, 0.6, colorHUD, 2)
	gocv.PutText(frame, msgBottom, image.Point{X: 10, Y: h - 12},
		gocv.FontHersheySimplex, 0.6, colorHUD, 2)
}

// FPS writes the smoothed frames-per-second estimate below the HUD line.
func (d *Drawer) FPS(frame *gocv.Mat, fps float64) {
	gocv.PutText(frame, fmt.Sprintf("%.1f FPS", fps), image.Point{X: 10, Y: 48},
		gocv.FontHersheySimplex, 0.6, colorFPS, 2)
}
