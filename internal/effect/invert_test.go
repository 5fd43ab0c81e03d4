package effect

import (
	"testing"

	"gocv.io/x/gocv"

	"github.com/ayusman/fingerframe/internal/geom"
)

func TestInvertRegion(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping test that requires GoCV Mat creation")
	}

	frame := gocv.NewMatWithSize(480, 640, gocv.MatTypeCV8UC3)
	defer frame.Close()
	frame.SetTo(gocv.NewScalar(10, 128, 255, 0))

	InvertRegion(&frame, geom.Rect{X1: 100, Y1: 100, X2: 200, Y2: 200})

	// Inside the region: 255 - v per channel.
	inside := frame.GetVecbAt(150, 150)
	if inside[0] != 245 || inside[1] != 127 || inside[2] != 0 {
		t.Errorf("inside pixel = %v, want [245 127 0]", inside)
	}

	// On the region border, rows/cols X2 and Y2 are excluded.
	atEdge := frame.GetVecbAt(150, 200)
	if atEdge[0] != 10 || atEdge[1] != 128 || atEdge[2] != 255 {
		t.Errorf("pixel at excluded column = %v, want untouched [10 128 255]", atEdge)
	}

	// Outside stays untouched.
	outside := frame.GetVecbAt(50, 50)
	if outside[0] != 10 || outside[1] != 128 || outside[2] != 255 {
		t.Errorf("outside pixel = %v, want untouched [10 128 255]", outside)
	}
}

func TestInvertRegion_Involution(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping test that requires GoCV Mat creation")
	}

	frame := gocv.NewMatWithSize(480, 640, gocv.MatTypeCV8UC3)
	defer frame.Close()
	frame.SetTo(gocv.NewScalar(10, 128, 255, 0))

	r := geom.Rect{X1: 0, Y1: 0, X2: 639, Y2: 479}
	InvertRegion(&frame, r)
	InvertRegion(&frame, r)

	// Inverting twice restores the original values.
	px := frame.GetVecbAt(240, 320)
	if px[0] != 10 || px[1] != 128 || px[2] != 255 {
		t.Errorf("double inversion pixel = %v, want [10 128 255]", px)
	}
}

func TestInvertRegion_DegenerateRect(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping test that requires GoCV Mat creation")
	}

	frame := gocv.NewMatWithSize(480, 640, gocv.MatTypeCV8UC3)
	defer frame.Close()
	frame.SetTo(gocv.NewScalar(10, 128, 255, 0))

	// Zero-area rectangles must not touch the frame or panic.
	InvertRegion(&frame, geom.Rect{X1: 100, Y1: 100, X2: 100, Y2: 200})
	InvertRegion(&frame, geom.Rect{X1: 100, Y1: 100, X2: 200, Y2: 100})

	px := frame.GetVecbAt(150, 150)
	if px[0] != 10 || px[1] != 128 || px[2] != 255 {
		t.Errorf("pixel = %v, want untouched [10 128 255]", px)
	}
}
