package app

import (
	"errors"
	"path/filepath"
	"testing"

	"gocv.io/x/gocv"

	"github.com/ayusman/fingerframe/internal/detector"
	"github.com/ayusman/fingerframe/internal/geom"
	"github.com/ayusman/fingerframe/internal/smoothing"
	"github.com/ayusman/fingerframe/internal/store"
)

func testConfig() Config {
	return Config{
		CameraID:    0,
		SmoothAlpha: 0.4,
		MinRectSize: 3,
		Mirror:      true,
		DrawTips:    true,
	}
}

func TestNew_InvalidConfig(t *testing.T) {
	cfg := testConfig()
	cfg.SmoothAlpha = 1.5

	if _, err := New(cfg); !errors.Is(err, smoothing.ErrInvalidAlpha) {
		t.Errorf("New() error = %v, want ErrInvalidAlpha", err)
	}
}

func TestApp_EnableToggle(t *testing.T) {
	a, err := New(testConfig())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if !a.IsEnabled() {
		t.Error("app should start enabled")
	}
	a.SetEnabled(false)
	if a.IsEnabled() {
		t.Error("SetEnabled(false) did not take")
	}
}

func TestApp_ProcessFrame_TrackingSequence(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	a, err := New(testConfig())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	mock := detector.NewMockDetector()
	mock.SetSequence([][]geom.Point{
		{{X: 100, Y: 100}, {X: 200, Y: 200}},
		{{X: 140, Y: 100}, {X: 200, Y: 160}},
		nil,
	})
	a.SetDetector(mock)

	frame := gocv.NewMatWithSize(480, 640, gocv.MatTypeCV8UC3)
	defer frame.Close()
	frame.SetTo(gocv.NewScalar(10, 10, 10, 0))

	// Frame 1: smoothers pass raw points through.
	res := a.processFrame(&frame, true)
	if !res.hasRect {
		t.Fatal("frame 1: expected a rectangle")
	}
	want := geom.Rect{X1: 100, Y1: 100, X2: 200, Y2: 200}
	if res.rect != want {
		t.Errorf("frame 1: rect = %+v, want %+v", res.rect, want)
	}

	// The effect must have run inside the rectangle.
	inside := frame.GetVecbAt(150, 150)
	if inside[0] != 245 {
		t.Errorf("frame 1: pixel inside rect = %v, want inverted 245", inside[0])
	}

	// Frame 2: corners move, smoothing pulls them partway.
	res = a.processFrame(&frame, true)
	want = geom.Rect{X1: 116, Y1: 100, X2: 200, Y2: 184}
	if res.rect != want {
		t.Errorf("frame 2: rect = %+v, want %+v", res.rect, want)
	}

	// Frame 3: detection dropout, the rectangle persists.
	res = a.processFrame(&frame, true)
	if !res.hasRect || res.rect != want {
		t.Errorf("frame 3: rect = %+v hasRect = %v, want held %+v", res.rect, res.hasRect, want)
	}
	if len(res.tips) != 0 {
		t.Errorf("frame 3: tips = %v, want none", res.tips)
	}
}

func TestApp_ProcessFrame_IdleSkipsDetection(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	a, err := New(testConfig())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	mock := detector.NewMockDetector()
	mock.SetTips([]geom.Point{{X: 100, Y: 100}, {X: 200, Y: 200}})
	a.SetDetector(mock)

	frame := gocv.NewMatWithSize(480, 640, gocv.MatTypeCV8UC3)
	defer frame.Close()

	held := a.processFrame(&frame, true)
	if !held.hasRect {
		t.Fatal("expected a rectangle while active")
	}

	// Idle frames never consult the detector, but the rectangle holds.
	mock.SetTips([]geom.Point{{X: 400, Y: 400}, {X: 500, Y: 500}})
	res := a.processFrame(&frame, false)
	if len(res.tips) != 0 {
		t.Errorf("idle frame consulted the detector: tips = %v", res.tips)
	}
	if !res.hasRect || res.rect != held.rect {
		t.Errorf("idle frame rect = %+v, want held %+v", res.rect, held.rect)
	}
}

func TestApp_Reset(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	a, err := New(testConfig())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	mock := detector.NewMockDetector()
	mock.SetTips([]geom.Point{{X: 100, Y: 100}, {X: 200, Y: 200}})
	a.SetDetector(mock)

	frame := gocv.NewMatWithSize(480, 640, gocv.MatTypeCV8UC3)
	defer frame.Close()

	a.processFrame(&frame, true)
	a.Reset()

	mock.SetTips(nil)
	res := a.processFrame(&frame, true)
	if res.hasRect {
		t.Errorf("rect survived Reset: %+v", res.rect)
	}
}

func TestApp_PublishFeedsHub(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	a, err := New(testConfig())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	frame := gocv.NewMatWithSize(480, 640, gocv.MatTypeCV8UC3)
	defer frame.Close()

	rect := geom.Rect{X1: 10, Y1: 10, X2: 50, Y2: 50}
	a.publish(&frame, frameResult{rect: rect, hasRect: true})

	jpeg, _, ok := a.Frames().Frame()
	if !ok || len(jpeg) == 0 {
		t.Fatal("hub has no frame after publish")
	}

	state := a.Frames().State()
	if state.Rect == nil || *state.Rect != rect {
		t.Errorf("hub state rect = %v, want %+v", state.Rect, rect)
	}
}

func TestApp_SaveSnapshot(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	tmpDir := t.TempDir()
	st, err := store.New(filepath.Join(tmpDir, "test.db"))
	if err != nil {
		t.Fatalf("store.New() error = %v", err)
	}
	defer st.Close()

	cfg := testConfig()
	cfg.Store = st
	cfg.SnapshotDir = filepath.Join(tmpDir, "snaps")

	a, err := New(cfg)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	frame := gocv.NewMatWithSize(480, 640, gocv.MatTypeCV8UC3)
	defer frame.Close()

	rect := geom.Rect{X1: 10, Y1: 20, X2: 100, Y2: 200}
	id, err := a.SaveSnapshot(&frame, rect, true)
	if err != nil {
		t.Fatalf("SaveSnapshot() error = %v", err)
	}

	snap, err := st.Snapshots().Get(id)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if snap.Rect != rect {
		t.Errorf("stored rect = %+v, want %+v", snap.Rect, rect)
	}
}
