package hub

import (
	"testing"

	"github.com/ayusman/fingerframe/internal/geom"
)

func TestHub_EmptyBeforePublish(t *testing.T) {
	h := New()

	if _, _, ok := h.Frame(); ok {
		t.Error("Frame() should report no frame before the first Publish")
	}
}

func TestHub_PublishAndRead(t *testing.T) {
	h := New()

	rect := geom.Rect{X1: 10, Y1: 10, X2: 100, Y2: 100}
	h.Publish([]byte{0xff, 0xd8}, State{
		Tips: []geom.Point{{X: 1, Y: 2}},
		Rect: &rect,
		FPS:  14.5,
	})

	frame, seq, ok := h.Frame()
	if !ok {
		t.Fatal("Frame() reported no frame after Publish")
	}
	if len(frame) != 2 || seq != 1 {
		t.Errorf("Frame() = %d bytes, seq %d; want 2 bytes, seq 1", len(frame), seq)
	}

	state := h.State()
	if state.Rect == nil || *state.Rect != rect {
		t.Errorf("State().Rect = %v, want %+v", state.Rect, rect)
	}
	if state.Timestamp == 0 {
		t.Error("Publish did not stamp the state")
	}
}

func TestHub_PublishCopiesBuffer(t *testing.T) {
	h := New()

	buf := []byte{1, 2, 3}
	h.Publish(buf, State{})
	buf[0] = 99

	frame, _, _ := h.Frame()
	if frame[0] != 1 {
		t.Error("Publish shares the caller's buffer instead of copying")
	}
}

func TestHub_SequenceAdvances(t *testing.T) {
	h := New()

	h.Publish([]byte{1}, State{})
	_, seq1, _ := h.Frame()
	h.Publish([]byte{2}, State{})
	_, seq2, _ := h.Frame()

	if seq2 <= seq1 {
		t.Errorf("sequence did not advance: %d then %d", seq1, seq2)
	}
}
