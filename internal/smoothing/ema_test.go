package smoothing

import (
	"errors"
	"testing"

	"github.com/ayusman/fingerframe/internal/geom"
)

func TestNew_AlphaValidation(t *testing.T) {
	tests := []struct {
		name    string
		alpha   float64
		wantErr bool
	}{
		{"below range", -0.01, true},
		{"above range", 1.01, true},
		{"zero boundary", 0.0, false},
		{"one boundary", 1.0, false},
		{"typical", 0.4, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.alpha)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidAlpha) {
					t.Errorf("New(%v) error = %v, want ErrInvalidAlpha", tt.alpha, err)
				}
			} else if err != nil {
				t.Errorf("New(%v) unexpected error: %v", tt.alpha, err)
			}
		})
	}
}

func TestEMA_FirstObservationPassesThrough(t *testing.T) {
	ema, err := New(0.4)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	p := geom.Point{X: 123, Y: 456}
	if got := ema.Update(p); got != p {
		t.Errorf("first Update(%+v) = %+v, want input unchanged", p, got)
	}
}

func TestEMA_BlendsWithPrevious(t *testing.T) {
	ema, err := New(0.4)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	ema.Update(geom.Point{X: 100, Y: 100})
	got := ema.Update(geom.Point{X: 140, Y: 120})

	// 100*0.6 + 140*0.4 = 116, 100*0.6 + 120*0.4 = 108
	want := geom.Point{X: 116, Y: 108}
	if got != want {
		t.Errorf("Update() = %+v, want %+v", got, want)
	}
}

func TestEMA_AlphaZeroFreezesFirstPoint(t *testing.T) {
	ema, err := New(0.0)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	first := geom.Point{X: 50, Y: 60}
	ema.Update(first)

	inputs := []geom.Point{
		{X: 500, Y: 600},
		{X: -100, Y: -200},
		{X: 0, Y: 0},
	}
	for _, p := range inputs {
		if got := ema.Update(p); got != first {
			t.Errorf("Update(%+v) = %+v, want frozen %+v", p, got, first)
		}
	}
}

func TestEMA_AlphaOneTracksRawInput(t *testing.T) {
	ema, err := New(1.0)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	inputs := []geom.Point{
		{X: 10, Y: 20},
		{X: 300, Y: 400},
		{X: 7, Y: 7},
	}
	for _, p := range inputs {
		if got := ema.Update(p); got != p {
			t.Errorf("Update(%+v) = %+v, want raw input", p, got)
		}
	}
}

func TestEMA_ConvergesToConstantInput(t *testing.T) {
	ema, err := New(0.4)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	// Initialize away from the target, then feed the target repeatedly.
	ema.Update(geom.Point{X: 200, Y: 200})
	target := geom.Point{X: 100, Y: 100}

	prev := geom.Point{X: 200, Y: 200}
	reached := false
	for i := 0; i < 50; i++ {
		got := ema.Update(target)
		if got.X > prev.X || got.Y > prev.Y {
			t.Fatalf("step %d: output %+v moved away from target (prev %+v)", i, got, prev)
		}
		if got == target {
			reached = true
			break
		}
		if got == prev {
			t.Fatalf("step %d: output stalled at %+v before reaching %+v", i, got, target)
		}
		prev = got
	}

	if !reached {
		t.Errorf("output never reached %+v, last %+v", target, prev)
	}
}

func TestEMA_Reset(t *testing.T) {
	ema, err := New(0.4)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	ema.Update(geom.Point{X: 100, Y: 100})
	ema.Update(geom.Point{X: 200, Y: 200})
	ema.Reset()

	// After a reset the next observation passes through like the first.
	p := geom.Point{X: 5, Y: 5}
	if got := ema.Update(p); got != p {
		t.Errorf("Update after Reset = %+v, want %+v", got, p)
	}
}
