package pointer

import (
	"math"
	"testing"
)

func TestTrackerConvergesWithoutOvershoot(t *testing.T) {
	tr := NewTracker(true)
	tr.SetRaw(1.0, 0.0)

	prevX := 0.5
	for i := 0; i < 500; i++ {
		x, y := tr.Smooth()
		if x > 1.0 || y < 0.0 {
			t.Fatalf("overshoot at step %d: (%v, %v)", i, x, y)
		}
		if x < prevX {
			t.Fatalf("x moved away from target at step %d: %v -> %v", i, prevX, x)
		}
		prevX = x
	}
	x, y := tr.Smoothed()
	if math.Abs(x-1.0) > 1e-3 || math.Abs(y-0.0) > 1e-3 {
		t.Fatalf("did not converge: (%v, %v)", x, y)
	}
}

func TestTrackerSingleStep(t *testing.T) {
	tr := NewTracker(true)
	tr.SetRaw(1.0, 0.5)
	x, _ := tr.Smooth()
	want := 0.5 + (1.0-0.5)*DampingFactor
	if math.Abs(x-want) > 1e-12 {
		t.Fatalf("one smoothing step = %v, want %v", x, want)
	}
}

func TestTrackerDisabledIsInert(t *testing.T) {
	tr := NewTracker(false)
	tr.SetRaw(0.9, 0.1)
	for i := 0; i < 10; i++ {
		tr.Smooth()
	}
	x, y := tr.Smoothed()
	if x != 0.5 || y != 0.5 {
		t.Fatalf("disabled tracker moved: (%v, %v)", x, y)
	}
}
