package timing

import "testing"

func TestLoadAnimatorRamp(t *testing.T) {
	a := NewLoadAnimator(true)

	if got := a.Progress(10.0); got != 0 {
		t.Fatalf("first observation = %v, want 0", got)
	}
	if got := a.Progress(11.0); got != 0.5 {
		t.Fatalf("midpoint = %v, want 0.5", got)
	}
	if got := a.Progress(12.0); got != 1 {
		t.Fatalf("end = %v, want 1", got)
	}
	if !a.Done() {
		t.Fatal("animator should be complete after full duration")
	}
	// Terminal: stays at 1 even for earlier timestamps.
	if got := a.Progress(10.5); got != 1 {
		t.Fatalf("post-complete = %v, want 1", got)
	}
}

func TestLoadAnimatorMonotone(t *testing.T) {
	a := NewLoadAnimator(true)
	prev := a.Progress(0)
	for now := 0.0; now < 3.0; now += 0.05 {
		p := a.Progress(now)
		if p < prev {
			t.Fatalf("progress decreased: %v -> %v at t=%v", prev, p, now)
		}
		if p < 0 || p > 1 {
			t.Fatalf("progress out of range: %v", p)
		}
		prev = p
	}
	if prev != 1 {
		t.Fatalf("progress after duration = %v, want 1", prev)
	}
}

func TestLoadAnimatorDisabled(t *testing.T) {
	a := NewLoadAnimator(false)
	for _, now := range []float64{0, 0.1, 5} {
		if got := a.Progress(now); got != 1 {
			t.Fatalf("disabled animator Progress(%v) = %v, want 1", now, got)
		}
	}
	if !a.Done() {
		t.Fatal("disabled animator should report done")
	}
}
