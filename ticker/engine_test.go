package ticker

import (
	"math"
	"math/rand"
	"testing"
)

func TestTileCountFor(t *testing.T) {
	tests := []struct {
		name string
		c, s float64
		want int
	}{
		{"spec scenario 4x40px 10px gaps", 500, 200, 5},
		{"container narrower than sequence", 100, 200, 3},
		{"zero container", 0, 200, 2},
		{"exact multiple", 400, 200, 4},
		{"unmeasured sequence", 500, 0, 2},
		{"tiny sequence", 500, 1, 502},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TileCountFor(tt.c, tt.s); got != tt.want {
				t.Errorf("TileCountFor(%v, %v) = %d, want %d", tt.c, tt.s, got, tt.want)
			}
		})
	}
}

func TestTileCoverageInvariant(t *testing.T) {
	// k >= 2 and k*S >= C+S for arbitrary widths.
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 2000; i++ {
		s := rng.Float64()*990 + 10
		c := rng.Float64() * 4000
		k := TileCountFor(c, s)
		if k < 2 {
			t.Fatalf("k = %d < 2 for C=%v S=%v", k, c, s)
		}
		if float64(k)*s < c+s {
			t.Fatalf("coverage violated: k=%d S=%v C=%v (k*S=%v < C+S=%v)",
				k, s, c, float64(k)*s, c+s)
		}
	}
}

func TestOffsetWrapInvariant(t *testing.T) {
	for _, dir := range []Direction{DirectionLeft, DirectionRight} {
		e := NewEngine(nil, 120, dir)
		e.SetContainerWidth(800)
		e.SetSequenceWidth(200)
		for i := 0; i < 10000; i++ {
			e.Update(0.016)
			if o := e.Offset(); o < 0 || o >= 200 {
				t.Fatalf("dir=%v step=%d offset out of range: %v", dir, i, o)
			}
		}
	}
}

func TestVelocityConverges(t *testing.T) {
	e := NewEngine(nil, 100, DirectionLeft)
	e.SetSequenceWidth(300)
	// 5 tau = 1.25s of 60fps updates.
	for i := 0; i < 79; i++ {
		e.Update(1.0 / 60.0)
	}
	if diff := math.Abs(e.Velocity() - e.TargetVelocity()); diff > 1.0 {
		t.Fatalf("velocity %v not within 1%% of target %v after 5 tau",
			e.Velocity(), e.TargetVelocity())
	}
}

func TestTargetVelocitySignComposition(t *testing.T) {
	tests := []struct {
		name  string
		speed float64
		dir   Direction
		want  float64
	}{
		{"left positive", 120, DirectionLeft, 120},
		{"right positive", 120, DirectionRight, -120},
		{"left negative magnitude", -120, DirectionLeft, -120},
		{"right negative magnitude", -120, DirectionRight, 120},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := NewEngine(nil, tt.speed, tt.dir)
			if got := e.TargetVelocity(); got != tt.want {
				t.Errorf("TargetVelocity() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDegenerateSequenceDefers(t *testing.T) {
	e := NewEngine(nil, 100, DirectionLeft)
	e.SetContainerWidth(500)
	for i := 0; i < 100; i++ {
		e.Update(0.016)
	}
	if e.Offset() != 0 {
		t.Fatalf("engine moved with no measured content: offset %v", e.Offset())
	}
	if e.Translation() != 0 {
		t.Fatalf("translation %v, want 0 while deferred", e.Translation())
	}

	// A positive measurement unblocks scrolling.
	e.SetSequenceWidth(200)
	e.Update(0.1)
	if e.Offset() == 0 {
		t.Fatal("engine still deferred after positive measurement")
	}
}

func TestNegativeVelocityWraps(t *testing.T) {
	e := NewEngine(nil, 5000, DirectionRight)
	e.SetSequenceWidth(100)
	// Large negative steps must still land inside [0, S).
	for i := 0; i < 200; i++ {
		e.Update(0.05)
		if o := e.Offset(); o < 0 || o >= 100 {
			t.Fatalf("offset %v escaped [0, 100)", o)
		}
	}
}

func TestSequenceRemeasureRewraps(t *testing.T) {
	e := NewEngine(nil, 100, DirectionLeft)
	e.SetSequenceWidth(500)
	for i := 0; i < 120; i++ {
		e.Update(0.05)
	}
	e.SetSequenceWidth(40)
	if o := e.Offset(); o < 0 || o >= 40 {
		t.Fatalf("offset %v not re-wrapped into new sequence width", o)
	}
}
