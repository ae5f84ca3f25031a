// Package ticker implements the seamless horizontal logo loop: tiling
// math, offset wrapping and velocity easing. The engine is pure state;
// it draws nothing itself and serves both the visible marquee and the
// hidden strip that feeds the overlay rasterizer.
package ticker

import "math"

// Direction selects which way the track moves.
type Direction int

const (
	DirectionLeft Direction = iota
	DirectionRight
)

const (
	// MinCopies is the floor on the number of tiled copies of the
	// sequence. Two copies are the minimum for a seamless wrap.
	MinCopies = 2
	// Headroom is the number of extra tiles laid out beyond what the
	// container strictly needs, so resize transitions never expose a
	// seam.
	Headroom = 2
	// SpeedTau is the time constant (seconds) of the exponential easing
	// toward the target velocity.
	SpeedTau = 0.25
)

// Entry is one element of the loop: either inline text or an image
// descriptor. Entries are supplied by the caller and never mutated by
// the engine.
type Entry struct {
	Text      string `yaml:"text,omitempty"`
	ImagePath string `yaml:"image,omitempty"`
	Label     string `yaml:"label,omitempty"`
	Href      string `yaml:"href,omitempty"`
	// Intrinsic pixel size for image entries; ignored for text.
	Width  int `yaml:"width,omitempty"`
	Height int `yaml:"height,omitempty"`
}

// Engine scrolls one sequence of entries indefinitely. The track is
// laid out as TileCount copies of the sequence and translated by
// -Offset on the scroll axis; Offset always stays in [0, SequenceWidth)
// once a positive width has been measured.
type Engine struct {
	entries []Entry

	speed     float64 // configured magnitude, may itself be negative
	direction Direction

	containerWidth float64
	sequenceWidth  float64
	tileCount      int

	offset   float64
	velocity float64
}

// NewEngine creates an engine for the given entries. Widths are unknown
// until the first measurement arrives, so the engine starts deferred.
func NewEngine(entries []Entry, speed float64, direction Direction) *Engine {
	return &Engine{
		entries:   entries,
		speed:     speed,
		direction: direction,
		tileCount: MinCopies,
	}
}

// Entries returns the caller-supplied entry list.
func (e *Engine) Entries() []Entry {
	return e.entries
}

// TileCountFor computes how many copies of a sequence of width s are
// needed to cover a container of width c with headroom.
func TileCountFor(c, s float64) int {
	if s <= 0 {
		return MinCopies
	}
	n := int(math.Ceil(c/s)) + Headroom
	if n < MinCopies {
		n = MinCopies
	}
	return n
}

// SetContainerWidth records a size observation of the containing
// surface and recomputes the tiling.
func (e *Engine) SetContainerWidth(w float64) {
	if w < 0 {
		w = 0
	}
	e.containerWidth = w
	e.retile()
}

// SetSequenceWidth records the measured width of one full pass through
// the entries (including inter-entry gaps) and recomputes the tiling.
// The current offset is re-wrapped against the new width.
func (e *Engine) SetSequenceWidth(s float64) {
	if s < 0 {
		s = 0
	}
	e.sequenceWidth = s
	e.retile()
	if s > 0 {
		e.offset = wrap(e.offset, s)
	}
}

func (e *Engine) retile() {
	e.tileCount = TileCountFor(e.containerWidth, e.sequenceWidth)
}

// TargetVelocity is the signed speed in pixels/second. Direction and
// the sign of the configured magnitude compose multiplicatively.
func (e *Engine) TargetVelocity() float64 {
	if e.direction == DirectionRight {
		return -e.speed
	}
	return e.speed
}

// Update advances the scroll by one frame. With no measured sequence
// width the engine defers: nothing moves until layout reports one.
func (e *Engine) Update(dt float64) {
	if dt < 0 {
		dt = 0
	}
	target := e.TargetVelocity()
	e.velocity += (target - e.velocity) * (1 - math.Exp(-dt/SpeedTau))
	if e.sequenceWidth <= 0 {
		return
	}
	e.offset = wrap(e.offset+e.velocity*dt, e.sequenceWidth)
}

// wrap maps x into [0, s) handling negative values.
func wrap(x, s float64) float64 {
	return math.Mod(math.Mod(x, s)+s, s)
}

// Offset returns the current scroll offset in [0, SequenceWidth).
func (e *Engine) Offset() float64 { return e.offset }

// Translation is the visual x-translation applied to the tiled track.
func (e *Engine) Translation() float64 { return -e.offset }

// Velocity returns the current eased velocity in pixels/second.
func (e *Engine) Velocity() float64 { return e.velocity }

// SequenceWidth returns the measured one-pass width, 0 if unmeasured.
func (e *Engine) SequenceWidth() float64 { return e.sequenceWidth }

// TileCount returns the number of sequence copies currently laid out.
func (e *Engine) TileCount() int { return e.tileCount }
