// Package timing holds the per-frame time state of the effect: the
// simulated animation clock and the one-shot page-load ramp.
package timing

import "math/rand"

// Clock accumulates simulated time from wall-clock deltas. While paused
// it keeps reporting the value frozen at the moment of the pause, so a
// resume continues smoothly instead of jumping over the paused span.
type Clock struct {
	elapsed float64
	frozen  float64
}

// NewClock returns a clock seeded with a random start phase so that
// multiple concurrent surfaces visually desynchronize.
func NewClock() *Clock {
	phase := rand.Float64() * 100.0
	return &Clock{elapsed: phase, frozen: phase}
}

// Advance feeds one wall-clock delta into the clock and returns the
// elapsed simulated time. Negative deltas are clamped to zero.
func (c *Clock) Advance(wallDelta, timeScale float64, paused bool) float64 {
	if paused {
		return c.frozen
	}
	if wallDelta < 0 {
		wallDelta = 0
	}
	c.elapsed += wallDelta * timeScale
	c.frozen = c.elapsed
	return c.elapsed
}

// Elapsed returns the last value reported by Advance.
func (c *Clock) Elapsed() float64 {
	return c.frozen
}
