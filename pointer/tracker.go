// Package pointer tracks the cursor over the effect surface in
// normalized coordinates and low-pass filters it for the shader.
package pointer

// DampingFactor is the per-frame smoothing coefficient of the tracker's
// first-order low-pass filter. There is no spring term, so the smoothed
// position never overshoots the raw one.
const DampingFactor = 0.08

// Tracker holds the raw pointer position and a smoothed copy. Positions
// are surface-normalized to [0,1] with the origin at the bottom-left,
// matching the fragment shader's uv space.
type Tracker struct {
	enabled          bool
	rawX, rawY       float64
	smoothX, smoothY float64
}

// NewTracker returns a tracker centered on the surface. A disabled
// tracker ignores all input and keeps reporting the center.
func NewTracker(enabled bool) *Tracker {
	return &Tracker{
		enabled: enabled,
		rawX:    0.5, rawY: 0.5,
		smoothX: 0.5, smoothY: 0.5,
	}
}

// SetRaw records a pointer-move event. Called synchronously from the
// cursor callback; no smoothing happens here.
func (t *Tracker) SetRaw(x, y float64) {
	if !t.enabled {
		return
	}
	t.rawX, t.rawY = x, y
}

// Smooth advances the filtered position one frame toward the raw one.
func (t *Tracker) Smooth() (x, y float64) {
	if t.enabled {
		t.smoothX += (t.rawX - t.smoothX) * DampingFactor
		t.smoothY += (t.rawY - t.smoothY) * DampingFactor
	}
	return t.smoothX, t.smoothY
}

// Smoothed returns the filtered position without advancing it.
func (t *Tracker) Smoothed() (x, y float64) {
	return t.smoothX, t.smoothY
}

// Enabled reports whether the tracker reacts to input.
func (t *Tracker) Enabled() bool {
	return t.enabled
}
