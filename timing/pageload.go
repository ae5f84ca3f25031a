package timing

// DefaultLoadDuration is the length of the page-load reveal ramp in
// seconds.
const DefaultLoadDuration = 2.0

type loadState int

const (
	loadIdle loadState = iota
	loadRunning
	loadComplete
)

// LoadAnimator is the one-shot progress ramp that staggers the digit
// cells on when a surface first appears. When disabled it reports full
// progress so the surface renders fully revealed.
type LoadAnimator struct {
	enabled  bool
	duration float64
	state    loadState
	start    float64
}

func NewLoadAnimator(enabled bool) *LoadAnimator {
	return &LoadAnimator{
		enabled:  enabled,
		duration: DefaultLoadDuration,
	}
}

// Progress returns the ramp value in [0,1] for the given timestamp
// (seconds). The first observed timestamp becomes the ramp origin. Once
// the ramp reaches 1 it stays there.
func (a *LoadAnimator) Progress(now float64) float64 {
	if !a.enabled {
		return 1
	}
	switch a.state {
	case loadIdle:
		a.start = now
		a.state = loadRunning
		return 0
	case loadComplete:
		return 1
	}
	p := (now - a.start) / a.duration
	if p >= 1 {
		a.state = loadComplete
		return 1
	}
	if p < 0 {
		p = 0
	}
	return p
}

// Done reports whether the ramp has reached its terminal state.
func (a *LoadAnimator) Done() bool {
	return !a.enabled || a.state == loadComplete
}
