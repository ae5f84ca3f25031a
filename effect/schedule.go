package effect

// rasterSchedule decides when the overlay must be re-rasterized: on a
// fixed interval, plus one immediate pass after a resize. The resize
// pass does not consume the next scheduled tick.
type rasterSchedule struct {
	interval float64
	last     float64
	pending  bool
}

// The first frame always rasterizes; content must exist before the
// first scheduled tick.
func newRasterSchedule(interval float64) *rasterSchedule {
	return &rasterSchedule{interval: interval, pending: true}
}

// resize flags an immediate pass for the next frame.
func (s *rasterSchedule) resize() {
	s.pending = true
}

// due reports whether a rasterization pass should run now.
func (s *rasterSchedule) due(now float64) bool {
	if s.pending {
		s.pending = false
		return true
	}
	if now-s.last >= s.interval {
		s.last = now
		return true
	}
	return false
}
