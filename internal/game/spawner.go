package game

import "time"

// Spawner gates main asteroid creation on elapsed time.
type Spawner struct {
	elapsed time.Duration
}

// Advance adds dt to the time since the last spawn and reports whether a new
// asteroid is due, i.e. the elapsed time strictly exceeds interval. When it
// is, the timer restarts.
func (s *Spawner) Advance(dt, interval time.Duration) bool {
	if dt > 0 {
		s.elapsed += dt
	}
	if s.elapsed > interval {
		s.elapsed = 0
		return true
	}
	return false
}

// Reset restarts the timer.
func (s *Spawner) Reset() {
	s.elapsed = 0
}
