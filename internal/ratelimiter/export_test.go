package ratelimiter

import "time"

// SetClock replaces the time source so tests can move time deterministically.
func (cl *ClientLimiters) SetClock(now func() time.Time) {
	cl.mu.Lock()
	cl.now = now
	cl.mu.Unlock()
}
