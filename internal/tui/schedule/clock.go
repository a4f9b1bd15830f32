// Package schedule keeps the fixed redraw cadence of the interactive view.
package schedule

import "time"

// DefaultInterval is the redraw tick.
const DefaultInterval = 200 * time.Millisecond

// Clock tracks the boundary of the current tick.
type Clock struct {
	interval time.Duration
	last     time.Time
}

func NewClock(interval time.Duration, now time.Time) *Clock {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Clock{interval: interval, last: now}
}

func (c *Clock) Interval() time.Duration {
	return c.interval
}

// Remaining is how long to wait for input before the next tick, never
// negative.
func (c *Clock) Remaining(now time.Time) time.Duration {
	return max(0, c.interval-now.Sub(c.last))
}

// Advance starts a new tick once the interval has fully elapsed and reports
// whether it did.
func (c *Clock) Advance(now time.Time) bool {
	if now.Sub(c.last) < c.interval {
		return false
	}
	c.last = now
	return true
}
