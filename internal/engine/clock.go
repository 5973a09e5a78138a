package engine

import "time"

// maxDelta caps the per-frame step. A backgrounded tab or suspended
// process resumes with one bounded step instead of a multi-second jump
// that would teleport the journey and tear the particle field.
const maxDelta = 0.1

// Clock turns wall time into clamped per-frame deltas and a running
// elapsed total. The now func is injectable for tests.
type Clock struct {
	now     func() time.Time
	last    time.Time
	started bool

	Elapsed float64
	Delta   float64
}

// NewClock returns a Clock reading time.Now.
func NewClock() *Clock {
	return &Clock{now: time.Now}
}

// NewClockAt returns a Clock reading from now, for deterministic
// stepping in tests.
func NewClockAt(now func() time.Time) *Clock {
	return &Clock{now: now}
}

// Tick advances the clock and returns the clamped delta in seconds.
// The first tick returns zero.
func (c *Clock) Tick() float64 {
	t := c.now()
	if !c.started {
		c.started = true
		c.last = t
		c.Delta = 0
		return 0
	}
	d := t.Sub(c.last).Seconds()
	c.last = t
	if d < 0 {
		d = 0
	}
	if d > maxDelta {
		d = maxDelta
	}
	c.Delta = d
	c.Elapsed += d
	return d
}
