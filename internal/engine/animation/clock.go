package animation

// Clock converts wall time into animation time that can be paused.
// While paused Elapsed stays frozen; on resume the paused span is
// dropped so motion continues where it stopped.
type Clock struct {
	now      func() float64
	start    float64
	pausedAt float64
	paused   bool
}

// NewClock starts a clock at the current time of now.
func NewClock(now func() float64) *Clock {
	return &Clock{now: now, start: now()}
}

// Elapsed returns animation seconds since start, excluding pauses.
func (c *Clock) Elapsed() float64 {
	if c.paused {
		return c.pausedAt - c.start
	}
	return c.now() - c.start
}

// Paused reports whether the clock is frozen.
func (c *Clock) Paused() bool {
	return c.paused
}

// Toggle pauses or resumes the clock.
func (c *Clock) Toggle() {
	if c.paused {
		c.start += c.now() - c.pausedAt
		c.paused = false
		return
	}
	c.pausedAt = c.now()
	c.paused = true
}
