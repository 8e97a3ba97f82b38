package sim

import "time"

// Clock converts variable wall-clock frame intervals into whole fixed ticks
// using an accumulator. The accumulator is clamped to maxTicks steps so a
// long stall (debugger, suspended laptop) cannot queue up an unbounded
// burst of catch-up ticks.
type Clock struct {
	step     time.Duration
	maxTicks int

	acc     time.Duration
	ticks   uint64
	dropped time.Duration
}

// NewClock creates a clock. A non-positive step defaults to 60 Hz, a
// non-positive maxTicksPerFrame to 8.
func NewClock(step time.Duration, maxTicksPerFrame int) *Clock {
	if step <= 0 {
		step = time.Second / 60
	}
	if maxTicksPerFrame <= 0 {
		maxTicksPerFrame = 8
	}
	return &Clock{step: step, maxTicks: maxTicksPerFrame}
}

// Advance adds elapsed to the accumulator and calls tick once per whole
// step it holds. It returns the number of ticks run, which may be zero.
// Negative elapsed time is ignored.
func (c *Clock) Advance(elapsed time.Duration, tick func()) int {
	if elapsed > 0 {
		c.acc += elapsed
	}
	if limit := time.Duration(c.maxTicks) * c.step; c.acc > limit {
		c.dropped += c.acc - limit
		c.acc = limit
	}

	n := 0
	for c.acc >= c.step {
		tick()
		c.acc -= c.step
		c.ticks++
		n++
	}
	return n
}

// Alpha is how far the accumulator is into the next step, in [0, 1).
// Renderers may use it to interpolate between the last two states.
func (c *Clock) Alpha() float64 {
	return float64(c.acc) / float64(c.step)
}

// Step returns the fixed tick duration.
func (c *Clock) Step() time.Duration {
	return c.step
}

// Ticks returns the total number of ticks run.
func (c *Clock) Ticks() uint64 {
	return c.ticks
}

// Dropped returns the wall time discarded by the accumulator clamp.
func (c *Clock) Dropped() time.Duration {
	return c.dropped
}

// discard drops whatever the accumulator holds.
func (c *Clock) discard() {
	c.dropped += c.acc
	c.acc = 0
}

// Reset empties the accumulator and counters.
func (c *Clock) Reset() {
	c.acc = 0
	c.ticks = 0
	c.dropped = 0
}
