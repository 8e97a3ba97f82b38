package sim

import (
	"math"
	"testing"
	"time"
)

func TestClockTickRateIndependence(t *testing.T) {
	step := time.Second / 60

	tests := []struct {
		name   string
		frame  time.Duration
		frames int
	}{
		{"60fps", 16670 * time.Microsecond, 60},
		{"30fps", 33340 * time.Microsecond, 30},
		{"144fps", 6945 * time.Microsecond, 144},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewClock(step, 8)
			total := 0
			for range tt.frames {
				total += c.Advance(tt.frame, func() {})
			}
			if total != 60 {
				t.Errorf("ticks = %d, expected 60", total)
			}
			if c.Ticks() != 60 {
				t.Errorf("Ticks() = %d, expected 60", c.Ticks())
			}
		})
	}
}

func TestClockClamp(t *testing.T) {
	step := time.Second / 60
	c := NewClock(step, 8)

	calls := 0
	n := c.Advance(10*time.Second, func() { calls++ })
	if n != 8 || calls != 8 {
		t.Errorf("Advance(10s) = %d (%d calls), expected 8", n, calls)
	}
	if expected := 10*time.Second - 8*step; c.Dropped() != expected {
		t.Errorf("Dropped() = %v, expected %v", c.Dropped(), expected)
	}

	// Nothing is left over for the next frame.
	if n := c.Advance(0, func() {}); n != 0 {
		t.Errorf("Advance(0) after clamp = %d, expected 0", n)
	}
}

func TestClockNegativeElapsed(t *testing.T) {
	c := NewClock(time.Second/60, 8)
	c.Advance(time.Second/120, func() {})

	if n := c.Advance(-time.Second, func() {}); n != 0 {
		t.Errorf("Advance(-1s) = %d, expected 0", n)
	}
	if n := c.Advance(time.Second/120, func() {}); n != 1 {
		t.Errorf("accumulator lost by negative elapsed: Advance = %d, expected 1", n)
	}
}

func TestClockAlpha(t *testing.T) {
	step := time.Second / 60
	c := NewClock(step, 8)

	if n := c.Advance(step+step/2, func() {}); n != 1 {
		t.Fatalf("Advance = %d, expected 1", n)
	}
	if a := c.Alpha(); math.Abs(a-0.5) > 1e-6 {
		t.Errorf("Alpha() = %v, expected 0.5", a)
	}

	c.Reset()
	if c.Alpha() != 0 || c.Ticks() != 0 || c.Dropped() != 0 {
		t.Errorf("Reset left alpha=%v ticks=%d dropped=%v", c.Alpha(), c.Ticks(), c.Dropped())
	}
}

func TestClockDefaults(t *testing.T) {
	c := NewClock(0, 0)
	if c.Step() != time.Second/60 {
		t.Errorf("Step() = %v, expected %v", c.Step(), time.Second/60)
	}
	if n := c.Advance(time.Hour, func() {}); n != 8 {
		t.Errorf("Advance(1h) = %d, expected 8", n)
	}
}
