package config

import "math"

// Minimum gap between waves at any level, in seconds.
const minWaveInterval = 0.25

// Ramp turns run progress into a difficulty level in [0, 1] and scales wave
// and enemy parameters by it. The zero Ramp is disabled at level 0.
type Ramp struct {
	enabled bool
	start   float64
	by      string  // "score" or "time"
	maxAt   float64 // Progress value at which the level reaches 1
	scaling ScalingConfig
}

// Ramp builds the level curve described by c.
func (c DifficultyConfig) Ramp() Ramp {
	r := Ramp{
		enabled: c.Enabled && (c.Progression.Type == "score" || c.Progression.Type == "time"),
		start:   clamp(c.InitialLevel, 0, 1),
		by:      c.Progression.Type,
		maxAt:   float64(c.Progression.MaxAt),
		scaling: c.Scaling,
	}
	if r.maxAt <= 0 {
		r.maxAt = 1
	}
	return r
}

// Enabled reports whether the level moves with progress.
func (r Ramp) Enabled() bool {
	return r.enabled
}

// Level interpolates from the initial level to 1 as score or ticks approach
// the configured maximum.
func (r Ramp) Level(score int, ticks uint64) float64 {
	if !r.enabled {
		return r.start
	}
	progress := float64(ticks)
	if r.by == "score" {
		progress = float64(score)
	}
	t := clamp(progress/r.maxAt, 0, 1)
	return r.start + t*(1-r.start)
}

// Speed scales an enemy's base speed up to base*(1+SpeedMultiplier).
func (r Ramp) Speed(base, level float64) float64 {
	return base * (1 + level*r.scaling.SpeedMultiplier)
}

// Health scales an enemy's base health up to base*(1+HealthMultiplier).
func (r Ramp) Health(base, level float64) float64 {
	return base * (1 + level*r.scaling.HealthMultiplier)
}

// Interval shortens the wave interval by up to 95%, never below a quarter
// second.
func (r Ramp) Interval(base, level float64) float64 {
	cut := clamp(r.scaling.IntervalReduction, 0, 0.95)
	return math.Max(base*(1-level*cut), minWaveInterval)
}

// Batch grows the wave size by up to BatchGrowth enemies, at least one.
func (r Ramp) Batch(base int, level float64) int {
	return max(base+int(level*float64(r.scaling.BatchGrowth)), 1)
}

func clamp(x, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, x))
}
