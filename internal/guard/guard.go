// Package guard validates content-authored numbers before they reach health,
// timers or geometry.
//
// A NaN health never compares <= 0, so an actor carrying one can never die.
// Every function here maps any input onto the valid domain for its field:
// valid values pass through unchanged, anything else is replaced by the
// fallback (itself sanitized). All functions are idempotent.
package guard

import "math"

const (
	// MinRadius is substituted when both a radius and its fallback are unusable.
	MinRadius = 1.0
	// MinDuration is substituted when both a duration and its fallback are unusable.
	// One tick at 60 Hz.
	MinDuration = 1.0 / 60.0
)

// Finite reports whether x is neither NaN nor infinite.
func Finite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}

// PositiveFinite reports whether x is finite and strictly greater than zero.
func PositiveFinite(x float64) bool {
	return x > 0 && !math.IsInf(x, 1)
}

// Damage returns max(x, 0) for finite x, otherwise the sanitized fallback.
func Damage(x, fallback float64) float64 {
	if Finite(x) {
		return max(x, 0)
	}
	if Finite(fallback) {
		return max(fallback, 0)
	}
	return 0
}

// Health has the same domain as Damage: finite and non-negative.
func Health(x, fallback float64) float64 {
	return Damage(x, fallback)
}

// Radius returns x if it is positive and finite, otherwise the fallback if
// that is, otherwise MinRadius.
func Radius(x, fallback float64) float64 {
	return positive(x, fallback, MinRadius)
}

// Duration returns x if it is positive and finite, otherwise the fallback if
// that is, otherwise MinDuration.
func Duration(x, fallback float64) float64 {
	return positive(x, fallback, MinDuration)
}

func positive(x, fallback, floor float64) float64 {
	if PositiveFinite(x) {
		return x
	}
	if PositiveFinite(fallback) {
		return fallback
	}
	return floor
}

// Percent clamps finite x to [0, 1]. Non-finite x yields the fallback,
// clamped the same way, or 0 if the fallback is not finite either.
func Percent(x, fallback float64) float64 {
	if Finite(x) {
		return clamp01(x)
	}
	if Finite(fallback) {
		return clamp01(fallback)
	}
	return 0
}

func clamp01(x float64) float64 {
	switch {
	case x < 0:
		return 0
	case x > 1:
		return 1
	default:
		return x
	}
}

// Divide returns n/d when the quotient is finite, otherwise the fallback
// (0 if the fallback is not finite).
func Divide(n, d, fallback float64) float64 {
	if d != 0 {
		if q := n / d; Finite(q) {
			return q
		}
	}
	if Finite(fallback) {
		return fallback
	}
	return 0
}
