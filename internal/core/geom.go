// Package core provides fundamental types and utilities for the horde simulation.
// It contains no external dependencies (especially no Bubble Tea) to keep the
// simulation pure and testable.
package core

import "math"

// Vec is a 2D vector in world units.
type Vec struct {
	X, Y float64
}

// V creates a vector.
func V(x, y float64) Vec {
	return Vec{X: x, Y: y}
}

// Add returns v + o.
func (v Vec) Add(o Vec) Vec {
	return Vec{X: v.X + o.X, Y: v.Y + o.Y}
}

// Sub returns v - o.
func (v Vec) Sub(o Vec) Vec {
	return Vec{X: v.X - o.X, Y: v.Y - o.Y}
}

// Scale returns v * s.
func (v Vec) Scale(s float64) Vec {
	return Vec{X: v.X * s, Y: v.Y * s}
}

// LenSq returns the squared length. Collision code compares squared
// distances so the hot path never takes a square root.
func (v Vec) LenSq() float64 {
	return v.X*v.X + v.Y*v.Y
}

// Len returns the vector length.
func (v Vec) Len() float64 {
	return math.Sqrt(v.LenSq())
}

// Normalize returns a unit vector in the direction of v.
// The zero vector normalizes to itself.
func (v Vec) Normalize() Vec {
	l := v.Len()
	if l == 0 {
		return Vec{}
	}
	return Vec{X: v.X / l, Y: v.Y / l}
}

// DistSq returns the squared distance between two points.
func DistSq(a, b Vec) float64 {
	dx := a.X - b.X
	dy := a.Y - b.Y
	return dx*dx + dy*dy
}

// Circle is a position with a radius, the only collision shape the simulation uses.
type Circle struct {
	Center Vec
	R      float64
}

// Overlaps reports whether two circles intersect (touching counts as overlap).
func (c Circle) Overlaps(o Circle) bool {
	rr := c.R + o.R
	return DistSq(c.Center, o.Center) <= rr*rr
}

// Contains reports whether the point lies inside or on the circle.
func (c Circle) Contains(p Vec) bool {
	return DistSq(c.Center, p) <= c.R*c.R
}

// Rect is an axis-aligned world-space rectangle.
type Rect struct {
	X, Y float64 // Top-left corner
	W, H float64
}

// Contains reports whether the point is inside the rectangle (right/bottom exclusive).
func (r Rect) Contains(p Vec) bool {
	return p.X >= r.X && p.X < r.X+r.W && p.Y >= r.Y && p.Y < r.Y+r.H
}

// ClampPoint restricts a point to the rectangle.
func (r Rect) ClampPoint(p Vec) Vec {
	return Vec{X: ClampF(p.X, r.X, r.X+r.W), Y: ClampF(p.Y, r.Y, r.Y+r.H)}
}

// Clamp restricts a value to be within [min, max].
func Clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// ClampF restricts a float64 value to be within [min, max].
func ClampF(val, min, max float64) float64 {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// MoveToward moves from toward target by at most step, never overshooting.
func MoveToward(from, target Vec, step float64) Vec {
	d := target.Sub(from)
	distSq := d.LenSq()
	if distSq <= step*step || distSq == 0 {
		return target
	}
	return from.Add(d.Scale(step / math.Sqrt(distSq)))
}
