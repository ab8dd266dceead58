// Package core provides fundamental types and utilities for the catapult game.
// It contains no external dependencies (especially no Bubble Tea) to keep the
// simulation pure and testable.
package core

import "math"

// Vec2 is a point or velocity in world units. Y grows downwards.
type Vec2 struct {
	X, Y float64
}

// FromAngle returns a vector of the given length pointing along angle (radians).
// Angles follow screen orientation: positive angles point below the x axis.
func FromAngle(angle, length float64) Vec2 {
	return Vec2{X: math.Cos(angle) * length, Y: math.Sin(angle) * length}
}

// FromDegrees is FromAngle with the angle given in degrees.
func FromDegrees(deg, length float64) Vec2 {
	return FromAngle(deg*math.Pi/180, length)
}

// Len returns the vector magnitude.
func (v Vec2) Len() float64 {
	return math.Hypot(v.X, v.Y)
}

// Box is an axis-aligned bounding box in world units.
type Box struct {
	X, Y float64 // Top-left corner
	W, H float64
}

// BoxAround returns a box of size w x h centered on (cx, cy).
func BoxAround(cx, cy, w, h float64) Box {
	return Box{X: cx - w/2, Y: cy - h/2, W: w, H: h}
}

// Right returns the x-coordinate of the right edge.
func (b Box) Right() float64 {
	return b.X + b.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (b Box) Bottom() float64 {
	return b.Y + b.H
}

// Intersects returns true if this box overlaps with another.
// Touching edges do not count as overlap.
func (b Box) Intersects(other Box) bool {
	if b.X >= other.Right() || other.X >= b.Right() {
		return false
	}
	if b.Y >= other.Bottom() || other.Y >= b.Bottom() {
		return false
	}
	return true
}

// Penetration returns how far b must move along each axis to stop overlapping
// other. The sign gives the direction of the shortest separation.
// Both values are zero when the boxes do not intersect.
func (b Box) Penetration(other Box) (dx, dy float64) {
	if !b.Intersects(other) {
		return 0, 0
	}

	left := other.X - b.Right()  // negative: push b left
	right := other.Right() - b.X // positive: push b right
	if -left < right {
		dx = left
	} else {
		dx = right
	}

	up := other.Y - b.Bottom()
	down := other.Bottom() - b.Y
	if -up < down {
		dy = up
	} else {
		dy = down
	}
	return dx, dy
}

// Rect is an integer rectangle in screen cells.
type Rect struct {
	X, Y int // Top-left corner position
	W, H int // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate of the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Clamp restricts a value to be within [lo, hi].
func Clamp(val, lo, hi int) int {
	if val < lo {
		return lo
	}
	if val > hi {
		return hi
	}
	return val
}

// ClampF restricts a float64 value to be within [lo, hi].
func ClampF(val, lo, hi float64) float64 {
	if val < lo {
		return lo
	}
	if val > hi {
		return hi
	}
	return val
}

// Approach moves val towards zero by step without crossing it.
func Approach(val, step float64) float64 {
	if val > 0 {
		return math.Max(0, val-step)
	}
	return math.Min(0, val+step)
}
