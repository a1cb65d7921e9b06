// Package vec provides the 2D vector value type shared by every stage
// of the generation pipeline, plus conversions to and from paulmach/orb
// geometry at ecosystem boundaries.
//
// Vector is a plain value type: all operations return new values, so
// vectors can cross stage boundaries without aliasing concerns.
package vec

import (
	"math"

	"github.com/paulmach/orb"
)

// Vector is a 2D point or direction, depending on context.
type Vector struct {
	X, Y float64
}

// V is a shorthand constructor.
func V(x, y float64) Vector {
	return Vector{X: x, Y: y}
}

// Add returns v + w.
func (v Vector) Add(w Vector) Vector {
	return Vector{v.X + w.X, v.Y + w.Y}
}

// Sub returns v - w.
func (v Vector) Sub(w Vector) Vector {
	return Vector{v.X - w.X, v.Y - w.Y}
}

// Scale returns v * s.
func (v Vector) Scale(s float64) Vector {
	return Vector{v.X * s, v.Y * s}
}

// Neg returns -v.
func (v Vector) Neg() Vector {
	return Vector{-v.X, -v.Y}
}

// Length returns the Euclidean length of v.
func (v Vector) Length() float64 {
	return math.Hypot(v.X, v.Y)
}

// LengthSq returns the squared length of v, avoiding the square root.
func (v Vector) LengthSq() float64 {
	return v.X*v.X + v.Y*v.Y
}

// Distance returns the Euclidean distance from v to w.
func (v Vector) Distance(w Vector) float64 {
	return v.Sub(w).Length()
}

// DistanceSq returns the squared distance from v to w.
func (v Vector) DistanceSq(w Vector) float64 {
	return v.Sub(w).LengthSq()
}

// Dot returns the dot product of v and w.
func (v Vector) Dot(w Vector) float64 {
	return v.X*w.X + v.Y*w.Y
}

// Cross returns the z-component of the 3D cross product of v and w.
func (v Vector) Cross(w Vector) float64 {
	return v.X*w.Y - v.Y*w.X
}

// Normalize returns the unit vector in the direction of v.
// The zero vector normalizes to the zero vector.
func (v Vector) Normalize() Vector {
	l := v.Length()
	if l < 1e-12 {
		return Vector{}
	}

	return Vector{v.X / l, v.Y / l}
}

// Rotate returns v rotated by angle radians counterclockwise.
func (v Vector) Rotate(angle float64) Vector {
	c, s := math.Cos(angle), math.Sin(angle)

	return Vector{v.X*c - v.Y*s, v.X*s + v.Y*c}
}

// Perp returns v rotated 90° counterclockwise.
func (v Vector) Perp() Vector {
	return Vector{-v.Y, v.X}
}

// Lerp returns the linear interpolation between v and w at t ∈ [0,1].
func (v Vector) Lerp(w Vector, t float64) Vector {
	return Vector{v.X + (w.X-v.X)*t, v.Y + (w.Y-v.Y)*t}
}

// Mid returns the midpoint between v and w.
func (v Vector) Mid(w Vector) Vector {
	return v.Lerp(w, 0.5)
}

// Angle returns the angle of v from the positive X axis, in radians.
func (v Vector) Angle() float64 {
	return math.Atan2(v.Y, v.X)
}

// AngleBetween returns the unsigned angle between v and w in [0,π].
func (v Vector) AngleBetween(w Vector) float64 {
	return math.Abs(math.Atan2(v.Cross(w), v.Dot(w)))
}

// TurnAngle returns the signed angle from v to w in (-π,π], positive
// counterclockwise. Used to accumulate total streamline curvature.
func (v Vector) TurnAngle(w Vector) float64 {
	return math.Atan2(v.Cross(w), v.Dot(w))
}

// ToOrb converts v to an orb.Point.
func (v Vector) ToOrb() orb.Point {
	return orb.Point{v.X, v.Y}
}

// FromOrb converts an orb.Point to a Vector.
func FromOrb(p orb.Point) Vector {
	return Vector{p[0], p[1]}
}

// ToLineString converts a polyline to an orb.LineString.
func ToLineString(pts []Vector) orb.LineString {
	ls := make(orb.LineString, len(pts))
	for i, p := range pts {
		ls[i] = p.ToOrb()
	}

	return ls
}

// FromLineString converts an orb.LineString to a polyline.
func FromLineString(ls orb.LineString) []Vector {
	pts := make([]Vector, len(ls))
	for i, p := range ls {
		pts[i] = FromOrb(p)
	}

	return pts
}

// ToRing converts a closed polyline to an orb.Ring. The caller is
// responsible for closure (first point equals last).
func ToRing(pts []Vector) orb.Ring {
	r := make(orb.Ring, len(pts))
	for i, p := range pts {
		r[i] = p.ToOrb()
	}

	return r
}

// FromRing converts an orb.Ring to a polyline.
func FromRing(r orb.Ring) []Vector {
	pts := make([]Vector, len(r))
	for i, p := range r {
		pts[i] = FromOrb(p)
	}

	return pts
}
