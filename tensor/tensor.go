package tensor

import (
	"math"

	"github.com/tensorcity/tensorcity/vec"
)

// degenerateEps bounds the squared magnitude below which a tensor has
// no usable direction (both eigenvalues nearly equal).
const degenerateEps = 1e-9

// Tensor is a trace-free symmetric 2×2 tensor [[A, B], [B, -A]].
// Its eigenvalues are ±√(A²+B²); the major eigenvector sits at angle
// atan2(B, A)/2. The zero tensor is degenerate: no preferred direction.
type Tensor struct {
	A, B float64
}

// FromAngle returns the unit tensor whose major eigenvector points
// along theta. Used by grid primitives.
func FromAngle(theta float64) Tensor {
	return Tensor{A: math.Cos(2 * theta), B: math.Sin(2 * theta)}
}

// FromVector returns the tensor whose major eigenvector points along
// v. Used by radial primitives with v = point - center, so major
// streamlines run radially and minor streamlines run in rings.
func FromVector(v vec.Vector) Tensor {
	// cos2θ = (x²-y²)/r², sin2θ = 2xy/r²; the 1/r² factor cancels in
	// the eigenvector, so it is folded into the primitive weight.
	return Tensor{A: v.X*v.X - v.Y*v.Y, B: 2 * v.X * v.Y}
}

// Add returns t + u.
func (t Tensor) Add(u Tensor) Tensor {
	return Tensor{A: t.A + u.A, B: t.B + u.B}
}

// Scale returns t scaled by s.
func (t Tensor) Scale(s float64) Tensor {
	return Tensor{A: t.A * s, B: t.B * s}
}

// IsDegenerate reports whether t has no usable direction.
func (t Tensor) IsDegenerate() bool {
	return t.A*t.A+t.B*t.B < degenerateEps
}

// Theta returns the angle of the major eigenvector.
func (t Tensor) Theta() float64 {
	return math.Atan2(t.B, t.A) / 2
}

// Major returns the unit major eigenvector, or the zero vector for a
// degenerate tensor. Sign is arbitrary: callers resolve it against a
// previous direction, never from the tensor alone.
func (t Tensor) Major() vec.Vector {
	if t.IsDegenerate() {
		return vec.Vector{}
	}
	theta := t.Theta()

	return vec.V(math.Cos(theta), math.Sin(theta))
}

// Minor returns the unit minor eigenvector (perpendicular to Major),
// or the zero vector for a degenerate tensor.
func (t Tensor) Minor() vec.Vector {
	if t.IsDegenerate() {
		return vec.Vector{}
	}

	return t.Major().Perp()
}
