package integrate

import (
	"errors"

	"github.com/tensorcity/tensorcity/vec"
)

var (
	// ErrFieldNil is returned by constructors when the tensor field is nil.
	ErrFieldNil = errors.New("integrate: field is nil")
)

// DegenerateSq is the squared step length below which an integration
// result carries no direction. Callers terminate the local unit of
// work (one streamline front) when they see it.
const DegenerateSq = 1e-12

// minStepSize replaces non-positive configured step sizes; a clamp,
// not an error, per the "visually reasonable output over hard aborts"
// policy.
const minStepSize = 1e-3

// Integrator advances a streamline front by one step of the field.
type Integrator interface {
	// Integrate returns a step vector of length StepSize() along the
	// major (or minor) eigenvector at p, sign-aligned to prev. A
	// near-zero result (LengthSq < DegenerateSq) marks a degenerate
	// point.
	Integrate(p, prev vec.Vector, major bool) vec.Vector

	// StepSize returns the configured step length.
	StepSize() float64

	// OnLand reports whether p is outside every water exclusion ring.
	OnLand(p vec.Vector) bool
}

// clampStep normalizes a configured step size.
func clampStep(step float64) float64 {
	if step <= 0 {
		return minStepSize
	}

	return step
}
