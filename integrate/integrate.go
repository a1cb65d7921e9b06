package integrate

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"

	"github.com/tensorcity/tensorcity/tensor"
	"github.com/tensorcity/tensorcity/vec"
)

// LandMask answers point-in-water queries against a set of exclusion
// rings. A nil or empty mask admits every point.
type LandMask struct {
	water []orb.Ring
}

// NewLandMask copies the given exclusion rings into a mask.
func NewLandMask(water ...orb.Ring) *LandMask {
	m := &LandMask{water: make([]orb.Ring, len(water))}
	for i, r := range water {
		m.water[i] = make(orb.Ring, len(r))
		copy(m.water[i], r)
	}

	return m
}

// OnLand reports whether p lies outside every exclusion ring.
func (m *LandMask) OnLand(p vec.Vector) bool {
	if m == nil {
		return true
	}
	op := p.ToOrb()
	for _, r := range m.water {
		if planar.RingContains(r, op) {
			return false
		}
	}

	return true
}

// direction samples the field at p and returns the sign-resolved unit
// eigenvector. The sign closest (by dot product) to prev wins; a zero
// prev keeps the tensor's own sign. Degenerate tensors yield zero.
func direction(f *tensor.Field, p, prev vec.Vector, major bool) vec.Vector {
	t := f.SampleTensor(p)
	var d vec.Vector
	if major {
		d = t.Major()
	} else {
		d = t.Minor()
	}
	if d.Dot(prev) < 0 {
		d = d.Neg()
	}

	return d
}

// Euler is the single-sample integrator.
type Euler struct {
	field *tensor.Field
	land  *LandMask
	step  float64
}

// NewEuler builds an Euler integrator over field with the given step
// length (clamped to a small positive floor) and optional land mask
// (nil admits all points).
func NewEuler(field *tensor.Field, step float64, land *LandMask) (*Euler, error) {
	if field == nil {
		return nil, ErrFieldNil
	}

	return &Euler{field: field, land: land, step: clampStep(step)}, nil
}

// Integrate implements Integrator.
func (e *Euler) Integrate(p, prev vec.Vector, major bool) vec.Vector {
	return direction(e.field, p, prev, major).Scale(e.step)
}

// StepSize implements Integrator.
func (e *Euler) StepSize() float64 { return e.step }

// OnLand implements Integrator.
func (e *Euler) OnLand(p vec.Vector) bool { return e.land.OnLand(p) }

// RK4 is the 4th-order Runge–Kutta integrator.
type RK4 struct {
	field *tensor.Field
	land  *LandMask
	step  float64
}

// NewRK4 builds an RK4 integrator over field with the given step
// length (clamped to a small positive floor) and optional land mask.
func NewRK4(field *tensor.Field, step float64, land *LandMask) (*RK4, error) {
	if field == nil {
		return nil, ErrFieldNil
	}

	return &RK4{field: field, land: land, step: clampStep(step)}, nil
}

// Integrate implements Integrator. All four stencil directions are
// sign-aligned to prev (or to k1 once it is known) before combining;
// if the weighted sum degenerates, the zero vector is returned and the
// caller stops this front.
func (r *RK4) Integrate(p, prev vec.Vector, major bool) vec.Vector {
	h := r.step

	k1 := direction(r.field, p, prev, major)
	ref := prev
	if k1.LengthSq() >= DegenerateSq {
		ref = k1
	}
	k2 := direction(r.field, p.Add(k1.Scale(h/2)), ref, major)
	k3 := direction(r.field, p.Add(k2.Scale(h/2)), ref, major)
	k4 := direction(r.field, p.Add(k3.Scale(h)), ref, major)

	sum := k1.Add(k2.Scale(2)).Add(k3.Scale(2)).Add(k4).Scale(1.0 / 6.0)
	if sum.LengthSq() < DegenerateSq {
		return vec.Vector{}
	}

	return sum.Normalize().Scale(h)
}

// StepSize implements Integrator.
func (r *RK4) StepSize() float64 { return r.step }

// OnLand implements Integrator.
func (r *RK4) OnLand(p vec.Vector) bool { return r.land.OnLand(p) }
