package tensor

import (
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"

	"github.com/tensorcity/tensorcity/vec"
)

// Primitive is one editable basis contribution to the field.
// Implementations are value types; the Field copies the primitive
// slice at construction so interactive edits never race a generation
// pass.
type Primitive interface {
	// WeightedTensor returns this primitive's contribution at p,
	// already scaled by its decay weight.
	WeightedTensor(p vec.Vector) Tensor
}

// Grid is a uniform basis: its major eigenvector points along Theta
// everywhere, strongest near Center and fading with distance.
type Grid struct {
	Center vec.Vector
	Size   float64 // radius of influence
	Decay  float64 // falloff steepness; 0 = constant weight
	Theta  float64 // orientation of the major direction, radians
}

// WeightedTensor implements Primitive.
func (g Grid) WeightedTensor(p vec.Vector) Tensor {
	return FromAngle(g.Theta).Scale(decayWeight(p.Distance(g.Center), g.Size, g.Decay))
}

// Radial is an isotropic basis: its major eigenvector points away from
// Center, so minor streamlines form rings around it.
type Radial struct {
	Center vec.Vector
	Size   float64
	Decay  float64
}

// WeightedTensor implements Primitive.
func (r Radial) WeightedTensor(p vec.Vector) Tensor {
	v := p.Sub(r.Center)
	d2 := v.LengthSq()
	if d2 < 1e-12 {
		return Tensor{} // degenerate at the exact center
	}

	// FromVector carries a d² magnitude factor; divide it back out so
	// only the decay weight controls falloff.
	return FromVector(v).Scale(decayWeight(math.Sqrt(d2), r.Size, r.Decay) / d2)
}

// decayWeight maps a center distance to [0,1]: 1 at the center,
// (1-d/size)^decay inside the radius of influence, 0 beyond it.
// Decay 0 gives a flat plateau with a hard edge at size.
func decayWeight(dist, size, decay float64) float64 {
	if size <= 0 {
		return 0
	}
	n := 1 - dist/size
	if n <= 0 {
		return 0
	}
	if decay <= 0 {
		return 1
	}

	return math.Pow(n, decay)
}

// FieldOptions carries field-wide tunables.
type FieldOptions struct {
	// BlendWidth is the distance outside an exclusion ring over which
	// the summed tensor fades from full strength to degenerate.
	// Zero or negative disables blending: the field is suppressed
	// strictly inside rings only.
	BlendWidth float64
}

// DefaultFieldOptions returns a FieldOptions with BlendWidth=0
// (hard exclusion boundaries).
func DefaultFieldOptions() FieldOptions {
	return FieldOptions{BlendWidth: 0}
}

// Field is an immutable snapshot of primitives and exclusion rings.
// SampleTensor is a pure function of the snapshot and the query point.
type Field struct {
	prims      []Primitive
	exclusions []orb.Ring
	opts       FieldOptions
}

// New builds a Field from a snapshot copy of prims and exclusion
// rings. The caller may keep mutating its own slices afterwards.
func New(prims []Primitive, opts FieldOptions, exclusions ...orb.Ring) *Field {
	f := &Field{
		prims:      make([]Primitive, len(prims)),
		exclusions: make([]orb.Ring, len(exclusions)),
		opts:       opts,
	}
	copy(f.prims, prims)
	for i, r := range exclusions {
		f.exclusions[i] = make(orb.Ring, len(r))
		copy(f.exclusions[i], r)
	}

	return f
}

// Exclusions returns the snapshot's exclusion rings. The slice is
// shared; callers must not mutate it.
func (f *Field) Exclusions() []orb.Ring {
	return f.exclusions
}

// SampleTensor sums every primitive's weighted contribution at p and
// applies the exclusion blend factor. The result is degenerate inside
// exclusion rings and wherever no primitive reaches.
func (f *Field) SampleTensor(p vec.Vector) Tensor {
	var sum Tensor
	for _, prim := range f.prims {
		sum = sum.Add(prim.WeightedTensor(p))
	}

	if w := f.exclusionFactor(p); w < 1 {
		sum = sum.Scale(w)
	}

	return sum
}

// exclusionFactor returns 0 inside any exclusion ring, ramping up to 1
// over BlendWidth outside the nearest ring boundary.
func (f *Field) exclusionFactor(p vec.Vector) float64 {
	if len(f.exclusions) == 0 {
		return 1
	}

	op := p.ToOrb()
	factor := 1.0
	for _, ring := range f.exclusions {
		if planar.RingContains(ring, op) {
			return 0
		}
		if f.opts.BlendWidth <= 0 {
			continue
		}
		if d := distToRing(p, ring); d < f.opts.BlendWidth {
			factor = math.Min(factor, smoothstep(d/f.opts.BlendWidth))
		}
	}

	return factor
}

// distToRing returns the minimum distance from p to the ring boundary.
func distToRing(p vec.Vector, ring orb.Ring) float64 {
	best := math.Inf(1)
	for i := 0; i+1 < len(ring); i++ {
		a, b := vec.FromOrb(ring[i]), vec.FromOrb(ring[i+1])
		if d := distToSegment(p, a, b); d < best {
			best = d
		}
	}

	return best
}

// distToSegment returns the distance from p to segment ab.
func distToSegment(p, a, b vec.Vector) float64 {
	ab := b.Sub(a)
	l2 := ab.LengthSq()
	if l2 < 1e-12 {
		return p.Distance(a)
	}
	t := p.Sub(a).Dot(ab) / l2
	t = math.Max(0, math.Min(1, t))

	return p.Distance(a.Add(ab.Scale(t)))
}

// smoothstep maps t ∈ [0,1] onto the classic 3t²-2t³ easing curve.
func smoothstep(t float64) float64 {
	if t <= 0 {
		return 0
	}
	if t >= 1 {
		return 1
	}

	return t * t * (3 - 2*t)
}
