package trace

import (
	"errors"
	"math"

	"github.com/paulmach/orb"

	"github.com/tensorcity/tensorcity/gridindex"
	"github.com/tensorcity/tensorcity/vec"
)

var (
	// ErrIntegratorNil is returned by New when no integrator is supplied.
	ErrIntegratorNil = errors.New("trace: integrator is nil")
	// ErrIndexNil is returned by New when the tier's own index is nil.
	ErrIndexNil = errors.New("trace: separation index is nil")
)

// Params holds one road tier's tunable separation and budget knobs.
// New normalizes out-of-range values by clamping (see normalized);
// misconfiguration yields rougher output, never a runtime fault.
type Params struct {
	// Dsep is the minimum distance between a seed and any accepted
	// sample; it controls road density.
	Dsep float64

	// Dtest is the near-collision distance that terminates an
	// integrating streamline against accepted samples. Clamped into
	// (0, Dsep] and never below the integrator step.
	Dtest float64

	// DCircleJoin is the front re-approach distance that closes a
	// loop, and the self-proximity threshold of the anti-crossing
	// guard.
	DCircleJoin float64

	// DLookahead is the search radius of the dangling-end join pass.
	DLookahead float64

	// JoinAngle is the maximum heading deviation (radians) a dangling
	// end accepts when joining to a nearby point.
	JoinAngle float64

	// PathIterations bounds the integration steps per streamline
	// (applied to both fronts together).
	PathIterations int

	// SeedTries bounds candidate seeds per unit of work; exhausting it
	// ends the tier's generation.
	SeedTries int

	// SimplifyTolerance is the Douglas–Peucker tolerance for the
	// simplified output; tolerance ≤ 0 keeps every point.
	SimplifyTolerance float64

	// CollideEarly is the probability that a streamline also tests the
	// opposite eigen direction's samples during integration, so some
	// streets terminate at perpendicular roads instead of crossing
	// them.
	CollideEarly float64

	// MinPoints discards finished streamlines shorter than this.
	MinPoints int

	// NLookBack exempts this many trailing steps from the
	// self-proximity guard, so tight legitimate curvature survives.
	NLookBack int

	// JoinDangling enables the dangling-end join pass.
	JoinDangling bool

	// Seed feeds the tier's random source; equal seeds reproduce
	// identical networks for identical fields.
	Seed int64
}

// DefaultParams returns the reference parameter set for a minor road
// tier on a few-hundred-unit domain.
func DefaultParams() Params {
	return Params{
		Dsep:              20,
		Dtest:             15,
		DCircleJoin:       5,
		DLookahead:        40,
		JoinAngle:         0.1,
		PathIterations:    1500,
		SeedTries:         300,
		SimplifyTolerance: 0.5,
		CollideEarly:      0,
		MinPoints:         6,
		NLookBack:         40,
		JoinDangling:      true,
		Seed:              1,
	}
}

// normalized clamps p into a consistent range given the integrator
// step length.
func (p Params) normalized(step float64) Params {
	if p.Dsep <= 0 {
		p.Dsep = step * 2
	}
	if p.Dtest <= 0 || p.Dtest > p.Dsep {
		p.Dtest = p.Dsep
	}
	// A step longer than the test distance would hop over collisions.
	if p.Dtest < step {
		p.Dtest = step
	}
	if p.DCircleJoin <= 0 {
		p.DCircleJoin = p.Dtest / 3
	}
	if p.DLookahead < 0 {
		p.DLookahead = 0
	}
	p.JoinAngle = math.Abs(p.JoinAngle)
	if p.PathIterations < 1 {
		p.PathIterations = 1
	}
	if p.SeedTries < 1 {
		p.SeedTries = 1
	}
	p.CollideEarly = math.Max(0, math.Min(1, p.CollideEarly))
	if p.MinPoints < 3 {
		p.MinPoints = 3
	}
	if p.NLookBack < 1 {
		p.NLookBack = 1
	}

	return p
}

// Modifiers configures the optional directional perturbations applied
// on every integration step. Every effect composes by angle addition
// before the step is renormalized; all are disabled by default.
type Modifiers struct {
	// NoiseEnabled turns on the multi-octave angle perturbation.
	NoiseEnabled bool
	// NoiseStrength is the maximum angular offset in radians.
	NoiseStrength float64
	// NoiseSize is the base wavelength of the coherent noise.
	NoiseSize float64
	// NoiseOctaves layers this many noise octaves (minimum 1).
	NoiseOctaves int

	// TerrainEnabled turns on contour-following terrain avoidance.
	TerrainEnabled bool
	// TerrainStrength scales the nudge toward the local contour.
	TerrainStrength float64
	// TerrainSize is the wavelength of the secondary elevation field.
	TerrainSize float64
	// TerrainThreshold is the gradient magnitude above which the
	// nudge engages.
	TerrainThreshold float64

	// CenterEnabled scales the noise perturbation by distance from a
	// designated historical center.
	CenterEnabled bool
	// Center is the historical center point.
	Center vec.Vector
	// CenterInner and CenterOuter delimit the linear interpolation:
	// CenterGain applies within CenterInner, EdgeGain beyond
	// CenterOuter.
	CenterInner, CenterOuter float64
	// CenterGain and EdgeGain are the strength multipliers at the
	// center and the urban edge.
	CenterGain, EdgeGain float64

	// BiasEnabled turns on the noise-masked constant directional bias.
	BiasEnabled bool
	// BiasAngle is the heading (radians) streamlines lean toward.
	BiasAngle float64
	// BiasStrength is the fraction of the remaining turn applied per
	// step, before masking.
	BiasStrength float64
	// BiasMaskSize is the wavelength of the mask noise that makes the
	// bias apply unevenly across the plane.
	BiasMaskSize float64

	// Seed feeds the noise sources.
	Seed int64
}

// DefaultModifiers returns a Modifiers with every effect disabled and
// sensible magnitudes for the ones a caller flips on.
func DefaultModifiers() Modifiers {
	return Modifiers{
		NoiseStrength:    0.3,
		NoiseSize:        150,
		NoiseOctaves:     3,
		TerrainStrength:  0.5,
		TerrainSize:      250,
		TerrainThreshold: 0.5,
		CenterInner:      100,
		CenterOuter:      400,
		CenterGain:       1,
		EdgeGain:         0.2,
		BiasStrength:     0.1,
		BiasMaskSize:     300,
		Seed:             1,
	}
}

// Pair groups one tier's separation indices, one per eigenvector
// direction. Major and minor streamlines index their samples
// separately: perpendicular streets must be able to cross, so one
// direction's samples never terminate the other's integration
// unconditionally (see Params.CollideEarly).
type Pair struct {
	Major *gridindex.Index
	Minor *gridindex.Index
}

// NewPair builds two empty indices covering bound with cells derived
// from dsep.
func NewPair(bound orb.Bound, dsep float64) *Pair {
	return &Pair{
		Major: gridindex.New(bound, dsep),
		Minor: gridindex.New(bound, dsep),
	}
}

// grid selects the index of one eigen direction.
func (p *Pair) grid(major bool) *gridindex.Index {
	if major {
		return p.Major
	}

	return p.Minor
}

// validSeed reports whether q keeps at least minDistSq to every sample
// of both directions. Seeds respect both grids; integration does not.
func (p *Pair) validSeed(q vec.Vector, minDistSq float64) bool {
	return p.Major.IsValidSample(q, minDistSq) && p.Minor.IsValidSample(q, minDistSq)
}
