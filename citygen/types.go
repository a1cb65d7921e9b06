package citygen

import (
	"errors"

	"github.com/paulmach/orb"

	"github.com/tensorcity/tensorcity/blocks"
	"github.com/tensorcity/tensorcity/planegraph"
	"github.com/tensorcity/tensorcity/tensor"
	"github.com/tensorcity/tensorcity/trace"
)

var (
	// ErrNoTiers is returned by New when Options names no road tier.
	ErrNoTiers = errors.New("citygen: no road tiers configured")
	// ErrEmptyBound is returned by New when the domain bound has no area.
	ErrEmptyBound = errors.New("citygen: domain bound has no area")
)

// TierSpec configures one road tier. Tiers are traced in declaration
// order; each tier consults the previous tier's samples read-only for
// cross-tier separation, so the sparsest (widest Dsep) tier goes
// first.
type TierSpec struct {
	// Name identifies the tier in Roads lookups.
	Name string

	// Params is the tier's separation and budget parameter set.
	Params trace.Params

	// Mods is the tier's directional perturbation set.
	Mods trace.Modifiers
}

// Options configures a Generator.
type Options struct {
	// Bound is the generation domain.
	Bound orb.Bound

	// StepSize is the integration step length. Non-positive falls back
	// to 1.
	StepSize float64

	// Exclusions are water/park rings: the field degenerates inside
	// them and no streamline point may land there.
	Exclusions []orb.Ring

	// Field carries the tensor-field tunables.
	Field tensor.FieldOptions

	// Graph carries the planar-graph construction tunables.
	Graph planegraph.Options

	// ShrinkSpacing is the inward block offset emulating street width.
	ShrinkSpacing float64

	// Divide carries the lot-subdivision tunables.
	Divide blocks.DivideOptions

	// Tiers lists the road tiers, sparsest first.
	Tiers []TierSpec
}

// DefaultOptions returns a 400×400 domain with a sparse major tier and
// a dense minor tier, step 1, shrink spacing 3, and the per-stage
// defaults.
func DefaultOptions() Options {
	major := trace.DefaultParams()
	major.Dsep = 60
	major.Dtest = 45
	major.DCircleJoin = 15
	major.DLookahead = 120

	minor := trace.DefaultParams()
	minor.CollideEarly = 0.5
	minor.Seed = 2

	return Options{
		Bound:         orb.Bound{Min: orb.Point{0, 0}, Max: orb.Point{400, 400}},
		StepSize:      1,
		Field:         tensor.DefaultFieldOptions(),
		Graph:         planegraph.DefaultOptions(),
		ShrinkSpacing: 3,
		Divide:        blocks.DefaultDivideOptions(),
		Tiers: []TierSpec{
			{Name: "major", Params: major, Mods: trace.DefaultModifiers()},
			{Name: "minor", Params: minor, Mods: trace.DefaultModifiers()},
		},
	}
}

// normalized clamps option values into range.
func (o Options) normalized() Options {
	if o.StepSize <= 0 {
		o.StepSize = 1
	}
	if o.ShrinkSpacing < 0 {
		o.ShrinkSpacing = 0
	}

	return o
}
