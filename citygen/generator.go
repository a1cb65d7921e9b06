package citygen

import (
	"github.com/paulmach/orb"

	"github.com/tensorcity/tensorcity/blocks"
	"github.com/tensorcity/tensorcity/integrate"
	"github.com/tensorcity/tensorcity/planegraph"
	"github.com/tensorcity/tensorcity/tensor"
	"github.com/tensorcity/tensorcity/trace"
	"github.com/tensorcity/tensorcity/vec"
)

// Pipeline stages, advanced by Update.
const (
	stageTrace = iota
	stageGraph
	stageBlocks
	stageDivide
	stageDone
)

// Generator drives the map-generation pipeline. Construct with New,
// then drive with Update or Run; result accessors are valid at any
// point and reflect the work done so far.
type Generator struct {
	opts  Options
	field *tensor.Field
	land  *integrate.LandMask
	integ integrate.Integrator

	tracers  []*trace.Tracer
	regionOK func(vec.Vector) bool

	stage    int
	tier     int
	graph    *planegraph.Graph
	faces    []orb.Ring // raw extracted faces
	blocks   []orb.Ring // shrunk block footprints
	lots     []orb.Ring
	divideAt int
}

// New builds a Generator over the given field primitives. Exclusion
// rings from opts feed both the field (degenerate tensors inside) and
// the land mask (hard point rejection).
func New(prims []tensor.Primitive, opts Options) (*Generator, error) {
	opts = opts.normalized()
	if len(opts.Tiers) == 0 {
		return nil, ErrNoTiers
	}
	if opts.Bound.Max[0] <= opts.Bound.Min[0] || opts.Bound.Max[1] <= opts.Bound.Min[1] {
		return nil, ErrEmptyBound
	}

	field := tensor.New(prims, opts.Field, opts.Exclusions...)
	land := integrate.NewLandMask(opts.Exclusions...)
	integ, err := integrate.NewRK4(field, opts.StepSize, land)
	if err != nil {
		return nil, err
	}

	g := &Generator{
		opts:  opts,
		field: field,
		land:  land,
		integ: integ,
	}
	if err := g.buildTracers(); err != nil {
		return nil, err
	}

	return g, nil
}

// buildTracers constructs one tracer per tier, chaining each tier's
// index pair to the next as a read-only sibling.
func (g *Generator) buildTracers() error {
	g.tracers = make([]*trace.Tracer, 0, len(g.opts.Tiers))

	var sibling *trace.Pair
	for _, spec := range g.opts.Tiers {
		dsep := spec.Params.Dsep
		if dsep <= 0 {
			dsep = 2 * g.opts.StepSize
		}
		self := trace.NewPair(g.opts.Bound, dsep)

		t, err := trace.New(g.integ, g.opts.Bound, self, sibling, spec.Params, spec.Mods)
		if err != nil {
			return err
		}
		t.SetRegionPredicate(g.regionOK)
		g.tracers = append(g.tracers, t)
		sibling = self
	}

	return nil
}

// SetRegionPredicate installs an extra point-admission predicate on
// every tier; nil admits all points. Call before generation starts.
func (g *Generator) SetRegionPredicate(fn func(vec.Vector) bool) {
	g.regionOK = fn
	for _, t := range g.tracers {
		t.SetRegionPredicate(fn)
	}
}

// Done reports whether the pipeline has finished.
func (g *Generator) Done() bool {
	return g.stage == stageDone
}

// Update performs one bounded unit of work and reports whether more
// remains: one streamline of the current tier, the graph build, the
// block extraction, or the division of one block into lots.
func (g *Generator) Update() bool {
	switch g.stage {
	case stageTrace:
		t := g.tracers[g.tier]
		if !t.Update() && t.Done() {
			g.tier++
			if g.tier == len(g.tracers) {
				g.stage = stageGraph
			}
		}
	case stageGraph:
		g.buildGraph()
		g.stage = stageBlocks
	case stageBlocks:
		g.extractBlocks()
		if len(g.blocks) == 0 {
			g.stage = stageDone
		} else {
			g.stage = stageDivide
		}
	case stageDivide:
		g.divideNext()
		if g.divideAt == len(g.blocks) {
			g.stage = stageDone
		}
	}

	return g.stage != stageDone
}

// Run loops Update to completion.
func (g *Generator) Run() {
	for g.Update() {
	}
}

// Clear discards all generated output and rewinds the pipeline to the
// start, keeping the field and options.
func (g *Generator) Clear() {
	_ = g.buildTracers() // cannot fail: validated at construction
	g.stage = stageTrace
	g.tier = 0
	g.graph = nil
	g.faces = nil
	g.blocks = nil
	g.lots = nil
	g.divideAt = 0
}

// buildGraph nodes all tiers' simplified streamlines into one planar
// graph. An empty network leaves the graph nil.
func (g *Generator) buildGraph() {
	var lines [][]vec.Vector
	for _, t := range g.tracers {
		lines = append(lines, t.Streamlines()...)
	}

	graph, err := planegraph.Build(lines, g.opts.Graph)
	if err != nil {
		g.graph = nil // no usable segments; downstream stages yield nothing

		return
	}
	g.graph = graph
}

// extractBlocks traces the graph's bounded faces and insets them.
func (g *Generator) extractBlocks() {
	g.faces = blocks.Find(g.graph)
	g.blocks = blocks.Shrink(g.faces, g.opts.ShrinkSpacing)
	g.divideAt = 0
}

// divideNext subdivides the next pending block into lots. Each block
// gets its own seed offset so lot patterns vary across the city while
// staying reproducible.
func (g *Generator) divideNext() {
	dopts := g.opts.Divide
	dopts.Seed += int64(g.divideAt)
	g.lots = append(g.lots, blocks.Divide([]orb.Ring{g.blocks[g.divideAt]}, dopts)...)
	g.divideAt++
}

// DirectionAt samples the field's unit major or minor eigenvector at
// p; degenerate points yield the zero vector.
func (g *Generator) DirectionAt(p vec.Vector, major bool) vec.Vector {
	t := g.field.SampleTensor(p)
	if major {
		return t.Major()
	}

	return t.Minor()
}

// OnLand reports whether p lies outside every exclusion ring.
func (g *Generator) OnLand(p vec.Vector) bool {
	return g.land.OnLand(p)
}

// Roads returns deep copies of the named tier's simplified
// streamlines, or nil for an unknown tier name.
func (g *Generator) Roads(tier string) [][]vec.Vector {
	for i, spec := range g.opts.Tiers {
		if spec.Name == tier {
			return g.tracers[i].Streamlines()
		}
	}

	return nil
}

// Graph returns the noded street graph, nil before the graph stage has
// run. The graph is shared, not copied; treat it as read-only.
func (g *Generator) Graph() *planegraph.Graph {
	return g.graph
}

// Blocks returns deep copies of the shrunk block footprints.
func (g *Generator) Blocks() []orb.Ring {
	return copyRings(g.blocks)
}

// Lots returns deep copies of the divided lots produced so far.
func (g *Generator) Lots() []orb.Ring {
	return copyRings(g.lots)
}

func copyRings(src []orb.Ring) []orb.Ring {
	out := make([]orb.Ring, len(src))
	for i, r := range src {
		out[i] = make(orb.Ring, len(r))
		copy(out[i], r)
	}

	return out
}
