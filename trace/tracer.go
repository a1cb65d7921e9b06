package trace

import (
	"math"
	"math/rand"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/simplify"

	"github.com/tensorcity/tensorcity/integrate"
	"github.com/tensorcity/tensorcity/vec"
)

// Tracer grows one road tier's streamlines. It owns the tier's pair of
// per-direction separation indices exclusively and reads, never
// writes, the sibling tier's pair.
type Tracer struct {
	integ   integrate.Integrator
	bound   orb.Bound
	params  Params
	perturb *perturber
	rng     *rand.Rand

	self    *Pair
	sibling *Pair // read-only, may be nil

	regionOK func(vec.Vector) bool

	raw    [][]vec.Vector // unsimplified, for spatial queries
	simple [][]vec.Vector // simplified, for graph building
	closed []bool
	dirs   []bool // true = major eigen direction

	nextMajor  bool
	exhausted  bool
	joinedEnds bool

	// RejectedSeeds counts candidates discarded during seeding;
	// diagnostic only.
	RejectedSeeds int
}

// front is one end of an in-flight bidirectional integration.
type front struct {
	pos    vec.Vector
	prev   vec.Vector // last step direction, for sign continuity
	turned float64    // cumulative signed turn since the seed
	valid  bool
}

// New builds a Tracer for one tier. self receives accepted samples,
// split by eigen direction; sibling (nil for the first tier) is
// consulted read-only for cross-tier separation. Params are normalized
// against the integrator's step length.
func New(integ integrate.Integrator, bound orb.Bound, self, sibling *Pair, params Params, mods Modifiers) (*Tracer, error) {
	if integ == nil {
		return nil, ErrIntegratorNil
	}
	if self == nil || self.Major == nil || self.Minor == nil {
		return nil, ErrIndexNil
	}

	return &Tracer{
		integ:     integ,
		bound:     bound,
		params:    params.normalized(integ.StepSize()),
		perturb:   newPerturber(mods),
		rng:       rand.New(rand.NewSource(params.Seed)),
		self:      self,
		sibling:   sibling,
		nextMajor: true,
	}, nil
}

// Params returns the normalized parameter set in effect.
func (t *Tracer) Params() Params {
	return t.params
}

// SetRegionPredicate installs a boundary predicate consulted during
// seeding and integration; nil admits all points.
func (t *Tracer) SetRegionPredicate(fn func(vec.Vector) bool) {
	t.regionOK = fn
}

// Done reports whether the tier's generation has finished.
func (t *Tracer) Done() bool {
	return t.exhausted && (t.joinedEnds || !t.params.JoinDangling)
}

// Update performs one bounded unit of work: it traces at most one
// streamline (bounded by PathIterations steps), or, once seeding is
// exhausted, runs the dangling-end join pass. It returns true while
// more work remains.
func (t *Tracer) Update() bool {
	if t.exhausted {
		t.finish()

		return false
	}

	for try := 0; try < t.params.SeedTries; try++ {
		seed := t.randomPoint()
		if !t.validSeed(seed) {
			t.RejectedSeeds++

			continue
		}
		major := t.nextMajor
		t.nextMajor = !t.nextMajor
		t.traceStreamline(seed, major)

		return true
	}

	// Saturated: the region holds no further valid seed.
	t.exhausted = true
	t.finish()

	return false
}

// Run loops Update to completion.
func (t *Tracer) Run() {
	for t.Update() {
	}
}

// finish runs the one-shot dangling-end join pass.
func (t *Tracer) finish() {
	if t.params.JoinDangling && !t.joinedEnds {
		t.joinDanglingEnds()
	}
	t.joinedEnds = true
}

// Streamlines returns deep copies of the simplified streamlines.
func (t *Tracer) Streamlines() [][]vec.Vector {
	return copyPolylines(t.simple)
}

// RawStreamlines returns deep copies of the unsimplified streamlines.
func (t *Tracer) RawStreamlines() [][]vec.Vector {
	return copyPolylines(t.raw)
}

// Indices returns the tier's separation index pair for read-only use
// by the next tier.
func (t *Tracer) Indices() *Pair {
	return t.self
}

func copyPolylines(src [][]vec.Vector) [][]vec.Vector {
	out := make([][]vec.Vector, len(src))
	for i, pts := range src {
		out[i] = append([]vec.Vector(nil), pts...)
	}

	return out
}

// randomPoint draws a uniform candidate from the domain.
func (t *Tracer) randomPoint() vec.Vector {
	w := t.bound.Max[0] - t.bound.Min[0]
	h := t.bound.Max[1] - t.bound.Min[1]

	return vec.V(t.bound.Min[0]+t.rng.Float64()*w, t.bound.Min[1]+t.rng.Float64()*h)
}

// validSeed applies the seeding rejection rules. Seeds respect Dsep
// against both eigen directions' samples, own tier and sibling alike.
func (t *Tracer) validSeed(p vec.Vector) bool {
	if !t.bound.Contains(p.ToOrb()) || !t.integ.OnLand(p) {
		return false
	}
	if t.regionOK != nil && !t.regionOK(p) {
		return false
	}
	dsepSq := t.params.Dsep * t.params.Dsep
	if !t.self.validSeed(p, dsepSq) {
		return false
	}
	if t.sibling != nil && !t.sibling.validSeed(p, dsepSq) {
		return false
	}

	return true
}

// traceStreamline runs the bidirectional integration from seed and,
// if the result survives acceptance, records it and indexes it into
// its own direction's grid.
func (t *Tracer) traceStreamline(seed vec.Vector, major bool) {
	d0 := t.integ.Integrate(seed, vec.Vector{}, major)
	if d0.LengthSq() < integrate.DegenerateSq {
		return // degenerate seed point
	}

	// With probability CollideEarly this streamline also collides
	// against the perpendicular direction's samples, so a share of
	// streets terminates at crossings instead of passing through.
	testOther := t.rng.Float64() < t.params.CollideEarly

	fwd := front{pos: seed, prev: d0, valid: true}
	bwd := front{pos: seed, prev: d0.Neg(), valid: true}
	fwdPts := []vec.Vector{seed}
	var bwdPts []vec.Vector

	separated := false
	closedLoop := false
	for i := 0; i < t.params.PathIterations && (fwd.valid || bwd.valid); i++ {
		t.advance(&fwd, &fwdPts, bwdPts, major, testOther)
		t.advance(&bwd, &bwdPts, fwdPts, major, testOther)

		// Loop closing: the fronts must first leave the seed's
		// neighborhood, then re-approach within the closure distance.
		d := fwd.pos.Distance(bwd.pos)
		if !separated && d > t.params.DCircleJoin {
			separated = true
		} else if separated && d < t.params.DCircleJoin {
			closedLoop = true

			break
		}
	}

	// Merge: reversed backward front, seed, forward front.
	pts := make([]vec.Vector, 0, len(bwdPts)+len(fwdPts)+1)
	for i := len(bwdPts) - 1; i >= 0; i-- {
		pts = append(pts, bwdPts[i])
	}
	pts = append(pts, fwdPts...)
	if closedLoop && len(pts) >= 3 {
		pts = append(pts, pts[0])
	}

	if len(pts) < t.params.MinPoints {
		return // too short to keep
	}

	t.self.grid(major).AddPolyline(pts)
	t.raw = append(t.raw, pts)
	t.dirs = append(t.dirs, major)
	t.simple = append(t.simple, Simplify(pts, t.params.SimplifyTolerance))
	t.closed = append(t.closed, closedLoop)
}

// advance steps one front, appending the new point to own on success.
// Every rejection rule invalidates the front without appending, so
// accepted points always satisfied the rules when recorded.
func (t *Tracer) advance(f *front, own *[]vec.Vector, other []vec.Vector, major, testOther bool) {
	if !f.valid {
		return
	}

	dir := t.integ.Integrate(f.pos, f.prev, major)
	if dir.LengthSq() < integrate.DegenerateSq {
		f.valid = false

		return
	}
	dir = t.perturb.apply(f.pos, dir)
	if dir.Dot(f.prev) < 0 {
		dir = dir.Neg() // a modifier must never reverse the march
	}

	// Anti-spiral guard: cumulative turn beyond 180° from the seed's
	// original direction.
	f.turned += f.prev.TurnAngle(dir)
	if math.Abs(f.turned) > math.Pi {
		f.valid = false

		return
	}

	next := f.pos.Add(dir)
	if !t.bound.Contains(next.ToOrb()) || !t.integ.OnLand(next) {
		f.valid = false

		return
	}
	if t.regionOK != nil && !t.regionOK(next) {
		f.valid = false

		return
	}

	dtestSq := t.params.Dtest * t.params.Dtest
	if !t.self.grid(major).IsValidSample(next, dtestSq) {
		f.valid = false

		return
	}
	if testOther && !t.self.grid(!major).IsValidSample(next, dtestSq) {
		f.valid = false

		return
	}
	if t.sibling != nil {
		if !t.sibling.grid(major).IsValidSample(next, dtestSq) {
			f.valid = false

			return
		}
		if testOther && !t.sibling.grid(!major).IsValidSample(next, dtestSq) {
			f.valid = false

			return
		}
	}
	if t.frontCollides(next, *own, other) {
		f.valid = false

		return
	}

	f.prev = dir
	f.pos = next
	*own = append(*own, next)
}

// frontCollides reports whether candidate comes within the closure
// distance of this streamline's already-traced points, in merged order
// (reversed opposite front, seed, own front). The trailing NLookBack
// merged steps behind the candidate are exempt (legitimate tight
// curvature), and so are the opposite front's last NLookBack points:
// a head-to-head approach is the circle-closure case, resolved by the
// integration loop rather than by this guard.
func (t *Tracer) frontCollides(candidate vec.Vector, own, other []vec.Vector) bool {
	thresholdSq := t.params.DCircleJoin * t.params.DCircleJoin

	for j := 0; j < len(own)-t.params.NLookBack; j++ {
		if candidate.DistanceSq(own[j]) < thresholdSq {
			return true
		}
	}

	// The merged-order gap from the candidate to other[k] is
	// len(own)+k+1: points near the seed are merged-order neighbors.
	start := t.params.NLookBack - len(own)
	if start < 0 {
		start = 0
	}
	for k := start; k < len(other)-t.params.NLookBack; k++ {
		if candidate.DistanceSq(other[k]) < thresholdSq {
			return true
		}
	}

	return false
}

// Simplify reduces a polyline with Douglas–Peucker at the given
// tolerance. Tolerance ≤ 0 returns a copy of the input unchanged
// (Douglas–Peucker at threshold zero would still drop exactly
// collinear points).
func Simplify(pts []vec.Vector, tolerance float64) []vec.Vector {
	if tolerance <= 0 {
		return append([]vec.Vector(nil), pts...)
	}

	return vec.FromLineString(simplify.DouglasPeucker(tolerance).LineString(vec.ToLineString(pts)))
}
