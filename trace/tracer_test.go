package trace

import (
	"math"
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/require"

	"github.com/tensorcity/tensorcity/gridindex"
	"github.com/tensorcity/tensorcity/integrate"
	"github.com/tensorcity/tensorcity/tensor"
	"github.com/tensorcity/tensorcity/vec"
)

func squareBound(half float64) orb.Bound {
	return orb.Bound{Min: orb.Point{-half, -half}, Max: orb.Point{half, half}}
}

// gridTracer builds a tracer over a uniform grid field filling bound.
func gridTracer(t *testing.T, bound orb.Bound, step float64, params Params, water ...orb.Ring) *Tracer {
	t.Helper()

	field := tensor.New([]tensor.Primitive{
		tensor.Grid{Center: vec.V(0, 0), Size: 1e9, Decay: 0, Theta: 0},
	}, tensor.DefaultFieldOptions(), water...)

	integ, err := integrate.NewRK4(field, step, integrate.NewLandMask(water...))
	require.NoError(t, err)

	tr, err := New(integ, bound, NewPair(bound, params.Dsep), nil, params, DefaultModifiers())
	require.NoError(t, err)

	return tr
}

// TestNew_Validation covers the constructor sentinels and parameter
// clamping.
func TestNew_Validation(t *testing.T) {
	bound := squareBound(100)
	params := DefaultParams()

	_, err := New(nil, bound, NewPair(bound, 20), nil, params, DefaultModifiers())
	require.ErrorIs(t, err, ErrIntegratorNil)

	field := tensor.New(nil, tensor.DefaultFieldOptions())
	integ, err := integrate.NewEuler(field, 1, nil)
	require.NoError(t, err)

	_, err = New(integ, bound, nil, nil, params, DefaultModifiers())
	require.ErrorIs(t, err, ErrIndexNil)

	// A half-built pair is as unusable as a nil one.
	_, err = New(integ, bound, &Pair{Major: gridindex.New(bound, 20)}, nil, params, DefaultModifiers())
	require.ErrorIs(t, err, ErrIndexNil)

	// A step longer than Dtest clamps Dtest up rather than failing.
	big, err := integrate.NewEuler(field, 50, nil)
	require.NoError(t, err)
	tr, err := New(big, bound, NewPair(bound, 20), nil, params, DefaultModifiers())
	require.NoError(t, err)
	require.GreaterOrEqual(t, tr.Params().Dtest, 50.0)
}

// TestTracer_SeparationInvariant generates a tier over a uniform grid
// field and verifies that points of distinct streamlines of the same
// eigen direction never come closer than Dtest (seeds are governed by
// Dsep, checked implicitly; perpendicular streamlines cross freely).
func TestTracer_SeparationInvariant(t *testing.T) {
	params := DefaultParams()
	params.JoinDangling = false
	params.Seed = 42

	tr := gridTracer(t, squareBound(150), 2, params)
	tr.Run()

	lines := tr.RawStreamlines()
	require.NotEmpty(t, lines, "a uniform field over an empty index must yield streamlines")

	dtest := tr.Params().Dtest
	limitSq := (dtest - 1e-9) * (dtest - 1e-9)
	for a := 0; a < len(lines); a++ {
		for b := a + 1; b < len(lines); b++ {
			if tr.dirs[a] != tr.dirs[b] {
				continue
			}
			for _, p := range lines[a] {
				for _, q := range lines[b] {
					if p.DistanceSq(q) < limitSq {
						t.Fatalf("streamlines %d and %d violate the separation invariant: %v vs %v",
							a, b, p, q)
					}
				}
			}
		}
	}
}

// TestTracer_WaterRejection places an exclusion ring mid-domain: no
// accepted sample may fall in water.
func TestTracer_WaterRejection(t *testing.T) {
	water := vec.ToRing([]vec.Vector{
		vec.V(-40, -40), vec.V(40, -40), vec.V(40, 40), vec.V(-40, 40), vec.V(-40, -40),
	})

	params := DefaultParams()
	params.Seed = 7

	tr := gridTracer(t, squareBound(150), 2, params, water)
	tr.Run()

	lines := tr.RawStreamlines()
	require.NotEmpty(t, lines)
	for _, pts := range lines {
		for _, p := range pts {
			require.True(t, tr.integ.OnLand(p), "accepted sample %v lies in water", p)
		}
	}
}

// TestTracer_RegionPredicate restricts generation to the left half of
// the domain through the injected predicate.
func TestTracer_RegionPredicate(t *testing.T) {
	params := DefaultParams()
	params.Seed = 3

	tr := gridTracer(t, squareBound(150), 2, params)
	tr.SetRegionPredicate(func(p vec.Vector) bool { return p.X <= 0 })
	tr.Run()

	lines := tr.RawStreamlines()
	require.NotEmpty(t, lines)
	for _, pts := range lines {
		for _, p := range pts {
			require.LessOrEqual(t, p.X, 0.0)
		}
	}
}

// TestTracer_UpdateResumable checks the cooperative stepping contract:
// Update reports more work, then completion, and stays done.
func TestTracer_UpdateResumable(t *testing.T) {
	params := DefaultParams()
	params.Seed = 9

	tr := gridTracer(t, squareBound(120), 2, params)

	require.True(t, tr.Update(), "first unit of work must report more work")
	require.False(t, tr.Done())

	steps := 1
	for tr.Update() {
		steps++
		require.Less(t, steps, 100000, "generation must terminate")
	}
	require.True(t, tr.Done())
	require.False(t, tr.Update(), "a finished tracer must stay finished")
	require.NotEmpty(t, tr.Streamlines())
}

// TestTracer_ClosedLoops traces the minor eigenvector of a radial
// field; ring streamlines must close via the circle-join rule, and the
// self-proximity property must hold on open ones.
func TestTracer_ClosedLoops(t *testing.T) {
	field := tensor.New([]tensor.Primitive{
		tensor.Radial{Center: vec.V(0, 0), Size: 1e9, Decay: 0},
	}, tensor.DefaultFieldOptions())
	integ, err := integrate.NewRK4(field, 2, nil)
	require.NoError(t, err)

	params := DefaultParams()
	params.PathIterations = 2000
	params.JoinDangling = false
	params.Seed = 11

	bound := squareBound(150)
	tr, err := New(integ, bound, NewPair(bound, params.Dsep), nil, params, DefaultModifiers())
	require.NoError(t, err)
	tr.Run()

	lines := tr.RawStreamlines()
	require.NotEmpty(t, lines)

	closedCount := 0
	for _, pts := range lines {
		if pts[0] == pts[len(pts)-1] {
			closedCount++
		}
	}
	require.Greater(t, closedCount, 0, "a radial field must close ring streamlines")

	// Property: along one open streamline, points more than NLookBack
	// steps apart stay at least DCircleJoin apart (no self-crossing
	// spirals). Closed rings wrap and are exempt.
	p := tr.Params()
	minSq := (p.DCircleJoin - 1e-9) * (p.DCircleJoin - 1e-9)
	for _, pts := range lines {
		if pts[0] == pts[len(pts)-1] {
			continue
		}
		for i := 0; i < len(pts); i++ {
			for j := i + p.NLookBack + 1; j < len(pts); j++ {
				if pts[i].DistanceSq(pts[j]) < minSq {
					t.Fatalf("open streamline self-approach between steps %d and %d", i, j)
				}
			}
		}
	}
}

// TestTracer_PerpendicularCrossing verifies that the two eigen
// directions ignore each other's samples by default: over a uniform
// grid field, some major streamline must pass within one step of a
// minor streamline, which a shared index would forbid.
func TestTracer_PerpendicularCrossing(t *testing.T) {
	params := DefaultParams()
	params.JoinDangling = false
	params.Seed = 42

	tr := gridTracer(t, squareBound(150), 2, params)
	tr.Run()

	lines := tr.RawStreamlines()
	require.NotEmpty(t, lines)

	minSq := math.Inf(1)
	for a := 0; a < len(lines); a++ {
		for b := a + 1; b < len(lines); b++ {
			if tr.dirs[a] == tr.dirs[b] {
				continue
			}
			for _, p := range lines[a] {
				for _, q := range lines[b] {
					if d := p.DistanceSq(q); d < minSq {
						minSq = d
					}
				}
			}
		}
	}
	require.Less(t, minSq, 4.0, "perpendicular streamlines must cross")
}

// TestFrontCollides_OppositeFront exercises the anti-crossing guard
// across both fronts of one streamline: a candidate approaching the
// opposite front far from the seed collides, while points near the
// seed and near the opposite front's head stay exempt.
func TestFrontCollides_OppositeFront(t *testing.T) {
	params := DefaultParams() // DCircleJoin 5, NLookBack 40
	tr := gridTracer(t, squareBound(200), 1, params)

	other := make([]vec.Vector, 100)
	for i := range other {
		other[i] = vec.V(float64(i), 0)
	}
	own := make([]vec.Vector, 50)
	for i := range own {
		own[i] = vec.V(float64(i), 30)
	}

	// Mid-course approach to the opposite front collides.
	require.True(t, tr.frontCollides(vec.V(50, 1), own, other))

	// The opposite front's trailing NLookBack points are exempt, so a
	// head-to-head re-approach stays open for circle closure.
	require.False(t, tr.frontCollides(vec.V(99, 1), own, other))

	// Points merged-adjacent to the seed are exempt.
	require.False(t, tr.frontCollides(vec.V(0, 1), []vec.Vector{vec.V(0, 2)}, other))

	// The own front still guards against self-approach on its own.
	require.True(t, tr.frontCollides(vec.V(0, 30), own, nil))
}

// TestSimplify_Properties: tolerance 0 is the identity; growing
// tolerance never increases the point count.
func TestSimplify_Properties(t *testing.T) {
	pts := []vec.Vector{
		vec.V(0, 0), vec.V(1, 0.2), vec.V(2, -0.1), vec.V(3, 0.4),
		vec.V(4, 0), vec.V(5, 1), vec.V(6, 0), vec.V(7, 0),
	}

	same := Simplify(pts, 0)
	require.Equal(t, pts, same, "tolerance 0 must return the original sequence")

	prev := len(pts)
	for _, tol := range []float64{0.05, 0.15, 0.5, 2, 10} {
		n := len(Simplify(pts, tol))
		require.LessOrEqual(t, n, prev, "tolerance %v increased point count", tol)
		prev = n
	}
	require.GreaterOrEqual(t, prev, 2, "simplification keeps the endpoints")
}

// TestJoinDanglingEnds splices a gap between two collinear streamlines
// and re-indexes the interpolated points.
func TestJoinDanglingEnds(t *testing.T) {
	bound := squareBound(100)
	params := DefaultParams()
	params.DLookahead = 10
	params.JoinAngle = 0.2

	tr := gridTracer(t, bound, 1, params)

	lineA := []vec.Vector{vec.V(0, 0), vec.V(1, 0), vec.V(2, 0), vec.V(3, 0), vec.V(4, 0), vec.V(5, 0)}
	lineB := []vec.Vector{vec.V(10, 0), vec.V(11, 0), vec.V(12, 0), vec.V(13, 0), vec.V(14, 0), vec.V(15, 0)}
	for _, pts := range [][]vec.Vector{lineA, lineB} {
		tr.self.Major.AddPolyline(pts)
		tr.raw = append(tr.raw, append([]vec.Vector(nil), pts...))
		tr.simple = append(tr.simple, append([]vec.Vector(nil), pts...))
		tr.closed = append(tr.closed, false)
		tr.dirs = append(tr.dirs, true)
	}

	tr.joinDanglingEnds()

	gotA := tr.raw[0]
	require.Equal(t, vec.V(10, 0), gotA[len(gotA)-1], "line A must join onto line B's head")
	require.Equal(t, vec.V(10, 0), tr.simple[0][len(tr.simple[0])-1])

	// The spliced midpoints are now indexed: a sample on the former
	// gap is no longer valid.
	require.False(t, tr.self.Major.IsValidSample(vec.V(7.5, 0), 1), "spliced points must be re-indexed")
}

// TestModifiers_PreserveStepLength applies every modifier and checks
// the step length is untouched while the angle moves.
func TestModifiers_PreserveStepLength(t *testing.T) {
	m := DefaultModifiers()
	m.NoiseEnabled = true
	m.TerrainEnabled = true
	m.TerrainThreshold = 0.01
	m.BiasEnabled = true
	m.BiasAngle = math.Pi / 2
	m.BiasStrength = 0.5
	m.CenterEnabled = true

	pb := newPerturber(m)
	dir := vec.V(2, 0)

	for _, p := range []vec.Vector{vec.V(0, 0), vec.V(37, -12), vec.V(500, 321)} {
		out := pb.apply(p, dir)
		require.InDelta(t, dir.Length(), out.Length(), 1e-9, "modifiers must preserve step length")
	}

	// Disabled modifiers are the identity.
	idle := newPerturber(DefaultModifiers())
	require.Equal(t, dir, idle.apply(vec.V(12, 34), dir))
}

// TestModifiers_CenterScale verifies the linear strength interpolation
// between the historical center and the urban edge.
func TestModifiers_CenterScale(t *testing.T) {
	m := DefaultModifiers()
	m.CenterEnabled = true
	m.Center = vec.V(0, 0)
	m.CenterInner = 100
	m.CenterOuter = 300
	m.CenterGain = 1
	m.EdgeGain = 0.2

	pb := newPerturber(m)

	require.InDelta(t, 1.0, pb.centerScale(vec.V(50, 0)), 1e-9, "inside inner radius")
	require.InDelta(t, 0.2, pb.centerScale(vec.V(500, 0)), 1e-9, "beyond outer radius")
	require.InDelta(t, 0.6, pb.centerScale(vec.V(200, 0)), 1e-9, "halfway interpolation")
}
