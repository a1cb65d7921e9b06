package blocks

import (
	"math"
	"testing"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
	"github.com/stretchr/testify/require"

	"github.com/tensorcity/tensorcity/planegraph"
	"github.com/tensorcity/tensorcity/vec"
)

func ring(pts ...vec.Vector) orb.Ring {
	return vec.ToRing(append(pts, pts[0]))
}

func rect(w, h float64) orb.Ring {
	return ring(vec.V(0, 0), vec.V(w, 0), vec.V(w, h), vec.V(0, h))
}

// TestFind_TicTacToe extracts the single bounded face of a # -shaped
// street graph.
func TestFind_TicTacToe(t *testing.T) {
	g, err := planegraph.Build([][]vec.Vector{
		{vec.V(-10, -3), vec.V(10, -3)},
		{vec.V(-10, 3), vec.V(10, 3)},
		{vec.V(-3, -10), vec.V(-3, 10)},
		{vec.V(3, -10), vec.V(3, 10)},
	}, planegraph.DefaultOptions())
	require.NoError(t, err)

	faces := Find(g)
	require.Len(t, faces, 1, "exactly the center block, no outer face")
	require.InDelta(t, 36, planar.Area(faces[0]), 1e-6)
}

// TestFind_AdjacentBlocks extracts two faces sharing an edge exactly
// once each.
func TestFind_AdjacentBlocks(t *testing.T) {
	g, err := planegraph.Build([][]vec.Vector{
		{vec.V(0, 0), vec.V(20, 0)},
		{vec.V(0, 10), vec.V(20, 10)},
		{vec.V(0, 0), vec.V(0, 10)},
		{vec.V(10, 0), vec.V(10, 10)},
		{vec.V(20, 0), vec.V(20, 10)},
	}, planegraph.DefaultOptions())
	require.NoError(t, err)

	faces := Find(g)
	require.Len(t, faces, 2)

	total := 0.0
	for _, f := range faces {
		total += planar.Area(f)
	}
	require.InDelta(t, 200, total, 1e-6, "two 10×10 blocks")
}

// TestFind_LatticeBlocks extracts every cell of a 4×4 line lattice:
// nine unit blocks, never one merged outer hull.
func TestFind_LatticeBlocks(t *testing.T) {
	var lines [][]vec.Vector
	for _, c := range []float64{0, 10, 20, 30} {
		lines = append(lines,
			[]vec.Vector{vec.V(0, c), vec.V(30, c)},
			[]vec.Vector{vec.V(c, 0), vec.V(c, 30)},
		)
	}
	g, err := planegraph.Build(lines, planegraph.DefaultOptions())
	require.NoError(t, err)

	faces := Find(g)
	require.Len(t, faces, 9)
	for i, f := range faces {
		require.InDelta(t, 100, planar.Area(f), 1e-6, "cell %d must be a 10×10 block", i)
	}
}

// TestFind_NilAndOpenGraph returns nothing for nil graphs and for
// graphs without cycles.
func TestFind_NilAndOpenGraph(t *testing.T) {
	require.Nil(t, Find(nil))

	g, err := planegraph.Build([][]vec.Vector{
		{vec.V(0, 0), vec.V(10, 0), vec.V(20, 5)},
	}, planegraph.DefaultOptions())
	require.NoError(t, err)
	require.Empty(t, Find(g), "an open polyline bounds no face")
}

// TestShrink_MonotoneArea checks area(shrink(s2)) ≤ area(shrink(s1)) ≤
// area(original) for s1 < s2.
func TestShrink_MonotoneArea(t *testing.T) {
	block := rect(40, 30)
	orig := planar.Area(block)

	s1 := Shrink([]orb.Ring{block}, 2)
	s2 := Shrink([]orb.Ring{block}, 5)
	require.Len(t, s1, 1)
	require.Len(t, s2, 1)

	a1, a2 := planar.Area(s1[0]), planar.Area(s2[0])
	require.LessOrEqual(t, a2, a1)
	require.LessOrEqual(t, a1, orig)

	// The 40×30 rectangle inset by 2 is exactly 36×26.
	require.InDelta(t, 36*26, a1, 1e-6)
}

// TestShrink_DegenerateDropped insets past the polygon's half-width;
// the collapsed result must be skipped, not returned inverted.
func TestShrink_DegenerateDropped(t *testing.T) {
	got := Shrink([]orb.Ring{rect(10, 4)}, 3)
	require.Empty(t, got, "a 10×4 block cannot inset by 3")
}

// TestShrink_WindingAgnostic accepts clockwise input rings.
func TestShrink_WindingAgnostic(t *testing.T) {
	cw := ring(vec.V(0, 10), vec.V(10, 10), vec.V(10, 0), vec.V(0, 0))
	got := Shrink([]orb.Ring{cw}, 1)
	require.Len(t, got, 1)
	require.InDelta(t, 64, planar.Area(got[0]), 1e-6)
}

// TestDivide_ChanceOne leaves every block undivided at
// ChanceNoDivide=1, regardless of MaxLength.
func TestDivide_ChanceOne(t *testing.T) {
	opts := DefaultDivideOptions()
	opts.ChanceNoDivide = 1
	opts.MaxLength = 1
	opts.MinArea = 1

	in := []orb.Ring{rect(100, 60), rect(300, 10)}
	got := Divide(in, opts)
	require.Len(t, got, len(in))
	for i := range got {
		require.InDelta(t, planar.Area(in[i]), planar.Area(got[i]), 1e-6,
			"block %d area must be untouched", i)
	}
}

// TestDivide_AreaFloor verifies no produced lot undercuts MinArea, and
// that the input area is conserved across the division.
func TestDivide_AreaFloor(t *testing.T) {
	opts := DefaultDivideOptions()
	opts.ChanceNoDivide = 0
	opts.MaxLength = 20
	opts.MinArea = 150
	opts.Seed = 5

	block := rect(120, 50)
	lots := Divide([]orb.Ring{block}, opts)
	require.Greater(t, len(lots), 1, "a 120×50 block with MaxLength=20 must divide")

	total := 0.0
	for _, lot := range lots {
		a := planar.Area(lot)
		require.GreaterOrEqual(t, a, opts.MinArea-1e-6, "lot below the area floor")
		total += a
	}
	require.InDelta(t, planar.Area(block), total, 1e-6, "division must conserve area")
}

// TestDivide_SmallBlockPassThrough keeps a block already below MinArea
// as a single lot.
func TestDivide_SmallBlockPassThrough(t *testing.T) {
	opts := DefaultDivideOptions()
	opts.ChanceNoDivide = 0
	opts.MaxLength = 1
	opts.MinArea = 1000

	small := rect(10, 10)
	lots := Divide([]orb.Ring{small}, opts)
	require.Len(t, lots, 1)
	require.InDelta(t, 100, planar.Area(lots[0]), 1e-6)
}

// TestDivide_Triangle splits a non-rectangular polygon without
// producing self-intersecting lots.
func TestDivide_Triangle(t *testing.T) {
	opts := DefaultDivideOptions()
	opts.ChanceNoDivide = 0
	opts.MaxLength = 30
	opts.MinArea = 100
	opts.Seed = 2

	tri := ring(vec.V(0, 0), vec.V(100, 0), vec.V(50, 80))
	lots := Divide([]orb.Ring{tri}, opts)
	require.NotEmpty(t, lots)

	total := 0.0
	for _, lot := range lots {
		pts := dedupe(vec.FromRing(lot))
		require.False(t, selfIntersects(pts), "lot must stay a simple polygon")
		total += math.Abs(signedArea(pts))
	}
	require.InDelta(t, 100*80/2, total, 1e-6)
}
