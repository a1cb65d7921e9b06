package planegraph

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tensorcity/tensorcity/vec"
)

func line(pts ...vec.Vector) []vec.Vector {
	return pts
}

// TestBuild_SingleCrossing crosses two segments: the crossing becomes
// a degree-4 node and each segment splits in two.
func TestBuild_SingleCrossing(t *testing.T) {
	g, err := Build([][]vec.Vector{
		line(vec.V(-10, 0), vec.V(10, 0)),
		line(vec.V(0, -10), vec.V(0, 10)),
	}, DefaultOptions())
	require.NoError(t, err)

	require.Len(t, g.Nodes, 5, "four endpoints plus one crossing")
	require.Len(t, g.Edges, 4, "each segment split at the crossing")

	var center *Node
	for _, n := range g.Nodes {
		if n.Point.Length() < 1e-6 {
			center = n
		}
	}
	require.NotNil(t, center, "crossing node missing")
	require.Equal(t, 4, g.Degree(center))
}

// TestBuild_GridTopology builds a tic-tac-toe of two horizontal and
// two vertical lines.
func TestBuild_GridTopology(t *testing.T) {
	g, err := Build([][]vec.Vector{
		line(vec.V(-10, -3), vec.V(10, -3)),
		line(vec.V(-10, 3), vec.V(10, 3)),
		line(vec.V(-3, -10), vec.V(-3, 10)),
		line(vec.V(3, -10), vec.V(3, 10)),
	}, DefaultOptions())
	require.NoError(t, err)

	require.Len(t, g.Nodes, 12, "8 line ends + 4 crossings")
	require.Len(t, g.Edges, 12, "each line cut into 3 edges")
}

// TestBuild_SnapsNearbyEndpoints unifies endpoints closer than the
// snap tolerance into a single node.
func TestBuild_SnapsNearbyEndpoints(t *testing.T) {
	opts := DefaultOptions()
	opts.SnapTolerance = 1

	g, err := Build([][]vec.Vector{
		line(vec.V(0, 0), vec.V(10, 0)),
		line(vec.V(10.4, 0.3), vec.V(20, 0)),
	}, opts)
	require.NoError(t, err)

	require.Len(t, g.Nodes, 3, "the two near-coincident ends must merge")
	require.Len(t, g.Edges, 2)

	// The merged node carries both edges.
	for _, n := range g.Nodes {
		if n.Point.Distance(vec.V(10, 0)) <= opts.SnapTolerance {
			require.Equal(t, 2, g.Degree(n))
		}
	}
}

// TestBuild_TJunction rests one polyline's endpoint on another's
// interior: the contact must become a degree-3 node, not a dangling
// overlap.
func TestBuild_TJunction(t *testing.T) {
	opts := DefaultOptions()
	opts.SnapTolerance = 0.5

	g, err := Build([][]vec.Vector{
		line(vec.V(-10, 0), vec.V(10, 0)),
		line(vec.V(0, 5), vec.V(0, 0.2)), // ends just above the horizontal
	}, opts)
	require.NoError(t, err)

	require.Len(t, g.Nodes, 4, "two ends, the junction, the vertical's far end")
	require.Len(t, g.Edges, 3)

	var junction *Node
	for _, n := range g.Nodes {
		if g.Degree(n) == 3 {
			junction = n
		}
	}
	require.NotNil(t, junction, "T-junction node missing")
	require.InDelta(t, 0, junction.Point.Y, opts.SnapTolerance+1e-9)
}

// TestBuild_NoAliasing mutates the input after Build; the graph must
// keep its own coordinates.
func TestBuild_NoAliasing(t *testing.T) {
	input := [][]vec.Vector{line(vec.V(0, 0), vec.V(10, 0))}
	g, err := Build(input, DefaultOptions())
	require.NoError(t, err)

	input[0][0] = vec.V(999, 999)

	for _, n := range g.Nodes {
		require.Less(t, n.Point.Length(), 100.0, "graph aliases caller's slice")
	}
}

// TestBuild_ErrNoSegments rejects degenerate input.
func TestBuild_ErrNoSegments(t *testing.T) {
	_, err := Build(nil, DefaultOptions())
	require.ErrorIs(t, err, ErrNoSegments)

	_, err = Build([][]vec.Vector{{vec.V(1, 1)}}, DefaultOptions())
	require.ErrorIs(t, err, ErrNoSegments)
}
