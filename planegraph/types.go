package planegraph

import (
	"errors"

	"github.com/tensorcity/tensorcity/vec"
)

var (
	// ErrNoSegments indicates the input polylines held no segment of
	// usable length.
	ErrNoSegments = errors.New("planegraph: input contains no usable segments")
)

// Options tunes graph construction.
type Options struct {
	// SnapTolerance unifies points closer than this into one node.
	// Non-positive values are clamped to a small default.
	SnapTolerance float64

	// Eps is the geometric epsilon for intersection classification.
	Eps float64
}

// DefaultOptions returns SnapTolerance=0.5, Eps=1e-9.
func DefaultOptions() Options {
	return Options{SnapTolerance: 0.5, Eps: 1e-9}
}

// normalized clamps invalid option values.
func (o Options) normalized() Options {
	if o.SnapTolerance <= 0 {
		o.SnapTolerance = 0.5
	}
	if o.Eps <= 0 {
		o.Eps = 1e-9
	}

	return o
}

// Node is a graph vertex: a snapped point and its incident edges.
// ID is the insertion index, stable across a single Build.
type Node struct {
	ID    int
	Point vec.Vector
	Edges []*Edge
}

// Edge connects exactly two distinct nodes with no interior crossing.
type Edge struct {
	ID   int
	A, B *Node
}

// Other returns the opposite endpoint of e relative to n, or nil if n
// is not an endpoint.
func (e *Edge) Other(n *Node) *Node {
	switch n {
	case e.A:
		return e.B
	case e.B:
		return e.A
	default:
		return nil
	}
}

// Graph is the planar topology built from streamlines. It owns its
// nodes and edges exclusively.
type Graph struct {
	Nodes []*Node
	Edges []*Edge
}

// Degree returns the number of incident edges of node n.
func (g *Graph) Degree(n *Node) int {
	return len(n.Edges)
}
