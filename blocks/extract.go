package blocks

import (
	"math"

	"github.com/paulmach/orb"

	"github.com/tensorcity/tensorcity/planegraph"
	"github.com/tensorcity/tensorcity/vec"
)

// halfKey identifies a directed edge: the edge ID plus the origin
// node's ID.
type halfKey struct {
	edge int
	from int
}

// Find traces the bounded faces (blocks) of the planar graph. Every
// directed edge is walked at most once; faces traced counterclockwise
// (positive signed area) are the blocks, the clockwise outer face is
// dropped. A nil graph yields nil.
func Find(g *planegraph.Graph) []orb.Ring {
	if g == nil {
		return nil
	}

	visited := make(map[halfKey]bool, 2*len(g.Edges))
	var out []orb.Ring

	for _, e := range g.Edges {
		for _, start := range []*planegraph.Node{e.A, e.B} {
			if visited[halfKey{e.ID, start.ID}] {
				continue
			}
			if ring := walkFace(g, e, start, visited); ring != nil {
				out = append(out, ring)
			}
		}
	}

	return out
}

// walkFace follows most-counterclockwise next edges from the directed
// edge (e, from) until it returns to its start, marking every directed
// edge it consumes. It returns the face as a closed ring, or nil for
// the outer face and degenerate walks.
func walkFace(g *planegraph.Graph, e *planegraph.Edge, from *planegraph.Node, visited map[halfKey]bool) orb.Ring {
	maxSteps := 2*len(g.Edges) + 4

	var pts []vec.Vector
	curEdge, curFrom := e, from
	for steps := 0; ; steps++ {
		if steps > maxSteps {
			return nil // walk failed to close; abandon, never loop forever
		}
		visited[halfKey{curEdge.ID, curFrom.ID}] = true
		pts = appendPruned(pts, curFrom.Point)

		to := curEdge.Other(curFrom)
		curEdge = nextCCW(to, curEdge)
		curFrom = to

		if curEdge == e && curFrom == from {
			break
		}
	}

	pts = dedupe(pts)
	if len(pts) < 3 || signedArea(pts) <= areaEps {
		return nil
	}

	return vec.ToRing(closeRing(pts))
}

// appendPruned appends p, collapsing immediate out-and-back spurs
// (…, a, b, a → …, a) so faces with dead-end stubs stay simple.
func appendPruned(pts []vec.Vector, p vec.Vector) []vec.Vector {
	if n := len(pts); n >= 2 && pts[n-2].DistanceSq(p) < 1e-18 {
		return pts[:n-1]
	}

	return append(pts, p)
}

// nextCCW picks the next edge of a face walk arriving at node n via
// edge in: the incident edge with the largest counterclockwise angle
// from the reversed incoming direction, the sharpest left turn from
// the direction of travel, so bounded faces trace counterclockwise.
// Exact ties (collinear duplicate geometry) fall to the lowest edge
// ID; a dead end walks back along the incoming edge.
func nextCCW(n *planegraph.Node, in *planegraph.Edge) *planegraph.Edge {
	back := in.Other(n)
	ref := back.Point.Sub(n.Point).Angle()

	var best *planegraph.Edge
	bestDelta := math.Inf(-1)
	for _, cand := range n.Edges {
		if cand == in {
			continue
		}
		other := cand.Other(n)
		if other == nil {
			continue
		}
		delta := math.Mod(other.Point.Sub(n.Point).Angle()-ref, 2*math.Pi)
		if delta <= 0 {
			delta += 2 * math.Pi
		}
		if delta > bestDelta+1e-12 || (math.Abs(delta-bestDelta) <= 1e-12 && best != nil && cand.ID < best.ID) {
			bestDelta = delta
			best = cand
		}
	}
	if best == nil {
		return in // dead end: reverse
	}

	return best
}
