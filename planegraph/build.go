package planegraph

import (
	"fmt"
	"math"
	"sort"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/quadtree"

	"github.com/tensorcity/tensorcity/vec"
)

// segment is one polyline piece awaiting splitting.
type segment struct {
	a, b vec.Vector
	cuts []float64 // interior split parameters in (0,1)
}

// nodeRef adapts a Node for quadtree storage.
type nodeRef struct {
	n *Node
}

// Point implements orb.Pointer.
func (r nodeRef) Point() orb.Point {
	return r.n.Point.ToOrb()
}

// builder carries the transient state of one Build call.
type builder struct {
	opts  Options
	segs  []*segment
	ends  []vec.Vector // polyline endpoints, for T-junction splitting
	cell  float64
	graph *Graph
	qt    *quadtree.Quadtree
	min   vec.Vector
	max   vec.Vector
}

// Build constructs the planar graph of the given polylines. Input
// coordinates are copied; the graph never aliases the caller's slices.
func Build(streamlines [][]vec.Vector, opts Options) (*Graph, error) {
	b := &builder{
		opts:  opts.normalized(),
		graph: &Graph{},
		min:   vec.V(math.Inf(1), math.Inf(1)),
		max:   vec.V(math.Inf(-1), math.Inf(-1)),
	}

	// 1. Collect usable segments and dangling endpoints.
	b.collect(streamlines)
	if len(b.segs) == 0 {
		return nil, ErrNoSegments
	}

	// 2. Record interior crossings pairwise via spatial buckets.
	b.intersectAll()

	// 3. Record T-junction splits where a polyline endpoint rests on
	// another segment's interior within the snap tolerance.
	b.splitAtEndpoints()

	// 4. Split segments at their cut parameters and snap the resulting
	// endpoints into unified nodes.
	if err := b.emit(); err != nil {
		return nil, err
	}

	return b.graph, nil
}

// collect gathers segments, endpoints, and the working bound.
func (b *builder) collect(streamlines [][]vec.Vector) {
	total := 0.0
	for _, pts := range streamlines {
		for i := 0; i+1 < len(pts); i++ {
			a, bb := pts[i], pts[i+1]
			if a.DistanceSq(bb) < b.opts.Eps*b.opts.Eps {
				continue // degenerate zero-length piece
			}
			b.segs = append(b.segs, &segment{a: a, b: bb})
			total += a.Distance(bb)
			b.grow(a)
			b.grow(bb)
		}
		if len(pts) >= 2 {
			b.ends = append(b.ends, pts[0], pts[len(pts)-1])
		}
	}

	if len(b.segs) > 0 {
		b.cell = math.Max(2*total/float64(len(b.segs)), 4*b.opts.SnapTolerance)
		if b.cell < 1e-3 {
			b.cell = 1e-3
		}
	}
}

func (b *builder) grow(p vec.Vector) {
	b.min = vec.V(math.Min(b.min.X, p.X), math.Min(b.min.Y, p.Y))
	b.max = vec.V(math.Max(b.max.X, p.X), math.Max(b.max.Y, p.Y))
}

// cellRange yields the inclusive bucket coordinate range of a bbox.
func (b *builder) cellRange(lo, hi float64) (int, int) {
	return int(math.Floor(lo / b.cell)), int(math.Floor(hi / b.cell))
}

// bucketSegments maps cell coordinates to the segments overlapping
// them (by bounding box, expanded by pad).
func (b *builder) bucketSegments(pad float64) map[[2]int][]int {
	buckets := make(map[[2]int][]int, len(b.segs))
	for i, s := range b.segs {
		x0, x1 := b.cellRange(math.Min(s.a.X, s.b.X)-pad, math.Max(s.a.X, s.b.X)+pad)
		y0, y1 := b.cellRange(math.Min(s.a.Y, s.b.Y)-pad, math.Max(s.a.Y, s.b.Y)+pad)
		for y := y0; y <= y1; y++ {
			for x := x0; x <= x1; x++ {
				key := [2]int{x, y}
				buckets[key] = append(buckets[key], i)
			}
		}
	}

	return buckets
}

// intersectAll tests every bucket-sharing segment pair once.
func (b *builder) intersectAll() {
	buckets := b.bucketSegments(0)
	seen := make(map[[2]int]bool)

	for _, ids := range buckets {
		for x := 0; x < len(ids); x++ {
			for y := x + 1; y < len(ids); y++ {
				i, j := ids[x], ids[y]
				if i > j {
					i, j = j, i
				}
				key := [2]int{i, j}
				if seen[key] {
					continue
				}
				seen[key] = true
				b.intersectPair(b.segs[i], b.segs[j])
			}
		}
	}
}

// intersectPair records interior crossing parameters on both segments.
// Parallel and collinear pairs are left untouched: overlapping
// collinear geometry is resolved by node snapping alone (recorded
// tie-break decision).
func (b *builder) intersectPair(s1, s2 *segment) {
	r := s1.b.Sub(s1.a)
	s := s2.b.Sub(s2.a)
	denom := r.Cross(s)
	if math.Abs(denom) < 1e-12 {
		return
	}

	qp := s2.a.Sub(s1.a)
	t := qp.Cross(s) / denom
	u := qp.Cross(r) / denom

	const m = 1e-9
	if t < -m || t > 1+m || u < -m || u > 1+m {
		return
	}
	if t > m && t < 1-m {
		s1.cuts = append(s1.cuts, t)
	}
	if u > m && u < 1-m {
		s2.cuts = append(s2.cuts, u)
	}
}

// splitAtEndpoints cuts segments where a dangling polyline endpoint
// lies on their interior within the snap tolerance, so joined ends
// become T-junction nodes instead of dangling edges.
func (b *builder) splitAtEndpoints() {
	tol := b.opts.SnapTolerance
	buckets := b.bucketSegments(tol)

	endBuckets := make(map[[2]int][]vec.Vector)
	for _, e := range b.ends {
		x, _ := b.cellRange(e.X, e.X)
		y, _ := b.cellRange(e.Y, e.Y)
		key := [2]int{x, y}
		endBuckets[key] = append(endBuckets[key], e)
	}

	for key, ids := range buckets {
		ends := endBuckets[key]
		if len(ends) == 0 {
			continue
		}
		for _, si := range ids {
			s := b.segs[si]
			dir := s.b.Sub(s.a)
			l2 := dir.LengthSq()
			if l2 < 1e-12 {
				continue
			}
			for _, e := range ends {
				t := e.Sub(s.a).Dot(dir) / l2
				if t <= 0 || t >= 1 {
					continue
				}
				proj := s.a.Add(dir.Scale(t))
				if proj.Distance(e) > tol {
					continue
				}
				// Cuts landing on a segment endpoint collapse during
				// node snapping; skip them here.
				if proj.Distance(s.a) <= tol || proj.Distance(s.b) <= tol {
					continue
				}
				s.cuts = append(s.cuts, t)
			}
		}
	}
}

// emit splits every segment at its sorted cuts and wires the
// sub-segments into snapped nodes and deduplicated edges.
func (b *builder) emit() error {
	pad := b.opts.SnapTolerance + 1
	bound := orb.Bound{
		Min: orb.Point{b.min.X - pad, b.min.Y - pad},
		Max: orb.Point{b.max.X + pad, b.max.Y + pad},
	}
	b.qt = quadtree.New(bound)

	edgeSeen := make(map[[2]int]bool)
	for _, s := range b.segs {
		ts := append([]float64{0}, s.cuts...)
		ts = append(ts, 1)
		sort.Float64s(ts)

		dir := s.b.Sub(s.a)
		prev := s.a
		for i := 1; i < len(ts); i++ {
			cur := s.a.Add(dir.Scale(ts[i]))
			if err := b.addEdge(prev, cur, edgeSeen); err != nil {
				return err
			}
			prev = cur
		}
	}

	return nil
}

// addEdge snaps both endpoints to nodes and records the edge once.
func (b *builder) addEdge(p, q vec.Vector, seen map[[2]int]bool) error {
	na, err := b.findOrCreateNode(p)
	if err != nil {
		return err
	}
	nb, err := b.findOrCreateNode(q)
	if err != nil {
		return err
	}
	if na == nb {
		return nil // collapsed by snapping
	}

	lo, hi := na.ID, nb.ID
	if lo > hi {
		lo, hi = hi, lo
	}
	key := [2]int{lo, hi}
	if seen[key] {
		return nil
	}
	seen[key] = true

	e := &Edge{ID: len(b.graph.Edges), A: na, B: nb}
	b.graph.Edges = append(b.graph.Edges, e)
	na.Edges = append(na.Edges, e)
	nb.Edges = append(nb.Edges, e)

	return nil
}

// findOrCreateNode returns the existing node within SnapTolerance of
// p, or registers a new one. The padded working bound covers every
// collected point, so Add failing means the builder's bookkeeping is
// broken; surface it rather than dropping the node.
func (b *builder) findOrCreateNode(p vec.Vector) (*Node, error) {
	if near := b.qt.KNearest(nil, p.ToOrb(), 1, b.opts.SnapTolerance); len(near) > 0 {
		return near[0].(nodeRef).n, nil
	}

	n := &Node{ID: len(b.graph.Nodes), Point: p}
	if err := b.qt.Add(nodeRef{n: n}); err != nil {
		return nil, fmt.Errorf("planegraph: index node: %w", err)
	}
	b.graph.Nodes = append(b.graph.Nodes, n)

	return n, nil
}
