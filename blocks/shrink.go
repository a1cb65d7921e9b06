package blocks

import (
	"math"

	"github.com/paulmach/orb"

	"github.com/tensorcity/tensorcity/vec"
)

// Shrink offsets each block inward by spacing, emulating sidewalks and
// setbacks. Polygons that degenerate under the offset (non-positive
// area, self-intersection, or growth) are skipped, so the result may
// hold fewer polygons than the input.
func Shrink(rings []orb.Ring, spacing float64) []orb.Ring {
	if spacing < 0 {
		spacing = 0
	}

	out := make([]orb.Ring, 0, len(rings))
	for _, r := range rings {
		if inset := shrinkRing(r, spacing); inset != nil {
			out = append(out, inset)
		}
	}

	return out
}

// shrinkRing miter-insets one ring: each edge moves inward along its
// interior normal, and consecutive offset lines intersect at the new
// vertices. Near-parallel corners fall back to the averaged-normal
// offset point. Returns nil when the inset degenerates.
func shrinkRing(ring orb.Ring, spacing float64) orb.Ring {
	pts := dedupe(vec.FromRing(ring))
	if len(pts) < 3 {
		return nil
	}

	origArea := signedArea(pts)
	if origArea < 0 {
		reverse(pts)
		origArea = -origArea
	}
	if origArea <= areaEps {
		return nil
	}
	if spacing == 0 {
		return vec.ToRing(closeRing(pts))
	}

	n := len(pts)
	dirs := make([]vec.Vector, n)    // edge i: pts[i] → pts[i+1]
	normals := make([]vec.Vector, n) // interior (left) normal of edge i
	for i := 0; i < n; i++ {
		d := pts[(i+1)%n].Sub(pts[i]).Normalize()
		dirs[i] = d
		normals[i] = d.Perp()
	}

	inset := make([]vec.Vector, n)
	for i := 0; i < n; i++ {
		prev := (i - 1 + n) % n
		a1 := pts[prev].Add(normals[prev].Scale(spacing))
		a2 := pts[i].Add(normals[i].Scale(spacing))

		denom := dirs[prev].Cross(dirs[i])
		if math.Abs(denom) < 1e-9 {
			// Collinear corner: both offset lines agree.
			inset[i] = pts[i].Add(normals[i].Scale(spacing))

			continue
		}
		t := a2.Sub(a1).Cross(dirs[i]) / denom
		inset[i] = a1.Add(dirs[prev].Scale(t))
	}

	inset = dedupe(inset)
	if len(inset) < 3 {
		return nil
	}
	area := signedArea(inset)
	if area <= areaEps || area >= origArea {
		return nil // collapsed, inverted, or grown: degenerate offset
	}
	if selfIntersects(inset) {
		return nil
	}

	return vec.ToRing(closeRing(inset))
}

// reverse flips the winding in place.
func reverse(pts []vec.Vector) {
	for i, j := 0, len(pts)-1; i < j; i, j = i+1, j-1 {
		pts[i], pts[j] = pts[j], pts[i]
	}
}

// selfIntersects reports any proper crossing between non-adjacent
// edges of an open loop. O(n²), acceptable at block vertex counts.
func selfIntersects(pts []vec.Vector) bool {
	n := len(pts)
	for i := 0; i < n; i++ {
		a1, a2 := pts[i], pts[(i+1)%n]
		for j := i + 2; j < n; j++ {
			if i == 0 && j == n-1 {
				continue // adjacent through the wrap
			}
			b1, b2 := pts[j], pts[(j+1)%n]
			if segmentsCross(a1, a2, b1, b2) {
				return true
			}
		}
	}

	return false
}

// segmentsCross reports a proper interior crossing of two segments.
func segmentsCross(p1, p2, q1, q2 vec.Vector) bool {
	r := p2.Sub(p1)
	s := q2.Sub(q1)
	denom := r.Cross(s)
	if math.Abs(denom) < 1e-12 {
		return false
	}
	qp := q1.Sub(p1)
	t := qp.Cross(s) / denom
	u := qp.Cross(r) / denom
	const m = 1e-9

	return t > m && t < 1-m && u > m && u < 1-m
}
