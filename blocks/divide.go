package blocks

import (
	"math"
	"math/rand"

	"github.com/paulmach/orb"

	"github.com/tensorcity/tensorcity/vec"
)

// Divide recursively subdivides each block into lots. A block divides
// along its longest edge's perpendicular bisector while that edge
// exceeds MaxLength and both halves keep at least MinArea; each
// pending division is skipped with probability ChanceNoDivide.
// Recursion is bounded by the area floor. Blocks already below
// MinArea pass through untouched.
func Divide(rings []orb.Ring, opts DivideOptions) []orb.Ring {
	opts = opts.normalized()
	rng := rand.New(rand.NewSource(opts.Seed))

	var out []orb.Ring
	for _, r := range rings {
		pts := dedupe(vec.FromRing(r))
		if len(pts) < 3 {
			continue
		}
		if signedArea(pts) < 0 {
			reverse(pts)
		}
		for _, lot := range divideLoop(pts, opts, rng) {
			out = append(out, vec.ToRing(closeRing(lot)))
		}
	}

	return out
}

// divideLoop is the recursive bisection over an open CCW vertex loop.
func divideLoop(pts []vec.Vector, opts DivideOptions, rng *rand.Rand) [][]vec.Vector {
	area := signedArea(pts)
	if area < 2*opts.MinArea {
		return [][]vec.Vector{pts} // both halves could not reach the floor
	}

	ei, elen := longestEdge(pts)
	if opts.MaxLength > 0 && elen <= opts.MaxLength {
		return [][]vec.Vector{pts}
	}
	if rng.Float64() < opts.ChanceNoDivide {
		return [][]vec.Vector{pts} // stochastic lot-size variation
	}

	a, b := pts[ei], pts[(ei+1)%len(pts)]
	mid := a.Mid(b)
	dir := b.Sub(a).Perp().Normalize()

	left, right, ok := splitByLine(pts, mid, dir)
	if !ok {
		return [][]vec.Vector{pts}
	}
	if math.Abs(signedArea(left)) < opts.MinArea || math.Abs(signedArea(right)) < opts.MinArea {
		return [][]vec.Vector{pts} // a half would undercut the floor
	}

	out := divideLoop(left, opts, rng)

	return append(out, divideLoop(right, opts, rng)...)
}

// longestEdge returns the index and length of the longest edge.
func longestEdge(pts []vec.Vector) (int, float64) {
	best, bestLen := 0, -1.0
	for i := range pts {
		l := pts[i].Distance(pts[(i+1)%len(pts)])
		if l > bestLen {
			best, bestLen = i, l
		}
	}

	return best, bestLen
}

// splitByLine cuts an open loop by the infinite line through origin
// along dir. It handles the plain case of exactly two boundary
// crossings with no vertex on the line; anything else reports !ok and
// the caller keeps the loop whole (recorded decision: partial
// division is already a normal outcome of the stochastic skip).
func splitByLine(pts []vec.Vector, origin, dir vec.Vector) (left, right []vec.Vector, ok bool) {
	n := len(pts)
	sides := make([]float64, n)
	for i, p := range pts {
		sides[i] = dir.Cross(p.Sub(origin))
		if math.Abs(sides[i]) < 1e-9 {
			return nil, nil, false // vertex on the cut line
		}
	}

	crossings := 0
	for i := 0; i < n; i++ {
		if sides[i]*sides[(i+1)%n] < 0 {
			crossings++
		}
	}
	if crossings != 2 {
		return nil, nil, false
	}

	for i := 0; i < n; i++ {
		j := (i + 1) % n
		if sides[i] > 0 {
			left = append(left, pts[i])
		} else {
			right = append(right, pts[i])
		}
		if sides[i]*sides[j] < 0 {
			t := sides[i] / (sides[i] - sides[j])
			x := pts[i].Lerp(pts[j], t)
			left = append(left, x)
			right = append(right, x)
		}
	}
	if len(left) < 3 || len(right) < 3 {
		return nil, nil, false
	}

	return left, right, true
}
