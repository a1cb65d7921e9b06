package trace

import (
	"math"

	"github.com/tensorcity/tensorcity/vec"
)

// ownPointEps treats candidate points this close to a streamline's own
// samples as belonging to it.
const ownPointEps = 1e-9

// joinDanglingEnds visually connects open streamline endpoints to
// compatible nearby samples: same general heading within JoinAngle,
// ahead of the endpoint, within DLookahead. Spliced points are
// re-inserted into the index so later queries see the extension.
func (t *Tracer) joinDanglingEnds() {
	for si := range t.raw {
		if t.closed[si] || len(t.raw[si]) < 2 {
			continue
		}
		t.joinEnd(si, false)
		t.joinEnd(si, true)
	}
}

// joinEnd extends one end (atStart selects which) of streamline si.
func (t *Tracer) joinEnd(si int, atStart bool) {
	raw := t.raw[si]

	var end, inner vec.Vector
	if atStart {
		end, inner = raw[0], raw[1]
	} else {
		end, inner = raw[len(raw)-1], raw[len(raw)-2]
	}
	heading := end.Sub(inner).Normalize()
	if heading.LengthSq() < 1e-12 {
		return
	}

	best, ok := t.bestJoinTarget(si, end, heading)
	if !ok {
		return
	}

	// Splice interpolated points at step intervals from the endpoint
	// (exclusive) to the target (inclusive).
	step := t.integ.StepSize()
	dist := end.Distance(best)
	n := int(dist / step)
	splice := make([]vec.Vector, 0, n+1)
	for k := 1; k <= n; k++ {
		frac := float64(k) * step / dist
		if frac >= 1-1e-9 {
			break // the target itself closes the splice
		}
		q := end.Lerp(best, frac)
		splice = append(splice, q)
		t.self.grid(t.dirs[si]).AddSample(q)
	}
	splice = append(splice, best)

	if atStart {
		reversed := make([]vec.Vector, len(splice))
		for i, q := range splice {
			reversed[len(splice)-1-i] = q
		}
		t.raw[si] = append(reversed, raw...)
		t.simple[si] = append([]vec.Vector{best}, t.simple[si]...)
	} else {
		t.raw[si] = append(raw, splice...)
		t.simple[si] = append(t.simple[si], best)
	}
}

// bestJoinTarget scans every grid of both tiers around end for the
// compatible point with the smallest heading deviation. Joins connect
// visually, so direction and tier do not restrict the target set.
func (t *Tracer) bestJoinTarget(si int, end, heading vec.Vector) (vec.Vector, bool) {
	cands := t.self.Major.Nearby(end, t.params.DLookahead)
	cands = append(cands, t.self.Minor.Nearby(end, t.params.DLookahead)...)
	if t.sibling != nil {
		cands = append(cands, t.sibling.Major.Nearby(end, t.params.DLookahead)...)
		cands = append(cands, t.sibling.Minor.Nearby(end, t.params.DLookahead)...)
	}

	var best vec.Vector
	bestAngle := t.params.JoinAngle
	bestDistSq := math.Inf(1)
	found := false
	for _, c := range cands {
		v := c.Sub(end)
		if v.LengthSq() < ownPointEps {
			continue
		}
		if v.Dot(heading) <= 0 {
			continue // behind the endpoint
		}
		if t.isOwnPoint(si, c) {
			continue
		}
		a := heading.AngleBetween(v)
		if a > bestAngle {
			continue
		}
		// Smaller deviation wins; equal deviation falls to the nearer
		// target so splices never skip over intermediate samples.
		if found && a > bestAngle-1e-12 && v.LengthSq() >= bestDistSq {
			continue
		}
		bestAngle = a
		bestDistSq = v.LengthSq()
		best = c
		found = true
	}

	return best, found
}

// isOwnPoint reports whether c coincides with one of streamline si's
// own samples. The index stores bare points, so ownership is resolved
// by exact coincidence.
func (t *Tracer) isOwnPoint(si int, c vec.Vector) bool {
	for _, p := range t.raw[si] {
		if p.DistanceSq(c) < ownPointEps {
			return true
		}
	}

	return false
}
