package blocks

import (
	"math"

	"github.com/tensorcity/tensorcity/vec"
)

// areaEps is the signed-area floor below which a ring is degenerate.
const areaEps = 1e-9

// DivideOptions tunes the recursive lot subdivision.
type DivideOptions struct {
	// MaxLength stops dividing once the longest edge is shorter.
	// Non-positive means no length constraint (the area floor still
	// bounds recursion).
	MaxLength float64

	// MinArea is the smallest lot the division may produce; blocks
	// already below it pass through untouched.
	MinArea float64

	// ChanceNoDivide skips a pending division with this probability,
	// leaving that branch as one larger lot.
	ChanceNoDivide float64

	// Seed feeds the division's random source.
	Seed int64
}

// DefaultDivideOptions returns MaxLength=40, MinArea=100,
// ChanceNoDivide=0.05, Seed=1.
func DefaultDivideOptions() DivideOptions {
	return DivideOptions{
		MaxLength:      40,
		MinArea:        100,
		ChanceNoDivide: 0.05,
		Seed:           1,
	}
}

// normalized clamps option values into range.
func (o DivideOptions) normalized() DivideOptions {
	if o.MinArea < 0 {
		o.MinArea = 0
	}
	o.ChanceNoDivide = math.Max(0, math.Min(1, o.ChanceNoDivide))

	return o
}

// signedArea returns the shoelace area of an open vertex loop:
// positive for counterclockwise winding.
func signedArea(pts []vec.Vector) float64 {
	sum := 0.0
	n := len(pts)
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		sum += pts[i].Cross(pts[j])
	}

	return sum / 2
}

// dedupe removes consecutive (near-)duplicate vertices and a closing
// duplicate, returning an open loop.
func dedupe(pts []vec.Vector) []vec.Vector {
	out := make([]vec.Vector, 0, len(pts))
	for _, p := range pts {
		if len(out) > 0 && out[len(out)-1].DistanceSq(p) < 1e-18 {
			continue
		}
		out = append(out, p)
	}
	if len(out) > 1 && out[0].DistanceSq(out[len(out)-1]) < 1e-18 {
		out = out[:len(out)-1]
	}

	return out
}

// closeRing appends the first vertex, yielding a closed ring.
func closeRing(pts []vec.Vector) []vec.Vector {
	return append(append([]vec.Vector(nil), pts...), pts[0])
}
