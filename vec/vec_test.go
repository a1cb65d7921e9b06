package vec

import (
	"math"
	"testing"
)

const eps = 1e-12

// TestAlgebra_Basics exercises the core value-type operations on a pair
// of fixed vectors.
func TestAlgebra_Basics(t *testing.T) {
	a, b := V(3, 4), V(-1, 2)

	if got := a.Add(b); got != V(2, 6) {
		t.Errorf("Add = %v; want (2,6)", got)
	}
	if got := a.Sub(b); got != V(4, 2) {
		t.Errorf("Sub = %v; want (4,2)", got)
	}
	if got := a.Scale(2); got != V(6, 8) {
		t.Errorf("Scale = %v; want (6,8)", got)
	}
	if got := a.Length(); got != 5 {
		t.Errorf("Length = %v; want 5", got)
	}
	if got := a.LengthSq(); got != 25 {
		t.Errorf("LengthSq = %v; want 25", got)
	}
	if got := a.Dot(b); got != 5 {
		t.Errorf("Dot = %v; want 5", got)
	}
	if got := a.Cross(b); got != 10 {
		t.Errorf("Cross = %v; want 10", got)
	}
}

// TestNormalize_ZeroSafe verifies that normalizing the zero vector does
// not divide by zero; degenerate field samples rely on this.
func TestNormalize_ZeroSafe(t *testing.T) {
	if got := (Vector{}).Normalize(); got != (Vector{}) {
		t.Fatalf("Normalize(zero) = %v; want zero", got)
	}

	n := V(0, -7).Normalize()
	if math.Abs(n.Length()-1) > eps {
		t.Fatalf("Normalize length = %v; want 1", n.Length())
	}
}

// TestRotate_Quarter rotates the X axis onto the Y axis.
func TestRotate_Quarter(t *testing.T) {
	r := V(1, 0).Rotate(math.Pi / 2)
	if math.Abs(r.X) > eps || math.Abs(r.Y-1) > eps {
		t.Fatalf("Rotate(π/2) = %v; want (0,1)", r)
	}

	if got := V(1, 0).Perp(); got != V(0, 1) {
		t.Fatalf("Perp = %v; want (0,1)", got)
	}
}

// TestTurnAngle_Sign checks the sign convention used by the tracer's
// anti-spiral guard: counterclockwise turns are positive.
func TestTurnAngle_Sign(t *testing.T) {
	ccw := V(1, 0).TurnAngle(V(0, 1))
	if math.Abs(ccw-math.Pi/2) > eps {
		t.Errorf("TurnAngle ccw = %v; want π/2", ccw)
	}

	cw := V(1, 0).TurnAngle(V(0, -1))
	if math.Abs(cw+math.Pi/2) > eps {
		t.Errorf("TurnAngle cw = %v; want -π/2", cw)
	}
}

// TestOrbRoundTrip ensures conversions at the orb boundary preserve
// coordinates exactly.
func TestOrbRoundTrip(t *testing.T) {
	pts := []Vector{V(0, 0), V(1.5, -2.25), V(3, 4)}

	back := FromLineString(ToLineString(pts))
	for i := range pts {
		if back[i] != pts[i] {
			t.Fatalf("LineString round trip [%d] = %v; want %v", i, back[i], pts[i])
		}
	}

	ring := FromRing(ToRing(pts))
	for i := range pts {
		if ring[i] != pts[i] {
			t.Fatalf("Ring round trip [%d] = %v; want %v", i, ring[i], pts[i])
		}
	}
}
