package gridindex

import (
	"math/rand"
	"testing"

	"github.com/paulmach/orb"

	"github.com/tensorcity/tensorcity/vec"
)

// BenchmarkIsValidSample measures the bounded-neighborhood validity
// query against a densely populated index.
func BenchmarkIsValidSample(b *testing.B) {
	rng := rand.New(rand.NewSource(1))
	ix := New(orb.Bound{Min: orb.Point{0, 0}, Max: orb.Point{2000, 2000}}, 20)
	for i := 0; i < 50000; i++ {
		ix.AddSample(vec.V(rng.Float64()*2000, rng.Float64()*2000))
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		p := vec.V(rng.Float64()*2000, rng.Float64()*2000)
		ix.IsValidSample(p, 400)
	}
}

// BenchmarkAddSample measures raw insertion throughput.
func BenchmarkAddSample(b *testing.B) {
	rng := rand.New(rand.NewSource(2))
	ix := New(orb.Bound{Min: orb.Point{0, 0}, Max: orb.Point{2000, 2000}}, 20)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		ix.AddSample(vec.V(rng.Float64()*2000, rng.Float64()*2000))
	}
}
