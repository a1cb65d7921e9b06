package gridindex

import (
	"math"

	"github.com/paulmach/orb"

	"github.com/tensorcity/tensorcity/vec"
)

// minCellSize floors the derived cell size; a clamp against
// non-positive separation distances, never an error.
const minCellSize = 1e-3

// Index is a uniform-cell spatial hash of accepted sample points.
// One Index exists per road tier; minor tiers additionally query the
// major tier's Index read-only.
type Index struct {
	origin   vec.Vector
	cellSize float64
	cols     int
	rows     int
	cells    [][]vec.Vector
	count    int
}

// New builds an empty Index covering bound, with cells sized to half
// of dsep so that a dsep-radius query scans a 3×3 neighborhood.
// Non-positive dsep is clamped.
func New(bound orb.Bound, dsep float64) *Index {
	cell := dsep / 2
	if cell < minCellSize {
		cell = minCellSize
	}

	w := bound.Max[0] - bound.Min[0]
	h := bound.Max[1] - bound.Min[1]
	cols := int(math.Ceil(w/cell)) + 1
	rows := int(math.Ceil(h/cell)) + 1
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}

	return &Index{
		origin:   vec.FromOrb(bound.Min),
		cellSize: cell,
		cols:     cols,
		rows:     rows,
		cells:    make([][]vec.Vector, cols*rows),
	}
}

// Len returns the number of stored samples.
func (ix *Index) Len() int {
	return ix.count
}

// cellCoords maps p to clamped cell coordinates.
func (ix *Index) cellCoords(p vec.Vector) (int, int) {
	cx := int((p.X - ix.origin.X) / ix.cellSize)
	cy := int((p.Y - ix.origin.Y) / ix.cellSize)
	if cx < 0 {
		cx = 0
	} else if cx >= ix.cols {
		cx = ix.cols - 1
	}
	if cy < 0 {
		cy = 0
	} else if cy >= ix.rows {
		cy = ix.rows - 1
	}

	return cx, cy
}

// AddSample stores p. Out-of-domain points clamp to the border cells.
func (ix *Index) AddSample(p vec.Vector) {
	cx, cy := ix.cellCoords(p)
	i := cy*ix.cols + cx
	ix.cells[i] = append(ix.cells[i], p)
	ix.count++
}

// AddPolyline stores every point of a finished streamline.
func (ix *Index) AddPolyline(pts []vec.Vector) {
	for _, p := range pts {
		ix.AddSample(p)
	}
}

// IsValidSample reports whether no stored sample lies within
// minDistSq of p. The scan covers exactly the cell neighborhood that
// can contain a violating sample.
func (ix *Index) IsValidSample(p vec.Vector, minDistSq float64) bool {
	if minDistSq <= 0 {
		return true
	}
	found := false
	ix.scan(p, math.Sqrt(minDistSq), func(q vec.Vector) bool {
		if p.DistanceSq(q) < minDistSq {
			found = true

			return false
		}

		return true
	})

	return !found
}

// Nearby returns every stored sample within radius of p.
func (ix *Index) Nearby(p vec.Vector, radius float64) []vec.Vector {
	var out []vec.Vector
	r2 := radius * radius
	ix.scan(p, radius, func(q vec.Vector) bool {
		if p.DistanceSq(q) <= r2 {
			out = append(out, q)
		}

		return true
	})

	return out
}

// scan visits every sample in the cells overlapping the radius
// neighborhood of p; fn returns false to stop early.
func (ix *Index) scan(p vec.Vector, radius float64, fn func(vec.Vector) bool) {
	cx, cy := ix.cellCoords(p)
	span := int(math.Ceil(radius/ix.cellSize)) + 1

	for dy := -span; dy <= span; dy++ {
		y := cy + dy
		if y < 0 || y >= ix.rows {
			continue
		}
		for dx := -span; dx <= span; dx++ {
			x := cx + dx
			if x < 0 || x >= ix.cols {
				continue
			}
			for _, q := range ix.cells[y*ix.cols+x] {
				if !fn(q) {
					return
				}
			}
		}
	}
}
