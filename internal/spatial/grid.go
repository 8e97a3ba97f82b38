// Package spatial implements the broad-phase collision index: a uniform
// hashed grid rebuilt from scratch every tick.
//
// Cells are keyed by integer coordinates floor(coord / cellSize) and hold
// references, never copies. A circle is inserted into every cell its
// bounding square overlaps, so something sitting on a cell boundary is
// found from either side.
package spatial

import "math"

const (
	// DefaultCellSize is roughly twice the largest enemy radius.
	DefaultCellSize = 64.0
	// DefaultMaxCells bounds the number of cells one insert or query may touch.
	DefaultMaxCells = 10_000

	// Coordinates beyond this many cells from the origin are rejected before
	// conversion to int.
	maxCellCoord = 1 << 40
)

// Kind tags what a reference points at.
type Kind uint8

const (
	KindEnemy Kind = iota
	KindProjectile
	KindPlayer
	KindPickup
	kindCount
)

// Ref is a reference into the caller's per-tick snapshot slice for its kind.
// It is only meaningful until the next Clear.
type Ref struct {
	Kind  Kind
	Index int32
}

// Stats describes the current contents of the grid and the work it has done
// since the last Clear.
type Stats struct {
	CellCount        int // Non-empty cells
	TotalEntities    int // Non-projectile inserts
	TotalProjectiles int // Projectile inserts
	Queries          int // Queries that returned a result set (possibly empty)
	Candidates       int // De-duplicated references returned across all queries
	Rejected         int // Inserts and queries refused (degenerate or over capacity)
	OverCapacity     int // Subset of Rejected that exceeded the cell ceiling
}

type cellKey struct {
	X, Y int
}

// Grid is a uniform hashed grid. It is not safe for concurrent use.
type Grid struct {
	cellSize    float64
	invCellSize float64
	maxCells    int

	cells map[cellKey][]Ref

	// Per-kind query stamps for de-duplication without a map allocation.
	marks [kindCount][]uint32
	stamp uint32

	stats Stats
}

// NewGrid creates a grid. Non-positive or non-finite arguments fall back to
// DefaultCellSize and DefaultMaxCells.
func NewGrid(cellSize float64, maxCells int) *Grid {
	if !(cellSize > 0) || math.IsInf(cellSize, 0) {
		cellSize = DefaultCellSize
	}
	if maxCells <= 0 {
		maxCells = DefaultMaxCells
	}
	return &Grid{
		cellSize:    cellSize,
		invCellSize: 1.0 / cellSize,
		maxCells:    maxCells,
		cells:       make(map[cellKey][]Ref),
	}
}

// CellSize returns the edge length of one cell in world units.
func (g *Grid) CellSize() float64 {
	return g.cellSize
}

// MaxCells returns the cell ceiling.
func (g *Grid) MaxCells() int {
	return g.maxCells
}

// Clear empties every cell and resets the stats. Bucket capacity is kept
// for the next rebuild unless the map has grown far past the ceiling.
func (g *Grid) Clear() {
	if len(g.cells) > 4*g.maxCells {
		g.cells = make(map[cellKey][]Ref)
	} else {
		for k, bucket := range g.cells {
			clear(bucket)
			g.cells[k] = bucket[:0]
		}
	}
	for k := range g.marks {
		clear(g.marks[k])
		g.marks[k] = g.marks[k][:0]
	}
	g.stamp = 0
	g.stats = Stats{}
}

// Insert appends ref to every cell overlapped by the circle's bounding square.
// It returns false, inserting nothing, for a non-finite position, a radius
// that is not positive and finite, or an overlap spanning more cells than
// the ceiling.
func (g *Grid) Insert(ref Ref, x, y, radius float64) bool {
	if ref.Kind >= kindCount || ref.Index < 0 {
		g.stats.Rejected++
		return false
	}
	minX, minY, maxX, maxY, ok := g.span(x, y, radius)
	if !ok {
		return false
	}

	for cy := minY; cy <= maxY; cy++ {
		for cx := minX; cx <= maxX; cx++ {
			k := cellKey{X: cx, Y: cy}
			bucket := g.cells[k]
			if len(bucket) == 0 {
				g.stats.CellCount++
			}
			g.cells[k] = append(bucket, ref)
		}
	}

	marks := g.marks[ref.Kind]
	if need := int(ref.Index) + 1; need > len(marks) {
		if need > cap(marks) {
			grown := make([]uint32, need, max(need, 2*cap(marks)))
			copy(grown, marks)
			marks = grown
		} else {
			marks = marks[:need]
		}
		g.marks[ref.Kind] = marks
	}

	if ref.Kind == KindProjectile {
		g.stats.TotalProjectiles++
	} else {
		g.stats.TotalEntities++
	}
	return true
}

// Query returns the de-duplicated union of references in every cell the
// query circle's bounding square overlaps, in cell-scan order (row-major,
// then insertion order within a cell). Degenerate or over-capacity queries
// return nil. The result is a superset of the true overlaps; callers run
// their own narrow phase.
func (g *Grid) Query(x, y, radius float64) []Ref {
	return g.query(nil, x, y, radius, kindCount)
}

// QueryBuf is Query appending into buf[:0], for allocation-free hot loops.
func (g *Grid) QueryBuf(x, y, radius float64, buf []Ref) []Ref {
	return g.query(buf[:0], x, y, radius, kindCount)
}

// QueryKind is QueryBuf restricted to one kind of reference.
func (g *Grid) QueryKind(kind Kind, x, y, radius float64, buf []Ref) []Ref {
	if kind >= kindCount {
		return buf[:0]
	}
	return g.query(buf[:0], x, y, radius, kind)
}

func (g *Grid) query(out []Ref, x, y, radius float64, only Kind) []Ref {
	minX, minY, maxX, maxY, ok := g.span(x, y, radius)
	if !ok {
		return out
	}
	g.stats.Queries++

	g.stamp++
	if g.stamp == 0 {
		// Wrapped: stale stamps could collide with the new one.
		for k := range g.marks {
			clear(g.marks[k])
		}
		g.stamp = 1
	}

	for cy := minY; cy <= maxY; cy++ {
		for cx := minX; cx <= maxX; cx++ {
			for _, ref := range g.cells[cellKey{X: cx, Y: cy}] {
				if only != kindCount && ref.Kind != only {
					continue
				}
				mark := &g.marks[ref.Kind][ref.Index]
				if *mark == g.stamp {
					continue
				}
				*mark = g.stamp
				out = append(out, ref)
			}
		}
	}
	g.stats.Candidates += len(out)
	return out
}

// span returns the inclusive cell range covered by the circle's bounding
// square, recording a rejection when it cannot be used.
func (g *Grid) span(x, y, radius float64) (minX, minY, maxX, maxY int, ok bool) {
	if math.IsNaN(x) || math.IsInf(x, 0) || math.IsNaN(y) || math.IsInf(y, 0) ||
		!(radius > 0) || math.IsInf(radius, 0) {
		g.stats.Rejected++
		return 0, 0, 0, 0, false
	}

	fx0 := math.Floor((x - radius) * g.invCellSize)
	fx1 := math.Floor((x + radius) * g.invCellSize)
	fy0 := math.Floor((y - radius) * g.invCellSize)
	fy1 := math.Floor((y + radius) * g.invCellSize)
	if math.Abs(fx0) > maxCellCoord || math.Abs(fx1) > maxCellCoord ||
		math.Abs(fy0) > maxCellCoord || math.Abs(fy1) > maxCellCoord {
		g.stats.Rejected++
		g.stats.OverCapacity++
		return 0, 0, 0, 0, false
	}

	// Compare in float so a huge radius cannot overflow the product.
	if (fx1-fx0+1)*(fy1-fy0+1) > float64(g.maxCells) {
		g.stats.Rejected++
		g.stats.OverCapacity++
		return 0, 0, 0, 0, false
	}
	return int(fx0), int(fy0), int(fx1), int(fy1), true
}

// Stats returns a copy of the current counters.
func (g *Grid) Stats() Stats {
	return g.stats
}
