package physics

import (
	"sort"

	"github.com/nethercore/zxcollide/vec"
)

// DefaultCellSize works well when most colliders are a few units across.
// Tune per game; cells much smaller than typical colliders inflate the
// multi-cell inserts, much larger cells inflate candidate sets.
const DefaultCellSize = 5.0

// cellKey addresses one uniform grid cell.
type cellKey struct {
	X, Y, Z int32
}

// spatialGrid is the uniform broad-phase index. It is entirely ephemeral:
// cleared and rebuilt from the collider arena every tick, and never part of
// rollback state. Insert order (ascending collider id) plus the fixed cell
// scan order in query keep candidate order identical across reruns.
type spatialGrid struct {
	cellSize float32
	inv      float32
	cells    map[cellKey][]ColliderID
}

func newSpatialGrid(cellSize float32) *spatialGrid {
	if cellSize <= 0 {
		cellSize = DefaultCellSize
	}
	return &spatialGrid{
		cellSize: cellSize,
		inv:      1 / cellSize,
		cells:    make(map[cellKey][]ColliderID),
	}
}

// clear empties all cells, keeping allocated slices for reuse.
func (g *spatialGrid) clear() {
	for k, ids := range g.cells {
		g.cells[k] = ids[:0]
	}
}

func (g *spatialGrid) cellCoord(v float32) int32 {
	return int32(vec.Floor(v * g.inv))
}

// cellRange returns the inclusive cell coordinate range covered by bounds.
func (g *spatialGrid) cellRange(bounds AABB) (lo, hi cellKey) {
	lo = cellKey{
		X: g.cellCoord(bounds.Min.X),
		Y: g.cellCoord(bounds.Min.Y),
		Z: g.cellCoord(bounds.Min.Z),
	}
	hi = cellKey{
		X: g.cellCoord(bounds.Max.X),
		Y: g.cellCoord(bounds.Max.Y),
		Z: g.cellCoord(bounds.Max.Z),
	}
	return lo, hi
}

// insert adds id to every cell overlapped by bounds.
func (g *spatialGrid) insert(id ColliderID, bounds AABB) {
	lo, hi := g.cellRange(bounds)
	for z := lo.Z; z <= hi.Z; z++ {
		for y := lo.Y; y <= hi.Y; y++ {
			for x := lo.X; x <= hi.X; x++ {
				key := cellKey{X: x, Y: y, Z: z}
				g.cells[key] = append(g.cells[key], id)
			}
		}
	}
}

// query appends the union of ids in all cells overlapped by bounds to out,
// deduplicated and sorted ascending by slot index. The result is a candidate
// set only; callers still run exact narrow-phase tests.
func (g *spatialGrid) query(bounds AABB, out []ColliderID) []ColliderID {
	lo, hi := g.cellRange(bounds)
	for z := lo.Z; z <= hi.Z; z++ {
		for y := lo.Y; y <= hi.Y; y++ {
			for x := lo.X; x <= hi.X; x++ {
				out = append(out, g.cells[cellKey{X: x, Y: y, Z: z}]...)
			}
		}
	}
	if len(out) < 2 {
		return out
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Index < out[j].Index })
	// Compact duplicates from multi-cell colliders
	n := 1
	for i := 1; i < len(out); i++ {
		if out[i] != out[n-1] {
			out[n] = out[i]
			n++
		}
	}
	return out[:n]
}
