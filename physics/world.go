// Package physics implements deterministic broad-phase/narrow-phase collision
// detection with continuous (swept) resolution for a fixed-tick game runtime.
//
// StepPhysics is single-threaded and synchronous: it performs no I/O, spawns
// no goroutines, and never iterates a map on a result path. Rollback netcode
// re-executes it several times per rendered frame, so for a fixed (dt, movers,
// collider arena) triple two invocations produce bit-identical results. All
// arithmetic is float32 with explicit operation order and no math.FMA;
// cross-architecture bit-exactness additionally requires builds that do not
// fuse multiplies and adds.
package physics

import (
	"github.com/chewxy/math32"

	"github.com/nethercore/zxcollide/vec"
)

const (
	// slideIterations caps the swept/slide loop per mover per tick. The cap
	// bounds corner cases such as a body wedged between two walls; residual
	// motion past the cap is discarded, never carried to the next tick.
	slideIterations = 3

	// slideEpsilon backs the mover off the contact time so floating-point
	// rounding cannot leave it re-penetrating the surface it just hit.
	slideEpsilon = 1e-3
)

// Config tunes a World.
type Config struct {
	// CellSize is the broad-phase grid cell edge length. Zero selects
	// DefaultCellSize.
	CellSize float32
}

// World owns the collider arena and the ephemeral spatial grid. It is not
// safe for concurrent use; one StepPhysics call has exclusive ownership of
// both for its duration.
type World struct {
	arena  arena
	grid   *spatialGrid
	stats  StepStats
	drawFn DrawFunc
}

// NewWorld creates an empty world.
func NewWorld(cfg Config) *World {
	return &World{
		grid: newSpatialGrid(cfg.CellSize),
	}
}

// CreateCollider registers a static collision volume and returns its handle.
// The shape is validated up front; malformed shapes fail with ErrInvalidShape
// rather than being repaired.
func (w *World) CreateCollider(shape Shape, filter Filter, owner EntityRef) (ColliderID, error) {
	if err := shape.Validate(); err != nil {
		return ColliderID{}, err
	}
	return w.arena.create(shape, filter, owner), nil
}

// RemoveCollider unregisters a collider and invalidates its handle
// generation. Stale handles fail fast on any later use.
func (w *World) RemoveCollider(id ColliderID) error {
	return w.arena.remove(id)
}

// UpdateColliderShape refreshes a collider's volume, typically once per tick
// by the owning entity before StepPhysics.
func (w *World) UpdateColliderShape(id ColliderID, shape Shape) error {
	if err := shape.Validate(); err != nil {
		return err
	}
	c, err := w.arena.lookup(id)
	if err != nil {
		return err
	}
	c.Shape = shape
	return nil
}

// Collider returns a copy of the collider for id.
func (w *World) Collider(id ColliderID) (Collider, error) {
	c, err := w.arena.lookup(id)
	if err != nil {
		return Collider{}, err
	}
	return *c, nil
}

// ColliderCount returns the number of live colliders.
func (w *World) ColliderCount() int {
	return w.arena.liveCount()
}

// Snapshot captures the arena's logical contents for rollback. The spatial
// grid is never included; it is rebuilt from the arena each tick.
func (w *World) Snapshot() Snapshot {
	return w.arena.snapshot()
}

// Restore replaces the arena contents with a previously captured snapshot.
func (w *World) Restore(snap Snapshot) {
	w.arena.restore(snap)
}

// MovingBody is the transient per-tick input for one swept body. It is
// constructed by the caller at the start of a step and discarded at the end.
type MovingBody struct {
	// Entity identifies the mover to the caller; the physics module only
	// echoes it back. Callers supply movers in ascending entity order so
	// that replays process them identically.
	Entity      EntityRef
	Position    vec.Vec3
	HalfExtents vec.Vec3
	Velocity    vec.Vec3
	Filter      Filter
}

// Contact reports one resolved collision for a mover.
type Contact struct {
	Other        ColliderID
	Normal       vec.Vec3
	TimeOfImpact float32
}

// MoverResult is the outcome of one mover's step.
type MoverResult struct {
	Entity   EntityRef
	Position vec.Vec3
	Contacts []Contact
}

// StepPhysics advances all movers by dt against the current collider arena
// and returns their final positions and contacts. Movers do not interact
// with each other; mover-vs-mover dynamics are the caller's responsibility.
//
// The call is deterministic given its inputs and the arena: the grid is
// rebuilt in ascending collider order, candidates are sorted before testing,
// and equal-TOI ties resolve to the lower collider id.
func (w *World) StepPhysics(dt float32, movers []MovingBody) ([]MoverResult, error) {
	if math32.IsNaN(dt) || math32.IsInf(dt, 0) || dt < 0 {
		return nil, ErrDegenerateInput
	}

	w.stats.Steps++
	w.rebuildGrid()

	results := make([]MoverResult, len(movers))
	for i := range movers {
		results[i] = w.stepMover(dt, &movers[i])
	}
	return results, nil
}

// rebuildGrid repopulates the broad-phase index from the arena. Ascending
// collider order keeps candidate order, and therefore float-tie resolution,
// identical across reruns.
func (w *World) rebuildGrid() {
	w.grid.clear()
	w.arena.forEachLive(func(c *Collider) {
		w.grid.insert(c.ID, c.Shape.Bounds())
	})
}

// stepMover runs the swept/slide loop for one mover: sweep against the
// broad-phase candidates, advance to just before the earliest hit, project
// the remaining displacement onto the contact plane, repeat up to the
// iteration cap.
func (w *World) stepMover(dt float32, m *MovingBody) MoverResult {
	res := MoverResult{Entity: m.Entity, Position: m.Position}
	w.stats.Movers++

	// One bad entity must not stall or desync the whole simulation: reject
	// just this mover and report no movement for the tick.
	if !m.Position.IsFinite() || !m.Velocity.IsFinite() || !m.HalfExtents.IsFinite() {
		w.stats.DegenerateInputs++
		return res
	}

	pos := m.Position
	disp := m.Velocity.Scale(dt)
	hitInFinal := false

	for iter := 0; iter < slideIterations; iter++ {
		if disp.LengthSq() == 0 {
			hitInFinal = false
			break
		}

		box := NewAABBFromCenter(pos, m.HalfExtents)
		candidates := w.grid.query(box.Sweep(disp), nil)
		w.stats.Candidates += uint64(len(candidates))

		best := SweptHit{T: 2} // beyond any valid TOI
		var bestID ColliderID
		found := false

		for _, id := range candidates {
			col, err := w.arena.lookup(id)
			if err != nil {
				continue
			}
			if !m.Filter.CanCollide(col.Filter) {
				continue
			}
			w.stats.NarrowTests++
			// Sphere and capsule statics sweep via their enclosing AABB;
			// conservative, consistent with the broad phase.
			hit, ok := SweptAABB(box, disp, col.Shape.Bounds())
			if !ok {
				continue
			}
			// Strict < keeps the lowest id on equal TOI, since
			// candidates arrive in ascending id order.
			if hit.T < best.T {
				best = hit
				bestID = id
				found = true
			}
		}

		if !found {
			pos = pos.Add(disp)
			hitInFinal = false
			break
		}

		t := best.T - slideEpsilon
		if t < 0 {
			t = 0
		}
		pos = pos.Add(disp.Scale(t))
		res.Contacts = append(res.Contacts, Contact{
			Other:        bestID,
			Normal:       best.Normal,
			TimeOfImpact: best.T,
		})

		// Project the remaining displacement onto the contact plane
		rem := disp.Scale(1 - t)
		disp = rem.Sub(best.Normal.Scale(rem.Dot(best.Normal)))
		hitInFinal = true
	}

	if hitInFinal {
		// Still colliding in the last iteration: residual discarded
		w.stats.IterationCapHits++
	}

	res.Position = pos
	return res
}

// QueryRegion returns the ids of all live colliders whose bounds overlap the
// region, ascending by slot index. Intended for trigger volumes and debug
// queries; results match a brute-force overlap scan exactly.
func (w *World) QueryRegion(region AABB) []ColliderID {
	w.rebuildGrid()
	candidates := w.grid.query(region, nil)

	out := candidates[:0]
	for _, id := range candidates {
		col, err := w.arena.lookup(id)
		if err != nil {
			continue
		}
		if col.Shape.Bounds().Intersects(region) {
			out = append(out, id)
		}
	}
	return out
}

// ResolveOverlap returns the mover position pushed out of any colliders it
// already penetrates, using minimum-translation push-out per overlapping
// collider in ascending id order. Callers run this for initial-overlap
// situations the sweep deliberately does not handle.
func (w *World) ResolveOverlap(pos, halfExtents vec.Vec3, filter Filter) vec.Vec3 {
	w.rebuildGrid()

	box := NewAABBFromCenter(pos, halfExtents)
	for _, id := range w.grid.query(box, nil) {
		col, err := w.arena.lookup(id)
		if err != nil {
			continue
		}
		if !filter.CanCollide(col.Filter) {
			continue
		}
		push := box.Resolve(col.Shape.Bounds())
		if push == vec.Zero() {
			continue
		}
		pos = pos.Add(push)
		box = NewAABBFromCenter(pos, halfExtents)
	}
	return pos
}
