package physics

// EntityRef is an opaque reference to the owning game entity. The physics
// module never interprets it; it only hands it back to the caller.
type EntityRef uint64

// ColliderID is a stable handle into the collider arena. The generation
// counter makes handles to removed colliders fail fast instead of silently
// addressing a reused slot.
type ColliderID struct {
	Index uint32
	Gen   uint32
}

// Collider is a static collision volume registered with the world. The
// position embedded in Shape is refreshed each tick by the owning game layer
// via UpdateColliderShape; the physics module never moves colliders itself.
type Collider struct {
	ID     ColliderID
	Shape  Shape
	Filter Filter
	Owner  EntityRef
}

type slot struct {
	collider Collider
	gen      uint32
	live     bool
}

// arena is a contiguous slot array with a LIFO free list and per-slot
// generation counters, exposed only through ColliderID handles.
type arena struct {
	slots []slot
	free  []uint32
}

func (a *arena) create(shape Shape, filter Filter, owner EntityRef) ColliderID {
	var idx uint32
	if n := len(a.free); n > 0 {
		idx = a.free[n-1]
		a.free = a.free[:n-1]
	} else {
		idx = uint32(len(a.slots))
		a.slots = append(a.slots, slot{})
	}

	s := &a.slots[idx]
	s.live = true
	id := ColliderID{Index: idx, Gen: s.gen}
	s.collider = Collider{ID: id, Shape: shape, Filter: filter, Owner: owner}
	return id
}

// lookup returns the live collider for id, or an error classifying the miss.
func (a *arena) lookup(id ColliderID) (*Collider, error) {
	if int(id.Index) >= len(a.slots) {
		return nil, ErrNotFound
	}
	s := &a.slots[id.Index]
	if !s.live || s.gen != id.Gen {
		return nil, ErrStaleHandle
	}
	return &s.collider, nil
}

func (a *arena) remove(id ColliderID) error {
	if _, err := a.lookup(id); err != nil {
		return err
	}
	s := &a.slots[id.Index]
	s.live = false
	s.gen++ // invalidate every outstanding handle
	s.collider = Collider{}
	a.free = append(a.free, id.Index)
	return nil
}

// forEachLive visits live colliders in ascending slot order. Iteration order
// is load-bearing: the grid is rebuilt through this, and consistent candidate
// order keeps float-comparison ties resolving identically across reruns.
func (a *arena) forEachLive(fn func(c *Collider)) {
	for i := range a.slots {
		if a.slots[i].live {
			fn(&a.slots[i].collider)
		}
	}
}

func (a *arena) liveCount() int {
	n := 0
	for i := range a.slots {
		if a.slots[i].live {
			n++
		}
	}
	return n
}

// SlotSnapshot is the persisted form of one arena slot.
type SlotSnapshot struct {
	Gen    uint32
	Live   bool
	Shape  Shape
	Filter Filter
	Owner  EntityRef
}

// Snapshot is the logical content of the collider arena, captured for
// rollback. It includes generations and the free list so that collider
// creation after a restore allocates the same handles it did on the original
// timeline. The spatial grid is deliberately absent: it is derived data,
// rebuilt from the arena every tick.
type Snapshot struct {
	Slots []SlotSnapshot
	Free  []uint32
}

func (a *arena) snapshot() Snapshot {
	snap := Snapshot{
		Slots: make([]SlotSnapshot, len(a.slots)),
		Free:  make([]uint32, len(a.free)),
	}
	for i := range a.slots {
		s := &a.slots[i]
		snap.Slots[i] = SlotSnapshot{
			Gen:    s.gen,
			Live:   s.live,
			Shape:  s.collider.Shape,
			Filter: s.collider.Filter,
			Owner:  s.collider.Owner,
		}
	}
	copy(snap.Free, a.free)
	return snap
}

func (a *arena) restore(snap Snapshot) {
	a.slots = make([]slot, len(snap.Slots))
	for i, ss := range snap.Slots {
		a.slots[i] = slot{gen: ss.Gen, live: ss.Live}
		if ss.Live {
			a.slots[i].collider = Collider{
				ID:     ColliderID{Index: uint32(i), Gen: ss.Gen},
				Shape:  ss.Shape,
				Filter: ss.Filter,
				Owner:  ss.Owner,
			}
		}
	}
	a.free = make([]uint32, len(snap.Free))
	copy(a.free, snap.Free)
}
