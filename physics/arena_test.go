package physics

import (
	"testing"

	"github.com/nethercore/zxcollide/vec"
)

func boxShape(minX, minY, minZ, maxX, maxY, maxZ float32) Shape {
	return Shape{Kind: KindAABB, Box: box(minX, minY, minZ, maxX, maxY, maxZ)}
}

func TestArenaCreateLookup(t *testing.T) {
	var a arena
	id := a.create(boxShape(0, 0, 0, 1, 1, 1), DefaultFilter, 7)

	c, err := a.lookup(id)
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if c.Owner != 7 {
		t.Errorf("owner: got %d, want 7", c.Owner)
	}
	if c.ID != id {
		t.Errorf("stored id %v differs from handle %v", c.ID, id)
	}
}

func TestArenaRemoveInvalidatesHandle(t *testing.T) {
	var a arena
	id := a.create(boxShape(0, 0, 0, 1, 1, 1), DefaultFilter, 1)

	if err := a.remove(id); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if _, err := a.lookup(id); err != ErrStaleHandle {
		t.Errorf("lookup after remove: got %v, want ErrStaleHandle", err)
	}
	if err := a.remove(id); err != ErrStaleHandle {
		t.Errorf("double remove: got %v, want ErrStaleHandle", err)
	}
}

func TestArenaStaleHandleAfterSlotReuse(t *testing.T) {
	var a arena
	old := a.create(boxShape(0, 0, 0, 1, 1, 1), DefaultFilter, 1)
	if err := a.remove(old); err != nil {
		t.Fatal(err)
	}

	fresh := a.create(boxShape(2, 2, 2, 3, 3, 3), DefaultFilter, 2)
	if fresh.Index != old.Index {
		t.Fatalf("expected slot reuse: old index %d, new index %d", old.Index, fresh.Index)
	}
	if fresh.Gen == old.Gen {
		t.Error("reused slot kept the old generation")
	}

	if _, err := a.lookup(old); err != ErrStaleHandle {
		t.Errorf("stale handle: got %v, want ErrStaleHandle", err)
	}
	if _, err := a.lookup(fresh); err != nil {
		t.Errorf("fresh handle: %v", err)
	}
}

func TestArenaLookupOutOfRange(t *testing.T) {
	var a arena
	if _, err := a.lookup(ColliderID{Index: 42}); err != ErrNotFound {
		t.Errorf("out-of-range index: got %v, want ErrNotFound", err)
	}
}

func TestArenaForEachLiveAscending(t *testing.T) {
	var a arena
	ids := make([]ColliderID, 5)
	for i := range ids {
		ids[i] = a.create(boxShape(0, 0, 0, 1, 1, 1), DefaultFilter, EntityRef(i))
	}
	if err := a.remove(ids[2]); err != nil {
		t.Fatal(err)
	}

	var seen []uint32
	a.forEachLive(func(c *Collider) {
		seen = append(seen, c.ID.Index)
	})

	want := []uint32{0, 1, 3, 4}
	if len(seen) != len(want) {
		t.Fatalf("live count: got %d, want %d", len(seen), len(want))
	}
	for i := range want {
		if seen[i] != want[i] {
			t.Errorf("iteration order[%d]: got %d, want %d", i, seen[i], want[i])
		}
	}
	if a.liveCount() != 4 {
		t.Errorf("liveCount: got %d, want 4", a.liveCount())
	}
}

// After a snapshot restore, the free list and generations must replay so that
// new creations hand out the same handles on every client.
func TestArenaSnapshotRestoreHandleReplay(t *testing.T) {
	var a arena
	ids := make([]ColliderID, 4)
	for i := range ids {
		ids[i] = a.create(boxShape(0, 0, 0, 1, 1, 1), DefaultFilter, EntityRef(i))
	}
	if err := a.remove(ids[1]); err != nil {
		t.Fatal(err)
	}
	if err := a.remove(ids[3]); err != nil {
		t.Fatal(err)
	}

	snap := a.snapshot()

	var b arena
	b.restore(snap)

	idA := a.create(boxShape(5, 5, 5, 6, 6, 6), DefaultFilter, 100)
	idB := b.create(boxShape(5, 5, 5, 6, 6, 6), DefaultFilter, 100)
	if idA != idB {
		t.Errorf("post-restore create diverged: %v vs %v", idA, idB)
	}

	idA2 := a.create(boxShape(7, 7, 7, 8, 8, 8), DefaultFilter, 101)
	idB2 := b.create(boxShape(7, 7, 7, 8, 8, 8), DefaultFilter, 101)
	if idA2 != idB2 {
		t.Errorf("second post-restore create diverged: %v vs %v", idA2, idB2)
	}
}

func TestArenaSnapshotIsDeepCopy(t *testing.T) {
	var a arena
	id := a.create(boxShape(0, 0, 0, 1, 1, 1), DefaultFilter, 1)
	snap := a.snapshot()

	c, err := a.lookup(id)
	if err != nil {
		t.Fatal(err)
	}
	c.Shape.Box = c.Shape.Box.Offset(vec.New(10, 0, 0))

	var b arena
	b.restore(snap)
	rc, err := b.lookup(id)
	if err != nil {
		t.Fatal(err)
	}
	if rc.Shape.Box.Min != vec.New(0, 0, 0) {
		t.Errorf("snapshot mutated through live collider: %v", rc.Shape.Box.Min)
	}
}
