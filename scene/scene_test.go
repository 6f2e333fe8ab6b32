package scene

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/nethercore/zxcollide/physics"
	"github.com/nethercore/zxcollide/vec"
)

func sampleFile() *File {
	return &File{
		Name:     "test-arena",
		CellSize: 4,
		Colliders: []ColliderDef{
			{Shape: "box", Min: [3]float32{-10, -1, -10}, Max: [3]float32{10, 0, 10}, Owner: 1},
			{Shape: "sphere", Center: [3]float32{0, 3, 0}, Radius: 1.5, Owner: 2},
			{Shape: "capsule", Base: [3]float32{5, 0, 5}, Tip: [3]float32{5, 3, 5}, Radius: 0.5, Owner: 3},
		},
		Movers: []MoverDef{
			{Entity: 10, Position: [3]float32{0, 2, 0}, HalfExtents: [3]float32{0.5, 0.5, 0.5}, Velocity: [3]float32{1, 0, 0}},
		},
	}
}

func TestLoadSaveRoundTrip(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"layout.json", "layout.yaml"} {
		path := filepath.Join(dir, name)
		orig := sampleFile()
		if err := Save(path, orig); err != nil {
			t.Fatalf("%s: save: %v", name, err)
		}
		loaded, err := Load(path)
		if err != nil {
			t.Fatalf("%s: load: %v", name, err)
		}
		if loaded.Name != orig.Name || loaded.CellSize != orig.CellSize {
			t.Errorf("%s: header mismatch: %+v", name, loaded)
		}
		if len(loaded.Colliders) != len(orig.Colliders) {
			t.Fatalf("%s: colliders: got %d, want %d", name, len(loaded.Colliders), len(orig.Colliders))
		}
		for i := range orig.Colliders {
			if loaded.Colliders[i] != orig.Colliders[i] {
				t.Errorf("%s: collider %d: got %+v, want %+v",
					name, i, loaded.Colliders[i], orig.Colliders[i])
			}
		}
		if len(loaded.Movers) != 1 || loaded.Movers[0] != orig.Movers[0] {
			t.Errorf("%s: movers mismatch: %+v", name, loaded.Movers)
		}
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestLoadMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected parse error")
	}
}

func TestToShape(t *testing.T) {
	defs := sampleFile().Colliders

	s, err := defs[0].ToShape()
	if err != nil {
		t.Fatal(err)
	}
	if s.Kind != physics.KindAABB || s.Box.Max != vec.New(10, 0, 10) {
		t.Errorf("box: %+v", s)
	}

	s, err = defs[1].ToShape()
	if err != nil {
		t.Fatal(err)
	}
	if s.Kind != physics.KindSphere || s.Sphere.Radius != 1.5 {
		t.Errorf("sphere: %+v", s)
	}

	s, err = defs[2].ToShape()
	if err != nil {
		t.Fatal(err)
	}
	if s.Kind != physics.KindCapsule || s.Capsule.Tip != vec.New(5, 3, 5) {
		t.Errorf("capsule: %+v", s)
	}

	if _, err := (ColliderDef{Shape: "cone"}).ToShape(); err == nil {
		t.Error("unknown shape accepted")
	}
}

func TestBuildPopulatesWorld(t *testing.T) {
	w, movers, err := sampleFile().Build()
	if err != nil {
		t.Fatal(err)
	}
	if w.ColliderCount() != 3 {
		t.Errorf("collider count: got %d, want 3", w.ColliderCount())
	}
	if len(movers) != 1 {
		t.Fatalf("movers: got %d, want 1", len(movers))
	}
	m := movers[0]
	if m.Entity != 10 || m.Velocity != vec.New(1, 0, 0) {
		t.Errorf("mover: %+v", m)
	}
	// Unset layer/mask falls back to collide-with-everything
	if m.Filter != physics.DefaultFilter {
		t.Errorf("default filter not applied: %+v", m.Filter)
	}

	// The built world actually steps
	res, err := w.StepPhysics(1.0/60.0, movers)
	if err != nil {
		t.Fatal(err)
	}
	if len(res) != 1 {
		t.Fatalf("results: got %d", len(res))
	}
}

func TestBuildRejectsBadCollider(t *testing.T) {
	f := &File{Colliders: []ColliderDef{
		{Shape: "sphere", Center: [3]float32{0, 0, 0}, Radius: -2},
	}}
	if _, _, err := f.Build(); err == nil {
		t.Error("invalid collider accepted")
	}
}

func TestShippedLayoutsParse(t *testing.T) {
	for _, rel := range []string{"arena.json", "corridor.yaml"} {
		path := filepath.Join("..", "assets", "scenes", rel)
		f, err := Load(path)
		if err != nil {
			t.Errorf("%s: %v", rel, err)
			continue
		}
		if _, _, err := f.Build(); err != nil {
			t.Errorf("%s: build: %v", rel, err)
		}
	}
}
