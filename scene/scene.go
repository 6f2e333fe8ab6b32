// Package scene loads collider layouts for the stress harness and the
// visualizer. Layout files describe static colliders and movers; they are
// tooling input, not rollback state.
package scene

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/nethercore/zxcollide/physics"
	"github.com/nethercore/zxcollide/vec"
)

// File is one collider layout.
type File struct {
	Name      string        `json:"name,omitempty" yaml:"name,omitempty"`
	CellSize  float32       `json:"cellSize,omitempty" yaml:"cellSize,omitempty"`
	Colliders []ColliderDef `json:"colliders" yaml:"colliders"`
	Movers    []MoverDef    `json:"movers,omitempty" yaml:"movers,omitempty"`
}

// ColliderDef describes one static collider. Exactly the fields for its
// shape type are meaningful: box uses min/max, sphere uses center/radius,
// capsule uses base/tip/radius.
type ColliderDef struct {
	Shape  string     `json:"shape" yaml:"shape"` // "box", "sphere" or "capsule"
	Min    [3]float32 `json:"min,omitempty" yaml:"min,omitempty"`
	Max    [3]float32 `json:"max,omitempty" yaml:"max,omitempty"`
	Center [3]float32 `json:"center,omitempty" yaml:"center,omitempty"`
	Base   [3]float32 `json:"base,omitempty" yaml:"base,omitempty"`
	Tip    [3]float32 `json:"tip,omitempty" yaml:"tip,omitempty"`
	Radius float32    `json:"radius,omitempty" yaml:"radius,omitempty"`
	Layer  uint32     `json:"layer,omitempty" yaml:"layer,omitempty"`
	Mask   uint32     `json:"mask,omitempty" yaml:"mask,omitempty"`
	Owner  uint64     `json:"owner,omitempty" yaml:"owner,omitempty"`
}

// MoverDef describes one swept body driven by the tooling.
type MoverDef struct {
	Entity      uint64     `json:"entity" yaml:"entity"`
	Position    [3]float32 `json:"position" yaml:"position"`
	HalfExtents [3]float32 `json:"halfExtents" yaml:"halfExtents"`
	Velocity    [3]float32 `json:"velocity" yaml:"velocity"`
	Layer       uint32     `json:"layer,omitempty" yaml:"layer,omitempty"`
	Mask        uint32     `json:"mask,omitempty" yaml:"mask,omitempty"`
}

// Load reads a layout from path. The extension selects the format: .yaml and
// .yml decode as YAML, everything else as JSON.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read layout: %w", err)
	}

	var f File
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &f); err != nil {
			return nil, fmt.Errorf("parse layout: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &f); err != nil {
			return nil, fmt.Errorf("parse layout: %w", err)
		}
	}
	return &f, nil
}

// Save writes the layout to path, format chosen by extension as in Load.
func Save(path string, f *File) error {
	var (
		data []byte
		err  error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		data, err = yaml.Marshal(f)
	default:
		data, err = json.MarshalIndent(f, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("marshal layout: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write layout: %w", err)
	}
	return nil
}

// Shape converts the definition to a physics.Shape.
func (d ColliderDef) ToShape() (physics.Shape, error) {
	switch d.Shape {
	case "box":
		return physics.BoxShape(physics.AABB{
			Min: v3(d.Min),
			Max: v3(d.Max),
		}), nil
	case "sphere":
		return physics.SphereShape(physics.Sphere{
			Center: v3(d.Center),
			Radius: d.Radius,
		}), nil
	case "capsule":
		return physics.CapsuleShape(physics.Capsule{
			Base:   v3(d.Base),
			Tip:    v3(d.Tip),
			Radius: d.Radius,
		}), nil
	default:
		return physics.Shape{}, fmt.Errorf("unknown shape %q", d.Shape)
	}
}

func (d ColliderDef) filter() physics.Filter {
	f := physics.Filter{Layer: d.Layer, Mask: d.Mask}
	if f.Layer == 0 && f.Mask == 0 {
		f = physics.DefaultFilter
	}
	return f
}

// Build creates a world populated with the layout's colliders and returns it
// together with the layout's movers.
func (f *File) Build() (*physics.World, []physics.MovingBody, error) {
	w := physics.NewWorld(physics.Config{CellSize: f.CellSize})

	for i, def := range f.Colliders {
		shape, err := def.ToShape()
		if err != nil {
			return nil, nil, fmt.Errorf("collider %d: %w", i, err)
		}
		if _, err := w.CreateCollider(shape, def.filter(), physics.EntityRef(def.Owner)); err != nil {
			return nil, nil, fmt.Errorf("collider %d: %w", i, err)
		}
	}

	movers := make([]physics.MovingBody, len(f.Movers))
	for i, def := range f.Movers {
		filter := physics.Filter{Layer: def.Layer, Mask: def.Mask}
		if filter.Layer == 0 && filter.Mask == 0 {
			filter = physics.DefaultFilter
		}
		movers[i] = physics.MovingBody{
			Entity:      physics.EntityRef(def.Entity),
			Position:    v3(def.Position),
			HalfExtents: v3(def.HalfExtents),
			Velocity:    v3(def.Velocity),
			Filter:      filter,
		}
	}

	return w, movers, nil
}

func v3(a [3]float32) vec.Vec3 {
	return vec.Vec3{X: a[0], Y: a[1], Z: a[2]}
}
