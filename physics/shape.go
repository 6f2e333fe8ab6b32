package physics

import (
	"github.com/nethercore/zxcollide/vec"
)

// AABB is an axis-aligned bounding box.
type AABB struct {
	Min vec.Vec3
	Max vec.Vec3
}

// NewAABBFromCenter creates an AABB from a center point and half extents.
func NewAABBFromCenter(center, half vec.Vec3) AABB {
	return AABB{
		Min: center.Sub(half),
		Max: center.Add(half),
	}
}

// Intersects reports componentwise interval overlap between a and b.
// Touching faces count as overlap.
func (a AABB) Intersects(b AABB) bool {
	return a.Min.X <= b.Max.X && a.Max.X >= b.Min.X &&
		a.Min.Y <= b.Max.Y && a.Max.Y >= b.Min.Y &&
		a.Min.Z <= b.Max.Z && a.Max.Z >= b.Min.Z
}

// ContainsPoint reports whether p lies inside a (inclusive).
func (a AABB) ContainsPoint(p vec.Vec3) bool {
	return p.X >= a.Min.X && p.X <= a.Max.X &&
		p.Y >= a.Min.Y && p.Y <= a.Max.Y &&
		p.Z >= a.Min.Z && p.Z <= a.Max.Z
}

// Center returns the midpoint of a.
func (a AABB) Center() vec.Vec3 {
	return a.Min.Add(a.Max).Scale(0.5)
}

// Expand grows the box by r on every side.
func (a AABB) Expand(r float32) AABB {
	d := vec.Vec3{X: r, Y: r, Z: r}
	return AABB{Min: a.Min.Sub(d), Max: a.Max.Add(d)}
}

// Sweep returns the box enlarged to cover a displacement of the box by d.
func (a AABB) Sweep(d vec.Vec3) AABB {
	return AABB{
		Min: a.Min.Add(d.Min(vec.Zero())),
		Max: a.Max.Add(d.Max(vec.Zero())),
	}
}

// Offset translates the box by d.
func (a AABB) Offset(d vec.Vec3) AABB {
	return AABB{Min: a.Min.Add(d), Max: a.Max.Add(d)}
}

// Resolve returns the minimum translation vector to push 'a' out of 'b'.
// Returns the zero vector if there is no overlap.
func (a AABB) Resolve(b AABB) vec.Vec3 {
	if !a.Intersects(b) {
		return vec.Zero()
	}

	// Penetration depth in each direction
	dx1 := b.Max.X - a.Min.X // push a in +X
	dx2 := a.Max.X - b.Min.X // push a in -X
	dy1 := b.Max.Y - a.Min.Y // push a in +Y
	dy2 := a.Max.Y - b.Min.Y // push a in -Y
	dz1 := b.Max.Z - a.Min.Z // push a in +Z
	dz2 := a.Max.Z - b.Min.Z // push a in -Z

	// The axis with minimum penetration is the push-out direction
	minPen := dx1
	result := vec.Vec3{X: dx1}

	if dx2 < minPen {
		minPen = dx2
		result = vec.Vec3{X: -dx2}
	}
	if dy1 < minPen {
		minPen = dy1
		result = vec.Vec3{Y: dy1}
	}
	if dy2 < minPen {
		minPen = dy2
		result = vec.Vec3{Y: -dy2}
	}
	if dz1 < minPen {
		minPen = dz1
		result = vec.Vec3{Z: dz1}
	}
	if dz2 < minPen {
		result = vec.Vec3{Z: -dz2}
	}

	return result
}

// Sphere is a center plus radius.
type Sphere struct {
	Center vec.Vec3
	Radius float32
}

// Capsule is a swept sphere along the segment [Base, Tip]. Base == Tip is a
// valid degenerate case equivalent to a Sphere at Base.
type Capsule struct {
	Base   vec.Vec3
	Tip    vec.Vec3
	Radius float32
}

// ShapeKind discriminates the Shape union.
type ShapeKind uint8

const (
	KindAABB ShapeKind = iota
	KindSphere
	KindCapsule
)

// Shape is a tagged union over the primitive collider volumes. Only the
// field matching Kind is meaningful.
type Shape struct {
	Kind    ShapeKind
	Box     AABB
	Sphere  Sphere
	Capsule Capsule
}

// BoxShape wraps an AABB as a Shape.
func BoxShape(b AABB) Shape {
	return Shape{Kind: KindAABB, Box: b}
}

// SphereShape wraps a Sphere as a Shape.
func SphereShape(s Sphere) Shape {
	return Shape{Kind: KindSphere, Sphere: s}
}

// CapsuleShape wraps a Capsule as a Shape.
func CapsuleShape(c Capsule) Shape {
	return Shape{Kind: KindCapsule, Capsule: c}
}

// Validate checks the shape invariants: finite coordinates, AABB min ≤ max
// componentwise, radii strictly positive. Malformed shapes are rejected
// rather than repaired; a silent clamp could round differently across
// platforms and break determinism.
func (s Shape) Validate() error {
	switch s.Kind {
	case KindAABB:
		b := s.Box
		if !b.Min.IsFinite() || !b.Max.IsFinite() {
			return ErrInvalidShape
		}
		if b.Min.X > b.Max.X || b.Min.Y > b.Max.Y || b.Min.Z > b.Max.Z {
			return ErrInvalidShape
		}
	case KindSphere:
		sp := s.Sphere
		if !sp.Center.IsFinite() || !isFinitePositive(sp.Radius) {
			return ErrInvalidShape
		}
	case KindCapsule:
		c := s.Capsule
		if !c.Base.IsFinite() || !c.Tip.IsFinite() || !isFinitePositive(c.Radius) {
			return ErrInvalidShape
		}
	default:
		return ErrInvalidShape
	}
	return nil
}

func isFinitePositive(f float32) bool {
	// NaN fails the comparison, Inf fails the subtraction check
	return f > 0 && f-f == 0
}

// Bounds returns the enclosing AABB of the shape.
func (s Shape) Bounds() AABB {
	switch s.Kind {
	case KindSphere:
		sp := s.Sphere
		r := vec.Vec3{X: sp.Radius, Y: sp.Radius, Z: sp.Radius}
		return AABB{Min: sp.Center.Sub(r), Max: sp.Center.Add(r)}
	case KindCapsule:
		c := s.Capsule
		r := vec.Vec3{X: c.Radius, Y: c.Radius, Z: c.Radius}
		return AABB{
			Min: c.Base.Min(c.Tip).Sub(r),
			Max: c.Base.Max(c.Tip).Add(r),
		}
	default:
		return s.Box
	}
}
