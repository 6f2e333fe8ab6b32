package physics

import "github.com/nethercore/zxcollide/vec"

// Narrow-phase intersection predicates. All tests are pure functions with no
// side effects, so they can be re-invoked any number of times during rollback
// replay with identical results.

// ContainsPoint reports whether p lies inside the sphere (inclusive).
func (s Sphere) ContainsPoint(p vec.Vec3) bool {
	return p.Sub(s.Center).LengthSq() <= s.Radius*s.Radius
}

// IntersectsSphere reports sphere/sphere overlap.
func (s Sphere) IntersectsSphere(o Sphere) bool {
	sum := s.Radius + o.Radius
	return o.Center.Sub(s.Center).LengthSq() <= sum*sum
}

// IntersectsAABB reports sphere/box overlap using the closest point on the
// box to the sphere center.
func (s Sphere) IntersectsAABB(b AABB) bool {
	closest := vec.Vec3{
		X: vec.Clamp(s.Center.X, b.Min.X, b.Max.X),
		Y: vec.Clamp(s.Center.Y, b.Min.Y, b.Max.Y),
		Z: vec.Clamp(s.Center.Z, b.Min.Z, b.Max.Z),
	}
	return s.Center.Sub(closest).LengthSq() <= s.Radius*s.Radius
}

// ContainsPoint compares the squared distance from the closest point on the
// capsule's segment against Radius².
func (c Capsule) ContainsPoint(p vec.Vec3) bool {
	closest := ClosestPointOnSegment(c.Base, c.Tip, p)
	return p.Sub(closest).LengthSq() <= c.Radius*c.Radius
}

// IntersectsCapsule reports capsule/capsule overlap via the closest points
// between the two segments.
func (c Capsule) IntersectsCapsule(o Capsule) bool {
	a, b := ClosestPointsSegments(c.Base, c.Tip, o.Base, o.Tip)
	sum := c.Radius + o.Radius
	return b.Sub(a).LengthSq() <= sum*sum
}

// IntersectsSphere reports capsule/sphere overlap.
func (c Capsule) IntersectsSphere(s Sphere) bool {
	closest := ClosestPointOnSegment(c.Base, c.Tip, s.Center)
	sum := c.Radius + s.Radius
	return s.Center.Sub(closest).LengthSq() <= sum*sum
}

// IntersectsAABB is a conservative approximation: the box is expanded by the
// capsule radius and the segment's endpoints and midpoint are tested against
// the expanded box. This trades a little precision for speed and is not an
// exact capsule/box test.
func (c Capsule) IntersectsAABB(b AABB) bool {
	expanded := b.Expand(c.Radius)
	if expanded.ContainsPoint(c.Base) || expanded.ContainsPoint(c.Tip) {
		return true
	}
	mid := c.Base.Add(c.Tip).Scale(0.5)
	return expanded.ContainsPoint(mid)
}

// ShapesIntersect dispatches the pairwise test for two shapes. Capsule/box
// pairs use the conservative approximation above; everything else is exact.
func ShapesIntersect(a, b Shape) bool {
	switch a.Kind {
	case KindAABB:
		switch b.Kind {
		case KindAABB:
			return a.Box.Intersects(b.Box)
		case KindSphere:
			return b.Sphere.IntersectsAABB(a.Box)
		default:
			return b.Capsule.IntersectsAABB(a.Box)
		}
	case KindSphere:
		switch b.Kind {
		case KindAABB:
			return a.Sphere.IntersectsAABB(b.Box)
		case KindSphere:
			return a.Sphere.IntersectsSphere(b.Sphere)
		default:
			return b.Capsule.IntersectsSphere(a.Sphere)
		}
	default:
		switch b.Kind {
		case KindAABB:
			return a.Capsule.IntersectsAABB(b.Box)
		case KindSphere:
			return a.Capsule.IntersectsSphere(b.Sphere)
		default:
			return a.Capsule.IntersectsCapsule(b.Capsule)
		}
	}
}
