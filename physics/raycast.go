package physics

import (
	"github.com/chewxy/math32"

	"github.com/nethercore/zxcollide/vec"
)

// RayHit describes the closest collider intersected by a ray.
type RayHit struct {
	Collider ColliderID
	Point    vec.Vec3
	Normal   vec.Vec3
	Distance float32
}

// Raycast checks the ray against all live colliders the filter permits and
// returns the closest hit. Boxes use the slab method, spheres the quadratic
// solution; capsules are tested through their enclosing AABB, matching the
// conservative narrow-phase treatment. Colliders are visited in ascending id
// order, so equal-distance ties resolve identically on every client.
func (w *World) Raycast(origin, direction vec.Vec3, maxDistance float32, filter Filter) (RayHit, bool) {
	direction = direction.Normalize()
	if direction == vec.Zero() {
		return RayHit{}, false
	}

	closest := RayHit{Distance: maxDistance}
	found := false

	w.arena.forEachLive(func(c *Collider) {
		if !filter.CanCollide(c.Filter) {
			return
		}
		var hit RayHit
		var ok bool
		if c.Shape.Kind == KindSphere {
			hit, ok = raycastSphere(origin, direction, c.Shape.Sphere, maxDistance)
		} else {
			hit, ok = raycastBox(origin, direction, c.Shape.Bounds(), maxDistance)
		}
		if ok && hit.Distance < closest.Distance {
			closest = hit
			closest.Collider = c.ID
			found = true
		}
	})

	return closest, found
}

// raycastBox is the slab method against an AABB.
func raycastBox(origin, direction vec.Vec3, box AABB, maxDistance float32) (RayHit, bool) {
	tmin := math32.Inf(-1)
	tmax := math32.Inf(1)

	for axis := 0; axis < 3; axis++ {
		o := origin.Axis(axis)
		d := direction.Axis(axis)
		lo := box.Min.Axis(axis)
		hi := box.Max.Axis(axis)

		if d == 0 {
			if o < lo || o > hi {
				return RayHit{}, false
			}
			continue
		}

		t1 := (lo - o) / d
		t2 := (hi - o) / d
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		if t1 > tmin {
			tmin = t1
		}
		if t2 < tmax {
			tmax = t2
		}
	}

	if tmin > tmax || tmax < 0 || tmin > maxDistance {
		return RayHit{}, false
	}

	t := tmin
	if t < 0 {
		t = tmax
	}
	if t < 0 || t > maxDistance {
		return RayHit{}, false
	}

	point := origin.Add(direction.Scale(t))

	// Normal from whichever face the hit point lies on
	var normal vec.Vec3
	const epsilon = 0.001
	switch {
	case math32.Abs(point.X-box.Min.X) < epsilon:
		normal = vec.Vec3{X: -1}
	case math32.Abs(point.X-box.Max.X) < epsilon:
		normal = vec.Vec3{X: 1}
	case math32.Abs(point.Y-box.Min.Y) < epsilon:
		normal = vec.Vec3{Y: -1}
	case math32.Abs(point.Y-box.Max.Y) < epsilon:
		normal = vec.Vec3{Y: 1}
	case math32.Abs(point.Z-box.Min.Z) < epsilon:
		normal = vec.Vec3{Z: -1}
	default:
		normal = vec.Vec3{Z: 1}
	}

	return RayHit{Point: point, Normal: normal, Distance: t}, true
}

func raycastSphere(origin, direction vec.Vec3, sphere Sphere, maxDistance float32) (RayHit, bool) {
	oc := origin.Sub(sphere.Center)
	a := direction.Dot(direction)
	b := 2 * oc.Dot(direction)
	c := oc.Dot(oc) - sphere.Radius*sphere.Radius

	discriminant := b*b - 4*a*c
	if discriminant < 0 {
		return RayHit{}, false
	}

	sq := math32.Sqrt(discriminant)
	t := (-b - sq) / (2 * a)
	if t < 0 {
		t = (-b + sq) / (2 * a)
	}
	if t < 0 || t > maxDistance {
		return RayHit{}, false
	}

	point := origin.Add(direction.Scale(t))
	normal := point.Sub(sphere.Center).Normalize()

	return RayHit{Point: point, Normal: normal, Distance: t}, true
}
