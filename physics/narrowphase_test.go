package physics

import (
	"math/rand"
	"testing"

	"github.com/nethercore/zxcollide/vec"
)

func randVec(rng *rand.Rand, scale float32) vec.Vec3 {
	return vec.New(
		rng.Float32()*scale*2-scale,
		rng.Float32()*scale*2-scale,
		rng.Float32()*scale*2-scale,
	)
}

func TestSphereContainsPoint(t *testing.T) {
	s := Sphere{Center: vec.New(0, 0, 0), Radius: 2}

	if !s.ContainsPoint(vec.New(1, 1, 0)) {
		t.Error("interior point reported outside")
	}
	if !s.ContainsPoint(vec.New(2, 0, 0)) {
		t.Error("surface point reported outside")
	}
	if s.ContainsPoint(vec.New(2.1, 0, 0)) {
		t.Error("exterior point reported inside")
	}
}

func TestSphereIntersectsAABB(t *testing.T) {
	b := box(0, 0, 0, 2, 2, 2)

	if !(Sphere{Center: vec.New(3, 1, 1), Radius: 1.5}).IntersectsAABB(b) {
		t.Error("overlapping sphere/box reported separate")
	}
	if (Sphere{Center: vec.New(4, 1, 1), Radius: 1}).IntersectsAABB(b) {
		t.Error("separate sphere/box reported overlapping")
	}
	// Corner case: sphere near the box corner but outside the rounded region
	if (Sphere{Center: vec.New(2.8, 2.8, 2.8), Radius: 1}).IntersectsAABB(b) {
		t.Error("sphere past the corner reported overlapping")
	}
}

// A capsule with base == tip must behave exactly like a sphere of the same
// radius, for both containment and capsule/capsule overlap.
func TestCapsuleDegeneratesToSphere(t *testing.T) {
	rng := rand.New(rand.NewSource(11))

	for i := 0; i < 1000; i++ {
		center := randVec(rng, 10)
		radius := 0.1 + rng.Float32()*3

		capsule := Capsule{Base: center, Tip: center, Radius: radius}
		sphere := Sphere{Center: center, Radius: radius}

		p := randVec(rng, 12)
		if capsule.ContainsPoint(p) != sphere.ContainsPoint(p) {
			t.Fatalf("contains mismatch at %v: capsule %v sphere %v",
				p, capsule.ContainsPoint(p), sphere.ContainsPoint(p))
		}

		other := Capsule{
			Base:   randVec(rng, 10),
			Tip:    randVec(rng, 10),
			Radius: 0.1 + rng.Float32()*2,
		}
		wantSphere := other.IntersectsSphere(sphere)
		if got := capsule.IntersectsCapsule(other); got != wantSphere {
			t.Fatalf("intersects mismatch: degenerate capsule %v, as sphere %v", got, wantSphere)
		}
	}
}

func TestCapsuleIntersectsCapsule(t *testing.T) {
	a := Capsule{Base: vec.New(0, 0, 0), Tip: vec.New(0, 4, 0), Radius: 1}

	crossing := Capsule{Base: vec.New(-2, 2, 1.5), Tip: vec.New(2, 2, 1.5), Radius: 1}
	if !a.IntersectsCapsule(crossing) {
		t.Error("crossing capsules reported separate")
	}

	far := Capsule{Base: vec.New(5, 0, 0), Tip: vec.New(5, 4, 0), Radius: 1}
	if a.IntersectsCapsule(far) {
		t.Error("distant capsules reported overlapping")
	}

	if a.IntersectsCapsule(crossing) != crossing.IntersectsCapsule(a) {
		t.Error("capsule/capsule test is asymmetric")
	}
}

func TestCapsuleIntersectsAABBConservative(t *testing.T) {
	b := box(0, 0, 0, 2, 2, 2)

	inside := Capsule{Base: vec.New(1, 1, 1), Tip: vec.New(1, 1.5, 1), Radius: 0.2}
	if !inside.IntersectsAABB(b) {
		t.Error("capsule inside box reported separate")
	}

	touching := Capsule{Base: vec.New(2.5, 1, 1), Tip: vec.New(4, 1, 1), Radius: 0.6}
	if !touching.IntersectsAABB(b) {
		t.Error("capsule whose base sphere reaches the box reported separate")
	}

	far := Capsule{Base: vec.New(10, 10, 10), Tip: vec.New(12, 10, 10), Radius: 1}
	if far.IntersectsAABB(b) {
		t.Error("distant capsule reported overlapping")
	}
}

func TestShapesIntersectDispatch(t *testing.T) {
	boxShape := BoxShape(box(0, 0, 0, 2, 2, 2))
	sphereShape := SphereShape(Sphere{Center: vec.New(1, 1, 1), Radius: 0.5})
	capsuleShape := CapsuleShape(Capsule{Base: vec.New(1, 0, 1), Tip: vec.New(1, 2, 1), Radius: 0.5})
	farShape := SphereShape(Sphere{Center: vec.New(50, 0, 0), Radius: 1})

	pairs := []struct {
		name string
		a, b Shape
		want bool
	}{
		{"box/sphere overlap", boxShape, sphereShape, true},
		{"box/capsule overlap", boxShape, capsuleShape, true},
		{"sphere/capsule overlap", sphereShape, capsuleShape, true},
		{"box/far sphere", boxShape, farShape, false},
		{"capsule/far sphere", capsuleShape, farShape, false},
	}

	for _, tc := range pairs {
		if got := ShapesIntersect(tc.a, tc.b); got != tc.want {
			t.Errorf("%s: got %v, want %v", tc.name, got, tc.want)
		}
		if ShapesIntersect(tc.a, tc.b) != ShapesIntersect(tc.b, tc.a) {
			t.Errorf("%s: dispatch is asymmetric", tc.name)
		}
	}
}
