package physics

import "github.com/nethercore/zxcollide/vec"

// segmentEpsilon guards against division by near-zero squared lengths and
// denominators in the segment solvers.
const segmentEpsilon = 1e-8

// ClosestPointOnSegment projects p onto the segment [a, b], clamping the
// parametric t to [0, 1]. A degenerate segment (a ≈ b) returns a.
func ClosestPointOnSegment(a, b, p vec.Vec3) vec.Vec3 {
	ab := b.Sub(a)
	lenSq := ab.Dot(ab)
	if lenSq < segmentEpsilon {
		return a
	}
	t := vec.Clamp(p.Sub(a).Dot(ab)/lenSq, 0, 1)
	return a.Add(ab.Scale(t))
}

// ClosestPointsSegments finds the nearest points between segments [p1, q1]
// and [p2, q2]. The unconstrained solution comes from the 2×2 system built
// from d1·d1, d2·d2 and d1·d2; parallel and degenerate segments take the
// explicit branches, and out-of-range solutions are clamped back to [0, 1].
func ClosestPointsSegments(p1, q1, p2, q2 vec.Vec3) (c1, c2 vec.Vec3) {
	d1 := q1.Sub(p1)
	d2 := q2.Sub(p2)
	r := p1.Sub(p2)

	a := d1.Dot(d1)
	e := d2.Dot(d2)
	f := d2.Dot(r)

	// Both segments degenerate to points
	if a < segmentEpsilon && e < segmentEpsilon {
		return p1, p2
	}

	var s, t float32
	if a < segmentEpsilon {
		// First segment is a point
		s = 0
		t = vec.Clamp(f/e, 0, 1)
	} else {
		c := d1.Dot(r)
		if e < segmentEpsilon {
			// Second segment is a point
			t = 0
			s = vec.Clamp(-c/a, 0, 1)
		} else {
			b := d1.Dot(d2)
			denom := a*e - b*b

			if denom > segmentEpsilon {
				s = vec.Clamp((b*f-c*e)/denom, 0, 1)
			} else {
				// Parallel segments: any s works, pick the start
				s = 0
			}

			t = (b*s + f) / e

			// Clamp t and recompute s for the clamped value
			if t < 0 {
				t = 0
				s = vec.Clamp(-c/a, 0, 1)
			} else if t > 1 {
				t = 1
				s = vec.Clamp((b-c)/a, 0, 1)
			}
		}
	}

	return p1.Add(d1.Scale(s)), p2.Add(d2.Scale(t))
}
