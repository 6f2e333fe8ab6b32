package physics

import (
	"github.com/chewxy/math32"

	"github.com/nethercore/zxcollide/vec"
)

// sweptEpsilon is the velocity magnitude below which an axis is treated as
// static in the sweep.
const sweptEpsilon = 1e-8

// SweptHit describes the first contact of a swept test. T is the time of
// impact as a fraction of the tick's displacement, in [0, 1].
type SweptHit struct {
	T      float32
	Normal vec.Vec3
}

// SweptAABB computes the time of first impact of a moving box, displaced by
// disp over one tick, against a static box, using the slab method per axis.
//
// An axis with near-zero displacement must already overlap the static box on
// that axis or there is no collision; callers handle initial full overlap
// separately with push-out, not the sweep. The entry time is the max across
// axes, the exit time the min; a hit exists iff entry ≤ exit with entry in
// [0, 1]. The collision normal comes from the axis with the latest entry time
// (the limiting axis), with sign opposite the displacement on that axis;
// this tie-break is fixed and must match on every client.
func SweptAABB(moving AABB, disp vec.Vec3, static AABB) (SweptHit, bool) {
	negInf := math32.Inf(-1)
	posInf := math32.Inf(1)

	var tEntry, tExit [3]float32
	for axis := 0; axis < 3; axis++ {
		v := disp.Axis(axis)
		movMin, movMax := moving.Min.Axis(axis), moving.Max.Axis(axis)
		stMin, stMax := static.Min.Axis(axis), static.Max.Axis(axis)

		if math32.Abs(v) < sweptEpsilon {
			// Static on this axis: overlap must already exist
			if movMax < stMin || movMin > stMax {
				return SweptHit{}, false
			}
			tEntry[axis] = negInf
			tExit[axis] = posInf
			continue
		}

		t1 := (stMin - movMax) / v
		t2 := (stMax - movMin) / v
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tEntry[axis] = t1
		tExit[axis] = t2
	}

	entry := tEntry[0]
	limiting := 0
	if tEntry[1] > entry {
		entry = tEntry[1]
		limiting = 1
	}
	if tEntry[2] > entry {
		entry = tEntry[2]
		limiting = 2
	}

	exit := tExit[0]
	if tExit[1] < exit {
		exit = tExit[1]
	}
	if tExit[2] < exit {
		exit = tExit[2]
	}

	if entry > exit || entry < 0 || entry > 1 {
		return SweptHit{}, false
	}

	var normal vec.Vec3
	if disp.Axis(limiting) > 0 {
		normal = normal.SetAxis(limiting, -1)
	} else {
		normal = normal.SetAxis(limiting, 1)
	}

	return SweptHit{T: entry, Normal: normal}, true
}
