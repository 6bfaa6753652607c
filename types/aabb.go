package types

import "math"

// Direction components with a magnitude below this threshold are treated as
// parallel to the corresponding slab.
const parallelEpsilon = 1e-8

// Half the float32 machine epsilon.
const roundoffUnit = 1.0 / (1 << 24)

// Bound on the relative rounding error of three chained float32 operations.
const gamma3 = 3 * roundoffUnit / (1 - 3*roundoffUnit)

// Slab exit distances are scaled by this factor so that rounding in the
// slab arithmetic never rejects a ray grazing a face or an edge.
const slabExitScale = 1 + 2*gamma3

type Axis uint8

const (
	XAxis Axis = iota
	YAxis
	ZAxis
)

func (a Axis) String() string {
	switch a {
	case XAxis:
		return "x"
	case YAxis:
		return "y"
	case ZAxis:
		return "z"
	}
	return "invalid"
}

// An axis-aligned bounding box. The zero value is a degenerate box at the
// origin; use EmptyAABB to obtain a box that can be grown with Extend/Union.
type AABB struct {
	Min Vec3
	Max Vec3
}

// Create an empty AABB. Its extents are set to +Inf/-Inf so that it
// does not intersect anything until it is extended by at least one point.
func EmptyAABB() AABB {
	inf := float32(math.Inf(1))
	return AABB{
		Min: Vec3{inf, inf, inf},
		Max: Vec3{-inf, -inf, -inf},
	}
}

// Create the AABB enclosing a set of points.
func AABBFromPoints(points ...Vec3) AABB {
	b := EmptyAABB()
	for _, p := range points {
		b = b.Extend(p)
	}
	return b
}

// Returns true if the box has not been extended yet (min > max on any axis).
func (b AABB) IsEmpty() bool {
	return !(b.Min[0] <= b.Max[0] && b.Min[1] <= b.Max[1] && b.Min[2] <= b.Max[2])
}

// Grow the box to include point p.
func (b AABB) Extend(p Vec3) AABB {
	return AABB{Min: MinVec3(b.Min, p), Max: MaxVec3(b.Max, p)}
}

// Merge two boxes.
func (b AABB) Union(other AABB) AABB {
	return AABB{Min: MinVec3(b.Min, other.Min), Max: MaxVec3(b.Max, other.Max)}
}

// Returns true if other lies entirely inside this box. An empty box is
// contained by every box.
func (b AABB) Contains(other AABB) bool {
	if other.IsEmpty() {
		return true
	}
	if b.IsEmpty() {
		return false
	}
	for i := 0; i < 3; i++ {
		if other.Min[i] < b.Min[i] || other.Max[i] > b.Max[i] {
			return false
		}
	}
	return true
}

// Grow the box by d along every axis. Empty boxes are returned unchanged.
func (b AABB) Pad(d float32) AABB {
	if b.IsEmpty() {
		return b
	}
	pad := Splat3(d)
	return AABB{Min: b.Min.Sub(pad), Max: b.Max.Add(pad)}
}

// Get the largest absolute coordinate of the box corners. Empty boxes
// report zero.
func (b AABB) MaxAbsCoord() float32 {
	if b.IsEmpty() {
		return 0
	}
	var m float32
	for i := 0; i < 3; i++ {
		for _, v := range [2]float32{b.Min[i], b.Max[i]} {
			if v < 0 {
				v = -v
			}
			if v > m {
				m = v
			}
		}
	}
	return m
}

// Returns true if p lies inside or on the boundary of the box.
func (b AABB) ContainsPoint(p Vec3) bool {
	for i := 0; i < 3; i++ {
		if !(p[i] >= b.Min[i] && p[i] <= b.Max[i]) {
			return false
		}
	}
	return true
}

// Get box center.
func (b AABB) Center() Vec3 {
	return b.Min.Add(b.Max).Mul(0.5)
}

// Get box extents. Empty boxes report a zero size.
func (b AABB) Size() Vec3 {
	if b.IsEmpty() {
		return Vec3{}
	}
	return b.Max.Sub(b.Min)
}

// Calculate the box surface area: 2 * (dx*dy + dy*dz + dz*dx).
func (b AABB) SurfaceArea() float32 {
	side := b.Size()
	return 2 * (side[0]*side[1] + side[1]*side[2] + side[2]*side[0])
}

// Get the axis along which the box is widest. Ties prefer the lower axis.
func (b AABB) LongestAxis() Axis {
	side := b.Size()
	axis := XAxis
	if side[1] > side[axis] {
		axis = YAxis
	}
	if side[2] > side[axis] {
		axis = ZAxis
	}
	return axis
}

// Intersect the box with a ray using the slab method. The returned interval
// is clipped to the ray's [TMin, TMax] range so a box lying entirely beyond
// the current best hit distance is reported as a miss.
//
// Axes along which the ray direction is (almost) zero are never divided by;
// the ray either lies inside that slab for its entire length or misses.
// Exit distances are widened by the rounding error bound of the slab
// arithmetic so rays touching a face or edge of a flat box still hit it.
func (b AABB) IntersectRay(ray *Ray) (tMin, tMax float32, hit bool) {
	if b.IsEmpty() {
		return 0, 0, false
	}

	tMin, tMax = ray.TMin, ray.TMax
	for axis := 0; axis < 3; axis++ {
		origin, dir := ray.Origin[axis], ray.Dir[axis]
		if dir != dir || origin != origin {
			return 0, 0, false
		}

		if dir > -parallelEpsilon && dir < parallelEpsilon {
			if !(origin >= b.Min[axis] && origin <= b.Max[axis]) {
				return 0, 0, false
			}
			continue
		}

		invDir := 1.0 / dir
		t0 := (b.Min[axis] - origin) * invDir
		t1 := (b.Max[axis] - origin) * invDir
		if t0 > t1 {
			t0, t1 = t1, t0
		}
		t1 *= slabExitScale

		if t0 > tMin {
			tMin = t0
		}
		if t1 < tMax {
			tMax = t1
		}
		if !(tMin <= tMax) {
			return 0, 0, false
		}
	}

	return tMin, tMax, true
}
