package scene

import (
	"math"

	"github.com/achilleasa/vincent/types"
)

// Determinants below this value mean that a ray is parallel to a triangle.
const triangleEpsilon = 1e-8

// The Primitive interface is implemented by all intersectable scene geometry.
//
// Intersect reports the closest intersection whose distance lies within
// [ray.TMin, ray.TMax) together with the geometric surface normal at the
// hit point. Implementations must not modify the ray.
type Primitive interface {
	BBox() types.AABB
	Intersect(ray *types.Ray) (dist float32, normal types.Vec3, hit bool)

	// Index of the primitive material in the scene material list.
	MaterialIndex() int
}

// A triangle primitive. The geometric normal follows the counter-clockwise
// winding of its vertices.
type Triangle struct {
	Vertices [3]types.Vec3

	edge1, edge2 types.Vec3
	normal       types.Vec3
	bbox         types.AABB
	material     int
}

// Create new triangle primitive.
func NewTriangle(vertices [3]types.Vec3, materialIndex int) *Triangle {
	tri := &Triangle{
		Vertices: vertices,
		edge1:    vertices[1].Sub(vertices[0]),
		edge2:    vertices[2].Sub(vertices[0]),
		bbox:     types.AABBFromPoints(vertices[:]...),
		material: materialIndex,
	}
	tri.normal = tri.edge1.Cross(tri.edge2).Normalize()
	return tri
}

func (tri *Triangle) BBox() types.AABB {
	return tri.bbox
}

func (tri *Triangle) MaterialIndex() int {
	return tri.material
}

// Get the triangle geometric normal.
func (tri *Triangle) Normal() types.Vec3 {
	return tri.normal
}

// Intersect the triangle using the Möller-Trumbore algorithm. Both faces
// of the triangle are intersectable.
func (tri *Triangle) Intersect(ray *types.Ray) (float32, types.Vec3, bool) {
	pVec := ray.Dir.Cross(tri.edge2)
	det := tri.edge1.Dot(pVec)
	if det > -triangleEpsilon && det < triangleEpsilon {
		return 0, types.Vec3{}, false
	}
	invDet := 1.0 / det

	tVec := ray.Origin.Sub(tri.Vertices[0])
	u := tVec.Dot(pVec) * invDet
	if u < 0 || u > 1 {
		return 0, types.Vec3{}, false
	}

	qVec := tVec.Cross(tri.edge1)
	v := ray.Dir.Dot(qVec) * invDet
	if v < 0 || u+v > 1 {
		return 0, types.Vec3{}, false
	}

	dist := tri.edge2.Dot(qVec) * invDet
	if !(dist >= ray.TMin && dist < ray.TMax) {
		return 0, types.Vec3{}, false
	}

	return dist, tri.normal, true
}

// A sphere primitive.
type Sphere struct {
	Center types.Vec3
	Radius float32

	material int
}

// Create new sphere primitive.
func NewSphere(center types.Vec3, radius float32, materialIndex int) *Sphere {
	return &Sphere{
		Center:   center,
		Radius:   radius,
		material: materialIndex,
	}
}

func (s *Sphere) BBox() types.AABB {
	r := types.Splat3(s.Radius)
	return types.AABB{Min: s.Center.Sub(r), Max: s.Center.Add(r)}
}

func (s *Sphere) MaterialIndex() int {
	return s.material
}

// Intersect the sphere returning the closest root within the ray interval.
// The returned normal always points outwards.
func (s *Sphere) Intersect(ray *types.Ray) (float32, types.Vec3, bool) {
	oc := ray.Origin.Sub(s.Center)
	a := ray.Dir.Dot(ray.Dir)
	halfB := oc.Dot(ray.Dir)
	c := oc.Dot(oc) - s.Radius*s.Radius

	discriminant := halfB*halfB - a*c
	if discriminant < 0 || a == 0 {
		return 0, types.Vec3{}, false
	}
	sqrtD := float32(math.Sqrt(float64(discriminant)))

	dist := (-halfB - sqrtD) / a
	if !(dist >= ray.TMin && dist < ray.TMax) {
		dist = (-halfB + sqrtD) / a
		if !(dist >= ray.TMin && dist < ray.TMax) {
			return 0, types.Vec3{}, false
		}
	}

	normal := ray.At(dist).Sub(s.Center).Mul(1 / s.Radius)
	return dist, normal, true
}
