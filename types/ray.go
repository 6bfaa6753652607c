package types

import "math"

// A Ray is defined by an origin, a unit direction and a parametric
// interval [TMin, TMax). Intersection queries shrink TMax whenever they
// accept a closer hit, so after a query TMax holds the nearest hit distance.
type Ray struct {
	Origin Vec3
	Dir    Vec3

	TMin float32
	TMax float32
}

// Create a ray with an unbounded interval starting at tMin.
func NewRay(origin, dir Vec3, tMin float32) Ray {
	return Ray{
		Origin: origin,
		Dir:    dir,
		TMin:   tMin,
		TMax:   float32(math.Inf(1)),
	}
}

// Get the point at parametric distance t.
func (r *Ray) At(t float32) Vec3 {
	return r.Origin.Add(r.Dir.Mul(t))
}

// Returns false for rays with a zero-length or NaN direction or a NaN origin.
func (r *Ray) IsValid() bool {
	if r.Dir.HasNaN() || r.Origin.HasNaN() {
		return false
	}
	return r.Dir.Dot(r.Dir) > floatCmpEpsilon*floatCmpEpsilon
}
