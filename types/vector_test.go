package types

import (
	"math"
	"testing"
)

func TestVectorOps(t *testing.T) {
	a := XYZ(1, 2, 3)
	b := XYZ(-2, 0.5, 4)

	if got := a.Dot(b); got != 11 {
		t.Fatalf("expected dot product 11; got %f", got)
	}
	if got := XYZ(1, 0, 0).Cross(XYZ(0, 1, 0)); got != XYZ(0, 0, 1) {
		t.Fatalf("expected x cross y to be z; got %v", got)
	}
	if got := a.MulVec(b); got != XYZ(-2, 1, 12) {
		t.Fatalf("expected component-wise product (-2, 1, 12); got %v", got)
	}
	if got := b.MaxComponent(); got != 4 {
		t.Fatalf("expected max component 4; got %f", got)
	}
	if got := a.Neg().Add(a); got != (Vec3{}) {
		t.Fatalf("expected v + -v to be zero; got %v", got)
	}
}

func TestNormalize(t *testing.T) {
	n := XYZ(3, 0, 4).Normalize()
	if !ApproxEqual(n, XYZ(0.6, 0, 0.8), 1e-6) {
		t.Fatalf("expected (0.6, 0, 0.8); got %v", n)
	}

	if z := (Vec3{}).Normalize(); z != (Vec3{}) {
		t.Fatalf("expected zero vector to normalize to zero; got %v", z)
	}
}

func TestQuatRotate(t *testing.T) {
	q := QuatFromAxisAngle(XYZ(0, 1, 0), math.Pi/2)
	got := q.Rotate(XYZ(1, 0, 0))
	if !ApproxEqual(got, XYZ(0, 0, -1), 1e-5) {
		t.Fatalf("expected (0, 0, -1); got %v", got)
	}

	// Two quarter turns compose to a half turn.
	got = q.Mul(q).Normalize().Rotate(XYZ(1, 0, 0))
	if !ApproxEqual(got, XYZ(-1, 0, 0), 1e-5) {
		t.Fatalf("expected (-1, 0, 0); got %v", got)
	}
}

func TestRayValidity(t *testing.T) {
	if r := NewRay(Vec3{}, Vec3{}, 0); r.IsValid() {
		t.Fatal("expected zero direction ray to be invalid")
	}
	if r := NewRay(Vec3{}, XYZ(float32(math.NaN()), 0, 1), 0); r.IsValid() {
		t.Fatal("expected NaN direction ray to be invalid")
	}
	r := NewRay(XYZ(1, 1, 1), XYZ(0, 0, 1), 0)
	if !r.IsValid() {
		t.Fatal("expected ray to be valid")
	}
	if got := r.At(2); got != XYZ(1, 1, 3) {
		t.Fatalf("expected (1, 1, 3); got %v", got)
	}
}
