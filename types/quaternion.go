package types

import "math"

// A rotation quaternion. Only the operations needed for orienting the
// camera are implemented.
type Quat struct {
	V Vec3
	W float32
}

// Create identity quaternion.
func QuatIdent() Quat {
	return Quat{W: 1.0}
}

// Create a quaternion that rotates by angle radians around axis.
func QuatFromAxisAngle(axis Vec3, angle float32) Quat {
	sin, cos := math.Sincos(float64(angle * 0.5))
	return Quat{
		V: axis.Normalize().Mul(float32(sin)),
		W: float32(cos),
	}
}

// Rotate v by this quaternion.
func (q Quat) Rotate(v Vec3) Vec3 {
	// v + 2w(qv x v) + 2qv x (qv x v)
	cross := q.V.Cross(v)
	return v.Add(cross.Mul(2 * q.W)).Add(q.V.Mul(2).Cross(cross))
}

// Compose two rotations. The product is not commutative; q.Mul(q2) applies
// q2 first.
func (q Quat) Mul(q2 Quat) Quat {
	return Quat{
		V: q.V.Cross(q2.V).Add(q2.V.Mul(q.W)).Add(q.V.Mul(q2.W)),
		W: q.W*q2.W - q.V.Dot(q2.V),
	}
}

// Get the quaternion norm.
func (q Quat) Len() float32 {
	return float32(math.Sqrt(float64(q.W*q.W + q.V.Dot(q.V))))
}

// Normalize to a unit quaternion. A zero quaternion normalizes to identity.
func (q Quat) Normalize() Quat {
	length := q.Len()
	if length < floatCmpEpsilon {
		return QuatIdent()
	}
	return Quat{V: q.V.Mul(1 / length), W: q.W / length}
}
