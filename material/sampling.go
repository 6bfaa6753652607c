package material

import (
	"math"

	"github.com/achilleasa/vincent/types"
)

const invPi = float32(1.0 / math.Pi)

// Generate a cosine-weighted direction in the +Z hemisphere from two
// uniform samples. The pdf of the returned direction is wi.z / π.
func SampleCosineHemisphere(u types.Vec2) types.Vec3 {
	r := sqrt32(u[0])
	sin, cos := math.Sincos(2 * math.Pi * float64(u[1]))
	return types.Vec3{
		r * float32(cos),
		r * float32(sin),
		sqrt32(1 - u[0]),
	}
}

// Mirror a local-frame direction about the normal.
func reflectLocal(wo types.Vec3) types.Vec3 {
	return types.Vec3{-wo[0], -wo[1], wo[2]}
}

func sqrt32(v float32) float32 {
	if v <= 0 {
		return 0
	}
	return float32(math.Sqrt(float64(v)))
}

func abs32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
