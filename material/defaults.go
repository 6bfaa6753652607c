package material

import "github.com/achilleasa/vincent/types"

// Indices of refraction for common dielectrics.
var KnownIORs = map[string]float32{
	"Vacuum":   1.0,
	"Air":      1.00028,
	"Water":    1.333,
	"Glass":    1.5,
	"Sapphire": 1.77,
	"Diamond":  2.42,
}

var (
	DefaultAlbedo = types.Vec3{0.8, 0.8, 0.8}
	DefaultIOR    = KnownIORs["Glass"]
)
