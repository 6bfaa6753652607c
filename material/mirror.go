package material

import "github.com/achilleasa/vincent/types"

// Perfect specular reflection. The returned value is normalized by the
// cosine term so that f·cosθ/pdf equals the albedo.
func sampleMirror(b *Bsdf, wo types.Vec3) Sample {
	wi := reflectLocal(wo)
	return Sample{
		Wi:   wi,
		Pdf:  1,
		F:    b.Albedo.Mul(1 / abs32(wi[2])),
		Lobe: LobeSpecularReflection,
	}
}
