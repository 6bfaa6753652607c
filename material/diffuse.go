package material

import "github.com/achilleasa/vincent/types"

// Lambertian reflection is constant over the hemisphere. Directions below
// the surface are not checked here; the integrator owns hemisphere tests.
func diffuseF(b *Bsdf) types.Vec3 {
	return b.Albedo.Mul(invPi)
}

// Cosine-weighted sampling makes f·cosθ/pdf collapse to the albedo.
func sampleDiffuse(b *Bsdf, rng Sampler) Sample {
	wi := SampleCosineHemisphere(types.XY(rng.Float32(), rng.Float32()))
	return Sample{
		Wi:   wi,
		Pdf:  wi[2] * invPi,
		F:    diffuseF(b),
		Lobe: LobeDiffuse,
	}
}
