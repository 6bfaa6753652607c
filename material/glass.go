package material

import (
	"math"

	"github.com/achilleasa/vincent/types"
)

// Get the indices of refraction on the incident (ni) and transmitted (nt)
// side of the interface. A wo below the surface means the sampled path
// continues out of the medium.
func (b *Bsdf) refractionIndices(wo types.Vec3) (ni, nt float32) {
	if wo[2] < 0 {
		return b.IOR, 1
	}
	return 1, b.IOR
}

// Get the (nt/ni)² factor applied to transmitted radiance for wo.
func (b *Bsdf) RadianceScale(wo types.Vec3) float32 {
	ni, nt := b.refractionIndices(wo)
	return (nt * nt) / (ni * ni)
}

// Schlick's approximation of the Fresnel reflectance.
func schlick(ni, nt, cosThetaI float32) float32 {
	r0 := (ni - nt) / (ni + nt)
	r0 *= r0
	return r0 + (1-r0)*float32(math.Pow(float64(1-cosThetaI), 5))
}

// Sample a smooth dielectric interface, choosing between reflection and
// refraction with probability given by the Fresnel reflectance.
//
// Callers must not pass a wo with wo.z == 0; the returned value is
// normalized by cosθi.
func sampleGlass(b *Bsdf, wo types.Vec3, rng Sampler) Sample {
	traceOut := wo[2] < 0
	ni, nt := b.refractionIndices(wo)

	cosThetaI := abs32(wo[2])
	sinThetaI := sqrt32(1 - cosThetaI*cosThetaI)

	// Snell's law in cosine form; a negative value means that no
	// transmitted direction exists.
	eta := ni / nt
	cosSqThetaT := 1 - eta*eta*(1-wo[2]*wo[2])
	if cosSqThetaT < 0 {
		wi := reflectLocal(wo)
		return Sample{
			Wi:   wi,
			Pdf:  1,
			F:    b.Albedo.Mul(1 / abs32(wi[2])),
			Lobe: LobeSpecularReflection,
		}
	}

	reflectance := schlick(ni, nt, cosThetaI)
	if rng.Float32() <= reflectance {
		return Sample{
			Wi:   reflectLocal(wo),
			Pdf:  reflectance,
			F:    b.Albedo.Mul(reflectance / cosThetaI),
			Lobe: LobeSpecularReflection,
		}
	}

	cosThetaT := sqrt32(cosSqThetaT)
	sinThetaT := sqrt32(1 - cosSqThetaT)
	if !traceOut {
		cosThetaT = -cosThetaT
	}

	// At normal incidence the transverse scale is 0/0; the transmitted
	// direction is the normal itself.
	wi := types.Vec3{0, 0, cosThetaT}
	if sinThetaI > 0 {
		scale := sinThetaT / sinThetaI
		wi[0] = -wo[0] * scale
		wi[1] = -wo[1] * scale
	}

	return Sample{
		Wi:   wi,
		Pdf:  1 - reflectance,
		F:    b.Albedo.Mul(b.RadianceScale(wo) * (1 - reflectance) / cosThetaI),
		Lobe: LobeSpecularTransmission,
	}
}
