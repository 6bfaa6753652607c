package material

import (
	"fmt"

	"github.com/achilleasa/vincent/types"
)

// A BSDF whose emitted radiance magnitude reaches this threshold is
// classified as a light source.
const EmissiveThreshold float32 = 0.4

// Sampler is the random source used for importance sampling. It must return
// uniformly distributed values in [0, 1). *math/rand.Rand satisfies it.
//
// Samplers are not shared between goroutines; each caller supplies its own.
type Sampler interface {
	Float32() float32
}

// Lobe identifies which scattering event produced a sample.
type Lobe uint8

const (
	LobeNone Lobe = iota
	LobeDiffuse
	LobeSpecularReflection
	LobeSpecularTransmission
)

func (l Lobe) String() string {
	switch l {
	case LobeDiffuse:
		return "diffuse"
	case LobeSpecularReflection:
		return "specular reflection"
	case LobeSpecularTransmission:
		return "specular transmission"
	}
	return "none"
}

// Sample is the outcome of importance sampling a BSDF.
type Sample struct {
	// Sampled direction towards the next path vertex.
	Wi types.Vec3

	// The probability (density for diffuse lobes, discrete probability for
	// specular lobes) of having picked Wi.
	Pdf float32

	// The BSDF value for the sampled pair.
	F types.Vec3

	Lobe Lobe
}

// Bsdf is a tagged variant over the supported scattering models. All
// directions passed to and returned by its methods are expressed in the
// local shading frame where the surface normal is +Z and both wi and wo
// point away from the surface.
//
// A Bsdf is safe for concurrent use as long as it is not modified.
type Bsdf struct {
	Type BxdfType

	Albedo types.Vec3

	// Index of refraction of the medium behind the surface. The medium
	// in front of it is assumed to be air/vacuum (IOR 1). Only used by glass.
	IOR float32

	// Emitted radiance.
	Le types.Vec3
}

// Create a lambertian bsdf.
func NewDiffuse(albedo types.Vec3) *Bsdf {
	return &Bsdf{Type: BxdfDiffuse, Albedo: albedo}
}

// Create a perfect specular reflector.
func NewMirror(albedo types.Vec3) *Bsdf {
	return &Bsdf{Type: BxdfMirror, Albedo: albedo}
}

// Create a dielectric. Panics if ior is not strictly positive.
func NewGlass(albedo types.Vec3, ior float32) *Bsdf {
	if !(ior > 0) {
		panic(fmt.Sprintf("material: invalid index of refraction %f", ior))
	}
	return &Bsdf{Type: BxdfGlass, Albedo: albedo, IOR: ior}
}

// Create a pure emitter that does not scatter light.
func NewEmissive(le types.Vec3) *Bsdf {
	return (&Bsdf{Type: BxdfEmissive}).WithEmission(le)
}

// Return a copy of b with its emitted radiance set to le.
func (b *Bsdf) WithEmission(le types.Vec3) *Bsdf {
	out := *b
	out.Le = le
	return &out
}

// Returns true if the bsdf emits enough radiance to be treated as a light.
func (b *Bsdf) IsEmissive() bool {
	return IsEmissiveRadiance(b.Le)
}

// Returns true if le reaches the emissive classification threshold.
func IsEmissiveRadiance(le types.Vec3) bool {
	return le.Dot(le) >= EmissiveThreshold*EmissiveThreshold
}

// Returns true if the scattering distribution is a delta function.
func (b *Bsdf) IsSpecular() bool {
	return b.Type.IsSpecular()
}

// Evaluate the bsdf for a pair of directions. Delta distributions
// (mirror, glass) always evaluate to zero.
func (b *Bsdf) F(wi, wo types.Vec3) types.Vec3 {
	switch b.Type {
	case BxdfDiffuse:
		return diffuseF(b)
	}
	return types.Vec3{}
}

// Importance sample an incoming direction for wo.
func (b *Bsdf) Sample(wo types.Vec3, rng Sampler) Sample {
	switch b.Type {
	case BxdfDiffuse:
		return sampleDiffuse(b, rng)
	case BxdfMirror:
		return sampleMirror(b, wo)
	case BxdfGlass:
		return sampleGlass(b, wo, rng)
	}
	return Sample{}
}

// Importance sample an incoming direction for wo returning the sampled
// direction, its pdf and the bsdf value.
func (b *Bsdf) SampleF(wo types.Vec3, rng Sampler) (wi types.Vec3, pdf float32, f types.Vec3) {
	s := b.Sample(wo, rng)
	return s.Wi, s.Pdf, s.F
}

func (b *Bsdf) String() string {
	switch b.Type {
	case BxdfGlass:
		return fmt.Sprintf("%s(albedo: %v, ior: %g)", b.Type, b.Albedo, b.IOR)
	case BxdfEmissive:
		return fmt.Sprintf("%s(radiance: %v)", b.Type, b.Le)
	}
	return fmt.Sprintf("%s(albedo: %v)", b.Type, b.Albedo)
}
