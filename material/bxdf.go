package material

// BxdfType represents the scattering models supported by the tracer.
type BxdfType int

const (
	bxdfInvalid BxdfType = iota
	BxdfEmissive
	BxdfDiffuse
	BxdfMirror
	BxdfGlass
)

// Lookup bxdf type by its name. Unknown names map to an invalid type which
// callers can detect via IsValid.
func BxdfTypeFromName(name string) BxdfType {
	switch name {
	case "emissive":
		return BxdfEmissive
	case "diffuse":
		return BxdfDiffuse
	case "mirror":
		return BxdfMirror
	case "glass":
		return BxdfGlass
	}

	return bxdfInvalid
}

// Returns true if t is one of the supported bxdf types.
func (t BxdfType) IsValid() bool {
	return t > bxdfInvalid && t <= BxdfGlass
}

// Returns true for bxdfs whose scattering distribution is a delta function.
func (t BxdfType) IsSpecular() bool {
	return t == BxdfMirror || t == BxdfGlass
}

func (t BxdfType) String() string {
	switch t {
	case BxdfEmissive:
		return "emissive"
	case BxdfDiffuse:
		return "diffuse"
	case BxdfMirror:
		return "mirror"
	case BxdfGlass:
		return "glass"
	}

	return "invalid"
}
