package reader

import (
	"bufio"
	"context"
	"strings"

	"github.com/achilleasa/vincent/asset"
	"github.com/achilleasa/vincent/material"
	"github.com/achilleasa/vincent/types"
)

type wavefrontMaterial struct {
	Name string

	// Diffuse/Albedo color.
	Kd types.Vec3

	// Specular color.
	Ks types.Vec3

	// Emissive color.
	Ke types.Vec3

	// Index of refraction.
	Ni float32

	// Index into the scene material list once the material is used by a
	// face; -1 otherwise.
	sceneIndex int
}

func newWavefrontMaterial(name string) *wavefrontMaterial {
	return &wavefrontMaterial{
		Name:       name,
		Kd:         material.DefaultAlbedo,
		sceneIndex: -1,
	}
}

// Convert the wavefront material properties into a bsdf. Emission strong
// enough to classify the material as a light takes precedence, followed by
// specular transmission (Ks and Ni), specular reflection (Ks) and finally
// diffuse reflection. Weaker emission is attached to the scattering bsdf.
func (wf *wavefrontMaterial) Bsdf() *material.Bsdf {
	if material.IsEmissiveRadiance(wf.Ke) {
		return material.NewEmissive(wf.Ke)
	}

	var bsdf *material.Bsdf
	isSpecular := wf.Ks.MaxComponent() > 0.0
	switch {
	case isSpecular && wf.Ni > 0.0:
		bsdf = material.NewGlass(wf.Ks, wf.Ni)
	case isSpecular:
		bsdf = material.NewMirror(wf.Ks)
	default:
		bsdf = material.NewDiffuse(wf.Kd)
	}

	if wf.Ke.MaxComponent() > 0.0 {
		bsdf = bsdf.WithEmission(wf.Ke)
	}
	return bsdf
}

// Parse a wavefront material library.
func (r *wavefrontSceneReader) parseMaterials(ctx context.Context, res *asset.Resource) error {
	var lineNum int = 0
	var err error

	r.logger.Infof(`parsing material library "%s"`, res.Path())

	scanner := bufio.NewScanner(res)

	var curMaterial *wavefrontMaterial = nil

	for scanner.Scan() {
		if err = ctx.Err(); err != nil {
			return err
		}

		lineNum++
		lineTokens := strings.Fields(scanner.Text())
		if len(lineTokens) == 0 || strings.HasPrefix(lineTokens[0], "#") {
			continue
		}

		switch lineTokens[0] {
		case "newmtl":
			if len(lineTokens) != 2 {
				return r.emitError(res.Path(), lineNum, `unsupported syntax for "newmtl"; expected 1 argument; got %d`, len(lineTokens)-1)
			}

			matName := lineTokens[1]
			if _, exists := r.materials[matName]; exists {
				return r.emitError(res.Path(), lineNum, `material "%s" already defined`, matName)
			}

			curMaterial = newWavefrontMaterial(matName)
			r.materials[matName] = curMaterial
		default:
			if curMaterial == nil {
				return r.emitError(res.Path(), lineNum, `got "%s" without a "newmtl"`, lineTokens[0])
			}

			switch lineTokens[0] {
			case "Kd":
				curMaterial.Kd, err = parseVec3(lineTokens)
			case "Ks":
				curMaterial.Ks, err = parseVec3(lineTokens)
			case "Ke":
				curMaterial.Ke, err = parseVec3(lineTokens)
			case "Ni":
				curMaterial.Ni, err = parseFloat32(lineTokens)
				if err == nil && curMaterial.Ni < 0 {
					return r.emitError(res.Path(), lineNum, "invalid index of refraction %f", curMaterial.Ni)
				}
			default:
				// Textures, transparency and illumination models are not supported.
				r.logger.Debugf("%s:%d: ignoring %q", res.Path(), lineNum, lineTokens[0])
			}

			// Report any errors
			if err != nil {
				return r.emitError(res.Path(), lineNum, err.Error())
			}
		}
	}

	if err = scanner.Err(); err != nil {
		return r.emitError(res.Path(), lineNum, err.Error())
	}
	return nil
}
