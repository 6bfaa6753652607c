package scene

import (
	"bytes"
	"fmt"

	"github.com/achilleasa/vincent/material"
	"github.com/achilleasa/vincent/types"
	"github.com/olekukonko/tablewriter"
)

type Scene struct {
	Camera *Camera

	Materials  []*material.Bsdf
	Primitives []Primitive
}

func NewScene() *Scene {
	return &Scene{
		Materials:  make([]*material.Bsdf, 0),
		Primitives: make([]Primitive, 0),
	}
}

// Attach a camera to the scene.
func (s *Scene) SetCamera(camera *Camera) {
	s.Camera = camera
}

// Add a material to the scene and return its index.
func (s *Scene) AddMaterial(mat *material.Bsdf) (int, error) {
	if mat == nil {
		return -1, fmt.Errorf("scene: nil material")
	}
	for _, m := range s.Materials {
		if m == mat {
			return -1, fmt.Errorf("scene: material already added")
		}
	}
	s.Materials = append(s.Materials, mat)
	return len(s.Materials) - 1, nil
}

// Add a primitive to the scene. The primitive material must be added to the
// scene before the primitive.
func (s *Scene) AddPrimitive(prim Primitive) error {
	matIndex := prim.MaterialIndex()
	if matIndex < 0 || matIndex >= len(s.Materials) {
		return fmt.Errorf("scene: primitive references unknown material %d; ensure that the material is added to the scene before adding the primitive", matIndex)
	}
	if prim.BBox().IsEmpty() {
		return fmt.Errorf("scene: primitive has an empty bounding box")
	}
	s.Primitives = append(s.Primitives, prim)
	return nil
}

// Get the material of a primitive.
func (s *Scene) MaterialOf(prim Primitive) *material.Bsdf {
	return s.Materials[prim.MaterialIndex()]
}

// Get the bounds of all scene primitives.
func (s *Scene) Bounds() types.AABB {
	bounds := types.EmptyAABB()
	for _, prim := range s.Primitives {
		bounds = bounds.Union(prim.BBox())
	}
	return bounds
}

// Build a tabular representation of scene statistics.
func (s *Scene) Stats() string {
	var triangles, spheres, other, emissive int
	for _, prim := range s.Primitives {
		switch prim.(type) {
		case *Triangle:
			triangles++
		case *Sphere:
			spheres++
		default:
			other++
		}
		if s.MaterialOf(prim).IsEmissive() {
			emissive++
		}
	}

	matCounts := make(map[material.BxdfType]int)
	for _, mat := range s.Materials {
		matCounts[mat.Type]++
	}

	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetAutoFormatHeaders(false)
	table.SetHeader([]string{"Asset Type", "Asset", "Count"})
	table.Append([]string{"Geometry", "---", fmt.Sprint(len(s.Primitives))})
	table.Append([]string{"", "Triangles", fmt.Sprint(triangles)})
	table.Append([]string{"", "Spheres", fmt.Sprint(spheres)})
	if other > 0 {
		table.Append([]string{"", "Other", fmt.Sprint(other)})
	}
	table.Append([]string{"", "Emissive", fmt.Sprint(emissive)})
	table.Append([]string{" ", " ", " "})
	table.Append([]string{"Materials", "---", fmt.Sprint(len(s.Materials))})
	for _, bxdf := range []material.BxdfType{material.BxdfDiffuse, material.BxdfMirror, material.BxdfGlass, material.BxdfEmissive} {
		table.Append([]string{"", bxdf.String(), fmt.Sprint(matCounts[bxdf])})
	}
	bounds := s.Bounds()
	table.SetFooter([]string{"Bounds", fmt.Sprintf("%v", bounds.Min), fmt.Sprintf("%v", bounds.Max)})

	table.Render()
	return buf.String()
}
