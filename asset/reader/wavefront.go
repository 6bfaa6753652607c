package reader

import (
	"bufio"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/achilleasa/vincent/asset"
	"github.com/achilleasa/vincent/log"
	"github.com/achilleasa/vincent/scene"
	"github.com/achilleasa/vincent/types"
	"golang.org/x/xerrors"
)

const (
	// Vertical field of view used when the scene does not define one.
	defaultCameraFOV float32 = 45.0
)

type wavefrontCamera struct {
	FOV  float32
	Eye  types.Vec3
	Look types.Vec3
	Up   types.Vec3

	defined bool
}

type wavefrontSceneReader struct {
	logger log.Logger
	opener *asset.Opener

	// The scene being populated.
	scene *scene.Scene

	// Parsed wavefront materials by name.
	materials map[string]*wavefrontMaterial

	// Currently selected material.
	curMaterial *wavefrontMaterial

	// Material used by faces that precede any usemtl statement.
	defaultMat *wavefrontMaterial

	vertexList []types.Vec3
	camera     wavefrontCamera

	// Number of faces that were skipped because they are degenerate.
	skippedFaces int

	// An error stack that provides additional error information when
	// scene files include other files (material libs)
	errStack []string
}

// Create a new wavefront scene reader.
func newWavefrontReader(opener *asset.Opener) *wavefrontSceneReader {
	return &wavefrontSceneReader{
		logger:     log.New("wavefront scene reader"),
		opener:     opener,
		scene:      scene.NewScene(),
		materials:  make(map[string]*wavefrontMaterial),
		vertexList: make([]types.Vec3, 0),
		camera: wavefrontCamera{
			FOV:  defaultCameraFOV,
			Look: types.Vec3{0, 0, -1},
			Up:   types.Vec3{0, 1, 0},
		},
		errStack: make([]string, 0),
	}
}

// Read scene definition.
func (r *wavefrontSceneReader) Read(ctx context.Context, sceneRes *asset.Resource) (*scene.Scene, error) {
	r.logger.Noticef(`parsing scene from "%s"`, sceneRes.Path())
	start := time.Now()

	if err := r.parse(ctx, sceneRes); err != nil {
		return nil, err
	}

	r.setupCamera()

	if r.skippedFaces > 0 {
		r.logger.Warningf("skipped %d degenerate faces", r.skippedFaces)
	}
	if unused := len(r.materials) - r.usedMaterials(); unused > 0 {
		r.logger.Infof("pruned %d unused materials", unused)
	}
	r.logger.Noticef(
		"parsed scene in %d ms: %d primitives, %d materials",
		time.Since(start).Nanoseconds()/1e6, len(r.scene.Primitives), len(r.scene.Materials),
	)
	return r.scene, nil
}

func (r *wavefrontSceneReader) usedMaterials() int {
	used := 0
	for _, mat := range r.materials {
		if mat.sceneIndex >= 0 {
			used++
		}
	}
	return used
}

// Attach a camera to the scene. If the scene does not define one, the
// camera is placed in front of the scene bounds looking down -Z.
func (r *wavefrontSceneReader) setupCamera() {
	cam := scene.NewCamera(r.camera.FOV)
	cam.Up = r.camera.Up
	if r.camera.defined {
		cam.Position = r.camera.Eye
		cam.LookAt = r.camera.Look
	} else if bounds := r.scene.Bounds(); !bounds.IsEmpty() {
		center, size := bounds.Center(), bounds.Size()
		cam.Position = center.Add(types.Vec3{0, 0, size[2]*0.5 + size.MaxComponent()*1.5})
		cam.LookAt = center
	}
	cam.Update()
	r.scene.SetCamera(cam)
}

// Generate an error message that also includes any data in the error stack.
func (r *wavefrontSceneReader) emitError(file string, line int, msgFormat string, args ...interface{}) error {
	msg := fmt.Sprintf(msgFormat, args...)

	errMsg := strings.Trim(
		fmt.Sprintf("[%s: %d] %s\n%s", file, line, msg, strings.Join(r.errStack, "\n")),
		"\n",
	)
	return xerrors.Errorf("wavefront: %s", errMsg)
}

// Push a frame to the error stack.
func (r *wavefrontSceneReader) pushFrame(msg string) {
	r.errStack = append([]string{msg}, r.errStack...)
}

// Pop a frame from the error stack.
func (r *wavefrontSceneReader) popFrame() {
	r.errStack = r.errStack[1:]
}

// Parse wavefront object scene format.
func (r *wavefrontSceneReader) parse(ctx context.Context, res *asset.Resource) error {
	var lineNum int = 0
	var err error

	scanner := bufio.NewScanner(res)
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
		case "mtllib":
			if len(lineTokens) != 2 {
				return r.emitError(res.Path(), lineNum, `unsupported syntax for "%s"; expected 1 argument; got %d`, lineTokens[0], len(lineTokens)-1)
			}

			r.pushFrame(fmt.Sprintf("referenced from %s:%d [%s]", res.Path(), lineNum, lineTokens[0]))
			libRes, err := r.opener.Open(ctx, lineTokens[1], res)
			if err != nil {
				return r.emitError(res.Path(), lineNum, err.Error())
			}
			err = r.parseMaterials(ctx, libRes)
			libRes.Close()
			if err != nil {
				return err
			}
			r.popFrame()
		case "usemtl":
			if len(lineTokens) != 2 {
				return r.emitError(res.Path(), lineNum, `unsupported syntax for 'usemtl'; expected 1 argument; got %d`, len(lineTokens)-1)
			}

			mat, exists := r.materials[lineTokens[1]]
			if !exists {
				return r.emitError(res.Path(), lineNum, `undefined material with name "%s"`, lineTokens[1])
			}
			r.curMaterial = mat
		case "v":
			v, err := parseVec3(lineTokens)
			if err != nil {
				return r.emitError(res.Path(), lineNum, err.Error())
			}
			r.vertexList = append(r.vertexList, v)
		case "f":
			if err = r.parseFace(lineTokens); err != nil {
				return r.emitError(res.Path(), lineNum, err.Error())
			}
		case "sphere":
			if err = r.parseSphere(lineTokens); err != nil {
				return r.emitError(res.Path(), lineNum, err.Error())
			}
		case "camera_fov":
			r.camera.FOV, err = parseFloat32(lineTokens)
			r.camera.defined = true
		case "camera_eye":
			r.camera.Eye, err = parseVec3(lineTokens)
			r.camera.defined = true
		case "camera_look":
			r.camera.Look, err = parseVec3(lineTokens)
			r.camera.defined = true
		case "camera_up":
			r.camera.Up, err = parseVec3(lineTokens)
			r.camera.defined = true
		case "vn", "vt", "g", "o", "s":
			// Shading normals, uvs, grouping and smoothing are not used.
		default:
			r.logger.Debugf("%s:%d: ignoring %q", res.Path(), lineNum, lineTokens[0])
		}

		if err != nil {
			return r.emitError(res.Path(), lineNum, err.Error())
		}
	}

	if err = scanner.Err(); err != nil {
		return r.emitError(res.Path(), lineNum, err.Error())
	}
	return nil
}

// Resolve the scene material index for the current material, adding it to
// the scene on first use. Faces that precede any usemtl statement use a
// default diffuse material.
func (r *wavefrontSceneReader) currentMaterialIndex() (int, error) {
	mat := r.curMaterial
	if mat == nil {
		if r.defaultMat == nil {
			r.defaultMat = newWavefrontMaterial("")
		}
		mat = r.defaultMat
	}

	if mat.sceneIndex < 0 {
		index, err := r.scene.AddMaterial(mat.Bsdf())
		if err != nil {
			return -1, err
		}
		mat.sceneIndex = index
	}
	return mat.sceneIndex, nil
}

// Parse face definition. Each face argument has one of the formats:
// - vertexIndex
// - vertexIndex/uvIndex
// - vertexIndex//normalIndex
// - vertexIndex/uvIndex/normalIndex
//
// Only the vertex index is used. Faces with more than 3 vertices are
// triangulated as a fan around the first vertex.
func (r *wavefrontSceneReader) parseFace(lineTokens []string) error {
	if len(lineTokens) < 4 {
		return fmt.Errorf(`unsupported syntax for "f"; expected at least 3 arguments; got %d`, len(lineTokens)-1)
	}

	vertices := make([]types.Vec3, len(lineTokens)-1)
	for arg := range vertices {
		vTokens := strings.Split(lineTokens[arg+1], "/")
		if vTokens[0] == "" {
			return fmt.Errorf("face argument %d does not include a vertex index", arg)
		}

		offset, err := selectFaceCoordIndex(vTokens[0], len(r.vertexList))
		if err != nil {
			return fmt.Errorf("could not parse vertex coord for face argument %d: %s", arg, err.Error())
		}
		vertices[arg] = r.vertexList[offset]
	}

	matIndex, err := r.currentMaterialIndex()
	if err != nil {
		return err
	}

	for i := 1; i+1 < len(vertices); i++ {
		tri := scene.NewTriangle([3]types.Vec3{vertices[0], vertices[i], vertices[i+1]}, matIndex)
		if tri.Normal() == (types.Vec3{}) {
			r.skippedFaces++
			continue
		}
		if err = r.scene.AddPrimitive(tri); err != nil {
			return err
		}
	}
	return nil
}

// Parse a sphere definition with the format: sphere cX cY cZ radius
func (r *wavefrontSceneReader) parseSphere(lineTokens []string) error {
	if len(lineTokens) != 5 {
		return fmt.Errorf(`unsupported syntax for "sphere"; expected 4 arguments: cX cY cZ radius; got %d`, len(lineTokens)-1)
	}

	center, err := parseVec3(lineTokens)
	if err != nil {
		return err
	}
	radius, err := parseFloat32(lineTokens[3:])
	if err != nil {
		return err
	}
	if radius <= 0 {
		return fmt.Errorf("invalid sphere radius %f", radius)
	}

	matIndex, err := r.currentMaterialIndex()
	if err != nil {
		return err
	}
	return r.scene.AddPrimitive(scene.NewSphere(center, radius, matIndex))
}
