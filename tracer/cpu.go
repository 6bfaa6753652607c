package tracer

import (
	"context"
	"fmt"
	"time"

	"github.com/achilleasa/vincent/log"
	"github.com/achilleasa/vincent/scene"
	"github.com/achilleasa/vincent/scene/bvh"
	"github.com/achilleasa/vincent/types"
)

// Check the context for cancellation every this many rows.
const cancelCheckRows = 8

// A tracer that casts one primary ray per pixel on the CPU and writes the
// selected AOV of the nearest hit.
type cpuTracer struct {
	logger log.Logger
	id     string

	scene  *scene.Scene
	tree   *bvh.Tree
	aov    AOV
	useBvh bool

	frameW, frameH uint32
	frameBuffer    []float32

	stats Stats
}

// Create a CPU tracer for a scene and its BVH. If useBvh is false the tracer
// tests every primitive for each ray.
func NewCPUTracer(id string, sc *scene.Scene, tree *bvh.Tree, aov AOV, useBvh bool) Tracer {
	return &cpuTracer{
		logger: log.New(id),
		id:     id,
		scene:  sc,
		tree:   tree,
		aov:    aov,
		useBvh: useBvh,
	}
}

func (tr *cpuTracer) Id() string {
	return tr.id
}

func (tr *cpuTracer) SpeedEstimate() float32 {
	return 1.0
}

func (tr *cpuTracer) Setup(frameW, frameH uint32, frameBuffer []float32) error {
	if tr.scene.Camera == nil {
		return fmt.Errorf("tracer %s: scene has no camera", tr.id)
	}
	if expLen := int(frameW) * int(frameH) * 3; len(frameBuffer) != expLen {
		return fmt.Errorf("tracer %s: expected frame buffer with %d elements; got %d", tr.id, expLen, len(frameBuffer))
	}

	tr.frameW, tr.frameH = frameW, frameH
	tr.frameBuffer = frameBuffer
	return nil
}

func (tr *cpuTracer) Trace(ctx context.Context, req BlockRequest) error {
	if uint64(req.BlockY)+uint64(req.BlockH) > uint64(tr.frameH) {
		return fmt.Errorf("tracer %s: block [%d, %d) exceeds frame height %d", tr.id, req.BlockY, uint64(req.BlockY)+uint64(req.BlockH), tr.frameH)
	}

	start := time.Now()
	stats := Stats{BlockH: req.BlockH}
	cam := tr.scene.Camera
	invW, invH := 1.0/float32(tr.frameW), 1.0/float32(tr.frameH)

	for y := req.BlockY; y < req.BlockY+req.BlockH; y++ {
		if (y-req.BlockY)%cancelCheckRows == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}

		ty := (float32(y) + 0.5) * invH
		for x := uint32(0); x < tr.frameW; x++ {
			ray := cam.Ray((float32(x)+0.5)*invW, ty)
			value := tr.shade(&ray, &stats)

			offset := (int(y)*int(tr.frameW) + int(x)) * 3
			copy(tr.frameBuffer[offset:offset+3], value[:])
		}
	}

	stats.BlockTime = time.Since(start)
	tr.stats = stats
	return nil
}

// Evaluate the AOV for a primary ray.
func (tr *cpuTracer) shade(ray *types.Ray, stats *Stats) types.Vec3 {
	stats.Rays++
	hit, ok := tr.tree.IntersectPrimitives(ray, tr.useBvh)
	if !ok {
		return types.Vec3{}
	}
	stats.Hits++

	mat := tr.scene.MaterialOf(hit.Primitive)
	switch tr.aov {
	case AOVNormal:
		normal := hit.Normal
		if normal.Dot(ray.Dir) > 0 {
			normal = normal.Neg()
		}
		return normal.Mul(0.5).Add(types.Splat3(0.5))
	case AOVAlbedo:
		return mat.Albedo
	case AOVEmissive:
		if mat.IsEmissive() {
			return mat.Le
		}
		return types.Vec3{}
	}
	return types.Splat3(hit.Distance)
}

func (tr *cpuTracer) Stats() *Stats {
	return &tr.stats
}
