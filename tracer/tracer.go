package tracer

import (
	"context"
	"fmt"
	"time"
)

// AOV selects the per-pixel quantity written by a tracer.
type AOV uint8

const (
	// Distance to the nearest hit.
	AOVDepth AOV = iota

	// Geometric normal of the nearest hit facing the camera.
	AOVNormal

	// Albedo of the material at the nearest hit.
	AOVAlbedo

	// Emitted radiance of the material at the nearest hit.
	AOVEmissive
)

func (a AOV) String() string {
	switch a {
	case AOVDepth:
		return "depth"
	case AOVNormal:
		return "normal"
	case AOVAlbedo:
		return "albedo"
	case AOVEmissive:
		return "emissive"
	}
	return "unknown"
}

// Lookup AOV by name.
func AOVFromName(name string) (AOV, error) {
	for aov := AOVDepth; aov <= AOVEmissive; aov++ {
		if aov.String() == name {
			return aov, nil
		}
	}
	return AOVDepth, fmt.Errorf("tracer: unknown AOV %q", name)
}

// A unit of work that is processed by a tracer.
type BlockRequest struct {
	// Block start row and height.
	BlockY uint32
	BlockH uint32

	// Number of sequential rendered frames from current camera position.
	FrameCount uint32
}

// Tracer statistics.
type Stats struct {
	// The rendered block height
	BlockH uint32

	// The time for rendering this block
	BlockTime time.Duration

	// Number of primary rays traced and how many of them hit the scene.
	Rays uint64
	Hits uint64
}

type Tracer interface {
	// Get tracer id.
	Id() string

	// Get the tracers computation speed estimate compared to a
	// baseline implementation.
	SpeedEstimate() float32

	// Setup the tracer to write into frameBuffer which holds frameW*frameH
	// RGB float triplets.
	Setup(frameW, frameH uint32, frameBuffer []float32) error

	// Trace a block of rows. Tracers may run concurrently as long as
	// their blocks do not overlap.
	Trace(ctx context.Context, req BlockRequest) error

	// Retrieve last block statistics.
	Stats() *Stats
}
