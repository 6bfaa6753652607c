package renderer

import (
	"github.com/achilleasa/vincent/scene/bvh"
	"github.com/achilleasa/vincent/tracer"
)

type Options struct {
	// Frame dims.
	FrameW uint32
	FrameH uint32

	// The quantity written for each pixel.
	AOV tracer.AOV

	// Number of CPU tracers. If zero, one tracer per CPU is used.
	Workers int

	// Test every primitive for each ray instead of traversing the BVH.
	DisableBvh bool

	// BVH construction options.
	Bvh bvh.Options
}
