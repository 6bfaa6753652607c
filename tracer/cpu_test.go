package tracer

import (
	"context"
	"math"
	"testing"

	"github.com/achilleasa/vincent/material"
	"github.com/achilleasa/vincent/scene"
	"github.com/achilleasa/vincent/scene/bvh"
	"github.com/achilleasa/vincent/types"
)

// A scene with a large wall at z=-5 in front of a camera at the origin.
func wallScene(t *testing.T, mat *material.Bsdf) (*scene.Scene, *bvh.Tree) {
	sc := scene.NewScene()
	matIndex, err := sc.AddMaterial(mat)
	if err != nil {
		t.Fatal(err)
	}

	// The shared diagonal stays out of view so no ray grazes a triangle edge.
	quad := [4]types.Vec3{{-100, -100, -5}, {100, -100, -5}, {100, 300, -5}, {-100, 300, -5}}
	for _, tri := range [][3]types.Vec3{{quad[0], quad[1], quad[2]}, {quad[0], quad[2], quad[3]}} {
		if err = sc.AddPrimitive(scene.NewTriangle(tri, matIndex)); err != nil {
			t.Fatal(err)
		}
	}

	cam := scene.NewCamera(90)
	cam.SetupProjection(1)
	sc.SetCamera(cam)

	return sc, bvh.Build(sc.Primitives, bvh.Options{})
}

func TestCPUTracerAOVs(t *testing.T) {
	type spec struct {
		mat    *material.Bsdf
		aov    AOV
		expVal types.Vec3
	}
	specs := []spec{
		{material.NewDiffuse(material.DefaultAlbedo), AOVDepth, types.Splat3(5)},
		{material.NewDiffuse(material.DefaultAlbedo), AOVNormal, types.Vec3{0.5, 0.5, 1}},
		{material.NewMirror(types.Vec3{0.2, 0.4, 0.6}), AOVAlbedo, types.Vec3{0.2, 0.4, 0.6}},
		{material.NewEmissive(types.Vec3{4, 4, 4}), AOVEmissive, types.Vec3{4, 4, 4}},
		{material.NewDiffuse(material.DefaultAlbedo), AOVEmissive, types.Vec3{}},
	}

	for index, s := range specs {
		sc, tree := wallScene(t, s.mat)
		for _, useBvh := range []bool{true, false} {
			tr := NewCPUTracer("cpu-test", sc, tree, s.aov, useBvh)
			frameBuffer := make([]float32, 3)
			if err := tr.Setup(1, 1, frameBuffer); err != nil {
				t.Fatal(err)
			}
			if err := tr.Trace(context.Background(), BlockRequest{BlockY: 0, BlockH: 1}); err != nil {
				t.Fatal(err)
			}

			got := types.Vec3{frameBuffer[0], frameBuffer[1], frameBuffer[2]}
			if !types.ApproxEqual(got, s.expVal, 1e-4) {
				t.Fatalf("[spec %d] expected %s value %v (useBvh: %t); got %v", index, s.aov, s.expVal, useBvh, got)
			}

			stats := tr.Stats()
			if stats.Rays != 1 || stats.Hits != 1 || stats.BlockH != 1 {
				t.Fatalf("[spec %d] unexpected stats %+v", index, stats)
			}
		}
	}
}

func TestCPUTracerBlock(t *testing.T) {
	sc, tree := wallScene(t, material.NewDiffuse(material.DefaultAlbedo))
	tr := NewCPUTracer("cpu-test", sc, tree, AOVDepth, true)

	frameW, frameH := uint32(4), uint32(4)
	frameBuffer := make([]float32, frameW*frameH*3)
	if err := tr.Setup(frameW, frameH, frameBuffer); err != nil {
		t.Fatal(err)
	}

	// Only rows 1 and 2 are traced.
	if err := tr.Trace(context.Background(), BlockRequest{BlockY: 1, BlockH: 2}); err != nil {
		t.Fatal(err)
	}
	for y := uint32(0); y < frameH; y++ {
		for x := uint32(0); x < frameW; x++ {
			depth := frameBuffer[(y*frameW+x)*3]
			traced := y == 1 || y == 2
			if traced && (depth < 5 || depth > 5*float32(math.Sqrt(3))) {
				t.Fatalf("expected pixel (%d, %d) depth in [5, 5*sqrt(3)]; got %f", x, y, depth)
			}
			if !traced && depth != 0 {
				t.Fatalf("expected pixel (%d, %d) outside the block to be untouched; got %f", x, y, depth)
			}
		}
	}
	if tr.Stats().Rays != 8 {
		t.Fatalf("expected 8 rays; got %d", tr.Stats().Rays)
	}

	if err := tr.Trace(context.Background(), BlockRequest{BlockY: 3, BlockH: 2}); err == nil {
		t.Fatal("expected error for block exceeding the frame")
	}
	if err := tr.Trace(context.Background(), BlockRequest{BlockY: math.MaxUint32, BlockH: 2}); err == nil {
		t.Fatal("expected error for block whose end overflows 32 bits")
	}
}

func TestCPUTracerMisses(t *testing.T) {
	sc, tree := wallScene(t, material.NewDiffuse(material.DefaultAlbedo))
	sc.Camera.LookAt = types.Vec3{0, 0, 1}
	sc.Camera.Update()

	tr := NewCPUTracer("cpu-test", sc, tree, AOVAlbedo, true)
	frameBuffer := make([]float32, 2*2*3)
	if err := tr.Setup(2, 2, frameBuffer); err != nil {
		t.Fatal(err)
	}
	if err := tr.Trace(context.Background(), BlockRequest{BlockH: 2}); err != nil {
		t.Fatal(err)
	}
	for index, v := range frameBuffer {
		if v != 0 {
			t.Fatalf("expected missed pixels to be black; got %f at %d", v, index)
		}
	}
	if tr.Stats().Hits != 0 {
		t.Fatalf("expected no hits; got %d", tr.Stats().Hits)
	}
}

func TestCPUTracerSetupErrors(t *testing.T) {
	sc, tree := wallScene(t, material.NewDiffuse(material.DefaultAlbedo))
	tr := NewCPUTracer("cpu-test", sc, tree, AOVDepth, true)
	if err := tr.Setup(2, 2, make([]float32, 3)); err == nil {
		t.Fatal("expected error for undersized frame buffer")
	}

	// 65536 * 65536 * 3 wraps to 0 in 32-bit arithmetic.
	if err := tr.Setup(1<<16, 1<<16, nil); err == nil {
		t.Fatal("expected error for a frame size whose element count overflows 32 bits")
	}

	sc.Camera = nil
	if err := tr.Setup(1, 1, make([]float32, 3)); err == nil {
		t.Fatal("expected error for scene without a camera")
	}
}

func TestCPUTracerCancellation(t *testing.T) {
	sc, tree := wallScene(t, material.NewDiffuse(material.DefaultAlbedo))
	tr := NewCPUTracer("cpu-test", sc, tree, AOVDepth, true)
	if err := tr.Setup(1, 1, make([]float32, 3)); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := tr.Trace(ctx, BlockRequest{BlockH: 1}); err != context.Canceled {
		t.Fatalf("expected context.Canceled; got %v", err)
	}
}

func TestAOVFromName(t *testing.T) {
	for aov := AOVDepth; aov <= AOVEmissive; aov++ {
		got, err := AOVFromName(aov.String())
		if err != nil || got != aov {
			t.Fatalf("expected %s; got %s (err: %v)", aov, got, err)
		}
	}
	if _, err := AOVFromName("beauty"); err == nil {
		t.Fatal("expected error for unknown AOV")
	}
}
