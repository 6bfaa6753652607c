package renderer

import (
	"bytes"
	"context"
	"image/png"
	"strings"
	"testing"

	"github.com/achilleasa/vincent/material"
	"github.com/achilleasa/vincent/scene"
	"github.com/achilleasa/vincent/tracer"
	"github.com/achilleasa/vincent/types"
	"golang.org/x/xerrors"
)

// A diffuse floor with an emissive sphere floating above it.
func testScene(t *testing.T) *scene.Scene {
	sc := scene.NewScene()
	floor, _ := sc.AddMaterial(material.NewDiffuse(material.DefaultAlbedo))
	light, _ := sc.AddMaterial(material.NewEmissive(types.Vec3{2, 2, 2}))

	quad := [4]types.Vec3{{-10, -1, -30}, {10, -1, -30}, {10, -1, 10}, {-10, -1, 10}}
	prims := []scene.Primitive{
		scene.NewTriangle([3]types.Vec3{quad[0], quad[2], quad[1]}, floor),
		scene.NewTriangle([3]types.Vec3{quad[0], quad[3], quad[2]}, floor),
		scene.NewSphere(types.Vec3{0, 0.5, -5}, 1, light),
	}
	for _, prim := range prims {
		if err := sc.AddPrimitive(prim); err != nil {
			t.Fatal(err)
		}
	}

	cam := scene.NewCamera(60)
	cam.Position = types.Vec3{0, 0.5, 0}
	cam.LookAt = types.Vec3{0, 0.5, -5}
	sc.SetCamera(cam)
	return sc
}

func TestRenderFrames(t *testing.T) {
	opts := Options{
		FrameW:  16,
		FrameH:  10,
		AOV:     tracer.AOVEmissive,
		Workers: 3,
	}
	r, err := NewDefault(testScene(t), tracer.NewPerfectScheduler(), opts)
	if err != nil {
		t.Fatal(err)
	}

	for frame := 0; frame < 3; frame++ {
		if err = r.Render(context.Background()); err != nil {
			t.Fatal(err)
		}

		stats := r.Stats()
		if len(stats.Tracers) != opts.Workers {
			t.Fatalf("[frame %d] expected stats for %d tracers; got %d", frame, opts.Workers, len(stats.Tracers))
		}
		var rows uint32
		var rays uint64
		for _, stat := range stats.Tracers {
			rows += stat.BlockH
			rays += stat.Rays
		}
		if rows != opts.FrameH {
			t.Fatalf("[frame %d] expected tracers to cover %d rows; got %d", frame, opts.FrameH, rows)
		}
		if rays != uint64(opts.FrameW*opts.FrameH) {
			t.Fatalf("[frame %d] expected %d rays; got %d", frame, opts.FrameW*opts.FrameH, rays)
		}
	}

	// The light sits in the middle of the frame; the corners see the floor or nothing.
	img := r.Image()
	if c := img.At(8, 5); !isWhite(c) {
		t.Fatalf("expected center pixel to see the light; got %v", c)
	}
	if c := img.At(0, 0); isWhite(c) {
		t.Fatalf("expected corner pixel to miss the light; got %v", c)
	}

	var buf bytes.Buffer
	if err = WritePNG(&buf, r); err != nil {
		t.Fatal(err)
	}
	decoded, err := png.Decode(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if decoded.Bounds().Dx() != 16 || decoded.Bounds().Dy() != 10 {
		t.Fatalf("expected a 16x10 image; got %v", decoded.Bounds())
	}

	if table := r.Stats().Table(); !strings.Contains(table, "cpu-2") {
		t.Fatalf("expected stats table to list all tracers; got\n%s", table)
	}
}

func TestRenderDepthMatchesLinearScan(t *testing.T) {
	opts := Options{FrameW: 8, FrameH: 8, AOV: tracer.AOVDepth, Workers: 2}

	bvhRenderer, err := NewDefault(testScene(t), tracer.NewPerfectScheduler(), opts)
	if err != nil {
		t.Fatal(err)
	}
	opts.DisableBvh = true
	linearRenderer, err := NewDefault(testScene(t), tracer.NewPerfectScheduler(), opts)
	if err != nil {
		t.Fatal(err)
	}

	for _, r := range []Renderer{bvhRenderer, linearRenderer} {
		if err = r.Render(context.Background()); err != nil {
			t.Fatal(err)
		}
	}

	bvhImg, linearImg := bvhRenderer.Image(), linearRenderer.Image()
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			if bvhImg.At(x, y) != linearImg.At(x, y) {
				t.Fatalf("pixel (%d, %d): expected %v; got %v", x, y, linearImg.At(x, y), bvhImg.At(x, y))
			}
		}
	}
}

func TestNewDefaultErrors(t *testing.T) {
	if _, err := NewDefault(nil, tracer.NewPerfectScheduler(), Options{FrameW: 1, FrameH: 1}); err != ErrSceneNotDefined {
		t.Fatalf("expected ErrSceneNotDefined; got %v", err)
	}

	if _, err := NewDefault(scene.NewScene(), tracer.NewPerfectScheduler(), Options{FrameW: 1, FrameH: 1}); err != ErrCameraNotDefined {
		t.Fatalf("expected ErrCameraNotDefined; got %v", err)
	}

	_, err := NewDefault(testScene(t), tracer.NewPerfectScheduler(), Options{FrameW: 0, FrameH: 10})
	if !xerrors.Is(err, ErrInvalidFrameSize) {
		t.Fatalf("expected ErrInvalidFrameSize; got %v", err)
	}
}

func TestRenderInterrupted(t *testing.T) {
	r, err := NewDefault(testScene(t), tracer.NewPerfectScheduler(), Options{FrameW: 4, FrameH: 4, Workers: 2})
	if err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err = r.Render(ctx); !xerrors.Is(err, ErrInterrupted) {
		t.Fatalf("expected ErrInterrupted; got %v", err)
	}
}

func isWhite(c interface{ RGBA() (r, g, b, a uint32) }) bool {
	r, g, b, _ := c.RGBA()
	return r == 0xffff && g == 0xffff && b == 0xffff
}
