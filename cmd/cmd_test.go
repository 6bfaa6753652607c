package cmd

import (
	"fmt"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const cmdTestScene = `
camera_eye 0 1 6
camera_look 0 1 0

v -5 0 -5
v 5 0 -5
v 5 0 5
v -5 0 5
v -1 0.5 0
v 1 0.5 0
v 0 2.5 0
f 1 2 3 4
f 5 6 7
sphere 2 1 -1 0.75
`

func writeTestScene(t *testing.T) string {
	sceneFile := filepath.Join(t.TempDir(), "scene.obj")
	if err := os.WriteFile(sceneFile, []byte(cmdTestScene), 0644); err != nil {
		t.Fatal(err)
	}
	return sceneFile
}

func TestInfoCommand(t *testing.T) {
	sceneFile := writeTestScene(t)

	for _, split := range []string{"median", "sah"} {
		args := []string{"vincent", "info", "--max-leaf", "1", "--split", split, sceneFile}
		if err := NewApp().Run(args); err != nil {
			t.Fatalf("[%s] %v", split, err)
		}
	}

	err := NewApp().Run([]string{"vincent", "info", "--split", "kd", sceneFile})
	if err == nil || !strings.Contains(err.Error(), "unknown split strategy") {
		t.Fatalf("expected unknown split strategy error; got %v", err)
	}

	err = NewApp().Run([]string{"vincent", "info"})
	if err == nil || !strings.Contains(err.Error(), "missing scene file argument") {
		t.Fatalf("expected missing argument error; got %v", err)
	}
}

func TestVerifyCommand(t *testing.T) {
	sceneFile := writeTestScene(t)

	args := []string{"vincent", "verify", "--rays", "2000", "--batch", "300", "--workers", "2", "--max-leaf", "1", sceneFile}
	if err := NewApp().Run(args); err != nil {
		t.Fatal(err)
	}
}

// Write a closed unit box whose faces are split into cells x cells quads.
func writeGridBoxScene(t *testing.T, cells int) string {
	var buf strings.Builder
	vertex := 0
	for axis := 0; axis < 3; axis++ {
		for _, side := range []float64{0, 1} {
			for i := 0; i < cells; i++ {
				for j := 0; j < cells; j++ {
					for _, offset := range [4][2]int{{0, 0}, {1, 0}, {1, 1}, {0, 1}} {
						var p [3]float64
						p[axis] = side
						p[(axis+1)%3] = float64(i+offset[0]) / float64(cells)
						p[(axis+2)%3] = float64(j+offset[1]) / float64(cells)
						fmt.Fprintf(&buf, "v %g %g %g\n", p[0], p[1], p[2])
					}
					fmt.Fprintf(&buf, "f %d %d %d %d\n", vertex+1, vertex+2, vertex+3, vertex+4)
					vertex += 4
				}
			}
		}
	}

	sceneFile := filepath.Join(t.TempDir(), "box.obj")
	if err := os.WriteFile(sceneFile, []byte(buf.String()), 0644); err != nil {
		t.Fatal(err)
	}
	return sceneFile
}

func TestVerifyCommandAxisAlignedBox(t *testing.T) {
	sceneFile := writeGridBoxScene(t, 8)

	for _, split := range []string{"median", "sah"} {
		args := []string{"vincent", "verify", "--rays", "20000", "--batch", "1000", "--split", split, sceneFile}
		if err := NewApp().Run(args); err != nil {
			t.Fatalf("[%s] %v", split, err)
		}
	}
}

func TestFurnaceCommand(t *testing.T) {
	if err := NewApp().Run([]string{"vincent", "furnace", "--samples", "1000"}); err != nil {
		t.Fatal(err)
	}

	err := NewApp().Run([]string{"vincent", "furnace", "--ior", "0"})
	if err == nil || !strings.Contains(err.Error(), "invalid index of refraction") {
		t.Fatalf("expected invalid IOR error; got %v", err)
	}
}

func TestRenderCommand(t *testing.T) {
	sceneFile := writeTestScene(t)
	outFile := filepath.Join(t.TempDir(), "frame.png")

	args := []string{
		"vincent", "--log-level", "warning", "render",
		"--width", "32", "--height", "24", "--aov", "depth",
		"--workers", "2", "--frames", "2", "--out", outFile,
		sceneFile,
	}
	if err := NewApp().Run(args); err != nil {
		t.Fatal(err)
	}

	f, err := os.Open(outFile)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	img, err := png.Decode(f)
	if err != nil {
		t.Fatal(err)
	}
	if img.Bounds().Dx() != 32 || img.Bounds().Dy() != 24 {
		t.Fatalf("expected a 32x24 image; got %v", img.Bounds())
	}

	err = NewApp().Run([]string{"vincent", "render", "--aov", "beauty", sceneFile})
	if err == nil || !strings.Contains(err.Error(), "unknown AOV") {
		t.Fatalf("expected unknown AOV error; got %v", err)
	}
}

func TestInvalidLogLevel(t *testing.T) {
	err := NewApp().Run([]string{"vincent", "--log-level", "loud", "furnace", "--samples", "1"})
	if err == nil || !strings.Contains(err.Error(), "unknown level") {
		t.Fatalf("expected unknown level error; got %v", err)
	}
}
