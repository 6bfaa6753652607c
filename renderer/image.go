package renderer

import (
	"image"
	"image/color"
	"image/png"
	"io"

	"github.com/achilleasa/vincent/tracer"
	"golang.org/x/xerrors"
)

// Convert an RGB float frame buffer to an image. Depth values are normalized
// so that the nearest surfaces are brightest; all other AOVs are clamped to
// [0, 1]. Pixels without a hit are black.
func toImage(frameBuffer []float32, frameW, frameH uint32, aov tracer.AOV) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, int(frameW), int(frameH)))

	var maxDepth float32
	if aov == tracer.AOVDepth {
		for i := 0; i < len(frameBuffer); i += 3 {
			if frameBuffer[i] > maxDepth {
				maxDepth = frameBuffer[i]
			}
		}
	}

	for y := 0; y < int(frameH); y++ {
		for x := 0; x < int(frameW); x++ {
			offset := (y*int(frameW) + x) * 3
			rgb := [3]float32{frameBuffer[offset], frameBuffer[offset+1], frameBuffer[offset+2]}
			if aov == tracer.AOVDepth {
				for c := range rgb {
					if rgb[c] > 0 {
						rgb[c] = 1.0 - 0.9*rgb[c]/maxDepth
					}
				}
			}

			img.SetNRGBA(x, y, color.NRGBA{
				R: toByte(rgb[0]),
				G: toByte(rgb[1]),
				B: toByte(rgb[2]),
				A: 255,
			})
		}
	}

	return img
}

func toByte(v float32) uint8 {
	switch {
	case !(v > 0):
		return 0
	case v >= 1:
		return 255
	}
	return uint8(v*255 + 0.5)
}

// Encode the last rendered frame of r as a PNG image.
func WritePNG(w io.Writer, r Renderer) error {
	if err := png.Encode(w, r.Image()); err != nil {
		return xerrors.Errorf("renderer: could not encode frame: %w", err)
	}
	return nil
}
