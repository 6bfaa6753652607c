package cmd

import (
	"bytes"
	"fmt"
	"math"
	"math/rand"

	"github.com/achilleasa/vincent/material"
	"github.com/achilleasa/vincent/types"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"
)

// Incidence angles (in degrees from the normal) evaluated by the furnace test.
var furnaceAngles = []float64{0, 30, 60, 85}

type furnaceCase struct {
	name string
	bsdf *material.Bsdf

	// Evaluate wo below the surface.
	inside bool
}

// Run a white furnace test for each bsdf and report the mean estimator
// value with and without the (nt/ni)² radiance factor applied to
// transmitted samples.
func RunFurnace(cliCtx *cli.Context) error {
	if err := setupLogging(cliCtx); err != nil {
		return err
	}

	samples := cliCtx.Int("samples")
	ior := float32(cliCtx.Float64("ior"))
	if samples < 1 {
		return fmt.Errorf("samples must be at least 1")
	}
	if !(ior > 0) {
		return fmt.Errorf("invalid index of refraction %f", ior)
	}

	cases := []furnaceCase{
		{name: "diffuse", bsdf: material.NewDiffuse(types.Splat3(1))},
		{name: "mirror", bsdf: material.NewMirror(types.Splat3(1))},
		{name: "glass (entering)", bsdf: material.NewGlass(types.Splat3(1), ior)},
		{name: "glass (leaving)", bsdf: material.NewGlass(types.Splat3(1), ior), inside: true},
	}

	rng := rand.New(rand.NewSource(cliCtx.Int64("seed")))

	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAlignment(tablewriter.ALIGN_RIGHT)
	table.SetHeader([]string{"BSDF", "Incidence", "Throughput", "Without (nt/ni)²", "Reflected", "Transmitted"})
	for _, fc := range cases {
		for _, angle := range furnaceAngles {
			wo := incidentDirection(angle, fc.inside)
			est := material.EstimateThroughput(fc.bsdf, wo, samples, rng)
			table.Append([]string{
				fc.name,
				fmt.Sprintf("%.0f°", angle),
				fmt.Sprintf("%.4f", est.Throughput[0]),
				fmt.Sprintf("%.4f", est.UnscaledThroughput[0]),
				fmt.Sprintf("%.1f %%", 100*float64(est.Reflected)/float64(samples)),
				fmt.Sprintf("%.1f %%", 100*float64(est.Transmitted)/float64(samples)),
			})
		}
	}
	table.Render()

	logger.Noticef("white furnace (%d samples per row, IOR %.3f):\n%s", samples, ior, buf.String())
	return nil
}

// Build a local frame direction at the given angle from the +Z (or -Z)
// axis.
func incidentDirection(angle float64, inside bool) types.Vec3 {
	sin, cos := math.Sincos(angle * math.Pi / 180.0)
	if inside {
		cos = -cos
	}
	return types.Vec3{float32(sin), 0, float32(cos)}
}
