package cmd

import (
	"github.com/achilleasa/vincent/tracer"
	"github.com/urfave/cli"
)

// Create the vincent cli application.
func NewApp() *cli.App {
	app := cli.NewApp()
	app.Name = "vincent"
	app.Usage = "inspect, verify and preview scenes for the light transport core"
	app.Version = "0.1.0"
	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "v",
			Usage: "enable verbose logging",
		},
		cli.BoolFlag{
			Name:  "vv",
			Usage: "enable even more verbose logging",
		},
		cli.StringFlag{
			Name:  "log-level",
			Usage: "set log level (debug, info, notice, warning, error)",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:  "info",
			Usage: "display scene and BVH information",
			Description: `
Parse a scene definition from a wavefront obj file, build a BVH over its
primitives and display statistics for both. The BVH structure is validated
after it is built.`,
			ArgsUsage: "scene_file.obj",
			Flags:     BvhFlags,
			Action:    ShowSceneInfo,
		},
		{
			Name:  "verify",
			Usage: "compare BVH traversal against a linear scan",
			Description: `
Cast random rays through the scene and intersect each one both by traversing
the BVH and by testing every primitive. The command fails if the nearest hits
reported by the two methods differ.`,
			ArgsUsage: "scene_file.obj",
			Flags: append([]cli.Flag{
				cli.IntFlag{
					Name:  "rays",
					Value: 100000,
					Usage: "number of rays to cast",
				},
				cli.IntFlag{
					Name:  "batch",
					Value: 5000,
					Usage: "number of rays per parallel batch",
				},
				cli.IntFlag{
					Name:  "workers",
					Value: 0,
					Usage: "max number of concurrent batches; 0 uses one per CPU",
				},
				cli.Int64Flag{
					Name:  "seed",
					Value: 1,
					Usage: "random seed",
				},
			}, BvhFlags...),
			Action: VerifyScene,
		},
		{
			Name:  "furnace",
			Usage: "run a white furnace test for the supported BSDFs",
			Flags: []cli.Flag{
				cli.IntFlag{
					Name:  "samples",
					Value: 100000,
					Usage: "samples per incidence angle",
				},
				cli.Float64Flag{
					Name:  "ior",
					Value: 1.5,
					Usage: "index of refraction for the glass BSDF",
				},
				cli.Int64Flag{
					Name:  "seed",
					Value: 1,
					Usage: "random seed",
				},
			},
			Action: RunFurnace,
		},
		{
			Name:        "render",
			Usage:       "render a debug view of the scene",
			Description: `Trace one primary ray per pixel and write the selected AOV of the nearest hit to a PNG file.`,
			ArgsUsage:   "scene_file.obj",
			Flags: append([]cli.Flag{
				cli.IntFlag{
					Name:  "width",
					Value: 512,
					Usage: "frame width",
				},
				cli.IntFlag{
					Name:  "height",
					Value: 512,
					Usage: "frame height",
				},
				cli.StringFlag{
					Name:  "aov",
					Value: tracer.AOVNormal.String(),
					Usage: "AOV to render (depth, normal, albedo, emissive)",
				},
				cli.IntFlag{
					Name:  "workers",
					Value: 0,
					Usage: "number of tracers; 0 uses one per CPU",
				},
				cli.IntFlag{
					Name:  "frames",
					Value: 1,
					Usage: "number of frames to render",
				},
				cli.BoolFlag{
					Name:  "no-bvh",
					Usage: "test every primitive for each ray",
				},
				cli.StringFlag{
					Name:  "out, o",
					Value: "frame.png",
					Usage: "image filename for the rendered frame",
				},
			}, BvhFlags...),
			Action: RenderFrame,
		},
	}

	return app
}
