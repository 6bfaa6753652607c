package cmd

import (
	"errors"
	"os"

	"github.com/achilleasa/vincent/renderer"
	"github.com/achilleasa/vincent/tracer"
	"github.com/urfave/cli"
	"golang.org/x/xerrors"
)

// Render primary ray AOVs for a scene and save the last frame as a PNG.
func RenderFrame(cliCtx *cli.Context) error {
	if err := setupLogging(cliCtx); err != nil {
		return err
	}

	bvhOpts, err := bvhOptions(cliCtx)
	if err != nil {
		return err
	}
	aov, err := tracer.AOVFromName(cliCtx.String("aov"))
	if err != nil {
		return err
	}
	if cliCtx.Int("width") < 1 || cliCtx.Int("height") < 1 {
		return renderer.ErrInvalidFrameSize
	}
	frames := cliCtx.Int("frames")
	if frames < 1 {
		return errors.New("frames must be at least 1")
	}

	opts := renderer.Options{
		FrameW:     uint32(cliCtx.Int("width")),
		FrameH:     uint32(cliCtx.Int("height")),
		AOV:        aov,
		Workers:    cliCtx.Int("workers"),
		DisableBvh: cliCtx.Bool("no-bvh"),
		Bvh:        bvhOpts,
	}

	ctx, cancel := interruptContext()
	defer cancel()

	sc, err := loadScene(ctx, cliCtx)
	if err != nil {
		return err
	}

	r, err := renderer.NewDefault(sc, tracer.NewPerfectScheduler(), opts)
	if err != nil {
		return err
	}

	// Later frames let the scheduler rebalance the row blocks.
	for frame := 0; frame < frames; frame++ {
		if err = r.Render(ctx); err != nil {
			return err
		}
		logger.Infof("frame %d statistics\n%s", frame, r.Stats().Table())
	}
	logger.Noticef("frame statistics\n%s", r.Stats().Table())

	outFile := cliCtx.String("out")
	f, err := os.Create(outFile)
	if err != nil {
		return xerrors.Errorf("could not create output file: %w", err)
	}
	defer f.Close()

	if err = renderer.WritePNG(f, r); err != nil {
		return err
	}
	logger.Noticef("wrote %s AOV to %s", aov, outFile)
	return f.Close()
}
