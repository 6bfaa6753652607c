package cmd

import (
	"context"
	"errors"
	"os"
	"os/signal"

	"github.com/achilleasa/vincent/asset/reader"
	"github.com/achilleasa/vincent/scene"
	"github.com/achilleasa/vincent/scene/bvh"
	"github.com/urfave/cli"
)

// Flags shared by all commands that build a BVH.
var BvhFlags = []cli.Flag{
	cli.IntFlag{
		Name:  "max-leaf",
		Value: bvh.DefaultMaxLeafPrimitives,
		Usage: "max number of primitives in a BVH leaf",
	},
	cli.IntFlag{
		Name:  "max-depth",
		Value: bvh.DefaultMaxDepth,
		Usage: "max BVH depth",
	},
	cli.StringFlag{
		Name:  "split",
		Value: bvh.MedianSplit.String(),
		Usage: "BVH split strategy (median, sah)",
	},
}

func bvhOptions(ctx *cli.Context) (bvh.Options, error) {
	strategy, err := bvh.SplitStrategyFromName(ctx.String("split"))
	if err != nil {
		return bvh.Options{}, err
	}
	if ctx.Int("max-leaf") < 1 || ctx.Int("max-depth") < 1 {
		return bvh.Options{}, errors.New("max-leaf and max-depth must be at least 1")
	}

	return bvh.Options{
		MaxLeafPrimitives: ctx.Int("max-leaf"),
		MaxDepth:          ctx.Int("max-depth"),
		SplitStrategy:     strategy,
	}, nil
}

// Create a context that is cancelled when the process receives an interrupt.
func interruptContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt)
}

// Load the scene passed as the only command argument.
func loadScene(ctx context.Context, cliCtx *cli.Context) (*scene.Scene, error) {
	if cliCtx.NArg() != 1 {
		return nil, errors.New("missing scene file argument")
	}
	return reader.ReadScene(ctx, cliCtx.Args().First())
}

// Display scene and BVH info.
func ShowSceneInfo(cliCtx *cli.Context) error {
	if err := setupLogging(cliCtx); err != nil {
		return err
	}
	opts, err := bvhOptions(cliCtx)
	if err != nil {
		return err
	}

	ctx, cancel := interruptContext()
	defer cancel()

	sc, err := loadScene(ctx, cliCtx)
	if err != nil {
		return err
	}

	tree := bvh.Build(sc.Primitives, opts)
	logger.Noticef("scene information:\n%s", sc.Stats())
	logger.Noticef("BVH information:\n%s", tree.Stats.Table())

	if err = tree.Check(); err != nil {
		return err
	}
	logger.Notice("BVH structure check passed")
	return nil
}
