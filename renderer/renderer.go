package renderer

import (
	"context"
	"fmt"
	"image"
	"runtime"
	"time"

	"github.com/achilleasa/vincent/log"
	"github.com/achilleasa/vincent/scene"
	"github.com/achilleasa/vincent/scene/bvh"
	"github.com/achilleasa/vincent/tracer"
	"golang.org/x/sync/errgroup"
	"golang.org/x/xerrors"
)

type Renderer interface {
	// Render frame.
	Render(ctx context.Context) error

	// Get the last rendered frame.
	Image() image.Image

	// Get render statistics.
	Stats() FrameStats
}

// A renderer that splits each frame into row blocks and traces them in
// parallel using a pool of CPU tracers.
type defaultRenderer struct {
	logger log.Logger

	options   Options
	scene     *scene.Scene
	tree      *bvh.Tree
	scheduler tracer.BlockScheduler
	tracers   []tracer.Tracer

	// RGB float triplets shared by all tracers.
	frameBuffer []float32

	blockAssignments []uint32
	frameCount       uint32
	stats            FrameStats
}

// Create a new renderer for sc. The scene primitives are reordered while
// building the BVH.
func NewDefault(sc *scene.Scene, scheduler tracer.BlockScheduler, opts Options) (Renderer, error) {
	if sc == nil {
		return nil, ErrSceneNotDefined
	}
	if sc.Camera == nil {
		return nil, ErrCameraNotDefined
	}
	if opts.FrameW == 0 || opts.FrameH == 0 {
		return nil, xerrors.Errorf("%dx%d: %w", opts.FrameW, opts.FrameH, ErrInvalidFrameSize)
	}
	if opts.Workers <= 0 {
		opts.Workers = runtime.NumCPU()
	}

	r := &defaultRenderer{
		logger:      log.New("renderer"),
		options:     opts,
		scene:       sc,
		scheduler:   scheduler,
		frameBuffer: make([]float32, int(opts.FrameW)*int(opts.FrameH)*3),
	}

	r.tree = bvh.Build(sc.Primitives, opts.Bvh)
	r.logger.Infof("built BVH with %d nodes in %s", r.tree.Stats.Nodes, r.tree.Stats.BuildTime)

	sc.Camera.SetupProjection(float32(opts.FrameW) / float32(opts.FrameH))

	for i := 0; i < opts.Workers; i++ {
		tr := tracer.NewCPUTracer(fmt.Sprintf("cpu-%d", i), sc, r.tree, opts.AOV, !opts.DisableBvh)
		if err := tr.Setup(opts.FrameW, opts.FrameH, r.frameBuffer); err != nil {
			return nil, xerrors.Errorf("renderer: %w", err)
		}
		r.tracers = append(r.tracers, tr)
	}
	if len(r.tracers) == 0 {
		return nil, ErrNoTracers
	}

	return r, nil
}

func (r *defaultRenderer) Render(ctx context.Context) error {
	start := time.Now()

	r.blockAssignments = r.scheduler.Schedule(r.tracers, r.options.FrameH)

	group, groupCtx := errgroup.WithContext(ctx)
	var blockY uint32 = 0
	for idx, tr := range r.tracers {
		blockH := r.blockAssignments[idx]
		if blockH == 0 {
			continue
		}

		tr := tr
		req := tracer.BlockRequest{
			BlockY:     blockY,
			BlockH:     blockH,
			FrameCount: r.frameCount,
		}
		group.Go(func() error {
			return tr.Trace(groupCtx, req)
		})
		blockY += blockH
	}

	if err := group.Wait(); err != nil {
		if ctx.Err() != nil {
			return xerrors.Errorf("%v: %w", ctx.Err(), ErrInterrupted)
		}
		return xerrors.Errorf("renderer: %w", err)
	}

	r.frameCount++
	r.updateStats(time.Since(start))
	r.logger.Debugf("rendered frame %d in %s", r.frameCount, r.stats.RenderTime)
	return nil
}

func (r *defaultRenderer) updateStats(renderTime time.Duration) {
	r.stats.RenderTime = renderTime
	r.stats.Tracers = r.stats.Tracers[:0]
	for idx, tr := range r.tracers {
		blockH := r.blockAssignments[idx]
		stat := TracerStat{
			Id:           tr.Id(),
			BlockH:       blockH,
			FramePercent: 100.0 * float32(blockH) / float32(r.options.FrameH),
		}
		if blockH > 0 {
			trStats := tr.Stats()
			stat.RenderTime = trStats.BlockTime
			stat.Rays = trStats.Rays
			stat.Hits = trStats.Hits
		}
		r.stats.Tracers = append(r.stats.Tracers, stat)
	}
}

func (r *defaultRenderer) Image() image.Image {
	return toImage(r.frameBuffer, r.options.FrameW, r.options.FrameH, r.options.AOV)
}

func (r *defaultRenderer) Stats() FrameStats {
	return r.stats
}
