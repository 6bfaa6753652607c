package cmd

import (
	"bytes"
	"fmt"
	"math"
	"math/rand"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/achilleasa/vincent/scene/bvh"
	"github.com/achilleasa/vincent/types"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
)

// Relative distance tolerance when comparing BVH and linear scan hits.
const verifyDistTolerance = 1e-4

type verifyResult struct {
	rays, hits, mismatches, ties int64
	bvhTime, linearTime    int64
}

// Cast random rays through the scene with and without the BVH and report
// any rays for which the two disagree.
func VerifyScene(cliCtx *cli.Context) error {
	if err := setupLogging(cliCtx); err != nil {
		return err
	}
	opts, err := bvhOptions(cliCtx)
	if err != nil {
		return err
	}
	numRays, batchSize := cliCtx.Int("rays"), cliCtx.Int("batch")
	if numRays < 1 || batchSize < 1 {
		return fmt.Errorf("rays and batch must be at least 1")
	}
	workers := cliCtx.Int("workers")
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	ctx, cancel := interruptContext()
	defer cancel()

	sc, err := loadScene(ctx, cliCtx)
	if err != nil {
		return err
	}
	tree := bvh.Build(sc.Primitives, opts)

	// Ray origins are sampled from a box twice the size of the scene bounds.
	bounds := sc.Bounds()
	if bounds.IsEmpty() {
		return fmt.Errorf("scene has no primitives")
	}
	center, size := bounds.Center(), bounds.Size()
	originBox := types.AABB{Min: center.Sub(size), Max: center.Add(size)}

	var res verifyResult
	group, groupCtx := errgroup.WithContext(ctx)
	sem := semaphore.NewWeighted(int64(workers))
	seed := cliCtx.Int64("seed")
	for batch := 0; batch*batchSize < numRays; batch++ {
		if err = sem.Acquire(groupCtx, 1); err != nil {
			break
		}

		count := batchSize
		if remaining := numRays - batch*batchSize; remaining < count {
			count = remaining
		}

		rng := rand.New(rand.NewSource(seed + int64(batch)))
		group.Go(func() error {
			defer sem.Release(1)
			if err := groupCtx.Err(); err != nil {
				return err
			}
			verifyBatch(tree, originBox, rng, count, &res)
			return nil
		})
	}
	if waitErr := group.Wait(); waitErr != nil {
		return waitErr
	}
	if err != nil {
		return err
	}

	logger.Noticef("verification results:\n%s", res.table())
	if res.mismatches > 0 {
		return fmt.Errorf("BVH traversal disagrees with the linear scan for %d out of %d rays", res.mismatches, res.rays)
	}
	return nil
}

func verifyBatch(tree *bvh.Tree, originBox types.AABB, rng *rand.Rand, count int, res *verifyResult) {
	var hits, mismatches, ties int64
	var bvhTime, linearTime time.Duration

	for i := 0; i < count; i++ {
		origin := types.Vec3{}
		for axis := 0; axis < 3; axis++ {
			origin[axis] = originBox.Min[axis] + rng.Float32()*(originBox.Max[axis]-originBox.Min[axis])
		}
		dir := randomDirection(rng)

		bvhRay := types.NewRay(origin, dir, 0)
		linearRay := bvhRay

		start := time.Now()
		bvhHit, bvhOk := tree.IntersectPrimitives(&bvhRay, true)
		bvhTime += time.Since(start)

		start = time.Now()
		linearHit, linearOk := tree.IntersectPrimitives(&linearRay, false)
		linearTime += time.Since(start)

		if bvhOk {
			hits++
		}
		if bvhOk != linearOk {
			mismatches++
			continue
		}
		if !bvhOk {
			continue
		}
		tolerance := verifyDistTolerance * math.Max(1, float64(linearHit.Distance))
		switch {
		case math.Abs(float64(bvhHit.Distance-linearHit.Distance)) > tolerance:
			mismatches++
			logger.Warningf("ray %v -> %v: BVH hit at %f; linear scan hit at %f", origin, dir, bvhHit.Distance, linearHit.Distance)
		case bvhHit.Index != linearHit.Index && bvhHit.Distance != linearHit.Distance:
			mismatches++
			logger.Warningf("ray %v -> %v: BVH hit primitive %d; linear scan hit primitive %d", origin, dir, bvhHit.Index, linearHit.Index)
		case bvhHit.Index != linearHit.Index:
			ties++
		}
	}

	atomic.AddInt64(&res.rays, int64(count))
	atomic.AddInt64(&res.hits, hits)
	atomic.AddInt64(&res.mismatches, mismatches)
	atomic.AddInt64(&res.ties, ties)
	atomic.AddInt64(&res.bvhTime, int64(bvhTime))
	atomic.AddInt64(&res.linearTime, int64(linearTime))
}

// Sample a direction uniformly over the unit sphere.
func randomDirection(rng *rand.Rand) types.Vec3 {
	z := 1 - 2*rng.Float64()
	r := math.Sqrt(math.Max(0, 1-z*z))
	phi := 2 * math.Pi * rng.Float64()
	return types.Vec3{float32(r * math.Cos(phi)), float32(r * math.Sin(phi)), float32(z)}
}

func (res *verifyResult) table() string {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetHeader([]string{"Rays", "Hits", "Mismatches", "Ties", "BVH time", "Linear scan time"})
	table.Append([]string{
		fmt.Sprint(res.rays),
		fmt.Sprint(res.hits),
		fmt.Sprint(res.mismatches),
		fmt.Sprint(res.ties),
		time.Duration(res.bvhTime).String(),
		time.Duration(res.linearTime).String(),
	})
	table.Render()
	return buf.String()
}
