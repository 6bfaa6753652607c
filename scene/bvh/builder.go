package bvh

import (
	"sort"
	"time"

	"github.com/achilleasa/vincent/log"
	"github.com/achilleasa/vincent/scene"
	"github.com/achilleasa/vincent/types"
)

// A primitive together with its cached bounds and centroid.
type buildItem struct {
	prim     scene.Primitive
	bbox     types.AABB
	centroid types.Vec3
}

// Node bounds are grown by this fraction of the scene coordinate scale so
// that rays touching a shared edge or a flat box are never culled by the
// rounding error of the slab test.
const boundsPadding = 1e-5

type builder struct {
	logger log.Logger
	opts   Options

	padding float32

	items []buildItem
	stats Stats
}

// Construct a BVH over prims.
//
// The builder reorders prims in place so that every tree node references a
// contiguous range of the slice. The returned tree keeps a reference to
// prims; the caller must not modify it while the tree is in use.
//
// Build panics if opts contains negative values.
func Build(prims []scene.Primitive, opts Options) *Tree {
	b := &builder{
		logger: log.New("bvh builder"),
		opts:   opts.withDefaults(),
		items:  make([]buildItem, len(prims)),
	}

	sceneBounds := types.EmptyAABB()
	for i, prim := range prims {
		bbox := prim.BBox()
		b.items[i] = buildItem{prim: prim, bbox: bbox, centroid: bbox.Center()}
		sceneBounds = sceneBounds.Union(bbox)
	}
	b.padding = boundsPadding * sceneScale(sceneBounds)

	tree := &Tree{
		Primitives: prims,
		Options:    b.opts,
		padding:    b.padding,
	}

	start := time.Now()
	if len(prims) > 0 {
		tree.Root = b.partition(0, len(prims), 0)
	}
	for i, item := range b.items {
		prims[i] = item.prim
	}

	b.stats.Primitives = len(prims)
	b.stats.BuildTime = time.Since(start)
	tree.Stats = b.stats

	b.logger.Debugf(
		"BVH tree build time: %d ms, strategy: %s, maxDepth: %d, nodes: %d, leafs: %d",
		b.stats.BuildTime.Nanoseconds()/1e6, b.opts.SplitStrategy,
		b.stats.MaxDepth, b.stats.Nodes, b.stats.Leaves,
	)
	return tree
}

// Partition items in [start, end) and return the subtree root.
func (b *builder) partition(start, end, depth int) *Node {
	b.stats.Nodes++
	if depth > b.stats.MaxDepth {
		b.stats.MaxDepth = depth
	}

	node := &Node{
		Depth:  depth,
		Bounds: types.EmptyAABB(),
		Start:  start,
		Count:  end - start,
	}
	bounds := types.EmptyAABB()
	for _, item := range b.items[start:end] {
		bounds = bounds.Union(item.bbox)
	}
	node.Bounds = bounds.Pad(b.padding)

	if node.Count <= b.opts.MaxLeafPrimitives || depth >= b.opts.MaxDepth {
		b.createLeaf(node)
		return node
	}

	axis := bounds.LongestAxis()
	var mid int
	switch b.opts.SplitStrategy {
	case SurfaceAreaHeuristic:
		mid = b.sahSplit(start, end, axis, bounds)
	default:
		mid = b.medianSplit(start, end, axis)
	}

	// Coincident centroids leave one side empty; split by index instead so
	// that every level makes progress.
	if mid == start || mid == end {
		b.stats.FallbackSplits++
		b.indexMedianSplit(start, end, axis)
		mid = start + node.Count/2
	}

	node.Left = b.partition(start, mid, depth+1)
	node.Right = b.partition(mid, end, depth+1)
	return node
}

// Get the coordinate scale of the scene: its largest absolute coordinate or
// its largest extent, whichever is bigger, and never less than 1.
func sceneScale(bounds types.AABB) float32 {
	scale := bounds.MaxAbsCoord()
	if extent := bounds.Size().MaxComponent(); extent > scale {
		scale = extent
	}
	if !(scale > 1) {
		scale = 1
	}
	return scale
}

func (b *builder) createLeaf(node *Node) {
	b.stats.Leaves++
	if node.Count > b.stats.LargestLeaf {
		b.stats.LargestLeaf = node.Count
	}
	if node.Count > b.opts.MaxLeafPrimitives {
		b.stats.DepthLimitedLeaves++
	}
}

// Move items whose centroid lies below splitPoint to the front of
// [start, end) and return the index of the first item on the right side.
func (b *builder) partitionAt(start, end int, axis types.Axis, splitPoint float32) int {
	mid := start
	for i := start; i < end; i++ {
		if b.items[i].centroid[axis] < splitPoint {
			b.items[i], b.items[mid] = b.items[mid], b.items[i]
			mid++
		}
	}
	return mid
}

// Stable sort [start, end) by centroid along axis.
func (b *builder) indexMedianSplit(start, end int, axis types.Axis) {
	work := b.items[start:end]
	sort.SliceStable(work, func(i, j int) bool {
		return work[i].centroid[axis] < work[j].centroid[axis]
	})
}
