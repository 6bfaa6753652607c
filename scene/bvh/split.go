package bvh

import (
	"sort"

	"github.com/achilleasa/vincent/types"
)

// Split [start, end) at the median centroid along axis.
func (b *builder) medianSplit(start, end int, axis types.Axis) int {
	values := make([]float32, 0, end-start)
	for _, item := range b.items[start:end] {
		values = append(values, item.centroid[axis])
	}
	sort.Slice(values, func(i, j int) bool { return values[i] < values[j] })

	return b.partitionAt(start, end, axis, values[len(values)/2])
}

type sahBin struct {
	count  int
	bounds types.AABB
}

// Split [start, end) along axis using a binned surface area heuristic. The
// cost of a split is leftCount * leftArea + rightCount * rightArea; if no
// candidate beats the cost of keeping all items in a single node the median
// split is used instead.
func (b *builder) sahSplit(start, end int, axis types.Axis, nodeBounds types.AABB) int {
	centroidBounds := types.EmptyAABB()
	for _, item := range b.items[start:end] {
		centroidBounds = centroidBounds.Extend(item.centroid)
	}

	cMin := centroidBounds.Min[axis]
	extent := centroidBounds.Max[axis] - cMin
	if !(extent > 0) {
		return b.medianSplit(start, end, axis)
	}

	var bins [sahBins]sahBin
	for i := range bins {
		bins[i].bounds = types.EmptyAABB()
	}
	scale := float32(sahBins) / extent
	for _, item := range b.items[start:end] {
		binIndex := int((item.centroid[axis] - cMin) * scale)
		if binIndex >= sahBins {
			binIndex = sahBins - 1
		}
		bins[binIndex].count++
		bins[binIndex].bounds = bins[binIndex].bounds.Union(item.bbox)
	}

	// Sweep from the right to accumulate the right side of each candidate.
	var rightCount [sahBins]int
	var rightArea [sahBins]float32
	acc, accCount := types.EmptyAABB(), 0
	for i := sahBins - 1; i > 0; i-- {
		acc = acc.Union(bins[i].bounds)
		accCount += bins[i].count
		rightCount[i] = accCount
		rightArea[i] = acc.SurfaceArea()
	}

	bestCost := float32(end-start) * nodeBounds.SurfaceArea()
	bestSplit := -1
	acc, accCount = types.EmptyAABB(), 0
	for i := 1; i < sahBins; i++ {
		acc = acc.Union(bins[i-1].bounds)
		accCount += bins[i-1].count
		if accCount == 0 || rightCount[i] == 0 {
			continue
		}

		cost := float32(accCount)*acc.SurfaceArea() + float32(rightCount[i])*rightArea[i]
		if cost < bestCost {
			bestCost = cost
			bestSplit = i
		}
	}

	if bestSplit < 0 {
		return b.medianSplit(start, end, axis)
	}
	return b.partitionAt(start, end, axis, cMin+float32(bestSplit)/scale)
}
