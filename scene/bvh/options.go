package bvh

import "fmt"

// SplitStrategy selects how the builder positions node splits.
type SplitStrategy uint8

const (
	// Split at the median primitive centroid along the longest axis.
	MedianSplit SplitStrategy = iota

	// Evaluate a fixed number of bins along the longest axis and pick the
	// split with the lowest surface area cost.
	SurfaceAreaHeuristic
)

const (
	DefaultMaxLeafPrimitives = 4
	DefaultMaxDepth          = 64

	// Number of candidate bins evaluated by the SAH strategy.
	sahBins = 12
)

func (s SplitStrategy) String() string {
	switch s {
	case MedianSplit:
		return "median"
	case SurfaceAreaHeuristic:
		return "sah"
	}
	return "unknown"
}

// Lookup split strategy by its name.
func SplitStrategyFromName(name string) (SplitStrategy, error) {
	switch name {
	case "median":
		return MedianSplit, nil
	case "sah":
		return SurfaceAreaHeuristic, nil
	}
	return MedianSplit, fmt.Errorf("bvh: unknown split strategy %q", name)
}

// Options control BVH construction. Zero values are replaced with defaults.
type Options struct {
	// Nodes with at most this many primitives become leaves.
	MaxLeafPrimitives int

	// Nodes at this depth become leaves regardless of their primitive count.
	MaxDepth int

	SplitStrategy SplitStrategy
}

// Return a copy of the options with defaults applied. Negative values are
// programming errors and cause a panic.
func (o Options) withDefaults() Options {
	if o.MaxLeafPrimitives < 0 {
		panic(fmt.Sprintf("bvh: invalid MaxLeafPrimitives %d", o.MaxLeafPrimitives))
	}
	if o.MaxDepth < 0 {
		panic(fmt.Sprintf("bvh: invalid MaxDepth %d", o.MaxDepth))
	}
	if o.SplitStrategy > SurfaceAreaHeuristic {
		panic(fmt.Sprintf("bvh: invalid split strategy %d", o.SplitStrategy))
	}

	if o.MaxLeafPrimitives == 0 {
		o.MaxLeafPrimitives = DefaultMaxLeafPrimitives
	}
	if o.MaxDepth == 0 {
		o.MaxDepth = DefaultMaxDepth
	}
	return o
}
