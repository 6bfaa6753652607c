package bvh

import (
	"bytes"
	"fmt"
	"time"

	"github.com/olekukonko/tablewriter"
)

// Stats collected while building a tree.
type Stats struct {
	Primitives int
	Nodes      int
	Leaves     int
	MaxDepth   int

	// Number of primitives in the largest leaf.
	LargestLeaf int

	// Leaves that exceed MaxLeafPrimitives because the depth limit was hit.
	DepthLimitedLeaves int

	// Nodes split by index because the split strategy left one side empty.
	FallbackSplits int

	BuildTime time.Duration
}

// Render stats as a table.
func (s Stats) Table() string {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAlignment(tablewriter.ALIGN_RIGHT)
	table.SetAutoFormatHeaders(false)
	table.SetHeader([]string{"BVH stat", "Value"})
	table.Append([]string{"Primitives", fmt.Sprint(s.Primitives)})
	table.Append([]string{"Nodes", fmt.Sprint(s.Nodes)})
	table.Append([]string{"Leaves", fmt.Sprint(s.Leaves)})
	table.Append([]string{"Max depth", fmt.Sprint(s.MaxDepth)})
	table.Append([]string{"Largest leaf", fmt.Sprint(s.LargestLeaf)})
	table.Append([]string{"Depth limited leaves", fmt.Sprint(s.DepthLimitedLeaves)})
	table.Append([]string{"Fallback splits", fmt.Sprint(s.FallbackSplits)})
	table.SetFooter([]string{"Build time", s.BuildTime.String()})
	table.Render()
	return buf.String()
}
