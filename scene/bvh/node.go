package bvh

import "github.com/achilleasa/vincent/types"

// A BVH tree node. Every node (leaf or internal) references the range
// [Start, Start+Count) of the primitive slice that was partitioned by the
// builder; the ranges of an internal node's children partition its own
// range exactly.
type Node struct {
	Depth  int
	Bounds types.AABB

	Start int
	Count int

	Left  *Node
	Right *Node
}

// Returns true if this node has no children.
func (n *Node) IsLeaf() bool {
	return n.Left == nil && n.Right == nil
}
