package bvh

import (
	"fmt"

	"github.com/achilleasa/vincent/scene"
)

// A Tree is an immutable BVH over a primitive slice.
type Tree struct {
	// The root node; nil if the tree was built from an empty primitive list.
	Root *Node

	// The primitive slice reordered by Build. Node ranges index into it.
	Primitives []scene.Primitive

	// The options used to build the tree, with defaults applied.
	Options Options

	Stats Stats

	// Absolute padding applied to node bounds. Primitive hits must lie
	// within half of it from the primitive bounds.
	padding float32
}

// Check validates the tree structure: node ranges partition the primitive
// slice, node bounds contain their primitives and children, depths are
// consistent and leaves respect the configured size limits.
func (t *Tree) Check() error {
	if t.Root == nil {
		if len(t.Primitives) != 0 {
			return fmt.Errorf("bvh: tree has no root but references %d primitives", len(t.Primitives))
		}
		return nil
	}

	if t.Root.Start != 0 || t.Root.Count != len(t.Primitives) {
		return fmt.Errorf("bvh: root range [%d, %d) does not cover all %d primitives", t.Root.Start, t.Root.Start+t.Root.Count, len(t.Primitives))
	}
	if t.Root.Depth != 0 {
		return fmt.Errorf("bvh: root depth is %d", t.Root.Depth)
	}
	return t.checkNode(t.Root)
}

func (t *Tree) checkNode(n *Node) error {
	if n.Count <= 0 {
		return fmt.Errorf("bvh: node at depth %d has an empty range", n.Depth)
	}
	if n.Depth > t.Options.MaxDepth {
		return fmt.Errorf("bvh: node depth %d exceeds max depth %d", n.Depth, t.Options.MaxDepth)
	}

	for i := n.Start; i < n.Start+n.Count; i++ {
		if !n.Bounds.Contains(t.Primitives[i].BBox()) {
			return fmt.Errorf("bvh: node [%d, %d) at depth %d does not contain primitive %d", n.Start, n.Start+n.Count, n.Depth, i)
		}
	}

	if (n.Left == nil) != (n.Right == nil) {
		return fmt.Errorf("bvh: node [%d, %d) at depth %d has a single child", n.Start, n.Start+n.Count, n.Depth)
	}

	if n.IsLeaf() {
		if n.Count > t.Options.MaxLeafPrimitives && n.Depth < t.Options.MaxDepth {
			return fmt.Errorf("bvh: leaf [%d, %d) at depth %d holds %d primitives; max is %d", n.Start, n.Start+n.Count, n.Depth, n.Count, t.Options.MaxLeafPrimitives)
		}
		return nil
	}

	for _, child := range []*Node{n.Left, n.Right} {
		if child.Depth != n.Depth+1 {
			return fmt.Errorf("bvh: child of node at depth %d has depth %d", n.Depth, child.Depth)
		}
		if !n.Bounds.Contains(child.Bounds) {
			return fmt.Errorf("bvh: node [%d, %d) at depth %d does not contain its child bounds", n.Start, n.Start+n.Count, n.Depth)
		}
	}
	if n.Left.Start != n.Start || n.Right.Start != n.Left.Start+n.Left.Count || n.Left.Count+n.Right.Count != n.Count {
		return fmt.Errorf("bvh: children of node [%d, %d) at depth %d do not partition its range", n.Start, n.Start+n.Count, n.Depth)
	}

	if err := t.checkNode(n.Left); err != nil {
		return err
	}
	return t.checkNode(n.Right)
}
