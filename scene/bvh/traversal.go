package bvh

import (
	"github.com/achilleasa/vincent/scene"
	"github.com/achilleasa/vincent/types"
)

// Hit describes the nearest intersection found by a tree query.
type Hit struct {
	Primitive scene.Primitive

	// Index of the primitive in Tree.Primitives.
	Index int

	Distance float32
	Normal   types.Vec3
	Point    types.Vec3
}

type stackEntry struct {
	node  *Node
	tNear float32
}

// Find the nearest primitive intersected by ray using the BVH. On a hit
// ray.TMax is set to the hit distance.
func (t *Tree) Intersect(ray *types.Ray) (Hit, bool) {
	return t.IntersectPrimitives(ray, true)
}

// Find the nearest primitive intersected by ray. If useBvh is false all
// primitives are tested linearly; both modes report the same nearest hit.
func (t *Tree) IntersectPrimitives(ray *types.Ray, useBvh bool) (Hit, bool) {
	var hit Hit
	if !ray.IsValid() || t.Root == nil {
		return hit, false
	}

	found := false
	if !useBvh {
		for i := range t.Primitives {
			found = t.intersectPrimitive(ray, i, &hit) || found
		}
	} else {
		found = t.traverse(ray, &hit)
	}

	if found {
		hit.Point = ray.At(hit.Distance)
	}
	return hit, found
}

// Walk the tree front to back, skipping nodes whose entry distance lies
// beyond the closest hit found so far.
func (t *Tree) traverse(ray *types.Ray, hit *Hit) bool {
	tNear, _, ok := t.Root.Bounds.IntersectRay(ray)
	if !ok {
		return false
	}

	var stackBuf [DefaultMaxDepth + 1]stackEntry
	stack := append(stackBuf[:0], stackEntry{t.Root, tNear})

	found := false
	for len(stack) > 0 {
		entry := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if entry.tNear > ray.TMax {
			continue
		}

		node := entry.node
		if node.IsLeaf() {
			for i := node.Start; i < node.Start+node.Count; i++ {
				found = t.intersectPrimitive(ray, i, hit) || found
			}
			continue
		}

		lNear, _, lHit := node.Left.Bounds.IntersectRay(ray)
		rNear, _, rHit := node.Right.Bounds.IntersectRay(ray)
		switch {
		case lHit && rHit:
			// Push the farther child first so the nearer one is popped next.
			if rNear < lNear {
				stack = append(stack, stackEntry{node.Left, lNear}, stackEntry{node.Right, rNear})
			} else {
				stack = append(stack, stackEntry{node.Right, rNear}, stackEntry{node.Left, lNear})
			}
		case lHit:
			stack = append(stack, stackEntry{node.Left, lNear})
		case rHit:
			stack = append(stack, stackEntry{node.Right, rNear})
		}
	}

	return found
}

// Test primitive i and record it in hit if it is closer than ray.TMax.
//
// Hits whose computed position strays outside the primitive bounds by more
// than half the node padding are numerical noise from grazing rays and are
// rejected. Every accepted hit therefore lies inside the padded bounds of
// all nodes on the path to its leaf, so both traversal modes agree.
func (t *Tree) intersectPrimitive(ray *types.Ray, i int, hit *Hit) bool {
	prim := t.Primitives[i]
	dist, normal, ok := prim.Intersect(ray)
	if !ok || !(dist >= ray.TMin && dist < ray.TMax) {
		return false
	}
	if !prim.BBox().Pad(0.5 * t.padding).ContainsPoint(ray.At(dist)) {
		return false
	}

	ray.TMax = dist
	hit.Primitive = prim
	hit.Index = i
	hit.Distance = dist
	hit.Normal = normal
	return true
}
