package octree

import (
	"spatialhot/geom"
	"spatialhot/spatialtree"
)

// VisitNearVertices invokes visitor for every item within L-infinity
// distance eps of position. It returns true if the traversal completed
// without visitor returning false, or if the tree is empty or position
// lies further than eps from the tree's bounding box (nothing to visit
// either way). A nil visitor is treated as already having seen everything
// it needs: the call returns true immediately without descending.
func (t *Tree) VisitNearVertices(visitor spatialtree.Visitor, position geom.Point, eps float64) bool {
	if visitor == nil {
		return true
	}
	if t.root == nil {
		return true
	}
	if geom.LInfinity(t.box, position) > eps {
		return true
	}
	return visitNode(t.root, visitor, position, eps)
}

// visitNode descends into n, visiting every item within eps of position. It
// returns false as soon as visitor does, short-circuiting the remainder of
// the traversal (including sibling subtrees).
func visitNode(n *Node, visitor spatialtree.Visitor, position geom.Point, eps float64) bool {
	if n.IsLeaf() {
		for i := range n.items {
			if geom.LInfinityPoints(n.items[i].Position, position) <= eps {
				if !visitor(&n.items[i]) {
					return false
				}
			}
		}
		return true
	}

	// Fast path: the single octant position actually falls in, if it is
	// comfortably (by more than eps) inside that child's box -- no other
	// child's range can then hold a point within eps, so recurse only
	// here and stop. Trying every child's DistanceFromBoundary instead of
	// just the selected one would be wrong: that metric measures distance
	// to the nearest face-plane, not containment, so a distant sibling can
	// score an equally large "distance from boundary" as the true octant.
	if selected := n.Children[selectOctant(n.Box, position)]; selected != nil {
		if geom.DistanceFromBoundary(selected.Box, position) > eps {
			return visitNode(selected, visitor, position, eps)
		}
	}

	// Boundary case: position lies within eps of a face shared by more than
	// one child (or outside all of them), so any child whose box comes
	// within eps of position might hold a matching item.
	for _, child := range n.Children {
		if child == nil {
			continue
		}
		if geom.LInfinity(child.Box, position) > eps {
			continue
		}
		if !visitNode(child, visitor, position, eps) {
			return false
		}
	}
	return true
}

// selectOctant returns the octant index (matching geom.ChildBox's bit
// layout: bit0=x, bit1=y, bit2=z) that position falls into within box,
// splitting box at its axis midpoints. Points outside box clamp to the
// nearest half per axis.
func selectOctant(box geom.BoundingBox, position geom.Point) int {
	octant := 0
	if position.X >= 0.5*(box.Min.X+box.Max.X) {
		octant |= 1 << 0
	}
	if position.Y >= 0.5*(box.Min.Y+box.Max.Y) {
		octant |= 1 << 1
	}
	if position.Z >= 0.5*(box.Min.Z+box.Max.Z) {
		octant |= 1 << 2
	}
	return octant
}
