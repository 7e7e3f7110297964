package widetree

import (
	"spatialhot/geom"
	"spatialhot/spatialtree"
)

// VisitNearVertices invokes visitor for every item within L-infinity
// distance eps of position. See octree.Tree.VisitNearVertices for the
// shared contract around empty trees and nil visitors.
func (t *Tree) VisitNearVertices(visitor spatialtree.Visitor, position geom.Point, eps float64) bool {
	if visitor == nil || t.root == nil {
		return true
	}
	if geom.LInfinity(t.box, position) > eps {
		return true
	}
	return visitNode(t.root, visitor, position, eps)
}

// visitNode descends into n, trying the single grid cell that would contain
// position as a fast path (mirroring the reference WideNode's one-bucket
// lookup, but clamped rather than wrapped -- see selectCell), then falling
// back to scanning every child within eps when the fast path doesn't apply
// or position sits near a cell boundary.
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

	if selected := n.Children[selectCell(n.Box, position)]; selected != nil {
		if geom.DistanceFromBoundary(selected.Box, position) > eps {
			return visitNode(selected, visitor, position, eps)
		}
	}

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

// selectCell returns the grid cell index position falls into within box,
// clamping rather than wrapping a coordinate that lies outside box. The
// boundary fallback in visitNode can descend into a child whose box is
// merely within eps of position, not containing it, so spatialhash's
// periodic-wraparound ComputeWideKey would be the wrong tool here: a
// position just outside box on one axis must resolve to that axis's
// nearest edge cell, not to the cell on the opposite side of the grid.
func selectCell(box geom.BoundingBox, position geom.Point) int {
	a := clampedBucket(position.X, box.Min.X, box.Max.X, 8)
	b := clampedBucket(position.Y, box.Min.Y, box.Max.Y, 8)
	c := clampedBucket(position.Z, box.Min.Z, box.Max.Z, 4)
	return int(a<<5 | b<<2 | c)
}

// clampedBucket maps x into [0, numBuckets) relative to [min, max), clamping
// values outside that range to the nearest edge bucket instead of folding
// them back in range.
func clampedBucket(x, min, max float64, numBuckets uint32) uint32 {
	width := max - min
	v := (x - min) / width
	if v < 0 {
		return 0
	}
	b := uint32(v * float64(numBuckets))
	if b >= numBuckets {
		return numBuckets - 1
	}
	return b
}
