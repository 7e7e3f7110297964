// Package widetree implements WideTree, the alternative spatial-sort engine
// that recursively partitions a box into a fixed 8x8x4 grid of 256 cells per
// level (rather than the octree's 8-way split), sorting each level's items
// by an 8-bit WideKey with a counting sort.
package widetree

import (
	"spatialhot/geom"
	"spatialhot/sortutil"
	"spatialhot/spatialhash"
	"spatialhot/spatialtree"
)

// MaxLeafItems is the default number of items a node may hold before
// splitting into its 256-cell grid, matching the reference
// MAX_NUM_LEAF_VERTICES threshold.
const MaxLeafItems = 256

// MaxDepth bounds how many grid levels a build may recurse through. The
// reference implementation has no such cap and will recurse forever on a
// leaf range that is all coincident points; WideTree stops splitting past
// MaxDepth and keeps the remainder as an oversized leaf instead.
const MaxDepth = 16

// numCells is the number of grid cells (children) per node: 8 * 8 * 4.
const numCells = 256

// Node is one node of the wide tree: the box it covers, its 256 possibly-nil
// children, and the contiguous sub-slice of the tree's item buffer spanning
// its range.
type Node struct {
	Box      geom.BoundingBox
	Children [numCells]*Node

	items []spatialtree.Item
}

// NumItems returns the number of items directly owned by this node's range.
func (n *Node) NumItems() int { return len(n.items) }

// IsLeaf reports whether n has no children.
func (n *Node) IsLeaf() bool {
	for _, c := range n.Children {
		if c != nil {
			return false
		}
	}
	return true
}

// buildNode constructs the node covering box for the given sub-slices of
// the tree's item buffer, splitting into a 256-cell grid when the leaf
// threshold and depth budget allow it.
func buildNode(box geom.BoundingBox, items []spatialtree.Item, maxLeafItems, depth int) *Node {
	n := &Node{Box: box, items: items}
	if depth >= MaxDepth || len(items) <= maxLeafItems {
		return n
	}

	locations := make([]float64, 0, len(items)*3)
	for _, it := range items {
		locations = append(locations, it.Position.X, it.Position.Y, it.Position.Z)
	}
	keys8 := spatialhash.ComputeWideKeysStrided(box, locations, 3)

	rawKeys := make([]uint8, len(keys8))
	for i, k := range keys8 {
		rawKeys[i] = uint8(k)
	}
	perm, table := sortutil.CountingSort256(rawKeys)

	// Reorder in place so every node's items stay a sub-slice of the tree's
	// single item buffer.
	sortedItems := items
	copy(sortedItems, sortutil.ApplyPermutation(perm, items))
	n.items = sortedItems

	for cell := 0; cell < numCells; cell++ {
		lo, hi := table[cell], table[cell+1]
		if hi <= lo {
			continue
		}
		a := (cell >> 5) & 0x7
		b := (cell >> 2) & 0x7
		c := cell & 0x3
		childBox := geom.WideChildBox(box, a, b, c)
		n.Children[cell] = buildNode(childBox, sortedItems[lo:hi], maxLeafItems, depth+1)
	}
	return n
}
