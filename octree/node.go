package octree

import (
	"sort"

	"spatialhot/geom"
	"spatialhot/nodekey"
	"spatialhot/spatialhash"
	"spatialhot/spatialtree"
)

// MaxLeafItems is the default maximum number of items a leaf node may hold
// before InsertItems splits it into children.
const MaxLeafItems = 32

// MaxDepth is the deepest level a node may split to; nodekey.MaxLevel
// bounds the FineKey domain to the same depth.
const MaxDepth = nodekey.MaxLevel

// Node is one node of the octree: a level-encoded key, the bounding box it
// covers, up to 8 owned children, and the contiguous sub-slices of the
// tree's key and item buffers spanning its range.
type Node struct {
	Key      nodekey.Key
	Box      geom.BoundingBox
	Children [8]*Node

	keys  []spatialhash.FineKey
	items []spatialtree.Item
}

// NumItems returns the number of items directly owned by this node's
// range (the sum over a subtree is NumItems of the root of that subtree).
func (n *Node) NumItems() int { return len(n.keys) }

// IsLeaf reports whether n has no children.
func (n *Node) IsLeaf() bool {
	for _, c := range n.Children {
		if c != nil {
			return false
		}
	}
	return true
}

// buildNode constructs the node for key covering box, with the given
// sub-slices of the tree's sorted key and item buffers, splitting into
// children when the leaf threshold and depth budget allow it.
func buildNode(key nodekey.Key, box geom.BoundingBox, keys []spatialhash.FineKey, items []spatialtree.Item, maxLeafItems int) *Node {
	n := &Node{Key: key, Box: box, keys: keys, items: items}

	level := nodekey.Level(key)
	if level >= MaxDepth || len(keys) <= maxLeafItems {
		return n
	}

	childKeys := nodekey.Children(key)
	boundaries := partitionPointers(keys, childKeys)
	for octant := 0; octant < 8; octant++ {
		lo, hi := boundaries[octant], boundaries[octant+1]
		if hi <= lo {
			continue
		}
		childBox := geom.ChildBox(box, octant)
		n.Children[octant] = buildNode(childKeys[octant], childBox, keys[lo:hi], items[lo:hi], maxLeafItems)
	}
	return n
}

// partitionPointers locates, for each of the 8 children, the index in keys
// where that child's FineKey range begins, plus len(keys) as the sentinel
// end. It computes the 7 internal boundaries as a logarithmic cascade: the
// midpoint split by the z bit (the most significant of the 3 octant bits),
// then the two quarter points by the y bit, then the four eighth points by
// the x bit, narrowing the search range at each step.
func partitionPointers(keys []spatialhash.FineKey, childKeys [8]nodekey.Key) [9]int {
	var b [9]int
	b[0] = 0
	b[8] = len(keys)

	lowerBound := func(lo, hi int, target spatialhash.FineKey) int {
		return lo + sort.Search(hi-lo, func(i int) bool {
			return keys[lo+i] >= target
		})
	}

	// octant bit layout: bit0 = x, bit1 = y, bit2 = z.
	b[4] = lowerBound(b[0], b[8], nodekey.RangeBegin(childKeys[4])) // z split
	b[2] = lowerBound(b[0], b[4], nodekey.RangeBegin(childKeys[2])) // y split, low z half
	b[6] = lowerBound(b[4], b[8], nodekey.RangeBegin(childKeys[6])) // y split, high z half
	b[1] = lowerBound(b[0], b[2], nodekey.RangeBegin(childKeys[1])) // x splits
	b[3] = lowerBound(b[2], b[4], nodekey.RangeBegin(childKeys[3]))
	b[5] = lowerBound(b[4], b[6], nodekey.RangeBegin(childKeys[5]))
	b[7] = lowerBound(b[6], b[8], nodekey.RangeBegin(childKeys[7]))

	return b
}
