package widetree

import (
	"spatialhot/geom"
	"spatialhot/spatialerr"
	"spatialhot/spatialtree"
)

// Tree is the wide-tree engine over a fixed bounding box. The zero value is
// not usable; construct one with New.
type Tree struct {
	box          geom.BoundingBox
	maxLeafItems int

	items []spatialtree.Item
	root  *Node
}

// New creates an empty Tree over bbox, with the default leaf threshold
// (MaxLeafItems).
func New(bbox geom.BoundingBox) *Tree {
	return NewWithLeafThreshold(bbox, MaxLeafItems)
}

// NewWithLeafThreshold creates an empty Tree over bbox with a custom leaf
// item threshold.
func NewWithLeafThreshold(bbox geom.BoundingBox, maxLeafItems int) *Tree {
	spatialerr.Check(bbox.Max.X <= bbox.Min.X, "widetree: degenerate bounding box on X axis")
	spatialerr.Check(bbox.Max.Y <= bbox.Min.Y, "widetree: degenerate bounding box on Y axis")
	spatialerr.Check(bbox.Max.Z <= bbox.Min.Z, "widetree: degenerate bounding box on Z axis")
	if maxLeafItems <= 0 {
		maxLeafItems = MaxLeafItems
	}
	return &Tree{box: bbox, maxLeafItems: maxLeafItems}
}

// InsertItems replaces the tree's contents with items. An empty items slice
// resets the tree to empty. This is destructive: items previously inserted
// are discarded, not merged.
func (t *Tree) InsertItems(items []spatialtree.Item) {
	if len(items) == 0 {
		t.items = nil
		t.root = nil
		return
	}
	newItems := make([]spatialtree.Item, len(items))
	copy(newItems, items)

	t.root = buildNode(t.box, newItems, t.maxLeafItems, 0)
	t.items = t.root.items
}

// Items returns the tree's items, grouped by grid cell at every level the
// tree actually split. A range that never exceeded maxLeafItems is never
// key-sorted -- it is kept in its original InsertItems order, matching
// WideNode::InsertItems in the reference, which copies a small range
// through unsorted rather than paying for a key computation and sort it
// doesn't need. The returned slice aliases the tree's storage.
func (t *Tree) Items() []spatialtree.Item { return t.items }

// Box returns the tree's bounding box.
func (t *Tree) Box() geom.BoundingBox { return t.box }

var _ spatialtree.Tree = (*Tree)(nil)
