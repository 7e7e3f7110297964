// Package octree implements HashedOctree, the 8-way coordinate-hashed
// spatial-sort tree. Items are ordered by their 30-bit Morton FineKey; the
// tree is rebuilt from scratch by every InsertItems call.
package octree

import (
	"spatialhot/geom"
	"spatialhot/nodekey"
	"spatialhot/sortutil"
	"spatialhot/spatialerr"
	"spatialhot/spatialhash"
	"spatialhot/spatialtree"
)

// Tree is an 8-way hashed octree over a fixed bounding box. The zero value
// is not usable; construct one with New.
//
// A Tree is not safe for concurrent use across an InsertItems call and any
// other method call. VisitNearVertices calls may run concurrently with
// each other.
type Tree struct {
	box          geom.BoundingBox
	maxLeafItems int

	keys  []spatialhash.FineKey
	items []spatialtree.Item
	root  *Node

	_ noCopy
}

// noCopy marks Tree as not safe to copy by value after first use, the Go
// idiom for the original's move-only, non-copyable tree type.
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}

// New creates an empty Tree over bbox, with the default leaf threshold
// (MaxLeafItems).
func New(bbox geom.BoundingBox) *Tree {
	return NewWithLeafThreshold(bbox, MaxLeafItems)
}

// NewWithLeafThreshold creates an empty Tree over bbox with a custom leaf
// item threshold.
func NewWithLeafThreshold(bbox geom.BoundingBox, maxLeafItems int) *Tree {
	spatialerr.Check(bbox.Max.X <= bbox.Min.X, "octree: degenerate bounding box on X axis")
	spatialerr.Check(bbox.Max.Y <= bbox.Min.Y, "octree: degenerate bounding box on Y axis")
	spatialerr.Check(bbox.Max.Z <= bbox.Min.Z, "octree: degenerate bounding box on Z axis")
	if maxLeafItems <= 0 {
		maxLeafItems = MaxLeafItems
	}
	return &Tree{box: bbox, maxLeafItems: maxLeafItems}
}

// InsertItems replaces the tree's contents with items. An empty items
// slice resets the tree to empty. This is destructive: any items
// previously inserted are discarded, not merged.
func (t *Tree) InsertItems(items []spatialtree.Item) {
	if len(items) == 0 {
		t.keys = nil
		t.items = nil
		t.root = nil
		return
	}

	newItems := make([]spatialtree.Item, len(items))
	copy(newItems, items)

	points := make([]geom.Point, len(items))
	for i, it := range items {
		points[i] = it.Position
	}
	newKeys := spatialhash.ComputeFineKeys(t.box, points)

	perm := sortutil.SortPermutation(newKeys)
	t.keys = sortutil.ApplyPermutation(perm, newKeys)
	t.items = sortutil.ApplyPermutation(perm, newItems)

	t.rebuild()
}

func (t *Tree) rebuild() {
	if len(t.keys) == 0 {
		t.root = nil
		return
	}
	t.root = buildNode(nodekey.Root(), t.box, t.keys, t.items, t.maxLeafItems)
}

// Items returns the tree's items in hash order. The returned slice aliases
// the tree's storage.
func (t *Tree) Items() []spatialtree.Item { return t.items }

// Box returns the tree's bounding box.
func (t *Tree) Box() geom.BoundingBox { return t.box }

var _ spatialtree.Tree = (*Tree)(nil)
