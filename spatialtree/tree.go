// Package spatialtree defines the polymorphic surface shared by the octree
// and wide-tree engines: the Item payload, the near-vertex Visitor, and the
// Tree interface both engines implement. The benchmark CLI and the
// cross-engine tests construct a concrete octree or widetree engine and run
// their queries through this surface.
package spatialtree

import "spatialhot/geom"

// Item pairs a point with an opaque, caller-owned payload. Trees never
// interpret Data; it is carried through hashing, sorting, and querying
// unchanged.
type Item struct {
	Position geom.Point
	Data     any
}

// Visitor is invoked once per item matched by a near-vertex query. It
// returns true to continue the traversal, false to stop it early. A nil
// Visitor is treated as having already seen everything it needs to: queries
// against a nil Visitor return true (ran to completion) without visiting
// any item.
type Visitor func(item *Item) bool

// Tree is the shared surface over the two spatial-sort tree engines.
//
// InsertItems is destructive: each call replaces the tree's current
// contents. There is no incremental insertion and no thread-safety across
// InsertItems and any other concurrent call on the same Tree value.
// VisitNearVertices performs no mutation and is safe to call concurrently
// with other VisitNearVertices calls on the same Tree.
type Tree interface {
	// InsertItems replaces the tree's contents with items, reordering them
	// into the engine's internal build order as a side effect of the bulk
	// build. Implementations may leave a range that never split unsorted;
	// see the concrete type's own doc for the exact guarantee.
	InsertItems(items []Item)

	// Items returns the tree's internally reordered item slice. The
	// returned slice aliases the tree's storage and must not be retained
	// across a subsequent InsertItems call.
	Items() []Item

	// VisitNearVertices invokes visitor for every item within L-infinity
	// distance eps of position, stopping early if visitor returns false.
	// It returns true if the traversal ran to completion, false if a
	// visitor call stopped it.
	VisitNearVertices(visitor Visitor, position geom.Point, eps float64) bool

	// NumNodes returns the number of nodes in the built tree, 0 if empty.
	NumNodes() int

	// Depth returns the tree's depth (1 for a single leaf), 0 if empty.
	Depth() int

	// Size returns an approximate byte footprint of the tree's owned
	// storage (nodes plus the item and key buffers).
	Size() int
}
