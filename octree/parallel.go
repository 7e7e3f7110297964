package octree

import (
	"sync"

	"spatialhot/fork"
	"spatialhot/geom"
	"spatialhot/nodekey"
	"spatialhot/spatialhash"
	"spatialhot/spatialtree"
)

// parallelBuildDepth is how many levels from the root buildNodeParallel
// spawns a goroutine per child before falling back to the sequential
// buildNode; below this depth the remaining subtrees are small enough that
// goroutine overhead would outweigh the benefit.
const parallelBuildDepth = 3

// InsertItemsParallel is the data-parallel analogue of InsertItems: it
// computes FineKeys, sorts, and applies the permutation using grain-sized
// goroutine blocks via the fork package, then builds the top few tree
// levels concurrently. It produces a tree identical to the one InsertItems
// would build from the same items.
func (t *Tree) InsertItemsParallel(items []spatialtree.Item, grain int) {
	if len(items) == 0 {
		t.keys = nil
		t.items = nil
		t.root = nil
		return
	}
	if grain <= 0 {
		grain = fork.DefaultGrain
	}

	newItems := make([]spatialtree.Item, len(items))
	copy(newItems, items)

	points := make([]geom.Point, len(items))
	fork.ForEachRange(len(items), grain, func(lo, hi int) {
		for i := lo; i < hi; i++ {
			points[i] = items[i].Position
		}
	})

	newKeys := make([]spatialhash.FineKey, len(items))
	fork.ForEachRange(len(items), grain, func(lo, hi int) {
		for i := lo; i < hi; i++ {
			newKeys[i] = spatialhash.ComputeFineKey(t.box, points[i])
		}
	})

	perm := fork.ParallelSortPermutation(newKeys, grain)

	sortedKeys := make([]spatialhash.FineKey, len(items))
	sortedItems := make([]spatialtree.Item, len(items))
	fork.ForEachRange(len(items), grain, func(lo, hi int) {
		for i := lo; i < hi; i++ {
			sortedKeys[i] = newKeys[perm[i]]
			sortedItems[i] = newItems[perm[i]]
		}
	})
	t.keys = sortedKeys
	t.items = sortedItems

	t.root = buildNodeParallel(nodekey.Root(), t.box, t.keys, t.items, t.maxLeafItems, 0)
}

// buildNodeParallel mirrors buildNode, but spawns one goroutine per
// non-empty child while within parallelBuildDepth of the root.
func buildNodeParallel(key nodekey.Key, box geom.BoundingBox, keys []spatialhash.FineKey, items []spatialtree.Item, maxLeafItems int, depth int) *Node {
	n := &Node{Key: key, Box: box, keys: keys, items: items}

	level := nodekey.Level(key)
	if level >= MaxDepth || len(keys) <= maxLeafItems {
		return n
	}

	childKeys := nodekey.Children(key)
	boundaries := partitionPointers(keys, childKeys)

	if depth >= parallelBuildDepth {
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

	var wg sync.WaitGroup
	for octant := 0; octant < 8; octant++ {
		lo, hi := boundaries[octant], boundaries[octant+1]
		if hi <= lo {
			continue
		}
		wg.Add(1)
		go func(octant, lo, hi int) {
			defer wg.Done()
			childBox := geom.ChildBox(box, octant)
			n.Children[octant] = buildNodeParallel(childKeys[octant], childBox, keys[lo:hi], items[lo:hi], maxLeafItems, depth+1)
		}(octant, lo, hi)
	}
	wg.Wait()
	return n
}

// VisitNearVerticesParallel partitions the root's children across
// goroutines, running against each a fresh visitor from visitorFactory (or
// visitor itself, shared by every goroutine, when visitorFactory is nil),
// then merges whether every sub-traversal completed. Because sub-traversals run
// concurrently, a false return from visitor only stops the subtree it was
// invoked from, not its siblings -- callers that need a true early global
// stop should use the sequential VisitNearVertices instead.
func (t *Tree) VisitNearVerticesParallel(visitor spatialtree.Visitor, position geom.Point, eps float64, visitorFactory func() spatialtree.Visitor) bool {
	if visitor == nil || t.root == nil {
		return true
	}
	if geom.LInfinity(t.box, position) > eps {
		return true
	}
	if t.root.IsLeaf() {
		return visitNode(t.root, visitor, position, eps)
	}

	var wg sync.WaitGroup
	results := make([]bool, 8)
	for octant, child := range t.root.Children {
		if child == nil {
			results[octant] = true
			continue
		}
		v := visitor
		if visitorFactory != nil {
			v = visitorFactory()
		}
		wg.Add(1)
		go func(octant int, child *Node, v spatialtree.Visitor) {
			defer wg.Done()
			if geom.LInfinity(child.Box, position) > eps {
				results[octant] = true
				return
			}
			results[octant] = visitNode(child, v, position, eps)
		}(octant, child, v)
	}
	wg.Wait()

	ok := true
	for _, r := range results {
		ok = ok && r
	}
	return ok
}
