package widetree

import (
	"sync"

	"spatialhot/fork"
	"spatialhot/geom"
	"spatialhot/sortutil"
	"spatialhot/spatialhash"
	"spatialhot/spatialtree"
)

// parallelBuildDepth is how many grid levels from the root
// buildNodeParallel spawns goroutines per populated cell before falling
// back to the sequential buildNode.
const parallelBuildDepth = 1

// InsertItemsParallel is the data-parallel analogue of InsertItems: the top
// parallelBuildDepth levels of the grid split across goroutines, one per
// populated cell, before falling back to the sequential build.
func (t *Tree) InsertItemsParallel(items []spatialtree.Item, grain int) {
	if len(items) == 0 {
		t.items = nil
		t.root = nil
		return
	}
	if grain <= 0 {
		grain = fork.DefaultGrain
	}
	newItems := make([]spatialtree.Item, len(items))
	copy(newItems, items)

	t.root = buildNodeParallel(t.box, newItems, t.maxLeafItems, 0)
	t.items = t.root.items
}

func buildNodeParallel(box geom.BoundingBox, items []spatialtree.Item, maxLeafItems, depth int) *Node {
	if depth >= parallelBuildDepth {
		return buildNode(box, items, maxLeafItems, depth)
	}

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
	sortedItems := items
	copy(sortedItems, sortutil.ApplyPermutation(perm, items))
	n.items = sortedItems

	var wg sync.WaitGroup
	for cell := 0; cell < numCells; cell++ {
		lo, hi := table[cell], table[cell+1]
		if hi <= lo {
			continue
		}
		a := (cell >> 5) & 0x7
		b := (cell >> 2) & 0x7
		c := cell & 0x3
		childBox := geom.WideChildBox(box, a, b, c)
		wg.Add(1)
		go func(cell int, childBox geom.BoundingBox, chunk []spatialtree.Item) {
			defer wg.Done()
			n.Children[cell] = buildNodeParallel(childBox, chunk, maxLeafItems, depth+1)
		}(cell, childBox, sortedItems[lo:hi])
	}
	wg.Wait()
	return n
}

// VisitNearVerticesParallel partitions the root's populated cells across
// goroutines. As with octree.Tree.VisitNearVerticesParallel, a false
// return from visitor only stops the subtree it was invoked from.
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
	results := make([]bool, numCells)
	for i := range results {
		results[i] = true
	}
	for cell, child := range t.root.Children {
		if child == nil {
			continue
		}
		if geom.LInfinity(child.Box, position) > eps {
			continue
		}
		v := visitor
		if visitorFactory != nil {
			v = visitorFactory()
		}
		wg.Add(1)
		go func(cell int, child *Node, v spatialtree.Visitor) {
			defer wg.Done()
			results[cell] = visitNode(child, v, position, eps)
		}(cell, child, v)
	}
	wg.Wait()

	ok := true
	for _, r := range results {
		ok = ok && r
	}
	return ok
}
