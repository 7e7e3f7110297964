package fork

import (
	"container/heap"

	"golang.org/x/exp/constraints"

	"spatialhot/sortutil"
)

// ParallelSortPermutation computes the same result as
// sortutil.SortPermutation, but sorts independent blocks of keys
// concurrently via ForEachRange before merging them. It is the
// data-parallel analogue of the reference implementation's
// tbb::parallel_sort call in find_sort_permutation.
func ParallelSortPermutation[K constraints.Ordered](keys []K, grain int) []int {
	n := len(keys)
	if n == 0 {
		return nil
	}
	if grain <= 0 {
		grain = DefaultGrain
	}
	if grain >= n {
		return sortutil.SortPermutation(keys)
	}

	numBlocks := (n + grain - 1) / grain
	blockPerms := make([][]int, numBlocks)

	ForEachRange(n, grain, func(lo, hi int) {
		block := keys[lo:hi]
		localPerm := sortutil.SortPermutation(block)
		// Translate local indices back into the caller's global index
		// space before merging.
		for i, v := range localPerm {
			localPerm[i] = v + lo
		}
		blockPerms[lo/grain] = localPerm
	})

	return mergeSortedBlocks(keys, blockPerms)
}

// mergeEntry tracks one block's current position during the k-way merge.
type mergeEntry[K constraints.Ordered] struct {
	key       K
	block     int
	posInPerm int
}

type mergeHeap[K constraints.Ordered] []mergeEntry[K]

func (h mergeHeap[K]) Len() int            { return len(h) }
func (h mergeHeap[K]) Less(i, j int) bool  { return h[i].key < h[j].key || (h[i].key == h[j].key && h[i].block < h[j].block) }
func (h mergeHeap[K]) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *mergeHeap[K]) Push(x any)         { *h = append(*h, x.(mergeEntry[K])) }
func (h *mergeHeap[K]) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// mergeSortedBlocks k-way merges sorted permutation blocks into one
// permutation over the full key range, using a heap keyed on each block's
// next unconsumed key.
func mergeSortedBlocks[K constraints.Ordered](keys []K, blockPerms [][]int) []int {
	n := 0
	for _, bp := range blockPerms {
		n += len(bp)
	}
	result := make([]int, 0, n)

	h := make(mergeHeap[K], 0, len(blockPerms))
	for b, bp := range blockPerms {
		if len(bp) == 0 {
			continue
		}
		h = append(h, mergeEntry[K]{key: keys[bp[0]], block: b, posInPerm: 0})
	}
	heap.Init(&h)

	for h.Len() > 0 {
		top := heap.Pop(&h).(mergeEntry[K])
		bp := blockPerms[top.block]
		result = append(result, bp[top.posInPerm])
		next := top.posInPerm + 1
		if next < len(bp) {
			heap.Push(&h, mergeEntry[K]{key: keys[bp[next]], block: top.block, posInPerm: next})
		}
	}
	return result
}
