// Package sortutil provides the sort-permutation and counting-sort
// primitives shared by the octree and wide-tree build paths: computing the
// permutation that orders a key slice, applying a permutation out-of-place,
// and a fixed 8-bit-radix counting sort that also yields a partition table.
package sortutil

import (
	"sort"

	"golang.org/x/exp/constraints"
)

// SortPermutation returns a stable permutation p of [0, len(keys)) such
// that keys[p[i]] <= keys[p[i+1]] for all i. It is the sequential analogue
// of a parallel sort-by-index: the permutation, not the keys themselves, is
// what gets sorted, so the same permutation can subsequently be applied to
// any number of parallel arrays (keys, items, ...).
func SortPermutation[K constraints.Ordered](keys []K) []int {
	p := make([]int, len(keys))
	for i := range p {
		p[i] = i
	}
	sort.SliceStable(p, func(i, j int) bool {
		return keys[p[i]] < keys[p[j]]
	})
	return p
}

// ApplyPermutation returns a new slice b with b[i] = in[perm[i]]. perm must
// have the same length as in.
func ApplyPermutation[T any](perm []int, in []T) []T {
	out := make([]T, len(in))
	for i, p := range perm {
		out[i] = in[p]
	}
	return out
}
