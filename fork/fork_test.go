package fork_test

import (
	"math/rand"
	"sort"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"spatialhot/fork"
)

func TestForEachRangeCoversEveryIndexExactlyOnce(t *testing.T) {
	n := 10_003
	grain := 97
	var mu sync.Mutex
	seen := make(map[int]bool, n)

	fork.ForEachRange(n, grain, func(lo, hi int) {
		mu.Lock()
		defer mu.Unlock()
		for i := lo; i < hi; i++ {
			require.False(t, seen[i], "index %d visited twice", i)
			seen[i] = true
		}
	})

	require.Len(t, seen, n)
}

func TestForEachRangeZeroLengthDoesNothing(t *testing.T) {
	called := false
	fork.ForEachRange(0, 10, func(int, int) { called = true })
	require.False(t, called)
}

func TestForEachRangeZeroGrainRunsWholeRangeOnce(t *testing.T) {
	calls := 0
	var mu sync.Mutex
	fork.ForEachRange(5, 0, func(lo, hi int) {
		mu.Lock()
		defer mu.Unlock()
		calls++
		require.Equal(t, 0, lo)
		require.Equal(t, 5, hi)
	})
	require.Equal(t, 1, calls)
}

func TestParallelSortPermutationMatchesSequentialSort(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	keys := make([]int, 20_000)
	for i := range keys {
		keys[i] = rng.Intn(1000)
	}

	perm := fork.ParallelSortPermutation(keys, 128)
	require.Len(t, perm, len(keys))

	sorted := make([]int, len(keys))
	for i, p := range perm {
		sorted[i] = keys[p]
	}
	require.True(t, sort.IntsAreSorted(sorted))

	// Every original index appears exactly once in the permutation.
	seen := make([]bool, len(keys))
	for _, p := range perm {
		require.False(t, seen[p])
		seen[p] = true
	}
}

func TestParallelSortPermutationEmptyInput(t *testing.T) {
	require.Nil(t, fork.ParallelSortPermutation([]int(nil), 16))
}
