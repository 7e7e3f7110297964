package sortutil_test

import (
	"math/rand"
	"sort"
	"testing"

	"github.com/stretchr/testify/require"

	"spatialhot/sortutil"
)

func TestSortPermutationProducesAscendingOrder(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	keys := make([]int, 500)
	for i := range keys {
		keys[i] = rng.Intn(50)
	}
	perm := sortutil.SortPermutation(keys)
	sorted := sortutil.ApplyPermutation(perm, keys)
	require.True(t, sort.IntsAreSorted(sorted))
}

func TestSortPermutationIsStable(t *testing.T) {
	type entry struct {
		key  int
		orig int
	}
	keys := []int{1, 1, 1, 0, 0, 2}
	perm := sortutil.SortPermutation(keys)

	entries := make([]entry, len(keys))
	for i, p := range perm {
		entries[i] = entry{key: keys[p], orig: p}
	}

	// Within each equal-key run, original indices must stay ascending.
	for i := 1; i < len(entries); i++ {
		if entries[i].key == entries[i-1].key {
			require.Less(t, entries[i-1].orig, entries[i].orig)
		}
	}
}

func TestApplyPermutationIsGatherForm(t *testing.T) {
	in := []string{"a", "b", "c"}
	perm := []int{2, 0, 1}
	out := sortutil.ApplyPermutation(perm, in)
	require.Equal(t, []string{"c", "a", "b"}, out)
}

func TestCountingSort256MatchesGenericSortPermutation(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	keys := make([]uint8, 2000)
	for i := range keys {
		keys[i] = uint8(rng.Intn(256))
	}

	genericPerm := sortutil.SortPermutation(keys)
	wantSorted := sortutil.ApplyPermutation(genericPerm, keys)

	perm, table := sortutil.CountingSort256(keys)
	gotSorted := sortutil.ApplyPermutation(perm, keys)

	require.Equal(t, wantSorted, gotSorted)
	require.Equal(t, len(keys), table[256])
	require.Equal(t, 0, table[0])

	for k := 0; k < 256; k++ {
		require.LessOrEqual(t, table[k], table[k+1])
		for i := table[k]; i < table[k+1]; i++ {
			require.Equal(t, uint8(k), gotSorted[i])
		}
	}
}

func TestCountingSort256IsStable(t *testing.T) {
	keys := []uint8{5, 5, 5, 1, 1, 9}
	perm, _ := sortutil.CountingSort256(keys)

	var lastIdxForKey5 = -1
	for _, p := range perm {
		if keys[p] == 5 {
			require.Greater(t, p, lastIdxForKey5)
			lastIdxForKey5 = p
		}
	}
}
