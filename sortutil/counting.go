package sortutil

// CountingSort256 stably sorts by an 8-bit key without comparisons. It
// returns a permutation p such that keys[p[0]], keys[p[1]], ... is sorted
// ascending (apply it with ApplyPermutation, consistent with
// SortPermutation's output shape), plus a 257-entry partition table where
// table[k] is the index into the sorted order of the first item with key
// >= k. table[256] is always len(keys).
func CountingSort256(keys []uint8) (perm []int, table [257]int) {
	var counts [256]int
	for _, k := range keys {
		counts[k]++
	}

	table[0] = 0
	for k := 0; k < 256; k++ {
		table[k+1] = table[k] + counts[k]
	}

	// cursor[k] starts at table[k], the first free sorted slot for key k,
	// and advances as items with that key are placed.
	cursor := table
	perm = make([]int, len(keys))
	for i, k := range keys {
		perm[cursor[k]] = i
		cursor[k]++
	}
	return perm, table
}
