// Package fork provides the fork/join work-partitioning primitive the
// parallel build and query paths are expressed over: given a half-open
// index range and a grain size, run a kernel over disjoint sub-ranges on a
// pool of goroutines, returning only once every sub-range has completed.
package fork

import "sync"

// DefaultGrain is the sub-range size used when a caller doesn't have a
// more specific one in mind, matching the 1<<10 block size the reference
// implementation uses for both key computation and permutation application.
const DefaultGrain = 1 << 10

// ForEachRange partitions [0, n) into blocks of at most grain items and
// invokes kernel(lo, hi) for each block on its own goroutine, blocking
// until every block has completed. Blocks run in unspecified order and
// relative timing; kernel must not assume anything about which blocks run
// concurrently with which. If n <= 0, ForEachRange returns immediately
// without invoking kernel. If grain <= 0, the whole range runs as one
// block on the calling goroutine.
func ForEachRange(n, grain int, kernel func(lo, hi int)) {
	if n <= 0 {
		return
	}
	if grain <= 0 || grain >= n {
		kernel(0, n)
		return
	}

	var wg sync.WaitGroup
	for lo := 0; lo < n; lo += grain {
		hi := lo + grain
		if hi > n {
			hi = n
		}
		wg.Add(1)
		go func(lo, hi int) {
			defer wg.Done()
			kernel(lo, hi)
		}(lo, hi)
	}
	wg.Wait()
}
