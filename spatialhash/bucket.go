// Package spatialhash computes the coordinate-hashed keys used by the
// octree (FineKey, a 30-bit Morton interleave) and the wide tree (WideKey,
// an 8-bit packed code), both derived from the same periodic bucketizer.
package spatialhash

import (
	"math"

	"spatialhot/spatialerr"
)

// bucket maps x into [0, numBuckets) by folding it into [min, max) with
// wraparound, then scaling. Coordinates outside [min, max) wrap rather than
// fail: HashedOctree and WideTree must accept out-of-bounds points.
func bucket(min, max, x float64, numBuckets uint32) uint32 {
	spatialerr.Check(max <= min, "spatialhash: bucket requires max > min, got min=%v max=%v", min, max)

	width := max - min
	folded := math.Mod(x-min, width)
	if folded < 0 {
		folded += width
	}
	b := uint32(float64(numBuckets) * folded / width)
	if b >= numBuckets {
		// Folded can land exactly on width due to floating-point rounding;
		// clamp into the valid range rather than overflow the caller's key.
		b = numBuckets - 1
	}
	return b
}
