package spatialhash

import (
	"math"

	"spatialhot/geom"
)

// WideKey is an 8-bit code packing an (a:3, b:3, c:2) bucket triple as
// a<<5 | b<<2 | c, partitioning a box into an 8x8x4 grid of cells.
type WideKey uint8

// ComputeWideKey hashes point within bbox into a WideKey.
func ComputeWideKey(bbox geom.BoundingBox, point geom.Point) WideKey {
	a := bucket(bbox.Min.X, bbox.Max.X, point.X, 8)
	b := bucket(bbox.Min.Y, bbox.Max.Y, point.Y, 8)
	c := bucket(bbox.Min.Z, bbox.Max.Z, point.Z, 4)
	return WideKey(a<<5 | b<<2 | c)
}

// ComputeWideKeysStrided hashes n points packed into locations at the given
// stride (locations[i*stride], locations[i*stride+1], locations[i*stride+2]
// give the x, y, z of point i), precomputing each axis width once instead of
// recomputing bbox.Max-bbox.Min per point. It is equivalent to calling
// ComputeWideKey for each point -- including periodic wraparound for points
// outside bbox -- and is the entry point the wide-tree build uses on a
// node's own item sub-range.
func ComputeWideKeysStrided(bbox geom.BoundingBox, locations []float64, stride int) []WideKey {
	n := len(locations) / stride
	keys := make([]WideKey, n)
	widthX := bbox.Max.X - bbox.Min.X
	widthY := bbox.Max.Y - bbox.Min.Y
	widthZ := bbox.Max.Z - bbox.Min.Z
	for i := 0; i < n; i++ {
		l := locations[i*stride:]
		a := wideBucketFast(l[0], bbox.Min.X, widthX, 8)
		b := wideBucketFast(l[1], bbox.Min.Y, widthY, 8)
		c := wideBucketFast(l[2], bbox.Min.Z, widthZ, 4)
		keys[i] = WideKey(a<<5 | b<<2 | c)
	}
	return keys
}

// wideBucketFast is the batched counterpart of bucket, taking a precomputed
// axis width instead of recomputing max-min on every call. It wraps
// out-of-range coordinates the same way bucket does -- points outside bbox
// must fold rather than clamp, so ComputeWideKeysStrided agrees with
// ComputeWideKey point-for-point regardless of containment.
func wideBucketFast(x, min, width float64, numBuckets uint32) uint32 {
	folded := math.Mod(x-min, width)
	if folded < 0 {
		folded += width
	}
	b := uint32(float64(numBuckets) * folded / width)
	if b >= numBuckets {
		b = numBuckets - 1
	}
	return b
}
