package spatialhash

import "spatialhot/geom"

// BitsPerDim is the number of bucket bits used per axis by the fine
// (Morton) hash. Three axes at 10 bits each fill a 30-bit FineKey.
const BitsPerDim = 10

// NumFineBuckets is the number of buckets along each axis of the fine hash,
// 2^BitsPerDim.
const NumFineBuckets = 1 << BitsPerDim

// FineKey is a 30-bit Morton-interleaved hash of a point within a bounding
// box, 10 bits per axis. Common prefix length in a FineKey corresponds to
// common octree ancestry.
type FineKey uint32

// part1By2 spreads the low 10 bits of a across bit positions 0, 3, 6, ...,
// 27, leaving zeros in between so three spread values can be OR'd together
// (shifted by 0, 1, 2) into one Morton code. Ported from the reference
// Part1By2_32 bit-twiddling sequence.
func part1By2(a uint32) uint32 {
	a &= 0x000003ff
	a = (a ^ (a << 16)) & 0xff0000ff
	a = (a ^ (a << 8)) & 0x0300f00f
	a = (a ^ (a << 4)) & 0x030c30c3
	a = (a ^ (a << 2)) & 0x09249249
	return a
}

// mortonEncode interleaves three 10-bit values into a 30-bit Morton code,
// bit i of a landing on bit 3i+0, bit i of b on bit 3i+1, bit i of c on
// bit 3i+2.
func mortonEncode(a, b, c uint32) uint32 {
	return part1By2(a) + (part1By2(b) << 1) + (part1By2(c) << 2)
}

// ComputeFineKey hashes point within bbox into a 30-bit FineKey. The
// function is total: points outside bbox wrap periodically rather than
// fault (see bucket).
func ComputeFineKey(bbox geom.BoundingBox, point geom.Point) FineKey {
	a := bucket(bbox.Min.X, bbox.Max.X, point.X, NumFineBuckets)
	b := bucket(bbox.Min.Y, bbox.Max.Y, point.Y, NumFineBuckets)
	c := bucket(bbox.Min.Z, bbox.Max.Z, point.Z, NumFineBuckets)
	return FineKey(mortonEncode(a, b, c))
}

// ComputeFineKeys hashes every point in points within bbox, in order. It is
// the batched form used by the sequential octree build
// (octree.Tree.InsertItems), and is equivalent to calling ComputeFineKey for
// each point individually.
func ComputeFineKeys(bbox geom.BoundingBox, points []geom.Point) []FineKey {
	keys := make([]FineKey, len(points))
	for i, p := range points {
		keys[i] = ComputeFineKey(bbox, p)
	}
	return keys
}
