// Package genpoints generates deterministic pseudo-random points and
// spatial-tree items for tests and the vertexdedup benchmark CLI. Streams
// are derived from a small (seed, index) pair via xxh3 rather than a
// stateful PRNG, so a given (seed, n) always reproduces the same points
// regardless of how many goroutines request them or in what order.
package genpoints

import (
	"encoding/binary"
	"math"

	iradix "github.com/hashicorp/go-immutable-radix"
	"github.com/zeebo/xxh3"

	"spatialhot/geom"
	"spatialhot/spatialtree"
)

// Point derives a deterministic point within bbox for index i under seed,
// by hashing (seed, i) three times (once per axis) with xxh3 and mapping
// the 64-bit digest into [0, 1) before scaling into the box.
func Point(bbox geom.BoundingBox, seed uint64, i int) geom.Point {
	return geom.Point{
		X: scale(bbox.Min.X, bbox.Max.X, axisHash(seed, i, 0)),
		Y: scale(bbox.Min.Y, bbox.Max.Y, axisHash(seed, i, 1)),
		Z: scale(bbox.Min.Z, bbox.Max.Z, axisHash(seed, i, 2)),
	}
}

// axisHash hashes (seed, i, axis) into a 64-bit digest with xxh3, writing
// each field as a fixed-width little-endian block so the digest depends on
// all three independently (the same construction HashWithSeed in the
// teacher's bit-string package uses: seed, then a size/discriminator field,
// then the payload).
func axisHash(seed uint64, i int, axis int) uint64 {
	h := xxh3.New()

	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], seed)
	h.Write(buf[:])

	binary.LittleEndian.PutUint64(buf[:], uint64(int64(i)))
	h.Write(buf[:])

	h.Write([]byte{byte(axis)})

	return h.Sum64()
}

// scale maps a uniformly distributed 64-bit digest into [min, max).
func scale(min, max float64, digest uint64) float64 {
	const denom = float64(1 << 63 << 1) // 2^64, computed without overflowing a float64 literal
	frac := float64(digest) / denom
	return min + frac*(max-min)
}

// Points generates n deterministic points within bbox under seed.
func Points(bbox geom.BoundingBox, seed uint64, n int) []geom.Point {
	points := make([]geom.Point, n)
	for i := range points {
		points[i] = Point(bbox, seed, i)
	}
	return points
}

// Items generates n deterministic spatial-tree items within bbox under
// seed; each item's Data is its generation index.
func Items(bbox geom.BoundingBox, seed uint64, n int) []spatialtree.Item {
	items := make([]spatialtree.Item, n)
	for i := range items {
		items[i] = spatialtree.Item{Position: Point(bbox, seed, i), Data: i}
	}
	return items
}

// UniqueItems generates n deterministic spatial-tree items within bbox
// under seed, guaranteeing that no two items share an exact coordinate
// triple: collisions (rare, but possible with points this dense) are
// re-rolled by re-hashing with an incrementing salt. Membership is tracked
// in an immutable radix tree keyed on the big-endian encoding of the
// coordinate triple, the same index-by-encoded-key pattern the teacher's
// locator packages use for membership tracking during key generation.
func UniqueItems(bbox geom.BoundingBox, seed uint64, n int) []spatialtree.Item {
	seen := iradix.New()
	items := make([]spatialtree.Item, 0, n)

	for i := 0; i < n; i++ {
		salt := 0
		for {
			p := Point(bbox, seed+uint64(salt)*0x9e3779b97f4a7c15, i)
			key := encodePoint(p)
			var inserted bool
			seen, _, inserted = insertIfAbsent(seen, key)
			if inserted {
				items = append(items, spatialtree.Item{Position: p, Data: i})
				break
			}
			salt++
		}
	}
	return items
}

func insertIfAbsent(tree *iradix.Tree, key []byte) (*iradix.Tree, interface{}, bool) {
	if _, found := tree.Get(key); found {
		return tree, nil, false
	}
	newTree, _, _ := tree.Insert(key, struct{}{})
	return newTree, nil, true
}

// encodePoint renders p as a 24-byte big-endian key suitable for exact
// radix-tree membership tracking.
func encodePoint(p geom.Point) []byte {
	var buf [24]byte
	binary.BigEndian.PutUint64(buf[0:8], math.Float64bits(p.X))
	binary.BigEndian.PutUint64(buf[8:16], math.Float64bits(p.Y))
	binary.BigEndian.PutUint64(buf[16:24], math.Float64bits(p.Z))
	return buf[:]
}
