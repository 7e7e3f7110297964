// Package nodekey implements the level-encoded NodeKey algebra that numbers
// nodes of the implicit 8-way octree hierarchy. A NodeKey's level is the
// position of its leading 1-bit divided by 3; the key's low bits below that
// leading 1-bit select an octant at each level down to the root.
package nodekey

import (
	"strconv"
	"strings"

	"spatialhot/spatialhash"
)

// MaxLevel is the deepest level a valid NodeKey can reach: 10 levels of 3
// bits each span the 30-bit FineKey domain.
const MaxLevel = spatialhash.BitsPerDim

// Key is a level-encoded node identifier. The root is Key(1); children of a
// node with key k are 8k+0 ... 8k+7.
type Key uint32

// Root returns the key of the tree root, covering the whole FineKey domain.
func Root() Key { return 1 }

// Children returns the 8 child keys of k, in octant order.
func Children(k Key) [8]Key {
	first := k << 3
	var out [8]Key
	for i := range out {
		out[i] = first + Key(i)
	}
	return out
}

// Level returns the level of k: 0 for the root, 1 for the root's children,
// and so on. Level is the position of k's leading 1-bit divided by 3.
func Level(k Key) int {
	level := MaxLevel
	for level > 0 {
		if k&(1<<uint(level*3)) != 0 {
			return level
		}
		level--
	}
	return level
}

// Parent returns the key of k's parent. Parent(Root()) is 0, which is not a
// valid key; callers must not call Parent on the root.
func Parent(k Key) Key { return k >> 3 }

// Octant returns the octant index (0-7) that k occupies within its parent:
// the low 3 bits of k.
func Octant(k Key) int { return int(k & 0x7) }

// RangeBegin returns the first FineKey covered by the subtree rooted at k.
func RangeBegin(k Key) spatialhash.FineKey {
	level := Level(k)
	begin := uint32(k) ^ (1 << uint(3*level))
	begin <<= uint(3 * (MaxLevel - level))
	return spatialhash.FineKey(begin)
}

// RangeEnd returns one past the last FineKey covered by the subtree rooted
// at k; [RangeBegin(k), RangeEnd(k)) is the node's half-open FineKey range.
func RangeEnd(k Key) spatialhash.FineKey {
	level := Level(k)
	end := uint32(k) ^ (1 << uint(3*level))
	end++
	end <<= uint(3 * (MaxLevel - level))
	return spatialhash.FineKey(end)
}

// Valid reports whether k is a well-formed NodeKey: nonzero, with no bits
// set above position 3*MaxLevel, and with its leading 1-bit aligned to a
// multiple-of-3 boundary (so the level triples below it are intact).
func Valid(k Key) bool {
	if k == 0 {
		return false
	}
	if k&(1<<uint(MaxLevel*3+1)) != 0 {
		return false
	}
	m := uint32(1) << uint(MaxLevel*3)
	for m > 0 {
		if uint32(k)&m != 0 {
			return true
		}
		for i := 0; i < 3; i++ {
			if uint32(k)&m != 0 {
				return false
			}
			m >>= 1
		}
	}
	return false
}

// String renders k as a 32-bit binary string, matching the diagnostic dump
// format used by the diagnostics package.
func (k Key) String() string {
	var sb strings.Builder
	for i := 31; i >= 0; i-- {
		if uint32(k)&(1<<uint(i)) != 0 {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
	}
	return sb.String()
}

// ParseKey parses a binary string produced by String back into a Key. It
// exists for test fixtures and debugging tools; the tree itself never needs
// to round-trip a key through text.
func ParseKey(s string) (Key, error) {
	v, err := strconv.ParseUint(s, 2, 32)
	if err != nil {
		return 0, err
	}
	return Key(v), nil
}
