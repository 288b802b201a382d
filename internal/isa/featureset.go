// Package isa models hardware ISA capabilities as fixed-width bit vectors
// and resolves cross-feature dependencies. The bit layout mirrors the Linux
// capability words (HWCAP in word 0, HWCAP2 in word 1) so that detected
// capability vectors can be loaded directly; word 2 holds synthetic bits
// with no hardware counterpart (architecture revisions and the like).
package isa

import (
	"math/bits"
	"strconv"
	"strings"
)

// Words is the number of 32-bit words in a FeatureSet.
const Words = 3

// FeatureSet is a fixed-width bit vector with one bit per named feature.
// Bits outside an architecture's declared mask are reserved and stay zero.
type FeatureSet [Words]uint32

// Set returns a FeatureSet with the given bits set.
func Set(bits ...uint32) FeatureSet {
	var s FeatureSet
	for _, b := range bits {
		s.SetBit(b, true)
	}
	return s
}

// Test reports whether bit is set.
func (s FeatureSet) Test(bit uint32) bool {
	if bit >= 32*Words {
		return false
	}
	return s[bit/32]&(1<<(bit%32)) != 0
}

// SetBit sets or clears a single bit in place.
func (s *FeatureSet) SetBit(bit uint32, on bool) {
	if bit >= 32*Words {
		return
	}
	if on {
		s[bit/32] |= 1 << (bit % 32)
	} else {
		s[bit/32] &^= 1 << (bit % 32)
	}
}

// Union returns the bitwise OR of s and o.
func (s FeatureSet) Union(o FeatureSet) FeatureSet {
	for i := range s {
		s[i] |= o[i]
	}
	return s
}

// Intersect returns the bitwise AND of s and o.
func (s FeatureSet) Intersect(o FeatureSet) FeatureSet {
	for i := range s {
		s[i] &= o[i]
	}
	return s
}

// AndNot returns the bits of s that are not in o.
func (s FeatureSet) AndNot(o FeatureSet) FeatureSet {
	for i := range s {
		s[i] &^= o[i]
	}
	return s
}

// Mask ANDs m into s in place.
func (s *FeatureSet) Mask(m FeatureSet) {
	for i := range s {
		s[i] &= m[i]
	}
}

// SubsetOf reports whether every bit of s is also set in o.
func (s FeatureSet) SubsetOf(o FeatureSet) bool {
	for i := range s {
		if s[i]&^o[i] != 0 {
			return false
		}
	}
	return true
}

// IsZero reports whether no bit is set.
func (s FeatureSet) IsZero() bool {
	return s == FeatureSet{}
}

// Count returns the number of set bits.
func (s FeatureSet) Count() int {
	n := 0
	for _, w := range s {
		n += bits.OnesCount32(w)
	}
	return n
}

// FirstDiff returns the lowest bit set in s but not in o, or false when s is
// a subset of o. Used to name the blocking feature in match diagnostics.
func (s FeatureSet) FirstDiff(o FeatureSet) (uint32, bool) {
	for i := range s {
		if d := s[i] &^ o[i]; d != 0 {
			return uint32(i*32 + bits.TrailingZeros32(d)), true
		}
	}
	return 0, false
}

// String renders the set as a comma-separated bit list; mainly for tests
// and debug logging. Feature names are the Arch's concern.
func (s FeatureSet) String() string {
	var parts []string
	for b := uint32(0); b < 32*Words; b++ {
		if s.Test(b) {
			parts = append(parts, strconv.FormatUint(uint64(b), 10))
		}
	}
	if len(parts) == 0 {
		return "{}"
	}
	return "{" + strings.Join(parts, ",") + "}"
}
