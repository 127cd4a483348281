// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package value implements the variable-width unsigned values held in the
// memory banks of the munin device.
//
// A Value stores the minimal number of bits needed for its contents, least
// significant bit first, and remembers the widest it has ever been. The
// widest width (the high-water mark) is used only for memory accounting.
package value

import (
	"math/bits"
	"strings"

	"github.com/willf/bitset"
)

// MAX_BITS is the widest value representable.
const MAX_BITS = 32

// Value is a variable-width unsigned value with a high-water mark.
// The zero Value holds 0.
type Value struct {
	bits      *bitset.BitSet
	highWater int
}

// Len returns the bit length of u. Zero is one bit long.
func Len(u uint32) int {
	return max(1, bits.Len32(u))
}

// Bits returns the minimal bit sequence of u, least significant bit first.
func Bits(u uint32) (out []bool) {
	out = make([]bool, Len(u))
	for n := range out {
		out[n] = ((u >> n) & 1) != 0
	}
	return
}

// FromBits converts a least significant bit first sequence to an integer.
// Bits past MAX_BITS are ignored.
func FromBits(in []bool) (u uint32) {
	for n, bit := range in {
		if n >= MAX_BITS {
			break
		}
		if bit {
			u |= 1 << n
		}
	}
	return
}

func toBitSet(u uint32) (bs *bitset.BitSet) {
	bs = bitset.New(uint(Len(u)))
	for n := range Len(u) {
		if ((u >> n) & 1) != 0 {
			bs.Set(uint(n))
		}
	}
	return
}

// New creates a value holding u.
func New(u uint32) (v Value) {
	v.Set(u)
	return
}

// Set replaces the contents with u, raising the high-water mark if needed.
func (v *Value) Set(u uint32) {
	v.bits = toBitSet(u)
	v.highWater = max(v.highWater, int(v.bits.Len()))
}

// Len returns the current bit length.
func (v Value) Len() int {
	if v.bits == nil {
		return 1
	}
	return int(v.bits.Len())
}

// HighWater returns the largest bit length ever held.
func (v Value) HighWater() int {
	return max(v.highWater, v.Len())
}

// Bit returns bit n, or false if n is past the current length.
func (v Value) Bit(n int) bool {
	if v.bits == nil || n < 0 {
		return false
	}
	return v.bits.Test(uint(n))
}

// Uint32 returns the integer held.
func (v Value) Uint32() (u uint32) {
	for n := range v.Len() {
		if v.Bit(n) {
			u |= 1 << n
		}
	}
	return
}

// String returns the bits, most significant first.
func (v Value) String() string {
	var sb strings.Builder
	for n := v.Len() - 1; n >= 0; n-- {
		if v.Bit(n) {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
	}
	return sb.String()
}
