// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package value

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func FuzzValue(f *testing.F) {
	for _, seed := range []uint32{0, 1, 2, 0x80, 0x8000, 0x80000000, 0xffffffff} {
		f.Add(seed, uint32(0))
		f.Add(seed, seed>>1)
	}

	f.Fuzz(func(t *testing.T, first uint32, second uint32) {
		assert := assert.New(t)

		v := New(first)
		assert.Equal(first, v.Uint32())
		assert.Equal(Len(first), v.Len())

		v.Set(second)
		assert.Equal(second, v.Uint32())
		assert.Equal(Len(second), v.Len())
		assert.Equal(max(Len(first), Len(second)), v.HighWater())

		for n := range MAX_BITS {
			assert.Equal(((second>>n)&1) != 0, v.Bit(n))
		}
	})
}
