package device

import (
	"iter"
	"slices"

	"github.com/ezrec/munin/internal"
	"github.com/ezrec/munin/value"
)

// Bank is a growable, index-addressed memory bank.
type Bank struct {
	Prefix byte          // Operand prefix (v, b, or i).
	Data   []value.Value // Slots, in index order.
}

// Len returns the number of slots.
func (bk *Bank) Len() int {
	return len(bk.Data)
}

// Get returns the value at index.
func (bk *Bank) Get(index int) (u uint32, err error) {
	if index < 0 || index >= len(bk.Data) {
		err = OutOfRange(ErrBankIndex)
		return
	}

	u = bk.Data[index].Uint32()
	return
}

// Put writes u at index. Writing at Len() appends a new slot.
func (bk *Bank) Put(index int, u uint32) (err error) {
	switch {
	case index == len(bk.Data):
		bk.Data = append(bk.Data, value.New(u))
	case index >= 0 && index < len(bk.Data):
		bk.Data[index].Set(u)
	default:
		err = OutOfRange(ErrBankIndex)
	}
	return
}

// Width returns the sum of the slot high-water marks, in bits.
func (bk *Bank) Width() int {
	return internal.IterSum(bk.All(), value.Value.HighWater)
}

// All iterates over the slots.
func (bk *Bank) All() iter.Seq2[int, value.Value] {
	return slices.All(bk.Data)
}

// Reset removes all slots.
func (bk *Bank) Reset() {
	if len(bk.Data) > 0 {
		bk.Data = bk.Data[:0]
	}
}
