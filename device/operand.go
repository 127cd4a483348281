package device

import (
	"strconv"
	"strings"
)

// Operand bank prefixes.
const (
	PREFIX_VARIABLE = 'v'
	PREFIX_BIT      = 'b'
	PREFIX_INPUT    = 'i'
)

// Operand is a decoded instruction operand: either a bank reference
// or an immediate value.
type Operand struct {
	Bank  byte   // Bank prefix, or 0 for an immediate.
	Index int    // Bank index.
	Value uint32 // Immediate value.
}

// IsBank returns true if the operand refers to a memory bank.
func (op Operand) IsBank() bool {
	return op.Bank != 0
}

// ParseOperand decodes an operand word.
//
//   - v<N>, b<N>, i<N> are bank references with a decimal index.
//   - 0x<hex> is a hexadecimal immediate.
//   - anything else is a decimal immediate, truncated to 32 bits.
func ParseOperand(word string) (op Operand, err error) {
	defer func() {
		if err != nil {
			err = Syntax(&ErrOperand{Operand: word, Err: err})
		}
	}()

	if len(word) == 0 {
		err = ErrOperandMissing
		return
	}

	switch word[0] {
	case PREFIX_VARIABLE, PREFIX_BIT, PREFIX_INPUT:
		var index uint64
		index, err = strconv.ParseUint(word[1:], 10, 31)
		if err != nil {
			err = ErrOperandInvalid
			return
		}
		op.Bank = word[0]
		op.Index = int(index)
		return
	}

	if hex, ok := strings.CutPrefix(word, "0x"); ok {
		var u64 uint64
		u64, err = strconv.ParseUint(hex, 16, 32)
		if err != nil {
			err = ErrOperandInvalid
			return
		}
		op.Value = uint32(u64)
		return
	}

	i64, err := strconv.ParseInt(word, 10, 64)
	if err != nil {
		err = ErrOperandInvalid
		return
	}
	op.Value = uint32(i64)

	return
}

// String returns the operand in source form.
func (op Operand) String() string {
	if op.IsBank() {
		return string(op.Bank) + strconv.Itoa(op.Index)
	}
	return strconv.FormatUint(uint64(op.Value), 10)
}
