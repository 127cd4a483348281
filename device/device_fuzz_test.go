package device

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/munin/value"
)

var fuzzOpcodes = []Opcode{
	OP_SET,
	OP_STL,
	OP_IADD,
	OP_ISUB,
	OP_BSL,
	OP_BSR,
	OP_CMP,
}

func FuzzDevice(f *testing.F) {
	for n := range fuzzOpcodes {
		f.Add(uint8(n), uint32(0), uint32(0))
		f.Add(uint8(n), uint32(0xffffffff), uint32(1))
		f.Add(uint8(n), uint32(5), uint32(31))
		f.Add(uint8(n), uint32(3), uint32(32))
	}

	f.Fuzz(func(t *testing.T, opcode uint8, a uint32, b uint32) {
		assert := assert.New(t)

		op := fuzzOpcodes[int(opcode)%len(fuzzOpcodes)]

		dev := NewDevice()
		dev.LoadLines([]string{
			fmt.Sprintf("set v0 %d", a),
			fmt.Sprintf("set v1 0x%x", b),
			fmt.Sprintf("%v v0 v1", op),
			"end",
		})
		assert.NoError(dev.SetInput(0, a))

		err := dev.Run()

		code_str := fmt.Sprintf("%v a:0x%x b:0x%x\ndevice:\n%v", op, a, b, dev)

		expected := a
		var expected_err error
		switch op {
		case OP_SET:
			expected = b
		case OP_STL:
			expected = uint32(value.Len(b))
		case OP_IADD:
			if uint64(a)+uint64(b) > 0xffffffff {
				expected_err = ErrOverflow
			} else {
				expected = a + b
			}
		case OP_ISUB:
			if b > a {
				expected_err = ErrUnderflow
			} else {
				expected = a - b
			}
		case OP_BSL:
			if b >= value.MAX_BITS {
				expected_err = ErrShiftRange
			} else {
				expected = a << b
			}
		case OP_BSR:
			if b >= value.MAX_BITS {
				expected_err = ErrShiftRange
			} else {
				expected = a >> b
			}
		case OP_CMP:
			assert.Equal(a == b, dev.Flags().Equal, code_str)
			assert.Equal(a > b, dev.Flags().Greater, code_str)
		}

		assert.False(dev.Running(), code_str)

		if expected_err != nil {
			assert.ErrorIs(err, ErrDomain, code_str)
			assert.ErrorIs(err, expected_err, code_str)
			var ee *ErrExecute
			if assert.ErrorAs(err, &ee, code_str) {
				assert.Equal(2, ee.Ip, code_str)
			}
			return
		}

		if !assert.NoError(err, code_str) {
			return
		}

		v0, err := dev.Load("v0")
		assert.NoError(err)
		assert.Equal(expected, v0, code_str)
		assert.Equal(4, dev.Ticks(), code_str)

		fp := dev.Footprint()
		assert.Equal(value.Len(a), fp.Inputs, code_str)
		assert.Equal(FLAGS_WIDTH, fp.Flags, code_str)
	})
}
