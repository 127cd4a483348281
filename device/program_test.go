package device

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecode(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		line string
		inst Instruction
	}){
		{"set v0 3", Instruction{OP_SET, [MAX_ARGS]string{"v0", "3", ""}, "set v0 3"}},
		{"  stnb  v1 v2\t4 ", Instruction{OP_STNB, [MAX_ARGS]string{"v1", "v2", "4"}, "  stnb  v1 v2\t4 "}},
		{"jon", Instruction{OP_JON, [MAX_ARGS]string{}, "jon"}},
		{"end", Instruction{OP_END, [MAX_ARGS]string{}, "end"}},
		{"", Instruction{OP_INVALID, [MAX_ARGS]string{}, ""}},
		{"frob a b", Instruction{OP_INVALID, [MAX_ARGS]string{"a", "b", ""}, "frob a b"}},
		{"set a b c d e", Instruction{OP_SET, [MAX_ARGS]string{"a", "b", "c"}, "set a b c d e"}},
	}

	for _, entry := range table {
		assert.Equal(entry.inst, Decode(entry.line), entry.line)
	}
}

func TestProgram(t *testing.T) {
	assert := assert.New(t)

	lines := []string{"set v0 1", "non", "end"}
	prog := NewProgram(lines)

	assert.Equal(3, prog.Len())
	assert.Equal(lines, prog.Lines())

	inst, err := prog.Fetch(2)
	assert.NoError(err)
	assert.Equal(OP_END, inst.Op)
	assert.Equal("end", inst.String())
}

func TestProgram_Fetch_Range(t *testing.T) {
	assert := assert.New(t)

	prog := NewProgram([]string{"end"})

	_, err := prog.Fetch(1)
	assert.ErrorIs(err, ErrOutOfRange)
	assert.ErrorIs(err, ErrIpRange)

	_, err = prog.Fetch(-1)
	assert.ErrorIs(err, ErrIpRange)
}

func TestProgram_Nil(t *testing.T) {
	assert := assert.New(t)

	var prog *Program
	assert.Equal(0, prog.Len())
	assert.Nil(prog.Lines())

	_, err := prog.Fetch(0)
	assert.ErrorIs(err, ErrIpRange)
}
