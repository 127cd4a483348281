package device

import (
	"strings"
)

// MAX_ARGS is the most operands any instruction takes.
const MAX_ARGS = 3

// Instruction is a single decoded program line.
type Instruction struct {
	Op   Opcode           // Decoded opcode, OP_INVALID if unknown.
	Args [MAX_ARGS]string // Operand words, padded with empty strings.
	Text string           // Original line text.
}

// Decode splits a program line into an Instruction. An unknown
// mnemonic decodes to OP_INVALID; the error is deferred to execution.
func Decode(line string) (inst Instruction) {
	inst.Text = line
	words := strings.Fields(line)
	if len(words) == 0 {
		return
	}

	inst.Op = ParseOpcode(words[0])
	copy(inst.Args[:], words[1:])

	return
}

// String returns the original line text.
func (inst Instruction) String() string {
	return inst.Text
}

// Program is a loaded, read-only instruction sequence.
type Program struct {
	Instructions []Instruction
}

// NewProgram decodes final-form program lines.
func NewProgram(lines []string) (prog *Program) {
	prog = &Program{
		Instructions: make([]Instruction, len(lines)),
	}
	for n, line := range lines {
		prog.Instructions[n] = Decode(line)
	}
	return
}

// Len returns the number of instructions.
func (prog *Program) Len() int {
	if prog == nil {
		return 0
	}
	return len(prog.Instructions)
}

// Fetch returns the instruction at ip.
func (prog *Program) Fetch(ip int) (inst Instruction, err error) {
	if ip < 0 || ip >= prog.Len() {
		err = OutOfRange(ErrIpRange)
		return
	}
	inst = prog.Instructions[ip]
	return
}

// Lines returns the program text.
func (prog *Program) Lines() (lines []string) {
	if prog == nil {
		return
	}
	for _, inst := range prog.Instructions {
		lines = append(lines, inst.Text)
	}
	return
}
