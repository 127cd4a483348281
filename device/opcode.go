package device

import (
	"fmt"
)

// Opcode is a final-form instruction mnemonic.
type Opcode int

const (
	OP_INVALID = Opcode(iota) // ?
	OP_NON                    // non
	OP_SET                    // set
	OP_STL                    // stl
	OP_STNB                   // stnb
	OP_IADD                   // iadd
	OP_ISUB                   // isub
	OP_BADD                   // badd
	OP_BADC                   // badc
	OP_BSUB                   // bsub
	OP_BSBU                   // bsbu
	OP_BSL                    // bsl
	OP_BSR                    // bsr
	OP_CLF                    // clf
	OP_CMP                    // cmp
	OP_JMP                    // jmp
	OP_JON                    // jon
	OP_END                    // end
)

var opcodeName = [...]string{
	OP_INVALID: "?",
	OP_NON:     "non",
	OP_SET:     "set",
	OP_STL:     "stl",
	OP_STNB:    "stnb",
	OP_IADD:    "iadd",
	OP_ISUB:    "isub",
	OP_BADD:    "badd",
	OP_BADC:    "badc",
	OP_BSUB:    "bsub",
	OP_BSBU:    "bsbu",
	OP_BSL:     "bsl",
	OP_BSR:     "bsr",
	OP_CLF:     "clf",
	OP_CMP:     "cmp",
	OP_JMP:     "jmp",
	OP_JON:     "jon",
	OP_END:     "end",
}

// opcodeArgs is the number of operands each opcode requires.
var opcodeArgs = [...]int{
	OP_INVALID: 0,
	OP_NON:     0,
	OP_SET:     2,
	OP_STL:     2,
	OP_STNB:    3,
	OP_IADD:    2,
	OP_ISUB:    2,
	OP_BADD:    2,
	OP_BADC:    2,
	OP_BSUB:    2,
	OP_BSBU:    2,
	OP_BSL:     2,
	OP_BSR:     2,
	OP_CLF:     0,
	OP_CMP:     2,
	OP_JMP:     1,
	OP_JON:     0,
	OP_END:     0,
}

var opcodeMap map[string]Opcode

func init() {
	opcodeMap = make(map[string]Opcode, len(opcodeName))
	for op, name := range opcodeName {
		if Opcode(op) == OP_INVALID {
			continue
		}
		opcodeMap[name] = Opcode(op)
	}
}

// ParseOpcode returns the opcode for a mnemonic, or OP_INVALID.
func ParseOpcode(word string) Opcode {
	op, ok := opcodeMap[word]
	if !ok {
		return OP_INVALID
	}
	return op
}

func (op Opcode) String() string {
	if op < 0 || int(op) >= len(opcodeName) {
		return fmt.Sprintf("Opcode(%d)", int(op))
	}
	return opcodeName[op]
}

// Args returns the number of operands the opcode requires.
func (op Opcode) Args() int {
	if op < 0 || int(op) >= len(opcodeArgs) {
		return 0
	}
	return opcodeArgs[op]
}

// Cond is a jon condition code.
type Cond int

const (
	COND_ALWAYS        = Cond(iota) // (empty)
	COND_EQUAL                      // e
	COND_NOT_EQUAL                  // ne
	COND_GREATER                    // g
	COND_GREATER_EQUAL              // ge
	COND_LESS                       // l
	COND_LESS_EQUAL                 // le
	COND_CARRY                      // c
	COND_NO_CARRY                   // nc
	COND_UNDERFLOW                  // u
	COND_NO_UNDERFLOW               // nu
)

var condName = [...]string{
	COND_ALWAYS:        "",
	COND_EQUAL:         "e",
	COND_NOT_EQUAL:     "ne",
	COND_GREATER:       "g",
	COND_GREATER_EQUAL: "ge",
	COND_LESS:          "l",
	COND_LESS_EQUAL:    "le",
	COND_CARRY:         "c",
	COND_NO_CARRY:      "nc",
	COND_UNDERFLOW:     "u",
	COND_NO_UNDERFLOW:  "nu",
}

// ParseCond returns the condition for a condition code.
func ParseCond(word string) (cond Cond, err error) {
	for n, name := range condName {
		if name == word {
			cond = Cond(n)
			return
		}
	}

	err = Domain(&ErrOperand{Operand: word, Err: ErrCondInvalid})
	return
}

func (cond Cond) String() string {
	if cond < 0 || int(cond) >= len(condName) {
		return fmt.Sprintf("Cond(%d)", int(cond))
	}
	return condName[cond]
}

// Phase is the device permission mode.
type Phase int

//go:generate go tool stringer -linecomment -type=Phase
const (
	PHASE_IDLE      = Phase(iota) // idle
	PHASE_INPUT                   // input
	PHASE_EXECUTION               // execution
)
