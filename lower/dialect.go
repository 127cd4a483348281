package lower

import (
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/ezrec/munin/device"
)

// Rule lowers the padded tokens of one source line to an output line.
type Rule func(tokens []string, labels map[string]int) (line string, err error)

// Dialect is a mnemonic translation table.
type Dialect struct {
	Name  string          // Dialect name.
	Label string          // Label declaration keyword.
	NoOp  string          // Emitted for blank lines and label declarations.
	End   string          // Appended terminator.
	Rules map[string]Rule // Rules, by first source token.
}

// condMap maps source condition words to device condition codes.
var condMap = map[string]device.Cond{
	"":                 device.COND_ALWAYS,
	"equal":            device.COND_EQUAL,
	"not-equal":        device.COND_NOT_EQUAL,
	"greater":          device.COND_GREATER,
	"greater-or-equal": device.COND_GREATER_EQUAL,
	"less":             device.COND_LESS,
	"less-or-equal":    device.COND_LESS_EQUAL,
	"carry":            device.COND_CARRY,
	"no-carry":         device.COND_NO_CARRY,
	"borrow":           device.COND_UNDERFLOW,
	"no-borrow":        device.COND_NO_UNDERFLOW,
	"underflow":        device.COND_UNDERFLOW,
	"no-underflow":     device.COND_NO_UNDERFLOW,
}

// Assembly lowers source text to the final device mnemonics.
var Assembly = &Dialect{
	Name:  "assembly",
	Label: "label",
	NoOp:  device.OP_NON.String(),
	End:   device.OP_END.String(),
	Rules: map[string]Rule{
		"set":          ruleSet(device.OP_SET.String(), device.OP_STL.String(), device.OP_STNB.String()),
		"int-add":      ruleInto(device.OP_IADD.String()),
		"int-subtract": ruleInto(device.OP_ISUB.String()),
		"bit-add":      ruleIntoWith(device.OP_BADD.String(), device.OP_BADC.String(), "with-carry"),
		"bit-subtract": ruleIntoWith(device.OP_BSUB.String(), device.OP_BSBU.String(), "with-borrow"),
		"shift":        ruleShift(device.OP_BSL.String(), device.OP_BSR.String()),
		"go-to":        ruleJump(device.OP_JMP.String()),
		"compare":      ruleCompare(device.OP_CMP.String()),
		"clear-flags":  ruleWord(device.OP_CLF.String()),
		"skip-next-if": ruleSkip(device.OP_JON.String(), func(word string) (code string, err error) {
			cond, ok := condMap[word]
			if !ok {
				err = device.Domain(&device.ErrOperand{Operand: word, Err: device.ErrCondInvalid})
				return
			}
			code = cond.String()
			return
		}),
	},
}

// Verbose lowers source text to the human readable mnemonics.
var Verbose = &Dialect{
	Name:  "verbose",
	Label: "declare-jump-point",
	NoOp:  "do-nothing",
	End:   "end",
	Rules: map[string]Rule{
		"set":          ruleSet("set", "set-to-length-of", "set-to-nth-bit"),
		"int-add":      ruleInto("int-add"),
		"int-subtract": ruleInto("int-subtract"),
		"bit-add":      ruleIntoWith("bit-add", "bit-add-with-carry", "with-carry"),
		"bit-subtract": ruleIntoWith("bit-subtract", "bit-subtract-with-borrow", "with-borrow"),
		"shift":        ruleShift("bit-shift-left", "bit-shift-right"),
		"go-to":        ruleJump("jump-to"),
		"compare":      ruleCompare("compare"),
		"clear-flags":  ruleWord("clear-flags"),
		"skip-next-if": ruleSkip("jump-over-next-if", func(word string) (string, error) {
			return word, nil
		}),
	},
}

var dialects = map[string]*Dialect{
	Assembly.Name: Assembly,
	Verbose.Name:  Verbose,
}

// DialectByName returns the named dialect. The empty name selects Assembly.
func DialectByName(name string) (dialect *Dialect, err error) {
	if len(name) == 0 {
		dialect = Assembly
		return
	}

	dialect, ok := dialects[name]
	if !ok {
		err = &device.ErrOperand{Operand: name, Err: ErrDialectUnknown}
		return
	}

	return
}

// DialectNames returns the sorted names of all dialects.
func DialectNames() []string {
	return slices.Sorted(maps.Keys(dialects))
}

// emit joins an opcode and its operands into an output line.
func emit(op string, args ...string) string {
	words := []string{op}
	for _, arg := range args {
		if len(arg) > 0 {
			words = append(words, arg)
		}
	}
	return strings.Join(words, " ")
}

// operands checks that the tokens at each index are present.
func operands(tokens []string, index ...int) (err error) {
	for _, n := range index {
		if len(tokens[n]) == 0 {
			err = device.Syntax(device.ErrOperandMissing)
			return
		}
	}
	return
}

// ruleSet lowers
//
//	set D to S
//	set D to length-of S
//	set D to bit N of S
func ruleSet(set, length, nth string) Rule {
	return func(tokens []string, _ map[string]int) (line string, err error) {
		switch tokens[3] {
		case "length-of":
			err = operands(tokens, 1, 4)
			line = emit(length, tokens[1], tokens[4])
		case "bit":
			err = operands(tokens, 1, 4, 6)
			line = emit(nth, tokens[1], tokens[6], tokens[4])
		default:
			err = operands(tokens, 1, 3)
			line = emit(set, tokens[1], tokens[3])
		}
		return
	}
}

// ruleInto lowers 'OP S to D' and 'OP S from D' to 'op D S'.
func ruleInto(op string) Rule {
	return func(tokens []string, _ map[string]int) (line string, err error) {
		err = operands(tokens, 1, 3)
		line = emit(op, tokens[3], tokens[1])
		return
	}
}

// ruleIntoWith is ruleInto, selecting withOp when the trailing keyword is present.
func ruleIntoWith(op, withOp, keyword string) Rule {
	return func(tokens []string, _ map[string]int) (line string, err error) {
		mnemonic := op
		if tokens[4] == keyword {
			mnemonic = withOp
		}
		err = operands(tokens, 1, 3)
		line = emit(mnemonic, tokens[3], tokens[1])
		return
	}
}

// ruleShift lowers 'shift D left by N' and 'shift D right by N'.
// Only the first character of the direction is significant.
func ruleShift(left, right string) Rule {
	return func(tokens []string, _ map[string]int) (line string, err error) {
		err = operands(tokens, 1, 2, 4)
		if err != nil {
			return
		}

		var op string
		switch tokens[2][0] {
		case 'l':
			op = left
		case 'r':
			op = right
		default:
			err = device.Syntax(&device.ErrOperand{Operand: tokens[2], Err: device.ErrDirectionInvalid})
			return
		}

		line = emit(op, tokens[1], tokens[4])
		return
	}
}

// ruleJump lowers 'go-to NAME' to an absolute line index.
func ruleJump(op string) Rule {
	return func(tokens []string, labels map[string]int) (line string, err error) {
		err = operands(tokens, 1)
		if err != nil {
			return
		}

		index, ok := labels[tokens[1]]
		if !ok {
			err = device.ErrLabelMissing(tokens[1])
			return
		}

		line = emit(op, strconv.Itoa(index))
		return
	}
}

// ruleCompare lowers 'compare A to B'.
func ruleCompare(op string) Rule {
	return func(tokens []string, _ map[string]int) (line string, err error) {
		err = operands(tokens, 1, 3)
		line = emit(op, tokens[1], tokens[3])
		return
	}
}

// ruleWord lowers a line with no operands.
func ruleWord(op string) Rule {
	return func(_ []string, _ map[string]int) (line string, err error) {
		line = op
		return
	}
}

// ruleSkip lowers 'skip-next-if COND', translating the condition word.
func ruleSkip(op string, cond func(word string) (string, error)) Rule {
	return func(tokens []string, _ map[string]int) (line string, err error) {
		code, err := cond(tokens[1])
		if err != nil {
			return
		}
		line = emit(op, code)
		return
	}
}
