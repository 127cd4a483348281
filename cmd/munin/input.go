package main

import (
	"cmp"
	"slices"
	"strings"

	"github.com/ezrec/munin/device"
	munio "github.com/ezrec/munin/io"
	"github.com/ezrec/munin/lower"
)

// input is a single input bank assignment.
type input struct {
	Index int
	Value uint32
}

// parseInput parses an iN=VALUE assignment.
func parseInput(arg string) (in input, err error) {
	name, text, ok := strings.Cut(arg, "=")
	if !ok {
		err = &device.ErrOperand{Operand: arg, Err: ErrInputSyntax}
		return
	}

	op, err := device.ParseOperand(name)
	if err != nil {
		return
	}
	if op.Bank != device.PREFIX_INPUT {
		err = &device.ErrOperand{Operand: name, Err: ErrInputSyntax}
		return
	}

	val, err := device.ParseOperand(text)
	if err != nil {
		return
	}
	if val.IsBank() {
		err = &device.ErrOperand{Operand: text, Err: ErrInputValue}
		return
	}

	in = input{Index: op.Index, Value: val.Value}
	return
}

// parseInputs parses input assignments, ordered by index.
func parseInputs(args []string) (inputs []input, err error) {
	for _, arg := range args {
		var in input
		in, err = parseInput(arg)
		if err != nil {
			return
		}
		inputs = append(inputs, in)
	}

	slices.SortStableFunc(inputs, func(a, b input) int {
		return cmp.Compare(a.Index, b.Index)
	})

	return
}

// loadInputs writes the inputs to the device.
func loadInputs(dev *device.Device, inputs []input) (err error) {
	for _, in := range inputs {
		err = dev.SetInput(in.Index, in.Value)
		if err != nil {
			return
		}
	}
	return
}

// parseDefines parses NAME=VALUE predefines. A bare NAME is defined as 1.
func parseDefines(lw *lower.Lowerer, args []string) {
	for _, arg := range args {
		name, value, ok := strings.Cut(arg, "=")
		if !ok {
			value = "1"
		}
		lw.Predefine(name, value)
	}
}

// readProgram reads a program file, lowering it first if it is source text.
func readProgram(path string, source bool, defines []string, verbose bool) (lines []string, err error) {
	lines, err = munio.ReadFile(path)
	if err != nil || !source {
		return
	}

	lw := &lower.Lowerer{Verbose: verbose}
	parseDefines(lw, defines)

	listing, err := lw.Lower(lines)
	if err != nil {
		return
	}

	lines = listing.Lines
	return
}
