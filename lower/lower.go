// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package lower

import (
	"log"
	"strings"

	"github.com/ezrec/munin/device"
	"github.com/ezrec/munin/translate"
)

// MAX_TOKENS is the number of tokens each source line is padded to.
const MAX_TOKENS = 8

// Listing is the result of lowering a source text.
type Listing struct {
	Lines  []string       // One line per source line, then the terminator.
	Labels map[string]int // Map of labels to line indexes.
}

// Lowerer is a two pass line lowering for munin source text.
type Lowerer struct {
	Verbose bool     // If set, verbosely logs the lowering actions.
	Dialect *Dialect // Translation table. Assembly if nil.

	predefine map[string]string // Predefines
}

// Predefine defines a new word substitution or redefines an existing one.
func (lw *Lowerer) Predefine(name string, value string) {
	if lw.predefine == nil {
		lw.predefine = map[string]string{name: value}
	} else {
		lw.predefine[name] = value
	}
}

// tokenize splits a line on whitespace, padded to MAX_TOKENS.
func tokenize(text string) (tokens []string) {
	tokens = strings.Fields(text)
	for len(tokens) < MAX_TOKENS {
		tokens = append(tokens, "")
	}
	return
}

// substitute replaces predefined words in the operand positions.
func (lw *Lowerer) substitute(tokens []string) {
	for n := 1; n < len(tokens); n++ {
		value, ok := lw.predefine[tokens[n]]
		if ok {
			tokens[n] = value
		}
	}
}

// Lower lowers the source lines. Comment lines must already be removed.
func (lw *Lowerer) Lower(lines []string) (listing *Listing, err error) {
	dialect := lw.Dialect
	if dialect == nil {
		dialect = Assembly
	}

	var lineno int
	var line string

	defer func() {
		if err != nil {
			err = &ErrSyntax{LineNo: lineno, Line: line, Err: err}
			listing = nil
		}
	}()

	// Collect the labels.
	labels := make(map[string]int, 16)
	for n, text := range lines {
		tokens := tokenize(text)
		if tokens[0] != dialect.Label {
			continue
		}

		lineno, line = n+1, text
		name := tokens[1]
		if len(name) == 0 {
			err = device.Syntax(ErrLabelNameMissing)
			return
		}
		prev, ok := labels[name]
		if ok {
			translate.Log("lower: warning: line %d: label %v redeclared, was line %d", n+1, name, prev+1)
		}
		labels[name] = n
	}

	// Emit the lowered lines.
	out := make([]string, 0, len(lines)+1)
	for n, text := range lines {
		lineno, line = n+1, text

		var lowered string
		lowered, err = lw.lowerLine(dialect, labels, text, n)
		if err != nil {
			return
		}

		if lw.Verbose {
			log.Printf("%v: %v => %v\n", lineno, text, lowered)
		}

		out = append(out, lowered)
	}
	out = append(out, dialect.End)

	listing = &Listing{
		Lines:  out,
		Labels: labels,
	}

	return
}

// lowerLine lowers the source line at index.
func (lw *Lowerer) lowerLine(dialect *Dialect, labels map[string]int, text string, index int) (lowered string, err error) {
	keyword := tokenize(text)[0]

	switch keyword {
	case "", dialect.Label:
		lowered = dialect.NoOp
		return
	}

	rule, ok := dialect.Rules[keyword]
	if !ok {
		err = device.Syntax(ErrInstructionInvalid)
		return
	}

	text, err = lw.expand(text, labels, index)
	if err != nil {
		return
	}

	tokens := tokenize(text)
	lw.substitute(tokens)

	lowered, err = rule(tokens, labels)
	return
}
