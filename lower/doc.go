// Package lower implements the two-pass lowering of munin source text into
// final-form device mnemonics.
//
// The first pass records the line index of every label declaration. The
// second pass translates each line through a Dialect's rule table, resolving
// jump targets to absolute line indices. Every source line produces exactly
// one output line, so label indices computed in the first pass remain valid
// in the output. A terminator line is appended.
//
// Operands may contain $(...) compile-time expressions, evaluated with
// Starlark. Label names, LINENO, and integer predefines are visible to the
// expressions.
package lower
