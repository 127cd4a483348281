// Package device implements the munin execution engine.
//
// The device consists of an instruction pointer, a four-bit flag register
// (Equal, Greater, Carry, Underflow), and three memory banks of
// variable-width values: variables (v0, v1, ...), single bits (b0, b1, ...),
// and inputs (i0, i1, ...). A phase state machine gates which bank may be
// written: inputs only while loading input, variables and bits only while a
// program is executing.
//
// Programs are sequences of text lines in the final mnemonic form, one
// instruction per line, as produced by the lower package.
package device
