package device

import (
	"errors"

	"github.com/ezrec/munin/translate"
)

var f = translate.From

var (
	// Error categories
	ErrSyntax          = errors.New(f("syntax"))
	ErrUnresolvedLabel = errors.New(f("unresolved label"))
	ErrOutOfRange      = errors.New(f("out of range"))
	ErrDomain          = errors.New(f("domain"))
	ErrPhase           = errors.New(f("phase violation"))

	// Syntax errors
	ErrOpcodeInvalid      = errors.New(f("opcode invalid"))
	ErrOperandInvalid     = errors.New(f("operand invalid"))
	ErrOperandMissing     = errors.New(f("operand missing"))
	ErrDestinationInvalid = errors.New(f("destination invalid"))
	ErrDirectionInvalid   = errors.New(f("shift direction invalid"))

	// Range errors
	ErrBankIndex = errors.New(f("bank index out of range"))
	ErrIpRange   = errors.New(f("instruction pointer out of range"))

	// Domain errors
	ErrBitValue    = errors.New(f("bit value not 0 or 1"))
	ErrBorrowRange = errors.New(f("borrow out of range"))
	ErrCondInvalid = errors.New(f("condition invalid"))
	ErrOverflow    = errors.New(f("overflow"))
	ErrUnderflow   = errors.New(f("underflow"))
	ErrShiftRange  = errors.New(f("shift out of range"))

	// Phase errors
	ErrInputPhase     = errors.New(f("input written outside input phase"))
	ErrExecutionPhase = errors.New(f("memory written outside execution phase"))

	// Run errors
	ErrNotRunning = errors.New(f("not running"))
	ErrTickLimit  = errors.New(f("tick limit exceeded"))
)

// Syntax wraps err as a syntax error.
func Syntax(err error) error {
	return errors.Join(ErrSyntax, err)
}

// OutOfRange wraps err as a range error.
func OutOfRange(err error) error {
	return errors.Join(ErrOutOfRange, err)
}

// Domain wraps err as a domain error.
func Domain(err error) error {
	return errors.Join(ErrDomain, err)
}

// PhaseViolation wraps err as a phase violation.
func PhaseViolation(err error) error {
	return errors.Join(ErrPhase, err)
}

// ErrLabelMissing is a jump to an undeclared label.
type ErrLabelMissing string

func (el ErrLabelMissing) Error() string {
	return f("label %v missing", string(el))
}

func (el ErrLabelMissing) Is(err error) bool {
	return err == ErrUnresolvedLabel
}

// ErrOperand locates a bad operand.
type ErrOperand struct {
	Operand string
	Err     error
}

func (err *ErrOperand) Error() string {
	return f("operand '%v' %v", err.Operand, err.Err)
}

func (err *ErrOperand) Unwrap() error {
	return err.Err
}

// ErrExecute indicates the location of a runtime error.
type ErrExecute struct {
	Ip   int
	Line string
	Err  error
}

func (err *ErrExecute) Error() string {
	return f("ip %d '%v' %v", err.Ip, err.Line, err.Err)
}

func (err *ErrExecute) Unwrap() error {
	return err.Err
}
