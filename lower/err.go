package lower

import (
	"errors"

	"github.com/ezrec/munin/internal"
	"github.com/ezrec/munin/translate"
)

var f = translate.From

var (
	ErrInstructionInvalid = errors.New(f("instruction invalid"))
	ErrLabelNameMissing   = errors.New(f("label name missing"))
	ErrExpressionType     = internal.ErrExpressionType
	ErrDialectUnknown     = errors.New(f("dialect unknown"))
)

// ErrSyntax locates a lowering failure in the source text.
type ErrSyntax struct {
	LineNo int
	Line   string
	Err    error
}

func (err ErrSyntax) Error() string {
	return f("line %d '%v' %v", err.LineNo, err.Line, err.Err)
}

func (err ErrSyntax) Unwrap() error {
	return err.Err
}

// ErrExpression is a failed $(...) evaluation.
type ErrExpression struct {
	Expr string
	Err  error
}

func (err ErrExpression) Error() string {
	return f("$(%v) is not a valid expression: %v", err.Expr, err.Err)
}

func (err ErrExpression) Unwrap() error {
	return err.Err
}
