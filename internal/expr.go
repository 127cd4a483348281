package internal

import (
	"errors"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"

	"github.com/ezrec/munin/translate"
)

var (
	ErrExpressionType  = errors.New(translate.From("expression is not an integer"))
	ErrExpressionRange = errors.New(translate.From("expression out of range"))
)

// EvalInt evaluates a Starlark expression, which must produce an integer.
func EvalInt(expr string, pred starlark.StringDict) (value int64, err error) {
	thread := starlark.Thread{}
	opts := syntax.FileOptions{}
	prog := "rc=" + expr + "\n"
	dict, err := starlark.ExecFileOptions(&opts, &thread, "expr", prog, pred)
	if err != nil {
		return
	}
	st_int, ok := dict["rc"].(starlark.Int)
	if !ok {
		err = ErrExpressionType
		return
	}
	value, ok = st_int.Int64()
	if !ok {
		err = ErrExpressionRange
		return
	}

	return
}
