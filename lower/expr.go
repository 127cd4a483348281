package lower

import (
	"regexp"
	"strconv"
	"strings"

	"go.starlark.net/starlark"

	"github.com/ezrec/munin/device"
	"github.com/ezrec/munin/internal"
)

var reParen = regexp.MustCompile(`\$\([^\$]*\)`)

// equates returns the integers predeclared for expressions on the line at index.
func (lw *Lowerer) equates(labels map[string]int, index int) (pred starlark.StringDict) {
	pred = starlark.StringDict{}
	for name, str := range lw.predefine {
		v64, err := strconv.ParseInt(str, 0, 64)
		if err != nil {
			// Non-integer predefines are only word substitutions.
			continue
		}
		pred[name] = starlark.MakeInt64(v64)
	}
	for name, n := range labels {
		pred[name] = starlark.MakeInt(n)
	}
	pred["LINENO"] = starlark.MakeInt(index)

	return
}

// parenEval does compile-time $(...) evaluations
func parenEval(expr string, pred starlark.StringDict) (value int64, err error) {
	value, err = internal.EvalInt(expr, pred)
	if err != nil {
		err = device.Syntax(&ErrExpression{Expr: expr, Err: err})
	}
	return
}

// expand replaces every $(...) in text with its decimal value.
func (lw *Lowerer) expand(text string, labels map[string]int, index int) (out string, err error) {
	if !strings.Contains(text, "$(") {
		out = text
		return
	}

	pred := lw.equates(labels, index)
	out = reParen.ReplaceAllStringFunc(text, func(str string) string {
		if err != nil {
			return str
		}
		value, _err := parenEval(str[2:len(str)-1], pred)
		if _err != nil {
			err = _err
			return str
		}
		return strconv.FormatInt(value, 10)
	})

	return
}
