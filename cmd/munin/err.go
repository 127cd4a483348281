package main

import (
	"errors"

	"github.com/ezrec/munin/translate"
)

var f = translate.From

var (
	ErrInputSyntax    = errors.New(f("input must be iN=VALUE"))
	ErrInputValue     = errors.New(f("input value must be a number"))
	ErrCommandUnknown = errors.New(f("unknown command, try 'help'"))
	ErrCommandArgs    = errors.New(f("wrong number of arguments"))
)
