package profile

import (
	"errors"

	"github.com/ezrec/munin/translate"
)

var f = translate.From

var (
	ErrConfigEmpty    = errors.New(f("no profiles defined"))
	ErrProgramMissing = errors.New(f("program missing"))
	ErrInputsMissing  = errors.New(f("inputs missing"))
)

// ErrProfile indicates the profile and probe of a failed run.
type ErrProfile struct {
	Profile string
	Probe   uint32
	Err     error
}

func (err *ErrProfile) Error() string {
	return f("profile %v probe %#x: %v", err.Profile, err.Probe, err.Err)
}

func (err *ErrProfile) Unwrap() error {
	return err.Err
}
