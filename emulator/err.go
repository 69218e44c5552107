package emulator

import (
	"errors"

	"github.com/ezrec/ucircuit/translate"
)

var f = translate.From

var (
	ErrLevelUnknown = errors.New(f("level unknown"))
	ErrLevelLocked  = errors.New(f("level locked"))
)

// ErrRuntime indicates the location of a runtime error.
type ErrRuntime struct {
	LineNo int
	Err    error
}

func (err *ErrRuntime) Error() string {
	return f("line %d %v", err.LineNo, err.Err)
}

func (err *ErrRuntime) Unwrap() error {
	return err.Err
}
