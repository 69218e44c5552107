package level

import (
	"errors"

	"github.com/ezrec/ucircuit/translate"
)

var f = translate.From

var (
	// Program errors
	ErrCodeInvalid = errors.New(f("invalid code syntax"))

	// Catalog errors
	ErrCatalogSyntax     = errors.New(f("catalog syntax"))
	ErrLevelId           = errors.New(f("level id invalid"))
	ErrLevelDuplicate    = errors.New(f("level duplicated"))
	ErrMaxAttempts       = errors.New(f("max_attempts must be positive"))
	ErrTerminalSyntax    = errors.New(f("terminal must be type.pin"))
	ErrMnemonicUnknown   = errors.New(f("mnemonic unknown"))
	ErrRequireNotAllowed = errors.New(f("required mnemonic not allowed"))
)

// ErrCircuitInvalid is the first unmet circuit requirement of a level.
type ErrCircuitInvalid string

func (err ErrCircuitInvalid) Error() string {
	return string(err)
}

// ErrMnemonicForbidden is a program line using a mnemonic the level does
// not allow.
type ErrMnemonicForbidden struct {
	LineNo   int
	Mnemonic string
}

func (err ErrMnemonicForbidden) Error() string {
	return f("line %d: %v is not allowed", err.LineNo, err.Mnemonic)
}

// ErrMnemonicMissing is a required mnemonic the program never uses.
type ErrMnemonicMissing string

func (err ErrMnemonicMissing) Error() string {
	return f("%v is required", string(err))
}

// ErrLevel locates a catalog error.
type ErrLevel struct {
	Id  string
	Err error
}

func (err ErrLevel) Error() string {
	return f("level %v: %v", err.Id, err.Err)
}

func (err ErrLevel) Unwrap() error {
	return err.Err
}
