package cpu

import (
	"errors"

	"github.com/ezrec/ucircuit/translate"
)

var f = translate.From

var (
	// Execution errors
	ErrExecution      = errors.New(f("execution error"))
	ErrExecutionLimit = errors.New(f("execution limit exceeded"))
	ErrPortInvalid    = errors.New(f("port invalid"))
	ErrOverflow       = errors.New(f("arithmetic overflow"))

	// Instruction decode errors
	ErrOpcodeMov       = errors.New(f("mov"))
	ErrOpcodeMul       = errors.New(f("mul"))
	ErrOpcodeJmp       = errors.New(f("jmp"))
	ErrOpcodeWait      = errors.New(f("wait"))
	ErrOpcodeDest      = errors.New(f("dest"))
	ErrOpcodeSrc       = errors.New(f("src"))
	ErrOpcodeMissing   = errors.New(f("operand missing"))
	ErrOpcodeExtraArgs = errors.New(f("excessive arguments"))

	// Assembler errors
	ErrInstructionInvalid = errors.New(f("instruction invalid"))
)

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

type ErrParseNumber string

func (err ErrParseNumber) Error() string {
	return f("'%v' is not a number", string(err))
}

type ErrParseExpression string

func (err ErrParseExpression) Error() string {
	return f("$(%v) is not a valid expression", string(err))
}
