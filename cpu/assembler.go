// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

// COMMENT starts a comment that runs to the end of the line.
const COMMENT = ";"

// Predefined system equates. LINENO is the source line being assembled,
// counting comments and blank lines. PC is the program counter of the
// instruction on that line, which is what JMP takes.
var sysEquate = map[string]string{
	"LINENO": "0",
	"PC":     "0",
}

var reParen = regexp.MustCompile(`\$\([^\$]*\)`)

// Assembler is a single pass assembler for the μCircuit microcontroller.
//
// Each $() expression runs with the same step budget as the program.
type Assembler struct {
	Verbose   bool         // If set, verbosely logs the assembler actions.
	Logger    *slog.Logger // Destination of verbose logs, or slog.Default().
	StepLimit int          // Budget of each $() expression. Zero selects STEP_LIMIT.
	Opcode    []Opcode     // List of generated opcodes.

	predefine map[string]string // Predefines
	Equate    map[string]string // Map of equates.
}

// Predefine defines a new equate or redefines an existing equate.
func (asm *Assembler) Predefine(equ string, value string) {
	if asm.predefine == nil {
		asm.predefine = map[string]string{equ: value}
	} else {
		asm.predefine[equ] = value
	}
}

// limit returns the effective step limit.
func (asm *Assembler) limit() int {
	if asm.StepLimit <= 0 {
		return STEP_LIMIT
	}
	return asm.StepLimit
}

// StripComment removes the comment and surrounding space from a line.
func StripComment(text string) string {
	line, _, _ := strings.Cut(text, COMMENT)
	return strings.TrimSpace(line)
}

// Words splits a line on white space and commas.
func Words(line string) []string {
	return strings.FieldsFunc(line, func(r rune) bool {
		return r == ',' || unicode.IsSpace(r)
	})
}

// valueOf returns the integer value of a decimal word.
func valueOf(word string) (value int, err error) {
	v64, err := strconv.ParseInt(word, 10, 64)
	if err != nil {
		err = ErrParseNumber(word)
		return
	}

	value = int(v64)
	return
}

// parenEval does compile-time $(...) evaluations
func (asm *Assembler) parenEval(expr string) (value int, err error) {
	exhausted := false
	thread := starlark.Thread{
		Name: "asm",
		OnMaxSteps: func(thread *starlark.Thread) {
			exhausted = true
			thread.Cancel("too many steps")
		},
	}
	thread.SetMaxExecutionSteps(uint64(asm.limit()))

	opts := syntax.FileOptions{}
	pred := starlark.StringDict{}
	for key, str := range asm.Equate {
		var v int
		v, err = valueOf(str)
		if err != nil {
			// Ignore non-integer equates.
			err = nil
			continue
		}
		pred[key] = starlark.MakeInt(v)
	}
	prog := "rc=" + expr + "\n"
	dict, err := starlark.ExecFileOptions(&opts, &thread, "expr", prog, pred)
	if exhausted {
		err = errors.Join(ErrExecutionLimit, ErrParseExpression(expr))
		return
	}
	if err != nil {
		err = ErrParseExpression(expr)
		return
	}
	st_rc, ok := dict["rc"]
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	st_int, ok := st_rc.(starlark.Int)
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	st_int64, ok := st_int.Int64()
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	value = int(st_int64)
	return
}

// parseLine expands a single line into words.
func (asm *Assembler) parseLine(line string, lineno int) (words []string, err error) {
	// Set line number.
	asm.Equate["LINENO"] = fmt.Sprintf("%v", lineno)
	asm.Equate["PC"] = fmt.Sprintf("%v", len(asm.Opcode))

	// Do $() evaluations
	line = reParen.ReplaceAllStringFunc(line, func(str string) string {
		value, _err := asm.parenEval(str[2 : len(str)-1])
		if _err != nil {
			err = _err
		}
		return fmt.Sprintf("%d", value)
	})
	if err != nil {
		return
	}

	words = Words(line)

	// Equates only replace operands, never the mnemonic.
	for n := 1; n < len(words); n++ {
		equate, ok := asm.Equate[words[n]]
		if ok {
			words[n] = equate
		}
	}

	return
}

// Parse parses an input stream into a Program.
// Comments and blank lines are dropped, so the program counter of an
// instruction is its index among the remaining lines.
func (asm *Assembler) Parse(input io.Reader) (prog *Program, err error) {
	scanner := bufio.NewScanner(input)

	var line string
	var lineno int

	defer func() {
		if err != nil {
			err = &ErrSyntax{LineNo: lineno, Line: line, Err: err}
		}
	}()

	asm.Opcode = asm.Opcode[:0]
	asm.Equate = maps.Clone(sysEquate)
	maps.Copy(asm.Equate, _cpu_defines)
	asm.Equate["STEP_LIMIT"] = strconv.Itoa(asm.limit())
	for attr, val := range asm.predefine {
		asm.Equate[attr] = val
	}

	logger := asm.Logger
	if logger == nil {
		logger = slog.Default()
	}

	for scanner.Scan() {
		text := scanner.Text()
		lineno += 1

		if asm.Verbose {
			logger.Debug("asm", "lineno", lineno, "text", text)
		}

		line = StripComment(text)
		if len(line) == 0 {
			continue
		}

		var words []string
		words, err = asm.parseLine(line, lineno)
		if err != nil {
			return
		}

		err = asm.parseWords(words, lineno)
		if err != nil {
			return
		}
	}

	err = scanner.Err()
	if err != nil {
		return
	}

	prog = &Program{
		Opcodes: asm.Opcode,
	}
	asm.Opcode = nil

	return
}

// parseWords decodes the words of a line into an opcode.
func (asm *Assembler) parseWords(words []string, lineno int) (err error) {
	if len(words) == 0 {
		return
	}

	mn, ok := ParseMnemonic(words[0])
	if !ok {
		err = ErrInstructionInvalid
		return
	}

	asm.Opcode = append(asm.Opcode, Opcode{
		LineNo:   lineno,
		Words:    words,
		Mnemonic: mn,
		Args:     words[1:],
	})

	return
}
