package cpu

import (
	"iter"
	"strings"
)

// Program is an assembled instruction listing. The program counter
// indexes Opcodes directly.
type Program struct {
	Opcodes []Opcode
}

// Len returns the number of instructions.
func (prog *Program) Len() int {
	return len(prog.Opcodes)
}

// Debug returns the opcode at a program counter, or nil if out of bounds.
func (prog *Program) Debug(pc int) (op *Opcode) {
	if pc < 0 || pc >= len(prog.Opcodes) {
		return
	}

	return &prog.Opcodes[pc]
}

// LineNo returns the source line for a program counter, or 0 if out of bounds.
func (prog *Program) LineNo(pc int) int {
	op := prog.Debug(pc)
	if op == nil {
		return 0
	}

	return op.LineNo
}

// Mnemonics iterates over the mnemonic of each instruction.
func (prog *Program) Mnemonics() iter.Seq2[int, Mnemonic] {
	return func(yield func(pc int, mn Mnemonic) bool) {
		for pc, op := range prog.Opcodes {
			if !yield(pc, op.Mnemonic) {
				return
			}
		}
	}
}

// String returns the canonical listing of the program.
func (prog *Program) String() string {
	var text strings.Builder
	for _, op := range prog.Opcodes {
		text.WriteString(op.String())
		text.WriteByte('\n')
	}

	return text.String()
}
