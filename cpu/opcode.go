package cpu

import (
	"slices"
	"strings"
)

// Mnemonic is an instruction type.
type Mnemonic int

//go:generate go tool stringer -linecomment -type=Mnemonic
const (
	OP_MOV  = Mnemonic(0) // MOV
	OP_MUL  = Mnemonic(1) // MUL
	OP_JMP  = Mnemonic(2) // JMP
	OP_WAIT = Mnemonic(3) // WAIT
	OP_TGT  = Mnemonic(4) // TGT
)

// Mnemonics lists every instruction type.
var Mnemonics = []Mnemonic{OP_MOV, OP_MUL, OP_JMP, OP_WAIT, OP_TGT}

// ParseMnemonic decodes an instruction word, ignoring case.
func ParseMnemonic(word string) (mn Mnemonic, ok bool) {
	word = strings.ToUpper(word)
	n := slices.IndexFunc(Mnemonics, func(mn Mnemonic) bool { return mn.String() == word })
	if n < 0 {
		return
	}

	return Mnemonics[n], true
}

// PortId is an I/O port index.
type PortId int

const (
	PORT_P0 = PortId(0) // P0
	PORT_P1 = PortId(1) // P1

	PORT_COUNT = 2
)

// parsePort decodes a 'P<n>' port reference. Any such word is a port
// reference, whether or not the port exists.
func parsePort(word string) (id PortId, ok bool) {
	if len(word) < 2 || word[0] != 'P' {
		return
	}

	var n int
	for _, ch := range word[1:] {
		if ch < '0' || ch > '9' {
			return
		}
		n = n*10 + int(ch-'0')
		if n >= 1<<16 {
			return
		}
	}

	return PortId(n), true
}

// Opcode represents a line of assembled code with its source location.
type Opcode struct {
	LineNo   int      // Source line, starting at 1.
	Words    []string // Words of the line, after expansion.
	Mnemonic Mnemonic // Decoded instruction.
	Args     []string // Operands, undecoded.
}

// String returns the canonical text of the opcode.
func (op Opcode) String() string {
	if len(op.Args) == 0 {
		return op.Mnemonic.String()
	}

	return op.Mnemonic.String() + " " + strings.Join(op.Args, ", ")
}
