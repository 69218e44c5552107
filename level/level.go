// Package level defines the challenges of the μCircuit bench.
//
// A Level is immutable: presentation metadata, plus the parameters of two
// checks. ValidateCircuit applies the shared circuit checker (required
// component types, then power, then functional links) and reports the
// first unmet requirement. Lint applies the shared program lint (allowed
// and required mnemonics). Levels are declared in levels.hcl and looked up
// by id in a Catalog.
package level

import (
	"errors"
	"fmt"
	"iter"
	"maps"
	"slices"
	"strings"

	"github.com/ezrec/ucircuit/circuit"
	"github.com/ezrec/ucircuit/cpu"
)

// Terminal is a pin on the first component of a type.
type Terminal struct {
	Type circuit.Type
	Pin  string
}

// ParseTerminal parses the 'type.pin' form.
func ParseTerminal(text string) (term Terminal, err error) {
	tag, pin, ok := strings.Cut(text, ".")
	if !ok || len(tag) == 0 || len(pin) == 0 {
		err = ErrTerminalSyntax
		return
	}

	term.Type, err = circuit.ParseType(tag)
	if err != nil {
		return
	}

	term.Pin = pin
	return
}

func (term Terminal) String() string {
	return term.Type.String() + "." + term.Pin
}

// Link is a wire a level demands, in either direction.
type Link struct {
	From   Terminal
	To     Terminal
	Reason string // Reported when the wire is missing.
}

// powerLinks are checked, in order, for levels that need power.
var powerLinks = []Link{
	{
		From:   Terminal{circuit.TYPE_POWER_SOURCE, "vcc"},
		To:     Terminal{circuit.TYPE_MICROCONTROLLER, "vcc"},
		Reason: "Microcontroller needs power connection",
	},
	{
		From:   Terminal{circuit.TYPE_POWER_SOURCE, "gnd"},
		To:     Terminal{circuit.TYPE_MICROCONTROLLER, "gnd"},
		Reason: "Microcontroller needs ground connection",
	},
}

// Level is a single challenge.
type Level struct {
	Id          int
	Title       string
	Description string
	Hints       []string
	MaxAttempts int
	Locked      bool

	Requires []circuit.Type // Component types, in reporting order.
	Powered  bool           // Microcontroller must be wired to the power source.
	Links    []Link         // Functional wiring, in reporting order.

	Allow   []string // Mnemonics a program may use.
	Require []string // Mnemonics a program must use.

	Define map[string]int // Assembler equates.
}

// Defines iterates over the level's assembler equates.
func (lvl *Level) Defines() iter.Seq2[string, string] {
	return func(yield func(key, value string) bool) {
		for _, key := range slices.Sorted(maps.Keys(lvl.Define)) {
			if !yield(key, fmt.Sprintf("%d", lvl.Define[key])) {
				return
			}
		}
	}
}

// Exhausted returns true if attempts have used up the level's budget.
func (lvl *Level) Exhausted(attempts int) bool {
	return attempts >= lvl.MaxAttempts
}

// ValidateCircuit returns nil if the graph satisfies the level, or the
// ErrCircuitInvalid of the first unmet requirement.
func (lvl *Level) ValidateCircuit(g *circuit.Graph) error {
	for _, t := range lvl.Requires {
		if _, ok := g.FindByType(t); !ok {
			return ErrCircuitInvalid(f("%v is required", t.Title()))
		}
	}

	if lvl.Powered {
		for _, link := range powerLinks {
			if !linked(g, link) {
				return ErrCircuitInvalid(f(link.Reason))
			}
		}
	}

	for _, link := range lvl.Links {
		if !linked(g, link) {
			return ErrCircuitInvalid(f(link.Reason))
		}
	}

	return nil
}

// linked checks for a wire joining the link's terminals, in either
// direction. Wires to removed components never match.
func linked(g *circuit.Graph, link Link) bool {
	from, ok := g.FindByType(link.From.Type)
	if !ok {
		return false
	}
	to, ok := g.FindByType(link.To.Type)
	if !ok {
		return false
	}

	return g.Connected(
		circuit.Endpoint{ComponentId: from.Id, PinId: link.From.Pin},
		circuit.Endpoint{ComponentId: to.Id, PinId: link.To.Pin},
	)
}

// Lint checks program text against the level's allowed and required
// mnemonics. Operands are not examined. The returned error, if any,
// wraps ErrCodeInvalid.
func (lvl *Level) Lint(text string) (err error) {
	seen := map[string]bool{}

	for n, line := range strings.Split(text, "\n") {
		words := cpu.Words(cpu.StripComment(line))
		if len(words) == 0 {
			continue
		}

		mnemonic := words[0]
		if !slices.Contains(lvl.Allow, mnemonic) {
			err = errors.Join(ErrCodeInvalid, ErrMnemonicForbidden{LineNo: n + 1, Mnemonic: mnemonic})
			return
		}
		seen[mnemonic] = true
	}

	for _, mnemonic := range lvl.Require {
		if !seen[mnemonic] {
			err = errors.Join(ErrCodeInvalid, ErrMnemonicMissing(mnemonic))
			return
		}
	}

	return
}

// ValidateCode returns true if the program passes Lint.
func (lvl *Level) ValidateCode(text string) bool {
	return lvl.Lint(text) == nil
}
