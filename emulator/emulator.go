// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package emulator

import (
	"errors"
	"fmt"
	"iter"
	"log/slog"
	"maps"
	"strings"

	"github.com/ezrec/ucircuit/circuit"
	"github.com/ezrec/ucircuit/cpu"
	"github.com/ezrec/ucircuit/internal"
	"github.com/ezrec/ucircuit/level"
	"github.com/ezrec/ucircuit/port"
)

var _emulator_defines = map[string]string{
	"SIGNAL_DEFAULT": fmt.Sprintf("%d", circuit.SIGNAL_DEFAULT),
}

// Emulator is a bench session: one circuit, one program, and the attempt
// counts of every level played.
//
// All mutation goes through the Emulator. It is not safe for concurrent use.
type Emulator struct {
	Verbose   bool         // If set, enables verbose logging.
	Logger    *slog.Logger // Destination of logs, or slog.Default().
	StepLimit int          // Instruction budget per run. Zero selects cpu.STEP_LIMIT.

	Catalog *level.Catalog // Levels that may be run.
	Graph   *circuit.Graph // Current circuit.
	Code    string         // Current program text.
	Err     error          // Last error, or nil.
	Running bool           // Set by a successful run, cleared by Stop and Reset.

	selection circuit.Selection
	attempts  map[int]int
}

// NewEmulator creates an emulator with an empty bench. A nil catalog
// selects level.Default().
func NewEmulator(catalog *level.Catalog) (emu *Emulator) {
	if catalog == nil {
		catalog = level.Default()
	}

	emu = &Emulator{
		Catalog:  catalog,
		Graph:    circuit.NewGraph(),
		attempts: map[int]int{},
	}

	return
}

func (emu *Emulator) logger() *slog.Logger {
	if emu.Logger != nil {
		return emu.Logger
	}
	return slog.Default()
}

// Defines returns an iterator over the assembler equates for a level,
// under the step limit of the emulator.
func (emu *Emulator) Defines(lvl *level.Level) iter.Seq2[string, string] {
	return internal.IterSeq2Concat(maps.All(_emulator_defines),
		emu.newCpu().Defines(),
		lvl.Defines(),
	)
}

// newCpu creates a microcontroller with the emulator's settings.
func (emu *Emulator) newCpu() (mcu *cpu.Cpu) {
	mcu = cpu.NewCpu()
	mcu.Verbose = emu.Verbose
	mcu.Logger = emu.Logger
	if emu.StepLimit > 0 {
		mcu.StepLimit = emu.StepLimit
	}

	return
}

// Simulate runs code against a copy of graph under the rules of lvl.
// The graph is never modified; on success the outcome carries the copy.
func Simulate(lvl *level.Level, graph *circuit.Graph, code string, stepLimit int) Outcome {
	emu := &Emulator{StepLimit: stepLimit}
	return emu.simulate(lvl, graph, code)
}

func (emu *Emulator) simulate(lvl *level.Level, graph *circuit.Graph, code string) (outcome Outcome) {
	err := lvl.ValidateCircuit(graph)
	if err != nil {
		var invalid level.ErrCircuitInvalid
		errors.As(err, &invalid)
		outcome = Outcome{Kind: OUTCOME_CIRCUIT_INVALID, Reason: string(invalid), Err: err}
		return
	}

	err = lvl.Lint(code)
	if err != nil {
		outcome = Outcome{Kind: OUTCOME_CODE_INVALID, Err: err}
		return
	}

	asm := &cpu.Assembler{Verbose: emu.Verbose, Logger: emu.Logger, StepLimit: emu.StepLimit}
	for key, value := range emu.Defines(lvl) {
		asm.Predefine(key, value)
	}

	prog, err := asm.Parse(strings.NewReader(code))
	if err != nil {
		// Operand expressions are the only thing lint lets through.
		lineno := 0
		var syntax *cpu.ErrSyntax
		if errors.As(err, &syntax) {
			lineno = syntax.LineNo
		}
		if !errors.Is(err, cpu.ErrExecutionLimit) {
			err = errors.Join(cpu.ErrExecution, err)
		}
		outcome = Outcome{
			Kind: OUTCOME_EXECUTION_FAILED,
			Err:  &ErrRuntime{LineNo: lineno, Err: err},
		}
		return
	}

	clone := graph.Clone()

	mcu := emu.newCpu()
	port.Attach(mcu, clone)

	err = mcu.Run(prog)
	if err != nil {
		outcome = Outcome{
			Kind: OUTCOME_EXECUTION_FAILED,
			Err:  &ErrRuntime{LineNo: prog.LineNo(mcu.Pc), Err: err},
		}
		return
	}

	outcome = Outcome{Kind: OUTCOME_SUCCESS, Graph: clone}
	return
}

// Level returns a runnable level.
func (emu *Emulator) Level(levelId int) (lvl *level.Level, err error) {
	lvl = emu.Catalog.Level(levelId)
	if lvl == nil {
		err = ErrLevelUnknown
		return
	}
	if lvl.Locked {
		err = ErrLevelLocked
		lvl = nil
		return
	}

	return
}

// Run simulates the current circuit and code against a level.
//
// An exhausted level reports OUTCOME_EXHAUSTED and is not counted; every
// other run counts as an attempt. On success the resulting circuit is
// committed and the emulator is running.
func (emu *Emulator) Run(levelId int) (outcome Outcome, err error) {
	lvl, err := emu.Level(levelId)
	if err != nil {
		emu.Err = err
		return
	}

	if emu.Exhausted(levelId) {
		outcome = Outcome{Kind: OUTCOME_EXHAUSTED}
		emu.logger().Info("run", "level", levelId, "outcome", outcome.Kind)
		return
	}

	outcome = emu.simulate(lvl, emu.Graph, emu.Code)
	emu.attempts[levelId]++

	emu.logger().Info("run",
		"level", levelId,
		"attempt", emu.attempts[levelId],
		"outcome", outcome.Kind,
	)

	emu.Err = outcome.Err
	if !outcome.Ok() {
		if emu.Verbose {
			emu.logger().Debug("run", "level", levelId, "err", outcome.Err)
		}
		return
	}

	for comp := range outcome.Graph.Components() {
		switch comp.Type {
		case circuit.TYPE_MICROCONTROLLER:
			comp.State.Powered = true
		case circuit.TYPE_LED:
			comp.State.Powered = true
			comp.State.Blinking = true
		}
	}

	emu.Graph = outcome.Graph
	emu.Running = true

	return
}

// Attempts returns the number of counted runs of a level.
func (emu *Emulator) Attempts(levelId int) int {
	return emu.attempts[levelId]
}

// Remaining returns the number of runs left for a level.
func (emu *Emulator) Remaining(levelId int) int {
	lvl := emu.Catalog.Level(levelId)
	if lvl == nil {
		return 0
	}

	return max(lvl.MaxAttempts-emu.attempts[levelId], 0)
}

// Exhausted returns true when a level has no runs left.
func (emu *Emulator) Exhausted(levelId int) bool {
	lvl := emu.Catalog.Level(levelId)
	if lvl == nil {
		return false
	}

	return lvl.Exhausted(emu.attempts[levelId])
}

// Stop leaves the running state.
func (emu *Emulator) Stop() {
	emu.Running = false

	for comp := range emu.Graph.OfType(circuit.TYPE_LED) {
		comp.State.Blinking = false
	}
}

// Reset clears wires, code, attempts, selection and the last error, and
// restores every component to its initial state. Components stay placed.
func (emu *Emulator) Reset() {
	if emu.Verbose {
		emu.logger().Debug("reset")
	}

	emu.Running = false
	emu.Graph.ClearWires()
	emu.Graph.ResetState()
	emu.Code = ""
	emu.Err = nil
	clear(emu.attempts)
	emu.selection.Clear()
}

// AddComponent places a new component at its default position.
func (emu *Emulator) AddComponent(t circuit.Type) (id string, err error) {
	id, err = emu.Graph.AddComponent(t)
	emu.Err = err

	return
}

// MoveComponent repositions a component. Unknown ids are ignored.
func (emu *Emulator) MoveComponent(id string, x, y int) {
	emu.Graph.MoveComponent(id, x, y)
}

// RemoveComponent removes a component. Its wires stay, but no longer
// satisfy any requirement.
func (emu *Emulator) RemoveComponent(id string) bool {
	return emu.Graph.RemoveComponent(id)
}

// Select picks a pin. The second pick of a compatible pin returns the
// new wire; an incompatible pick returns ErrInvalidConnectionType, also
// recorded as the last error.
func (emu *Emulator) Select(componentId, pinId string) (wire *circuit.Wire, err error) {
	wire, err = emu.selection.Select(emu.Graph, circuit.Endpoint{ComponentId: componentId, PinId: pinId})
	emu.Err = err

	return
}

// Selection returns the pending endpoint of a wire, if any.
func (emu *Emulator) Selection() (ep circuit.Endpoint, ok bool) {
	return emu.selection.Pending()
}

// ClearSelection drops the pending endpoint.
func (emu *Emulator) ClearSelection() {
	emu.selection.Clear()
}

// SetCode replaces the program text.
func (emu *Emulator) SetCode(text string) {
	emu.Code = text
}
