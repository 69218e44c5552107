package cpu

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"log/slog"
	"maps"
	"math"
	"strconv"

	"github.com/ezrec/ucircuit/internal/logging"
)

const (
	STEP_LIMIT  = 100000 // Default maximum instructions executed per run.
	OUTPUT_GAIN = 2      // Gain of the P0 output driver.
)

var _cpu_defines = map[string]string{
	"OUTPUT_GAIN": fmt.Sprintf("%d", OUTPUT_GAIN),
	"STEP_LIMIT":  fmt.Sprintf("%d", STEP_LIMIT),
}

// Port is an I/O port of the microcontroller.
type Port interface {
	// Read samples the port.
	Read() (value int, err error)
	// Write drives the port.
	Write(value int) error
}

// Cpu is the simulation context of the microcontroller.
type Cpu struct {
	Verbose bool         // Set to enable verbose logging.
	Logger  *slog.Logger // Destination of verbose logs, or slog.Default().

	Pc  int // Program counter.
	Acc int // Accumulator.

	Steps     int // Instructions executed since reset.
	StepLimit int // Maximum steps per run. Zero selects STEP_LIMIT.

	port [PORT_COUNT]Port // IO ports.
}

// NewCpu creates a new microcontroller with no ports attached.
func NewCpu() (cpu *Cpu) {
	cpu = &Cpu{
		StepLimit: STEP_LIMIT,
	}

	return
}

// Defines for the cpu. STEP_LIMIT is the effective step limit.
func (cpu *Cpu) Defines() iter.Seq2[string, string] {
	defines := maps.Clone(_cpu_defines)
	defines["STEP_LIMIT"] = strconv.Itoa(cpu.limit())
	return maps.All(defines)
}

func (cpu *Cpu) logger() *slog.Logger {
	if cpu.Logger != nil {
		return cpu.Logger
	}
	return slog.Default()
}

// String returns the current CPU state as a string.
func (cpu *Cpu) String() (text string) {
	text += fmt.Sprintf("% 5s: %d\n", "pc", cpu.Pc)
	text += fmt.Sprintf("% 5s: %d\n", "acc", cpu.Acc)
	text += fmt.Sprintf("% 5s: %d/%d\n", "steps", cpu.Steps, cpu.limit())

	return
}

// limit returns the effective step limit.
func (cpu *Cpu) limit() int {
	if cpu.StepLimit <= 0 {
		return STEP_LIMIT
	}
	return cpu.StepLimit
}

// Reset the CPU state. Ports stay attached.
func (cpu *Cpu) Reset() {
	if cpu.Verbose {
		cpu.logger().Debug("cpu: reset")
	}

	cpu.Pc = 0
	cpu.Acc = 0
	cpu.Steps = 0
}

// SetPort attaches a port model to a port index. A nil port detaches.
func (cpu *Cpu) SetPort(id PortId, port Port) (err error) {
	if id < 0 || int(id) >= len(cpu.port) {
		err = ErrPortInvalid
		return
	}

	cpu.port[id] = port
	return
}

// GetPort gets the port model by index.
func (cpu *Cpu) GetPort(id PortId) (port Port, err error) {
	if id < 0 || int(id) >= len(cpu.port) || cpu.port[id] == nil {
		err = ErrPortInvalid
		return
	}

	port = cpu.port[id]
	return
}

// Tick executes the instruction at the program counter.
// When the program counter has left the program, done is set instead.
func (cpu *Cpu) Tick(prog *Program) (done bool, err error) {
	op := prog.Debug(cpu.Pc)
	if op == nil {
		done = true
		return
	}

	if cpu.Steps >= cpu.limit() {
		err = ErrExecutionLimit
		return
	}

	err = cpu.Execute(op)
	if err != nil {
		return
	}

	cpu.Steps++

	return
}

// Run resets the CPU and executes the program until the program counter
// leaves it, an instruction fails, or the step limit is exceeded.
func (cpu *Cpu) Run(prog *Program) (err error) {
	cpu.Reset()

	for {
		var done bool
		done, err = cpu.Tick(prog)
		if err != nil || done {
			return
		}
	}
}

// Execute executes a single decoded instruction.
func (cpu *Cpu) Execute(op *Opcode) (err error) {
	defer func() {
		if err != nil {
			err = errors.Join(ErrExecution, err)
		}
	}()

	if cpu.Verbose {
		cpu.logger().Log(context.Background(), logging.LevelTrace, "cpu",
			"pc", cpu.Pc,
			"acc", cpu.Acc,
			"op", op.String(),
		)
	}

	next_pc := cpu.Pc + 1
	args := op.Args

	switch op.Mnemonic {
	case OP_MOV:
		if len(args) == 0 {
			err = errors.Join(ErrOpcodeMov, ErrOpcodeMissing)
			return
		}
		if len(args) > 2 {
			err = errors.Join(ErrOpcodeMov, ErrOpcodeExtraArgs)
			return
		}
		if args[0] == "P0" {
			// Port write. The source, if any, is always the accumulator.
			err = cpu.output()
			if err != nil {
				err = errors.Join(ErrOpcodeMov, ErrOpcodeDest, err)
				return
			}
			break
		}
		if len(args) < 2 {
			err = errors.Join(ErrOpcodeMov, ErrOpcodeMissing)
			return
		}
		// Any other destination is the accumulator.
		src := args[1]
		var value int
		if id, ok := parsePort(src); ok {
			var port Port
			port, err = cpu.GetPort(id)
			if err == nil {
				value, err = port.Read()
			}
		} else {
			value, err = valueOf(src)
		}
		if err != nil {
			err = errors.Join(ErrOpcodeMov, ErrOpcodeSrc, err)
			return
		}
		cpu.Acc = value
	case OP_MUL:
		if len(args) == 0 {
			err = errors.Join(ErrOpcodeMul, ErrOpcodeMissing)
			return
		}
		var value int
		value, err = valueOf(args[len(args)-1])
		if err != nil {
			err = errors.Join(ErrOpcodeMul, err)
			return
		}
		var ok bool
		cpu.Acc, ok = mul(cpu.Acc, value)
		if !ok {
			err = errors.Join(ErrOpcodeMul, ErrOverflow)
			return
		}
	case OP_JMP:
		if len(args) == 0 {
			err = errors.Join(ErrOpcodeJmp, ErrOpcodeMissing)
			return
		}
		if len(args) > 1 {
			err = errors.Join(ErrOpcodeJmp, ErrOpcodeExtraArgs)
			return
		}
		next_pc, err = valueOf(args[0])
		if err != nil {
			err = errors.Join(ErrOpcodeJmp, err)
			return
		}
	case OP_WAIT:
		// Cycle delay only; the operand, if any, must still be a number.
		if len(args) > 1 {
			err = errors.Join(ErrOpcodeWait, ErrOpcodeExtraArgs)
			return
		}
		if len(args) == 1 {
			_, err = valueOf(args[0])
			if err != nil {
				err = errors.Join(ErrOpcodeWait, err)
				return
			}
		}
	case OP_TGT:
		// pass
	default:
		err = ErrInstructionInvalid
		return
	}

	cpu.Pc = next_pc

	return
}

// output drives P0 with the accumulator through the output gain.
func (cpu *Cpu) output() (err error) {
	value, ok := mul(cpu.Acc, OUTPUT_GAIN)
	if !ok {
		err = ErrOverflow
		return
	}

	port, err := cpu.GetPort(PORT_P0)
	if err != nil {
		return
	}

	err = port.Write(value)
	return
}

// mul multiplies, reporting false if the product does not fit an int.
func mul(a, b int) (product int, ok bool) {
	if a == 0 || b == 0 {
		return 0, true
	}

	if (a == -1 && b == math.MinInt) || (b == -1 && a == math.MinInt) {
		return
	}

	product = a * b
	if product/b != a {
		product = 0
		return
	}

	return product, true
}
