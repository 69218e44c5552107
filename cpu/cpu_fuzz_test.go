package cpu

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

const fuzzStepLimit = 64

// checkRun verifies the outcome of a bounded run.
func checkRun(assert *assert.Assertions, cpu *Cpu, p0 *testPort, err error, desc string) {
	desc += "\n" + cpu.String()

	switch {
	case err == nil:
	case errors.Is(err, ErrExecutionLimit):
		assert.NotErrorIs(err, ErrExecution, desc)
		assert.Equal(cpu.StepLimit, cpu.Steps, desc)
	case errors.Is(err, ErrExecution):
	default:
		assert.NoError(err, desc)
	}

	assert.LessOrEqual(cpu.Steps, cpu.StepLimit, desc)

	// Everything driven on P0 went through the output gain.
	for _, value := range p0.written {
		assert.Zero(value%OUTPUT_GAIN, desc)
	}
}

func FuzzAssembler(f *testing.F) {
	f.Add("MOV A,P1\nMUL 2\nMOV P0,A\nJMP 99")
	f.Add("MOV P0, 1  ; Turn LED ON\nWAIT 100\nMOV P0, 0\nWAIT 100\nJMP 0")
	f.Add("MOV P1, 7\nMOV P0")
	f.Add("MOV A, 9223372036854775807\nMUL 2")
	f.Add("MUL $(len([x for x in range(30000000)]))")
	f.Add("JMP $(PC)\nJMP $(LINENO)\nMUL $(STEP_LIMIT)")
	f.Add("MUL $()\nMOV $(1 +)")
	f.Add("TGT\nWAIT soon\nJMP -1")

	f.Fuzz(func(t *testing.T, text string) {
		assert := assert.New(t)

		asm := &Assembler{StepLimit: fuzzStepLimit}
		prog, err := asm.Parse(strings.NewReader(text))
		if err != nil {
			var syntax *ErrSyntax
			assert.True(errors.As(err, &syntax), err.Error())
			assert.Nil(prog)
			return
		}

		cpu, p0, _ := newTestCpu()
		cpu.StepLimit = fuzzStepLimit

		err = cpu.Run(prog)
		checkRun(assert, cpu, p0, err, fmt.Sprintf("%q", text))
	})
}

func FuzzCpu(f *testing.F) {
	for mn := range OP_TGT + 2 {
		f.Add(uint8(mn), "A", "P1", 5)
		f.Add(uint8(mn), "P0", "", -3)
		f.Add(uint8(mn), "P1", "9223372036854775807", 2)
		f.Add(uint8(mn), "-4611686018427387905", "", 0)
	}

	f.Fuzz(func(t *testing.T, mn uint8, dst string, src string, input int) {
		assert := assert.New(t)

		var args []string
		for _, arg := range []string{dst, src} {
			if len(arg) != 0 {
				args = append(args, arg)
			}
		}

		// The fuzzed instruction, then drive P0 and loop.
		prog := &Program{Opcodes: []Opcode{
			{LineNo: 1, Mnemonic: Mnemonic(mn), Args: args},
			{LineNo: 2, Mnemonic: OP_MOV, Args: []string{"P0"}},
			{LineNo: 3, Mnemonic: OP_JMP, Args: []string{"0"}},
		}}

		cpu, p0, p1 := newTestCpu()
		cpu.StepLimit = fuzzStepLimit
		p1.input = input

		err := cpu.Run(prog)
		checkRun(assert, cpu, p0, err, prog.String())
		assert.Empty(p1.written, prog.String())
	})
}
