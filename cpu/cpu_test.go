package cpu

import (
	"bytes"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/ucircuit/internal/logging"
)

var errWrongWay = errors.New("wrong way")

// testPort records writes and replays a fixed input.
type testPort struct {
	input    int
	written  []int
	readOnly bool
}

func (tp *testPort) Read() (int, error) {
	return tp.input, nil
}

func (tp *testPort) Write(value int) error {
	if tp.readOnly {
		return errWrongWay
	}
	tp.written = append(tp.written, value)
	return nil
}

func newTestCpu() (cpu *Cpu, p0, p1 *testPort) {
	cpu = NewCpu()
	p0 = &testPort{}
	p1 = &testPort{input: 5, readOnly: true}
	cpu.SetPort(PORT_P0, p0)
	cpu.SetPort(PORT_P1, p1)
	return
}

func TestCpu(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu()
	assert.Equal(STEP_LIMIT, cpu.StepLimit)
	assert.False(cpu.Verbose)

	_, err := cpu.GetPort(PORT_P0)
	assert.ErrorIs(err, ErrPortInvalid)
	assert.ErrorIs(cpu.SetPort(PortId(2), &testPort{}), ErrPortInvalid)

	defines := map[string]string{}
	for k, v := range cpu.Defines() {
		defines[k] = v
	}
	assert.Equal("2", defines["OUTPUT_GAIN"])
	assert.Equal("100000", defines["STEP_LIMIT"])

	cpu.StepLimit = 50
	for k, v := range cpu.Defines() {
		defines[k] = v
	}
	assert.Equal("50", defines["STEP_LIMIT"])
}

func TestCpuAmplifier(t *testing.T) {
	assert := assert.New(t)

	cpu, p0, _ := newTestCpu()
	prog := assemble(t, "MOV A,P1", "MUL 2", "MOV P0,A")

	err := cpu.Run(prog)
	assert.NoError(err)
	assert.Equal([]int{20}, p0.written)
	assert.Equal(10, cpu.Acc)
	assert.Equal(3, cpu.Pc)
	assert.Equal(3, cpu.Steps)
}

func TestCpuDeterministic(t *testing.T) {
	assert := assert.New(t)

	prog := assemble(t, "MOV A, 3", "MUL 7", "MOV P0, A", "MOV A, P1", "MOV P0, A")

	cpu, p0, _ := newTestCpu()
	assert.NoError(cpu.Run(prog))
	first := p0.written

	p0.written = nil
	assert.NoError(cpu.Run(prog))
	assert.Equal(first, p0.written)
	assert.Equal([]int{42, 10}, first)
}

func TestCpuJump(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		name    string
		program []string
		acc     int
		steps   int
		err     error
	}){
		{"past end", []string{"MOV A, 1", "JMP 10", "MOV A, 2"}, 1, 2, nil},
		{"negative", []string{"MOV A, 1", "JMP -1", "MOV A, 2"}, 1, 2, nil},
		{"skip", []string{"JMP 2", "MOV A, 5", "MUL 3"}, 0, 2, nil},
		{"forever", []string{"JMP 0"}, 0, STEP_LIMIT, ErrExecutionLimit},
		{"blink", []string{
			"MOV P0, 1  ; Turn LED ON",
			"WAIT 100   ; Wait 100 cycles",
			"MOV P0, 0  ; Turn LED OFF",
			"WAIT 100   ; Wait 100 cycles",
			"JMP 0      ; Loop forever",
		}, 0, STEP_LIMIT, ErrExecutionLimit},
	}

	for _, entry := range table {
		cpu, _, _ := newTestCpu()
		prog := assemble(t, entry.program...)

		err := cpu.Run(prog)
		if entry.err == nil {
			assert.NoError(err, entry.name)
		} else {
			assert.ErrorIs(err, entry.err, entry.name)
			assert.NotErrorIs(err, ErrExecution, entry.name)
		}
		assert.Equal(entry.acc, cpu.Acc, entry.name)
		assert.Equal(entry.steps, cpu.Steps, entry.name)
	}
}

func TestCpuStepLimit(t *testing.T) {
	assert := assert.New(t)

	cpu, _, _ := newTestCpu()
	cpu.StepLimit = 3

	// Exactly at the limit is fine.
	assert.NoError(cpu.Run(assemble(t, "WAIT", "WAIT", "WAIT")))

	err := cpu.Run(assemble(t, "WAIT", "WAIT", "WAIT", "WAIT"))
	assert.ErrorIs(err, ErrExecutionLimit)
	assert.Equal(3, cpu.Steps)
}

func TestCpuErrors(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		name    string
		program []string
		err     error
	}){
		{"mov number", []string{"MOV A, five"}, ErrParseNumber("five")},
		{"mov missing", []string{"MOV A"}, ErrOpcodeMissing},
		{"mov extra", []string{"MOV A, 1, 2"}, ErrOpcodeExtraArgs},
		{"mov port", []string{"MOV A, P7"}, ErrPortInvalid},
		{"mov empty", []string{"MOV"}, ErrOpcodeMissing},
		{"mov register dest", []string{"MOV P1, A"}, ErrParseNumber("A")},
		{"mov register port", []string{"MOV P3, P7"}, ErrPortInvalid},
		{"mov output extra", []string{"MOV P0, A, 1"}, ErrOpcodeExtraArgs},
		{"mul number", []string{"MUL two"}, ErrParseNumber("two")},
		{"mul missing", []string{"MUL"}, ErrOpcodeMissing},
		{"jmp number", []string{"JMP start"}, ErrParseNumber("start")},
		{"jmp missing", []string{"JMP"}, ErrOpcodeMissing},
		{"jmp extra", []string{"JMP 1 2"}, ErrOpcodeExtraArgs},
		{"wait number", []string{"WAIT soon"}, ErrParseNumber("soon")},
	}

	for _, entry := range table {
		cpu, p0, _ := newTestCpu()
		prog := assemble(t, entry.program...)

		err := cpu.Run(prog)
		assert.ErrorIs(err, ErrExecution, entry.name)
		assert.ErrorIs(err, entry.err, entry.name)
		assert.NotErrorIs(err, ErrExecutionLimit, entry.name)
		assert.Empty(p0.written, entry.name)
		assert.Equal(0, cpu.Pc, entry.name)
	}
}

func TestCpuMovDestination(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		name    string
		program []string
		acc     int
		written []int
	}){
		{"p1 register", []string{"MOV P1, 7"}, 7, nil},
		{"any register", []string{"MOV ACC, 3", "MOV P9, 4"}, 4, nil},
		{"p1 from p1", []string{"MOV P1, P1"}, 5, nil},
		{"bare p0", []string{"MOV A, 6", "MOV P0"}, 6, []int{12}},
		{"p0 source ignored", []string{"MOV A, 6", "MOV P0, 100"}, 6, []int{12}},
		{"p0 only exact", []string{"MOV P00, 8", "MOV P0, A"}, 8, []int{16}},
	}

	for _, entry := range table {
		cpu, p0, p1 := newTestCpu()

		err := cpu.Run(assemble(t, entry.program...))
		assert.NoError(err, entry.name)
		assert.Equal(entry.acc, cpu.Acc, entry.name)
		assert.Equal(entry.written, p0.written, entry.name)
		assert.Empty(p1.written, entry.name)
	}
}

func TestCpuWriteError(t *testing.T) {
	assert := assert.New(t)

	cpu, p0, _ := newTestCpu()
	p0.readOnly = true

	err := cpu.Run(assemble(t, "MOV A, 1", "MOV P0"))
	assert.ErrorIs(err, ErrExecution)
	assert.ErrorIs(err, ErrOpcodeDest)
	assert.ErrorIs(err, errWrongWay)
	assert.Equal(1, cpu.Pc)
}

func TestCpuOverflow(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		name    string
		program []string
	}){
		{"mul", []string{"MOV A, 9223372036854775807", "MUL 2"}},
		{"mul negative", []string{"MOV A, -9223372036854775808", "MUL -1"}},
		{"mul large", []string{"MOV A, 3037000500", "MUL 3037000500"}},
		{"output", []string{"MOV A, 4611686018427387904", "MOV P0, A"}},
		{"output negative", []string{"MOV A, -4611686018427387905", "MOV P0"}},
	}

	for _, entry := range table {
		cpu, p0, _ := newTestCpu()

		err := cpu.Run(assemble(t, entry.program...))
		assert.ErrorIs(err, ErrExecution, entry.name)
		assert.ErrorIs(err, ErrOverflow, entry.name)
		assert.Equal(1, cpu.Pc, entry.name)
		assert.Empty(p0.written, entry.name)
	}

	// The edges still fit.
	cpu, p0, _ := newTestCpu()
	assert.NoError(cpu.Run(assemble(t,
		"MOV A, 4611686018427387903",
		"MOV P0",
		"MUL -2",
	)))
	assert.Equal([]int{math.MaxInt - 1}, p0.written)
	assert.Equal(math.MinInt+2, cpu.Acc)
}

func TestMul(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		a, b    int
		product int
		ok      bool
	}){
		{3, 4, 12, true},
		{-3, 5, -15, true},
		{0, math.MinInt, 0, true},
		{math.MaxInt, 1, math.MaxInt, true},
		{math.MinInt, 1, math.MinInt, true},
		{math.MaxInt, -1, -math.MaxInt, true},
		{math.MinInt, -1, 0, false},
		{-1, math.MinInt, 0, false},
		{math.MaxInt/2 + 1, 2, 0, false},
		{math.MinInt / 2, 2, math.MinInt, true},
		{math.MinInt/2 - 1, 2, 0, false},
	}

	for _, entry := range table {
		product, ok := mul(entry.a, entry.b)
		assert.Equal(entry.ok, ok, "%d * %d", entry.a, entry.b)
		assert.Equal(entry.product, product, "%d * %d", entry.a, entry.b)
	}
}

func TestCpuTrace(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		level string
		trace bool
	}){
		{"info", false},
		{"debug", false},
		{"trace", true},
	}

	for _, entry := range table {
		var buf bytes.Buffer

		cpu, _, _ := newTestCpu()
		cpu.Verbose = true
		cpu.Logger = logging.NewLogger(entry.level, &buf)

		assert.NoError(cpu.Run(assemble(t, "MOV A, 1", "MOV P0, A")), entry.level)
		assert.Equal(entry.trace, bytes.Contains(buf.Bytes(), []byte(`level=TRACE msg=cpu pc=1 acc=1 op="MOV P0, A"`)), entry.level)
	}

	// Without Verbose, nothing is traced.
	var buf bytes.Buffer
	cpu, _, _ := newTestCpu()
	cpu.Logger = logging.NewLogger("trace", &buf)
	assert.NoError(cpu.Run(assemble(t, "MOV A, 1")))
	assert.Empty(buf.String())
}

func TestCpuMulLastOperand(t *testing.T) {
	assert := assert.New(t)

	cpu, _, _ := newTestCpu()
	assert.NoError(cpu.Run(assemble(t, "MOV ACC, 3", "MUL ACC, 4", "TGT")))
	assert.Equal(12, cpu.Acc)
}

func TestCpuReadWithoutPort(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu()
	err := cpu.Run(assemble(t, "MOV A, P1"))
	assert.ErrorIs(err, ErrPortInvalid)
	assert.ErrorIs(err, ErrExecution)
}

func TestCpuExecuteInvalid(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu()
	err := cpu.Execute(&Opcode{Mnemonic: Mnemonic(99)})
	assert.ErrorIs(err, ErrInstructionInvalid)
	assert.ErrorIs(err, ErrExecution)
}

func TestParsePort(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		word string
		id   PortId
		ok   bool
	}){
		{"P0", PORT_P0, true},
		{"P1", PORT_P1, true},
		{"P12", PortId(12), true},
		{"P", 0, false},
		{"p0", 0, false},
		{"P+1", 0, false},
		{"A", 0, false},
		{"5", 0, false},
	}

	for _, entry := range table {
		id, ok := parsePort(entry.word)
		assert.Equal(entry.ok, ok, entry.word)
		if entry.ok {
			assert.Equal(entry.id, id, entry.word)
		}
	}
}
