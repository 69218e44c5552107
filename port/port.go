// Package port provides the circuit-backed I/O ports of the μCircuit
// microcontroller.
//
// Ports bind a cpu.Port index to components of a circuit.Graph:
// SignalTarget drives the value of every signal target (P0), and
// SignalSource samples the first signal source (P1).
package port

import (
	"github.com/ezrec/ucircuit/circuit"
	"github.com/ezrec/ucircuit/cpu"
)

// SignalTarget is an output port driving all signal targets of a graph.
type SignalTarget struct {
	Graph *circuit.Graph
}

var _ cpu.Port = (*SignalTarget)(nil)

// Read returns ErrPortWriteOnly.
func (st *SignalTarget) Read() (value int, err error) {
	err = ErrPortWriteOnly
	return
}

// Write sets the value of every signal target. With no targets placed,
// the value is dropped.
func (st *SignalTarget) Write(value int) (err error) {
	for comp := range st.Graph.OfType(circuit.TYPE_SIGNAL_TARGET) {
		comp.State.Value = value
	}

	return
}

// SignalSource is an input port sampling the first signal source of a graph.
type SignalSource struct {
	Graph *circuit.Graph
}

var _ cpu.Port = (*SignalSource)(nil)

// Read returns the signal of the first signal source, or 0 if none is placed.
func (ss *SignalSource) Read() (value int, err error) {
	comp, ok := ss.Graph.FindByType(circuit.TYPE_SIGNAL_SOURCE)
	if ok {
		value = comp.State.Signal
	}

	return
}

// Write returns ErrPortReadOnly.
func (ss *SignalSource) Write(value int) (err error) {
	err = ErrPortReadOnly
	return
}

// Attach binds P0 and P1 of a cpu to a graph.
func Attach(mcu *cpu.Cpu, graph *circuit.Graph) {
	mcu.SetPort(cpu.PORT_P0, &SignalTarget{Graph: graph})
	mcu.SetPort(cpu.PORT_P1, &SignalSource{Graph: graph})
}
