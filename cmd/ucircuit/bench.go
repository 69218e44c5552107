package main

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/ezrec/ucircuit/circuit"
	"github.com/ezrec/ucircuit/emulator"
)

var errWireNotCreated = errors.New("wire not created")

// Bench is the YAML description of a circuit.
type Bench struct {
	Components []BenchComponent `yaml:"components"`
	Wires      []BenchWire      `yaml:"wires"`
}

// BenchComponent places a component. Without x and y it stays at the
// default position of its type.
type BenchComponent struct {
	Type string `yaml:"type"`
	X    *int   `yaml:"x,omitempty"`
	Y    *int   `yaml:"y,omitempty"`
}

// BenchWire joins two 'component.pin' endpoints.
type BenchWire struct {
	From string `yaml:"from"`
	To   string `yaml:"to"`
}

// ParseBench decodes a bench.
func ParseBench(data []byte) (bench *Bench, err error) {
	bench = &Bench{}
	if err = yaml.Unmarshal(data, bench); err != nil {
		bench = nil
		err = fmt.Errorf("parsing bench: %w", err)
		return
	}

	return
}

// Apply places the components of the bench on the emulator, then draws
// the wires through the pin selection, so incompatible pins are refused.
func (bench *Bench) Apply(emu *emulator.Emulator) (err error) {
	for n, bc := range bench.Components {
		var t circuit.Type
		t, err = circuit.ParseType(bc.Type)
		if err != nil {
			err = fmt.Errorf("component %d %q: %w", n, bc.Type, err)
			return
		}

		var id string
		id, err = emu.AddComponent(t)
		if err != nil {
			return
		}

		if bc.X != nil || bc.Y != nil {
			comp, _ := emu.Graph.Component(id)
			x, y := comp.X, comp.Y
			if bc.X != nil {
				x = *bc.X
			}
			if bc.Y != nil {
				y = *bc.Y
			}
			emu.MoveComponent(id, x, y)
		}
	}

	for _, bw := range bench.Wires {
		err = bench.wire(emu, bw)
		if err != nil {
			err = fmt.Errorf("wire %s -> %s: %w", bw.From, bw.To, err)
			return
		}
	}

	return
}

func (bench *Bench) wire(emu *emulator.Emulator, bw BenchWire) (err error) {
	emu.ClearSelection()

	var ends [2]circuit.Endpoint
	for n, text := range []string{bw.From, bw.To} {
		ends[n], err = circuit.ParseEndpoint(text)
		if err != nil {
			return
		}
		if _, err = emu.Graph.Pin(ends[n]); err != nil {
			return
		}
	}

	for _, ep := range ends {
		var wire *circuit.Wire
		wire, err = emu.Select(ep.ComponentId, ep.PinId)
		if err != nil {
			return
		}
		if wire != nil {
			return
		}
	}

	return errWireNotCreated
}
