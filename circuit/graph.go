// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package circuit

import (
	"fmt"
	"iter"
	"slices"
)

// Wire joins two pins. From and To only record which end was selected
// first; they carry no other meaning.
type Wire struct {
	Id   string
	From Endpoint
	To   Endpoint
}

// Joins returns true if the wire connects a and b, in either order.
func (w Wire) Joins(a, b Endpoint) bool {
	return (w.From == a && w.To == b) || (w.From == b && w.To == a)
}

// Graph is the set of components and wires of a circuit.
//
// The graph holds no business rules: wires are appended as given, and
// lookups of a type return the first component in insertion order.
type Graph struct {
	Wires []Wire

	component map[string]*Component
	order     []string // Component ids, in insertion order.
	serial    int      // Next component serial.
	wires     int      // Next wire serial.
}

// NewGraph creates an empty graph.
func NewGraph() *Graph {
	return &Graph{
		component: map[string]*Component{},
	}
}

// Len returns the number of components.
func (g *Graph) Len() int {
	return len(g.order)
}

// AddComponent creates a component of type t and returns its id.
// Ids are the type tag and a serial, and are not reused within the graph.
func (g *Graph) AddComponent(t Type) (id string, err error) {
	id = fmt.Sprintf("%v-%d", t, g.serial)

	comp, err := NewComponent(t, id)
	if err != nil {
		id = ""
		return
	}

	g.Insert(comp)

	return
}

// Insert adds an already created component. An existing component with
// the same id is replaced in place.
func (g *Graph) Insert(comp *Component) {
	if g.component == nil {
		g.component = map[string]*Component{}
	}

	if _, ok := g.component[comp.Id]; !ok {
		g.order = append(g.order, comp.Id)
	}
	g.component[comp.Id] = comp
	g.serial++
}

// MoveComponent repositions a component. Unknown ids are ignored.
func (g *Graph) MoveComponent(id string, x, y int) {
	comp, ok := g.component[id]
	if !ok {
		return
	}

	comp.X = x
	comp.Y = y
}

// RemoveComponent deletes a component. Wires that reference it are left
// in place, and are ignored by everything that resolves endpoints.
func (g *Graph) RemoveComponent(id string) (ok bool) {
	_, ok = g.component[id]
	if !ok {
		return
	}

	delete(g.component, id)
	g.order = slices.DeleteFunc(g.order, func(s string) bool { return s == id })

	return
}

// Component looks up a component by id.
func (g *Graph) Component(id string) (comp *Component, ok bool) {
	comp, ok = g.component[id]
	return
}

// Pin resolves an endpoint to its pin.
func (g *Graph) Pin(ep Endpoint) (pin Pin, err error) {
	comp, ok := g.component[ep.ComponentId]
	if !ok {
		err = ErrComponentMissing
		return
	}

	pin, ok = comp.Pin(ep.PinId)
	if !ok {
		err = ErrPinMissing
		return
	}

	return
}

// Components iterates over the components in insertion order.
func (g *Graph) Components() iter.Seq[*Component] {
	return func(yield func(comp *Component) bool) {
		for _, id := range g.order {
			if !yield(g.component[id]) {
				return
			}
		}
	}
}

// OfType iterates over the components of a type, in insertion order.
func (g *Graph) OfType(t Type) iter.Seq[*Component] {
	return func(yield func(comp *Component) bool) {
		for comp := range g.Components() {
			if comp.Type != t {
				continue
			}
			if !yield(comp) {
				return
			}
		}
	}
}

// FindByType returns the first component of a type.
func (g *Graph) FindByType(t Type) (comp *Component, ok bool) {
	for comp = range g.OfType(t) {
		return comp, true
	}

	return nil, false
}

// AddWire appends a wire between two endpoints. Compatibility is not
// checked here; see Selection.
func (g *Graph) AddWire(from, to Endpoint) (wire Wire) {
	wire = Wire{
		Id:   fmt.Sprintf("wire-%d", g.wires),
		From: from,
		To:   to,
	}
	g.wires++

	g.Wires = append(g.Wires, wire)

	return
}

// Connected returns true if some wire joins a and b.
func (g *Graph) Connected(a, b Endpoint) bool {
	return slices.ContainsFunc(g.Wires, func(w Wire) bool { return w.Joins(a, b) })
}

// ClearWires removes all wires.
func (g *Graph) ClearWires() {
	g.Wires = nil
	g.wires = 0
}

// ResetState restores every component to the initial state of its type.
func (g *Graph) ResetState() {
	for comp := range g.Components() {
		state, err := InitialState(comp.Type)
		if err != nil {
			// Only valid types can be inserted via AddComponent.
			continue
		}
		comp.State = state
	}
}

// Clone returns a deep copy of the graph.
func (g *Graph) Clone() *Graph {
	clone := &Graph{
		Wires:     slices.Clone(g.Wires),
		component: make(map[string]*Component, len(g.component)),
		order:     slices.Clone(g.order),
		serial:    g.serial,
		wires:     g.wires,
	}

	for id, comp := range g.component {
		clone.component[id] = comp.Clone()
	}

	return clone
}
