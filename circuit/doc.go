// Package circuit implements the component model of the μCircuit bench.
//
// A circuit is a Graph of typed Components, each carrying a fixed set of
// Pins, joined by Wires. Components are created by NewComponent with a pin
// layout and initial state determined by their Type. Wires are only formed
// between pins whose classes pass CanConnect; the Selection type implements
// the two-click gate that enforces this before a wire reaches the Graph.
package circuit
