package circuit

import (
	"slices"
)

// Type is the kind of a component.
type Type int

//go:generate go tool stringer -linecomment -type=Type
const (
	TYPE_MICROCONTROLLER = Type(0) // microcontroller
	TYPE_LED             = Type(1) // led
	TYPE_POWER_SOURCE    = Type(2) // powerSource
	TYPE_SIGNAL_SOURCE   = Type(3) // signalSource
	TYPE_SIGNAL_TARGET   = Type(4) // signalTarget
)

// Types lists every component type, in palette order.
var Types = []Type{
	TYPE_MICROCONTROLLER,
	TYPE_LED,
	TYPE_POWER_SOURCE,
	TYPE_SIGNAL_SOURCE,
	TYPE_SIGNAL_TARGET,
}

var typeTitle = [...]string{
	TYPE_MICROCONTROLLER: "Microcontroller",
	TYPE_LED:             "LED",
	TYPE_POWER_SOURCE:    "Power source",
	TYPE_SIGNAL_SOURCE:   "Signal source",
	TYPE_SIGNAL_TARGET:   "Signal target",
}

// Valid returns true for members of the closed type set.
func (t Type) Valid() bool {
	return slices.Contains(Types, t)
}

// Title returns the human readable name of the type.
func (t Type) Title() string {
	if !t.Valid() {
		return t.String()
	}
	return f(typeTitle[t])
}

// ParseType converts a type tag to a Type.
func ParseType(tag string) (t Type, err error) {
	n := slices.IndexFunc(Types, func(t Type) bool { return t.String() == tag })
	if n < 0 {
		err = ErrUnknownComponentType
		return
	}

	t = Types[n]
	return
}

// State holds the behavior relevant fields of a component.
// Their meaning depends on the component type.
type State struct {
	Powered  bool
	Value    int
	Blinking bool
	Signal   int
	Error    string
}

// Component is a placed circuit element.
type Component struct {
	Id    string
	Type  Type
	X, Y  int
	Pins  []Pin
	State State
}

// Pin finds a pin by id.
func (comp *Component) Pin(id string) (pin Pin, ok bool) {
	n := slices.IndexFunc(comp.Pins, func(p Pin) bool { return p.Id == id })
	if n < 0 {
		return
	}

	return comp.Pins[n], true
}

// Clone returns a deep copy of the component.
func (comp *Component) Clone() *Component {
	clone := *comp
	clone.Pins = slices.Clone(comp.Pins)
	for n, pin := range clone.Pins {
		if pin.Value != nil {
			value := *pin.Value
			clone.Pins[n].Value = &value
		}
	}

	return &clone
}

// layout is the fixed pin set, initial state and default position of a type.
type layout struct {
	x, y  int
	pins  []Pin
	state State
}

// layoutOf returns the layout for a type.
func layoutOf(t Type) (lay layout, err error) {
	switch t {
	case TYPE_MICROCONTROLLER:
		lay = layout{
			x: 100, y: 100,
			pins: []Pin{
				{Id: "vcc", Class: PIN_POWER, X: 0, Y: 10},
				{Id: "gnd", Class: PIN_GROUND, X: 0, Y: 70},
				{Id: "p0", Class: PIN_OUTPUT, X: 80, Y: 30},
				{Id: "p1", Class: PIN_INPUT, X: 80, Y: 50},
			},
			state: State{Powered: false, Value: 0},
		}
	case TYPE_LED:
		lay = layout{
			x: 250, y: 100,
			pins: []Pin{
				{Id: "in", Class: PIN_INPUT, X: 0, Y: 20},
			},
			state: State{Powered: false, Value: 0, Blinking: false},
		}
	case TYPE_POWER_SOURCE:
		lay = layout{
			x: 50, y: 50,
			pins: []Pin{
				{Id: "vcc", Class: PIN_POWER, X: 80, Y: 20},
				{Id: "gnd", Class: PIN_GROUND, X: 80, Y: 60},
			},
			state: State{Value: 1},
		}
	case TYPE_SIGNAL_SOURCE:
		lay = layout{
			x: 50, y: 150,
			pins: []Pin{
				{Id: "out", Class: PIN_OUTPUT, X: 80, Y: 30},
			},
			state: State{Signal: SIGNAL_DEFAULT},
		}
	case TYPE_SIGNAL_TARGET:
		lay = layout{
			x: 300, y: 150,
			pins: []Pin{
				{Id: "in", Class: PIN_INPUT, X: 0, Y: 30},
			},
			state: State{Value: 0},
		}
	default:
		err = ErrUnknownComponentType
	}

	return
}

// SIGNAL_DEFAULT is the signal level of a new signal source.
const SIGNAL_DEFAULT = 5

// NewComponent creates a component of a type, with its fixed pins and
// initial state, at the type's default position.
func NewComponent(t Type, id string) (comp *Component, err error) {
	lay, err := layoutOf(t)
	if err != nil {
		return
	}

	comp = &Component{
		Id:    id,
		Type:  t,
		X:     lay.x,
		Y:     lay.y,
		Pins:  lay.pins,
		State: lay.state,
	}

	return
}

// InitialState returns the state a new component of the type starts with.
func InitialState(t Type) (state State, err error) {
	lay, err := layoutOf(t)
	if err != nil {
		return
	}

	state = lay.state
	return
}
