package circuit

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewComponent(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		tag   string
		pins  map[string]PinClass
		order []string
		state State
	}){
		{"microcontroller",
			map[string]PinClass{"vcc": PIN_POWER, "gnd": PIN_GROUND, "p0": PIN_OUTPUT, "p1": PIN_INPUT},
			[]string{"vcc", "gnd", "p0", "p1"},
			State{Powered: false, Value: 0}},
		{"led",
			map[string]PinClass{"in": PIN_INPUT},
			[]string{"in"},
			State{Powered: false, Value: 0, Blinking: false}},
		{"powerSource",
			map[string]PinClass{"vcc": PIN_POWER, "gnd": PIN_GROUND},
			[]string{"vcc", "gnd"},
			State{Value: 1}},
		{"signalSource",
			map[string]PinClass{"out": PIN_OUTPUT},
			[]string{"out"},
			State{Signal: 5}},
		{"signalTarget",
			map[string]PinClass{"in": PIN_INPUT},
			[]string{"in"},
			State{Value: 0}},
	}

	for _, entry := range table {
		typ, err := ParseType(entry.tag)
		assert.NoError(err, entry.tag)
		assert.Equal(entry.tag, typ.String())

		comp, err := NewComponent(typ, "x")
		assert.NoError(err, entry.tag)
		assert.Equal("x", comp.Id)
		assert.Equal(typ, comp.Type)
		assert.Equal(entry.state, comp.State, entry.tag)

		var order []string
		for _, pin := range comp.Pins {
			order = append(order, pin.Id)
			assert.Equal(entry.pins[pin.Id], pin.Class, entry.tag+"."+pin.Id)
		}
		assert.Equal(entry.order, order, entry.tag)

		state, err := InitialState(typ)
		assert.NoError(err)
		assert.Equal(entry.state, state)
	}
}

func TestNewComponentUnknown(t *testing.T) {
	assert := assert.New(t)

	_, err := ParseType("resistor")
	assert.ErrorIs(err, ErrUnknownComponentType)

	_, err = NewComponent(Type(42), "x")
	assert.ErrorIs(err, ErrUnknownComponentType)

	_, err = NewComponent(Type(-1), "x")
	assert.ErrorIs(err, ErrUnknownComponentType)

	_, err = InitialState(Type(5))
	assert.ErrorIs(err, ErrUnknownComponentType)
}

func TestComponentIndependentPins(t *testing.T) {
	assert := assert.New(t)

	a, _ := NewComponent(TYPE_LED, "a")
	b, _ := NewComponent(TYPE_LED, "b")

	a.Pins[0].X = 99
	assert.Equal(0, b.Pins[0].X)
}

func TestComponentClone(t *testing.T) {
	assert := assert.New(t)

	comp, _ := NewComponent(TYPE_MICROCONTROLLER, "mc")
	value := 3
	comp.Pins[2].Value = &value

	clone := comp.Clone()
	clone.State.Value = 7
	clone.Pins[0].Id = "changed"
	*clone.Pins[2].Value = 4

	assert.Equal(0, comp.State.Value)
	assert.Equal("vcc", comp.Pins[0].Id)
	assert.Equal(3, *comp.Pins[2].Value)
}

func TestTypeTitle(t *testing.T) {
	assert := assert.New(t)

	assert.Equal("Microcontroller", TYPE_MICROCONTROLLER.Title())
	assert.Equal("LED", TYPE_LED.Title())
	assert.Equal("Power source", TYPE_POWER_SOURCE.Title())
	assert.Equal("Signal source", TYPE_SIGNAL_SOURCE.Title())
	assert.Equal("Signal target", TYPE_SIGNAL_TARGET.Title())
	assert.Equal(len(Types), len(typeTitle))
	assert.False(Type(99).Valid())
	assert.Equal("Type(99)", Type(99).Title())
}
