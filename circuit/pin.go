package circuit

import (
	"strings"
)

// PinClass is the electrical class of a pin.
type PinClass int

//go:generate go tool stringer -linecomment -type=PinClass
const (
	PIN_NONE   = PinClass(0) // none
	PIN_POWER  = PinClass(1) // power
	PIN_GROUND = PinClass(2) // ground
	PIN_INPUT  = PinClass(3) // input
	PIN_OUTPUT = PinClass(4) // output
)

// Pin is a named connection point on a component.
type Pin struct {
	Id    string   // Unique within the owning component.
	Class PinClass // Electrical class.
	X, Y  int      // Offset from the component origin, for rendering.
	Value *int     // Optional pin value.
}

// Endpoint names a pin on a specific component.
type Endpoint struct {
	ComponentId string
	PinId       string
}

// ParseEndpoint parses the 'component.pin' form.
func ParseEndpoint(text string) (ep Endpoint, err error) {
	n := strings.LastIndexByte(text, '.')
	if n <= 0 || n == len(text)-1 {
		err = ErrEndpointSyntax(text)
		return
	}

	ep = Endpoint{ComponentId: text[:n], PinId: text[n+1:]}
	return
}

func (ep Endpoint) String() string {
	return ep.ComponentId + "." + ep.PinId
}

// CanConnect returns true if the two pins may be joined by a wire.
// Only power-power, ground-ground and output-input (in either order) are
// permitted.
func CanConnect(a, b Pin) bool {
	switch {
	case a.Class == PIN_POWER && b.Class == PIN_POWER:
		return true
	case a.Class == PIN_GROUND && b.Class == PIN_GROUND:
		return true
	case a.Class == PIN_OUTPUT && b.Class == PIN_INPUT:
		return true
	case a.Class == PIN_INPUT && b.Class == PIN_OUTPUT:
		return true
	}

	return false
}
