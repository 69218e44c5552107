package circuit

import (
	"errors"

	"github.com/ezrec/ucircuit/translate"
)

var f = translate.From

var (
	ErrUnknownComponentType  = errors.New(f("unknown component type"))
	ErrInvalidConnectionType = errors.New(f("invalid connection type"))
	ErrComponentMissing      = errors.New(f("component missing"))
	ErrPinMissing            = errors.New(f("pin missing"))
)

// ErrEndpointSyntax is returned when an endpoint is not 'component.pin'.
type ErrEndpointSyntax string

func (err ErrEndpointSyntax) Error() string {
	return f("'%v' is not a component.pin endpoint", string(err))
}
