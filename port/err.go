package port

import (
	"errors"

	"github.com/ezrec/ucircuit/translate"
)

var f = translate.From

var (
	// Port errors
	ErrPortReadOnly  = errors.New(f("port is input only"))
	ErrPortWriteOnly = errors.New(f("port is output only"))
)
