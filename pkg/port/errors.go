package port

import (
	"errors"
	"fmt"
)

// ErrTypeMismatch is returned by Connect when the output and input
// value types differ.
var ErrTypeMismatch = errors.New("port: type mismatch")

// ErrAlreadyConnected is returned by Connect when the input already
// has a source.
var ErrAlreadyConnected = errors.New("port: input already connected")

func typeMismatch(o Output, i Input) error {
	return fmt.Errorf("%w: output carries %s, input expects %s", ErrTypeMismatch, o.ValueType(), i.ValueType())
}
