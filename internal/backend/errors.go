package backend

import "errors"

var (
	// ErrUnknownFunction is returned by Dispatch when no operation is registered
	// under the requested name.
	ErrUnknownFunction = errors.New("unknown function")

	ErrDivisionByZero   = errors.New("division by zero")
	ErrNegativeRadicand = errors.New("square root of a negative number")
	ErrIndexOutOfBounds = errors.New("index out of bounds")
	ErrTypeMismatch     = errors.New("type mismatch")
	ErrEmptyCollection  = errors.New("empty collection")
	ErrIO               = errors.New("i/o failure")
)
