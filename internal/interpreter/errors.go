package interpreter

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingMainFunction means a program run without a "main" function.
	ErrMissingMainFunction = errors.New("no main function defined")
	// ErrUndefinedFunction means a call target does not exist in the program
	// it was resolved against.
	ErrUndefinedFunction = errors.New("undefined function")
	// ErrCallDepthExceeded means nested calls went deeper than the configured
	// limit.
	ErrCallDepthExceeded = errors.New("maximum call depth exceeded")
)

// ImportError reports a failed call through a module import. It wraps the
// underlying module or function error.
type ImportError struct {
	Name string
	Path string
	Err  error
}

func (e *ImportError) Error() string {
	return fmt.Sprintf("import '%s' -> '%s': %v", e.Name, e.Path, e.Err)
}

func (e *ImportError) Unwrap() error {
	return e.Err
}
