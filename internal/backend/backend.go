// Package backend defines the capability every execution provider exposes
// to the interpreter: a named, versioned table of primitive operations that
// are invoked by name with a positional argument list.
//
// A Backend is not safe for concurrent use unless the concrete provider
// documents otherwise.
package backend

import "context"

// Backend is a pluggable provider of primitive operations.
type Backend interface {
	// Name returns the provider name, e.g. "go".
	Name() string
	// Version returns the provider version string.
	Version() string
	// Dispatch invokes the operation registered under name. It fails with
	// ErrUnknownFunction when nothing is registered under that name.
	Dispatch(ctx context.Context, name string, args []any) (any, error)
	// Functions returns the registered operation names in sorted order.
	Functions() []string
}
