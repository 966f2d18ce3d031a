// Package registry provides the central "glue" between native operation
// names and the compiled Go functions that implement them.
//
// Operation families (see the modules/ tree) register their handlers into a
// Registry under a canonical name plus any number of implementation keys
// (aliases). A backend registry descriptor, when present, then selects which
// declared function names are exposed and which implementation key each one
// binds to. Registering the same name or key twice is a programmer error and
// panics.
package registry
