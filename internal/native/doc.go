// Package native implements the reference backend provider ("go").
//
// The provider is built from the native operation families in modules/.
// When a registry descriptor is available, only the function names it
// declares are exposed, each bound to the native operation named by its
// implementation key; unresolved keys are logged and skipped. When the
// descriptor is absent or declares nothing, every native operation is
// exposed under its canonical name.
//
// A Provider is not safe for concurrent use: operations share the Env and
// its random source.
package native
