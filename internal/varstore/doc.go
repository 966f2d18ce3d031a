// Package varstore provides the runtime variable store of an interpreter.
//
// # Scope
//
// There is exactly one store per interpreter instance and it is not scoped
// per function invocation: a variable declared while one function runs is
// visible to every function executed afterwards by the same interpreter.
//
// # Concurrency Model
//
// Execution is single-threaded, so the store does no locking. Callers that
// share an interpreter across goroutines must synchronize externally.
package varstore
