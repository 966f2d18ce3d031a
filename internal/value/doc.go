// Package value holds the helpers the engine uses to reason about the
// dynamic, JSON-shaped values that flow between actions and native
// operations: strings, float64 numbers, bools, []any arrays, map[string]any
// records and nil.
//
// Conversions between those shapes are delegated to go-cty so that the
// coercion rules (for example "3" -> 3, "true" -> true) are the same
// everywhere in the engine.
package value
