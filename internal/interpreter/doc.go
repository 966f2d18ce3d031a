// Package interpreter executes program functions.
//
// Execution is a single linear pass over a function's action list: every
// action runs, in order, and the function's result is whatever the last action
// produced. There is no early return and no branching; "if_statement" and
// "loop" actions are recognised but yield nil.
//
// Calls resolve in a fixed order: a function defined by the current program,
// then the program's import table, then the "imports." namespaced form, and
// finally the backend itself.
//
// An Interpreter owns one variable store shared by every function it runs. It
// is not safe for concurrent use.
package interpreter
