package registry

import (
	"fmt"

	"github.com/specialistvlad/jsonlang/internal/backend"
	"github.com/specialistvlad/jsonlang/internal/value"
)

// Args is the positional argument list of a native call.
type Args []any

// Len returns the number of arguments.
func (a Args) Len() int { return len(a) }

// At returns the i-th argument or nil when it is missing.
func (a Args) At(i int) any {
	if i < 0 || i >= len(a) {
		return nil
	}
	return a[i]
}

// Number returns the i-th argument as a number, or def when it is missing.
func (a Args) Number(i int, def float64) float64 {
	if i >= len(a) {
		return def
	}
	return value.ToNumber(a[i])
}

// String returns the i-th argument as text, or def when it is missing.
func (a Args) String(i int, def string) string {
	if i >= len(a) {
		return def
	}
	return value.ToString(a[i])
}

// Array returns the i-th argument as an array. Anything else, including a
// missing argument, is a type mismatch.
func (a Args) Array(i int) ([]any, error) {
	arr, ok := a.At(i).([]any)
	if !ok {
		return nil, fmt.Errorf("%w: argument %d must be an array, got %s", backend.ErrTypeMismatch, i+1, value.Describe(a.At(i)))
	}
	return arr, nil
}
