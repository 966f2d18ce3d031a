package interpreter

import (
	"fmt"

	"github.com/specialistvlad/jsonlang/internal/backend"
	"github.com/specialistvlad/jsonlang/internal/value"
)

// evaluateArgs converts raw call arguments. Typed literal records such as
// {"type": "Number", "value": "3"} are coerced to their primitive; everything
// else passes through unchanged.
func evaluateArgs(raw []any) ([]any, error) {
	args := make([]any, 0, len(raw))
	for i, r := range raw {
		v, err := evaluateArg(r)
		if err != nil {
			return nil, fmt.Errorf("argument %d: %w", i, err)
		}
		args = append(args, v)
	}
	return args, nil
}

func evaluateArg(raw any) (any, error) {
	rec, ok := raw.(map[string]any)
	if !ok {
		return raw, nil
	}
	tag, ok := rec["type"].(string)
	if !ok {
		return raw, nil
	}
	ty, ok := value.LiteralType(tag)
	if !ok {
		return raw, nil
	}

	v, err := value.Coerce(rec["value"], ty)
	if err != nil {
		return nil, fmt.Errorf("%w: %s literal from %s: %w", backend.ErrTypeMismatch, tag, value.Describe(rec["value"]), err)
	}
	return v, nil
}
