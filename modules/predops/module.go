// Package predops registers the predicate native operations.
package predops

import (
	"context"
	"strings"

	"github.com/specialistvlad/jsonlang/internal/registry"
	"github.com/specialistvlad/jsonlang/internal/value"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// isEmpty is true for blank strings, empty arrays and null. With no
// argument at all it is true as well.
func isEmpty(ctx context.Context, env *registry.Env, args registry.Args) (any, error) {
	switch v := args.At(0).(type) {
	case nil:
		return true, nil
	case string:
		return strings.TrimSpace(v) == "", nil
	case []any:
		return len(v) == 0, nil
	}
	return false, nil
}

func isNumber(ctx context.Context, env *registry.Env, args registry.Args) (any, error) {
	return args.Len() > 0 && value.IsNumeric(args.At(0)), nil
}

func isString(ctx context.Context, env *registry.Env, args registry.Args) (any, error) {
	_, ok := args.At(0).(string)
	return ok, nil
}

func isArray(ctx context.Context, env *registry.Env, args registry.Args) (any, error) {
	_, ok := args.At(0).([]any)
	return ok, nil
}

func isBoolean(ctx context.Context, env *registry.Env, args registry.Args) (any, error) {
	_, ok := args.At(0).(bool)
	return ok, nil
}

// Register registers the predicate operations with the registry.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterOperation(&registry.RegisteredOperation{Name: "is_empty", Aliases: []string{"utils.IsEmpty"}, Fn: isEmpty})
	r.RegisterOperation(&registry.RegisteredOperation{Name: "is_number", Aliases: []string{"utils.IsNumber"}, Fn: isNumber})
	r.RegisterOperation(&registry.RegisteredOperation{Name: "is_string", Aliases: []string{"utils.IsString"}, Fn: isString})
	r.RegisterOperation(&registry.RegisteredOperation{Name: "is_array", Aliases: []string{"utils.IsArray"}, Fn: isArray})
	r.RegisterOperation(&registry.RegisteredOperation{Name: "is_boolean", Aliases: []string{"utils.IsBoolean"}, Fn: isBoolean})
}
