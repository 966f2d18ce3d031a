// Package convops registers the type conversion native operations.
package convops

import (
	"context"

	"github.com/specialistvlad/jsonlang/internal/registry"
	"github.com/specialistvlad/jsonlang/internal/value"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

func toString(ctx context.Context, env *registry.Env, args registry.Args) (any, error) {
	return args.String(0, ""), nil
}

// toNumber never fails: unparsable input yields 0.
func toNumber(ctx context.Context, env *registry.Env, args registry.Args) (any, error) {
	return args.Number(0, 0), nil
}

func toBoolean(ctx context.Context, env *registry.Env, args registry.Args) (any, error) {
	if args.Len() == 0 {
		return false, nil
	}
	return value.ToBoolean(args.At(0)), nil
}

// Register registers the conversion operations with the registry.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterOperation(&registry.RegisteredOperation{Name: "to_string", Aliases: []string{"fmt.Sprint"}, Fn: toString})
	r.RegisterOperation(&registry.RegisteredOperation{Name: "to_number", Aliases: []string{"strconv.ParseFloat"}, Fn: toNumber})
	r.RegisterOperation(&registry.RegisteredOperation{Name: "to_boolean", Aliases: []string{"strconv.ParseBool"}, Fn: toBoolean})
}
