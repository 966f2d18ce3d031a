// Package arrayops registers the array native operations. Operations never
// mutate their input; push, set, sort and reverse return a new array.
package arrayops

import (
	"context"
	"fmt"
	"slices"
	"sort"

	"github.com/specialistvlad/jsonlang/internal/backend"
	"github.com/specialistvlad/jsonlang/internal/registry"
	"github.com/specialistvlad/jsonlang/internal/value"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

func create(ctx context.Context, env *registry.Env, args registry.Args) (any, error) {
	out := make([]any, len(args))
	copy(out, args)
	return out, nil
}

func push(ctx context.Context, env *registry.Env, args registry.Args) (any, error) {
	arr, err := args.Array(0)
	if err != nil {
		return nil, err
	}
	out := slices.Clone(arr)
	return append(out, args.At(1)), nil
}

func pop(ctx context.Context, env *registry.Env, args registry.Args) (any, error) {
	arr, err := args.Array(0)
	if err != nil {
		return nil, err
	}
	if len(arr) == 0 {
		return nil, fmt.Errorf("%w: cannot pop from an empty array", backend.ErrEmptyCollection)
	}
	return arr[len(arr)-1], nil
}

// index validates the index argument against arr.
func index(arr []any, args registry.Args, pos int) (int, error) {
	i := int(args.Number(pos, 0))
	if i < 0 || i >= len(arr) {
		return 0, fmt.Errorf("%w: index %d, length %d", backend.ErrIndexOutOfBounds, i, len(arr))
	}
	return i, nil
}

func get(ctx context.Context, env *registry.Env, args registry.Args) (any, error) {
	arr, err := args.Array(0)
	if err != nil {
		return nil, err
	}
	i, err := index(arr, args, 1)
	if err != nil {
		return nil, err
	}
	return arr[i], nil
}

func set(ctx context.Context, env *registry.Env, args registry.Args) (any, error) {
	arr, err := args.Array(0)
	if err != nil {
		return nil, err
	}
	i, err := index(arr, args, 1)
	if err != nil {
		return nil, err
	}
	out := slices.Clone(arr)
	out[i] = args.At(2)
	return out, nil
}

func length(ctx context.Context, env *registry.Env, args registry.Args) (any, error) {
	arr, err := args.Array(0)
	if err != nil {
		return nil, err
	}
	return float64(len(arr)), nil
}

// sortArray sorts ascending, or descending when the second argument is truthy.
func sortArray(ctx context.Context, env *registry.Env, args registry.Args) (any, error) {
	arr, err := args.Array(0)
	if err != nil {
		return nil, err
	}
	out := slices.Clone(arr)
	reverse := value.ToBoolean(args.At(1))
	sort.SliceStable(out, func(i, j int) bool {
		if reverse {
			return value.Less(out[j], out[i])
		}
		return value.Less(out[i], out[j])
	})
	return out, nil
}

func reverse(ctx context.Context, env *registry.Env, args registry.Args) (any, error) {
	arr, err := args.Array(0)
	if err != nil {
		return nil, err
	}
	out := slices.Clone(arr)
	slices.Reverse(out)
	return out, nil
}

// Register registers the array operations with the registry.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterOperation(&registry.RegisteredOperation{Name: "array_create", Aliases: []string{"make"}, Fn: create})
	r.RegisterOperation(&registry.RegisteredOperation{Name: "array_push", Aliases: []string{"append"}, Fn: push})
	r.RegisterOperation(&registry.RegisteredOperation{Name: "array_pop", Aliases: []string{"slice.Pop"}, Fn: pop})
	r.RegisterOperation(&registry.RegisteredOperation{Name: "array_get", Aliases: []string{"slice.Get"}, Fn: get})
	r.RegisterOperation(&registry.RegisteredOperation{Name: "array_set", Aliases: []string{"slice.Set"}, Fn: set})
	r.RegisterOperation(&registry.RegisteredOperation{Name: "array_length", Aliases: []string{"slice.Len"}, Fn: length})
	r.RegisterOperation(&registry.RegisteredOperation{Name: "array_sort", Aliases: []string{"sort.Sort"}, Fn: sortArray})
	r.RegisterOperation(&registry.RegisteredOperation{Name: "array_reverse", Aliases: []string{"slice.Reverse"}, Fn: reverse})
}
