// Package strops registers the string native operations. Lengths and
// offsets count runes, not bytes.
package strops

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/specialistvlad/jsonlang/internal/registry"
	"github.com/specialistvlad/jsonlang/internal/value"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

func concat(ctx context.Context, env *registry.Env, args registry.Args) (any, error) {
	var sb strings.Builder
	for _, arg := range args {
		sb.WriteString(value.ToString(arg))
	}
	return sb.String(), nil
}

func length(ctx context.Context, env *registry.Env, args registry.Args) (any, error) {
	if args.Len() == 0 {
		return float64(0), nil
	}
	return float64(utf8.RuneCountInString(args.String(0, ""))), nil
}

// substring returns s[start:end] clamped to the string bounds.
func substring(ctx context.Context, env *registry.Env, args registry.Args) (any, error) {
	if args.Len() < 2 {
		return "", nil
	}
	runes := []rune(args.String(0, ""))
	start := int(args.Number(1, 0))
	end := len(runes)
	if args.Len() > 2 {
		end = int(args.Number(2, float64(len(runes))))
	}

	start = max(start, 0)
	end = min(end, len(runes))
	if start >= end {
		return "", nil
	}
	return string(runes[start:end]), nil
}

func mapString(fn func(string) string) registry.Handler {
	return func(ctx context.Context, env *registry.Env, args registry.Args) (any, error) {
		if args.Len() == 0 {
			return "", nil
		}
		return fn(args.String(0, "")), nil
	}
}

func split(ctx context.Context, env *registry.Env, args registry.Args) (any, error) {
	if args.Len() == 0 {
		return []any{}, nil
	}
	parts := strings.Split(args.String(0, ""), args.String(1, " "))
	out := make([]any, len(parts))
	for i, p := range parts {
		out[i] = p
	}
	return out, nil
}

func join(ctx context.Context, env *registry.Env, args registry.Args) (any, error) {
	items, err := args.Array(0)
	if err != nil {
		return nil, err
	}
	parts := make([]string, len(items))
	for i, item := range items {
		parts[i] = value.ToString(item)
	}
	return strings.Join(parts, args.String(1, "")), nil
}

// Register registers the string operations with the registry.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterOperation(&registry.RegisteredOperation{
		Name:    "concat",
		Aliases: []string{"strings.Concat"},
		Fn:      concat,
	})
	r.RegisterOperation(&registry.RegisteredOperation{
		Name:    "length",
		Aliases: []string{"len"},
		Fn:      length,
	})
	r.RegisterOperation(&registry.RegisteredOperation{
		Name:    "substring",
		Aliases: []string{"strings.Substring"},
		Fn:      substring,
	})
	r.RegisterOperation(&registry.RegisteredOperation{
		Name:    "to_upper",
		Aliases: []string{"strings.ToUpper"},
		Fn:      mapString(strings.ToUpper),
	})
	r.RegisterOperation(&registry.RegisteredOperation{
		Name:    "to_lower",
		Aliases: []string{"strings.ToLower"},
		Fn:      mapString(strings.ToLower),
	})
	r.RegisterOperation(&registry.RegisteredOperation{
		Name:    "trim",
		Aliases: []string{"strings.TrimSpace"},
		Fn:      mapString(strings.TrimSpace),
	})
	r.RegisterOperation(&registry.RegisteredOperation{
		Name:    "split",
		Aliases: []string{"strings.Split"},
		Fn:      split,
	})
	r.RegisterOperation(&registry.RegisteredOperation{
		Name:    "join",
		Aliases: []string{"strings.Join"},
		Fn:      join,
	})
}
