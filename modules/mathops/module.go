// Package mathops registers the arithmetic native operations.
package mathops

import (
	"context"
	"fmt"
	"math"

	"github.com/specialistvlad/jsonlang/internal/backend"
	"github.com/specialistvlad/jsonlang/internal/registry"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// binary wraps a two-operand numeric function. Missing operands yield 0.
func binary(fn func(a, b float64) (float64, error)) registry.Handler {
	return func(ctx context.Context, env *registry.Env, args registry.Args) (any, error) {
		if args.Len() < 2 {
			return float64(0), nil
		}
		return fn(args.Number(0, 0), args.Number(1, 0))
	}
}

// unary wraps a one-operand numeric function. A missing operand yields 0.
func unary(fn func(x float64) (float64, error)) registry.Handler {
	return func(ctx context.Context, env *registry.Env, args registry.Args) (any, error) {
		if args.Len() == 0 {
			return float64(0), nil
		}
		return fn(args.Number(0, 0))
	}
}

func pure(fn func(x float64) float64) func(float64) (float64, error) {
	return func(x float64) (float64, error) { return fn(x), nil }
}

// Divide returns a/b and fails with backend.ErrDivisionByZero when b is 0.
func Divide(a, b float64) (float64, error) {
	if b == 0 {
		return 0, fmt.Errorf("%w: %v / 0", backend.ErrDivisionByZero, a)
	}
	return a / b, nil
}

// Sqrt fails with backend.ErrNegativeRadicand for x < 0.
func Sqrt(x float64) (float64, error) {
	if x < 0 {
		return 0, fmt.Errorf("%w: sqrt(%v)", backend.ErrNegativeRadicand, x)
	}
	return math.Sqrt(x), nil
}

// round rounds x half away from zero to the given number of decimals.
func round(ctx context.Context, env *registry.Env, args registry.Args) (any, error) {
	if args.Len() == 0 {
		return float64(0), nil
	}
	x := args.Number(0, 0)
	decimals := args.Number(1, 0)
	if decimals == 0 {
		return math.Round(x), nil
	}
	scale := math.Pow(10, math.Trunc(decimals))
	return math.Round(x*scale) / scale, nil
}

// Register registers the arithmetic operations with the registry.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterOperation(&registry.RegisteredOperation{
		Name:    "add",
		Aliases: []string{"math.Add"},
		Fn:      binary(func(a, b float64) (float64, error) { return a + b, nil }),
	})
	r.RegisterOperation(&registry.RegisteredOperation{
		Name:    "subtract",
		Aliases: []string{"math.Subtract"},
		Fn:      binary(func(a, b float64) (float64, error) { return a - b, nil }),
	})
	r.RegisterOperation(&registry.RegisteredOperation{
		Name:    "multiply",
		Aliases: []string{"math.Multiply"},
		Fn:      binary(func(a, b float64) (float64, error) { return a * b, nil }),
	})
	r.RegisterOperation(&registry.RegisteredOperation{
		Name:    "divide",
		Aliases: []string{"math.Divide"},
		Fn:      binary(Divide),
	})
	r.RegisterOperation(&registry.RegisteredOperation{
		Name:    "power",
		Aliases: []string{"math.Pow"},
		Fn:      binary(func(a, b float64) (float64, error) { return math.Pow(a, b), nil }),
	})
	r.RegisterOperation(&registry.RegisteredOperation{
		Name:    "sqrt",
		Aliases: []string{"math.Sqrt"},
		Fn:      unary(Sqrt),
	})
	r.RegisterOperation(&registry.RegisteredOperation{
		Name:    "abs",
		Aliases: []string{"math.Abs"},
		Fn:      unary(pure(math.Abs)),
	})
	r.RegisterOperation(&registry.RegisteredOperation{
		Name:    "floor",
		Aliases: []string{"math.Floor"},
		Fn:      unary(pure(math.Floor)),
	})
	r.RegisterOperation(&registry.RegisteredOperation{
		Name:    "ceil",
		Aliases: []string{"math.Ceil"},
		Fn:      unary(pure(math.Ceil)),
	})
	r.RegisterOperation(&registry.RegisteredOperation{
		Name:    "round",
		Aliases: []string{"math.Round"},
		Fn:      round,
	})
}
