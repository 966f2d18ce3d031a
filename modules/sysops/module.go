// Package sysops registers the system native operations: sleeping, random
// numbers, the clock and process exit. All of them go through registry.Env
// so tests can replace the real process facilities.
package sysops

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/specialistvlad/jsonlang/internal/backend"
	"github.com/specialistvlad/jsonlang/internal/ctxlog"
	"github.com/specialistvlad/jsonlang/internal/registry"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// sleep blocks for the given number of seconds.
func sleep(ctx context.Context, env *registry.Env, args registry.Args) (any, error) {
	if args.Len() == 0 {
		return nil, nil
	}
	seconds := args.Number(0, 0)
	if seconds <= 0 {
		return nil, nil
	}
	env.Sleep(time.Duration(seconds * float64(time.Second)))
	return nil, nil
}

func random(ctx context.Context, env *registry.Env, args registry.Args) (any, error) {
	return env.Rand.Float64(), nil
}

// maxExactInt is the largest magnitude a float64 holds without losing
// integer precision.
const maxExactInt = 1 << 53

// randomInt returns an integer in [min, max], both ends inclusive.
func randomInt(ctx context.Context, env *registry.Env, args registry.Args) (any, error) {
	if args.Len() < 2 {
		return float64(0), nil
	}
	lo, err := intBound(args.Number(0, 0), 1)
	if err != nil {
		return nil, err
	}
	hi, err := intBound(args.Number(1, 0), 2)
	if err != nil {
		return nil, err
	}
	if hi < lo {
		lo, hi = hi, lo
	}
	return float64(lo + env.Rand.Int63n(hi-lo+1)), nil
}

// intBound truncates f to an integer, rejecting values outside the exact
// float64 integer range.
func intBound(f float64, pos int) (int64, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) || math.Abs(f) > maxExactInt {
		return 0, fmt.Errorf("%w: argument %d must be an integer within ±2^53, got %v", backend.ErrTypeMismatch, pos, f)
	}
	return int64(f), nil
}

// timeNow returns the current Unix time in fractional seconds.
func timeNow(ctx context.Context, env *registry.Env, args registry.Args) (any, error) {
	return float64(env.Now().UnixNano()) / float64(time.Second), nil
}

func exit(ctx context.Context, env *registry.Env, args registry.Args) (any, error) {
	code := int(args.Number(0, 0))
	ctxlog.FromContext(ctx).Debug("Program requested exit.", "code", code)
	env.Exit(code)
	return nil, nil
}

// Register registers the system operations with the registry.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterOperation(&registry.RegisteredOperation{Name: "sleep", Aliases: []string{"time.Sleep"}, Fn: sleep})
	r.RegisterOperation(&registry.RegisteredOperation{Name: "random", Aliases: []string{"rand.Float64"}, Fn: random})
	r.RegisterOperation(&registry.RegisteredOperation{Name: "random_int", Aliases: []string{"rand.Intn"}, Fn: randomInt})
	r.RegisterOperation(&registry.RegisteredOperation{Name: "time_now", Aliases: []string{"time.Now"}, Fn: timeNow})
	r.RegisterOperation(&registry.RegisteredOperation{Name: "exit", Aliases: []string{"os.Exit"}, Fn: exit})
}
