// Package ioops registers the console and file native operations.
package ioops

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/specialistvlad/jsonlang/internal/backend"
	"github.com/specialistvlad/jsonlang/internal/ctxlog"
	"github.com/specialistvlad/jsonlang/internal/registry"
	"github.com/specialistvlad/jsonlang/internal/value"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

func joinArgs(args registry.Args) string {
	parts := make([]string, len(args))
	for i, arg := range args {
		parts[i] = value.ToString(arg)
	}
	return strings.Join(parts, " ")
}

func printLine(ctx context.Context, env *registry.Env, args registry.Args) (any, error) {
	_, err := fmt.Fprintln(env.Stdout, joinArgs(args))
	return nil, err
}

func printText(ctx context.Context, env *registry.Env, args registry.Args) (any, error) {
	_, err := fmt.Fprint(env.Stdout, joinArgs(args))
	return nil, err
}

// printFormat formats with Go verbs. Integral numbers are passed as ints so that
// %d works on them.
func printFormat(ctx context.Context, env *registry.Env, args registry.Args) (any, error) {
	if args.Len() == 0 {
		return nil, nil
	}
	format := args.String(0, "")
	rest := make([]any, 0, args.Len()-1)
	for _, arg := range args[1:] {
		if f, ok := arg.(float64); ok {
			if n, ok := value.Integral(f); ok {
				rest = append(rest, n)
				continue
			}
		}
		rest = append(rest, arg)
	}
	_, err := fmt.Fprintf(env.Stdout, format, rest...)
	return nil, err
}

func input(ctx context.Context, env *registry.Env, args registry.Args) (any, error) {
	if args.Len() > 0 {
		fmt.Fprint(env.Stdout, args.String(0, ""))
	}
	line, err := env.Stdin.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: reading input: %w", backend.ErrIO, err)
	}
	return strings.TrimSpace(line), nil
}

func readFile(ctx context.Context, env *registry.Env, args registry.Args) (any, error) {
	if args.Len() == 0 {
		return "", nil
	}
	name := args.String(0, "")
	content, err := os.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("%w: cannot read file '%s': %w", backend.ErrIO, name, err)
	}
	return string(content), nil
}

// writeFile reports success as a bool rather than failing the program.
func writeFile(ctx context.Context, env *registry.Env, args registry.Args) (any, error) {
	if args.Len() < 2 {
		return false, nil
	}
	name := args.String(0, "")
	if err := os.WriteFile(name, []byte(args.String(1, "")), 0o644); err != nil {
		ctxlog.FromContext(ctx).Warn("write_file failed.", "file", name, "error", err)
		return false, nil
	}
	return true, nil
}

// Register registers the I/O operations with the registry.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterOperation(&registry.RegisteredOperation{
		Name:    "println",
		Aliases: []string{"fmt.Println", "print"},
		Fn:      printLine,
	})
	r.RegisterOperation(&registry.RegisteredOperation{
		Name:    "print",
		Aliases: []string{"fmt.Print", "print_no_newline"},
		Fn:      printText,
	})
	r.RegisterOperation(&registry.RegisteredOperation{
		Name:    "printf",
		Aliases: []string{"fmt.Printf"},
		Fn:      printFormat,
	})
	r.RegisterOperation(&registry.RegisteredOperation{
		Name:    "input",
		Aliases: []string{"bufio.NewReader"},
		Fn:      input,
	})
	r.RegisterOperation(&registry.RegisteredOperation{
		Name:    "read_file",
		Aliases: []string{"os.ReadFile", "ioutil.ReadFile"},
		Fn:      readFile,
	})
	r.RegisterOperation(&registry.RegisteredOperation{
		Name:    "write_file",
		Aliases: []string{"os.WriteFile", "ioutil.WriteFile"},
		Fn:      writeFile,
	})
}
