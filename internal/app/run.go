package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/specialistvlad/jsonlang/internal/ctxlog"
	"github.com/specialistvlad/jsonlang/internal/interpreter"
	"github.com/specialistvlad/jsonlang/internal/program"
	"github.com/specialistvlad/jsonlang/internal/value"
)

// Run executes the configured command.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.With(ctxlog.WithLogger(ctx, a.logger), "command", a.config.Command)
	a.logger.Debug("App.Run method started.", "command", a.config.Command)

	var err error
	switch a.config.Command {
	case CommandRun:
		err = a.runProgram(ctx, a.config.Args[0])
	case CommandTest:
		err = a.testFunction(ctx, a.config.Args[0], a.config.Args[1:])
	case CommandList:
		err = a.listFunctions()
	default:
		err = fmt.Errorf("%w: unknown command '%s'", ErrInvalidConfig, a.config.Command)
	}

	a.logger.Debug("App.Run method finished.")
	return err
}

// runProgram loads a program file, executes its main function and prints
// the completion line.
func (a *App) runProgram(ctx context.Context, path string) error {
	prog, err := program.Load(ctx, path, program.WithModuleRoot(a.config.ModuleRoot))
	if err != nil {
		return fmt.Errorf("failed to load program: %w", err)
	}

	interp := interpreter.New(a.provider, interpreter.Options{MaxCallDepth: a.config.MaxCallDepth})
	result, err := interp.RunProgram(ctx, prog)
	if err != nil {
		return fmt.Errorf("execution failed: %w", err)
	}

	fmt.Fprintf(a.outW, "Program finished, result: %s\n", value.ToString(result))
	return nil
}

// testFunction dispatches one backend operation directly. Arguments that
// read as numbers are passed as numbers.
func (a *App) testFunction(ctx context.Context, name string, rawArgs []string) error {
	args := make([]any, len(rawArgs))
	for i, raw := range rawArgs {
		if value.IsNumeric(raw) {
			args[i] = value.ToNumber(raw)
		} else {
			args[i] = raw
		}
	}

	result, err := a.provider.Dispatch(ctx, name, args)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.outW, "Function: %s\n", name)
	fmt.Fprintf(a.outW, "Args: %s\n", value.ToString(args))
	fmt.Fprintf(a.outW, "Result: %s\n", value.ToString(result))
	return nil
}

// listFunctions prints the provider header and a table of registered
// functions with their implementation keys.
func (a *App) listFunctions() error {
	fmt.Fprintf(a.outW, "%s backend v%s\n", a.provider.Name(), a.provider.Version())
	fmt.Fprintln(a.outW, "Supported functions:")

	table := tablewriter.NewWriter(a.outW)
	table.SetHeader([]string{"Function", "Implementation"})
	table.SetAutoWrapText(false)
	for _, name := range a.provider.Functions() {
		impl, _ := a.provider.Implementation(name)
		table.Append([]string{name, impl})
	}
	table.Render()

	a.logger.Debug("Functions listed.", "count", len(a.provider.Functions()), "names", strings.Join(a.provider.Functions(), ","))
	return nil
}
