package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/specialistvlad/jsonlang/internal/app"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// Parse processes command-line arguments. It returns a populated Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
// Values from a -config file apply first; explicitly set flags override them.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")
	flagSet := flag.NewFlagSet("jsonlang", flag.ContinueOnError)
	flagSet.SetOutput(output)

	// Custom usage/help text function
	flagSet.Usage = func() {
		fmt.Fprint(output, `
jsonlang - An interpreter for programs written as JSON documents.

Usage:
  jsonlang [options] <command> [arguments]

Commands:
  run <program.json>          Run a program's main function.
  test <function> [args...]   Call one backend function directly.
  list                        List the backend's functions.

Options:
`)
		flagSet.PrintDefaults()
	}

	configFlag := flagSet.String("config", "", "Path to a TOML configuration file.")
	registryFlag := flagSet.String("registry", app.DefaultRegistryPath, "Path to the backend registry descriptor (.json or .hcl).")
	moduleRootFlag := flagSet.String("module-root", "", "Directory that module imports are resolved against. Defaults to the working directory.")
	maxDepthFlag := flagSet.Int("max-depth", app.DefaultMaxCallDepth, "Maximum nested function call depth.")
	logFormatFlag := flagSet.String("log-format", app.DefaultLogFormat, "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", app.DefaultLogLevel, "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	if flagSet.NArg() == 0 {
		slog.Debug("No command provided, printing usage and exiting.")
		flagSet.Usage()
		return nil, true, nil
	}

	cfg := app.Config{
		Command: flagSet.Arg(0),
		Args:    flagSet.Args()[1:],
	}

	if *configFlag != "" {
		fileCfg, err := app.LoadConfigFile(*configFlag)
		if err != nil {
			return nil, false, &ExitError{Code: 2, Message: fmt.Sprintf("failed to load config file: %v", err)}
		}
		fileCfg.Apply(&cfg)
		slog.Debug("Configuration file applied.", "path", *configFlag)
	}

	set := make(map[string]bool)
	flagSet.Visit(func(f *flag.Flag) { set[f.Name] = true })

	if set["registry"] || cfg.RegistryPath == "" {
		cfg.RegistryPath = *registryFlag
	}
	if set["module-root"] || cfg.ModuleRoot == "" {
		cfg.ModuleRoot = *moduleRootFlag
	}
	if set["max-depth"] || cfg.MaxCallDepth == 0 {
		cfg.MaxCallDepth = *maxDepthFlag
	}
	if set["log-format"] || cfg.LogFormat == "" {
		cfg.LogFormat = *logFormatFlag
	}
	if set["log-level"] || cfg.LogLevel == "" {
		cfg.LogLevel = *logLevelFlag
	}
	cfg.LogFormat = strings.ToLower(cfg.LogFormat)
	cfg.LogLevel = strings.ToLower(cfg.LogLevel)

	config, err := app.NewConfig(cfg)
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "config", config)
	return config, false, nil
}
