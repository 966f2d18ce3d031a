package app

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/specialistvlad/jsonlang/internal/ctxlog"
	"github.com/specialistvlad/jsonlang/internal/native"
	"github.com/specialistvlad/jsonlang/internal/registry"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW     io.Writer
	logger   *slog.Logger
	config   *Config
	provider *native.Provider
}

// Option customises the process facilities an App hands to native
// operations.
type Option func(*options)

type options struct {
	stdin   io.Reader
	exit    func(int)
	modules []registry.Module
}

// WithStdin replaces the reader the input operation consumes.
func WithStdin(r io.Reader) Option {
	return func(o *options) { o.stdin = r }
}

// WithExit replaces the function the exit operation calls.
func WithExit(fn func(int)) Option {
	return func(o *options) { o.exit = fn }
}

// WithModules replaces the compiled-in operation families.
func WithModules(mods ...registry.Module) Option {
	return func(o *options) { o.modules = mods }
}

// NewApp is the constructor for the main application. Program output goes
// to outW and logs to errW. It returns a fully initialized App instance,
// including its own isolated logger and backend provider.
func NewApp(outW, errW io.Writer, cfg *Config, opts ...Option) *App {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, errW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	var o options
	for _, opt := range opts {
		opt(&o)
	}

	env := registry.DefaultEnv()
	env.Stdout = outW
	if o.stdin != nil {
		env.Stdin = bufio.NewReader(o.stdin)
	}
	if o.exit != nil {
		env.Exit = o.exit
	}

	provider, err := native.New(ctx, native.Options{
		DescriptorPath: cfg.RegistryPath,
		Env:            env,
		Modules:        o.modules,
	})
	if err != nil {
		// A malformed registry descriptor is a fatal startup error.
		panic(fmt.Errorf("failed to build backend: %w", err))
	}
	logger.Debug("Backend provider ready.", "name", provider.Name(), "version", provider.Version(), "functions", len(provider.Functions()))

	return &App{
		outW:     outW,
		logger:   logger,
		config:   cfg,
		provider: provider,
	}
}

// Provider returns the application's backend provider. This is primarily for testing.
func (a *App) Provider() *native.Provider {
	return a.provider
}
