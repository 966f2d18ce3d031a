package app

import (
	"errors"
	"fmt"
)

// Commands understood by App.Run.
const (
	CommandRun  = "run"
	CommandTest = "test"
	CommandList = "list"
)

// Defaults applied by NewConfig.
const (
	DefaultRegistryPath = "stdlib.go.json"
	DefaultMaxCallDepth = 1000
	DefaultLogFormat    = "text"
	DefaultLogLevel     = "info"
)

// ErrInvalidConfig is returned by NewConfig for unusable configurations.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	Command string
	Args    []string

	RegistryPath string // backend registry descriptor, JSON or HCL
	ModuleRoot   string // directory imports resolve against; empty is the working directory
	MaxCallDepth int

	LogFormat string
	LogLevel  string
}

// NewConfig fills defaults and validates cfg.
func NewConfig(cfg Config) (*Config, error) {
	switch cfg.Command {
	case CommandRun:
		if len(cfg.Args) < 1 {
			return nil, fmt.Errorf("%w: run requires a program file", ErrInvalidConfig)
		}
	case CommandTest:
		if len(cfg.Args) < 1 {
			return nil, fmt.Errorf("%w: test requires a function name", ErrInvalidConfig)
		}
	case CommandList:
	case "":
		return nil, fmt.Errorf("%w: command is required", ErrInvalidConfig)
	default:
		return nil, fmt.Errorf("%w: unknown command '%s'", ErrInvalidConfig, cfg.Command)
	}

	if cfg.RegistryPath == "" {
		cfg.RegistryPath = DefaultRegistryPath
	}
	if cfg.MaxCallDepth == 0 {
		cfg.MaxCallDepth = DefaultMaxCallDepth
	}
	if cfg.MaxCallDepth < 0 {
		return nil, fmt.Errorf("%w: max call depth must be positive, got %d", ErrInvalidConfig, cfg.MaxCallDepth)
	}

	if cfg.LogFormat == "" {
		cfg.LogFormat = DefaultLogFormat
	}
	if cfg.LogFormat != "text" && cfg.LogFormat != "json" {
		return nil, fmt.Errorf("%w: log format must be 'text' or 'json', got '%s'", ErrInvalidConfig, cfg.LogFormat)
	}

	if cfg.LogLevel == "" {
		cfg.LogLevel = DefaultLogLevel
	}
	switch cfg.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return nil, fmt.Errorf("%w: log level must be 'debug', 'info', 'warn' or 'error', got '%s'", ErrInvalidConfig, cfg.LogLevel)
	}

	return &cfg, nil
}
