package app

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfig_Defaults(t *testing.T) {
	cfg, err := NewConfig(Config{Command: CommandList})
	require.NoError(t, err)

	assert.Equal(t, DefaultRegistryPath, cfg.RegistryPath)
	assert.Equal(t, DefaultMaxCallDepth, cfg.MaxCallDepth)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Empty(t, cfg.ModuleRoot)
}

func TestNewConfig_Invalid(t *testing.T) {
	testCases := []struct {
		name string
		cfg  Config
	}{
		{"no command", Config{}},
		{"unknown command", Config{Command: "compile"}},
		{"run without file", Config{Command: CommandRun}},
		{"test without name", Config{Command: CommandTest}},
		{"bad log format", Config{Command: CommandList, LogFormat: "xml"}},
		{"bad log level", Config{Command: CommandList, LogLevel: "loud"}},
		{"negative depth", Config{Command: CommandList, MaxCallDepth: -1}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewConfig(tc.cfg)
			require.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "jsonlang.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
RegistryPath = "stdlib.go.hcl"
ModuleRoot = "lib"
MaxCallDepth = 50
LogLevel = "debug"
`), 0o644))

	fc, err := LoadConfigFile(path)
	require.NoError(t, err)

	cfg := Config{Command: CommandList, LogFormat: "json"}
	fc.Apply(&cfg)
	assert.Equal(t, Config{
		Command:      CommandList,
		RegistryPath: "stdlib.go.hcl",
		ModuleRoot:   "lib",
		MaxCallDepth: 50,
		LogFormat:    "json",
		LogLevel:     "debug",
	}, cfg)
}

func TestLoadConfigFile_UnknownField(t *testing.T) {
	path := filepath.Join(t.TempDir(), "jsonlang.toml")
	require.NoError(t, os.WriteFile(path, []byte("Workers = 4\n"), 0o644))

	_, err := LoadConfigFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Workers")
	assert.Contains(t, err.Error(), path)
}

func TestLoadConfigFile_Missing(t *testing.T) {
	_, err := LoadConfigFile(filepath.Join(t.TempDir(), "none.toml"))
	require.ErrorIs(t, err, os.ErrNotExist)
}
