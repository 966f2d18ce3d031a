package app

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"reflect"

	"github.com/naoina/toml"
)

// FileConfig is the TOML configuration file layout. Keys are the Go field
// names:
//
//	RegistryPath = "stdlib.go.hcl"
//	ModuleRoot   = "lib"
//	MaxCallDepth = 200
//	LogLevel     = "debug"
type FileConfig struct {
	RegistryPath string
	ModuleRoot   string
	MaxCallDepth int
	LogFormat    string
	LogLevel     string
}

// These settings ensure that TOML keys use the same names as Go struct fields.
var tomlSettings = toml.Config{
	NormFieldName: func(rt reflect.Type, key string) string {
		return key
	},
	FieldToKey: func(rt reflect.Type, field string) string {
		return field
	},
	MissingField: func(rt reflect.Type, field string) error {
		return fmt.Errorf("field '%s' is not defined in %s", field, rt.String())
	},
}

// LoadConfigFile decodes a TOML configuration file.
func LoadConfigFile(file string) (*FileConfig, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var cfg FileConfig
	err = tomlSettings.NewDecoder(bufio.NewReader(f)).Decode(&cfg)
	// Add file name to errors that have a line number.
	if _, ok := err.(*toml.LineError); ok {
		err = errors.New(file + ", " + err.Error())
	}
	if err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Apply copies the non-zero file settings onto cfg.
func (fc *FileConfig) Apply(cfg *Config) {
	if fc.RegistryPath != "" {
		cfg.RegistryPath = fc.RegistryPath
	}
	if fc.ModuleRoot != "" {
		cfg.ModuleRoot = fc.ModuleRoot
	}
	if fc.MaxCallDepth != 0 {
		cfg.MaxCallDepth = fc.MaxCallDepth
	}
	if fc.LogFormat != "" {
		cfg.LogFormat = fc.LogFormat
	}
	if fc.LogLevel != "" {
		cfg.LogLevel = fc.LogLevel
	}
}
