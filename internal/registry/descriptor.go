package registry

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/specialistvlad/jsonlang/internal/ctxlog"
)

var (
	// ErrDescriptorNotFound means the registry descriptor file does not exist.
	ErrDescriptorNotFound = errors.New("registry descriptor not found")
	// ErrDescriptorFormat means the descriptor exists but could not be decoded.
	ErrDescriptorFormat = errors.New("malformed registry descriptor")
)

// FunctionEntry is one declared function of a registry descriptor.
type FunctionEntry struct {
	Name           string
	Implementation string
	Description    string
}

// Descriptor is the format-agnostic form of a backend registry descriptor.
// Only entries that carry an implementation key are kept.
type Descriptor struct {
	Path      string
	Functions []*FunctionEntry
}

// Empty reports whether the descriptor declares no usable entries.
func (d *Descriptor) Empty() bool {
	return d == nil || len(d.Functions) == 0
}

// descriptorFile is the HCL shape of a descriptor.
type descriptorFile struct {
	Functions []*functionBlock `hcl:"function,block"`
	Remain    hcl.Body         `hcl:",remain"`
}

type functionBlock struct {
	Name           string   `hcl:"name,label"`
	Implementation *string  `hcl:"implementation,optional"`
	Description    string   `hcl:"description,optional"`
	Remain         hcl.Body `hcl:",remain"`
}

// LoadDescriptor reads a registry descriptor. Files ending in .hcl are read
// as HCL, everything else as JSON. A missing file yields
// ErrDescriptorNotFound, an undecodable one ErrDescriptorFormat.
func LoadDescriptor(ctx context.Context, path string) (*Descriptor, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Loading registry descriptor.", "path", path)

	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrDescriptorNotFound, path)
		}
		return nil, fmt.Errorf("error accessing registry descriptor %s: %w", path, err)
	}

	var (
		desc *Descriptor
		err  error
	)
	if filepath.Ext(path) == ".hcl" {
		desc, err = decodeHCLDescriptor(path)
	} else {
		desc, err = decodeJSONDescriptor(path)
	}
	if err != nil {
		return nil, err
	}

	sort.Slice(desc.Functions, func(i, j int) bool {
		return desc.Functions[i].Name < desc.Functions[j].Name
	})
	logger.Debug("Registry descriptor loaded.", "path", path, "functions", len(desc.Functions))
	return desc, nil
}

func decodeHCLDescriptor(path string) (*Descriptor, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("%w: failed to parse HCL file %s: %w", ErrDescriptorFormat, path, diags)
	}

	var root descriptorFile
	if diags := gohcl.DecodeBody(file.Body, nil, &root); diags.HasErrors() {
		return nil, fmt.Errorf("%w: failed to decode HCL file %s: %w", ErrDescriptorFormat, path, diags)
	}

	desc := &Descriptor{Path: path}
	for _, fn := range root.Functions {
		if fn.Implementation == nil {
			continue
		}
		desc.Functions = append(desc.Functions, &FunctionEntry{
			Name:           fn.Name,
			Implementation: *fn.Implementation,
			Description:    fn.Description,
		})
	}
	return desc, nil
}

func decodeJSONDescriptor(path string) (*Descriptor, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read registry descriptor %s: %w", path, err)
	}

	var root struct {
		Functions map[string]json.RawMessage `json:"functions"`
	}
	if err := json.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrDescriptorFormat, path, err)
	}

	desc := &Descriptor{Path: path}
	for name, raw := range root.Functions {
		var entry map[string]any
		if err := json.Unmarshal(raw, &entry); err != nil {
			// Non-object entries carry no implementation key.
			continue
		}
		impl, ok := entry["implementation"].(string)
		if !ok {
			continue
		}
		description, _ := entry["description"].(string)
		desc.Functions = append(desc.Functions, &FunctionEntry{
			Name:           name,
			Implementation: impl,
			Description:    description,
		})
	}
	return desc, nil
}
