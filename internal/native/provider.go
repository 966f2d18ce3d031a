package native

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/specialistvlad/jsonlang/internal/backend"
	"github.com/specialistvlad/jsonlang/internal/ctxlog"
	"github.com/specialistvlad/jsonlang/internal/registry"
)

const (
	// Name is the provider name reported by the reference backend.
	Name = "go"
	// Version is the provider version reported by the reference backend.
	Version = "1.0.0"
)

// Options configures a Provider.
type Options struct {
	// DescriptorPath points at the registry descriptor. Empty skips loading.
	DescriptorPath string
	// Env overrides the process facilities; nil means registry.DefaultEnv().
	Env *registry.Env
	// Modules overrides the compiled-in operation families.
	Modules []registry.Module
}

// binding is one exposed function name and the operation behind it.
type binding struct {
	op             *registry.RegisteredOperation
	implementation string
}

// Provider is the reference backend.Backend implementation.
type Provider struct {
	registry  *registry.Registry
	functions map[string]binding
}

var _ backend.Backend = (*Provider)(nil)

// New builds a Provider. A malformed descriptor is a fatal error; a missing
// or empty one falls back to the full native table.
func New(ctx context.Context, opts Options) (*Provider, error) {
	logger := ctxlog.FromContext(ctx)

	reg := registry.New(opts.Env)
	modules := opts.Modules
	if len(modules) == 0 {
		modules = coreModules
	}
	for _, mod := range modules {
		mod.Register(reg)
	}
	logger.Debug("Native operation families registered.", "count", len(modules))

	p := &Provider{
		registry:  reg,
		functions: make(map[string]binding),
	}

	var desc *registry.Descriptor
	if opts.DescriptorPath != "" {
		loaded, err := registry.LoadDescriptor(ctx, opts.DescriptorPath)
		switch {
		case errors.Is(err, registry.ErrDescriptorNotFound):
			logger.Warn("Registry descriptor not found, using the built-in function table.", "path", opts.DescriptorPath)
		case err != nil:
			return nil, err
		default:
			desc = loaded
		}
	}

	if desc.Empty() {
		p.registerDefaults()
	} else {
		p.registerFromDescriptor(ctx, desc)
	}

	logger.Debug("Native provider ready.", "name", Name, "version", Version, "functions", len(p.functions))
	return p, nil
}

func (p *Provider) registerDefaults() {
	for _, op := range p.registry.Natives() {
		p.functions[op.Name] = binding{op: op, implementation: op.Name}
	}
}

func (p *Provider) registerFromDescriptor(ctx context.Context, desc *registry.Descriptor) {
	logger := ctxlog.FromContext(ctx)
	for _, entry := range desc.Functions {
		op, ok := p.registry.Resolve(entry.Implementation)
		if !ok {
			logger.Warn("Implementation not found, function not registered.", "function", entry.Name, "implementation", entry.Implementation)
			continue
		}
		p.functions[entry.Name] = binding{op: op, implementation: entry.Implementation}
	}
}

// Name returns the provider name.
func (p *Provider) Name() string { return Name }

// Version returns the provider version.
func (p *Provider) Version() string { return Version }

// Dispatch invokes the operation registered under name.
func (p *Provider) Dispatch(ctx context.Context, name string, args []any) (any, error) {
	b, ok := p.functions[name]
	if !ok {
		return nil, fmt.Errorf("%w: '%s'", backend.ErrUnknownFunction, name)
	}
	ctxlog.FromContext(ctx).Debug("Dispatching native operation.", "function", name, "operation", b.op.Name, "args", len(args))

	result, err := b.op.Fn(ctx, p.registry.Env, registry.Args(args))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return result, nil
}

// Functions returns the registered function names in sorted order.
func (p *Provider) Functions() []string {
	names := make([]string, 0, len(p.functions))
	for name := range p.functions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Implementation returns the implementation key bound to a function name.
func (p *Provider) Implementation(name string) (string, bool) {
	b, ok := p.functions[name]
	return b.implementation, ok
}
