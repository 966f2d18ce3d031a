package program

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/specialistvlad/jsonlang/internal/ctxlog"
	"github.com/specialistvlad/jsonlang/internal/fsutil"
)

// Load reads and decodes the program document at path.
func Load(ctx context.Context, path string, opts ...Option) (*Program, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Loading program document.", "path", path)

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read program file '%s': %w", path, err)
	}

	p, err := Parse(data, opts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	logger.Debug("Program document loaded.", "path", path, "functions", len(p.Functions), "imports", p.Imports.Len(), "import_keys", p.Imports.Keys(), "modifiers", len(p.Modifiers))
	return p, nil
}

// ModuleCandidates returns the file names probed for an import path, in
// order: "<path>.json", "<path>", "<last>.json", "<last>", where last is the
// final dot-separated segment.
func ModuleCandidates(path string) []string {
	last := path[strings.LastIndex(path, ".")+1:]
	return []string{
		path + ".json",
		path,
		last + ".json",
		last,
	}
}

// LoadModule resolves an import path into a Program, memoized per instance:
// repeated calls for the same path return the identical Program.
func (p *Program) LoadModule(ctx context.Context, path string) (*Program, error) {
	logger := ctxlog.FromContext(ctx)

	if mod, ok := p.modules[path]; ok {
		logger.Debug("Module cache hit.", "module", path)
		return mod, nil
	}

	candidates := ModuleCandidates(path)
	file, found, err := fsutil.FirstExisting(p.moduleRoot, candidates...)
	if err != nil {
		return nil, fmt.Errorf("%w: '%s': %w", ErrModuleLoad, path, err)
	}
	if !found {
		return nil, fmt.Errorf("%w: '%s' (tried %s)", ErrModuleNotFound, path, strings.Join(candidates, ", "))
	}
	logger.Debug("Module file resolved.", "module", path, "file", file)

	mod, err := Load(ctx, file, WithModuleRoot(p.moduleRoot))
	if err != nil {
		return nil, fmt.Errorf("%w: '%s': %w", ErrModuleLoad, path, err)
	}

	if p.modules == nil {
		p.modules = make(map[string]*Program)
	}
	p.modules[path] = mod
	logger.Debug("Module loaded and cached.", "module", path, "cache_size", len(p.modules))
	return mod, nil
}
