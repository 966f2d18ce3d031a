package interpreter

import (
	"context"
	"fmt"
	"strings"

	"github.com/specialistvlad/jsonlang/internal/backend"
	"github.com/specialistvlad/jsonlang/internal/ctxlog"
	"github.com/specialistvlad/jsonlang/internal/modifier"
	"github.com/specialistvlad/jsonlang/internal/program"
	"github.com/specialistvlad/jsonlang/internal/varstore"
)

const (
	// StdlibPrefix marks import paths that name backend operations.
	StdlibPrefix = "jsonlang."
	// CallPrefix marks namespaced call syntax resolved by reverse import lookup.
	CallPrefix = "imports."

	// DefaultMaxCallDepth bounds nested function execution.
	DefaultMaxCallDepth = 1000
)

// Options configures an Interpreter.
type Options struct {
	// MaxCallDepth bounds nested calls. Zero means DefaultMaxCallDepth.
	MaxCallDepth int
}

// Interpreter runs program functions against a backend.
type Interpreter struct {
	backend  backend.Backend
	vars     *varstore.Store
	applied  map[*program.Program]bool
	maxDepth int
	depth    int
}

// New creates an Interpreter with an empty variable store.
func New(b backend.Backend, opts Options) *Interpreter {
	maxDepth := opts.MaxCallDepth
	if maxDepth <= 0 {
		maxDepth = DefaultMaxCallDepth
	}
	return &Interpreter{
		backend:  b,
		vars:     varstore.New(),
		applied:  make(map[*program.Program]bool),
		maxDepth: maxDepth,
	}
}

// Variables exposes the shared variable store.
func (in *Interpreter) Variables() *varstore.Store {
	return in.vars
}

// RunProgram applies the program's modifiers and executes its main function.
func (in *Interpreter) RunProgram(ctx context.Context, prog *program.Program) (any, error) {
	logger := ctxlog.FromContext(ctx)

	in.prepare(ctx, prog)
	if !prog.HasFunction(program.MainFunction) {
		return nil, ErrMissingMainFunction
	}

	logger.Info("Executing program.", "backend", in.backend.Name(), "backend_version", in.backend.Version())
	result, err := in.ExecuteFunction(ctx, prog, program.MainFunction, nil)
	if err != nil {
		return nil, err
	}
	logger.Debug("Program finished.", "variables", in.vars.Len(), "names", in.vars.Names())
	return result, nil
}

// ExecuteFunction runs every action of the named function in order and
// returns the result of the last one.
func (in *Interpreter) ExecuteFunction(ctx context.Context, prog *program.Program, name string, args []any) (any, error) {
	logger := ctxlog.FromContext(ctx)

	fn, ok := prog.GetFunction(name)
	if !ok {
		return nil, fmt.Errorf("%w: '%s'", ErrUndefinedFunction, name)
	}
	in.prepare(ctx, prog)

	if in.depth >= in.maxDepth {
		return nil, fmt.Errorf("%w: %d calling '%s'", ErrCallDepthExceeded, in.maxDepth, name)
	}
	in.depth++
	defer func() { in.depth-- }()

	logger.Debug("Executing function.", "function", name, "description", fn.Description(), "args", len(args), "depth", in.depth)

	var result any
	for i, action := range fn.Actions() {
		var err error
		result, err = in.executeAction(ctx, prog, action)
		if err != nil {
			return nil, err
		}
		logger.Debug("Action executed.", "function", name, "index", i, "type", action.Kind())
	}
	return result, nil
}

// prepare runs the modifier pass once per program instance.
func (in *Interpreter) prepare(ctx context.Context, prog *program.Program) {
	if in.applied[prog] {
		return
	}
	in.applied[prog] = true
	modifier.Apply(ctx, prog)
}

func (in *Interpreter) executeAction(ctx context.Context, prog *program.Program, action program.Action) (any, error) {
	switch kind := action.Kind(); kind {
	case program.KindFunctionCall:
		return in.callFunction(ctx, prog, action.Str("function"), action.Args())
	case program.KindVariableDeclaration, program.KindAssignment:
		v := action.Value()
		in.vars.Set(action.Str("name"), v)
		return v, nil
	case program.KindReturn, program.KindLiteral:
		return action.Value(), nil
	case program.KindIfStatement, program.KindLoop:
		return nil, nil
	default:
		ctxlog.FromContext(ctx).Warn("Unknown action type, skipping.", "type", kind)
		return nil, nil
	}
}

// callFunction resolves name in precedence order and invokes it.
func (in *Interpreter) callFunction(ctx context.Context, prog *program.Program, name string, rawArgs []any) (any, error) {
	logger := ctxlog.FromContext(ctx)

	args, err := evaluateArgs(rawArgs)
	if err != nil {
		return nil, fmt.Errorf("calling '%s': %w", name, err)
	}

	if prog.HasFunction(name) {
		logger.Debug("Resolved call to program function.", "function", name)
		return in.ExecuteFunction(ctx, prog, name, args)
	}

	if path, ok := prog.Imports.Lookup(name); ok {
		logger.Debug("Resolved call through import.", "function", name, "path", path)
		return in.callImport(ctx, prog, name, path, args)
	}

	if bare, ok := strings.CutPrefix(name, CallPrefix); ok {
		if key, found := prog.Imports.ReverseLookup(bare); found {
			// The matched key names the target; its value is only the alias.
			logger.Debug("Resolved namespaced call by reverse import lookup.", "function", name, "import", key)
			return in.callImport(ctx, prog, key, key, args)
		}
		return in.dispatch(ctx, bare, args)
	}

	return in.dispatch(ctx, name, args)
}

// callImport invokes an import table entry: a module function for qualified
// paths outside the standard-library namespace, a backend operation otherwise.
func (in *Interpreter) callImport(ctx context.Context, prog *program.Program, name, path string, args []any) (any, error) {
	if strings.Contains(path, ".") && !strings.HasPrefix(path, StdlibPrefix) {
		idx := strings.LastIndex(path, ".")
		modPath, fnName := path[:idx], path[idx+1:]
		ctx = ctxlog.With(ctx, "module", modPath)

		mod, err := prog.LoadModule(ctx, modPath)
		if err != nil {
			return nil, &ImportError{Name: name, Path: path, Err: err}
		}
		result, err := in.ExecuteFunction(ctx, mod, fnName, args)
		if err != nil {
			return nil, &ImportError{Name: name, Path: path, Err: err}
		}
		return result, nil
	}

	return in.dispatch(ctx, backendName(path), args)
}

func (in *Interpreter) dispatch(ctx context.Context, name string, args []any) (any, error) {
	ctxlog.FromContext(ctx).Debug("Dispatching to backend.", "function", name, "backend", in.backend.Name())
	return in.backend.Dispatch(ctx, name, args)
}

// backendName strips the standard-library prefix; a dotted remainder such
// as "fmt.Println" keeps only its final segment.
func backendName(path string) string {
	name := strings.TrimPrefix(path, StdlibPrefix)
	if i := strings.LastIndex(name, "."); i >= 0 {
		name = name[i+1:]
	}
	return name
}
