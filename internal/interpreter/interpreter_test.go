package interpreter

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/specialistvlad/jsonlang/internal/backend"
	"github.com/specialistvlad/jsonlang/internal/program"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type call struct {
	Name string
	Args []any
}

// fakeBackend records dispatched calls and answers from a fixed table.
type fakeBackend struct {
	results map[string]any
	calls   []call
}

func newFakeBackend(results map[string]any) *fakeBackend {
	return &fakeBackend{results: results}
}

func (f *fakeBackend) Name() string    { return "fake" }
func (f *fakeBackend) Version() string { return "0.0.1" }

func (f *fakeBackend) Dispatch(_ context.Context, name string, args []any) (any, error) {
	f.calls = append(f.calls, call{Name: name, Args: args})
	v, ok := f.results[name]
	if !ok {
		return nil, fmt.Errorf("%w: '%s'", backend.ErrUnknownFunction, name)
	}
	return v, nil
}

func (f *fakeBackend) Functions() []string {
	names := make([]string, 0, len(f.results))
	for n := range f.results {
		names = append(names, n)
	}
	return names
}

func mustParse(t *testing.T, doc string, opts ...program.Option) *program.Program {
	t.Helper()
	p, err := program.Parse([]byte(doc), opts...)
	require.NoError(t, err)
	return p
}

func writeModule(t *testing.T, dir, name, doc string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(doc), 0o644))
}

func TestRunProgram_MissingMain(t *testing.T) {
	p := mustParse(t, `{"functions": {"helper": {"actions": []}}}`)
	in := New(newFakeBackend(nil), Options{})

	_, err := in.RunProgram(context.Background(), p)
	require.ErrorIs(t, err, ErrMissingMainFunction)

	// Other functions stay callable without a main.
	_, err = in.ExecuteFunction(context.Background(), p, "helper", nil)
	require.NoError(t, err)
}

func TestExecuteFunction_LastActionWins(t *testing.T) {
	testCases := []struct {
		name    string
		actions string
		want    any
	}{
		{"two literals", `[{"type": "literal", "value": "A"}, {"type": "literal", "value": "B"}]`, "B"},
		{"return is overwritten", `[{"type": "return", "value": 1}, {"type": "literal", "value": 2}]`, float64(2)},
		{"trailing if statement", `[{"type": "literal", "value": 1}, {"type": "if_statement", "condition": true}]`, nil},
		{"trailing loop", `[{"type": "literal", "value": 1}, {"type": "loop", "count": 3}]`, nil},
		{"declaration yields value", `[{"type": "variable_declaration", "name": "x", "value": 7}]`, float64(7)},
		{"unknown kind yields nil", `[{"type": "literal", "value": 1}, {"type": "mystery"}]`, nil},
		{"no actions", `[]`, nil},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			p := mustParse(t, `{"functions": {"main": {"actions": `+tc.actions+`}}}`)
			got, err := New(newFakeBackend(nil), Options{}).RunProgram(context.Background(), p)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestExecuteFunction_Undefined(t *testing.T) {
	p := mustParse(t, `{"functions": {}}`)
	_, err := New(newFakeBackend(nil), Options{}).ExecuteFunction(context.Background(), p, "nope", nil)
	require.ErrorIs(t, err, ErrUndefinedFunction)
	assert.Contains(t, err.Error(), "nope")
}

func TestCall_UserFunctionBeatsImport(t *testing.T) {
	p := mustParse(t, `{
		"imports": {"greet": "jsonlang.println"},
		"functions": {
			"main": {"actions": [{"type": "function_call", "function": "greet", "args": []}]},
			"greet": {"actions": [{"type": "literal", "value": "user"}]}
		}
	}`)
	fb := newFakeBackend(map[string]any{"println": nil})

	got, err := New(fb, Options{}).RunProgram(context.Background(), p)
	require.NoError(t, err)
	assert.Equal(t, "user", got)
	assert.Empty(t, fb.calls)
}

func TestCall_SharedVariableStore(t *testing.T) {
	p := mustParse(t, `{
		"functions": {
			"main": {"actions": [
				{"type": "variable_declaration", "name": "x", "value": 1},
				{"type": "function_call", "function": "helper"}
			]},
			"helper": {"actions": [{"type": "assignment", "name": "y", "value": "set by helper"}]}
		}
	}`)
	in := New(newFakeBackend(nil), Options{})

	got, err := in.RunProgram(context.Background(), p)
	require.NoError(t, err)
	assert.Equal(t, "set by helper", got)

	x, ok := in.Variables().Get("x")
	require.True(t, ok)
	assert.Equal(t, float64(1), x)
	y, ok := in.Variables().Get("y")
	require.True(t, ok)
	assert.Equal(t, "set by helper", y)
}

func TestCall_ImportedBackendNames(t *testing.T) {
	testCases := []struct {
		name string
		path string
		want string
	}{
		{"bare name", "println", "println"},
		{"stdlib prefix", "jsonlang.println", "println"},
		{"stdlib qualified name", "jsonlang.fmt.Println", "Println"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			p := mustParse(t, `{
				"imports": {"say": "`+tc.path+`"},
				"functions": {"main": {"actions": [{"type": "function_call", "function": "say", "args": ["hi"]}]}}
			}`)
			fb := newFakeBackend(map[string]any{tc.want: "ok"})

			got, err := New(fb, Options{}).RunProgram(context.Background(), p)
			require.NoError(t, err)
			assert.Equal(t, "ok", got)
			if diff := cmp.Diff([]call{{Name: tc.want, Args: []any{"hi"}}}, fb.calls); diff != "" {
				t.Errorf("dispatched calls mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestCall_ModuleImport(t *testing.T) {
	const mainDoc = `{
		"imports": {"greet": "lib.msg.hello"},
		"functions": {"main": {"actions": [{"type": "function_call", "function": "greet"}]}}
	}`

	t.Run("qualified file", func(t *testing.T) {
		dir := t.TempDir()
		writeModule(t, dir, "lib.msg.json", `{"functions": {"hello": {"actions": [{"type": "literal", "value": "from lib.msg"}]}}}`)
		writeModule(t, dir, "msg.json", `{"functions": {"hello": {"actions": [{"type": "literal", "value": "from msg"}]}}}`)

		got, err := New(newFakeBackend(nil), Options{}).RunProgram(context.Background(), mustParse(t, mainDoc, program.WithModuleRoot(dir)))
		require.NoError(t, err)
		assert.Equal(t, "from lib.msg", got)
	})

	t.Run("last segment file", func(t *testing.T) {
		dir := t.TempDir()
		writeModule(t, dir, "msg.json", `{"functions": {"hello": {"actions": [{"type": "literal", "value": "from msg"}]}}}`)

		got, err := New(newFakeBackend(nil), Options{}).RunProgram(context.Background(), mustParse(t, mainDoc, program.WithModuleRoot(dir)))
		require.NoError(t, err)
		assert.Equal(t, "from msg", got)
	})

	t.Run("missing module", func(t *testing.T) {
		_, err := New(newFakeBackend(nil), Options{}).RunProgram(context.Background(), mustParse(t, mainDoc, program.WithModuleRoot(t.TempDir())))
		require.ErrorIs(t, err, program.ErrModuleNotFound)

		var importErr *ImportError
		require.True(t, errors.As(err, &importErr))
		assert.Equal(t, "greet", importErr.Name)
		assert.Equal(t, "lib.msg.hello", importErr.Path)
	})

	t.Run("missing function in module", func(t *testing.T) {
		dir := t.TempDir()
		writeModule(t, dir, "lib.msg.json", `{"functions": {"other": {}}}`)

		_, err := New(newFakeBackend(nil), Options{}).RunProgram(context.Background(), mustParse(t, mainDoc, program.WithModuleRoot(dir)))
		require.ErrorIs(t, err, ErrUndefinedFunction)
		var importErr *ImportError
		assert.True(t, errors.As(err, &importErr))
	})

	t.Run("malformed module", func(t *testing.T) {
		dir := t.TempDir()
		writeModule(t, dir, "lib.msg.json", `{"functions": [`)

		_, err := New(newFakeBackend(nil), Options{}).RunProgram(context.Background(), mustParse(t, mainDoc, program.WithModuleRoot(dir)))
		require.ErrorIs(t, err, program.ErrModuleLoad)
		assert.ErrorIs(t, err, program.ErrDocumentFormat)
	})
}

func TestCall_ModuleModifiersApplied(t *testing.T) {
	dir := t.TempDir()
	writeModule(t, dir, "lib.json", `{
		"functions": {"hello": {"modifiers": ["public"], "actions": [{"type": "literal", "value": 1}]}},
		"modifiers": [{"name": "public", "condition": "function.visibility == undefined",
			"actions": [{"type": "assignment", "target": "function.visibility", "value": "public"}]}]
	}`)
	p := mustParse(t, `{
		"imports": {"hello": "lib.hello"},
		"functions": {"main": {"actions": [{"type": "function_call", "function": "hello"}]}}
	}`, program.WithModuleRoot(dir))

	_, err := New(newFakeBackend(nil), Options{}).RunProgram(context.Background(), p)
	require.NoError(t, err)

	mod, err := p.LoadModule(context.Background(), "lib")
	require.NoError(t, err)
	fn, _ := mod.GetFunction("hello")
	vis, _ := fn.Get("visibility")
	assert.Equal(t, "public", vis)
}

func TestCall_NamespacedSyntax(t *testing.T) {
	t.Run("reverse lookup routes by key", func(t *testing.T) {
		p := mustParse(t, `{
			"imports": {"shout": "to_upper", "yell": "to_upper"},
			"functions": {"main": {"actions": [{"type": "function_call", "function": "imports.to_upper", "args": ["a"]}]}}
		}`)
		fb := newFakeBackend(map[string]any{"shout": "A"})

		got, err := New(fb, Options{}).RunProgram(context.Background(), p)
		require.NoError(t, err)
		assert.Equal(t, "A", got)
		require.Len(t, fb.calls, 1)
		assert.Equal(t, "shout", fb.calls[0].Name)
	})

	t.Run("reverse lookup to namespaced key", func(t *testing.T) {
		p := mustParse(t, `{
			"imports": {"jsonlang.strings.ToUpper": "up"},
			"functions": {"main": {"actions": [{"type": "function_call", "function": "imports.up", "args": ["a"]}]}}
		}`)
		fb := newFakeBackend(map[string]any{"ToUpper": "A"})

		got, err := New(fb, Options{}).RunProgram(context.Background(), p)
		require.NoError(t, err)
		assert.Equal(t, "A", got)
		require.Len(t, fb.calls, 1)
		assert.Equal(t, "ToUpper", fb.calls[0].Name)
	})

	t.Run("reverse lookup to module key", func(t *testing.T) {
		dir := t.TempDir()
		writeModule(t, dir, "lib.json", `{"functions": {"hello": {"actions": [{"type": "literal", "value": "module"}]}}}`)
		p := mustParse(t, `{
			"imports": {"lib.hello": "h"},
			"functions": {"main": {"actions": [{"type": "function_call", "function": "imports.h"}]}}
		}`, program.WithModuleRoot(dir))
		fb := newFakeBackend(nil)

		got, err := New(fb, Options{}).RunProgram(context.Background(), p)
		require.NoError(t, err)
		assert.Equal(t, "module", got)
		assert.Empty(t, fb.calls)
	})

	t.Run("no reverse match dispatches bare name", func(t *testing.T) {
		p := mustParse(t, `{"functions": {"main": {"actions": [{"type": "function_call", "function": "imports.trim", "args": [" x "]}]}}}`)
		fb := newFakeBackend(map[string]any{"trim": "x"})

		got, err := New(fb, Options{}).RunProgram(context.Background(), p)
		require.NoError(t, err)
		assert.Equal(t, "x", got)
		assert.Equal(t, "trim", fb.calls[0].Name)
	})
}

func TestCall_FallbackUnknownFunction(t *testing.T) {
	p := mustParse(t, `{"functions": {"main": {"actions": [{"type": "function_call", "function": "nothing_here"}]}}}`)

	_, err := New(newFakeBackend(nil), Options{}).RunProgram(context.Background(), p)
	require.ErrorIs(t, err, backend.ErrUnknownFunction)
}

func TestCall_TypedLiteralArguments(t *testing.T) {
	p := mustParse(t, `{"functions": {"main": {"actions": [{"type": "function_call", "function": "add", "args": [
		{"type": "Number", "value": "3"},
		{"type": "imports.String", "value": 4},
		{"type": "Boolean", "value": "true"},
		{"type": "Custom", "value": 1},
		[1, 2],
		"plain"
	]}]}}}`)
	fb := newFakeBackend(map[string]any{"add": float64(0)})

	_, err := New(fb, Options{}).RunProgram(context.Background(), p)
	require.NoError(t, err)
	require.Len(t, fb.calls, 1)

	want := []any{
		float64(3),
		"4",
		true,
		map[string]any{"type": "Custom", "value": float64(1)},
		[]any{float64(1), float64(2)},
		"plain",
	}
	if diff := cmp.Diff(want, fb.calls[0].Args); diff != "" {
		t.Errorf("evaluated args mismatch (-want +got):\n%s", diff)
	}
}

func TestCall_TypedLiteralMismatch(t *testing.T) {
	p := mustParse(t, `{"functions": {"main": {"actions": [{"type": "function_call", "function": "add", "args": [{"type": "Number", "value": "abc"}]}]}}}`)
	fb := newFakeBackend(map[string]any{"add": float64(0)})

	_, err := New(fb, Options{}).RunProgram(context.Background(), p)
	require.ErrorIs(t, err, backend.ErrTypeMismatch)
	assert.Empty(t, fb.calls)
}

func TestCall_DepthLimit(t *testing.T) {
	p := mustParse(t, `{"functions": {"main": {"actions": [{"type": "function_call", "function": "main"}]}}}`)

	_, err := New(newFakeBackend(nil), Options{MaxCallDepth: 5}).RunProgram(context.Background(), p)
	require.ErrorIs(t, err, ErrCallDepthExceeded)
}

func TestRunProgram_AppliesModifiersOnce(t *testing.T) {
	p := mustParse(t, `{
		"functions": {"main": {"modifiers": ["count"], "actions": [{"type": "literal", "value": true}]}},
		"modifiers": [{"name": "count", "condition": "function.return == undefined",
			"actions": [{"type": "assignment", "target": "function.return", "value": {"type": "Boolean"}}]}]
	}`)
	in := New(newFakeBackend(nil), Options{})

	_, err := in.RunProgram(context.Background(), p)
	require.NoError(t, err)

	fn, _ := p.GetFunction("main")
	ret, ok := fn.Get("return")
	require.True(t, ok)
	assert.Equal(t, map[string]any{"type": "Boolean"}, ret)
	assert.True(t, in.applied[p])
}
