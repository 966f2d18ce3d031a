package modifier

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/specialistvlad/jsonlang/internal/ctxlog"
	"github.com/specialistvlad/jsonlang/internal/program"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvaluateCondition(t *testing.T) {
	withArgs := program.NewFunction(map[string]any{"args": []any{}})
	bare := program.NewFunction(nil)

	testCases := []struct {
		name      string
		fn        *program.Function
		condition string
		want      bool
	}{
		{"empty condition", bare, "", true},
		{"blank condition", bare, "   ", true},
		{"absent field", bare, "function.args == undefined", true},
		{"present field", withArgs, "function.args == undefined", false},
		{"reversed operands", withArgs, "undefined == function.args", false},
		{"return absent", withArgs, "function.return == undefined", true},
		{"visibility absent", bare, "function.visibility == undefined", true},
		{"modifiers absent", bare, "function.modifiers == undefined", true},
		{"unguarded field fails open", withArgs, "function.color == undefined", true},
		{"not-equal fails open", withArgs, "function.args != undefined", true},
		{"unknown form fails open", withArgs, "function.args == 3", true},
		{"parse error fails open", withArgs, "function.args ==", true},
		{"nested path fails open", withArgs, "function.args.x == undefined", true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, EvaluateCondition(tc.fn, tc.condition))
		})
	}
}

func TestRun_AssignsWhenConditionHolds(t *testing.T) {
	fn := program.NewFunction(nil)
	mod := &program.Modifier{
		Name:      "defaults",
		Condition: "function.args == undefined",
		Actions: []program.ModifierAction{
			{Type: "assignment", Target: "function.args", Value: []any{}},
			{Type: "assignment", Target: "function.visibility", Value: "public"},
			{Type: "assignment", Target: "other.thing", Value: 1},
			{Type: "delete", Target: "function.return"},
		},
	}

	applied := Run(context.Background(), fn, mod)
	require.True(t, applied)

	args, ok := fn.Get("args")
	require.True(t, ok)
	assert.Equal(t, []any{}, args)

	vis, _ := fn.Get("visibility")
	assert.Equal(t, "public", vis)
	assert.False(t, fn.Has("thing"))
	assert.False(t, fn.Has("return"))
}

func TestRun_SkipsWhenConditionFails(t *testing.T) {
	fn := program.NewFunction(map[string]any{"args": []any{"x"}})
	mod := &program.Modifier{
		Name:      "defaults",
		Condition: "function.args == undefined",
		Actions:   []program.ModifierAction{{Type: "assignment", Target: "function.args", Value: []any{}}},
	}

	assert.False(t, Run(context.Background(), fn, mod))
	args, _ := fn.Get("args")
	assert.Equal(t, []any{"x"}, args)
}

const modifierDoc = `{
	"functions": {
		"main": {"modifiers": ["public", "ghost"], "actions": []},
		"helper": {"modifiers": ["public"], "visibility": "private"}
	},
	"modifiers": [
		{"name": "public", "condiction": "function.visibility == undefined",
		 "actions": [{"type": "assignment", "target": "function.visibility", "value": "public"}]}
	]
}`

func TestApply(t *testing.T) {
	p, err := program.Parse([]byte(modifierDoc))
	require.NoError(t, err)

	buf := &bytes.Buffer{}
	ctx := ctxlog.WithLogger(context.Background(), slog.New(slog.NewTextHandler(buf, nil)))

	warnings := Apply(ctx, p)
	require.Len(t, warnings, 1)
	assert.True(t, errors.Is(warnings[0], ErrUndefinedModifier))
	assert.Contains(t, warnings[0].Error(), "ghost")
	assert.Contains(t, buf.String(), "Modifier not found")

	main, _ := p.GetFunction("main")
	vis, _ := main.Get("visibility")
	assert.Equal(t, "public", vis)

	helper, _ := p.GetFunction("helper")
	vis, _ = helper.Get("visibility")
	assert.Equal(t, "private", vis)
}

func TestApplyTo_ReadsModifierListOnce(t *testing.T) {
	p, err := program.Parse([]byte(`{
		"functions": {"f": {"modifiers": ["reset"]}},
		"modifiers": [
			{"name": "reset", "actions": [{"type": "assignment", "target": "function.modifiers", "value": ["reset", "reset"]}]}
		]
	}`))
	require.NoError(t, err)

	fn, _ := p.GetFunction("f")
	warnings := ApplyTo(context.Background(), p, "f", fn)
	assert.Empty(t, warnings)
	assert.Equal(t, []string{"reset", "reset"}, fn.ModifierNames())
}
