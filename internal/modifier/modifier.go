// Package modifier implements the declarative pre-execution pass that
// rewrites function metadata according to named modifier definitions.
//
// A function lists modifier names under "modifiers". For each name the
// definition is looked up in the program; its condition is evaluated against
// the function and, when it holds, its assignment actions set metadata
// fields:
//
//	{"name": "default_args",
//	 "condition": "function.args == undefined",
//	 "actions": [{"type": "assignment", "target": "function.args", "value": []}]}
//
// The only recognised condition is "function.<field> == undefined" for the
// fields args, return, modifiers and visibility. Any other condition text,
// including text that does not parse, counts as true.
package modifier

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/specialistvlad/jsonlang/internal/ctxlog"
	"github.com/specialistvlad/jsonlang/internal/program"
)

// ErrUndefinedModifier marks a modifier name with no definition. It is only
// ever reported as a warning.
var ErrUndefinedModifier = errors.New("undefined modifier")

const targetPrefix = "function."

// guardedFields are the metadata fields an undefined-check may test.
var guardedFields = map[string]struct{}{
	"args":       {},
	"return":     {},
	"modifiers":  {},
	"visibility": {},
}

// Apply runs every function's modifiers. Functions are visited in name
// order. The returned warnings wrap ErrUndefinedModifier.
func Apply(ctx context.Context, p *program.Program) []error {
	names := make([]string, 0, len(p.Functions))
	for name := range p.Functions {
		names = append(names, name)
	}
	sort.Strings(names)

	var warnings []error
	for _, name := range names {
		warnings = append(warnings, ApplyTo(ctx, p, name, p.Functions[name])...)
	}
	return warnings
}

// ApplyTo runs the modifiers listed by one function.
func ApplyTo(ctx context.Context, p *program.Program, name string, fn *program.Function) []error {
	logger := ctxlog.FromContext(ctx)

	var warnings []error
	// The list is read once: a modifier may itself rewrite "modifiers".
	for _, modName := range fn.ModifierNames() {
		mod, ok := p.FindModifier(modName)
		if !ok {
			err := fmt.Errorf("%w: '%s' (function '%s')", ErrUndefinedModifier, modName, name)
			logger.Warn("Modifier not found, skipping.", "function", name, "modifier", modName)
			warnings = append(warnings, err)
			continue
		}
		if Run(ctx, fn, mod) {
			logger.Debug("Modifier applied.", "function", name, "modifier", modName)
		} else {
			logger.Debug("Modifier condition not met.", "function", name, "modifier", modName, "condition", mod.Condition)
		}
	}
	return warnings
}

// Run applies one modifier to fn and reports whether its condition held.
func Run(ctx context.Context, fn *program.Function, mod *program.Modifier) bool {
	if !EvaluateCondition(fn, mod.Condition) {
		return false
	}

	logger := ctxlog.FromContext(ctx)
	for _, action := range mod.Actions {
		if action.Type != program.KindAssignment {
			logger.Warn("Unsupported modifier action, skipping.", "modifier", mod.Name, "type", action.Type)
			continue
		}
		if !strings.HasPrefix(action.Target, targetPrefix) {
			logger.Debug("Modifier target outside function metadata, skipping.", "modifier", mod.Name, "target", action.Target)
			continue
		}
		fn.Set(strings.TrimPrefix(action.Target, targetPrefix), action.Value)
	}
	return true
}

// EvaluateCondition evaluates a modifier condition against fn. An empty
// condition is true.
func EvaluateCondition(fn *program.Function, condition string) bool {
	if strings.TrimSpace(condition) == "" {
		return true
	}

	expr, diags := hclsyntax.ParseExpression([]byte(condition), "condition", hcl.InitialPos)
	if diags.HasErrors() {
		return true
	}

	field, ok := undefinedCheck(expr)
	if !ok {
		return true
	}
	if _, guarded := guardedFields[field]; !guarded {
		return true
	}
	return !fn.Has(field)
}

// undefinedCheck recognises "function.<field> == undefined" (either operand
// order) and returns the field name.
func undefinedCheck(expr hclsyntax.Expression) (string, bool) {
	bin, ok := expr.(*hclsyntax.BinaryOpExpr)
	if !ok || bin.Op != hclsyntax.OpEqual {
		return "", false
	}

	lhs, lok := traversal(bin.LHS)
	rhs, rok := traversal(bin.RHS)
	if !lok || !rok {
		return "", false
	}

	if field, ok := functionField(lhs); ok && isUndefined(rhs) {
		return field, true
	}
	if field, ok := functionField(rhs); ok && isUndefined(lhs) {
		return field, true
	}
	return "", false
}

func traversal(expr hclsyntax.Expression) (hcl.Traversal, bool) {
	st, ok := expr.(*hclsyntax.ScopeTraversalExpr)
	if !ok {
		return nil, false
	}
	return st.Traversal, true
}

func functionField(t hcl.Traversal) (string, bool) {
	if len(t) != 2 || t.RootName() != "function" {
		return "", false
	}
	attr, ok := t[1].(hcl.TraverseAttr)
	if !ok {
		return "", false
	}
	return attr.Name, true
}

func isUndefined(t hcl.Traversal) bool {
	return len(t) == 1 && t.RootName() == "undefined"
}
