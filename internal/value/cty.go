package value

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/gocty"
)

// literalTypes maps the type tags accepted in typed literal arguments.
var literalTypes = map[string]cty.Type{
	"String":  cty.String,
	"Number":  cty.Number,
	"Boolean": cty.Bool,
}

// LiteralType returns the cty type for a typed-literal tag such as "Number"
// or "imports.Number".
func LiteralType(tag string) (cty.Type, bool) {
	ty, ok := literalTypes[strings.TrimPrefix(tag, "imports.")]
	return ty, ok
}

// ToCty converts a native engine value into its cty.Value equivalent.
func ToCty(v any) (cty.Value, error) {
	switch t := v.(type) {
	case nil:
		return cty.NullVal(cty.DynamicPseudoType), nil
	case cty.Value:
		return t, nil
	case string:
		return cty.StringVal(t), nil
	case bool:
		return cty.BoolVal(t), nil
	case float64:
		if math.IsNaN(t) {
			return cty.NilVal, fmt.Errorf("NaN has no cty representation")
		}
		return cty.NumberFloatVal(t), nil
	case int:
		return cty.NumberIntVal(int64(t)), nil
	case int64:
		return cty.NumberIntVal(t), nil
	case []any:
		if len(t) == 0 {
			return cty.EmptyTupleVal, nil
		}
		elems := make([]cty.Value, len(t))
		for i, e := range t {
			ev, err := ToCty(e)
			if err != nil {
				return cty.NilVal, fmt.Errorf("element %d: %w", i, err)
			}
			elems[i] = ev
		}
		return cty.TupleVal(elems), nil
	case map[string]any:
		if len(t) == 0 {
			return cty.EmptyObjectVal, nil
		}
		attrs := make(map[string]cty.Value, len(t))
		for k, e := range t {
			ev, err := ToCty(e)
			if err != nil {
				return cty.NilVal, fmt.Errorf("attribute %q: %w", k, err)
			}
			attrs[k] = ev
		}
		return cty.ObjectVal(attrs), nil
	}

	ty, err := gocty.ImpliedType(v)
	if err != nil {
		return cty.NilVal, fmt.Errorf("unable to infer cty.Type: %w", err)
	}
	return gocty.ToCtyValue(v, ty)
}

// FromCty converts a known cty.Value back into a native engine value.
func FromCty(v cty.Value) any {
	if v.IsNull() || !v.IsKnown() {
		return nil
	}

	ty := v.Type()
	switch {
	case ty == cty.String:
		return v.AsString()
	case ty == cty.Bool:
		return v.True()
	case ty == cty.Number:
		f, _ := v.AsBigFloat().Float64()
		return f
	case ty.IsTupleType() || ty.IsListType() || ty.IsSetType():
		out := make([]any, 0, v.LengthInt())
		for it := v.ElementIterator(); it.Next(); {
			_, ev := it.Element()
			out = append(out, FromCty(ev))
		}
		return out
	case ty.IsObjectType() || ty.IsMapType():
		out := make(map[string]any, v.LengthInt())
		for it := v.ElementIterator(); it.Next(); {
			k, ev := it.Element()
			out[k.AsString()] = FromCty(ev)
		}
		return out
	}
	return nil
}

// Coerce converts v into the requested cty type and returns the native
// representation of the result.
func Coerce(v any, ty cty.Type) (any, error) {
	cv, err := ToCty(v)
	if err != nil {
		return nil, err
	}
	converted, err := convert.Convert(cv, ty)
	if err != nil {
		return nil, fmt.Errorf("cannot convert %s to %s: %w", Describe(v), ty.FriendlyName(), err)
	}
	if converted.IsNull() {
		return nil, fmt.Errorf("cannot convert null to %s", ty.FriendlyName())
	}
	return FromCty(converted), nil
}

// Describe returns a short, human readable type name for v.
func Describe(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case string:
		return "string"
	case bool:
		return "bool"
	case float64, int, int64:
		return "number"
	case []any:
		return "array"
	case map[string]any:
		return "record"
	}
	return fmt.Sprintf("%T", v)
}

// sortedKeys returns the keys of m in lexical order.
func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
