package value

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/zclconf/go-cty/cty"
)

// truthyWords are the strings, compared case-insensitively, that ToBoolean
// treats as true.
var truthyWords = map[string]struct{}{
	"true": {},
	"1":    {},
	"yes":  {},
	"on":   {},
}

// ToString renders v the way native operations see it as text.
func ToString(v any) string {
	switch t := v.(type) {
	case nil:
		return "null"
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case bool:
		return strconv.FormatBool(t)
	case []any:
		parts := make([]string, len(t))
		for i, e := range t {
			parts[i] = ToString(e)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case map[string]any:
		keys := sortedKeys(t)
		parts := make([]string, len(keys))
		for i, k := range keys {
			parts[i] = k + ": " + ToString(t[k])
		}
		return "{" + strings.Join(parts, ", ") + "}"
	}
	return fmt.Sprintf("%v", v)
}

// ToNumber converts v to a float64. It never fails: anything that cannot be
// read as a number yields 0.
func ToNumber(v any) float64 {
	switch t := v.(type) {
	case float64:
		return t
	case int:
		return float64(t)
	case int64:
		return float64(t)
	case bool:
		if t {
			return 1
		}
		return 0
	case string:
		n, err := Coerce(strings.TrimSpace(t), cty.Number)
		if err != nil {
			return 0
		}
		return n.(float64)
	}
	return 0
}

// IsNumeric reports whether v is a number or a string that reads as one.
func IsNumeric(v any) bool {
	switch t := v.(type) {
	case float64, int, int64:
		return true
	case string:
		_, err := Coerce(strings.TrimSpace(t), cty.Number)
		return err == nil
	}
	return false
}

// ToBoolean converts v to a bool. Bools pass through, strings are true when
// they spell one of true/1/yes/on, numbers are true when nonzero and
// everything else follows Truthy.
func ToBoolean(v any) bool {
	switch t := v.(type) {
	case bool:
		return t
	case string:
		_, ok := truthyWords[strings.ToLower(t)]
		return ok
	case float64:
		return t != 0
	case int:
		return t != 0
	case int64:
		return t != 0
	}
	return Truthy(v)
}

// Truthy is the generic truthiness rule: null and empty containers are
// false, everything else is true.
func Truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case string:
		return t != ""
	case []any:
		return len(t) > 0
	case map[string]any:
		return len(t) > 0
	case float64:
		return t != 0
	case bool:
		return t
	}
	return true
}

// Integral returns f as an int when it has no fractional part.
func Integral(f float64) (int, bool) {
	if math.IsInf(f, 0) || math.IsNaN(f) || f != math.Trunc(f) {
		return 0, false
	}
	return int(f), true
}

// Less orders two values for sorting: numbers before strings, numbers
// numerically, strings lexically, anything else by its text form.
func Less(a, b any) bool {
	ra, rb := rank(a), rank(b)
	if ra != rb {
		return ra < rb
	}
	switch ra {
	case 0:
		return ToNumber(a) < ToNumber(b)
	case 1:
		return a.(string) < b.(string)
	}
	return ToString(a) < ToString(b)
}

func rank(v any) int {
	switch v.(type) {
	case float64, int, int64:
		return 0
	case string:
		return 1
	}
	return 2
}
