// Package eval expands .[expr] references in resolved documents
// using an environment.
package eval

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/signadot/tony-format/nsbuild/debug"

	"github.com/expr-lang/expr"
)

type Env = map[string]any

// IsRaw reports whether v consists of exactly one .[expr] reference,
// in which case it expands to the value of expr rather than to text.
func IsRaw(v string) bool {
	if !strings.HasPrefix(v, ".[") {
		return false
	}
	_, end, ok := scanRef(v, 2)
	return ok && end == len(v)-1
}

// GetRaw returns the unescaped expression of a raw reference, or "".
func GetRaw(v string) string {
	if !strings.HasPrefix(v, ".[") {
		return ""
	}
	src, end, ok := scanRef(v, 2)
	if !ok || end != len(v)-1 {
		return ""
	}
	return src
}

// scanRef reads the expression starting at v[i] up to the first
// unescaped ']', returning it unescaped and trimmed along with the
// index of the ']'.
func scanRef(v string, i int) (string, int, bool) {
	var key strings.Builder
	for n := len(v); i < n; i++ {
		switch c := v[i]; c {
		case '\\':
			if i+1 < n {
				i++
				key.WriteByte(v[i])
			}
		case ']':
			return strings.TrimSpace(key.String()), i, true
		default:
			key.WriteByte(c)
		}
	}
	return "", -1, false
}

// ExpandAny expands every string in v, recursing through maps and
// slices.  Maps and slices are modified in place.
func ExpandAny(v any, env Env) (any, error) {
	switch x := v.(type) {
	case map[string]any:
		for k := range x {
			vv, err := ExpandAny(x[k], env)
			if err != nil {
				return nil, err
			}
			x[k] = vv
		}
		return x, nil
	case []any:
		for i := range x {
			vv, err := ExpandAny(x[i], env)
			if err != nil {
				return nil, err
			}
			x[i] = vv
		}
		return x, nil
	case string:
		raw := GetRaw(x)
		if raw == "" {
			s, err := ExpandString(x, env)
			if err != nil {
				return nil, fmt.Errorf("error expanding %q: %w", x, err)
			}
			return s, nil
		}
		val, err := expr.Eval(raw, env)
		if err != nil {
			return nil, fmt.Errorf("error evaluating %q: %w", raw, err)
		}
		if debug.Eval() {
			debug.Logf("eval %q gave %#v", raw, val)
		}
		return val, nil
	default:
		return x, nil
	}
}

// ExpandString replaces each .[expr] or $[expr] in v with the text
// of its value.  Inside an expression, a backslash escapes the next
// character.  An unterminated expression is left as is.
func ExpandString(v string, env Env) (string, error) {
	var out strings.Builder
	n := len(v)
	for i := 0; i < n; i++ {
		c := v[i]
		if (c != '.' && c != '$') || i+1 >= n || v[i+1] != '[' {
			out.WriteByte(c)
			continue
		}
		src, end, ok := scanRef(v, i+2)
		if !ok {
			out.WriteString(v[i:])
			break
		}
		t, err := evalText(src, env)
		if err != nil {
			return "", err
		}
		out.WriteString(t)
		i = end
	}
	return out.String(), nil
}

func evalText(src string, env Env) (string, error) {
	x, err := expr.Eval(src, env)
	if err != nil {
		return "", fmt.Errorf("error evaluating %q: %w", src, err)
	}
	if debug.Eval() {
		debug.Logf("eval %q gave %#v", src, x)
	}
	switch y := x.(type) {
	case string:
		return y, nil
	case nil:
		return "null", nil
	}
	d, err := json.Marshal(x)
	if err != nil {
		return "", fmt.Errorf("could not marshal evaluation results for %s: %w", src, err)
	}
	return string(d), nil
}
