package schema

import (
	"fmt"
	"strings"
)

// expandVars substitutes $name placeholders from constants,
// recursively through nested maps and lists. A value that is exactly
// one placeholder takes the constant's own type; placeholders
// embedded in a longer string are replaced textually. Unknown names
// and non-$ values pass through untouched.
func expandVars(v any, constants map[string]any) any {
	switch t := v.(type) {
	case string:
		return expandString(t, constants)
	case map[string]any:
		res := make(map[string]any, len(t))
		for k, vv := range t {
			res[k] = expandVars(vv, constants)
		}
		return res
	case map[any]any:
		res := make(map[any]any, len(t))
		for k, vv := range t {
			res[k] = expandVars(vv, constants)
		}
		return res
	case []any:
		res := make([]any, len(t))
		for i, vv := range t {
			res[i] = expandVars(vv, constants)
		}
		return res
	}
	return v
}

func expandString(s string, constants map[string]any) any {
	if !strings.Contains(s, "$") {
		return s
	}
	if name, ok := wholeVar(s); ok {
		if c, found := constants[name]; found {
			return c
		}
		return s
	}
	var b strings.Builder
	for i := 0; i < len(s); {
		if s[i] != '$' {
			b.WriteByte(s[i])
			i++
			continue
		}
		j := i + 1
		for j < len(s) && isVarByte(s[j]) {
			j++
		}
		name := s[i+1 : j]
		if c, found := constants[name]; found {
			fmt.Fprintf(&b, "%v", c)
		} else {
			b.WriteString(s[i:j])
		}
		i = j
	}
	return b.String()
}

func wholeVar(s string) (string, bool) {
	if len(s) < 2 || s[0] != '$' {
		return "", false
	}
	for i := 1; i < len(s); i++ {
		if !isVarByte(s[i]) {
			return "", false
		}
	}
	return s[1:], true
}

func isVarByte(c byte) bool {
	return c == '_' ||
		c >= 'a' && c <= 'z' ||
		c >= 'A' && c <= 'Z' ||
		c >= '0' && c <= '9'
}
