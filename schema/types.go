package schema

import (
	"regexp"
	"strings"

	"github.com/pdxkit/go-pdxscript/debug"
)

// TypeDef is one entry of the shared type registry. A plain type
// carries a Pattern; a composite ("one of") type carries OneOf
// sub-patterns and accepts a value matching any of them. Values
// lists enum-like alternatives (used by completion surfaces, not by
// the pattern check). Context marks types whose values name
// triggers or effects.
type TypeDef struct {
	Pattern     string   `yaml:"pattern"`
	Values      []string `yaml:"values"`
	OneOf       []string `yaml:"one_of"`
	Context     string   `yaml:"context"` // "effect" or "trigger"
	Description string   `yaml:"description"`

	re      *regexp.Regexp
	oneOfRE []*regexp.Regexp
}

func (t *TypeDef) compile(name string) {
	if t.Pattern != "" {
		re, err := regexp.Compile(t.Pattern)
		if err != nil {
			// skip the pattern check rather than fail every value
			debug.Logf("type %s: invalid pattern %q: %v", name, t.Pattern, err)
		} else {
			t.re = re
		}
	}
	for _, p := range t.OneOf {
		re, err := regexp.Compile(p)
		if err != nil {
			debug.Logf("type %s: invalid one_of pattern %q: %v", name, p, err)
			continue
		}
		t.oneOfRE = append(t.oneOfRE, re)
	}
}

// HasPattern reports whether the type has anything for the pattern
// check to do.
func (t *TypeDef) HasPattern() bool {
	return t.re != nil || len(t.oneOfRE) > 0
}

// PatternString renders the pattern for diagnostic messages.
func (t *TypeDef) PatternString() string {
	if len(t.OneOf) > 0 {
		return strings.Join(t.OneOf, " | ")
	}
	return t.Pattern
}

// Matches applies the type's pattern to a value. Composite types
// pass when any constituent matches, or when the value is empty
// (it may legitimately be supplied as a nested block instead).
func (t *TypeDef) Matches(v string) bool {
	if len(t.oneOfRE) > 0 {
		if v == "" {
			return true
		}
		for _, re := range t.oneOfRE {
			if re.MatchString(v) {
				return true
			}
		}
		return false
	}
	if t.re == nil {
		return true
	}
	return t.re.MatchString(v)
}
