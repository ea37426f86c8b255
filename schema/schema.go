// Package schema holds the declarative rule-sets that describe one
// script file type each: which fields a block may carry, their types
// and counts, cross-field validations, and field ordering. Schemas
// are loaded once from YAML, compiled (regexes, condition
// expressions, nested references) and read-only afterwards.
package schema

import (
	"regexp"

	"github.com/pdxkit/go-pdxscript/cond"
	"github.com/pdxkit/go-pdxscript/debug"
)

// Schema is one rule-set. Top-level schemas carry Identification;
// nested schemas reuse the same shape without it.
type Schema struct {
	FileType       string             `yaml:"file_type"`
	Identification Identification     `yaml:"identification"`
	Fields         map[string]*Field  `yaml:"fields"`
	NestedSchemas  map[string]*Schema `yaml:"nested_schemas"`
	FieldOrder     *FieldOrder        `yaml:"field_order"`
	Constants      map[string]any     `yaml:"constants"`
	Validations    []*Rule            `yaml:"validations"`

	blockRE        *regexp.Regexp
	blockREInvalid bool
	patterns       []globPattern
}

type Identification struct {
	PathPatterns []string `yaml:"path_patterns"`
	BlockPattern string   `yaml:"block_pattern"`
}

type Field struct {
	Type           string        `yaml:"type"`
	Required       bool          `yaml:"required"`
	RequiredUnless []string      `yaml:"required_unless"`
	RequiredWhen   *RequiredWhen `yaml:"required_when"`
	MinCount       *int          `yaml:"min_count"`
	MaxCount       *int          `yaml:"max_count"`
	MinCountUnless []string      `yaml:"min_count_unless"`
	Values         []string      `yaml:"values"`

	Diagnostic        string `yaml:"diagnostic"`
	CountDiagnostic   string `yaml:"count_diagnostic"`
	InvalidDiagnostic string `yaml:"invalid_diagnostic"`

	Warnings []*Rule `yaml:"warnings"`
	Schema   string  `yaml:"schema"`

	nested *Schema
}

// Nested returns the nested schema this field declares, resolved at
// load time, or nil.
func (f *Field) Nested() *Schema {
	return f.nested
}

type RequiredWhen struct {
	Field  string `yaml:"field"`
	Equals string `yaml:"equals"`
}

// Rule is a conditional diagnostic: a field-level warning or a
// schema-level cross-field validation.
type Rule struct {
	Condition  string `yaml:"condition"`
	Diagnostic string `yaml:"diagnostic"`
	Severity   string `yaml:"severity"`

	expr cond.Expr
}

// Expr returns the rule's compiled condition.
func (r *Rule) Expr() cond.Expr {
	return r.expr
}

type FieldOrder struct {
	Enabled bool     `yaml:"enabled"`
	Mode    string   `yaml:"mode"` // strict or flexible
	Order   []string `yaml:"order"`
}

// BlockMatches reports whether a top-level key selects this schema's
// block pattern. Without a declared pattern every key matches; an
// invalid pattern was logged at load and matches nothing.
func (s *Schema) BlockMatches(key string) bool {
	if s.blockREInvalid {
		return false
	}
	if s.blockRE == nil {
		return true
	}
	return s.blockRE.MatchString(key)
}

// compile prepares a loaded schema: block pattern and path globs,
// condition expressions, and nested schema references. root is the
// top-level schema used as a fallback namespace for nested lookups.
func (s *Schema) compile(root *Schema) {
	if s.Identification.BlockPattern != "" {
		re, err := regexp.Compile(s.Identification.BlockPattern)
		if err != nil {
			debug.Logf("schema %s: invalid block_pattern %q: %v",
				s.FileType, s.Identification.BlockPattern, err)
			s.blockREInvalid = true
		} else {
			s.blockRE = re
		}
	}
	for _, p := range s.Identification.PathPatterns {
		s.patterns = append(s.patterns, compileGlob(p))
	}
	for _, r := range s.Validations {
		r.expr = cond.Compile(r.Condition)
	}
	for _, f := range s.Fields {
		for _, r := range f.Warnings {
			r.expr = cond.Compile(r.Condition)
		}
	}
	for _, ns := range s.NestedSchemas {
		ns.compile(root)
	}
	for name, f := range s.Fields {
		if f.Schema == "" {
			continue
		}
		f.nested = s.NestedSchemas[f.Schema]
		if f.nested == nil && root != nil {
			f.nested = root.NestedSchemas[f.Schema]
		}
		if f.nested == nil {
			debug.Logf("schema %s: field %s references unknown nested schema %q",
				s.FileType, name, f.Schema)
		}
	}
}
