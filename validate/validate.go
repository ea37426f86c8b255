// Package validate checks a parsed script tree against the schema
// selected for its logical path, producing diagnostics. Validation
// is fail-open: no matching schema, an unknown type name, or a
// malformed registry entry skips the affected check rather than
// erroring, so a tooling data bug never blocks an editing session.
package validate

import (
	"fmt"
	"sort"
	"strings"

	"github.com/pdxkit/go-pdxscript/cond"
	"github.com/pdxkit/go-pdxscript/debug"
	"github.com/pdxkit/go-pdxscript/diag"
	"github.com/pdxkit/go-pdxscript/ir"
	"github.com/pdxkit/go-pdxscript/schema"
	"github.com/pdxkit/go-pdxscript/scope"
	"github.com/pdxkit/go-pdxscript/token"
)

// Validator binds the read-only registries. It is safe for
// concurrent use: validation never mutates shared state.
type Validator struct {
	Schemas *schema.Registry
	Scopes  *scope.Registry
}

func New(schemas *schema.Registry, scopes *scope.Registry) *Validator {
	return &Validator{Schemas: schemas, Scopes: scopes}
}

// Validate checks the tree parsed from logicalPath. It returns an
// empty list when no schema matches the path.
func (v *Validator) Validate(logicalPath string, root *ir.Node) []diag.Diagnostic {
	if v.Schemas == nil || root == nil {
		return nil
	}
	s := v.Schemas.SchemaFor(logicalPath)
	if s == nil {
		return nil
	}
	if debug.Validate() {
		debug.Logf("validate: %s with schema %s", logicalPath, s.FileType)
	}
	var out []diag.Diagnostic
	for _, child := range root.Children {
		if !s.BlockMatches(child.Key) {
			continue
		}
		out = append(out, v.validateBlock(s, child)...)
	}
	return out
}

func (v *Validator) validateBlock(s *schema.Schema, node *ir.Node) []diag.Diagnostic {
	var out []diag.Diagnostic
	byKey := node.ChildMap()

	// declared fields in a stable order so diagnostics are
	// reproducible across runs
	names := make([]string, 0, len(s.Fields))
	for name := range s.Fields {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		f := s.Fields[name]
		occ := byKey[name]
		out = append(out, v.checkRequired(name, f, node, byKey)...)
		out = append(out, v.checkCounts(name, f, node, byKey)...)
		if f.Type == "enum" {
			out = append(out, v.checkEnum(name, f, occ)...)
		} else if f.Type != "" {
			out = append(out, v.checkPattern(name, f, occ)...)
		}
		if nested := f.Nested(); nested != nil {
			for _, o := range occ {
				out = append(out, v.validateBlock(nested, o)...)
			}
		}
		for _, r := range f.Warnings {
			for _, o := range occ {
				if r.Expr().Eval(cond.BuildContext(o)) {
					out = append(out, ruleDiag(r, o.Range))
				}
			}
		}
	}

	ctx := cond.BuildContext(node)
	for _, r := range s.Validations {
		if r.Expr().Eval(ctx) {
			out = append(out, ruleDiag(r, node.KeyRange))
		}
	}

	out = append(out, checkFieldOrder(s, node)...)
	return out
}

func ruleDiag(r *schema.Rule, rng token.Range) diag.Diagnostic {
	return diag.Diagnostic{
		Code:     r.Diagnostic,
		Severity: diag.ParseSeverity(r.Severity, diag.Warning),
		Message:  fmt.Sprintf("condition holds: %s", r.Condition),
		Range:    rng,
	}
}

// truthy is the condition-language notion of a true scalar.
func truthy(v string) bool {
	return v == "yes" || v == "true" || v == "True"
}

func anyTruthy(fields []string, byKey map[string][]*ir.Node) bool {
	for _, name := range fields {
		if occ := byKey[name]; len(occ) > 0 && truthy(occ[0].Value) {
			return true
		}
	}
	return false
}

func (v *Validator) checkRequired(name string, f *schema.Field, node *ir.Node, byKey map[string][]*ir.Node) []diag.Diagnostic {
	if !f.Required || len(byKey[name]) > 0 {
		return nil
	}
	if anyTruthy(f.RequiredUnless, byKey) {
		return nil
	}
	if w := f.RequiredWhen; w != nil {
		occ := byKey[w.Field]
		if len(occ) == 0 || occ[0].Value != w.Equals {
			return nil
		}
	}
	return []diag.Diagnostic{{
		Code:     f.Diagnostic,
		Severity: diag.Error,
		Message:  fmt.Sprintf("%s is missing required field %q", node.Key, name),
		Range:    node.KeyRange,
	}}
}

func (v *Validator) checkCounts(name string, f *schema.Field, node *ir.Node, byKey map[string][]*ir.Node) []diag.Diagnostic {
	n := len(byKey[name])
	code := f.CountDiagnostic
	if code == "" {
		code = f.Diagnostic
	}
	var out []diag.Diagnostic
	if f.MaxCount != nil && n > *f.MaxCount {
		out = append(out, diag.Diagnostic{
			Code:     code,
			Severity: diag.Error,
			Message:  fmt.Sprintf("field %q occurs %d times, more than the allowed %d", name, n, *f.MaxCount),
			Range:    node.KeyRange,
		})
	}
	if f.MinCount != nil && n < *f.MinCount && !anyTruthy(f.MinCountUnless, byKey) {
		out = append(out, diag.Diagnostic{
			Code:     code,
			Severity: diag.Warning,
			Message:  fmt.Sprintf("field %q occurs %d times, fewer than the expected %d", name, n, *f.MinCount),
			Range:    node.KeyRange,
		})
	}
	return out
}

func (v *Validator) checkEnum(name string, f *schema.Field, occ []*ir.Node) []diag.Diagnostic {
	code := f.InvalidDiagnostic
	if code == "" {
		code = f.Diagnostic
	}
	var out []diag.Diagnostic
	for _, o := range occ {
		if contains(f.Values, o.Value) {
			continue
		}
		msg := fmt.Sprintf("invalid value %q for %s: must be one of %s",
			o.Value, name, strings.Join(f.Values, ", "))
		if near := suggest(o.Value, f.Values); near != "" {
			msg += fmt.Sprintf(" (did you mean %q?)", near)
		}
		out = append(out, diag.Diagnostic{
			Code:     code,
			Severity: diag.Error,
			Message:  msg,
			Range:    o.Range,
		})
	}
	return out
}

func (v *Validator) checkPattern(name string, f *schema.Field, occ []*ir.Node) []diag.Diagnostic {
	td := v.Schemas.TypeDef(f.Type)
	if td == nil || !td.HasPattern() {
		return nil
	}
	code := familyCode(f.Type, td)
	var out []diag.Diagnostic
	for _, o := range occ {
		if o.Value == "" {
			continue
		}
		if td.Matches(o.Value) {
			continue
		}
		if code == diag.CodeScopePattern && v.Scopes != nil && v.Scopes.ChainValidFromAny(o.Value) {
			continue
		}
		rng := o.ValueRange
		if rng == (token.Range{}) {
			rng = o.Range
		}
		out = append(out, diag.Diagnostic{
			Code:     code,
			Severity: diag.Warning,
			Message: fmt.Sprintf("value %q of %s does not match the %s pattern %s",
				o.Value, name, f.Type, td.PatternString()),
			Range: rng,
		})
	}
	return out
}

// familyCode picks the fixed diagnostic code for a pattern mismatch
// from the type's family, by naming convention.
func familyCode(typeName string, td *schema.TypeDef) string {
	n := strings.ToLower(typeName)
	switch {
	case strings.Contains(n, "local") || strings.HasPrefix(n, "loc_"):
		return diag.CodeLocalisationPattern
	case strings.Contains(n, "scope") || strings.Contains(n, "target") || td.Context != "":
		return diag.CodeScopePattern
	case n == "integer" || n == "int" || n == "number" || n == "float" || strings.Contains(n, "num"):
		return diag.CodeNumberPattern
	}
	return diag.CodePattern
}

func contains(xs []string, x string) bool {
	for _, v := range xs {
		if v == x {
			return true
		}
	}
	return false
}
