package validate

import (
	"fmt"
	"strings"

	"github.com/pdxkit/go-pdxscript/diag"
	"github.com/pdxkit/go-pdxscript/ir"
	"github.com/pdxkit/go-pdxscript/schema"
)

// checkFieldOrder verifies the declared relative order of the fields
// named in field_order.order, over their actual occurrences in the
// block. Each occurrence is checked independently; duplicates count
// at their own position. An occurrence is out of order when an
// earlier-declared field follows a later-declared one.
func checkFieldOrder(s *schema.Schema, node *ir.Node) []diag.Diagnostic {
	fo := s.FieldOrder
	if fo == nil || !fo.Enabled || len(fo.Order) == 0 {
		return nil
	}
	declared := make(map[string]int, len(fo.Order))
	for i, name := range fo.Order {
		declared[name] = i
	}

	type occurrence struct {
		node *ir.Node
		decl int
		pos  int // position among ordered fields, 1-based
	}
	var seq []occurrence
	for _, c := range node.Children {
		if d, ok := declared[c.Key]; ok {
			seq = append(seq, occurrence{node: c, decl: d, pos: len(seq) + 1})
		}
	}

	var bad []occurrence
	maxDecl := -1
	for _, o := range seq {
		if o.decl < maxDecl {
			bad = append(bad, o)
			continue
		}
		maxDecl = o.decl
	}
	if len(bad) == 0 {
		return nil
	}

	if fo.Mode == "strict" {
		out := make([]diag.Diagnostic, 0, len(bad))
		for _, o := range bad {
			out = append(out, diag.Diagnostic{
				Code:     diag.CodeFieldOrderStrict,
				Severity: diag.Information,
				Message: fmt.Sprintf("field %q is at position %d but is declared at relative position %d",
					o.node.Key, o.pos, o.decl+1),
				Range: o.node.KeyRange,
			})
		}
		return out
	}

	// flexible: a single stray field is tolerated
	if len(bad) < 2 {
		return nil
	}
	names := make([]string, len(bad))
	for i, o := range bad {
		names[i] = o.node.Key
	}
	return []diag.Diagnostic{{
		Code:     diag.CodeFieldOrderFlexible,
		Severity: diag.Hint,
		Message:  fmt.Sprintf("fields out of declared order: %s", strings.Join(names, ", ")),
		Range:    node.KeyRange,
	}}
}
