package main

import (
	"context"
	"fmt"
	"strings"

	"go.lsp.dev/protocol"

	"github.com/pdxkit/go-pdxscript/ir"
	"github.com/pdxkit/go-pdxscript/schema"
	"github.com/pdxkit/go-pdxscript/token"
)

func (s *Server) Hover(ctx context.Context, params *protocol.HoverParams) (*protocol.Hover, error) {
	doc := s.docs.get(string(params.TextDocument.URI))
	if doc == nil || doc.root == nil {
		return nil, nil
	}

	pos := token.Pos{
		Line:      int(params.Position.Line),
		Character: int(params.Position.Character),
	}
	node := findNodeAtPosition(doc.root, pos)
	if node == nil {
		return nil, nil
	}

	text := s.buildHoverText(doc, node)
	if text == "" {
		return nil, nil
	}
	return &protocol.Hover{
		Contents: protocol.MarkupContent{
			Kind:  protocol.Markdown,
			Value: text,
		},
	}, nil
}

// findNodeAtPosition returns the deepest node whose range contains pos.
func findNodeAtPosition(root *ir.Node, pos token.Pos) *ir.Node {
	var best *ir.Node
	var walk func(*ir.Node)
	walk = func(node *ir.Node) {
		if node == nil || !covers(node.Range, pos) {
			return
		}
		if node != root {
			best = node
		}
		for _, child := range node.Children {
			walk(child)
		}
	}
	walk(root)
	return best
}

func covers(r token.Range, pos token.Pos) bool {
	return !pos.Before(r.Start) && pos.Before(r.End)
}

func (s *Server) buildHoverText(doc *document, node *ir.Node) string {
	var parts []string

	if node.Key != "" {
		parts = append(parts, fmt.Sprintf("**%s**", node.Key))
	}
	switch node.Kind {
	case ir.Block:
		parts = append(parts, fmt.Sprintf("block with %d entries", len(node.Children)))
	case ir.Property:
		if node.Value != "" {
			val := node.Value
			if len(val) > 50 {
				val = val[:50] + "..."
			}
			parts = append(parts, fmt.Sprintf("`%s %s %s`", node.Key, node.Operator, val))
		}
	}

	if field := s.fieldFor(doc, node); field != nil {
		if td := s.validator.Schemas.TypeDef(field.Type); td != nil && td.Description != "" {
			parts = append(parts, td.Description)
		} else if field.Type != "" {
			parts = append(parts, fmt.Sprintf("type: `%s`", field.Type))
		}
		if len(field.Values) > 0 {
			parts = append(parts, "one of: `"+strings.Join(field.Values, "`, `")+"`")
		}
	}

	return strings.Join(parts, "\n\n")
}

// fieldFor resolves a node to its schema field by walking the key chain
// from the document root through nested schemas.
func (s *Server) fieldFor(doc *document, node *ir.Node) *schema.Field {
	sch := s.validator.Schemas.SchemaFor(s.logicalPath(doc.uri))
	if sch == nil {
		return nil
	}
	var keys []string
	for n := node; n != nil && n.Parent != nil; n = n.Parent {
		if n.Key == "" {
			return nil
		}
		keys = append([]string{n.Key}, keys...)
	}
	if len(keys) == 0 {
		return nil
	}
	// The outermost key names the definition block itself, matched by
	// the schema's block pattern rather than a field.
	keys = keys[1:]
	var field *schema.Field
	for _, key := range keys {
		if sch == nil {
			return nil
		}
		field = sch.Fields[key]
		if field == nil {
			return nil
		}
		sch = field.Nested()
	}
	return field
}
