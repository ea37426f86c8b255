package cond

import "github.com/pdxkit/go-pdxscript/ir"

// Field is what the condition language sees for one distinct child
// key: presence, occurrence count, and the first occurrence's raw
// value.
type Field struct {
	Exists bool
	Count  int
	Value  string
}

// Context is the evaluation environment for one node: its immediate
// children keyed by name, plus the synthetic children.count.
type Context struct {
	Fields     map[string]Field
	ChildCount int
}

// BuildContext derives a Context from a node's immediate children.
func BuildContext(y *ir.Node) *Context {
	ctx := &Context{
		Fields:     make(map[string]Field, len(y.Children)),
		ChildCount: len(y.Children),
	}
	for _, c := range y.Children {
		f, ok := ctx.Fields[c.Key]
		if !ok {
			f = Field{Exists: true, Value: c.Value}
		}
		f.Count++
		ctx.Fields[c.Key] = f
	}
	return ctx
}

// Env renders the context as a plain map for the expr dialect.
func (ctx *Context) Env() map[string]any {
	env := make(map[string]any, len(ctx.Fields)+1)
	for name, f := range ctx.Fields {
		env[name] = map[string]any{
			"exists": f.Exists,
			"count":  f.Count,
			"value":  f.Value,
		}
	}
	env["children"] = map[string]any{"count": ctx.ChildCount}
	return env
}
