// Package cond implements the condition mini-language used by
// schema field warnings and cross-field validations.
//
// Conditions are compiled once at schema-load time into a small
// expression tree and evaluated repeatedly against per-node
// contexts. The grammar keeps the legacy precedence: " AND " binds
// loosest, then " OR ", then a leading "NOT ", then the comparison
// operators scanned in the order == != >= <= > <, then a trailing
// .exists or .count lookup. Anything else, and any evaluation
// failure, is false.
package cond

import (
	"strconv"
	"strings"
)

// Expr is a compiled condition. Eval is total: it never panics and
// treats every failure as false.
type Expr interface {
	Eval(ctx *Context) bool
}

// compareOps in legacy scan order; two-character operators first so
// ">=" is not read as ">" followed by "=".
var compareOps = []string{"==", "!=", ">=", "<=", ">", "<"}

// Compile builds an Expr for s. It is total: input it cannot make
// sense of compiles to an expression that always evaluates false.
func Compile(s string) Expr {
	s = strings.TrimSpace(s)
	if rest, ok := strings.CutPrefix(s, exprDialectPrefix); ok {
		return compileExprDialect(rest)
	}
	return compileLegacy(s)
}

func compileLegacy(s string) Expr {
	s = strings.TrimSpace(s)
	if parts := strings.Split(s, " AND "); len(parts) > 1 {
		sub := make([]Expr, len(parts))
		for i, p := range parts {
			sub[i] = compileLegacy(p)
		}
		return andExpr(sub)
	}
	if parts := strings.Split(s, " OR "); len(parts) > 1 {
		sub := make([]Expr, len(parts))
		for i, p := range parts {
			sub[i] = compileLegacy(p)
		}
		return orExpr(sub)
	}
	if rest, ok := strings.CutPrefix(s, "NOT "); ok {
		return notExpr{compileLegacy(rest)}
	}
	for _, op := range compareOps {
		if l, r, ok := strings.Cut(s, op); ok {
			return compareExpr{op: op, l: operandOf(l), r: operandOf(r)}
		}
	}
	if field, ok := strings.CutSuffix(s, ".exists"); ok {
		return existsExpr{field}
	}
	if field, ok := strings.CutSuffix(s, ".count"); ok {
		return countExpr{field}
	}
	return falseExpr{}
}

type falseExpr struct{}

func (falseExpr) Eval(*Context) bool { return false }

type andExpr []Expr

func (e andExpr) Eval(ctx *Context) bool {
	for _, sub := range e {
		if !sub.Eval(ctx) {
			return false
		}
	}
	return true
}

type orExpr []Expr

func (e orExpr) Eval(ctx *Context) bool {
	for _, sub := range e {
		if sub.Eval(ctx) {
			return true
		}
	}
	return false
}

type notExpr struct{ x Expr }

func (e notExpr) Eval(ctx *Context) bool { return !e.x.Eval(ctx) }

type existsExpr struct{ field string }

func (e existsExpr) Eval(ctx *Context) bool {
	return ctx.Fields[e.field].Exists
}

type countExpr struct{ field string }

func (e countExpr) Eval(ctx *Context) bool {
	if e.field == "children" {
		return ctx.ChildCount != 0
	}
	return ctx.Fields[e.field].Count != 0
}

type compareExpr struct {
	op   string
	l, r operand
}

func (e compareExpr) Eval(ctx *Context) bool {
	lv, ok := e.l.resolve(ctx)
	if !ok {
		return false
	}
	rv, ok := e.r.resolve(ctx)
	if !ok {
		return false
	}
	if lv.isInt && rv.isInt {
		return cmpOrdered(e.op, lv.i, rv.i)
	}
	return cmpOrdered(e.op, lv.s, rv.s)
}

func cmpOrdered[T int64 | string](op string, l, r T) bool {
	switch op {
	case "==":
		return l == r
	case "!=":
		return l != r
	case ">=":
		return l >= r
	case "<=":
		return l <= r
	case ">":
		return l > r
	case "<":
		return l < r
	}
	return false
}

// value is a resolved operand. Every value has a string form; isInt
// marks values that also have a numeric one, and a comparison is
// numeric only when both sides do.
type value struct {
	isInt bool
	i     int64
	s     string
}

type operand interface {
	resolve(ctx *Context) (value, bool)
}

func operandOf(s string) operand {
	s = strings.TrimSpace(s)
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return intLit{i}
	}
	if field, prop, ok := cutLast(s, "."); ok {
		switch prop {
		case "exists", "count", "value":
			return fieldRef{field: field, prop: prop}
		}
	}
	return strLit{s}
}

func cutLast(s, sep string) (string, string, bool) {
	i := strings.LastIndex(s, sep)
	if i < 0 {
		return s, "", false
	}
	return s[:i], s[i+len(sep):], true
}

type intLit struct{ i int64 }

func (l intLit) resolve(*Context) (value, bool) {
	return value{isInt: true, i: l.i, s: strconv.FormatInt(l.i, 10)}, true
}

type strLit struct{ s string }

func (l strLit) resolve(*Context) (value, bool) {
	return value{s: l.s}, true
}

type fieldRef struct {
	field string
	prop  string
}

func (r fieldRef) resolve(ctx *Context) (value, bool) {
	if r.field == "children" && r.prop == "count" {
		n := int64(ctx.ChildCount)
		return value{isInt: true, i: n, s: strconv.FormatInt(n, 10)}, true
	}
	f, ok := ctx.Fields[r.field]
	if !ok {
		return value{}, false
	}
	switch r.prop {
	case "exists":
		if f.Exists {
			return value{isInt: true, i: 1, s: "yes"}, true
		}
		return value{isInt: true, i: 0, s: "no"}, true
	case "count":
		n := int64(f.Count)
		return value{isInt: true, i: n, s: strconv.FormatInt(n, 10)}, true
	case "value":
		v := value{s: f.Value}
		if i, err := strconv.ParseInt(f.Value, 10, 64); err == nil {
			v.isInt = true
			v.i = i
		}
		return v, true
	}
	return value{}, false
}
