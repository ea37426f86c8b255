package cond

import (
	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/pdxkit/go-pdxscript/debug"
)

// exprDialectPrefix marks a condition written in the expr dialect
// rather than the legacy mini-language. The program sees the same
// context as a map environment: one entry per distinct child key
// with exists/count/value, plus children.count.
const exprDialectPrefix = "expr:"

func compileExprDialect(src string) Expr {
	prg, err := expr.Compile(src)
	if err != nil {
		if debug.Cond() {
			debug.Logf("cond: expr compile %q: %v", src, err)
		}
		return falseExpr{}
	}
	return &exprProgram{src: src, prg: prg}
}

type exprProgram struct {
	src string
	prg *vm.Program
}

func (e *exprProgram) Eval(ctx *Context) (res bool) {
	// evaluation failures never propagate out of a condition
	defer func() {
		if r := recover(); r != nil {
			res = false
		}
	}()
	out, err := expr.Run(e.prg, ctx.Env())
	if err != nil {
		if debug.Cond() {
			debug.Logf("cond: expr run %q: %v", e.src, err)
		}
		return false
	}
	b, ok := out.(bool)
	return ok && b
}
