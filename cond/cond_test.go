package cond

import (
	"testing"

	"github.com/pdxkit/go-pdxscript/parse"
)

func ctxFor(t *testing.T, text string) *Context {
	t.Helper()
	root := parse.Parse(text, "test.txt")
	if len(root.Children) != 1 {
		t.Fatalf("want a single top-level block, got %d", len(root.Children))
	}
	return BuildContext(root.Children[0])
}

func TestCompileEval(t *testing.T) {
	ctx := ctxFor(t, `e = {
	hidden = yes
	option = { name = a }
	option = { name = b }
	weight = 100
	desc = ""
}`)
	for _, tc := range []struct {
		cond string
		want bool
	}{
		{"hidden.exists", true},
		{"portrait.exists", false},
		{"NOT portrait.exists", true},
		{"NOT hidden.exists", false},
		{"option.count", true},
		{"option.count == 2", true},
		{"option.count > 2", false},
		{"option.count >= 2", true},
		{"option.count != 1", true},
		{"hidden.value == yes", true},
		{"hidden.value == no", false},
		{"weight.value >= 50", true},
		{"weight.value < 50", false},
		{"children.count == 5", true},
		{"children.count > 10", false},
		{"hidden.exists AND option.count == 2", true},
		{"hidden.exists AND portrait.exists", false},
		{"portrait.exists OR option.count == 2", true},
		{"portrait.exists OR theme.exists", false},
		// AND splits before OR, so both AND arms must hold
		{"portrait.exists OR hidden.exists AND theme.exists", false},
		{"NOT portrait.exists AND NOT theme.exists", true},
		// nonsense degrades to false, never an error
		{"", false},
		{"garbage", false},
		{"option.bogus == 1", false},
		{"missing.value == 1", false},
		{"hidden.value == ", false},
	} {
		if got := Compile(tc.cond).Eval(ctx); got != tc.want {
			t.Errorf("%q: got %v, want %v", tc.cond, got, tc.want)
		}
	}
}

func TestCompareScanOrder(t *testing.T) {
	ctx := ctxFor(t, "e = {\n\tweight = 10\n}")
	// ">=" must be found before ">", or "weight.value >= 10" would
	// parse as weight.value > "= 10"
	if !Compile("weight.value >= 10").Eval(ctx) {
		t.Error("weight.value >= 10 should hold")
	}
	if Compile("weight.value > 10").Eval(ctx) {
		t.Error("weight.value > 10 should not hold")
	}
}

func TestFirstOccurrenceValue(t *testing.T) {
	ctx := ctxFor(t, "e = {\n\ttrait = brave\n\ttrait = craven\n}")
	if !Compile("trait.value == brave").Eval(ctx) {
		t.Error("value should come from the first occurrence")
	}
	if !Compile("trait.count == 2").Eval(ctx) {
		t.Error("count should cover all occurrences")
	}
}

func TestExprDialect(t *testing.T) {
	ctx := ctxFor(t, `e = {
	hidden = yes
	option = { name = a }
}`)
	for _, tc := range []struct {
		cond string
		want bool
	}{
		{`expr: hidden.exists and option.count == 1`, true},
		{`expr: hidden.value == "yes"`, true},
		{`expr: children.count > 5`, false},
		// missing field: run error, swallowed to false
		{`expr: portrait.count > 0`, false},
		// compile error, swallowed to false
		{`expr: ((`, false},
		// non-bool result is false
		{`expr: children.count`, false},
	} {
		if got := Compile(tc.cond).Eval(ctx); got != tc.want {
			t.Errorf("%q: got %v, want %v", tc.cond, got, tc.want)
		}
	}
}
