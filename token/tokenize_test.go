package token

import "testing"

func TestTokenize(t *testing.T) {
	toks := Tokenize(`namespace = my_mod
my_mod.1 = { # an event
	type = character_event
	title = "my_mod.1.t"
	weight_multiplier >= 1.5
}`)
	var types []TokenType
	for i := range toks {
		types = append(types, toks[i].Type)
	}
	want := []TokenType{
		TLiteral, TOperator, TLiteral,
		TLiteral, TOperator, TLCurl, TComment,
		TLiteral, TOperator, TLiteral,
		TLiteral, TOperator, TString,
		TLiteral, TOperator, TLiteral,
		TRCurl,
	}
	if len(toks) != len(want) {
		t.Fatalf("got %d tokens, want %d", len(toks), len(want))
	}
	for i := range want {
		if types[i] != want[i] {
			t.Errorf("token %d: got %s, want %s (%s)", i, types[i], want[i], toks[i].Info())
		}
	}
}

func TestTokenizePositions(t *testing.T) {
	toks := Tokenize("a = b\n\tc = d")
	if len(toks) != 6 {
		t.Fatalf("got %d tokens", len(toks))
	}
	c := toks[3]
	if c.Start != (Pos{Line: 1, Character: 1}) {
		t.Errorf("c starts at %s", c.Start)
	}
	d := toks[5]
	if d.Start != (Pos{Line: 1, Character: 5}) || d.End != (Pos{Line: 1, Character: 6}) {
		t.Errorf("d spans %s", d.Range())
	}
}

func TestTokenizeQuoted(t *testing.T) {
	for _, tc := range []struct {
		in   string
		want string
	}{
		{`"plain"`, "plain"},
		{`"with \"escapes\""`, `with "escapes"`},
		{`"unterminated`, "unterminated"},
		{`""`, ""},
	} {
		toks := Tokenize(tc.in)
		if len(toks) != 1 || toks[0].Type != TString {
			t.Fatalf("%q: unexpected tokens %v", tc.in, toks)
		}
		if toks[0].Text != tc.want {
			t.Errorf("%q: got %q, want %q", tc.in, toks[0].Text, tc.want)
		}
	}
}

func TestTokenizeQuoteHidesComment(t *testing.T) {
	toks := Tokenize(`desc = "has # not a comment"`)
	if len(toks) != 3 {
		t.Fatalf("got %d tokens, want 3", len(toks))
	}
	if toks[2].Text != "has # not a comment" {
		t.Errorf("got %q", toks[2].Text)
	}
}

func TestTokenizeOperators(t *testing.T) {
	toks := Tokenize("a >= 1 b != c d == e f < 0")
	ops := []string{}
	for i := range toks {
		if toks[i].Type == TOperator {
			ops = append(ops, toks[i].Text)
		}
	}
	want := []string{">=", "!=", "==", "<"}
	if len(ops) != len(want) {
		t.Fatalf("got %v", ops)
	}
	for i := range want {
		if ops[i] != want[i] {
			t.Errorf("op %d: got %q want %q", i, ops[i], want[i])
		}
	}
}

func TestTokenizeTrailingCommentNoNewline(t *testing.T) {
	toks := Tokenize("# only a comment")
	if len(toks) != 1 || toks[0].Type != TComment {
		t.Fatalf("got %v", toks)
	}
}

func TestTokenizeEmpty(t *testing.T) {
	for _, in := range []string{"", "   ", "\n\n\t\n", "\r\n"} {
		if toks := Tokenize(in); len(toks) != 0 {
			t.Errorf("%q: got %d tokens", in, len(toks))
		}
	}
}
