package token

import "fmt"

type TokenType int

const (
	TLiteral TokenType = iota
	TString
	TOperator
	TLCurl
	TRCurl
	TComment
)

func (t TokenType) String() string {
	return map[TokenType]string{
		TLiteral:  "TLiteral",
		TString:   "TString",
		TOperator: "TOperator",
		TLCurl:    "TLCurl",
		TRCurl:    "TRCurl",
		TComment:  "TComment",
	}[t]
}

type Token struct {
	Type  TokenType
	Start Pos
	End   Pos
	Text  string
}

func (t *Token) Range() Range {
	return Range{Start: t.Start, End: t.End}
}

func (t *Token) Info() string {
	return fmt.Sprintf("%s %q at %s", t.Type, t.Text, t.Start)
}

// IsComparison reports whether t is a comparison operator rather than
// the plain assignment "=".
func (t *Token) IsComparison() bool {
	return t.Type == TOperator && t.Text != "="
}
