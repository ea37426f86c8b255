package parse

import "github.com/pdxkit/go-pdxscript/token"

// BraceReport records brace-depth bookkeeping from a parse: where
// unmatched opening braces were implicitly closed and where stray
// closing braces were ignored. Hosts use it to surface unbalanced
// brace diagnostics; the parser itself never fails on either.
type BraceReport struct {
	UnclosedOpens []token.Pos
	StrayCloses   []token.Pos
}

type parseOpts struct {
	report *BraceReport
}

type ParseOption func(*parseOpts)

// ParseBraceReport fills r with brace bookkeeping during the parse.
func ParseBraceReport(r *BraceReport) ParseOption {
	return func(o *parseOpts) { o.report = r }
}
