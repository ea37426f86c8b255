// Package parse turns raw script text into an ir.Node tree.
//
// The grammar is a sequence of key = value statements where a value
// is a bare token, a quoted string, a comparison (key OP value), or
// a nested { } block. Comments run from # to end of line. The parser
// is total: any input, including empty text and unbalanced braces,
// yields a best-effort tree and never an error.
package parse

import (
	"github.com/pdxkit/go-pdxscript/ir"
	"github.com/pdxkit/go-pdxscript/token"
)

// Parse builds the AST for text. logicalPath is recorded as the root
// block's key; it is not used for I/O. The returned root Block holds
// every top-level statement; whitespace-only input yields a root with
// no children.
func Parse(text string, logicalPath string, opts ...ParseOption) *ir.Node {
	pOpts := &parseOpts{}
	for _, f := range opts {
		f(pOpts)
	}
	toks := filterComments(token.Tokenize(text))
	root := ir.NewBlock(logicalPath)

	p := &parser{toks: toks, opts: pOpts}
	p.push(root, token.Pos{})
	for !p.eof() {
		p.statement()
	}
	// implicitly close anything still open at EOF
	for len(p.stack) > 1 {
		_, open := p.pop()
		if pOpts.report != nil {
			pOpts.report.UnclosedOpens = append(pOpts.report.UnclosedOpens, open)
		}
	}
	return root
}

func filterComments(toks []token.Token) []token.Token {
	res := toks[:0]
	for i := range toks {
		if toks[i].Type == token.TComment {
			continue
		}
		res = append(res, toks[i])
	}
	return res
}

type parser struct {
	toks []token.Token
	i    int
	opts *parseOpts

	stack []*ir.Node
	opens []token.Pos
}

func (p *parser) eof() bool { return p.i >= len(p.toks) }

func (p *parser) peek() *token.Token { return &p.toks[p.i] }

func (p *parser) take() *token.Token {
	t := &p.toks[p.i]
	p.i++
	return t
}

func (p *parser) top() *ir.Node { return p.stack[len(p.stack)-1] }

func (p *parser) push(n *ir.Node, open token.Pos) {
	p.stack = append(p.stack, n)
	p.opens = append(p.opens, open)
}

// pop finalizes the current block, returning it and its opening
// brace position. The block's range is extended over its last child.
func (p *parser) pop() (*ir.Node, token.Pos) {
	n := len(p.stack) - 1
	blk, open := p.stack[n], p.opens[n]
	p.stack, p.opens = p.stack[:n], p.opens[:n]
	if len(blk.Children) > 0 {
		last := blk.Children[len(blk.Children)-1]
		blk.Range = blk.Range.Cover(last.Range)
	}
	return blk, open
}

func (p *parser) statement() {
	t := p.take()
	switch t.Type {
	case token.TRCurl:
		if len(p.stack) > 1 {
			blk, _ := p.pop()
			blk.Range = blk.Range.Cover(t.Range())
			return
		}
		// stray close: ignore and continue
		if p.opts.report != nil {
			p.opts.report.StrayCloses = append(p.opts.report.StrayCloses, t.Start)
		}
	case token.TLCurl:
		// anonymous nested block, seen inside list-style blocks
		blk := ir.NewBlock("")
		blk.Range = t.Range()
		blk.KeyRange = t.Range()
		p.top().Append(blk)
		p.push(blk, t.Start)
	case token.TOperator:
		// operator with no key: drop it and recover
	case token.TLiteral, token.TString:
		p.keyed(t)
	}
}

// keyed parses a statement beginning with a key token.
func (p *parser) keyed(key *token.Token) {
	if p.eof() || p.peek().Type != token.TOperator {
		// bare token: a value-only entry such as a list element
		n := ir.NewProperty(key.Text, "", "")
		n.Range = key.Range()
		n.KeyRange = key.Range()
		p.top().Append(n)
		return
	}
	op := p.take()
	if p.eof() {
		n := ir.NewProperty(key.Text, op.Text, "")
		n.Range = key.Range().Cover(op.Range())
		n.KeyRange = key.Range()
		p.top().Append(n)
		return
	}
	switch v := p.peek(); v.Type {
	case token.TLCurl:
		p.take()
		blk := ir.NewBlock(key.Text)
		blk.Operator = op.Text
		blk.Range = key.Range().Cover(v.Range())
		blk.KeyRange = key.Range()
		p.top().Append(blk)
		p.push(blk, v.Start)
	case token.TLiteral, token.TString:
		p.take()
		n := ir.NewProperty(key.Text, op.Text, v.Text)
		n.Range = key.Range().Cover(v.Range())
		n.KeyRange = key.Range()
		n.ValueRange = v.Range()
		p.top().Append(n)
	default:
		// `key =` followed by } or another operator: empty property,
		// leave the next token for the main loop
		n := ir.NewProperty(key.Text, op.Text, "")
		n.Range = key.Range().Cover(op.Range())
		n.KeyRange = key.Range()
		p.top().Append(n)
	}
}
