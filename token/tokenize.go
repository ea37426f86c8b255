package token

import "strings"

// structural characters that terminate a bare literal
const structural = "{}=<>\"#"

// Tokenize splits script text into tokens. It is total: any byte
// sequence produces a token stream, never an error. Unterminated
// quoted strings are closed at end of input, and a trailing comment
// without a final newline is still emitted.
func Tokenize(text string) []Token {
	s := &scanner{text: text}
	var toks []Token
	for {
		t, ok := s.next()
		if !ok {
			return toks
		}
		toks = append(toks, t)
	}
}

type scanner struct {
	text string
	off  int
	line int
	col  int
}

func (s *scanner) eof() bool {
	return s.off >= len(s.text)
}

func (s *scanner) peek() byte {
	return s.text[s.off]
}

// advance consumes one byte, maintaining the (line, character)
// counters. Columns count bytes of a rune as one character via
// UTF-8 continuation-byte detection.
func (s *scanner) advance() {
	c := s.text[s.off]
	s.off++
	if c == '\n' {
		s.line++
		s.col = 0
		return
	}
	// continuation bytes do not advance the column
	if c&0xc0 == 0x80 {
		return
	}
	s.col++
}

func (s *scanner) pos() Pos {
	return Pos{Line: s.line, Character: s.col}
}

func (s *scanner) next() (Token, bool) {
	for !s.eof() {
		switch c := s.peek(); {
		case c == ' ' || c == '\t' || c == '\r' || c == '\n':
			s.advance()
		case c == '#':
			return s.comment(), true
		case c == '"':
			return s.quoted(), true
		case c == '{':
			return s.single(TLCurl), true
		case c == '}':
			return s.single(TRCurl), true
		case c == '=' || c == '<' || c == '>':
			return s.operator(), true
		case c == '!' && s.off+1 < len(s.text) && s.text[s.off+1] == '=':
			return s.operator(), true
		default:
			return s.literal(), true
		}
	}
	return Token{}, false
}

func (s *scanner) single(tt TokenType) Token {
	start := s.pos()
	from := s.off
	s.advance()
	return Token{Type: tt, Start: start, End: s.pos(), Text: s.text[from:s.off]}
}

func (s *scanner) operator() Token {
	start := s.pos()
	from := s.off
	s.advance()
	if !s.eof() && s.peek() == '=' {
		s.advance()
	}
	return Token{Type: TOperator, Start: start, End: s.pos(), Text: s.text[from:s.off]}
}

func (s *scanner) comment() Token {
	start := s.pos()
	from := s.off
	for !s.eof() && s.peek() != '\n' {
		s.advance()
	}
	return Token{Type: TComment, Start: start, End: s.pos(), Text: s.text[from:s.off]}
}

// quoted consumes a double-quoted string with backslash escapes. The
// token text is the unquoted content; the range covers the quotes as
// written. An unterminated string runs to end of input.
func (s *scanner) quoted() Token {
	start := s.pos()
	s.advance() // opening quote
	var b strings.Builder
	for !s.eof() {
		c := s.peek()
		if c == '\\' && s.off+1 < len(s.text) {
			s.advance()
			b.WriteByte(s.peek())
			s.advance()
			continue
		}
		if c == '"' {
			s.advance()
			break
		}
		b.WriteByte(c)
		s.advance()
	}
	return Token{Type: TString, Start: start, End: s.pos(), Text: b.String()}
}

func (s *scanner) literal() Token {
	start := s.pos()
	from := s.off
	for !s.eof() {
		c := s.peek()
		if c == ' ' || c == '\t' || c == '\r' || c == '\n' {
			break
		}
		if strings.IndexByte(structural, c) >= 0 {
			break
		}
		if c == '!' && s.off+1 < len(s.text) && s.text[s.off+1] == '=' {
			break
		}
		s.advance()
	}
	return Token{Type: TLiteral, Start: start, End: s.pos(), Text: s.text[from:s.off]}
}
