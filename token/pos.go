package token

import "fmt"

// Pos is a 0-indexed (line, character) position in a script document.
type Pos struct {
	Line      int
	Character int
}

func (p Pos) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Character)
}

// Before reports whether p is strictly before q in document order.
func (p Pos) Before(q Pos) bool {
	if p.Line != q.Line {
		return p.Line < q.Line
	}
	return p.Character < q.Character
}

// Range is a half-open [Start, End) span of document positions.
type Range struct {
	Start Pos
	End   Pos
}

func (r Range) String() string {
	return fmt.Sprintf("%s-%s", r.Start, r.End)
}

// Cover returns the smallest range containing both r and s.
func (r Range) Cover(s Range) Range {
	res := r
	if s.Start.Before(res.Start) {
		res.Start = s.Start
	}
	if res.End.Before(s.End) {
		res.End = s.End
	}
	return res
}
