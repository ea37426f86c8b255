package schema

import (
	"regexp"
	"strings"
)

// globPattern is a compiled path pattern with the specificity data
// used to break ties between overlapping schemas: fewest wildcard
// characters first, then longest literal prefix.
type globPattern struct {
	src       string
	re        *regexp.Regexp
	wildcards int
	litPrefix int
}

// compileGlob translates a glob into an anchored regexp: `**`
// crosses path separators, `*` and `?` do not. Patterns also match
// as a suffix at a segment boundary, so "events/*.txt" accepts
// "mod/events/birth.txt".
func compileGlob(pattern string) globPattern {
	g := globPattern{src: pattern}
	var b strings.Builder
	b.WriteString(`(?:^|/)`)
	for i := 0; i < len(pattern); i++ {
		switch c := pattern[i]; c {
		case '*':
			g.wildcards++
			if i+1 < len(pattern) && pattern[i+1] == '*' {
				i++
				g.wildcards++
				if i+1 < len(pattern) && pattern[i+1] == '/' {
					// "**/" spans zero or more whole segments
					i++
					b.WriteString(`(?:.*/)?`)
				} else {
					b.WriteString(`.*`)
				}
			} else {
				b.WriteString(`[^/]*`)
			}
		case '?':
			g.wildcards++
			b.WriteString(`[^/]`)
		default:
			if g.wildcards == 0 {
				g.litPrefix++
			}
			b.WriteString(regexp.QuoteMeta(string(c)))
		}
	}
	b.WriteString(`$`)
	re, err := regexp.Compile(b.String())
	if err != nil {
		// glob translation only emits valid syntax; guard anyway
		re = regexp.MustCompile(regexp.QuoteMeta(pattern) + `$`)
	}
	g.re = re
	return g
}

func (g *globPattern) match(path string) bool {
	return g.re.MatchString(path)
}

// moreSpecific reports whether g beats h under the tie-break rule.
func (g *globPattern) moreSpecific(h *globPattern) bool {
	if g.wildcards != h.wildcards {
		return g.wildcards < h.wildcards
	}
	return g.litPrefix > h.litPrefix
}

// NormalizePath rewrites a logical path to forward slashes for
// pattern matching.
func NormalizePath(path string) string {
	return strings.ReplaceAll(path, `\`, "/")
}
