package validate

import (
	"github.com/sergi/go-diff/diffmatchpatch"
)

// suggest returns the candidate closest to got, or "" when nothing is
// close enough to plausibly be a typo.
func suggest(got string, candidates []string) string {
	if got == "" {
		return ""
	}
	dmp := diffmatchpatch.New()
	best := ""
	bestDist := maxEditDistance(got) + 1
	for _, c := range candidates {
		diffs := dmp.DiffMain(got, c, false)
		d := dmp.DiffLevenshtein(diffs)
		if d < bestDist {
			best, bestDist = c, d
		}
	}
	return best
}

func maxEditDistance(s string) int {
	d := len(s) / 3
	if d < 2 {
		d = 2
	}
	return d
}
