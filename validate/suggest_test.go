package validate

import (
	"strings"
	"testing"

	"github.com/pdxkit/go-pdxscript/parse"
)

func TestSuggest(t *testing.T) {
	candidates := []string{"character_event", "letter_event", "province_event"}
	for _, tc := range []struct {
		got  string
		want string
	}{
		{"character_evnt", "character_event"},
		{"letter_events", "letter_event"},
		{"diplomacy", ""},
		{"", ""},
	} {
		if got := suggest(tc.got, candidates); got != tc.want {
			t.Errorf("suggest(%q) = %q, want %q", tc.got, got, tc.want)
		}
	}
}

func TestEnumSuggestionInMessage(t *testing.T) {
	v := testValidator(t, eventSchemaYAML)
	root := parse.Parse("my_mod.1 = {\n\ttype = character_evnt\n\thidden = yes\n}", "events/x.txt")
	ds := v.Validate("events/x.txt", root)
	found := false
	for _, d := range ds {
		if strings.Contains(d.Message, `did you mean "character_event"?`) {
			found = true
		}
	}
	if !found {
		t.Errorf("no suggestion in %v", ds)
	}
}
