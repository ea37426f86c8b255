package validate

import (
	"strings"
	"testing"

	"github.com/pdxkit/go-pdxscript/diag"
	"github.com/pdxkit/go-pdxscript/parse"
	"github.com/pdxkit/go-pdxscript/schema"
	"github.com/pdxkit/go-pdxscript/scope"
)

const typesYAML = `
localisation:
  pattern: '^[A-Za-z0-9_.]+$'
integer:
  pattern: '^-?[0-9]+$'
number:
  pattern: '^-?[0-9]+(\.[0-9]+)?$'
scope_ref:
  pattern: '^(ROOT|FROM)$'
`

const eventSchemaYAML = `
file_type: event
identification:
  path_patterns: ["events/**/*.txt"]
  block_pattern: '^[a-zA-Z_][a-zA-Z0-9_]*\.\d+$'
fields:
  type:
    type: enum
    required: true
    values: [character_event, letter_event]
    diagnostic: missing-event-type
    invalid_diagnostic: invalid-event-type
  title:
    type: localisation
    required: true
    required_unless: [hidden]
    diagnostic: missing-title
  desc:
    type: localisation
    required: true
    required_unless: [hidden]
    diagnostic: missing-desc
  weight:
    type: integer
  factor:
    type: number
  target:
    type: scope_ref
  option:
    max_count: 2
    count_diagnostic: too-many-options
    schema: option
nested_schemas:
  option:
    fields:
      name:
        type: localisation
        required: true
        diagnostic: missing-option-name
`

func testValidator(t *testing.T, schemas ...string) *Validator {
	t.Helper()
	reg := schema.NewRegistry()
	defs, err := schema.ParseTypes([]byte(typesYAML))
	if err != nil {
		t.Fatal(err)
	}
	reg.AddTypes(defs)
	for _, y := range schemas {
		s, err := schema.ParseSchema([]byte(y))
		if err != nil {
			t.Fatal(err)
		}
		reg.AddSchema(s)
	}
	scopes := scope.NewRegistry(map[string]*scope.Def{
		"character": {Links: map[string]string{"liege": "character", "primary_title": "landed_title"}},
		"landed_title": {Links: map[string]string{"holder": "character"}},
	})
	return New(reg, scopes)
}

func codes(ds []diag.Diagnostic) []string {
	res := make([]string, len(ds))
	for i := range ds {
		res[i] = ds[i].Code
	}
	return res
}

func TestValidateNoSchemaMatch(t *testing.T) {
	v := testValidator(t, eventSchemaYAML)
	root := parse.Parse("whatever = {}", "common/traits/x.txt")
	if ds := v.Validate("common/traits/x.txt", root); len(ds) != 0 {
		t.Errorf("fail-open expected, got %v", ds)
	}
}

func TestValidateMissingTypeOnly(t *testing.T) {
	v := testValidator(t, eventSchemaYAML)
	root := parse.Parse(`my_mod.1 = {
	title = "my_mod.1.t"
	desc = "my_mod.1.d"
}`, "events/my_mod.txt")
	ds := v.Validate("events/my_mod.txt", root)
	if len(ds) != 1 {
		t.Fatalf("want exactly the missing-type error, got %v", ds)
	}
	if ds[0].Code != "missing-event-type" || ds[0].Severity != diag.Error {
		t.Errorf("got %+v", ds[0])
	}
}

func TestRequiredUnless(t *testing.T) {
	v := testValidator(t, eventSchemaYAML)

	root := parse.Parse("my_mod.1 = {\n\ttype = character_event\n\thidden = yes\n\tdesc = d\n}", "events/x.txt")
	for _, d := range v.Validate("events/x.txt", root) {
		if d.Code == "missing-title" {
			t.Errorf("hidden = yes should exempt title: %v", d)
		}
	}

	root = parse.Parse("my_mod.1 = {\n\ttype = character_event\n\thidden = no\n\tdesc = d\n}", "events/x.txt")
	if !hasCode(v.Validate("events/x.txt", root), "missing-title") {
		t.Error("hidden = no should not exempt title")
	}

	root = parse.Parse("my_mod.1 = {\n\ttype = character_event\n\tdesc = d\n}", "events/x.txt")
	if !hasCode(v.Validate("events/x.txt", root), "missing-title") {
		t.Error("absent hidden should not exempt title")
	}
}

func TestRequiredWhen(t *testing.T) {
	const y = `
file_type: decision
identification:
  path_patterns: ["decisions/*.txt"]
fields:
  confirm_text:
    required: true
    required_when: {field: major, equals: "yes"}
    diagnostic: missing-confirm
`
	v := testValidator(t, y)
	root := parse.Parse("d = { major = yes }", "decisions/x.txt")
	if !hasCode(v.Validate("decisions/x.txt", root), "missing-confirm") {
		t.Error("major = yes should require confirm_text")
	}
	root = parse.Parse("d = { major = no }", "decisions/x.txt")
	if hasCode(v.Validate("decisions/x.txt", root), "missing-confirm") {
		t.Error("major = no should exempt confirm_text")
	}
	root = parse.Parse("d = { }", "decisions/x.txt")
	if hasCode(v.Validate("decisions/x.txt", root), "missing-confirm") {
		t.Error("absent major should exempt confirm_text")
	}
}

func TestMaxCount(t *testing.T) {
	v := testValidator(t, eventSchemaYAML)
	root := parse.Parse(`my_mod.1 = {
	type = character_event
	hidden = yes
	option = { name = a }
	option = { name = b }
	option = { name = c }
}`, "events/x.txt")
	ds := v.Validate("events/x.txt", root)
	found := false
	for _, d := range ds {
		if d.Code == "too-many-options" {
			found = true
			if d.Severity != diag.Error {
				t.Errorf("count severity %v", d.Severity)
			}
		}
	}
	if !found {
		t.Errorf("want too-many-options, got %v", codes(ds))
	}
}

func TestMinCount(t *testing.T) {
	const y = `
file_type: focus
identification:
  path_patterns: ["focuses/*.txt"]
fields:
  modifier:
    min_count: 1
    min_count_unless: [inactive]
    count_diagnostic: too-few-modifiers
`
	v := testValidator(t, y)
	root := parse.Parse("f = { }", "focuses/x.txt")
	ds := v.Validate("focuses/x.txt", root)
	if !hasCode(ds, "too-few-modifiers") {
		t.Fatalf("want too-few-modifiers, got %v", codes(ds))
	}
	if ds[0].Severity != diag.Warning {
		t.Errorf("min_count severity %v", ds[0].Severity)
	}
	root = parse.Parse("f = { inactive = yes }", "focuses/x.txt")
	if ds := v.Validate("focuses/x.txt", root); hasCode(ds, "too-few-modifiers") {
		t.Error("truthy min_count_unless field should suppress the check")
	}
}

func TestEnumRangeAndMessage(t *testing.T) {
	v := testValidator(t, eventSchemaYAML)
	root := parse.Parse("my_mod.1 = {\n\ttype = bogus_event\n\thidden = yes\n}", "events/x.txt")
	ds := v.Validate("events/x.txt", root)
	var enum *diag.Diagnostic
	for i := range ds {
		if ds[i].Code == "invalid-event-type" {
			enum = &ds[i]
		}
	}
	if enum == nil {
		t.Fatalf("want invalid-event-type, got %v", codes(ds))
	}
	// the property's own range, not the event block's
	if enum.Range.Start.Line != 1 {
		t.Errorf("enum diagnostic at %s", enum.Range.Start)
	}
	if want := "character_event, letter_event"; !strings.Contains(enum.Message, want) {
		t.Errorf("message %q lacks %q", enum.Message, want)
	}
}

func TestIntegerAndNumberPatterns(t *testing.T) {
	v := testValidator(t, eventSchemaYAML)

	root := parse.Parse("my_mod.1 = {\n\ttype = character_event\n\thidden = yes\n\tweight = 42\n}", "events/x.txt")
	if hasCode(v.Validate("events/x.txt", root), diag.CodeNumberPattern) {
		t.Error("integer value must pass the integer type")
	}

	root = parse.Parse("my_mod.1 = {\n\ttype = character_event\n\thidden = yes\n\tweight = 4.2\n}", "events/x.txt")
	ds := v.Validate("events/x.txt", root)
	if !hasCode(ds, diag.CodeNumberPattern) {
		t.Errorf("decimal value must fail the integer type, got %v", codes(ds))
	}

	root = parse.Parse("my_mod.1 = {\n\ttype = character_event\n\thidden = yes\n\tfactor = 4.2\n}", "events/x.txt")
	if hasCode(v.Validate("events/x.txt", root), diag.CodeNumberPattern) {
		t.Error("decimal value must pass the number type")
	}
}

func TestScopeChainFallback(t *testing.T) {
	v := testValidator(t, eventSchemaYAML)
	// fails the scope_ref pattern but resolves as a link chain
	root := parse.Parse("my_mod.1 = {\n\ttype = character_event\n\thidden = yes\n\ttarget = liege.primary_title.holder\n}", "events/x.txt")
	if ds := v.Validate("events/x.txt", root); hasCode(ds, diag.CodeScopePattern) {
		t.Errorf("valid scope chain should pass, got %v", codes(ds))
	}
	root = parse.Parse("my_mod.1 = {\n\ttype = character_event\n\thidden = yes\n\ttarget = liege.nonsense\n}", "events/x.txt")
	if ds := v.Validate("events/x.txt", root); !hasCode(ds, diag.CodeScopePattern) {
		t.Errorf("invalid scope chain should be flagged, got %v", codes(ds))
	}
}

func TestEmptyValueSkipsPattern(t *testing.T) {
	v := testValidator(t, eventSchemaYAML)
	// weight supplied as a block has no scalar value; the pattern
	// check must not fire
	root := parse.Parse("my_mod.1 = {\n\ttype = character_event\n\thidden = yes\n\tweight = { base = 1 }\n}", "events/x.txt")
	if ds := v.Validate("events/x.txt", root); hasCode(ds, diag.CodeNumberPattern) {
		t.Errorf("empty value must skip the pattern check, got %v", codes(ds))
	}
}

func TestNestedSchemaRecursion(t *testing.T) {
	v := testValidator(t, eventSchemaYAML)
	root := parse.Parse(`my_mod.1 = {
	type = character_event
	hidden = yes
	option = { name = ok }
	option = { }
}`, "events/x.txt")
	ds := v.Validate("events/x.txt", root)
	n := 0
	for _, d := range ds {
		if d.Code == "missing-option-name" {
			n++
		}
	}
	if n != 1 {
		t.Errorf("want one missing-option-name, got %v", codes(ds))
	}
}

func TestFieldWarningsAndValidations(t *testing.T) {
	const y = `
file_type: event
identification:
  path_patterns: ["events/*.txt"]
fields:
  option:
    warnings:
      - condition: NOT name.exists
        diagnostic: option-unnamed
        severity: warning
validations:
  - condition: NOT hidden.exists AND NOT option.exists
    diagnostic: event-inert
    severity: information
`
	v := testValidator(t, y)
	root := parse.Parse("e = {\n\toption = { }\n}", "events/x.txt")
	ds := v.Validate("events/x.txt", root)
	if !hasCode(ds, "option-unnamed") {
		t.Errorf("want option-unnamed, got %v", codes(ds))
	}
	if hasCode(ds, "event-inert") {
		t.Error("event-inert should not fire when option exists")
	}

	root = parse.Parse("e = { }", "events/x.txt")
	ds = v.Validate("events/x.txt", root)
	if !hasCode(ds, "event-inert") {
		t.Errorf("want event-inert, got %v", codes(ds))
	}
	for _, d := range ds {
		if d.Code == "event-inert" && d.Severity != diag.Information {
			t.Errorf("severity %v", d.Severity)
		}
	}
}

func hasCode(ds []diag.Diagnostic, code string) bool {
	for _, d := range ds {
		if d.Code == code {
			return true
		}
	}
	return false
}

