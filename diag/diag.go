// Package diag defines the validation findings produced by this
// module. Diagnostics are produced once and never mutated; the
// presentation layer (CLI, LSP) decides how to render them.
package diag

import (
	"fmt"

	"github.com/pdxkit/go-pdxscript/token"
)

type Severity int

const (
	Error Severity = iota + 1
	Warning
	Information
	Hint
)

func (s Severity) String() string {
	switch s {
	case Error:
		return "error"
	case Warning:
		return "warning"
	case Information:
		return "information"
	case Hint:
		return "hint"
	}
	return fmt.Sprintf("severity(%d)", int(s))
}

// ParseSeverity maps a schema-author severity string to a Severity,
// returning def for unknown or empty input.
func ParseSeverity(s string, def Severity) Severity {
	switch s {
	case "error":
		return Error
	case "warning":
		return Warning
	case "information", "info":
		return Information
	case "hint":
		return Hint
	}
	return def
}

// Codes owned by this module. All other diagnostic codes are
// schema-author-declared strings threaded through unchanged.
const (
	// pattern/type mismatch families
	CodeLocalisationPattern = "pdx-loc-pattern"
	CodeScopePattern        = "pdx-scope-pattern"
	CodeNumberPattern       = "pdx-number-pattern"
	CodePattern             = "pdx-pattern"

	// field ordering
	CodeFieldOrderStrict   = "pdx-field-order"
	CodeFieldOrderFlexible = "pdx-field-order-flex"
)

type Diagnostic struct {
	Code     string
	Severity Severity
	Message  string
	Range    token.Range
}

func (d *Diagnostic) String() string {
	return fmt.Sprintf("%s %s [%s] %s", d.Range.Start, d.Severity, d.Code, d.Message)
}
