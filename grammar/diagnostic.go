package grammar

import "fmt"

// DiagnosticCode classifies a non-fatal problem found while compiling a grammar.
type DiagnosticCode string

const (
	DiagUnknownStyle     DiagnosticCode = "unknown-style"
	DiagUnknownAttribute DiagnosticCode = "unknown-attribute"
	DiagUnknownContext   DiagnosticCode = "unknown-context"
	DiagInvalidSwitch    DiagnosticCode = "invalid-switch"
	DiagMissingAttribute DiagnosticCode = "missing-attribute"
	DiagMissingList      DiagnosticCode = "missing-list"
	DiagInvalidIndex     DiagnosticCode = "invalid-index"
	DiagInvalidBool      DiagnosticCode = "invalid-bool"
	DiagInvalidColumn    DiagnosticCode = "invalid-column"
	DiagDuplicateContext DiagnosticCode = "duplicate-context"
	DiagIncludeFailed    DiagnosticCode = "include-failed"
)

// Diagnostic records one lenient recovery made during compilation.
type Diagnostic struct {
	Code    DiagnosticCode
	Message string
	// Element is the tag of the XML element being compiled.
	Element string
	// Line is 1-based, 0 when unknown.
	Line int
}

func (d Diagnostic) String() string {
	if d.Line > 0 {
		return fmt.Sprintf("%s: <%s> line %d: %s", d.Code, d.Element, d.Line, d.Message)
	}
	return fmt.Sprintf("%s: <%s>: %s", d.Code, d.Element, d.Message)
}
