package diagnostic

import (
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"
)

// Codes recorded by the engine.
const (
	CodeUnregistered  = "unregistered-type"
	CodeMissingNode   = "missing-node"
	CodeKindMismatch  = "kind-mismatch"
	CodeDeprecated    = "deprecated-member"
	CodeNameCollision = "name-collision"
	CodeUnownedLink   = "unowned-link"
	CodeMissingCaster = "missing-caster"

	CodeGeneratedSkipped = "generated-skipped"
	CodeSharedLink       = "shared-link"
)

// Diagnostics holds all findings of one pass.
type Diagnostics struct {
	Errors   []Diagnostic
	Warnings []Diagnostic
	Infos    []Diagnostic
}

// Diagnostic represents a single finding.
type Diagnostic struct {
	Severity DiagnosticSeverity
	// Code is a unique identifier for this kind of finding.
	Code    string
	Message string
	// TypeName is the type involved, if any.
	TypeName string
	// Path is the node path, if any.
	Path string
	// Suggestions are close registered names, for lookups that failed.
	Suggestions []string
}

// DiagnosticSeverity ranks a Diagnostic.
type DiagnosticSeverity int

const (
	DiagnosticInfo DiagnosticSeverity = iota
	DiagnosticWarning
	DiagnosticError
)

func (s DiagnosticSeverity) String() string {
	switch s {
	case DiagnosticInfo:
		return "info"
	case DiagnosticWarning:
		return "warning"
	case DiagnosticError:
		return "error"
	default:
		return "unknown"
	}
}

// AddError adds an error diagnostic.
func (d *Diagnostics) AddError(code, message, typeName, path string, suggestions ...string) {
	d.Errors = append(d.Errors, Diagnostic{
		Severity:    DiagnosticError,
		Code:        code,
		Message:     message,
		TypeName:    typeName,
		Path:        path,
		Suggestions: suggestions,
	})
}

// AddWarning adds a warning diagnostic.
func (d *Diagnostics) AddWarning(code, message, typeName, path string) {
	d.Warnings = append(d.Warnings, Diagnostic{
		Severity: DiagnosticWarning,
		Code:     code,
		Message:  message,
		TypeName: typeName,
		Path:     path,
	})
}

// AddInfo adds an informational diagnostic.
func (d *Diagnostics) AddInfo(code, message, typeName, path string) {
	d.Infos = append(d.Infos, Diagnostic{
		Severity: DiagnosticInfo,
		Code:     code,
		Message:  message,
		TypeName: typeName,
		Path:     path,
	})
}

// HasErrors returns true if there are any errors.
func (d *Diagnostics) HasErrors() bool {
	return len(d.Errors) > 0
}

// Codes lists the codes of every warning in order, for quick assertions.
func (d *Diagnostics) Codes() []string {
	out := make([]string, 0, len(d.Warnings))
	for _, w := range d.Warnings {
		out = append(out, w.Code)
	}

	return out
}

// Error returns a combined error from all error diagnostics, or nil.
func (d *Diagnostics) Error() error {
	if !d.HasErrors() {
		return nil
	}

	parts := make([]string, 0, len(d.Errors))
	for _, e := range d.Errors {
		parts = append(parts, e.String())
	}

	return errors.New(strings.Join(parts, "; "))
}

// String formats the diagnostic as "[Type] path: [code] message".
func (d Diagnostic) String() string {
	var prefix []string
	if d.TypeName != "" {
		prefix = append(prefix, "["+d.TypeName+"]")
	}

	if d.Path != "" {
		prefix = append(prefix, d.Path)
	}

	msg := d.Message
	if d.Code != "" {
		msg = fmt.Sprintf("[%s] %s", d.Code, msg)
	}

	if len(d.Suggestions) > 0 {
		msg += " (did you mean " + strings.Join(d.Suggestions, ", ") + "?)"
	}

	if len(prefix) > 0 {
		return strings.Join(prefix, " ") + ": " + msg
	}

	return msg
}
