// Package diagnostics accumulates non-fatal parse and validation findings
// alongside a possibly-partial model, instead of failing an import outright.
package diagnostics

import "fmt"

// Severity classifies a Diagnostic.
type Severity string

const (
	Error   Severity = "error"
	Warning Severity = "warning"
	Info    Severity = "info"
)

// Diagnostic is a single recoverable finding produced while importing,
// exporting, or validating a format.
type Diagnostic struct {
	Severity Severity `json:"severity"`
	Message  string   `json:"message"`
	Path     string   `json:"path,omitempty"`
	Line     int      `json:"line,omitempty"`
	Column   int      `json:"column,omitempty"`
	EntityID string   `json:"entity_id,omitempty"`
}

func (d Diagnostic) String() string {
	if d.Path != "" {
		return fmt.Sprintf("%s: %s (%s:%d:%d)", d.Severity, d.Message, d.Path, d.Line, d.Column)
	}
	return fmt.Sprintf("%s: %s", d.Severity, d.Message)
}

// Diagnostics is an ordered collection of Diagnostic values, in the order
// they were recorded during a single operation.
type Diagnostics []Diagnostic

// Add appends a diagnostic.
func (d *Diagnostics) Add(severity Severity, message string) {
	*d = append(*d, Diagnostic{Severity: severity, Message: message})
}

// Addf appends a formatted diagnostic.
func (d *Diagnostics) Addf(severity Severity, format string, args ...interface{}) {
	d.Add(severity, fmt.Sprintf(format, args...))
}

// AddAt appends a diagnostic with a source location.
func (d *Diagnostics) AddAt(severity Severity, message, path string, line, column int) {
	*d = append(*d, Diagnostic{Severity: severity, Message: message, Path: path, Line: line, Column: column})
}

// HasErrors reports whether any diagnostic has Error severity.
func (d Diagnostics) HasErrors() bool {
	for _, diag := range d {
		if diag.Severity == Error {
			return true
		}
	}
	return false
}

// Errors returns only the Error-severity diagnostics.
func (d Diagnostics) Errors() Diagnostics {
	var out Diagnostics
	for _, diag := range d {
		if diag.Severity == Error {
			out = append(out, diag)
		}
	}
	return out
}

// Merge appends all diagnostics from other onto d.
func (d *Diagnostics) Merge(other Diagnostics) {
	*d = append(*d, other...)
}
