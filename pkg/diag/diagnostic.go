package diag

import (
	"fmt"
	"strings"

	"github.com/yaklabco/asmlex/pkg/source"
)

// Severity is the level assigned to a diagnostic instance.
type Severity uint8

// Severities, in increasing order.
const (
	SeverityNote Severity = iota
	SeverityWarning
	SeverityError
	SeverityFatal
)

// String implements fmt.Stringer.
func (s Severity) String() string {
	switch s {
	case SeverityNote:
		return "note"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	case SeverityFatal:
		return "fatal"
	default:
		return fmt.Sprintf("Severity(%d)", uint8(s))
	}
}

// ParseSeverity parses the String form of a severity.
func ParseSeverity(s string) (Severity, error) {
	switch strings.ToLower(s) {
	case "note", "info":
		return SeverityNote, nil
	case "warning", "warn":
		return SeverityWarning, nil
	case "error":
		return SeverityError, nil
	case "fatal":
		return SeverityFatal, nil
	default:
		return 0, fmt.Errorf("unknown severity %q", s)
	}
}

// Diagnostic is one reported problem.
type Diagnostic struct {
	Info     *Info
	Severity Severity

	// Start is inclusive, End exclusive.
	Start source.BPosition
	End   source.BPosition

	// Include identifies the include chain that produced the document,
	// zero for a top-level document.
	Include uint32
}

// New builds a diagnostic with the kind's minimum severity.
func New(id ID, start, end source.BPosition) Diagnostic {
	info := MustLookup(id)
	return Diagnostic{Info: info, Severity: info.MinSeverity, Start: start, End: end}
}

// Message returns the catalog message.
func (d Diagnostic) Message() string {
	if d.Info == nil {
		return ""
	}
	return d.Info.Message
}

// String renders "line:col: severity: message [name]".
func (d Diagnostic) String() string {
	name := ""
	if d.Info != nil {
		name = d.Info.Name
	}
	return fmt.Sprintf("%s: %s: %s [%s]", d.Start.Position, d.Severity, d.Message(), name)
}

// List is an append-only diagnostic list with running counters.
type List struct {
	items    []Diagnostic
	warnings int
	errors   int
}

// Push appends d and returns its index.
func (l *List) Push(d Diagnostic) int {
	l.items = append(l.items, d)
	switch d.Severity {
	case SeverityWarning:
		l.warnings++
	case SeverityError, SeverityFatal:
		l.errors++
	case SeverityNote:
	}
	return len(l.items) - 1
}

// SetEnd patches the end position of the diagnostic at index i. Diagnostics
// that enclose nested reports are pushed first and closed once their extent
// is known.
func (l *List) SetEnd(i int, end source.BPosition) {
	if i < 0 || i >= len(l.items) {
		return
	}
	l.items[i].End = end
}

// Items returns the diagnostics in report order. The slice must not be modified.
func (l *List) Items() []Diagnostic {
	return l.items
}

// Len returns the number of diagnostics.
func (l *List) Len() int {
	return len(l.items)
}

// At returns the diagnostic at index i.
func (l *List) At(i int) Diagnostic {
	return l.items[i]
}

// Warnings returns the number of warning diagnostics.
func (l *List) Warnings() int {
	return l.warnings
}

// Errors returns the number of error and fatal diagnostics.
func (l *List) Errors() int {
	return l.errors
}

// Count returns how many diagnostics of kind id were reported.
func (l *List) Count(id ID) int {
	var n int
	for _, d := range l.items {
		if d.Info != nil && d.Info.ID == id {
			n++
		}
	}
	return n
}

// Has reports whether any diagnostic of kind id was reported.
func (l *List) Has(id ID) bool {
	return l.Count(id) > 0
}
