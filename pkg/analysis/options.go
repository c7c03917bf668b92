package analysis

import (
	"fmt"

	"github.com/yaklabco/asmlex/pkg/diag"
)

// SortField orders the by-code and by-file views.
type SortField string

// Sort fields.
const (
	SortByCount    SortField = "count"    // issue count, descending when SortDesc is set
	SortByAlpha    SortField = "alpha"    // code or path, always ascending
	SortBySeverity SortField = "severity" // errors, then warnings, then total
)

// IsValid returns true if the sort field is valid.
func (s SortField) IsValid() bool {
	switch s {
	case SortByCount, SortByAlpha, SortBySeverity:
		return true
	default:
		return false
	}
}

// ParseSortField parses a sort field name. The empty string means count.
func ParseSortField(s string) (SortField, error) {
	if s == "" {
		return SortByCount, nil
	}
	field := SortField(s)
	if !field.IsValid() {
		return "", fmt.Errorf("unknown sort field %q; valid fields: count, alpha, severity", s)
	}
	return field, nil
}

// Options configures Analyze.
type Options struct {
	// IncludeDiagnostics fills Report.Diagnostics.
	IncludeDiagnostics bool

	// IncludeByFile fills Report.ByFile.
	IncludeByFile bool

	// IncludeByCode fills Report.ByCode.
	IncludeByCode bool

	// MinSeverity drops diagnostics below it from every view and total.
	// The zero value, SeverityNote, keeps everything.
	MinSeverity diag.Severity

	SortBy   SortField
	SortDesc bool

	// WorkingDir anchors relative display paths; empty keeps paths as given.
	WorkingDir string
}

// DefaultOptions enables every view, sorted by descending count.
func DefaultOptions() Options {
	return Options{
		IncludeDiagnostics: true,
		IncludeByFile:      true,
		IncludeByCode:      true,
		SortBy:             SortByCount,
		SortDesc:           true,
	}
}
