package runner

import (
	"github.com/yaklabco/asmlex/pkg/diag"
	"github.com/yaklabco/asmlex/pkg/engine"
)

// FileOutcome is the result of one file.
type FileOutcome struct {
	// Path is the file path that was processed.
	Path string

	// Result is nil when Error is set.
	Result *engine.PipelineResult

	// Error is set if the file could not be processed.
	Error error
}

// Stats captures aggregate information about a run.
type Stats struct {
	// FilesDiscovered is the total number of files found during discovery.
	FilesDiscovered int

	// FilesProcessed is the number of files lexed to completion.
	FilesProcessed int

	// FilesErrored is the number of files that could not be lexed.
	FilesErrored int

	// FilesWithIssues is the number of files with at least one diagnostic.
	FilesWithIssues int

	// DiagnosticsTotal is the total number of diagnostics across all files.
	DiagnosticsTotal int

	// DiagnosticsBySeverity maps severity names to counts.
	DiagnosticsBySeverity map[string]int

	// DiagnosticsByCode maps diagnostic codes to counts.
	DiagnosticsByCode map[string]int

	// TokensTotal is the number of tokens across all files.
	TokensTotal int

	// FragmentsTotal is the number of fragments across all files.
	FragmentsTotal int

	// BytesTotal is the size of all processed sources.
	BytesTotal int64
}

// Errors returns the number of error and fatal diagnostics.
func (s Stats) Errors() int {
	return s.DiagnosticsBySeverity[diag.SeverityError.String()] + s.DiagnosticsBySeverity[diag.SeverityFatal.String()]
}

// Warnings returns the number of warning diagnostics.
func (s Stats) Warnings() int {
	return s.DiagnosticsBySeverity[diag.SeverityWarning.String()]
}

// Result is the overall runner result.
type Result struct {
	// Files are ordered by path.
	Files []FileOutcome

	// Stats contains aggregate statistics for the run.
	Stats Stats

	// Errors contains any non-file-specific errors encountered.
	Errors []error
}

// HasFailures reports whether any error diagnostics were reported or any
// file could not be processed.
func (r *Result) HasFailures() bool {
	if r == nil {
		return false
	}
	return r.Stats.Errors() > 0 || r.Stats.FilesErrored > 0
}

// HasIssues reports whether any diagnostics were found.
func (r *Result) HasIssues() bool {
	if r == nil {
		return false
	}
	return r.Stats.DiagnosticsTotal > 0
}

// Failed applies the exit policy: errors always fail, warnings only when strict.
func (r *Result) Failed(strict bool) bool {
	if r.HasFailures() {
		return true
	}
	return strict && r != nil && r.Stats.Warnings() > 0
}

func newStats() Stats {
	return Stats{
		DiagnosticsBySeverity: make(map[string]int),
		DiagnosticsByCode:     make(map[string]int),
	}
}

// accumulate records outcome in the result.
func (r *Result) accumulate(outcome FileOutcome) {
	r.Files = append(r.Files, outcome)

	if outcome.Error != nil {
		r.Stats.FilesErrored++
		return
	}
	if outcome.Result == nil || outcome.Result.FileResult == nil {
		return
	}

	fr := outcome.Result
	r.Stats.FilesProcessed++
	r.Stats.TokensTotal += fr.Tokens
	r.Stats.FragmentsTotal += fr.Fragments
	if fr.Info != nil {
		r.Stats.BytesTotal += fr.Info.Size
	}

	if fr.HasIssues() {
		r.Stats.FilesWithIssues++
	}
	r.Stats.DiagnosticsTotal += fr.IssueCount()
	for _, d := range fr.Diagnostics {
		r.Stats.DiagnosticsBySeverity[d.Severity.String()]++
		r.Stats.DiagnosticsByCode[d.Code]++
	}
}
