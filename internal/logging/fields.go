// Package logging wraps charmbracelet/log with the defaults the asmlex
// commands share.
package logging

// Structured field names.
const (
	FieldError      = "error"
	FieldPath       = "path"
	FieldPaths      = "paths"
	FieldFiles      = "files"
	FieldOutput     = "output"
	FieldWorkingDir = "working_dir"
	FieldConfig     = "config"

	// Lexing.
	FieldPreprocess      = "preprocess"
	FieldRecoverEncoding = "recover_encoding"
	FieldMemoryLimit     = "memory_limit"
	FieldJobs            = "jobs"
	FieldTokens          = "tokens"
	FieldFragments       = "fragments"
	FieldDiagnostics     = "diagnostics"
	FieldWarnings        = "warnings"
	FieldErrors          = "errors"
	FieldDuration        = "duration"

	// Diagnostic catalog.
	FieldCode     = "code"
	FieldSeverity = "severity"
	FieldMessage  = "message"

	// Run statistics.
	FieldFilesDiscovered = "files_discovered"
	FieldFilesProcessed  = "files_processed"
	FieldFilesWithIssues = "files_with_issues"

	// Watching.
	FieldEvent = "event"

	// Build information.
	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"
)
