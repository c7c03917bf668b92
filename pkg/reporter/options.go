package reporter

import (
	"io"
	"os"

	"github.com/yaklabco/asmlex/pkg/analysis"
	"github.com/yaklabco/asmlex/pkg/config"
	"github.com/yaklabco/asmlex/pkg/diag"
)

// bufWriterSize is the buffer size for buffered output writers (64 KiB).
const bufWriterSize = 64 * 1024

// Options configures reporter behavior.
type Options struct {
	// Writer is the destination for output (typically os.Stdout).
	Writer io.Writer

	// ErrorWriter is the destination for errors (typically os.Stderr).
	ErrorWriter io.Writer

	// Format specifies the output format.
	Format Format

	// Color controls colorized output.
	// Values: "auto" (default), "always", "never"
	Color string

	// ShowContext includes the source line under each diagnostic.
	ShowContext bool

	// ShowSummary displays aggregate statistics after results.
	ShowSummary bool

	// GroupByFile groups diagnostics by file (text format).
	GroupByFile bool

	// Compact uses minified output where applicable.
	Compact bool

	// PerFile outputs a separate table for each file (table format only).
	PerFile bool

	// IncludeTokens adds the token stream to JSON output.
	IncludeTokens bool

	// NameFormat controls how diagnostic identifiers appear in output.
	NameFormat config.NameFormat

	// SummaryOrder controls the order of tables in summary output.
	SummaryOrder config.SummaryOrder

	// SortBy orders the summary tables; empty means by count.
	SortBy analysis.SortField

	// MinSeverity leaves lower-severity diagnostics out of the summary.
	MinSeverity diag.Severity

	// WorkingDir is the directory to make paths relative to.
	// If empty, paths are kept as-is (typically absolute).
	WorkingDir string

	// ToolVersion is reported in SARIF output.
	ToolVersion string
}

// DefaultOptions returns Options with sensible defaults.
func DefaultOptions() Options {
	return Options{
		Writer:       os.Stdout,
		ErrorWriter:  os.Stderr,
		Format:       FormatText,
		Color:        "auto",
		ShowContext:  true,
		ShowSummary:  true,
		GroupByFile:  true,
		NameFormat:   config.NameFormatName,
		SummaryOrder: config.SummaryOrderDiagnostics,
		SortBy:       analysis.SortByCount,
		ToolVersion:  "dev",
	}
}

// displayPath makes path relative to the working directory when one is set.
func (o Options) displayPath(path string) string {
	return relativeTo(path, o.WorkingDir)
}
