// Package engine runs one source file through encoding recovery, fragment
// splitting and lexing, and flattens the outcome for reporters.
package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/yaklabco/asmlex/internal/logging"
	"github.com/yaklabco/asmlex/pkg/config"
	"github.com/yaklabco/asmlex/pkg/diag"
	"github.com/yaklabco/asmlex/pkg/lex"
	"github.com/yaklabco/asmlex/pkg/preproc"
	"github.com/yaklabco/asmlex/pkg/source"
	"github.com/yaklabco/asmlex/pkg/strpool"
)

// Diagnostic is a source diagnostic resolved against a file. Lines and
// columns are 1-based; columns count codepoints.
type Diagnostic struct {
	FilePath string
	Code     string
	Name     string
	Severity diag.Severity
	Message  string

	StartLine   int
	StartColumn int
	EndLine     int
	EndColumn   int

	// StartOffset and EndOffset are byte offsets into the physical source.
	StartOffset int
	EndOffset   int

	// Include is the include handle of the reporting document.
	Include uint32
}

// Location renders "path:line:col".
func (d Diagnostic) Location() string {
	return fmt.Sprintf("%s:%d:%d", d.FilePath, d.StartLine, d.StartColumn)
}

// FileResult is the outcome of lexing one file.
type FileResult struct {
	// Path is the file the content came from.
	Path string

	// Document holds fragments, tokens and raw diagnostics.
	Document *preproc.Document

	// Pool resolves string and symbol lexemes.
	Pool *strpool.Pool

	// Lines indexes the physical source for context rendering.
	Lines *source.Lines

	// Diagnostics are the document's diagnostics in report order.
	Diagnostics []Diagnostic

	// Tokens and Fragments are the sizes of the token and fragment streams.
	Tokens    int
	Fragments int

	// MemoryPeak is the highest arena usage while processing.
	MemoryPeak int64

	// Duration is the wall time spent in ProcessFile.
	Duration time.Duration
}

// HasIssues returns true if any diagnostics were reported.
func (fr *FileResult) HasIssues() bool {
	return len(fr.Diagnostics) > 0
}

// IssueCount returns the total number of diagnostics.
func (fr *FileResult) IssueCount() int {
	return len(fr.Diagnostics)
}

// ErrorCount returns the number of error and fatal diagnostics.
func (fr *FileResult) ErrorCount() int {
	if fr.Document == nil {
		return 0
	}
	return fr.Document.Diagnostics().Errors()
}

// WarningCount returns the number of warning diagnostics.
func (fr *FileResult) WarningCount() int {
	if fr.Document == nil {
		return 0
	}
	return fr.Document.Diagnostics().Warnings()
}

// SourceLine returns the 1-based physical line without its terminator.
func (fr *FileResult) SourceLine(line int) string {
	if fr.Lines == nil {
		return ""
	}
	return string(fr.Lines.Content(line - 1))
}

// Engine lexes in-memory content according to a configuration.
type Engine struct{}

// NewEngine creates a new Engine.
func NewEngine() *Engine {
	return &Engine{}
}

// ProcessFile runs recovery (when enabled), splitting and lexing over content.
// Each call uses a fresh preprocessing context so calls may run in parallel.
func (e *Engine) ProcessFile(
	ctx context.Context,
	path string,
	content []byte,
	cfg *config.Config,
) (*FileResult, error) {
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("processing cancelled: %w", ctx.Err())
	default:
	}

	started := time.Now()

	var limit int64
	if cfg != nil {
		limit = cfg.MemoryLimit
	}
	pp := preproc.New(preproc.WithMemoryLimit(limit))

	h, err := pp.AddDocument(content)
	if err != nil {
		return nil, fmt.Errorf("add document: %w", err)
	}
	doc, err := pp.Document(h)
	if err != nil {
		return nil, err
	}

	if cfg.RecoverEncodingEnabled() {
		if err := doc.RecoverEncoding(pp.Pool()); err != nil {
			return nil, fmt.Errorf("recover encoding: %w", err)
		}
	}
	if err := doc.SplitLines(cfg.PreprocessEnabled()); err != nil {
		return nil, fmt.Errorf("split lines: %w", err)
	}
	if err := lex.LexHandle(pp, h); err != nil {
		return nil, err
	}

	result := &FileResult{
		Path:        path,
		Document:    doc,
		Pool:        pp.Pool(),
		Lines:       source.BuildLines(content),
		Diagnostics: Flatten(path, doc.Diagnostics()),
		Tokens:      len(doc.Tokens()),
		Fragments:   len(doc.Fragments()),
		MemoryPeak:  pp.Arena().Peak(),
		Duration:    time.Since(started),
	}

	logging.FromContext(ctx).Debug("lexed file",
		logging.FieldPath, path,
		logging.FieldTokens, result.Tokens,
		logging.FieldFragments, result.Fragments,
		logging.FieldDiagnostics, result.IssueCount(),
		logging.FieldDuration, result.Duration,
	)

	return result, nil
}

// Flatten resolves a diagnostic list against path.
func Flatten(path string, list *diag.List) []Diagnostic {
	if list == nil || list.Len() == 0 {
		return nil
	}

	out := make([]Diagnostic, 0, list.Len())
	for _, d := range list.Items() {
		fd := Diagnostic{
			FilePath:    path,
			Severity:    d.Severity,
			Message:     d.Message(),
			StartLine:   d.Start.Line + 1,
			StartColumn: d.Start.Character + 1,
			EndLine:     d.End.Line + 1,
			EndColumn:   d.End.Character + 1,
			StartOffset: d.Start.Byte,
			EndOffset:   d.End.Byte,
			Include:     d.Include,
		}
		if d.Info != nil {
			fd.Code = d.Info.Code()
			fd.Name = d.Info.Name
		}
		out = append(out, fd)
	}
	return out
}
