package analysis

import (
	"cmp"
	"path/filepath"
	"slices"
	"time"

	"github.com/yaklabco/asmlex/pkg/diag"
	"github.com/yaklabco/asmlex/pkg/engine"
	"github.com/yaklabco/asmlex/pkg/runner"
)

// ReportVersion is the current report format version.
const ReportVersion = "1.0.0"

// makeRelativePath converts an absolute path to a relative path from workDir.
// If workDir is empty or conversion fails, returns the original path.
func makeRelativePath(absPath, workDir string) string {
	if workDir == "" {
		return absPath
	}
	relPath, err := filepath.Rel(workDir, absPath)
	if err != nil {
		return absPath
	}
	return relPath
}

func (t *Totals) tally(sev diag.Severity) {
	t.Issues++
	t.Errors, t.Warnings, t.Notes = bump(sev, t.Errors, t.Warnings, t.Notes)
}

func (fa *FileAnalysis) tally(sev diag.Severity) {
	fa.Issues++
	fa.Errors, fa.Warnings, fa.Notes = bump(sev, fa.Errors, fa.Warnings, fa.Notes)
}

func (ca *CodeAnalysis) tally(sev diag.Severity) {
	ca.Issues++
	ca.Errors, ca.Warnings, ca.Notes = bump(sev, ca.Errors, ca.Warnings, ca.Notes)
}

// bump increments the bucket for sev. Fatal diagnostics count as errors.
func bump(sev diag.Severity, errors, warnings, notes int) (int, int, int) {
	switch sev {
	case diag.SeverityFatal, diag.SeverityError:
		errors++
	case diag.SeverityWarning:
		warnings++
	case diag.SeverityNote:
		notes++
	}
	return errors, warnings, notes
}

// analysisContext holds temporary state during analysis.
type analysisContext struct {
	codeMap   map[string]*CodeAnalysis
	fileMap   map[string]*FileAnalysis
	codeFiles map[string]map[string]bool
	fileCodes map[string]map[string]bool
}

func newAnalysisContext() *analysisContext {
	return &analysisContext{
		codeMap:   make(map[string]*CodeAnalysis),
		fileMap:   make(map[string]*FileAnalysis),
		codeFiles: make(map[string]map[string]bool),
		fileCodes: make(map[string]map[string]bool),
	}
}

func (ctx *analysisContext) file(path string) *FileAnalysis {
	if _, ok := ctx.fileMap[path]; !ok {
		ctx.fileMap[path] = &FileAnalysis{Path: path}
		ctx.fileCodes[path] = make(map[string]bool)
	}
	return ctx.fileMap[path]
}

func (ctx *analysisContext) code(code, name string) *CodeAnalysis {
	if _, ok := ctx.codeMap[code]; !ok {
		ctx.codeMap[code] = &CodeAnalysis{Code: code, Name: name}
		ctx.codeFiles[code] = make(map[string]bool)
	}
	return ctx.codeMap[code]
}

func newDiagnosticEntry(path string, d *engine.Diagnostic) DiagnosticEntry {
	return DiagnosticEntry{
		FilePath:    path,
		Code:        d.Code,
		Name:        d.Name,
		Severity:    d.Severity.String(),
		Message:     d.Message,
		StartLine:   d.StartLine,
		StartColumn: d.StartColumn,
		EndLine:     d.EndLine,
		EndColumn:   d.EndColumn,
		StartOffset: d.StartOffset,
		EndOffset:   d.EndOffset,
	}
}

func (ctx *analysisContext) buildByCode(opts Options) []CodeAnalysis {
	result := make([]CodeAnalysis, 0, len(ctx.codeMap))
	for code, ca := range ctx.codeMap {
		for f := range ctx.codeFiles[code] {
			ca.Files = append(ca.Files, f)
		}
		slices.Sort(ca.Files)
		result = append(result, *ca)
	}
	sortViews(result, opts, func(ca CodeAnalysis) (string, int, int, int) {
		return ca.Code, ca.Issues, ca.Errors, ca.Warnings
	})
	return result
}

func (ctx *analysisContext) buildByFile(opts Options) []FileAnalysis {
	var result []FileAnalysis
	for path, fa := range ctx.fileMap {
		if fa.Issues == 0 {
			continue
		}
		for c := range ctx.fileCodes[path] {
			fa.Codes = append(fa.Codes, c)
		}
		slices.Sort(fa.Codes)
		result = append(result, *fa)
	}
	sortViews(result, opts, func(fa FileAnalysis) (string, int, int, int) {
		return fa.Path, fa.Issues, fa.Errors, fa.Warnings
	})
	return result
}

// Analyze transforms a runner.Result into a Report.
// It performs a single pass through diagnostics to compute all views.
func Analyze(result *runner.Result, opts Options) *Report {
	report := &Report{
		Version:   ReportVersion,
		Timestamp: time.Now(),
	}

	if result == nil {
		return report
	}

	ctx := newAnalysisContext()

	for _, file := range result.Files {
		report.Totals.Files++
		displayPath := makeRelativePath(file.Path, opts.WorkingDir)

		if file.Error != nil {
			report.Totals.FilesErrored++
			report.Errors = append(report.Errors, FileError{Path: displayPath, Message: file.Error.Error()})
			continue
		}
		if file.Result == nil || file.Result.FileResult == nil {
			continue
		}

		fa := ctx.file(displayPath)
		fa.Tokens = file.Result.Tokens
		report.Totals.Tokens += file.Result.Tokens
		report.Totals.Fragments += file.Result.Fragments
		counted := false
		for i := range file.Result.Diagnostics {
			d := &file.Result.Diagnostics[i]
			if d.Severity < opts.MinSeverity {
				continue
			}
			if !counted {
				report.Totals.FilesWithIssues++
				counted = true
			}

			report.Totals.tally(d.Severity)
			fa.tally(d.Severity)
			ctx.code(d.Code, d.Name).tally(d.Severity)

			ctx.fileCodes[displayPath][d.Code] = true
			ctx.codeFiles[d.Code][displayPath] = true

			if opts.IncludeDiagnostics {
				report.Diagnostics = append(report.Diagnostics, newDiagnosticEntry(displayPath, d))
			}
		}
	}

	if opts.IncludeByCode {
		report.ByCode = ctx.buildByCode(opts)
	}
	if opts.IncludeByFile {
		report.ByFile = ctx.buildByFile(opts)
	}

	return report
}

// sortViews orders a view slice. key returns the alphabetical key, the
// issue count, and the error and warning counts of an element.
func sortViews[T any](items []T, opts Options, key func(T) (string, int, int, int)) {
	slices.SortFunc(items, func(left, right T) int {
		lName, lIssues, lErrors, lWarnings := key(left)
		rName, rIssues, rErrors, rWarnings := key(right)

		var result int
		switch opts.SortBy {
		case SortByAlpha:
			// Alphabetical sorting is always ascending.
			return cmp.Compare(lName, rName)
		case SortBySeverity:
			// Errors first, then warnings, then total.
			result = cmp.Or(
				cmp.Compare(rErrors, lErrors),
				cmp.Compare(rWarnings, lWarnings),
				cmp.Compare(rIssues, lIssues),
			)
		default: // SortByCount
			result = cmp.Compare(lIssues, rIssues)
			if opts.SortDesc {
				result = -result
			}
		}
		return cmp.Or(result, cmp.Compare(lName, rName))
	})
}
