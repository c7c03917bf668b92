package analysis

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/asmlex/pkg/diag"
	"github.com/yaklabco/asmlex/pkg/engine"
	"github.com/yaklabco/asmlex/pkg/runner"
)

func fileOutcome(path string, tokens int, diagnostics ...engine.Diagnostic) runner.FileOutcome {
	return runner.FileOutcome{
		Path: path,
		Result: &engine.PipelineResult{
			Path: path,
			FileResult: &engine.FileResult{
				Path:        path,
				Tokens:      tokens,
				Fragments:   1,
				Diagnostics: diagnostics,
			},
		},
	}
}

func leadingZeros() engine.Diagnostic {
	return engine.Diagnostic{
		Code: "ASM003", Name: "leading-zeros",
		Severity: diag.SeverityError, Message: "leading zeros are not permitted",
		StartLine: 1, StartColumn: 4, EndLine: 1, EndColumn: 6, StartOffset: 3, EndOffset: 5,
	}
}

func unterminated() engine.Diagnostic {
	return engine.Diagnostic{
		Code: "ASM009", Name: "unterminated-string",
		Severity: diag.SeverityWarning, Message: "unterminated string literal",
		StartLine: 2, StartColumn: 1, EndLine: 2, EndColumn: 4,
	}
}

func sampleResult() *runner.Result {
	return &runner.Result{Files: []runner.FileOutcome{
		fileOutcome("/src/a.asm", 10, leadingZeros(), leadingZeros(), unterminated()),
		fileOutcome("/src/b.asm", 4, unterminated()),
		fileOutcome("/src/c.asm", 7),
		{Path: "/src/d.asm", Error: errors.New("permission denied")},
	}}
}

func TestAnalyze_EmptyResult(t *testing.T) {
	t.Parallel()

	report := Analyze(&runner.Result{}, DefaultOptions())

	require.NotNil(t, report)
	assert.Equal(t, ReportVersion, report.Version)
	assert.Equal(t, 0, report.Totals.Issues)
	assert.Empty(t, report.Diagnostics)
	assert.Empty(t, report.ByFile)
	assert.Empty(t, report.ByCode)

	assert.NotNil(t, Analyze(nil, DefaultOptions()))
}

func TestAnalyze_CountsTotals(t *testing.T) {
	t.Parallel()

	report := Analyze(sampleResult(), DefaultOptions())

	assert.Equal(t, Totals{
		Files:           4,
		FilesWithIssues: 2,
		FilesErrored:    1,
		Issues:          4,
		Errors:          2,
		Warnings:        2,
		Tokens:          21,
		Fragments:       3,
	}, report.Totals)
	assert.Equal(t, []FileError{{Path: "/src/d.asm", Message: "permission denied"}}, report.Errors)
}

func TestAnalyze_FatalCountsAsError(t *testing.T) {
	t.Parallel()

	fatal := leadingZeros()
	fatal.Severity = diag.SeverityFatal
	note := unterminated()
	note.Severity = diag.SeverityNote

	report := Analyze(&runner.Result{Files: []runner.FileOutcome{
		fileOutcome("a.asm", 1, fatal, note),
	}}, DefaultOptions())

	assert.Equal(t, 1, report.Totals.Errors)
	assert.Equal(t, 1, report.Totals.Notes)
	assert.Equal(t, "fatal", report.Diagnostics[0].Severity)
}

func TestAnalyze_GroupsByCode(t *testing.T) {
	t.Parallel()

	report := Analyze(sampleResult(), DefaultOptions())

	require.Len(t, report.ByCode, 2)

	// Tied counts fall back to code order.
	assert.Equal(t, "ASM003", report.ByCode[0].Code)
	assert.Equal(t, "leading-zeros", report.ByCode[0].Name)
	assert.Equal(t, 2, report.ByCode[0].Issues)
	assert.Equal(t, 2, report.ByCode[0].Errors)
	assert.Equal(t, []string{"/src/a.asm"}, report.ByCode[0].Files)

	assert.Equal(t, "ASM009", report.ByCode[1].Code)
	assert.Equal(t, 2, report.ByCode[1].Warnings)
	assert.Equal(t, []string{"/src/a.asm", "/src/b.asm"}, report.ByCode[1].Files)
}

func TestAnalyze_GroupsByFile(t *testing.T) {
	t.Parallel()

	report := Analyze(sampleResult(), DefaultOptions())

	require.Len(t, report.ByFile, 2, "files without issues are omitted")
	assert.Equal(t, FileAnalysis{
		Path: "/src/a.asm", Issues: 3, Errors: 2, Warnings: 1, Tokens: 10,
		Codes: []string{"ASM003", "ASM009"},
	}, report.ByFile[0])
	assert.Equal(t, "/src/b.asm", report.ByFile[1].Path)
}

func TestAnalyze_Sorting(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		opts  Options
		files []string
	}{
		{"count descending", Options{IncludeByFile: true, SortBy: SortByCount, SortDesc: true}, []string{"x.asm", "y.asm", "z.asm"}},
		{"count ascending", Options{IncludeByFile: true, SortBy: SortByCount}, []string{"z.asm", "y.asm", "x.asm"}},
		{"alpha", Options{IncludeByFile: true, SortBy: SortByAlpha, SortDesc: true}, []string{"x.asm", "y.asm", "z.asm"}},
		{"severity", Options{IncludeByFile: true, SortBy: SortBySeverity}, []string{"z.asm", "x.asm", "y.asm"}},
	}

	result := &runner.Result{Files: []runner.FileOutcome{
		fileOutcome("x.asm", 1, unterminated(), unterminated(), unterminated()),
		fileOutcome("y.asm", 1, unterminated(), unterminated()),
		fileOutcome("z.asm", 1, leadingZeros()),
	}}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			report := Analyze(result, testCase.opts)
			paths := make([]string, 0, len(report.ByFile))
			for _, fa := range report.ByFile {
				paths = append(paths, fa.Path)
			}
			assert.Equal(t, testCase.files, paths)
			assert.Empty(t, report.ByCode)
			assert.Empty(t, report.Diagnostics)
		})
	}
}

func TestAnalyze_RelativePaths(t *testing.T) {
	t.Parallel()

	opts := DefaultOptions()
	opts.WorkingDir = "/src"

	report := Analyze(sampleResult(), opts)

	require.NotEmpty(t, report.Diagnostics)
	assert.Equal(t, "a.asm", report.Diagnostics[0].FilePath)
	assert.Equal(t, 3, report.Diagnostics[0].StartOffset)
	assert.Equal(t, "d.asm", report.Errors[0].Path)
	assert.Equal(t, []string{"a.asm", "b.asm"}, report.ByCode[1].Files)
}

func TestMakeRelativePath(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "/abs/x.asm", makeRelativePath("/abs/x.asm", ""))
	assert.Equal(t, filepath.Join("lib", "x.asm"), makeRelativePath("/abs/lib/x.asm", "/abs"))
}

func TestAnalyze_MinSeverity(t *testing.T) {
	t.Parallel()

	opts := DefaultOptions()
	opts.MinSeverity = diag.SeverityError
	report := Analyze(sampleResult(), opts)

	assert.Equal(t, 2, report.Totals.Issues)
	assert.Equal(t, 2, report.Totals.Errors)
	assert.Equal(t, 0, report.Totals.Warnings)
	assert.Equal(t, 1, report.Totals.FilesWithIssues)
	require.Len(t, report.ByCode, 1)
	assert.Equal(t, "ASM003", report.ByCode[0].Code)
	require.Len(t, report.ByFile, 1)
	assert.Equal(t, "/src/a.asm", report.ByFile[0].Path)
	assert.Len(t, report.Diagnostics, 2)
}
