package pretty_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/asmlex/internal/ui/pretty"
	"github.com/yaklabco/asmlex/pkg/config"
	"github.com/yaklabco/asmlex/pkg/diag"
	"github.com/yaklabco/asmlex/pkg/engine"
	"github.com/yaklabco/asmlex/pkg/runner"
)

func outcome(path string, diagnostics ...engine.Diagnostic) runner.FileOutcome {
	return runner.FileOutcome{
		Path: path,
		Result: &engine.PipelineResult{
			Path:       path,
			FileResult: &engine.FileResult{Path: path, Diagnostics: diagnostics},
		},
	}
}

func TestTableFormatter_FormatTable(t *testing.T) {
	t.Parallel()

	d := *sampleDiagnostic()
	warn := engine.Diagnostic{
		FilePath: "lib/str.asm", Code: "ASM009", Name: "unterminated-string",
		Severity: diag.SeverityWarning, Message: "unterminated string literal",
		StartLine: 7, StartColumn: 1,
	}
	result := &runner.Result{Files: []runner.FileOutcome{
		outcome("boot.asm", d),
		outcome("clean.asm"),
		outcome("lib/str.asm", warn),
		{Path: "broken.asm"},
	}}

	formatter := pretty.NewTableFormatter(pretty.NewStyles(false), false, 120, config.NameFormatCode)
	table := formatter.FormatTable(result)
	lines := strings.Split(strings.TrimSuffix(table, "\n"), "\n")

	require.Len(t, lines, 7)
	assert.True(t, strings.HasPrefix(lines[0], " FILE"))
	assert.Contains(t, lines[0], "CODE")
	assert.True(t, strings.HasPrefix(lines[1], "====="))
	assert.Contains(t, lines[2], "boot.asm")
	assert.Contains(t, lines[2], "2:5")
	assert.Contains(t, lines[2], "ASM007")
	assert.True(t, strings.HasPrefix(lines[3], "-----"))
	assert.Contains(t, lines[4], "warning")
	assert.Contains(t, lines[4], "ASM009")
	assert.NotContains(t, table, "clean.asm")
	assert.NotContains(t, table, "broken.asm")
}

func TestTableFormatter_Empty(t *testing.T) {
	t.Parallel()

	formatter := pretty.NewTableFormatter(pretty.NewStyles(false), false, 0, "")
	assert.Empty(t, formatter.FormatTable(nil))
	assert.Empty(t, formatter.FormatTable(&runner.Result{Files: []runner.FileOutcome{outcome("a.asm")}}))
	assert.Empty(t, formatter.FormatFileTable(runner.FileOutcome{Path: "a.asm"}))
}

func TestTableFormatter_FormatFileTable(t *testing.T) {
	t.Parallel()

	formatter := pretty.NewTableFormatter(pretty.NewStyles(false), false, 80, config.NameFormatName)
	table := formatter.FormatFileTable(outcome("boot.asm", *sampleDiagnostic()))

	assert.NotContains(t, table, "FILE")
	assert.Contains(t, table, "invalid-digit")
	assert.Contains(t, table, " 1 errors")
}

func TestTableFormatter_TruncatesToWidth(t *testing.T) {
	t.Parallel()

	d := *sampleDiagnostic()
	d.Message = strings.Repeat("m", 200)
	d.FilePath = strings.Repeat("d/", 40) + "boot.asm"

	formatter := pretty.NewTableFormatter(pretty.NewStyles(false), false, 100, config.NameFormatCode)
	table := formatter.FormatTable(&runner.Result{Files: []runner.FileOutcome{outcome(d.FilePath, d)}})

	assert.Contains(t, table, "...")
	assert.Contains(t, table, "boot.asm")
	assert.NotContains(t, table, strings.Repeat("m", 200))
}

func TestFormatTableSummary(t *testing.T) {
	t.Parallel()

	formatter := pretty.NewTableFormatter(pretty.NewStyles(false), false, 0, "")
	summary := formatter.FormatTableSummary(runner.Stats{
		FilesProcessed:        3,
		TokensTotal:           12,
		DiagnosticsBySeverity: map[string]int{"error": 2, "warning": 1},
	}, "5ms")

	assert.Equal(t, " 3 files lexed | 2 errors | 1 warnings | 12 tokens | 5ms", summary)
}
