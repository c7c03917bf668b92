package pretty

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/yaklabco/asmlex/pkg/config"
	"github.com/yaklabco/asmlex/pkg/diag"
	"github.com/yaklabco/asmlex/pkg/engine"
	"github.com/yaklabco/asmlex/pkg/runner"
)

// Table formatting constants.
const (
	tablePadding    = 2
	minFileWidth    = 20
	minLocWidth     = 8
	minSevWidth     = 7
	minMessageWidth = 30
	minCodeWidth    = 6
	heavySeparator  = "="
	lightSeparator  = "-"
)

// TableRow represents a single row in the diagnostic table.
type TableRow struct {
	File     string
	Location string
	Severity diag.Severity
	Message  string
	Code     string
}

// DiagnosticToTableRow converts a diagnostic to a table row.
func DiagnosticToTableRow(d *engine.Diagnostic, nameFormat config.NameFormat) TableRow {
	return TableRow{
		File:     d.FilePath,
		Location: fmt.Sprintf("%d:%d", d.StartLine, d.StartColumn),
		Severity: d.Severity,
		Message:  d.Message,
		Code:     config.FormatDiagnosticName(nameFormat, d.Code, d.Name),
	}
}

// TableFormatter formats diagnostics as a styled table.
type TableFormatter struct {
	styles       *Styles
	colorEnabled bool
	termWidth    int
	nameFormat   config.NameFormat
}

// NewTableFormatter creates a new table formatter.
func NewTableFormatter(styles *Styles, colorEnabled bool, termWidth int, nameFormat config.NameFormat) *TableFormatter {
	if termWidth <= 0 {
		termWidth = DefaultTerminalWidth
	}
	if nameFormat == "" {
		nameFormat = config.NameFormatCode
	}
	return &TableFormatter{
		styles:       styles,
		colorEnabled: colorEnabled,
		termWidth:    termWidth,
		nameFormat:   nameFormat,
	}
}

// column is one table column; file is only shown in the combined table.
type column struct {
	title string
	width int
	value func(TableRow) string
}

// FormatTable formats runner results as one table grouped by file.
func (t *TableFormatter) FormatTable(result *runner.Result) string {
	if result == nil {
		return ""
	}

	var groups [][]TableRow
	for _, file := range result.Files {
		if rows := t.rowsFor(file); len(rows) > 0 {
			groups = append(groups, rows)
		}
	}
	if len(groups) == 0 {
		return ""
	}

	cols := t.layout(groups, true)

	var builder strings.Builder
	builder.WriteString(t.header(cols) + "\n")
	builder.WriteString(t.separator(cols, heavySeparator) + "\n")
	for i, group := range groups {
		if i > 0 {
			builder.WriteString(t.separator(cols, lightSeparator) + "\n")
		}
		for _, row := range group {
			builder.WriteString(t.row(cols, row) + "\n")
		}
	}
	builder.WriteString(t.separator(cols, heavySeparator) + "\n")
	builder.WriteString(t.legend() + "\n")

	return builder.String()
}

// FormatFileTable formats a single file's diagnostics as a standalone table.
func (t *TableFormatter) FormatFileTable(file runner.FileOutcome) string {
	rows := t.rowsFor(file)
	if len(rows) == 0 {
		return ""
	}

	cols := t.layout([][]TableRow{rows}, false)

	var builder strings.Builder
	builder.WriteString(t.header(cols) + "\n")
	builder.WriteString(t.separator(cols, heavySeparator) + "\n")
	for _, row := range rows {
		builder.WriteString(t.row(cols, row) + "\n")
	}
	builder.WriteString(t.separator(cols, heavySeparator) + "\n")
	builder.WriteString(t.fileSummary(rows) + "\n")

	return builder.String()
}

// FormatTableSummary formats a summary line for table output.
func (t *TableFormatter) FormatTableSummary(stats runner.Stats, duration string) string {
	parts := []string{fmt.Sprintf("%d files lexed", stats.FilesProcessed)}

	if errors := stats.Errors(); errors > 0 {
		parts = append(parts, t.styles.Error.Render(fmt.Sprintf("%d errors", errors)))
	}
	if warnings := stats.Warnings(); warnings > 0 {
		parts = append(parts, t.styles.Warning.Render(fmt.Sprintf("%d warnings", warnings)))
	}
	if notes := stats.DiagnosticsBySeverity[diag.SeverityNote.String()]; notes > 0 {
		parts = append(parts, t.styles.Note.Render(fmt.Sprintf("%d notes", notes)))
	}
	parts = append(parts, fmt.Sprintf("%d tokens", stats.TokensTotal))
	if duration != "" {
		parts = append(parts, t.styles.Dim.Render(duration))
	}

	return " " + strings.Join(parts, " | ")
}

func (t *TableFormatter) rowsFor(file runner.FileOutcome) []TableRow {
	if file.Result == nil || file.Result.FileResult == nil {
		return nil
	}
	rows := make([]TableRow, 0, len(file.Result.Diagnostics))
	for i := range file.Result.Diagnostics {
		rows = append(rows, DiagnosticToTableRow(&file.Result.Diagnostics[i], t.nameFormat))
	}
	return rows
}

// layout sizes the columns to their content, then shrinks the message and
// file columns to fit the terminal.
func (t *TableFormatter) layout(groups [][]TableRow, withFile bool) []*column {
	file := &column{title: "FILE", width: minFileWidth, value: func(r TableRow) string { return r.File }}
	loc := &column{title: "LOC", width: minLocWidth, value: func(r TableRow) string { return r.Location }}
	sev := &column{title: "SEV", width: minSevWidth, value: func(r TableRow) string { return r.Severity.String() }}
	msg := &column{title: "MESSAGE", width: minMessageWidth, value: func(r TableRow) string { return r.Message }}
	code := &column{title: "CODE", width: minCodeWidth, value: func(r TableRow) string { return r.Code }}

	cols := []*column{loc, sev, msg, code}
	if withFile {
		cols = append([]*column{file}, cols...)
	}

	for _, group := range groups {
		for _, row := range group {
			for _, col := range cols {
				col.width = max(col.width, len(col.value(row)))
			}
		}
	}

	if excess := totalWidth(cols) - t.termWidth; excess > 0 {
		msg.width = max(minMessageWidth, msg.width-excess)
	}
	if excess := totalWidth(cols) - t.termWidth; excess > 0 && withFile {
		file.width = max(minFileWidth, file.width-excess)
	}

	return cols
}

func totalWidth(cols []*column) int {
	total := 1
	for _, col := range cols {
		total += col.width + tablePadding
	}
	return total
}

func (t *TableFormatter) header(cols []*column) string {
	cells := make([]string, 0, len(cols))
	for _, col := range cols {
		cells = append(cells, fmt.Sprintf("%-*s", col.width, col.title))
	}
	return t.styles.TableHeader.Render(" " + strings.Join(cells, "  "))
}

func (t *TableFormatter) separator(cols []*column, char string) string {
	return t.styles.TableSeparator.Render(strings.Repeat(char, totalWidth(cols)))
}

func (t *TableFormatter) row(cols []*column, row TableRow) string {
	cells := make([]string, 0, len(cols))
	for _, col := range cols {
		value := col.value(row)
		if col.title == "FILE" {
			value = truncateFilePath(value, col.width)
		} else {
			value = truncateString(value, col.width)
		}
		cells = append(cells, fmt.Sprintf("%-*s", col.width, value))
	}
	return t.rowStyle(row.Severity).Render(" " + strings.Join(cells, "  "))
}

func (t *TableFormatter) rowStyle(severity diag.Severity) lipgloss.Style {
	switch severity {
	case diag.SeverityFatal, diag.SeverityError:
		return t.styles.TableErrorRow
	case diag.SeverityWarning:
		return t.styles.TableWarnRow
	case diag.SeverityNote:
		return t.styles.TableNoteRow
	default:
		return lipgloss.NewStyle()
	}
}

func (t *TableFormatter) fileSummary(rows []TableRow) string {
	counts := make(map[diag.Severity]int)
	for _, row := range rows {
		counts[row.Severity]++
	}

	var parts []string
	if n := counts[diag.SeverityFatal] + counts[diag.SeverityError]; n > 0 {
		parts = append(parts, t.styles.Error.Render(fmt.Sprintf("%d errors", n)))
	}
	if n := counts[diag.SeverityWarning]; n > 0 {
		parts = append(parts, t.styles.Warning.Render(fmt.Sprintf("%d warnings", n)))
	}
	if n := counts[diag.SeverityNote]; n > 0 {
		parts = append(parts, t.styles.Note.Render(fmt.Sprintf("%d notes", n)))
	}
	return " " + strings.Join(parts, " | ")
}

func (t *TableFormatter) legend() string {
	if !t.colorEnabled {
		return t.styles.TableLegend.Render(" Rows are ordered by position within each file")
	}
	return t.styles.TableLegend.Render(fmt.Sprintf(" Legend: %s  %s  %s",
		t.styles.TableErrorRow.Render(" error "),
		t.styles.TableWarnRow.Render(" warning "),
		t.styles.TableNoteRow.Render(" note "),
	))
}

// truncateString truncates a string to maxLen, adding "..." if truncated.
func truncateString(str string, maxLen int) string {
	if len(str) <= maxLen {
		return str
	}
	if maxLen <= 3 {
		return str[:maxLen]
	}
	return str[:maxLen-3] + "..."
}

// truncateFilePath truncates a file path, preserving the end (filename) rather than beginning.
func truncateFilePath(path string, maxLen int) string {
	if len(path) <= maxLen {
		return path
	}
	if maxLen <= 3 {
		return path[len(path)-maxLen:]
	}
	return "..." + path[len(path)-maxLen+3:]
}
