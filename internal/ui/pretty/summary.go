package pretty

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/yaklabco/asmlex/pkg/diag"
	"github.com/yaklabco/asmlex/pkg/runner"
)

const (
	summaryDividerWidth = 40
	wordFile            = "file"
	wordFiles           = "files"
)

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

// FormatSummaryOneLine formats run statistics as a single line.
// Example: "5 issues (3 errors, 2 warnings) in 2 files".
func (s *Styles) FormatSummaryOneLine(stats runner.Stats) string {
	if stats.DiagnosticsTotal == 0 {
		checked := fmt.Sprintf(" (%d %s checked)", stats.FilesProcessed, plural(stats.FilesProcessed, wordFile, wordFiles))
		return s.Success.Render("No issues found") + s.Dim.Render(checked) + "\n"
	}

	var severityParts []string
	if fatals := stats.DiagnosticsBySeverity[diag.SeverityFatal.String()]; fatals > 0 {
		severityParts = append(severityParts, s.Fatal.Render(fmt.Sprintf("%d fatal", fatals)))
	}
	if errors := stats.DiagnosticsBySeverity[diag.SeverityError.String()]; errors > 0 {
		severityParts = append(severityParts, s.Error.Render(fmt.Sprintf("%d %s", errors, plural(errors, "error", "errors"))))
	}
	if warnings := stats.Warnings(); warnings > 0 {
		severityParts = append(severityParts, s.Warning.Render(fmt.Sprintf("%d %s", warnings, plural(warnings, "warning", "warnings"))))
	}
	if notes := stats.DiagnosticsBySeverity[diag.SeverityNote.String()]; notes > 0 {
		severityParts = append(severityParts, s.Note.Render(fmt.Sprintf("%d %s", notes, plural(notes, "note", "notes"))))
	}

	issues := fmt.Sprintf("%d %s", stats.DiagnosticsTotal, plural(stats.DiagnosticsTotal, "issue", "issues"))
	if len(severityParts) > 0 {
		issues += " (" + strings.Join(severityParts, ", ") + ")"
	}

	line := issues + fmt.Sprintf(" in %d %s", stats.FilesWithIssues, plural(stats.FilesWithIssues, wordFile, wordFiles))
	if stats.FilesErrored > 0 {
		line += ", " + s.Failure.Render(fmt.Sprintf("%d unreadable", stats.FilesErrored))
	}

	return line + "\n"
}

// FormatSummary formats run statistics as a summary block.
func (s *Styles) FormatSummary(stats runner.Stats) string {
	var builder strings.Builder

	row := func(label string, value string) {
		builder.WriteString(fmt.Sprintf("  %-19s", label+":") + value + "\n")
	}

	builder.WriteString("\n")
	builder.WriteString(s.SummaryTitle.Render("Summary"))
	builder.WriteString("\n")
	builder.WriteString(strings.Repeat("-", summaryDividerWidth))
	builder.WriteString("\n")

	row("Files lexed", s.SummaryValue.Render(strconv.Itoa(stats.FilesProcessed)))
	if stats.FilesWithIssues > 0 {
		row("Files with issues", s.Failure.Render(strconv.Itoa(stats.FilesWithIssues)))
	}
	if stats.FilesErrored > 0 {
		row("Files unreadable", s.Failure.Render(strconv.Itoa(stats.FilesErrored)))
	}
	row("Fragments", s.SummaryValue.Render(strconv.Itoa(stats.FragmentsTotal)))
	row("Tokens", s.SummaryValue.Render(strconv.Itoa(stats.TokensTotal)))

	builder.WriteString("\n")

	row("Total issues", s.SummaryValue.Render(strconv.Itoa(stats.DiagnosticsTotal)))
	if errors := stats.Errors(); errors > 0 {
		row("  Errors", s.Error.Render(strconv.Itoa(errors)))
	}
	if warnings := stats.Warnings(); warnings > 0 {
		row("  Warnings", s.Warning.Render(strconv.Itoa(warnings)))
	}
	if notes := stats.DiagnosticsBySeverity[diag.SeverityNote.String()]; notes > 0 {
		row("  Notes", s.Note.Render(strconv.Itoa(notes)))
	}

	builder.WriteString("\n")

	switch {
	case stats.Errors() > 0 || stats.FilesErrored > 0:
		builder.WriteString(s.Failure.Render("Lexing failed with errors"))
	case stats.Warnings() > 0:
		builder.WriteString(s.Warning.Render("Lexing completed with warnings"))
	default:
		builder.WriteString(s.Success.Render("Lexing passed"))
	}
	builder.WriteString("\n")

	return builder.String()
}
