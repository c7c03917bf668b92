package pretty

import (
	"fmt"
	"strings"

	"github.com/yaklabco/asmlex/pkg/config"
	"github.com/yaklabco/asmlex/pkg/diag"
	"github.com/yaklabco/asmlex/pkg/engine"
)

// FormatDiagnostic formats a single diagnostic for terminal output, naming it
// by its kebab-case name.
func (s *Styles) FormatDiagnostic(d *engine.Diagnostic, showContext bool, sourceLine string) string {
	return s.FormatDiagnosticWithFormat(d, showContext, sourceLine, config.NameFormatName)
}

// FormatDiagnosticWithFormat formats a diagnostic with a configurable identifier format.
func (s *Styles) FormatDiagnosticWithFormat(
	d *engine.Diagnostic,
	showContext bool,
	sourceLine string,
	nameFormat config.NameFormat,
) string {
	var builder strings.Builder

	location := fmt.Sprintf("%s:%d:%d", s.FilePath.Render(d.FilePath), d.StartLine, d.StartColumn)
	identifier := config.FormatDiagnosticName(nameFormat, d.Code, d.Name)

	// Main line: location  severity  message  (identifier)
	fmt.Fprintf(&builder, "  %s  %s  %s  %s\n",
		location,
		s.FormatSeverity(d.Severity),
		s.Message.Render(d.Message),
		s.Code.Render("("+identifier+")"),
	)

	if showContext && sourceLine != "" {
		width := 1
		if d.EndLine == d.StartLine && d.EndColumn > d.StartColumn {
			width = d.EndColumn - d.StartColumn
		}
		builder.WriteString(s.FormatSourceContext(sourceLine, d.StartColumn, width))
	}

	return builder.String()
}

// FormatSeverity returns a styled severity string.
func (s *Styles) FormatSeverity(sev diag.Severity) string {
	switch sev {
	case diag.SeverityFatal:
		return s.Fatal.Render(sev.String())
	case diag.SeverityError:
		return s.Error.Render(sev.String())
	case diag.SeverityWarning:
		return s.Warning.Render(sev.String())
	case diag.SeverityNote:
		return s.Note.Render(sev.String())
	default:
		return sev.String()
	}
}

// FormatSourceContext formats the source line with a marker under width
// codepoints starting at the 1-based column. Tabs in the line are repeated
// in the padding so the marker lines up.
func (s *Styles) FormatSourceContext(line string, column, width int) string {
	var builder strings.Builder

	const indent = "        "

	line = strings.TrimRight(line, "\r\n")
	builder.WriteString(indent + s.SourceLine.Render(line) + "\n")

	if column <= 0 {
		return builder.String()
	}

	var padding strings.Builder
	runes := []rune(line)
	for i := 0; i < column-1; i++ {
		if i < len(runes) && runes[i] == '\t' {
			padding.WriteByte('\t')
		} else {
			padding.WriteByte(' ')
		}
	}

	marker := "^"
	if width > 1 {
		marker += strings.Repeat("~", width-1)
	}
	builder.WriteString(indent + padding.String() + s.Caret.Render(marker) + "\n")

	return builder.String()
}

// FormatFileHeader formats a file header for grouped output.
func (s *Styles) FormatFileHeader(path string, issueCount int) string {
	header := s.FilePath.Render(path)
	switch {
	case issueCount == 1:
		header += s.Dim.Render(" (1 issue)")
	case issueCount > 1:
		header += s.Dim.Render(fmt.Sprintf(" (%d issues)", issueCount))
	}
	return header
}
