package reporter

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/yaklabco/asmlex/internal/ui/pretty"
	"github.com/yaklabco/asmlex/pkg/analysis"
	"github.com/yaklabco/asmlex/pkg/config"
)

// Table layout constants for summary output.
// Both tables use the same width for visual consistency.
const (
	tableWidth        = 90 // Width of table separators (same for both tables).
	nameColWidth      = 44 // Width of the diagnostic column.
	fileColWidth      = 52 // Width of the file path column.
	numColWidth       = 7  // Width of numeric columns.
	warnColWidth      = 9  // Width of warnings column.
	maxNameLength     = 42 // Maximum characters for a diagnostic before truncation.
	maxFilePathLength = 50 // Maximum characters for file path before truncation.
)

// padRight pads a string to the given width with spaces on the right.
// This must be called BEFORE applying ANSI styles.
func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}

// padLeft pads a string to the given width with spaces on the left.
// This must be called BEFORE applying ANSI styles.
func padLeft(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return strings.Repeat(" ", width-len(s)) + s
}

// SummaryRenderer formats results as aggregated summary tables.
type SummaryRenderer struct {
	opts   Options
	styles *pretty.Styles
	out    io.Writer
}

// NewSummaryRenderer creates a new summary renderer.
func NewSummaryRenderer(opts Options) *SummaryRenderer {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	return &SummaryRenderer{
		opts:   opts,
		styles: pretty.NewStyles(colorEnabled),
		out:    opts.Writer,
	}
}

// Render implements Renderer.
func (r *SummaryRenderer) Render(_ context.Context, report *analysis.Report) error {
	for _, fileErr := range report.Errors {
		fmt.Fprintf(r.out, "%s: %s\n",
			r.styles.FilePath.Render(fileErr.Path),
			r.styles.Error.Render("error: "+fileErr.Message),
		)
	}

	if report.Totals.Issues == 0 {
		fmt.Fprintln(r.out, r.styles.Success.Render("No issues found"))
		return nil
	}

	if r.opts.SummaryOrder == config.SummaryOrderFiles {
		r.renderFileTable(report.ByFile)
		fmt.Fprintln(r.out)
		r.renderCodeTable(report.ByCode)
	} else {
		r.renderCodeTable(report.ByCode)
		fmt.Fprintln(r.out)
		r.renderFileTable(report.ByFile)
	}

	fmt.Fprintln(r.out)
	r.renderTotals(report.Totals)

	return nil
}

func (r *SummaryRenderer) renderCodeTable(codes []analysis.CodeAnalysis) {
	if len(codes) == 0 {
		return
	}

	fmt.Fprintln(r.out, r.styles.Bold.Render("Diagnostics Summary"))
	fmt.Fprintln(r.out, r.styles.TableSeparator.Render(strings.Repeat("─", tableWidth)))

	fmt.Fprintf(r.out, "%s %s %s %s\n",
		r.styles.TableHeader.Render(padRight("Diagnostic", nameColWidth)),
		r.styles.TableHeader.Render(padLeft("Count", numColWidth)),
		r.styles.TableHeader.Render(padLeft("Errors", numColWidth)),
		r.styles.TableHeader.Render(padLeft("Warnings", warnColWidth)),
	)
	fmt.Fprintln(r.out, r.styles.TableSeparator.Render(strings.Repeat("─", tableWidth)))

	for _, code := range codes {
		name := config.FormatDiagnosticName(r.opts.NameFormat, code.Code, code.Name)
		if len(name) > maxNameLength {
			name = name[:maxNameLength] + "…"
		}

		padded := padRight(name, nameColWidth)
		var styled string
		switch {
		case code.Errors > 0:
			styled = r.styles.TableErrorRow.Render(padded)
		case code.Warnings > 0:
			styled = r.styles.TableWarnRow.Render(padded)
		default:
			styled = padded
		}

		fmt.Fprintf(r.out, "%s %s %s %s\n",
			styled,
			padLeft(strconv.Itoa(code.Issues), numColWidth),
			padLeft(strconv.Itoa(code.Errors), numColWidth),
			padLeft(strconv.Itoa(code.Warnings), warnColWidth),
		)
	}
}

func (r *SummaryRenderer) renderFileTable(files []analysis.FileAnalysis) {
	if len(files) == 0 {
		return
	}

	fmt.Fprintln(r.out, r.styles.Bold.Render("Files Summary"))
	fmt.Fprintln(r.out, r.styles.TableSeparator.Render(strings.Repeat("─", tableWidth)))

	fmt.Fprintf(r.out, "%s %s %s %s %s\n",
		r.styles.TableHeader.Render(padRight("File", fileColWidth)),
		r.styles.TableHeader.Render(padLeft("Count", numColWidth)),
		r.styles.TableHeader.Render(padLeft("Errors", numColWidth)),
		r.styles.TableHeader.Render(padLeft("Warnings", warnColWidth)),
		r.styles.TableHeader.Render(padLeft("Tokens", numColWidth)),
	)
	fmt.Fprintln(r.out, r.styles.TableSeparator.Render(strings.Repeat("─", tableWidth)))

	for _, file := range files {
		path := file.Path
		if len(path) > maxFilePathLength {
			path = "…" + path[len(path)-(maxFilePathLength-1):]
		}

		padded := padRight(path, fileColWidth)
		var styled string
		switch {
		case file.Errors > 0:
			styled = r.styles.TableErrorRow.Render(padded)
		case file.Warnings > 0:
			styled = r.styles.TableWarnRow.Render(padded)
		default:
			styled = padded
		}

		fmt.Fprintf(r.out, "%s %s %s %s %s\n",
			styled,
			padLeft(strconv.Itoa(file.Issues), numColWidth),
			padLeft(strconv.Itoa(file.Errors), numColWidth),
			padLeft(strconv.Itoa(file.Warnings), warnColWidth),
			padLeft(strconv.Itoa(file.Tokens), numColWidth),
		)
	}
}

func (r *SummaryRenderer) renderTotals(totals analysis.Totals) {
	issueWord := "issues"
	if totals.Issues == 1 {
		issueWord = "issue"
	}
	issues := fmt.Sprintf("%d %s", totals.Issues, issueWord)

	var severityParts []string
	if totals.Errors > 0 {
		severityParts = append(severityParts, r.styles.Error.Render(fmt.Sprintf("%d errors", totals.Errors)))
	}
	if totals.Warnings > 0 {
		severityParts = append(severityParts, r.styles.Warning.Render(fmt.Sprintf("%d warnings", totals.Warnings)))
	}
	if totals.Notes > 0 {
		severityParts = append(severityParts, r.styles.Note.Render(fmt.Sprintf("%d notes", totals.Notes)))
	}
	if len(severityParts) > 0 {
		issues += " (" + strings.Join(severityParts, ", ") + ")"
	}

	fileWord := "files"
	if totals.FilesWithIssues == 1 {
		fileWord = "file"
	}

	fmt.Fprintln(r.out, r.styles.Bold.Render("Total: ")+issues+fmt.Sprintf(" in %d %s", totals.FilesWithIssues, fileWord))
}
