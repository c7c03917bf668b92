package reporter

import (
	"bufio"
	"context"
	"fmt"
	"strings"

	"github.com/yaklabco/asmlex/internal/ui/pretty"
	"github.com/yaklabco/asmlex/pkg/engine"
	"github.com/yaklabco/asmlex/pkg/runner"
)

// TableReporter formats results as a styled table with color-coded rows.
type TableReporter struct {
	opts      Options
	styles    *pretty.Styles
	formatter *pretty.TableFormatter
	bw        *bufio.Writer
}

// NewTableReporter creates a new table reporter.
func NewTableReporter(opts Options) *TableReporter {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	styles := pretty.NewStyles(colorEnabled)

	return &TableReporter{
		opts:      opts,
		styles:    styles,
		formatter: pretty.NewTableFormatter(styles, colorEnabled, pretty.TerminalWidth(opts.Writer), opts.NameFormat),
		bw:        bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *TableReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result == nil || len(result.Files) == 0 {
		if r.opts.ShowSummary {
			fmt.Fprintln(r.bw, r.styles.Success.Render("No files to check."))
		}
		return 0, nil
	}

	r.reportErrors(result)

	totalIssues := result.Stats.DiagnosticsTotal
	if totalIssues == 0 {
		if r.opts.ShowSummary {
			fmt.Fprintln(r.bw)
			fmt.Fprintln(r.bw, r.styles.Success.Render("All files passed!"))
			fmt.Fprintln(r.bw, r.styles.Dim.Render(
				fmt.Sprintf("%d files lexed", result.Stats.FilesProcessed),
			))
		}
		return 0, nil
	}

	display := r.relativize(result)
	if r.opts.PerFile {
		r.reportPerFile(display)
	} else {
		fmt.Fprint(r.bw, r.formatter.FormatTable(display))
		if r.opts.ShowSummary {
			fmt.Fprintln(r.bw, r.formatter.FormatTableSummary(result.Stats, ""))
		}
	}

	return totalIssues, nil
}

func (r *TableReporter) reportErrors(result *runner.Result) {
	for _, file := range result.Files {
		if file.Error != nil {
			fmt.Fprintf(r.bw, "%s: %s\n",
				r.styles.FilePath.Render(r.opts.displayPath(file.Path)),
				r.styles.Error.Render(fmt.Sprintf("error: %v", file.Error)),
			)
		}
	}
}

func (r *TableReporter) reportPerFile(result *runner.Result) {
	for _, file := range result.Files {
		table := r.formatter.FormatFileTable(file)
		if table == "" {
			continue
		}
		fmt.Fprintln(r.bw)
		fmt.Fprintln(r.bw, r.styles.Bold.Render(file.Path))
		fmt.Fprint(r.bw, table)
	}

	if r.opts.ShowSummary {
		fmt.Fprintln(r.bw)
		fmt.Fprintln(r.bw, r.styles.TableSeparator.Render(strings.Repeat("═", pretty.DefaultTerminalWidth)))
		fmt.Fprintln(r.bw, r.styles.Bold.Render("Overall Summary"))
		fmt.Fprintln(r.bw, r.formatter.FormatTableSummary(result.Stats, ""))
	}
}

// relativize returns a shallow copy of result whose paths are shown
// relative to the working directory.
func (r *TableReporter) relativize(result *runner.Result) *runner.Result {
	if r.opts.WorkingDir == "" {
		return result
	}

	out := &runner.Result{Stats: result.Stats, Files: make([]runner.FileOutcome, 0, len(result.Files))}
	for _, file := range result.Files {
		file.Path = r.opts.displayPath(file.Path)
		if file.Result != nil && file.Result.FileResult != nil {
			pr := *file.Result
			fr := *pr.FileResult
			fr.Diagnostics = make([]engine.Diagnostic, len(pr.Diagnostics))
			for i, d := range pr.Diagnostics {
				d.FilePath = file.Path
				fr.Diagnostics[i] = d
			}
			pr.FileResult = &fr
			file.Result = &pr
		}
		out.Files = append(out.Files, file)
	}
	return out
}
