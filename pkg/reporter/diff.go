package reporter

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/pmezard/go-difflib/difflib"

	"github.com/yaklabco/asmlex/internal/ui/pretty"
	"github.com/yaklabco/asmlex/pkg/runner"
)

// diffContextLines is the number of unchanged lines around each hunk.
const diffContextLines = 3

// DiffReporter shows, per file, a unified diff from the physical source to
// the logical source the lexer saw: continuations collapsed and malformed
// sequences replaced. Files where both agree produce no output.
type DiffReporter struct {
	opts   Options
	styles *pretty.Styles
	out    io.Writer
}

// NewDiffReporter creates a new diff reporter.
func NewDiffReporter(opts Options) *DiffReporter {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	return &DiffReporter{
		opts:   opts,
		styles: pretty.NewStyles(colorEnabled),
		out:    opts.Writer,
	}
}

// Report implements Reporter. It returns the number of files that differ.
func (r *DiffReporter) Report(_ context.Context, result *runner.Result) (int, error) {
	if result == nil {
		return 0, nil
	}

	var filesWithDiffs, totalAdditions, totalDeletions int

	for _, file := range result.Files {
		path := r.opts.displayPath(file.Path)

		if file.Error != nil {
			fmt.Fprintf(r.out, "%s: %s\n",
				r.styles.FilePath.Render(path),
				r.styles.Error.Render(fmt.Sprintf("error: %v", file.Error)),
			)
			continue
		}
		if file.Result == nil || file.Result.FileResult == nil || file.Result.Document == nil {
			continue
		}

		doc := file.Result.Document
		physical := string(doc.Bytes())
		logical := string(doc.Logical())
		if physical == logical {
			continue
		}

		text, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
			A:        splitLines(physical),
			B:        splitLines(logical),
			FromFile: "a/" + path,
			ToFile:   "b/" + path,
			Context:  diffContextLines,
		})
		if err != nil {
			return filesWithDiffs, fmt.Errorf("diff %s: %w", path, err)
		}

		filesWithDiffs++
		additions, deletions := r.writeDiff(path, text)
		totalAdditions += additions
		totalDeletions += deletions
	}

	if filesWithDiffs > 0 && r.opts.ShowSummary {
		r.writeSummary(filesWithDiffs, totalAdditions, totalDeletions)
	}

	return filesWithDiffs, nil
}

// splitLines splits text into newline-terminated lines. A final newline
// ends the last line instead of starting an empty one.
func splitLines(text string) []string {
	if text == "" {
		return nil
	}
	return difflib.SplitLines(strings.TrimSuffix(text, "\n"))
}

// writeDiff outputs a single file's diff with formatting and returns its
// added and removed line counts.
func (r *DiffReporter) writeDiff(path, text string) (int, int) {
	header := fmt.Sprintf("diff --git a/%s b/%s", path, path)
	fmt.Fprintln(r.out, r.styles.DiffHeader.Render(header))

	var additions, deletions int
	for _, line := range strings.Split(strings.TrimSuffix(text, "\n"), "\n") {
		switch {
		case strings.HasPrefix(line, "+++"), strings.HasPrefix(line, "---"):
		case strings.HasPrefix(line, "+"):
			additions++
		case strings.HasPrefix(line, "-"):
			deletions++
		}
		r.writeDiffLine(line)
	}

	fmt.Fprintln(r.out)
	return additions, deletions
}

// writeDiffLine formats a single diff line with color.
func (r *DiffReporter) writeDiffLine(line string) {
	var styled string

	switch {
	case strings.HasPrefix(line, "@@"):
		styled = r.styles.DiffHunk.Render(line)
	case strings.HasPrefix(line, "+"):
		styled = r.styles.DiffAdd.Render(line)
	case strings.HasPrefix(line, "-"):
		styled = r.styles.DiffRemove.Render(line)
	default:
		styled = r.styles.DiffContext.Render(line)
	}

	fmt.Fprintln(r.out, styled)
}

// writeSummary writes a summary line at the end.
func (r *DiffReporter) writeSummary(files, additions, deletions int) {
	fileWord := "files"
	if files == 1 {
		fileWord = "file"
	}
	parts := []string{fmt.Sprintf("%d %s with continuations or replacements", files, fileWord)}

	if additions > 0 {
		parts = append(parts, r.styles.DiffAdd.Render(fmt.Sprintf("%d logical(+)", additions)))
	}
	if deletions > 0 {
		parts = append(parts, r.styles.DiffRemove.Render(fmt.Sprintf("%d physical(-)", deletions)))
	}

	fmt.Fprintln(r.out, strings.Join(parts, ", "))
}
