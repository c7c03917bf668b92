package reporter

import (
	"bufio"
	"context"
	"fmt"
	"strconv"

	"github.com/yaklabco/asmlex/internal/ui/pretty"
	"github.com/yaklabco/asmlex/pkg/engine"
	"github.com/yaklabco/asmlex/pkg/runner"
	"github.com/yaklabco/asmlex/pkg/token"
)

// kindColWidth fits the longest token kind name.
const kindColWidth = 14

// TokensReporter dumps the token stream of every file, one token per line:
// range, kind, quoted source text and resolved lexeme.
type TokensReporter struct {
	opts   Options
	styles *pretty.Styles
	bw     *bufio.Writer
}

// NewTokensReporter creates a new token dump reporter.
func NewTokensReporter(opts Options) *TokensReporter {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	return &TokensReporter{
		opts:   opts,
		styles: pretty.NewStyles(colorEnabled),
		bw:     bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter. Diagnostics are printed after each file's
// tokens so the dump stays self-contained.
func (r *TokensReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result == nil {
		return 0, nil
	}

	var total int
	for _, file := range result.Files {
		path := r.opts.displayPath(file.Path)

		if file.Error != nil {
			fmt.Fprintf(r.bw, "%s: %s\n",
				r.styles.FilePath.Render(path),
				r.styles.Error.Render(fmt.Sprintf("error: %v", file.Error)),
			)
			continue
		}
		if file.Result == nil || file.Result.FileResult == nil || file.Result.Document == nil {
			continue
		}

		fmt.Fprintln(r.bw, r.styles.FilePath.Render(path))
		r.writeTokens(file.Result.FileResult)

		for i := range file.Result.Diagnostics {
			d := file.Result.Diagnostics[i]
			d.FilePath = path
			fmt.Fprint(r.bw, r.styles.FormatDiagnosticWithFormat(&d, false, "", r.opts.NameFormat))
		}
		total += len(file.Result.Diagnostics)
		fmt.Fprintln(r.bw)
	}

	if r.opts.ShowSummary {
		fmt.Fprint(r.bw, r.styles.FormatSummaryOneLine(result.Stats))
	}

	return total, nil
}

func (r *TokensReporter) writeTokens(fr *engine.FileResult) {
	doc := fr.Document
	buf := doc.Bytes()
	for _, tk := range doc.Tokens() {
		span := fmt.Sprintf("%s-%s", tk.Start.Position, tk.End.Position)
		text := strconv.Quote(string(buf[tk.Start.Byte:tk.End.Byte]))

		line := fmt.Sprintf("  %-13s %s %s",
			span,
			r.styles.TokenKind.Render(padRight(tk.Kind.String(), kindColWidth)),
			r.styles.TokenText.Render(text),
		)
		if lexeme := tk.Text(fr.Pool); lexeme != "" && !sameAsSource(tk, lexeme, text) {
			line += " " + r.styles.TokenLexeme.Render("= "+lexeme)
		}
		fmt.Fprintln(r.bw, line)
	}
}

// sameAsSource hides lexemes that would only repeat the quoted source text.
func sameAsSource(tk token.Token, lexeme, quoted string) bool {
	switch tk.Kind {
	case token.String:
		return lexeme == quoted
	default:
		return strconv.Quote(lexeme) == quoted
	}
}
