package reporter

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"

	"github.com/yaklabco/asmlex/pkg/engine"
	"github.com/yaklabco/asmlex/pkg/runner"
	"github.com/yaklabco/asmlex/pkg/token"
)

// jsonVersion is the version of the JSON output schema.
const jsonVersion = "1.0.0"

// JSONOutput is the top-level JSON structure.
type JSONOutput struct {
	Version string           `json:"version"`
	Files   []JSONFileResult `json:"files"`
	Summary JSONSummary      `json:"summary"`
}

// JSONFileResult represents a single file's results.
type JSONFileResult struct {
	Path        string           `json:"path"`
	Diagnostics []JSONDiagnostic `json:"diagnostics"`
	Tokens      []JSONToken      `json:"tokens,omitempty"`
	Fragments   int              `json:"fragments"`
	Error       string           `json:"error,omitempty"`
}

// JSONDiagnostic represents a single diagnostic.
type JSONDiagnostic struct {
	Code        string `json:"code"`
	Name        string `json:"name"`
	Severity    string `json:"severity"`
	Message     string `json:"message"`
	StartLine   int    `json:"startLine"`
	StartColumn int    `json:"startColumn"`
	EndLine     int    `json:"endLine"`
	EndColumn   int    `json:"endColumn"`
	StartOffset int    `json:"startOffset"`
	EndOffset   int    `json:"endOffset"`
}

// JSONToken represents a single token. Lines and columns are 1-based.
type JSONToken struct {
	Kind        string `json:"kind"`
	StartLine   int    `json:"startLine"`
	StartColumn int    `json:"startColumn"`
	EndLine     int    `json:"endLine"`
	EndColumn   int    `json:"endColumn"`
	StartOffset int    `json:"startOffset"`
	EndOffset   int    `json:"endOffset"`
	Lexeme      string `json:"lexeme,omitempty"`
}

// JSONSummary contains aggregate statistics.
type JSONSummary struct {
	FilesChecked    int            `json:"filesChecked"`
	FilesWithIssues int            `json:"filesWithIssues"`
	FilesErrored    int            `json:"filesErrored"`
	TotalIssues     int            `json:"totalIssues"`
	Tokens          int            `json:"tokens"`
	Fragments       int            `json:"fragments"`
	BySeverity      map[string]int `json:"bySeverity"`
	ByCode          map[string]int `json:"byCode"`
}

// JSONReporter formats results as JSON.
type JSONReporter struct {
	opts Options
	bw   *bufio.Writer
}

// NewJSONReporter creates a new JSON reporter.
func NewJSONReporter(opts Options) *JSONReporter {
	return &JSONReporter{
		opts: opts,
		bw:   bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *JSONReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	output := r.buildOutput(result)

	encoder := json.NewEncoder(r.bw)
	if !r.opts.Compact {
		encoder.SetIndent("", "  ")
	}

	if err := encoder.Encode(output); err != nil {
		return 0, fmt.Errorf("encode JSON: %w", err)
	}

	return output.Summary.TotalIssues, nil
}

func (r *JSONReporter) buildOutput(result *runner.Result) *JSONOutput {
	output := &JSONOutput{
		Version: jsonVersion,
		Files:   make([]JSONFileResult, 0),
		Summary: JSONSummary{
			BySeverity: make(map[string]int),
			ByCode:     make(map[string]int),
		},
	}

	if result == nil {
		return output
	}

	for _, file := range result.Files {
		fileResult := JSONFileResult{
			Path:        r.opts.displayPath(file.Path),
			Diagnostics: make([]JSONDiagnostic, 0),
		}
		output.Summary.FilesChecked++

		if file.Error != nil {
			fileResult.Error = file.Error.Error()
			output.Summary.FilesErrored++
		}

		if file.Result != nil && file.Result.FileResult != nil {
			fr := file.Result.FileResult
			fileResult.Fragments = fr.Fragments
			output.Summary.Fragments += fr.Fragments
			output.Summary.Tokens += fr.Tokens

			for _, d := range fr.Diagnostics {
				fileResult.Diagnostics = append(fileResult.Diagnostics, jsonDiagnostic(d))
				output.Summary.TotalIssues++
				output.Summary.BySeverity[d.Severity.String()]++
				output.Summary.ByCode[d.Code]++
			}

			if r.opts.IncludeTokens {
				fileResult.Tokens = jsonTokens(fr)
			}
		}

		if len(fileResult.Diagnostics) > 0 {
			output.Summary.FilesWithIssues++
		}
		output.Files = append(output.Files, fileResult)
	}

	return output
}

func jsonDiagnostic(d engine.Diagnostic) JSONDiagnostic {
	return JSONDiagnostic{
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

func jsonTokens(fr *engine.FileResult) []JSONToken {
	if fr.Document == nil {
		return nil
	}
	toks := fr.Document.Tokens()
	out := make([]JSONToken, 0, len(toks))
	for _, tk := range toks {
		out = append(out, jsonToken(tk, fr))
	}
	return out
}

func jsonToken(tk token.Token, fr *engine.FileResult) JSONToken {
	return JSONToken{
		Kind:        tk.Kind.String(),
		StartLine:   tk.Start.Line + 1,
		StartColumn: tk.Start.Character + 1,
		EndLine:     tk.End.Line + 1,
		EndColumn:   tk.End.Character + 1,
		StartOffset: tk.Start.Byte,
		EndOffset:   tk.End.Byte,
		Lexeme:      tk.Text(fr.Pool),
	}
}
