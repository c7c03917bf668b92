package cli_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/asmlex/internal/cli"
	"github.com/yaklabco/asmlex/internal/configloader"
	"github.com/yaklabco/asmlex/pkg/engine"
	"github.com/yaklabco/asmlex/pkg/runner"
)

func TestExitCodeFromResult(t *testing.T) {
	t.Parallel()

	withStats := func(errs, warnings, unreadable int) *runner.Result {
		return &runner.Result{Stats: runner.Stats{
			FilesErrored:     unreadable,
			DiagnosticsTotal: errs + warnings,
			DiagnosticsBySeverity: map[string]int{
				"error":   errs,
				"warning": warnings,
			},
		}}
	}

	tests := []struct {
		name   string
		result *runner.Result
		strict bool
		want   int
	}{
		{"nil result", nil, false, cli.ExitSuccess},
		{"clean", withStats(0, 0, 0), true, cli.ExitSuccess},
		{"errors", withStats(2, 0, 0), false, cli.ExitLexErrors},
		{"unreadable file", withStats(0, 0, 1), false, cli.ExitLexErrors},
		{"warnings", withStats(0, 3, 0), false, cli.ExitSuccess},
		{"warnings strict", withStats(0, 3, 0), true, cli.ExitLexWarnings},
		{"errors and warnings strict", withStats(1, 3, 0), true, cli.ExitLexErrors},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, testCase.want, cli.ExitCodeFromResult(testCase.result, testCase.strict))
		})
	}
}

func TestExitCodeForError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, cli.ExitSuccess},
		{"diagnostics", cli.ErrDiagnosticsFound, cli.ExitLexErrors},
		{"strict warnings", cli.ErrWarningsFound, cli.ExitLexWarnings},
		{"usage", fmt.Errorf("%w: bad flag", cli.ErrInvalidUsage), cli.ExitInvalidUsage},
		{"config", fmt.Errorf("%w: broken", cli.ErrConfig), cli.ExitConfigError},
		{"validation", &configloader.ValidationError{Field: "jobs", Message: "bad"}, cli.ExitConfigError},
		{"version", configloader.ErrVersionMismatch, cli.ExitConfigError},
		{"missing file", fmt.Errorf("read: %w", engine.ErrFileNotFound), cli.ExitIOError},
		{"other", errors.New("boom"), cli.ExitInternalError},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, testCase.want, cli.ExitCodeForError(testCase.err))
		})
	}
}

func TestIsSignal(t *testing.T) {
	t.Parallel()

	assert.True(t, cli.IsSignal(cli.ErrDiagnosticsFound))
	assert.True(t, cli.IsSignal(cli.ErrWarningsFound))
	assert.False(t, cli.IsSignal(cli.ErrConfig))
	assert.False(t, cli.IsSignal(nil))
}
