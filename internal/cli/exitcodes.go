package cli

import (
	"errors"

	"github.com/yaklabco/asmlex/internal/configloader"
	"github.com/yaklabco/asmlex/pkg/engine"
	"github.com/yaklabco/asmlex/pkg/runner"
)

// Exit codes for asmlex.
const (
	// ExitSuccess indicates successful execution with no failing diagnostics.
	ExitSuccess = 0

	// ExitLexErrors indicates lexing completed but reported errors or
	// unreadable files.
	ExitLexErrors = 1

	// ExitLexWarnings indicates lexing reported warnings in strict mode.
	ExitLexWarnings = 2

	// ExitInvalidUsage indicates invalid command-line usage.
	ExitInvalidUsage = 64

	// ExitConfigError indicates configuration file errors.
	ExitConfigError = 65

	// ExitInternalError indicates an internal error.
	ExitInternalError = 70

	// ExitIOError indicates file I/O errors.
	ExitIOError = 74
)

var (
	// ErrDiagnosticsFound is returned when a run reports errors. It is an
	// exit-code signal and is not logged.
	ErrDiagnosticsFound = errors.New("diagnostics found")

	// ErrWarningsFound is returned when a strict run reports only warnings.
	ErrWarningsFound = errors.New("warnings found in strict mode")

	// ErrConfig wraps configuration loading and version check failures.
	ErrConfig = errors.New("configuration error")

	// ErrInvalidUsage wraps flag and argument errors.
	ErrInvalidUsage = errors.New("invalid usage")
)

// ExitCodeFromResult determines the exit code based on result and strict mode.
func ExitCodeFromResult(result *runner.Result, strict bool) int {
	switch {
	case result == nil:
		return ExitSuccess
	case result.HasFailures():
		return ExitLexErrors
	case result.Failed(strict):
		return ExitLexWarnings
	default:
		return ExitSuccess
	}
}

// ExitErrorFromResult converts the exit policy into the signal error main
// maps back to a code, or nil.
func ExitErrorFromResult(result *runner.Result, strict bool) error {
	switch ExitCodeFromResult(result, strict) {
	case ExitLexErrors:
		return ErrDiagnosticsFound
	case ExitLexWarnings:
		return ErrWarningsFound
	default:
		return nil
	}
}

// IsSignal reports whether err only carries an exit code and should not be
// logged.
func IsSignal(err error) bool {
	return errors.Is(err, ErrDiagnosticsFound) || errors.Is(err, ErrWarningsFound)
}

// ExitCodeForError maps a command error to a process exit code.
func ExitCodeForError(err error) int {
	var validationErr *configloader.ValidationError

	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, ErrDiagnosticsFound):
		return ExitLexErrors
	case errors.Is(err, ErrWarningsFound):
		return ExitLexWarnings
	case errors.Is(err, ErrInvalidUsage):
		return ExitInvalidUsage
	case errors.Is(err, ErrConfig),
		errors.As(err, &validationErr),
		errors.Is(err, configloader.ErrVersionMismatch),
		errors.Is(err, configloader.ErrUnversionedBuild):
		return ExitConfigError
	case errors.Is(err, engine.ErrFileNotFound), errors.Is(err, engine.ErrPermissionDenied):
		return ExitIOError
	default:
		return ExitInternalError
	}
}
