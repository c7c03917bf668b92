package engine

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/yaklabco/asmlex/pkg/arena"
	"github.com/yaklabco/asmlex/pkg/config"
	"github.com/yaklabco/asmlex/pkg/fsutil"
)

// Pipeline error types for categorization.
var (
	// ErrFileNotFound indicates the file does not exist.
	ErrFileNotFound = errors.New("file not found")

	// ErrPermissionDenied indicates a permission error.
	ErrPermissionDenied = errors.New("permission denied")

	// ErrLexFailure indicates the lexer aborted, e.g. on the memory limit.
	ErrLexFailure = errors.New("lex failure")
)

// PipelineResult is the outcome of processing one file from disk.
type PipelineResult struct {
	*FileResult

	// Path is the file path that was processed.
	Path string

	// Info is the file state when it was read.
	Info *fsutil.FileInfo
}

// Summary returns a short human-readable status.
func (pr *PipelineResult) Summary() string {
	switch {
	case pr.FileResult == nil:
		return "not processed"
	case pr.ErrorCount() > 0:
		return "errors found"
	case pr.HasIssues():
		return "warnings found"
	default:
		return "ok"
	}
}

// Pipeline reads files from disk and hands them to an Engine.
type Pipeline struct {
	Engine *Engine
}

// NewPipeline creates a pipeline around engine.
func NewPipeline(engine *Engine) *Pipeline {
	return &Pipeline{Engine: engine}
}

// ProcessFile reads path and lexes it.
func (p *Pipeline) ProcessFile(ctx context.Context, path string, cfg *config.Config) (*PipelineResult, error) {
	content, info, err := fsutil.ReadFile(ctx, path)
	if err != nil {
		return nil, categorizeError(err)
	}

	fileResult, err := p.Engine.ProcessFile(ctx, path, content, cfg)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, fmt.Errorf("processing cancelled: %w", ctxErr)
		}
		return nil, fmt.Errorf("%w: %s: %w", ErrLexFailure, path, err)
	}

	return &PipelineResult{FileResult: fileResult, Path: path, Info: info}, nil
}

// categorizeError wraps an error with the appropriate pipeline error type.
func categorizeError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, fsutil.ErrNotFound) || errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("%w: %w", ErrFileNotFound, err)
	}
	if errors.Is(err, fsutil.ErrPermissionDenied) || errors.Is(err, os.ErrPermission) {
		return fmt.Errorf("%w: %w", ErrPermissionDenied, err)
	}

	return err
}

// IsPipelineError checks if an error is a known pipeline error type.
func IsPipelineError(err error) bool {
	return errors.Is(err, ErrFileNotFound) ||
		errors.Is(err, ErrPermissionDenied) ||
		errors.Is(err, ErrLexFailure)
}

// IsOutOfMemory reports whether err came from the memory limit.
func IsOutOfMemory(err error) bool {
	return errors.Is(err, arena.ErrOutOfMemory)
}
