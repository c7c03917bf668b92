package runner

import (
	"context"
	"fmt"
	"runtime"
	"sync"

	"github.com/yaklabco/asmlex/internal/logging"
	"github.com/yaklabco/asmlex/pkg/config"
	"github.com/yaklabco/asmlex/pkg/engine"
)

// Runner lexes many files through an engine.Pipeline.
type Runner struct {
	Pipeline *engine.Pipeline
}

// New creates a new Runner with the given pipeline.
func New(pipeline *engine.Pipeline) *Runner {
	return &Runner{Pipeline: pipeline}
}

// Run discovers files under opts.Paths and lexes them concurrently.
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	files, err := Discover(ctx, opts)
	if err != nil {
		return nil, err
	}

	logging.FromContext(ctx).Debug("discovered files",
		logging.FieldFilesDiscovered, len(files),
		logging.FieldPaths, opts.effectivePaths(),
	)

	return r.RunFiles(ctx, files, opts.Jobs, opts.Config)
}

// RunFiles lexes an explicit file list with up to jobs workers. Outcomes
// keep the order of files.
func (r *Runner) RunFiles(ctx context.Context, files []string, jobs int, cfg *config.Config) (*Result, error) {
	result := &Result{
		Files: make([]FileOutcome, 0, len(files)),
		Stats: newStats(),
	}
	result.Stats.FilesDiscovered = len(files)

	if len(files) == 0 {
		return result, nil
	}

	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}
	jobs = min(jobs, len(files))

	workCh := make(chan int)
	outCh := make(chan indexedOutcome)

	var wg sync.WaitGroup
	for range jobs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r.worker(ctx, files, workCh, outCh, cfg)
		}()
	}

	go func() {
		defer close(workCh)
		for i := range files {
			select {
			case <-ctx.Done():
				return
			case workCh <- i:
			}
		}
	}()

	go func() {
		wg.Wait()
		close(outCh)
	}()

	outcomes := make([]*FileOutcome, len(files))
	for out := range outCh {
		outcomes[out.index] = &out.outcome
	}

	for _, outcome := range outcomes {
		if outcome != nil {
			result.accumulate(*outcome)
		}
	}

	if ctx.Err() != nil {
		return result, fmt.Errorf("run cancelled: %w", ctx.Err())
	}

	logging.FromContext(ctx).Debug("run complete",
		logging.FieldFilesProcessed, result.Stats.FilesProcessed,
		logging.FieldFilesWithIssues, result.Stats.FilesWithIssues,
		logging.FieldTokens, result.Stats.TokensTotal,
		logging.FieldDiagnostics, result.Stats.DiagnosticsTotal,
		logging.FieldJobs, jobs,
	)

	return result, nil
}

type indexedOutcome struct {
	index   int
	outcome FileOutcome
}

func (r *Runner) worker(
	ctx context.Context,
	files []string,
	workCh <-chan int,
	outCh chan<- indexedOutcome,
	cfg *config.Config,
) {
	for i := range workCh {
		select {
		case <-ctx.Done():
			return
		default:
		}

		outcome := FileOutcome{Path: files[i]}
		pr, err := r.Pipeline.ProcessFile(ctx, files[i], cfg)
		if err != nil {
			outcome.Error = err
			logging.FromContext(ctx).Debug("file failed", logging.FieldPath, files[i], logging.FieldError, err)
		} else {
			outcome.Result = pr
		}

		select {
		case <-ctx.Done():
			return
		case outCh <- indexedOutcome{index: i, outcome: outcome}:
		}
	}
}
