package runner_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/asmlex/pkg/config"
	"github.com/yaklabco/asmlex/pkg/engine"
	"github.com/yaklabco/asmlex/pkg/runner"
)

func newRunner() *runner.Runner {
	return runner.New(engine.NewPipeline(engine.NewEngine()))
}

func TestRunner_Run(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, map[string]string{
		"a.asm": "mov r0, 1\n",
		"b.asm": "ld 09\n",
		"c.s":   "\"open\n",
	})

	opts := runner.OptionsFromConfig(config.NewConfig(), nil)
	opts.WorkingDir = dir
	opts.Jobs = 2

	result, err := newRunner().Run(context.Background(), opts)
	require.NoError(t, err)

	require.Len(t, result.Files, 3)
	assert.Equal(t, filepath.Join(dir, "a.asm"), result.Files[0].Path)
	assert.Equal(t, filepath.Join(dir, "b.asm"), result.Files[1].Path)
	assert.Equal(t, filepath.Join(dir, "c.s"), result.Files[2].Path)

	stats := result.Stats
	assert.Equal(t, 3, stats.FilesDiscovered)
	assert.Equal(t, 3, stats.FilesProcessed)
	assert.Equal(t, 0, stats.FilesErrored)
	assert.Equal(t, 2, stats.FilesWithIssues)
	assert.Equal(t, 2, stats.DiagnosticsTotal)
	assert.Equal(t, 1, stats.Errors())
	assert.Equal(t, 1, stats.Warnings())
	assert.Equal(t, 1, stats.DiagnosticsByCode["ASM003"])
	assert.Equal(t, 1, stats.DiagnosticsByCode["ASM009"])
	assert.Equal(t, int64(22), stats.BytesTotal)
	assert.Equal(t, 3, stats.FragmentsTotal)
	assert.Positive(t, stats.TokensTotal)

	assert.True(t, result.HasIssues())
	assert.True(t, result.HasFailures())
}

func TestRunner_RunFiles_KeepsOrder(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	var files []string
	for _, name := range []string{"z.asm", "m.asm", "a.asm", "q.asm", "b.asm"} {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte("nop\n"), 0o644))
		files = append(files, path)
	}

	result, err := newRunner().RunFiles(context.Background(), files, 3, nil)
	require.NoError(t, err)
	require.Len(t, result.Files, len(files))
	for i, outcome := range result.Files {
		assert.Equal(t, files[i], outcome.Path)
		require.NoError(t, outcome.Error)
		assert.Equal(t, "ok", outcome.Result.Summary())
	}
	assert.False(t, result.HasIssues())
	assert.False(t, result.HasFailures())
}

func TestRunner_RunFiles_Errors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	good := filepath.Join(dir, "good.asm")
	require.NoError(t, os.WriteFile(good, []byte("nop\n"), 0o644))
	missing := filepath.Join(dir, "missing.asm")

	result, err := newRunner().RunFiles(context.Background(), []string{good, missing}, 0, nil)
	require.NoError(t, err)

	assert.Equal(t, 1, result.Stats.FilesProcessed)
	assert.Equal(t, 1, result.Stats.FilesErrored)
	require.ErrorIs(t, result.Files[1].Error, engine.ErrFileNotFound)
	assert.True(t, result.HasFailures())
	assert.True(t, result.Failed(false))
}

func TestRunner_RunFiles_Empty(t *testing.T) {
	t.Parallel()

	result, err := newRunner().RunFiles(context.Background(), nil, 4, nil)
	require.NoError(t, err)
	assert.Empty(t, result.Files)
	assert.Equal(t, 0, result.Stats.FilesDiscovered)
}

func TestRunner_RunFiles_Cancelled(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "a.asm")
	require.NoError(t, os.WriteFile(path, []byte("nop\n"), 0o644))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newRunner().RunFiles(ctx, []string{path}, 1, nil)
	require.ErrorIs(t, err, context.Canceled)
}

func TestResult_Failed(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "warn.asm")
	require.NoError(t, os.WriteFile(path, []byte("\"open\n"), 0o644))

	result, err := newRunner().RunFiles(context.Background(), []string{path}, 1, nil)
	require.NoError(t, err)

	assert.False(t, result.HasFailures())
	assert.True(t, result.HasIssues())
	assert.False(t, result.Failed(false))
	assert.True(t, result.Failed(true))

	var nilResult *runner.Result
	assert.False(t, nilResult.HasFailures())
}
