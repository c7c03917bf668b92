package reporter_test

import (
	"context"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yaklabco/asmlex/pkg/config"
	"github.com/yaklabco/asmlex/pkg/engine"
	"github.com/yaklabco/asmlex/pkg/runner"
)

// lexFiles writes files into a temp dir and lexes them. It returns the
// result and the directory.
func lexFiles(t *testing.T, files map[string]string) (*runner.Result, string) {
	t.Helper()

	dir := t.TempDir()
	paths := make([]string, 0, len(files))
	for name, content := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
		paths = append(paths, path)
	}
	slices.Sort(paths)

	run := runner.New(engine.NewPipeline(engine.NewEngine()))
	result, err := run.RunFiles(context.Background(), paths, 1, config.NewConfig())
	require.NoError(t, err)
	return result, dir
}
