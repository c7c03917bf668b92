package watch_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/asmlex/pkg/watch"
)

const waitFor = 5 * time.Second

func TestOp_String(t *testing.T) {
	t.Parallel()

	tests := []struct {
		op   watch.Op
		want string
	}{
		{0, "NONE"},
		{watch.OpWrite, "WRITE"},
		{watch.OpCreate | watch.OpWrite, "CREATE|WRITE"},
		{watch.OpRemove | watch.OpRename | watch.OpChmod, "REMOVE|RENAME|CHMOD"},
	}

	for _, testCase := range tests {
		t.Run(testCase.want, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, testCase.want, testCase.op.String())
		})
	}
}

func TestOp_Has(t *testing.T) {
	t.Parallel()

	op := watch.OpCreate | watch.OpWrite
	assert.True(t, op.Has(watch.OpWrite))
	assert.True(t, op.Has(watch.OpCreate|watch.OpWrite))
	assert.False(t, op.Has(watch.OpRemove))
}

// startWatcher runs a watcher over dir and forwards every batch it delivers.
func startWatcher(t *testing.T, dir string, filter func(string) bool) (*watch.Watcher, <-chan []string) {
	t.Helper()

	w, err := watch.New(watch.Options{Debounce: 20 * time.Millisecond, Filter: filter})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, w.Add(ctx, dir))

	batches := make(chan []string, 16)
	done := make(chan error, 1)
	go func() {
		done <- w.Run(ctx, func(_ context.Context, paths []string) error {
			batches <- paths
			return nil
		})
	}()

	t.Cleanup(func() {
		cancel()
		assert.NoError(t, <-done)
		assert.NoError(t, w.Close())
	})
	return w, batches
}

func nextBatch(t *testing.T, batches <-chan []string) []string {
	t.Helper()

	select {
	case paths := <-batches:
		return paths
	case <-time.After(waitFor):
		require.FailNow(t, "no batch delivered")
		return nil
	}
}

func realDir(t *testing.T) string {
	t.Helper()

	dir, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)
	return dir
}

func TestRun_DeliversWrites(t *testing.T) {
	t.Parallel()

	dir := realDir(t)
	path := filepath.Join(dir, "boot.asm")
	require.NoError(t, os.WriteFile(path, []byte("nop\n"), 0o644))

	_, batches := startWatcher(t, dir, nil)

	require.NoError(t, os.WriteFile(path, []byte("mov r0, 1\n"), 0o644))
	assert.Equal(t, []string{path}, nextBatch(t, batches))
}

func TestRun_Filter(t *testing.T) {
	t.Parallel()

	dir := realDir(t)
	_, batches := startWatcher(t, dir, func(path string) bool {
		return strings.HasSuffix(path, ".asm")
	})

	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".swap.asm"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "main.asm"), []byte("nop\n"), 0o644))

	assert.Equal(t, []string{filepath.Join(dir, "main.asm")}, nextBatch(t, batches))
}

func TestRun_SkipsUnchangedRewrite(t *testing.T) {
	t.Parallel()

	dir := realDir(t)
	same := filepath.Join(dir, "same.asm")
	other := filepath.Join(dir, "other.asm")
	require.NoError(t, os.WriteFile(same, []byte("nop\n"), 0o644))
	require.NoError(t, os.WriteFile(other, []byte("nop\n"), 0o644))

	w, batches := startWatcher(t, dir, nil)
	require.NoError(t, w.Add(context.Background(), same))

	// Rewriting the same bytes is not a change; the edit to other is.
	require.NoError(t, os.WriteFile(same, []byte("nop\n"), 0o644))
	require.NoError(t, os.WriteFile(other, []byte("ret\n"), 0o644))

	assert.Equal(t, []string{other}, nextBatch(t, batches))
}

func TestRun_NewSubdirectory(t *testing.T) {
	t.Parallel()

	dir := realDir(t)
	_, batches := startWatcher(t, dir, nil)

	sub := filepath.Join(dir, "lib")
	require.NoError(t, os.Mkdir(sub, 0o755))

	// The directory must be watched before the file inside it is written.
	time.Sleep(100 * time.Millisecond)
	path := filepath.Join(sub, "math.s")
	require.NoError(t, os.WriteFile(path, []byte("add r1, r2\n"), 0o644))

	assert.Contains(t, nextBatch(t, batches), path)
}

func TestRun_HandlerErrorStops(t *testing.T) {
	t.Parallel()

	dir := realDir(t)
	w, err := watch.New(watch.Options{Debounce: 10 * time.Millisecond})
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, w.Add(context.Background(), dir))

	done := make(chan error, 1)
	go func() {
		done <- w.Run(context.Background(), func(context.Context, []string) error {
			return assert.AnError
		})
	}()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "x.asm"), []byte("nop\n"), 0o644))

	select {
	case err := <-done:
		require.ErrorIs(t, err, assert.AnError)
	case <-time.After(waitFor):
		require.FailNow(t, "run did not stop")
	}
}

func TestAdd_MissingPath(t *testing.T) {
	t.Parallel()

	w, err := watch.New(watch.Options{})
	require.NoError(t, err)
	defer w.Close()

	err = w.Add(context.Background(), filepath.Join(t.TempDir(), "missing"))
	require.Error(t, err)
}

func TestRun_CloseEnds(t *testing.T) {
	t.Parallel()

	w, err := watch.New(watch.Options{})
	require.NoError(t, err)

	done := make(chan error, 1)
	go func() {
		done <- w.Run(context.Background(), func(context.Context, []string) error { return nil })
	}()

	require.NoError(t, w.Close())
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(waitFor):
		require.FailNow(t, "run did not return after close")
	}
}
