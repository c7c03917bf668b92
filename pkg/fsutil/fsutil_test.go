package fsutil_test

import (
	"context"
	"crypto/sha256"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/asmlex/pkg/fsutil"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "boot.asm")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestReadFile(t *testing.T) {
	t.Parallel()

	t.Run("reads content and metadata", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, "mov r0, 1\n")
		got, info, err := fsutil.ReadFile(context.Background(), path)
		require.NoError(t, err)

		assert.Equal(t, "mov r0, 1\n", string(got))
		assert.Equal(t, path, info.Path)
		assert.Equal(t, int64(len(got)), info.Size)
		assert.Equal(t, os.FileMode(0o644), info.Mode.Perm())
		assert.Equal(t, sha256.Sum256(got), info.Hash)
	})

	tests := []struct {
		name    string
		path    func(t *testing.T) string
		ctx     func() context.Context
		wantErr error
	}{
		{
			name:    "missing file",
			path:    func(t *testing.T) string { t.Helper(); return filepath.Join(t.TempDir(), "nope.s") },
			wantErr: fsutil.ErrNotFound,
		},
		{
			name:    "directory",
			path:    func(t *testing.T) string { t.Helper(); return t.TempDir() },
			wantErr: fsutil.ErrIsDirectory,
		},
		{
			name: "cancelled context",
			path: func(t *testing.T) string { t.Helper(); return writeFile(t, "x") },
			ctx: func() context.Context {
				ctx, cancel := context.WithCancel(context.Background())
				cancel()
				return ctx
			},
			wantErr: context.Canceled,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			ctx := context.Background()
			if testCase.ctx != nil {
				ctx = testCase.ctx()
			}

			_, _, err := fsutil.ReadFile(ctx, testCase.path(t))
			require.ErrorIs(t, err, testCase.wantErr)
		})
	}
}

func TestChanged(t *testing.T) {
	t.Parallel()

	t.Run("unchanged file", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, "nop\n")
		_, info, err := fsutil.ReadFile(context.Background(), path)
		require.NoError(t, err)

		changed, err := fsutil.Changed(context.Background(), info)
		require.NoError(t, err)
		assert.False(t, changed)
	})

	t.Run("touched but identical", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, "nop\n")
		_, info, err := fsutil.ReadFile(context.Background(), path)
		require.NoError(t, err)

		later := info.ModTime.Add(time.Hour)
		require.NoError(t, os.Chtimes(path, later, later))

		changed, err := fsutil.Changed(context.Background(), info)
		require.NoError(t, err)
		assert.False(t, changed)
	})

	t.Run("content rewritten", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, "nop\n")
		_, info, err := fsutil.ReadFile(context.Background(), path)
		require.NoError(t, err)

		require.NoError(t, os.WriteFile(path, []byte("halt\n"), 0o644))

		changed, err := fsutil.Changed(context.Background(), info)
		require.NoError(t, err)
		assert.True(t, changed)
	})

	t.Run("deleted", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, "nop\n")
		_, info, err := fsutil.ReadFile(context.Background(), path)
		require.NoError(t, err)
		require.NoError(t, os.Remove(path))

		changed, err := fsutil.Changed(context.Background(), info)
		require.NoError(t, err)
		assert.True(t, changed)
	})

	t.Run("nil info", func(t *testing.T) {
		t.Parallel()

		_, err := fsutil.Changed(context.Background(), nil)
		require.ErrorIs(t, err, fsutil.ErrNilFileInfo)
	})
}
