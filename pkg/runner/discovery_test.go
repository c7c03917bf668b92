package runner_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/asmlex/pkg/runner"
)

func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()

	for name, content := range files {
		path := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
}

func relAll(t *testing.T, root string, paths []string) []string {
	t.Helper()

	out := make([]string, 0, len(paths))
	for _, p := range paths {
		rel, err := filepath.Rel(root, p)
		require.NoError(t, err)
		out = append(out, filepath.ToSlash(rel))
	}
	return out
}

func TestDiscover_SingleFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, map[string]string{"boot.asm": "nop\n"})

	files, err := runner.Discover(context.Background(), runner.Options{
		Paths:      []string{"boot.asm"},
		WorkingDir: dir,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "boot.asm")}, files)
}

func TestDiscover_Directory(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, map[string]string{
		"boot.asm":         "nop\n",
		"lib/math.s":       "add r1, r2\n",
		"lib/macros.INC":   ".macro m\n",
		"lib/start.S":      "_start:\n",
		"src/main.go":      "package main\n",
		"notes.txt":        "not source\n",
		".hidden/skip.asm": "nop\n",
		"lib/.cache.asm":   "nop\n",
	})

	files, err := runner.Discover(context.Background(), runner.Options{WorkingDir: dir})
	require.NoError(t, err)
	assert.Equal(t, []string{
		"boot.asm",
		"lib/macros.INC",
		"lib/math.s",
		"lib/start.S",
	}, relAll(t, dir, files))
}

func TestDiscover_Globs(t *testing.T) {
	t.Parallel()

	tree := map[string]string{
		"boot.asm":           "nop\n",
		"lib/math.s":         "nop\n",
		"vendor/ext/a.asm":   "nop\n",
		"gen/deep/x/out.asm": "nop\n",
		"gen/table.inc":      "nop\n",
	}

	tests := []struct {
		name    string
		include []string
		exclude []string
		want    []string
	}{
		{
			name: "no filters",
			want: []string{"boot.asm", "gen/deep/x/out.asm", "gen/table.inc", "lib/math.s", "vendor/ext/a.asm"},
		},
		{
			name:    "exclude directory tree",
			exclude: []string{"vendor/**"},
			want:    []string{"boot.asm", "gen/deep/x/out.asm", "gen/table.inc", "lib/math.s"},
		},
		{
			name:    "exclude by component name",
			exclude: []string{"gen"},
			want:    []string{"boot.asm", "lib/math.s", "vendor/ext/a.asm"},
		},
		{
			name:    "exclude by basename pattern",
			exclude: []string{"*.inc"},
			want:    []string{"boot.asm", "gen/deep/x/out.asm", "lib/math.s", "vendor/ext/a.asm"},
		},
		{
			name:    "include double star",
			include: []string{"gen/**/*.asm"},
			want:    []string{"gen/deep/x/out.asm"},
		},
		{
			name:    "include and exclude",
			include: []string{"**/*.asm"},
			exclude: []string{"vendor/**"},
			want:    []string{"boot.asm", "gen/deep/x/out.asm"},
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			dir := t.TempDir()
			writeTree(t, dir, tree)

			files, err := runner.Discover(context.Background(), runner.Options{
				WorkingDir:   dir,
				IncludeGlobs: testCase.include,
				ExcludeGlobs: testCase.exclude,
			})
			require.NoError(t, err)
			assert.Equal(t, testCase.want, relAll(t, dir, files))
		})
	}
}

func TestDiscover_CustomExtensions(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, map[string]string{
		"a.asm":  "nop\n",
		"b.nasm": "nop\n",
		"c.s":    "nop\n",
	})

	files, err := runner.Discover(context.Background(), runner.Options{
		WorkingDir: dir,
		Extensions: []string{".nasm"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"b.nasm"}, relAll(t, dir, files))
}

func TestDiscover_DetectLanguage(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, map[string]string{
		"boot.asm": "nop\n",
		"kernel": ".section .text\n.globl _start\n_start:\n" +
			"    mov $1, %eax\n    int $0x80\n",
		"README": "This is a plain text file with prose in it.\n",
	})

	withoutDetection, err := runner.Discover(context.Background(), runner.Options{WorkingDir: dir})
	require.NoError(t, err)
	assert.Equal(t, []string{"boot.asm"}, relAll(t, dir, withoutDetection))

	withDetection, err := runner.Discover(context.Background(), runner.Options{
		WorkingDir:     dir,
		DetectLanguage: true,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"boot.asm", "kernel"}, relAll(t, dir, withDetection))
}

func TestDiscover_Deduplicates(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, map[string]string{"lib/a.asm": "nop\n"})

	files, err := runner.Discover(context.Background(), runner.Options{
		Paths:      []string{"lib", "lib/a.asm", "."},
		WorkingDir: dir,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"lib/a.asm"}, relAll(t, dir, files))
}

func TestDiscover_Symlinks(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	outside := t.TempDir()
	writeTree(t, dir, map[string]string{"a.asm": "nop\n"})
	writeTree(t, outside, map[string]string{"b.asm": "nop\n"})

	if err := os.Symlink(outside, filepath.Join(dir, "linked")); err != nil {
		t.Skipf("symlinks unsupported: %v", err)
	}

	files, err := runner.Discover(context.Background(), runner.Options{WorkingDir: dir})
	require.NoError(t, err)
	assert.Equal(t, []string{"a.asm"}, relAll(t, dir, files))

	files, err = runner.Discover(context.Background(), runner.Options{
		WorkingDir:     dir,
		FollowSymlinks: true,
	})
	require.NoError(t, err)
	require.Len(t, files, 2)
	assert.Equal(t, filepath.Join(dir, "a.asm"), files[0])
	assert.Equal(t, "b.asm", filepath.Base(files[1]))
}

func TestDiscover_MissingPath(t *testing.T) {
	t.Parallel()

	_, err := runner.Discover(context.Background(), runner.Options{
		Paths:      []string{"does-not-exist"},
		WorkingDir: t.TempDir(),
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestDiscover_Cancelled(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, map[string]string{"a.asm": "nop\n"})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := runner.Discover(ctx, runner.Options{WorkingDir: dir})
	require.ErrorIs(t, err, context.Canceled)
}

func TestMatcher(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	match, err := runner.Matcher(runner.Options{
		WorkingDir:   dir,
		ExcludeGlobs: []string{"build/**"},
	})
	require.NoError(t, err)

	tests := []struct {
		path string
		want bool
	}{
		{"boot.asm", true},
		{filepath.Join(dir, "lib", "math.s"), true},
		{"notes.txt", false},
		{".hidden.asm", false},
		{"build/out.asm", false},
	}

	for _, testCase := range tests {
		t.Run(testCase.path, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, testCase.want, match(testCase.path))
		})
	}
}
