//go:build stave

package main

import (
	"cmp"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/yaklabco/stave/pkg/sh"
	"github.com/yaklabco/stave/pkg/st"
	"github.com/yaklabco/stave/pkg/target"

	"github.com/yaklabco/asmlex/pkg/config"
)

const binary = "bin/asmlex"

// corePackages hold the codec, splitter, lexer and string pool.
var corePackages = []string{
	"./pkg/codec/...",
	"./pkg/preproc/...",
	"./pkg/lex/...",
	"./pkg/strpool/...",
	"./pkg/token/...",
}

// Default target runs build.
var Default = Build

// Aliases for common targets.
var Aliases = map[string]any{
	"b":     Build,
	"t":     Test.Default,
	"tc":    Test.Core,
	"smoke": Test.Smoke,
	"l":     Lint.Default,
	"c":     Check,
	"bc":    Bench.Corpus,
}

// Namespace types group related targets.
type (
	Test  st.Namespace
	Lint  st.Namespace
	CI    st.Namespace
	Bench st.Namespace
)

// Build compiles bin/asmlex with version info when sources changed.
func Build() error {
	rebuild, err := target.Dir(binary, "cmd/", "pkg/", "internal/", "go.mod", "go.sum")
	if err != nil {
		return err
	}
	if !rebuild {
		fmt.Println(binary, "is up to date")
		return nil
	}
	fmt.Println("Building asmlex...")
	return sh.RunV("go", "build", "-ldflags", ldflags(), "-o", binary, "./cmd/asmlex")
}

// Check formats, lints, runs the lexer core tests and then the full suite.
func Check() {
	st.SerialDeps(Lint.Fmt, Lint.Default, Test.Core, Test.Default)
}

// Clean removes build artifacts.
func Clean() error {
	for _, path := range []string{"bin", "coverage.out", "coverage.html"} {
		if err := sh.Rm(path); err != nil {
			return err
		}
	}
	return nil
}

// Install installs asmlex to $GOBIN or $GOPATH/bin.
func Install() error {
	return sh.RunV("go", "install", "-ldflags", ldflags(), "./cmd/asmlex")
}

// Default runs all tests using gotestsum with race detection and coverage.
// STAVE_NUM_PROCESSORS bounds package and test parallelism.
func (Test) Default() error {
	nCores := cmp.Or(os.Getenv("STAVE_NUM_PROCESSORS"), "4")
	return gotestsum("pkgname-and-test-fails",
		"-race", "-p", nCores, "-parallel", nCores,
		"-coverprofile=coverage.out", "-covermode=atomic",
		"./...",
	)
}

// Core runs the codec, splitter, lexer and string pool tests uncached and in
// shuffled order.
func (Test) Core() error {
	args := append([]string{"-race", "-count=1", "-shuffle=on"}, corePackages...)
	return gotestsum("testname", args...)
}

// Smoke builds the binary and lexes a few fixtures, checking the exit code
// of each command against what the fixture should produce.
func (Test) Smoke() error {
	st.Deps(Build)

	dir, err := os.MkdirTemp("", "asmlex-smoke-")
	if err != nil {
		return err
	}
	defer os.RemoveAll(dir)

	fixtures := map[string]string{
		"clean.asm":    "start:\n  mov r0, 0x1f ; load\n  db \"ok\\n\"\n",
		"continue.asm": "mov r0, \\\n  1\n",
		"badnum.asm":   "mov r0, 09\n",
		"badutf.asm":   "db \"\xff\"\n",
	}
	for name, content := range fixtures {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			return err
		}
	}
	path := func(name string) string { return filepath.Join(dir, name) }

	checks := []struct {
		args []string
		want int
	}{
		{[]string{"lex", path("clean.asm")}, 0},
		{[]string{"lex", path("continue.asm")}, 0},
		{[]string{"lex", path("badnum.asm")}, 1},
		{[]string{"lex", path("badutf.asm")}, 1},
		{[]string{"lex", "--format", "json", path("clean.asm")}, 0},
		{[]string{"tokens", path("continue.asm")}, 0},
		{[]string{"fragments", path("continue.asm")}, 0},
		{[]string{"lex", dir}, 1},
	}
	for _, check := range checks {
		got, err := exitCode(append(check.args, "--color", "never")...)
		if err != nil {
			return err
		}
		if got != check.want {
			return fmt.Errorf("asmlex %s: exit %d, want %d", strings.Join(check.args, " "), got, check.want)
		}
		fmt.Printf("  ok  asmlex %s\n", strings.Join(check.args, " "))
	}
	return nil
}

// Default runs golangci-lint with auto-fix.
func (Lint) Default() error {
	return sh.RunV("golangci-lint", "run", "--fix", "./...")
}

// CI runs golangci-lint without auto-fix and go vet.
func (Lint) CI() error {
	if err := sh.RunV("go", "vet", "./..."); err != nil {
		return err
	}
	return sh.RunV("golangci-lint", "run", "./...")
}

// Fmt formats all Go code.
func (Lint) Fmt() error {
	return sh.RunV("gofmt", "-w", ".")
}

// FmtCheck fails when any file needs gofmt.
func (Lint) FmtCheck() error {
	out, err := sh.Output("gofmt", "-l", ".")
	if err != nil {
		return fmt.Errorf("gofmt check failed: %w", err)
	}
	if out != "" {
		return fmt.Errorf("unformatted files:\n%s\nRun 'stave lint:fmt' to fix", out)
	}
	return nil
}

// Gate runs every check CI runs, cheapest first.
func (CI) Gate() error {
	st.SerialDeps(
		Lint.FmtCheck,
		Lint.CI,
		Test.Core,
		Test.Default,
		Test.Smoke,
		CI.ModTidy,
		CI.Cross,
	)
	fmt.Println("✓ CI gate passed")
	return nil
}

// ModTidy fails when go mod tidy changes go.mod or go.sum.
func (CI) ModTidy() error {
	before, err := readModFiles()
	if err != nil {
		return err
	}
	if err := sh.RunV("go", "mod", "tidy"); err != nil {
		return err
	}
	after, err := readModFiles()
	if err != nil {
		return err
	}
	if before != after {
		return errors.New("go.mod or go.sum changed after 'go mod tidy' - please commit the changes")
	}
	return nil
}

// Cross builds the binary for each release platform.
func (CI) Cross() error {
	platforms := []string{
		"linux/amd64", "linux/arm64",
		"darwin/amd64", "darwin/arm64",
		"windows/amd64", "freebsd/amd64",
	}
	for _, platform := range platforms {
		goos, goarch, _ := strings.Cut(platform, "/")
		env := map[string]string{"GOOS": goos, "GOARCH": goarch, "CGO_ENABLED": "0"}
		if err := sh.RunWith(env, "go", "build", "-o", os.DevNull, "./cmd/asmlex"); err != nil {
			return fmt.Errorf("build %s: %w", platform, err)
		}
	}
	return nil
}

// Default runs Go benchmarks.
func (Bench) Default() error {
	return gotestsum("pkgname-and-test-fails", "-run=^$", "-bench=.", "-benchmem", "./...")
}

// Corpus times the built binary over a directory of assembly sources.
// Set ASMLEX_CORPUS to choose the directory (default: current directory).
func (Bench) Corpus() error {
	st.Deps(Build)
	dir := cmp.Or(os.Getenv("ASMLEX_CORPUS"), ".")
	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("corpus: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("corpus %s is not a directory", dir)
	}

	fmt.Printf("Lexing corpus %s...\n", dir)
	started := time.Now()
	code, err := exitCode("lex", "--format", "summary", "--color", "never", dir)
	fmt.Printf("Corpus lexed in %s\n", time.Since(started).Round(time.Millisecond))
	if err != nil {
		return err
	}
	// Diagnostics in a corpus are expected; only a crash or bad usage fails.
	if code > 2 {
		return fmt.Errorf("asmlex exited %d", code)
	}
	return nil
}

// Sources counts the files under ASMLEX_CORPUS with a default source
// extension.
func (Bench) Sources() error {
	dir := cmp.Or(os.Getenv("ASMLEX_CORPUS"), ".")
	extensions := config.DefaultExtensions()
	var count int
	err := filepath.WalkDir(dir, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if entry.IsDir() && strings.HasPrefix(entry.Name(), ".") && path != dir {
			return filepath.SkipDir
		}
		if !entry.IsDir() && slices.Contains(extensions, filepath.Ext(path)) {
			count++
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("walk corpus: %w", err)
	}
	fmt.Printf("%d source files under %s\n", count, dir)
	return nil
}

func gotestsum(format string, goTestArgs ...string) error {
	args := append([]string{"tool", "gotestsum", "-f", format, "--"}, goTestArgs...)
	return sh.RunV("go", args...)
}

// exitCode runs the built binary and returns its exit status. Only a failure
// to start the process is an error.
func exitCode(args ...string) (int, error) {
	cmd := exec.Command(binary, args...) //nolint:gosec // fixed binary
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	err := cmd.Run()
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode(), nil
	}
	if err != nil {
		return 0, err
	}
	return 0, nil
}

func readModFiles() (string, error) {
	mod, err := os.ReadFile("go.mod")
	if err != nil {
		return "", fmt.Errorf("read go.mod: %w", err)
	}
	sum, err := os.ReadFile("go.sum")
	if err != nil {
		return "", fmt.Errorf("read go.sum: %w", err)
	}
	return string(mod) + "\x00" + string(sum), nil
}

func gitOutput(args ...string) string {
	out, err := sh.Output("git", args...)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(out)
}

// ldflags injects version, commit and build date into main.
func ldflags() string {
	version := cmp.Or(gitOutput("describe", "--tags", "--always", "--dirty"), "dev")
	commit := cmp.Or(gitOutput("rev-parse", "--short", "HEAD"), "none")
	date := time.Now().UTC().Format(time.RFC3339)
	return fmt.Sprintf("-X main.version=%s -X main.commit=%s -X main.date=%s", version, commit, date)
}
