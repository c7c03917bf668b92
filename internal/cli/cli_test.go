package cli_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/asmlex/internal/cli"
)

func testInfo() cli.BuildInfo {
	return cli.BuildInfo{Version: "1.2.3", Commit: "abc123", Date: "2026-01-01"}
}

func TestNewRootCommand(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo())
	require.NotNil(t, cmd)

	assert.Equal(t, "asmlex", cmd.Use)
	assert.NotEmpty(t, cmd.Short)
	assert.NotEmpty(t, cmd.Long)
	assert.Equal(t, "1.2.3", cmd.Version)
}

func TestRootCommandHasSubcommands(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo())

	for _, name := range []string{"lex", "tokens", "fragments", "watch", "diagnostics", "init", "version"} {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			subCmd, _, err := cmd.Find([]string{name})
			require.NoError(t, err)
			assert.Equal(t, name, subCmd.Name())
		})
	}
}

func TestGlobalFlags(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo())
	for _, name := range []string{"debug", "config", "color"} {
		assert.NotNil(t, cmd.PersistentFlags().Lookup(name), "global flag %q", name)
	}
}

func TestLexCommandFlags(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo())
	lexCmd, _, err := cmd.Find([]string{"lex"})
	require.NoError(t, err)

	tests := []struct {
		name       string
		defaultVal string
	}{
		{"format", ""},
		{"name-format", ""},
		{"sort", "count"},
		{"min-severity", ""},
		{"summary-order", "diagnostics"},
		{"jobs", "0"},
		{"strict", "false"},
		{"ignore", "[]"},
		{"include", "[]"},
		{"extensions", "[]"},
		{"detect-language", "false"},
		{"follow-symlinks", "false"},
		{"no-preprocess", "false"},
		{"recover-encoding", "false"},
		{"memory-limit", "0"},
		{"no-context", "false"},
		{"tokens", "false"},
		{"per-file", "false"},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			flag := lexCmd.Flags().Lookup(testCase.name)
			require.NotNil(t, flag)
			assert.Equal(t, testCase.defaultVal, flag.DefValue)
		})
	}

	formatFlag := lexCmd.Flags().Lookup("format")
	assert.Contains(t, formatFlag.Usage, "tokens")
	assert.Contains(t, formatFlag.Usage, "diff")
}

func TestTokensCommandHasNoFormatFlag(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo())
	tokensCmd, _, err := cmd.Find([]string{"tokens"})
	require.NoError(t, err)

	assert.Nil(t, tokensCmd.Flags().Lookup("format"))
	assert.NotNil(t, tokensCmd.Flags().Lookup("recover-encoding"))
}

func TestLexCommandAcceptsArbitraryArgs(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo())
	lexCmd, _, err := cmd.Find([]string{"lex"})
	require.NoError(t, err)

	assert.NoError(t, lexCmd.Args(lexCmd, []string{"boot.asm", "lib/", "macros.inc"}))
}

func TestVersionCommand(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo())
	cmd.SetArgs([]string{"version"})

	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "asmlex")
	assert.Contains(t, out.String(), "1.2.3")
	assert.Contains(t, out.String(), "abc123")
}

func TestHelpOutput(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo())
	cmd.SetArgs([]string{"lex", "--help", "--color", "never"})

	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)

	require.NoError(t, cmd.Execute())

	help := out.String()
	assert.Contains(t, help, "Usage:")
	assert.Contains(t, help, "Examples:")
	assert.Contains(t, help, "asmlex lex --format json")
	assert.Contains(t, help, "--recover-encoding")
	assert.Contains(t, help, "Global Flags:")
}
