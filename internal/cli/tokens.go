package cli

import (
	"github.com/spf13/cobra"

	"github.com/yaklabco/asmlex/pkg/config"
	"github.com/yaklabco/asmlex/pkg/reporter"
)

func newTokensCommand(info BuildInfo) *cobra.Command {
	var cfg config.Config
	flags := &lexFlags{}

	cmd := &cobra.Command{
		Use:   "tokens [paths...]",
		Short: "Print the token stream of each file",
		Long: `Print every token of each file with its span, kind and source text.
Numbers show their value and strings their decoded payload when it differs
from the source. Diagnostics follow each file's tokens.

Examples:
  asmlex tokens boot.asm
  asmlex tokens --recover-encoding legacy/`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := commandContext(cmd)
			applyFlags(cmd, &cfg, flags)

			sess, err := loadSession(ctx, cmd, info, &cfg)
			if err != nil {
				return err
			}
			return sess.lexAndReport(ctx, cmd, info, args, reporter.FormatTokens, flags)
		},
	}

	addLexFlags(cmd, &cfg, flags, false)

	return cmd
}
