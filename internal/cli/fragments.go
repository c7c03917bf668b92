package cli

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/yaklabco/asmlex/internal/ui/pretty"
	"github.com/yaklabco/asmlex/pkg/codec"
	"github.com/yaklabco/asmlex/pkg/config"
	"github.com/yaklabco/asmlex/pkg/engine"
	"github.com/yaklabco/asmlex/pkg/runner"
)

func newFragmentsCommand(info BuildInfo) *cobra.Command {
	var cfg config.Config
	flags := &lexFlags{}

	cmd := &cobra.Command{
		Use:   "fragments [paths...]",
		Short: "Print the fragment list of each file",
		Long: `Print the fragments each file is split into before lexing, with their
byte ranges and starting positions. Line continuations appear as gaps
between fragments; recovered encoding errors appear as replaced fragments.
The first invalid UTF-8 sequence of each file is reported as well.

Examples:
  asmlex fragments macros.inc
  asmlex fragments --no-preprocess macros.inc`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := commandContext(cmd)
			applyFlags(cmd, &cfg, flags)

			sess, err := loadSession(ctx, cmd, info, &cfg)
			if err != nil {
				return err
			}

			result, err := runner.New(engine.NewPipeline(engine.NewEngine())).Run(ctx, sess.runOptions(args, flags))
			if err != nil {
				return fmt.Errorf("lex run failed: %w", err)
			}

			colorMode, _ := cmd.Flags().GetString("color")
			out := cmd.OutOrStdout()
			styles := pretty.NewStyles(pretty.IsColorEnabled(colorMode, out))

			for _, file := range result.Files {
				writeFragments(out, styles, relativePath(file.Path, sess.workDir), file)
			}
			fmt.Fprint(out, styles.FormatSummaryOneLine(result.Stats))

			return ExitErrorFromResult(result, sess.cfg.Strict)
		},
	}

	addLexFlags(cmd, &cfg, flags, false)

	return cmd
}

func writeFragments(out io.Writer, styles *pretty.Styles, path string, file runner.FileOutcome) {
	if file.Error != nil {
		fmt.Fprintf(out, "%s: %s\n", styles.FilePath.Render(path), styles.Error.Render(file.Error.Error()))
		return
	}
	if file.Result == nil || file.Result.FileResult == nil {
		return
	}

	doc := file.Result.Document
	frags := doc.Fragments()
	fmt.Fprintf(out, "%s %s\n",
		styles.FilePath.Render(path),
		styles.Dim.Render(fmt.Sprintf("(%d fragments, %d bytes)", len(frags), len(doc.Bytes()))),
	)

	if offset, code := codec.ValidBuffer(doc.Bytes()); offset >= 0 {
		fmt.Fprintf(out, "  %s\n", styles.Warning.Render(fmt.Sprintf("invalid UTF-8 at byte %d: %s", offset, code)))
	}

	for i, frag := range frags {
		kind := "source"
		if frag.Replaced() {
			kind = "replaced"
		}
		fmt.Fprintf(out, "  %4d  %-13s %-8s %s\n",
			i,
			fmt.Sprintf("[%d,%d)", frag.Offset, frag.End()),
			styles.Location.Render(frag.Pos.String()),
			styles.TokenText.Render(kind+" "+strconv.Quote(string(frag.Data))),
		)
	}

	for _, span := range doc.Elided() {
		fmt.Fprintf(out, "  %s\n", styles.Dim.Render(fmt.Sprintf("elided [%d,%d)", span.Start, span.End)))
	}
	fmt.Fprintln(out)
}
