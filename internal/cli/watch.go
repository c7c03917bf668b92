package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/yaklabco/asmlex/internal/logging"
	"github.com/yaklabco/asmlex/pkg/config"
	"github.com/yaklabco/asmlex/pkg/engine"
	"github.com/yaklabco/asmlex/pkg/reporter"
	"github.com/yaklabco/asmlex/pkg/runner"
	"github.com/yaklabco/asmlex/pkg/watch"
)

// clearScreen moves the cursor home and clears the terminal.
const clearScreen = "\x1b[H\x1b[2J"

type watchFlags struct {
	debounce time.Duration
	noClear  bool
}

func newWatchCommand(info BuildInfo) *cobra.Command {
	var cfg config.Config
	flags := &lexFlags{}
	wflags := &watchFlags{}

	cmd := &cobra.Command{
		Use:   "watch [paths...]",
		Short: "Re-lex files as they change",
		Long: `Lex the given paths once, then watch them and re-lex each file that
changes. Saves that leave a file's content untouched are ignored.
Press Ctrl-C to stop.

Examples:
  asmlex watch
  asmlex watch --format table src/`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch(cmd, args, info, &cfg, flags, wflags)
		},
	}

	addLexFlags(cmd, &cfg, flags, true)
	cmd.Flags().DurationVar(&wflags.debounce, "debounce", watch.DefaultDebounce,
		"quiet period after the last change before re-lexing")
	cmd.Flags().BoolVar(&wflags.noClear, "no-clear", false, "do not clear the terminal between runs")

	return cmd
}

func runWatch(cmd *cobra.Command, args []string, info BuildInfo, cfg *config.Config, flags *lexFlags, wflags *watchFlags) error {
	ctx, stop := signal.NotifyContext(commandContext(cmd), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger := logging.FromContext(ctx)
	applyFlags(cmd, cfg, flags)

	sess, err := loadSession(ctx, cmd, info, cfg)
	if err != nil {
		return err
	}

	format, err := reporter.ParseFormat(string(sess.cfg.Format))
	if err != nil {
		return fmt.Errorf("invalid format: %w", err)
	}

	opts := sess.runOptions(args, flags)
	match, err := runner.Matcher(opts)
	if err != nil {
		return err
	}

	watcher, err := watch.New(watch.Options{Debounce: wflags.debounce, Filter: match})
	if err != nil {
		return err
	}
	defer watcher.Close()

	paths := opts.Paths
	if len(paths) == 0 {
		paths = []string{"."}
	}
	for _, path := range paths {
		if err := watcher.Add(ctx, path); err != nil {
			return err
		}
	}

	lexRunner := runner.New(engine.NewPipeline(engine.NewEngine()))
	out := cmd.OutOrStdout()
	clearBetween := !wflags.noClear && isTerminal(out)

	report := func(result *runner.Result) error {
		if clearBetween {
			fmt.Fprint(out, clearScreen)
		}
		rep, err := sess.newReporter(cmd, info, format, flags)
		if err != nil {
			return err
		}
		_, err = rep.Report(ctx, result)
		return err
	}

	result, err := lexRunner.Run(ctx, opts)
	if err != nil {
		return fmt.Errorf("lex run failed: %w", err)
	}
	if err := report(result); err != nil {
		return fmt.Errorf("report results: %w", err)
	}

	logger.Info("watching for changes", logging.FieldPaths, paths)

	err = watcher.Run(ctx, func(ctx context.Context, changed []string) error {
		present := make([]string, 0, len(changed))
		for _, path := range changed {
			if _, err := os.Stat(path); err != nil {
				logger.Info("file removed", logging.FieldPath, relativePath(path, sess.workDir))
				continue
			}
			present = append(present, path)
		}
		if len(present) == 0 {
			return nil
		}

		logger.Debug("re-lexing", logging.FieldFiles, len(present))
		result, err := lexRunner.RunFiles(ctx, present, opts.Jobs, sess.cfg)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("lex run failed: %w", err)
		}
		if err := report(result); err != nil {
			return fmt.Errorf("report results: %w", err)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("watch: %w", err)
	}

	logger.Debug("watch stopped")
	return nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
