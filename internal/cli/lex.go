package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/yaklabco/asmlex/internal/configloader"
	"github.com/yaklabco/asmlex/internal/logging"
	"github.com/yaklabco/asmlex/pkg/analysis"
	"github.com/yaklabco/asmlex/pkg/config"
	"github.com/yaklabco/asmlex/pkg/diag"
	"github.com/yaklabco/asmlex/pkg/engine"
	"github.com/yaklabco/asmlex/pkg/reporter"
	"github.com/yaklabco/asmlex/pkg/runner"
)

type lexFlags struct {
	format          string
	nameFormat      string
	summaryOrder    string
	sortBy          string
	minSeverity     string
	ignore          []string
	include         []string
	extensions      []string
	noPreprocess    bool
	recoverEncoding bool
	noContext       bool
	compact         bool
	perFile         bool
	withTokens      bool
	followSymlinks  bool
}

func newLexCommand(info BuildInfo) *cobra.Command {
	var cfg config.Config
	flags := &lexFlags{}

	cmd := &cobra.Command{
		Use:     "lex [paths...]",
		Short:   "Lex assembly sources and report diagnostics",
		Long:    lexLongDescription,
		Example: lexExamples,
		Args:    cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLex(cmd, args, info, &cfg, flags)
		},
	}

	addLexFlags(cmd, &cfg, flags, true)

	return cmd
}

const lexLongDescription = `Lex assembly sources and report every diagnostic.

By default, lexes all .asm, .s, .S and .inc files in the current directory
and subdirectories. Specify paths to lex specific files or directories.`

const lexExamples = `  asmlex lex                        # Lex the current directory
  asmlex lex src/                   # Lex the src directory
  asmlex lex boot.asm               # Lex a single file
  asmlex lex --format json          # Output as JSON for CI
  asmlex lex --format diff          # Show how continuations were collapsed
  asmlex lex --recover-encoding     # Replace invalid UTF-8 before lexing
  asmlex lex --strict               # Fail on warnings`

func addLexFlags(cmd *cobra.Command, cfg *config.Config, flags *lexFlags, withFormat bool) {
	if withFormat {
		cmd.Flags().StringVar(&flags.format, "format", "",
			"output format: text, table, json, sarif, summary, tokens, diff")
		cmd.Flags().BoolVar(&flags.withTokens, "tokens", false, "include the token stream in JSON output")
		cmd.Flags().BoolVar(&flags.perFile, "per-file", false, "output a separate table for each file (table format)")
		cmd.Flags().StringVar(&flags.summaryOrder, "summary-order", string(config.SummaryOrderDiagnostics),
			"order of tables in summary output: diagnostics, files")
		cmd.Flags().StringVar(&flags.sortBy, "sort", string(analysis.SortByCount),
			"sort summary tables by: count, alpha, severity")
		cmd.Flags().StringVar(&flags.minSeverity, "min-severity", "",
			"leave diagnostics below this severity out of the summary: note, warning, error")
	}
	cmd.Flags().IntVar(&cfg.Jobs, "jobs", 0, "number of parallel workers (0 = auto)")
	cmd.Flags().BoolVar(&cfg.Strict, "strict", false, "treat warnings as errors for exit code")
	cmd.Flags().StringVar(&flags.nameFormat, "name-format", "",
		"diagnostic identifier format in output: name, code, or combined")
	cmd.Flags().StringSliceVar(&flags.ignore, "ignore", nil, "glob patterns to ignore")
	cmd.Flags().StringSliceVar(&flags.include, "include", nil, "only lex files matching these glob patterns")
	cmd.Flags().StringSliceVar(&flags.extensions, "extensions", nil, "source file extensions (default .asm,.s,.S,.inc)")
	cmd.Flags().BoolVar(&cfg.DetectLanguage, "detect-language", false,
		"also lex files whose content is detected as assembly")
	cmd.Flags().BoolVar(&flags.followSymlinks, "follow-symlinks", false, "descend into symlinked directories")
	cmd.Flags().BoolVar(&flags.noPreprocess, "no-preprocess", false, "do not collapse backslash line continuations")
	cmd.Flags().BoolVar(&flags.recoverEncoding, "recover-encoding", false,
		"replace invalid UTF-8 with U+FFFD before lexing")
	cmd.Flags().Int64Var(&cfg.MemoryLimit, "memory-limit", 0, "per-file lexing memory limit in bytes (0 = unlimited)")
	cmd.Flags().BoolVar(&flags.noContext, "no-context", false, "hide source line context in output")
	cmd.Flags().BoolVar(&flags.compact, "compact", false, "use compact output format")
}

// applyFlags copies explicitly set flags into the CLI layer of the config.
func applyFlags(cmd *cobra.Command, cfg *config.Config, flags *lexFlags) {
	cfg.Format = config.OutputFormat(flags.format)
	cfg.NameFormat = config.NameFormat(flags.nameFormat)
	cfg.Ignore = flags.ignore
	cfg.Extensions = flags.extensions

	if cmd.Flags().Changed("no-preprocess") {
		preprocess := !flags.noPreprocess
		cfg.Preprocess = &preprocess
	}
	if cmd.Flags().Changed("recover-encoding") {
		cfg.RecoverEncoding = &flags.recoverEncoding
	}
}

// session is a resolved configuration plus the directory it was resolved in.
type session struct {
	cfg     *config.Config
	workDir string
}

// loadSession resolves the configuration for a command and enforces
// required_version.
func loadSession(ctx context.Context, cmd *cobra.Command, info BuildInfo, cliCfg *config.Config) (*session, error) {
	logger := logging.FromContext(ctx)

	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, fmt.Errorf("get config flag: %w", err)
	}

	workDir, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("get working directory: %w", err)
	}

	loadResult, err := configloader.Load(ctx, configloader.LoadOptions{
		WorkingDir:   workDir,
		ExplicitPath: configPath,
		CLIConfig:    cliCfg,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfig, err)
	}

	for _, warning := range loadResult.Warnings {
		logger.Warn(warning)
	}
	if len(loadResult.LoadedFrom) > 0 {
		logger.Debug("loaded configuration from", logging.FieldFiles, loadResult.LoadedFrom)
	}

	cfg := loadResult.Config
	if err := configloader.CheckVersion(cfg.RequiredVersion, info.Version); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfig, err)
	}

	logger.Debug("configuration loaded",
		logging.FieldPreprocess, cfg.PreprocessEnabled(),
		logging.FieldRecoverEncoding, cfg.RecoverEncodingEnabled(),
		logging.FieldMemoryLimit, cfg.MemoryLimit,
		logging.FieldJobs, cfg.Jobs,
	)

	return &session{cfg: cfg, workDir: workDir}, nil
}

// runOptions builds runner options for args.
func (s *session) runOptions(args []string, flags *lexFlags) runner.Options {
	opts := runner.OptionsFromConfig(s.cfg, args)
	opts.WorkingDir = s.workDir
	opts.IncludeGlobs = flags.include
	opts.FollowSymlinks = flags.followSymlinks
	return opts
}

// newReporter builds the reporter for format.
func (s *session) newReporter(cmd *cobra.Command, info BuildInfo, format reporter.Format, flags *lexFlags) (reporter.Reporter, error) {
	colorMode, err := cmd.Flags().GetString("color")
	if err != nil {
		colorMode = "auto"
	}

	sortBy, err := analysis.ParseSortField(flags.sortBy)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidUsage, err)
	}
	minSeverity := diag.SeverityNote
	if flags.minSeverity != "" {
		if minSeverity, err = diag.ParseSeverity(flags.minSeverity); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidUsage, err)
		}
	}

	rep, err := reporter.New(reporter.Options{
		Writer:        cmd.OutOrStdout(),
		ErrorWriter:   cmd.ErrOrStderr(),
		Format:        format,
		Color:         colorMode,
		ShowContext:   !flags.noContext,
		ShowSummary:   true,
		GroupByFile:   true,
		Compact:       flags.compact,
		PerFile:       flags.perFile,
		IncludeTokens: flags.withTokens,
		NameFormat:    s.cfg.NameFormat,
		SummaryOrder:  config.SummaryOrder(flags.summaryOrder),
		SortBy:        sortBy,
		MinSeverity:   minSeverity,
		WorkingDir:    s.workDir,
		ToolVersion:   info.Version,
	})
	if err != nil {
		return nil, fmt.Errorf("create reporter: %w", err)
	}
	return rep, nil
}

func commandContext(cmd *cobra.Command) context.Context {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return logging.WithLogger(ctx, logging.Default())
}

func runLex(cmd *cobra.Command, args []string, info BuildInfo, cfg *config.Config, flags *lexFlags) error {
	ctx := commandContext(cmd)
	applyFlags(cmd, cfg, flags)

	sess, err := loadSession(ctx, cmd, info, cfg)
	if err != nil {
		return err
	}

	format, err := reporter.ParseFormat(string(sess.cfg.Format))
	if err != nil {
		return fmt.Errorf("invalid format: %w", err)
	}

	return sess.lexAndReport(ctx, cmd, info, args, format, flags)
}

// lexAndReport runs one lex pass and reports it, returning the exit signal.
func (s *session) lexAndReport(
	ctx context.Context,
	cmd *cobra.Command,
	info BuildInfo,
	args []string,
	format reporter.Format,
	flags *lexFlags,
) error {
	logger := logging.FromContext(ctx)
	opts := s.runOptions(args, flags)

	logger.Debug("starting lex run",
		logging.FieldPaths, opts.Paths,
		logging.FieldWorkingDir, opts.WorkingDir,
		logging.FieldJobs, opts.Jobs,
	)

	started := time.Now()
	result, err := runner.New(engine.NewPipeline(engine.NewEngine())).Run(ctx, opts)
	if err != nil {
		return errors.Join(errors.New("lex run failed"), err)
	}
	logger.Debug("lex run finished", logging.FieldDuration, time.Since(started))

	rep, err := s.newReporter(cmd, info, format, flags)
	if err != nil {
		return err
	}

	if _, err := rep.Report(ctx, result); err != nil {
		logger.Error("report failed", logging.FieldError, err)
		return fmt.Errorf("report results: %w", err)
	}

	return ExitErrorFromResult(result, s.cfg.Strict)
}

// relativePath shortens path for display when it lies under dir.
func relativePath(path, dir string) string {
	if dir == "" {
		return path
	}
	rel, err := filepath.Rel(dir, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return path
	}
	return rel
}
