package cli

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/yaklabco/asmlex/internal/logging"
	"github.com/yaklabco/asmlex/pkg/config"
	"github.com/yaklabco/asmlex/pkg/fsutil"
)

// configFilePermissions is the file mode for configuration files (world-readable).
const configFilePermissions = 0o644

// initFlags holds the flags for the init command.
type initFlags struct {
	force  bool
	full   bool
	format string
	output string
}

func newInitCommand() *cobra.Command {
	flags := &initFlags{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a new asmlex configuration file",
		Long: `Create a new .asmlex.yml configuration file in the current directory
with sensible defaults.

Examples:
  asmlex init                      Create minimal .asmlex.yml
  asmlex init --full               Create full config with every setting documented
  asmlex init --format json        Create .asmlex.json instead
  asmlex init --output custom.yml  Write to a custom file path`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInit(commandContext(cmd), flags)
		},
	}

	cmd.Flags().BoolVarP(&flags.force, "force", "f", false, "Overwrite existing configuration file")
	cmd.Flags().BoolVar(&flags.full, "full", false, "Generate full template with every setting documented")
	cmd.Flags().StringVar(&flags.format, "format", "yaml", "Output format: yaml or json")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "Output file path (default: .asmlex.yml or .asmlex.json)")

	return cmd
}

func runInit(ctx context.Context, flags *initFlags) error {
	logger := logging.NewInteractive()

	if flags.format != "yaml" && flags.format != "json" {
		return fmt.Errorf("%w: invalid format %q: must be yaml or json", ErrInvalidUsage, flags.format)
	}

	outputPath := flags.output
	if outputPath == "" {
		if flags.format == "json" {
			outputPath = ".asmlex.json"
		} else {
			outputPath = ".asmlex.yml"
		}
	}

	absPath, err := filepath.Abs(outputPath)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	content, err := config.GenerateTemplate(config.TemplateOptions{
		Full:   flags.full,
		Format: flags.format,
	})
	if err != nil {
		return fmt.Errorf("generate template: %w", err)
	}

	if !flags.force {
		if err := fsutil.CreateAtomic(ctx, absPath, content, configFilePermissions); err != nil {
			if errors.Is(err, fsutil.ErrExists) {
				return fmt.Errorf("file %q already exists; use --force to overwrite", outputPath)
			}
			return fmt.Errorf("write file: %w", err)
		}
		logger.Info("created configuration file", logging.FieldPath, outputPath)
	} else {
		written, err := fsutil.WriteAtomicIfChanged(ctx, absPath, content, configFilePermissions)
		if err != nil {
			return fmt.Errorf("write file: %w", err)
		}
		if !written {
			logger.Info("configuration file is already up to date", logging.FieldPath, outputPath)
			return nil
		}
		logger.Info("wrote configuration file", logging.FieldPath, outputPath)
	}

	if flags.full {
		logger.Info("full template documents every setting and lists the diagnostic catalog")
	}
	logger.Info("run 'asmlex diagnostics' to see every diagnostic asmlex reports")

	return nil
}
