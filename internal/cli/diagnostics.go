package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/yaklabco/asmlex/internal/logging"
	"github.com/yaklabco/asmlex/pkg/config"
	"github.com/yaklabco/asmlex/pkg/diag"
)

type diagnosticsFlags struct {
	nameFormat string
	format     string
}

const formatJSON = "json"

// diagnosticInfo represents a catalog entry in JSON output.
type diagnosticInfo struct {
	Code     string `json:"code"`
	Name     string `json:"name"`
	Message  string `json:"message"`
	Severity string `json:"severity"`
}

func newDiagnosticsCommand() *cobra.Command {
	flags := &diagnosticsFlags{}

	cmd := &cobra.Command{
		Use:     "diagnostics",
		Aliases: []string{"diags"},
		Short:   "List the diagnostics asmlex can report",
		Long: `List every diagnostic kind with its code, name, minimum severity and
message.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			catalog := diag.Catalog()

			if flags.format == formatJSON {
				return outputDiagnosticsJSON(cmd.OutOrStdout(), catalog)
			}
			if flags.format != "text" {
				return fmt.Errorf("%w: invalid format %q: must be text or json", ErrInvalidUsage, flags.format)
			}

			logger := log.NewWithOptions(cmd.OutOrStdout(), log.Options{
				ReportTimestamp: false,
				ReportCaller:    false,
			})
			logger.SetLevel(log.InfoLevel)

			nameFormat := config.NameFormat(flags.nameFormat)
			for _, info := range catalog {
				logger.Info(config.FormatDiagnosticName(nameFormat, info.Code(), info.Name),
					logging.FieldSeverity, info.MinSeverity,
					logging.FieldMessage, info.Message,
				)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&flags.nameFormat, "name-format", string(config.NameFormatCombined),
		"diagnostic identifier format in output: name, code, or combined")
	cmd.Flags().StringVar(&flags.format, "format", "text", "output format: text, json")

	return cmd
}

// outputDiagnosticsJSON writes the catalog as a JSON array.
func outputDiagnosticsJSON(w io.Writer, catalog []*diag.Info) error {
	infos := make([]diagnosticInfo, 0, len(catalog))
	for _, info := range catalog {
		infos = append(infos, diagnosticInfo{
			Code:     info.Code(),
			Name:     info.Name,
			Message:  info.Message,
			Severity: info.MinSeverity.String(),
		})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(infos); err != nil {
		return fmt.Errorf("encoding diagnostics: %w", err)
	}
	return nil
}
