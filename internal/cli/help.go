package cli

import (
	"fmt"
	"io"
	"strings"
	"text/template"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/yaklabco/asmlex/internal/ui/pretty"
)

// HelpStyles are the help-page roles, drawn from the shared output palette
// so help and reports look alike.
type HelpStyles struct {
	Command    lipgloss.Style
	Heading    lipgloss.Style
	Subcommand lipgloss.Style
	Flag       lipgloss.Style
	Comment    lipgloss.Style
	Dim        lipgloss.Style
}

// NewHelpStyles derives help styles from the pretty palette.
func NewHelpStyles(colorEnabled bool) *HelpStyles {
	styles := pretty.NewStyles(colorEnabled)
	return &HelpStyles{
		Command:    styles.FilePath,
		Heading:    styles.SummaryTitle,
		Subcommand: styles.Code,
		Flag:       styles.Location,
		Comment:    styles.Dim,
		Dim:        styles.Dim,
	}
}

// HelpFormatter renders Cobra help and usage pages with HelpStyles.
type HelpFormatter struct {
	styles *HelpStyles
}

// NewHelpFormatter creates a help formatter for the given color mode.
func NewHelpFormatter(colorMode string, writer io.Writer) *HelpFormatter {
	return &HelpFormatter{styles: NewHelpStyles(pretty.IsColorEnabled(colorMode, writer))}
}

const usageTemplate = `{{ heading "Usage:" }}
{{- if .Runnable}}
  {{ command .UseLine }}{{end}}
{{- if .HasAvailableSubCommands}}
  {{ command .CommandPath }} [command]{{end}}
{{- if gt (len .Aliases) 0}}

{{ heading "Aliases:" }}
  {{ join .Aliases ", " }}{{end}}
{{- if .HasExample}}

{{ heading "Examples:" }}
{{ examples .Example }}{{end}}
{{- if .HasAvailableSubCommands}}

{{ heading "Commands:" }}{{range .Commands}}{{if (or .IsAvailableCommand (eq .Name "help"))}}
  {{ subcommand (pad .Name .NamePadding) }} {{ .Short }}{{end}}{{end}}{{end}}
{{- if .HasAvailableLocalFlags}}

{{ heading "Flags:" }}
{{ flags .LocalFlags.FlagUsages }}{{end}}
{{- if .HasAvailableInheritedFlags}}

{{ heading "Global Flags:" }}
{{ flags .InheritedFlags.FlagUsages }}{{end}}
{{- if .HasAvailableSubCommands}}

Use "{{ command (print .CommandPath " [command] --help") }}" for more information about a command.{{end}}
`

const helpTemplate = `{{with (or .Long .Short)}}{{ trim . }}

{{end}}{{ usage . }}`

func (h *HelpFormatter) funcs() template.FuncMap {
	return template.FuncMap{
		"heading":    h.styles.Heading.Render,
		"command":    h.styles.Command.Render,
		"subcommand": h.styles.Subcommand.Render,
		"examples":   h.examples,
		"flags":      h.flags,
		"join":       strings.Join,
		"pad":        rpad,
		"trim":       trimTrailingWhitespaces,
	}
}

// examples dims the "# comment" tail of each example line.
func (h *HelpFormatter) examples(text string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if idx := strings.Index(line, "#"); idx > 0 {
			lines[i] = line[:idx] + h.styles.Comment.Render(line[idx:])
		}
	}
	return strings.Join(lines, "\n")
}

// flags styles pflag usage text: flag names in the flag color, value type
// placeholders dimmed, descriptions left alone.
func (h *HelpFormatter) flags(usages string) string {
	lines := strings.Split(strings.TrimSuffix(usages, "\n"), "\n")
	for i, line := range lines {
		lines[i] = h.flagLine(line)
	}
	return strings.Join(lines, "\n")
}

func (h *HelpFormatter) flagLine(line string) string {
	body := strings.TrimLeft(line, " ")
	indent := line[:len(line)-len(body)]

	// pflag separates the flag column from the description with 2+ spaces.
	idx := strings.Index(body, "  ")
	if idx < 0 {
		return line
	}
	head, desc := body[:idx], body[idx:]

	fields := strings.Fields(head)
	for i, field := range fields {
		if strings.HasPrefix(field, "-") {
			name := strings.TrimSuffix(field, ",")
			fields[i] = h.styles.Flag.Render(name) + field[len(name):]
		} else {
			fields[i] = h.styles.Dim.Render(field)
		}
	}
	return indent + strings.Join(fields, " ") + desc
}

// ApplyToCommand installs the styled templates on cmd; subcommands inherit
// them.
func (h *HelpFormatter) ApplyToCommand(cmd *cobra.Command) {
	funcs := h.funcs()

	usage := template.Must(template.New("usage").Funcs(funcs).Parse(usageTemplate))
	render := func(command *cobra.Command) error {
		if err := usage.Execute(command.OutOrStdout(), command); err != nil {
			return fmt.Errorf("render usage: %w", err)
		}
		return nil
	}

	funcs["usage"] = func(command *cobra.Command) (string, error) {
		var b strings.Builder
		if err := usage.Execute(&b, command); err != nil {
			return "", fmt.Errorf("render usage: %w", err)
		}
		return b.String(), nil
	}
	help := template.Must(template.New("help").Funcs(funcs).Parse(helpTemplate))

	cmd.SetUsageFunc(render)
	cmd.SetHelpFunc(func(command *cobra.Command, _ []string) {
		if err := help.Execute(command.OutOrStdout(), command); err != nil {
			command.PrintErrln(err)
		}
	})
}

// rpad adds padding to the right of a string.
func rpad(str string, padding int) string {
	if len(str) >= padding {
		return str
	}
	return str + strings.Repeat(" ", padding-len(str))
}

// trimTrailingWhitespaces removes trailing whitespace from lines.
func trimTrailingWhitespaces(s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}
	return strings.Join(lines, "\n")
}
