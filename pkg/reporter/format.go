package reporter

import (
	"fmt"

	"github.com/yaklabco/asmlex/pkg/config"
)

// Format represents an output format.
type Format string

// Output formats supported by the reporter.
const (
	FormatText    Format = Format(config.FormatText)
	FormatTable   Format = Format(config.FormatTable)
	FormatJSON    Format = Format(config.FormatJSON)
	FormatSARIF   Format = Format(config.FormatSARIF)
	FormatSummary Format = Format(config.FormatSummary)
	FormatTokens  Format = Format(config.FormatTokens)
	FormatDiff    Format = Format(config.FormatDiff)
)

// ParseFormat parses a format string, returning an error for unknown formats.
func ParseFormat(formatStr string) (Format, error) {
	if formatStr == "" {
		return FormatText, nil
	}
	format := Format(formatStr)
	if !format.IsValid() {
		return "", fmt.Errorf("unknown format %q; valid formats: text, table, json, sarif, summary, tokens, diff", formatStr)
	}
	return format, nil
}

// String returns the string representation of the format.
func (f Format) String() string {
	return string(f)
}

// IsValid returns true if the format is a known valid format.
func (f Format) IsValid() bool {
	switch f {
	case FormatText, FormatTable, FormatJSON, FormatSARIF, FormatSummary, FormatTokens, FormatDiff:
		return true
	default:
		return false
	}
}
