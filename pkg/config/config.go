// Package config defines the asmlex configuration model. The types are plain
// data; loading and merging live in internal/configloader.
package config

// OutputFormat selects a reporter.
type OutputFormat string

// Output formats.
const (
	FormatText    OutputFormat = "text"
	FormatTable   OutputFormat = "table"
	FormatJSON    OutputFormat = "json"
	FormatSARIF   OutputFormat = "sarif"
	FormatSummary OutputFormat = "summary"
	FormatTokens  OutputFormat = "tokens"
	FormatDiff    OutputFormat = "diff"
)

// NameFormat controls how diagnostic kinds are identified in output.
type NameFormat string

// Name formats.
const (
	NameFormatName     NameFormat = "name"     // "leading-zeros"
	NameFormatCode     NameFormat = "code"     // "ASM003"
	NameFormatCombined NameFormat = "combined" // "ASM003/leading-zeros"
)

// SummaryOrder controls which table the summary format prints first.
type SummaryOrder string

// Summary orders.
const (
	SummaryOrderDiagnostics SummaryOrder = "diagnostics"
	SummaryOrderFiles       SummaryOrder = "files"
)

// IsValid reports whether s is a known order.
func (s SummaryOrder) IsValid() bool {
	switch s {
	case SummaryOrderDiagnostics, SummaryOrderFiles:
		return true
	default:
		return false
	}
}

// DefaultExtensions are the file extensions lexed when none are configured.
func DefaultExtensions() []string {
	return []string{".asm", ".s", ".S", ".inc"}
}

// Config is the root configuration.
type Config struct {
	// Preprocess collapses backslash line continuations before lexing.
	Preprocess *bool `yaml:"preprocess,omitempty"`

	// RecoverEncoding replaces invalid UTF-8 with U+FFFD before splitting.
	RecoverEncoding *bool `yaml:"recover_encoding,omitempty"`

	// Extensions lists the file extensions considered source files.
	Extensions []string `yaml:"extensions,omitempty"`

	// Ignore contains glob patterns for files to skip.
	Ignore []string `yaml:"ignore,omitempty"`

	// DetectLanguage also accepts files that content detection classifies as
	// assembly, whatever their extension.
	DetectLanguage bool `yaml:"detect_language,omitempty"`

	// MemoryLimit caps the bytes one file may allocate while lexing.
	// Zero means unlimited.
	MemoryLimit int64 `yaml:"memory_limit,omitempty"`

	// RequiredVersion is a semver constraint the running binary must satisfy.
	RequiredVersion string `yaml:"required_version,omitempty"`

	// CLI-only settings.

	// Format selects the reporter.
	Format OutputFormat `yaml:"-"`

	// NameFormat controls how diagnostic kinds are printed.
	NameFormat NameFormat `yaml:"-"`

	// Jobs is the number of parallel workers; zero means one per CPU.
	Jobs int `yaml:"-"`

	// Strict makes warnings fail the run.
	Strict bool `yaml:"-"`
}

// NewConfig returns a Config with defaults applied.
func NewConfig() *Config {
	preprocess := true
	recoverEncoding := false
	return &Config{
		Preprocess:      &preprocess,
		RecoverEncoding: &recoverEncoding,
		Extensions:      DefaultExtensions(),
		Format:          FormatText,
		NameFormat:      NameFormatName,
	}
}

// PreprocessEnabled reports the effective preprocess setting.
func (c *Config) PreprocessEnabled() bool {
	return c == nil || c.Preprocess == nil || *c.Preprocess
}

// RecoverEncodingEnabled reports the effective recover_encoding setting.
func (c *Config) RecoverEncodingEnabled() bool {
	return c != nil && c.RecoverEncoding != nil && *c.RecoverEncoding
}

// SourceExtensions returns the configured extensions or the defaults.
func (c *Config) SourceExtensions() []string {
	if c == nil || len(c.Extensions) == 0 {
		return DefaultExtensions()
	}
	return c.Extensions
}
