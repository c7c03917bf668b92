package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/yaklabco/asmlex/pkg/diag"
)

// commentWrapWidth is the maximum width for wrapped comments in templates.
const commentWrapWidth = 70

// TemplateOptions controls configuration template generation.
type TemplateOptions struct {
	// Full documents every setting and lists the diagnostic catalog.
	Full bool

	// Format is the output format: "yaml" or "json".
	Format string
}

// GenerateTemplate creates a configuration file template.
func GenerateTemplate(opts TemplateOptions) ([]byte, error) {
	if opts.Format == "json" {
		return templateToJSON()
	}
	if opts.Full {
		return generateFullTemplate(), nil
	}
	return generateMinimalTemplate(), nil
}

func generateMinimalTemplate() []byte {
	var buf bytes.Buffer

	buf.WriteString(DefaultTemplateHeader())
	buf.WriteString(`

# Collapse backslash line continuations before lexing
preprocess: true

# Replace invalid UTF-8 with U+FFFD before lexing
# recover_encoding: false

# File extensions treated as assembly source
# extensions:
#   - ".asm"
#   - ".s"
#   - ".S"
#   - ".inc"

# File patterns to ignore (glob patterns)
# ignore:
#   - "vendor/**"
#   - "build/**"
`)

	return buf.Bytes()
}

func generateFullTemplate() []byte {
	var buf bytes.Buffer

	buf.WriteString(`# asmlex configuration - Full Template
# See: https://github.com/yaklabco/asmlex
#
# Uncomment and modify settings as needed.

# Collapse backslash line continuations before lexing
preprocess: true

# Replace invalid UTF-8 with U+FFFD before lexing; otherwise malformed
# bytes are reported by the lexer
recover_encoding: false

# File extensions treated as assembly source
extensions:
  - ".asm"
  - ".s"
  - ".S"
  - ".inc"

# Also lex files whose content is detected as assembly
detect_language: false

# Bytes one file may allocate while lexing (0 = unlimited)
memory_limit: 0

# Version constraint for the asmlex binary, e.g. ">= 1.0, < 2"
# required_version: ""

# File patterns to ignore (glob patterns)
ignore:
  - "vendor/**"
  - ".git/**"

# Diagnostics reported by the lexer:
`)

	for _, info := range diag.Catalog() {
		fmt.Fprintf(&buf, "#\n#   %s %s (%s)\n", info.Code(), info.Name, info.MinSeverity)
		fmt.Fprintf(&buf, "#     %s\n", wrapComment(info.Message, commentWrapWidth))
	}

	return buf.Bytes()
}

// wrapComment wraps a comment to fit within maxWidth characters.
func wrapComment(text string, maxWidth int) string {
	if len(text) <= maxWidth {
		return text
	}

	var lines []string
	words := strings.Fields(text)
	currentLine := ""

	for _, word := range words {
		switch {
		case currentLine == "":
			currentLine = word
		case len(currentLine)+1+len(word) <= maxWidth:
			currentLine += " " + word
		default:
			lines = append(lines, currentLine)
			currentLine = word
		}
	}
	if currentLine != "" {
		lines = append(lines, currentLine)
	}

	return strings.Join(lines, "\n#     ")
}

// templateToJSON renders the default settings as JSON.
func templateToJSON() ([]byte, error) {
	cfg := map[string]any{
		"preprocess":       true,
		"recover_encoding": false,
		"extensions":       DefaultExtensions(),
		"detect_language":  false,
		"memory_limit":     0,
		"ignore":           []string{"vendor/**", ".git/**"},
	}

	jsonBytes, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal JSON: %w", err)
	}
	return jsonBytes, nil
}

// DefaultTemplateHeader returns the default header for generated configs.
func DefaultTemplateHeader() string {
	return `# asmlex configuration
# See: https://github.com/yaklabco/asmlex`
}
