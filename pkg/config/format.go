package config

// FormatDiagnosticName renders a diagnostic identifier in the given format.
// An empty name falls back to the code.
func FormatDiagnosticName(format NameFormat, code, name string) string {
	if name == "" {
		return code
	}

	switch format {
	case NameFormatCode:
		return code
	case NameFormatCombined:
		return code + "/" + name
	case NameFormatName:
		return name
	default:
		return name
	}
}
