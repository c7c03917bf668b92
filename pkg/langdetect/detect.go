// Package langdetect decides whether a file holds assembly source. It uses
// go-enry's extension, shebang and classifier strategies plus a few
// assembly-specific line patterns.
package langdetect

import (
	"bytes"
	"strings"

	"github.com/go-enry/go-enry/v2"
)

// Normalized language names.
const (
	LangAssembly = "assembly"
	LangBinary   = "binary"
	LangText     = "text"
	langBash     = "bash"
)

// minPatternLines is how many assembly-looking lines the pattern strategy
// needs before it answers.
const minPatternLines = 2

// assemblyFamilies are the linguist names that all count as assembly.
//
//nolint:gochecknoglobals // Read-only lookup table.
var assemblyFamilies = map[string]bool{
	"Assembly":              true,
	"Unix Assembly":         true,
	"Motorola 68K Assembly": true,
}

// defaultCandidates seed the classifier when the extension says nothing.
//
//nolint:gochecknoglobals // Read-only lookup table.
var defaultCandidates = []string{
	"Assembly", "Unix Assembly", "Motorola 68K Assembly",
	"C", "C++", "Shell", "Python", "Go", "Makefile", "Text",
}

// Detect returns the normalized language of a file. path may be empty when
// only content is known. Returns "text" when no strategy is confident.
func Detect(path string, content []byte) string {
	if len(content) == 0 {
		return LangText
	}
	if enry.IsBinary(content) {
		return LangBinary
	}

	if lang, safe := enry.GetLanguageByShebang(content); safe {
		return normalize(lang)
	}

	var candidates []string
	if path != "" {
		candidates = enry.GetLanguagesByExtension(path, content, nil)
		switch {
		case len(candidates) == 1:
			return normalize(candidates[0])
		case len(candidates) > 1 && allAssembly(candidates):
			return LangAssembly
		}
	}

	if looksLikeAssembly(content) {
		return LangAssembly
	}

	if len(candidates) == 0 {
		candidates = defaultCandidates
	}
	if lang, safe := enry.GetLanguageByClassifier(content, candidates); safe && lang != "" {
		return normalize(lang)
	}

	return LangText
}

// IsAssembly reports whether Detect classifies the file as assembly.
func IsAssembly(path string, content []byte) bool {
	return Detect(path, content) == LangAssembly
}

func allAssembly(langs []string) bool {
	for _, lang := range langs {
		if !assemblyFamilies[lang] {
			return false
		}
	}
	return true
}

// looksLikeAssembly counts lines shaped like directives, section headers or
// labelled instructions. Any line that looks like C or a script vetoes it.
func looksLikeAssembly(content []byte) bool {
	var hits int
	for _, raw := range bytes.Split(content, []byte("\n")) {
		line := strings.TrimSpace(string(raw))
		if line == "" || line[0] == ';' || line[0] == '#' {
			continue
		}

		switch {
		case strings.HasSuffix(line, "{") || strings.HasSuffix(line, "};") || strings.HasPrefix(line, "import "):
			return false
		case isDirective(line), isSection(line), isLabel(line):
			hits++
		}
	}
	return hits >= minPatternLines
}

func isDirective(line string) bool {
	if len(line) < 2 || line[0] != '.' {
		return false
	}
	for _, directive := range []string{".text", ".data", ".bss", ".globl", ".global", ".section", ".align", ".byte", ".word", ".long", ".ascii", ".asciz", ".equ", ".type", ".size"} {
		if line == directive || strings.HasPrefix(line, directive+" ") || strings.HasPrefix(line, directive+"\t") {
			return true
		}
	}
	return false
}

func isSection(line string) bool {
	lower := strings.ToLower(line)
	return strings.HasPrefix(lower, "section .") || strings.HasPrefix(lower, "segment ") ||
		strings.HasPrefix(lower, "global ") || strings.HasPrefix(lower, "extern ")
}

func isLabel(line string) bool {
	name, _, ok := strings.Cut(line, ":")
	if !ok || name == "" {
		return false
	}
	for i, r := range name {
		word := r == '_' || r == '.' || r == '$' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
		if !word && (i == 0 || r < '0' || r > '9') {
			return false
		}
	}
	return true
}

// normalize converts go-enry language names to lowercase identifiers.
func normalize(lang string) string {
	switch {
	case assemblyFamilies[lang]:
		return LangAssembly
	case lang == "Shell":
		return langBash
	default:
		return strings.ToLower(lang)
	}
}
