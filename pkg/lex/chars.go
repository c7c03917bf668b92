package lex

import "strings"

const punctuation = `;"(),:+-*/%~^?&|<>=!`

func isDigit(cp rune) bool {
	return cp >= '0' && cp <= '9'
}

func isLetter(cp rune) bool {
	return (cp >= 'a' && cp <= 'z') || (cp >= 'A' && cp <= 'Z')
}

func isHex(cp rune) bool {
	return isDigit(cp) || (cp >= 'a' && cp <= 'f') || (cp >= 'A' && cp <= 'F')
}

// isWord matches the characters of symbols and number literals.
func isWord(cp rune) bool {
	return isDigit(cp) || isLetter(cp) || cp == '_'
}

func isBlank(cp rune) bool {
	return cp == ' ' || cp == '\t'
}

func isEOL(cp rune) bool {
	return cp == '\n' || cp == '\r'
}

// startsToken reports whether cp begins a token other than UNRECOGNIZED.
func startsToken(cp rune) bool {
	return isWord(cp) || strings.ContainsRune(punctuation, cp)
}

// digitValue returns the value of an alphanumeric digit, or 36 for anything
// else.
func digitValue(cp rune) int {
	switch {
	case isDigit(cp):
		return int(cp - '0')
	case cp >= 'a' && cp <= 'z':
		return int(cp-'a') + 10
	case cp >= 'A' && cp <= 'Z':
		return int(cp-'A') + 10
	default:
		return 36
	}
}

// basePrefix maps the letter after a leading zero to its radix, or 0 when
// the letter is not a base prefix.
func basePrefix(cp rune) int {
	switch cp {
	case 'b', 'B', 'y', 'Y':
		return 2
	case 'o', 'O', 'q', 'Q':
		return 8
	case 'd', 'D':
		return 10
	case 'x', 'X', 'h', 'H':
		return 16
	default:
		return 0
	}
}
