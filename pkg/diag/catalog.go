// Package diag holds the diagnostic catalog and the append-only diagnostic
// list attached to each document.
package diag

import (
	"fmt"
	"strings"
)

// Domain namespaces diagnostic ids.
type Domain uint8

// Known domains.
const (
	DomainASM Domain = 1
)

// String implements fmt.Stringer.
func (d Domain) String() string {
	switch d {
	case DomainASM:
		return "ASM"
	default:
		return fmt.Sprintf("Domain(%d)", uint8(d))
	}
}

// ID identifies a diagnostic kind within its domain.
type ID uint16

// Diagnostic kinds raised while splitting and lexing.
const (
	InvalidEncoding ID = iota + 1
	UnrecognizedToken
	LeadingZerosAreNotPermitted
	InvalidBasePrefix
	DigitSeparatorCannotAppearHere
	NumberLiteralMustContainAtLeastOneDigit
	InvalidDigitForThisBasePrefix
	InvalidCharactersInStringLiteral
	UnterminatedStringLiteral
	UnknownEscapeSequence
	XUsedWithNoFollowingHexDigits
	NumberConstantIsTooLarge
)

// Info is the static description of a diagnostic kind.
type Info struct {
	Domain      Domain
	ID          ID
	MinSeverity Severity

	// Name is the stable kebab-case identifier used in reports.
	Name string

	// Message is the user-facing text.
	Message string
}

// Code returns the short code, e.g. "ASM001".
func (i *Info) Code() string {
	return fmt.Sprintf("%s%03d", i.Domain, uint16(i.ID))
}

// Combined returns "CODE/name".
func (i *Info) Combined() string {
	return i.Code() + "/" + i.Name
}

//nolint:gochecknoglobals // Read-only catalog.
var catalog = []Info{
	{Domain: DomainASM, ID: InvalidEncoding, MinSeverity: SeverityError,
		Name: "invalid-encoding", Message: "invalid byte sequence"},
	{Domain: DomainASM, ID: UnrecognizedToken, MinSeverity: SeverityError,
		Name: "unrecognized-token", Message: "unrecognized token"},
	{Domain: DomainASM, ID: LeadingZerosAreNotPermitted, MinSeverity: SeverityError,
		Name: "leading-zeros", Message: "leading zeros are not permitted"},
	{Domain: DomainASM, ID: InvalidBasePrefix, MinSeverity: SeverityError,
		Name: "invalid-base-prefix", Message: "invalid base prefix"},
	{Domain: DomainASM, ID: DigitSeparatorCannotAppearHere, MinSeverity: SeverityError,
		Name: "misplaced-digit-separator", Message: "digit separator cannot appear here"},
	{Domain: DomainASM, ID: NumberLiteralMustContainAtLeastOneDigit, MinSeverity: SeverityError,
		Name: "missing-digits", Message: "number literal must contain at least one digit"},
	{Domain: DomainASM, ID: InvalidDigitForThisBasePrefix, MinSeverity: SeverityError,
		Name: "invalid-digit", Message: "invalid digit for this base prefix"},
	{Domain: DomainASM, ID: InvalidCharactersInStringLiteral, MinSeverity: SeverityError,
		Name: "invalid-string-characters", Message: "invalid character(s) in string literal"},
	{Domain: DomainASM, ID: UnterminatedStringLiteral, MinSeverity: SeverityWarning,
		Name: "unterminated-string", Message: "unterminated string literal"},
	{Domain: DomainASM, ID: UnknownEscapeSequence, MinSeverity: SeverityWarning,
		Name: "unknown-escape", Message: "unknown escape sequence"},
	{Domain: DomainASM, ID: XUsedWithNoFollowingHexDigits, MinSeverity: SeverityError,
		Name: "empty-hex-escape", Message: `\x used with no following hex digits`},
	{Domain: DomainASM, ID: NumberConstantIsTooLarge, MinSeverity: SeverityError,
		Name: "number-too-large", Message: "number constant is too large"},
}

// Lookup returns the catalog entry for id.
func Lookup(id ID) (*Info, bool) {
	idx := int(id) - 1
	if idx < 0 || idx >= len(catalog) {
		return nil, false
	}
	return &catalog[idx], true
}

// MustLookup is Lookup for ids known at compile time. It panics on an
// unknown id.
func MustLookup(id ID) *Info {
	info, ok := Lookup(id)
	if !ok {
		panic(fmt.Sprintf("diag: unknown id %d", id))
	}
	return info
}

// Catalog returns every catalog entry in id order.
func Catalog() []*Info {
	infos := make([]*Info, len(catalog))
	for i := range catalog {
		infos[i] = &catalog[i]
	}
	return infos
}

// Find resolves a code ("ASM003"), a name ("leading-zeros") or a combined
// identifier, case-insensitively.
func Find(ident string) (*Info, bool) {
	for i := range catalog {
		info := &catalog[i]
		if strings.EqualFold(ident, info.Code()) ||
			strings.EqualFold(ident, info.Name) ||
			strings.EqualFold(ident, info.Combined()) {
			return info, true
		}
	}
	return nil, false
}

// String implements fmt.Stringer.
func (id ID) String() string {
	if info, ok := Lookup(id); ok {
		return info.Name
	}
	return fmt.Sprintf("ID(%d)", uint16(id))
}
