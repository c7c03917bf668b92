// Package token defines the token kinds produced by the lexer and the
// lexemes attached to literal tokens.
package token

import (
	"fmt"

	"github.com/yaklabco/asmlex/pkg/source"
	"github.com/yaklabco/asmlex/pkg/strpool"
)

// Kind classifies a token.
type Kind uint8

// Token kinds.
const (
	Unrecognized Kind = iota
	Comment
	Number
	String
	Symbol
	LParen
	RParen
	Comma
	Colon
	Plus
	Minus
	Star
	Slash
	Percent
	Tilde
	Amp
	Pipe
	Caret
	LessLess
	GreaterGreater
	EqualEqual
	ExclaimEqual
	Less
	LessEqual
	Greater
	GreaterEqual
	Question
	Exclaim
	PipePipe
	AmpAmp
	EOL

	numKinds
)

//nolint:gochecknoglobals // Read-only lookup table.
var kindNames = [numKinds]string{
	Unrecognized:   "UNRECOGNIZED",
	Comment:        "COMMENT",
	Number:         "NUMBER",
	String:         "STRING",
	Symbol:         "SYMBOL",
	LParen:         "LPAREN",
	RParen:         "RPAREN",
	Comma:          "COMMA",
	Colon:          "COLON",
	Plus:           "PLUS",
	Minus:          "MINUS",
	Star:           "STAR",
	Slash:          "SLASH",
	Percent:        "PERCENT",
	Tilde:          "TILDE",
	Amp:            "AMP",
	Pipe:           "PIPE",
	Caret:          "CARET",
	LessLess:       "LESSLESS",
	GreaterGreater: "GREATERGREATER",
	EqualEqual:     "EQUALEQUAL",
	ExclaimEqual:   "EXCLAIMEQUAL",
	Less:           "LESS",
	LessEqual:      "LESSEQUAL",
	Greater:        "GREATER",
	GreaterEqual:   "GREATEREQUAL",
	Question:       "QUESTION",
	Exclaim:        "EXCLAIM",
	PipePipe:       "PIPEPIPE",
	AmpAmp:         "AMPAMP",
	EOL:            "EOL",
}

// String implements fmt.Stringer.
func (k Kind) String() string {
	if k < numKinds {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// Kinds returns every token kind in declaration order.
func Kinds() []Kind {
	kinds := make([]Kind, 0, numKinds)
	for k := Kind(0); k < numKinds; k++ {
		kinds = append(kinds, k)
	}
	return kinds
}

// ParseKind is the inverse of Kind.String.
func ParseKind(s string) (Kind, bool) {
	for k, name := range kindNames {
		if name == s {
			return Kind(k), true
		}
	}
	return 0, false
}

// Lexeme is the decoded value of a literal token. It is either an Int or a
// StringRef.
type Lexeme interface {
	isLexeme()
}

// Int is the value of a NUMBER token, or zero for a degraded one.
type Int int32

// StringRef points at the decoded payload of a STRING or SYMBOL token.
type StringRef strpool.Handle

func (Int) isLexeme()       {}
func (StringRef) isLexeme() {}

// Token is one lexed token. End is exclusive; for EOL it is the start of the
// next line.
type Token struct {
	Kind   Kind
	Start  source.BPosition
	End    source.BPosition
	Lexeme Lexeme
}

// Number returns the numeric lexeme.
func (t Token) Number() (int32, bool) {
	n, ok := t.Lexeme.(Int)
	return int32(n), ok
}

// StringHandle returns the pool handle of a string or symbol lexeme.
func (t Token) StringHandle() (strpool.Handle, bool) {
	ref, ok := t.Lexeme.(StringRef)
	return strpool.Handle(ref), ok
}

// Len returns the number of source bytes covered by the token.
func (t Token) Len() int {
	return t.End.Byte - t.Start.Byte
}

// Text resolves the lexeme for display: the number in decimal, the pooled
// payload quoted for strings, raw for symbols. It returns "" when the token
// has no lexeme.
func (t Token) Text(pool *strpool.Pool) string {
	switch lex := t.Lexeme.(type) {
	case Int:
		return fmt.Sprintf("%d", int32(lex))
	case StringRef:
		payload := pool.String(strpool.Handle(lex))
		if t.Kind == String {
			return fmt.Sprintf("%q", payload)
		}
		return payload
	default:
		return ""
	}
}
