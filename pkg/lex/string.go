package lex

import (
	"errors"

	"github.com/yaklabco/asmlex/pkg/codec"
	"github.com/yaklabco/asmlex/pkg/diag"
	"github.com/yaklabco/asmlex/pkg/source"
	"github.com/yaklabco/asmlex/pkg/token"
)

//nolint:gochecknoglobals // Read-only lookup table.
var simpleEscapes = map[rune]byte{
	'\'': '\'',
	'"':  '"',
	'?':  '?',
	'\\': '\\',
	'a':  '\a',
	'b':  '\b',
	'f':  '\f',
	'n':  '\n',
	'r':  '\r',
	't':  '\t',
	'v':  '\v',
}

// str lexes a string literal. An EOL or EOF before the closing quote leaves
// the literal unterminated; the EOL is not part of the token.
func (l *lexer) str(start source.BPosition) error {
	begin := l.cur
	l.cur.advance(1)

	var terminated, broken bool
scan:
	for {
		cp, n, err := l.cur.peek()
		switch {
		case errors.Is(err, codec.ErrEOF):
			break scan
		case err != nil:
			if err := l.invalidRun(diag.InvalidCharactersInStringLiteral); err != nil {
				return err
			}
		case isEOL(cp):
			break scan
		case cp == '"':
			l.cur.advance(n)
			terminated = true
			break scan
		case cp == '\\':
			more, bad, err := l.escape()
			if err != nil {
				return err
			}
			broken = broken || bad
			if !more {
				break scan
			}
		default:
			l.cur.advance(n)
		}
	}

	if !terminated {
		if _, err := l.report(diag.UnterminatedStringLiteral, start, l.cur.mark()); err != nil {
			return err
		}
	}
	if broken {
		return l.emit(token.Unrecognized, start, nil)
	}

	handle, err := l.pool.Intern(l.decode(begin))
	if err != nil {
		return err
	}
	return l.emit(token.String, start, token.StringRef(handle))
}

// escape validates one escape sequence. more is false when the backslash
// ends the literal; broken is true when the literal can no longer be decoded.
func (l *lexer) escape() (bool, bool, error) {
	l.cur.settle()
	escStart := l.cur.mark()
	l.cur.advance(1)

	cp, n, err := l.cur.peek()
	switch {
	case errors.Is(err, codec.ErrEOF), err == nil && isEOL(cp):
		return false, false, nil
	case err != nil:
		// The malformed bytes are reported by the caller.
		return true, false, nil
	}

	if _, ok := simpleEscapes[cp]; ok {
		l.cur.advance(n)
		return true, false, nil
	}

	if cp != 'x' {
		l.cur.advance(n)
		_, err := l.report(diag.UnknownEscapeSequence, escStart, l.cur.mark())
		return true, false, err
	}

	l.cur.advance(n)
	var count int
	for ; count < 2; count++ {
		hex, _, err := l.cur.peek()
		if err != nil || !isHex(hex) {
			break
		}
		l.cur.advance(1)
	}
	if count == 0 {
		_, err := l.report(diag.XUsedWithNoFollowingHexDigits, escStart, l.cur.mark())
		return true, true, err
	}
	return true, false, nil
}

// decode builds the payload of a validated literal starting at begin.
// Malformed codepoints decode to U+FFFD and unknown escapes to the escaped
// character.
func (l *lexer) decode(begin cursor) []byte {
	c := begin
	c.advance(1)

	payload := make([]byte, 0, l.cur.mark().Byte-begin.mark().Byte)
	for !c.at(&l.cur) {
		cp, n, err := c.peek()
		switch {
		case err != nil:
			payload = codec.Append(payload, codec.RuneError)
			c.advance(n)
		case cp == '"':
			c.advance(n)
		case cp == '\\':
			c.advance(n)
			payload = l.unescape(&c, payload)
		default:
			payload = append(payload, c.bytes(n)...)
			c.advance(n)
		}
	}
	return payload
}

func (l *lexer) unescape(c *cursor, payload []byte) []byte {
	if c.at(&l.cur) {
		return payload
	}

	cp, n, err := c.peek()
	switch {
	case err != nil:
		payload = codec.Append(payload, codec.RuneError)
	case cp == 'x':
		c.advance(n)
		var value int
		for i := 0; i < 2 && !c.at(&l.cur); i++ {
			hex, _, err := c.peek()
			if err != nil || !isHex(hex) {
				break
			}
			value = value*16 + digitValue(hex)
			c.advance(1)
		}
		return append(payload, byte(value))
	default:
		if b, ok := simpleEscapes[cp]; ok {
			payload = append(payload, b)
		} else {
			payload = append(payload, c.bytes(n)...)
		}
	}
	c.advance(n)
	return payload
}
