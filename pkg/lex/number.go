package lex

import (
	"math"

	"github.com/yaklabco/asmlex/pkg/diag"
	"github.com/yaklabco/asmlex/pkg/source"
	"github.com/yaklabco/asmlex/pkg/token"
)

// number lexes a numeric literal. The first pass validates the literal and
// finds its extent; the value is computed by a second pass over the same
// codepoints. Rejected literals become UNRECOGNIZED tokens with value 0 and
// carry exactly one diagnostic.
func (l *lexer) number(start source.BPosition) error {
	begin := l.cur
	first, _, _ := l.cur.peek()
	l.cur.advance(1)

	if first != '0' {
		return l.digits(start, begin, 10, false)
	}

	next, _, err := l.cur.peek()
	switch {
	case err != nil || !isWord(next):
		return l.emit(token.Number, start, token.Int(0))
	case isDigit(next) || next == '_':
		l.skipWord()
		return l.reject(diag.LeadingZerosAreNotPermitted, start, l.cur.mark(), start)
	}

	l.cur.settle()
	prefixStart := l.cur.mark()
	l.cur.advance(1)

	base := basePrefix(next)
	if base == 0 {
		prefixEnd := l.cur.mark()
		l.skipWord()
		return l.reject(diag.InvalidBasePrefix, prefixStart, prefixEnd, start)
	}
	return l.digits(start, begin, base, true)
}

// digits validates the digit run of a literal in the given base.
func (l *lexer) digits(start source.BPosition, begin cursor, base int, prefixed bool) error {
	if prefixed {
		cp, _, err := l.cur.peek()
		switch {
		case err == nil && cp == '_':
			l.cur.settle()
			sepStart := l.cur.mark()
			l.cur.advance(1)
			sepEnd := l.cur.mark()
			l.skipWord()
			return l.reject(diag.DigitSeparatorCannotAppearHere, sepStart, sepEnd, start)
		case err != nil || !isWord(cp):
			return l.reject(diag.NumberLiteralMustContainAtLeastOneDigit, start, l.cur.mark(), start)
		}
	}

	var (
		invalid      bool
		invalidStart source.BPosition
	)
	for {
		cp, n, err := l.cur.peek()
		if err != nil || !isWord(cp) {
			break
		}
		if !invalid && cp != '_' && digitValue(cp) >= base {
			l.cur.settle()
			invalid, invalidStart = true, l.cur.mark()
		}
		l.cur.advance(n)
	}
	if invalid {
		return l.reject(diag.InvalidDigitForThisBasePrefix, invalidStart, l.cur.mark(), start)
	}

	value, ok := l.evaluate(begin, base, prefixed)
	if !ok {
		return l.reject(diag.NumberConstantIsTooLarge, start, l.cur.mark(), start)
	}
	return l.emit(token.Number, start, token.Int(value))
}

// evaluate accumulates the value of a validated literal, reporting false on
// int32 overflow.
func (l *lexer) evaluate(begin cursor, base int, prefixed bool) (int32, bool) {
	c := begin
	if prefixed {
		c.advance(1)
		c.advance(1)
	}

	var value int32
	radix := int32(base)
	for ; !c.at(&l.cur); c.advance(1) {
		cp, _, _ := c.peek()
		if cp == '_' {
			continue
		}
		d := int32(digitValue(cp))
		if value > (math.MaxInt32-d)/radix {
			return 0, false
		}
		value = value*radix + d
	}
	return value, true
}

// skipWord consumes the rest of an alphanumeric run.
func (l *lexer) skipWord() {
	for {
		cp, n, err := l.cur.peek()
		if err != nil || !isWord(cp) {
			return
		}
		l.cur.advance(n)
	}
}

// reject reports id over [from, to) and emits the literal as UNRECOGNIZED.
func (l *lexer) reject(id diag.ID, from, to, start source.BPosition) error {
	if _, err := l.report(id, from, to); err != nil {
		return err
	}
	return l.emit(token.Unrecognized, start, token.Int(0))
}
