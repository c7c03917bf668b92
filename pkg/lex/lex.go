// Package lex turns a split document into tokens.
//
// The lexer never stops on malformed input. Every problem is recorded as a
// diagnostic on the document and scanning resumes after the offending text.
// The only errors it returns are resource failures.
package lex

import (
	"errors"
	"fmt"

	"github.com/yaklabco/asmlex/pkg/codec"
	"github.com/yaklabco/asmlex/pkg/diag"
	"github.com/yaklabco/asmlex/pkg/preproc"
	"github.com/yaklabco/asmlex/pkg/source"
	"github.com/yaklabco/asmlex/pkg/strpool"
	"github.com/yaklabco/asmlex/pkg/token"
)

// Lex tokenizes doc, interning string and symbol payloads in pool. A document
// that has not been split yet is split with the preprocessor enabled. Lexing
// a document twice is a no-op.
func Lex(doc *preproc.Document, pool *strpool.Pool) error {
	if doc.Lexed() {
		return nil
	}
	if err := doc.SplitLines(true); err != nil {
		return fmt.Errorf("lex: %w", err)
	}

	l := lexer{doc: doc, pool: pool, cur: newCursor(doc.Fragments())}
	for {
		more, err := l.next()
		if err != nil {
			return fmt.Errorf("lex: %w", err)
		}
		if !more {
			break
		}
	}

	doc.MarkLexed()
	return nil
}

// LexHandle lexes the document h of pp using the context's pool.
func LexHandle(pp *preproc.PreProc, h preproc.Handle) error {
	doc, err := pp.Document(h)
	if err != nil {
		return err
	}
	return Lex(doc, pp.Pool())
}

type lexer struct {
	doc  *preproc.Document
	pool *strpool.Pool
	cur  cursor
}

//nolint:gochecknoglobals // Read-only lookup table.
var singles = map[rune]token.Kind{
	'(': token.LParen,
	')': token.RParen,
	',': token.Comma,
	':': token.Colon,
	'+': token.Plus,
	'-': token.Minus,
	'*': token.Star,
	'/': token.Slash,
	'%': token.Percent,
	'~': token.Tilde,
	'^': token.Caret,
	'?': token.Question,
}

// next lexes one token. It reports false once the input is exhausted.
func (l *lexer) next() (bool, error) {
	for {
		cp, n, err := l.cur.peek()
		if err != nil || !isBlank(cp) {
			break
		}
		l.cur.advance(n)
	}

	cp, n, err := l.cur.peek()
	if errors.Is(err, codec.ErrEOF) {
		return false, nil
	}

	l.cur.settle()
	start := l.cur.mark()

	if err != nil {
		return true, l.unrecognized(start)
	}

	if kind, ok := singles[cp]; ok {
		l.cur.advance(n)
		return true, l.emit(kind, start, nil)
	}

	switch {
	case isEOL(cp):
		if l.cur.crlf() {
			n = 2
		}
		l.cur.newline(n)
		return true, l.emit(token.EOL, start, nil)
	case cp == ';':
		return true, l.comment(start)
	case cp == '"':
		return true, l.str(start)
	case isDigit(cp):
		return true, l.number(start)
	case isLetter(cp) || cp == '_':
		return true, l.symbol(start)
	case cp == '&':
		return true, l.operator(start, token.Amp, map[rune]token.Kind{'&': token.AmpAmp})
	case cp == '|':
		return true, l.operator(start, token.Pipe, map[rune]token.Kind{'|': token.PipePipe})
	case cp == '<':
		return true, l.operator(start, token.Less, map[rune]token.Kind{'<': token.LessLess, '=': token.LessEqual})
	case cp == '>':
		return true, l.operator(start, token.Greater,
			map[rune]token.Kind{'>': token.GreaterGreater, '=': token.GreaterEqual})
	case cp == '!':
		return true, l.operator(start, token.Exclaim, map[rune]token.Kind{'=': token.ExclaimEqual})
	case cp == '=':
		if second, _, err := l.lookahead(); err == nil && second == '=' {
			l.cur.advance(1)
			l.cur.advance(1)
			return true, l.emit(token.EqualEqual, start, nil)
		}
		return true, l.unrecognized(start)
	default:
		return true, l.unrecognized(start)
	}
}

// lookahead peeks at the codepoint after the next one.
func (l *lexer) lookahead() (rune, int, error) {
	ahead := l.cur
	_, n, err := ahead.peek()
	if err != nil {
		return 0, 0, err
	}
	ahead.advance(n)
	return ahead.peek()
}

// operator lexes a one-character operator that may be extended by a second
// character.
func (l *lexer) operator(start source.BPosition, single token.Kind, doubles map[rune]token.Kind) error {
	l.cur.advance(1)
	if cp, _, err := l.cur.peek(); err == nil {
		if kind, ok := doubles[cp]; ok {
			l.cur.advance(1)
			return l.emit(kind, start, nil)
		}
	}
	return l.emit(single, start, nil)
}

func (l *lexer) emit(kind token.Kind, start source.BPosition, lexeme token.Lexeme) error {
	return l.doc.PushToken(token.Token{Kind: kind, Start: start, End: l.cur.mark(), Lexeme: lexeme})
}

func (l *lexer) report(id diag.ID, start, end source.BPosition) (int, error) {
	return l.doc.PushDiagnostic(diag.New(id, start, end))
}

// invalidRun consumes consecutive malformed codepoints and reports them as
// one diagnostic of kind id.
func (l *lexer) invalidRun(id diag.ID) error {
	l.cur.settle()
	start := l.cur.mark()
	for {
		_, n, err := l.cur.peek()
		if !errors.Is(err, codec.ErrInvalidEncoding) {
			break
		}
		l.cur.advance(n)
	}
	_, err := l.report(id, start, l.cur.mark())
	return err
}

// unrecognized absorbs text up to the next blank, EOL, token start or EOF.
// The first codepoint is always consumed.
func (l *lexer) unrecognized(start source.BPosition) error {
	idx, err := l.report(diag.UnrecognizedToken, start, start)
	if err != nil {
		return err
	}

	for first := true; ; first = false {
		cp, n, err := l.cur.peek()
		if errors.Is(err, codec.ErrEOF) {
			break
		}
		if err != nil {
			if err := l.invalidRun(diag.InvalidEncoding); err != nil {
				return err
			}
			continue
		}
		if !first && (isBlank(cp) || isEOL(cp) || startsToken(cp)) {
			break
		}
		l.cur.advance(n)
	}

	l.doc.SetDiagnosticEnd(idx, l.cur.mark())
	return l.emit(token.Unrecognized, start, nil)
}

func (l *lexer) comment(start source.BPosition) error {
	l.cur.advance(1)
	for {
		cp, n, err := l.cur.peek()
		if errors.Is(err, codec.ErrEOF) {
			break
		}
		if err != nil {
			if err := l.invalidRun(diag.InvalidEncoding); err != nil {
				return err
			}
			continue
		}
		if isEOL(cp) {
			break
		}
		l.cur.advance(n)
	}
	return l.emit(token.Comment, start, nil)
}

func (l *lexer) symbol(start source.BPosition) error {
	begin := l.cur
	for {
		cp, n, err := l.cur.peek()
		if err != nil || !isWord(cp) {
			break
		}
		l.cur.advance(n)
	}

	payload := make([]byte, 0, l.cur.mark().Byte-start.Byte)
	for c := begin; !c.at(&l.cur); c.advance(1) {
		payload = append(payload, c.bytes(1)...)
	}

	handle, err := l.pool.Intern(payload)
	if err != nil {
		return err
	}
	return l.emit(token.Symbol, start, token.StringRef(handle))
}
