package lex

import (
	"github.com/yaklabco/asmlex/pkg/codec"
	"github.com/yaklabco/asmlex/pkg/preproc"
	"github.com/yaklabco/asmlex/pkg/source"
)

// cursor walks the fragment list one codepoint at a time. Fragment
// boundaries are invisible to readers: peek looks through exhausted and
// empty fragments, and advance moves onto the next fragment before reading.
//
// A cursor is a value; copying it gives an independent reader over the same
// fragments.
type cursor struct {
	frags []preproc.Fragment
	fi    int
	bi    int
	pos   source.Position
}

func newCursor(frags []preproc.Fragment) cursor {
	return cursor{frags: frags, pos: frags[0].Pos}
}

// locate finds the fragment and index of the next readable byte without
// moving. ok is false at end of input.
func (c *cursor) locate() (int, int, bool) {
	fi, bi := c.fi, c.bi
	for bi >= len(c.frags[fi].Data) {
		if fi+1 >= len(c.frags) {
			return fi, bi, false
		}
		fi++
		bi = 0
	}
	return fi, bi, true
}

// peek reads the next codepoint: ASCII as-is, anything else as RuneError.
// The error is codec.ErrEOF at end of input and codec.ErrInvalidEncoding for
// malformed bytes.
func (c *cursor) peek() (rune, int, error) {
	fi, bi, ok := c.locate()
	if !ok {
		return 0, 0, codec.ErrEOF
	}
	return codec.ReadASCII(c.frags[fi].Data, bi)
}

// bytes returns the next n bytes of the current fragment.
func (c *cursor) bytes(n int) []byte {
	fi, bi, _ := c.locate()
	return c.frags[fi].Data[bi : bi+n]
}

// crlf reports whether the next codepoint is \r followed by \n in the same
// fragment.
func (c *cursor) crlf() bool {
	fi, bi, ok := c.locate()
	data := c.frags[fi].Data
	return ok && data[bi] == '\r' && bi+1 < len(data) && data[bi+1] == '\n'
}

// settle moves onto the fragment holding the next readable byte.
func (c *cursor) settle() {
	fi, bi, ok := c.locate()
	if !ok || fi == c.fi {
		return
	}
	c.fi, c.bi = fi, bi
	c.pos = c.frags[fi].Pos
}

// advance consumes one codepoint of n bytes.
func (c *cursor) advance(n int) {
	c.settle()
	c.bi += n
	c.pos.Character++
}

// newline consumes an EOL sequence of n bytes.
func (c *cursor) newline(n int) {
	c.settle()
	c.bi += n
	c.pos = source.Position{Line: c.pos.Line + 1}
}

// mark returns the position just past the last consumed codepoint.
func (c *cursor) mark() source.BPosition {
	return source.BPosition{Position: c.pos, Byte: c.frags[c.fi].ByteOffset(c.bi)}
}

// at reports whether c has reached the same place as other.
func (c *cursor) at(other *cursor) bool {
	return c.fi == other.fi && c.bi == other.bi
}
