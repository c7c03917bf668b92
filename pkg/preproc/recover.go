package preproc

import (
	"bytes"
	"fmt"

	"github.com/yaklabco/asmlex/pkg/codec"
	"github.com/yaklabco/asmlex/pkg/diag"
	"github.com/yaklabco/asmlex/pkg/source"
	"github.com/yaklabco/asmlex/pkg/strpool"
)

// staticRunLen is the longest invalid run served from staticReplacement.
const staticRunLen = 4

//nolint:gochecknoglobals // Shared read-only replacement text.
var staticReplacement = []byte("\uFFFD\uFFFD\uFFFD\uFFFD")

// RecoverEncoding replaces every maximal run of invalid UTF-8 with one U+FFFD
// per invalid codepoint and reports each run as an invalid-encoding
// diagnostic. It must be called before SplitLines and only the first call does
// any work.
//
// Runs longer than four codepoints get their own buffer, interned in pool.
func (d *Document) RecoverEncoding(pool *strpool.Pool) error {
	if d.recovered {
		return nil
	}
	if d.split {
		return ErrAlreadySplit
	}

	var (
		pieces   []piece
		pos      source.Position
		runStart int
	)

	for i := 0; i < len(d.buf); {
		next, ok := codec.Validate(d.buf, i)
		if ok {
			pos = advance(pos, d.buf, i)
			i = next
			continue
		}

		if i > runStart {
			pieces = append(pieces, piece{data: d.buf[runStart:i], offset: runStart})
		}

		start := source.BPosition{Position: pos, Byte: i}
		var widths []int
		for i < len(d.buf) {
			next, ok = codec.Validate(d.buf, i)
			if ok {
				break
			}
			widths = append(widths, next-i)
			i = next
		}
		pos.Character += len(widths)

		data, err := replacementRun(len(widths), pool)
		if err != nil {
			return err
		}
		if err := d.arena.Reserve(pieceCost); err != nil {
			return fmt.Errorf("recover encoding: %w", err)
		}
		pieces = append(pieces, piece{data: data, offset: start.Byte, widths: widths})

		end := source.BPosition{Position: pos, Byte: i}
		if _, err := d.PushDiagnostic(diag.New(diag.InvalidEncoding, start, end)); err != nil {
			return err
		}
		runStart = i
	}

	if runStart < len(d.buf) {
		pieces = append(pieces, piece{data: d.buf[runStart:], offset: runStart})
	}

	d.pieces = pieces
	d.recovered = true
	return nil
}

func replacementRun(count int, pool *strpool.Pool) ([]byte, error) {
	if count <= staticRunLen {
		n := count * codec.RuneErrorLen
		return staticReplacement[:n:n], nil
	}

	handle, err := pool.Intern(bytes.Repeat(staticReplacement[:codec.RuneErrorLen], count))
	if err != nil {
		return nil, fmt.Errorf("recover encoding: %w", err)
	}
	return pool.Bytes(handle), nil
}

// advance moves pos past the valid codepoint at buf[i]. \r\n counts as one
// line break.
func advance(pos source.Position, buf []byte, i int) source.Position {
	switch buf[i] {
	case '\r':
		return source.Position{Line: pos.Line + 1}
	case '\n':
		if i > 0 && buf[i-1] == '\r' {
			return pos
		}
		return source.Position{Line: pos.Line + 1}
	default:
		pos.Character++
		return pos
	}
}
