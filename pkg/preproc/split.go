package preproc

import (
	"github.com/yaklabco/asmlex/pkg/codec"
	"github.com/yaklabco/asmlex/pkg/source"
)

// piece is a unit of input to the splitter: either a slice of the document
// or a replacement run produced by encoding recovery.
type piece struct {
	data   []byte
	offset int

	// widths holds the original byte length of each replacement codepoint.
	widths []int
}

// SplitLines partitions the document into fragments at EOL sequences (\n,
// \r\n and a lone \r). Without the preprocessor every fragment keeps its EOL.
// With it, a backslash immediately before an EOL joins the two physical
// lines: the backslash and the EOL are elided and belong to no fragment.
//
// An empty document yields a single zero-length fragment. A trailing EOL does
// not produce an empty final fragment. Only the first call does any work.
func (d *Document) SplitLines(usePreprocessor bool) error {
	if d.split {
		return nil
	}

	pieces := d.pieces
	if !d.recovered {
		pieces = []piece{{data: d.buf}}
	}

	s := splitter{doc: d, preprocess: usePreprocessor}
	for _, p := range pieces {
		var err error
		if p.widths != nil {
			err = s.replacement(p)
		} else {
			err = s.source(p)
		}
		if err != nil {
			return err
		}
	}

	if len(d.fragments) == 0 {
		if err := d.pushFragment(Fragment{Data: d.buf[:0]}); err != nil {
			return err
		}
	}

	d.split = true
	return nil
}

type splitter struct {
	doc        *Document
	preprocess bool
	pos        source.Position
}

func (s *splitter) source(p piece) error {
	data := p.data
	start := 0
	startPos := s.pos

	for i := 0; i < len(data); {
		b := data[i]
		if b != '\n' && b != '\r' {
			i, _ = codec.Validate(data, i)
			s.pos.Character++
			continue
		}

		end := i + 1
		if b == '\r' && end < len(data) && data[end] == '\n' {
			end++
		}

		if s.preprocess && continues(data, start, i) {
			if err := s.emit(data[start:i-1], p.offset+start, startPos); err != nil {
				return err
			}
			s.doc.elided = append(s.doc.elided, Span{Start: p.offset + i - 1, End: p.offset + end})
		} else if err := s.emit(data[start:end], p.offset+start, startPos); err != nil {
			return err
		}

		s.pos = source.Position{Line: s.pos.Line + 1}
		startPos = s.pos
		start, i = end, end
	}

	if start < len(data) {
		return s.emit(data[start:], p.offset+start, startPos)
	}
	return nil
}

func (s *splitter) replacement(p piece) error {
	cum := make([]int, len(p.widths)+1)
	for k, w := range p.widths {
		cum[k+1] = cum[k] + w
	}

	frag := Fragment{Data: p.data, Offset: p.offset, Pos: s.pos, cum: cum}
	s.pos.Character += len(p.widths)
	return s.doc.pushFragment(frag)
}

func (s *splitter) emit(data []byte, offset int, pos source.Position) error {
	return s.doc.pushFragment(Fragment{Data: data, Offset: offset, Pos: pos})
}

// continues reports whether the codepoint ending at eol, no earlier than
// first, is a backslash.
func continues(data []byte, first, eol int) bool {
	cp, _, err := codec.ReadBack(data, first, eol)
	return err == nil && cp == '\\'
}
