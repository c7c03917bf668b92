package preproc

import (
	"github.com/yaklabco/asmlex/pkg/codec"
	"github.com/yaklabco/asmlex/pkg/source"
)

// Fragment is a contiguous run of lexable bytes.
//
// Data is either a slice of the document buffer or, after encoding recovery,
// a run of U+FFFD standing in for invalid sequences. Offset and Pos locate
// the first byte in the original document.
type Fragment struct {
	Data   []byte
	Offset int
	Pos    source.Position

	// cum maps replacement codepoints back to the document: cum[k] is the
	// number of original bytes covered by the first k replacement
	// codepoints. Nil for fragments that alias the document.
	cum []int
}

// Replaced reports whether the fragment holds replacement characters rather
// than document bytes.
func (f Fragment) Replaced() bool {
	return f.cum != nil
}

// Len returns the number of bytes in Data.
func (f Fragment) Len() int {
	return len(f.Data)
}

// SourceLen returns the number of document bytes the fragment stands for.
func (f Fragment) SourceLen() int {
	if f.cum == nil {
		return len(f.Data)
	}
	return f.cum[len(f.cum)-1]
}

// End returns the document offset just past the fragment.
func (f Fragment) End() int {
	return f.Offset + f.SourceLen()
}

// ByteOffset maps index i of Data, which must be a codepoint boundary, to a
// document byte offset. i may equal len(Data).
func (f Fragment) ByteOffset(i int) int {
	if f.cum == nil {
		return f.Offset + i
	}
	k := i / codec.RuneErrorLen
	if k >= len(f.cum) {
		k = len(f.cum) - 1
	}
	return f.Offset + f.cum[k]
}

// Span is a half-open range of document byte offsets.
type Span struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Len returns the number of bytes in the span.
func (s Span) Len() int {
	return s.End - s.Start
}
