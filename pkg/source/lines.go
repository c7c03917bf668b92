package source

import "sort"

// LineInfo records where one physical line sits in the content.
type LineInfo struct {
	// StartOffset is the byte offset of the first byte of the line.
	StartOffset int

	// NewlineStart is the byte offset where the line terminator begins,
	// or the end of content for an unterminated last line.
	NewlineStart int

	// EndOffset is the byte offset just past the line terminator.
	EndOffset int
}

// Lines is a physical-line index. Terminators are \n, \r\n and a lone \r,
// matching the way fragments are cut.
type Lines struct {
	content []byte
	lines   []LineInfo
}

// BuildLines constructs the line index for content.
func BuildLines(content []byte) *Lines {
	idx := &Lines{content: content}

	lineStart := 0
	for i := 0; i < len(content); i++ {
		switch content[i] {
		case '\n':
			idx.lines = append(idx.lines, LineInfo{StartOffset: lineStart, NewlineStart: i, EndOffset: i + 1})
			lineStart = i + 1
		case '\r':
			end := i + 1
			if end < len(content) && content[end] == '\n' {
				end++
			}
			idx.lines = append(idx.lines, LineInfo{StartOffset: lineStart, NewlineStart: i, EndOffset: end})
			lineStart = end
			i = end - 1
		}
	}

	// The last line may be empty or unterminated.
	idx.lines = append(idx.lines, LineInfo{
		StartOffset:  lineStart,
		NewlineStart: len(content),
		EndOffset:    len(content),
	})

	return idx
}

// Count returns the number of physical lines. Empty content has one empty line.
func (l *Lines) Count() int {
	return len(l.lines)
}

// Info returns the metadata of a zero-based line.
func (l *Lines) Info(line int) (LineInfo, bool) {
	if line < 0 || line >= len(l.lines) {
		return LineInfo{}, false
	}
	return l.lines[line], true
}

// Content returns the bytes of a zero-based line, excluding its terminator.
// Returns nil if the line is out of range.
func (l *Lines) Content(line int) []byte {
	info, ok := l.Info(line)
	if !ok {
		return nil
	}
	return l.content[info.StartOffset:info.NewlineStart]
}

// LineOf returns the zero-based line containing the byte offset.
// Offsets at or past the end belong to the last line; negative offsets return -1.
func (l *Lines) LineOf(offset int) int {
	if offset < 0 {
		return -1
	}
	if offset >= len(l.content) {
		return len(l.lines) - 1
	}
	return sort.Search(len(l.lines), func(i int) bool {
		return l.lines[i].EndOffset > offset
	})
}
