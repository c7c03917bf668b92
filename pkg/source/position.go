// Package source defines source positions and a physical-line index over
// document bytes.
package source

import "fmt"

// Position is a zero-based (line, character) location. Characters are
// counted in codepoints, not bytes.
type Position struct {
	Line      int `json:"line"`
	Character int `json:"character"`
}

// Compare orders positions lexicographically on (line, character).
// It returns -1, 0 or +1.
func (p Position) Compare(other Position) int {
	switch {
	case p.Line < other.Line:
		return -1
	case p.Line > other.Line:
		return 1
	case p.Character < other.Character:
		return -1
	case p.Character > other.Character:
		return 1
	default:
		return 0
	}
}

// Before reports whether p sorts strictly before other.
func (p Position) Before(other Position) bool {
	return p.Compare(other) < 0
}

// String renders the position 1-based, the way editors display it.
func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line+1, p.Character+1)
}

// BPosition is a Position that also carries the byte offset into the document.
type BPosition struct {
	Position
	Byte int `json:"byte"`
}

// At builds a BPosition.
func At(line, character, byteOffset int) BPosition {
	return BPosition{Position: Position{Line: line, Character: character}, Byte: byteOffset}
}
