// Package preproc owns documents and their preprocessing: encoding
// recovery, line splitting with continuation collapsing, and the per-document
// token and diagnostic lists the lexer fills in.
package preproc

import (
	"errors"
	"fmt"
	"unsafe"

	"github.com/yaklabco/asmlex/pkg/arena"
	"github.com/yaklabco/asmlex/pkg/diag"
	"github.com/yaklabco/asmlex/pkg/source"
	"github.com/yaklabco/asmlex/pkg/token"
)

// Sentinel errors.
var (
	// ErrBadHandle is returned for a document handle the context never issued.
	ErrBadHandle = errors.New("bad document handle")

	// ErrAlreadySplit is returned by RecoverEncoding once fragments exist.
	ErrAlreadySplit = errors.New("document already split")
)

// Per-entry storage costs charged to the arena.
const (
	fragmentCost   = int64(unsafe.Sizeof(Fragment{}))
	tokenCost      = int64(unsafe.Sizeof(token.Token{}))
	diagnosticCost = int64(unsafe.Sizeof(diag.Diagnostic{}))
	pieceCost      = int64(unsafe.Sizeof(piece{}))
	documentCost   = int64(unsafe.Sizeof(Document{}))
)

// Document is one source buffer and everything derived from it.
type Document struct {
	buf     []byte
	arena   *arena.Arena
	include uint32

	pieces    []piece
	recovered bool

	fragments []Fragment
	elided    []Span
	split     bool

	tokens []token.Token
	diags  diag.List
	lexed  bool
}

// NewDocument creates a standalone document over buf with an unlimited
// budget. buf is borrowed and must not change while the document is in use.
func NewDocument(buf []byte) *Document {
	return &Document{buf: buf}
}

// Bytes returns the document buffer.
func (d *Document) Bytes() []byte {
	return d.buf
}

// Include returns the include handle the document was added with.
func (d *Document) Include() uint32 {
	return d.include
}

// Fragments returns the fragment list, or nil before SplitLines.
func (d *Document) Fragments() []Fragment {
	return d.fragments
}

// Split reports whether SplitLines has completed.
func (d *Document) Split() bool {
	return d.split
}

// Elided returns the continuation byte ranges removed by the preprocessor.
func (d *Document) Elided() []Span {
	return d.elided
}

// Logical returns the text the lexer sees: the concatenated fragment data.
func (d *Document) Logical() []byte {
	var size int
	for _, frag := range d.fragments {
		size += len(frag.Data)
	}
	out := make([]byte, 0, size)
	for _, frag := range d.fragments {
		out = append(out, frag.Data...)
	}
	return out
}

// Tokens returns the lexed tokens.
func (d *Document) Tokens() []token.Token {
	return d.tokens
}

// Diagnostics returns the document's diagnostic list.
func (d *Document) Diagnostics() *diag.List {
	return &d.diags
}

// Lexed reports whether the lexer has run to completion on the document.
func (d *Document) Lexed() bool {
	return d.lexed
}

// MarkLexed records that lexing completed.
func (d *Document) MarkLexed() {
	d.lexed = true
}

// PushToken appends tok, charging it to the document's budget.
func (d *Document) PushToken(tok token.Token) error {
	if err := d.arena.Reserve(tokenCost); err != nil {
		return fmt.Errorf("push token: %w", err)
	}
	d.tokens = append(d.tokens, tok)
	return nil
}

// PushDiagnostic appends diagnostic, stamped with the document's include
// handle, and returns its index for SetDiagnosticEnd.
func (d *Document) PushDiagnostic(diagnostic diag.Diagnostic) (int, error) {
	if err := d.arena.Reserve(diagnosticCost); err != nil {
		return -1, fmt.Errorf("push diagnostic: %w", err)
	}
	diagnostic.Include = d.include
	return d.diags.Push(diagnostic), nil
}

// SetDiagnosticEnd patches the end of a previously pushed diagnostic.
func (d *Document) SetDiagnosticEnd(idx int, end source.BPosition) {
	d.diags.SetEnd(idx, end)
}

func (d *Document) pushFragment(frag Fragment) error {
	if err := d.arena.Reserve(fragmentCost); err != nil {
		return fmt.Errorf("push fragment: %w", err)
	}
	d.fragments = append(d.fragments, frag)
	return nil
}
