package preproc

import (
	"fmt"

	"github.com/yaklabco/asmlex/pkg/arena"
	"github.com/yaklabco/asmlex/pkg/strpool"
)

// Handle identifies a document within a PreProc.
type Handle uint32

const initialDocuments = 2

// PreProc is a preprocessing context. It owns the documents added to it, the
// string pool they share, and the budget everything is charged to.
//
// A PreProc is not safe for concurrent use.
type PreProc struct {
	docs  []*Document
	pool  *strpool.Pool
	arena *arena.Arena
}

// Option configures a PreProc.
type Option func(*PreProc)

// WithMemoryLimit caps the bytes the context may allocate. A limit of zero or
// less is unlimited.
func WithMemoryLimit(limit int64) Option {
	return func(p *PreProc) {
		p.arena = arena.New(limit)
	}
}

// WithArena charges the context to an existing arena.
func WithArena(a *arena.Arena) Option {
	return func(p *PreProc) {
		p.arena = a
	}
}

// New creates an empty context.
func New(opts ...Option) *PreProc {
	pp := &PreProc{docs: make([]*Document, 0, initialDocuments)}
	for _, opt := range opts {
		opt(pp)
	}
	if pp.arena == nil {
		pp.arena = arena.New(0)
	}
	pp.pool = strpool.New(pp.arena)
	return pp
}

// AddDocument registers buf as a top-level document.
func (p *PreProc) AddDocument(buf []byte) (Handle, error) {
	return p.AddIncludedDocument(buf, 0)
}

// AddIncludedDocument registers buf as a document reached through the given
// include chain. Diagnostics raised on it carry include.
func (p *PreProc) AddIncludedDocument(buf []byte, include uint32) (Handle, error) {
	if err := p.arena.Reserve(documentCost); err != nil {
		return 0, fmt.Errorf("add document: %w", err)
	}
	doc := &Document{buf: buf, arena: p.arena, include: include}
	p.docs = append(p.docs, doc)
	return Handle(len(p.docs) - 1), nil
}

// Document resolves h.
func (p *PreProc) Document(h Handle) (*Document, error) {
	if int(h) >= len(p.docs) {
		return nil, fmt.Errorf("document %d: %w", h, ErrBadHandle)
	}
	return p.docs[h], nil
}

// Len returns the number of documents.
func (p *PreProc) Len() int {
	return len(p.docs)
}

// Pool returns the shared string pool.
func (p *PreProc) Pool() *strpool.Pool {
	return p.pool
}

// Arena returns the context's budget.
func (p *PreProc) Arena() *arena.Arena {
	return p.arena
}
