// Package strpool is an append-only store of decoded string and symbol
// payloads, referenced by opaque handles.
//
// A Pool is not safe for concurrent use. Documents lexed in parallel must
// either use separate pools or serialize calls to Intern.
package strpool

import (
	"fmt"

	"github.com/yaklabco/asmlex/pkg/arena"
)

// Handle identifies an interned string. Handles are dense indexes assigned in
// interning order and stay valid for the lifetime of the pool.
type Handle uint32

// String implements fmt.Stringer.
func (h Handle) String() string {
	return fmt.Sprintf("str#%d", uint32(h))
}

// CachedString is an immutable payload owned by the pool. It is not
// NUL-terminated and may contain any bytes.
type CachedString []byte

// Pool stores interned payloads.
type Pool struct {
	strings []CachedString
	bytes   int
	budget  *arena.Arena
}

// handleCost is what one entry costs besides its bytes (slice header).
const handleCost = 24

// New creates an empty pool that charges its storage to budget.
// A nil budget is unlimited.
func New(budget *arena.Arena) *Pool {
	return &Pool{budget: budget}
}

// Intern takes ownership of payload and returns its handle. The caller must
// not modify payload afterwards.
func (p *Pool) Intern(payload []byte) (Handle, error) {
	if err := p.budget.Reserve(int64(len(payload) + handleCost)); err != nil {
		return 0, fmt.Errorf("intern %d bytes: %w", len(payload), err)
	}
	p.strings = append(p.strings, CachedString(payload))
	p.bytes += len(payload)
	return Handle(len(p.strings) - 1), nil
}

// InternString copies s into the pool.
func (p *Pool) InternString(s string) (Handle, error) {
	return p.Intern([]byte(s))
}

// Get returns the payload for h.
func (p *Pool) Get(h Handle) (CachedString, bool) {
	if int(h) >= len(p.strings) {
		return nil, false
	}
	return p.strings[h], true
}

// Bytes returns the payload for h, or nil for an unknown handle.
func (p *Pool) Bytes(h Handle) []byte {
	payload, _ := p.Get(h)
	return payload
}

// String returns the payload for h as a string.
func (p *Pool) String(h Handle) string {
	return string(p.Bytes(h))
}

// Len returns the number of interned entries.
func (p *Pool) Len() int {
	return len(p.strings)
}

// Size returns the total number of payload bytes stored.
func (p *Pool) Size() int {
	return p.bytes
}
