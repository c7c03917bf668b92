// Package arena provides an explicit allocation budget for a preprocessing
// context.
//
// The lexer pipeline never aborts on malformed input; the only fatal
// condition is running out of memory while growing its outputs. An Arena
// makes that condition explicit and deterministic: every fragment, token,
// diagnostic and pooled string reserves its size before it is stored, and a
// reservation beyond the limit fails with ErrOutOfMemory.
package arena

import (
	"errors"
	"fmt"
)

// ErrOutOfMemory is returned when a reservation exceeds the arena limit.
var ErrOutOfMemory = errors.New("out of memory")

// Arena tracks bytes reserved against an optional limit. A nil *Arena is
// valid and unlimited. An Arena is not safe for concurrent use.
type Arena struct {
	limit int64
	used  int64
	peak  int64
}

// New creates an arena. A limit of zero or less means unlimited.
func New(limit int64) *Arena {
	if limit < 0 {
		limit = 0
	}
	return &Arena{limit: limit}
}

// Reserve accounts for n more bytes.
func (a *Arena) Reserve(n int64) error {
	if a == nil || n <= 0 {
		return nil
	}
	if a.limit > 0 && a.used+n > a.limit {
		return fmt.Errorf("%w: reserving %d bytes with %d of %d in use", ErrOutOfMemory, n, a.used, a.limit)
	}
	a.used += n
	if a.used > a.peak {
		a.peak = a.used
	}
	return nil
}

// Release returns n bytes to the arena.
func (a *Arena) Release(n int64) {
	if a == nil || n <= 0 {
		return
	}
	a.used -= n
	if a.used < 0 {
		a.used = 0
	}
}

// Used returns the bytes currently reserved.
func (a *Arena) Used() int64 {
	if a == nil {
		return 0
	}
	return a.used
}

// Peak returns the highest reservation level seen.
func (a *Arena) Peak() int64 {
	if a == nil {
		return 0
	}
	return a.peak
}

// Limit returns the configured limit, or zero when unlimited.
func (a *Arena) Limit() int64 {
	if a == nil {
		return 0
	}
	return a.limit
}
