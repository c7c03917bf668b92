package codec

import "fmt"

// ErrorCode classifies why a byte sequence is not well-formed UTF-8.
type ErrorCode uint8

// Error codes, in the order they are checked.
const (
	ErrorNone ErrorCode = iota
	IllegalStartByte
	UnexpectedEOF
	IllegalContinuationByte
	OverlongEncoding
	CodepointTooBig
	SurrogateCodepoint
)

// String returns a short human-readable description of the code.
func (c ErrorCode) String() string {
	switch c {
	case ErrorNone:
		return "ok"
	case IllegalStartByte:
		return "illegal start byte"
	case UnexpectedEOF:
		return "unexpected end of input"
	case IllegalContinuationByte:
		return "illegal continuation byte"
	case OverlongEncoding:
		return "overlong encoding"
	case CodepointTooBig:
		return "codepoint exceeds U+10FFFF"
	case SurrogateCodepoint:
		return "surrogate codepoint"
	default:
		return fmt.Sprintf("ErrorCode(%d)", uint8(c))
	}
}

// Err returns nil for ErrorNone and otherwise an error wrapping
// ErrInvalidEncoding.
func (c ErrorCode) Err() error {
	if c == ErrorNone {
		return nil
	}
	return fmt.Errorf("%w: %s", ErrInvalidEncoding, c)
}

// Classify inspects the sequence at buf[i] and returns its length together
// with the reason it is ill-formed, or ErrorNone. For ill-formed input the
// length is that of the maximal ill-formed subsequence. At the end of buf it
// returns 0, UnexpectedEOF.
func Classify(buf []byte, i int) (int, ErrorCode) {
	if i < 0 || i >= len(buf) {
		return 0, UnexpectedEOF
	}
	_, n, code := decode(buf, i)
	return n, code
}

// ValidBuffer scans buf and returns the byte offset and error code of the
// first ill-formed sequence, or -1 and ErrorNone when buf is valid UTF-8.
func ValidBuffer(buf []byte) (int, ErrorCode) {
	for i := 0; i < len(buf); {
		if buf[i] < 0x80 {
			i++
			continue
		}
		_, n, code := decode(buf, i)
		if code != ErrorNone {
			return i, code
		}
		i += n
	}
	return -1, ErrorNone
}
