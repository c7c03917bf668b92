// Package codec decodes, validates and encodes single UTF-8 codepoints.
//
// Every decoding entry point works on a byte slice and an index into it.
// Malformed input is never fatal: decoders report the length of the maximal
// ill-formed subsequence and substitute RuneError, so callers can keep
// scanning without losing track of byte or codepoint positions.
package codec

import "errors"

// Codepoint limits.
const (
	// RuneError is the replacement character substituted for malformed input.
	RuneError = '\uFFFD'

	// MaxRune is the largest valid Unicode scalar value.
	MaxRune = '\U0010FFFF'

	// UTFMax is the maximum number of bytes in one encoded codepoint.
	UTFMax = 4

	// RuneErrorLen is the encoded length of RuneError.
	RuneErrorLen = 3
)

// Sentinel errors returned by the decoding and encoding functions.
var (
	// ErrEOF is returned when there is no codepoint to read, or no room to write one.
	ErrEOF = errors.New("end of buffer")

	// ErrInvalidEncoding is returned for ill-formed byte sequences and for
	// codepoints that cannot be encoded.
	ErrInvalidEncoding = errors.New("invalid utf-8 encoding")
)

// byteRange is an inclusive range of allowed second-byte values.
type byteRange struct {
	lo, hi byte
}

// Second-byte ranges, indexed by leadInfo.second.
//
//nolint:gochecknoglobals // Read-only lookup table.
var secondByteRanges = [5]byteRange{
	{0x80, 0xBF},
	{0xA0, 0xBF}, // E0: excludes overlong 3-byte forms
	{0x80, 0x9F}, // ED: excludes surrogates
	{0x90, 0xBF}, // F0: excludes overlong 4-byte forms
	{0x80, 0x8F}, // F4: excludes values above U+10FFFF
}

// leadInfo describes how a lead byte starts a sequence.
type leadInfo struct {
	// size is the full sequence length, or 0 for bytes that cannot start one.
	size uint8

	// second indexes secondByteRanges.
	second uint8

	// bad is the error reported when the byte cannot start a sequence.
	bad ErrorCode
}

//nolint:gochecknoglobals // Read-only lookup table built once.
var leads = buildLeads()

func buildLeads() [256]leadInfo {
	var table [256]leadInfo

	for b := 0x00; b <= 0x7F; b++ {
		table[b] = leadInfo{size: 1}
	}
	for b := 0x80; b <= 0xBF; b++ {
		table[b] = leadInfo{bad: IllegalStartByte}
	}
	table[0xC0] = leadInfo{bad: OverlongEncoding}
	table[0xC1] = leadInfo{bad: OverlongEncoding}
	for b := 0xC2; b <= 0xDF; b++ {
		table[b] = leadInfo{size: 2}
	}
	table[0xE0] = leadInfo{size: 3, second: 1}
	for b := 0xE1; b <= 0xEF; b++ {
		table[b] = leadInfo{size: 3}
	}
	table[0xED] = leadInfo{size: 3, second: 2}
	table[0xF0] = leadInfo{size: 4, second: 3}
	for b := 0xF1; b <= 0xF3; b++ {
		table[b] = leadInfo{size: 4}
	}
	table[0xF4] = leadInfo{size: 4, second: 4}
	for b := 0xF5; b <= 0xF7; b++ {
		table[b] = leadInfo{bad: CodepointTooBig}
	}
	for b := 0xF8; b <= 0xFF; b++ {
		table[b] = leadInfo{bad: IllegalStartByte}
	}

	return table
}

func isContinuation(b byte) bool {
	return b&0xC0 == 0x80
}

// decode reads one codepoint at buf[i]. The caller guarantees i < len(buf).
// On failure n is the length of the maximal ill-formed subsequence.
func decode(buf []byte, i int) (rune, int, ErrorCode) {
	b0 := buf[i]
	if b0 < 0x80 {
		return rune(b0), 1, ErrorNone
	}

	lead := leads[b0]
	if lead.size == 0 {
		return RuneError, 1, lead.bad
	}

	avail := len(buf) - i
	if avail < 2 {
		return RuneError, 1, UnexpectedEOF
	}

	b1 := buf[i+1]
	second := secondByteRanges[lead.second]
	if b1 < second.lo || b1 > second.hi {
		return RuneError, 1, secondByteError(b0, b1)
	}
	if lead.size == 2 {
		return rune(b0&0x1F)<<6 | rune(b1&0x3F), 2, ErrorNone
	}

	if avail < 3 {
		return RuneError, 2, UnexpectedEOF
	}
	b2 := buf[i+2]
	if !isContinuation(b2) {
		return RuneError, 2, IllegalContinuationByte
	}
	if lead.size == 3 {
		return rune(b0&0x0F)<<12 | rune(b1&0x3F)<<6 | rune(b2&0x3F), 3, ErrorNone
	}

	if avail < 4 {
		return RuneError, 3, UnexpectedEOF
	}
	b3 := buf[i+3]
	if !isContinuation(b3) {
		return RuneError, 3, IllegalContinuationByte
	}
	return rune(b0&0x07)<<18 | rune(b1&0x3F)<<12 | rune(b2&0x3F)<<6 | rune(b3&0x3F), 4, ErrorNone
}

// secondByteError classifies a second byte outside the lead's allowed range.
func secondByteError(lead, b byte) ErrorCode {
	if !isContinuation(b) {
		return IllegalContinuationByte
	}
	switch lead {
	case 0xE0, 0xF0:
		return OverlongEncoding
	case 0xF4:
		return CodepointTooBig
	case 0xED:
		return SurrogateCodepoint
	default:
		return IllegalContinuationByte
	}
}

// Validate advances past one codepoint starting at buf[i] and reports whether
// it was well formed. An ill-formed sequence is skipped by its maximal invalid
// prefix, which is always at least one byte. At the end of buf it returns i, true.
func Validate(buf []byte, i int) (int, bool) {
	if i >= len(buf) {
		return i, true
	}
	_, n, code := decode(buf, i)
	return i + n, code == ErrorNone
}

// Read decodes the codepoint at buf[i] and returns it with its byte length.
//
// It returns ErrEOF when i is at or past the end of buf. For ill-formed input
// it returns RuneError, the length of the maximal ill-formed subsequence and
// ErrInvalidEncoding.
func Read(buf []byte, i int) (rune, int, error) {
	if i < 0 || i >= len(buf) {
		return 0, 0, ErrEOF
	}
	cp, n, code := decode(buf, i)
	if code != ErrorNone {
		return RuneError, n, ErrInvalidEncoding
	}
	return cp, n, nil
}

// ReadASCII is the lexer fast path. ASCII bytes are returned directly; any
// other sequence is decoded with Read and reported as RuneError, with a nil
// error when the sequence was well formed.
func ReadASCII(buf []byte, i int) (rune, int, error) {
	if i >= 0 && i < len(buf) && buf[i] < 0x80 {
		return rune(buf[i]), 1, nil
	}
	_, n, err := Read(buf, i)
	if err != nil && n == 0 {
		return 0, 0, err
	}
	return RuneError, n, err
}

// ReadBack decodes the codepoint that ends immediately before buf[end],
// looking back at most UTFMax bytes and never before first. It returns the
// codepoint and its byte length.
//
// ErrEOF is returned when end <= first. If the bytes before end do not form a
// complete well-formed codepoint, the last byte alone is reported as
// RuneError with ErrInvalidEncoding.
func ReadBack(buf []byte, first, end int) (rune, int, error) {
	if first < 0 {
		first = 0
	}
	if end > len(buf) {
		end = len(buf)
	}
	if end <= first {
		return 0, 0, ErrEOF
	}

	for back := 1; back <= UTFMax && end-back >= first; back++ {
		if isContinuation(buf[end-back]) {
			continue
		}
		cp, n, code := decode(buf[:end], end-back)
		if code == ErrorNone && n == back {
			return cp, back, nil
		}
		break
	}

	return RuneError, 1, ErrInvalidEncoding
}
