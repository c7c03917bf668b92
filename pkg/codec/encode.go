package codec

// Len returns the number of bytes needed to encode cp, or -1 if cp is not
// encodable.
func Len(cp rune) int {
	switch {
	case cp < 0:
		return -1
	case cp < 0x80:
		return 1
	case cp < 0x800:
		return 2
	case cp < 0x10000:
		return 3
	case cp <= MaxRune:
		return 4
	default:
		return -1
	}
}

// Write encodes cp into buf starting at index i and returns the number of
// bytes written.
//
// ErrInvalidEncoding is returned for negative codepoints and codepoints above
// MaxRune; ErrEOF when buf has no room for the encoding. Nothing is written on
// error.
func Write(buf []byte, i int, cp rune) (int, error) {
	size := Len(cp)
	if size < 0 {
		return 0, ErrInvalidEncoding
	}
	if i < 0 || len(buf)-i < size {
		return 0, ErrEOF
	}

	switch size {
	case 1:
		buf[i] = byte(cp)
	case 2:
		buf[i] = 0xC0 | byte(cp>>6)
		buf[i+1] = 0x80 | byte(cp)&0x3F
	case 3:
		buf[i] = 0xE0 | byte(cp>>12)
		buf[i+1] = 0x80 | byte(cp>>6)&0x3F
		buf[i+2] = 0x80 | byte(cp)&0x3F
	default:
		buf[i] = 0xF0 | byte(cp>>18)
		buf[i+1] = 0x80 | byte(cp>>12)&0x3F
		buf[i+2] = 0x80 | byte(cp>>6)&0x3F
		buf[i+3] = 0x80 | byte(cp)&0x3F
	}

	return size, nil
}

// Append appends the encoding of cp to dst. Codepoints that cannot be encoded
// are appended as RuneError.
func Append(dst []byte, cp rune) []byte {
	if Len(cp) < 0 {
		cp = RuneError
	}

	var scratch [UTFMax]byte
	n, _ := Write(scratch[:], 0, cp)
	return append(dst, scratch[:n]...)
}
