package id3v2

import (
	"bytes"
	"strings"
	"unicode/utf16"
)

// Text encoding byte values (first byte of text-carrying frame bodies).
const (
	EncLatin1  = 0 // ISO-8859-1
	EncUTF16   = 1 // UTF-16 with BOM
	EncUTF16BE = 2 // UTF-16 big-endian, no BOM (v2.4)
	EncUTF8    = 3 // UTF-8 (v2.4)
)

// DecodeText decodes a frame text payload to a UTF-8 string. Decoding
// stops at the encoding-width NUL terminator or the end of the payload.
// Unknown encoding bytes fall back to the Latin-1 path.
func DecodeText(encoding byte, data []byte) string {
	switch encoding {
	case EncUTF16:
		return decodeUTF16(data, true, false)
	case EncUTF16BE:
		return decodeUTF16(data, false, true)
	case EncUTF8:
		if i := bytes.IndexByte(data, 0); i >= 0 {
			data = data[:i]
		}
		return string(data)
	default:
		return decodeLatin1(data)
	}
}

// decodeLatin1 converts ISO-8859-1 bytes to UTF-8. Bytes >= 0x80 expand to
// their 2-byte UTF-8 form; a NUL byte terminates.
func decodeLatin1(data []byte) string {
	var b strings.Builder
	b.Grow(len(data))
	for _, c := range data {
		if c == 0 {
			break
		}
		b.WriteRune(rune(c))
	}
	return b.String()
}

// decodeUTF16 converts UTF-16 bytes to UTF-8. If hasBOM is set, a leading
// FF FE / FE FF pair selects the byte order; otherwise defaultBE applies.
// A zero 16-bit unit terminates. Surrogate pairs combine into one code
// point; unpaired surrogates decode best-effort rather than failing.
func decodeUTF16(data []byte, hasBOM, defaultBE bool) string {
	bigEndian := defaultBE
	if hasBOM && len(data) >= 2 {
		switch {
		case data[0] == 0xFF && data[1] == 0xFE:
			bigEndian = false
			data = data[2:]
		case data[0] == 0xFE && data[1] == 0xFF:
			bigEndian = true
			data = data[2:]
		default:
			// No recognized BOM: ID3v2.3 files in the wild often omit it.
			bigEndian = true
		}
	}

	units := make([]uint16, 0, len(data)/2)
	for i := 0; i+1 < len(data); i += 2 {
		var u uint16
		if bigEndian {
			u = uint16(data[i])<<8 | uint16(data[i+1])
		} else {
			u = uint16(data[i+1])<<8 | uint16(data[i])
		}
		if u == 0 {
			break
		}
		units = append(units, u)
	}

	return string(utf16.Decode(units))
}

// TerminatorSize returns the width in bytes of the NUL terminator for the
// encoding: 2 for the UTF-16 variants, 1 otherwise. This governs where
// multi-field frame payloads (description vs. value) are split.
func TerminatorSize(encoding byte) int {
	if encoding == EncUTF16 || encoding == EncUTF16BE {
		return 2
	}
	return 1
}

// FindTerminator returns the offset of the first encoding-width NUL in
// data, or len(data) if none is present.
func FindTerminator(encoding byte, data []byte) int {
	if TerminatorSize(encoding) == 2 {
		for i := 0; i+1 < len(data); i += 2 {
			if data[i] == 0 && data[i+1] == 0 {
				return i
			}
		}
		return len(data)
	}
	if i := bytes.IndexByte(data, 0); i >= 0 {
		return i
	}
	return len(data)
}
