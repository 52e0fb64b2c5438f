// Package id3v2 implements the ID3v2.3/2.4 binary tag format: the 10-byte
// tag header, frame records, the four text encodings, and the mapping
// between frames and the name/value tag model.
package id3v2

import (
	"fmt"

	binutil "github.com/simonhull/audiotag/internal/binary"
	"github.com/simonhull/audiotag/internal/types"
)

const (
	// HeaderSize is the fixed size of the ID3v2 tag header.
	HeaderSize = 10
	// FooterSize is the fixed size of the optional ID3v2.4 footer.
	FooterSize = 10
	// FrameHeaderSize is the fixed size of a frame header.
	FrameHeaderSize = 10

	// DefaultPadding is appended after the frames whenever a tag is built
	// from scratch (rewrite and append paths), so later updates can patch
	// in place.
	DefaultPadding = 4096

	// writeVersion is the only version ever emitted. Headers are rebuilt
	// fresh on every write; the original file's version and flags are
	// never round-tripped.
	writeVersion = 4
)

// Header flag bits (byte 5).
const (
	flagUnsync       = 0x80
	flagExtended     = 0x40
	flagExperimental = 0x20
	flagFooter       = 0x10 // v2.4 only
)

// Header is a parsed ID3v2 tag header.
type Header struct {
	Version  byte // major version, 3 or 4
	Revision byte
	Flags    byte
	Size     uint32 // body size following the header, excluding any footer
	Footer   bool   // v2.4 footer present after the body
}

// TotalSize returns the full on-disk size of the tag: header, body, and
// footer if present.
func (h Header) TotalSize() int64 {
	n := int64(HeaderSize) + int64(h.Size)
	if h.Footer {
		n += FooterSize
	}
	return n
}

// ReadHeader parses the 10-byte tag header at the given file offset.
//
// Returns UnsupportedFormatError if the "ID3" magic is absent or the
// version is not 3 or 4, and CorruptedFileError if any syncsafe size byte
// has its high bit set.
func ReadHeader(sr *binutil.SafeReader, off int64) (Header, error) {
	buf := make([]byte, HeaderSize)
	if err := sr.ReadAt(buf, off, "ID3v2 header"); err != nil {
		return Header{}, &types.UnsupportedFormatError{
			Path:   sr.Path(),
			Reason: "no ID3v2 tag",
		}
	}

	if buf[0] != 'I' || buf[1] != 'D' || buf[2] != '3' {
		return Header{}, &types.UnsupportedFormatError{
			Path:   sr.Path(),
			Reason: "no ID3v2 tag",
		}
	}

	if buf[3] < 3 || buf[3] > 4 {
		return Header{}, &types.UnsupportedFormatError{
			Path:   sr.Path(),
			Reason: fmt.Sprintf("unsupported ID3v2 version: 2.%d", buf[3]),
		}
	}

	// Size bytes must be syncsafe (high bit clear).
	for i := 6; i < 10; i++ {
		if buf[i]&0x80 != 0 {
			return Header{}, &types.CorruptedFileError{
				Path:   sr.Path(),
				Offset: off + int64(i),
				Reason: "tag size byte is not syncsafe",
			}
		}
	}

	return Header{
		Version:  buf[3],
		Revision: buf[4],
		Flags:    buf[5],
		Size:     binutil.DecodeSyncsafe(buf[6:10]),
		Footer:   buf[3] == 4 && buf[5]&flagFooter != 0,
	}, nil
}

// BuildHeader returns a fresh 10-byte tag header for the given body size:
// ID3v2.4, revision 0, no flags.
func BuildHeader(bodySize uint32) []byte {
	hdr := make([]byte, HeaderSize)
	hdr[0], hdr[1], hdr[2] = 'I', 'D', '3'
	hdr[3] = writeVersion
	hdr[4] = 0
	hdr[5] = 0
	binutil.PutSyncsafe(hdr[6:10], bodySize)
	return hdr
}
