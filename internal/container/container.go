// Package container locates ID3 chunks inside RIFF/IFF-style containers
// (WAV and AVI, little-endian; AIFF, big-endian) and rewrites or extends
// their chunk lists when a tag does not fit in place.
package container

import (
	binutil "github.com/simonhull/audiotag/internal/binary"
)

// Kind identifies the container wrapping, if any.
type Kind int

const (
	// KindNone means a raw elementary stream (MP3/AAC): no container.
	KindNone Kind = iota
	// KindWAV is a RIFF/WAVE container (little-endian chunk sizes).
	KindWAV
	// KindAVI is a RIFF/AVI container (little-endian chunk sizes).
	KindAVI
	// KindAIFF is an IFF FORM/AIFF or FORM/AIFC container (big-endian).
	KindAIFF
)

// String returns a short name for the container kind.
func (k Kind) String() string {
	switch k {
	case KindWAV:
		return "WAV"
	case KindAVI:
		return "AVI"
	case KindAIFF:
		return "AIFF"
	default:
		return "raw stream"
	}
}

// BigEndian reports whether chunk sizes use big-endian byte order.
func (k Kind) BigEndian() bool {
	return k == KindAIFF
}

// byteOrder returns the chunk-size byte order for the container kind.
func (k Kind) byteOrder() binutil.Endianness {
	if k.BigEndian() {
		return binutil.BigEndian
	}
	return binutil.LittleEndian
}

// TagChunkID returns the 4-byte chunk ID that hosts the ID3 tag for this
// container kind: "ID3 " in the big-endian IFF variant, "id3 " in the
// little-endian RIFF variants.
func (k Kind) TagChunkID() string {
	if k == KindAIFF {
		return "ID3 "
	}
	return "id3 "
}

// headerSize is the fixed prefix of every container: 4-byte outer magic,
// 4-byte total size, 4-byte subtype.
const headerSize = 12

// chunkHeaderSize is the fixed prefix of every chunk record.
const chunkHeaderSize = 8

// Info describes the detected container and, if found, its ID3 chunk.
// DataOffset is always ChunkOffset + 8.
type Info struct {
	Kind      Kind
	TotalSize uint32 // outer FORM/RIFF total-size field

	HasChunk   bool
	Offset     int64  // file offset of the chunk's 8-byte header
	DataSize   uint32 // declared chunk data size
	DataOffset int64  // file offset of the chunk data
}

// Detect probes the first 12 bytes and classifies the container. Files
// shorter than 12 bytes, or with no recognized magic/subtype pair, are
// raw streams. On a positive match the chunk list is scanned for the
// format's ID3 chunk.
func Detect(sr *binutil.SafeReader) (Info, error) {
	info := Info{Kind: KindNone, Offset: -1}

	if sr.Size() < headerSize {
		return info, nil
	}

	magic := make([]byte, headerSize)
	if err := sr.ReadAt(magic, 0, "container header"); err != nil {
		return info, err
	}

	outer := string(magic[0:4])
	subtype := string(magic[8:12])

	switch {
	case outer == "FORM" && (subtype == "AIFF" || subtype == "AIFC"):
		info.Kind = KindAIFF
	case outer == "RIFF" && subtype == "WAVE":
		info.Kind = KindWAV
	case outer == "RIFF" && subtype == "AVI ":
		info.Kind = KindAVI
	default:
		return info, nil
	}

	size, err := binutil.ReadEndian[uint32](sr, 4, "container size", info.Kind.byteOrder())
	if err != nil {
		return Info{Kind: KindNone, Offset: -1}, err
	}
	info.TotalSize = size

	scanChunks(sr, &info)
	return info, nil
}

// scanChunks walks the chunk list looking for the ID3 chunk. Odd-sized
// chunk data is followed by one pad byte. Scanning stops at the declared
// outer end or the physical end of file, whichever comes first: corrupt
// size fields degrade to "no chunk found" rather than erroring.
func scanChunks(sr *binutil.SafeReader, info *Info) {
	target := info.Kind.TagChunkID()

	pos := int64(headerSize)
	end := int64(chunkHeaderSize) + int64(info.TotalSize)
	if fsize := sr.Size(); end > fsize {
		end = fsize
	}

	for pos+chunkHeaderSize <= end {
		chdr := make([]byte, chunkHeaderSize)
		if err := sr.ReadAt(chdr, pos, "chunk header"); err != nil {
			return
		}

		chunkSize := binutil.Uint32(chdr[4:8], info.Kind.byteOrder())

		if string(chdr[0:4]) == target {
			info.HasChunk = true
			info.Offset = pos
			info.DataSize = chunkSize
			info.DataOffset = pos + chunkHeaderSize
			return
		}

		pos += chunkHeaderSize + int64(chunkSize)
		if chunkSize&1 != 0 {
			pos++
		}
	}
}
