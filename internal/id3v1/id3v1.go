// Package id3v1 reads the legacy fixed-width 128-byte tag at the end of a
// raw stream. It is a read-only fallback consumed only when no ID3v2 tag
// exists; writes always produce ID3v2.
package id3v1

import (
	"strconv"
	"strings"

	binutil "github.com/simonhull/audiotag/internal/binary"
	"github.com/simonhull/audiotag/internal/types"
)

// TagSize is the fixed size of an ID3v1 tag.
const TagSize = 128

// Detect reports whether the last 128 bytes of the file start with the
// "TAG" magic.
func Detect(sr *binutil.SafeReader) bool {
	if sr.Size() < TagSize {
		return false
	}

	magic := make([]byte, 3)
	if err := sr.ReadAt(magic, sr.Size()-TagSize, "ID3v1 magic"); err != nil {
		return false
	}
	return magic[0] == 'T' && magic[1] == 'A' && magic[2] == 'G'
}

// Read parses the ID3v1 tag into a collection. Layout (128 bytes):
//
//	0-2    "TAG"
//	3-32   title   (30 bytes)
//	33-62  artist  (30 bytes)
//	63-92  album   (30 bytes)
//	93-96  year    (4 bytes, ASCII)
//	97-126 comment (30 bytes; ID3v1.1 stores a track number in byte 126
//	       when byte 125 is zero)
//	127    genre index
//
// Empty fields are omitted. Returns ErrNoTags if no tag is present.
func Read(sr *binutil.SafeReader) (*types.Collection, error) {
	if !Detect(sr) {
		return nil, types.ErrNoTags
	}

	raw := make([]byte, TagSize)
	if err := sr.ReadAt(raw, sr.Size()-TagSize, "ID3v1 tag"); err != nil {
		return nil, err
	}

	comment := raw[97:127]
	track := ""
	if raw[125] == 0 && raw[126] != 0 {
		// ID3v1.1: the comment field is shortened to 28 bytes and the
		// last byte carries the track number.
		track = strconv.Itoa(int(raw[126]))
		comment = raw[97:125]
	}

	coll := types.NewCollection()
	tag := coll.AddTag(types.TargetAlbum)

	addFixed(tag, "TITLE", raw[3:33])
	addFixed(tag, "ARTIST", raw[33:63])
	addFixed(tag, "ALBUM", raw[63:93])
	addFixed(tag, "DATE_RELEASED", raw[93:97])
	addFixed(tag, "COMMENT", comment)
	if track != "" {
		tag.AddSimple("TRACK_NUMBER", track)
	}

	if raw[127] != 0xFF {
		tag.AddSimple("GENRE", strconv.Itoa(int(raw[127])))
	}

	return coll, nil
}

// addFixed trims a fixed-width field and appends it unless empty.
func addFixed(tag *types.Tag, name string, field []byte) {
	value := strings.TrimRight(string(field), " \x00")
	if i := strings.IndexByte(value, 0); i >= 0 {
		value = value[:i]
	}
	if value != "" {
		tag.AddSimple(name, value)
	}
}
