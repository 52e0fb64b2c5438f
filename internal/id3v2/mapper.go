package id3v2

import (
	"strings"

	"github.com/simonhull/audiotag/internal/types"
)

// nameMapping pairs a canonical tag name with its ID3v2.4 frame ID and an
// optional ID3v2.3 alias accepted on read only. Writes always target the
// v2.4 IDs.
type nameMapping struct {
	name  string
	id    string
	v23ID string
}

var nameMap = []nameMapping{
	{"TITLE", "TIT2", ""},
	{"SUBTITLE", "TIT3", ""},
	{"ARTIST", "TPE1", ""},
	{"ALBUM_ARTIST", "TPE2", ""},
	{"ALBUM", "TALB", ""},
	{"DATE_RELEASED", "TDRC", "TYER"},
	{"TRACK_NUMBER", "TRCK", ""},
	{"DISC_NUMBER", "TPOS", ""},
	{"GENRE", "TCON", ""},
	{"COMPOSER", "TCOM", ""},
	{"LYRICIST", "TEXT", ""},
	{"CONDUCTOR", "TPE3", ""},
	{"COMMENT", "COMM", ""},
	{"ENCODER", "TSSE", ""},
	{"ENCODED_BY", "TENC", ""},
	{"COPYRIGHT", "TCOP", ""},
	{"BPM", "TBPM", ""},
	{"PUBLISHER", "TPUB", ""},
	{"ISRC", "TSRC", ""},
	{"GROUPING", "TIT1", ""},
	{"SORT_TITLE", "TSOT", ""},
	{"SORT_ARTIST", "TSOP", ""},
	{"SORT_ALBUM", "TSOA", ""},
	{"SORT_ALBUM_ARTIST", "TSO2", ""},
	{"ORIGINAL_DATE", "TDOR", "TORY"},
}

// frameIDToName returns the canonical name for a frame ID, accepting the
// v2.3 aliases. Returns "" if the ID is not in the table.
func frameIDToName(id string) string {
	for _, m := range nameMap {
		if id == m.id || (m.v23ID != "" && id == m.v23ID) {
			return m.name
		}
	}
	return ""
}

// nameToFrameID returns the v2.4 frame ID for a canonical name
// (case-insensitive), or "" if the name is not in the table.
func nameToFrameID(name string) string {
	for _, m := range nameMap {
		if strings.EqualFold(name, m.name) {
			return m.id
		}
	}
	return ""
}

// IsFrameID reports whether name is shaped like a raw frame ID: exactly
// four uppercase ASCII letters or digits.
func IsFrameID(name string) bool {
	return validFrameID([]byte(name))
}

// FramesToCollection converts raw frames into a collection holding a
// single album-level tag. Compressed and encrypted frames are dropped.
func FramesToCollection(frames []Frame) *types.Collection {
	coll := types.NewCollection()
	tag := coll.AddTag(types.TargetAlbum)

	for _, f := range frames {
		if f.compressed() {
			continue
		}

		switch {
		case f.ID == "TXXX":
			mapUserText(f, tag)
		case f.ID[0] == 'T':
			mapTextFrame(f, tag)
		case f.ID == "COMM":
			mapComment(f, tag)
		default:
			mapBinary(f, tag)
		}
	}

	return coll
}

// mapTextFrame maps a generic text frame (body: encoding byte + text) to a
// simple tag named after the table entry, or after the raw frame ID when
// the table has no entry.
func mapTextFrame(f Frame, tag *types.Tag) {
	if len(f.Data) < 1 {
		return
	}

	text := DecodeText(f.Data[0], f.Data[1:])
	name := frameIDToName(f.ID)
	if name == "" {
		name = f.ID
	}
	tag.AddSimple(name, text)
}

// mapUserText maps a TXXX frame (body: encoding + description NUL value).
// The description becomes the tag name, enabling arbitrary user-defined
// name/value pairs beyond the static table.
func mapUserText(f Frame, tag *types.Tag) {
	if len(f.Data) < 2 {
		return
	}

	encoding := f.Data[0]
	rest := f.Data[1:]

	descEnd := FindTerminator(encoding, rest)
	desc := DecodeText(encoding, rest[:descEnd])

	value := ""
	if valStart := descEnd + TerminatorSize(encoding); valStart < len(rest) {
		value = DecodeText(encoding, rest[valStart:])
	}

	tag.AddSimple(desc, value)
}

// mapComment maps a COMM frame (body: encoding + 3-byte language + short
// description NUL text). The short description is discarded; the text
// becomes the value of a tag named "COMMENT" with the language attached
// unless it is all-NUL.
func mapComment(f Frame, tag *types.Tag) {
	if len(f.Data) < 5 {
		return
	}

	encoding := f.Data[0]
	lang := string(f.Data[1:4])
	rest := f.Data[4:]

	descEnd := FindTerminator(encoding, rest)
	text := ""
	if valStart := descEnd + TerminatorSize(encoding); valStart < len(rest) {
		text = DecodeText(encoding, rest[valStart:])
	}

	st := tag.AddSimple("COMMENT", text)
	if lang[0] != 0 {
		st.SetLanguage(strings.TrimRight(lang, "\x00"))
	}
}

// mapBinary stores any other frame's payload verbatim as a binary tag.
func mapBinary(f Frame, tag *types.Tag) {
	name := frameIDToName(f.ID)
	if name == "" {
		name = f.ID
	}
	data := make([]byte, len(f.Data))
	copy(data, f.Data)
	tag.AddBinary(name, data)
}
