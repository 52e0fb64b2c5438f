package id3v2

import (
	"bytes"
	"strings"

	binutil "github.com/simonhull/audiotag/internal/binary"
	"github.com/simonhull/audiotag/internal/types"
)

// undeterminedLanguage is the ISO 639-2 code emitted for comments whose
// language is unset.
const undeterminedLanguage = "und"

// SerializeFrames converts a collection into a frame-body buffer: the raw
// frame records without tag header or padding. Text output is always
// UTF-8 with v2.4 syncsafe frame sizes and no frame flags.
//
// Encode rules, applied per simple tag in collection order:
//   - binary payloads are emitted as raw frames only under frame-ID-shaped
//     names; other binary tags have no ID3v2 container and are dropped
//   - tags with neither value nor binary payload are skipped
//   - "COMMENT" (case-insensitive) becomes a COMM frame
//   - table names become their canonical text frame
//   - frame-ID-shaped names become literal text frames
//   - everything else becomes a TXXX frame with the name as description
func SerializeFrames(coll *types.Collection) []byte {
	var buf bytes.Buffer

	for _, tag := range coll.Tags {
		for _, st := range tag.Simple {
			if st.Name == "" {
				continue
			}

			if len(st.Binary) > 0 {
				if IsFrameID(st.Name) {
					writeBinaryFrame(&buf, st.Name, st.Binary)
				}
				continue
			}

			if st.Value == "" {
				continue
			}

			if strings.EqualFold(st.Name, "COMMENT") {
				writeCommentFrame(&buf, st.Value, st.Language)
				continue
			}

			if id := nameToFrameID(st.Name); id != "" {
				writeTextFrame(&buf, id, st.Value)
			} else if IsFrameID(st.Name) {
				writeTextFrame(&buf, st.Name, st.Value)
			} else {
				writeUserTextFrame(&buf, st.Name, st.Value)
			}
		}
	}

	return buf.Bytes()
}

// writeFrameHeader appends a 10-byte frame header with a syncsafe body
// size and zero flags.
func writeFrameHeader(buf *bytes.Buffer, frameID string, bodySize uint32) {
	hdr := make([]byte, FrameHeaderSize)
	copy(hdr, frameID)
	binutil.PutSyncsafe(hdr[4:8], bodySize)
	buf.Write(hdr)
}

// writeTextFrame appends a generic text frame: encoding byte + UTF-8 text.
func writeTextFrame(buf *bytes.Buffer, frameID, text string) {
	writeFrameHeader(buf, frameID, uint32(1+len(text)))
	buf.WriteByte(EncUTF8)
	buf.WriteString(text)
}

// writeUserTextFrame appends a TXXX frame: encoding + description + NUL +
// value.
func writeUserTextFrame(buf *bytes.Buffer, desc, text string) {
	writeFrameHeader(buf, "TXXX", uint32(1+len(desc)+1+len(text)))
	buf.WriteByte(EncUTF8)
	buf.WriteString(desc)
	buf.WriteByte(0)
	buf.WriteString(text)
}

// writeCommentFrame appends a COMM frame: encoding + 3-byte language +
// empty short description + NUL + text.
func writeCommentFrame(buf *bytes.Buffer, text, language string) {
	lang := language
	if lang == "" {
		lang = undeterminedLanguage
	}

	writeFrameHeader(buf, "COMM", uint32(1+3+1+len(text)))
	buf.WriteByte(EncUTF8)

	// Language codes are exactly 3 bytes; short codes pad with spaces.
	lang3 := []byte{' ', ' ', ' '}
	copy(lang3, lang)
	buf.Write(lang3)

	buf.WriteByte(0)
	buf.WriteString(text)
}

// writeBinaryFrame appends a raw frame with the payload verbatim.
func writeBinaryFrame(buf *bytes.Buffer, frameID string, data []byte) {
	writeFrameHeader(buf, frameID, uint32(len(data)))
	buf.Write(data)
}
