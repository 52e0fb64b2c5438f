package id3v2

import (
	"fmt"

	binutil "github.com/simonhull/audiotag/internal/binary"
	"github.com/simonhull/audiotag/internal/types"
)

// Frame flag bits (bytes 8-9 of the frame header).
const (
	frameFlagCompress = 0x0008
	frameFlagEncrypt  = 0x0004
)

// Frame is one raw frame record. Frames are ephemeral: they exist only
// while converting between tag bytes and a Collection.
type Frame struct {
	ID    string // 4-character ASCII frame ID
	Flags uint16
	Data  []byte
}

// compressed reports whether the frame uses compression or encryption.
// Such frames are skipped entirely (unsupported) rather than erroring.
func (f Frame) compressed() bool {
	return f.Flags&(frameFlagCompress|frameFlagEncrypt) != 0
}

// validFrameID reports whether all four bytes are uppercase ASCII letters
// or digits. Anything else inside the tag body is padding or garbage.
func validFrameID(id []byte) bool {
	if len(id) != 4 {
		return false
	}
	for _, c := range id {
		if !(c >= 'A' && c <= 'Z' || c >= '0' && c <= '9') {
			return false
		}
	}
	return true
}

// ReadFrames iterates the frame records of the tag whose header starts at
// base. Iteration stops silently at padding, at a malformed frame ID, or
// at a frame that would run past the declared body end; a payload that
// cannot be read in full is a CorruptedFileError and aborts the read with
// no partial result.
func ReadFrames(sr *binutil.SafeReader, base int64, hdr Header) ([]Frame, error) {
	tagStart := base + HeaderSize
	tagEnd := tagStart + int64(hdr.Size)

	// Skip the extended header if present. Its size field is syncsafe and
	// self-inclusive under v2.4, plain big-endian and self-exclusive under
	// v2.3.
	if hdr.Flags&flagExtended != 0 {
		extBuf := make([]byte, 4)
		if err := sr.ReadAt(extBuf, tagStart, "extended header size"); err != nil {
			return nil, &types.CorruptedFileError{
				Path:   sr.Path(),
				Offset: tagStart,
				Reason: "truncated extended header",
			}
		}
		if hdr.Version == 4 {
			tagStart += int64(binutil.DecodeSyncsafe(extBuf))
		} else {
			tagStart += 4 + int64(binutil.Uint32(extBuf, binutil.BigEndian))
		}
	}

	var frames []Frame
	pos := tagStart

	for pos+FrameHeaderSize <= tagEnd {
		fhdr := make([]byte, FrameHeaderSize)
		if err := sr.ReadAt(fhdr, pos, "frame header"); err != nil {
			break
		}

		// A zero first byte marks the start of padding.
		if fhdr[0] == 0 {
			break
		}

		// A malformed ID is structural garbage, not an error: real files
		// commonly carry junk between the last frame and the padding.
		if !validFrameID(fhdr[:4]) {
			break
		}

		var frameSize uint32
		if hdr.Version == 4 {
			frameSize = binutil.DecodeSyncsafe(fhdr[4:8])
		} else {
			frameSize = binutil.Uint32(fhdr[4:8], binutil.BigEndian)
		}
		frameFlags := uint16(fhdr[8])<<8 | uint16(fhdr[9])

		// A frame running past the declared body end ends iteration;
		// frames already collected are preserved.
		if pos+FrameHeaderSize+int64(frameSize) > tagEnd {
			break
		}

		data := make([]byte, frameSize)
		if err := sr.ReadAt(data, pos+FrameHeaderSize, fmt.Sprintf("frame %s payload", fhdr[:4])); err != nil {
			return nil, &types.CorruptedFileError{
				Path:   sr.Path(),
				Offset: pos + FrameHeaderSize,
				Reason: fmt.Sprintf("truncated %s frame", fhdr[:4]),
			}
		}

		frames = append(frames, Frame{
			ID:    string(fhdr[:4]),
			Flags: frameFlags,
			Data:  data,
		})

		pos += FrameHeaderSize + int64(frameSize)
	}

	return frames, nil
}
