package id3v1

import (
	"errors"
	"io"
	"testing"

	binutil "github.com/simonhull/audiotag/internal/binary"
	"github.com/simonhull/audiotag/internal/types"
)

// mockReader implements io.ReaderAt for testing.
type mockReader struct {
	data []byte
}

func (m *mockReader) ReadAt(p []byte, off int64) (n int, err error) {
	if off >= int64(len(m.data)) {
		return 0, io.EOF
	}
	n = copy(p, m.data[off:])
	if n < len(p) {
		return n, io.EOF
	}
	return n, nil
}

func newTestReader(data []byte) *binutil.SafeReader {
	return binutil.NewSafeReader(&mockReader{data: data}, int64(len(data)), "test.mp3")
}

// buildTag assembles a 128-byte ID3v1 tag appended to some audio bytes.
func buildTag(title, artist, album, year, comment string, track, genre byte) []byte {
	tag := make([]byte, TagSize)
	copy(tag[0:3], "TAG")
	copy(tag[3:33], title)
	copy(tag[33:63], artist)
	copy(tag[63:93], album)
	copy(tag[93:97], year)
	copy(tag[97:127], comment)
	if track != 0 {
		tag[125] = 0
		tag[126] = track
	}
	tag[127] = genre

	audio := []byte{0xFF, 0xFB, 0x90, 0x00, 1, 2, 3, 4}
	return append(audio, tag...)
}

func TestDetect(t *testing.T) {
	data := buildTag("Title", "Artist", "Album", "1999", "", 0, 0xFF)
	if !Detect(newTestReader(data)) {
		t.Error("expected tag detected")
	}
}

func TestDetect_NoTag(t *testing.T) {
	data := make([]byte, 256)
	if Detect(newTestReader(data)) {
		t.Error("expected no tag")
	}
}

func TestDetect_FileTooSmall(t *testing.T) {
	if Detect(newTestReader([]byte("TAG"))) {
		t.Error("expected no tag for file smaller than 128 bytes")
	}
}

func TestRead_BasicFields(t *testing.T) {
	data := buildTag("My Title", "My Artist", "My Album", "1987", "a comment", 0, 0xFF)

	coll, err := Read(newTestReader(data))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := map[string]string{
		"TITLE":         "My Title",
		"ARTIST":        "My Artist",
		"ALBUM":         "My Album",
		"DATE_RELEASED": "1987",
		"COMMENT":       "a comment",
	}
	for name, value := range want {
		st := coll.Find(name)
		if st == nil || st.Value != value {
			t.Errorf("%s: expected %q, got %+v", name, value, st)
		}
	}

	if st := coll.Find("GENRE"); st != nil {
		t.Errorf("genre 0xFF should be omitted, got %+v", st)
	}
	if st := coll.Find("TRACK_NUMBER"); st != nil {
		t.Errorf("expected no track number, got %+v", st)
	}
}

func TestRead_V11Track(t *testing.T) {
	data := buildTag("T", "A", "B", "2001", "short comment", 7, 17)

	coll, err := Read(newTestReader(data))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if st := coll.Find("TRACK_NUMBER"); st == nil || st.Value != "7" {
		t.Errorf("TRACK_NUMBER: got %+v", st)
	}
	if st := coll.Find("GENRE"); st == nil || st.Value != "17" {
		t.Errorf("GENRE: got %+v", st)
	}
	if st := coll.Find("COMMENT"); st == nil || st.Value != "short comment" {
		t.Errorf("COMMENT: got %+v", st)
	}
}

func TestRead_TrackRequiresZeroByte125(t *testing.T) {
	// A comment filling all 30 bytes means byte 125 is non-zero, so byte
	// 126 is comment text, not a track number.
	data := buildTag("T", "A", "B", "2001", "123456789012345678901234567890", 0, 0xFF)

	coll, err := Read(newTestReader(data))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if st := coll.Find("TRACK_NUMBER"); st != nil {
		t.Errorf("expected no track number, got %+v", st)
	}
	if st := coll.Find("COMMENT"); st == nil || st.Value != "123456789012345678901234567890" {
		t.Errorf("COMMENT: got %+v", st)
	}
}

func TestRead_EmptyFieldsOmitted(t *testing.T) {
	data := buildTag("Only Title", "", "", "", "", 0, 0xFF)

	coll, err := Read(newTestReader(data))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if st := coll.Find("TITLE"); st == nil || st.Value != "Only Title" {
		t.Errorf("TITLE: got %+v", st)
	}
	for _, name := range []string{"ARTIST", "ALBUM", "DATE_RELEASED", "COMMENT"} {
		if st := coll.Find(name); st != nil {
			t.Errorf("%s: expected omitted, got %+v", name, st)
		}
	}
}

func TestRead_NoTag(t *testing.T) {
	_, err := Read(newTestReader(make([]byte, 256)))
	if !errors.Is(err, types.ErrNoTags) {
		t.Fatalf("expected ErrNoTags, got %v", err)
	}
}
