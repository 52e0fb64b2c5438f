package id3v2

import "testing"

func TestDecodeText_Latin1(t *testing.T) {
	// 0xE9 is é in ISO-8859-1.
	got := DecodeText(EncLatin1, []byte{'c', 'a', 'f', 0xE9})
	if got != "café" {
		t.Errorf("expected %q, got %q", "café", got)
	}
}

func TestDecodeText_Latin1_StopsAtNUL(t *testing.T) {
	got := DecodeText(EncLatin1, []byte{'a', 'b', 0, 'c'})
	if got != "ab" {
		t.Errorf("expected %q, got %q", "ab", got)
	}
}

func TestDecodeText_UTF8(t *testing.T) {
	got := DecodeText(EncUTF8, []byte("héllo"))
	if got != "héllo" {
		t.Errorf("expected %q, got %q", "héllo", got)
	}
}

func TestDecodeText_UTF8_StopsAtNUL(t *testing.T) {
	got := DecodeText(EncUTF8, []byte("ab\x00cd"))
	if got != "ab" {
		t.Errorf("expected %q, got %q", "ab", got)
	}
}

func TestDecodeText_UTF16_LittleEndianBOM(t *testing.T) {
	data := []byte{0xFF, 0xFE, 'h', 0, 'i', 0}
	got := DecodeText(EncUTF16, data)
	if got != "hi" {
		t.Errorf("expected %q, got %q", "hi", got)
	}
}

func TestDecodeText_UTF16_BigEndianBOM(t *testing.T) {
	data := []byte{0xFE, 0xFF, 0, 'h', 0, 'i'}
	got := DecodeText(EncUTF16, data)
	if got != "hi" {
		t.Errorf("expected %q, got %q", "hi", got)
	}
}

func TestDecodeText_UTF16_MissingBOMDefaultsBigEndian(t *testing.T) {
	data := []byte{0, 'h', 0, 'i'}
	got := DecodeText(EncUTF16, data)
	if got != "hi" {
		t.Errorf("expected %q, got %q", "hi", got)
	}
}

func TestDecodeText_UTF16BE(t *testing.T) {
	data := []byte{0, 'o', 0, 'k'}
	got := DecodeText(EncUTF16BE, data)
	if got != "ok" {
		t.Errorf("expected %q, got %q", "ok", got)
	}
}

func TestDecodeText_UTF16_SurrogatePair(t *testing.T) {
	// U+1D11E (musical G clef) as a big-endian surrogate pair.
	data := []byte{0xFE, 0xFF, 0xD8, 0x34, 0xDD, 0x1E}
	got := DecodeText(EncUTF16, data)
	if got != "\U0001D11E" {
		t.Errorf("expected %q, got %q", "\U0001D11E", got)
	}
}

func TestDecodeText_UTF16_StopsAtZeroUnit(t *testing.T) {
	data := []byte{0xFF, 0xFE, 'a', 0, 0, 0, 'b', 0}
	got := DecodeText(EncUTF16, data)
	if got != "a" {
		t.Errorf("expected %q, got %q", "a", got)
	}
}

func TestDecodeText_UnknownEncodingFallsBackToLatin1(t *testing.T) {
	got := DecodeText(9, []byte("plain"))
	if got != "plain" {
		t.Errorf("expected %q, got %q", "plain", got)
	}
}

func TestDecodeText_Empty(t *testing.T) {
	for _, enc := range []byte{EncLatin1, EncUTF16, EncUTF16BE, EncUTF8} {
		if got := DecodeText(enc, nil); got != "" {
			t.Errorf("encoding %d: expected empty string, got %q", enc, got)
		}
	}
}

func TestTerminatorSize(t *testing.T) {
	if TerminatorSize(EncLatin1) != 1 || TerminatorSize(EncUTF8) != 1 {
		t.Error("single-byte encodings should have terminator size 1")
	}
	if TerminatorSize(EncUTF16) != 2 || TerminatorSize(EncUTF16BE) != 2 {
		t.Error("UTF-16 encodings should have terminator size 2")
	}
}

func TestFindTerminator_SingleByte(t *testing.T) {
	if got := FindTerminator(EncUTF8, []byte("ab\x00cd")); got != 2 {
		t.Errorf("expected 2, got %d", got)
	}
	if got := FindTerminator(EncUTF8, []byte("abcd")); got != 4 {
		t.Errorf("expected len(data) for missing terminator, got %d", got)
	}
}

func TestFindTerminator_DoubleByte(t *testing.T) {
	// The zero pair must be found at an even unit boundary.
	data := []byte{'a', 0, 0, 0, 'b', 0}
	if got := FindTerminator(EncUTF16, data); got != 2 {
		t.Errorf("expected 2, got %d", got)
	}
	if got := FindTerminator(EncUTF16, []byte{'a', 0, 'b', 0}); got != 4 {
		t.Errorf("expected len(data) for missing terminator, got %d", got)
	}
}
