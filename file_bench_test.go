package audiotag

import (
	"os"
	"path/filepath"
	"testing"
)

func benchFixture(b *testing.B, data []byte) string {
	b.Helper()
	path := filepath.Join(b.TempDir(), "bench.mp3")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		b.Fatalf("write fixture: %v", err)
	}
	return path
}

func BenchmarkOpen(b *testing.B) {
	coll := NewCollection()
	tag := coll.AddTag(TargetAlbum)
	tag.AddSimple("TITLE", "Benchmark Title")
	tag.AddSimple("ARTIST", "Benchmark Artist")

	path := benchFixture(b, benchTaggedStream(b, coll))

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		file, err := Open(path)
		if err != nil {
			b.Fatal(err)
		}
		file.Close()
	}
}

func BenchmarkReadTags(b *testing.B) {
	coll := NewCollection()
	tag := coll.AddTag(TargetAlbum)
	for _, name := range []string{"TITLE", "ARTIST", "ALBUM", "GENRE", "TRACK_NUMBER"} {
		tag.AddSimple(name, "benchmark value for "+name)
	}

	path := benchFixture(b, benchTaggedStream(b, coll))
	file, err := Open(path)
	if err != nil {
		b.Fatal(err)
	}
	defer file.Close()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		file.cached = nil
		if _, err := file.ReadTags(); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkSetTag_InPlace(b *testing.B) {
	path := benchFixture(b, benchTaggedStream(b, nil))

	file, err := OpenReadWrite(path)
	if err != nil {
		b.Fatal(err)
	}
	defer file.Close()

	// Reserve padding once so the measured writes stay in place.
	if err := file.SetTag("TITLE", "warmup"); err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := file.SetTag("TITLE", "benchmark title"); err != nil {
			b.Fatal(err)
		}
	}
}

// benchTaggedStream builds a raw stream, optionally with a prepended tag
// holding coll's values.
func benchTaggedStream(b *testing.B, coll *Collection) []byte {
	b.Helper()

	audio := make([]byte, 64*1024)
	audio[0], audio[1], audio[2] = 0xFF, 0xFB, 0x90
	if coll == nil {
		return audio
	}

	path := filepath.Join(b.TempDir(), "seed.mp3")
	if err := os.WriteFile(path, audio, 0o644); err != nil {
		b.Fatalf("write seed: %v", err)
	}
	file, err := OpenReadWrite(path)
	if err != nil {
		b.Fatal(err)
	}
	if err := file.WriteTags(coll); err != nil {
		b.Fatal(err)
	}
	file.Close()

	data, err := os.ReadFile(path)
	if err != nil {
		b.Fatal(err)
	}
	return data
}
