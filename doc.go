// Package audiotag reads and writes ID3 tags in audio files.
//
// audiotag handles raw MP3/AAC streams with a prepended ID3v2 tag as
// well as RIFF and IFF containers (WAV, AVI, AIFF) that carry the tag in
// a dedicated chunk. Reads understand ID3v2.3 and ID3v2.4 plus the
// legacy ID3v1 footer; writes always produce a clean ID3v2.4 tag.
//
// # Quick Start
//
// Reading a tag:
//
//	file, err := audiotag.Open("song.mp3")
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer file.Close()
//
//	title, err := file.ReadTag("TITLE")
//
// Writing a tag:
//
//	file, err := audiotag.OpenReadWrite("song.wav")
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer file.Close()
//
//	if err := file.SetTag("ARTIST", "Example Artist"); err != nil {
//		log.Fatal(err)
//	}
//
// # Supported Layouts
//
//   - MP3/AAC: ID3v2 tag prepended to the raw stream; ID3v1 read fallback
//   - WAV: "id3 " chunk inside the RIFF container (little-endian)
//   - AVI: "id3 " chunk inside the RIFF container (little-endian)
//   - AIFF/AIFC: "ID3 " chunk inside the FORM container (big-endian)
//
// # Write Strategies
//
// Writes pick the cheapest safe placement automatically:
//
//  1. In place, when the existing tag region is large enough. Only the
//     region's bytes change; audio data is never touched.
//  2. Append, for containers with no tag chunk yet: a new chunk is added
//     at end-of-file and the outer size field is patched.
//  3. Rewrite, when the region is too small: the file is rebuilt in a
//     same-directory temporary file and atomically renamed over the
//     original, so a crash mid-write never corrupts it.
//
// Newly created tag regions include padding (default 4 KiB) so later
// updates usually stay in place.
//
// # Tag Names
//
// ReadTag, SetTag, and RemoveTag use format-agnostic names such as
// "TITLE", "ARTIST", "ALBUM", and "TRACK_NUMBER", mapped to the
// corresponding ID3v2 frames. Names with no mapping round-trip through
// TXXX user-text frames, so arbitrary keys survive a write/read cycle.
//
// # Concurrency
//
// A File is a single-owner session and is not safe for concurrent use.
// OpenMany opens many files read-only in parallel:
//
//	files, err := audiotag.OpenMany(ctx, paths...)
package audiotag
