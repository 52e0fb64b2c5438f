package audiotag

import "github.com/simonhull/audiotag/internal/id3v2"

// Option configures behavior when opening audio files.
//
// Options use the functional options pattern for clean, extensible APIs.
//
// Example:
//
//	file, err := audiotag.OpenReadWrite("song.mp3",
//	    audiotag.WithPadding(8192),
//	)
type Option func(*openOptions)

// openOptions holds configuration for opening files.
type openOptions struct {
	padding        uint32 // Padding added when a tag region is (re)created
	legacyFallback bool   // Consult ID3v1 when no ID3v2 tag exists
}

// defaultOptions returns the default configuration.
func defaultOptions() openOptions {
	return openOptions{
		padding:        id3v2.DefaultPadding,
		legacyFallback: true,
	}
}

// WithPadding sets the padding allowance, in bytes, reserved after the
// frames whenever a tag region is newly created or rewritten.
//
// Padding lets later, slightly larger tags be written in place without
// rewriting the whole file. The default is 4096 bytes. Padding is not
// added when an existing region is large enough and patched in place.
//
// Example:
//
//	// Batch jobs that write once and never update can skip padding.
//	file, err := audiotag.OpenReadWrite("song.wav", audiotag.WithPadding(0))
func WithPadding(bytes uint32) Option {
	return func(o *openOptions) {
		o.padding = bytes
	}
}

// WithoutLegacyTags disables the ID3v1 fallback.
//
// By default, a raw stream with no ID3v2 tag is checked for a legacy
// 128-byte ID3v1 tag at end-of-file, and its fields are surfaced through
// ReadTags. With this option such files report ErrNoTags instead.
//
// Example:
//
//	file, err := audiotag.Open("song.mp3", audiotag.WithoutLegacyTags())
func WithoutLegacyTags() Option {
	return func(o *openOptions) {
		o.legacyFallback = false
	}
}
