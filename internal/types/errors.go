package types

import (
	"errors"
	"fmt"
)

// Sentinel errors for session state and tag lookup.
var (
	// ErrClosed is returned when an operation is attempted on a closed File.
	ErrClosed = errors.New("file not open")

	// ErrReadOnly is returned when a write is attempted on a File opened
	// with Open instead of OpenReadWrite.
	ErrReadOnly = errors.New("file opened read-only")

	// ErrNoTags is returned when a file carries neither an ID3v2 tag nor a
	// legacy ID3v1 tag.
	ErrNoTags = errors.New("no tags found")

	// ErrTagNotFound is returned when a collection exists but lacks the
	// requested name.
	ErrTagNotFound = errors.New("tag not found")

	// ErrInsufficientSpace signals that an in-place write does not fit in
	// the existing tag space. It never escapes the write orchestrator; it
	// is the fall-through signal to the next strategy tier.
	ErrInsufficientSpace = errors.New("not enough space for in-place write")
)

// UnsupportedFormatError is returned when a file carries no recognizable
// tag magic, or a tag of a version this library does not support.
type UnsupportedFormatError struct {
	Path   string
	Reason string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("%s: unsupported format: %s", e.Path, e.Reason)
}

// CorruptedFileError is returned when tag structure is invalid: a syncsafe
// size byte with its high bit set, or a declared size running past the
// available bytes.
type CorruptedFileError struct {
	Path   string
	Reason string
	Offset int64
}

func (e *CorruptedFileError) Error() string {
	return fmt.Sprintf("%s: corrupted tag at offset %d: %s", e.Path, e.Offset, e.Reason)
}

// RenameError is returned when the atomic temp-file swap fails after both
// files were written. HandleRestored reports whether the session was able
// to reopen the original path, leaving it usable (if stale).
type RenameError struct {
	Path           string
	HandleRestored bool
	Err            error
}

func (e *RenameError) Error() string {
	return fmt.Sprintf("%s: rename failed: %v", e.Path, e.Err)
}

func (e *RenameError) Unwrap() error {
	return e.Err
}
