package audiotag

import (
	"github.com/simonhull/audiotag/internal/types"
)

// UnsupportedFormatError is an alias to types.UnsupportedFormatError.
// Re-exporting from internal/types to keep the public API in one package.
type UnsupportedFormatError = types.UnsupportedFormatError

// CorruptedFileError is an alias to types.CorruptedFileError.
// Re-exporting from internal/types to keep the public API in one package.
type CorruptedFileError = types.CorruptedFileError

// RenameError is an alias to types.RenameError.
// Re-exporting from internal/types to keep the public API in one package.
type RenameError = types.RenameError

// Sentinel errors re-exported from internal/types.
var (
	// ErrClosed is returned when operating on a closed File.
	ErrClosed = types.ErrClosed

	// ErrReadOnly is returned when writing through a read-only File.
	ErrReadOnly = types.ErrReadOnly

	// ErrNoTags is returned when a file carries no recognizable tags.
	ErrNoTags = types.ErrNoTags

	// ErrTagNotFound is returned when a named tag is absent from an
	// otherwise readable collection.
	ErrTagNotFound = types.ErrTagNotFound
)
