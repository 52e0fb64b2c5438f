package audiotag

import (
	"github.com/simonhull/audiotag/internal/types"
)

// Collection is an alias to types.Collection.
// Re-exporting from internal/types to keep the public API in one package.
type Collection = types.Collection

// Tag is an alias to types.Tag.
// Re-exporting from internal/types to keep the public API in one package.
type Tag = types.Tag

// SimpleTag is an alias to types.SimpleTag.
// Re-exporting from internal/types to keep the public API in one package.
type SimpleTag = types.SimpleTag

// TargetType is an alias to types.TargetType.
// Re-exporting from internal/types to keep the public API in one package.
type TargetType = types.TargetType

// Target levels, from most to least specific.
const (
	TargetTrack   = types.TargetTrack
	TargetAlbum   = types.TargetAlbum
	TargetEdition = types.TargetEdition
)

// NewCollection returns an empty collection ready to be populated and
// passed to WriteTags.
func NewCollection() *Collection {
	return types.NewCollection()
}
