package types

import "strings"

// TargetType identifies the scope a Tag applies to. The ID3v2 codec only
// produces album/file-level tags; the other values exist for API
// compatibility with richer tagging schemes.
type TargetType int

const (
	// TargetTrack scopes a tag to a single track.
	TargetTrack TargetType = 30
	// TargetAlbum scopes a tag to the whole album/file. This is the only
	// target the ID3v2 codec populates.
	TargetAlbum TargetType = 50
	// TargetEdition scopes a tag to an edition/issue.
	TargetEdition TargetType = 60
)

// Collection is the root of the in-memory tag model: an ordered list of
// Tags as read from (or to be written to) one file.
//
// A File caches at most one live Collection per session. Mutating
// operations (SetTag, RemoveTag) build a fresh Collection by
// filter-then-append over the cached one rather than modifying it.
type Collection struct {
	Tags []*Tag
}

// Tag groups the simple tags for one target scope.
type Tag struct {
	Target TargetType

	// UID lists are carried for forward compatibility with scoped tagging;
	// the ID3v2 codec never populates them.
	TrackUIDs   []uint64
	EditionUIDs []uint64
	ChapterUIDs []uint64

	Simple []*SimpleTag
}

// SimpleTag is one name/value pair. A simple tag is either textual (Value)
// or binary (Binary), never both. Language is an optional 3-letter code.
// Nested children are only used by the comment mapping today.
type SimpleTag struct {
	Name     string
	Value    string
	Binary   []byte
	Language string
	Nested   []*SimpleTag
}

// NewCollection returns an empty collection.
func NewCollection() *Collection {
	return &Collection{}
}

// AddTag appends a new Tag with the given target scope and returns it.
func (c *Collection) AddTag(target TargetType) *Tag {
	t := &Tag{Target: target}
	c.Tags = append(c.Tags, t)
	return t
}

// Find returns the first simple tag whose name matches (case-insensitive
// ASCII) and carries a textual value. Returns nil if absent.
func (c *Collection) Find(name string) *SimpleTag {
	for _, tag := range c.Tags {
		for _, st := range tag.Simple {
			if st.Binary == nil && strings.EqualFold(st.Name, name) {
				return st
			}
		}
	}
	return nil
}

// AddSimple appends a textual simple tag and returns it.
func (t *Tag) AddSimple(name, value string) *SimpleTag {
	st := &SimpleTag{Name: name, Value: value}
	t.Simple = append(t.Simple, st)
	return st
}

// AddBinary appends a binary simple tag and returns it.
func (t *Tag) AddBinary(name string, data []byte) *SimpleTag {
	st := &SimpleTag{Name: name, Binary: data}
	t.Simple = append(t.Simple, st)
	return st
}

// AddTrackUID records a track UID on the tag (forward compatibility only).
func (t *Tag) AddTrackUID(uid uint64) {
	t.TrackUIDs = append(t.TrackUIDs, uid)
}

// AddNested appends a nested child simple tag and returns it.
func (st *SimpleTag) AddNested(name, value string) *SimpleTag {
	child := &SimpleTag{Name: name, Value: value}
	st.Nested = append(st.Nested, child)
	return child
}

// SetLanguage sets the 3-letter language code. An empty string clears it.
func (st *SimpleTag) SetLanguage(lang string) {
	st.Language = lang
}

// Clone returns a deep copy of the simple tag, excluding nested children.
// Used by the read-modify-write path so the cached collection is never
// aliased by a collection under construction.
func (st *SimpleTag) Clone() *SimpleTag {
	c := &SimpleTag{
		Name:     st.Name,
		Value:    st.Value,
		Language: st.Language,
	}
	if len(st.Binary) > 0 {
		c.Binary = make([]byte, len(st.Binary))
		copy(c.Binary, st.Binary)
	}
	return c
}
