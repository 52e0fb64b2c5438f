package audiotag

import (
	"github.com/simonhull/audiotag/internal/id3v1"
	"github.com/simonhull/audiotag/internal/id3v2"
	"github.com/simonhull/audiotag/internal/types"
)

// ReadTags returns the file's full tag collection.
//
// The collection is parsed on first call and cached for the session; any
// write invalidates the cache. The returned collection is owned by the
// File: treat it as read-only and build a fresh one for WriteTags.
//
// Returns ErrNoTags when the file carries neither an ID3v2 tag nor a
// legacy ID3v1 tag.
func (f *File) ReadTags() (*Collection, error) {
	if f.f == nil {
		return nil, ErrClosed
	}

	if f.cached != nil {
		return f.cached, nil
	}

	if f.hasID3v2 {
		frames, err := id3v2.ReadFrames(f.reader(), f.tagOffset, f.header)
		if err != nil {
			return nil, err
		}
		f.cached = id3v2.FramesToCollection(frames)
		return f.cached, nil
	}

	// Legacy fallback, raw streams only.
	if f.hasID3v1 {
		coll, err := id3v1.Read(f.reader())
		if err != nil {
			return nil, err
		}
		f.cached = coll
		return f.cached, nil
	}

	return nil, ErrNoTags
}

// ReadTag returns the value of a single named tag. Name comparison is
// case-insensitive ASCII.
//
// Returns ErrNoTags when the file has no tags at all, and ErrTagNotFound
// when a collection exists but lacks the name.
func (f *File) ReadTag(name string) (string, error) {
	coll, err := f.ReadTags()
	if err != nil {
		return "", err
	}

	if st := coll.Find(name); st != nil {
		return st.Value, nil
	}
	return "", types.ErrTagNotFound
}
