package audiotag

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/simonhull/audiotag/internal/container"
	"github.com/simonhull/audiotag/internal/id3v2"
	"github.com/simonhull/audiotag/internal/types"
)

// writeStrategy attempts one placement of the serialized frame body.
// It returns applied=false when the strategy does not apply to the
// current layout (the orchestrator then falls through to the next tier);
// applied=true with a nil or non-nil error when it ran.
type writeStrategy func(frames []byte) (applied bool, err error)

// WriteTags replaces the file's tags with the given collection.
//
// The collection is borrowed for the duration of the call. The cheapest
// safe strategy is chosen: patching existing tag space in place, appending
// a new chunk (containers only), or a full rewrite through a same-directory
// temporary file with an atomic rename. Every successful write invalidates
// the cached collection and re-probes the layout, so subsequent reads see
// the new state.
func (f *File) WriteTags(coll *Collection) error {
	if f.f == nil {
		return ErrClosed
	}
	if !f.writable {
		return ErrReadOnly
	}
	if coll == nil {
		return errors.New("collection must not be nil")
	}

	frames := id3v2.SerializeFrames(coll)

	// Invalidate before any I/O so a reader can never observe a
	// half-written state through the cache.
	f.cached = nil

	var strategies []writeStrategy
	if f.container.Kind == container.KindNone {
		strategies = []writeStrategy{f.writeRawInPlace, f.writeRawRewrite}
	} else {
		strategies = []writeStrategy{f.writeChunkInPlace, f.writeChunkAppend, f.writeChunkRewrite}
	}

	for _, strategy := range strategies {
		applied, err := strategy(frames)
		if !applied {
			continue
		}
		if err != nil {
			return err
		}
		return f.probe()
	}

	// Unreachable: the last tier of each list always applies.
	return types.ErrInsufficientSpace
}

// SetTag sets or replaces a single named tag, preserving all other
// existing entries verbatim. Implemented as read-modify-write over the
// full collection.
func (f *File) SetTag(name, value string) error {
	return f.replaceTag(name, &value)
}

// RemoveTag removes a single named tag, preserving all other entries.
// Reading the name back afterwards fails with ErrTagNotFound.
func (f *File) RemoveTag(name string) error {
	return f.replaceTag(name, nil)
}

// replaceTag builds a fresh collection from the current one, dropping any
// entry matching name and appending the replacement value if non-nil.
// The cached collection is only borrowed; the new collection owns clones.
func (f *File) replaceTag(name string, value *string) error {
	if f.f == nil {
		return ErrClosed
	}
	if !f.writable {
		return ErrReadOnly
	}
	if name == "" {
		return errors.New("tag name must not be empty")
	}

	// A file with no readable tags starts from an empty collection.
	existing, _ := f.ReadTags()

	work := NewCollection()
	wtag := work.AddTag(TargetAlbum)

	if existing != nil {
		for _, tag := range existing.Tags {
			for _, st := range tag.Simple {
				if strings.EqualFold(st.Name, name) {
					continue
				}
				wtag.Simple = append(wtag.Simple, st.Clone())
			}
		}
	}

	if value != nil {
		wtag.AddSimple(name, *value)
	}

	return f.WriteTags(work)
}

// ------------------------------------------------------------------
// Raw-stream strategies
// ------------------------------------------------------------------

// writeRawInPlace patches an existing prepended tag without changing the
// file length: the header keeps the original declared size, the new
// frames follow it, and zero padding fills the remainder.
func (f *File) writeRawInPlace(frames []byte) (bool, error) {
	if !f.hasID3v2 {
		return false, nil
	}

	available := f.header.Size
	if uint32(len(frames)) > available {
		return false, nil
	}

	hdr := id3v2.BuildHeader(available)
	if _, err := f.f.WriteAt(hdr, f.tagOffset); err != nil {
		return true, fmt.Errorf("write tag header: %w", err)
	}
	if _, err := f.f.WriteAt(frames, f.tagOffset+id3v2.HeaderSize); err != nil {
		return true, fmt.Errorf("write frames: %w", err)
	}

	padOff := f.tagOffset + id3v2.HeaderSize + int64(len(frames))
	if err := writeZeros(f.f, padOff, available-uint32(len(frames))); err != nil {
		return true, err
	}

	if err := f.f.Sync(); err != nil {
		return true, fmt.Errorf("sync after in-place write: %w", err)
	}
	return true, nil
}

// writeRawRewrite builds a fresh tag (frames plus the default padding
// allowance), writes it to a temporary file, copies all audio bytes from
// the original, and atomically swaps the files.
func (f *File) writeRawRewrite(frames []byte) (bool, error) {
	audioStart := f.audioOffset
	audioLen := f.size - audioStart

	err := f.rewriteVia(func(tmp *os.File) error {
		bodySize := uint32(len(frames)) + f.opts.padding

		if _, err := tmp.Write(id3v2.BuildHeader(bodySize)); err != nil {
			return fmt.Errorf("write tag header: %w", err)
		}
		if _, err := tmp.Write(frames); err != nil {
			return fmt.Errorf("write frames: %w", err)
		}
		if _, err := tmp.Write(make([]byte, f.opts.padding)); err != nil {
			return fmt.Errorf("write padding: %w", err)
		}

		audio := io.NewSectionReader(f.f, audioStart, audioLen)
		if _, err := io.Copy(tmp, audio); err != nil {
			return fmt.Errorf("copy audio data: %w", err)
		}
		return nil
	})
	return true, err
}

// ------------------------------------------------------------------
// Container strategies
// ------------------------------------------------------------------

// writeChunkInPlace overwrites the existing ID3 chunk's data region: a
// header sized to exactly fill the chunk, the frames, and zero padding.
// The surrounding chunk list is untouched.
func (f *File) writeChunkInPlace(frames []byte) (bool, error) {
	if !f.container.HasChunk {
		return false, nil
	}

	available := f.container.DataSize
	needed := uint32(id3v2.HeaderSize + len(frames))
	if needed > available {
		return false, nil
	}

	hdr := id3v2.BuildHeader(available - id3v2.HeaderSize)
	dataOff := f.container.DataOffset

	if _, err := f.f.WriteAt(hdr, dataOff); err != nil {
		return true, fmt.Errorf("write tag header: %w", err)
	}
	if _, err := f.f.WriteAt(frames, dataOff+id3v2.HeaderSize); err != nil {
		return true, fmt.Errorf("write frames: %w", err)
	}

	if err := writeZeros(f.f, dataOff+int64(needed), available-needed); err != nil {
		return true, err
	}

	if err := f.f.Sync(); err != nil {
		return true, fmt.Errorf("sync after in-place write: %w", err)
	}
	return true, nil
}

// writeChunkAppend adds a brand-new ID3 chunk at end-of-file when none
// exists, and patches the outer total-size field.
func (f *File) writeChunkAppend(frames []byte) (bool, error) {
	if f.container.HasChunk {
		return false, nil
	}

	tagData := f.buildFullTag(frames)
	return true, container.AppendChunk(f.f, &f.container, tagData)
}

// writeChunkRewrite copies the container chunk-by-chunk into a temporary
// file, dropping the undersized old ID3 chunk and appending the new one,
// then atomically swaps the files.
func (f *File) writeChunkRewrite(frames []byte) (bool, error) {
	if !f.container.HasChunk {
		return false, nil
	}

	tagData := f.buildFullTag(frames)
	info := f.container

	err := f.rewriteVia(func(tmp *os.File) error {
		return container.Rewrite(tmp, f.reader(), info, tagData)
	})
	return true, err
}

// buildFullTag assembles a complete tag image: header, frames, and the
// default padding allowance.
func (f *File) buildFullTag(frames []byte) []byte {
	bodySize := uint32(len(frames)) + f.opts.padding
	tag := make([]byte, id3v2.HeaderSize+bodySize)
	copy(tag, id3v2.BuildHeader(bodySize))
	copy(tag[id3v2.HeaderSize:], frames)
	return tag
}

// ------------------------------------------------------------------
// Temp-file swap
// ------------------------------------------------------------------

// rewriteVia runs the crash-safe rewrite ceremony: write the replacement
// file via the callback into a same-directory temp file, fsync, close
// both handles, atomically rename over the original, and reopen.
//
// The temp file is always unlinked on failure. If the rename itself
// fails, the original path is reopened so the session keeps a usable (if
// stale) handle, and a RenameError is returned.
func (f *File) rewriteVia(write func(tmp *os.File) error) error {
	dir := filepath.Dir(f.path)
	tmp, err := os.CreateTemp(dir, ".audiotag-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	success := false
	defer func() {
		if !success {
			tmp.Close()
			os.Remove(tmpPath)
		}
	}()

	if err := write(tmp); err != nil {
		return err
	}

	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}

	// Both files must be closed before the swap.
	f.f.Close()
	f.f = nil

	if err := os.Rename(tmpPath, f.path); err != nil {
		os.Remove(tmpPath)
		success = true
		restored := f.reopen() == nil
		return &types.RenameError{
			Path:           f.path,
			HandleRestored: restored,
			Err:            err,
		}
	}

	success = true
	return f.reopen()
}

// reopen re-acquires the session handle in its original mode.
func (f *File) reopen() error {
	flag := os.O_RDONLY
	if f.writable {
		flag = os.O_RDWR
	}

	h, err := os.OpenFile(f.path, flag, 0)
	if err != nil {
		return fmt.Errorf("reopen after rewrite: %w", err)
	}
	f.f = h
	return nil
}

// writeZeros zero-fills count bytes starting at off, in 4 KiB blocks.
func writeZeros(f *os.File, off int64, count uint32) error {
	zeros := make([]byte, 4096)
	for count > 0 {
		n := count
		if n > uint32(len(zeros)) {
			n = uint32(len(zeros))
		}
		if _, err := f.WriteAt(zeros[:n], off); err != nil {
			return fmt.Errorf("write padding: %w", err)
		}
		off += int64(n)
		count -= n
	}
	return nil
}
