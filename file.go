package audiotag

import (
	"context"
	"fmt"
	"os"
	"runtime"

	"golang.org/x/sync/errgroup"

	binutil "github.com/simonhull/audiotag/internal/binary"
	"github.com/simonhull/audiotag/internal/container"
	"github.com/simonhull/audiotag/internal/id3v1"
	"github.com/simonhull/audiotag/internal/id3v2"
	"github.com/simonhull/audiotag/internal/types"
)

// File is an open tagging session on one audio file.
//
// A File owns an exclusive handle for its lifetime and caches at most one
// parsed Collection. Operations on a File are not safe for concurrent
// use; serialize them in the caller.
//
// Always call Close() when done:
//
//	file, err := audiotag.Open("song.mp3")
//	if err != nil {
//		return err
//	}
//	defer file.Close()
type File struct {
	path     string
	f        *os.File
	size     int64
	writable bool
	opts     openOptions

	// Probed layout, refreshed after every successful write.
	container   container.Info
	hasID3v2    bool
	header      id3v2.Header
	tagOffset   int64
	audioOffset int64
	hasID3v1    bool

	// Session cache: the one live collection for this handle.
	cached *types.Collection
}

// Open opens an audio file for reading tags.
//
// The file's layout is probed immediately: container wrapping (WAV, AVI,
// AIFF) or raw stream (MP3, AAC), and the location of any existing ID3v2
// tag. Tag bytes themselves are not parsed until ReadTags is called.
func Open(path string, opts ...Option) (*File, error) {
	return open(path, false, opts)
}

// OpenReadWrite opens an audio file for reading and writing tags.
func OpenReadWrite(path string, opts ...Option) (*File, error) {
	return open(path, true, opts)
}

func open(path string, writable bool, opts []Option) (*File, error) {
	options := defaultOptions()
	for _, opt := range opts {
		opt(&options)
	}

	flag := os.O_RDONLY
	if writable {
		flag = os.O_RDWR
	}

	h, err := os.OpenFile(path, flag, 0)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}

	f := &File{
		path:     path,
		f:        h,
		writable: writable,
		opts:     options,
	}

	if err := f.probe(); err != nil {
		h.Close()
		return nil, err
	}

	return f, nil
}

// probe refreshes the session's view of the file layout: container
// detection, ID3v2 header location, audio start offset, and the legacy
// ID3v1 fallback. Parse failures of the tag header are not errors here;
// they simply mean "no usable tag".
func (f *File) probe() error {
	fi, err := f.f.Stat()
	if err != nil {
		return fmt.Errorf("stat file: %w", err)
	}
	f.size = fi.Size()

	sr := f.reader()

	info, err := container.Detect(sr)
	if err != nil {
		return err
	}
	f.container = info

	f.hasID3v2 = false
	f.hasID3v1 = false
	f.tagOffset = 0
	f.audioOffset = 0

	if info.Kind == container.KindNone {
		// Raw stream: an ID3v2 tag is prepended at offset 0.
		if hdr, err := id3v2.ReadHeader(sr, 0); err == nil {
			f.hasID3v2 = true
			f.header = hdr
			f.audioOffset = hdr.TotalSize()
		}

		if f.opts.legacyFallback {
			f.hasID3v1 = id3v1.Detect(sr)
		}
		return nil
	}

	// Container: the tag lives inside the ID3 chunk, if present.
	if info.HasChunk {
		if hdr, err := id3v2.ReadHeader(sr, info.DataOffset); err == nil {
			f.hasID3v2 = true
			f.header = hdr
			f.tagOffset = info.DataOffset
		}
	}
	return nil
}

// reader returns a bounds-checked reader over the current handle.
func (f *File) reader() *binutil.SafeReader {
	return binutil.NewSafeReader(f.f, f.size, f.path)
}

// Close releases the file handle and drops the cached collection.
// After Close the File rejects all operations with ErrClosed.
func (f *File) Close() error {
	if f.f == nil {
		return nil
	}
	err := f.f.Close()
	f.f = nil
	f.cached = nil
	return err
}

// IsOpen reports whether the session still holds a usable handle.
func (f *File) IsOpen() bool {
	return f != nil && f.f != nil
}

// Path returns the path the session was opened with.
func (f *File) Path() string {
	return f.path
}

// Size returns the file size as of the last probe.
func (f *File) Size() int64 {
	return f.size
}

// OpenMany opens multiple files read-only, in parallel.
//
// Files are probed using up to runtime.NumCPU() goroutines. Results are
// returned in the same order as the input paths. If any open fails, all
// successfully opened files are closed and an error is returned.
func OpenMany(ctx context.Context, paths ...string) ([]*File, error) {
	if len(paths) == 0 {
		return nil, nil
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())

	results := make([]*File, len(paths))

	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			file, err := Open(path)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}

			results[i] = file
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		for _, file := range results {
			if file != nil {
				file.Close()
			}
		}
		return nil, err
	}

	return results, nil
}
