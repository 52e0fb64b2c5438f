package container

import (
	"fmt"
	"os"

	binutil "github.com/simonhull/audiotag/internal/binary"
)

// copyBufferSize is the block size for chunk copies during a rewrite.
const copyBufferSize = 64 * 1024

// AppendChunk writes a new ID3 chunk holding tagData at the end of the
// file, pads it to an even length, and patches the outer total-size field
// in place. info is updated to describe the new chunk.
func AppendChunk(f *os.File, info *Info, tagData []byte) error {
	fi, err := f.Stat()
	if err != nil {
		return fmt.Errorf("stat before append: %w", err)
	}
	fsize := fi.Size()

	tagSize := uint32(len(tagData))
	chdr := make([]byte, chunkHeaderSize)
	copy(chdr, info.Kind.TagChunkID())
	binutil.PutUint32(chdr[4:8], tagSize, info.Kind.byteOrder())

	if _, err := f.WriteAt(chdr, fsize); err != nil {
		return fmt.Errorf("write chunk header: %w", err)
	}
	if _, err := f.WriteAt(tagData, fsize+chunkHeaderSize); err != nil {
		return fmt.Errorf("write chunk data: %w", err)
	}

	added := uint32(chunkHeaderSize) + tagSize
	if tagSize&1 != 0 {
		if _, err := f.WriteAt([]byte{0}, fsize+chunkHeaderSize+int64(tagSize)); err != nil {
			return fmt.Errorf("write pad byte: %w", err)
		}
		added++
	}

	newTotal := info.TotalSize + added
	sizeBytes := make([]byte, 4)
	binutil.PutUint32(sizeBytes, newTotal, info.Kind.byteOrder())
	if _, err := f.WriteAt(sizeBytes, 4); err != nil {
		return fmt.Errorf("update container size: %w", err)
	}

	if err := f.Sync(); err != nil {
		return fmt.Errorf("sync after append: %w", err)
	}

	info.TotalSize = newTotal
	info.HasChunk = true
	info.Offset = fsize
	info.DataSize = tagSize
	info.DataOffset = fsize + chunkHeaderSize
	return nil
}

// Rewrite copies the container from src into dst chunk by chunk, omitting
// any existing ID3 chunk, then appends a new ID3 chunk holding tagData
// where the old chunks ended and fixes the outer total-size field. dst is
// expected to be an empty temp file; the caller owns syncing, renaming
// and reprobing.
func Rewrite(dst *os.File, src *binutil.SafeReader, info Info, tagData []byte) error {
	header := make([]byte, headerSize)
	if err := src.ReadAt(header, 0, "container header"); err != nil {
		return err
	}
	if _, err := dst.Write(header); err != nil {
		return fmt.Errorf("write container header: %w", err)
	}

	skipID := info.Kind.TagChunkID()
	pos := int64(headerSize)
	end := int64(chunkHeaderSize) + int64(info.TotalSize)
	if fsize := src.Size(); end > fsize {
		end = fsize
	}

	dstLen := int64(headerSize)

	for pos+chunkHeaderSize <= end {
		chdr := make([]byte, chunkHeaderSize)
		if err := src.ReadAt(chdr, pos, "chunk header"); err != nil {
			break
		}

		chunkSize := binutil.Uint32(chdr[4:8], info.Kind.byteOrder())

		chunkTotal := int64(chunkHeaderSize) + int64(chunkSize)
		if chunkSize&1 != 0 {
			chunkTotal++
		}
		if pos+chunkTotal > end {
			chunkTotal = end - pos
		}

		if string(chdr[0:4]) == skipID {
			pos += chunkTotal
			continue
		}

		if err := copyRange(dst, src, pos, chunkTotal); err != nil {
			return err
		}
		dstLen += chunkTotal
		pos += chunkTotal
	}

	// Append the new ID3 chunk where the old chunks ended.
	tagSize := uint32(len(tagData))
	newChdr := make([]byte, chunkHeaderSize)
	copy(newChdr, skipID)
	binutil.PutUint32(newChdr[4:8], tagSize, info.Kind.byteOrder())

	if _, err := dst.Write(newChdr); err != nil {
		return fmt.Errorf("write new chunk header: %w", err)
	}
	if _, err := dst.Write(tagData); err != nil {
		return fmt.Errorf("write new chunk data: %w", err)
	}
	dstLen += chunkHeaderSize + int64(tagSize)

	if tagSize&1 != 0 {
		if _, err := dst.Write([]byte{0}); err != nil {
			return fmt.Errorf("write pad byte: %w", err)
		}
		dstLen++
	}

	// Outer total size covers everything after the magic and size fields.
	sizeBytes := make([]byte, 4)
	binutil.PutUint32(sizeBytes, uint32(dstLen-chunkHeaderSize), info.Kind.byteOrder())
	if _, err := dst.WriteAt(sizeBytes, 4); err != nil {
		return fmt.Errorf("update container size: %w", err)
	}

	return nil
}

// copyRange copies n bytes starting at off from src to dst sequentially.
func copyRange(dst *os.File, src *binutil.SafeReader, off, n int64) error {
	buf := make([]byte, copyBufferSize)
	for n > 0 {
		chunk := n
		if chunk > int64(len(buf)) {
			chunk = int64(len(buf))
		}
		if err := src.ReadAt(buf[:chunk], off, "chunk data"); err != nil {
			return err
		}
		if _, err := dst.Write(buf[:chunk]); err != nil {
			return fmt.Errorf("copy chunk data: %w", err)
		}
		off += chunk
		n -= chunk
	}
	return nil
}
