package blockdevice

import (
	"errors"
	"fmt"
	"os"
)

// FileDevice persists pages to a single contiguous file on disk.
//
// Unlike a sharded multi-file store, FileDevice addresses every page
// directly at byte offset addr*PageSize within one file. This fits SFS,
// whose page space is bounded by the volume's capacity at creation time
// (there is no growing/shrinking ID space to shard across, the way a
// general-purpose page store might have).
//
// Once instantiated via NewFileDevice it is ready for use; no separate
// initialization step is required of the caller.
type FileDevice struct {
	path      string
	file      *os.File
	pageCount uint32
}

// NewFileDevice opens (or creates) the file at path as a block device with
// room for pageCount pages.
//
// If the file does not yet exist, or exists but is shorter than
// pageCount*PageSize bytes, it is created/extended and zero-filled. An
// existing, already-sized file is opened as-is, preserving its contents.
func NewFileDevice(path string, pageCount uint32) (*FileDevice, error) {
	file, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0666)
	if err != nil {
		return nil, fmt.Errorf("blockdevice: IO error while opening device file: %w", err)
	}

	d := &FileDevice{path: path, file: file, pageCount: pageCount}

	if err := d.ensureSize(); err != nil {
		file.Close()
		return nil, err
	}

	return d, nil
}

func (d *FileDevice) ensureSize() error {
	wantSize := int64(d.pageCount) * PageSize

	info, err := d.file.Stat()
	if err != nil {
		return fmt.Errorf("blockdevice: IO error while stat'ing device file: %w", err)
	}

	if info.Size() >= wantSize {
		return nil
	}

	if err := d.file.Truncate(wantSize); err != nil {
		return fmt.Errorf("blockdevice: IO error while sizing device file: %w", err)
	}

	return nil
}

func (d *FileDevice) PageCount() uint32 {
	return d.pageCount
}

func (d *FileDevice) ReadPage(addr uint32, into *Page) error {
	if addr >= d.pageCount {
		return fmt.Errorf("blockdevice: page %d out of range (capacity %d)", addr, d.pageCount)
	}

	_, err := d.file.ReadAt(into[:], int64(addr)*PageSize)
	if err != nil && !errors.Is(err, os.ErrClosed) {
		return fmt.Errorf("blockdevice: IO error while reading page %d: %w", addr, err)
	}

	return nil
}

func (d *FileDevice) WritePage(addr uint32, from *Page) error {
	if addr >= d.pageCount {
		return fmt.Errorf("blockdevice: page %d out of range (capacity %d)", addr, d.pageCount)
	}

	if _, err := d.file.WriteAt(from[:], int64(addr)*PageSize); err != nil {
		return fmt.Errorf("blockdevice: IO error while writing page %d: %w", addr, err)
	}

	return nil
}

// Close flushes and closes the underlying file.
//
// After Close returns, the FileDevice must not be used further.
func (d *FileDevice) Close() error {
	if err := d.file.Sync(); err != nil {
		return fmt.Errorf("blockdevice: IO error while syncing device file: %w", err)
	}

	if err := d.file.Close(); err != nil {
		return fmt.Errorf("blockdevice: IO error while closing device file: %w", err)
	}

	return nil
}
