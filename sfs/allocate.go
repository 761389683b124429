package sfs

import (
	"fmt"
	"hash/crc32"

	"github.com/wolfiwolf/sfs/blockdevice"
)

// getNewPage allocates a fresh data page for owner, writes its metadata
// record, and persists the new high-water slot count. It returns the
// logical data-region page index.
func (fs *FileSystem) getNewPage(owner uint32, sizeTaken uint32) (uint32, error) {
	if fs.n >= fs.layout.MetaCapacity || fs.n >= fs.layout.MaxDataPages {
		return 0, fmt.Errorf("%w: metadata table or data region exhausted", ErrCapacity)
	}

	slot := fs.n

	if err := fs.table.Write(slot, Record{Page: slot, Owner: owner, SizeTaken: sizeTaken}); err != nil {
		return 0, err
	}

	fs.n++
	if err := fs.writeHeader(); err != nil {
		return 0, err
	}

	return slot, nil
}

// readDataPage reads the data page backing slot.
func (fs *FileSystem) readDataPage(slot uint32) (blockdevice.Page, error) {
	var page blockdevice.Page
	if err := fs.dev.ReadPage(fs.layout.DataPageAddr(slot), &page); err != nil {
		return page, fmt.Errorf("%w: reading data page for slot %d: %v", ErrDeviceError, slot, err)
	}

	return page, nil
}

// finalizePage writes content to slot's data page and records the page's
// new size_taken and crc in its metadata record. Data pages are written
// directly through the device rather than the metadata page cache: they
// are bulk storage and would only thrash the small metadata-scoped cache.
func (fs *FileSystem) finalizePage(slot uint32, content *blockdevice.Page, sizeTaken uint32) error {
	if err := fs.dev.WritePage(fs.layout.DataPageAddr(slot), content); err != nil {
		return fmt.Errorf("%w: writing data page for slot %d: %v", ErrDeviceError, slot, err)
	}

	rec, err := fs.table.Read(slot)
	if err != nil {
		return err
	}

	rec.SizeTaken = sizeTaken
	rec.CRC = crc32.ChecksumIEEE(content[:])

	return fs.table.Write(slot, rec)
}

// rewritePage writes content to slot's data page and refreshes only its
// crc, leaving size_taken untouched. Used by offset-overwrite, which never
// changes a page's populated length.
func (fs *FileSystem) rewritePage(slot uint32, content *blockdevice.Page) error {
	if err := fs.dev.WritePage(fs.layout.DataPageAddr(slot), content); err != nil {
		return fmt.Errorf("%w: writing data page for slot %d: %v", ErrDeviceError, slot, err)
	}

	rec, err := fs.table.Read(slot)
	if err != nil {
		return err
	}

	rec.CRC = crc32.ChecksumIEEE(content[:])

	return fs.table.Write(slot, rec)
}

// forEachOwnerPage walks the metadata table in order, invoking fn for every
// live record owned by owner, passing the record's rank among that owner's
// records (the file-relative page index used by WriteAt and Read).
func (fs *FileSystem) forEachOwnerPage(owner uint32, fn func(filePage uint32, rec Record) (stop bool, err error)) error {
	filePage := uint32(0)

	return fs.table.Scan(fs.n, func(_ uint32, rec Record) (bool, error) {
		if rec.Owner != owner {
			return false, nil
		}

		stop, err := fn(filePage, rec)
		filePage++

		return stop, err
	})
}
