package sfs

import (
	"fmt"

	"github.com/wolfiwolf/sfs/sfs/pagecache"
)

// Table is the metadata table: a dense, page-packed array of Records,
// fronted by a small LRU page cache since most operations walk it from the
// start and the scan cost is O(N) in the table's high-water slot count.
type Table struct {
	cache *pagecache.Cache
}

func newTable(cache *pagecache.Cache) *Table {
	return &Table{cache: cache}
}

// Read decodes the record at slot.
func (t *Table) Read(slot uint32) (Record, error) {
	pageAddr, offset := metaSlotAddr(slot)

	page, err := t.cache.Get(pageAddr)
	if err != nil {
		return Record{}, fmt.Errorf("%w: reading metadata slot %d: %v", ErrDeviceError, slot, err)
	}

	return decodeRecord(page[offset : offset+RecordSize]), nil
}

// Write encodes rec into slot.
func (t *Table) Write(slot uint32, rec Record) error {
	pageAddr, offset := metaSlotAddr(slot)

	page, err := t.cache.Get(pageAddr)
	if err != nil {
		return fmt.Errorf("%w: reading metadata slot %d: %v", ErrDeviceError, slot, err)
	}

	buf := *page
	encodeRecord(buf[offset:offset+RecordSize], rec)

	if err := t.cache.Put(pageAddr, buf); err != nil {
		return fmt.Errorf("%w: writing metadata slot %d: %v", ErrDeviceError, slot, err)
	}

	return nil
}

// Tombstone marks slot as free by zeroing its owner field, leaving the
// rest of the record (page, size_taken, crc) untouched.
func (t *Table) Tombstone(slot uint32) error {
	rec, err := t.Read(slot)
	if err != nil {
		return err
	}

	if !rec.Live() {
		return nil
	}

	rec.Owner = 0

	return t.Write(slot, rec)
}

// ScanFunc is called for every live record encountered by Scan, in table
// order. Returning stop=true ends the scan early.
type ScanFunc func(slot uint32, rec Record) (stop bool, err error)

// Scan walks slots [0, n) in order, invoking fn for every live
// (non-tombstoned) record. n is the table's current high-water slot index.
func (t *Table) Scan(n uint32, fn ScanFunc) error {
	for slot := uint32(0); slot < n; slot++ {
		rec, err := t.Read(slot)
		if err != nil {
			return err
		}

		if !rec.Live() {
			continue
		}

		stop, err := fn(slot, rec)
		if err != nil {
			return err
		}
		if stop {
			return nil
		}
	}

	return nil
}

// FindNextLive returns the slot of the first live record at or after start,
// scanning up to (and excluding) n. It reports false if none is found.
//
// This is the move primitive's search step, used by Defragment to find a
// record to relocate into a freshly-tombstoned slot.
func (t *Table) FindNextLive(start, n uint32) (uint32, bool, error) {
	for slot := start; slot < n; slot++ {
		rec, err := t.Read(slot)
		if err != nil {
			return 0, false, err
		}
		if rec.Live() {
			return slot, true, nil
		}
	}

	return 0, false, nil
}
