package sfs

import "fmt"

// Defragment compacts away tombstones: every live record at or after the
// first tombstoned slot is moved down into the earliest free slot, along
// with its data page. N is updated to the resulting live-record count.
//
// A relocation also repoints any directory entry whose tail page was just
// moved; without that fix-up a subsequent Write would append into the
// wrong (now-stale) slot.
func (fs *FileSystem) Defragment() error {
	write := uint32(0)
	moved := 0

	for write < fs.n {
		rec, err := fs.table.Read(write)
		if err != nil {
			return err
		}

		if rec.Live() {
			write++
			continue
		}

		src, found, err := fs.table.FindNextLive(write+1, fs.n)
		if err != nil {
			return err
		}
		if !found {
			break
		}

		if err := fs.movePage(src, write); err != nil {
			return err
		}

		moved++
		write++
	}

	fs.n = write

	fs.log.WithField("records_moved", moved).
		WithField("records_live", write).
		Info("sfs: volume defragmented")

	return fs.writeHeader()
}

// movePage relocates the live record and data page at src into dest, then
// tombstones src.
func (fs *FileSystem) movePage(src, dest uint32) error {
	rec, err := fs.table.Read(src)
	if err != nil {
		return err
	}
	if !rec.Live() {
		return fmt.Errorf("sfs: defragment: slot %d is not live", src)
	}

	content, err := fs.readDataPage(src)
	if err != nil {
		return err
	}

	if err := fs.dev.WritePage(fs.layout.DataPageAddr(dest), &content); err != nil {
		return fmt.Errorf("%w: moving data page %d to %d: %v", ErrDeviceError, src, dest, err)
	}

	rec.Page = dest
	if err := fs.table.Write(dest, rec); err != nil {
		return err
	}

	if err := fs.table.Tombstone(src); err != nil {
		return err
	}

	for i := range fs.dir.entries {
		if fs.dir.entries[i].LastPage == src {
			fs.dir.entries[i].LastPage = dest
		}
	}

	return nil
}
