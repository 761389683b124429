package sfs

// Delete tombstones every metadata record owned by name and removes its
// directory entry. Data pages are left untouched until Defragment. N is
// not decremented here; it only changes in Defragment (N is the
// high-water slot count that getNewPage advances).
func (fs *FileSystem) Delete(name string) error {
	if name == "" {
		return ErrInvalidName
	}

	owner := fs.hasher.Hash(name)

	if !fs.dir.delete(owner) {
		return ErrNotFound
	}

	return fs.table.Scan(fs.n, func(slot uint32, rec Record) (bool, error) {
		if rec.Owner != owner {
			return false, nil
		}

		return false, fs.table.Tombstone(slot)
	})
}

// DeleteAll resets the directory and the high-water slot count to empty.
// On-disk metadata records are left as-is; they become unreachable because
// the next allocation starts again from slot 0.
func (fs *FileSystem) DeleteAll() error {
	fs.dir.reset()
	fs.n = 0

	return fs.writeHeader()
}
