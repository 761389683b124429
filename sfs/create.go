package sfs

// Create allocates one empty tail page for a new file named name. Returns
// ErrExists if name already has a directory entry, ErrInvalidName for the
// empty name, or ErrCapacity if the directory, metadata zone, or data
// region is full.
func (fs *FileSystem) Create(name string) error {
	if name == "" {
		return ErrInvalidName
	}

	owner := fs.hasher.Hash(name)
	if _, ok := fs.dir.find(owner); ok {
		return ErrExists
	}

	if fs.dir.len() >= MaxFiles {
		return ErrCapacity
	}

	slot, err := fs.getNewPage(owner, 0)
	if err != nil {
		return err
	}

	return fs.dir.insert(Entry{Owner: owner, LastPage: slot, Offset: 0, Size: 0})
}
