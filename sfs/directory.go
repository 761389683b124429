package sfs

import "github.com/wolfiwolf/sfs/util"

// MaxFiles is the file directory's fixed capacity.
const MaxFiles = 16

// Entry is a file directory entry: the in-memory index of one known file.
type Entry struct {
	// Owner is the file's owner id.
	Owner uint32
	// LastPage is the data-region page index of the file's tail page.
	LastPage uint32
	// Offset is the number of bytes populated in LastPage.
	Offset uint32
	// Size is the file's total live byte count.
	Size uint64
}

// directory is the fixed-capacity, insertion-ordered file directory kept
// in memory for a mounted volume.
type directory struct {
	entries []Entry
}

func newDirectory() *directory {
	return &directory{entries: make([]Entry, 0, MaxFiles)}
}

// find returns a pointer to the entry owned by owner, if any. The pointer
// aliases the directory's own backing array and is invalidated by the next
// insert or delete.
func (d *directory) find(owner uint32) (*Entry, bool) {
	for i := range d.entries {
		if d.entries[i].Owner == owner {
			return &d.entries[i], true
		}
	}

	return nil, false
}

// insert adds a new entry. Returns ErrCapacity if the directory is full.
func (d *directory) insert(e Entry) error {
	if len(d.entries) >= MaxFiles {
		return ErrCapacity
	}

	d.entries = append(d.entries, e)

	return nil
}

// delete removes the entry owned by owner, compacting later entries down
// by one so the array never carries gaps. Reports whether an entry was
// found and removed.
func (d *directory) delete(owner uint32) bool {
	for i := range d.entries {
		if d.entries[i].Owner != owner {
			continue
		}

		n := len(d.entries)
		util.ShiftLeft(d.entries, i+1, n)
		d.entries = d.entries[:n-1]

		return true
	}

	return false
}

// reset empties the directory (DeleteAll).
func (d *directory) reset() {
	d.entries = d.entries[:0]
}

// list returns a copy of the directory's entries in insertion order.
func (d *directory) list() []Entry {
	out := make([]Entry, len(d.entries))
	copy(out, d.entries)

	return out
}

func (d *directory) len() int {
	return len(d.entries)
}
