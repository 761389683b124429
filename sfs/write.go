package sfs

import "github.com/wolfiwolf/sfs/blockdevice"

// Write appends buf to name, splitting across newly allocated pages as
// needed. Exactly-aligned spills (the trailing page would hold 0 bytes)
// are normalized: no zero-size tail page is allocated; the previous
// middle page keeps size_taken == 512 and becomes the tail instead.
func (fs *FileSystem) Write(name string, buf []byte) error {
	owner := fs.hasher.Hash(name)

	entry, ok := fs.dir.find(owner)
	if !ok {
		return ErrNotFound
	}

	dataLen := uint32(len(buf))
	if dataLen == 0 {
		return nil
	}

	owner = entry.Owner
	tailSlot := entry.LastPage
	offset := entry.Offset

	if offset+dataLen <= blockdevice.PageSize {
		page, err := fs.readDataPage(tailSlot)
		if err != nil {
			return err
		}

		copy(page[offset:offset+dataLen], buf)

		if err := fs.finalizePage(tailSlot, &page, offset+dataLen); err != nil {
			return err
		}

		entry.Offset = offset + dataLen
		entry.Size += uint64(dataLen)

		return nil
	}

	firstPartSize := blockdevice.PageSize - offset
	total := offset + dataLen
	lastPartSize := total % blockdevice.PageSize
	numMiddleParts := total/blockdevice.PageSize - 1

	page, err := fs.readDataPage(tailSlot)
	if err != nil {
		return err
	}

	copy(page[offset:blockdevice.PageSize], buf[:firstPartSize])

	if err := fs.finalizePage(tailSlot, &page, blockdevice.PageSize); err != nil {
		return err
	}

	bufPos := firstPartSize

	for i := uint32(0); i < numMiddleParts; i++ {
		slot, err := fs.getNewPage(owner, blockdevice.PageSize)
		if err != nil {
			return err
		}

		var mid blockdevice.Page
		copy(mid[:], buf[bufPos:bufPos+blockdevice.PageSize])

		if err := fs.finalizePage(slot, &mid, blockdevice.PageSize); err != nil {
			return err
		}

		tailSlot = slot
		bufPos += blockdevice.PageSize
	}

	if lastPartSize == 0 {
		entry.LastPage = tailSlot
		entry.Offset = blockdevice.PageSize
		entry.Size += uint64(dataLen)

		return nil
	}

	slot, err := fs.getNewPage(owner, lastPartSize)
	if err != nil {
		return err
	}

	var tail blockdevice.Page
	copy(tail[:], buf[bufPos:bufPos+lastPartSize])

	if err := fs.finalizePage(slot, &tail, lastPartSize); err != nil {
		return err
	}

	entry.LastPage = slot
	entry.Offset = lastPartSize
	entry.Size += uint64(dataLen)

	return nil
}
