package sfs

import "github.com/wolfiwolf/sfs/blockdevice"

// Read fills buf with up to len(buf) bytes from name starting at logical
// offset off. If off+len(buf) exceeds the file's size, Read fills buf with
// as many bytes as are available, returns that count, and ErrOutOfBounds.
func (fs *FileSystem) Read(name string, buf []byte, off uint64) (int, error) {
	owner := fs.hasher.Hash(name)

	entry, ok := fs.dir.find(owner)
	if !ok {
		return 0, ErrNotFound
	}

	if off > entry.Size {
		return 0, ErrOutOfBounds
	}

	avail := entry.Size - off
	readLen := uint64(len(buf))
	truncated := false

	if readLen > avail {
		readLen = avail
		truncated = true
	}

	if readLen == 0 {
		if truncated {
			return 0, ErrOutOfBounds
		}

		return 0, nil
	}

	firstPage := uint32(off / blockdevice.PageSize)
	firstPageOffset := uint32(off % blockdevice.PageSize)
	firstPageSize := blockdevice.PageSize - firstPageOffset

	total := off + readLen
	lastPage := uint32(total / blockdevice.PageSize)
	lastPageSize := uint32(total % blockdevice.PageSize)

	if lastPageSize == 0 {
		lastPage--
		lastPageSize = blockdevice.PageSize
	}

	singlePage := firstPage == lastPage

	if singlePage {
		firstPageSize = uint32(readLen)
		lastPageSize = 0
	}

	startMiddle := false
	middleCount := uint32(0)

	err := fs.forEachOwnerPage(owner, func(filePage uint32, rec Record) (bool, error) {
		switch {
		case filePage == firstPage:
			page, err := fs.readDataPage(rec.Page)
			if err != nil {
				return false, err
			}

			copy(buf[:firstPageSize], page[firstPageOffset:firstPageOffset+firstPageSize])

			if singlePage {
				return true, nil
			}

			startMiddle = true

			return false, nil

		case filePage == lastPage:
			page, err := fs.readDataPage(rec.Page)
			if err != nil {
				return false, err
			}

			dst := buf[firstPageSize+middleCount*blockdevice.PageSize:]
			copy(dst[:lastPageSize], page[:lastPageSize])

			return true, nil

		case startMiddle:
			page, err := fs.readDataPage(rec.Page)
			if err != nil {
				return false, err
			}

			dst := buf[firstPageSize+middleCount*blockdevice.PageSize:]
			copy(dst[:blockdevice.PageSize], page[:])
			middleCount++

			return false, nil

		default:
			return false, nil
		}
	})
	if err != nil {
		return 0, err
	}

	if truncated {
		return int(readLen), ErrOutOfBounds
	}

	return int(readLen), nil
}
