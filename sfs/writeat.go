package sfs

import (
	"github.com/wolfiwolf/sfs/blockdevice"
	"github.com/wolfiwolf/sfs/util"
)

// WriteAt overlays len(buf) bytes at logical offset off. The overlapping
// portion (up to the file's current size) is overwritten in place; any
// remainder is appended via Write. Returns ErrOutOfBounds if off exceeds
// the file's current size.
//
// Partial-success caveat: if the append-side Write call fails, the
// overwrite portion has already completed.
func (fs *FileSystem) WriteAt(name string, buf []byte, off uint64) error {
	owner := fs.hasher.Hash(name)

	entry, ok := fs.dir.find(owner)
	if !ok {
		return ErrNotFound
	}

	if off > entry.Size {
		return ErrOutOfBounds
	}

	tail := uint32(entry.Size - off)
	overwriteLen := util.Min(uint32(len(buf)), tail)
	addLen := uint32(len(buf)) - overwriteLen

	if overwriteLen > 0 {
		firstPage := uint32(off / blockdevice.PageSize)
		firstPageOffset := uint32(off % blockdevice.PageSize)
		firstPageSize := blockdevice.PageSize - firstPageOffset

		total := off + uint64(overwriteLen)
		lastPage := uint32(total / blockdevice.PageSize)
		lastPageSize := uint32(total % blockdevice.PageSize)

		if lastPageSize == 0 {
			lastPage--
			lastPageSize = blockdevice.PageSize
		}

		singlePage := firstPage == lastPage

		if singlePage {
			firstPageSize = overwriteLen
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

				copy(page[firstPageOffset:firstPageOffset+firstPageSize], buf[:firstPageSize])

				if err := fs.rewritePage(rec.Page, &page); err != nil {
					return false, err
				}

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

				src := buf[firstPageSize+middleCount*blockdevice.PageSize:]
				copy(page[:lastPageSize], src[:lastPageSize])

				if err := fs.rewritePage(rec.Page, &page); err != nil {
					return false, err
				}

				return true, nil

			case startMiddle:
				page, err := fs.readDataPage(rec.Page)
				if err != nil {
					return false, err
				}

				src := buf[firstPageSize+middleCount*blockdevice.PageSize:]
				copy(page[:], src[:blockdevice.PageSize])

				if err := fs.rewritePage(rec.Page, &page); err != nil {
					return false, err
				}

				middleCount++

				return false, nil

			default:
				return false, nil
			}
		})
		if err != nil {
			return err
		}
	}

	if addLen == 0 {
		return nil
	}

	return fs.Write(name, buf[overwriteLen:])
}
