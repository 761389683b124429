package sfs

import (
	"encoding/binary"

	"github.com/wolfiwolf/sfs/blockdevice"
)

// RecordSize is the on-disk width of a single block metadata record.
const RecordSize = 16

// RecordsPerPage is how many metadata records are packed into one
// blockdevice.Page; no record spans a page boundary.
const RecordsPerPage = blockdevice.PageSize / RecordSize

// Record is the in-memory form of a 16-byte block metadata record: field
// order, widths, and little-endian encoding are bit-exact with the on-disk
// format so that volumes remain interoperable with other implementations.
type Record struct {
	// Page is the logical data-page index within the data region.
	Page uint32
	// Owner is the owning file's id. Zero means the record is a tombstone.
	Owner uint32
	// SizeTaken is the number of populated bytes in this data page.
	SizeTaken uint32
	// CRC is reserved. Computed on write, never validated on read.
	CRC uint32
}

// Live reports whether the record refers to live data rather than a
// tombstoned/free slot.
func (r Record) Live() bool {
	return r.Owner != 0
}

func decodeRecord(buf []byte) Record {
	return Record{
		Page:      binary.LittleEndian.Uint32(buf[0:4]),
		Owner:     binary.LittleEndian.Uint32(buf[4:8]),
		SizeTaken: binary.LittleEndian.Uint32(buf[8:12]),
		CRC:       binary.LittleEndian.Uint32(buf[12:16]),
	}
}

func encodeRecord(buf []byte, r Record) {
	binary.LittleEndian.PutUint32(buf[0:4], r.Page)
	binary.LittleEndian.PutUint32(buf[4:8], r.Owner)
	binary.LittleEndian.PutUint32(buf[8:12], r.SizeTaken)
	binary.LittleEndian.PutUint32(buf[12:16], r.CRC)
}
