package sfs

import "github.com/wolfiwolf/sfs/blockdevice"

// metaBlocksStart is the page address of the first metadata table page; page
// 0 is reserved for the global header.
const metaBlocksStart = 1

// Layout describes how a volume of a given storage capacity maps onto its
// three zones: header, metadata table, data region.
//
// The data-page start address M is deliberately computed by truncating
// integer division rather than rounding up, for bit-for-bit on-disk
// compatibility with volumes written by other tools that use this layout.
// For capacities where (maxDataPages * RecordSize) is not an exact
// multiple of the page size, this yields one fewer metadata page than the
// data truly needs; getNewPage guards against the resulting overrun with
// ErrCapacity (via MetaCapacity) rather than silently letting an allocation spill into the
// data region.
type Layout struct {
	// StorageSize is the total capacity in bytes this volume manages.
	StorageSize uint64
	// MaxDataPages is the maximum number of data pages addressable.
	MaxDataPages uint32
	// DataBlocksStart (M) is the data region's first device page address.
	DataBlocksStart uint32
	// MetaCapacity is the number of metadata record slots available
	// before the (possibly short, see above) metadata zone is exhausted.
	MetaCapacity uint32
}

// NewLayout computes the zone layout for a volume of storageSize bytes.
func NewLayout(storageSize uint64) Layout {
	maxDataPages := uint32(storageSize / blockdevice.PageSize)
	metaBytesTotal := uint64(maxDataPages) * RecordSize
	dataBlocksStart := uint32(metaBytesTotal/blockdevice.PageSize) + metaBlocksStart

	return Layout{
		StorageSize:     storageSize,
		MaxDataPages:    maxDataPages,
		DataBlocksStart: dataBlocksStart,
		MetaCapacity:    (dataBlocksStart - metaBlocksStart) * RecordsPerPage,
	}
}

// DevicePageCount is the total number of device pages this layout spans:
// the header, the metadata table, and the data region.
func (l Layout) DevicePageCount() uint32 {
	return l.DataBlocksStart + l.MaxDataPages
}

// DataPageAddr translates a logical data-region page index into a device
// page address.
func (l Layout) DataPageAddr(page uint32) uint32 {
	return l.DataBlocksStart + page
}

// metaSlotAddr translates a metadata record slot into its device page
// address and byte offset within that page.
func metaSlotAddr(slot uint32) (page uint32, offset uint32) {
	return metaBlocksStart + slot/RecordsPerPage, (slot % RecordsPerPage) * RecordSize
}
