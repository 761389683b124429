// Package blockdevice implements the storage contract SFS sits on top of: a
// page-addressable device exposing only fixed-size page reads and writes.
package blockdevice

// PageSize is the fixed page width every Device implementation reads and
// writes. SFS's on-disk layout is defined in terms of this constant.
const PageSize = 512

// Page is a single fixed-size page of raw bytes.
type Page = [PageSize]byte

// Device is the block-device contract SFS consumes. Implementations are
// assumed synchronous; callers are assumed single-threaded, per the
// concurrency model SFS itself operates under.
type Device interface {
	// ReadPage reads the page at addr into into.
	ReadPage(addr uint32, into *Page) error
	// WritePage writes from to the page at addr.
	WritePage(addr uint32, from *Page) error
	// PageCount returns the total number of addressable pages on this device.
	PageCount() uint32
}
