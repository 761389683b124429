// Package sfs implements the Simple File System: a flat, append-oriented
// filesystem over a page-addressable block device. One FileSystem value
// owns one volume; callers needing concurrent access must supply their own
// locking, per the single-threaded contract this package is built to.
package sfs

import (
	"encoding/binary"
	"fmt"
	"time"

	"github.com/wolfiwolf/sfs/blockdevice"
	"github.com/wolfiwolf/sfs/internal/logging"
	"github.com/wolfiwolf/sfs/sfs/pagecache"
)

const headerPageAddr = 0

// defaultCacheSize is the number of metadata pages kept warm. A volume
// only ever touches a handful of metadata pages per call, so a small
// fixed size is plenty.
const defaultCacheSize = 32

// Options configures a FileSystem at Open time.
type Options struct {
	// StorageSize is the total capacity in bytes this volume manages. Must
	// match the capacity the volume was originally created with.
	StorageSize uint64
	// Hasher maps file names to owner ids. Defaults to LegacyHash.
	Hasher Hasher
	// CacheSize is the number of metadata pages to keep warm. Defaults to
	// defaultCacheSize.
	CacheSize uint
	// Logger receives structured init/defragment diagnostics. Defaults to
	// a discarding logger.
	Logger logging.Logger
}

func (o Options) withDefaults() Options {
	if o.Hasher == nil {
		o.Hasher = LegacyHash{}
	}
	if o.CacheSize == 0 {
		o.CacheSize = defaultCacheSize
	}
	if o.Logger == nil {
		o.Logger = logging.Discard()
	}

	return o
}

// FileSystem is an open SFS volume.
type FileSystem struct {
	dev    blockdevice.Device
	layout Layout
	cache  *pagecache.Cache
	table  *Table
	dir    *directory
	hasher Hasher
	log    logging.Logger

	n uint32
}

// Open mounts an SFS volume on dev, rebuilding the file directory from the
// on-disk metadata table.
func Open(dev blockdevice.Device, opts Options) (*FileSystem, error) {
	opts = opts.withDefaults()
	layout := NewLayout(opts.StorageSize)

	if layout.DevicePageCount() > dev.PageCount() {
		return nil, fmt.Errorf("%w: volume needs %d pages, device has %d", ErrCapacity, layout.DevicePageCount(), dev.PageCount())
	}

	cache := pagecache.New(dev, opts.CacheSize, pagecache.NewLRU(opts.CacheSize))

	fs := &FileSystem{
		dev:    dev,
		layout: layout,
		cache:  cache,
		table:  newTable(cache),
		dir:    newDirectory(),
		hasher: opts.Hasher,
		log:    opts.Logger,
	}

	if err := fs.init(); err != nil {
		return nil, err
	}

	return fs, nil
}

// init rebuilds the in-memory directory from the on-disk metadata table, as
// described by the filesystem's `init` operation.
func (fs *FileSystem) init() error {
	start := time.Now()

	n, err := fs.readHeader()
	if err != nil {
		return err
	}
	fs.n = n

	recovered := 0
	err = fs.table.Scan(fs.n, func(_ uint32, rec Record) (bool, error) {
		recovered++

		if entry, ok := fs.dir.find(rec.Owner); ok {
			entry.LastPage = rec.Page
			entry.Offset = rec.SizeTaken
			entry.Size += uint64(rec.SizeTaken)

			return false, nil
		}

		return false, fs.dir.insert(Entry{
			Owner:    rec.Owner,
			LastPage: rec.Page,
			Offset:   rec.SizeTaken,
			Size:     uint64(rec.SizeTaken),
		})
	})
	if err != nil {
		return err
	}

	fs.log.WithField("records_recovered", recovered).
		WithField("files_recovered", fs.dir.len()).
		WithField("elapsed", time.Since(start)).
		Info("sfs: volume initialized")

	return nil
}

func (fs *FileSystem) readHeader() (uint32, error) {
	page, err := fs.cache.Get(headerPageAddr)
	if err != nil {
		return 0, fmt.Errorf("%w: reading header: %v", ErrDeviceError, err)
	}

	return binary.LittleEndian.Uint32(page[0:4]), nil
}

func (fs *FileSystem) writeHeader() error {
	page, err := fs.cache.Get(headerPageAddr)
	if err != nil {
		return fmt.Errorf("%w: reading header: %v", ErrDeviceError, err)
	}

	buf := *page
	binary.LittleEndian.PutUint32(buf[0:4], fs.n)

	if err := fs.cache.Put(headerPageAddr, buf); err != nil {
		return fmt.Errorf("%w: writing header: %v", ErrDeviceError, err)
	}

	return nil
}

// Exists reports whether name has a directory entry.
func (fs *FileSystem) Exists(name string) bool {
	_, ok := fs.dir.find(fs.hasher.Hash(name))

	return ok
}

// Size returns name's cached live byte count, or 0 if name does not exist.
func (fs *FileSystem) Size(name string) uint64 {
	if e, ok := fs.dir.find(fs.hasher.Hash(name)); ok {
		return e.Size
	}

	return 0
}

// Files returns a snapshot of the current directory entries, in directory
// (insertion) order. Used by cmd/sfs's ls/find commands.
func (fs *FileSystem) Files() []Entry {
	return fs.dir.list()
}
