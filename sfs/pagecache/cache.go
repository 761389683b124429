// Package pagecache provides a small read-through LRU cache in front of a
// blockdevice.Device, scoped to the pages sfs re-reads most: the metadata
// table. Every WriteAt/Read/Delete/Defragment call in package sfs
// walks the metadata table from the start, which without caching means
// re-reading the same handful of metadata pages from the device on every
// call. This package makes that walk cheap after the first pass.
//
// Unlike a general-purpose buffer pool, frames here are never pinned: sfs
// is single-threaded by contract (one caller, no concurrent mutation), so
// there is no need to track in-flight references, only recency.
package pagecache

import (
	"fmt"

	"github.com/wolfiwolf/sfs/blockdevice"
)

// Cache is a fixed-size, read-through, write-through cache of device pages.
type Cache struct {
	dev    blockdevice.Device
	frames []blockdevice.Page
	addrOf []uint32
	lookup map[uint32]FrameID

	eviction   Eviction
	freeFrames []FrameID
}

// New creates a Cache of the given size (in pages) in front of dev.
func New(dev blockdevice.Device, size uint, eviction Eviction) *Cache {
	free := make([]FrameID, size)
	for i := range free {
		free[i] = FrameID(i)
	}

	return &Cache{
		dev:        dev,
		frames:     make([]blockdevice.Page, size),
		addrOf:     make([]uint32, size),
		lookup:     make(map[uint32]FrameID, size),
		eviction:   eviction,
		freeFrames: free,
	}
}

// Get returns the page at addr, reading through to the device on a miss.
// The returned pointer aliases the cache's own storage; callers that need
// to mutate must copy it out first.
func (c *Cache) Get(addr uint32) (*blockdevice.Page, error) {
	if frame, ok := c.lookup[addr]; ok {
		c.touch(frame)
		return &c.frames[frame], nil
	}

	frame, err := c.reserveFrame()
	if err != nil {
		return nil, err
	}

	var page blockdevice.Page
	if err := c.dev.ReadPage(addr, &page); err != nil {
		c.freeFrames = append(c.freeFrames, frame)
		return nil, err
	}

	c.install(frame, addr, page)
	return &c.frames[frame], nil
}

// Put writes page to addr on the device and keeps the cache consistent
// with what was just written.
func (c *Cache) Put(addr uint32, page blockdevice.Page) error {
	if err := c.dev.WritePage(addr, &page); err != nil {
		return fmt.Errorf("pagecache: %w", err)
	}

	if frame, ok := c.lookup[addr]; ok {
		c.frames[frame] = page
		c.touch(frame)
		return nil
	}

	frame, err := c.reserveFrame()
	if err != nil {
		// The page is already safely on the device; losing the cache slot
		// just means the next Get re-reads it. Not fatal.
		return nil
	}

	c.install(frame, addr, page)
	return nil
}

// Invalidate drops addr from the cache, if present, without touching the device.
func (c *Cache) Invalidate(addr uint32) {
	if frame, ok := c.lookup[addr]; ok {
		delete(c.lookup, addr)
		c.eviction.Remove(frame)
		c.freeFrames = append(c.freeFrames, frame)
	}
}

func (c *Cache) touch(frame FrameID) {
	c.eviction.Remove(frame)
	c.eviction.Add(frame)
}

func (c *Cache) install(frame FrameID, addr uint32, page blockdevice.Page) {
	c.frames[frame] = page
	c.addrOf[frame] = addr
	c.lookup[addr] = frame
	c.eviction.Add(frame)
}

func (c *Cache) reserveFrame() (FrameID, error) {
	if len(c.freeFrames) > 0 {
		frame := c.freeFrames[0]
		c.freeFrames = c.freeFrames[1:]
		return frame, nil
	}

	victim := c.eviction.Victim()
	if victim == nil {
		return 0, fmt.Errorf("pagecache: unable to reserve a frame")
	}

	delete(c.lookup, c.addrOf[*victim])

	return *victim, nil
}
