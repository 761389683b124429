package blockdevice

import "fmt"

// MemoryDevice is a RAM-backed Device, useful for tests and scratch volumes
// that do not need to survive process exit.
type MemoryDevice struct {
	pages []Page
}

// NewMemoryDevice allocates a MemoryDevice with room for pageCount pages.
func NewMemoryDevice(pageCount uint32) *MemoryDevice {
	return &MemoryDevice{pages: make([]Page, pageCount)}
}

func (m *MemoryDevice) PageCount() uint32 {
	return uint32(len(m.pages))
}

func (m *MemoryDevice) ReadPage(addr uint32, into *Page) error {
	if addr >= uint32(len(m.pages)) {
		return fmt.Errorf("blockdevice: page %d out of range (capacity %d)", addr, len(m.pages))
	}

	*into = m.pages[addr]
	return nil
}

func (m *MemoryDevice) WritePage(addr uint32, from *Page) error {
	if addr >= uint32(len(m.pages)) {
		return fmt.Errorf("blockdevice: page %d out of range (capacity %d)", addr, len(m.pages))
	}

	m.pages[addr] = *from
	return nil
}
