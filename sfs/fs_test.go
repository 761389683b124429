package sfs

import (
	"bytes"
	"errors"
	"testing"

	"github.com/wolfiwolf/sfs/blockdevice"
)

const testStorageSize = 256 * 1024

func newTestVolume(t *testing.T) (*FileSystem, blockdevice.Device) {
	t.Helper()

	layout := NewLayout(testStorageSize)
	dev := blockdevice.NewMemoryDevice(layout.DevicePageCount())

	fs, err := Open(dev, Options{StorageSize: testStorageSize})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}

	return fs, dev
}

func seqBytes(n int) []byte {
	buf := make([]byte, n)
	for i := range buf {
		buf[i] = byte(i)
	}

	return buf
}

// Scenario 1: create, write 8 bytes, read them back from offset 0.
func TestScenario_WriteReadRoundTrip(t *testing.T) {
	fs, _ := newTestVolume(t)

	if err := fs.Create("t"); err != nil {
		t.Fatalf("Create: %v", err)
	}

	want := seqBytes(8)
	if err := fs.Write("t", want); err != nil {
		t.Fatalf("Write: %v", err)
	}

	got := make([]byte, 8)
	n, err := fs.Read("t", got, 0)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if n != 8 {
		t.Fatalf("Read returned n=%d, want 8", n)
	}
	if !bytes.Equal(got, want) {
		t.Errorf("Read() = %v, want %v", got, want)
	}
}

// Scenario 2: reading past the written length reports ErrOutOfBounds and
// still returns the bytes actually available.
func TestScenario_ReadPastEOF(t *testing.T) {
	fs, _ := newTestVolume(t)

	if err := fs.Create("t"); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := fs.Write("t", seqBytes(4)); err != nil {
		t.Fatalf("Write: %v", err)
	}

	buf := make([]byte, 8)
	n, err := fs.Read("t", buf, 0)
	if !errors.Is(err, ErrOutOfBounds) {
		t.Fatalf("Read past EOF: err = %v, want ErrOutOfBounds", err)
	}
	if n != 4 {
		t.Fatalf("Read past EOF: n = %d, want 4", n)
	}
	if !bytes.Equal(buf[:4], seqBytes(4)) {
		t.Errorf("Read past EOF: buf[:4] = %v, want %v", buf[:4], seqBytes(4))
	}
}

// Scenario 3: overwrite strictly inside the file's current size.
func TestScenario_WriteAtOverwriteWithinFile(t *testing.T) {
	fs, _ := newTestVolume(t)

	if err := fs.Create("t"); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := fs.Write("t", seqBytes(8)); err != nil {
		t.Fatalf("Write: %v", err)
	}

	if err := fs.WriteAt("t", []byte{0, 1, 2, 3, 4, 5}, 2); err != nil {
		t.Fatalf("WriteAt: %v", err)
	}

	want := []byte{0, 1, 0, 1, 2, 3, 4, 5}
	got := make([]byte, 8)
	if _, err := fs.Read("t", got, 0); err != nil {
		t.Fatalf("Read: %v", err)
	}
	if !bytes.Equal(got, want) {
		t.Errorf("after WriteAt, file = %v, want %v", got, want)
	}
}

// Scenario 4: overwrite that extends past the current end of file appends
// the residue.
func TestScenario_WriteAtOverwriteAndAppend(t *testing.T) {
	fs, _ := newTestVolume(t)

	if err := fs.Create("t"); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := fs.Write("t", seqBytes(8)); err != nil {
		t.Fatalf("Write: %v", err)
	}

	buf := []byte{0, 1, 2, 3, 0, 1, 2, 3}
	if err := fs.WriteAt("t", buf, 4); err != nil {
		t.Fatalf("WriteAt: %v", err)
	}

	want := []byte{0, 1, 2, 3, 0, 1, 2, 3, 0, 1, 2, 3}
	if got := fs.Size("t"); got != uint64(len(want)) {
		t.Fatalf("Size() = %d, want %d", got, len(want))
	}

	got := make([]byte, len(want))
	if _, err := fs.Read("t", got, 0); err != nil {
		t.Fatalf("Read: %v", err)
	}
	if !bytes.Equal(got, want) {
		t.Errorf("after WriteAt+append, file = %v, want %v", got, want)
	}
}

// Scenario 5: two files interleaved over many appends, spanning multiple
// pages each, then a read that straddles a page boundary.
func TestScenario_InterleavedMultiPageAppend(t *testing.T) {
	fs, _ := newTestVolume(t)

	if err := fs.Create("a"); err != nil {
		t.Fatalf("Create a: %v", err)
	}
	if err := fs.Create("b"); err != nil {
		t.Fatalf("Create b: %v", err)
	}

	const chunk = 150
	const iterations = 20

	chunkBuf := seqBytes(chunk)

	for i := 0; i < iterations; i++ {
		if err := fs.Write("a", chunkBuf); err != nil {
			t.Fatalf("Write a, iter %d: %v", i, err)
		}
		if err := fs.Write("b", chunkBuf); err != nil {
			t.Fatalf("Write b, iter %d: %v", i, err)
		}
	}

	if got, want := fs.Size("a"), uint64(chunk*iterations); got != want {
		t.Fatalf("Size(a) = %d, want %d", got, want)
	}
	if got, want := fs.Size("b"), uint64(chunk*iterations); got != want {
		t.Fatalf("Size(b) = %d, want %d", got, want)
	}

	// Bytes [3*chunk, 4*chunk) = [450, 600) cross the first page boundary.
	got := make([]byte, chunk)
	if _, err := fs.Read("b", got, 3*chunk); err != nil {
		t.Fatalf("Read b at offset 3*chunk: %v", err)
	}
	if !bytes.Equal(got, chunkBuf) {
		t.Errorf("Read(b, off=3*chunk) = %v, want %v", got, chunkBuf)
	}
}

// Scenario 6: delete then defragment restores N to its pre-create value,
// and a subsequent init sees zero files.
func TestScenario_DeleteDefragmentReclaims(t *testing.T) {
	fs, dev := newTestVolume(t)

	nBefore := fs.n

	if err := fs.Create("t"); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := fs.Write("t", seqBytes(8)); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := fs.Delete("t"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := fs.Defragment(); err != nil {
		t.Fatalf("Defragment: %v", err)
	}

	if fs.n != nBefore {
		t.Errorf("N after delete+defragment = %d, want %d", fs.n, nBefore)
	}

	fs2, err := Open(dev, Options{StorageSize: testStorageSize})
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}

	if fs2.Exists("t") {
		t.Error("expected t to be gone after reopen")
	}
	if fs2.n != nBefore {
		t.Errorf("N after reopen = %d, want %d", fs2.n, nBefore)
	}
}

func TestWrite_ExactPageFill(t *testing.T) {
	fs, _ := newTestVolume(t)

	if err := fs.Create("t"); err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := fs.Write("t", seqBytes(blockdevice.PageSize)); err != nil {
		t.Fatalf("Write: %v", err)
	}

	// A write of exactly 512 - offset bytes (offset 0 here) fills the tail
	// page in place: size_taken == 512, and no new page is allocated.
	rec, err := fs.table.Read(0)
	if err != nil {
		t.Fatalf("table.Read(0): %v", err)
	}
	if rec.SizeTaken != blockdevice.PageSize {
		t.Errorf("tail record size_taken = %d, want %d", rec.SizeTaken, blockdevice.PageSize)
	}
	if fs.n != 1 {
		t.Errorf("N after exact-page write = %d, want 1 (no trailing empty page)", fs.n)
	}

	entry, _ := fs.dir.find(fs.hasher.Hash("t"))
	if entry.Offset != blockdevice.PageSize {
		t.Errorf("directory offset = %d, want %d", entry.Offset, blockdevice.PageSize)
	}
}

func TestWrite_SpillAcrossPages(t *testing.T) {
	fs, _ := newTestVolume(t)

	if err := fs.Create("t"); err != nil {
		t.Fatalf("Create: %v", err)
	}

	data := seqBytes(blockdevice.PageSize + 100)
	if err := fs.Write("t", data); err != nil {
		t.Fatalf("Write: %v", err)
	}

	got := make([]byte, len(data))
	if _, err := fs.Read("t", got, 0); err != nil {
		t.Fatalf("Read: %v", err)
	}
	if !bytes.Equal(got, data) {
		t.Errorf("round trip across page boundary mismatched")
	}
}

// WriteAt's overwrite can span two adjacent pages with no middle pages
// between them; both must be touched even though neither is a "middle" page.
func TestWriteAt_SpansTwoAdjacentPages(t *testing.T) {
	fs, _ := newTestVolume(t)

	if err := fs.Create("t"); err != nil {
		t.Fatalf("Create: %v", err)
	}

	data := seqBytes(blockdevice.PageSize + 100)
	if err := fs.Write("t", data); err != nil {
		t.Fatalf("Write: %v", err)
	}

	overwrite := make([]byte, 50)
	for i := range overwrite {
		overwrite[i] = 0xAA
	}

	off := uint64(blockdevice.PageSize - 25)
	if err := fs.WriteAt("t", overwrite, off); err != nil {
		t.Fatalf("WriteAt: %v", err)
	}

	want := append([]byte{}, data...)
	copy(want[off:], overwrite)

	got := make([]byte, len(data))
	if _, err := fs.Read("t", got, 0); err != nil {
		t.Fatalf("Read: %v", err)
	}
	if !bytes.Equal(got, want) {
		t.Errorf("overwrite spanning two adjacent pages mismatched")
	}
}

func TestCreate_Duplicate(t *testing.T) {
	fs, _ := newTestVolume(t)

	if err := fs.Create("t"); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := fs.Create("t"); !errors.Is(err, ErrExists) {
		t.Errorf("second Create: err = %v, want ErrExists", err)
	}
}

func TestWriteAt_OffsetPastEOF(t *testing.T) {
	fs, _ := newTestVolume(t)

	if err := fs.Create("t"); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := fs.Write("t", seqBytes(4)); err != nil {
		t.Fatalf("Write: %v", err)
	}

	if err := fs.WriteAt("t", []byte{1}, 10); !errors.Is(err, ErrOutOfBounds) {
		t.Errorf("WriteAt past EOF: err = %v, want ErrOutOfBounds", err)
	}
}

func TestDelete_NotFound(t *testing.T) {
	fs, _ := newTestVolume(t)

	if err := fs.Delete("missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Delete(missing): err = %v, want ErrNotFound", err)
	}
}

func TestInitDeterminism(t *testing.T) {
	fs, dev := newTestVolume(t)

	if err := fs.Create("t"); err != nil {
		t.Fatalf("Create: %v", err)
	}
	data := seqBytes(blockdevice.PageSize + 50)
	if err := fs.Write("t", data); err != nil {
		t.Fatalf("Write: %v", err)
	}

	fs2, err := Open(dev, Options{StorageSize: testStorageSize})
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}

	if !fs2.Exists("t") {
		t.Fatal("expected t to exist after reopen")
	}
	if got, want := fs2.Size("t"), uint64(len(data)); got != want {
		t.Fatalf("Size(t) after reopen = %d, want %d", got, want)
	}

	got := make([]byte, len(data))
	if _, err := fs2.Read("t", got, 0); err != nil {
		t.Fatalf("Read after reopen: %v", err)
	}
	if !bytes.Equal(got, data) {
		t.Errorf("content mismatch after reopen")
	}
}
