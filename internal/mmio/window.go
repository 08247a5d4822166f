// Package mmio maps windows of a physical-memory device node and performs
// the 32-bit volatile accesses a register file requires.
package mmio

import (
	"errors"
	"os"

	"github.com/golang/glog"
	pkgerrors "github.com/pkg/errors"
	"golang.org/x/sys/unix"
)

// ErrUnaligned reports a window whose base or size is required to be an
// exact page multiple and is not.
var ErrUnaligned = errors.New("mmio: window base and size must be page aligned")

// Window is one shared read/write mapping of a physical address range.
// Offset 0 of the window corresponds to the physical base requested at Open,
// regardless of the page rounding applied to the mapping itself.
type Window struct {
	f   *os.File
	buf []byte

	mappedStart uint64
	mappedSize  uint64
	delta       uint64
}

// Open maps [base, base+size) of the device at path. The mapping is rounded
// outward to page boundaries: the mapped range starts at base rounded down
// to a page and covers size plus the rounding, rounded up to a whole page.
// The mapping is shared, so writes reach the backing device directly.
func Open(path string, base, size uint64) (*Window, error) {
	page := uint64(os.Getpagesize())
	start := alignDown(base, page)
	delta := base - start
	mapSize := alignUp(size+delta, page)

	f, err := os.OpenFile(path, os.O_RDWR|os.O_SYNC, 0)
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "mmio: open %s", path)
	}
	buf, err := unix.Mmap(int(f.Fd()), int64(start), int(mapSize),
		unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
	if err != nil {
		f.Close()
		return nil, pkgerrors.Wrapf(err, "mmio: map 0x%x+0x%x of %s", start, mapSize, path)
	}
	return &Window{
		f:           f,
		buf:         buf,
		mappedStart: start,
		mappedSize:  mapSize,
		delta:       delta,
	}, nil
}

// OpenAligned is Open for windows that mirror an externally fixed block of
// target memory: base and size must already be exact page multiples, and a
// violation is a configuration error rather than something to round away.
func OpenAligned(path string, base, size uint64) (*Window, error) {
	page := uint64(os.Getpagesize())
	if base%page != 0 || size%page != 0 {
		return nil, pkgerrors.Wrapf(ErrUnaligned, "base 0x%x size 0x%x page 0x%x", base, size, page)
	}
	return Open(path, base, size)
}

// Read32 performs one volatile 32-bit load at the window offset. The offset
// is not range checked beyond the mapping itself; out-of-window offsets
// panic.
func (w *Window) Read32(off uint64) uint32 {
	return load32(&w.buf[w.delta+off])
}

// Write32 performs one volatile 32-bit store at the window offset.
func (w *Window) Write32(off uint64, val uint32) {
	store32(&w.buf[w.delta+off], val)
}

// MappedRange returns the page-rounded range actually mapped.
func (w *Window) MappedRange() (start, size uint64) {
	return w.mappedStart, w.mappedSize
}

// Close unmaps the window and closes the device. An unmap failure is logged
// and otherwise ignored; the descriptor is still closed.
func (w *Window) Close() error {
	if w.buf != nil {
		if err := unix.Munmap(w.buf); err != nil {
			glog.Errorf("mmio: failed to unmap 0x%x+0x%x: %v", w.mappedStart, w.mappedSize, err)
		}
		w.buf = nil
	}
	if w.f == nil {
		return nil
	}
	err := w.f.Close()
	w.f = nil
	return err
}
