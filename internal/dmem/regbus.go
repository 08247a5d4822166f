package dmem

import (
	"github.com/hexdbg/memdap/adapter"
	"github.com/hexdbg/memdap/internal/mmio"
)

// registerBus serves APs whose register files are directly reachable in the
// mapped window: AP k's register r lives at window offset k*stride + r.
type registerBus struct {
	win    *mmio.Window
	stride uint32
}

func newRegisterBus(win *mmio.Window, stride uint32) *registerBus {
	return &registerBus{win: win, stride: stride}
}

func (b *registerBus) offset(ap uint64, reg adapter.APReg) uint64 {
	return ap*uint64(b.stride) + uint64(reg)
}

// read and write do not range check the AP index against the configured
// maximum; an out-of-range index walks off the mapped window and panics.
func (b *registerBus) read(ap uint64, reg adapter.APReg) uint32 {
	return b.win.Read32(b.offset(ap, reg))
}

func (b *registerBus) write(ap uint64, reg adapter.APReg, val uint32) {
	b.win.Write32(b.offset(ap, reg), val)
}
