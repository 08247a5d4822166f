package dmem

import (
	"github.com/golang/glog"

	"github.com/hexdbg/memdap/adapter"
	"github.com/hexdbg/memdap/internal/mmio"
)

// apbPADDR31 marks transactions arriving over JTAG rather than the memory
// map; it is masked out of every emulated address.
const apbPADDR31 = 1 << 31

// apEmulator models the MEM-AP register file in software for APs the
// hardware only exposes over the serial debug link. CSW, TAR and the ID
// registers are shadowed; BD0-3 and DRW resolve through TAR into the raw
// emulated window.
//
// One shadow set is shared by every emulated AP, so distinct emulated APs
// collide on CSW and TAR. Kept as-is from the original driver behavior.
type apEmulator struct {
	win *mmio.Window

	csw    uint32
	tar    uint32
	tarInc uint32
	cfg    uint32
	base   uint32
	idr    uint32
}

func newAPEmulator(win *mmio.Window) *apEmulator {
	return &apEmulator{win: win}
}

func (e *apEmulator) read(reg adapter.APReg) (uint32, error) {
	switch reg {
	case adapter.APRegCSW:
		return e.csw, nil
	case adapter.APRegTAR:
		return e.tar, nil
	case adapter.APRegCFG, adapter.APRegBASE, adapter.APRegIDR:
		// Unmodeled; the caller interprets zero.
		return 0, nil
	case adapter.APRegBD0, adapter.APRegBD1, adapter.APRegBD2, adapter.APRegBD3:
		return e.load(e.bdAddr(reg)), nil
	case adapter.APRegDRW:
		val := e.load(e.drwAddr())
		e.step()
		return val, nil
	default:
		glog.Infof("dmem: unknown AP register read: 0x%02x", uint32(reg))
		return 0, adapter.ErrUnknownRegister
	}
}

func (e *apEmulator) write(reg adapter.APReg, val uint32) error {
	switch reg {
	case adapter.APRegCSW:
		e.csw = val
	case adapter.APRegTAR:
		e.tar = val
		e.tarInc = 0
	case adapter.APRegCFG:
		e.cfg = val
	case adapter.APRegBASE:
		e.base = val
	case adapter.APRegIDR:
		e.idr = val
	case adapter.APRegBD0, adapter.APRegBD1, adapter.APRegBD2, adapter.APRegBD3:
		e.store(e.bdAddr(reg), val)
	case adapter.APRegDRW:
		e.store(e.drwAddr(), val)
		e.step()
	default:
		glog.Infof("dmem: unknown AP register write: 0x%02x", uint32(reg))
		return adapter.ErrUnknownRegister
	}
	return nil
}

// bdAddr banks BD0-3 onto the four words of the 16-byte-aligned TAR window.
// The banked view never moves TAR or the DRW cursor.
func (e *apEmulator) bdAddr(reg adapter.APReg) uint64 {
	return uint64((e.tar &^ 0xF) + (uint32(reg) & 0xC))
}

func (e *apEmulator) drwAddr() uint64 {
	return uint64((e.tar &^ 0x3) + e.tarInc)
}

// step advances the DRW cursor after an access. The unit is the ADDRINC
// field times two, a protocol-defined stepping distinct from the raw access
// width.
func (e *apEmulator) step() {
	if e.csw&adapter.CSWAddrInc != 0 {
		e.tarInc += (e.csw & adapter.CSWAddrInc) * 2
	}
}

func (e *apEmulator) load(addr uint64) uint32 {
	return e.win.Read32(addr &^ apbPADDR31)
}

func (e *apEmulator) store(addr uint64, val uint32) {
	e.win.Write32(addr&^apbPADDR31, val)
}
