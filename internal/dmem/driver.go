// Package dmem implements the direct-memory DAP transport: DP and AP
// register transactions are served by reads and writes of physical memory
// instead of a serial debug link. APs the hardware does not expose through
// the memory map are emulated against a separate raw window.
package dmem

import (
	"github.com/golang/glog"
	"github.com/pkg/errors"

	"github.com/hexdbg/memdap/adapter"
	"github.com/hexdbg/memdap/config"
	"github.com/hexdbg/memdap/internal/mmio"
)

var errReinit = errors.New("dmem: transport already initialized")

type state int

const (
	stateNew state = iota
	stateReady
	stateClosed
)

// Driver is one direct-memory transport session. It is not safe for
// concurrent use; the session framework drives it from a single goroutine.
type Driver struct {
	cfg *config.Config

	state state
	bus   *registerBus
	emu   *apEmulator

	// latch holds the most recent queued-operation failure until Run
	// collects it.
	latch error

	v6Warned bool
}

// New builds an uninitialized driver over cfg. A nil cfg gets the defaults;
// either way the configuration is only validated and consumed at Init.
func New(cfg *config.Config) (adapter.Driver, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	return &Driver{cfg: cfg}, nil
}

// Init maps the AP register window and, when emulated APs are configured,
// the emulated window. Both must map for Init to succeed; a failure on the
// second window releases the first.
func (d *Driver) Init() error {
	if d.state != stateNew {
		return errReinit
	}
	if err := d.cfg.Validate(); err != nil {
		glog.Errorf("dmem: %v", err)
		return err
	}
	size := (uint64(d.cfg.MaxAPs) + 1) * uint64(d.cfg.APStride)
	win, err := mmio.Open(d.cfg.Device, d.cfg.BaseAddr, size)
	if err != nil {
		glog.Errorf("dmem: mapping AP window failed: %v", err)
		return err
	}
	if len(d.cfg.EmuAPs) > 0 {
		ewin, err := mmio.OpenAligned(d.cfg.Device, d.cfg.EmuBase, d.cfg.EmuSize)
		if err != nil {
			win.Close()
			glog.Errorf("dmem: mapping emulated AP window failed: %v", err)
			return err
		}
		d.emu = newAPEmulator(ewin)
	}
	d.bus = newRegisterBus(win, d.cfg.APStride)
	d.state = stateReady
	glog.V(1).Info(d.cfg.Info())
	return nil
}

// Close releases both windows. Safe to call on a driver that never
// initialized.
func (d *Driver) Close() error {
	if d.state != stateReady {
		d.state = stateClosed
		return nil
	}
	err := d.bus.win.Close()
	if d.emu != nil {
		if e := d.emu.win.Close(); err == nil {
			err = e
		}
	}
	d.state = stateClosed
	return err
}

// Reset and the speed hooks are no-ops: there are no signal lines to wiggle
// and no adjustable clock on a memory bus.

func (d *Driver) Reset(trst, srst bool) error { return nil }

func (d *Driver) Speed(khz int) error { return nil }

func (d *Driver) KHz(khz int) (int, error) { return khz, nil }

func (d *Driver) SpeedDiv(speed int) (int, error) { return speed, nil }

// Connect always succeeds: there is no physical link to establish.
func (d *Driver) Connect() error { return nil }

// QueueDPRead synthesizes the minimum DP state the power-up handshake
// needs; no DP register file exists behind a memory window. CTRL/STAT reads
// always report both power domains up, everything else is unmodeled.
func (d *Driver) QueueDPRead(reg adapter.DPReg) uint32 {
	if !d.ready() {
		return 0
	}
	if reg == adapter.DPCtrlStat {
		return adapter.PowerAcks
	}
	return 0
}

// QueueDPWrite accepts and discards the write.
func (d *Driver) QueueDPWrite(reg adapter.DPReg, value uint32) {}

func (d *Driver) QueueAPRead(ap adapter.AccessPort, reg adapter.APReg) uint32 {
	if !d.ready() || !d.supported(ap) {
		return 0
	}
	if d.cfg.Emulated(ap.Num) {
		val, err := d.emu.read(reg)
		if err != nil {
			d.fail(err)
			return 0
		}
		return val
	}
	return d.bus.read(ap.Num, reg)
}

func (d *Driver) QueueAPWrite(ap adapter.AccessPort, reg adapter.APReg, value uint32) {
	if !d.ready() || !d.supported(ap) {
		return
	}
	if d.cfg.Emulated(ap.Num) {
		if err := d.emu.write(reg, value); err != nil {
			d.fail(err)
		}
		return
	}
	d.bus.write(ap.Num, reg, value)
}

// QueueAPAbort is a no-op: nothing is ever outstanding against a
// synchronous backing store.
func (d *Driver) QueueAPAbort() {}

// Run surfaces the latched failure of the operations queued since the last
// Run, then rearms the latch.
func (d *Driver) Run() error {
	err := d.latch
	d.latch = nil
	return err
}

func (d *Driver) ready() bool {
	if d.state == stateReady {
		return true
	}
	glog.Errorf("dmem: register access outside initialized state")
	d.fail(adapter.ErrNotReady)
	return false
}

func (d *Driver) supported(ap adapter.AccessPort) bool {
	if ap.Scheme != adapter.ADIv6 {
		return true
	}
	if !d.v6Warned {
		glog.Errorf("dmem: ADIv6 dap not supported by dmem dap-direct mode")
		d.v6Warned = true
	}
	d.fail(adapter.ErrExtendedAddressing)
	return false
}

func (d *Driver) fail(err error) {
	d.latch = err
}
