// Package config holds the transport settings a session fixes before Init.
// The settings are consumed once at Init; later changes are unobserved.
package config

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/exp/slices"
)

const (
	// DefaultDevice is the default memory access device node.
	DefaultDevice = "/dev/mem"

	DefaultMaxAPs   = 1
	DefaultAPStride = 0x100

	// MaxEmulatedAPs bounds the emulated AP list.
	MaxEmulatedAPs = 5
)

var (
	ErrNoBaseAddress  = errors.New("config: AP base address not set")
	ErrEmuListTooLong = errors.New("config: too many emulated APs")
	ErrUnknownKey     = errors.New("config: unknown key")
)

// Config describes one direct-memory DAP transport.
//
// Device is the memory-mappable device node backing both windows. BaseAddr
// is the physical address of AP 0's register file; consecutive APs follow at
// APStride-byte intervals, MaxAPs of them. APs listed in EmuAPs are not
// reachable through that register file and are emulated against the separate
// window at [EmuBase, EmuBase+EmuSize), which must be page aligned.
type Config struct {
	Device   string   `dmem:"device"`
	BaseAddr uint64   `dmem:"base_address"`
	MaxAPs   uint8    `dmem:"max_aps"`
	APStride uint32   `dmem:"ap_address_offset"`
	EmuAPs   []uint64 `dmem:"emu_ap_list"`
	EmuBase  uint64   `dmem:"emu_base_address"`
	EmuSize  uint64   `dmem:"emu_window_size"`
}

// Default returns a Config with the stock device node, one AP and the
// standard 0x100 register stride. BaseAddr is left unset and must be filled
// in before the transport will initialize.
func Default() *Config {
	return &Config{
		Device:   DefaultDevice,
		MaxAPs:   DefaultMaxAPs,
		APStride: DefaultAPStride,
	}
}

// Validate checks the settings that can be checked without touching the
// device. Page-alignment of the emulated window depends on the running
// system and is verified at Init.
func (c *Config) Validate() error {
	if c.BaseAddr == 0 {
		return ErrNoBaseAddress
	}
	if len(c.EmuAPs) > MaxEmulatedAPs {
		return ErrEmuListTooLong
	}
	return nil
}

// Emulated reports whether the AP index is served by the emulated window.
func (c *Config) Emulated(num uint64) bool {
	return slices.Contains(c.EmuAPs, num)
}

// Info renders the configuration for diagnostics.
func (c *Config) Info() string {
	var b strings.Builder
	fmt.Fprintf(&b, "dmem (Direct Memory) AP Adapter Configuration:\n")
	fmt.Fprintf(&b, " Device       : %s\n", c.Device)
	fmt.Fprintf(&b, " Base Address : 0x%x\n", c.BaseAddr)
	fmt.Fprintf(&b, " Max APs      : %d\n", c.MaxAPs)
	fmt.Fprintf(&b, " AP offset    : 0x%08x\n", c.APStride)
	fmt.Fprintf(&b, " Emulated AP Count : %d\n", len(c.EmuAPs))
	if len(c.EmuAPs) > 0 {
		fmt.Fprintf(&b, " Emulated AP details:\n")
		fmt.Fprintf(&b, " Emulated address  : 0x%x\n", c.EmuBase)
		fmt.Fprintf(&b, " Emulated size     : 0x%x\n", c.EmuSize)
		for i, ap := range c.EmuAPs {
			fmt.Fprintf(&b, " Emulated AP [%d]  : %d\n", i, ap)
		}
	}
	return b.String()
}
