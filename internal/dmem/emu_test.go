package dmem

import (
	"encoding/binary"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hexdbg/memdap/adapter"
	"github.com/hexdbg/memdap/internal/mmio"
)

func tempDevice(t *testing.T, size int64) string {
	t.Helper()
	f, err := os.CreateTemp(t.TempDir(), "mem")
	require.NoError(t, err)
	require.NoError(t, f.Truncate(size))
	require.NoError(t, f.Close())
	return f.Name()
}

// newTestEmulator maps an emulator over the start of a fresh device file, so
// TAR values are also file offsets.
func newTestEmulator(t *testing.T) (*apEmulator, string) {
	t.Helper()
	path := tempDevice(t, 0x10000)
	win, err := mmio.OpenAligned(path, 0, 0x4000)
	require.NoError(t, err)
	t.Cleanup(func() { win.Close() })
	return newAPEmulator(win), path
}

func fillDevice(t *testing.T, path string, off int64, data []byte) {
	t.Helper()
	f, err := os.OpenFile(path, os.O_WRONLY, 0)
	require.NoError(t, err)
	_, err = f.WriteAt(data, off)
	require.NoError(t, err)
	require.NoError(t, f.Close())
}

func readDevice32(t *testing.T, path string, off int64) uint32 {
	t.Helper()
	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	return binary.LittleEndian.Uint32(raw[off:])
}

func emuWrite(t *testing.T, e *apEmulator, reg adapter.APReg, val uint32) {
	t.Helper()
	require.NoError(t, e.write(reg, val))
}

func emuRead(t *testing.T, e *apEmulator, reg adapter.APReg) uint32 {
	t.Helper()
	val, err := e.read(reg)
	require.NoError(t, err)
	return val
}

func TestDRWAutoIncrement(t *testing.T) {
	e, path := newTestEmulator(t)
	fillDevice(t, path, 0x2000, []byte{1, 2, 3, 4, 5, 6, 7, 8})

	emuWrite(t, e, adapter.APRegCSW, 0x1)
	emuWrite(t, e, adapter.APRegTAR, 0x2000)

	// ADDRINC=1 steps the cursor by 2 per access: 0x2000, 0x2002, 0x2004.
	assert.Equal(t, uint32(0x04030201), emuRead(t, e, adapter.APRegDRW))
	assert.Equal(t, uint32(0x06050403), emuRead(t, e, adapter.APRegDRW))
	assert.Equal(t, uint32(0x08070605), emuRead(t, e, adapter.APRegDRW))
}

func TestDRWNoIncrement(t *testing.T) {
	e, path := newTestEmulator(t)
	fillDevice(t, path, 0x2000, []byte{1, 2, 3, 4, 5, 6, 7, 8})

	emuWrite(t, e, adapter.APRegCSW, 0x0)
	emuWrite(t, e, adapter.APRegTAR, 0x2000)

	for i := 0; i < 3; i++ {
		assert.Equal(t, uint32(0x04030201), emuRead(t, e, adapter.APRegDRW))
	}
}

func TestTARWriteResetsIncrement(t *testing.T) {
	e, path := newTestEmulator(t)
	fillDevice(t, path, 0x2000, []byte{1, 2, 3, 4, 5, 6, 7, 8})

	emuWrite(t, e, adapter.APRegCSW, 0x1)
	emuWrite(t, e, adapter.APRegTAR, 0x2000)
	emuRead(t, e, adapter.APRegDRW)

	emuWrite(t, e, adapter.APRegTAR, 0x2000)
	assert.Equal(t, uint32(0x04030201), emuRead(t, e, adapter.APRegDRW))
}

func TestBDBanking(t *testing.T) {
	e, path := newTestEmulator(t)
	fillDevice(t, path, 0x2008, []byte{0xaa, 0xbb, 0xcc, 0xdd})

	// TAR's low four bits do not shift the bank: BD2 reads the third word
	// of the 16-byte window at 0x2000.
	emuWrite(t, e, adapter.APRegTAR, 0x2007)
	assert.Equal(t, uint32(0xddccbbaa), emuRead(t, e, adapter.APRegBD2))

	// BD access is independent of any DRW cursor movement.
	emuWrite(t, e, adapter.APRegCSW, 0x1)
	emuRead(t, e, adapter.APRegDRW)
	emuRead(t, e, adapter.APRegDRW)
	assert.Equal(t, uint32(0xddccbbaa), emuRead(t, e, adapter.APRegBD2))
}

func TestBDWrite(t *testing.T) {
	e, path := newTestEmulator(t)

	emuWrite(t, e, adapter.APRegTAR, 0x2000)
	emuWrite(t, e, adapter.APRegBD1, 0x12345678)
	assert.Equal(t, uint32(0x12345678), readDevice32(t, path, 0x2004))
}

func TestPADDR31Masked(t *testing.T) {
	e, path := newTestEmulator(t)
	fillDevice(t, path, 0x2000, []byte{1, 2, 3, 4})

	emuWrite(t, e, adapter.APRegTAR, 0x80002000)
	assert.Equal(t, uint32(0x04030201), emuRead(t, e, adapter.APRegDRW))
}

func TestShadowRegisters(t *testing.T) {
	e, _ := newTestEmulator(t)

	emuWrite(t, e, adapter.APRegCSW, 0x23000052)
	assert.Equal(t, uint32(0x23000052), emuRead(t, e, adapter.APRegCSW))

	// CFG, BASE and IDR accept writes but read back as unmodeled zero.
	for _, reg := range []adapter.APReg{adapter.APRegCFG, adapter.APRegBASE, adapter.APRegIDR} {
		emuWrite(t, e, reg, 0xffffffff)
		assert.Equal(t, uint32(0), emuRead(t, e, reg))
	}
}

func TestUnknownRegister(t *testing.T) {
	e, _ := newTestEmulator(t)

	_, err := e.read(adapter.APRegMBT)
	assert.ErrorIs(t, err, adapter.ErrUnknownRegister)
	assert.ErrorIs(t, e.write(adapter.APReg(0x44), 0), adapter.ErrUnknownRegister)
}
