package adapter

// DPReg is a Debug Port register address.
type DPReg uint32

const (
	DPIDR      DPReg = 0x0
	DPCtrlStat DPReg = 0x4
	DPSelect   DPReg = 0x8
	DPRdBuff   DPReg = 0xC
)

// CTRL/STAT power domain bits.
const (
	CDbgPwrUpAck uint32 = 1 << 29
	CSysPwrUpAck uint32 = 1 << 31

	// PowerAcks is the "power domains up" pattern a transport reports once
	// the debug and system domains have acknowledged power-up.
	PowerAcks = CDbgPwrUpAck | CSysPwrUpAck
)

// APReg is a MEM-AP register address in the ADIv5 map.
type APReg uint32

const (
	APRegCSW    APReg = 0x00
	APRegTAR    APReg = 0x04
	APRegTAR64  APReg = 0x08
	APRegDRW    APReg = 0x0C
	APRegBD0    APReg = 0x10
	APRegBD1    APReg = 0x14
	APRegBD2    APReg = 0x18
	APRegBD3    APReg = 0x1C
	APRegMBT    APReg = 0x20
	APRegBASE64 APReg = 0xF0
	APRegCFG    APReg = 0xF4
	APRegBASE   APReg = 0xF8
	APRegIDR    APReg = 0xFC
)

// CSWAddrInc masks the CSW field selecting whether, and in what unit, TAR
// advances after each DRW access.
const CSWAddrInc uint32 = 0x3
