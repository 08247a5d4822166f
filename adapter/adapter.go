// Package adapter defines the contract between a debug session and the
// transport that carries its Debug Port and Access Port traffic.
package adapter

import "io"

// DAP is the queued DP/AP transaction set of an ADIv5 debug port.
//
// The queue_* naming follows the standard deferred-completion model:
// individual operations do not report failure synchronously, they latch it,
// and Run returns the first observation of any failure since the previous
// Run. Transports backed by synchronous storage still honor this contract;
// they simply execute each operation immediately and in issue order.
type DAP interface {
	Connect() error
	QueueDPRead(reg DPReg) uint32
	QueueDPWrite(reg DPReg, value uint32)
	QueueAPRead(ap AccessPort, reg APReg) uint32
	QueueAPWrite(ap AccessPort, reg APReg, value uint32)
	QueueAPAbort()
	Run() error
}

// Driver is a debug transport adapter: the DAP transaction set plus the
// lifecycle and signal-timing hooks the session framework drives.
type Driver interface {
	io.Closer
	DAP

	// Init acquires the transport's resources. All register operations
	// require a successful Init first.
	Init() error
	// Reset asserts/deasserts the TRST and SRST lines where the transport
	// has them.
	Reset(trst, srst bool) error
	// Speed configures the serial clock. KHz and SpeedDiv convert between
	// a clock rate and the transport's internal speed setting.
	Speed(khz int) error
	KHz(khz int) (int, error)
	SpeedDiv(speed int) (int, error)
}

// AddrScheme selects the AP addressing model of the debug interface.
type AddrScheme int

const (
	ADIv5 AddrScheme = iota
	ADIv6
)

// AccessPort identifies one AP on the debug interface.
type AccessPort struct {
	Num    uint64
	Scheme AddrScheme
}
