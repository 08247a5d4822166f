package mmio

import "unsafe"

// load32 and store32 are the volatile access points for mapped device
// memory. They are kept out of line so the compiler cannot merge, reorder or
// elide accesses that have hardware side effects: each call is exactly one
// 32-bit access. Alignment follows the caller's address; the register maps
// served here use 4-byte-aligned offsets except for DRW packed-transfer
// stepping, which the supported targets tolerate.

//go:noinline
func load32(p *byte) uint32 {
	return *(*uint32)(unsafe.Pointer(p))
}

//go:noinline
func store32(p *byte, v uint32) {
	*(*uint32)(unsafe.Pointer(p)) = v
}
