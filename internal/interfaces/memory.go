package interfaces

// Memory is the collaborator the CPU core fetches and transfers through.
// All loads/stores thread a running cycle tally so handlers can charge wait
// cycles back to the instruction, per the shared-resource policy.
type Memory interface {
	Load8(addr uint32, cycles *uint64) uint8
	Load8Signed(addr uint32, cycles *uint64) int8
	Load16(addr uint32, cycles *uint64) uint16
	Load16Signed(addr uint32, cycles *uint64) int16
	Load32(addr uint32, cycles *uint64) uint32

	Store8(addr uint32, value uint8, cycles *uint64)
	Store16(addr uint32, value uint16, cycles *uint64)
	Store32(addr uint32, value uint32, cycles *uint64)

	// WaitMultiple returns the wait-state cost of an LDM/STM transfer of
	// count registers starting at addr.
	WaitMultiple(addr uint32, count int) uint64

	// WaitMul returns the internal cycle cost of a multiply, derived from
	// the leading-zero/leading-one run length of rs (early termination).
	WaitMul(rs uint32) uint64

	// ActiveRegion returns a direct read window into fetchable memory
	// covering addr, and the byte offset of addr within that window, for
	// the step driver's fast instruction-fetch path. ok is false when addr
	// falls outside any directly-addressable region (e.g. I/O), in which
	// case the caller falls back to Load32.
	ActiveRegion(addr uint32) (region []byte, offset uint32, ok bool)
}

// MemoryDevice represents a component connected to the bus that handles
// specific memory regions.
type MemoryDevice interface {
	Read8(addr uint32) byte
	ReadHalfWord(addr uint32) uint16
	ReadWord(addr uint32) uint32
	Write8(addr uint32, value byte)
	WriteHalfWord(addr uint32, value uint16)
	WriteWord(addr uint32, value uint32)
	Contains(addr uint32) bool // Indicates if this device handles the given address
}
