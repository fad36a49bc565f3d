package memory

import (
	"GoBA/internal/interfaces"
	"fmt"
)

// BIOS represents the GBA's internal Boot ROM. This core carries no
// embedded BIOS asset; the caller supplies the dumped image.
type BIOS struct {
	interfaces.MemoryDevice
	data []byte // The loaded BIOS ROM data
}

// NewBIOS wraps a BIOS image loaded by the caller. When image is shorter
// than BIOS_SIZE it is zero-padded; a nil image yields an all-zero BIOS,
// which is enough to exercise the reset vector without a real dump.
func NewBIOS(image []byte) *BIOS {
	data := make([]byte, BIOS_SIZE)
	copy(data, image)
	return &BIOS{data: data}
}

// Read8 reads a single byte from the BIOS at the given absolute address.
// It handles the BIOS memory region (0x00000000 - 0x00003FFF).
func (b *BIOS) Read8(addr uint32) byte {
	if addr >= BIOS_START && addr <= BIOS_END {
		return b.data[addr-BIOS_START]
	}
	// This should ideally not happen if the Bus correctly routes addresses.
	panic(fmt.Sprintf("BIOS: Attempted to read byte from out-of-bounds address: 0x%X", addr))
}

// ReadHalfWord reads a 16-bit half-word from the BIOS.
func (b *BIOS) ReadHalfWord(addr uint32) uint16 {
	if addr >= BIOS_START && addr <= BIOS_END-1 { // -1 to ensure room for 2 bytes
		// Only the bounds are checked; alignment is not enforced.
		low := uint16(b.data[addr-BIOS_START])
		high := uint16(b.data[addr-BIOS_START+1])
		return low | (high << 8)
	}
	panic(fmt.Sprintf("BIOS: Attempted to read half-word from out-of-bounds or unaligned address: 0x%X", addr))
}

// ReadWord reads a 32-bit word from the BIOS.
func (b *BIOS) ReadWord(addr uint32) uint32 {
	if addr >= BIOS_START && addr <= BIOS_END-3 { // -3 to ensure room for 4 bytes
		b0 := uint32(b.data[addr-BIOS_START])
		b1 := uint32(b.data[addr-BIOS_START+1])
		b2 := uint32(b.data[addr-BIOS_START+2])
		b3 := uint32(b.data[addr-BIOS_START+3])
		return b0 | (b1 << 8) | (b2 << 16) | (b3 << 24)
	}
	panic(fmt.Sprintf("BIOS: Attempted to read word from out-of-bounds or unaligned address: 0x%X", addr))
}

// Write8 attempts to write a byte to the BIOS.
// BIOS is read-only, so this operation panics.
func (b *BIOS) Write8(addr uint32, value byte) {
	panic(fmt.Sprintf("BIOS: Attempted to write 0x%X to read-only BIOS at address 0x%X", value, addr))
}

// WriteHalfWord attempts to write a half-word to the BIOS.
// BIOS is read-only, so this operation panics.
func (b *BIOS) WriteHalfWord(addr uint32, value uint16) {
	panic(fmt.Sprintf("BIOS: Attempted to write 0x%X to read-only BIOS at address 0x%X", value, addr))
}

// WriteWord attempts to write a word to the BIOS.
// BIOS is read-only, so this operation panics.
func (b *BIOS) WriteWord(addr uint32, value uint32) {
	panic(fmt.Sprintf("BIOS: Attempted to write 0x%X to read-only BIOS at address 0x%X", value, addr))
}
