package bus

import (
	"GoBA/internal/cartridge"
	"GoBA/internal/io"
	"GoBA/internal/memory"
	"GoBA/util/dbg"
)

// GBA Memory Map Constants
const (
	BIOSAddrStart = 0x00000000
	BIOSAddrEnd   = 0x00003FFF

	EWRAMAddrStart = 0x02000000
	EWRAMAddrEnd   = 0x0203FFFF
	EWRAMMirrorEnd = 0x02FFFFFF // Mirrored up to 0x02FFFFFF

	IWRAMAddrStart = 0x03000000
	IWRAMAddrEnd   = 0x03007FFF
	IWRAMMirrorEnd = 0x03FFFFFF // Mirrored up to 0x03FFFFFF

	IOAddrStart = 0x04000000
	IOAddrEnd   = 0x040003FF // Main I/O registers block
	IOMirrorEnd = 0x04FFFFFF // Mirrored up to 0x04FFFFFF

	PALRAMAddrStart = 0x05000000
	PALRAMAddrEnd   = 0x050003FF
	PALRAMSize      = PALRAMAddrEnd - PALRAMAddrStart + 1 // 1KB
	PALRAMMirrorEnd = 0x05FFFFFF                          // Mirrored

	VRAMAddrStart = 0x06000000
	VRAMAddrEnd   = 0x06017FFF
	VRAMSize      = VRAMAddrEnd - VRAMAddrStart + 1 // 96KB
	VRAMMirrorEnd = 0x06FFFFFF                      // Mirrored (simplified)

	OAMAddrStart = 0x07000000
	OAMAddrEnd   = 0x070003FF
	OAMSize      = OAMAddrEnd - OAMAddrStart + 1 // 1KB
	OAMMirrorEnd = 0x07FFFFFF                    // Mirrored

	GamePakAddrStartWS0 = 0x08000000
	GamePakAddrEndWS2   = 0x0DFFFFFF

	GamePakSRAMAddrStart = 0x0E000000
	GamePakSRAMAddrEnd   = cartridge.SRAM_END
)

// Bus connects the CPU core to the GBA's memory-mapped components. PALRAM,
// VRAM and OAM are held directly rather than behind a PPU collaborator:
// this core drives only the CPU's view of memory, and a video subsystem
// wired in later can read these slices without the bus depending on it.
type Bus struct {
	BIOS  *memory.BIOS
	EWRAM *memory.EWRAM
	IWRAM *memory.IWRAM

	IORegs *io.IORegs

	PALRAM []byte
	VRAM   []byte
	OAM    []byte

	Cartridge *cartridge.Cartridge
}

// NewBus wires a Bus to its backing components.
func NewBus(bios *memory.BIOS, ewram *memory.EWRAM, iwram *memory.IWRAM, cart *cartridge.Cartridge, ioRegs *io.IORegs) *Bus {
	return &Bus{
		BIOS:      bios,
		EWRAM:     ewram,
		IWRAM:     iwram,
		IORegs:    ioRegs,
		PALRAM:    make([]byte, PALRAMSize),
		VRAM:      make([]byte, VRAMSize),
		OAM:       make([]byte, OAMSize),
		Cartridge: cart,
	}
}

// Read8 reads a byte from the memory map.
func (b *Bus) Read8(addr uint32) uint8 {
	switch {
	case addr >= BIOSAddrStart && addr <= BIOSAddrEnd:
		return b.BIOS.Read8(addr - BIOSAddrStart)
	case addr >= EWRAMAddrStart && addr <= EWRAMMirrorEnd:
		return b.EWRAM.Read8((addr - EWRAMAddrStart) % memory.EWRAM_SIZE)
	case addr >= IWRAMAddrStart && addr <= IWRAMMirrorEnd:
		return b.IWRAM.Read8((addr - IWRAMAddrStart) % memory.IWRAM_SIZE)
	case addr >= IOAddrStart && addr <= IOMirrorEnd:
		maskedAddr := (addr - IOAddrStart) % b.IORegs.Size()
		return b.IORegs.GetReg(maskedAddr)
	case addr >= PALRAMAddrStart && addr <= PALRAMMirrorEnd:
		return b.PALRAM[(addr-PALRAMAddrStart)%PALRAMSize]
	case addr >= VRAMAddrStart && addr <= VRAMMirrorEnd:
		return b.VRAM[(addr-VRAMAddrStart)%VRAMSize]
	case addr >= OAMAddrStart && addr <= OAMMirrorEnd:
		return b.OAM[(addr-OAMAddrStart)%OAMSize]
	case addr >= GamePakAddrStartWS0 && addr <= GamePakAddrEndWS2:
		return b.Cartridge.ReadROM8((addr - GamePakAddrStartWS0) % 0x02000000)
	case addr >= GamePakSRAMAddrStart && addr <= GamePakSRAMAddrEnd:
		return b.Cartridge.ReadSRAM8(addr - GamePakSRAMAddrStart)
	default:
		dbg.Printf("Bus: unhandled 8-bit read from address %08X\n", addr)
		return 0xFF
	}
}

// Write8 writes a byte to the specified memory address.
func (b *Bus) Write8(addr uint32, value uint8) {
	switch {
	case addr >= BIOSAddrStart && addr <= BIOSAddrEnd:
		dbg.Printf("WARN: attempted write to read-only BIOS at %08X\n", addr)
	case addr >= EWRAMAddrStart && addr <= EWRAMMirrorEnd:
		b.EWRAM.Write8((addr-EWRAMAddrStart)%memory.EWRAM_SIZE, value)
	case addr >= IWRAMAddrStart && addr <= IWRAMMirrorEnd:
		b.IWRAM.Write8((addr-IWRAMAddrStart)%memory.IWRAM_SIZE, value)
	case addr >= IOAddrStart && addr <= IOMirrorEnd:
		b.IORegs.SetReg((addr-IOAddrStart)%b.IORegs.Size(), value)
	case addr >= PALRAMAddrStart && addr <= PALRAMMirrorEnd:
		b.PALRAM[(addr-PALRAMAddrStart)%PALRAMSize] = value
	case addr >= VRAMAddrStart && addr <= VRAMMirrorEnd:
		b.VRAM[(addr-VRAMAddrStart)%VRAMSize] = value
	case addr >= OAMAddrStart && addr <= OAMMirrorEnd:
		b.OAM[(addr-OAMAddrStart)%OAMSize] = value
	case addr >= GamePakAddrStartWS0 && addr <= GamePakAddrEndWS2:
		dbg.Printf("WARN: attempted write to read-only ROM at %08X\n", addr)
	case addr >= GamePakSRAMAddrStart && addr <= GamePakSRAMAddrEnd:
		b.Cartridge.WriteSRAM8(addr-GamePakSRAMAddrStart, value)
	default:
		dbg.Printf("Bus: unhandled 8-bit write to address %08X\n", addr)
	}
}

func (b *Bus) read16(addr uint32) uint16 {
	lo := uint16(b.Read8(addr))
	hi := uint16(b.Read8(addr + 1))
	return lo | hi<<8
}

func (b *Bus) write16(addr uint32, value uint16) {
	b.Write8(addr, uint8(value))
	b.Write8(addr+1, uint8(value>>8))
}

func (b *Bus) read32(addr uint32) uint32 {
	lo := uint32(b.read16(addr))
	hi := uint32(b.read16(addr + 2))
	return lo | hi<<16
}

func (b *Bus) write32(addr uint32, value uint32) {
	b.write16(addr, uint16(value))
	b.write16(addr+2, uint16(value>>16))
}

// Load8 implements interfaces.Memory.
func (b *Bus) Load8(addr uint32, cycles *uint64) uint8 {
	*cycles += b.accessCost(addr, 1)
	return b.Read8(addr)
}

func (b *Bus) Load8Signed(addr uint32, cycles *uint64) int8 {
	return int8(b.Load8(addr, cycles))
}

func (b *Bus) Load16(addr uint32, cycles *uint64) uint16 {
	*cycles += b.accessCost(addr, 2)
	return b.read16(addr &^ 1)
}

func (b *Bus) Load16Signed(addr uint32, cycles *uint64) int16 {
	return int16(b.Load16(addr, cycles))
}

func (b *Bus) Load32(addr uint32, cycles *uint64) uint32 {
	*cycles += b.accessCost(addr, 4)
	return b.read32(addr &^ 3)
}

func (b *Bus) Store8(addr uint32, value uint8, cycles *uint64) {
	*cycles += b.accessCost(addr, 1)
	b.Write8(addr, value)
}

func (b *Bus) Store16(addr uint32, value uint16, cycles *uint64) {
	*cycles += b.accessCost(addr, 2)
	b.write16(addr&^1, value)
}

func (b *Bus) Store32(addr uint32, value uint32, cycles *uint64) {
	*cycles += b.accessCost(addr, 4)
	b.write32(addr&^3, value)
}

// accessCost returns the wait-state cost of one access of the given width,
// a simplified flat model (this core does not track GamePak WAITCNT
// prefetch/wait-state configuration).
func (b *Bus) accessCost(addr uint32, width int) uint64 {
	switch {
	case addr >= GamePakAddrStartWS0 && addr <= GamePakAddrEndWS2:
		if width == 4 {
			return 2
		}
		return 1
	default:
		return 0
	}
}

// WaitMultiple returns the wait-state cost of an LDM/STM transfer of count
// registers starting at addr.
func (b *Bus) WaitMultiple(addr uint32, count int) uint64 {
	return b.accessCost(addr, 4) * uint64(count)
}

// WaitMul returns the internal cycle cost of a multiply, from the
// leading-zero/leading-one run length of rs, per the ARM7TDMI's early
// termination rule (1-4 cycles depending on how many of the high bytes of
// rs are all-0 or all-1).
func (b *Bus) WaitMul(rs uint32) uint64 {
	switch {
	case rs>>8 == 0 || rs>>8 == 0x00FFFFFF:
		return 1
	case rs>>16 == 0 || rs>>16 == 0x0000FFFF:
		return 2
	case rs>>24 == 0 || rs>>24 == 0x000000FF:
		return 3
	default:
		return 4
	}
}

// ActiveRegion returns a direct read window into the byte slice backing
// addr, for the CPU's fast instruction-fetch path.
func (b *Bus) ActiveRegion(addr uint32) (region []byte, offset uint32, ok bool) {
	switch {
	case addr >= EWRAMAddrStart && addr <= EWRAMMirrorEnd:
		off := (addr - EWRAMAddrStart) % memory.EWRAM_SIZE
		return b.EWRAM.Bytes(), off, true
	case addr >= IWRAMAddrStart && addr <= IWRAMMirrorEnd:
		off := (addr - IWRAMAddrStart) % memory.IWRAM_SIZE
		return b.IWRAM.Bytes(), off, true
	case addr >= GamePakAddrStartWS0 && addr <= GamePakAddrEndWS2:
		off := (addr - GamePakAddrStartWS0) % 0x02000000
		return b.Cartridge.ROM, off, true
	default:
		return nil, 0, false
	}
}
