// Package board implements the collaborator the CPU core dispatches SWIs
// and undefined-instruction stubs to, and consults for pending IRQs.
package board

import "GoBA/util/dbg"

// SWI immediate values this core recognizes for HLE short-circuiting.
// SWI32 only receives the 24-bit comment field, not register state, so any
// call whose behavior depends on r0-r3 (Div, Sqrt, CpuSet, ...) is left
// unhandled here and falls through to the architectural SWI vector, where
// a real BIOS image services it with full register access.
const (
	swiSoftReset = 0x00
	swiHalt      = 0x02
	swiStop      = 0x03
	swiVBlankIRQ = 0x05
)

// Board is the GBA-shaped Board collaborator: it tracks the halt/IRQ-line
// state a real SWI Halt/Stop or interrupt controller would own, and HLEs
// the handful of SWIs whose effect is observable without register access.
type Board struct {
	halted   bool
	irqLine  bool
	stubHits []uint32
}

func NewBoard() *Board {
	return &Board{}
}

// SWI32 services the subset of BIOS calls this core can short-circuit
// without register access. Everything else returns false so the caller
// takes the architectural SWI vector.
func (b *Board) SWI32(immediate24 uint32) bool {
	comment := immediate24 >> 16 // the top byte of the 24-bit field is the function number on real hardware
	switch comment {
	case swiHalt, swiStop:
		b.halted = true
		return true
	case swiVBlankIRQ:
		// IntrWait-family calls block until the awaited interrupt fires;
		// this core has no scheduler to suspend on, so it is a no-op HLE.
		return true
	case swiSoftReset:
		dbg.Printf("board: SoftReset SWI requested; caller must re-Reset the CPU")
		return false
	default:
		return false
	}
}

func (b *Board) IRQLine() bool {
	return b.irqLine
}

func (b *Board) SetIRQLine(pending bool) {
	b.irqLine = pending
	if pending {
		b.halted = false
	}
}

// Halted reports whether a Halt/Stop SWI parked the core; the step driver
// can use this to skip Step() calls until SetIRQLine(true) wakes it.
func (b *Board) Halted() bool {
	return b.halted
}

// HitStub records an encounter with an undefined or unimplemented
// encoding, for diagnostics.
func (b *Board) HitStub(opcode uint32) {
	b.stubHits = append(b.stubHits, opcode)
	dbg.Printf("board: undefined instruction stub hit, opcode=0x%08X", opcode)
}

// StubHits returns the opcodes HitStub has recorded, most recent last.
func (b *Board) StubHits() []uint32 {
	return b.stubHits
}
