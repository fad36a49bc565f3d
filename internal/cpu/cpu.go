package cpu

import (
	"GoBA/internal/interfaces"
	"GoBA/util/dbg"
)

// BIOS entry points for the exception vectors this core drives directly.
const (
	vectorReset     = 0x00000000
	vectorUndefined = 0x00000004
	vectorSWI       = 0x00000008
	vectorAbort     = 0x00000010
	vectorIRQ       = 0x00000018
	vectorFIQ       = 0x0000001C
)

// CPU is an ARM7TDMI-class interpreter: fetch-decode-execute against a
// pluggable Memory and Board, producing register state, condition flags,
// and a running cycle tally.
type CPU struct {
	regs  *Registers
	mem   interfaces.Memory
	board interfaces.Board

	cycles uint64
}

// NewCPU wires a CPU to its Memory and Board collaborators.
func NewCPU(mem interfaces.Memory, board interfaces.Board) *CPU {
	return &CPU{
		regs:  NewRegisters(),
		mem:   mem,
		board: board,
	}
}

func (c *CPU) Registers() interfaces.RegistersInterface { return c.regs }
func (c *CPU) Memory() interfaces.Memory                { return c.mem }
func (c *CPU) Board() interfaces.Board                  { return c.board }
func (c *CPU) Cycles() uint64                           { return c.cycles }

// Reset puts the CPU at the Supervisor-mode reset vector, as a real
// ARM7TDMI does on power-on.
func (c *CPU) Reset() {
	c.regs = NewRegisters()
	c.regs.SetPC(vectorReset)
}

// readReg reads register n applying the "PC reads as address+8" rule:
// instrAddr is the address of the instruction currently executing.
func (c *CPU) readReg(n uint8, instrAddr uint32) uint32 {
	if n == 15 {
		return instrAddr + 8
	}
	return c.regs.GetReg(n)
}

// readRegForShift applies the extra +4 the shifter's register-shift forms
// read when the operand or the shift-amount register is PC (SPEC_FULL §9,
// "PC semantics").
func (c *CPU) readRegForShift(n uint8, instrAddr uint32) uint32 {
	if n == 15 {
		return instrAddr + 12
	}
	return c.regs.GetReg(n)
}

// Step executes one instruction and returns the number of cycles it
// consumed. A skipped instruction (condition false) still consumes one
// prefetch cycle, per §4.1.
func (c *CPU) Step() uint64 {
	if c.regs.IsThumb() {
		return c.stepThumb()
	}
	return c.stepARM()
}

func (c *CPU) stepARM() uint64 {
	instrAddr := c.regs.GetPC()
	opcode := c.fetch32(instrAddr)
	c.regs.SetPC(instrAddr + 4)

	before := c.cycles
	c.cycles++ // baseline prefetch cycle

	cond := opcode >> 28 & 0xF
	if !c.checkCondition(cond) {
		return c.cycles - before
	}

	index := ((opcode >> 16) & 0xFF0) | ((opcode >> 4) & 0xF)
	armDecodeTable[index](c, opcode, instrAddr)

	return c.cycles - before
}

// stepThumb exists only so the step driver can recognize a BX/mode-switch
// hand-off into Thumb without decoding Thumb instructions itself — Thumb
// decode is explicitly out of scope. A Board that wants to actually run
// Thumb code must supply its own decoder upstream of this core.
func (c *CPU) stepThumb() uint64 {
	before := c.cycles
	c.cycles++
	dbg.Printf("cpu: entered Thumb state at pc=0x%08X; Thumb decode is not part of this core", c.regs.GetPC())
	c.regs.SetPC(c.regs.GetPC() + 2)
	return c.cycles - before
}

func (c *CPU) fetch32(addr uint32) uint32 {
	if region, offset, ok := c.mem.ActiveRegion(addr); ok && int(offset)+4 <= len(region) {
		return uint32(region[offset]) | uint32(region[offset+1])<<8 |
			uint32(region[offset+2])<<16 | uint32(region[offset+3])<<24
	}
	return c.mem.Load32(addr, &c.cycles)
}

// checkCondition evaluates the 4-bit condition field against CPSR flags.
// Condition 0xF (NV) is treated as never, per spec.md §4.1 — see DESIGN.md
// resolved Open Question #1 for why this diverges from the original
// source's incidental fallthrough.
func (c *CPU) checkCondition(cond uint32) bool {
	n, z, cf, v := c.regs.GetFlagN(), c.regs.GetFlagZ(), c.regs.GetFlagC(), c.regs.GetFlagV()
	switch cond {
	case 0x0: // EQ
		return z
	case 0x1: // NE
		return !z
	case 0x2: // CS
		return cf
	case 0x3: // CC
		return !cf
	case 0x4: // MI
		return n
	case 0x5: // PL
		return !n
	case 0x6: // VS
		return v
	case 0x7: // VC
		return !v
	case 0x8: // HI
		return cf && !z
	case 0x9: // LS
		return !cf || z
	case 0xA: // GE
		return n == v
	case 0xB: // LT
		return n != v
	case 0xC: // GT
		return !z && (n == v)
	case 0xD: // LE
		return z || (n != v)
	case 0xE: // AL
		return true
	default: // 0xF NV
		return false
	}
}

// flushPipeline is a no-op in this core: because readReg computes the
// PC-relative +8/+12 offsets from instrAddr rather than literally refetching
// a pipeline, a branch/PC write only needs to set regs.PC to the new fetch
// address for the next Step() to pick up — see DESIGN.md for why the
// teacher's literal double-fetch FlushPipeline is not reproduced.
func (c *CPU) flushPipeline() {}

// setExecutionMode updates CPSR.T only; it does not touch PC. The caller
// aligns the new PC for the chosen state (&^1 for Thumb, &^3 for ARM).
func (c *CPU) setExecutionMode(thumb bool) {
	c.regs.SetThumbState(thumb)
}

// enterException performs the architectural exception entry sequence:
// bank to the target mode, save CPSR to that mode's SPSR, set LR to the
// return address, disable IRQ (and FIQ for Reset/FIQ), clear Thumb, and
// vector PC.
func (c *CPU) enterException(mode uint8, vector uint32, lr uint32, disableFIQAlso bool) {
	savedCPSR := c.regs.GetCPSR()
	c.regs.SetMode(mode)
	c.regs.SetSPSR(savedCPSR)
	c.regs.SetReg(14, lr)
	c.regs.SetIRQDisabled(true)
	if disableFIQAlso {
		c.regs.SetFIQDisabled(true)
	}
	c.regs.SetThumbState(false)
	c.regs.SetPC(vector)
	c.flushPipeline()
}

// raiseUndefined vectors through the Undefined-instruction exception,
// shared by illegal encodings, BKPT, and unimplemented stubs.
func (c *CPU) raiseUndefined(opcode uint32, instrAddr uint32) {
	c.board.HitStub(opcode)
	c.enterException(ModeUND, vectorUndefined, instrAddr+4, false)
}

// raiseDataAbort vectors through the Data Abort exception.
func (c *CPU) raiseDataAbort(instrAddr uint32) {
	c.enterException(ModeABT, vectorAbort, instrAddr+8, false)
}

// raiseSWI services a software interrupt: the Board may handle it via HLE,
// otherwise the architectural SWI vector is taken.
func (c *CPU) raiseSWI(immediate24 uint32, instrAddr uint32) {
	if c.board != nil && c.board.SWI32(immediate24) {
		return
	}
	c.enterException(ModeSVC, vectorSWI, instrAddr+4, false)
}
