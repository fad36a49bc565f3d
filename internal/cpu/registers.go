package cpu

// CPU operating mode encodings (CPSR bits [4:0]).
const (
	ModeUSR uint8 = 0b10000
	ModeFIQ uint8 = 0b10001
	ModeIRQ uint8 = 0b10010
	ModeSVC uint8 = 0b10011
	ModeABT uint8 = 0b10111
	ModeUND uint8 = 0b11011
	ModeSYS uint8 = 0b11111
)

// CPSR bit positions.
const (
	cpsrModeMask  = 0x1F
	cpsrThumbBit  = 1 << 5
	cpsrFIQBit    = 1 << 6
	cpsrIRQBit    = 1 << 7
	cpsrFlagV     = 1 << 28
	cpsrFlagC     = 1 << 29
	cpsrFlagZ     = 1 << 30
	cpsrFlagN     = 1 << 31
)

// Registers is the ARM7TDMI banked register file: r0-r12 are shared by
// every mode but FIQ, which banks r8-r12 privately; r13 (SP) and r14 (LR)
// are banked per privileged mode; r15 is the program counter.
type Registers struct {
	r [13]uint32 // r0-r12, non-FIQ bank

	r8Fiq, r9Fiq, r10Fiq, r11Fiq, r12Fiq uint32
	spFiq, lrFiq                         uint32

	spUsr, lrUsr uint32
	spSvc, lrSvc uint32
	spAbt, lrAbt uint32
	spUnd, lrUnd uint32
	spIrq, lrIrq uint32

	pc uint32

	cpsr uint32

	spsrFiq, spsrSvc, spsrAbt, spsrUnd, spsrIrq uint32
}

// NewRegisters returns a register file reset to Supervisor mode with IRQ
// and FIQ disabled and ARM execution state, matching BIOS cold-boot state.
func NewRegisters() *Registers {
	r := &Registers{}
	r.cpsr = uint32(ModeSVC) | cpsrIRQBit | cpsrFIQBit
	return r
}

// GetReg reads general-purpose register n (0-15) through the current
// mode's bank. Reading r15 returns the raw PC value with no +8 offset;
// instruction handlers that need the "PC reads as address+8" rule go
// through CPU.readReg, which derives it from the executing instruction's
// address.
func (r *Registers) GetReg(n uint8) uint32 {
	switch {
	case n == 15:
		return r.pc
	case n == 13:
		return r.bankedSP()
	case n == 14:
		return r.bankedLR()
	case n >= 8 && n <= 12 && r.GetMode() == ModeFIQ:
		return r.fiqBank(n)
	default:
		return r.r[n]
	}
}

// SetReg writes general-purpose register n through the current mode's bank.
func (r *Registers) SetReg(n uint8, value uint32) {
	switch {
	case n == 15:
		r.pc = value
	case n == 13:
		r.setBankedSP(value)
	case n == 14:
		r.setBankedLR(value)
	case n >= 8 && n <= 12 && r.GetMode() == ModeFIQ:
		r.setFiqBank(n, value)
	default:
		r.r[n] = value
	}
}

func (r *Registers) fiqBank(n uint8) uint32 {
	switch n {
	case 8:
		return r.r8Fiq
	case 9:
		return r.r9Fiq
	case 10:
		return r.r10Fiq
	case 11:
		return r.r11Fiq
	default:
		return r.r12Fiq
	}
}

func (r *Registers) setFiqBank(n uint8, value uint32) {
	switch n {
	case 8:
		r.r8Fiq = value
	case 9:
		r.r9Fiq = value
	case 10:
		r.r10Fiq = value
	case 11:
		r.r11Fiq = value
	default:
		r.r12Fiq = value
	}
}

func (r *Registers) bankedSP() uint32 {
	switch r.GetMode() {
	case ModeFIQ:
		return r.spFiq
	case ModeSVC:
		return r.spSvc
	case ModeABT:
		return r.spAbt
	case ModeUND:
		return r.spUnd
	case ModeIRQ:
		return r.spIrq
	default: // USR, SYS
		return r.spUsr
	}
}

func (r *Registers) setBankedSP(value uint32) {
	switch r.GetMode() {
	case ModeFIQ:
		r.spFiq = value
	case ModeSVC:
		r.spSvc = value
	case ModeABT:
		r.spAbt = value
	case ModeUND:
		r.spUnd = value
	case ModeIRQ:
		r.spIrq = value
	default:
		r.spUsr = value
	}
}

func (r *Registers) bankedLR() uint32 {
	switch r.GetMode() {
	case ModeFIQ:
		return r.lrFiq
	case ModeSVC:
		return r.lrSvc
	case ModeABT:
		return r.lrAbt
	case ModeUND:
		return r.lrUnd
	case ModeIRQ:
		return r.lrIrq
	default:
		return r.lrUsr
	}
}

func (r *Registers) setBankedLR(value uint32) {
	switch r.GetMode() {
	case ModeFIQ:
		r.lrFiq = value
	case ModeSVC:
		r.lrSvc = value
	case ModeABT:
		r.lrAbt = value
	case ModeUND:
		r.lrUnd = value
	case ModeIRQ:
		r.lrIrq = value
	default:
		r.lrUsr = value
	}
}

// GetUserReg reads r0-r14 through the User/System bank regardless of the
// current mode, for LDM/STM S-bit transfers that target the user bank.
func (r *Registers) GetUserReg(n uint8) uint32 {
	switch {
	case n == 13:
		return r.spUsr
	case n == 14:
		return r.lrUsr
	case n >= 8 && n <= 12 && r.GetMode() == ModeFIQ:
		return r.r[n]
	default:
		return r.GetReg(n)
	}
}

// SetUserReg writes r0-r14 through the User/System bank regardless of the
// current mode.
func (r *Registers) SetUserReg(n uint8, value uint32) {
	switch {
	case n == 13:
		r.spUsr = value
	case n == 14:
		r.lrUsr = value
	case n >= 8 && n <= 12 && r.GetMode() == ModeFIQ:
		r.r[n] = value
	default:
		r.SetReg(n, value)
	}
}

func (r *Registers) GetPC() uint32      { return r.pc }
func (r *Registers) SetPC(value uint32) { r.pc = value }

func (r *Registers) GetCPSR() uint32 { return r.cpsr }

// SetCPSR writes the whole CPSR, including a mode change if the mode field
// differs — the bank swap is implicit in how GetReg/SetReg dispatch on
// GetMode(), so no explicit copy step is required.
func (r *Registers) SetCPSR(value uint32) {
	r.cpsr = value
}

func (r *Registers) GetMode() uint8 { return uint8(r.cpsr & cpsrModeMask) }

func (r *Registers) SetMode(mode uint8) {
	r.cpsr = (r.cpsr &^ cpsrModeMask) | uint32(mode&cpsrModeMask)
}

// HasSPSR reports whether the current mode has a private SPSR bank. User
// and System modes do not.
func (r *Registers) HasSPSR() bool {
	switch r.GetMode() {
	case ModeFIQ, ModeSVC, ModeABT, ModeUND, ModeIRQ:
		return true
	default:
		return false
	}
}

// GetSPSR returns the current mode's SPSR, or 0 if the mode has none.
func (r *Registers) GetSPSR() uint32 {
	switch r.GetMode() {
	case ModeFIQ:
		return r.spsrFiq
	case ModeSVC:
		return r.spsrSvc
	case ModeABT:
		return r.spsrAbt
	case ModeUND:
		return r.spsrUnd
	case ModeIRQ:
		return r.spsrIrq
	default:
		return 0
	}
}

// SetSPSR writes the current mode's SPSR; a no-op in User/System modes.
func (r *Registers) SetSPSR(value uint32) {
	switch r.GetMode() {
	case ModeFIQ:
		r.spsrFiq = value
	case ModeSVC:
		r.spsrSvc = value
	case ModeABT:
		r.spsrAbt = value
	case ModeUND:
		r.spsrUnd = value
	case ModeIRQ:
		r.spsrIrq = value
	}
}

func (r *Registers) IsThumb() bool { return r.cpsr&cpsrThumbBit != 0 }

func (r *Registers) SetThumbState(thumb bool) {
	if thumb {
		r.cpsr |= cpsrThumbBit
	} else {
		r.cpsr &^= cpsrThumbBit
	}
}

func (r *Registers) IsFIQDisabled() bool { return r.cpsr&cpsrFIQBit != 0 }

func (r *Registers) SetFIQDisabled(disabled bool) {
	if disabled {
		r.cpsr |= cpsrFIQBit
	} else {
		r.cpsr &^= cpsrFIQBit
	}
}

func (r *Registers) IsIRQDisabled() bool { return r.cpsr&cpsrIRQBit != 0 }

func (r *Registers) SetIRQDisabled(disabled bool) {
	if disabled {
		r.cpsr |= cpsrIRQBit
	} else {
		r.cpsr &^= cpsrIRQBit
	}
}

func (r *Registers) GetFlagN() bool { return r.cpsr&cpsrFlagN != 0 }
func (r *Registers) GetFlagZ() bool { return r.cpsr&cpsrFlagZ != 0 }
func (r *Registers) GetFlagC() bool { return r.cpsr&cpsrFlagC != 0 }
func (r *Registers) GetFlagV() bool { return r.cpsr&cpsrFlagV != 0 }

func (r *Registers) SetFlagN(v bool) { r.setFlagBit(cpsrFlagN, v) }
func (r *Registers) SetFlagZ(v bool) { r.setFlagBit(cpsrFlagZ, v) }
func (r *Registers) SetFlagC(v bool) { r.setFlagBit(cpsrFlagC, v) }
func (r *Registers) SetFlagV(v bool) { r.setFlagBit(cpsrFlagV, v) }

func (r *Registers) setFlagBit(bit uint32, set bool) {
	if set {
		r.cpsr |= bit
	} else {
		r.cpsr &^= bit
	}
}
