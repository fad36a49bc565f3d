package interfaces

// RegistersInterface exposes the ARM7TDMI register file: the general
// purpose banked registers, CPSR/SPSR, and the mode/flag accessors the
// instruction handlers operate on.
type RegistersInterface interface {
	GetReg(n uint8) uint32
	SetReg(n uint8, value uint32)

	GetPC() uint32
	SetPC(value uint32)

	GetCPSR() uint32
	SetCPSR(value uint32)
	GetSPSR() uint32
	SetSPSR(value uint32)
	HasSPSR() bool

	GetMode() uint8
	SetMode(mode uint8)

	IsThumb() bool
	SetThumbState(thumb bool)

	IsFIQDisabled() bool
	SetFIQDisabled(disabled bool)
	IsIRQDisabled() bool
	SetIRQDisabled(disabled bool)

	GetFlagN() bool
	GetFlagZ() bool
	GetFlagC() bool
	GetFlagV() bool
	SetFlagN(bool)
	SetFlagZ(bool)
	SetFlagC(bool)
	SetFlagV(bool)
}
