package interfaces

// CPUInterface represents the ARM7TDMI CPU component.
type CPUInterface interface {
	Registers() RegistersInterface
	Memory() Memory
	Board() Board
	Reset()
	Step() uint64
}
