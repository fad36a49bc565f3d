package interfaces

// Board is the supervisor collaborator the CPU core invokes for SWI
// dispatch and interrupt-line queries. It decides whether an SWI is
// serviced by HLE or by driving the architectural exception entry helpers
// the CPU exposes.
type Board interface {
	// SWI32 handles a software interrupt with the given 24-bit immediate.
	// Returning true means the board fully handled it (HLE); false tells
	// the CPU to perform the architectural exception entry itself.
	SWI32(immediate24 uint32) (handled bool)

	// IRQLine reports whether an interrupt request is currently pending.
	IRQLine() bool
	SetIRQLine(pending bool)

	// HitStub is invoked for illegal encodings, unimplemented stubs
	// (coprocessor, reserved forms) and BKPT.
	HitStub(opcode uint32)
}
