package cpu

// illegalHandler services encodings this target has no instruction for:
// reserved bit patterns and the coprocessor space (illegal/no-op per the
// Non-goals). It vectors through the Undefined-instruction exception.
func illegalHandler(c *CPU, opcode uint32, instrAddr uint32) {
	c.raiseUndefined(opcode, instrAddr)
}

// swiHandler dispatches SWI to the Board, or the architectural exception
// entry if the Board declines to service it via HLE.
func swiHandler(c *CPU, opcode uint32, instrAddr uint32) {
	immediate24 := bits(opcode, 23, 0)
	c.raiseSWI(immediate24, instrAddr)
}
