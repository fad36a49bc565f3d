package cpu

// branchHandler executes B and BL: a 24-bit signed immediate, sign
// extended and shifted left by 2, added to PC (read as instrAddr+8). BL
// additionally writes the return address to LR, per §4.6.
func branchHandler(c *CPU, opcode uint32, instrAddr uint32) {
	link := bit(opcode, 24)
	offset := signExtend(bits(opcode, 23, 0), 24) << 2
	target := instrAddr + 8 + offset

	if link {
		c.regs.SetReg(14, instrAddr+4)
	}
	c.regs.SetPC(target)
	c.flushPipeline()
}

// bxHandler executes BX Rm: the low bit of Rm selects the execution mode
// and PC is realigned accordingly, per §4.6.
func bxHandler(c *CPU, opcode uint32, instrAddr uint32) {
	rm := uint8(bits(opcode, 3, 0))
	rmVal := c.readReg(rm, instrAddr)
	thumb := rmVal&1 != 0

	c.setExecutionMode(thumb)
	if thumb {
		c.regs.SetPC(rmVal &^ 1)
	} else {
		c.regs.SetPC(rmVal &^ 3)
	}
	c.flushPipeline()
}
