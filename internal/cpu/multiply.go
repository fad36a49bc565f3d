package cpu

// multiplyHandler executes MUL/MLA. S-variants set N/Z from the 32-bit
// result and leave C/V unspecified (preserved), per §4.4.
func multiplyHandler(c *CPU, opcode uint32, instrAddr uint32) {
	accumulate := bit(opcode, 21)
	setFlags := bit(opcode, 20)
	rd := uint8(bits(opcode, 19, 16))
	rn := uint8(bits(opcode, 15, 12))
	rs := uint8(bits(opcode, 11, 8))
	rm := uint8(bits(opcode, 3, 0))

	rsVal := c.regs.GetReg(rs)
	result := c.regs.GetReg(rm) * rsVal
	if accumulate {
		result += c.regs.GetReg(rn)
	}
	c.regs.SetReg(rd, result)

	c.cycles += c.mem.WaitMul(rsVal)
	if accumulate {
		c.cycles++
	}

	if setFlags {
		c.regs.SetFlagN(result>>31 != 0)
		c.regs.SetFlagZ(result == 0)
	}
}

// multiplyLongHandler executes UMULL/SMULL/UMLAL/SMLAL, producing a 64-bit
// {RdHi,RdLo} result.
func multiplyLongHandler(c *CPU, opcode uint32, instrAddr uint32) {
	signed := bit(opcode, 22)
	accumulate := bit(opcode, 21)
	setFlags := bit(opcode, 20)
	rdHi := uint8(bits(opcode, 19, 16))
	rdLo := uint8(bits(opcode, 15, 12))
	rs := uint8(bits(opcode, 11, 8))
	rm := uint8(bits(opcode, 3, 0))

	rsVal := c.regs.GetReg(rs)
	rmVal := c.regs.GetReg(rm)

	var product uint64
	if signed {
		product = uint64(int64(int32(rmVal)) * int64(int32(rsVal)))
	} else {
		product = uint64(rmVal) * uint64(rsVal)
	}

	if accumulate {
		acc := uint64(c.regs.GetReg(rdHi))<<32 | uint64(c.regs.GetReg(rdLo))
		product += acc
	}

	resLo := uint32(product)
	resHi := uint32(product >> 32)
	c.regs.SetReg(rdLo, resLo)
	c.regs.SetReg(rdHi, resHi)

	c.cycles += c.mem.WaitMul(rsVal) + 1
	if accumulate {
		c.cycles++
	}

	if setFlags {
		c.regs.SetFlagN(resHi>>31 != 0)
		c.regs.SetFlagZ(resLo == 0 && resHi == 0)
	}
}
