package cpu

// singleTransferHandler executes mode-2 (word/byte) LDR/STR/LDRB/STRB,
// including the T-variant (post-indexed, W set) which temporarily forces
// User-mode privilege for the access, per §4.5.
func singleTransferHandler(c *CPU, opcode uint32, instrAddr uint32) {
	regOffset := bit(opcode, 25)
	p := bit(opcode, 24)
	u := bit(opcode, 23)
	b := bit(opcode, 22)
	w := bit(opcode, 21)
	l := bit(opcode, 20)
	rn := uint8(bits(opcode, 19, 16))
	rd := uint8(bits(opcode, 15, 12))

	var offset uint32
	if regOffset {
		rm := uint8(bits(opcode, 3, 0))
		shiftImm := uint8(bits(opcode, 11, 7))
		shiftType := bits(opcode, 6, 5)
		rmVal := c.readReg(rm, instrAddr)
		offset = applyImmShift(shiftType, rmVal, shiftImm, false).operand
	} else {
		offset = bits(opcode, 11, 0)
	}

	baseVal := c.readReg(rn, instrAddr)
	addr := baseVal
	if p {
		addr = offsetAddr(baseVal, offset, u)
	}

	isT := !p && w
	var restoreMode uint8
	if isT {
		restoreMode = c.regs.GetMode()
		c.regs.SetMode(ModeUSR)
	}

	if l {
		var value uint32
		if b {
			value = uint32(c.mem.Load8(addr, &c.cycles))
		} else {
			value = c.mem.Load32(addr, &c.cycles)
		}
		if isT {
			c.regs.SetMode(restoreMode)
		}
		if rd == 15 {
			c.regs.SetPC(value &^ 3)
			c.flushPipeline()
		} else {
			c.regs.SetReg(rd, value)
		}
	} else {
		var storeVal uint32
		if rd == 15 {
			storeVal = instrAddr + 12
		} else {
			storeVal = c.regs.GetReg(rd)
		}
		if b {
			c.mem.Store8(addr, uint8(storeVal), &c.cycles)
		} else {
			c.mem.Store32(addr, storeVal, &c.cycles)
		}
		if isT {
			c.regs.SetMode(restoreMode)
		}
	}

	if !p {
		c.regs.SetReg(rn, offsetAddr(baseVal, offset, u))
	} else if w {
		c.regs.SetReg(rn, addr)
	}
}

// halfwordTransferHandler executes mode-3 (half-word / signed-byte)
// LDRH/STRH/LDRSB/LDRSH.
func halfwordTransferHandler(c *CPU, opcode uint32, instrAddr uint32) {
	p := bit(opcode, 24)
	u := bit(opcode, 23)
	immForm := bit(opcode, 22)
	w := bit(opcode, 21)
	l := bit(opcode, 20)
	rn := uint8(bits(opcode, 19, 16))
	rd := uint8(bits(opcode, 15, 12))
	sh := bits(opcode, 6, 5)

	var offset uint32
	if immForm {
		hi := bits(opcode, 11, 8)
		lo := bits(opcode, 3, 0)
		offset = hi<<4 | lo
	} else {
		rm := uint8(bits(opcode, 3, 0))
		offset = c.readReg(rm, instrAddr)
	}

	baseVal := c.readReg(rn, instrAddr)
	addr := baseVal
	if p {
		addr = offsetAddr(baseVal, offset, u)
	}

	if l {
		var value uint32
		switch sh {
		case 0b01:
			value = uint32(c.mem.Load16(addr, &c.cycles))
		case 0b10:
			value = uint32(int32(c.mem.Load8Signed(addr, &c.cycles)))
		default: // 0b11
			value = uint32(int32(c.mem.Load16Signed(addr, &c.cycles)))
		}
		if rd == 15 {
			c.regs.SetPC(value &^ 3)
			c.flushPipeline()
		} else {
			c.regs.SetReg(rd, value)
		}
	} else if sh == 0b01 {
		var storeVal uint32
		if rd == 15 {
			storeVal = instrAddr + 12
		} else {
			storeVal = c.regs.GetReg(rd)
		}
		c.mem.Store16(addr, uint16(storeVal), &c.cycles)
	} else {
		c.raiseUndefined(opcode, instrAddr) // LDRD/STRD forms: not part of ARMv4T
		return
	}

	if !p {
		c.regs.SetReg(rn, offsetAddr(baseVal, offset, u))
	} else if w {
		c.regs.SetReg(rn, addr)
	}
}

// swapHandler executes SWP/SWPB: a locked read-modify-write. The load into
// the temp happens before the store of Rm, so Rd==Rm is handled correctly
// (the old memory word reaches Rd even when Rm aliases it).
func swapHandler(c *CPU, opcode uint32, instrAddr uint32) {
	b := bit(opcode, 22)
	rn := uint8(bits(opcode, 19, 16))
	rd := uint8(bits(opcode, 15, 12))
	rm := uint8(bits(opcode, 3, 0))

	addr := c.readReg(rn, instrAddr)
	storeVal := c.readReg(rm, instrAddr)

	var temp uint32
	if b {
		temp = uint32(c.mem.Load8(addr, &c.cycles))
		c.mem.Store8(addr, uint8(storeVal), &c.cycles)
	} else {
		temp = c.mem.Load32(addr, &c.cycles)
		c.mem.Store32(addr, storeVal, &c.cycles)
	}
	c.cycles++ // internal cycle for the locked read-modify-write
	c.regs.SetReg(rd, temp)
}

func offsetAddr(base, offset uint32, up bool) uint32 {
	if up {
		return base + offset
	}
	return base - offset
}

// applyImmShift dispatches one of the four shift-by-immediate forms by
// shiftType (0=LSL,1=LSR,2=ASR,3=ROR), for load/store address calculation
// where the carry-out is not observable.
func applyImmShift(shiftType uint32, rm uint32, imm uint8, carryIn bool) shiftResult {
	switch shiftType {
	case 0:
		return shiftLSLImm(rm, imm, carryIn)
	case 1:
		return shiftLSRImm(rm, imm, carryIn)
	case 2:
		return shiftASRImm(rm, imm, carryIn)
	default:
		return shiftRORImm(rm, imm, carryIn)
	}
}
