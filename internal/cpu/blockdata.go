package cpu

// blockTransferHandler executes LDM/STM across addressing modes
// IA/IB/DA/DB, the S-bit user-bank/exception-return forms, and the
// Rn-first-in-list STM writeback rule, per §4.5 and DESIGN.md's resolved
// Open Question on LDM-with-r15-and-S-bit.
func blockTransferHandler(c *CPU, opcode uint32, instrAddr uint32) {
	p := bit(opcode, 24)
	u := bit(opcode, 23)
	s := bit(opcode, 22)
	w := bit(opcode, 21)
	l := bit(opcode, 20)
	rn := uint8(bits(opcode, 19, 16))
	regList := uint16(bits(opcode, 15, 0))

	var regs []uint8
	for i := uint8(0); i < 16; i++ {
		if regList&(1<<i) != 0 {
			regs = append(regs, i)
		}
	}
	count := uint32(len(regs))
	if count == 0 {
		return
	}
	hasR15 := regList&(1<<15) != 0

	base := c.regs.GetReg(rn)
	var start uint32
	switch {
	case u && !p: // IA
		start = base
	case u && p: // IB
		start = base + 4
	case !u && !p: // DA
		start = base - count*4 + 4
	default: // DB
		start = base - count*4
	}
	var finalBase uint32
	if u {
		finalBase = base + count*4
	} else {
		finalBase = base - count*4
	}

	// LDM's r15-in-list form is the exception-return special case (CPSR
	// restored from SPSR instead of a user-bank register load), so S set
	// with r15 in the list cancels user-bank access for LDM only. STM^
	// has no such carve-out: it always uses the user bank for r8-r14
	// when S is set, r15 or not.
	loadUserBank := s && !hasR15
	storeUserBank := s

	if l {
		c.doLoadMultiple(regs, start, rn, finalBase, w, loadUserBank, s, hasR15)
		c.cycles += c.mem.WaitMultiple(start, int(count)) + 1
	} else {
		c.doStoreMultiple(regs, start, rn, finalBase, instrAddr, w, storeUserBank)
		c.cycles += c.mem.WaitMultiple(start, int(count))
		if w {
			c.regs.SetReg(rn, finalBase)
		}
	}
}

func (c *CPU) doLoadMultiple(regs []uint8, start uint32, rn uint8, finalBase uint32, writeback, userBank, sBit, hasR15 bool) {
	// Writeback happens before the transfer: if Rn is itself in the list,
	// its loaded value wins over the writeback.
	if writeback {
		c.regs.SetReg(rn, finalBase)
	}

	addr := start
	for _, reg := range regs {
		value := c.mem.Load32(addr, &c.cycles)
		switch {
		case reg == 15:
			c.regs.SetPC(value &^ 3)
		case userBank:
			c.regs.SetUserReg(reg, value)
		default:
			c.regs.SetReg(reg, value)
		}
		addr += 4
	}

	if hasR15 {
		if sBit {
			c.regs.SetCPSR(c.regs.GetSPSR())
		}
		c.flushPipeline()
	}
}

func (c *CPU) doStoreMultiple(regs []uint8, start uint32, rn uint8, finalBase uint32, instrAddr uint32, writeback, userBank bool) {
	firstReg := regs[0]
	addr := start
	for _, reg := range regs {
		var value uint32
		switch {
		case reg == 15:
			value = instrAddr + 12
		case writeback && reg == rn && reg != firstReg:
			value = finalBase
		case userBank:
			value = c.regs.GetUserReg(reg)
		default:
			value = c.regs.GetReg(reg)
		}
		c.mem.Store32(addr, value, &c.cycles)
		addr += 4
	}
}
