package cpu

// flagClass selects which flags an ALU op's S-variant updates, per §4.3.
type flagClass int

const (
	flagNeutral flagClass = iota
	flagAddition
	flagSubtraction
)

// dpOp describes one of the 16 data-processing operations.
type dpOp struct {
	class     flagClass
	writeback bool // false for TST/TEQ/CMP/CMN: result is discarded
}

var dpOps = [16]dpOp{
	0x0: {flagNeutral, true},     // AND
	0x1: {flagNeutral, true},     // EOR
	0x2: {flagSubtraction, true}, // SUB
	0x3: {flagSubtraction, true}, // RSB
	0x4: {flagAddition, true},    // ADD
	0x5: {flagAddition, true},    // ADC
	0x6: {flagSubtraction, true}, // SBC
	0x7: {flagSubtraction, true}, // RSC
	0x8: {flagNeutral, false},    // TST
	0x9: {flagNeutral, false},    // TEQ
	0xA: {flagSubtraction, false}, // CMP
	0xB: {flagAddition, false},   // CMN
	0xC: {flagNeutral, true},     // ORR
	0xD: {flagNeutral, true},     // MOV
	0xE: {flagNeutral, true},     // BIC
	0xF: {flagNeutral, true},     // MVN
}

// addWithCarry implements the ARM ADC primitive: a + b + carryIn, reporting
// the unsigned carry-out and the signed overflow.
func addWithCarry(a, b, carryIn uint32) (result uint32, carryOut, overflow bool) {
	sum := uint64(a) + uint64(b) + uint64(carryIn)
	result = uint32(sum)
	carryOut = sum > 0xFFFFFFFF
	overflow = (a>>31 == b>>31) && (result>>31 != a>>31)
	return
}

// computeOperand2 evaluates addressing mode 1 for a data-processing
// instruction, returning the shifter operand, its carry-out, and any
// internal cycles the register-shift form charges.
func (c *CPU) computeOperand2(opcode uint32, instrAddr uint32) (operand uint32, carryOut bool, extraCycles uint64) {
	carryIn := c.regs.GetFlagC()

	if bit(opcode, 25) { // I=1: rotated 8-bit immediate
		imm8 := uint8(bits(opcode, 7, 0))
		rotate4 := uint8(bits(opcode, 11, 8))
		res := rotateImmediate(imm8, rotate4, carryIn)
		return res.operand, res.carryOut, 0
	}

	rm := uint8(bits(opcode, 3, 0))
	shiftType := bits(opcode, 6, 5)

	if bit(opcode, 4) { // register-shift-by-register form
		rs := uint8(bits(opcode, 11, 8))
		rmVal := c.readRegForShift(rm, instrAddr)
		rsVal := c.readRegForShift(rs, instrAddr)
		var res shiftResult
		switch shiftType {
		case 0:
			res = shiftLSLReg(rmVal, rsVal, carryIn)
		case 1:
			res = shiftLSRReg(rmVal, rsVal, carryIn)
		case 2:
			res = shiftASRReg(rmVal, rsVal, carryIn)
		default:
			res = shiftRORReg(rmVal, rsVal, carryIn)
		}
		return res.operand, res.carryOut, 1
	}

	imm5 := uint8(bits(opcode, 11, 7))
	rmVal := c.readReg(rm, instrAddr)
	var res shiftResult
	switch shiftType {
	case 0:
		res = shiftLSLImm(rmVal, imm5, carryIn)
	case 1:
		res = shiftLSRImm(rmVal, imm5, carryIn)
	case 2:
		res = shiftASRImm(rmVal, imm5, carryIn)
	default:
		res = shiftRORImm(rmVal, imm5, carryIn)
	}
	return res.operand, res.carryOut, 0
}

// dataProcessingHandler executes all 16 ALU operations across both
// shifter forms, parameterized by (shifter, op, set_flags) per §9 rather
// than ~2,000 macro-expanded variants.
func dataProcessingHandler(c *CPU, opcode uint32, instrAddr uint32) {
	opField := bits(opcode, 24, 21)
	setFlags := bit(opcode, 20)
	rn := uint8(bits(opcode, 19, 16))
	rd := uint8(bits(opcode, 15, 12))

	op2, shifterCarry, extraCycles := c.computeOperand2(opcode, instrAddr)
	c.cycles += extraCycles

	op := dpOps[opField]
	rnVal := c.readReg(rn, instrAddr)

	var result uint32
	var carryOut, overflow bool

	switch opField {
	case 0x0, 0x8: // AND, TST
		result = rnVal & op2
		carryOut = shifterCarry
	case 0x1, 0x9: // EOR, TEQ
		result = rnVal ^ op2
		carryOut = shifterCarry
	case 0xC: // ORR
		result = rnVal | op2
		carryOut = shifterCarry
	case 0xE: // BIC
		result = rnVal &^ op2
		carryOut = shifterCarry
	case 0xD: // MOV
		result = op2
		carryOut = shifterCarry
	case 0xF: // MVN
		result = ^op2
		carryOut = shifterCarry
	case 0x4, 0xB: // ADD, CMN
		result, carryOut, overflow = addWithCarry(rnVal, op2, 0)
	case 0x5: // ADC
		result, carryOut, overflow = addWithCarry(rnVal, op2, boolToU32(c.regs.GetFlagC()))
	case 0x2, 0xA: // SUB, CMP
		result, carryOut, overflow = addWithCarry(rnVal, ^op2, 1)
	case 0x6: // SBC
		result, carryOut, overflow = addWithCarry(rnVal, ^op2, boolToU32(c.regs.GetFlagC()))
	case 0x3: // RSB
		result, carryOut, overflow = addWithCarry(op2, ^rnVal, 1)
	case 0x7: // RSC
		result, carryOut, overflow = addWithCarry(op2, ^rnVal, boolToU32(c.regs.GetFlagC()))
	}

	pcDestSPSRCopy := rd == 15 && setFlags && c.regs.HasSPSR()

	if setFlags && !pcDestSPSRCopy {
		c.regs.SetFlagN(result>>31 != 0)
		c.regs.SetFlagZ(result == 0)
		switch op.class {
		case flagNeutral:
			c.regs.SetFlagC(carryOut)
		case flagAddition, flagSubtraction:
			c.regs.SetFlagC(carryOut)
			c.regs.SetFlagV(overflow)
		}
	}

	if !op.writeback {
		return
	}

	if rd == 15 {
		if pcDestSPSRCopy {
			c.regs.SetCPSR(c.regs.GetSPSR())
			if c.regs.IsThumb() {
				c.regs.SetPC(result &^ 1)
			} else {
				c.regs.SetPC(result &^ 3)
			}
		} else {
			c.regs.SetPC(result &^ 3)
		}
		c.flushPipeline()
		return
	}
	c.regs.SetReg(rd, result)
}
