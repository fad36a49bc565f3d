package cpu

import "testing"

// encDP builds an ARM data-processing opcode: cond=AL, the given opField,
// S-bit, Rn, Rd, and an immediate operand (rotate=0).
func encDP(opField uint32, setFlags bool, rn, rd uint8, imm8 uint8) uint32 {
	s := uint32(0)
	if setFlags {
		s = 1
	}
	return 0xE<<28 | 1<<25 | opField<<21 | s<<20 | uint32(rn)<<16 | uint32(rd)<<12 | uint32(imm8)
}

func TestMOVSSetsFlags(t *testing.T) {
	c, mem, _ := newTestCPU()
	step(c, mem, encDP(0xD, true, 0, 0, 0)) // MOVS r0, #0

	if c.regs.GetReg(0) != 0 {
		t.Fatalf("r0 = %d, want 0", c.regs.GetReg(0))
	}
	if !c.regs.GetFlagZ() {
		t.Error("Z flag should be set after MOVS r0, #0")
	}
	if c.regs.GetFlagN() {
		t.Error("N flag should be clear")
	}
}

func TestADDSOverflow(t *testing.T) {
	c, mem, _ := newTestCPU()
	c.regs.SetReg(1, 0x7FFFFFFF)
	// ADDS r0, r1, r1 (register form, no shift)
	opcode := uint32(0xE<<28) | 0<<25 | 0x4<<21 | 1<<20 | 1<<16 | 0<<12 | 1
	step(c, mem, opcode)

	if c.regs.GetReg(0) != 0xFFFFFFFE {
		t.Errorf("r0 = 0x%X, want 0xFFFFFFFE", c.regs.GetReg(0))
	}
	if !c.regs.GetFlagV() {
		t.Error("V flag should be set: signed overflow adding two large positives")
	}
	if !c.regs.GetFlagN() {
		t.Error("N flag should be set: result's top bit is 1")
	}
	if c.regs.GetFlagC() {
		t.Error("C flag should be clear: no unsigned carry out of bit 31")
	}
}

func TestSUBSBorrow(t *testing.T) {
	c, mem, _ := newTestCPU()
	c.regs.SetReg(0, 5)
	// SUBS r0, r0, #10
	step(c, mem, encDP(0x2, true, 0, 0, 10))

	if c.regs.GetReg(0) != 0xFFFFFFFB { // 5 - 10 = -5
		t.Errorf("r0 = 0x%X, want 0xFFFFFFFB", c.regs.GetReg(0))
	}
	if c.regs.GetFlagC() {
		t.Error("C flag should be clear: SUB borrowed (5 < 10)")
	}
	if !c.regs.GetFlagN() {
		t.Error("N flag should be set")
	}
}

func TestCMPDiscardsResult(t *testing.T) {
	c, mem, _ := newTestCPU()
	c.regs.SetReg(0, 5)
	// CMP r0, #5 -- the S bit is architecturally always 1 for CMP; S=0 in
	// this opcode slot means MRS/MSR/BX instead (see decode.go classify).
	step(c, mem, encDP(0xA, true, 0, 0, 5))

	if c.regs.GetReg(0) != 5 {
		t.Errorf("r0 = %d, want unchanged 5 (CMP never writes back)", c.regs.GetReg(0))
	}
	if !c.regs.GetFlagZ() {
		t.Error("Z flag should be set: 5 - 5 == 0")
	}
}

func TestBICClearsBits(t *testing.T) {
	c, mem, _ := newTestCPU()
	c.regs.SetReg(0, 0xFF)
	// BIC r0, r0, #0x0F
	step(c, mem, encDP(0xE, false, 0, 0, 0x0F))

	if c.regs.GetReg(0) != 0xF0 {
		t.Errorf("r0 = 0x%X, want 0xF0", c.regs.GetReg(0))
	}
}

// encDPRegShiftImm builds an ARM data-processing opcode in register-operand
// form with an immediate shift: cond=AL, opField, S-bit, Rn, Rd, a 5-bit
// shift amount, a 2-bit shift type, and Rm.
func encDPRegShiftImm(opField uint32, setFlags bool, rn, rd uint8, imm5 uint8, shiftType uint8, rm uint8) uint32 {
	s := uint32(0)
	if setFlags {
		s = 1
	}
	return 0xE<<28 | opField<<21 | s<<20 | uint32(rn)<<16 | uint32(rd)<<12 |
		uint32(imm5)<<7 | uint32(shiftType)<<5 | uint32(rm)
}

func TestMOVRegisterOddShiftAmountIsNotReservedAsIllegal(t *testing.T) {
	c, mem, brd := newTestCPU()
	c.regs.SetReg(1, 0x1)

	// MOV r0, r1, LSL #1 -- b74 = 0b1000 (row 8), which must fall through
	// to ordinary data processing, not Undefined.
	step(c, mem, encDPRegShiftImm(0xD, false, 0, 0, 1, 0b00, 1))

	if c.regs.GetReg(0) != 0x2 {
		t.Errorf("r0 = 0x%X, want 0x2 (1 << 1)", c.regs.GetReg(0))
	}
	if len(brd.stubHits) != 0 {
		t.Errorf("instruction should have executed normally, not hit the illegal-instruction stub: %v", brd.stubHits)
	}
}

func TestMOVImmediateHighImm8DecodesAsDataProcessing(t *testing.T) {
	c, mem, brd := newTestCPU()

	// MOV r0, #0xFF -- imm8's bit7 and bit4 are both 1, which must not be
	// mistaken for the register-shift row-9/11/13/15 override space.
	step(c, mem, encDP(0xD, false, 0, 0, 0xFF))

	if c.regs.GetReg(0) != 0xFF {
		t.Errorf("r0 = 0x%X, want 0xFF", c.regs.GetReg(0))
	}
	if len(brd.stubHits) != 0 {
		t.Errorf("instruction should have executed normally, not hit the illegal-instruction stub: %v", brd.stubHits)
	}
}

func TestMOVPCReadsAddressPlus8(t *testing.T) {
	c, mem, _ := newTestCPU()
	pc := c.regs.GetPC()
	// MOV r0, r15 (register form, LSL #0)
	opcode := uint32(0xE<<28) | 0<<25 | 0xD<<21 | 0<<20 | 0<<16 | 0<<12 | 15
	step(c, mem, opcode)

	want := pc + 8
	if c.regs.GetReg(0) != want {
		t.Errorf("r0 = 0x%X, want 0x%X (PC read as instrAddr+8)", c.regs.GetReg(0), want)
	}
}
