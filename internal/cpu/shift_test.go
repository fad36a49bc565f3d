package cpu

import "testing"

func TestShiftLSLImmZeroPreservesCarry(t *testing.T) {
	res := shiftLSLImm(0x12345678, 0, true)
	if res.operand != 0x12345678 {
		t.Errorf("operand = 0x%X, want unchanged 0x12345678", res.operand)
	}
	if !res.carryOut {
		t.Error("LSL #0 must preserve the incoming carry, not compute a new one")
	}
}

func TestShiftLSLImmCarryOut(t *testing.T) {
	res := shiftLSLImm(0x80000000, 1, false)
	if res.operand != 0 {
		t.Errorf("operand = 0x%X, want 0", res.operand)
	}
	if !res.carryOut {
		t.Error("carryOut should be the bit shifted out of bit 31")
	}
}

func TestShiftLSRImmZeroMeansShiftBy32(t *testing.T) {
	res := shiftLSRImm(0x80000000, 0, true)
	if res.operand != 0 {
		t.Errorf("operand = 0x%X, want 0 (LSR #0 encodes LSR #32)", res.operand)
	}
	if !res.carryOut {
		t.Error("carryOut should be bit 31 of the operand when shift amount is 32")
	}
}

func TestShiftASRImmZeroMeansShiftBy32(t *testing.T) {
	resNeg := shiftASRImm(0x80000000, 0, false)
	if resNeg.operand != 0xFFFFFFFF {
		t.Errorf("negative operand = 0x%X, want 0xFFFFFFFF (sign-filled)", resNeg.operand)
	}
	if !resNeg.carryOut {
		t.Error("carryOut should be the sign bit when shift amount is 32 and operand is negative")
	}

	resPos := shiftASRImm(0x7FFFFFFF, 0, false)
	if resPos.operand != 0 {
		t.Errorf("positive operand = 0x%X, want 0", resPos.operand)
	}
}

func TestShiftRORImmZeroMeansRRX(t *testing.T) {
	res := shiftRORImm(0x00000001, 0, true) // RRX with carry-in set
	want := uint32(1)>>1 | (1 << 31)         // carry-in (1) shifted into bit31, rm shifted right by 1
	if res.operand != want {
		t.Errorf("operand = 0x%X, want 0x%X", res.operand, want)
	}
	if !res.carryOut {
		t.Error("carryOut should be the bit rotated out of bit 0 (1)")
	}
}

func TestShiftRORImmNormal(t *testing.T) {
	res := shiftRORImm(0x00000001, 4, false)
	want := uint32(0x10000000)
	if res.operand != want {
		t.Errorf("operand = 0x%X, want 0x%X", res.operand, want)
	}
}

func TestRotateImmediateZeroRotate(t *testing.T) {
	res := rotateImmediate(0xFF, 0, true)
	if res.operand != 0xFF {
		t.Errorf("operand = 0x%X, want 0xFF (rotate4=0 means no rotation)", res.operand)
	}
	if !res.carryOut {
		t.Error("carryOut should pass through the incoming carry when rotate4=0")
	}
}

func TestRotateImmediateNonzeroRotate(t *testing.T) {
	res := rotateImmediate(0x01, 1, false) // rotate right by 2
	want := uint32(0x40000000)
	if res.operand != want {
		t.Errorf("operand = 0x%X, want 0x%X", res.operand, want)
	}
	if res.carryOut {
		t.Error("carryOut should be bit 31 of the rotated result (0)")
	}
}

func TestShiftLSLRegShiftBy32AndBeyond(t *testing.T) {
	at32 := shiftLSLReg(0x00000001, 32, false)
	if at32.operand != 0 || !at32.carryOut {
		t.Errorf("shift by 32: got {0x%X, %v}, want {0, true} (carry = bit 0 of rm)", at32.operand, at32.carryOut)
	}

	beyond := shiftLSLReg(0xFFFFFFFF, 33, true)
	if beyond.operand != 0 || beyond.carryOut {
		t.Errorf("shift by 33: got {0x%X, %v}, want {0, false}", beyond.operand, beyond.carryOut)
	}
}

func TestShiftLSLRegShiftByZeroPreservesOperandAndCarry(t *testing.T) {
	res := shiftLSLReg(0xABCDEF01, 0, true)
	if res.operand != 0xABCDEF01 || !res.carryOut {
		t.Errorf("got {0x%X, %v}, want {0xABCDEF01, true}", res.operand, res.carryOut)
	}
}
