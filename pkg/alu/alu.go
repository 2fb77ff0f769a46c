// Package alu implements the CDP1802's arithmetic and logic primitives.
// Every function here is pure: bytes in, byte-plus-DF out. None of them
// touch machine state directly, keeping flag-table logic separate from
// the CPU's register file.
package alu

// Subtract computes minuend - subtrahend via two's-complement addition:
// minuend + ^subtrahend + 1. DF=1 means no borrow, DF=0 means borrow.
func Subtract(minuend, subtrahend uint8) (result, df uint8) {
	sum := uint16(minuend) + uint16(^subtrahend&0xFF) + 1
	return uint8(sum), uint8(sum >> 8 & 1)
}

// SubtractWithBorrow computes minuend - subtrahend - (1 - dfIn), expressed
// as minuend + ^subtrahend + dfIn per the 1802 manual's DF-as-carry-in convention.
func SubtractWithBorrow(minuend, subtrahend, dfIn uint8) (result, df uint8) {
	sum := uint16(minuend) + uint16(^subtrahend&0xFF) + uint16(dfIn&1)
	return uint8(sum), uint8(sum >> 8 & 1)
}

// Add computes a + b with an optional incoming carry, returning the 9-bit
// sum's low byte and its carry-out.
func Add(a, b, carryIn uint8) (result, df uint8) {
	sum := uint16(a) + uint16(b) + uint16(carryIn&1)
	return uint8(sum), uint8(sum >> 8 & 1)
}

// ShiftRightCarry shifts d right by one, filling bit 7 from dfIn and
// returning the shifted-out bit 0 as the new DF (SHRC, opcode 0x76).
func ShiftRightCarry(d, dfIn uint8) (result, dfOut uint8) {
	return (dfIn&1)<<7 | d>>1, d & 1
}

// ShiftLeftCarry shifts d left by one, filling bit 0 from dfIn and
// returning the shifted-out bit 7 as the new DF (SHLC, opcode 0x7E).
func ShiftLeftCarry(d, dfIn uint8) (result, dfOut uint8) {
	return d<<1 | dfIn&1, d >> 7 & 1
}

// ShiftRight shifts d right by one. Per the 1802 reference manual, DF is
// set to the bit shifted out of bit 0 (SHR, opcode 0xF6).
func ShiftRight(d uint8) (result, dfOut uint8) {
	return d >> 1, d & 1
}

// ShiftLeft shifts d left by one. DF is set to the bit shifted out of
// bit 7 (SHL, opcode 0xFE), again per the manual rather than the source.
func ShiftLeft(d uint8) (result, dfOut uint8) {
	return d << 1, d >> 7 & 1
}

// Or, And, Xor are the bitwise byte operations used by F1/F2/F3 and their
// immediate forms. None of them touch DF.
func Or(a, b uint8) uint8  { return a | b }
func And(a, b uint8) uint8 { return a & b }
func Xor(a, b uint8) uint8 { return a ^ b }
