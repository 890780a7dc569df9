package cpu

// setZN updates the Zero and Negative flags from a just-produced result,
// the shared tail of almost every load/transfer/ALU instruction.
func (c *CPU) setZN(v uint8) {
	c.setFlag(FlagZero, v == 0)
	c.setFlag(FlagNegative, v&0x80 != 0)
}

// compare implements the shared CMP/CPX/CPY semantics: subtract without
// storing, Carry set when reg >= value.
func (c *CPU) compare(reg, value uint8) {
	c.setFlag(FlagCarry, reg >= value)
	c.setZN(reg - value)
}

// adc is the shared ADC/SBC core; SBC calls it with the operand's one's
// complement, which makes the same carry/overflow formula correct for both.
func (c *CPU) adc(value uint8) {
	carryIn := uint16(0)
	if c.getFlag(FlagCarry) {
		carryIn = 1
	}
	sum := uint16(c.A) + uint16(value) + carryIn
	result := uint8(sum)
	c.setFlag(FlagCarry, sum > 0xFF)
	c.setFlag(FlagOverflow, (c.A^result)&(value^result)&0x80 != 0)
	c.A = result
	c.setZN(c.A)
}

// branch is the shared conditional-branch core: +1 cycle when taken, a
// further +1 when the branch lands on a different page.
func (c *CPU) branch(taken bool, target uint16) int {
	if !taken {
		return 0
	}
	extra := 1
	if c.PC&0xFF00 != target&0xFF00 {
		extra++
	}
	c.PC = target
	return extra
}

// --- Loads / stores ---

func (c *CPU) execLDA(operand uint16, mode AddressingMode) int {
	c.A = c.loadOperand(operand, mode)
	c.setZN(c.A)
	return 0
}

func (c *CPU) execLDX(operand uint16, mode AddressingMode) int {
	c.X = c.loadOperand(operand, mode)
	c.setZN(c.X)
	return 0
}

func (c *CPU) execLDY(operand uint16, mode AddressingMode) int {
	c.Y = c.loadOperand(operand, mode)
	c.setZN(c.Y)
	return 0
}

func (c *CPU) execSTA(operand uint16, mode AddressingMode) int {
	c.write(operand, c.A)
	return 0
}

func (c *CPU) execSTX(operand uint16, mode AddressingMode) int {
	c.write(operand, c.X)
	return 0
}

func (c *CPU) execSTY(operand uint16, mode AddressingMode) int {
	c.write(operand, c.Y)
	return 0
}

// --- Transfers ---

func (c *CPU) execTAX(operand uint16, mode AddressingMode) int { c.X = c.A; c.setZN(c.X); return 0 }
func (c *CPU) execTXA(operand uint16, mode AddressingMode) int { c.A = c.X; c.setZN(c.A); return 0 }
func (c *CPU) execTAY(operand uint16, mode AddressingMode) int { c.Y = c.A; c.setZN(c.Y); return 0 }
func (c *CPU) execTYA(operand uint16, mode AddressingMode) int { c.A = c.Y; c.setZN(c.A); return 0 }
func (c *CPU) execTSX(operand uint16, mode AddressingMode) int { c.X = c.S; c.setZN(c.X); return 0 }
func (c *CPU) execTXS(operand uint16, mode AddressingMode) int { c.S = c.X; return 0 }

// --- Stack ---

func (c *CPU) execPHA(operand uint16, mode AddressingMode) int { c.push(c.A); return 0 }

func (c *CPU) execPHP(operand uint16, mode AddressingMode) int {
	c.push(c.P | FlagBreak | FlagUnused)
	return 0
}

func (c *CPU) execPLA(operand uint16, mode AddressingMode) int {
	c.A = c.pop()
	c.setZN(c.A)
	return 0
}

func (c *CPU) execPLP(operand uint16, mode AddressingMode) int {
	c.P = (c.pop() &^ FlagBreak) | FlagUnused
	return 0
}

// --- ALU ---

func (c *CPU) execADC(operand uint16, mode AddressingMode) int {
	c.adc(c.loadOperand(operand, mode))
	return 0
}

func (c *CPU) execSBC(operand uint16, mode AddressingMode) int {
	c.adc(^c.loadOperand(operand, mode))
	return 0
}

func (c *CPU) execAND(operand uint16, mode AddressingMode) int {
	c.A &= c.loadOperand(operand, mode)
	c.setZN(c.A)
	return 0
}

func (c *CPU) execORA(operand uint16, mode AddressingMode) int {
	c.A |= c.loadOperand(operand, mode)
	c.setZN(c.A)
	return 0
}

func (c *CPU) execEOR(operand uint16, mode AddressingMode) int {
	c.A ^= c.loadOperand(operand, mode)
	c.setZN(c.A)
	return 0
}

func (c *CPU) execCMP(operand uint16, mode AddressingMode) int {
	c.compare(c.A, c.loadOperand(operand, mode))
	return 0
}

func (c *CPU) execCPX(operand uint16, mode AddressingMode) int {
	c.compare(c.X, c.loadOperand(operand, mode))
	return 0
}

func (c *CPU) execCPY(operand uint16, mode AddressingMode) int {
	c.compare(c.Y, c.loadOperand(operand, mode))
	return 0
}

func (c *CPU) execBIT(operand uint16, mode AddressingMode) int {
	v := c.loadOperand(operand, mode)
	c.setFlag(FlagZero, c.A&v == 0)
	c.setFlag(FlagOverflow, v&0x40 != 0)
	c.setFlag(FlagNegative, v&0x80 != 0)
	return 0
}

// --- Increments / decrements ---

func (c *CPU) execINC(operand uint16, mode AddressingMode) int {
	v := c.loadOperand(operand, mode) + 1
	c.storeResult(operand, mode, v)
	c.setZN(v)
	return 0
}

func (c *CPU) execDEC(operand uint16, mode AddressingMode) int {
	v := c.loadOperand(operand, mode) - 1
	c.storeResult(operand, mode, v)
	c.setZN(v)
	return 0
}

func (c *CPU) execINX(operand uint16, mode AddressingMode) int { c.X++; c.setZN(c.X); return 0 }
func (c *CPU) execINY(operand uint16, mode AddressingMode) int { c.Y++; c.setZN(c.Y); return 0 }
func (c *CPU) execDEX(operand uint16, mode AddressingMode) int { c.X--; c.setZN(c.X); return 0 }
func (c *CPU) execDEY(operand uint16, mode AddressingMode) int { c.Y--; c.setZN(c.Y); return 0 }

// --- Shifts / rotates ---

func (c *CPU) execASL(operand uint16, mode AddressingMode) int {
	v := c.loadOperand(operand, mode)
	c.setFlag(FlagCarry, v&0x80 != 0)
	v <<= 1
	c.storeResult(operand, mode, v)
	c.setZN(v)
	return 0
}

func (c *CPU) execLSR(operand uint16, mode AddressingMode) int {
	v := c.loadOperand(operand, mode)
	c.setFlag(FlagCarry, v&0x01 != 0)
	v >>= 1
	c.storeResult(operand, mode, v)
	c.setZN(v)
	return 0
}

func (c *CPU) execROL(operand uint16, mode AddressingMode) int {
	v := c.loadOperand(operand, mode)
	carryIn := uint8(0)
	if c.getFlag(FlagCarry) {
		carryIn = 1
	}
	c.setFlag(FlagCarry, v&0x80 != 0)
	v = (v << 1) | carryIn
	c.storeResult(operand, mode, v)
	c.setZN(v)
	return 0
}

func (c *CPU) execROR(operand uint16, mode AddressingMode) int {
	v := c.loadOperand(operand, mode)
	carryIn := uint8(0)
	if c.getFlag(FlagCarry) {
		carryIn = 0x80
	}
	c.setFlag(FlagCarry, v&0x01 != 0)
	v = (v >> 1) | carryIn
	c.storeResult(operand, mode, v)
	c.setZN(v)
	return 0
}

// --- Jumps / calls / returns ---

func (c *CPU) execJMP(operand uint16, mode AddressingMode) int { c.PC = operand; return 0 }

func (c *CPU) execJSR(operand uint16, mode AddressingMode) int {
	c.push16(c.PC - 1)
	c.PC = operand
	return 0
}

func (c *CPU) execRTS(operand uint16, mode AddressingMode) int {
	c.PC = c.pop16() + 1
	return 0
}

func (c *CPU) execRTI(operand uint16, mode AddressingMode) int {
	c.P = (c.pop() &^ FlagBreak) | FlagUnused
	c.PC = c.pop16()
	return 0
}

func (c *CPU) execBRK(operand uint16, mode AddressingMode) int {
	c.PC++ // BRK's second byte is a padding signature byte, also skipped
	c.push16(c.PC)
	c.push(c.P | FlagBreak | FlagUnused)
	c.setFlag(FlagInterrupt, true)
	c.PC = c.read16(0xFFFE)
	return 0
}

// --- Branches ---

func (c *CPU) execBPL(operand uint16, mode AddressingMode) int {
	return c.branch(!c.getFlag(FlagNegative), operand)
}
func (c *CPU) execBMI(operand uint16, mode AddressingMode) int {
	return c.branch(c.getFlag(FlagNegative), operand)
}
func (c *CPU) execBVC(operand uint16, mode AddressingMode) int {
	return c.branch(!c.getFlag(FlagOverflow), operand)
}
func (c *CPU) execBVS(operand uint16, mode AddressingMode) int {
	return c.branch(c.getFlag(FlagOverflow), operand)
}
func (c *CPU) execBCC(operand uint16, mode AddressingMode) int {
	return c.branch(!c.getFlag(FlagCarry), operand)
}
func (c *CPU) execBCS(operand uint16, mode AddressingMode) int {
	return c.branch(c.getFlag(FlagCarry), operand)
}
func (c *CPU) execBNE(operand uint16, mode AddressingMode) int {
	return c.branch(!c.getFlag(FlagZero), operand)
}
func (c *CPU) execBEQ(operand uint16, mode AddressingMode) int {
	return c.branch(c.getFlag(FlagZero), operand)
}

// --- Flags ---

func (c *CPU) execCLC(operand uint16, mode AddressingMode) int { c.setFlag(FlagCarry, false); return 0 }
func (c *CPU) execSEC(operand uint16, mode AddressingMode) int { c.setFlag(FlagCarry, true); return 0 }
func (c *CPU) execCLI(operand uint16, mode AddressingMode) int {
	c.setFlag(FlagInterrupt, false)
	return 0
}
func (c *CPU) execSEI(operand uint16, mode AddressingMode) int {
	c.setFlag(FlagInterrupt, true)
	return 0
}
func (c *CPU) execCLV(operand uint16, mode AddressingMode) int {
	c.setFlag(FlagOverflow, false)
	return 0
}
func (c *CPU) execCLD(operand uint16, mode AddressingMode) int { c.setFlag(FlagDecimal, false); return 0 }
func (c *CPU) execSED(operand uint16, mode AddressingMode) int { c.setFlag(FlagDecimal, true); return 0 }

func (c *CPU) execNOP(operand uint16, mode AddressingMode) int {
	if mode != AddrImplied && mode != AddrAccumulator {
		c.loadOperand(operand, mode) // multi-byte NOPs still issue the bus read
	}
	return 0
}

// --- Stable illegal opcodes ---
// These combine two legal operations into one bus cycle, as the 6502's
// decode PLA happens to wire them; they are well documented and consistent
// across every NMOS 6502, unlike the unstable family the opcode table
// marks Unstable and halts on.

func (c *CPU) execLAX(operand uint16, mode AddressingMode) int {
	v := c.loadOperand(operand, mode)
	c.A, c.X = v, v
	c.setZN(v)
	return 0
}

func (c *CPU) execSAX(operand uint16, mode AddressingMode) int {
	c.write(operand, c.A&c.X)
	return 0
}

func (c *CPU) execDCP(operand uint16, mode AddressingMode) int {
	v := c.loadOperand(operand, mode) - 1
	c.storeResult(operand, mode, v)
	c.compare(c.A, v)
	return 0
}

func (c *CPU) execISC(operand uint16, mode AddressingMode) int {
	v := c.loadOperand(operand, mode) + 1
	c.storeResult(operand, mode, v)
	c.adc(^v)
	return 0
}

func (c *CPU) execSLO(operand uint16, mode AddressingMode) int {
	v := c.loadOperand(operand, mode)
	c.setFlag(FlagCarry, v&0x80 != 0)
	v <<= 1
	c.storeResult(operand, mode, v)
	c.A |= v
	c.setZN(c.A)
	return 0
}

func (c *CPU) execRLA(operand uint16, mode AddressingMode) int {
	v := c.loadOperand(operand, mode)
	carryIn := uint8(0)
	if c.getFlag(FlagCarry) {
		carryIn = 1
	}
	c.setFlag(FlagCarry, v&0x80 != 0)
	v = (v << 1) | carryIn
	c.storeResult(operand, mode, v)
	c.A &= v
	c.setZN(c.A)
	return 0
}

func (c *CPU) execSRE(operand uint16, mode AddressingMode) int {
	v := c.loadOperand(operand, mode)
	c.setFlag(FlagCarry, v&0x01 != 0)
	v >>= 1
	c.storeResult(operand, mode, v)
	c.A ^= v
	c.setZN(c.A)
	return 0
}

func (c *CPU) execRRA(operand uint16, mode AddressingMode) int {
	v := c.loadOperand(operand, mode)
	carryIn := uint8(0)
	if c.getFlag(FlagCarry) {
		carryIn = 0x80
	}
	c.setFlag(FlagCarry, v&0x01 != 0)
	v = (v >> 1) | carryIn
	c.storeResult(operand, mode, v)
	c.adc(v)
	return 0
}

func (c *CPU) execANC(operand uint16, mode AddressingMode) int {
	c.A &= c.loadOperand(operand, mode)
	c.setZN(c.A)
	c.setFlag(FlagCarry, c.A&0x80 != 0)
	return 0
}

func (c *CPU) execALR(operand uint16, mode AddressingMode) int {
	c.A &= c.loadOperand(operand, mode)
	c.setFlag(FlagCarry, c.A&0x01 != 0)
	c.A >>= 1
	c.setZN(c.A)
	return 0
}

func (c *CPU) execARR(operand uint16, mode AddressingMode) int {
	c.A &= c.loadOperand(operand, mode)
	carryIn := uint8(0)
	if c.getFlag(FlagCarry) {
		carryIn = 0x80
	}
	c.A = (c.A >> 1) | carryIn
	c.setZN(c.A)
	bit6 := c.A&0x40 != 0
	bit5 := c.A&0x20 != 0
	c.setFlag(FlagCarry, bit6)
	c.setFlag(FlagOverflow, bit6 != bit5)
	return 0
}

func (c *CPU) execSBX(operand uint16, mode AddressingMode) int {
	v := c.loadOperand(operand, mode)
	t := c.A & c.X
	c.setFlag(FlagCarry, t >= v)
	c.X = t - v
	c.setZN(c.X)
	return 0
}
