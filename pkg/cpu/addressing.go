package cpu

// AddressingMode identifies how an opcode's operand bytes are turned into
// an effective address.
type AddressingMode int

const (
	AddrImplied AddressingMode = iota
	AddrAccumulator
	AddrImmediate
	AddrZeroPage
	AddrZeroPageX
	AddrZeroPageY
	AddrRelative
	AddrAbsolute
	AddrAbsoluteX
	AddrAbsoluteY
	AddrIndirect
	AddrIndexedIndirect // (zp,X)
	AddrIndirectIndexed // (zp),Y
)

// resolveOperand computes the effective address for mode, advancing PC past
// the operand bytes and issuing any dummy reads real hardware performs along
// the way. It reports whether indexing crossed a page boundary, which the
// caller uses to charge the one-cycle penalty on read instructions.
//
// For AddrAccumulator and AddrImplied there is no memory operand; callers
// branch on mode rather than dereferencing the returned address.
func (c *CPU) resolveOperand(mode AddressingMode) (uint16, bool) {
	switch mode {
	case AddrImplied, AddrAccumulator:
		return 0, false

	case AddrImmediate:
		addr := c.PC
		c.PC++
		return addr, false

	case AddrZeroPage:
		addr := uint16(c.read(c.PC))
		c.PC++
		return addr, false

	case AddrZeroPageX:
		addr := uint16(c.read(c.PC) + c.X)
		c.PC++
		return addr & 0xFF, false

	case AddrZeroPageY:
		addr := uint16(c.read(c.PC) + c.Y)
		c.PC++
		return addr & 0xFF, false

	case AddrRelative:
		offset := int8(c.read(c.PC))
		c.PC++
		addr := uint16(int32(c.PC) + int32(offset))
		return addr, (c.PC & 0xFF00) != (addr & 0xFF00)

	case AddrAbsolute:
		addr := c.read16(c.PC)
		c.PC += 2
		return addr, false

	case AddrAbsoluteX:
		base := c.read16(c.PC)
		c.PC += 2
		addr := base + uint16(c.X)
		crossed := (base & 0xFF00) != (addr & 0xFF00)
		if crossed {
			dummy := (base & 0xFF00) | (addr & 0x00FF)
			c.read(dummy)
		}
		return addr, crossed

	case AddrAbsoluteY:
		base := c.read16(c.PC)
		c.PC += 2
		addr := base + uint16(c.Y)
		crossed := (base & 0xFF00) != (addr & 0xFF00)
		if crossed {
			dummy := (base & 0xFF00) | (addr & 0x00FF)
			c.read(dummy)
		}
		return addr, crossed

	case AddrIndirect:
		ptr := c.read16(c.PC)
		c.PC += 2
		return c.read16bug(ptr), false

	case AddrIndexedIndirect:
		base := c.read(c.PC)
		c.PC++
		c.read(uint16(base)) // dummy read of the unindexed pointer
		ptr := uint16(base+c.X) & 0xFF
		lo := uint16(c.read(ptr))
		hi := uint16(c.read((ptr + 1) & 0xFF))
		return hi<<8 | lo, false

	case AddrIndirectIndexed:
		base := c.read(c.PC)
		c.PC++
		lo := uint16(c.read(uint16(base)))
		hi := uint16(c.read((uint16(base) + 1) & 0xFF))
		baseAddr := hi<<8 | lo
		addr := baseAddr + uint16(c.Y)
		crossed := (baseAddr & 0xFF00) != (addr & 0xFF00)
		if crossed {
			dummy := (baseAddr & 0xFF00) | (addr & 0x00FF)
			c.read(dummy)
		}
		return addr, crossed
	}
	return 0, false
}

// loadOperand reads the operand's value for modes where the instruction
// reads through memory/accumulator rather than treating it as a plain
// address (used by the read-only ALU instructions).
func (c *CPU) loadOperand(operand uint16, mode AddressingMode) uint8 {
	if mode == AddrAccumulator {
		return c.A
	}
	return c.read(operand)
}

// storeResult writes back a read-modify-write instruction's result, either
// to the accumulator or to the resolved memory address.
func (c *CPU) storeResult(operand uint16, mode AddressingMode, value uint8) {
	if mode == AddrAccumulator {
		c.A = value
		return
	}
	c.write(operand, value)
}
