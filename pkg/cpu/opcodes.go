package cpu

// OpcodeInfo describes one of the 256 opcode byte values: its addressing
// mode, base cycle cost, whether indexed addressing can add a page-cross
// cycle, whether it belongs to the unstable-illegal family that halts
// execution, and the function that carries it out.
type OpcodeInfo struct {
	Mnemonic         string
	Mode             AddressingMode
	Cycles           int
	PageCrossPenalty bool
	Unstable         bool
	Exec             func(*CPU, uint16, AddressingMode) int
}

// opcodeTable is the full 6502/2A03 decode table: every legal opcode, every
// stable illegal opcode (LAX/SAX/DCP/ISC/SLO/RLA/SRE/RRA/ANC/ALR/ARR/SBX and
// the illegal NOP family), and every unstable-illegal opcode (the JAM family
// plus ANE/LXA/SHA/SHX/SHY/TAS/LAS) marked Unstable so the CPU halts on them
// rather than guess at their undefined, chip-revision-dependent behavior.
var opcodeTable = [256]OpcodeInfo{
	0x00: {"BRK", AddrImplied, 7, false, false, (*CPU).execBRK},
	0x01: {"ORA", AddrIndexedIndirect, 6, false, false, (*CPU).execORA},
	0x02: {"JAM", AddrImplied, 2, false, true, nil},
	0x03: {"SLO", AddrIndexedIndirect, 8, false, false, (*CPU).execSLO},
	0x04: {"NOP", AddrZeroPage, 3, false, false, (*CPU).execNOP},
	0x05: {"ORA", AddrZeroPage, 3, false, false, (*CPU).execORA},
	0x06: {"ASL", AddrZeroPage, 5, false, false, (*CPU).execASL},
	0x07: {"SLO", AddrZeroPage, 5, false, false, (*CPU).execSLO},
	0x08: {"PHP", AddrImplied, 3, false, false, (*CPU).execPHP},
	0x09: {"ORA", AddrImmediate, 2, false, false, (*CPU).execORA},
	0x0A: {"ASL", AddrAccumulator, 2, false, false, (*CPU).execASL},
	0x0B: {"ANC", AddrImmediate, 2, false, false, (*CPU).execANC},
	0x0C: {"NOP", AddrAbsolute, 4, false, false, (*CPU).execNOP},
	0x0D: {"ORA", AddrAbsolute, 4, false, false, (*CPU).execORA},
	0x0E: {"ASL", AddrAbsolute, 6, false, false, (*CPU).execASL},
	0x0F: {"SLO", AddrAbsolute, 6, false, false, (*CPU).execSLO},

	0x10: {"BPL", AddrRelative, 2, false, false, (*CPU).execBPL},
	0x11: {"ORA", AddrIndirectIndexed, 5, true, false, (*CPU).execORA},
	0x12: {"JAM", AddrImplied, 2, false, true, nil},
	0x13: {"SLO", AddrIndirectIndexed, 8, false, false, (*CPU).execSLO},
	0x14: {"NOP", AddrZeroPageX, 4, false, false, (*CPU).execNOP},
	0x15: {"ORA", AddrZeroPageX, 4, false, false, (*CPU).execORA},
	0x16: {"ASL", AddrZeroPageX, 6, false, false, (*CPU).execASL},
	0x17: {"SLO", AddrZeroPageX, 6, false, false, (*CPU).execSLO},
	0x18: {"CLC", AddrImplied, 2, false, false, (*CPU).execCLC},
	0x19: {"ORA", AddrAbsoluteY, 4, true, false, (*CPU).execORA},
	0x1A: {"NOP", AddrImplied, 2, false, false, (*CPU).execNOP},
	0x1B: {"SLO", AddrAbsoluteY, 7, false, false, (*CPU).execSLO},
	0x1C: {"NOP", AddrAbsoluteX, 4, true, false, (*CPU).execNOP},
	0x1D: {"ORA", AddrAbsoluteX, 4, true, false, (*CPU).execORA},
	0x1E: {"ASL", AddrAbsoluteX, 7, false, false, (*CPU).execASL},
	0x1F: {"SLO", AddrAbsoluteX, 7, false, false, (*CPU).execSLO},

	0x20: {"JSR", AddrAbsolute, 6, false, false, (*CPU).execJSR},
	0x21: {"AND", AddrIndexedIndirect, 6, false, false, (*CPU).execAND},
	0x22: {"JAM", AddrImplied, 2, false, true, nil},
	0x23: {"RLA", AddrIndexedIndirect, 8, false, false, (*CPU).execRLA},
	0x24: {"BIT", AddrZeroPage, 3, false, false, (*CPU).execBIT},
	0x25: {"AND", AddrZeroPage, 3, false, false, (*CPU).execAND},
	0x26: {"ROL", AddrZeroPage, 5, false, false, (*CPU).execROL},
	0x27: {"RLA", AddrZeroPage, 5, false, false, (*CPU).execRLA},
	0x28: {"PLP", AddrImplied, 4, false, false, (*CPU).execPLP},
	0x29: {"AND", AddrImmediate, 2, false, false, (*CPU).execAND},
	0x2A: {"ROL", AddrAccumulator, 2, false, false, (*CPU).execROL},
	0x2B: {"ANC", AddrImmediate, 2, false, false, (*CPU).execANC},
	0x2C: {"BIT", AddrAbsolute, 4, false, false, (*CPU).execBIT},
	0x2D: {"AND", AddrAbsolute, 4, false, false, (*CPU).execAND},
	0x2E: {"ROL", AddrAbsolute, 6, false, false, (*CPU).execROL},
	0x2F: {"RLA", AddrAbsolute, 6, false, false, (*CPU).execRLA},

	0x30: {"BMI", AddrRelative, 2, false, false, (*CPU).execBMI},
	0x31: {"AND", AddrIndirectIndexed, 5, true, false, (*CPU).execAND},
	0x32: {"JAM", AddrImplied, 2, false, true, nil},
	0x33: {"RLA", AddrIndirectIndexed, 8, false, false, (*CPU).execRLA},
	0x34: {"NOP", AddrZeroPageX, 4, false, false, (*CPU).execNOP},
	0x35: {"AND", AddrZeroPageX, 4, false, false, (*CPU).execAND},
	0x36: {"ROL", AddrZeroPageX, 6, false, false, (*CPU).execROL},
	0x37: {"RLA", AddrZeroPageX, 6, false, false, (*CPU).execRLA},
	0x38: {"SEC", AddrImplied, 2, false, false, (*CPU).execSEC},
	0x39: {"AND", AddrAbsoluteY, 4, true, false, (*CPU).execAND},
	0x3A: {"NOP", AddrImplied, 2, false, false, (*CPU).execNOP},
	0x3B: {"RLA", AddrAbsoluteY, 7, false, false, (*CPU).execRLA},
	0x3C: {"NOP", AddrAbsoluteX, 4, true, false, (*CPU).execNOP},
	0x3D: {"AND", AddrAbsoluteX, 4, true, false, (*CPU).execAND},
	0x3E: {"ROL", AddrAbsoluteX, 7, false, false, (*CPU).execROL},
	0x3F: {"RLA", AddrAbsoluteX, 7, false, false, (*CPU).execRLA},

	0x40: {"RTI", AddrImplied, 6, false, false, (*CPU).execRTI},
	0x41: {"EOR", AddrIndexedIndirect, 6, false, false, (*CPU).execEOR},
	0x42: {"JAM", AddrImplied, 2, false, true, nil},
	0x43: {"SRE", AddrIndexedIndirect, 8, false, false, (*CPU).execSRE},
	0x44: {"NOP", AddrZeroPage, 3, false, false, (*CPU).execNOP},
	0x45: {"EOR", AddrZeroPage, 3, false, false, (*CPU).execEOR},
	0x46: {"LSR", AddrZeroPage, 5, false, false, (*CPU).execLSR},
	0x47: {"SRE", AddrZeroPage, 5, false, false, (*CPU).execSRE},
	0x48: {"PHA", AddrImplied, 3, false, false, (*CPU).execPHA},
	0x49: {"EOR", AddrImmediate, 2, false, false, (*CPU).execEOR},
	0x4A: {"LSR", AddrAccumulator, 2, false, false, (*CPU).execLSR},
	0x4B: {"ALR", AddrImmediate, 2, false, false, (*CPU).execALR},
	0x4C: {"JMP", AddrAbsolute, 3, false, false, (*CPU).execJMP},
	0x4D: {"EOR", AddrAbsolute, 4, false, false, (*CPU).execEOR},
	0x4E: {"LSR", AddrAbsolute, 6, false, false, (*CPU).execLSR},
	0x4F: {"SRE", AddrAbsolute, 6, false, false, (*CPU).execSRE},

	0x50: {"BVC", AddrRelative, 2, false, false, (*CPU).execBVC},
	0x51: {"EOR", AddrIndirectIndexed, 5, true, false, (*CPU).execEOR},
	0x52: {"JAM", AddrImplied, 2, false, true, nil},
	0x53: {"SRE", AddrIndirectIndexed, 8, false, false, (*CPU).execSRE},
	0x54: {"NOP", AddrZeroPageX, 4, false, false, (*CPU).execNOP},
	0x55: {"EOR", AddrZeroPageX, 4, false, false, (*CPU).execEOR},
	0x56: {"LSR", AddrZeroPageX, 6, false, false, (*CPU).execLSR},
	0x57: {"SRE", AddrZeroPageX, 6, false, false, (*CPU).execSRE},
	0x58: {"CLI", AddrImplied, 2, false, false, (*CPU).execCLI},
	0x59: {"EOR", AddrAbsoluteY, 4, true, false, (*CPU).execEOR},
	0x5A: {"NOP", AddrImplied, 2, false, false, (*CPU).execNOP},
	0x5B: {"SRE", AddrAbsoluteY, 7, false, false, (*CPU).execSRE},
	0x5C: {"NOP", AddrAbsoluteX, 4, true, false, (*CPU).execNOP},
	0x5D: {"EOR", AddrAbsoluteX, 4, true, false, (*CPU).execEOR},
	0x5E: {"LSR", AddrAbsoluteX, 7, false, false, (*CPU).execLSR},
	0x5F: {"SRE", AddrAbsoluteX, 7, false, false, (*CPU).execSRE},

	0x60: {"RTS", AddrImplied, 6, false, false, (*CPU).execRTS},
	0x61: {"ADC", AddrIndexedIndirect, 6, false, false, (*CPU).execADC},
	0x62: {"JAM", AddrImplied, 2, false, true, nil},
	0x63: {"RRA", AddrIndexedIndirect, 8, false, false, (*CPU).execRRA},
	0x64: {"NOP", AddrZeroPage, 3, false, false, (*CPU).execNOP},
	0x65: {"ADC", AddrZeroPage, 3, false, false, (*CPU).execADC},
	0x66: {"ROR", AddrZeroPage, 5, false, false, (*CPU).execROR},
	0x67: {"RRA", AddrZeroPage, 5, false, false, (*CPU).execRRA},
	0x68: {"PLA", AddrImplied, 4, false, false, (*CPU).execPLA},
	0x69: {"ADC", AddrImmediate, 2, false, false, (*CPU).execADC},
	0x6A: {"ROR", AddrAccumulator, 2, false, false, (*CPU).execROR},
	0x6B: {"ARR", AddrImmediate, 2, false, false, (*CPU).execARR},
	0x6C: {"JMP", AddrIndirect, 5, false, false, (*CPU).execJMP},
	0x6D: {"ADC", AddrAbsolute, 4, false, false, (*CPU).execADC},
	0x6E: {"ROR", AddrAbsolute, 6, false, false, (*CPU).execROR},
	0x6F: {"RRA", AddrAbsolute, 6, false, false, (*CPU).execRRA},

	0x70: {"BVS", AddrRelative, 2, false, false, (*CPU).execBVS},
	0x71: {"ADC", AddrIndirectIndexed, 5, true, false, (*CPU).execADC},
	0x72: {"JAM", AddrImplied, 2, false, true, nil},
	0x73: {"RRA", AddrIndirectIndexed, 8, false, false, (*CPU).execRRA},
	0x74: {"NOP", AddrZeroPageX, 4, false, false, (*CPU).execNOP},
	0x75: {"ADC", AddrZeroPageX, 4, false, false, (*CPU).execADC},
	0x76: {"ROR", AddrZeroPageX, 6, false, false, (*CPU).execROR},
	0x77: {"RRA", AddrZeroPageX, 6, false, false, (*CPU).execRRA},
	0x78: {"SEI", AddrImplied, 2, false, false, (*CPU).execSEI},
	0x79: {"ADC", AddrAbsoluteY, 4, true, false, (*CPU).execADC},
	0x7A: {"NOP", AddrImplied, 2, false, false, (*CPU).execNOP},
	0x7B: {"RRA", AddrAbsoluteY, 7, false, false, (*CPU).execRRA},
	0x7C: {"NOP", AddrAbsoluteX, 4, true, false, (*CPU).execNOP},
	0x7D: {"ADC", AddrAbsoluteX, 4, true, false, (*CPU).execADC},
	0x7E: {"ROR", AddrAbsoluteX, 7, false, false, (*CPU).execROR},
	0x7F: {"RRA", AddrAbsoluteX, 7, false, false, (*CPU).execRRA},

	0x80: {"NOP", AddrImmediate, 2, false, false, (*CPU).execNOP},
	0x81: {"STA", AddrIndexedIndirect, 6, false, false, (*CPU).execSTA},
	0x82: {"NOP", AddrImmediate, 2, false, false, (*CPU).execNOP},
	0x83: {"SAX", AddrIndexedIndirect, 6, false, false, (*CPU).execSAX},
	0x84: {"STY", AddrZeroPage, 3, false, false, (*CPU).execSTY},
	0x85: {"STA", AddrZeroPage, 3, false, false, (*CPU).execSTA},
	0x86: {"STX", AddrZeroPage, 3, false, false, (*CPU).execSTX},
	0x87: {"SAX", AddrZeroPage, 3, false, false, (*CPU).execSAX},
	0x88: {"DEY", AddrImplied, 2, false, false, (*CPU).execDEY},
	0x89: {"NOP", AddrImmediate, 2, false, false, (*CPU).execNOP},
	0x8A: {"TXA", AddrImplied, 2, false, false, (*CPU).execTXA},
	0x8B: {"ANE", AddrImmediate, 2, false, true, nil},
	0x8C: {"STY", AddrAbsolute, 4, false, false, (*CPU).execSTY},
	0x8D: {"STA", AddrAbsolute, 4, false, false, (*CPU).execSTA},
	0x8E: {"STX", AddrAbsolute, 4, false, false, (*CPU).execSTX},
	0x8F: {"SAX", AddrAbsolute, 4, false, false, (*CPU).execSAX},

	0x90: {"BCC", AddrRelative, 2, false, false, (*CPU).execBCC},
	0x91: {"STA", AddrIndirectIndexed, 6, false, false, (*CPU).execSTA},
	0x92: {"JAM", AddrImplied, 2, false, true, nil},
	0x93: {"SHA", AddrIndirectIndexed, 6, false, true, nil},
	0x94: {"STY", AddrZeroPageX, 4, false, false, (*CPU).execSTY},
	0x95: {"STA", AddrZeroPageX, 4, false, false, (*CPU).execSTA},
	0x96: {"STX", AddrZeroPageY, 4, false, false, (*CPU).execSTX},
	0x97: {"SAX", AddrZeroPageY, 4, false, false, (*CPU).execSAX},
	0x98: {"TYA", AddrImplied, 2, false, false, (*CPU).execTYA},
	0x99: {"STA", AddrAbsoluteY, 5, false, false, (*CPU).execSTA},
	0x9A: {"TXS", AddrImplied, 2, false, false, (*CPU).execTXS},
	0x9B: {"TAS", AddrAbsoluteY, 5, false, true, nil},
	0x9C: {"SHY", AddrAbsoluteX, 5, false, true, nil},
	0x9D: {"STA", AddrAbsoluteX, 5, false, false, (*CPU).execSTA},
	0x9E: {"SHX", AddrAbsoluteY, 5, false, true, nil},
	0x9F: {"SHA", AddrAbsoluteY, 5, false, true, nil},

	0xA0: {"LDY", AddrImmediate, 2, false, false, (*CPU).execLDY},
	0xA1: {"LDA", AddrIndexedIndirect, 6, false, false, (*CPU).execLDA},
	0xA2: {"LDX", AddrImmediate, 2, false, false, (*CPU).execLDX},
	0xA3: {"LAX", AddrIndexedIndirect, 6, false, false, (*CPU).execLAX},
	0xA4: {"LDY", AddrZeroPage, 3, false, false, (*CPU).execLDY},
	0xA5: {"LDA", AddrZeroPage, 3, false, false, (*CPU).execLDA},
	0xA6: {"LDX", AddrZeroPage, 3, false, false, (*CPU).execLDX},
	0xA7: {"LAX", AddrZeroPage, 3, false, false, (*CPU).execLAX},
	0xA8: {"TAY", AddrImplied, 2, false, false, (*CPU).execTAY},
	0xA9: {"LDA", AddrImmediate, 2, false, false, (*CPU).execLDA},
	0xAA: {"TAX", AddrImplied, 2, false, false, (*CPU).execTAX},
	0xAB: {"LXA", AddrImmediate, 2, false, true, nil},
	0xAC: {"LDY", AddrAbsolute, 4, false, false, (*CPU).execLDY},
	0xAD: {"LDA", AddrAbsolute, 4, false, false, (*CPU).execLDA},
	0xAE: {"LDX", AddrAbsolute, 4, false, false, (*CPU).execLDX},
	0xAF: {"LAX", AddrAbsolute, 4, false, false, (*CPU).execLAX},

	0xB0: {"BCS", AddrRelative, 2, false, false, (*CPU).execBCS},
	0xB1: {"LDA", AddrIndirectIndexed, 5, true, false, (*CPU).execLDA},
	0xB2: {"JAM", AddrImplied, 2, false, true, nil},
	0xB3: {"LAX", AddrIndirectIndexed, 5, true, false, (*CPU).execLAX},
	0xB4: {"LDY", AddrZeroPageX, 4, false, false, (*CPU).execLDY},
	0xB5: {"LDA", AddrZeroPageX, 4, false, false, (*CPU).execLDA},
	0xB6: {"LDX", AddrZeroPageY, 4, false, false, (*CPU).execLDX},
	0xB7: {"LAX", AddrZeroPageY, 4, false, false, (*CPU).execLAX},
	0xB8: {"CLV", AddrImplied, 2, false, false, (*CPU).execCLV},
	0xB9: {"LDA", AddrAbsoluteY, 4, true, false, (*CPU).execLDA},
	0xBA: {"TSX", AddrImplied, 2, false, false, (*CPU).execTSX},
	0xBB: {"LAS", AddrAbsoluteY, 4, true, true, nil},
	0xBC: {"LDY", AddrAbsoluteX, 4, true, false, (*CPU).execLDY},
	0xBD: {"LDA", AddrAbsoluteX, 4, true, false, (*CPU).execLDA},
	0xBE: {"LDX", AddrAbsoluteY, 4, true, false, (*CPU).execLDX},
	0xBF: {"LAX", AddrAbsoluteY, 4, true, false, (*CPU).execLAX},

	0xC0: {"CPY", AddrImmediate, 2, false, false, (*CPU).execCPY},
	0xC1: {"CMP", AddrIndexedIndirect, 6, false, false, (*CPU).execCMP},
	0xC2: {"NOP", AddrImmediate, 2, false, false, (*CPU).execNOP},
	0xC3: {"DCP", AddrIndexedIndirect, 8, false, false, (*CPU).execDCP},
	0xC4: {"CPY", AddrZeroPage, 3, false, false, (*CPU).execCPY},
	0xC5: {"CMP", AddrZeroPage, 3, false, false, (*CPU).execCMP},
	0xC6: {"DEC", AddrZeroPage, 5, false, false, (*CPU).execDEC},
	0xC7: {"DCP", AddrZeroPage, 5, false, false, (*CPU).execDCP},
	0xC8: {"INY", AddrImplied, 2, false, false, (*CPU).execINY},
	0xC9: {"CMP", AddrImmediate, 2, false, false, (*CPU).execCMP},
	0xCA: {"DEX", AddrImplied, 2, false, false, (*CPU).execDEX},
	0xCB: {"SBX", AddrImmediate, 2, false, false, (*CPU).execSBX},
	0xCC: {"CPY", AddrAbsolute, 4, false, false, (*CPU).execCPY},
	0xCD: {"CMP", AddrAbsolute, 4, false, false, (*CPU).execCMP},
	0xCE: {"DEC", AddrAbsolute, 6, false, false, (*CPU).execDEC},
	0xCF: {"DCP", AddrAbsolute, 6, false, false, (*CPU).execDCP},

	0xD0: {"BNE", AddrRelative, 2, false, false, (*CPU).execBNE},
	0xD1: {"CMP", AddrIndirectIndexed, 5, true, false, (*CPU).execCMP},
	0xD2: {"JAM", AddrImplied, 2, false, true, nil},
	0xD3: {"DCP", AddrIndirectIndexed, 8, false, false, (*CPU).execDCP},
	0xD4: {"NOP", AddrZeroPageX, 4, false, false, (*CPU).execNOP},
	0xD5: {"CMP", AddrZeroPageX, 4, false, false, (*CPU).execCMP},
	0xD6: {"DEC", AddrZeroPageX, 6, false, false, (*CPU).execDEC},
	0xD7: {"DCP", AddrZeroPageX, 6, false, false, (*CPU).execDCP},
	0xD8: {"CLD", AddrImplied, 2, false, false, (*CPU).execCLD},
	0xD9: {"CMP", AddrAbsoluteY, 4, true, false, (*CPU).execCMP},
	0xDA: {"NOP", AddrImplied, 2, false, false, (*CPU).execNOP},
	0xDB: {"DCP", AddrAbsoluteY, 7, false, false, (*CPU).execDCP},
	0xDC: {"NOP", AddrAbsoluteX, 4, true, false, (*CPU).execNOP},
	0xDD: {"CMP", AddrAbsoluteX, 4, true, false, (*CPU).execCMP},
	0xDE: {"DEC", AddrAbsoluteX, 7, false, false, (*CPU).execDEC},
	0xDF: {"DCP", AddrAbsoluteX, 7, false, false, (*CPU).execDCP},

	0xE0: {"CPX", AddrImmediate, 2, false, false, (*CPU).execCPX},
	0xE1: {"SBC", AddrIndexedIndirect, 6, false, false, (*CPU).execSBC},
	0xE2: {"NOP", AddrImmediate, 2, false, false, (*CPU).execNOP},
	0xE3: {"ISC", AddrIndexedIndirect, 8, false, false, (*CPU).execISC},
	0xE4: {"CPX", AddrZeroPage, 3, false, false, (*CPU).execCPX},
	0xE5: {"SBC", AddrZeroPage, 3, false, false, (*CPU).execSBC},
	0xE6: {"INC", AddrZeroPage, 5, false, false, (*CPU).execINC},
	0xE7: {"ISC", AddrZeroPage, 5, false, false, (*CPU).execISC},
	0xE8: {"INX", AddrImplied, 2, false, false, (*CPU).execINX},
	0xE9: {"SBC", AddrImmediate, 2, false, false, (*CPU).execSBC},
	0xEA: {"NOP", AddrImplied, 2, false, false, (*CPU).execNOP},
	0xEB: {"SBC", AddrImmediate, 2, false, false, (*CPU).execSBC},
	0xEC: {"CPX", AddrAbsolute, 4, false, false, (*CPU).execCPX},
	0xED: {"SBC", AddrAbsolute, 4, false, false, (*CPU).execSBC},
	0xEE: {"INC", AddrAbsolute, 6, false, false, (*CPU).execINC},
	0xEF: {"ISC", AddrAbsolute, 6, false, false, (*CPU).execISC},

	0xF0: {"BEQ", AddrRelative, 2, false, false, (*CPU).execBEQ},
	0xF1: {"SBC", AddrIndirectIndexed, 5, true, false, (*CPU).execSBC},
	0xF2: {"JAM", AddrImplied, 2, false, true, nil},
	0xF3: {"ISC", AddrIndirectIndexed, 8, false, false, (*CPU).execISC},
	0xF4: {"NOP", AddrZeroPageX, 4, false, false, (*CPU).execNOP},
	0xF5: {"SBC", AddrZeroPageX, 4, false, false, (*CPU).execSBC},
	0xF6: {"INC", AddrZeroPageX, 6, false, false, (*CPU).execINC},
	0xF7: {"ISC", AddrZeroPageX, 6, false, false, (*CPU).execISC},
	0xF8: {"SED", AddrImplied, 2, false, false, (*CPU).execSED},
	0xF9: {"SBC", AddrAbsoluteY, 4, true, false, (*CPU).execSBC},
	0xFA: {"NOP", AddrImplied, 2, false, false, (*CPU).execNOP},
	0xFB: {"ISC", AddrAbsoluteY, 7, false, false, (*CPU).execISC},
	0xFC: {"NOP", AddrAbsoluteX, 4, true, false, (*CPU).execNOP},
	0xFD: {"SBC", AddrAbsoluteX, 4, true, false, (*CPU).execSBC},
	0xFE: {"INC", AddrAbsoluteX, 7, false, false, (*CPU).execINC},
	0xFF: {"ISC", AddrAbsoluteX, 7, false, false, (*CPU).execISC},
}
