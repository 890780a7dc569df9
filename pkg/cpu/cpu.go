// Package cpu implements the MOS 6502 core: register file, the full legal
// and stable-illegal opcode set, cycle-accurate addressing, and the
// three-source interrupt system with penultimate-cycle-equivalent polling.
package cpu

import (
	"github.com/vibenes/core/pkg/logger"
	"github.com/vibenes/core/pkg/memory"
	"github.com/vibenes/core/pkg/nestype"
	"github.com/vibenes/core/pkg/savestate"
)

// Status flag bits, in P.
const (
	FlagCarry     = 1 << 0 // C
	FlagZero      = 1 << 1 // Z
	FlagInterrupt = 1 << 2 // I
	FlagDecimal   = 1 << 3 // D — respected by SED/CLD/PHP/PLP, never alters ADC/SBC
	FlagBreak     = 1 << 4 // B — only meaningful on the stack image pushed by BRK/PHP
	FlagUnused    = 1 << 5 // U — always reads 1
	FlagOverflow  = 1 << 6 // V
	FlagNegative  = 1 << 7 // N
)

const stackPage = 0x0100

// CPU is the 6502 register file plus interrupt latches and cycle
// accounting described in spec.md §3.
type CPU struct {
	A, X, Y uint8
	S       uint8
	PC      uint16
	P       uint8

	Bus *memory.Memory

	// Interrupt latches (spec.md §3).
	nmiPending   bool // edge-triggered, set by PPU on VBlank rising edge
	nmiLinePrev  bool
	irqLine      bool // level-triggered, OR of every IRQ source
	resetPending bool

	// pollI is the I flag value sampled at the start of the PREVIOUS
	// instruction. Real hardware polls interrupts on an instruction's
	// penultimate cycle, before that instruction's own final-cycle flag
	// write takes effect; since this CPU executes an instruction as one
	// atomic unit, the equivalent value is "I as it stood before the
	// instruction that just completed ran" — which is exactly the I value
	// captured at that instruction's start. This reproduces the canonical
	// CLI/SEI one-instruction polling delay without per-T-state stepping.
	pollI bool

	// Halted is set when execution reaches an unstable-illegal opcode
	// (spec.md §7: IllegalCpuInstruction). PPU/APU keep running; the CPU
	// stops issuing instructions.
	Halted    bool
	HaltedOp  uint8
	cyclesRun nestype.CpuCycle
}

// New creates a CPU wired to the given bus.
func New(bus *memory.Memory) *CPU {
	c := &CPU{Bus: bus}
	c.P = FlagUnused | FlagInterrupt
	c.S = 0xFD
	return c
}

// PowerOn establishes the cold-boot register state and loads PC from the
// reset vector.
func (c *CPU) PowerOn() {
	c.A, c.X, c.Y = 0, 0, 0
	c.S = 0xFD
	c.P = FlagUnused | FlagInterrupt
	c.nmiPending = false
	c.nmiLinePrev = false
	c.irqLine = false
	c.resetPending = false
	c.pollI = true
	c.Halted = false
	c.cyclesRun = 0
	c.PC = c.read16(0xFFFC)
}

// Reset simulates a reset line pulse: 7 cycles, S -= 3 without writing,
// I=1, D=0, PC loaded from 0xFFFC (spec.md §4.2).
func (c *CPU) Reset() {
	c.S -= 3
	c.setFlag(FlagInterrupt, true)
	c.setFlag(FlagDecimal, false)
	c.PC = c.read16(0xFFFC)
	c.Halted = false
	c.pollI = true
	c.nmiPending = false
	c.irqLine = false
}

// TriggerNMI latches an NMI edge. Called by the driver when the PPU's
// tick reports a VBlank rising edge with NMI output enabled.
func (c *CPU) TriggerNMI() { c.nmiPending = true }

// ClearNMILine exists for symmetry with the IRQ line API; NMI has no
// level to clear, only the edge latch, which acceptance itself clears.
func (c *CPU) ClearNMILine() { c.nmiPending = false }

// TriggerIRQ asserts the level-triggered IRQ line. Multiple sources may
// assert it; it is the OR of APU frame IRQ, DMC IRQ, and mapper IRQ.
func (c *CPU) TriggerIRQ() { c.irqLine = true }

// ClearIRQLine deasserts the IRQ line. The caller (bus/driver) is
// responsible for only calling this once every IRQ source has acknowledged.
func (c *CPU) ClearIRQLine() { c.irqLine = false }

// TriggerReset schedules a reset to take effect on the next Step call.
func (c *CPU) TriggerReset() { c.resetPending = true }

func (c *CPU) getFlag(flag uint8) bool { return c.P&flag != 0 }

func (c *CPU) setFlag(flag uint8, value bool) {
	if value {
		c.P |= flag
	} else {
		c.P &^= flag
	}
	c.P |= FlagUnused
}

// GetFlag exposes flag state for tests and save-state inspection.
func (c *CPU) GetFlag(flag uint8) bool { return c.getFlag(flag) }

func (c *CPU) read(addr uint16) uint8     { return c.Bus.Read(addr) }
func (c *CPU) write(addr uint16, v uint8) { c.Bus.Write(addr, v) }

func (c *CPU) read16(addr uint16) uint16 {
	lo := uint16(c.read(addr))
	hi := uint16(c.read(addr + 1))
	return hi<<8 | lo
}

// read16bug reproduces the JMP-(indirect) page-wrap bug: when addr's low
// byte is 0xFF, the high byte is fetched from the same page, not the next.
func (c *CPU) read16bug(addr uint16) uint16 {
	lo := uint16(c.read(addr))
	hiAddr := (addr & 0xFF00) | uint16(uint8(addr)+1)
	hi := uint16(c.read(hiAddr))
	return hi<<8 | lo
}

func (c *CPU) push(v uint8) {
	c.write(stackPage|uint16(c.S), v)
	c.S--
}

func (c *CPU) pop() uint8 {
	c.S++
	return c.read(stackPage | uint16(c.S))
}

func (c *CPU) push16(v uint16) {
	c.push(uint8(v >> 8))
	c.push(uint8(v & 0xFF))
}

func (c *CPU) pop16() uint16 {
	lo := uint16(c.pop())
	hi := uint16(c.pop())
	return hi<<8 | lo
}

// Step executes exactly one instruction (or one interrupt-acknowledge
// sequence in its place) and returns the number of CPU cycles it consumed.
// A halted CPU consumes zero cycles; the driver is expected to check
// Halted and stop issuing instructions (PPU/APU continue regardless).
func (c *CPU) Step() nestype.CpuCycle {
	if c.Halted {
		return 0
	}

	if c.resetPending {
		c.resetPending = false
		c.Reset()
		return 7
	}

	if c.nmiPending {
		c.nmiPending = false
		cycles := c.serviceInterrupt(0xFFFA, false)
		// serviceInterrupt just forced I=1 with no polling delay (unlike
		// SEI/CLI); the next poll must see that immediately, or a still
		// dangling irqLine would re-enter service before the handler's
		// first instruction ever runs.
		c.pollI = true
		return cycles
	}

	if c.irqLine && !c.pollI {
		cycles := c.serviceInterrupt(0xFFFE, false)
		c.pollI = true
		return cycles
	}

	// This instruction's start-of-instruction I flag becomes the value
	// used to decide whether the NEXT instruction's fetch is replaced by
	// an interrupt sequence.
	c.pollI = c.getFlag(FlagInterrupt)

	opcode := c.read(c.PC)
	c.PC++

	info := opcodeTable[opcode]
	if info.Unstable {
		c.Halted = true
		c.HaltedOp = opcode
		logger.LogCPU("halted on unstable-illegal opcode $%02X at PC=$%04X", opcode, c.PC-1)
		return 0
	}

	operand, pageCrossed := c.resolveOperand(info.Mode)
	extra := info.Exec(c, operand, info.Mode)
	cycles := nestype.CpuCycle(info.Cycles + extra)
	if pageCrossed && info.PageCrossPenalty {
		cycles++
	}
	c.cyclesRun += cycles
	return cycles
}

// SaveState writes the register file and interrupt latches needed to
// resume execution exactly where it left off.
func (c *CPU) SaveState(w *savestate.Writer) {
	w.WriteUint8(c.A)
	w.WriteUint8(c.X)
	w.WriteUint8(c.Y)
	w.WriteUint8(c.S)
	w.WriteUint16(c.PC)
	w.WriteUint8(c.P)
	w.WriteBool(c.nmiPending)
	w.WriteBool(c.nmiLinePrev)
	w.WriteBool(c.irqLine)
	w.WriteBool(c.resetPending)
	w.WriteBool(c.pollI)
	w.WriteBool(c.Halted)
	w.WriteUint8(c.HaltedOp)
	w.WriteUint64(uint64(c.cyclesRun))
}

// LoadState restores a register file and interrupt latches written by
// SaveState.
func (c *CPU) LoadState(r *savestate.Reader) error {
	c.A = r.ReadUint8()
	c.X = r.ReadUint8()
	c.Y = r.ReadUint8()
	c.S = r.ReadUint8()
	c.PC = r.ReadUint16()
	c.P = r.ReadUint8()
	c.nmiPending = r.ReadBool()
	c.nmiLinePrev = r.ReadBool()
	c.irqLine = r.ReadBool()
	c.resetPending = r.ReadBool()
	c.pollI = r.ReadBool()
	c.Halted = r.ReadBool()
	c.HaltedOp = r.ReadUint8()
	c.cyclesRun = nestype.CpuCycle(r.ReadUint64())
	return r.Err()
}

// serviceInterrupt runs the 7-cycle interrupt sequence: suppress the next
// opcode fetch, push PC-high/PC-low/P (B=0 for hardware interrupts), set
// I=1, and load PC from the given vector.
func (c *CPU) serviceInterrupt(vector uint16, brk bool) nestype.CpuCycle {
	c.push16(c.PC)
	p := c.P | FlagUnused
	if brk {
		p |= FlagBreak
	} else {
		p &^= FlagBreak
	}
	c.push(p)
	c.setFlag(FlagInterrupt, true)
	c.PC = c.read16(vector)
	return 7
}

// CyclesRun returns the total CPU cycles executed since power-on/reset.
func (c *CPU) CyclesRun() nestype.CpuCycle { return c.cyclesRun }
