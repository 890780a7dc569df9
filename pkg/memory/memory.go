// Package memory implements the system bus: CPU-space address decode,
// work RAM mirroring, the open-bus latch, and the OAM DMA sequencer.
package memory

import (
	"math/rand"

	"github.com/vibenes/core/pkg/logger"
	"github.com/vibenes/core/pkg/savestate"
)

// ppuPort is the subset of PPU behavior the bus drives directly.
type ppuPort interface {
	ReadRegister(addr uint16) uint8
	WriteRegister(addr uint16, value uint8)
	WriteOAMDMAByte(value uint8)
}

// apuPort is the subset of APU behavior the bus drives directly.
type apuPort interface {
	ReadRegister(addr uint16) uint8
	WriteRegister(addr uint16, value uint8)
}

// cartridgePort is the subset of cartridge behavior the bus drives directly.
type cartridgePort interface {
	ReadPRG(addr uint16) uint8
	WritePRG(addr uint16, value uint8)
}

// inputPort is the subset of controller behavior the bus drives directly.
type inputPort interface {
	Read(player int) uint8
	Write(value uint8)
}

// Memory is the NES system bus: it owns work RAM and fans CPU-space
// accesses out to the PPU, APU, controllers, and cartridge, maintaining the
// open-bus latch and OAM DMA sequencing described in spec.md §4.1.
type Memory struct {
	RAM [2048]uint8

	PPU       ppuPort
	APU       apuPort
	Cartridge cartridgePort
	Input     inputPort

	// LastBusValue is the open-bus latch: the last byte driven on the CPU
	// data bus, returned from unmapped or write-only reads.
	LastBusValue uint8

	// DMAActive indicates OAM DMA is mid-transfer; while true the CPU must
	// not issue instructions, only drain cycles.
	DMAActive bool

	dmaPage      uint8
	dmaElapsed   int
	dmaDummy     int
	dmaTotal     int
	dmaReadValue uint8

	// cycleCount is a monotonic CPU-cycle counter the bus owns, per
	// spec.md §9's resolution of the MMC1 consecutive-write-filter open
	// question: the bus, not the CPU, is the source of truth mappers query.
	cycleCount uint64
}

// New creates a new Memory (system bus) instance.
func New() *Memory {
	return &Memory{}
}

// SetCartridge wires the active cartridge into the bus.
func (m *Memory) SetCartridge(cart cartridgePort) { m.Cartridge = cart }

// SetPPU wires the PPU into the bus.
func (m *Memory) SetPPU(ppu ppuPort) { m.PPU = ppu }

// SetAPU wires the APU into the bus.
func (m *Memory) SetAPU(apu apuPort) { m.APU = apu }

// SetInput wires the controller ports into the bus.
func (m *Memory) SetInput(input inputPort) { m.Input = input }

// PowerOn randomizes work RAM with a PRNG seeded by address, so power-on
// state is deterministic across runs (spec.md §3 Lifecycles) yet looks
// uninitialized the way real hardware's capacitor-charge garbage does.
func (m *Memory) PowerOn() {
	for i := range m.RAM {
		seed := int64(i)*2654435761 + 0x6502
		r := rand.New(rand.NewSource(seed))
		m.RAM[i] = uint8(r.Intn(256))
	}
	m.LastBusValue = 0
	m.DMAActive = false
	m.cycleCount = 0
}

// Reset preserves RAM contents (spec.md §3 Lifecycles: "reset preserves
// RAM") but clears in-flight DMA state.
func (m *Memory) Reset() {
	m.DMAActive = false
	m.dmaElapsed = 0
}

// CycleCount returns the bus's monotonic CPU-cycle counter, queried
// directly by MMC1 for its consecutive-write filter (spec.md §9).
func (m *Memory) CycleCount() uint64 { return m.cycleCount }

// TickCycle advances the bus's monotonic cycle counter. Called once per
// CPU cycle by the system's cycle pump.
func (m *Memory) TickCycle() {
	m.cycleCount++
}

// Read reads a byte from CPU address space, updating the open-bus latch.
func (m *Memory) Read(addr uint16) uint8 {
	var value uint8
	switch {
	case addr < 0x2000:
		value = m.RAM[addr&0x07FF]
	case addr < 0x4000:
		if m.PPU != nil {
			value = m.PPU.ReadRegister(0x2000 + (addr & 0x0007))
		} else {
			value = m.LastBusValue
		}
	case addr == 0x4016:
		bit := uint8(0)
		if m.Input != nil {
			bit = m.Input.Read(0) & 0x01
		}
		value = (m.LastBusValue &^ 0x01) | bit
	case addr == 0x4017:
		bit := uint8(0)
		if m.Input != nil {
			bit = m.Input.Read(1) & 0x01
		}
		value = (m.LastBusValue &^ 0x01) | bit
	case (addr >= 0x4000 && addr <= 0x4013) || addr == 0x4015:
		if m.APU != nil {
			value = m.APU.ReadRegister(addr)
		} else {
			value = m.LastBusValue
		}
	case addr >= 0x4018 && addr <= 0x401F:
		value = m.LastBusValue
	case addr >= 0x4020:
		if m.Cartridge != nil {
			value = m.Cartridge.ReadPRG(addr)
		} else {
			value = m.LastBusValue
		}
	default:
		value = m.LastBusValue
	}
	m.LastBusValue = value
	return value
}

// Write writes a byte to CPU address space, updating the open-bus latch and
// scheduling OAM DMA when $4014 is hit.
func (m *Memory) Write(addr uint16, value uint8) {
	m.LastBusValue = value
	switch {
	case addr < 0x2000:
		m.RAM[addr&0x07FF] = value
	case addr < 0x4000:
		if m.PPU != nil {
			m.PPU.WriteRegister(0x2000+(addr&0x0007), value)
		}
	case addr == 0x4014:
		m.startOAMDMA(value)
	case addr == 0x4016:
		if m.Input != nil {
			m.Input.Write(value)
		}
	case (addr >= 0x4000 && addr <= 0x4013) || addr == 0x4017:
		if m.APU != nil {
			m.APU.WriteRegister(addr, value)
		}
	case addr >= 0x4018 && addr <= 0x401F:
		// disabled test registers: writes are only observable via open-bus
	case addr >= 0x4020:
		if m.Cartridge != nil {
			m.Cartridge.WritePRG(addr, value)
		}
	}
}

// startOAMDMA schedules a 256-byte OAM transfer from page*0x100, beginning
// at the PPU's current OAMADDR and wrapping modulo 256 (the PPU's own
// OAMDATA auto-increment handles destination wrap), per spec.md §4.1. The
// transfer totals 513 cycles (514 if triggered on an odd CPU cycle): 1 (or
// 2) dummy alignment cycles followed by 256 read/write pairs.
func (m *Memory) startOAMDMA(page uint8) {
	m.dmaPage = page
	m.dmaElapsed = 0
	m.dmaDummy = 1
	if m.cycleCount&1 != 0 {
		m.dmaDummy = 2
	}
	m.dmaTotal = m.dmaDummy + 512
	m.DMAActive = true
	logger.LogMapper("OAM DMA scheduled from page $%02X (%d cycles)", page, m.dmaTotal)
}

// ServiceDMACycle runs one sub-cycle of an in-flight OAM DMA transfer,
// alternating a source read and an OAMDATA write once the alignment cycles
// have elapsed. Returns true while DMA remains active.
func (m *Memory) ServiceDMACycle() bool {
	if !m.DMAActive {
		return false
	}
	if m.dmaElapsed >= m.dmaDummy {
		transferIdx := m.dmaElapsed - m.dmaDummy
		if transferIdx%2 == 0 {
			byteIdx := uint16(transferIdx / 2)
			srcAddr := (uint16(m.dmaPage) << 8) | (byteIdx & 0xFF)
			m.dmaReadValue = m.Read(srcAddr)
		} else if m.PPU != nil {
			m.PPU.WriteOAMDMAByte(m.dmaReadValue)
		}
	}
	m.dmaElapsed++
	if m.dmaElapsed >= m.dmaTotal {
		m.DMAActive = false
	}
	return true
}

// SaveState writes work RAM, the open-bus latch, the monotonic cycle
// counter, and any in-flight OAM DMA transfer (spec.md §6: "bus (RAM + OAM
// + open-bus latch + DMA state)" — OAM itself lives in the PPU's block).
func (m *Memory) SaveState(w *savestate.Writer) {
	w.WriteBytes(m.RAM[:])
	w.WriteUint8(m.LastBusValue)
	w.WriteBool(m.DMAActive)
	w.WriteUint8(m.dmaPage)
	w.WriteUint32(uint32(m.dmaElapsed))
	w.WriteUint32(uint32(m.dmaDummy))
	w.WriteUint32(uint32(m.dmaTotal))
	w.WriteUint8(m.dmaReadValue)
	w.WriteUint64(m.cycleCount)
}

// LoadState restores everything SaveState wrote.
func (m *Memory) LoadState(r *savestate.Reader) error {
	copy(m.RAM[:], r.ReadBytes(len(m.RAM)))
	m.LastBusValue = r.ReadUint8()
	m.DMAActive = r.ReadBool()
	m.dmaPage = r.ReadUint8()
	m.dmaElapsed = int(r.ReadUint32())
	m.dmaDummy = int(r.ReadUint32())
	m.dmaTotal = int(r.ReadUint32())
	m.dmaReadValue = r.ReadUint8()
	m.cycleCount = r.ReadUint64()
	return r.Err()
}
