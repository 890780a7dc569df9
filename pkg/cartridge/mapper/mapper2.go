package mapper

import "github.com/vibenes/core/pkg/savestate"

// Mapper2 (UxROM) - 16KB PRG bank switching, CHR RAM
type Mapper2 struct {
	cartridge *CartridgeData
	
	// Bank selection
	prgBank      uint8 // Current PRG bank (0-15)
	prgBankCount uint8 // Number of 16KB PRG banks

	// Bus conflict behavior: 0=unknown, 1=no conflicts, 2=AND-type conflicts.
	// UxROM boards are commonly wired with bus conflicts (the cartridge
	// drives the data bus at the same time as the CPU), so this defaults to
	// AND-type.
	busConflictMode uint8
}

// NewMapper2 creates a new Mapper2 instance
func NewMapper2(data *CartridgeData) *Mapper2 {
	m := &Mapper2{
		cartridge:       data,
		prgBank:         0, // Start with bank 0
		busConflictMode: 2,
	}
	
	// Calculate PRG bank count (16KB banks)
	m.prgBankCount = uint8(len(data.PRGROM) / 16384)
	
	return m
}

// ReadPRG reads from PRG space
func (m *Mapper2) ReadPRG(addr uint16) uint8 {
	if addr >= 0x8000 {
		// PRG ROM area
		if addr < 0xC000 {
			// $8000-$BFFF: Switchable 16KB bank
			bank := m.prgBank % m.prgBankCount
			offset := addr - 0x8000
			finalAddr := uint32(bank)*16384 + uint32(offset)
			
			if finalAddr < uint32(len(m.cartridge.PRGROM)) {
				return m.cartridge.PRGROM[finalAddr]
			}
		} else {
			// $C000-$FFFF: Fixed to last 16KB bank
			lastBank := m.prgBankCount - 1
			offset := addr - 0xC000
			finalAddr := uint32(lastBank)*16384 + uint32(offset)
			
			if finalAddr < uint32(len(m.cartridge.PRGROM)) {
				return m.cartridge.PRGROM[finalAddr]
			}
		}
	} else if addr >= 0x6000 && len(m.cartridge.PRGRAM) > 0 {
		// PRG RAM area
		addr -= 0x6000
		if int(addr) < len(m.cartridge.PRGRAM) {
			return m.cartridge.PRGRAM[addr]
		}
	}
	
	return 0
}

// WritePRG writes to PRG space (handles bank switching)
func (m *Mapper2) WritePRG(addr uint16, value uint8) {
	if addr >= 0x8000 {
		// Bank register write - any write to $8000-$FFFF changes PRG bank
		effectiveValue := value
		if m.busConflictMode == 2 {
			effectiveValue = value & m.ReadPRG(addr)
		}
		m.prgBank = effectiveValue & 0x0F // Only lower 4 bits used for bank selection
	} else if addr >= 0x6000 && addr < 0x8000 && len(m.cartridge.PRGRAM) > 0 {
		// PRG RAM write
		addr -= 0x6000
		if int(addr) < len(m.cartridge.PRGRAM) {
			m.cartridge.PRGRAM[addr] = value
		}
	}
}

// ReadCHR reads from CHR space (CHR RAM only for UxROM)
func (m *Mapper2) ReadCHR(addr uint16) uint8 {
	// UxROM uses CHR RAM, not CHR ROM
	if len(m.cartridge.CHRRAM) > 0 {
		if int(addr) < len(m.cartridge.CHRRAM) {
			return m.cartridge.CHRRAM[addr]
		}
	} else if len(m.cartridge.CHRROM) > 0 {
		// Some UxROM variants may have CHR ROM
		if int(addr) < len(m.cartridge.CHRROM) {
			return m.cartridge.CHRROM[addr]
		}
	}
	
	return 0
}

// WriteCHR writes to CHR space (CHR RAM only)
func (m *Mapper2) WriteCHR(addr uint16, value uint8) {
	// UxROM typically uses CHR RAM
	if len(m.cartridge.CHRRAM) > 0 {
		if int(addr) < len(m.cartridge.CHRRAM) {
			m.cartridge.CHRRAM[addr] = value
		}
	}
	// CHR ROM writes are ignored
}

// GetCurrentPRGBank returns the current PRG bank for debugging
func (m *Mapper2) GetCurrentPRGBank() uint8 {
	return m.prgBank
}

// Mirroring reports the iNES header's hard-wired mirroring; UxROM has no
// mirroring control of its own.
func (m *Mapper2) Mirroring() MirroringMode { return m.cartridge.HeaderMirroring }

// NotifyA12 is a no-op: UxROM has no IRQ logic driven by the PPU address bus.
func (m *Mapper2) NotifyA12(level bool) {}

// NotifyCPUCycle is a no-op: UxROM's bank register tolerates back-to-back
// writes.
func (m *Mapper2) NotifyCPUCycle(cycle uint64) {}

// SetBusConflictMode sets the bus conflict behavior.
// 0 = unknown behavior, 1 = no conflicts, 2 = AND-type conflicts
func (m *Mapper2) SetBusConflictMode(mode uint8) {
	if mode <= 2 {
		m.busConflictMode = mode
	}
}

// IsIRQPending returns false for Mapper2 (no IRQ support)
func (m *Mapper2) IsIRQPending() bool {
	return false
}

// ClearIRQ does nothing for Mapper2 (no IRQ support)
func (m *Mapper2) ClearIRQ() {
	// No IRQ to clear
}

// SaveState writes the current PRG bank and bus-conflict mode.
func (m *Mapper2) SaveState(w *savestate.Writer) {
	w.WriteUint8(m.prgBank)
	w.WriteUint8(m.busConflictMode)
}

// LoadState restores everything SaveState wrote.
func (m *Mapper2) LoadState(r *savestate.Reader) error {
	m.prgBank = r.ReadUint8()
	m.busConflictMode = r.ReadUint8()
	return r.Err()
}