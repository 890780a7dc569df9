// Package mapper implements the cartridge bank-switching logic for mappers
// 0 (NROM), 1 (MMC1), 2 (UxROM), 3 (CNROM), and 4 (MMC3).
package mapper

import (
	"fmt"

	"github.com/vibenes/core/pkg/savestate"
)

// MirroringMode describes how the PPU's two physical nametables are mapped
// onto its four logical nametable slots.
type MirroringMode int

const (
	MirrorHorizontal MirroringMode = iota
	MirrorVertical
	MirrorSingleScreenLow
	MirrorSingleScreenHigh
	MirrorFourScreen
)

// Mapper is the interface every cartridge bank-switching chip implements.
type Mapper interface {
	ReadPRG(addr uint16) uint8
	WritePRG(addr uint16, value uint8)
	ReadCHR(addr uint16) uint8
	WriteCHR(addr uint16, value uint8)

	// Mirroring reports the nametable layout the mapper currently selects.
	Mirroring() MirroringMode

	// NotifyA12 reports the PPU address bus's A12 line level on every dot
	// the PPU fetches a pattern-table byte. Only MMC3 (mapper 4) acts on
	// this; every other mapper ignores it.
	NotifyA12(level bool)

	// NotifyCPUCycle reports the bus's monotonic CPU-cycle counter once per
	// CPU cycle, ahead of any same-cycle PRG write. Only MMC1 (mapper 1)
	// uses it, to reject writes landing on the cycle right after another.
	NotifyCPUCycle(cycle uint64)

	IsIRQPending() bool
	ClearIRQ()

	// SaveState/LoadState snapshot the mapper's bank-select and IRQ
	// registers. PRG-RAM/CHR-RAM contents live in CartridgeData and are
	// snapshotted by the Cartridge itself, not here.
	SaveState(w *savestate.Writer)
	LoadState(r *savestate.Reader) error
}

// CartridgeData holds the ROM/RAM images a mapper banks over.
type CartridgeData struct {
	PRGROM []uint8
	CHRROM []uint8
	PRGRAM []uint8
	CHRRAM []uint8

	// HeaderMirroring is the iNES header's hard-wired mirroring bit,
	// mappers without their own mirroring control (0, 2, 3) report this
	// value from Mirroring() verbatim.
	HeaderMirroring MirroringMode
}

// NewMapper constructs the mapper for the given iNES mapper number.
func NewMapper(mapperNumber uint8, data *CartridgeData) (Mapper, error) {
	switch mapperNumber {
	case 0:
		return NewMapper0(data), nil
	case 1:
		return NewMapper1(data), nil
	case 2:
		return NewMapper2(data), nil
	case 3:
		return NewMapper3(data), nil
	case 4:
		return NewMapper4(data), nil
	default:
		return nil, fmt.Errorf("unsupported mapper: %d", mapperNumber)
	}
}
