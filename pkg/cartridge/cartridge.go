package cartridge

import (
	"fmt"
	"io"

	"github.com/vibenes/core/pkg/cartridge/mapper"
	"github.com/vibenes/core/pkg/savestate"
)

// Cartridge represents a NES cartridge
type Cartridge struct {
	// ROM data
	PRGROM []uint8 // Program ROM
	CHRROM []uint8 // Character ROM

	// RAM data
	PRGRAM []uint8 // Program RAM (SRAM)
	CHRRAM []uint8 // Character RAM

	// Header information
	Header iNESHeader

	// Mapper
	Mapper mapper.Mapper

	// Mirroring from the iNES header
	HeaderMirroring MirroringMode
}

// iNESHeader represents the iNES file header
type iNESHeader struct {
	Magic      [4]uint8 // "NES\x1A"
	PRGROMSize uint8    // Size of PRG ROM in 16KB units
	CHRROMSize uint8    // Size of CHR ROM in 8KB units
	Flags6     uint8    // Mapper, mirroring, battery, trainer
	Flags7     uint8    // Mapper, VS/Playchoice, NES 2.0
	Flags8     uint8    // PRG-RAM size (rarely used)
	Flags9     uint8    // TV system (rarely used)
	Flags10    uint8    // TV system, PRG-RAM presence (unofficial)
	Padding    [5]uint8 // Unused padding (should be zero)
}

// MirroringMode represents the mirroring mode
type MirroringMode int

const (
	MirroringHorizontal MirroringMode = iota
	MirroringVertical
	MirroringFourScreen
	MirroringSingleScreenA
	MirroringSingleScreenB
)

// LoadFromReader loads a cartridge from an iNES file
func LoadFromReader(reader io.Reader) (*Cartridge, error) {
	cart := &Cartridge{}

	// Read header
	err := cart.readHeader(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	// Validate header
	if string(cart.Header.Magic[:]) != "NES\x1A" {
		return nil, fmt.Errorf("invalid iNES magic number")
	}

	// Skip trainer if present
	if cart.Header.Flags6&0x04 != 0 {
		trainer := make([]uint8, 512)
		_, err := io.ReadFull(reader, trainer)
		if err != nil {
			return nil, fmt.Errorf("failed to read trainer: %w", err)
		}
	}

	// Read PRG ROM
	prgSize := int(cart.Header.PRGROMSize) * 16384
	cart.PRGROM = make([]uint8, prgSize)
	_, err = io.ReadFull(reader, cart.PRGROM)
	if err != nil {
		return nil, fmt.Errorf("failed to read PRG ROM: %w", err)
	}

	// Read CHR ROM
	chrSize := int(cart.Header.CHRROMSize) * 8192
	if chrSize > 0 {
		cart.CHRROM = make([]uint8, chrSize)
		_, err = io.ReadFull(reader, cart.CHRROM)
		if err != nil {
			return nil, fmt.Errorf("failed to read CHR ROM: %w", err)
		}
	} else {
		// CHR RAM - determine size based on mapper
		mapperNumber := (cart.Header.Flags6 >> 4) | (cart.Header.Flags7 & 0xF0)
		chrRAMSize := 8192 // Default 8KB

		// Mapper 4 (MMC3) games often use 32KB CHR RAM
		if mapperNumber == 4 {
			chrRAMSize = 32768 // 32KB for MMC3 games
		}

		cart.CHRRAM = make([]uint8, chrRAMSize)

		// Initialize CHR RAM to 0x00 (normal expected state)
		for i := range cart.CHRRAM {
			cart.CHRRAM[i] = 0x00
		}
	}

	// Initialize PRG RAM if battery backed. Flags8 gives the size in 8KB
	// units when present (NES 2.0 carts and some iNES dumps); 0 or absent
	// means the common default of one 8KB bank.
	if cart.Header.Flags6&0x02 != 0 {
		prgRAMUnits := int(cart.Header.Flags8)
		if prgRAMUnits == 0 {
			prgRAMUnits = 1
		}
		cart.PRGRAM = make([]uint8, prgRAMUnits*8192)
	}

	// Determine mirroring
	var mirrorMode mapper.MirroringMode
	if cart.Header.Flags6&0x08 != 0 {
		cart.HeaderMirroring = MirroringFourScreen
		mirrorMode = mapper.MirrorFourScreen
	} else if cart.Header.Flags6&0x01 != 0 {
		cart.HeaderMirroring = MirroringVertical
		mirrorMode = mapper.MirrorVertical
	} else {
		cart.HeaderMirroring = MirroringHorizontal
		mirrorMode = mapper.MirrorHorizontal
	}

	// Create mapper
	mapperNumber := (cart.Header.Flags6 >> 4) | (cart.Header.Flags7 & 0xF0)

	// Create mapper data
	mapperData := &mapper.CartridgeData{
		PRGROM:          cart.PRGROM,
		CHRROM:          cart.CHRROM,
		PRGRAM:          cart.PRGRAM,
		CHRRAM:          cart.CHRRAM,
		HeaderMirroring: mirrorMode,
	}

	cart.Mapper, err = mapper.NewMapper(mapperNumber, mapperData)
	if err != nil {
		return nil, fmt.Errorf("failed to create mapper: %w", err)
	}

	return cart, nil
}

// readHeader reads the iNES header
func (c *Cartridge) readHeader(reader io.Reader) error {
	headerBytes := make([]uint8, 16)
	_, err := io.ReadFull(reader, headerBytes)
	if err != nil {
		return err
	}

	copy(c.Header.Magic[:], headerBytes[0:4])
	c.Header.PRGROMSize = headerBytes[4]
	c.Header.CHRROMSize = headerBytes[5]
	c.Header.Flags6 = headerBytes[6]
	c.Header.Flags7 = headerBytes[7]
	c.Header.Flags8 = headerBytes[8]
	c.Header.Flags9 = headerBytes[9]
	c.Header.Flags10 = headerBytes[10]
	copy(c.Header.Padding[:], headerBytes[11:16])

	return nil
}

// ReadPRG reads from PRG space
func (c *Cartridge) ReadPRG(addr uint16) uint8 {
	if c.Mapper != nil {
		return c.Mapper.ReadPRG(addr)
	}
	return 0
}

// WritePRG writes to PRG space
func (c *Cartridge) WritePRG(addr uint16, value uint8) {
	if c.Mapper != nil {
		c.Mapper.WritePRG(addr, value)
	}
}

// ReadCHR reads from CHR space
func (c *Cartridge) ReadCHR(addr uint16) uint8 {
	if c.Mapper != nil {
		return c.Mapper.ReadCHR(addr)
	}
	return 0
}

// WriteCHR writes to CHR space
func (c *Cartridge) WriteCHR(addr uint16, value uint8) {
	if c.Mapper != nil {
		c.Mapper.WriteCHR(addr, value)
	}
}

// IsIRQPending returns whether mapper IRQ is pending
func (c *Cartridge) IsIRQPending() bool {
	if c.Mapper != nil {
		return c.Mapper.IsIRQPending()
	}
	return false
}

// ClearIRQ clears mapper IRQ
func (c *Cartridge) ClearIRQ() {
	if c.Mapper != nil {
		c.Mapper.ClearIRQ()
	}
}

// NotifyA12 forwards the PPU address bus's A12 line level to the mapper,
// for boards (MMC3) that clock an IRQ counter from it.
func (c *Cartridge) NotifyA12(level bool) {
	if c.Mapper != nil {
		c.Mapper.NotifyA12(level)
	}
}

// NotifyCPUCycle forwards the bus's monotonic CPU-cycle counter to the
// mapper, for boards (MMC1) whose registers reject consecutive-cycle writes.
func (c *Cartridge) NotifyCPUCycle(cycle uint64) {
	if c.Mapper != nil {
		c.Mapper.NotifyCPUCycle(cycle)
	}
}

// Mirroring returns the nametable mirroring the mapper currently selects;
// mappers without dynamic mirroring control report the header's value.
func (c *Cartridge) Mirroring() mapper.MirroringMode {
	if c.Mapper != nil {
		return c.Mapper.Mirroring()
	}
	return mapper.MirrorHorizontal
}

// SaveState writes PRG-RAM, CHR-RAM, and the mapper's own bank-select and
// IRQ registers. PRG-ROM and CHR-ROM are immutable and never included; a
// reload always restores them from the cartridge file.
func (c *Cartridge) SaveState(w *savestate.Writer) {
	w.WriteUint32(uint32(len(c.PRGRAM)))
	w.WriteBytes(c.PRGRAM)
	w.WriteUint32(uint32(len(c.CHRRAM)))
	w.WriteBytes(c.CHRRAM)
	if c.Mapper != nil {
		c.Mapper.SaveState(w)
	}
}

// LoadState restores everything SaveState wrote, refusing a PRG-RAM/CHR-RAM
// size mismatch rather than silently truncating or zero-padding.
func (c *Cartridge) LoadState(r *savestate.Reader) error {
	prgLen := int(r.ReadUint32())
	prgData := r.ReadBytes(prgLen)
	if prgLen != len(c.PRGRAM) {
		return fmt.Errorf("savestate: PRG RAM size mismatch (got %d, want %d)", prgLen, len(c.PRGRAM))
	}
	copy(c.PRGRAM, prgData)

	chrLen := int(r.ReadUint32())
	chrData := r.ReadBytes(chrLen)
	if chrLen != len(c.CHRRAM) {
		return fmt.Errorf("savestate: CHR RAM size mismatch (got %d, want %d)", chrLen, len(c.CHRRAM))
	}
	copy(c.CHRRAM, chrData)

	if c.Mapper != nil {
		if err := c.Mapper.LoadState(r); err != nil {
			return err
		}
	}
	return r.Err()
}
