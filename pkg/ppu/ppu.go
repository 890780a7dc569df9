// Package ppu implements the 2C02: the loopy v/t/x/w scrolling registers,
// an 8-dot background shift-register pipeline, per-scanline sprite
// evaluation (including the hardware's buggy overflow scan), the pixel
// multiplexer, and VBlank/NMI timing.
package ppu

import (
	"github.com/vibenes/core/pkg/cartridge/mapper"
	"github.com/vibenes/core/pkg/logger"
	"github.com/vibenes/core/pkg/memory"
	"github.com/vibenes/core/pkg/savestate"
)

// Cartridge is the subset of cartridge behavior the PPU drives directly:
// pattern-table access, mirroring, mapper IRQ, and the A12 line mappers
// such as MMC3 watch for IRQ timing.
type Cartridge interface {
	ReadCHR(addr uint16) uint8
	WriteCHR(addr uint16, value uint8)
	IsIRQPending() bool
	ClearIRQ()
	Mirroring() mapper.MirroringMode
	NotifyA12(level bool)
}

// PPU is the 2C02 picture processing unit.
type PPU struct {
	PPUCTRL   uint8 // $2000
	PPUMASK   uint8 // $2001
	PPUSTATUS uint8 // $2002
	OAMADDR   uint8 // $2003

	// Loopy scrolling registers (spec.md §4.3).
	v uint16 // current VRAM address (15 bits)
	t uint16 // temporary VRAM address / top-left onscreen tile
	x uint8  // fine X scroll (3 bits)
	w uint8  // write toggle

	// nameTables holds the PPU's 2KB of physical nametable RAM; mirroring
	// maps the 4 logical $2000-$2FFF nametables onto it.
	nameTables [2048]uint8

	// OAM (Object Attribute Memory) and its read/write-protected shadow
	// copy sprite evaluation fills in for the next scanline.
	OAM          [256]uint8
	secondaryOAM []SpriteInfo

	// FrameBuffer holds one full frame of ARGB8888 pixels.
	FrameBuffer [256 * 240]uint32

	// Timing
	Cycle         int
	Scanline      int
	Frame         uint64
	FrameComplete bool
	oddFrame      bool

	// Background shift-register pipeline (spec.md §4.3).
	bgPatternShiftLo uint16
	bgPatternShiftHi uint16
	bgAttribShiftLo  uint16
	bgAttribShiftHi  uint16

	ntLatch     uint8
	atLatch     uint8
	bgLowLatch  uint8
	bgHighLatch uint8

	// Rendering
	PaletteManager *PaletteManager

	// readBuffer backs the one-read-delay semantics of $2007 reads below
	// the palette range.
	readBuffer uint8

	// a12Level is the last A12 line state reported to the cartridge, so
	// NotifyA12 is only called on an actual transition.
	a12Level bool

	// openBus holds the last value driven onto the PPU's external data bus
	// by a register write or a register read that returns real data; it
	// backs the undriven low bits PPUSTATUS reads return (spec.md §4.3).
	openBus uint8

	// vblankArmed is set the instant Tick sets the VBlank flag and NMI is
	// enabled, and consumed by the driver one instruction boundary later
	// (pkg/nes.System.tickPeripherals), after that next instruction's own
	// PPUSTATUS read (if any) has had a chance to race it. A read landing
	// on the exact (241,1) dot clears it, suppressing the NMI for the
	// frame along with the flag (spec.md §4.3 VBlank race).
	vblankArmed bool

	Memory    *memory.Memory
	Cartridge Cartridge
}

// PPUCTRL flags
const (
	PPUCTRLNameTable   = 0x03 // Base nametable address
	PPUCTRLIncrement   = 0x04 // VRAM address increment
	PPUCTRLSpriteTable = 0x08 // Sprite pattern table address
	PPUCTRLBGTable     = 0x10 // Background pattern table address
	PPUCTRLSpriteSize  = 0x20 // Sprite size
	PPUCTRLMasterSlave = 0x40 // PPU master/slave select
	PPUCTRLNMIEnable   = 0x80 // Generate NMI at VBlank
)

// PPUMASK flags
const (
	PPUMASKGreyscale      = 0x01 // Greyscale
	PPUMASKBGLeft         = 0x02 // Show background in leftmost 8 pixels
	PPUMASKSpriteLeft     = 0x04 // Show sprites in leftmost 8 pixels
	PPUMASKBGShow         = 0x08 // Show background
	PPUMASKSpriteShow     = 0x10 // Show sprites
	PPUMASKRedEmphasize   = 0x20 // Emphasize red
	PPUMASKGreenEmphasize = 0x40 // Emphasize green
	PPUMASKBlueEmphasize  = 0x80 // Emphasize blue
)

// PPUSTATUS flags
const (
	PPUSTATUSOverflow   = 0x20 // Sprite overflow
	PPUSTATUSSprite0Hit = 0x40 // Sprite 0 hit
	PPUSTATUSVBlank     = 0x80 // VBlank flag
)

// New creates a new PPU instance.
func New(mem *memory.Memory) *PPU {
	return &PPU{
		Memory:         mem,
		PaletteManager: NewPaletteManager(),
	}
}

// SetCartridge wires the active cartridge into the PPU.
func (p *PPU) SetCartridge(cart Cartridge) { p.Cartridge = cart }

// Reset restores power-on-adjacent PPU state. Nametable RAM and OAM are
// left as-is, matching real hardware (neither is cleared by /RESET).
func (p *PPU) Reset() {
	p.PPUCTRL = 0
	p.PPUMASK = 0
	p.PPUSTATUS = 0
	p.v = 0
	p.t = 0
	p.x = 0
	p.w = 0
	p.Cycle = 0
	p.Scanline = 0
	p.FrameComplete = false
}

func (p *PPU) renderingEnabled() bool {
	return p.PPUMASK&(PPUMASKBGShow|PPUMASKSpriteShow) != 0
}

// Tick advances the PPU by one dot. A VBlank-triggered NMI is not delivered
// synchronously: it arms vblankArmed, which the driver consumes one
// instruction boundary later via ConsumeArmedNMI, after giving that next
// instruction's own PPUSTATUS read a chance to hit the VBlank race and
// cancel it (spec.md §4.3, §9(b)).
func (p *PPU) Tick() {
	p.PaletteManager.SetEmphasis(p.PPUMASK & 0xE0)

	visibleOrPrerender := p.Scanline == -1 || (p.Scanline >= 0 && p.Scanline < 240)
	if visibleOrPrerender && p.renderingEnabled() {
		p.renderDot()
	}
	if p.Scanline >= 0 && p.Scanline < 240 && p.Cycle >= 0 && p.Cycle < 256 {
		p.outputPixel()
	}

	if p.Scanline == 241 && p.Cycle == 1 {
		p.PPUSTATUS |= PPUSTATUSVBlank
		if p.PPUCTRL&PPUCTRLNMIEnable != 0 {
			p.vblankArmed = true
			logger.LogPPU("frame %d: VBlank, NMI armed", p.Frame)
		}
	}

	if p.Scanline == -1 && p.Cycle == 1 {
		p.PPUSTATUS &^= PPUSTATUSVBlank
		p.PPUSTATUS &^= PPUSTATUSSprite0Hit
		p.PPUSTATUS &^= PPUSTATUSOverflow
	}

	p.Cycle++

	// Odd-frame dot skip: the pre-render line's last dot is skipped on odd
	// frames when rendering is enabled, shortening that frame by one dot.
	if p.Scanline == -1 && p.Cycle == 340 && p.oddFrame && p.renderingEnabled() {
		p.Cycle = 341
	}

	if p.Cycle >= 341 {
		p.Cycle = 0
		p.Scanline++
		if p.Scanline >= 261 {
			p.Scanline = -1
			p.FrameComplete = true
			p.Frame++
			p.oddFrame = !p.oddFrame
		}
	}
}

// ConsumeArmedNMI reports whether a VBlank NMI armed by a previous Tick call
// is still pending delivery, clearing the arm either way. The driver calls
// this once per instruction boundary, after that instruction's own register
// reads (if any) have already run.
func (p *PPU) ConsumeArmedNMI() bool {
	armed := p.vblankArmed
	p.vblankArmed = false
	return armed
}

// renderDot drives the background fetch pipeline, sprite evaluation, and
// loopy scroll-register updates for the current dot. Only called on
// visible and pre-render scanlines while rendering is enabled.
func (p *PPU) renderDot() {
	fetchCycle := (p.Cycle >= 1 && p.Cycle <= 256) || (p.Cycle >= 321 && p.Cycle <= 336)

	if fetchCycle {
		p.shiftBackgroundRegisters()
		p.fetchStep()
	}

	switch p.Cycle {
	case 256:
		p.incrementY()
	case 257:
		// Copy horizontal scroll bits from t to v.
		p.v = (p.v & 0xFBE0) | (p.t & 0x041F)
		p.evaluateSprites(p.nextScanline())
	case 328, 336:
		// Dummy fetches at the end of the scanline also reload the
		// shift registers so dot 0 of the next scanline has valid data.
	}

	if p.Scanline == -1 && p.Cycle >= 280 && p.Cycle <= 304 {
		// Copy vertical scroll bits from t to v, once per dot across the
		// whole window (idempotent, matches real hardware's repeated copy).
		p.v = (p.v & 0x841F) | (p.t & 0x7BE0)
	}

	if p.Cycle == 338 || p.Cycle == 340 {
		// Two unused nametable byte fetches MMC3-style mappers still see
		// on the address bus; real hardware performs them, some boards'
		// IRQ counters depend on the resulting A12 pulses.
		p.fetchNametableByte()
	}
}

func (p *PPU) nextScanline() int {
	if p.Scanline == -1 {
		return 0
	}
	return p.Scanline + 1
}

// fetchStep dispatches the 8-dot fetch cycle: nametable byte, attribute
// byte, pattern low, pattern high, with the shift registers reloaded at the
// group boundary.
func (p *PPU) fetchStep() {
	switch p.Cycle % 8 {
	case 1:
		p.reloadShiftRegisters()
		p.fetchNametableByte()
	case 3:
		p.fetchAttributeByte()
	case 5:
		p.fetchPatternLowByte()
	case 7:
		p.fetchPatternHighByte()
	case 0:
		p.incrementCoarseX()
	}
}

func (p *PPU) fetchNametableByte() {
	addr := 0x2000 | (p.v & 0x0FFF)
	p.ntLatch = p.readVRAM(addr)
}

func (p *PPU) fetchAttributeByte() {
	addr := 0x23C0 | (p.v & 0x0C00) | ((p.v >> 4) & 0x38) | ((p.v >> 2) & 0x07)
	attrByte := p.readVRAM(addr)
	shift := ((p.v >> 4) & 0x04) | (p.v & 0x02)
	p.atLatch = (attrByte >> shift) & 0x03
}

func (p *PPU) bgPatternTableBase() uint16 {
	if p.PPUCTRL&PPUCTRLBGTable != 0 {
		return 0x1000
	}
	return 0x0000
}

func (p *PPU) fetchPatternLowByte() {
	fineY := (p.v >> 12) & 0x07
	addr := p.bgPatternTableBase() + uint16(p.ntLatch)*16 + fineY
	p.bgLowLatch = p.readPatternByte(addr)
}

func (p *PPU) fetchPatternHighByte() {
	fineY := (p.v >> 12) & 0x07
	addr := p.bgPatternTableBase() + uint16(p.ntLatch)*16 + fineY + 8
	p.bgHighLatch = p.readPatternByte(addr)
}

// readPatternByte reads a CHR byte and notifies the cartridge of the
// resulting PPU address bus A12 level, for MMC3-style IRQ counters.
func (p *PPU) readPatternByte(addr uint16) uint8 {
	p.notifyA12(addr)
	if p.Cartridge != nil {
		return p.Cartridge.ReadCHR(addr & 0x1FFF)
	}
	return 0
}

func (p *PPU) notifyA12(addr uint16) {
	if p.Cartridge == nil {
		return
	}
	level := addr&0x1000 != 0
	if level != p.a12Level {
		p.a12Level = level
		p.Cartridge.NotifyA12(level)
	}
}

// reloadShiftRegisters loads the latched tile byte into the low 8 bits of
// the pattern shift registers and spreads the latched 2-bit attribute
// across the low 8 bits of the attribute shift registers.
func (p *PPU) reloadShiftRegisters() {
	p.bgPatternShiftLo = (p.bgPatternShiftLo & 0xFF00) | uint16(p.bgLowLatch)
	p.bgPatternShiftHi = (p.bgPatternShiftHi & 0xFF00) | uint16(p.bgHighLatch)

	var attrLo, attrHi uint16
	if p.atLatch&0x01 != 0 {
		attrLo = 0xFF
	}
	if p.atLatch&0x02 != 0 {
		attrHi = 0xFF
	}
	p.bgAttribShiftLo = (p.bgAttribShiftLo & 0xFF00) | attrLo
	p.bgAttribShiftHi = (p.bgAttribShiftHi & 0xFF00) | attrHi
}

func (p *PPU) shiftBackgroundRegisters() {
	p.bgPatternShiftLo <<= 1
	p.bgPatternShiftHi <<= 1
	p.bgAttribShiftLo <<= 1
	p.bgAttribShiftHi <<= 1
}

// incrementCoarseX implements the loopy coarse-X increment with nametable
// wraparound (spec.md §4.3).
func (p *PPU) incrementCoarseX() {
	if p.v&0x001F == 31 {
		p.v &^= 0x001F
		p.v ^= 0x0400
	} else {
		p.v++
	}
}

// incrementY implements the loopy fine-Y/coarse-Y increment, including the
// attribute-table row wraparound at row 29 (not 31 — rows 30/31 belong to
// the attribute table in some games' layouts, and the hardware special-
// cases that wrap).
func (p *PPU) incrementY() {
	if p.v&0x7000 != 0x7000 {
		p.v += 0x1000
		return
	}
	p.v &^= 0x7000
	coarseY := (p.v >> 5) & 0x1F
	switch coarseY {
	case 29:
		coarseY = 0
		p.v ^= 0x0800
	case 31:
		coarseY = 0
	default:
		coarseY++
	}
	p.v = (p.v &^ 0x03E0) | (coarseY << 5)
}

// ReadRegister reads from PPU register $2000-$2007 (mirrored every 8 bytes
// by the bus before calling in).
func (p *PPU) ReadRegister(addr uint16) uint8 {
	switch addr {
	case 0x2002: // PPUSTATUS
		if p.Scanline == 241 && p.Cycle == 1 {
			// Reading PPUSTATUS on the exact dot VBlank is set races the
			// latch: suppress the flag this read observes and cancel the
			// NMI armed for it (spec.md §4.3 VBlank race).
			p.PPUSTATUS &^= PPUSTATUSVBlank
			p.vblankArmed = false
		}
		value := (p.PPUSTATUS & 0xE0) | (p.openBus & 0x1F)
		p.PPUSTATUS &^= PPUSTATUSVBlank
		p.w = 0
		p.openBus = value
		return value
	case 0x2004: // OAMDATA
		value := p.OAM[p.OAMADDR]
		p.openBus = value
		return value
	case 0x2007: // PPUDATA
		var value uint8
		if p.v >= 0x3F00 {
			value = p.readVRAM(p.v)
			p.readBuffer = p.readVRAM(p.v - 0x1000)
		} else {
			value = p.readBuffer
			p.readBuffer = p.readVRAM(p.v)
		}
		p.incrementVRAMAddress()
		p.openBus = value
		return value
	}
	return p.openBus
}

// WriteRegister writes to PPU register $2000-$2007.
func (p *PPU) WriteRegister(addr uint16, value uint8) {
	p.openBus = value
	switch addr {
	case 0x2000: // PPUCTRL
		p.PPUCTRL = value
		p.t = (p.t & 0xF3FF) | ((uint16(value) & 0x03) << 10)
	case 0x2001: // PPUMASK
		p.PPUMASK = value
	case 0x2003: // OAMADDR
		p.OAMADDR = value
	case 0x2004: // OAMDATA
		p.OAM[p.OAMADDR] = value
		p.OAMADDR++
	case 0x2005: // PPUSCROLL
		if p.w == 0 {
			p.t = (p.t & 0xFFE0) | (uint16(value) >> 3)
			p.x = value & 0x07
			p.w = 1
		} else {
			p.t = (p.t & 0x8FFF) | ((uint16(value) & 0x07) << 12)
			p.t = (p.t & 0xFC1F) | ((uint16(value) & 0xF8) << 2)
			p.w = 0
		}
	case 0x2006: // PPUADDR
		if p.w == 0 {
			p.t = (p.t & 0x80FF) | ((uint16(value) & 0x3F) << 8)
			p.w = 1
		} else {
			p.t = (p.t & 0xFF00) | uint16(value)
			p.v = p.t
			p.w = 0
		}
	case 0x2007: // PPUDATA
		p.writeVRAM(p.v, value)
		p.incrementVRAMAddress()
	}
}

func (p *PPU) incrementVRAMAddress() {
	if p.PPUCTRL&PPUCTRLIncrement != 0 {
		p.v += 32
	} else {
		p.v++
	}
}

// WriteOAMDMAByte writes one byte during an OAM DMA transfer, exactly as
// an OAMDATA register write would (spec.md §4.1).
func (p *PPU) WriteOAMDMAByte(value uint8) {
	p.OAM[p.OAMADDR] = value
	p.OAMADDR++
}

// readVRAM reads from the PPU's $0000-$3FFF address space.
func (p *PPU) readVRAM(addr uint16) uint8 {
	addr %= 0x4000
	switch {
	case addr < 0x2000:
		return p.readPatternByte(addr)
	case addr < 0x3F00:
		return p.nameTables[p.mirrorNameTableOffset(addr)]
	default:
		return p.PaletteManager.ReadPalette(uint8(addr & 0x1F))
	}
}

// writeVRAM writes to the PPU's $0000-$3FFF address space.
func (p *PPU) writeVRAM(addr uint16, value uint8) {
	addr %= 0x4000
	switch {
	case addr < 0x2000:
		p.notifyA12(addr)
		if p.Cartridge != nil {
			p.Cartridge.WriteCHR(addr&0x1FFF, value)
		}
	case addr < 0x3F00:
		p.nameTables[p.mirrorNameTableOffset(addr)] = value
	default:
		p.PaletteManager.WritePalette(uint8(addr&0x1F), value)
	}
}

// mirrorNameTableOffset maps a $2000-$2FFF nametable address onto the
// PPU's 2KB of physical nametable RAM according to the cartridge's
// mirroring mode.
func (p *PPU) mirrorNameTableOffset(addr uint16) uint16 {
	offset := (addr - 0x2000) % 0x1000

	mode := mapper.MirrorHorizontal
	if p.Cartridge != nil {
		mode = p.Cartridge.Mirroring()
	}

	table := offset / 0x400
	cell := offset % 0x400

	var physicalTable uint16
	switch mode {
	case mapper.MirrorVertical:
		physicalTable = uint16(table) % 2
	case mapper.MirrorHorizontal:
		physicalTable = uint16(table) / 2
	case mapper.MirrorSingleScreenLow:
		physicalTable = 0
	case mapper.MirrorSingleScreenHigh:
		physicalTable = 1
	case mapper.MirrorFourScreen:
		// Four-screen carts supply their own extra nametable RAM on the
		// cartridge; this core has none to bank in, so all four logical
		// tables collapse onto the PPU's 2KB (a documented simplification:
		// no mapper variant 0-4 in scope actually wires four-screen VRAM).
		physicalTable = uint16(table) % 2
	}

	return physicalTable*0x400 + cell
}

// GetFramebuffer returns the current framebuffer as RGBA bytes.
func (p *PPU) GetFramebuffer() []uint8 {
	rgba := make([]uint8, 256*240*4)
	for i, pixel := range p.FrameBuffer {
		r := uint8((pixel >> 16) & 0xFF)
		g := uint8((pixel >> 8) & 0xFF)
		b := uint8(pixel & 0xFF)
		a := uint8((pixel >> 24) & 0xFF)
		rgba[i*4+0] = r
		rgba[i*4+1] = g
		rgba[i*4+2] = b
		rgba[i*4+3] = a
	}
	return rgba
}

// IsMapperIRQPending returns whether the mapper has an IRQ pending.
func (p *PPU) IsMapperIRQPending() bool {
	if p.Cartridge != nil {
		return p.Cartridge.IsIRQPending()
	}
	return false
}

// ClearMapperIRQ clears the mapper's pending IRQ.
func (p *PPU) ClearMapperIRQ() {
	if p.Cartridge != nil {
		p.Cartridge.ClearIRQ()
	}
}

// SaveState writes every register, latch, and timing counter needed to
// resume rendering mid-scanline.
func (p *PPU) SaveState(w *savestate.Writer) {
	w.WriteUint8(p.PPUCTRL)
	w.WriteUint8(p.PPUMASK)
	w.WriteUint8(p.PPUSTATUS)
	w.WriteUint8(p.OAMADDR)
	w.WriteUint16(p.v)
	w.WriteUint16(p.t)
	w.WriteUint8(p.x)
	w.WriteUint8(p.w)
	w.WriteBytes(p.nameTables[:])
	w.WriteBytes(p.OAM[:])
	for _, px := range p.FrameBuffer {
		w.WriteUint32(px)
	}
	w.WriteUint32(uint32(p.Cycle))
	w.WriteUint32(uint32(p.Scanline + 1)) // +1: Scanline runs from -1
	w.WriteUint64(p.Frame)
	w.WriteBool(p.FrameComplete)
	w.WriteBool(p.oddFrame)
	w.WriteUint16(p.bgPatternShiftLo)
	w.WriteUint16(p.bgPatternShiftHi)
	w.WriteUint16(p.bgAttribShiftLo)
	w.WriteUint16(p.bgAttribShiftHi)
	w.WriteUint8(p.ntLatch)
	w.WriteUint8(p.atLatch)
	w.WriteUint8(p.bgLowLatch)
	w.WriteUint8(p.bgHighLatch)
	w.WriteUint8(p.readBuffer)
	w.WriteBool(p.a12Level)
}

// LoadState restores everything SaveState wrote. PaletteManager, Memory, and
// Cartridge are left untouched; they're wired once at startup, not snapshot.
func (p *PPU) LoadState(r *savestate.Reader) error {
	p.PPUCTRL = r.ReadUint8()
	p.PPUMASK = r.ReadUint8()
	p.PPUSTATUS = r.ReadUint8()
	p.OAMADDR = r.ReadUint8()
	p.v = r.ReadUint16()
	p.t = r.ReadUint16()
	p.x = r.ReadUint8()
	p.w = r.ReadUint8()
	copy(p.nameTables[:], r.ReadBytes(len(p.nameTables)))
	copy(p.OAM[:], r.ReadBytes(len(p.OAM)))
	for i := range p.FrameBuffer {
		p.FrameBuffer[i] = r.ReadUint32()
	}
	p.Cycle = int(r.ReadUint32())
	p.Scanline = int(r.ReadUint32()) - 1
	p.Frame = r.ReadUint64()
	p.FrameComplete = r.ReadBool()
	p.oddFrame = r.ReadBool()
	p.bgPatternShiftLo = r.ReadUint16()
	p.bgPatternShiftHi = r.ReadUint16()
	p.bgAttribShiftLo = r.ReadUint16()
	p.bgAttribShiftHi = r.ReadUint16()
	p.ntLatch = r.ReadUint8()
	p.atLatch = r.ReadUint8()
	p.bgLowLatch = r.ReadUint8()
	p.bgHighLatch = r.ReadUint8()
	p.readBuffer = r.ReadUint8()
	p.a12Level = r.ReadBool()
	p.secondaryOAM = p.secondaryOAM[:0]
	return r.Err()
}

