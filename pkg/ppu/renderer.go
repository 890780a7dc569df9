package ppu

// SpriteInfo is a sprite entry copied into secondary OAM during evaluation,
// carrying enough of its OAM fields plus its original index (for sprite-0
// detection) to drive pattern fetch and the pixel multiplexer.
type SpriteInfo struct {
	Y          uint8
	TileIndex  uint8
	Attributes uint8
	X          uint8
	OAMIndex   int
}

// Sprite attribute flags
const (
	SpriteFlipHorizontal = 0x40
	SpriteFlipVertical   = 0x80
	SpritePriority       = 0x20 // 0=front of background, 1=behind background
	SpritePaletteMask    = 0x03
)

// evaluateSprites fills secondaryOAM with up to 8 sprites visible on
// scanline, reproducing the real PPU's buggy overflow-detection scan: once
// 8 in-range sprites have been found, evaluation continues by walking `n`
// and `m` together rather than resetting `m` to the Y-byte offset, so it
// compares attribute/tile/X bytes against the Y range test too.
func (p *PPU) evaluateSprites(scanline int) {
	spriteHeight := 8
	if p.PPUCTRL&PPUCTRLSpriteSize != 0 {
		spriteHeight = 16
	}

	p.secondaryOAM = p.secondaryOAM[:0]
	n := 0
	for n < 64 {
		y := int(p.OAM[n*4])
		if scanline >= y && scanline < y+spriteHeight {
			if len(p.secondaryOAM) < 8 {
				p.secondaryOAM = append(p.secondaryOAM, SpriteInfo{
					Y:          p.OAM[n*4],
					TileIndex:  p.OAM[n*4+1],
					Attributes: p.OAM[n*4+2],
					X:          p.OAM[n*4+3],
					OAMIndex:   n,
				})
			}
		}
		n++
		if len(p.secondaryOAM) >= 8 {
			break
		}
	}

	if len(p.secondaryOAM) >= 8 {
		m := 0
		for n < 64 {
			y := int(p.OAM[n*4+m])
			if scanline >= y && scanline < y+spriteHeight {
				p.PPUSTATUS |= PPUSTATUSOverflow
				break
			}
			m++
			if m == 4 {
				m = 0
			}
			n++
		}
	}
}

// spritePatternAddr computes the CHR address for one row of a sprite,
// handling 8x8/8x16 addressing and vertical flip.
func (p *PPU) spritePatternAddr(s SpriteInfo, row int) uint16 {
	if s.Attributes&SpriteFlipVertical != 0 {
		height := 8
		if p.PPUCTRL&PPUCTRLSpriteSize != 0 {
			height = 16
		}
		row = height - 1 - row
	}

	if p.PPUCTRL&PPUCTRLSpriteSize != 0 {
		tile := s.TileIndex &^ 1
		table := uint16(0x0000)
		if s.TileIndex&1 != 0 {
			table = 0x1000
		}
		if row >= 8 {
			tile++
			row -= 8
		}
		return table + uint16(tile)*16 + uint16(row)
	}

	table := uint16(0x0000)
	if p.PPUCTRL&PPUCTRLSpriteTable != 0 {
		table = 0x1000
	}
	return table + uint16(s.TileIndex)*16 + uint16(row)
}

func pixelColorIndex(lo, hi uint8, pixelX int) uint8 {
	bit := 7 - pixelX
	return ((hi >> bit) & 1 << 1) | ((lo >> bit) & 1)
}

// spritePixelAt returns the sprite pixel at screen column x on the current
// scanline from the sprites evaluated for it, in OAM priority order, plus
// whether it is sprite 0 and whether it has background priority.
func (p *PPU) spritePixelAt(x int) (color uint32, opaque bool, priority bool, isSprite0 bool) {
	if p.PPUMASK&PPUMASKSpriteShow == 0 {
		return 0, false, false, false
	}
	if x < 8 && p.PPUMASK&PPUMASKSpriteLeft == 0 {
		return 0, false, false, false
	}

	for _, s := range p.secondaryOAM {
		spriteX := int(s.X)
		if x < spriteX || x >= spriteX+8 {
			continue
		}
		pixelX := x - spriteX
		if s.Attributes&SpriteFlipHorizontal != 0 {
			pixelX = 7 - pixelX
		}
		row := p.Scanline - int(s.Y)
		addr := p.spritePatternAddr(s, row)
		lo := p.readPatternByte(addr)
		hi := p.readPatternByte(addr + 8)
		idx := pixelColorIndex(lo, hi, pixelX)
		if idx == 0 {
			continue
		}
		palette := s.Attributes & SpritePaletteMask
		return p.PaletteManager.GetSpriteColor(palette, idx), true, s.Attributes&SpritePriority == 0, s.OAMIndex == 0
	}
	return 0, false, false, false
}

// backgroundPixelAt returns the background color index and final color for
// screen column x, reading straight from the shift registers.
func (p *PPU) backgroundPixelAt(x int) (idx uint8, color uint32) {
	if p.PPUMASK&PPUMASKBGShow == 0 || (x < 8 && p.PPUMASK&PPUMASKBGLeft == 0) {
		return 0, p.PaletteManager.GetBackgroundColor(0, 0)
	}
	bit := uint16(15 - p.x)
	lo := uint8((p.bgPatternShiftLo >> bit) & 1)
	hi := uint8((p.bgPatternShiftHi >> bit) & 1)
	idx = (hi << 1) | lo
	attrLo := uint8((p.bgAttribShiftLo >> bit) & 1)
	attrHi := uint8((p.bgAttribShiftHi >> bit) & 1)
	palette := (attrHi << 1) | attrLo
	return idx, p.PaletteManager.GetBackgroundColor(palette, idx)
}

// outputPixel composes the background and sprite pixels for the current
// dot and writes the result into FrameBuffer, applying sprite-0-hit and
// background/sprite priority rules (spec.md §4.3).
func (p *PPU) outputPixel() {
	x := p.Cycle
	y := p.Scanline
	index := y*256 + x

	if !p.renderingEnabled() {
		p.FrameBuffer[index] = p.PaletteManager.GetBackgroundColor(0, 0)
		return
	}

	bgIdx, bgColor := p.backgroundPixelAt(x)
	spriteColor, spriteOpaque, spritePriority, isSprite0 := p.spritePixelAt(x)

	final := bgColor
	if spriteOpaque {
		if spritePriority || bgIdx == 0 {
			final = spriteColor
		}
		if isSprite0 && bgIdx != 0 && p.PPUSTATUS&PPUSTATUSSprite0Hit == 0 && x != 255 {
			leftClipped := x < 8 && (p.PPUMASK&(PPUMASKSpriteLeft|PPUMASKBGLeft)) != (PPUMASKSpriteLeft|PPUMASKBGLeft)
			if !leftClipped {
				p.PPUSTATUS |= PPUSTATUSSprite0Hit
			}
		}
	}

	p.FrameBuffer[index] = final
}
