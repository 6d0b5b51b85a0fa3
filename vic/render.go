package vic

import "math/bits"

// Visible frame geometry. Real hardware blanks most of a PAL field;
// this is the commonly used 384x272 visible window most C64 emulators
// expose to their frontend, large enough to show the full border.
const (
	FrameWidth  = 384
	FrameHeight = 272

	textAreaWidth  = 320
	textAreaHeight = 200
	borderLeft     = (FrameWidth - textAreaWidth) / 2
	borderTop      = (FrameHeight - textAreaHeight) / 2
)

// renderLine resolves one full raster line of pixels into the video
// output, in this order: border color fill, then (if inside the
// display window and the border unit is open) text/bitmap graphics,
// then sprites composited per priority, updating the collision
// registers as overlaps are found.
func (c *Chip) renderLine() {
	y := c.rasterY
	if y >= FrameHeight {
		return
	}

	row := make([]uint8, FrameWidth)
	for i := range row {
		row[i] = c.regs[regBorder]
	}

	inVertical := y >= borderTop && y < borderTop+textAreaHeight
	if c.displayOn && inVertical {
		c.renderGraphicsRow(row, y-borderTop)
	}

	spriteRow := make([]uint8, FrameWidth)
	spritePresent := make([]bool, FrameWidth)
	spriteIdx := make([]int, FrameWidth)
	spriteMask := make([]uint8, FrameWidth)
	for n := 7; n >= 0; n-- {
		if !c.spriteActiveThisLine(n) {
			continue
		}
		c.renderSpriteRow(n, y, spriteRow, spritePresent, spriteIdx, spriteMask)
	}

	spriteSprCollision := uint8(0)
	for x := 0; x < FrameWidth; x++ {
		if bits.OnesCount8(spriteMask[x]) >= 2 {
			spriteSprCollision |= spriteMask[x]
		}
	}
	if spriteSprCollision != 0 {
		c.regs[regSprSpr] |= spriteSprCollision
		c.raiseIrq(irqSpriteSpr)
	}

	for x := 0; x < FrameWidth; x++ {
		if spritePresent[x] {
			bgHere := row[x] != c.regs[regBorder] || (x >= borderLeft && x < borderLeft+textAreaWidth && inVertical)
			if bgHere {
				c.regs[regSprData] |= 1 << uint(spriteIdx[x])
				c.raiseIrq(irqSpriteData)
			}
			if c.spritePriority(spriteIdx[x]) && bgHere {
				continue // Sprite drawn behind foreground graphics.
			}
			row[x] = spriteRow[x]
		}
	}

	for x, idx := range row {
		c.video.Write(y*FrameWidth+x, idx)
	}
}

func (c *Chip) renderGraphicsRow(row []uint8, textY int) {
	charRow := textY / 8
	if charRow >= 25 {
		return
	}
	rowInChar := uint8(textY % 8)
	base := c.charsetBase()
	bmBase := c.bitmapBase()

	for col := 0; col < 40; col++ {
		x0 := borderLeft + col*8
		code := c.vmRow[col]
		color := c.vcRow[col] & 0x0f

		var bits uint8
		var fg, bgColor uint8
		switch {
		case c.bmm() && c.mcm():
			addr := bmBase + uint16(code)*8 + uint16(rowInChar)
			bits = c.mem.Read(addr)
			fg = (code >> 4) & 0x0f
			bgColor = code & 0x0f
			c.plotMulticolor(row, x0, bits, []uint8{c.regs[regBg0], fg, bgColor, color})
			continue
		case c.bmm():
			addr := bmBase + uint16(code)*8 + uint16(rowInChar)
			bits = c.mem.Read(addr)
			fg = (code >> 4) & 0x0f
			bgColor = code & 0x0f
			c.plotHires(row, x0, bits, bgColor, fg)
			continue
		case c.ecm():
			addr := base + uint16(code&0x3f)*8 + uint16(rowInChar)
			bits = c.mem.Read(addr)
			bg := c.regs[regBg0+(code>>6)]
			c.plotHires(row, x0, bits, bg, color)
			continue
		case c.mcm() && color&0x8 != 0:
			addr := base + uint16(code)*8 + uint16(rowInChar)
			bits = c.mem.Read(addr)
			c.plotMulticolor(row, x0, bits, []uint8{c.regs[regBg0], c.regs[regBg1], c.regs[regBg2], color & 0x7})
			continue
		default:
			addr := base + uint16(code)*8 + uint16(rowInChar)
			bits = c.mem.Read(addr)
			c.plotHires(row, x0, bits, c.regs[regBg0], color)
		}
	}
}

func (c *Chip) plotHires(row []uint8, x0 int, bits uint8, bg, fg uint8) {
	for b := 0; b < 8; b++ {
		x := x0 + b
		if x < 0 || x >= FrameWidth {
			continue
		}
		if bits&(0x80>>uint(b)) != 0 {
			row[x] = fg
		} else {
			row[x] = bg
		}
	}
}

func (c *Chip) plotMulticolor(row []uint8, x0 int, bits uint8, colors []uint8) {
	for pair := 0; pair < 4; pair++ {
		idx := (bits >> uint((3-pair)*2)) & 0x3
		col := colors[idx]
		for b := 0; b < 2; b++ {
			x := x0 + pair*2 + b
			if x < 0 || x >= FrameWidth {
				continue
			}
			row[x] = col
		}
	}
}

func (c *Chip) renderSpriteRow(n, y int, spriteRow []uint8, present []bool, idx []int, mask []uint8) {
	lineInSprite := int(uint8(y) - c.spriteY(n))
	if c.spriteYExpand(n) {
		lineInSprite /= 2
	}
	if lineInSprite < 0 || lineInSprite >= 21 {
		return
	}
	var base uint16
	if c.bankOffset != nil {
		base = c.bankOffset()
	}
	c.sprites[n].mc = uint8(lineInSprite * 3)
	data := c.spriteRow(n, base)
	mc := c.spriteMulticolor(n)
	colors := []uint8{c.regs[regSprMC0], c.regs[regSprColor+n], c.regs[regSprMC1]}

	x0 := borderLeft - textAreaWidth/2 + int(c.spriteX(n))
	widthScale := 1
	if c.spriteXExpand(n) {
		widthScale = 2
	}
	bits := uint32(data[0])<<16 | uint32(data[1])<<8 | uint32(data[2])

	if mc {
		for pair := 0; pair < 12; pair++ {
			px := (bits >> uint((11-pair)*2)) & 0x3
			if px == 0 {
				continue
			}
			col := colors[px-1]
			for b := 0; b < 2*widthScale; b++ {
				x := x0 + (pair*2)*widthScale + b
				markSpritePixel(x, n, col, spriteRow, present, idx, mask)
			}
		}
	} else {
		for b := 0; b < 24; b++ {
			if bits&(1<<uint(23-b)) == 0 {
				continue
			}
			for e := 0; e < widthScale; e++ {
				x := x0 + b*widthScale + e
				markSpritePixel(x, n, colors[1], spriteRow, present, idx, mask)
			}
		}
	}
}

func markSpritePixel(x, n int, col uint8, spriteRow []uint8, present []bool, idx []int, mask []uint8) {
	if x < 0 || x >= FrameWidth {
		return
	}
	mask[x] |= 1 << uint(n)
	spriteRow[x] = col
	present[x] = true
	idx[x] = n
}
