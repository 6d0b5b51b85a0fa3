package vic

// spriteSeq holds one sprite's per-frame sequencing state: the data
// pointer fetched from the video matrix, the 3-byte shift data for the
// current line, and the multicolor/expansion data counter (MC/MCBASE)
// the real chip uses to track position within 63 bytes of sprite data.
type spriteSeq struct {
	mc      uint8
	mcbase  uint8
	dma     bool
	expandY bool // Latched y-expansion state, toggled each displayed line.
}

// spritePointer returns sprite n's data pointer (a page number, so the
// actual byte address is ptr*64) from the sprite pointer bytes at the
// end of the video matrix ($3F8-$3FF).
func (c *Chip) spritePointer(n int) uint8 {
	return c.mem.Read(c.videoMatrixBase() + 0x3f8 + uint16(n))
}

func (c *Chip) spriteRow(n int, base uint16) [3]uint8 {
	ptr := uint16(c.spritePointer(n)) * 64
	off := uint16(c.sprites[n].mc)
	return [3]uint8{
		c.mem.Read(base + ptr + off),
		c.mem.Read(base + ptr + off + 1),
		c.mem.Read(base + ptr + off + 2),
	}
}

// spriteActiveThisLine reports whether sprite n occupies the current
// raster line, comparing only the low 8 bits of the raster counter - a
// deliberate correction of the upstream reference implementation, which
// compared against the full 9-bit raster value and so missed sprites
// once the raster passed line 255.
func (c *Chip) spriteActiveThisLine(n int) bool {
	if !c.spriteEnabled(n) {
		return false
	}
	y := uint8(c.rasterY)
	sy := c.spriteY(n)
	height := uint8(21)
	if c.spriteYExpand(n) {
		height = 42
	}
	return y >= sy && y < sy+height
}

// spritePAccessCycle returns the 1-indexed line cycle at which sprite n's
// pointer fetch happens. Sprite 0 fetches 5 cycles before the end of the
// line and each following sprite 2 cycles after the last, wrapping into
// the next line for sprites 3-7.
func (c *Chip) spritePAccessCycle(n int) int {
	return wrapCycle(c.cyclesPerLine-5+2*n, c.cyclesPerLine)
}

// wrapCycle folds a possibly out-of-range cycle number back into the
// 1..cyclesPerLine range.
func wrapCycle(cycle, cyclesPerLine int) int {
	cycle = ((cycle-1)%cyclesPerLine + cyclesPerLine) % cyclesPerLine
	return cycle + 1
}

// spriteNeedsBA reports whether sprite n is within its BA stall window at
// the given cycle: BA goes low 3 cycles before the p-access and stays low
// through the s-access cycle that follows it, so the CPU has time to
// release the bus before the chip steals it.
func (c *Chip) spriteNeedsBA(n, cycle int) bool {
	p := c.spritePAccessCycle(n)
	for d := -3; d <= 1; d++ {
		if wrapCycle(p+d, c.cyclesPerLine) == cycle {
			return true
		}
	}
	return false
}

// spriteDMAStall reports whether any active sprite's DMA window covers
// the given cycle of the current raster line.
func (c *Chip) spriteDMAStall(cycle int) bool {
	for n := 0; n < 8; n++ {
		if c.spriteActiveThisLine(n) && c.spriteNeedsBA(n, cycle) {
			return true
		}
	}
	return false
}
