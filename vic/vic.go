// Package vic emulates the MOS 6567/6569 VIC-II video chip: the raster
// scan, bad-line DMA stalls, the 8 sprite sequencers, and the border
// and graphics mux that produces the indexed-color frame buffer.
package vic

import (
	"fmt"

	"github.com/go6510/c64/chipset"
)

// Mode selects the video standard, which fixes the raster geometry.
type Mode int

const (
	PAL Mode = iota
	NTSC
)

const (
	palCyclesPerLine  = 63
	palLinesPerFrame  = 312
	ntscCyclesPerLine = 65
	ntscLinesPerFrame = 263

	firstBadLine = 0x30
	lastBadLine  = 0xf7
	line48       = 0x30
)

// Memory is VIC-II's own 16K address window, already relative to the
// bank selected by CIA2 port A (the façade is responsible for offsetting
// into the full 64K RAM/character ROM chain before handing reads here).
type Memory interface {
	Read(addr uint16) uint8
}

// ColorRAM is the 1K x 4 bit color RAM, addressed 0-1023 regardless of
// VIC bank.
type ColorRAM interface {
	Read(addr uint16) uint8
}

// VideoOutput receives one frame's worth of palette-index pixels plus
// the vsync handoff signal, per the external collaborator contract
// (iface.VideoOutput satisfies this without either package importing
// the other).
type VideoOutput interface {
	GetDimension() (width, height int)
	SetSync(bool)
	Write(index int, colorIndex uint8)
}

// ChipDef configures a Chip instance.
type ChipDef struct {
	Mode       Mode
	Memory     Memory
	ColorRAM   ColorRAM
	Irq        *chipset.IrqLine
	BA         *chipset.Pin
	Video      VideoOutput
	BankOffset func() uint16 // Resolved from CIA2 PRA bits 0-1 each call.
	Debug      bool
}

// Chip is one VIC-II instance.
type Chip struct {
	mode          Mode
	cyclesPerLine int
	linesPerFrame int

	mem        Memory
	cram       ColorRAM
	irqLine    *chipset.IrqLine
	ba         *chipset.Pin
	video      VideoOutput
	bankOffset func() uint16

	regs [numRegs]uint8
	irr  uint8

	cycle         int
	rasterY       int
	rasterCompare uint16

	displayOn bool
	badLine   bool

	vc     uint16
	vcbase uint16
	rc     uint8
	vmRow  [40]uint8
	vcRow  [40]uint8

	sprites [8]spriteSeq

	debug     bool
	lastDebug string
}

// Init builds a VIC-II chip in its power-on state.
func Init(def *ChipDef) (*Chip, error) {
	if def.Memory == nil || def.ColorRAM == nil || def.Irq == nil || def.Video == nil {
		return nil, fmt.Errorf("vic: Memory, ColorRAM, Irq and Video are required")
	}
	c := &Chip{
		mode:       def.Mode,
		mem:        def.Memory,
		cram:       def.ColorRAM,
		irqLine:    def.Irq,
		ba:         def.BA,
		video:      def.Video,
		bankOffset: def.BankOffset,
		debug:      def.Debug,
	}
	if c.mode == PAL {
		c.cyclesPerLine = palCyclesPerLine
		c.linesPerFrame = palLinesPerFrame
	} else {
		c.cyclesPerLine = ntscCyclesPerLine
		c.linesPerFrame = ntscLinesPerFrame
	}
	c.PowerOn()
	return c, nil
}

// PowerOn resets the chip to its power-up state.
func (c *Chip) PowerOn() {
	c.Reset()
}

// Reset clears raster position and register state.
func (c *Chip) Reset() {
	c.regs = [numRegs]uint8{}
	c.irr = 0
	c.cycle = 1
	c.rasterY = 0
	c.rasterCompare = 0
	c.displayOn = false
	c.vc, c.vcbase, c.rc = 0, 0, 0
	for i := range c.sprites {
		c.sprites[i] = spriteSeq{}
	}
	if c.ba != nil {
		c.ba.Set(true)
	}
	c.irqLine.Set("vic", false)
}

// Read implements a CPU-side register read, mirrored every 64 bytes.
func (c *Chip) Read(addr uint16) uint8 { return c.regRead(addr) }

// Write implements a CPU-side register write, mirrored every 64 bytes.
func (c *Chip) Write(addr uint16, val uint8) { c.regWrite(addr, val) }

// Debug returns a short trace line when def.Debug was set, else "".
func (c *Chip) Debug() string { return c.lastDebug }

// Tick advances the raster engine by one system cycle: it updates the
// bad-line/BA state for this cycle, performs the fixed-position raster
// compare check, and - at the last cycle of a line - resolves that
// line's full pixel output (graphics, sprites, border) into the frame
// buffer. Rendering a whole line at once instead of pixel-by-pixel is
// a deliberate simplification; the raster/BA/bad-line timing that
// programs actually synchronize against is still cycle accurate.
func (c *Chip) Tick() {
	c.checkRasterCompare()

	if c.cycle == 1 && c.rasterY == 0 {
		c.displayOn = false
	}
	if c.cycle == 1 && c.rasterY == line48 && c.denBit() {
		c.displayOn = true
	}

	c.badLine = c.displayOn && c.rasterY >= firstBadLine && c.rasterY <= lastBadLine && (c.rasterY&7) == int(c.yscroll())

	if c.ba != nil {
		switch {
		case c.badLine && c.cycle >= 12 && c.cycle <= 54:
			c.ba.Set(false)
		case c.spriteDMAStall(c.cycle):
			c.ba.Set(false)
		default:
			c.ba.Set(true)
		}
	}

	if c.badLine && c.cycle == 15 {
		c.fetchVideoMatrixRow()
	}

	if c.cycle == c.cyclesPerLine {
		c.renderLine()
		c.advanceRowCounters()
		c.rasterY++
		c.cycle = 0
		if c.rasterY >= c.linesPerFrame {
			c.rasterY = 0
			c.vc, c.vcbase, c.rc = 0, 0, 0
			c.video.SetSync(true)
		}
	}
	c.cycle++

	if c.debug {
		c.lastDebug = fmt.Sprintf("cycle=%d raster=%d bad=%v ba=%v", c.cycle, c.rasterY, c.badLine, c.ba.Get())
	}
}

// TickDone satisfies the common chip lifecycle used by the façade's
// cooperative scheduling loop.
func (c *Chip) TickDone() {}

func (c *Chip) checkRasterCompare() {
	atCompareCycle := (c.cycle == 1 && c.rasterY != 0) || (c.cycle == 2 && c.rasterY == 0)
	if atCompareCycle && uint16(c.rasterY) == c.rasterCompare {
		c.raiseIrq(irqRaster)
	}
}

func (c *Chip) fetchVideoMatrixRow() {
	base := c.videoMatrixBase()
	for i := 0; i < 40; i++ {
		c.vmRow[i] = c.mem.Read(base + c.vc + uint16(i))
		c.vcRow[i] = c.cram.Read(c.vc + uint16(i))
	}
}

func (c *Chip) advanceRowCounters() {
	if !c.displayOn {
		return
	}
	if c.badLine {
		c.vc = c.vcbase
	}
	if c.rasterY >= firstBadLine && c.rasterY <= lastBadLine {
		c.rc++
		if c.rc > 7 {
			c.rc = 0
			c.vcbase = c.vc + 40
			c.vc += 40
		} else if c.badLine {
			c.vc += 40
		}
	}
}

func (c *Chip) videoMatrixBase() uint16 {
	var off uint16
	if c.bankOffset != nil {
		off = c.bankOffset()
	}
	return off + (uint16(c.regs[regMemPtrs]&0xf0) << 6)
}

func (c *Chip) charsetBase() uint16 {
	var off uint16
	if c.bankOffset != nil {
		off = c.bankOffset()
	}
	return off + (uint16(c.regs[regMemPtrs]&0x0e) << 10)
}

func (c *Chip) bitmapBase() uint16 {
	var off uint16
	if c.bankOffset != nil {
		off = c.bankOffset()
	}
	return off + (uint16(c.regs[regMemPtrs]&0x08) << 10)
}
