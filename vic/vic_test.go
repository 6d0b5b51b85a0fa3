package vic

import (
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/go6510/c64/chipset"
)

type flatMem struct {
	data [16384]uint8
}

func (m *flatMem) Read(addr uint16) uint8 { return m.data[addr%16384] }

type flatColor struct {
	data [1024]uint8
}

func (m *flatColor) Read(addr uint16) uint8 { return m.data[addr%1024] }

type fakeVideo struct {
	synced bool
	writes int
}

func (v *fakeVideo) GetDimension() (int, int)          { return FrameWidth, FrameHeight }
func (v *fakeVideo) SetSync(s bool)                    { v.synced = s }
func (v *fakeVideo) Write(index int, colorIndex uint8) { v.writes++ }

func setup(t *testing.T) (*Chip, *fakeVideo) {
	t.Helper()
	video := &fakeVideo{}
	c, err := Init(&ChipDef{
		Mode:     PAL,
		Memory:   &flatMem{},
		ColorRAM: &flatColor{},
		Irq:      chipset.NewIrqLine(),
		BA:       chipset.NewPin(true),
		Video:    video,
	})
	if err != nil {
		t.Fatalf("Init: %v", err)
	}
	return c, video
}

func TestRasterAdvancesAndWraps(t *testing.T) {
	c, video := setup(t)
	for i := 0; i < palCyclesPerLine*palLinesPerFrame; i++ {
		c.Tick()
	}
	if !video.synced {
		t.Errorf("expected SetSync(true) once the raster wrapped a full frame\n%s", spew.Sdump(c))
	}
	if c.rasterY != 0 {
		t.Errorf("rasterY = %d, want 0 after wrapping", c.rasterY)
	}
}

func TestRasterCompareFiresIrq(t *testing.T) {
	c, _ := setup(t)
	c.Write(regRaster, 10)
	c.Write(regIMR, irqRaster)
	for i := 0; i < palCyclesPerLine*11; i++ {
		c.Tick()
	}
	if !c.irqLine.Raised() {
		t.Errorf("expected raster IRQ at line 10\n%s", spew.Sdump(c))
	}
}

func TestBadLineAssertsBA(t *testing.T) {
	c, _ := setup(t)
	c.Write(regCR1, 0x1b) // DEN=1, RSEL=1, YSCROLL=3.
	for i := 0; i < palCyclesPerLine*(line48+1); i++ {
		c.Tick()
	}
	// Advance to a line satisfying the bad-line condition with
	// YSCROLL=3: rasterY&7 == 3, inside 0x30..0xf7.
	for c.rasterY&7 != 3 || c.rasterY < firstBadLine {
		c.Tick()
	}
	sawStall := false
	for i := 0; i < c.cyclesPerLine; i++ {
		c.Tick()
		if !c.ba.Get() {
			sawStall = true
		}
	}
	if !sawStall {
		t.Errorf("expected BA to be pulled low during a bad line\n%s", spew.Sdump(c))
	}
}

func TestIRRAckClearsLine(t *testing.T) {
	c, _ := setup(t)
	c.Write(regIMR, irqRaster)
	c.raiseIrq(irqRaster)
	if !c.irqLine.Raised() {
		t.Fatalf("expected IRQ raised before ack")
	}
	c.Write(regIRR, irqRaster)
	if c.irqLine.Raised() {
		t.Errorf("expected IRQ line cleared after acking IRR bit\n%s", spew.Sdump(c))
	}
}

func TestSpriteYCompareUsesLowByteOnly(t *testing.T) {
	c, _ := setup(t)
	c.Write(regSprEn, 0x01)
	c.regs[regSpriteX0+1] = 5 // Sprite 0's Y = 5.
	c.rasterY = 0x105         // Raster past 255; low byte is 5.
	if !c.spriteActiveThisLine(0) {
		t.Errorf("expected sprite 0 active when raster low byte matches Y even past line 255")
	}
}
