// Package sid emulates only the MOS 6581/8580's register file and
// sample-clocking cadence; the actual waveform DSP synthesis is treated
// as an opaque concern per the spec's scope (an embedder may swap in a
// real synthesizer behind the same register file without touching the
// rest of the chipset).
package sid

import "github.com/go6510/c64/iface"

const numRegs = 0x19

// Chip is one SID instance: a 25-register file plus the cycle-to-sample
// downsampling clock that feeds an external SoundOutput.
type Chip struct {
	regs [numRegs]uint8
	out  iface.SoundOutput

	cyclesPerSample int
	cycleAccum      int
}

// ChipDef configures a Chip instance.
type ChipDef struct {
	Out iface.SoundOutput
	// CyclesPerSample is the CPU-clock-to-sample-rate ratio (e.g. for a
	// ~985248 Hz PAL clock and a 44100 Hz output rate, ~22).
	CyclesPerSample int
}

// Init builds a SID in its power-on state.
func Init(def *ChipDef) *Chip {
	c := &Chip{out: def.Out, cyclesPerSample: def.CyclesPerSample}
	if c.cyclesPerSample <= 0 {
		c.cyclesPerSample = 22
	}
	c.PowerOn()
	return c
}

// PowerOn clears every register.
func (c *Chip) PowerOn() { c.Reset() }

// Reset clears every register.
func (c *Chip) Reset() {
	c.regs = [numRegs]uint8{}
	c.cycleAccum = 0
}

// Read implements a CPU-side register read; only the 4 read-only
// registers (oscillator/envelope outputs at 0x1b/0x1c and the paddle
// registers at 0x19/0x1a) report anything other than the last written
// value, and since there is no waveform synthesis those report 0.
func (c *Chip) Read(addr uint16) uint8 {
	off := addr & 0x1f
	if off >= numRegs || off >= 0x19 {
		return 0
	}
	return c.regs[off]
}

// Write implements a CPU-side register write.
func (c *Chip) Write(addr uint16, val uint8) {
	off := addr & 0x1f
	if off >= numRegs {
		return
	}
	c.regs[off] = val
}

// Tick advances the sample clock by one system cycle, emitting a sample
// to the configured SoundOutput every cyclesPerSample cycles. Absent
// real synthesis this emits silence, but on the cadence real audio
// would need, so a downstream synthesizer can be dropped in without
// touching the scheduler.
func (c *Chip) Tick() {
	c.cycleAccum++
	if c.cycleAccum < c.cyclesPerSample {
		return
	}
	c.cycleAccum = 0
	if c.out != nil {
		c.out.Write(0)
	}
}

// TickDone exists purely so the c64 façade can treat every chip the
// same way in its cooperative scheduling loop.
func (c *Chip) TickDone() {}
