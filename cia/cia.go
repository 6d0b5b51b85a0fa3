// Package cia emulates the MOS 6526 Complex Interface Adapter. The C64
// carries two of these: CIA1 drives the keyboard/joystick scan and the
// CPU's IRQ line; CIA2 drives the serial bus, user port and the CPU's
// NMI line along with the VIC-II bank select bits on its port A.
package cia

import (
	"fmt"

	"github.com/go6510/c64/chipset"
)

// Mode distinguishes the two CIA instances: it picks the source key
// ("cia1" or "cia2") each one asserts on its IrqLine. Port semantics
// come from the owner's ExternalPortA/ExternalPortB readers.
type Mode int

const (
	Cia1 Mode = iota
	Cia2
)

// Reg enumerates the 16 CIA registers as they appear in the I/O page.
type Reg uint8

const (
	RegPRA Reg = iota
	RegPRB
	RegDDRA
	RegDDRB
	RegTALO
	RegTAHI
	RegTBLO
	RegTBHI
	RegTODTS
	RegTODSEC
	RegTODMIN
	RegTODHR
	RegSDR
	RegICR
	RegCRA
	RegCRB
)

// PortReader lets the CIA's owner (the C64 facade) supply a live
// external input value ANDed into a port read - the keyboard matrix
// scan result for CIA1 port B, a joystick bitmask, or the IEC/user port
// lines for CIA2. It is queried fresh on every register read.
type PortReader func() uint8

// ChipDef configures a Chip instance.
type ChipDef struct {
	Mode Mode
	// PortA/PortB are the shared I/O port state, read externally
	// (the owner reads CIA2 port A's low two bits with Value() to pick
	// the VIC-II bank).
	PortA *chipset.IoPort
	PortB *chipset.IoPort
	// Flag is the CIA FLAG pin (datassette read data / serial SRQ);
	// a falling edge sets ICR bit 4.
	Flag *chipset.Pin
	// Irq is the shared line this CIA asserts (CIA1 -> CPU IRQ line,
	// CIA2 -> CPU NMI line). Each CIA asserts/clears using its own
	// Mode as the source key so the two can share one IrqLine.
	Irq *chipset.IrqLine
	// ExternalPortA/ExternalPortB optionally AND additional live input
	// into a port read (keyboard/joystick scan, IEC lines).
	ExternalPortA PortReader
	ExternalPortB PortReader
	Debug         bool
}

// Chip is one 6526 CIA instance.
type Chip struct {
	mode Mode

	portA *chipset.IoPort
	portB *chipset.IoPort
	flag  *chipset.Pin
	irq   *chipset.IrqLine

	externalA PortReader
	externalB PortReader

	irqCtrl    chipset.IrqControl
	irqDelay   uint8 // shift register: bit0 pending this cycle, bit1 fires IRQ next cycle.
	timerA     timer
	timerB     timer
	todClock   rtc
	todAlarm   rtc
	todSetAlarm bool
	flagPrev   bool

	debug bool
	lastDebug string
}

// Init builds a CIA in its post-reset state.
func Init(def *ChipDef) (*Chip, error) {
	if def.PortA == nil || def.PortB == nil || def.Irq == nil {
		return nil, fmt.Errorf("cia: PortA, PortB and Irq are required")
	}
	c := &Chip{
		mode:      def.Mode,
		portA:     def.PortA,
		portB:     def.PortB,
		flag:      def.Flag,
		irq:       def.Irq,
		externalA: def.ExternalPortA,
		externalB: def.ExternalPortB,
		debug:     def.Debug,
	}
	c.PowerOn()
	return c, nil
}

// PowerOn resets the CIA to power-on defaults.
func (c *Chip) PowerOn() {
	c.Reset()
}

// Reset implements the 6526's RES pin: timers and interrupt state
// clear, latches reset to all ones, ports default to input.
func (c *Chip) Reset() {
	c.irqCtrl = chipset.IrqControl{}
	c.irqDelay = 0
	c.timerA.reset()
	c.timerB.reset()
	c.portA.SetDirection(0)
	c.portB.SetDirection(0)
	c.todSetAlarm = false
	c.todClock.enabled = true
	c.irq.Set(c.sourceKey(), false)
}

func (c *Chip) sourceKey() string {
	if c.mode == Cia1 {
		return "cia1"
	}
	return "cia2"
}

// Tick advances the CIA by one system cycle: timers count, the flag
// pin's falling edge is latched, and the two-cycle IRQ delay shift
// register propagates any newly triggered interrupt onto the shared
// IRQ line.
func (c *Chip) Tick() {
	aUnderflow := c.timerA.clock(false)
	bEvent := aUnderflow
	if c.timerB.source == sourceCNT {
		// No CNT pin transitions are modeled.
		bEvent = false
	}
	bUnderflow := c.timerB.clock(bEvent)

	event := false
	if aUnderflow {
		c.irqCtrl.SetPending(1<<0, true)
		event = true
	}
	if bUnderflow {
		c.irqCtrl.SetPending(1<<1, true)
		event = true
	}
	flagLevel := false
	if c.flag != nil {
		flagLevel = c.flag.Get()
	}
	if c.flagPrev && !flagLevel {
		c.irqCtrl.SetPending(1<<4, true)
		event = true
	}
	c.flagPrev = flagLevel

	if event && c.irqCtrl.Asserted() {
		c.irqDelay |= 0x1
	}
	if c.irqDelay&0x2 != 0 {
		c.irq.Set(c.sourceKey(), true)
	}
	c.irqDelay = (c.irqDelay << 1) & 0x3

	if c.debug {
		c.lastDebug = fmt.Sprintf("TA=%04X TB=%04X ICR=%02X", c.timerA.counter, c.timerB.counter, c.irqCtrl.Mask())
	}
}

// TickDone exists purely so the C64 facade can treat every chip
// (cpu/cia/vic) the same way in its cooperative scheduling loop.
func (c *Chip) TickDone() {}

// Debug returns a short trace line when def.Debug was set, else "".
func (c *Chip) Debug() string {
	return c.lastDebug
}

// ProcessVsync advances the TOD clock one tenth-of-a-second tick and
// fires the alarm interrupt when the running clock matches the alarm
// latch - a real feature of the 6526 that a from-scratch emulator can
// easily skip, but which some programs rely on for a software clock.
func (c *Chip) ProcessVsync() {
	c.todClock.tick()
	if c.todClock.enabled && c.todClock.equalTime(&c.todAlarm) {
		c.irqCtrl.SetPending(1<<2, true)
		if c.irqCtrl.Asserted() {
			c.irqDelay |= 0x1
		}
	}
}

func (c *Chip) readPortA() uint8 {
	v := c.portA.Value()
	if c.externalA != nil {
		v &= c.externalA()
	}
	return v
}

func (c *Chip) readPortB() uint8 {
	v := c.portB.Value()
	if c.externalB != nil {
		v &= c.externalB()
	}
	if c.timerA.pbOn {
		if c.timerA.pbOutput {
			v |= 0x40
		} else {
			v &^= 0x40
		}
	}
	if c.timerB.pbOn {
		if c.timerB.pbOutput {
			v |= 0x80
		} else {
			v &^= 0x80
		}
	}
	return v
}

// Read implements a CPU-side register read at reg (0-15).
func (c *Chip) Read(reg uint8) uint8 {
	switch Reg(reg & 0xf) {
	case RegPRA:
		return c.readPortA()
	case RegPRB:
		return c.readPortB()
	case RegDDRA:
		return c.portA.Direction()
	case RegDDRB:
		return c.portB.Direction()
	case RegTALO:
		return c.timerA.counterLo()
	case RegTAHI:
		return c.timerA.counterHi()
	case RegTBLO:
		return c.timerB.counterLo()
	case RegTBHI:
		return c.timerB.counterHi()
	case RegTODTS:
		c.todClock.enabled = true
		return toBCD(c.todClock.tenths)
	case RegTODSEC:
		return toBCD(c.todClock.seconds)
	case RegTODMIN:
		return toBCD(c.todClock.minutes)
	case RegTODHR:
		v := toBCD(c.todClock.hours)
		if c.todClock.pm {
			v |= 0x80
		}
		return v
	case RegSDR:
		return 0
	case RegICR:
		v := c.irqCtrl.ReadAndClear()
		c.irqDelay = 0
		c.irq.Set(c.sourceKey(), false)
		return v
	case RegCRA:
		return c.timerConfig(&c.timerA, false)
	case RegCRB:
		v := c.timerConfig(&c.timerB, true)
		if c.todSetAlarm {
			v |= 0x80
		}
		return v
	}
	return 0
}

func (c *Chip) timerConfig(t *timer, isB bool) uint8 {
	var v uint8
	if t.running {
		v |= 0x01
	}
	if t.pbOn {
		v |= 0x02
	}
	if t.pbToggle {
		v |= 0x04
	}
	if t.oneShot {
		v |= 0x08
	}
	if isB {
		switch t.source {
		case sourcePhi2:
		case sourceCNT:
			v |= 0x20
		case sourceCascade:
			v |= 0x40
		case sourceCascadeAtCNT:
			v |= 0x60
		}
	} else if t.source == sourceCNT {
		v |= 0x20
	}
	return v
}

// Write implements a CPU-side register write at reg (0-15).
func (c *Chip) Write(reg uint8, val uint8) {
	switch Reg(reg & 0xf) {
	case RegPRA:
		c.portA.SetOutput(val)
	case RegPRB:
		c.portB.SetOutput(val)
	case RegDDRA:
		c.portA.SetDirection(val)
	case RegDDRB:
		c.portB.SetDirection(val)
	case RegTALO:
		c.timerA.setLatchLo(val)
	case RegTAHI:
		c.timerA.setLatchHi(val)
	case RegTBLO:
		c.timerB.setLatchLo(val)
	case RegTBHI:
		c.timerB.setLatchHi(val)
	case RegTODTS:
		c.todTarget().tenths = fromBCD(val & 0x0f)
	case RegTODSEC:
		c.todTarget().seconds = fromBCD(val & 0x7f)
	case RegTODMIN:
		c.todTarget().minutes = fromBCD(val & 0x7f)
	case RegTODHR:
		t := c.todTarget()
		c.todClock.enabled = false
		t.hours = fromBCD(val & 0x7f)
		t.pm = val&0x80 != 0
	case RegSDR:
	case RegICR:
		c.irqCtrl.SetMask(val)
		if c.irqCtrl.Asserted() {
			c.irqDelay |= 0x1
		}
	case RegCRA:
		c.setTimerConfig(&c.timerA, val, false)
	case RegCRB:
		c.setTimerConfig(&c.timerB, val, true)
		c.todSetAlarm = val&0x80 != 0
	}
}

func (c *Chip) todTarget() *rtc {
	if c.todSetAlarm {
		return &c.todAlarm
	}
	return &c.todClock
}

func (c *Chip) setTimerConfig(t *timer, val uint8, isB bool) {
	t.running = val&0x01 != 0
	t.pbOn = val&0x02 != 0
	t.pbToggle = val&0x04 != 0
	t.oneShot = val&0x08 != 0
	if val&0x10 != 0 {
		t.forceLoad = true
	}
	if isB {
		switch (val >> 5) & 0x3 {
		case 0:
			t.source = sourcePhi2
		case 1:
			t.source = sourceCNT
		case 2:
			t.source = sourceCascade
		case 3:
			t.source = sourceCascadeAtCNT
		}
	} else {
		if val&0x20 != 0 {
			t.source = sourceCNT
		} else {
			t.source = sourcePhi2
		}
	}
}
