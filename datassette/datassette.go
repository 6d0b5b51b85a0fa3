// Package datassette emulates the C64's cassette deck: a pulse-stream
// tape source driving the CIA1 FLAG pin.
package datassette

import (
	"log"

	"github.com/go6510/c64/chipset"
	"github.com/go6510/c64/iface"
)

// Bit positions of the cassette control lines on the CPU I/O port
// ($0001), matching the real hardware and zinc64's ControlPort enum.
const (
	bitCassetteSwitch = 1 << 4 // Input: 0 = play button down.
	bitCassetteMotor  = 1 << 5 // Output: 0 = motor spins.
)

const dutyCyclePercent = 50

// pulse tracks the remaining cycles of one tape pulse and when, within
// that pulse, the FLAG pin should transition (a 50% duty cycle).
type pulse struct {
	lowCycles        uint32
	remainingCycles  uint32
}

func newPulse(length uint32) pulse {
	return pulse{
		lowCycles:       length * (100 - dutyCyclePercent) / 100,
		remainingCycles: length,
	}
}

func (p *pulse) isDone() bool { return p.remainingCycles == 0 }

// advance consumes one cycle and returns the FLAG level for it.
func (p *pulse) advance() bool {
	p.remainingCycles--
	if p.lowCycles == 0 {
		return true
	}
	p.lowCycles--
	return false
}

// Datassette is one cassette deck instance.
type Datassette struct {
	flag    *chipset.Pin
	cpuPort *chipset.IoPort

	playing      bool
	tape         iface.Tape
	current      pulse
	inputLatch   uint8 // The play-sense bit this deck drives onto the CPU port's input lines.
}

// New wires a Datassette against the CIA1 FLAG pin and the CPU's I/O
// port (for the motor-control and play-sense bits).
func New(flag *chipset.Pin, cpuPort *chipset.IoPort) *Datassette {
	d := &Datassette{flag: flag, cpuPort: cpuPort}
	d.Reset()
	return d
}

// Attach loads a tape source; playback does not start until Play is
// called.
func (d *Datassette) Attach(tape iface.Tape) {
	d.tape = tape
}

// Detach stops playback and removes the tape.
func (d *Datassette) Detach() {
	d.Stop()
	d.tape = nil
}

// Play starts playback if a tape is attached.
func (d *Datassette) Play() {
	if d.tape == nil {
		return
	}
	d.inputLatch &^= bitCassetteSwitch
	d.cpuPort.SetInput(d.inputLatch)
	d.playing = true
}

// Stop halts playback.
func (d *Datassette) Stop() {
	d.inputLatch |= bitCassetteSwitch
	d.cpuPort.SetInput(d.inputLatch)
	d.playing = false
}

// Reset returns the deck to its power-on state: stopped, tape rewound.
func (d *Datassette) Reset() {
	d.inputLatch = 0xff // Unconnected input lines float high; only the switch-sense bit is driven.
	d.cpuPort.SetInput(d.inputLatch)
	d.playing = false
	d.current = newPulse(0)
	if d.tape != nil {
		d.tape.Seek(0)
	}
}

// isPlaying reports whether the deck is both commanded to play and the
// CPU has the cassette motor turned on (bit clear on the I/O port).
func (d *Datassette) isPlaying() bool {
	motorOn := d.cpuPort.Value()&bitCassetteMotor == 0
	return d.playing && motorOn
}

// Tick advances the deck by one system cycle: while playing, it feeds
// the current pulse's level onto the FLAG pin, pulling the next pulse
// from the tape once the current one finishes.
func (d *Datassette) Tick() {
	if !d.isPlaying() || d.tape == nil {
		return
	}
	if d.current.isDone() {
		length, ok := d.tape.ReadPulse()
		if !ok {
			log.Printf("datassette: end of tape, stopping")
			d.Stop()
			return
		}
		d.current = newPulse(length)
	}
	if !d.current.isDone() {
		d.flag.Set(d.current.advance())
	}
}
