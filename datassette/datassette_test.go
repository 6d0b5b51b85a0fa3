package datassette

import (
	"testing"

	"github.com/go6510/c64/chipset"
)

type stubTape struct {
	pulses []uint32
	pos    int
}

func (s *stubTape) ReadPulse() (uint32, bool) {
	if s.pos >= len(s.pulses) {
		return 0, false
	}
	p := s.pulses[s.pos]
	s.pos++
	return p, true
}

func (s *stubTape) Seek(pos int) { s.pos = pos }

func TestPlayPullsCassetteSwitchLow(t *testing.T) {
	port := chipset.NewCPUPort()
	flag := chipset.NewPin(false)
	d := New(flag, &port.IoPort)
	d.Attach(&stubTape{pulses: []uint32{10}})
	d.Play()
	if port.Value()&bitCassetteSwitch != 0 {
		t.Errorf("expected cassette switch bit clear (play pressed) after Play")
	}
}

func TestMotorOffStopsClocking(t *testing.T) {
	port := chipset.NewCPUPort()
	port.SetOutput(port.Output() | bitCassetteMotor) // Motor off.
	flag := chipset.NewPin(false)
	d := New(flag, &port.IoPort)
	d.Attach(&stubTape{pulses: []uint32{4}})
	d.Play()
	for i := 0; i < 10; i++ {
		d.Tick()
	}
	if d.current.remainingCycles != 0 {
		t.Errorf("expected no pulse consumption while motor is off")
	}
}

func TestEndOfTapeStopsPlayback(t *testing.T) {
	port := chipset.NewCPUPort()
	port.SetOutput(port.Output() &^ bitCassetteMotor) // Motor on.
	flag := chipset.NewPin(false)
	d := New(flag, &port.IoPort)
	d.Attach(&stubTape{pulses: []uint32{2}})
	d.Play()
	for i := 0; i < 10; i++ {
		d.Tick()
	}
	if d.playing {
		t.Errorf("expected playback to stop once the tape is exhausted")
	}
}
