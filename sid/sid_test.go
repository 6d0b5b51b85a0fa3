package sid

import "testing"

type captureOutput struct {
	samples []int16
}

func (c *captureOutput) Write(s int16) { c.samples = append(c.samples, s) }

func TestRegisterWriteReadback(t *testing.T) {
	c := Init(&ChipDef{})
	c.Write(0xd400, 0x42) // Voice 1 frequency lo.
	if got := c.Read(0xd400); got != 0x42 {
		t.Errorf("Read(0xd400) = 0x%.2X, want 0x42", got)
	}
}

func TestTickEmitsSampleOnCadence(t *testing.T) {
	out := &captureOutput{}
	c := Init(&ChipDef{Out: out, CyclesPerSample: 4})
	for i := 0; i < 9; i++ {
		c.Tick()
	}
	if len(out.samples) != 2 {
		t.Errorf("got %d samples over 9 cycles at period 4, want 2", len(out.samples))
	}
}
