package cartridge

import (
	"testing"

	"github.com/go6510/c64/chipset"
)

func TestAttachSetsExpansionLines(t *testing.T) {
	io := chipset.NewIoPort()
	e := NewExpansionPort(io)
	c := New(HwNormal, false, true)
	c.Add(Bank{Type: ChipROM, BankNumber: 0, Offset: 0x8000, Data: make([]uint8, 0x2000)})
	if err := e.Attach(c); err != nil {
		t.Fatalf("Attach: %v", err)
	}
	if io.Value()&bitExrom != 0 {
		t.Errorf("expected EXROM asserted (low) with Exrom=false")
	}
	if io.Value()&bitGame == 0 {
		t.Errorf("expected GAME deasserted (high) with Game=true")
	}
}

func TestReadDispatchesToActiveBank(t *testing.T) {
	c := New(HwNormal, false, true)
	data := make([]uint8, 0x2000)
	data[0x10] = 0x42
	c.Add(Bank{Type: ChipROM, BankNumber: 0, Offset: 0x8000, Data: data})
	if err := c.Reset(); err != nil {
		t.Fatalf("Reset: %v", err)
	}
	if got := c.Read(0x8010); got != 0x42 {
		t.Errorf("Read(0x8010) = 0x%.2X, want 0x42", got)
	}
}

func TestOceanType1BankSwitch(t *testing.T) {
	c := New(HwOceanType1, false, true)
	for n := uint8(0); n < 2; n++ {
		data := make([]uint8, 0x2000)
		data[0] = n + 1
		c.Add(Bank{Type: ChipROM, BankNumber: n, Offset: 0x8000, Data: data})
	}
	if err := c.Reset(); err != nil {
		t.Fatalf("Reset: %v", err)
	}
	c.Write(0xde00, 1)
	if got := c.Read(0x8000); got != 2 {
		t.Errorf("after switching to bank 1, Read(0x8000) = %d, want 2", got)
	}
}
