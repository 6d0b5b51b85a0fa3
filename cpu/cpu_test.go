package cpu

import (
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/go-test/deep"
	"github.com/go6510/c64/memory"
)

// flatMemory is a trivial flat 64k memory.Bank used only for CPU unit
// tests; it has no bank switching and no databus chaining.
type flatMemory struct {
	addr [65536]uint8
}

func (r *flatMemory) Read(addr uint16) uint8      { return r.addr[addr] }
func (r *flatMemory) Write(addr uint16, val uint8) { r.addr[addr] = val }
func (r *flatMemory) PowerOn()                    {}
func (r *flatMemory) Parent() Bank                { return nil }
func (r *flatMemory) DatabusVal() uint8           { return 0 }

// Bank is a local alias for memory.Bank, so flatMemory's Parent() has
// the exact signature memory.Bank requires.
type Bank = memory.Bank

func setup(t *testing.T, cpuType CPUType) (*Chip, *flatMemory) {
	t.Helper()
	m := &flatMemory{}
	c, err := Init(&ChipDef{Cpu: cpuType, Ram: m})
	if err != nil {
		t.Fatalf("Init: %v", err)
	}
	c.PC = 0x1000
	return c, m
}

func step(t *testing.T, c *Chip) {
	t.Helper()
	for {
		err := c.Tick()
		c.TickDone()
		if err == nil && c.InstructionDone() {
			return
		}
		if err != nil {
			t.Fatalf("Tick: %v\n%s", err, spew.Sdump(c))
		}
	}
}

func TestLDAImmediate(t *testing.T) {
	c, m := setup(t, CPU_NMOS_6510)
	m.addr[0x1000] = 0xa9 // LDA #imm
	m.addr[0x1001] = 0x42
	step(t, c)
	if c.A != 0x42 {
		t.Errorf("A = 0x%.2X, want 0x42\n%s", c.A, spew.Sdump(c))
	}
	if c.P&P_ZERO != 0 {
		t.Errorf("Z flag set for non-zero load")
	}
}

func TestLDAImmediateZero(t *testing.T) {
	c, m := setup(t, CPU_NMOS_6510)
	m.addr[0x1000] = 0xa9
	m.addr[0x1001] = 0x00
	step(t, c)
	if c.P&P_ZERO == 0 {
		t.Errorf("Z flag not set for zero load")
	}
}

func TestSTAZeroPage(t *testing.T) {
	c, m := setup(t, CPU_NMOS_6510)
	c.A = 0x99
	m.addr[0x1000] = 0x85 // STA zp
	m.addr[0x1001] = 0x10
	step(t, c)
	if m.addr[0x10] != 0x99 {
		t.Errorf("mem[0x10] = 0x%.2X, want 0x99", m.addr[0x10])
	}
}

// stubSender is a fixed-level irq.Sender used to drive IRQ/NMI tests.
type stubSender struct{ level bool }

func (s *stubSender) Raised() bool { return s.level }

// regSnapshot is a plain, exported-field copy of the registers a deep
// diff can compare without reaching into the Chip directly.
type regSnapshot struct {
	A, X, Y, S, P uint8
	PC            uint16
}

func snapshot(c *Chip) regSnapshot {
	return regSnapshot{A: c.A, X: c.X, Y: c.Y, S: c.S, P: c.P, PC: c.PC}
}

// stepExpectJam ticks the chip until it reports Jammed(), failing the
// test if that doesn't happen within a generous number of ticks.
func stepExpectJam(t *testing.T, c *Chip) {
	t.Helper()
	for i := 0; i < 10; i++ {
		err := c.Tick()
		c.TickDone()
		if c.Jammed() {
			return
		}
		if err != nil {
			t.Fatalf("Tick: %v\n%s", err, spew.Sdump(c))
		}
	}
	t.Fatalf("opcode never jammed\n%s", spew.Sdump(c))
}

// TestIllegalOpcodesOutsideStableSetJam checks that every undocumented
// opcode family other than LAX, ANE (XAA), ANX/AAX (SAX), ALR, AXS and
// LSE (SRE) halts the chip instead of executing, and that the halted
// chip keeps refetching the same PC rather than drifting.
func TestIllegalOpcodesOutsideStableSetJam(t *testing.T) {
	for _, tc := range []struct {
		name string
		op   uint8
	}{
		{"SLO", 0x03},
		{"ANC", 0x0B},
		{"RLA", 0x23},
		{"RRA", 0x63},
		{"ARR", 0x6B},
		{"AHX", 0x93},
		{"TAS", 0x9B},
		{"SHY", 0x9C},
		{"SHX", 0x9E},
		{"OAL", 0xAB},
		{"LAS", 0xBB},
		{"DCP", 0xC3},
		{"ISC", 0xE3},
		{"SBCdup", 0xEB},
	} {
		t.Run(tc.name, func(t *testing.T) {
			c, m := setup(t, CPU_NMOS_6510)
			m.addr[0x1000] = tc.op
			m.addr[0x1001] = 0x00
			stepExpectJam(t, c)

			before := snapshot(c)
			for i := 0; i < 6; i++ {
				c.Tick()
				c.TickDone()
			}
			after := snapshot(c)
			if diff := deep.Equal(before, after); diff != nil {
				t.Errorf("%s (0x%.2X): register state drifted while jammed: %v\n%s", tc.name, tc.op, diff, spew.Sdump(c))
			}
			if after.PC != 0x1001 {
				t.Errorf("%s (0x%.2X): PC = 0x%.4X after jam, want 0x1001 (same opcode refetched)", tc.name, tc.op, after.PC)
			}
		})
	}
}

// TestLAXLoadsAAndX checks the stable-set undocumented opcode LAX still
// executes real semantics rather than jamming.
func TestLAXLoadsAAndX(t *testing.T) {
	c, m := setup(t, CPU_NMOS_6510)
	m.addr[0x1000] = 0xa7 // LAX d
	m.addr[0x1001] = 0x10
	m.addr[0x0010] = 0x42
	step(t, c)
	if c.Jammed() {
		t.Fatalf("LAX jammed, want it in the stable undocumented set\n%s", spew.Sdump(c))
	}
	if c.A != 0x42 || c.X != 0x42 {
		t.Errorf("A=0x%.2X X=0x%.2X, want both 0x42", c.A, c.X)
	}
}

// bcdEncode packs a decimal value 0-99 into a BCD byte.
func bcdEncode(dec int) uint8 {
	return uint8((dec/10)<<4 | (dec % 10))
}

// TestADCBCDSum exhaustively checks the spec's BCD invariant: for every
// pair of valid BCD bytes and either carry-in, ADC #i produces the
// correct decimal sum and sets carry when that sum reaches 100.
func TestADCBCDSum(t *testing.T) {
	for a := 0; a < 100; a++ {
		for b := 0; b < 100; b++ {
			for _, carryIn := range []uint8{0, 1} {
				c, m := setup(t, CPU_NMOS_6510)
				c.A = bcdEncode(a)
				c.P |= P_DECIMAL
				c.P &^= P_CARRY
				c.P |= carryIn
				m.addr[0x1000] = 0x69 // ADC #i
				m.addr[0x1001] = bcdEncode(b)
				step(t, c)

				wantSum := a + b + int(carryIn)
				wantCarry := wantSum >= 100
				wantA := bcdEncode(wantSum % 100)
				if c.A != wantA {
					t.Fatalf("BCD %02d+%02d+%d: A=0x%.2X, want 0x%.2X", a, b, carryIn, c.A, wantA)
				}
				gotCarry := c.P&P_CARRY != 0
				if gotCarry != wantCarry {
					t.Fatalf("BCD %02d+%02d+%d: carry=%v, want %v", a, b, carryIn, gotCarry, wantCarry)
				}
			}
		}
	}
}

func TestIRQMasked(t *testing.T) {
	m := &flatMemory{}
	irqLine := &stubSender{level: true}
	c, err := Init(&ChipDef{Cpu: CPU_NMOS_6510, Ram: m, Irq: irqLine})
	if err != nil {
		t.Fatalf("Init: %v", err)
	}
	c.PC = 0x1000
	c.P |= P_INTERRUPT // mask IRQ
	m.addr[0x1000] = 0xea // NOP
	step(t, c)
	if c.PC != 0x1001 {
		t.Errorf("PC = 0x%.4X, want 0x1001 (IRQ should stay masked)", c.PC)
	}
}
