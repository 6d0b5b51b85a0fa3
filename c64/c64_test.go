package c64

import "testing"

// minimalConfig returns a Config with correctly-sized but otherwise
// empty ROM images, and a KERNAL reset vector pointing at a RAM
// address so tests can drop small hand-assembled snippets there
// without needing a real KERNAL.
func minimalConfig(t *testing.T) *Config {
	t.Helper()
	cfg := &Config{
		Model:   ModelPAL,
		Basic:   make([]uint8, 8192),
		Charset: make([]uint8, 4096),
		Kernal:  make([]uint8, 8192),
	}
	// Reset vector: kernal is masked to its own 8192 byte window, so
	// 0xFFFC lands at offset 0x1FFC.
	cfg.Kernal[0x1ffc] = 0x00
	cfg.Kernal[0x1ffd] = 0x08 // -> PC = 0x0800, a plain RAM address.
	return cfg
}

func TestResetLoadsVectorIntoRAM(t *testing.T) {
	c, err := Init(minimalConfig(t))
	if err != nil {
		t.Fatalf("Init: %v", err)
	}
	if err := c.Reset(true); err != nil {
		t.Fatalf("Reset: %v", err)
	}
	if got := c.CPUState().PC; got != 0x0800 {
		t.Errorf("PC after reset = 0x%.4X, want 0x0800", got)
	}
}

func TestStepExecutesNOPAndAdvancesPC(t *testing.T) {
	c, err := Init(minimalConfig(t))
	if err != nil {
		t.Fatalf("Init: %v", err)
	}
	if err := c.Reset(true); err != nil {
		t.Fatalf("Reset: %v", err)
	}
	c.Load([]uint8{0xea, 0xea, 0xea}, 0x0800) // NOP NOP NOP

	for i := 0; i < 6; i++ { // NOP takes 2 cycles each.
		if err := c.Step(); err != nil {
			t.Fatalf("Step: %v", err)
		}
	}
	if got := c.CPUState().PC; got != 0x0803 {
		t.Errorf("PC after 3 NOPs = 0x%.4X, want 0x0803", got)
	}
}

func TestBreakpointFiresAtTargetAddress(t *testing.T) {
	c, err := Init(minimalConfig(t))
	if err != nil {
		t.Fatalf("Init: %v", err)
	}
	if err := c.Reset(true); err != nil {
		t.Fatalf("Reset: %v", err)
	}
	c.Load([]uint8{0xea, 0xea}, 0x0800)
	c.Breakpoints().Add(0x0802)

	hit := false
	for i := 0; i < 8 && !hit; i++ {
		if err := c.Step(); err != nil {
			t.Fatalf("Step: %v", err)
		}
		_, hit = c.CheckBreakpoints()
	}
	if !hit {
		t.Errorf("expected breakpoint at 0x0802 to fire within 8 cycles")
	}
}

func TestAutostartTypesRunAtBasicReadyPC(t *testing.T) {
	cfg := minimalConfig(t)
	cfg.Kernal[0x1ffc] = 0x5c
	cfg.Kernal[0x1ffd] = 0xa6 // -> PC = 0xA65C, the autostart watchpoint.
	c, err := Init(cfg)
	if err != nil {
		t.Fatalf("Init: %v", err)
	}
	if err := c.Reset(true); err != nil {
		t.Fatalf("Reset: %v", err)
	}
	c.ArmAutostart()

	if err := c.Step(); err != nil {
		t.Fatalf("Step: %v", err)
	}
	if !c.Keyboard().HasEvents() {
		t.Errorf("expected the RUN<return> macro to be queued after reaching the autostart PC")
	}
}

func TestRunFrameAdvancesFrameCounter(t *testing.T) {
	c, err := Init(minimalConfig(t))
	if err != nil {
		t.Fatalf("Init: %v", err)
	}
	if err := c.Reset(true); err != nil {
		t.Fatalf("Reset: %v", err)
	}
	if err := c.RunFrame(); err != nil {
		t.Fatalf("RunFrame: %v", err)
	}
	if c.FrameCount() != 1 {
		t.Errorf("FrameCount() = %d, want 1", c.FrameCount())
	}
}
