// Package c64 is the system façade pulling every chip package together
// into a runnable Commodore 64: it owns the shared chipset primitives,
// wires the cooperative scheduler's per-cycle Tick/TickDone order, and
// exposes the handful of operations an embedder (a debugger, a
// headless test, or cmd/c64's SDL2 frontend) needs - reset, run a
// frame, single-step, load an image, attach peripherals. Structurally
// this plays the role atari2600.VCS plays for the Atari: a controller
// type satisfying the CPU's memory.Bank contract plus a Tick loop
// sequencing every other chip around it.
package c64

import (
	"fmt"
	"log"

	"github.com/go6510/c64/cartridge"
	"github.com/go6510/c64/chipset"
	"github.com/go6510/c64/cia"
	"github.com/go6510/c64/cpu"
	"github.com/go6510/c64/datassette"
	"github.com/go6510/c64/debug"
	"github.com/go6510/c64/iface"
	"github.com/go6510/c64/input"
	"github.com/go6510/c64/memory"
	"github.com/go6510/c64/mmu"
	"github.com/go6510/c64/sid"
	"github.com/go6510/c64/sound"
	"github.com/go6510/c64/vic"
	"github.com/go6510/c64/video"
)

// autostartPC is the PAL KERNAL's BASIC-ready address; the façade
// plants a one-shot internal watchpoint there to drive an autostart
// macro, per the documented autostart behavior.
const autostartPC = 0xa65c

// autostartCharacterGap is the minimum number of CPU cycles the façade
// waits between delivering successive key transitions of the autostart
// macro, giving the KERNAL's keyboard scan routine time to observe a
// press before the next transition lands.
const autostartCharacterGap = 20000

// rdyFromBA adapts VIC-II's BA pin (high = bus available) to the CPU's
// RDY input (irq.Sender.Raised() true = hold): the two are active
// opposites.
type rdyFromBA struct {
	ba *chipset.Pin
}

func (r rdyFromBA) Raised() bool { return !r.ba.Get() }

// C64 is a fully wired Commodore 64: every chip plus the shared
// primitives connecting them, the debugger's breakpoint manager, and
// the two cross-thread buffers (sound ring, frame buffer).
type C64 struct {
	cfg Config

	clock   chipset.Clock
	cpuPort *chipset.CPUPort
	expIO   *chipset.IoPort
	ba      *chipset.Pin
	irqLine *chipset.IrqLine
	nmiLine *chipset.IrqLine

	ramBank memory.Bank
	basic   memory.Bank
	charset memory.Bank
	kernal  memory.Bank
	cram    memory.Bank

	cpu        *cpu.Chip
	cia1       *cia.Chip
	cia2       *cia.Chip
	vicChip    *vic.Chip
	sidChip    *sid.Chip
	facade     *mmu.Facade
	expansion  *cartridge.ExpansionPort
	datassette *datassette.Datassette

	keyboard  *input.KeyboardMatrix
	joystick1 *input.Joystick
	joystick2 *input.Joystick

	soundRing *sound.Ring
	frameBuf  *video.FrameBuffer

	breakpoints *debug.Manager

	frameCount uint64

	autostartArmed bool
	autostartGap   int
}

// Init wires a complete C64 from cfg and returns it powered on. The
// three ROM images are mandatory; nothing is embedded here.
func Init(cfg *Config) (*C64, error) {
	if len(cfg.Basic) != 8192 {
		return nil, fmt.Errorf("c64: Basic ROM must be 8192 bytes, got %d", len(cfg.Basic))
	}
	if len(cfg.Charset) != 4096 {
		return nil, fmt.Errorf("c64: Charset ROM must be 4096 bytes, got %d", len(cfg.Charset))
	}
	if len(cfg.Kernal) != 8192 {
		return nil, fmt.Errorf("c64: Kernal ROM must be 8192 bytes, got %d", len(cfg.Kernal))
	}

	c := &C64{cfg: *cfg}

	c.cpuPort = chipset.NewCPUPort()
	c.expIO = chipset.NewIoPort()
	c.ba = chipset.NewPin(true)
	c.irqLine = chipset.NewIrqLine()
	c.nmiLine = chipset.NewIrqLine()

	var err error
	c.ramBank, err = memory.New8BitRAMBank(1<<16, nil)
	if err != nil {
		return nil, fmt.Errorf("c64: RAM: %v", err)
	}
	c.basic, err = memory.NewROMBank(cfg.Basic, c.ramBank)
	if err != nil {
		return nil, fmt.Errorf("c64: BASIC ROM: %v", err)
	}
	c.charset, err = memory.NewROMBank(cfg.Charset, c.ramBank)
	if err != nil {
		return nil, fmt.Errorf("c64: character ROM: %v", err)
	}
	c.kernal, err = memory.NewROMBank(cfg.Kernal, c.ramBank)
	if err != nil {
		return nil, fmt.Errorf("c64: KERNAL ROM: %v", err)
	}
	c.cram = memory.NewColorRAMBank(c.ramBank)

	c.expansion = cartridge.NewExpansionPort(c.expIO)

	cia1PortA := chipset.NewIoPort()
	cia1PortB := chipset.NewIoPort()
	cia2PortA := chipset.NewIoPort()
	cia2PortB := chipset.NewIoPort()
	cassetteFlag := chipset.NewPin(true)

	c.keyboard = input.NewKeyboardMatrix()
	c.joystick1 = input.NewJoystick(cfg.Joystick.Port1, cfg.Joystick.AxisThreshold)
	c.joystick2 = input.NewJoystick(cfg.Joystick.Port2, cfg.Joystick.AxisThreshold)

	c.cia1, err = cia.Init(&cia.ChipDef{
		Mode:  cia.Cia1,
		PortA: cia1PortA,
		PortB: cia1PortB,
		Flag:  cassetteFlag,
		Irq:   c.irqLine,
		ExternalPortA: func() uint8 {
			return c.joystick2.PortValue()
		},
		ExternalPortB: func() uint8 {
			return c.keyboardColumns(cia1PortA) & c.joystick1.PortValue()
		},
		Debug: cfg.Debug,
	})
	if err != nil {
		return nil, fmt.Errorf("c64: CIA1: %v", err)
	}
	c.cia2, err = cia.Init(&cia.ChipDef{
		Mode:  cia.Cia2,
		PortA: cia2PortA,
		PortB: cia2PortB,
		Irq:   c.nmiLine,
		Debug: cfg.Debug,
	})
	if err != nil {
		return nil, fmt.Errorf("c64: CIA2: %v", err)
	}

	c.frameBuf = video.NewFrameBuffer(vic.FrameWidth, vic.FrameHeight)
	vicMem := &vicMemory{ram: c.ramBank, charRom: c.charset}
	c.vicChip, err = vic.Init(&vic.ChipDef{
		Mode:     vicMode(cfg.Model),
		Memory:   vicMem,
		ColorRAM: c.cram,
		Irq:      c.irqLine,
		BA:       c.ba,
		Video:    c.frameBuf,
		BankOffset: func() uint16 {
			bank := (^cia2PortA.Value()) & 0x03
			return uint16(bank) * 0x4000
		},
		Debug: cfg.Debug,
	})
	if err != nil {
		return nil, fmt.Errorf("c64: VIC-II: %v", err)
	}

	var soundOut iface.SoundOutput
	if cfg.Sound.Enable {
		c.soundRing = sound.NewRing(cfg.Sound.BufferSize)
		soundOut = c.soundRing
	}
	cyclesPerSample := 22
	if cfg.Sound.SampleRate > 0 {
		cyclesPerSample = cfg.clockHz() / int(cfg.Sound.SampleRate)
	}
	c.sidChip = sid.Init(&sid.ChipDef{Out: soundOut, CyclesPerSample: cyclesPerSample})

	c.datassette = datassette.New(cassetteFlag, &c.cpuPort.IoPort)

	io := &ioBus{vic: c.vicChip, sid: c.sidChip, colorRAM: c.cram, cia1: c.cia1, cia2: c.cia2, expand: c.expansion}
	c.facade = mmu.NewFacade(c.cpuPort, c.expIO, c.ramBank, c.basic, c.charset, c.kernal, c.expansion, io)

	c.cpu, err = cpu.Init(&cpu.ChipDef{
		Cpu: cpu.CPU_NMOS_6510,
		Ram: c.facade,
		Irq: c.irqLine,
		Nmi: c.nmiLine,
		Rdy: rdyFromBA{ba: c.ba},
	})
	if err != nil {
		return nil, fmt.Errorf("c64: CPU: %v", err)
	}

	c.breakpoints = debug.NewManager()

	return c, nil
}

func vicMode(m Model) vic.Mode {
	if m == ModelNTSC {
		return vic.NTSC
	}
	return vic.PAL
}

// keyboardColumns resolves CIA1 port B's external keyboard contribution:
// every row currently selected low on port A (output) is ANDed together,
// matching the matrix's open-collector wiring.
func (c *C64) keyboardColumns(portA *chipset.IoPort) uint8 {
	sel := portA.Value()
	cols := uint8(0xff)
	for row := uint8(0); row < 8; row++ {
		if sel&(1<<row) == 0 {
			cols &= c.keyboard.Row(row)
		}
	}
	return cols
}

// Reset implements both the RESET button (hard == false: registers
// and RAM survive, only the reset vector is reloaded) and a
// power-cycle (hard == true: RAM and CPU registers randomize first,
// matching undefined power-on hardware state).
func (c *C64) Reset(hard bool) error {
	if hard {
		c.ramBank.PowerOn()
		if err := c.cpu.PowerOn(); err != nil {
			return fmt.Errorf("c64: CPU PowerOn: %v", err)
		}
	} else {
		for {
			done, err := c.cpu.Reset()
			if err != nil {
				return fmt.Errorf("c64: CPU Reset: %v", err)
			}
			if done {
				break
			}
		}
	}
	c.cia1.Reset()
	c.cia2.Reset()
	c.vicChip.Reset()
	c.sidChip.Reset()
	c.datassette.Reset()
	c.keyboard.Reset()
	c.joystick1.Reset()
	c.joystick2.Reset()
	if err := c.expansion.Reset(); err != nil {
		return fmt.Errorf("c64: cartridge Reset: %v", err)
	}
	c.autostartArmed = false
	c.autostartGap = 0
	return nil
}

// Load copies data into RAM starting at offset, the façade's generic
// image-mount primitive; a PRG's own 2-byte load address header is the
// caller's concern (resolved once into offset before calling Load).
func (c *C64) Load(data []uint8, offset uint16) {
	for i, b := range data {
		c.ramBank.Write(offset+uint16(i), b)
	}
}

// ArmAutostart schedules the "RUN<return>" macro to be typed the next
// time the CPU reaches the BASIC-ready PC, the standard way a mounted
// PRG/tape/cartridge image with autostart requested is brought up.
func (c *C64) ArmAutostart() {
	c.autostartArmed = true
	c.autostartGap = 0
}

// AttachCartridge inserts c into the expansion port.
func (c *C64) AttachCartridge(cart *cartridge.Cartridge) error {
	return c.expansion.Attach(cart)
}

// DetachCartridge removes any attached cartridge.
func (c *C64) DetachCartridge() {
	c.expansion.Detach()
}

// AttachTape loads a tape source into the datassette without starting
// playback.
func (c *C64) AttachTape(t iface.Tape) {
	c.datassette.Attach(t)
}

// CPUState snapshots the registers the breakpoint manager and an
// external debugger evaluate conditions against.
func (c *C64) CPUState() debug.CPUState {
	return debug.CPUState{A: c.cpu.A, X: c.cpu.X, Y: c.cpu.Y, P: c.cpu.P, SP: c.cpu.S, PC: c.cpu.PC}
}

// CheckBreakpoints evaluates the breakpoint manager against the
// current CPU state.
func (c *C64) CheckBreakpoints() (int, bool) {
	return c.breakpoints.Check(c.CPUState())
}

// IsCPUJam reports whether the CPU hit an unsupported opcode and is
// stuck refetching the same instruction.
func (c *C64) IsCPUJam() bool {
	return c.cpu.Jammed()
}

// Step advances the emulator by exactly one system cycle: every chip
// ticks once, in the order its outputs need to be visible to the chips
// that consume them this same cycle (VIC resolves BA before the CPU
// observes RDY; the CIAs' FLAG edge detection runs after the
// datassette has had a chance to move the pin). The shared cycle
// counter only advances once every chip has seen this cycle.
func (c *C64) Step() error {
	c.processAutostart()

	c.vicChip.Tick()
	c.datassette.Tick()
	c.cia1.Tick()
	c.cia2.Tick()
	c.sidChip.Tick()
	if err := c.cpu.Tick(); err != nil {
		// A jammed CPU is reported through IsCPUJam, not as an error.
		if _, jam := err.(cpu.HaltOpcode); !jam {
			return fmt.Errorf("c64: CPU: %v", err)
		}
	}

	c.vicChip.TickDone()
	c.cia1.TickDone()
	c.cia2.TickDone()
	c.sidChip.TickDone()
	c.cpu.TickDone()
	c.clock.Tick()

	if c.cfg.Debug {
		if d := c.vicChip.Debug(); d != "" {
			log.Printf("VIC: %s", d)
		}
		if d := c.cia1.Debug(); d != "" {
			log.Printf("CIA1: %s", d)
		}
	}

	return nil
}

func (c *C64) processAutostart() {
	if c.autostartArmed && c.cpu.PC == autostartPC {
		c.keyboard.Enqueue("RUN\n")
		c.autostartArmed = false
	}
	if !c.keyboard.HasEvents() {
		return
	}
	c.autostartGap++
	if c.autostartGap >= autostartCharacterGap {
		c.keyboard.DrainEvent()
		c.autostartGap = 0
	}
}

// RunFrame steps the emulator until VIC-II signals vsync, then runs
// the once-per-frame work (TOD clock advance) and increments the
// frame counter.
func (c *C64) RunFrame() error {
	for !c.frameBuf.TakeSync() {
		if err := c.Step(); err != nil {
			return err
		}
	}
	c.cia1.ProcessVsync()
	c.cia2.ProcessVsync()
	c.frameCount++
	return nil
}

// FrameCount returns the number of completed frames since the last
// reset.
func (c *C64) FrameCount() uint64 { return c.frameCount }

// Breakpoints returns the debugger's breakpoint manager.
func (c *C64) Breakpoints() *debug.Manager { return c.breakpoints }

// FrameBuffer returns the video collaborator VIC-II renders into.
func (c *C64) FrameBuffer() *video.FrameBuffer { return c.frameBuf }

// SoundRing returns the sound collaborator SID writes into, or nil if
// sound was disabled in Config.
func (c *C64) SoundRing() *sound.Ring { return c.soundRing }

// Keyboard returns the keyboard matrix an input collaborator should
// drive with key events.
func (c *C64) Keyboard() *input.KeyboardMatrix { return c.keyboard }

// Joystick1/Joystick2 return the two logical joystick ports.
func (c *C64) Joystick1() *input.Joystick { return c.joystick1 }
func (c *C64) Joystick2() *input.Joystick { return c.joystick2 }

// Disassembler returns a debug.Disassembler reading through the same
// bank-switched view of memory the CPU itself sees.
func (c *C64) Disassembler() *debug.Disassembler {
	return debug.NewDisassembler(c.facade)
}
