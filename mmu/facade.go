package mmu

import (
	"github.com/go6510/c64/chipset"
	"github.com/go6510/c64/memory"
)

const (
	charsetBase = 0xd000
)

// IoDevice is the $D000-$DFFF I/O space multiplexer: CIA1, CIA2, VIC-II,
// SID and color RAM decoded by address, plus the expansion port I/O
// space fallthrough ($DE00-$DFFF) when a cartridge claims it.
type IoDevice interface {
	Read(addr uint16) uint8
	Write(addr uint16, val uint8)
}

// Expansion is the RomL/RomH (cartridge) address space; absent a
// cartridge this reads as open bus (0).
type Expansion interface {
	Read(addr uint16) uint8
	Write(addr uint16, val uint8)
}

// Facade is the C64 memory controller: it decodes a CPU address into
// one of RAM, BASIC ROM, character ROM, KERNAL ROM, I/O space or the
// expansion port, based on the bank mode derived from the CPU port and
// expansion port GAME/EXROM sense. Addresses $0000/$0001 never reach
// the table at all - they are the CPU's own data direction/port
// registers.
type Facade struct {
	CPUPort *chipset.CPUPort
	ExpIO   *chipset.IoPort

	RAM       memory.Bank
	Basic     memory.Bank
	Charset   memory.Bank
	Kernal    memory.Bank
	Expansion Expansion
	IO        IoDevice

	databusVal uint8

	mm   *memoryMap
	mode uint8
}

// NewFacade builds the memory controller and wires the CPU/expansion
// port observers so any write to either immediately re-derives the
// active bank mode, matching the real hardware's combinational
// (not clocked) bank switching.
func NewFacade(cpuPort *chipset.CPUPort, expIO *chipset.IoPort, ram, basic, charset, kernal memory.Bank, exp Expansion, io IoDevice) *Facade {
	f := &Facade{
		CPUPort:   cpuPort,
		ExpIO:     expIO,
		RAM:       ram,
		Basic:     basic,
		Charset:   charset,
		Kernal:    kernal,
		Expansion: exp,
		IO:        io,
		mm:        newMemoryMap(),
	}
	f.recomputeMode()
	cpuPort.Observer = func(uint8) { f.recomputeMode() }
	expIO.Observer = func(uint8) { f.recomputeMode() }
	return f
}

func (f *Facade) recomputeMode() {
	f.mode = (f.CPUPort.Value() & 0x07) | (f.ExpIO.Value() & 0x18)
}

// Read dispatches a CPU read through the current bank configuration.
func (f *Facade) Read(addr uint16) uint8 {
	if addr <= 0x0001 {
		return f.cpuPortRead(addr)
	}
	zone := f.mm.get(f.mode)[addr>>12]
	var val uint8
	switch zone {
	case bankRAM:
		val = f.RAM.Read(addr)
	case bankBasic:
		val = f.Basic.Read(addr)
	case bankCharset:
		val = f.Charset.Read(addr - charsetBase)
	case bankKernal:
		val = f.Kernal.Read(addr)
	case bankRomL, bankRomH:
		val = f.Expansion.Read(addr)
	case bankIO:
		val = f.IO.Read(addr)
	case bankDisabled:
		val = 0
	}
	f.databusVal = val
	return val
}

// Write dispatches a CPU write through the current bank configuration.
// Every non-I/O, non-disabled zone writes through to RAM regardless of
// what is currently mapped for reads - ROM can never be written, so a
// write while BASIC/KERNAL/charset/cartridge ROM is banked in still
// lands in the RAM underneath it.
func (f *Facade) Write(addr uint16, val uint8) {
	if addr <= 0x0001 {
		f.cpuPortWrite(addr, val)
		return
	}
	f.databusVal = val
	zone := f.mm.get(f.mode)[addr>>12]
	switch zone {
	case bankIO:
		f.IO.Write(addr, val)
	case bankDisabled:
	case bankRomL, bankRomH:
		f.Expansion.Write(addr, val)
		f.RAM.Write(addr, val)
	default:
		f.RAM.Write(addr, val)
	}
}

func (f *Facade) cpuPortRead(addr uint16) uint8 {
	if addr == 0x0000 {
		return f.CPUPort.Direction()
	}
	return f.CPUPort.Value()
}

func (f *Facade) cpuPortWrite(addr uint16, val uint8) {
	if addr == 0x0000 {
		f.CPUPort.SetDirection(val)
		return
	}
	f.CPUPort.SetOutput(val)
}

// PowerOn resets every backing RAM bank (ROMs are preloaded images and
// are not disturbed).
func (f *Facade) PowerOn() {
	f.RAM.PowerOn()
}

// Parent implements memory.Bank so the Facade itself can sit beneath a
// VIC-II or CPU databus chain lookup.
func (f *Facade) Parent() memory.Bank { return nil }

// DatabusVal implements memory.Bank.
func (f *Facade) DatabusVal() uint8 { return f.databusVal }
