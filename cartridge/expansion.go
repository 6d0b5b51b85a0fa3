package cartridge

import "github.com/go6510/c64/chipset"

// GAME and EXROM ride on the expansion port's input lines at bits 4
// and 3 respectively; the MMU reads them back (inverted sense: line low
// means the signal is asserted) through the same IoPort to pick its
// 16-bank configuration. Bit numbers match zinc64's expansion_port.rs.
const (
	bitGame  = 1 << 4
	bitExrom = 1 << 3
)

// ExpansionPort is the cartridge slot itself: it holds at most one
// attached Cartridge and drives the GAME/EXROM sense lines the MMU
// watches.
type ExpansionPort struct {
	io   *chipset.IoPort
	cart *Cartridge
}

// NewExpansionPort wires an expansion port against the shared IoPort the
// MMU observes for its bank-mode recalculation.
func NewExpansionPort(io *chipset.IoPort) *ExpansionPort {
	e := &ExpansionPort{io: io}
	e.reset()
	return e
}

// Attach inserts a cartridge and asserts its GAME/EXROM sense.
func (e *ExpansionPort) Attach(c *Cartridge) error {
	if err := c.Reset(); err != nil {
		return err
	}
	e.cart = c
	e.updateLines()
	return nil
}

// Detach removes any attached cartridge, returning the sense lines to
// their no-cartridge-present defaults (GAME and EXROM both high).
func (e *ExpansionPort) Detach() {
	e.cart = nil
	e.reset()
}

// Reset switches an attached cartridge back to bank 0, matching the
// real RESET line running to the cartridge edge connector.
func (e *ExpansionPort) Reset() error {
	if e.cart == nil {
		return nil
	}
	if err := e.cart.Reset(); err != nil {
		return err
	}
	e.updateLines()
	return nil
}

func (e *ExpansionPort) reset() {
	e.io.SetValue(bitGame | bitExrom)
}

func (e *ExpansionPort) updateLines() {
	v := uint8(0)
	if e.cart == nil || e.cart.Game {
		v |= bitGame
	}
	if e.cart == nil || e.cart.Exrom {
		v |= bitExrom
	}
	e.io.SetValue(v)
}

// Read implements the mmu.Expansion contract: no cartridge present
// reads back open-bus zero.
func (e *ExpansionPort) Read(addr uint16) uint8 {
	if e.cart == nil {
		return 0
	}
	return e.cart.Read(addr)
}

// Write implements the mmu.Expansion contract.
func (e *ExpansionPort) Write(addr uint16, val uint8) {
	if e.cart == nil {
		return
	}
	e.cart.Write(addr, val)
	e.updateLines()
}
