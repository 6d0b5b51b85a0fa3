package c64

import (
	"github.com/go6510/c64/cartridge"
	"github.com/go6510/c64/cia"
	"github.com/go6510/c64/memory"
	"github.com/go6510/c64/sid"
	"github.com/go6510/c64/vic"
)

// ioBus implements mmu.IoDevice: the $D000-$DFFF I/O page multiplexer
// that decodes a CPU address across VIC-II, SID, color RAM, the two
// CIAs and the cartridge's I/O window, the same role controller.Read/
// Write plays for the VCS's TIA/PIA split.
type ioBus struct {
	vic      *vic.Chip
	sid      *sid.Chip
	colorRAM memory.Bank
	cia1     *cia.Chip
	cia2     *cia.Chip
	expand   *cartridge.ExpansionPort
}

func (b *ioBus) Read(addr uint16) uint8 {
	switch {
	case addr >= 0xd000 && addr <= 0xd3ff:
		return b.vic.Read(addr)
	case addr >= 0xd400 && addr <= 0xd7ff:
		return b.sid.Read(addr)
	case addr >= 0xd800 && addr <= 0xdbff:
		return b.colorRAM.Read(addr)
	case addr >= 0xdc00 && addr <= 0xdcff:
		return b.cia1.Read(uint8(addr))
	case addr >= 0xdd00 && addr <= 0xddff:
		return b.cia2.Read(uint8(addr))
	case addr >= 0xde00 && addr <= 0xdfff:
		return b.expand.Read(addr)
	}
	return 0
}

func (b *ioBus) Write(addr uint16, val uint8) {
	switch {
	case addr >= 0xd000 && addr <= 0xd3ff:
		b.vic.Write(addr, val)
	case addr >= 0xd400 && addr <= 0xd7ff:
		b.sid.Write(addr, val)
	case addr >= 0xd800 && addr <= 0xdbff:
		b.colorRAM.Write(addr, val)
	case addr >= 0xdc00 && addr <= 0xdcff:
		b.cia1.Write(uint8(addr), val)
	case addr >= 0xdd00 && addr <= 0xddff:
		b.cia2.Write(uint8(addr), val)
	case addr >= 0xde00 && addr <= 0xdfff:
		b.expand.Write(addr, val)
	}
}
