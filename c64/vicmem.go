package c64

import "github.com/go6510/c64/memory"

// vicMemory is the 16K-bank address window VIC-II sees through its own
// address pins: the same underlying RAM chip the CPU uses, except that
// banks 0 and 2 substitute the character generator ROM for the 4K
// window at $1000-$1FFF - a piece of wiring the CPU's own view of
// memory never exposes, since CHAREN only banks character ROM into the
// CPU's address space at $D000, not $1000.
type vicMemory struct {
	ram     memory.Bank
	charRom memory.Bank
}

func (v *vicMemory) Read(addr uint16) uint8 {
	local := addr & 0x3fff
	bank := addr >> 14
	if local >= 0x1000 && local <= 0x1fff && (bank == 0 || bank == 2) {
		return v.charRom.Read(local - 0x1000)
	}
	return v.ram.Read(addr)
}
