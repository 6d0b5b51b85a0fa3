package debug

import (
	"github.com/go6510/c64/disassemble"
	"github.com/go6510/c64/memory"
)

// Disassembler provides the debug collaborator's disassembly view,
// wrapping the 6502/6510 step disassembler the teacher repo already
// carries.
type Disassembler struct {
	mem memory.Bank
}

// NewDisassembler wraps mem (the CPU's own bus, typically the mmu
// Facade) for disassembly.
func NewDisassembler(mem memory.Bank) *Disassembler {
	return &Disassembler{mem: mem}
}

// Line disassembles one instruction at pc, returning the text and the
// address of the following instruction.
func (d *Disassembler) Line(pc uint16) (string, uint16) {
	text, length := disassemble.Step(pc, d.mem)
	return text, pc + uint16(length)
}

// Listing disassembles count instructions starting at pc.
func (d *Disassembler) Listing(pc uint16, count int) []string {
	lines := make([]string, 0, count)
	for i := 0; i < count; i++ {
		var text string
		text, pc = d.Line(pc)
		lines = append(lines, text)
	}
	return lines
}
