package debug

import (
	"strings"
	"testing"

	"github.com/go6510/c64/memory"
)

func TestListingAdvancesPC(t *testing.T) {
	mem, err := memory.New8BitRAMBank(1<<16, nil)
	if err != nil {
		t.Fatalf("New8BitRAMBank: %v", err)
	}
	mem.Write(0x1000, 0xa9) // LDA #imm
	mem.Write(0x1001, 0x42)
	mem.Write(0x1002, 0xea) // NOP

	d := NewDisassembler(mem)
	lines := d.Listing(0x1000, 2)
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}
	if !strings.Contains(lines[0], "LDA") {
		t.Errorf("lines[0] = %q, want it to mention LDA", lines[0])
	}
}
