// Package mmu implements the C64's bank-switched memory map: the 16
// zone x 31 mode configuration table driven by the CPU port's
// LORAM/HIRAM/CHAREN bits and the expansion port's GAME/EXROM sense,
// plus the Facade that dispatches a CPU address to the right
// memory.Bank for that mode.
package mmu

// bankKind names which physical device backs a given 4K zone under a
// given configuration.
type bankKind int

const (
	bankRAM bankKind = iota
	bankBasic
	bankCharset
	bankKernal
	bankIO
	bankRomL
	bankRomH
	bankDisabled
)

// configuration maps each of the 16 4K zones to a bankKind for one of
// the 31 possible CPU-port/expansion-port combinations.
type configuration [16]bankKind

func newConfiguration(c [7]bankKind) configuration {
	var cfg configuration
	for i := 0; i < 16; i++ {
		switch {
		case i == 0x00:
			cfg[i] = c[0]
		case i >= 0x01 && i <= 0x07:
			cfg[i] = c[1]
		case i >= 0x08 && i <= 0x09:
			cfg[i] = c[2]
		case i >= 0x0a && i <= 0x0b:
			cfg[i] = c[3]
		case i == 0x0c:
			cfg[i] = c[4]
		case i == 0x0d:
			cfg[i] = c[5]
		default: // 0x0e..0x0f
			cfg[i] = c[6]
		}
	}
	return cfg
}

// memoryMap holds the 31 fixed bank configurations, one per valid
// 5-bit mode (LORAM, HIRAM, CHAREN, GAME, EXROM). Mode 0 never occurs
// (it would mean nothing is mapped at all) so modes are 1-indexed.
//
// This table is reproduced verbatim from the reference C64 bank
// switching chart (c64-wiki.com/index.php/Bank_Switching): every
// combination of the five control bits maps to one of these 31 rows.
type memoryMap struct {
	modes [31]configuration
}

func newMemoryMap() *memoryMap {
	m31 := [7]bankKind{bankRAM, bankRAM, bankRAM, bankBasic, bankRAM, bankIO, bankKernal}
	m30_14 := [7]bankKind{bankRAM, bankRAM, bankRAM, bankRAM, bankRAM, bankIO, bankKernal}
	m29_13 := [7]bankKind{bankRAM, bankRAM, bankRAM, bankRAM, bankRAM, bankIO, bankRAM}
	m28_24 := [7]bankKind{bankRAM, bankRAM, bankRAM, bankRAM, bankRAM, bankRAM, bankRAM}
	m27 := [7]bankKind{bankRAM, bankRAM, bankRAM, bankBasic, bankRAM, bankCharset, bankKernal}
	m26_10 := [7]bankKind{bankRAM, bankRAM, bankRAM, bankRAM, bankRAM, bankCharset, bankKernal}
	m25_9 := [7]bankKind{bankRAM, bankRAM, bankRAM, bankRAM, bankRAM, bankCharset, bankRAM}
	m23_16 := [7]bankKind{bankRAM, bankDisabled, bankRomL, bankDisabled, bankDisabled, bankIO, bankRomH}
	m15 := [7]bankKind{bankRAM, bankRAM, bankRomL, bankBasic, bankRAM, bankIO, bankKernal}
	m12_8_4_0 := [7]bankKind{bankRAM, bankRAM, bankRAM, bankRAM, bankRAM, bankRAM, bankRAM}
	m11 := [7]bankKind{bankRAM, bankRAM, bankRomL, bankBasic, bankRAM, bankCharset, bankKernal}
	m7 := [7]bankKind{bankRAM, bankRAM, bankRomL, bankRomH, bankRAM, bankIO, bankKernal}
	m6 := [7]bankKind{bankRAM, bankRAM, bankRAM, bankRomH, bankRAM, bankIO, bankKernal}
	m5 := [7]bankKind{bankRAM, bankRAM, bankRomL, bankRomH, bankRAM, bankIO, bankRAM}
	m3 := [7]bankKind{bankRAM, bankRAM, bankRomL, bankRomH, bankRAM, bankCharset, bankKernal}
	m2 := [7]bankKind{bankRAM, bankRAM, bankRAM, bankRomH, bankRAM, bankCharset, bankKernal}
	m1 := [7]bankKind{bankRAM, bankRAM, bankRAM, bankRAM, bankRAM, bankRAM, bankRAM}

	mm := &memoryMap{}
	mm.modes = [31]configuration{
		newConfiguration(m1),
		newConfiguration(m2),
		newConfiguration(m3),
		newConfiguration(m12_8_4_0),
		newConfiguration(m5),
		newConfiguration(m6),
		newConfiguration(m7),
		newConfiguration(m12_8_4_0),
		newConfiguration(m25_9),
		newConfiguration(m26_10),
		newConfiguration(m11),
		newConfiguration(m12_8_4_0),
		newConfiguration(m29_13),
		newConfiguration(m30_14),
		newConfiguration(m15),
		newConfiguration(m23_16),
		newConfiguration(m23_16),
		newConfiguration(m23_16),
		newConfiguration(m23_16),
		newConfiguration(m23_16),
		newConfiguration(m23_16),
		newConfiguration(m23_16),
		newConfiguration(m23_16),
		newConfiguration(m28_24),
		newConfiguration(m25_9),
		newConfiguration(m26_10),
		newConfiguration(m27),
		newConfiguration(m28_24),
		newConfiguration(m29_13),
		newConfiguration(m30_14),
		newConfiguration(m31),
	}
	return mm
}

// get returns the configuration for mode (1-31).
func (m *memoryMap) get(mode uint8) configuration {
	if mode < 1 || mode > 31 {
		mode = 31
	}
	return m.modes[mode-1]
}
