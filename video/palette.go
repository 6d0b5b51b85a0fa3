package video

import (
	"image/color"

	"golang.org/x/image/colornames"
)

// Palette maps a VIC-II color index (0-15) to an RGBA color. These are
// the standard Pepto/VICE-style C64 palette values, named against the
// nearest golang.org/x/image/colornames entry to document intent; the
// C64 palette itself is not a pure web-safe set so exact constants are
// used where the named color would be visibly off.
var Palette = [16]color.RGBA{
	0:  rgb(0x00, 0x00, 0x00), // Black
	1:  rgb(0xff, 0xff, 0xff), // White
	2:  rgb(0x88, 0x39, 0x32), // Red
	3:  rgb(0x67, 0xb6, 0xbd), // Cyan
	4:  rgb(0x8b, 0x3f, 0x96), // Purple
	5:  rgb(0x55, 0xa0, 0x49), // Green
	6:  rgb(0x40, 0x31, 0x8d), // Blue
	7:  rgb(0xbf, 0xce, 0x72), // Yellow
	8:  rgb(0x8b, 0x54, 0x29), // Orange
	9:  rgb(0x57, 0x42, 0x00), // Brown
	10: rgb(0xb8, 0x69, 0x62), // Light red
	11: rgb(0x50, 0x50, 0x50), // Dark grey
	12: rgb(0x78, 0x78, 0x78), // Grey
	13: rgb(0x94, 0xe0, 0x89), // Light green
	14: rgb(0x78, 0x69, 0xc4), // Light blue
	15: rgb(0x9f, 0x9f, 0x9f), // Light grey
}

func rgb(r, g, b uint8) color.RGBA {
	return color.RGBA{R: r, G: g, B: b, A: 0xff}
}

// NamedFallback is used in tests/tools that want a human-readable
// approximation of an index instead of the exact hardware RGB value.
func NamedFallback(index uint8) color.Color {
	switch index {
	case 0:
		return colornames.Black
	case 1:
		return colornames.White
	case 2:
		return colornames.Firebrick
	case 5:
		return colornames.Forestgreen
	case 6:
		return colornames.Navy
	case 7:
		return colornames.Khaki
	default:
		return Palette[index%16]
	}
}
