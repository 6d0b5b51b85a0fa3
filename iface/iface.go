// Package iface collects the collaborator interfaces the c64 façade
// consumes but never implements itself: concrete video, audio, and
// image-loading behavior belongs to an embedder (cmd/c64, a test
// harness, ...), not to the emulator core.
package iface

import "github.com/go6510/c64/cartridge"

// VideoOutput is where VIC-II delivers its raster output. Write is
// called once per visible pixel with a palette index (0-15); SetSync
// marks the end of a frame so a renderer knows it's safe to present the
// buffer it has been accumulating.
type VideoOutput interface {
	GetDimension() (width, height int)
	SetSync(bool)
	Write(index int, colorIndex uint8)
}

// SoundOutput is where the SID chip delivers finished samples.
type SoundOutput interface {
	Write(sample int16)
}

// ImageKind identifies which loader produced a MountResult.
type ImageKind int

const (
	ImageBIN ImageKind = iota
	ImagePRG
	ImageCRT
	ImageTAP
)

// Tape is a pulse-stream tape source, as read by the datassette.
type Tape interface {
	ReadPulse() (length uint32, ok bool)
	Seek(pos int)
}

// MountResult is what an external image loader hands back to the c64
// façade: enough information to place the image's bytes (or cartridge/
// tape object) and, for an autostartable image, the PC to inject RUN at.
type MountResult struct {
	Kind      ImageKind
	Data      []uint8
	LoadAddr  uint16
	Autostart bool
	// Cartridge/Tape carry the already-parsed CRT/TAP payload; only one
	// of Data, Cartridge or Tape is meaningful for a given Kind.
	Cartridge *cartridge.Cartridge
	Tape      Tape
}
