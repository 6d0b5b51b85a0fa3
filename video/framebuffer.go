// Package video provides the frame buffer VIC-II renders into: the
// concrete implementation of iface.VideoOutput that the c64 façade
// hands the VIC-II chip, kept separate from vic so the chip package
// never has to know about image.Image or palette conversion.
package video

import (
	"image"
	"sync"
)

// FrameBuffer stores one frame as a width x height grid of palette
// indices, plus the vsync handoff flag the façade polls each tick per
// the concurrency model: VIC writes pixels and sets sync, the façade
// takes and clears it with TakeSync, and no renderer reads mid-frame.
type FrameBuffer struct {
	mu     sync.Mutex
	width  int
	height int
	pixels []uint8
	synced bool
}

// NewFrameBuffer allocates a width x height indexed frame buffer.
func NewFrameBuffer(width, height int) *FrameBuffer {
	return &FrameBuffer{
		width:  width,
		height: height,
		pixels: make([]uint8, width*height),
	}
}

// GetDimension implements iface.VideoOutput.
func (f *FrameBuffer) GetDimension() (int, int) { return f.width, f.height }

// Write implements iface.VideoOutput: index is y*width+x, matching how
// vic.Chip addresses pixels.
func (f *FrameBuffer) Write(index int, colorIndex uint8) {
	if index < 0 || index >= len(f.pixels) {
		return
	}
	f.pixels[index] = colorIndex
}

// SetSync implements iface.VideoOutput.
func (f *FrameBuffer) SetSync(s bool) {
	f.mu.Lock()
	f.synced = s
	f.mu.Unlock()
}

// TakeSync reports whether a frame completed since the last call and
// clears the flag, the same take-and-clear convention chipset.IrqControl
// uses for its pending bits.
func (f *FrameBuffer) TakeSync() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	v := f.synced
	f.synced = false
	return v
}

// Image renders the current buffer to a standard image.RGBA using the
// VIC-II palette, for a renderer (cmd/c64, or a test asserting on
// pixels) that wants a normal Go image rather than raw indices.
func (f *FrameBuffer) Image() *image.RGBA {
	f.mu.Lock()
	defer f.mu.Unlock()
	img := image.NewRGBA(image.Rect(0, 0, f.width, f.height))
	for y := 0; y < f.height; y++ {
		for x := 0; x < f.width; x++ {
			idx := f.pixels[y*f.width+x]
			img.SetRGBA(x, y, Palette[idx%16])
		}
	}
	return img
}
