// Package chipset defines the small shared primitives that the C64 chips
// (cpu, cia, vic) use to exchange state without calling each other
// directly. Every cross-chip signal on real hardware (an IRQ line, a
// data port, the bus available pin) becomes one of these types so chips
// only ever touch shared state, never each other.
package chipset

// Pin is a single electrical signal shared between chips. It tracks a
// boolean level and nothing else; chips read Get and assert with Set.
type Pin struct {
	level bool
}

// NewPin returns a Pin initialized to the given level.
func NewPin(level bool) *Pin {
	return &Pin{level: level}
}

// Set drives the pin to the given level.
func (p *Pin) Set(level bool) {
	p.level = level
}

// Get returns the current level.
func (p *Pin) Get() bool {
	return p.level
}

// Raised implements irq.Sender by treating a high pin as an asserted
// interrupt request.
func (p *Pin) Raised() bool {
	return p.level
}
