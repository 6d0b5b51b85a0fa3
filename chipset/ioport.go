package chipset

// IoPort models a bi-directional 8 bit I/O port such as the CPU port at
// $0000/$0001 or the CIA2 port driving the VIC bank select. direction
// bits set to 1 mean the corresponding bit is driven by output; bits
// set to 0 read whatever external input is presented on that line.
type IoPort struct {
	direction uint8
	output    uint8
	input     uint8
	// Observer, if non-nil, is called with the resolved port value any
	// time direction, output or input changes. The MMU uses this to
	// re-evaluate the active bank configuration on every CPU port write.
	Observer func(uint8)
}

// NewIoPort returns an IoPort with all lines floating (direction 0,
// input pulled high as is typical for an unconnected CMOS/NMOS input).
func NewIoPort() *IoPort {
	return &IoPort{input: 0xff}
}

// SetDirection updates the data direction register (1 = output).
func (p *IoPort) SetDirection(dir uint8) {
	p.direction = dir
	p.notify()
}

// Direction returns the current data direction register.
func (p *IoPort) Direction() uint8 {
	return p.direction
}

// SetOutput updates the output latch.
func (p *IoPort) SetOutput(out uint8) {
	p.output = out
	p.notify()
}

// Output returns the current output latch.
func (p *IoPort) Output() uint8 {
	return p.output
}

// SetInput drives the external input lines (e.g. the expansion port
// presenting GAME/EXROM sense, or a cartridge holding a line low).
func (p *IoPort) SetInput(in uint8) {
	p.input = in
	p.notify()
}

// SetValue is a convenience used by external drivers (expansion port,
// datassette) that only ever want to present input bits without
// touching direction, mirroring the original device's set_value helper.
func (p *IoPort) SetValue(v uint8) {
	p.SetInput(v)
}

// Value returns the resolved bus value: output bits where direction is
// output, input bits everywhere else.
func (p *IoPort) Value() uint8 {
	return (p.output & p.direction) | (p.input &^ p.direction)
}

func (p *IoPort) notify() {
	if p.Observer != nil {
		p.Observer(p.Value())
	}
}
