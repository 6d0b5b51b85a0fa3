package chipset

// Clock is the master cycle counter shared by every chip. Each chip
// advances its own internal state one tick per Clock.Elapsed() step;
// the clock itself only counts, it never drives anything directly.
type Clock struct {
	elapsed uint64
}

// Tick advances the master clock by one system cycle.
func (c *Clock) Tick() {
	c.elapsed++
}

// TickDelta advances the master clock by n system cycles at once, for
// chips that batch several cycles of work (e.g. a tape motor running
// free between CPU-visible events) before reporting back.
func (c *Clock) TickDelta(n uint64) {
	c.elapsed += n
}

// Reset zeroes the cycle counter, independent of any chip's own reset.
func (c *Clock) Reset() {
	c.elapsed = 0
}

// Get returns the total number of system cycles seen so far.
func (c *Clock) Get() uint64 {
	return c.elapsed
}

// Elapsed returns the total number of system cycles seen so far.
func (c *Clock) Elapsed() uint64 {
	return c.elapsed
}

// ElapsedSince returns the number of cycles that have passed since prev,
// a value previously obtained from Get. Lets a chip or debug tool ask
// "how long since X" without caching its own copy of the counter.
func (c *Clock) ElapsedSince(prev uint64) uint64 {
	return c.elapsed - prev
}

// CPUPort models the 6510's built-in data direction/port registers
// mapped at $0000/$0001. The MMU special-cases those two addresses and
// routes them here instead of through the bank table; the resolved
// value also drives the LORAM/HIRAM/CHAREN bank-switch inputs, so the
// port is shared between the CPU and the MMU rather than owned
// privately by either.
type CPUPort struct {
	IoPort
}

// NewCPUPort returns a CPUPort with the reset default: data direction
// $2F makes bits 0-3 and 5 outputs (the three bank-control lines,
// cassette write and cassette motor) and bits 4, 6 and 7 inputs; the
// output latch $37 drives the bank-control and motor lines high and
// cassette write low.
func NewCPUPort() *CPUPort {
	p := &CPUPort{}
	p.direction = 0x2f
	p.output = 0x37
	p.input = 0xff
	return p
}
