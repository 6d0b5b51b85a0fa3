// Package debug implements the breakpoint manager and disassembly
// inspector the c64 façade exposes to an external debugger front-end.
package debug

import (
	"fmt"
)

// Register names a CPU register a condition expression can compare.
type Register int

const (
	RegA Register = iota
	RegX
	RegY
	RegP
	RegSP
	RegPC
)

// CPUState is the minimal register snapshot a condition is evaluated
// against; the c64 façade fills this in from cpu.Chip each check.
type CPUState struct {
	A, X, Y, P, SP uint8
	PC             uint16
}

func (s CPUState) value(r Register) uint16 {
	switch r {
	case RegA:
		return uint16(s.A)
	case RegX:
		return uint16(s.X)
	case RegY:
		return uint16(s.Y)
	case RegP:
		return uint16(s.P)
	case RegSP:
		return uint16(s.SP)
	case RegPC:
		return s.PC
	}
	return 0
}

// Op is a condition comparison operator.
type Op int

const (
	OpEQ Op = iota
	OpNE
	OpLT
	OpLE
	OpGT
	OpGE
)

// Condition compares one register against either a constant or another
// register.
type Condition struct {
	Lhs      Register
	Op       Op
	RhsIsReg bool
	RhsReg   Register
	RhsConst uint16
}

// Eval reports whether the condition holds for the given state.
func (c *Condition) Eval(s CPUState) bool {
	lhs := s.value(c.Lhs)
	rhs := c.RhsConst
	if c.RhsIsReg {
		rhs = s.value(c.RhsReg)
	}
	switch c.Op {
	case OpEQ:
		return lhs == rhs
	case OpNE:
		return lhs != rhs
	case OpLT:
		return lhs < rhs
	case OpLE:
		return lhs <= rhs
	case OpGT:
		return lhs > rhs
	case OpGE:
		return lhs >= rhs
	}
	return false
}

// Breakpoint is one entry in the breakpoint manager's ordered list.
type Breakpoint struct {
	Index       int
	Address     uint16
	Enabled     bool
	Condition   *Condition // nil means unconditional.
	Ignore      int
	AutoDelete  bool
}

// Manager holds an ordered breakpoint list and evaluates it against the
// CPU's state once per step.
type Manager struct {
	breakpoints []*Breakpoint
	nextIndex   int
}

// NewManager returns an empty breakpoint manager.
func NewManager() *Manager {
	return &Manager{}
}

// Add appends a new breakpoint at addr and returns it so the caller can
// set Condition/Ignore/AutoDelete before resuming.
func (m *Manager) Add(addr uint16) *Breakpoint {
	bp := &Breakpoint{Index: m.nextIndex, Address: addr, Enabled: true}
	m.nextIndex++
	m.breakpoints = append(m.breakpoints, bp)
	return bp
}

// Remove deletes the breakpoint with the given index, if present.
func (m *Manager) Remove(index int) {
	for i, bp := range m.breakpoints {
		if bp.Index == index {
			m.breakpoints = append(m.breakpoints[:i], m.breakpoints[i+1:]...)
			return
		}
	}
}

// List returns the breakpoints in insertion order.
func (m *Manager) List() []*Breakpoint {
	return m.breakpoints
}

// Check iterates the breakpoint list against the current CPU state. On
// the first enabled, address-matching breakpoint whose condition (if
// any) evaluates true and whose ignore-count has reached zero, it
// returns that breakpoint's index. An autodelete breakpoint is removed
// once hit - how "run until address" is implemented on top of this.
func (m *Manager) Check(s CPUState) (int, bool) {
	for i, bp := range m.breakpoints {
		if !bp.Enabled || bp.Address != s.PC {
			continue
		}
		if bp.Condition != nil && !bp.Condition.Eval(s) {
			continue
		}
		if bp.Ignore > 0 {
			bp.Ignore--
			continue
		}
		idx := bp.Index
		if bp.AutoDelete {
			m.breakpoints = append(m.breakpoints[:i], m.breakpoints[i+1:]...)
		}
		return idx, true
	}
	return 0, false
}

// RunUntil installs an autodelete, unconditional breakpoint at addr,
// the standard way to implement a debugger's "run until address".
func (m *Manager) RunUntil(addr uint16) *Breakpoint {
	bp := m.Add(addr)
	bp.AutoDelete = true
	return bp
}

func (r Register) String() string {
	switch r {
	case RegA:
		return "A"
	case RegX:
		return "X"
	case RegY:
		return "Y"
	case RegP:
		return "P"
	case RegSP:
		return "SP"
	case RegPC:
		return "PC"
	}
	return fmt.Sprintf("Register(%d)", int(r))
}
