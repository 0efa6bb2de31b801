// Package cpu implements the LR35902 fetch/decode/execute loop: the
// register file, the eight addressing modes, the ALU, the rotate/shift/bit
// engine, control flow and stack machinery, and interrupt dispatch.
package cpu

import (
	"fmt"

	"github.com/kallstrom/gbcore/addr"
	"github.com/kallstrom/gbcore/interrupt"
)

// Bus is the memory contract the CPU drives. Peek/Set are untimed; Read/
// Write advance the bus's clock by one machine cycle (and tick the timer
// four T-cycles) at the moment of the access. Tick lets the CPU charge
// purely-internal cycles (16-bit ALU ops, taken branches, stack spacers)
// that don't correspond to a memory access.
type Bus interface {
	Peek(address uint16) uint8
	Set(address uint16, value uint8)
	Read(address uint16) uint8
	Write(address uint16, value uint8)
	Tick(mCycles int)
	Pending() uint8
	AcknowledgeInterrupt(kind addr.Interrupt)
}

// UndefinedOpcodeError is returned from Step when the fetched opcode is one
// of the eleven bytes the LR35902 never defines, or is STOP (modeled as
// fatal in this core rather than the low-power state real hardware enters).
type UndefinedOpcodeError struct {
	Opcode uint8
	PC     uint16
}

func (e *UndefinedOpcodeError) Error() string {
	return fmt.Sprintf("cpu: undefined opcode 0x%02X at PC=0x%04X", e.Opcode, e.PC)
}

// CPU holds the LR35902's register file and execution state, and drives a
// Bus through every memory access it performs.
type CPU struct {
	regs Registers
	bus  Bus

	currentOpcode uint8
	halted        bool
	ime           bool
	pendingEI     bool
}

// New returns a CPU reset to the documented power-on register state.
func New(bus Bus) *CPU {
	return &CPU{regs: PowerOn(), bus: bus}
}

// Registers exposes a read-only view of the register file, mainly for
// tests and diagnostics (the disassembler, a future debugger).
func (c *CPU) Registers() Registers { return c.regs }

// IME reports whether the master interrupt enable is currently set.
func (c *CPU) IME() bool { return c.ime }

// Halted reports whether the CPU is in the HALTED state.
func (c *CPU) Halted() bool { return c.halted }

func (c *CPU) imm8() uint8 {
	v := c.bus.Read(c.regs.PC)
	c.regs.PC++
	return v
}

func (c *CPU) imm16() uint16 {
	lo := c.imm8()
	hi := c.imm8()
	return uint16(hi)<<8 | uint16(lo)
}

// pushStack pushes a 16-bit value, one internal tick then two timed writes,
// matching the hardware push sequence (high byte first, SP decrementing
// before each write).
func (c *CPU) pushStack(value uint16) {
	c.bus.Tick(1)
	c.regs.DecSP()
	c.bus.Write(c.regs.SP, uint8(value>>8))
	c.regs.DecSP()
	c.bus.Write(c.regs.SP, uint8(value))
}

// popStack pops a 16-bit value, low byte first, SP incrementing after each read.
func (c *CPU) popStack() uint16 {
	lo := c.bus.Read(c.regs.SP)
	c.regs.IncSP()
	hi := c.bus.Read(c.regs.SP)
	c.regs.IncSP()
	return uint16(hi)<<8 | uint16(lo)
}

// Step executes exactly one step of the fetch/decode/execute/interrupt
// cycle described by the core's design: fetch (or, if halted, just tick and
// check for wakeup), dispatch, apply the EI delay, and finally service at
// most one pending interrupt.
func (c *CPU) Step() error {
	// pending_ei carries over from EI in the previous step; only a flag that was
	// already set when THIS step began is due to take effect now. A flag
	// EI sets during this very step's dispatch must wait for the step
	// after that, which is what makes EI's enable land one instruction late.
	eiDueThisStep := c.pendingEI

	if c.halted {
		c.bus.Tick(1)
		if c.bus.Pending() != 0 {
			c.halted = false
		} else {
			return c.afterInstruction(eiDueThisStep)
		}
	}

	pc := c.regs.PC
	c.currentOpcode = c.bus.Read(pc)
	c.regs.PC++

	handler := opcodeTable[c.currentOpcode]
	if handler == nil {
		return &UndefinedOpcodeError{Opcode: c.currentOpcode, PC: pc}
	}
	handler(c)

	return c.afterInstruction(eiDueThisStep)
}

// afterInstruction runs the EI-delay and interrupt-check phase shared by
// both the normal and HALTED paths of Step. eiDueThisStep is whatever
// pending_ei held before this step's dispatch ran: true here means EI ran
// in the previous step, so IME takes effect now, before the interrupt
// check — the instruction right after EI is the first one that can be
// interrupted.
func (c *CPU) afterInstruction(eiDueThisStep bool) error {
	if eiDueThisStep {
		c.ime = true
		c.pendingEI = false
	}

	if c.ime {
		c.serviceInterrupt()
	}

	return nil
}

// serviceInterrupt runs the interrupt-service sequence: pick the lowest
// pending bit, clear IME and HALTED, charge the hardware spacer cycle, push
// PC, jump to the vector, and acknowledge the bit in IF. Does nothing if no
// interrupt is pending.
func (c *CPU) serviceInterrupt() {
	_, index, ok := interrupt.LowestPending(c.bus.Pending())
	if !ok {
		return
	}

	c.ime = false
	c.halted = false
	c.bus.Tick(1)
	c.pushStack(c.regs.PC)
	c.regs.PC = addr.VectorFor(index)
	c.bus.AcknowledgeInterrupt(addr.Interrupt(1 << index))
}
