package cpu

// Cond names one of the four branch conditions a conditional jump, call or
// return can test.
type Cond uint8

const (
	CondNZ Cond = iota
	CondZ
	CondNC
	CondC
)

func (c *CPU) test(cond Cond) bool {
	switch cond {
	case CondNZ:
		return !c.regs.ZF()
	case CondZ:
		return c.regs.ZF()
	case CondNC:
		return !c.regs.CF()
	case CondC:
		return c.regs.CF()
	default:
		panic("cpu: invalid branch condition")
	}
}

// jp reads an absolute 16-bit target and jumps unconditionally, charging
// the internal cycle real hardware spends computing the new PC.
func (c *CPU) jp() {
	c.regs.PC = c.imm16()
	c.bus.Tick(1)
}

// jpHL jumps to HL directly; unlike every other jump it costs no extra
// internal cycle since HL is already resolved.
func (c *CPU) jpHL() {
	c.regs.PC = c.regs.HL()
}

// jpCC reads the absolute target unconditionally (it's still fetched off
// the instruction stream either way) and jumps only if cond holds, charging
// the extra internal cycle for the taken branch.
func (c *CPU) jpCC(cond Cond) {
	target := c.imm16()
	if c.test(cond) {
		c.regs.PC = target
		c.bus.Tick(1)
	}
}

// jr reads a signed 8-bit displacement and jumps PC-relative, unconditionally.
func (c *CPU) jr() {
	d := int8(c.imm8())
	c.regs.PC = uint16(int32(c.regs.PC) + int32(d))
	c.bus.Tick(1)
}

// jrCC reads the displacement unconditionally and jumps only if cond holds.
func (c *CPU) jrCC(cond Cond) {
	d := int8(c.imm8())
	if c.test(cond) {
		c.regs.PC = uint16(int32(c.regs.PC) + int32(d))
		c.bus.Tick(1)
	}
}

// call reads an absolute target, pushes the return address, and jumps.
func (c *CPU) call() {
	target := c.imm16()
	c.pushStack(c.regs.PC)
	c.regs.PC = target
}

// callCC reads the target unconditionally but only pushes/jumps if cond holds.
func (c *CPU) callCC(cond Cond) {
	target := c.imm16()
	if c.test(cond) {
		c.pushStack(c.regs.PC)
		c.regs.PC = target
	}
}

// ret pops the return address and charges the internal cycle hardware
// spends latching it into PC.
func (c *CPU) ret() {
	c.regs.PC = c.popStack()
	c.bus.Tick(1)
}

// retCC charges one internal cycle to test the condition before popping,
// whether or not the branch is taken, and a second internal cycle after
// the pop if the branch is taken.
func (c *CPU) retCC(cond Cond) {
	c.bus.Tick(1)
	if c.test(cond) {
		c.regs.PC = c.popStack()
		c.bus.Tick(1)
	}
}

// reti pops the return address and sets IME in the same atomic step, unlike
// EI's deferred enable.
func (c *CPU) reti() {
	c.regs.PC = c.popStack()
	c.bus.Tick(1)
	c.ime = true
}

// rst pushes PC and jumps to one of the eight fixed zero-page vectors
// encoded in the opcode's bits 3-5.
func (c *CPU) rst(target uint16) {
	c.pushStack(c.regs.PC)
	c.regs.PC = target
}
