// Package interrupt implements the LR35902's interrupt request/enable
// registers (IF/IE) and the lowest-bit-first priority rule the CPU uses
// to pick which pending interrupt to service.
package interrupt

import "github.com/kallstrom/gbcore/addr"

// definedBits masks IF down to the five interrupt sources hardware
// actually implements; the remaining bits always read back as 1.
const definedBits = uint8(addr.VBlank | addr.Stat | addr.Timer | addr.Serial | addr.Joypad)

// Controller holds the IF (request) and IE (enable) registers.
type Controller struct {
	ifReg uint8
	ie    uint8
}

// New returns a controller with both registers cleared.
func New() *Controller {
	return &Controller{}
}

// Request ORs kind into the IF register.
func (c *Controller) Request(kind addr.Interrupt) {
	c.ifReg |= uint8(kind) & definedBits
}

// SetIF stores a raw byte into IF, keeping only the five defined bits.
func (c *Controller) SetIF(value uint8) {
	c.ifReg = value & definedBits
}

// GetIF returns IF with the unused upper bits forced to 1, matching hardware.
func (c *Controller) GetIF() uint8 {
	return c.ifReg | ^definedBits
}

// SetIE stores the full 8-bit enable mask.
func (c *Controller) SetIE(value uint8) {
	c.ie = value
}

// GetIE returns the raw 8-bit enable mask.
func (c *Controller) GetIE() uint8 {
	return c.ie
}

// Pending returns the set of interrupts that are both requested and enabled.
func (c *Controller) Pending() uint8 {
	return c.ifReg & c.ie & definedBits
}

// Acknowledge clears kind's bit in IF.
func (c *Controller) Acknowledge(kind addr.Interrupt) {
	c.ifReg &^= uint8(kind)
}

// LowestPending isolates the lowest-numbered set bit of the pending mask,
// along with its bit index (0=VBlank .. 4=Joypad). ok is false when nothing
// is pending. Uses the standard two's-complement "isolate lowest set bit"
// idiom: pending & -pending.
func LowestPending(pending uint8) (bit uint8, index uint8, ok bool) {
	if pending == 0 {
		return 0, 0, false
	}

	lowest := pending & (^pending + 1)
	for i := uint8(0); i < 5; i++ {
		if lowest == 1<<i {
			return lowest, i, true
		}
	}

	return 0, 0, false
}
