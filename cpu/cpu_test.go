package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/kallstrom/gbcore/addr"
)

func TestPowerOnRegisterFile(t *testing.T) {
	c := New(newFakeBus())
	r := c.Registers()

	assert.Equal(t, uint16(0x0100), r.PC)
	assert.Equal(t, uint16(0xFFFE), r.SP)
	assert.False(t, c.IME())
	assert.False(t, c.Halted())
}

func TestDAAAfterAddition(t *testing.T) {
	b := newFakeBus()
	c := New(b)
	c.regs = Registers{A: 0x15, PC: 0x0100}

	b.mem[0x0100] = 0xC6 // ADD A,d8
	b.mem[0x0101] = 0x27
	b.mem[0x0102] = 0x27 // DAA

	assert.NoError(t, c.Step())
	assert.Equal(t, uint8(0x3C), c.regs.A)

	assert.NoError(t, c.Step())
	assert.Equal(t, uint8(0x42), c.regs.A)
	assert.False(t, c.regs.ZF())
	assert.False(t, c.regs.NF())
	assert.False(t, c.regs.HF())
	assert.False(t, c.regs.CF())
}

func TestHalfCarryOnIncRegister(t *testing.T) {
	b := newFakeBus()
	c := New(b)
	c.regs = Registers{A: 0x0F, PC: 0x0100}
	b.mem[0x0100] = 0x3C // INC A

	assert.NoError(t, c.Step())
	assert.Equal(t, uint8(0x10), c.regs.A)
	assert.False(t, c.regs.ZF())
	assert.False(t, c.regs.NF())
	assert.True(t, c.regs.HF())
}

func TestDecRegisterBoundaryHalfCarry(t *testing.T) {
	b := newFakeBus()
	c := New(b)
	c.regs = Registers{A: 0x00, PC: 0x0100}
	c.regs.SetFlags(FlagC, true)
	b.mem[0x0100] = 0x3D // DEC A

	assert.NoError(t, c.Step())
	assert.Equal(t, uint8(0xFF), c.regs.A)
	assert.False(t, c.regs.ZF())
	assert.True(t, c.regs.HF())
	assert.True(t, c.regs.NF())
	assert.True(t, c.regs.CF(), "DEC leaves C untouched")
}

// TestDecMemoryOperandHalfCarryBug pins down the source's documented
// half-carry defect: DEC (HL) reuses INC's (value&0x0F)+1>0x0F formula
// instead of the textbook (value&0x0F)==0 test. On 0x00 the two disagree,
// so (HL) and the register form diverge on the very same input.
func TestDecMemoryOperandHalfCarryBug(t *testing.T) {
	b := newFakeBus()
	c := New(b)
	c.regs = Registers{PC: 0x0100}
	c.regs.SetHL(0x9000)
	b.mem[0x9000] = 0x00
	b.mem[0x0100] = 0x35 // DEC (HL)

	assert.NoError(t, c.Step())
	assert.Equal(t, uint8(0xFF), b.mem[0x9000])
	assert.False(t, c.regs.HF(), "the buggy shared formula reports no half-carry here")
}

func TestInterruptPriorityLowestBitServicedFirst(t *testing.T) {
	b := newFakeBus()
	c := New(b)
	c.regs = Registers{PC: 0x0100, SP: 0xFFFE}
	c.ime = true
	b.pending = uint8(addr.Stat) | uint8(addr.Timer)
	b.mem[0x0100] = 0x00 // NOP

	assert.NoError(t, c.Step())

	assert.Equal(t, addr.VectorFor(1), c.regs.PC) // Stat, the lower bit, wins
	assert.False(t, c.IME())
	assert.Equal(t, []addr.Interrupt{addr.Stat}, b.acked)

	lo := b.mem[c.regs.SP]
	hi := b.mem[c.regs.SP+1]
	assert.Equal(t, uint16(0x0101), uint16(hi)<<8|uint16(lo))
}

func TestHaltWakesWithoutServicingWhenIMEClear(t *testing.T) {
	b := newFakeBus()
	c := New(b)
	c.regs = Registers{PC: 0x0100}
	c.ime = false
	b.mem[0x0100] = 0x76 // HALT
	b.mem[0x0101] = 0x00 // NOP, the instruction resumed at

	assert.NoError(t, c.Step())
	assert.True(t, c.Halted())

	b.pending = uint8(addr.Timer)

	assert.NoError(t, c.Step())
	assert.False(t, c.Halted())
	assert.Equal(t, uint16(0x0102), c.regs.PC)
	assert.Empty(t, b.acked)
}

func TestEIDeferredEnable(t *testing.T) {
	b := newFakeBus()
	c := New(b)
	c.regs = Registers{PC: 0x0100}
	b.mem[0x0100] = 0xFB // EI
	b.mem[0x0101] = 0x00 // NOP

	assert.NoError(t, c.Step())
	assert.False(t, c.IME(), "IME takes effect after the instruction following EI")

	assert.NoError(t, c.Step())
	assert.True(t, c.IME())
}

func TestFlagsLowNibbleAlwaysZero(t *testing.T) {
	b := newFakeBus()
	c := New(b)
	c.regs = Registers{A: 0xFF, PC: 0x0100}
	b.mem[0x0100] = 0x3C // INC A (wraps to 0, Z set)

	assert.NoError(t, c.Step())
	assert.Zero(t, c.regs.F&0x0F)
}

func TestPushPopRoundTrip(t *testing.T) {
	b := newFakeBus()
	c := New(b)
	c.regs = Registers{PC: 0x0100, SP: 0xFFFE}
	c.regs.SetBC(0x1234)

	b.mem[0x0100] = 0xC5 // PUSH BC
	b.mem[0x0101] = 0xD1 // POP DE

	before := b.cycles
	assert.NoError(t, c.Step())
	assert.Equal(t, before+4, b.cycles) // PUSH costs exactly 4 M-cycles

	assert.NoError(t, c.Step())
	assert.Equal(t, uint16(0x1234), c.regs.DE())
}

func TestAddSubRoundTripLeavesAUnchanged(t *testing.T) {
	b := newFakeBus()
	c := New(b)
	c.regs = Registers{A: 0x42, B: 0x10, PC: 0x0100}

	b.mem[0x0100] = 0x80 // ADD A,B
	b.mem[0x0101] = 0x90 // SUB B

	assert.NoError(t, c.Step())
	assert.NoError(t, c.Step())
	assert.Equal(t, uint8(0x42), c.regs.A)
}

func TestRLCEightTimesIsIdentity(t *testing.T) {
	b := newFakeBus()
	c := New(b)
	c.regs = Registers{A: 0xA5, PC: 0x0100}

	for i := 0; i < 8; i++ {
		b.mem[0x0100+uint16(i)*2] = 0xCB
		b.mem[0x0101+uint16(i)*2] = 0x07 // RLC A
	}
	for i := 0; i < 8; i++ {
		assert.NoError(t, c.Step())
	}
	assert.Equal(t, uint8(0xA5), c.regs.A)
}

func TestSwapTwiceIsIdentity(t *testing.T) {
	b := newFakeBus()
	c := New(b)
	c.regs = Registers{A: 0x3C, PC: 0x0100}
	b.mem[0x0100] = 0xCB
	b.mem[0x0101] = 0x37 // SWAP A
	b.mem[0x0102] = 0xCB
	b.mem[0x0103] = 0x37 // SWAP A again

	assert.NoError(t, c.Step())
	assert.Equal(t, uint8(0xC3), c.regs.A)
	assert.NoError(t, c.Step())
	assert.Equal(t, uint8(0x3C), c.regs.A)
}

func TestCPLTwiceIsIdentityAndSetsNH(t *testing.T) {
	b := newFakeBus()
	c := New(b)
	c.regs = Registers{A: 0x3C, PC: 0x0100}
	b.mem[0x0100] = 0x2F // CPL
	b.mem[0x0101] = 0x2F // CPL

	assert.NoError(t, c.Step())
	assert.Equal(t, uint8(0xC3), c.regs.A)
	assert.True(t, c.regs.NF())
	assert.True(t, c.regs.HF())

	assert.NoError(t, c.Step())
	assert.Equal(t, uint8(0x3C), c.regs.A)
}

func TestBITDoesNotMutateOperand(t *testing.T) {
	b := newFakeBus()
	c := New(b)
	c.regs = Registers{A: 0x40, PC: 0x0100}
	b.mem[0x0100] = 0xCB
	b.mem[0x0101] = 0x77 // BIT 6,A

	assert.NoError(t, c.Step())
	assert.Equal(t, uint8(0x40), c.regs.A)
	assert.False(t, c.regs.ZF())
}

func TestCCFTwiceLeavesCarryUnchanged(t *testing.T) {
	b := newFakeBus()
	c := New(b)
	c.regs = Registers{PC: 0x0100}
	c.regs.SetFlags(FlagC, true)
	b.mem[0x0100] = 0x3F // CCF
	b.mem[0x0101] = 0x3F // CCF

	assert.NoError(t, c.Step())
	assert.False(t, c.regs.CF())
	assert.NoError(t, c.Step())
	assert.True(t, c.regs.CF())
	assert.False(t, c.regs.NF())
	assert.False(t, c.regs.HF())
}

func TestAddHLHLDoublesHL(t *testing.T) {
	b := newFakeBus()
	c := New(b)
	c.regs = Registers{PC: 0x0100}
	c.regs.SetHL(0x1234)
	b.mem[0x0100] = 0x29 // ADD HL,HL

	assert.NoError(t, c.Step())
	assert.Equal(t, uint16(0x2468), c.regs.HL())
}

func TestLoadHLFromSPPlusZeroMatchesSPAndClearsFlags(t *testing.T) {
	b := newFakeBus()
	c := New(b)
	c.regs = Registers{PC: 0x0100, SP: 0xC100}
	c.regs.SetFlags(FlagZ|FlagN|FlagH|FlagC, true)
	b.mem[0x0100] = 0xF8 // LD HL,SP+d8
	b.mem[0x0101] = 0x00

	assert.NoError(t, c.Step())
	assert.Equal(t, uint16(0xC100), c.regs.HL())
	assert.Zero(t, c.regs.F)
}

func TestJPHLCostsExactlyOneMachineCycle(t *testing.T) {
	b := newFakeBus()
	c := New(b)
	c.regs = Registers{PC: 0x0100}
	c.regs.SetHL(0x9000)
	b.mem[0x0100] = 0xE9 // JP (HL)

	before := b.cycles
	assert.NoError(t, c.Step())
	assert.Equal(t, before+1, b.cycles)
	assert.Equal(t, uint16(0x9000), c.regs.PC)
}

func TestRetCCChargesInternalTickRegardlessOfOutcome(t *testing.T) {
	b := newFakeBus()
	c := New(b)
	c.regs = Registers{PC: 0x0100, SP: 0xFFFC}
	c.regs.SetFlags(FlagZ, false)
	b.mem[0x0100] = 0xC0 // RET NZ; Z is clear, so NZ holds and the return is taken

	before := b.cycles
	assert.NoError(t, c.Step())
	assert.Equal(t, before+5, b.cycles) // condition true: taken, 5 M-cycles
}

func TestRetCCNotTakenCostsTwoMachineCycles(t *testing.T) {
	b := newFakeBus()
	c := New(b)
	c.regs = Registers{PC: 0x0100, SP: 0xFFFC}
	c.regs.SetFlags(FlagZ, true)
	b.mem[0x0100] = 0xC0 // RET NZ, Z is set so NZ is false: not taken

	before := b.cycles
	assert.NoError(t, c.Step())
	assert.Equal(t, before+2, b.cycles)
}

func TestUndefinedOpcodeReturnsFatalError(t *testing.T) {
	b := newFakeBus()
	c := New(b)
	c.regs = Registers{PC: 0x0100}
	b.mem[0x0100] = 0xD3 // undefined

	err := c.Step()
	var undef *UndefinedOpcodeError
	assert.ErrorAs(t, err, &undef)
	assert.Equal(t, uint8(0xD3), undef.Opcode)
	assert.Equal(t, uint16(0x0100), undef.PC)
}

func TestMasterCycleCounterMonotonic(t *testing.T) {
	b := newFakeBus()
	c := New(b)
	c.regs = Registers{PC: 0x0100}
	b.mem[0x0100] = 0x00 // NOP
	b.mem[0x0101] = 0x00 // NOP

	before := b.cycles
	assert.NoError(t, c.Step())
	mid := b.cycles
	assert.Greater(t, mid, before)
	assert.NoError(t, c.Step())
	assert.Greater(t, b.cycles, mid)
}
