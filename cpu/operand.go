package cpu

// RegID names one of the seven 8-bit registers addressable as a source or
// destination by the opcode table.
type RegID uint8

const (
	RegA RegID = iota
	RegB
	RegC
	RegD
	RegE
	RegH
	RegL
)

func (r RegID) String() string {
	return [...]string{"A", "B", "C", "D", "E", "H", "L"}[r]
}

// Get reads a register directly out of the register file.
func (r *Registers) Get(id RegID) uint8 {
	switch id {
	case RegA:
		return r.A
	case RegB:
		return r.B
	case RegC:
		return r.C
	case RegD:
		return r.D
	case RegE:
		return r.E
	case RegH:
		return r.H
	case RegL:
		return r.L
	default:
		panic("cpu: invalid register id")
	}
}

// Set writes a register directly into the register file.
func (r *Registers) Set(id RegID, value uint8) {
	switch id {
	case RegA:
		r.A = value
	case RegB:
		r.B = value
	case RegC:
		r.C = value
	case RegD:
		r.D = value
	case RegE:
		r.E = value
	case RegH:
		r.H = value
	case RegL:
		r.L = value
	default:
		panic("cpu: invalid register id")
	}
}

// AddrMode names one of the memory addressing modes a Src8/Dst8 memory
// operand can resolve to. Resolving the address may itself read memory
// (Absolute, ZeroPage read an immediate) and may mutate HL (HLI, HLD).
type AddrMode uint8

const (
	AddrHL AddrMode = iota
	AddrBC
	AddrDE
	AddrHLI
	AddrHLD
	AddrAbsolute
	AddrZeroPage
	AddrZeroPageC
)

// resolve computes the 16-bit address for a memory addressing mode,
// consuming any immediate bytes and adjusting HL for HLI/HLD.
func (c *CPU) resolve(mode AddrMode) uint16 {
	switch mode {
	case AddrHL:
		return c.regs.HL()
	case AddrBC:
		return c.regs.BC()
	case AddrDE:
		return c.regs.DE()
	case AddrHLI:
		hl := c.regs.HL()
		c.regs.IncHL()
		return hl
	case AddrHLD:
		hl := c.regs.HL()
		c.regs.DecHL()
		return hl
	case AddrAbsolute:
		return c.imm16()
	case AddrZeroPage:
		return 0xFF00 | uint16(c.imm8())
	case AddrZeroPageC:
		return 0xFF00 | uint16(c.regs.C)
	default:
		panic("cpu: invalid addressing mode")
	}
}

// operandKind tags which of the three Src8/Dst8 variants an Operand8 is:
// a plain register, a memory cell reached through an AddrMode, or (source
// only) the next immediate byte. Using a tagged variant instead of an
// interface keeps dispatch a flat switch instead of a v-table.
type operandKind uint8

const (
	kindReg operandKind = iota
	kindMem
	kindImm
)

// Operand8 is a source or destination for an 8-bit instruction operand.
type Operand8 struct {
	kind operandKind
	reg  RegID
	mode AddrMode
}

// Reg builds a register operand.
func Reg(id RegID) Operand8 { return Operand8{kind: kindReg, reg: id} }

// Mem builds a memory operand resolved through the given addressing mode.
func Mem(mode AddrMode) Operand8 { return Operand8{kind: kindMem, mode: mode} }

// Imm is the "read the next immediate byte" source operand.
var Imm = Operand8{kind: kindImm}

// Read loads the operand's value, consuming memory cycles as appropriate
// (an immediate or absolute address read, plus the timed bus access for a
// memory operand).
func (o Operand8) Read(c *CPU) uint8 {
	switch o.kind {
	case kindReg:
		return c.regs.Get(o.reg)
	case kindMem:
		address := c.resolve(o.mode)
		return c.bus.Read(address)
	case kindImm:
		return c.imm8()
	default:
		panic("cpu: invalid operand kind")
	}
}

// Write stores into the operand.
func (o Operand8) Write(c *CPU, value uint8) {
	switch o.kind {
	case kindReg:
		c.regs.Set(o.reg, value)
	case kindMem:
		address := c.resolve(o.mode)
		c.bus.Write(address, value)
	default:
		panic("cpu: operand is not writable")
	}
}

// IsHLIndirect reports whether the operand is the (HL) memory cell, the one
// case where an 8-bit INC/DEC/rotate/BIT instruction costs extra cycles
// relative to its register form.
func (o Operand8) IsHLIndirect() bool {
	return o.kind == kindMem && o.mode == AddrHL
}

// Reg16ID names one of the five 16-bit register pairs used by 16-bit loads,
// PUSH/POP, and ADD HL,rr.
type Reg16ID uint8

const (
	Reg16BC Reg16ID = iota
	Reg16DE
	Reg16HL
	Reg16SP
	Reg16AF
)

func (r *Registers) Get16(id Reg16ID) uint16 {
	switch id {
	case Reg16BC:
		return r.BC()
	case Reg16DE:
		return r.DE()
	case Reg16HL:
		return r.HL()
	case Reg16SP:
		return r.SP
	case Reg16AF:
		return r.AF()
	default:
		panic("cpu: invalid 16-bit register id")
	}
}

func (r *Registers) Set16(id Reg16ID, value uint16) {
	switch id {
	case Reg16BC:
		r.SetBC(value)
	case Reg16DE:
		r.SetDE(value)
	case Reg16HL:
		r.SetHL(value)
	case Reg16SP:
		r.SP = value
	case Reg16AF:
		r.SetAF(value)
	default:
		panic("cpu: invalid 16-bit register id")
	}
}
