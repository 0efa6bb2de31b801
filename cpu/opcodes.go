package cpu

// opcodeFunc is the dispatch entry type for both the unprefixed and the
// CB-prefixed opcode tables. A handler performs whatever memory accesses
// and explicit internal ticks its instruction requires; cycle counts are
// never tabulated separately; they fall out of the bus calls the handler
// actually makes.
type opcodeFunc func(*CPU)

var opcodeTable [256]opcodeFunc
var cbTable [256]opcodeFunc

// regOrder is the standard LR35902 8-bit operand encoding order shared by
// the LD r,r' grid, the ALU grid, INC/DEC, LD r,d8, and every CB-prefixed
// instruction: B, C, D, E, H, L, (HL), A.
var regOrder = [8]Operand8{
	Reg(RegB), Reg(RegC), Reg(RegD), Reg(RegE),
	Reg(RegH), Reg(RegL), Mem(AddrHL), Reg(RegA),
}

// reg16Order is the encoding order for the BC/DE/HL/SP grid: 16-bit
// immediate loads, 16-bit INC/DEC, and ADD HL,rr.
var reg16Order = [4]Reg16ID{Reg16BC, Reg16DE, Reg16HL, Reg16SP}

// pushPopOrder is reg16Order with AF in place of SP, the encoding PUSH/POP use.
var pushPopOrder = [4]Reg16ID{Reg16BC, Reg16DE, Reg16HL, Reg16AF}

// condOrder is the encoding order for every conditional branch family
// (JR/JP/CALL/RET cc): NZ, Z, NC, C. It matches the Cond enumeration.
var condOrder = [4]Cond{CondNZ, CondZ, CondNC, CondC}

func init() {
	buildLoadGrid()
	buildALUGrid()
	buildIncDecGrid()
	buildSixteenBitGrid()
	buildBranchGrid()
	buildFixedOpcodes()
	buildCBTable()
}

// buildLoadGrid fills the 0x40-0x7F LD r,r' block (HALT's slot, 0x76, is
// left for buildFixedOpcodes to claim) and the 0x06+8n LD r,d8 column.
func buildLoadGrid() {
	for row := 0; row < 8; row++ {
		for col := 0; col < 8; col++ {
			opcode := uint8(0x40 + row*8 + col)
			if opcode == 0x76 {
				continue
			}
			dst := regOrder[row]
			src := regOrder[col]
			opcodeTable[opcode] = func(c *CPU) { dst.Write(c, src.Read(c)) }
		}

		dst := regOrder[row]
		opcodeTable[uint8(0x06+row*8)] = func(c *CPU) { dst.Write(c, Imm.Read(c)) }
	}
}

// buildALUGrid fills the 0x80-0xBF 8-bit ALU-on-A block: eight operations
// across the eight operand columns of regOrder, plus the same eight
// operations with an immediate source in the 0xC6+8n column.
func buildALUGrid() {
	ops := [8]func(*CPU, uint8){
		(*CPU).aluAdd, (*CPU).aluAdc, (*CPU).aluSub, (*CPU).aluSbc,
		(*CPU).aluAnd, (*CPU).aluOr, (*CPU).aluXor, (*CPU).aluCp,
	}

	for block := 0; block < 8; block++ {
		op := ops[block]
		for col := 0; col < 8; col++ {
			opcode := uint8(0x80 + block*8 + col)
			src := regOrder[col]
			opcodeTable[opcode] = func(c *CPU) { op(c, src.Read(c)) }
		}

		opcodeTable[uint8(0xC6+block*8)] = func(c *CPU) { op(c, Imm.Read(c)) }
	}
}

func (c *CPU) aluAdd(v uint8) { c.add8(v, false) }
func (c *CPU) aluAdc(v uint8) { c.add8(v, c.regs.CF()) }
func (c *CPU) aluSub(v uint8) { c.sub8(v, false, true) }
func (c *CPU) aluSbc(v uint8) { c.sub8(v, c.regs.CF(), true) }
func (c *CPU) aluAnd(v uint8) { c.and8(v) }
func (c *CPU) aluOr(v uint8)  { c.or8(v) }
func (c *CPU) aluXor(v uint8) { c.xor8(v) }
func (c *CPU) aluCp(v uint8)  { c.sub8(v, false, false) }

// buildIncDecGrid fills the INC r (0x04+8n) and DEC r (0x05+8n) columns.
func buildIncDecGrid() {
	for row := 0; row < 8; row++ {
		operand := regOrder[row]
		opcodeTable[uint8(0x04+row*8)] = func(c *CPU) { c.inc8(operand) }
		opcodeTable[uint8(0x05+row*8)] = func(c *CPU) { c.dec8(operand) }
	}
}

// buildSixteenBitGrid fills the BC/DE/HL/SP immediate-load, INC/DEC,
// ADD HL,rr and PUSH/POP families.
func buildSixteenBitGrid() {
	for row := 0; row < 4; row++ {
		id := reg16Order[row]
		opcodeTable[uint8(0x01+row*0x10)] = func(c *CPU) { c.regs.Set16(id, c.imm16()) }
		opcodeTable[uint8(0x03+row*0x10)] = func(c *CPU) { c.inc16(id) }
		opcodeTable[uint8(0x0B+row*0x10)] = func(c *CPU) { c.dec16(id) }
		opcodeTable[uint8(0x09+row*0x10)] = func(c *CPU) { c.addHL(id) }

		ppID := pushPopOrder[row]
		opcodeTable[uint8(0xC1+row*0x10)] = func(c *CPU) {
			c.regs.Set16(ppID, c.popStack())
		}
		opcodeTable[uint8(0xC5+row*0x10)] = func(c *CPU) {
			c.pushStack(c.regs.Get16(ppID))
		}
	}
}

// buildBranchGrid fills the four conditional-branch families (JR/JP/CALL/RET cc).
func buildBranchGrid() {
	for row := 0; row < 4; row++ {
		cond := condOrder[row]
		opcodeTable[uint8(0x20+row*8)] = func(c *CPU) { c.jrCC(cond) }
		opcodeTable[uint8(0xC2+row*8)] = func(c *CPU) { c.jpCC(cond) }
		opcodeTable[uint8(0xC4+row*8)] = func(c *CPU) { c.callCC(cond) }
		opcodeTable[uint8(0xC0+row*8)] = func(c *CPU) { c.retCC(cond) }
	}

	for row := 0; row < 8; row++ {
		target := uint16(row * 0x08)
		opcodeTable[uint8(0xC7+row*8)] = func(c *CPU) { c.rst(target) }
	}
}

// buildFixedOpcodes fills every opcode that isn't part of a regular grid:
// misc control, 16-bit special loads, the indirect A loads, and the
// non-prefixed rotates.
func buildFixedOpcodes() {
	opcodeTable[0x00] = func(c *CPU) {}
	opcodeTable[0x76] = func(c *CPU) { c.halted = true }

	opcodeTable[0x07] = func(c *CPU) { c.rotateAccumulator(c.rlc) }
	opcodeTable[0x0F] = func(c *CPU) { c.rotateAccumulator(c.rrc) }
	opcodeTable[0x17] = func(c *CPU) { c.rotateAccumulator(c.rl) }
	opcodeTable[0x1F] = func(c *CPU) { c.rotateAccumulator(c.rr) }

	opcodeTable[0x27] = func(c *CPU) { c.daa() }
	opcodeTable[0x2F] = func(c *CPU) { c.cpl() }
	opcodeTable[0x37] = func(c *CPU) { c.scf() }
	opcodeTable[0x3F] = func(c *CPU) { c.ccf() }

	opcodeTable[0xF3] = func(c *CPU) { c.ime = false; c.pendingEI = false }
	opcodeTable[0xFB] = func(c *CPU) { c.pendingEI = true }

	opcodeTable[0x02] = func(c *CPU) { Mem(AddrBC).Write(c, c.regs.A) }
	opcodeTable[0x12] = func(c *CPU) { Mem(AddrDE).Write(c, c.regs.A) }
	opcodeTable[0x22] = func(c *CPU) { Mem(AddrHLI).Write(c, c.regs.A) }
	opcodeTable[0x32] = func(c *CPU) { Mem(AddrHLD).Write(c, c.regs.A) }

	opcodeTable[0x0A] = func(c *CPU) { c.regs.A = Mem(AddrBC).Read(c) }
	opcodeTable[0x1A] = func(c *CPU) { c.regs.A = Mem(AddrDE).Read(c) }
	opcodeTable[0x2A] = func(c *CPU) { c.regs.A = Mem(AddrHLI).Read(c) }
	opcodeTable[0x3A] = func(c *CPU) { c.regs.A = Mem(AddrHLD).Read(c) }

	opcodeTable[0xE0] = func(c *CPU) { Mem(AddrZeroPage).Write(c, c.regs.A) }
	opcodeTable[0xF0] = func(c *CPU) { c.regs.A = Mem(AddrZeroPage).Read(c) }
	opcodeTable[0xE2] = func(c *CPU) { Mem(AddrZeroPageC).Write(c, c.regs.A) }
	opcodeTable[0xF2] = func(c *CPU) { c.regs.A = Mem(AddrZeroPageC).Read(c) }
	opcodeTable[0xEA] = func(c *CPU) { Mem(AddrAbsolute).Write(c, c.regs.A) }
	opcodeTable[0xFA] = func(c *CPU) { c.regs.A = Mem(AddrAbsolute).Read(c) }

	opcodeTable[0x08] = func(c *CPU) {
		address := c.imm16()
		sp := c.regs.SP
		c.bus.Write(address, uint8(sp))
		c.bus.Write(address+1, uint8(sp>>8))
	}
	opcodeTable[0xF9] = func(c *CPU) {
		c.regs.SP = c.regs.HL()
		c.bus.Tick(1)
	}
	opcodeTable[0xE8] = func(c *CPU) {
		result, _ := c.addSPSigned()
		c.bus.Tick(1)
		c.bus.Tick(1)
		c.regs.SP = result
	}
	opcodeTable[0xF8] = func(c *CPU) {
		result, _ := c.addSPSigned()
		c.bus.Tick(1)
		c.regs.SetHL(result)
	}

	opcodeTable[0x18] = func(c *CPU) { c.jr() }
	opcodeTable[0xC3] = func(c *CPU) { c.jp() }
	opcodeTable[0xE9] = func(c *CPU) { c.jpHL() }
	opcodeTable[0xCD] = func(c *CPU) { c.call() }
	opcodeTable[0xC9] = func(c *CPU) { c.ret() }
	opcodeTable[0xD9] = func(c *CPU) { c.reti() }

	opcodeTable[0xCB] = func(c *CPU) {
		cbOpcode := c.imm8()
		cbTable[cbOpcode](c)
	}

	// 0x10 (STOP) and the eleven undefined bytes are deliberately left nil:
	// Step surfaces them as UndefinedOpcodeError.
}

// buildCBTable fills the CB-prefixed rotate/shift/swap block (0x00-0x3F)
// and the BIT/RES/SET blocks (0x40-0xFF), all addressed by the same
// regOrder column as the unprefixed grids.
func buildCBTable() {
	rotateOps := [8]func(*CPU, Operand8){
		(*CPU).rlc, (*CPU).rrc, (*CPU).rl, (*CPU).rr,
		(*CPU).sla, (*CPU).sra, (*CPU).swap, (*CPU).srl,
	}

	for block := 0; block < 8; block++ {
		op := rotateOps[block]
		for col := 0; col < 8; col++ {
			opcode := uint8(block*8 + col)
			operand := regOrder[col]
			cbTable[opcode] = func(c *CPU) { op(c, operand) }
		}
	}

	for n := 0; n < 8; n++ {
		bitIndex := uint8(n)
		for col := 0; col < 8; col++ {
			operand := regOrder[col]

			bitOp := uint8(0x40 + n*8 + col)
			cbTable[bitOp] = func(c *CPU) { c.bit(bitIndex, operand) }

			resOp := uint8(0x80 + n*8 + col)
			cbTable[resOp] = func(c *CPU) { c.res(bitIndex, operand) }

			setOp := uint8(0xC0 + n*8 + col)
			cbTable[setOp] = func(c *CPU) { c.set(bitIndex, operand) }
		}
	}
}
