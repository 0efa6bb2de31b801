package cpu

import "github.com/kallstrom/gbcore/bit"

// Flag identifies one of the four bits the LR35902 keeps in the upper
// nibble of F; the lower nibble is always zero.
type Flag uint8

const (
	FlagZ Flag = 1 << 7
	FlagN Flag = 1 << 6
	FlagH Flag = 1 << 5
	FlagC Flag = 1 << 4
)

// Registers holds the eight 8-bit registers and the two 16-bit registers
// of the LR35902, plus the AF/BC/DE/HL pair views over them.
type Registers struct {
	A, F    uint8
	B, C    uint8
	D, E    uint8
	H, L    uint8
	PC, SP  uint16
}

// PowerOn returns the documented post-boot-ROM register state.
func PowerOn() Registers {
	return Registers{
		A: 0x01, F: 0xB0,
		B: 0x00, C: 0x13,
		D: 0x00, E: 0xD8,
		H: 0x01, L: 0x4D,
		PC: 0x0100, SP: 0xFFFE,
	}
}

func (r *Registers) AF() uint16 { return bit.Combine(r.A, r.F&0xF0) }
func (r *Registers) BC() uint16 { return bit.Combine(r.B, r.C) }
func (r *Registers) DE() uint16 { return bit.Combine(r.D, r.E) }
func (r *Registers) HL() uint16 { return bit.Combine(r.H, r.L) }

// SetAF writes the AF pair, masking the low nibble of F to zero since it is
// never implemented in hardware.
func (r *Registers) SetAF(v uint16) {
	r.A = bit.High(v)
	r.F = bit.Low(v) & 0xF0
}

func (r *Registers) SetBC(v uint16) { r.B, r.C = bit.High(v), bit.Low(v) }
func (r *Registers) SetDE(v uint16) { r.D, r.E = bit.High(v), bit.Low(v) }
func (r *Registers) SetHL(v uint16) { r.H, r.L = bit.High(v), bit.Low(v) }

// IncHL and DecHL back the HLI/HLD addressing modes.
func (r *Registers) IncHL() { r.SetHL(r.HL() + 1) }
func (r *Registers) DecHL() { r.SetHL(r.HL() - 1) }

func (r *Registers) IncSP() { r.SP++ }
func (r *Registers) DecSP() { r.SP-- }

func (r *Registers) has(f Flag) bool { return r.F&uint8(f) != 0 }

func (r *Registers) ZF() bool { return r.has(FlagZ) }
func (r *Registers) NF() bool { return r.has(FlagN) }
func (r *Registers) HF() bool { return r.has(FlagH) }
func (r *Registers) CF() bool { return r.has(FlagC) }

// SetFlags updates exactly the flags set in mask to the given boolean,
// leaving the other flags untouched and clearing the low nibble.
func (r *Registers) SetFlags(mask Flag, value bool) {
	if value {
		r.F |= uint8(mask)
	} else {
		r.F &^= uint8(mask)
	}
	r.F &= 0xF0
}
