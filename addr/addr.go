// Package addr names the memory-mapped addresses the bus routes to the
// core's collaborators. Only the registers the core itself owns or stubs
// are listed here; VRAM/OAM/APU registers belong to the PPU/APU, which are
// out of scope for this core (see the bus package for how they're stubbed).
package addr

// joypad
const P1 uint16 = 0xFF00

// serial I/O
const (
	// SB holds the byte being shifted out/in during a serial transfer.
	SB uint16 = 0xFF01
	// SC is the serial transfer control register.
	SC uint16 = 0xFF02
)

// timer
const (
	DIV  uint16 = 0xFF04
	TIMA uint16 = 0xFF05
	TMA  uint16 = 0xFF06
	TAC  uint16 = 0xFF07
)

// interrupts
const (
	IF uint16 = 0xFF0F
	IE uint16 = 0xFFFF
)

// LY is the PPU's scanline register. The core has no PPU, so the bus
// stubs it to a constant that keeps blargg-style CPU test ROMs spinning
// instead of waiting forever on a VBlank that will never come.
const LY uint16 = 0xFF44

// LYStub is the fixed value the bus returns for a read of LY.
const LYStub uint8 = 0x94

// Interrupt identifies one of the five interrupt sources. Bit position
// also doubles as priority (lower bit wins) and as the index into the
// vector table (0x40 + 8*index).
type Interrupt uint8

const (
	VBlank Interrupt = 1 << 0
	Stat   Interrupt = 1 << 1
	Timer  Interrupt = 1 << 2
	Serial Interrupt = 1 << 3
	Joypad Interrupt = 1 << 4
)

// VectorFor returns the interrupt service routine address for the bit at
// the given index (0=VBlank .. 4=Joypad).
func VectorFor(index uint8) uint16 {
	return 0x40 + 8*uint16(index)
}
