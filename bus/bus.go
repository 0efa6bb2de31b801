// Package bus routes the LR35902's 16-bit address space to the cartridge,
// work RAM, high RAM, joypad, serial port, timer and interrupt controller,
// and owns the master machine-cycle counter the CPU drives through Read/
// Write/Tick.
package bus

import (
	"log/slog"

	"github.com/kallstrom/gbcore/addr"
	"github.com/kallstrom/gbcore/interrupt"
	"github.com/kallstrom/gbcore/joypad"
	"github.com/kallstrom/gbcore/serial"
	"github.com/kallstrom/gbcore/timer"
)

const (
	wramSize = 0x2000
	hramSize = 0x80
)

// Cartridge is the ROM read/write contract the bus talks to; *cartridge.ROM
// satisfies it directly, and a memory bank controller belongs behind the
// same contract as a decorator.
type Cartridge interface {
	Read(address uint16) uint8
	Write(address uint16, value uint8)
}

// Bus is the address-space router described by the core: it owns the
// master cycle counter, ticks the timer and serial port on every timed
// access, and exposes both an untimed (Peek/Set) and a timed (Read/Write)
// access pair to its caller.
type Bus struct {
	cart Cartridge
	wram [wramSize]byte
	hram [hramSize]byte

	joypad    *joypad.Joypad
	serial    *serial.LogSink
	timer     *timer.Timer
	interrupt *interrupt.Controller

	cycles uint64
}

// New wires a bus around a cartridge, with all other components freshly
// initialized to their power-on state.
func New(cart Cartridge) *Bus {
	return &Bus{
		cart:      cart,
		joypad:    joypad.New(),
		serial:    serial.NewLogSink(),
		timer:     timer.New(),
		interrupt: interrupt.New(),
	}
}

// Cycles returns the master machine-cycle count, for diagnostics.
func (b *Bus) Cycles() uint64 { return b.cycles }

// Joypad exposes the joypad component so the host can deliver key events.
func (b *Bus) Joypad() *joypad.Joypad { return b.joypad }

// SerialOutput returns every byte the cartridge has shifted out over the
// serial port so far, in order. Test ROMs (blargg's suite among them) that
// have no screen to report to print their verdict this way.
func (b *Bus) SerialOutput() []byte { return b.serial.Output() }

// Pending returns the interrupt controller's IF&IE pending mask.
func (b *Bus) Pending() uint8 { return b.interrupt.Pending() }

// AcknowledgeInterrupt clears the given bit in IF once the CPU has
// dispatched to its vector.
func (b *Bus) AcknowledgeInterrupt(kind addr.Interrupt) {
	b.interrupt.Acknowledge(kind)
}

// Read performs a timed read: the value at address, after advancing the
// clock by one machine cycle.
func (b *Bus) Read(address uint16) uint8 {
	v := b.Peek(address)
	b.Tick(1)
	return v
}

// Write performs a timed write, advancing the clock by one machine cycle.
func (b *Bus) Write(address uint16, value uint8) {
	b.Set(address, value)
	b.Tick(1)
}

// Tick advances the master clock by mCycles machine cycles, ticking the
// timer and serial port four T-cycles per machine cycle elapsed.
func (b *Bus) Tick(mCycles int) {
	b.cycles += uint64(mCycles)
	tCycles := mCycles * 4
	b.timer.Tick(tCycles, b.interrupt)
	b.serial.Tick(tCycles, b.interrupt)
}

// Peek reads without advancing the clock. Addresses outside every handled
// range read back as 0.
func (b *Bus) Peek(address uint16) uint8 {
	switch {
	case address <= 0x7FFF:
		return b.cart.Read(address)
	case address >= 0x8000 && address <= 0x9FFF:
		return 0
	case address >= 0xC000 && address <= 0xFDFF:
		return b.wram[address&0x1FFF]
	case address == addr.P1:
		return b.joypad.Read()
	case address == addr.SB || address == addr.SC:
		return b.serial.Read(address)
	case address >= addr.DIV && address <= addr.TAC:
		return b.timer.Read(address)
	case address == addr.IF:
		return b.interrupt.GetIF()
	case address == addr.LY:
		return addr.LYStub
	case address >= 0xFF80 && address <= 0xFFFE:
		return b.hram[address&0x7F]
	case address == addr.IE:
		return b.interrupt.GetIE()
	default:
		return 0
	}
}

// Set writes without advancing the clock.
func (b *Bus) Set(address uint16, value uint8) {
	switch {
	case address <= 0x7FFF:
		b.cart.Write(address, value)
	case address >= 0x8000 && address <= 0x9FFF:
		// VRAM: no PPU in this core, write is a no-op.
	case address >= 0xC000 && address <= 0xFDFF:
		b.wram[address&0x1FFF] = value
	case address == addr.P1:
		b.joypad.Write(value)
	case address == addr.SB || address == addr.SC:
		b.serial.Write(address, value)
	case address >= addr.DIV && address <= addr.TAC:
		b.timer.Write(address, value, b.interrupt)
	case address == addr.IF:
		b.interrupt.SetIF(value)
	case address == addr.LY:
		// PPU-owned in a full emulator; ignored here.
	case address >= 0xFF80 && address <= 0xFFFE:
		b.hram[address&0x7F] = value
	case address == addr.IE:
		b.interrupt.SetIE(value)
	default:
		slog.Debug("bus: write to unmapped address", "address", address, "value", value)
	}
}
