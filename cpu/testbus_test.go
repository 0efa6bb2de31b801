package cpu

import "github.com/kallstrom/gbcore/addr"

// fakeBus is a flat 64 KiB memory backing the cpu package's own tests,
// with a manually-settable pending mask so interrupt-dispatch scenarios
// don't need a real timer/joypad/serial wired up.
type fakeBus struct {
	mem     [0x10000]byte
	cycles  int
	pending uint8
	acked   []addr.Interrupt
}

func newFakeBus() *fakeBus { return &fakeBus{} }

func (b *fakeBus) Peek(address uint16) uint8       { return b.mem[address] }
func (b *fakeBus) Set(address uint16, value uint8) { b.mem[address] = value }
func (b *fakeBus) Read(address uint16) uint8       { v := b.mem[address]; b.Tick(1); return v }
func (b *fakeBus) Write(address uint16, value uint8) {
	b.mem[address] = value
	b.Tick(1)
}
func (b *fakeBus) Tick(mCycles int) { b.cycles += mCycles }
func (b *fakeBus) Pending() uint8   { return b.pending }
func (b *fakeBus) AcknowledgeInterrupt(kind addr.Interrupt) {
	b.pending &^= uint8(kind)
	b.acked = append(b.acked, kind)
}
