// Package joypad implements the Game Boy's input matrix: two 4-bit button
// groups multiplexed onto the low nibble of the P1 register through a
// selector written by the CPU.
package joypad

import (
	"github.com/kallstrom/gbcore/addr"
	"github.com/kallstrom/gbcore/interrupt"
)

// Key identifies one of the eight physical buttons.
type Key uint8

const (
	Right Key = iota
	Left
	Up
	Down
	A
	B
	Select
	Start
)

const (
	selectDpad    = 1 << 4
	selectButtons = 1 << 5
)

// Joypad holds the pressed/released state of both button groups and the
// selector bits last written to P1. Both groups use "logical up" bits:
// 1 = released, 0 = pressed.
type Joypad struct {
	buttons  uint8 // A, B, Select, Start in bits 0-3
	dpad     uint8 // Right, Left, Up, Down in bits 0-3
	selector uint8 // bits 4-5 of P1, as last written
}

// New returns a joypad with no buttons pressed.
func New() *Joypad {
	return &Joypad{buttons: 0x0F, dpad: 0x0F}
}

// Read returns the current P1 readback: upper two bits forced to 1, the
// selector bits as written, and the low nibble the AND of whichever
// groups are selected (active-low selection).
func (j *Joypad) Read() uint8 {
	result := uint8(0b1100_0000)
	result |= j.selector

	selectingButtons := j.selector&selectButtons == 0
	selectingDpad := j.selector&selectDpad == 0

	switch {
	case selectingButtons && selectingDpad:
		result |= j.buttons & j.dpad & 0x0F
	case selectingButtons:
		result |= j.buttons & 0x0F
	case selectingDpad:
		result |= j.dpad & 0x0F
	default:
		result |= 0x0F
	}

	return result
}

// Write stores the selector bits (4-5) of a write to P1; the rest is ignored.
func (j *Joypad) Write(value uint8) {
	j.selector = value & (selectDpad | selectButtons)
}

// KeyDown marks a button as pressed, requesting a JOYPAD interrupt since
// every key-down transition does so regardless of selection state.
func (j *Joypad) KeyDown(key Key, irq *interrupt.Controller) {
	switch key {
	case Right:
		j.dpad &^= 1 << 0
	case Left:
		j.dpad &^= 1 << 1
	case Up:
		j.dpad &^= 1 << 2
	case Down:
		j.dpad &^= 1 << 3
	case A:
		j.buttons &^= 1 << 0
	case B:
		j.buttons &^= 1 << 1
	case Select:
		j.buttons &^= 1 << 2
	case Start:
		j.buttons &^= 1 << 3
	}

	irq.Request(addr.Joypad)
}

// KeyUp marks a button as released.
func (j *Joypad) KeyUp(key Key) {
	switch key {
	case Right:
		j.dpad |= 1 << 0
	case Left:
		j.dpad |= 1 << 1
	case Up:
		j.dpad |= 1 << 2
	case Down:
		j.dpad |= 1 << 3
	case A:
		j.buttons |= 1 << 0
	case B:
		j.buttons |= 1 << 1
	case Select:
		j.buttons |= 1 << 2
	case Start:
		j.buttons |= 1 << 3
	}
}
