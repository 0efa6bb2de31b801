package cartridge

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestROMReadWithinBounds(t *testing.T) {
	rom := buildROM(t, "X", 0x00)
	rom[0x10] = 0x42

	r, err := NewROM(rom)
	assert.NoError(t, err)
	assert.Equal(t, uint8(0x42), r.Read(0x10))
}

func TestROMReadOutOfBoundsReturnsFF(t *testing.T) {
	rom := buildROM(t, "X", 0x00)
	r, err := NewROM(rom)
	assert.NoError(t, err)
	assert.Equal(t, uint8(0xFF), r.Read(0x7FFF))
}

func TestROMWriteIsNoOp(t *testing.T) {
	rom := buildROM(t, "X", 0x00)
	r, err := NewROM(rom)
	assert.NoError(t, err)

	before := r.Read(0x20)
	r.Write(0x20, 0xAB)
	assert.Equal(t, before, r.Read(0x20))
}
