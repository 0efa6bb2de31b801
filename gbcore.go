// Package gbcore assembles the CPU, bus, cartridge and their supporting
// components into a runnable machine, and is the entry point both the CLI
// and tests drive.
package gbcore

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/kallstrom/gbcore/bus"
	"github.com/kallstrom/gbcore/cartridge"
	"github.com/kallstrom/gbcore/cpu"
)

// Machine wires a CPU to a bus built around one cartridge image.
type Machine struct {
	CPU *cpu.CPU
	Bus *bus.Bus
	ROM *cartridge.ROM
}

// NewFromFile reads a ROM image from path, decodes its header, and wires up
// a machine ready to Step. A header checksum mismatch is logged but does
// not prevent the machine from being built.
func NewFromFile(path string) (*Machine, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("gbcore: reading rom: %w", err)
	}

	return NewFromBytes(data)
}

// NewFromBytes wires a machine around an already-loaded ROM image.
func NewFromBytes(data []byte) (*Machine, error) {
	rom, err := cartridge.NewROM(data)
	if err != nil {
		return nil, fmt.Errorf("gbcore: decoding header: %w", err)
	}

	if !rom.Header.ChecksumOK {
		slog.Warn("cartridge header checksum mismatch; continuing anyway",
			"title", rom.Header.Title)
	}
	slog.Info("loaded cartridge",
		"title", rom.Header.Title,
		"type", rom.Header.CartridgeType,
		"rom_banks", rom.Header.ROMBankCount,
		"ram_kib", rom.Header.RAMSizeKiB)

	b := bus.New(rom)
	m := &Machine{
		CPU: cpu.New(b),
		Bus: b,
		ROM: rom,
	}

	return m, nil
}

// Step executes exactly one CPU instruction (and any interrupt service that
// follows it), returning a fatal error if one was raised.
func (m *Machine) Step() error {
	return m.CPU.Step()
}

// Run steps the machine until maxSteps instructions have executed or a
// fatal error is raised, whichever comes first. maxSteps <= 0 runs
// indefinitely until a fatal error stops it.
func (m *Machine) Run(maxSteps int) error {
	for i := 0; maxSteps <= 0 || i < maxSteps; i++ {
		if err := m.Step(); err != nil {
			return err
		}
	}
	return nil
}
