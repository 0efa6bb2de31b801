package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/urfave/cli"

	"github.com/kallstrom/gbcore"
	"github.com/kallstrom/gbcore/cpu"
	"github.com/kallstrom/gbcore/disasm"
)

func main() {
	app := cli.NewApp()
	app.Name = "gbcore"
	app.Description = "A Game Boy CPU/bus/timer/interrupt core"
	app.Usage = "gbcore [options] <ROM file>"
	app.Version = "1.0.0"
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:  "rom",
			Usage: "Path to the ROM file",
		},
		cli.BoolFlag{
			Name:  "print-header",
			Usage: "Decode and print the cartridge header, then exit",
		},
		cli.BoolFlag{
			Name:  "disassemble",
			Usage: "Disassemble from the entry point instead of executing",
		},
		cli.IntFlag{
			Name:  "max-steps",
			Usage: "Stop after this many CPU steps (0 = run until a fatal error); with -disassemble, the number of instructions to list (0 = 64)",
			Value: 0,
		},
	}
	app.Action = run

	if err := app.Run(os.Args); err != nil {
		slog.Error("gbcore: fatal", "error", err)
		os.Exit(exitCodeFor(err))
	}
}

func run(c *cli.Context) error {
	romPath := c.String("rom")
	if romPath == "" {
		if c.NArg() > 0 {
			romPath = c.Args().Get(0)
		} else {
			cli.ShowAppHelp(c)
			return errors.New("no ROM path provided")
		}
	}

	if c.Bool("print-header") {
		return printHeader(romPath)
	}

	if c.Bool("disassemble") {
		return disassemble(romPath, c.Int("max-steps"))
	}

	machine, err := gbcore.NewFromFile(romPath)
	if err != nil {
		return err
	}

	return machine.Run(c.Int("max-steps"))
}

func printHeader(romPath string) error {
	machine, err := gbcore.NewFromFile(romPath)
	if err != nil {
		return err
	}

	h := machine.ROM.Header
	fmt.Printf("Title:        %s\n", h.Title)
	fmt.Printf("Licensee:     %s\n", h.Licensee)
	fmt.Printf("Type:         %s\n", h.CartridgeType)
	fmt.Printf("ROM size:     %d KiB (%d banks)\n", h.ROMSizeKiB, h.ROMBankCount)
	fmt.Printf("RAM size:     %d KiB\n", h.RAMSizeKiB)
	fmt.Printf("Destination:  %s\n", h.Destination)
	fmt.Printf("Version:      0x%02X\n", h.Version)
	fmt.Printf("Checksum OK:  %v\n", h.ChecksumOK)

	return nil
}

func disassemble(romPath string, maxLines int) error {
	machine, err := gbcore.NewFromFile(romPath)
	if err != nil {
		return err
	}

	if maxLines <= 0 {
		maxLines = 64
	}

	pc := machine.CPU.Registers().PC
	for i := 0; i < maxLines; i++ {
		line := disasm.At(pc, machine.Bus)
		fmt.Printf("%04X  %s\n", line.Address, line.Mnemonic)
		pc += uint16(line.Length)
	}

	return nil
}

// exitCodeFor maps a fatal core error to the documented exit codes: 1 for
// an error surfaced by the running core itself (undefined opcode, STOP),
// 2 for a plain I/O or header failure.
func exitCodeFor(err error) int {
	var undefined *cpu.UndefinedOpcodeError
	if errors.As(err, &undefined) {
		return 1
	}
	return 2
}
