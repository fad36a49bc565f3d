// Command goba runs a ROM image against the ARM7TDMI core headlessly: no
// video or audio output, just register/cycle accounting, useful for
// conformance testing and BIOS-call tracing.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"GoBA/internal/board"
	"GoBA/internal/bus"
	"GoBA/internal/cartridge"
	"GoBA/internal/cpu"
	"GoBA/internal/io"
	"GoBA/internal/memory"
	"GoBA/rom"
	"GoBA/util/dbg"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		biosPath    string
		maxCycles   uint64
		maxInstrs   uint64
		reportEvery uint64
	)

	cmd := &cobra.Command{
		Use:   "goba <rom>",
		Short: "Run a Game Boy Advance ROM against the ARM7TDMI interpreter core",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(args[0], biosPath, maxCycles, maxInstrs, reportEvery)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&biosPath, "bios", "", "path to a GBA BIOS image (defaults to an all-zero stub)")
	flags.Uint64Var(&maxCycles, "cycles", 0, "stop after this many cycles have elapsed (0 = unbounded)")
	flags.Uint64Var(&maxInstrs, "instructions", 0, "stop after this many instructions have executed (0 = unbounded)")
	flags.Uint64Var(&reportEvery, "report-every", 1_000_000, "log a progress line every N instructions")

	return cmd
}

func run(romPath, biosPath string, maxCycles, maxInstrs, reportEvery uint64) error {
	cartImage, err := rom.Load(romPath)
	if err != nil {
		return fmt.Errorf("loading ROM: %w", err)
	}

	var biosData []byte
	if biosPath != "" {
		biosImage, err := rom.Load(biosPath)
		if err != nil {
			return fmt.Errorf("loading BIOS: %w", err)
		}
		biosData = biosImage.Data
	}

	bios := memory.NewBIOS(biosData)
	ewram := memory.NewEWRAM()
	iwram := memory.NewIWRAM()
	cart := cartridge.NewCartridge(cartImage.Data)
	ioRegs := io.NewIORegs()
	mem := bus.NewBus(bios, ewram, iwram, cart, ioRegs)
	brd := board.NewBoard()

	core := cpu.NewCPU(mem, brd)
	core.Reset()

	var instrs uint64
	for {
		if maxInstrs != 0 && instrs >= maxInstrs {
			break
		}
		if maxCycles != 0 && core.Cycles() >= maxCycles {
			break
		}
		if brd.Halted() {
			break
		}

		core.Step()
		instrs++

		if reportEvery != 0 && instrs%reportEvery == 0 {
			dbg.Printf("goba: %d instructions, %d cycles, pc=0x%08X", instrs, core.Cycles(), core.Registers().GetPC())
		}
	}

	fmt.Printf("goba: halted after %d instructions, %d cycles, pc=0x%08X\n", instrs, core.Cycles(), core.Registers().GetPC())
	return nil
}
