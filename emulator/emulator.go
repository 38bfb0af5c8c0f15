// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package emulator

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"iter"
	"maps"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/ezrec/sigma16/cpu"
	"github.com/ezrec/sigma16/internal"
	"github.com/ezrec/sigma16/script"
)

const (
	INTERRUPT_QUEUE = 16 // Depth of the interrupt request channel.
	DUMP_COLUMNS    = 8  // Words per line of a memory dump.
)

var _emulator_defines = map[string]int{
	"INTERRUPT_QUEUE": INTERRUPT_QUEUE,
}

// Emulator state. CPU + program loading + interrupt requests.
type Emulator struct {
	Verbose  bool           // If set, enables verbose logging.
	*cpu.Cpu                // Reference to the CPU simulation.
	Logger   *logrus.Logger // Logger for verbose output; nil for the standard logger.

	// Interrupt lines to raise. Safe to send on from any goroutine; the
	// requests are latched before the next cycle.
	InterruptRequest chan uint
}

// NewEmulator creates a new emulator.
func NewEmulator() (emu *Emulator) {
	emu = &Emulator{
		Cpu:              cpu.NewCpu(),
		InterruptRequest: make(chan uint, INTERRUPT_QUEUE),
	}

	return
}

func (emu *Emulator) log() *logrus.Logger {
	if emu.Logger != nil {
		return emu.Logger
	}
	return logrus.StandardLogger()
}

// Defines returns an iterator over all of the defines
func (emu *Emulator) Defines() iter.Seq2[string, int] {
	return internal.IterSeq2Concat(maps.All(_emulator_defines), script.Defines())
}

// LoadFile loads a program binary from the host file system.
func (emu *Emulator) LoadFile(path string) (err error) {
	inf, err := os.Open(path)
	if err != nil {
		return
	}
	defer inf.Close()

	return emu.load(path, inf)
}

// LoadFS loads a program binary from a file system.
func (emu *Emulator) LoadFS(filesys fs.FS, name string) (err error) {
	inf, err := filesys.Open(name)
	if err != nil {
		return
	}
	defer inf.Close()

	return emu.load(name, inf)
}

func (emu *Emulator) load(path string, inf io.Reader) (err error) {
	emu.Cpu.Verbose = emu.Verbose
	emu.Cpu.Logger = emu.Logger

	err = emu.Cpu.LoadFrom(inf)
	if err != nil {
		err = &ErrFile{Path: path, Err: err}
		return
	}

	if emu.Verbose {
		emu.log().WithField("path", path).Debug(f("emulator: program loaded"))
	}

	return
}

// LoadScript runs a setup script, and applies it to the processor.
// src is as for script.Parse; nil reads the script from path.
func (emu *Emulator) LoadScript(path string, src any) (err error) {
	setup, err := script.Parse(path, src)
	if err != nil {
		return
	}

	emu.Cpu.Verbose = emu.Verbose
	emu.Cpu.Logger = emu.Logger

	err = setup.Apply(emu.Cpu)
	if err != nil {
		err = &ErrFile{Path: path, Err: err}
		return
	}

	if emu.Verbose {
		emu.log().WithFields(logrus.Fields{
			"path":  path,
			"words": len(setup.Image),
			"pc":    fmt.Sprintf("%04x", uint16(setup.Pc)),
		}).Debug(f("emulator: script applied"))
	}

	return
}

// latch the pending interrupt requests into the processor.
func (emu *Emulator) latch() {
	for {
		select {
		case line := <-emu.InterruptRequest:
			if emu.Verbose {
				emu.log().WithField("line", line).Debug(f("emulator: interrupt request"))
			}
			emu.Cpu.Interrupt(line)
		default:
			return
		}
	}
}

// Tick performs a single cycle of the emulator. done is set once the
// processor has halted.
func (emu *Emulator) Tick() (done bool, err error) {
	// Set CPU verbosity
	emu.Cpu.Verbose = emu.Verbose
	emu.Cpu.Logger = emu.Logger

	pc := emu.Cpu.Pc()
	defer func() {
		if err != nil {
			err = &ErrRuntime{Pc: uint16(pc), Err: err}
		}
	}()

	emu.latch()

	err = emu.Cpu.Step()
	if err != nil {
		return
	}

	done = emu.Cpu.State() == cpu.STATE_HALT

	return
}

// Run ticks until the processor halts or ctx is done. A positive limit
// bounds the number of cycles, returning ErrCycleLimit when reached.
func (emu *Emulator) Run(ctx context.Context, limit int) (err error) {
	for n := 0; limit <= 0 || n < limit; n++ {
		if err = ctx.Err(); err != nil {
			return
		}

		var done bool
		done, err = emu.Tick()
		if err != nil || done {
			return
		}
	}

	err = ErrCycleLimit

	return
}

// Dump returns the processor state, one register per line.
func (emu *Emulator) Dump() (text string) {
	proc := emu.Cpu
	ctl := proc.Control()
	regs := proc.Registers()

	pc := proc.Pc()
	next := cpu.Decode(proc.Peek(pc), func() cpu.Word { return proc.Peek(pc + 1) })

	line := func(name string, value any) {
		text += fmt.Sprintf("% 6s: %v\n", name, value)
	}
	word := func(value cpu.Word) string {
		return fmt.Sprintf("%04x", uint16(value))
	}

	line("state", proc.State())
	line("ticks", proc.Ticks())
	line("pc", word(pc))
	line("next", next)
	line("ir", word(proc.Ir()))
	line("adr", word(proc.Adr()))
	line("dat", word(proc.Dat()))
	for n, value := range regs[:cpu.REG_FLAGS] {
		line(fmt.Sprintf("r%d", n), word(value))
	}
	line(fmt.Sprintf("r%d", cpu.REG_FLAGS), word(regs[cpu.REG_FLAGS])+" "+proc.Flags().String())
	for reg := cpu.CTL_STATUS; reg <= cpu.CTL_CAUSE; reg++ {
		line(reg.String(), word(ctl.Get(reg)))
	}

	return
}

// DumpMemory returns count words of memory starting at addr, as hex, with
// columns words per line. Zero columns selects DUMP_COLUMNS.
func (emu *Emulator) DumpMemory(addr cpu.Word, count int, columns int) (text string) {
	if columns <= 0 {
		columns = DUMP_COLUMNS
	}

	for n := 0; n < count; n += columns {
		text += fmt.Sprintf("%04x:", uint16(addr+cpu.Word(n)))
		for i := n; i < min(n+columns, count); i++ {
			text += fmt.Sprintf(" %04x", uint16(emu.Cpu.Peek(addr+cpu.Word(i))))
		}
		text += "\n"
	}

	return
}
