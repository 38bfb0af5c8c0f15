// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"

	"github.com/pkg/profile"
	"github.com/sirupsen/logrus"
	"golang.org/x/term"

	"github.com/ezrec/sigma16/emulator"
	"github.com/ezrec/sigma16/translate"
)

func main() {
	var program string
	var setup string
	var limit int
	var memory int
	var verbose bool
	var profiles string
	var lang string

	flag.StringVar(&program, "p", "", "program binary to load")
	flag.StringVar(&setup, "s", "", ".star setup script to apply")
	flag.IntVar(&limit, "n", 0, "Cycle limit (0 for none)")
	flag.IntVar(&memory, "m", 0, "Words of memory to dump after the run")
	flag.BoolVar(&verbose, "v", false, "Verbose mode")
	flag.StringVar(&profiles, "profile", "", "Directory to write a CPU profile of the run to")
	flag.StringVar(&lang, "lang", "", "Message language, as a BCP 47 tag (default from the environment)")

	flag.Parse()

	if len(lang) != 0 {
		translate.SetLocales(lang)
	}

	if flag.NArg() != 0 {
		log.Fatalf("%v: Unknown arguments: %v", os.Args[0], flag.Args())
	}

	if len(program) == 0 && len(setup) == 0 {
		log.Fatalf("%v: one of -p or -s is required", os.Args[0])
	}

	emu := emulator.NewEmulator()
	emu.Verbose = verbose
	if verbose {
		logrus.SetLevel(logrus.DebugLevel)
	}

	// A script may set up registers for a binary loaded afterwards.
	if len(setup) != 0 {
		err := emu.LoadScript(setup, nil)
		if err != nil {
			log.Fatal(err)
		}
	}

	if len(program) != 0 {
		err := emu.LoadFile(program)
		if err != nil {
			log.Fatal(err)
		}
	}

	var prof interface{ Stop() }
	if len(profiles) != 0 {
		prof = profile.Start(profile.CPUProfile, profile.ProfilePath(profiles), profile.Quiet, profile.NoShutdownHook)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := emu.Run(ctx, limit)
	stop()

	if prof != nil {
		prof.Stop()
	}

	fmt.Print(emu.Dump())
	if memory > 0 {
		fmt.Print(emu.DumpMemory(0, memory, dumpColumns()))
	}

	if err != nil {
		log.Fatal(err)
	}
}

// dumpColumns fits the memory dump to the terminal width, in multiples of four.
func dumpColumns() (columns int) {
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return
	}

	width, _, err := term.GetSize(fd)
	if err != nil {
		return
	}

	// "aaaa:" then " wwww" per word.
	columns = (width - 5) / 5
	columns -= columns % 4

	return
}
