// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/tebeka/atexit"

	"github.com/ezrec/rnavm/cpu"
	"github.com/ezrec/rnavm/emulator"
)

func usage() {
	fmt.Fprintf(flag.CommandLine.Output(), "usage: %v [flags] SEQUENCE\n", os.Args[0])
	flag.PrintDefaults()
}

func main() {
	var compile string
	var save bool
	var output string
	var verbose bool

	flag.Usage = usage
	flag.StringVar(&compile, "c", "", "mnemonic file to assemble instead of SEQUENCE")
	flag.BoolVar(&save, "s", false, "Print the codon sequence, do not execute")
	flag.StringVar(&output, "o", "-", "Output file")
	flag.BoolVar(&verbose, "v", false, "Verbose mode")

	flag.Parse()

	emu := emulator.NewEmulator(os.Stdout)
	emu.Verbose = verbose

	if output != "-" {
		ouf, err := os.Create(output)
		if err != nil {
			atexit.Fatalf("%v: %v", output, err)
		}
		atexit.Register(func() { ouf.Close() })
		emu.Tape.Output = ouf
	}

	switch {
	case len(compile) != 0:
		if flag.NArg() != 0 {
			atexit.Fatalf("%v: Unknown arguments: %v", os.Args[0], flag.Args())
		}
		inf, err := os.Open(compile)
		if err != nil {
			atexit.Fatalf("%v: %v", compile, err)
		}
		atexit.Register(func() { inf.Close() })

		err = emu.Assemble(inf)
		if err != nil {
			atexit.Fatalf("%v: %v", compile, err)
		}
	case flag.NArg() > 0:
		// An unquoted sequence arrives as several arguments.
		err := emu.Load(strings.Join(flag.Args(), " "))
		if err != nil {
			atexit.Fatal(err)
		}
	default:
		flag.Usage()
		atexit.Exit(2)
	}

	if save {
		codons, err := cpu.Encode(emu.Program)
		if err != nil {
			atexit.Fatal(err)
		}
		fmt.Fprintln(emu.Tape.Output, cpu.CodonString(codons))
		atexit.Exit(0)
	}

	err := emu.Run()
	if err != nil {
		if verbose {
			log.Print(emu.Cpu.String())
		}
		atexit.Fatal(err)
	}

	atexit.Exit(0)
}
