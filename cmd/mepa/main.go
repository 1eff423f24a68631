// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/ezrec/mepa/cpu"
	"github.com/ezrec/mepa/emulator"
)

func main() {
	var dump bool
	var inspect bool
	var tagmem bool
	var size int
	var strict bool
	var verbose bool
	defines := map[string]string{}

	flag.BoolVar(&dump, "d", false, "Dump memory and registers after execution")
	flag.BoolVar(&inspect, "i", false, "Trace registers and each executed instruction")
	flag.BoolVar(&tagmem, "t", false, "Show tags of saved pointers in memory dump")
	flag.IntVar(&size, "m", cpu.MEMORY_SIZE, "Memory size, in words")
	flag.BoolVar(&strict, "x", false, "Reject experimental instructions")
	flag.BoolVar(&verbose, "v", false, "Verbose mode")
	flag.Func("D", "Predefine an equate, as NAME=VALUE", func(arg string) error {
		name, value, ok := strings.Cut(arg, "=")
		if !ok || len(name) == 0 {
			return fmt.Errorf("%q is not NAME=VALUE", arg)
		}
		defines[name] = value
		return nil
	})
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %v [options] <files>\n", os.Args[0])
		flag.PrintDefaults()
	}

	flag.Parse()

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	emu, err := emulator.NewEmulator(size)
	if err != nil {
		log.Fatalf("%v: %v", os.Args[0], err)
	}
	emu.Verbose = verbose
	emu.Memory.ShowTags = tagmem
	emu.Tape.Input = os.Stdin
	emu.Tape.Output = os.Stdout
	if term.IsTerminal(int(os.Stdin.Fd())) {
		emu.Tape.Prompt = "? "
	}
	if inspect {
		emu.Trace = os.Stdout
	}
	emu.Inspect = func(emu *emulator.Emulator) error {
		fmt.Fprintf(os.Stderr, "inspect: line %d: %v\n", emu.LineNo(), emu.Cpu)
		return emu.Dump(os.Stderr)
	}

	// Assemble everything before anything runs.
	var progs []*cpu.Program
	for _, name := range flag.Args() {
		inf, err := os.Open(name)
		if err != nil {
			log.Fatalf("%v: %v", name, err)
		}

		asm := emu.Assembler()
		asm.NoExperimental = strict
		for equ, value := range defines {
			asm.Predefine(equ, value)
		}

		prog, err := asm.Parse(inf)
		inf.Close()
		if err != nil {
			log.Fatalf("%v: %v", name, err)
		}
		progs = append(progs, prog)
	}

	for n, prog := range progs {
		emu.Load(prog)
		err = emu.Run()
		if err != nil {
			if dump {
				if err := emu.Dump(os.Stdout); err != nil {
					log.Printf("%v: dump: %v", os.Args[0], err)
				}
			}
			log.Fatalf("%v: %v", flag.Arg(n), err)
		}
	}

	if dump {
		err = emu.Dump(os.Stdout)
		if err != nil {
			log.Fatalf("%v: dump: %v", os.Args[0], err)
		}
	}
}
