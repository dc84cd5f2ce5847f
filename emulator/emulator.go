// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package emulator

import (
	"errors"
	"fmt"
	"io"
	"iter"
	"log"
	"maps"
	"strings"

	"github.com/ezrec/rnavm/cpu"
	"github.com/ezrec/rnavm/internal"
	rnaio "github.com/ezrec/rnavm/io"
)

// Register aliases available to assembler source.
var _emulator_defines = map[string]string{
	"ACC":  fmt.Sprintf("r%d", cpu.REG_ACC),
	"COND": fmt.Sprintf("r%d", cpu.REG_COND),
}

// Emulator state. CPU + program + output tape.
type Emulator struct {
	Verbose  bool         // If set, enables verbose logging.
	*cpu.Cpu              // Reference to the CPU simulation.
	Program  *cpu.Program // Reference to the currently loaded program.

	Tape rnaio.Tape // Output tape.
}

// NewEmulator creates a new emulator whose output is written to w.
func NewEmulator(w io.Writer) (emu *Emulator) {
	emu = &Emulator{}
	emu.Tape.Output = w
	emu.Cpu = cpu.NewCpu(nil, &emu.Tape)

	return
}

// Defines returns an iterator over all of the defines
func (emu *Emulator) Defines() iter.Seq2[string, string] {
	return internal.IterSeq2Concat(maps.All(_emulator_defines),
		emu.Cpu.Defines(),
	)
}

// Load decodes and validates codon source text as the current program.
func (emu *Emulator) Load(text string) (err error) {
	codons := cpu.Tokenize(cpu.Clean(text))
	if emu.Verbose {
		log.Printf("codons: %v", cpu.CodonString(codons))
	}

	dec := &cpu.Decoder{Verbose: emu.Verbose}
	instrs, err := dec.Decode(codons)
	if err != nil {
		return
	}

	prog, err := cpu.Validate(instrs)
	if err != nil {
		return
	}

	emu.setProgram(prog)

	return
}

// Assemble parses mnemonic source as the current program.
// The emulator defines are available to the source as equates.
func (emu *Emulator) Assemble(source io.Reader) (err error) {
	asm := &cpu.Assembler{Verbose: emu.Verbose}
	for key, value := range emu.Defines() {
		asm.Predefine(key, value)
	}

	prog, err := asm.Parse(source)
	if err != nil {
		return
	}

	emu.setProgram(prog)

	return
}

// AssembleString parses mnemonic source text as the current program.
func (emu *Emulator) AssembleString(source string) (err error) {
	return emu.Assemble(strings.NewReader(source))
}

func (emu *Emulator) setProgram(prog *cpu.Program) {
	if emu.Verbose {
		log.Printf("program: %v", prog)
	}

	emu.Program = prog
	emu.Cpu.Program = prog
}

// Reset the emulator state.
func (emu *Emulator) Reset() (err error) {
	if emu.Program == nil {
		err = cpu.ErrProgramEmpty
		return
	}

	emu.Cpu.Verbose = emu.Verbose
	emu.Cpu.Program = emu.Program
	emu.Cpu.Reset()

	return
}

// Ticks returns the total ticks since a reset.
func (emu *Emulator) Ticks() int {
	return emu.Cpu.Ticks
}

// Instruction returns the instruction at the instruction pointer.
func (emu *Emulator) Instruction() cpu.Instruction {
	instr, _ := emu.Program.At(emu.Cpu.Ip)
	return instr
}

// Tick performs a single tick of the emulator.
// Returns done once the program has halted.
func (emu *Emulator) Tick() (done bool, err error) {
	// Set CPU verbosity
	emu.Cpu.Verbose = emu.Verbose

	ip := emu.Cpu.Ip
	defer func() {
		if err != nil {
			err = &ErrRuntime{Ip: ip, Err: err}
		}
	}()

	err = emu.Cpu.Tick()
	if errors.Is(err, cpu.ErrHalted) {
		err = nil
		done = true
		return
	}
	if err != nil {
		return
	}

	done = emu.Cpu.Halted

	return
}

// Run resets the emulator and ticks until the program halts.
func (emu *Emulator) Run() (err error) {
	err = emu.Reset()
	if err != nil {
		return
	}

	for done, err := emu.Tick(); !done; done, err = emu.Tick() {
		if err != nil {
			return err
		}
	}

	return
}
