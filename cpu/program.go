package cpu

import (
	"errors"
	"iter"
	"slices"
	"strings"

	"github.com/ezrec/rnavm/internal"
)

// Program is a validated instruction list. It begins with Start, ends
// with Stop, and is not modified after validation.
type Program struct {
	instrs []Instruction
}

// Validate checks the structure of a decoded instruction list and returns
// it as a Program.
func Validate(instrs []Instruction) (prog *Program, err error) {
	switch {
	case len(instrs) < 2:
		err = ErrTooFewInstructions
		return
	case instrs[0].Op != OP_START:
		err = ErrMissingStart
		return
	case instrs[len(instrs)-1].Op != OP_STOP:
		err = ErrMissingStop
		return
	}

	for _, instr := range instrs {
		if !instr.Op.Valid() {
			err = ErrOpcodeInvalid
			return
		}
	}

	prog = &Program{
		instrs: slices.Clone(instrs),
	}

	return
}

// Parse cleans, tokenizes, decodes and validates source text.
func Parse(text string) (prog *Program, err error) {
	instrs, err := Decode(Tokenize(Clean(text)))
	if err != nil {
		return
	}

	return Validate(instrs)
}

// Len returns the number of instructions.
func (prog *Program) Len() int {
	if prog == nil {
		return 0
	}
	return len(prog.instrs)
}

// At returns the instruction at ip.
func (prog *Program) At(ip int) (instr Instruction, ok bool) {
	if ip < 0 || ip >= prog.Len() {
		return
	}

	return prog.instrs[ip], true
}

// Instructions iterates over the program with instruction addresses.
func (prog *Program) Instructions() iter.Seq2[int, Instruction] {
	return func(yield func(ip int, instr Instruction) bool) {
		for ip := range prog.Len() {
			if !yield(ip, prog.instrs[ip]) {
				return
			}
		}
	}
}

// String returns the program listing as `[Start, Increment(0), Stop]`.
func (prog *Program) String() string {
	names := make([]string, 0, prog.Len())
	for _, instr := range prog.Instructions() {
		names = append(names, instr.String())
	}

	return "[" + strings.Join(names, ", ") + "]"
}

// instrCodons spells a single instruction with canonical codons.
func instrCodons(instr Instruction) iter.Seq[Codon] {
	var codons []Codon

	codons = append(codons, _opCodon[instr.Op])
	for n := range instr.Op.Arity() {
		if n > 0 {
			codons = append(codons, OPERAND_SEPARATOR)
		}
		codons = append(codons, EncodeNumber(instr.Arg(n))...)
	}

	return slices.Values(codons)
}

// Codons iterates over the canonical codon spelling of the program.
func (prog *Program) Codons() iter.Seq[Codon] {
	seqs := make([]iter.Seq[Codon], 0, prog.Len())
	for _, instr := range prog.Instructions() {
		seqs = append(seqs, instrCodons(instr))
	}

	return internal.IterSeqConcat(seqs...)
}

// Encode spells the program as codons, and verifies that the spelling
// decodes back to the same program.
func Encode(prog *Program) (codons []Codon, err error) {
	// starts[ip] is the index of the first codon of instruction ip.
	starts := make([]int, 0, prog.Len())
	for _, instr := range prog.Instructions() {
		starts = append(starts, len(codons))
		codons = slices.AppendSeq(codons, instrCodons(instr))
	}

	instrs, err := Decode(codons)
	if err != nil {
		ip := prog.Len() - 1
		var errSymbol *ErrUnrecognizedSymbol
		var errOverflow *ErrOverflow
		switch {
		case errors.As(err, &errSymbol):
			ip = owner(starts, errSymbol.Index)
		case errors.As(err, &errOverflow):
			ip = owner(starts, errOverflow.Index)
		}
		err = &ErrNotEncodable{Ip: ip}
		codons = nil
		return
	}

	if ip := firstMismatch(prog, instrs); ip < prog.Len() || len(instrs) != prog.Len() {
		err = &ErrNotEncodable{Ip: min(ip, prog.Len()-1)}
		codons = nil
		return
	}

	return
}

// owner returns the instruction whose spelling contains codon index.
func owner(starts []int, index int) int {
	ip, found := slices.BinarySearch(starts, index)
	if !found {
		ip--
	}
	return max(ip, 0)
}

// firstMismatch returns the first address where instrs disagrees with prog.
func firstMismatch(prog *Program, instrs []Instruction) int {
	for ip, instr := range prog.Instructions() {
		if ip >= len(instrs) || !instrs[ip].Equal(instr) {
			return ip
		}
	}

	return prog.Len()
}

// CodonString joins codons with single spaces.
func CodonString(codons []Codon) string {
	words := make([]string, len(codons))
	for n, codon := range codons {
		words[n] = string(codon)
	}

	return strings.Join(words, " ")
}
