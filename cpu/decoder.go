package cpu

import (
	"log"
)

// Decoder turns a codon sequence into an instruction list.
type Decoder struct {
	Verbose bool // If set, logs each decoded instruction.
}

// Decode decodes codons with a default Decoder.
func Decode(codons []Codon) (instrs []Instruction, err error) {
	dec := &Decoder{}
	return dec.Decode(codons)
}

// Decode walks the codons once, left to right.
//
// Every codon up to and including the last is eligible for dispatch.
// Single operand opcodes read one digit run directly after the opcode
// codon. Two operand opcodes read two runs; the codon that ended the first
// run separates the operands and is consumed.
//
// No instructions are returned on error.
func (dec *Decoder) Decode(codons []Codon) (instrs []Instruction, err error) {
	defer func() {
		if err != nil {
			instrs = nil
		}
	}()

	ip := 0
	for ip < len(codons) {
		codon := codons[ip]
		op, ok := OpcodeTable[codon]
		if !ok {
			err = &ErrUnrecognizedSymbol{Index: ip, Codon: codon}
			return
		}

		at := ip
		var instr Instruction
		switch op.Arity() {
		case 0:
			instr = MakeInstruction(op)
			ip++
		case 1:
			var arg uint32
			arg, ip, err = DecodeNumber(codons, ip+1)
			if err != nil {
				return
			}
			instr = MakeInstruction(op, arg)
		case 2:
			var arg1, arg2 uint32
			arg1, ip, err = DecodeNumber(codons, ip+1)
			if err != nil {
				return
			}
			arg2, ip, err = DecodeNumber(codons, ip+1)
			if err != nil {
				return
			}
			instr = MakeInstruction(op, arg1, arg2)
		default:
			err = ErrOpcodeInvalid
			return
		}

		if dec.Verbose {
			log.Printf("decode: %03d %v: %v", at, codon, instr)
		}

		instrs = append(instrs, instr)
	}

	return
}
