package cpu

import (
	"fmt"
	"slices"
	"strings"
)

// CodeOp is an instruction kind.
type CodeOp int

const (
	OP_START        = CodeOp(0)  // start
	OP_STOP         = CodeOp(1)  // stop
	OP_BREAK        = CodeOp(2)  // break
	OP_OUTPUT       = CodeOp(3)  // out
	OP_INCREMENT    = CodeOp(4)  // inc
	OP_DECREMENT    = CodeOp(5)  // dec
	OP_JUMP_ZERO    = CodeOp(6)  // jz
	OP_JUMP_NONZERO = CodeOp(7)  // jnz
	OP_ADDITION     = CodeOp(8)  // add
	OP_SUBTRACTION  = CodeOp(9)  // sub
	OP_MOVE         = CodeOp(10) // mov
	op_count        = 11
)

// opInfo describes the textual forms and operand count of an opcode.
type opInfo struct {
	name     string
	mnemonic string
	arity    int
}

var _opInfo = [op_count]opInfo{
	OP_START:        {"Start", "start", 0},
	OP_STOP:         {"Stop", "stop", 0},
	OP_BREAK:        {"Break", "break", 0},
	OP_OUTPUT:       {"Output", "out", 1},
	OP_INCREMENT:    {"Increment", "inc", 1},
	OP_DECREMENT:    {"Decrement", "dec", 1},
	OP_JUMP_ZERO:    {"JumpIfZero", "jz", 1},
	OP_JUMP_NONZERO: {"JumpNotZero", "jnz", 1},
	OP_ADDITION:     {"Addition", "add", 2},
	OP_SUBTRACTION:  {"Subtraction", "sub", 2},
	OP_MOVE:         {"Move", "mov", 2},
}

// Valid returns true if the opcode is a known instruction kind.
func (op CodeOp) Valid() bool {
	return op >= 0 && op < op_count
}

// String returns the instruction kind name.
func (op CodeOp) String() string {
	if !op.Valid() {
		return fmt.Sprintf("CodeOp(%d)", int(op))
	}
	return _opInfo[op].name
}

// Mnemonic returns the assembler name of the opcode.
func (op CodeOp) Mnemonic() string {
	if !op.Valid() {
		return ""
	}
	return _opInfo[op].mnemonic
}

// Arity returns the number of numeric operands the opcode takes.
func (op CodeOp) Arity() int {
	if !op.Valid() {
		return 0
	}
	return _opInfo[op].arity
}

// Codon is a three symbol unit of source text.
// A trailing partial codon may be shorter.
type Codon string

// DigitTable maps digit codons to their decimal digit.
var DigitTable = map[Codon]byte{
	"AUA": '0', "AUC": '0', "AUU": '0',
	"CUA": '1', "CUC": '1', "CUG": '1', "CUU": '1', "UUA": '1', "UUG": '1',
	"AAA": '2', "AAG": '2',
	"UUU": '3', "UUC": '3',
	"CCA": '4', "CCC": '4', "CCG": '4', "CCU": '4',
	"AGC": '5', "AGU": '5', "UCA": '5', "UCC": '5', "UCG": '5', "UCU": '5',
	"ACC": '6', "ACU": '6', "UGC": '6', "UGU": '6',
	"UGG": '7',
	"UAU": '8', "UAC": '8',
	"GUA": '9', "GUC": '9', "GUG": '9', "GUU": '9',
}

// OpcodeTable maps opcode codons to their instruction kind.
var OpcodeTable = map[Codon]CodeOp{
	"GCA": OP_OUTPUT, "GCC": OP_OUTPUT, "GCG": OP_OUTPUT, "GCU": OP_OUTPUT,
	"AGA": OP_DECREMENT, "AGG": OP_DECREMENT, "CGA": OP_DECREMENT,
	"CGC": OP_DECREMENT, "CGG": OP_DECREMENT, "CGU": OP_DECREMENT,
	"AAC": OP_JUMP_NONZERO, "AAU": OP_JUMP_NONZERO,
	"GAC": OP_ADDITION, "GAU": OP_ADDITION,
	"UGC": OP_SUBTRACTION, "UGU": OP_SUBTRACTION,
	"GAA": OP_JUMP_ZERO, "GAG": OP_JUMP_ZERO,
	"CAA": OP_BREAK, "CAG": OP_BREAK,
	"GGA": OP_MOVE, "GGC": OP_MOVE, "GGG": OP_MOVE, "GGU": OP_MOVE,
	"CAC": OP_INCREMENT, "CAU": OP_INCREMENT,
	"AUG": OP_START,
	"UAA": OP_STOP, "UAG": OP_STOP, "UGA": OP_STOP,
}

// Canonical spellings used by the encoder.
var (
	_opCodon = [op_count]Codon{
		OP_START:        "AUG",
		OP_STOP:         "UAA",
		OP_BREAK:        "CAA",
		OP_OUTPUT:       "GCA",
		OP_INCREMENT:    "CAC",
		OP_DECREMENT:    "AGA",
		OP_JUMP_ZERO:    "GAA",
		OP_JUMP_NONZERO: "AAC",
		OP_ADDITION:     "GAC",
		OP_SUBTRACTION:  "UGC",
		OP_MOVE:         "GGA",
	}
	_digitCodon = [10]Codon{
		"AUA", "CUA", "AAA", "UUU", "CCA", "AGC", "ACC", "UGG", "UAU", "GUA",
	}
)

// OPERAND_SEPARATOR is the codon the encoder places between the two
// operand runs of a two operand instruction. Any non-digit codon
// decodes the same way.
const OPERAND_SEPARATOR = Codon("CAA")

// Instruction is a decoded opcode and its raw operands.
type Instruction struct {
	Op   CodeOp
	Args []uint32
}

// MakeInstruction creates an instruction.
func MakeInstruction(op CodeOp, args ...uint32) Instruction {
	return Instruction{Op: op, Args: args}
}

// Arg returns operand n, or 0 if absent.
func (instr Instruction) Arg(n int) uint32 {
	if n < 0 || n >= len(instr.Args) {
		return 0
	}
	return instr.Args[n]
}

// Equal reports whether two instructions have the same kind and operands.
func (instr Instruction) Equal(other Instruction) bool {
	return instr.Op == other.Op && slices.Equal(instr.Args, other.Args)
}

// String returns the instruction as `Kind(arg, arg)`, or `Kind` when it
// takes no operands.
func (instr Instruction) String() string {
	if len(instr.Args) == 0 {
		return instr.Op.String()
	}

	args := make([]string, len(instr.Args))
	for n, arg := range instr.Args {
		args[n] = fmt.Sprintf("%d", arg)
	}

	return instr.Op.String() + "(" + strings.Join(args, ", ") + ")"
}
