package cpu

import (
	"errors"

	"github.com/ezrec/rnavm/translate"
)

var f = translate.From

var (
	// Validation errors
	ErrTooFewInstructions = errors.New(f("too few instructions"))
	ErrMissingStart       = errors.New(f("program does not begin with start"))
	ErrMissingStop        = errors.New(f("program does not end with stop"))

	// Cpu errors
	ErrHalted         = errors.New(f("cpu halted"))
	ErrIpRange        = errors.New(f("ip out of range"))
	ErrProgramEmpty   = errors.New(f("no program loaded"))
	ErrChannelInvalid = errors.New(f("output channel invalid"))
	ErrOpcodeInvalid  = errors.New(f("opcode invalid"))

	// Assembler errors
	ErrEquateSyntax       = errors.New(f(".equ syntax"))
	ErrEquateDuplicate    = errors.New(f(".equ duplicated"))
	ErrLabelDuplicate     = errors.New(f("label duplicated"))
	ErrOpcodeArgs         = errors.New(f("wrong number of arguments"))
	ErrOpcodeMissing      = errors.New(f("opcode missing"))
	ErrRegisterInvalid    = errors.New(f("register invalid"))
	ErrDirectiveUnknown   = errors.New(f("directive unknown"))
	ErrExpressionNotValue = errors.New(f("expression is not an integer"))
)

// ErrUnrecognizedSymbol is returned when a codon in opcode position is not
// in the opcode table.
type ErrUnrecognizedSymbol struct {
	Index int   // Codon index in the tokenized source.
	Codon Codon // Offending codon.
}

func (err *ErrUnrecognizedSymbol) Error() string {
	return f("codon %d '%v' is not an opcode", err.Index, string(err.Codon))
}

// ErrOverflow is returned when a run of digit codons does not fit
// in 32 bits.
type ErrOverflow struct {
	Index  int    // Codon index of the first digit.
	Digits string // Accumulated digit string.
}

func (err *ErrOverflow) Error() string {
	return f("codon %d number %v overflows 32 bits", err.Index, err.Digits)
}

// ErrInvalidOperand is returned when an instruction names a register or
// jump target that does not exist.
type ErrInvalidOperand struct {
	Ip          int         // Instruction pointer of the failing instruction.
	Instruction Instruction // Failing instruction.
	Arg         int         // Operand position.
	Value       uint32      // Operand value.
	Limit       int         // Exclusive upper bound for the operand.
}

func (err *ErrInvalidOperand) Error() string {
	return f("ip %d %v operand %d value %d out of range [0, %d)",
		err.Ip, err.Instruction.String(), err.Arg, err.Value, err.Limit)
}

// ErrNotEncodable is returned when a program's codon spelling does not
// decode back to the same program.
type ErrNotEncodable struct {
	Ip int // First instruction that does not survive the round trip.
}

func (err *ErrNotEncodable) Error() string {
	return f("instruction %d cannot be encoded", err.Ip)
}

type ErrLabelMissing string

func (el ErrLabelMissing) Error() string {
	return f("label %v missing", string(el))
}

type ErrParseNumber string

func (err ErrParseNumber) Error() string {
	return f("'%v' is not a number", string(err))
}

type ErrParseExpression string

func (err ErrParseExpression) Error() string {
	return f("$(%v) is not a valid expression", string(err))
}

type ErrSyntax struct {
	LineNo int
	Line   string
	Err    error
}

func (err *ErrSyntax) Error() string {
	return f("line %d '%v' %v", err.LineNo, err.Line, err.Err)
}

func (err *ErrSyntax) Unwrap() error {
	return err.Err
}
