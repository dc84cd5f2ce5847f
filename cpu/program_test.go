package cpu

import (
	"errors"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidate(t *testing.T) {
	assert := assert.New(t)

	start := MakeInstruction(OP_START)
	stop := MakeInstruction(OP_STOP)
	brk := MakeInstruction(OP_BREAK)

	table := [](struct {
		name   string
		instrs []Instruction
		err    error
	}){
		{"empty", nil, ErrTooFewInstructions},
		{"start_only", []Instruction{start}, ErrTooFewInstructions},
		{"stop_only", []Instruction{stop}, ErrTooFewInstructions},
		{"no_start", []Instruction{brk, stop}, ErrMissingStart},
		{"stop_first", []Instruction{stop, stop}, ErrMissingStart},
		{"no_stop", []Instruction{start, brk}, ErrMissingStop},
		{"stop_not_last", []Instruction{start, stop, brk}, ErrMissingStop},
		{"bad_opcode", []Instruction{start, MakeInstruction(CodeOp(99)), stop}, ErrOpcodeInvalid},
		{"minimal", []Instruction{start, stop}, nil},
		{"body", []Instruction{start, brk, MakeInstruction(OP_INCREMENT, 3), stop}, nil},
	}

	for _, entry := range table {
		prog, err := Validate(entry.instrs)
		if entry.err != nil {
			assert.ErrorIs(err, entry.err, entry.name)
			assert.Nil(prog, entry.name)
		} else {
			assert.NoError(err, entry.name)
			assert.Equal(len(entry.instrs), prog.Len(), entry.name)
		}
	}
}

func TestValidate_Copy(t *testing.T) {
	assert := assert.New(t)

	instrs := []Instruction{MakeInstruction(OP_START), MakeInstruction(OP_STOP)}
	prog, err := Validate(instrs)
	assert.NoError(err)

	instrs[0] = MakeInstruction(OP_BREAK)
	instr, ok := prog.At(0)
	assert.True(ok)
	assert.Equal(OP_START, instr.Op)
}

func TestProgram_At(t *testing.T) {
	assert := assert.New(t)

	prog, err := Parse("AUG CAC AUA CAA UAA")
	assert.NoError(err)

	instr, ok := prog.At(1)
	assert.True(ok)
	assert.Equal(MakeInstruction(OP_INCREMENT, 0), instr)

	_, ok = prog.At(4)
	assert.False(ok)
	_, ok = prog.At(-1)
	assert.False(ok)

	var empty *Program
	assert.Equal(0, empty.Len())
	_, ok = empty.At(0)
	assert.False(ok)
}

func TestProgram_String(t *testing.T) {
	assert := assert.New(t)

	prog, err := Parse("AUG CAC AUA CAA UAA")
	assert.NoError(err)
	assert.Equal("[Start, Increment(0), Break, Stop]", prog.String())

	prog, err = Parse("AUG GGA CUA CAA CUA GGG AAG CAG CUA GAU CUA CAA AAA GCA AUA UGA")
	assert.NoError(err)
	assert.Equal("[Start, Move(1, 1), Move(2, 1), Addition(1, 2), Output(0), Stop]", prog.String())
}

func TestParse_Errors(t *testing.T) {
	assert := assert.New(t)

	_, err := Parse("AUG UAA UA")
	var errSymbol *ErrUnrecognizedSymbol
	assert.True(errors.As(err, &errSymbol))

	_, err = Parse("CAC AUA UAA")
	assert.ErrorIs(err, ErrMissingStart)

	_, err = Parse("AUG CAA")
	assert.ErrorIs(err, ErrMissingStop)

	_, err = Parse("")
	assert.ErrorIs(err, ErrTooFewInstructions)
}

func TestEncode(t *testing.T) {
	assert := assert.New(t)

	prog, err := Validate([]Instruction{
		MakeInstruction(OP_START),
		MakeInstruction(OP_MOVE, 2, 105),
		MakeInstruction(OP_OUTPUT, 2),
		MakeInstruction(OP_ADDITION, 1, 2),
		MakeInstruction(OP_STOP),
	})
	assert.NoError(err)

	codons, err := Encode(prog)
	assert.NoError(err)
	assert.Equal("AUG GGA AAA CAA CUA AUA AGC GCA AAA GAC CUA CAA AAA UAA", CodonString(codons))
	assert.Equal(codons, slices.Collect(prog.Codons()))

	again, err := Parse(CodonString(codons))
	assert.NoError(err)
	assert.Equal(prog.String(), again.String())
}

func TestEncode_RoundTrip(t *testing.T) {
	assert := assert.New(t)

	for _, text := range []string{
		"AUG CAC AUA CAA UAA",
		"AUG GCA AUA CAC AUA UAA",
		"AUG GGA CUA CAA CUA GGG AAG CAG CUA GAU CUA CAA AAA GCA AUA UGA",
		"AUG UGU CUA CAA AAA UAG",
	} {
		prog, err := Parse(text)
		assert.NoError(err, text)

		codons, err := Encode(prog)
		assert.NoError(err, text)

		again, err := Parse(CodonString(codons))
		assert.NoError(err, text)
		assert.Equal(prog.String(), again.String(), text)
	}
}

func TestEncode_Subtraction(t *testing.T) {
	assert := assert.New(t)

	// Every Subtraction codon is also a digit codon, so it cannot follow
	// an operand run.
	prog, err := Validate([]Instruction{
		MakeInstruction(OP_START),
		MakeInstruction(OP_INCREMENT, 0),
		MakeInstruction(OP_SUBTRACTION, 1, 2),
		MakeInstruction(OP_STOP),
	})
	assert.NoError(err)

	codons, err := Encode(prog)
	assert.Nil(codons)
	var errEncode *ErrNotEncodable
	assert.True(errors.As(err, &errEncode))
	if errEncode != nil {
		assert.Equal(2, errEncode.Ip)
	}

	// After a zero operand instruction it is fine.
	prog, err = Validate([]Instruction{
		MakeInstruction(OP_START),
		MakeInstruction(OP_SUBTRACTION, 1, 2),
		MakeInstruction(OP_STOP),
	})
	assert.NoError(err)
	_, err = Encode(prog)
	assert.NoError(err)
}
