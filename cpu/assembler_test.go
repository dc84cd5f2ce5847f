package cpu

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func assemble(t *testing.T, program ...string) (asm *Assembler, prog *Program, err error) {
	t.Helper()

	asm = &Assembler{}
	prog, err = asm.Parse(strings.NewReader(strings.Join(program, "\n")))
	return
}

func TestAssembler(t *testing.T) {
	assert := assert.New(t)

	asm, prog, err := assemble(t,
		"; scenario a",
		"start",
		"  inc r0",
		"  break",
		"stop",
	)
	assert.NoError(err)
	assert.Equal("[Start, Increment(0), Break, Stop]", prog.String())
	assert.Equal("5", asm.Equate["LINENO"])

	expected, err := Parse("AUG CAC AUA CAA UAA")
	assert.NoError(err)
	assert.Equal(expected, prog)
}

func TestAssembler_Opcodes(t *testing.T) {
	assert := assert.New(t)

	asm, prog, err := assemble(t,
		"start",
		"out r1",
		"inc 2",
		"dec r3",
		"jz 0",
		"jnz 1",
		"add r4, r5",
		"sub r6 r7",
		"mov r8, 0x10",
		"break",
		"stop",
	)
	assert.NoError(err)
	assert.Equal("[Start, Output(1), Increment(2), Decrement(3), JumpIfZero(0), JumpNotZero(1), "+
		"Addition(4, 5), Subtraction(6, 7), Move(8, 16), Break, Stop]", prog.String())

	assert.Equal(11, len(asm.Opcode))
	assert.Equal(Opcode{
		LineNo:      7,
		Ip:          6,
		Words:       []string{"add", "r4", "r5"},
		Instruction: MakeInstruction(OP_ADDITION, 4, 5),
	}, asm.Opcode[6])
}

func TestAssembler_Labels(t *testing.T) {
	assert := assert.New(t)

	asm, prog, err := assemble(t,
		".equ COUNT 3",
		"start",
		"    mov r1, COUNT",
		"loop:",
		"    out r1",
		"    dec r1",
		"    jnz loop",
		"    mov r2, $(COUNT * 10 + 1)",
		"    jz done ; forward reference",
		"    break",
		"done: stop",
	)
	assert.NoError(err)
	assert.Equal(2, asm.Label["loop"])
	assert.Equal(8, asm.Label["done"])
	assert.Equal("[Start, Move(1, 3), Output(1), Decrement(1), JumpNotZero(2), "+
		"Move(2, 31), JumpIfZero(8), Break, Stop]", prog.String())
	assert.Equal("jnz", asm.Opcode[4].Words[0])
	assert.Equal("loop", asm.Opcode[4].LinkLabel)
}

func TestAssembler_Expression(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}
	asm.Predefine("BASE", "0x100")
	asm.Predefine("REG", "r4")

	prog, err := asm.Parse(strings.NewReader(strings.Join([]string{
		"start",
		"top:",
		"mov REG $(BASE + 1)",
		"jz $(top + 1)",
		"mov r0 $(LINENO)",
		"stop",
	}, "\n")))
	assert.NoError(err)
	assert.Equal("[Start, Move(4, 257), JumpIfZero(2), Move(0, 5), Stop]", prog.String())
}

func TestAssembler_Errors(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		name    string
		program []string
		lineno  int
		err     error
	}){
		{"opcode", []string{"start", "frob", "stop"}, 2, ErrOpcodeMissing},
		{"directive", []string{"start", ".org 4", "stop"}, 2, ErrDirectiveUnknown},
		{"args_missing", []string{"start", "inc", "stop"}, 2, ErrOpcodeArgs},
		{"args_extra", []string{"start", "break 1", "stop"}, 2, ErrOpcodeArgs},
		{"register", []string{"start", "out r9", "stop"}, 2, ErrRegisterInvalid},
		{"register_name", []string{"start", "out rx", "stop"}, 2, ErrParseNumber("x")},
		{"literal", []string{"start", "mov r1 lots", "stop"}, 2, ErrParseNumber("lots")},
		{"literal_range", []string{"start", "mov r1 0x100000000", "stop"}, 2, ErrParseNumber("0x100000000")},
		{"equ_syntax", []string{".equ A", "start", "stop"}, 1, ErrEquateSyntax},
		{"equ_dup", []string{".equ A 1", ".equ A 2", "start", "stop"}, 2, ErrEquateDuplicate},
		{"label_dup", []string{"start", "x:", "x: stop"}, 3, ErrLabelDuplicate},
		{"label_missing", []string{"start", "jz nowhere", "stop"}, 2, ErrLabelMissing("nowhere")},
		{"expr_string", []string{"start", `mov r0 $("x")`, "stop"}, 2, ErrExpressionNotValue},
		{"expr_negative", []string{"start", "mov r0 $(0 - 1)", "stop"}, 2, ErrExpressionNotValue},
	}

	for _, entry := range table {
		_, prog, err := assemble(t, entry.program...)
		assert.Nil(prog, entry.name)
		assert.ErrorIs(err, entry.err, entry.name)

		var errSyntax *ErrSyntax
		assert.True(errors.As(err, &errSyntax), entry.name)
		if errSyntax != nil {
			assert.Equal(entry.lineno, errSyntax.LineNo, entry.name)
		}
	}
}

func TestAssembler_Starlark(t *testing.T) {
	assert := assert.New(t)

	_, prog, err := assemble(t, "start", "mov r0 $(1 / 0)", "stop")
	assert.Nil(prog)
	assert.Error(err)

	var errSyntax *ErrSyntax
	assert.True(errors.As(err, &errSyntax))
	if errSyntax != nil {
		assert.Equal(2, errSyntax.LineNo)
	}
}

func TestAssembler_Validate(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		name    string
		program []string
		err     error
	}){
		{"empty", []string{"; nothing"}, ErrTooFewInstructions},
		{"no_start", []string{"break", "stop"}, ErrMissingStart},
		{"no_stop", []string{"start", "break"}, ErrMissingStop},
	}

	for _, entry := range table {
		_, prog, err := assemble(t, entry.program...)
		assert.Nil(prog, entry.name)
		assert.ErrorIs(err, entry.err, entry.name)

		// Structural errors are not tied to a line.
		var errSyntax *ErrSyntax
		assert.False(errors.As(err, &errSyntax), entry.name)
	}
}

func TestAssembler_Encode(t *testing.T) {
	assert := assert.New(t)

	_, prog, err := assemble(t,
		"start",
		"    mov r1 3",
		"loop:",
		"    out r1",
		"    dec r1",
		"    jnz loop",
		"    mov r2 1000",
		"    add r1 r2",
		"    stop",
	)
	assert.NoError(err)

	codons, err := Encode(prog)
	assert.NoError(err)

	again, err := Parse(CodonString(codons))
	assert.NoError(err)
	assert.Equal(prog, again)
}
