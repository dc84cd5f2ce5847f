// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"maps"
	"regexp"
	"strconv"
	"strings"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

// Opcode is a line of assembled source with its generated instruction.
type Opcode struct {
	LineNo      int         // Source line.
	Ip          int         // Instruction address.
	Words       []string    // Words of the line after expansion.
	Instruction Instruction // Generated instruction.
	LinkLabel   string      // Jump label to resolve after parsing.
}

// Predefined system equates
var sysEquate = map[string]string{
	"LINENO": "0",
}

// Assembler is a single pass assembler for the mnemonic form of the
// instruction set.
type Assembler struct {
	Verbose bool     // If set, verbosely logs the assembler actions.
	Opcode  []Opcode // List of generated opcodes.

	predefine map[string]string // Predefines
	Label     map[string]int    // Map of jump labels to instruction addresses.
	Equate    map[string]string // Map of equates.
}

// Predefine defines a new equate or redefines an existing equate.
func (asm *Assembler) Predefine(equ string, value string) {
	if asm.predefine == nil {
		asm.predefine = map[string]string{equ: value}
	} else {
		asm.predefine[equ] = value
	}
}

// mnemonicMap maps assembler names to opcodes.
var mnemonicMap = func() map[string]CodeOp {
	mnemonics := make(map[string]CodeOp, op_count)
	for op := range CodeOp(op_count) {
		mnemonics[op.Mnemonic()] = op
	}
	return mnemonics
}()

// valueOf returns the value of a simple word.
func (asm *Assembler) valueOf(word string) (value uint32, err error) {
	v64, err := strconv.ParseUint(word, 0, 32)
	if err != nil {
		err = ErrParseNumber(word)
		return
	}

	value = uint32(v64)

	return
}

// registerOf returns the register index of a `rN` word or a number.
func (asm *Assembler) registerOf(word string) (value uint32, err error) {
	if len(word) > 1 && word[0] == 'r' {
		value, err = asm.valueOf(word[1:])
	} else {
		value, err = asm.valueOf(word)
	}
	if err != nil {
		return
	}

	if value >= REGISTER_COUNT {
		err = ErrRegisterInvalid
		return
	}

	return
}

// parenEval does compile-time $(...) evaluations
func (asm *Assembler) parenEval(expr string) (value uint32, err error) {
	thread := starlark.Thread{}
	opts := syntax.FileOptions{}
	pred := starlark.StringDict{}
	for key, str := range asm.Equate {
		var value32 uint32
		value32, err = asm.valueOf(str)
		if err != nil {
			// Ignore non-integer equates. They may be registers
			// or something else.
			continue
		}
		pred[key] = starlark.MakeInt(int(value32))
	}
	for key, ip := range asm.Label {
		pred[key] = starlark.MakeInt(ip)
	}
	err = nil

	prog := "rc=" + expr + "\n"
	dict, err := starlark.ExecFileOptions(&opts, &thread, "expr", prog, pred)
	if err != nil {
		return
	}
	st_rc, ok := dict["rc"]
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	st_int, ok := st_rc.(starlark.Int)
	if !ok {
		err = ErrExpressionNotValue
		return
	}
	st_int64, ok := st_int.Int64()
	if !ok || st_int64 < 0 || st_int64 > 0xffffffff {
		err = ErrExpressionNotValue
		return
	}
	value = uint32(st_int64)
	return
}

var (
	reParen = regexp.MustCompile(`\$\([^\$]*\)`)
)

// parseLine expands a single line into words.
func (asm *Assembler) parseLine(line string, lineno int) (words []string, err error) {
	// Set line number.
	asm.Equate["LINENO"] = fmt.Sprintf("%v", lineno)

	// Do $() evaluations
	line = reParen.ReplaceAllStringFunc(line, func(str string) string {
		value, _err := asm.parenEval(str[2 : len(str)-1])
		if _err != nil {
			err = _err
		}
		return fmt.Sprintf("%d", value)
	})
	if err != nil {
		return
	}

	words = strings.Fields(strings.ReplaceAll(line, ",", " "))

	if len(words) == 0 {
		return
	}

	// .equ CONST VALUE
	if words[0] == ".equ" {
		if len(words) != 3 {
			err = ErrEquateSyntax
			return
		}
		_, ok := asm.Equate[words[1]]
		if ok {
			err = ErrEquateDuplicate
			return
		}
		asm.Equate[words[1]] = words[2]
		words = words[:0]
		return
	}

	for n, word := range words {
		equate, ok := asm.Equate[word]
		if ok {
			words[n] = equate
		}
	}

	for len(words) > 0 && strings.HasSuffix(words[0], ":") {
		label := words[0][:len(words[0])-1]
		_, ok := asm.Label[label]
		if ok {
			err = ErrLabelDuplicate
			return
		}

		asm.Label[label] = len(asm.Opcode)
		words = words[1:]
	}

	return
}

// parseWords generates the instruction for the words of a line.
func (asm *Assembler) parseWords(words []string, lineno int) (err error) {
	// no-op
	if len(words) == 0 {
		return
	}

	if strings.HasPrefix(words[0], ".") {
		err = ErrDirectiveUnknown
		return
	}

	op, ok := mnemonicMap[words[0]]
	if !ok {
		err = ErrOpcodeMissing
		return
	}

	args := words[1:]
	if len(args) != op.Arity() {
		err = ErrOpcodeArgs
		return
	}

	opcode := Opcode{
		LineNo: lineno,
		Ip:     len(asm.Opcode),
		Words:  words,
	}

	var values []uint32
	for n, arg := range args {
		var value uint32
		switch {
		case op == OP_JUMP_ZERO || op == OP_JUMP_NONZERO:
			value, err = asm.valueOf(arg)
			if err != nil {
				// Resolved once all labels are known.
				opcode.LinkLabel = arg
				err = nil
			}
		case op == OP_MOVE && n == 1:
			value, err = asm.valueOf(arg)
		default:
			value, err = asm.registerOf(arg)
		}
		if err != nil {
			return
		}
		values = append(values, value)
	}

	opcode.Instruction = MakeInstruction(op, values...)
	asm.Opcode = append(asm.Opcode, opcode)

	return
}

// Parse parses an input stream into a Program.
func (asm *Assembler) Parse(input io.Reader) (prog *Program, err error) {
	scanner := bufio.NewScanner(input)

	var line string
	var lineno int

	defer func() {
		if err != nil && lineno > 0 {
			err = &ErrSyntax{LineNo: lineno, Line: line, Err: err}
		}
	}()

	asm.Opcode = asm.Opcode[:0]
	asm.Label = make(map[string]int, 16)
	asm.Equate = maps.Clone(sysEquate)
	for attr, val := range asm.predefine {
		asm.Equate[attr] = val
	}

	for scanner.Scan() {
		text := scanner.Text()
		lineno += 1

		if asm.Verbose {
			log.Printf("%v: %v\n", lineno, text)
		}

		line = strings.TrimSpace(strings.SplitN(text, ";", 2)[0])

		var words []string
		words, err = asm.parseLine(line, lineno)
		if err != nil {
			return
		}

		err = asm.parseWords(words, lineno)
		if err != nil {
			return
		}
	}

	err = scanner.Err()
	if err != nil {
		return
	}

	// Final linking of jump labels.
	instrs := make([]Instruction, len(asm.Opcode))
	for n := range asm.Opcode {
		op := &asm.Opcode[n]

		if len(op.LinkLabel) != 0 {
			ip, ok := asm.Label[op.LinkLabel]
			if !ok {
				lineno = op.LineNo
				line = strings.Join(op.Words, " ")
				err = ErrLabelMissing(op.LinkLabel)
				return
			}
			op.Instruction.Args[0] = uint32(ip)
		}

		instrs[n] = op.Instruction
	}

	// Structural errors are not tied to a line.
	lineno = 0
	prog, err = Validate(instrs)

	return
}
