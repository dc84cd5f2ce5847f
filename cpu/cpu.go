package cpu

import (
	"errors"
	"fmt"
	"iter"
	"log"
	"maps"

	"github.com/ezrec/rnavm/io"
)

var _cpu_defines = map[string]string{
	"REGISTER_COUNT": fmt.Sprintf("%d", REGISTER_COUNT),
	"REG_ACC":        fmt.Sprintf("%d", REG_ACC),
	"REG_COND":       fmt.Sprintf("%d", REG_COND),
}

// Cpu is the register machine that executes a Program.
type Cpu struct {
	Verbose bool // Set to enable verbose logging.

	Program *Program   // Program being executed.
	Output  io.Channel // Destination of Output instructions.

	Ip       int       // Current instruction pointer.
	Register Registers // Register bank.
	Halted   bool      // Set once Stop has executed.

	Ticks int // Instructions executed since reset.
}

// NewCpu creates a CPU for a program, sending output to a channel.
func NewCpu(prog *Program, output io.Channel) (cpu *Cpu) {
	cpu = &Cpu{
		Program: prog,
		Output:  output,
	}

	return
}

// Defines for the cpu
func (cpu *Cpu) Defines() iter.Seq2[string, string] {
	return maps.All(_cpu_defines)
}

// String returns the current CPU state as a string.
func (cpu *Cpu) String() (text string) {
	text += fmt.Sprintf("% 6s: %d\n", "ip", cpu.Ip)
	text += fmt.Sprintf("% 6s: %v\n", "halted", cpu.Halted)
	for n, val := range cpu.Register {
		text += fmt.Sprintf("% 6s: %d\n", fmt.Sprintf("r%d", n), val)
	}

	return
}

// Reset the CPU state.
// - Clears the registers.
// - Zeros the tick counter.
// - Rewinds the output channel.
// - Sets the instruction pointer to the first instruction.
func (cpu *Cpu) Reset() {
	if cpu.Verbose {
		log.Printf("cpu: reset")
	}

	cpu.Register.Reset()
	cpu.Ip = 0
	cpu.Halted = false
	cpu.Ticks = 0

	if cpu.Output != nil {
		cpu.Output.Rewind()
	}
}

// Tick executes a single instruction.
func (cpu *Cpu) Tick() (err error) {
	if cpu.Halted {
		err = ErrHalted
		return
	}

	if cpu.Program.Len() == 0 {
		err = ErrProgramEmpty
		return
	}

	instr, ok := cpu.Program.At(cpu.Ip)
	if !ok {
		err = ErrIpRange
		return
	}

	err = cpu.Execute(instr)
	if err != nil {
		return
	}

	cpu.Ticks++

	return
}

// Run ticks until the program halts or fails.
func (cpu *Cpu) Run() (err error) {
	for !cpu.Halted {
		err = cpu.Tick()
		if err != nil {
			return
		}
	}

	return
}

// Execute executes a single decoded instruction at the current
// instruction pointer.
func (cpu *Cpu) Execute(instr Instruction) (err error) {
	if cpu.Verbose {
		log.Printf("%03d: %v", cpu.Ip, instr)
	}

	next_ip := cpu.Ip + 1

	switch instr.Op {
	case OP_START, OP_BREAK:
		// pass
	case OP_STOP:
		cpu.Halted = true
		next_ip = cpu.Ip
	case OP_OUTPUT:
		var value int32
		value, err = cpu.getRegister(instr, 0)
		if err != nil {
			return
		}
		if cpu.Output == nil {
			err = ErrChannelInvalid
			return
		}
		err = cpu.Output.Send(value)
		if err != nil {
			err = errors.Join(ErrChannelInvalid, err)
			return
		}
	case OP_ADDITION, OP_SUBTRACTION:
		var a, b int32
		a, err = cpu.getRegister(instr, 0)
		if err != nil {
			return
		}
		b, err = cpu.getRegister(instr, 1)
		if err != nil {
			return
		}
		if instr.Op == OP_ADDITION {
			cpu.Register[REG_ACC] = a + b
		} else {
			cpu.Register[REG_ACC] = a - b
		}
	case OP_INCREMENT, OP_DECREMENT:
		var value int32
		value, err = cpu.getRegister(instr, 0)
		if err != nil {
			return
		}
		if instr.Op == OP_INCREMENT {
			value++
		} else {
			value--
		}
		err = cpu.setRegister(instr, 0, value)
	case OP_MOVE:
		// The second operand is a literal, not a register.
		err = cpu.setRegister(instr, 0, int32(instr.Arg(1)))
	case OP_JUMP_ZERO, OP_JUMP_NONZERO:
		var target int
		target, err = cpu.getTarget(instr, 0)
		if err != nil {
			return
		}
		cond := cpu.Register[REG_COND] == 0
		if instr.Op == OP_JUMP_NONZERO {
			cond = !cond
		}
		if cond {
			next_ip = target
		}
	default:
		err = ErrOpcodeInvalid
	}

	if err != nil {
		return
	}

	cpu.Ip = next_ip

	return
}

// operandError builds the error for operand n of instr.
func (cpu *Cpu) operandError(instr Instruction, n int, limit int) error {
	return &ErrInvalidOperand{
		Ip:          cpu.Ip,
		Instruction: instr,
		Arg:         n,
		Value:       instr.Arg(n),
		Limit:       limit,
	}
}

// getRegister reads the register named by operand n.
func (cpu *Cpu) getRegister(instr Instruction, n int) (value int32, err error) {
	value, ok := cpu.Register.Get(instr.Arg(n))
	if !ok {
		err = cpu.operandError(instr, n, REGISTER_COUNT)
	}
	return
}

// setRegister writes the register named by operand n.
func (cpu *Cpu) setRegister(instr Instruction, n int, value int32) (err error) {
	if !cpu.Register.Set(instr.Arg(n), value) {
		err = cpu.operandError(instr, n, REGISTER_COUNT)
	}
	return
}

// getTarget checks that operand n is an instruction address.
func (cpu *Cpu) getTarget(instr Instruction, n int) (target int, err error) {
	arg := instr.Arg(n)
	if uint64(arg) >= uint64(cpu.Program.Len()) {
		err = cpu.operandError(instr, n, cpu.Program.Len())
		return
	}
	return int(arg), nil
}
