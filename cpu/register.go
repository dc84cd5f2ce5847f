package cpu

const (
	REGISTER_COUNT = 9 // Size of the register file.
	REG_ACC        = 0 // Destination of Addition and Subtraction.
	REG_COND       = 1 // Register tested by JumpIfZero and JumpNotZero.
)

// Registers is the register file. Indexes come from decoded operands and
// are checked on every access.
type Registers [REGISTER_COUNT]int32

// Valid returns true if index names a register.
func (regs *Registers) Valid(index uint32) bool {
	return index < REGISTER_COUNT
}

// Get returns the value of a register.
func (regs *Registers) Get(index uint32) (value int32, ok bool) {
	if !regs.Valid(index) {
		return
	}
	return regs[index], true
}

// Set assigns the value of a register.
func (regs *Registers) Set(index uint32, value int32) (ok bool) {
	if !regs.Valid(index) {
		return
	}
	regs[index] = value
	return true
}

// Reset zeroes all registers.
func (regs *Registers) Reset() {
	clear(regs[:])
}
