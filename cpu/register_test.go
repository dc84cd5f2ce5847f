package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRegisters(t *testing.T) {
	assert := assert.New(t)

	regs := &Registers{}
	for n := range uint32(REGISTER_COUNT) {
		assert.True(regs.Valid(n))
		assert.True(regs.Set(n, int32(n)-4))
	}

	for n := range uint32(REGISTER_COUNT) {
		value, ok := regs.Get(n)
		assert.True(ok)
		assert.Equal(int32(n)-4, value)
	}

	regs.Reset()
	assert.Equal(Registers{}, *regs)
}

func TestRegisters_Invalid(t *testing.T) {
	assert := assert.New(t)

	regs := &Registers{}
	for _, n := range []uint32{REGISTER_COUNT, 10, 0xffffffff} {
		assert.False(regs.Valid(n))

		value, ok := regs.Get(n)
		assert.False(ok)
		assert.Equal(int32(0), value)

		assert.False(regs.Set(n, 1))
	}

	assert.Equal(Registers{}, *regs)
}
