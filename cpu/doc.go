// Package cpu implements the codon decoder and register machine for rnavm.
//
// Source text over the alphabet {A, C, G, U} is cut into three symbol
// codons. Codons name opcodes and decimal digits through redundant
// synonym tables; an opcode codon is followed by zero, one or two runs of
// digit codons holding its operands. The decoded instruction list is
// validated into a Program, which the Cpu executes on a file of nine
// signed 32-bit registers. Register 0 receives arithmetic results and
// register 1 is the condition tested by both jumps.
//
// The assembler accepts a mnemonic form of the same instruction set,
// supporting labels, equates, and compile-time Starlark expressions, and
// the encoder spells a Program back out as codons.
package cpu
