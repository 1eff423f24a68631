// Package cpu implements the MEPA stack machine and its assembler.
//
// The machine has a single flat memory of signed words split into a data
// segment, a stack segment growing upward from address 0, and a small
// "D segment" at the top of memory holding the base pointer of each
// lexical nesting level. Registers are the program counter (PC), stack
// pointer (SP) and base pointer (BP). Every instruction takes its operands
// from the stack; literal instruction arguments are pushed before the
// instruction runs.
//
// The assembler is a two-pass translator of the MEPA mnemonic language,
// supporting labels, equates, and compile-time expression evaluation.
package cpu
