// Package cpu implements the processor core of a Sigma16 style teaching machine.
//
// The processor is word addressed with 16-bit words and 64K words of memory. It has
// fifteen general registers (r0-r14) and a condition register aliased onto r15, a
// program counter, and a small bank of control registers for traps and interrupts
// (status, mask, req, rstat, rpc, vect, cause).
//
// Instructions come in three formats selected by the top nibble of the first word:
// RRR (three register fields), EXP (extended, secondary opcode in the low nibble) and
// RX (register plus a displacement word). The Cpu drives the fetch, decode and execute
// cycle and routes guest faults through the trap controller; host errors are only
// produced by loading and by misuse of the state machine.
package cpu
