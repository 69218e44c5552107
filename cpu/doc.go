// Package cpu implements the microcontroller and assembler for the μCircuit
// bench.
//
// The microcontroller is a single register machine: a program counter (Pc)
// indexing the assembled lines, one integer accumulator (Acc), and two I/O
// ports, P0 (output) and P1 (input). Every run is bounded by a step budget,
// so a program that never leaves its loop fails with ErrExecutionLimit
// rather than hanging the caller.
//
// The assembler strips ';' comments and blank lines, evaluates $(...)
// compile-time expressions, and splits each line into a mnemonic and its
// operands. Operands are kept as text and decoded as they execute.
package cpu
