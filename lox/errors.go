// Package lox defines the two-kind error taxonomy surfaced by the VM's
// embedding API: every failure from Interpret is either a CompileError or
// a RuntimeError.
package lox

import "fmt"

// CompileError reports a lexical or parse failure detected while
// compiling source to bytecode. At most one is produced per Compile call:
// the compiler's panic-mode suppresses cascading diagnostics, and this
// grammar has no synchronization point to resume at.
type CompileError struct {
	Line    int
	Message string
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("💥 CompileError: [line %d] %s", e.Line, e.Message)
}

// RuntimeError reports a failure raised while executing a Chunk: a
// type-mismatched operand, an unknown opcode, or a stack discipline
// violation.
type RuntimeError struct {
	Line    int
	Message string
}

func (e *RuntimeError) Error() string {
	return fmt.Sprintf("💥 RuntimeError: [line %d] in script: %s", e.Line, e.Message)
}
