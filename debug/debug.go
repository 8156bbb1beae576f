// Package debug implements the bytecode disassembler. It is a purely
// diagnostic collaborator of the core pipeline: it only reads a
// *chunk.Chunk's exported fields to render human-readable trace output
// for the CLI's -disassemble flag, and compiler and vm import it solely
// for their Debug-gated trace logging.
package debug

import (
	"fmt"
	"strings"

	"nlx/chunk"
)

// DisassembleChunk renders every instruction in c as human-readable text,
// one line per instruction, prefixed with the offset and source line (a
// "|" when the line repeats the previous instruction's line).
func DisassembleChunk(c *chunk.Chunk, name string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "== %s ==\n", name)

	lastLine := -1
	for offset := 0; offset < len(c.Code); {
		line := c.GetLine(offset)
		if line == lastLine {
			fmt.Fprintf(&b, "%04d    | ", offset)
		} else {
			fmt.Fprintf(&b, "%04d %4d ", offset, line)
			lastLine = line
		}
		offset = disassembleInstruction(&b, c, offset)
	}
	return b.String()
}

// DisassembleInstruction renders the single instruction at offset and
// returns the offset of the following instruction, letting a caller
// single-step through a chunk (used by the VM's per-step debug trace).
func DisassembleInstruction(c *chunk.Chunk, offset int) (string, int) {
	var b strings.Builder
	next := disassembleInstruction(&b, c, offset)
	return strings.TrimSuffix(b.String(), "\n"), next
}

func disassembleInstruction(b *strings.Builder, c *chunk.Chunk, offset int) int {
	op := chunk.OpCode(c.Code[offset])

	switch op {
	case chunk.OpReturn, chunk.OpTrue, chunk.OpFalse, chunk.OpNil,
		chunk.OpAdd, chunk.OpSubtract, chunk.OpMultiply, chunk.OpDivide,
		chunk.OpNegate, chunk.OpNot, chunk.OpEqual, chunk.OpGreater, chunk.OpLess:
		fmt.Fprintf(b, "%s\n", op)
		return offset + 1

	case chunk.OpConstant:
		index := int(c.Code[offset+1])
		fmt.Fprintf(b, "%-16s %4d '%s'\n", op, index, c.Constants[index])
		return offset + 2

	case chunk.OpConstantLong:
		index := int(c.Code[offset+1]) | int(c.Code[offset+2])<<8 | int(c.Code[offset+3])<<16
		fmt.Fprintf(b, "%-16s %4d '%s'\n", op, index, c.Constants[index])
		return offset + 4

	default:
		fmt.Fprintf(b, "Unknown opcode %d\n", op)
		return offset + 1
	}
}
