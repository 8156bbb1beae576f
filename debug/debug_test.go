package debug

import (
	"strings"
	"testing"

	"nlx/chunk"
)

func TestDisassembleChunkRendersConstantAndReturn(t *testing.T) {
	c := chunk.New()
	if err := c.WriteConstant(chunk.Double(1), 1); err != nil {
		t.Fatalf("WriteConstant: %v", err)
	}
	c.WriteOp(chunk.OpReturn, 1)

	out := DisassembleChunk(c, "test")
	if !strings.Contains(out, "OP_CONSTANT") {
		t.Errorf("output missing OP_CONSTANT:\n%s", out)
	}
	if !strings.Contains(out, "OP_RETURN") {
		t.Errorf("output missing OP_RETURN:\n%s", out)
	}
	if !strings.Contains(out, "'1'") {
		t.Errorf("output missing constant value:\n%s", out)
	}
}

func TestDisassembleInstructionSingleSteps(t *testing.T) {
	c := chunk.New()
	c.WriteOp(chunk.OpNil, 1)
	c.WriteOp(chunk.OpReturn, 1)

	line, next := DisassembleInstruction(c, 0)
	if next != 1 {
		t.Errorf("next offset = %d, want 1", next)
	}
	if !strings.Contains(line, "OP_NIL") {
		t.Errorf("line = %q, want to contain OP_NIL", line)
	}
}
