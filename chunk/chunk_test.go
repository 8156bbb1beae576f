package chunk

import "testing"

func TestWriteConstantPicksShortFormUnderThreshold(t *testing.T) {
	c := New()
	if err := c.WriteConstant(Double(1), 1); err != nil {
		t.Fatalf("WriteConstant: %v", err)
	}
	if len(c.Code) != 2 || OpCode(c.Code[0]) != OpConstant {
		t.Errorf("Code = %v, want [OP_CONSTANT, 0]", c.Code)
	}
}

func TestWriteConstantPicksLongFormOverThreshold(t *testing.T) {
	c := New()
	for i := 0; i < 300; i++ {
		if err := c.WriteConstant(Double(float64(i)), 1); err != nil {
			t.Fatalf("WriteConstant(%d): %v", i, err)
		}
	}
	// The 257th constant (index 256) no longer fits a single byte.
	if len(c.Constants) != 300 {
		t.Fatalf("len(Constants) = %d, want 300", len(c.Constants))
	}
	// 256 short-form instructions of 2 bytes each, then 44 of 4 bytes.
	if len(c.Code) != 256*2+44*4 {
		t.Fatalf("len(Code) = %d, want %d", len(c.Code), 256*2+44*4)
	}
	if got := OpCode(c.Code[512]); got != OpConstantLong {
		t.Errorf("Code[512] = %v, want OP_CONSTANT_LONG", got)
	}
	if c.Code[513] != 0 || c.Code[514] != 1 || c.Code[515] != 0 {
		t.Errorf("operand = %v, want little-endian 256 [0 1 0]", c.Code[513:516])
	}
}

func TestGetLineEmptyChunkIsZero(t *testing.T) {
	c := New()
	if got := c.GetLine(0); got != 0 {
		t.Errorf("GetLine(0) on empty chunk = %d, want 0", got)
	}
}

func TestGetLineMonotonicAndRunLength(t *testing.T) {
	c := New()
	c.WriteOp(OpNil, 1)
	c.WriteOp(OpNil, 1)
	c.WriteOp(OpNil, 2)
	c.WriteOp(OpReturn, 5)

	want := []int{1, 1, 2, 5}
	for offset, line := range want {
		if got := c.GetLine(offset); got != line {
			t.Errorf("GetLine(%d) = %d, want %d", offset, got, line)
		}
	}

	prev := 0
	for offset := range c.Code {
		line := c.GetLine(offset)
		if line < prev {
			t.Errorf("GetLine(%d) = %d, not monotonic after %d", offset, line, prev)
		}
		prev = line
	}
}

func TestValueEqualityTotalAcrossVariants(t *testing.T) {
	tests := []struct {
		a, b Value
		want bool
	}{
		{Double(1), Double(1), true},
		{Double(1), Double(2), false},
		{Bool(true), Bool(true), true},
		{Nil, Nil, true},
		{Nil, Bool(false), false},
		{Double(0), Bool(false), false},
	}
	for _, tt := range tests {
		if got := tt.a.Equal(tt.b); got != tt.want {
			t.Errorf("%v.Equal(%v) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
		if got := tt.b.Equal(tt.a); got != tt.want {
			t.Errorf("equality not symmetric for %v, %v", tt.a, tt.b)
		}
	}
}

func TestValueIsFalsey(t *testing.T) {
	tests := []struct {
		v    Value
		want bool
	}{
		{Nil, true},
		{Bool(false), true},
		{Bool(true), false},
		{Double(0), false},
	}
	for _, tt := range tests {
		if got := tt.v.IsFalsey(); got != tt.want {
			t.Errorf("%v.IsFalsey() = %v, want %v", tt.v, got, tt.want)
		}
	}
}

func TestValueString(t *testing.T) {
	tests := []struct {
		v    Value
		want string
	}{
		{Double(7), "7"},
		{Double(1.5), "1.5"},
		{Bool(true), "true"},
		{Bool(false), "false"},
		{Nil, "nil"},
	}
	for _, tt := range tests {
		if got := tt.v.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}
