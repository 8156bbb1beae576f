// Package vm implements the stack-based bytecode interpreter: it executes
// a compiled chunk.Chunk against a fixed-capacity operand stack, writing
// the final expression's result to stdout and any runtime diagnostic to
// stderr with source-line provenance.
package vm

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"

	"nlx/chunk"
	"nlx/compiler"
	"nlx/debug"
	"nlx/lox"
)

// StackMax is the fixed capacity of the VM's operand stack. Deeply nested
// right operands such as "1 + (1 + (1 + ...))" can still fill it; an
// instruction that would push past it raises a "Stack overflow." runtime
// error.
const StackMax = 256

// VM is a reusable bytecode interpreter. A single VM is driven
// sequentially — by a REPL feeding it one input at a time, for example —
// and is not safe to share across goroutines.
type VM struct {
	chunk    *chunk.Chunk
	ip       int
	stack    [StackMax]chunk.Value
	stackTop int

	// Debug gates a per-instruction logrus trace of the stack and the
	// disassembled instruction about to execute.
	Debug bool

	// Out is where Interpret writes the final expression's result.
	// Defaults to os.Stdout.
	Out io.Writer
}

// New returns a VM in a clean, ready-to-use state.
func New() *VM {
	return &VM{Out: os.Stdout}
}

// Interpret compiles source and, if compilation succeeds, runs the
// resulting chunk to completion. It returns a *lox.CompileError or a
// *lox.RuntimeError on failure, nil on success. The chunk is freed before
// Interpret returns, regardless of outcome, so the VM is immediately
// reusable for the next input.
func (vm *VM) Interpret(source []byte) error {
	c, err := compiler.Compile(source, vm.Debug)
	if err != nil {
		return err
	}

	vm.chunk = c
	vm.ip = 0
	runErr := vm.run()
	vm.chunk.Free()
	vm.chunk = nil
	return runErr
}

// Free releases the VM's resources. It is safe to call on a VM that has
// already run to completion or never run at all.
func (vm *VM) Free() {
	if vm.chunk != nil {
		vm.chunk.Free()
		vm.chunk = nil
	}
	vm.resetStack()
}

func (vm *VM) run() error {
	for {
		if vm.Debug {
			logrus.Debugln(vm.stackTrace())
			line, _ := debug.DisassembleInstruction(vm.chunk, vm.ip)
			logrus.Debugln(line)
		}

		op := chunk.OpCode(vm.readByte())
		switch op {
		case chunk.OpConstant, chunk.OpConstantLong, chunk.OpTrue, chunk.OpFalse, chunk.OpNil:
			if vm.stackTop == StackMax {
				return vm.runtimeError("Stack overflow.")
			}
		}

		switch op {
		case chunk.OpReturn:
			fmt.Fprintln(vm.out(), vm.pop())
			return nil

		case chunk.OpConstant:
			vm.push(vm.chunk.Constants[vm.readByte()])

		case chunk.OpConstantLong:
			vm.push(vm.chunk.Constants[vm.readConstantLongIndex()])

		case chunk.OpTrue:
			vm.push(chunk.Bool(true))

		case chunk.OpFalse:
			vm.push(chunk.Bool(false))

		case chunk.OpNil:
			vm.push(chunk.Nil)

		case chunk.OpAdd:
			if err := vm.binaryNumeric(func(a, b float64) float64 { return a + b }); err != nil {
				return err
			}

		case chunk.OpSubtract:
			if err := vm.binaryNumeric(func(a, b float64) float64 { return a - b }); err != nil {
				return err
			}

		case chunk.OpMultiply:
			if err := vm.binaryNumeric(func(a, b float64) float64 { return a * b }); err != nil {
				return err
			}

		case chunk.OpDivide:
			if err := vm.binaryNumeric(func(a, b float64) float64 { return a / b }); err != nil {
				return err
			}

		case chunk.OpNegate:
			if !vm.peek(0).IsDouble() {
				return vm.runtimeError("Operand must be a number.")
			}
			vm.push(chunk.Double(-vm.pop().AsDouble()))

		case chunk.OpNot:
			vm.push(chunk.Bool(vm.pop().IsFalsey()))

		case chunk.OpEqual:
			b := vm.pop()
			a := vm.pop()
			vm.push(chunk.Bool(a.Equal(b)))

		case chunk.OpGreater:
			if err := vm.binaryComparison(func(a, b float64) bool { return a > b }); err != nil {
				return err
			}

		case chunk.OpLess:
			if err := vm.binaryComparison(func(a, b float64) bool { return a < b }); err != nil {
				return err
			}

		default:
			return vm.runtimeError(fmt.Sprintf("Unknown opcode %d.", op))
		}
	}
}

func (vm *VM) binaryNumeric(f func(a, b float64) float64) error {
	if !vm.peek(0).IsDouble() || !vm.peek(1).IsDouble() {
		return vm.runtimeError("Operands must be numbers.")
	}
	right := vm.pop()
	left := vm.pop()
	vm.push(chunk.Double(f(left.AsDouble(), right.AsDouble())))
	return nil
}

func (vm *VM) binaryComparison(f func(a, b float64) bool) error {
	if !vm.peek(0).IsDouble() || !vm.peek(1).IsDouble() {
		return vm.runtimeError("Operands must be numbers.")
	}
	right := vm.pop()
	left := vm.pop()
	vm.push(chunk.Bool(f(left.AsDouble(), right.AsDouble())))
	return nil
}

func (vm *VM) readByte() byte {
	b := vm.chunk.Code[vm.ip]
	vm.ip++
	return b
}

func (vm *VM) readConstantLongIndex() int {
	b1 := int(vm.readByte())
	b2 := int(vm.readByte())
	b3 := int(vm.readByte())
	return b1 | b2<<8 | b3<<16
}

func (vm *VM) push(value chunk.Value) {
	vm.stack[vm.stackTop] = value
	vm.stackTop++
}

func (vm *VM) pop() chunk.Value {
	vm.stackTop--
	return vm.stack[vm.stackTop]
}

// peek returns the value distance slots from the top of the stack
// without popping it; distance 0 is the top.
func (vm *VM) peek(distance int) chunk.Value {
	return vm.stack[vm.stackTop-1-distance]
}

func (vm *VM) resetStack() {
	vm.stackTop = 0
}

func (vm *VM) out() io.Writer {
	if vm.Out != nil {
		return vm.Out
	}
	return os.Stdout
}

// runtimeError prints the diagnostic and the offending instruction's
// source line to stderr, resets the stack so the VM is reusable, and
// returns the *lox.RuntimeError the caller surfaces to the embedder.
func (vm *VM) runtimeError(message string) error {
	line := vm.chunk.GetLine(vm.ip - 1)
	fmt.Fprintln(os.Stderr, message)
	fmt.Fprintf(os.Stderr, "[line %d] in script\n", line)
	vm.resetStack()
	return &lox.RuntimeError{Line: line, Message: message}
}

func (vm *VM) stackTrace() string {
	trace := "          "
	for i := 0; i < vm.stackTop; i++ {
		trace += fmt.Sprintf("[ %s ]", vm.stack[i])
	}
	return trace
}
