// Package compiler implements the single-pass Pratt compiler: it pulls
// tokens from a lexer one at a time and emits bytecode directly into a
// Chunk, with no intermediate AST. Parsing and code generation are fused
// in the prefix/infix handlers of the parse-rule table.
package compiler

import (
	"fmt"
	"os"
	"strconv"

	"github.com/sirupsen/logrus"

	"nlx/chunk"
	"nlx/debug"
	"nlx/lexer"
	"nlx/lox"
	"nlx/token"
)

// precedence orders the grammar's operators from loosest to tightest
// binding. Right-associativity is obtained by recursing at the same
// precedence; every binary operator in this grammar is left-associative,
// so infix handlers recurse at precedence+1.
type precedence int

const (
	precNone       precedence = iota
	precAssignment            // =
	precOr                    // or
	precAnd                   // and
	precEquality              // == !=
	precComparison            // < > <= >=
	precTerm                  // + -
	precFactor                // * /
	precUnary                 // ! -
	precCall                  // . ()
	precPrimary
)

type parseFn func(c *Compiler)

type parseRule struct {
	prefix     parseFn
	infix      parseFn
	precedence precedence
}

// Compiler drives one Compile call: it owns the parser state (current and
// previous tokens, the sticky error flags) and the Chunk being built.
type Compiler struct {
	scanner *lexer.Lexer
	chunk   *chunk.Chunk

	current  token.Token
	previous token.Token

	hadError    bool
	panicMode   bool
	errorLine   int
	errorReason string

	// Debug gates a logrus trace of the finished chunk's disassembly,
	// mirroring the VM's own debug-trace gate.
	Debug bool
}

var rules [token.Eof + 1]parseRule

func init() {
	rules = [token.Eof + 1]parseRule{
		token.LeftParen:    {prefix: (*Compiler).grouping, precedence: precNone},
		token.Minus:        {prefix: (*Compiler).unary, infix: (*Compiler).binary, precedence: precTerm},
		token.Plus:         {infix: (*Compiler).binary, precedence: precTerm},
		token.Slash:        {infix: (*Compiler).binary, precedence: precFactor},
		token.Star:         {infix: (*Compiler).binary, precedence: precFactor},
		token.Bang:         {prefix: (*Compiler).unary, precedence: precNone},
		token.BangEqual:    {infix: (*Compiler).binary, precedence: precEquality},
		token.EqualEqual:   {infix: (*Compiler).binary, precedence: precEquality},
		token.Greater:      {infix: (*Compiler).binary, precedence: precComparison},
		token.GreaterEqual: {infix: (*Compiler).binary, precedence: precComparison},
		token.Less:         {infix: (*Compiler).binary, precedence: precComparison},
		token.LessEqual:    {infix: (*Compiler).binary, precedence: precComparison},
		token.Number:       {prefix: (*Compiler).number, precedence: precNone},
		token.False:        {prefix: (*Compiler).literal, precedence: precNone},
		token.True:         {prefix: (*Compiler).literal, precedence: precNone},
		token.Nil:          {prefix: (*Compiler).literal, precedence: precNone},
	}
}

func getRule(kind token.Kind) parseRule {
	return rules[kind] // zero value has nil prefix/infix, precNone — exactly "no rule"
}

// Compile scans source and compiles the single expression it contains
// into a Chunk, returning a *lox.CompileError if any lexical or parse
// failure was reported.
func Compile(source []byte, debug bool) (*chunk.Chunk, error) {
	c := &Compiler{
		scanner: lexer.New(source),
		chunk:   chunk.New(),
		Debug:   debug,
	}

	c.advance()
	c.expression()
	c.consume(token.Eof, "Expect end of expression.")
	c.emitOp(chunk.OpReturn)

	if c.Debug {
		logrus.Debugln(debug.DisassembleChunk(c.chunk, "compile"))
	}

	if c.hadError {
		return nil, &lox.CompileError{Line: c.errorLine, Message: c.errorReason}
	}
	return c.chunk, nil
}

func (c *Compiler) expression() {
	c.parsePrecedence(precAssignment)
}

func (c *Compiler) parsePrecedence(prec precedence) {
	c.advance()

	prefix := getRule(c.previous.Kind).prefix
	if prefix == nil {
		c.errorAtPrevious("Expect expression.")
		return
	}
	prefix(c)

	for prec <= getRule(c.current.Kind).precedence {
		c.advance()
		infix := getRule(c.previous.Kind).infix
		infix(c)
	}
}

func (c *Compiler) grouping() {
	c.expression()
	c.consume(token.RightParen, "Expect ')' after expression.")
}

func (c *Compiler) unary() {
	operator := c.previous.Kind
	c.parsePrecedence(precUnary)

	switch operator {
	case token.Minus:
		c.emitOp(chunk.OpNegate)
	case token.Bang:
		c.emitOp(chunk.OpNot)
	}
}

// binary emits the opcode sequence for the just-consumed infix operator
// after parsing its right-hand operand at one precedence level tighter
// than its own (left-associativity). != and the >=/<= comparisons are
// synthesized from two opcodes rather than given dedicated ones, trading
// one extra dispatch for a smaller primitive opcode set.
func (c *Compiler) binary() {
	operator := c.previous.Kind
	rule := getRule(operator)
	c.parsePrecedence(rule.precedence + 1)

	switch operator {
	case token.Plus:
		c.emitOp(chunk.OpAdd)
	case token.Minus:
		c.emitOp(chunk.OpSubtract)
	case token.Star:
		c.emitOp(chunk.OpMultiply)
	case token.Slash:
		c.emitOp(chunk.OpDivide)
	case token.EqualEqual:
		c.emitOp(chunk.OpEqual)
	case token.BangEqual:
		c.emitOp(chunk.OpEqual)
		c.emitOp(chunk.OpNot)
	case token.Greater:
		c.emitOp(chunk.OpGreater)
	case token.GreaterEqual:
		c.emitOp(chunk.OpLess)
		c.emitOp(chunk.OpNot)
	case token.Less:
		c.emitOp(chunk.OpLess)
	case token.LessEqual:
		c.emitOp(chunk.OpGreater)
		c.emitOp(chunk.OpNot)
	}
}

func (c *Compiler) number() {
	value, err := strconv.ParseFloat(string(c.previous.Lexeme), 64)
	if err != nil {
		c.errorAtPrevious("Invalid number literal.")
		return
	}
	c.emitConstant(chunk.Double(value))
}

func (c *Compiler) literal() {
	switch c.previous.Kind {
	case token.False:
		c.emitOp(chunk.OpFalse)
	case token.True:
		c.emitOp(chunk.OpTrue)
	case token.Nil:
		c.emitOp(chunk.OpNil)
	}
}

func (c *Compiler) emitOp(op chunk.OpCode) {
	c.chunk.WriteOp(op, c.previous.Line)
}

func (c *Compiler) emitConstant(value chunk.Value) {
	if err := c.chunk.WriteConstant(value, c.previous.Line); err != nil {
		c.errorAtPrevious(err.Error())
	}
}

func (c *Compiler) advance() {
	c.previous = c.current

	for {
		c.current = c.scanner.ScanToken()
		if c.current.Kind != token.Error {
			break
		}
		c.errorAtCurrent(string(c.current.Lexeme))
	}
}

func (c *Compiler) consume(kind token.Kind, message string) {
	if c.current.Kind == kind {
		c.advance()
		return
	}
	c.errorAtCurrent(message)
}

func (c *Compiler) errorAtCurrent(message string) {
	c.errorAt(c.current, message)
}

func (c *Compiler) errorAtPrevious(message string) {
	c.errorAt(c.previous, message)
}

// errorAt reports a single diagnostic to stderr. Once panicMode is set,
// further calls are silently dropped: this grammar has no statement
// boundary to resynchronize at, so in practice at most one diagnostic is
// ever produced per Compile call.
func (c *Compiler) errorAt(tok token.Token, message string) {
	if c.panicMode {
		return
	}
	c.panicMode = true
	c.hadError = true
	c.errorLine = tok.Line
	c.errorReason = message

	fmt.Fprintf(os.Stderr, "[line %d] Error%s: %s\n", tok.Line, positionDescription(tok), message)
	logrus.WithField("line", tok.Line).Debugln(message)
}

func positionDescription(tok token.Token) string {
	switch tok.Kind {
	case token.Eof:
		return " at end"
	case token.Error:
		return ""
	default:
		return " at '" + string(tok.Lexeme) + "'"
	}
}
