// Package token defines the closed set of lexical token kinds produced by
// the lexer and consumed by the compiler's parse-rule table.
package token

import "fmt"

// Kind identifies the lexical category of a Token. The ordinal of each
// Kind is part of the compiler's contract: it is used directly as an
// index into the parse-rule table, so the order below must never change
// without updating that table.
type Kind int

const (
	// Single-character punctuation.
	LeftParen Kind = iota
	RightParen
	LeftBrace
	RightBrace
	Comma
	Dot
	Minus
	Plus
	Semicolon
	Slash
	Star

	// One or two character operators.
	Bang
	BangEqual
	Equal
	EqualEqual
	Greater
	GreaterEqual
	Less
	LessEqual

	// Literals.
	Identifier
	String
	Number

	// Keywords.
	And
	Class
	Else
	False
	For
	Fun
	If
	Nil
	Or
	Print
	Return
	Super
	This
	True
	Var
	While

	// Error and end-of-stream.
	Error
	Eof
)

var names = [...]string{
	LeftParen: "(", RightParen: ")", LeftBrace: "{", RightBrace: "}",
	Comma: ",", Dot: ".", Minus: "-", Plus: "+", Semicolon: ";",
	Slash: "/", Star: "*",
	Bang: "!", BangEqual: "!=", Equal: "=", EqualEqual: "==",
	Greater: ">", GreaterEqual: ">=", Less: "<", LessEqual: "<=",
	Identifier: "IDENTIFIER", String: "STRING", Number: "NUMBER",
	And: "and", Class: "class", Else: "else", False: "false", For: "for",
	Fun: "fun", If: "if", Nil: "nil", Or: "or", Print: "print",
	Return: "return", Super: "super", This: "this", True: "true",
	Var: "var", While: "while",
	Error: "ERROR", Eof: "EOF",
}

// String returns the human-readable name of the kind, used in disassembly
// and diagnostics.
func (k Kind) String() string {
	if int(k) < 0 || int(k) >= len(names) || names[k] == "" {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return names[k]
}

// Keywords maps reserved identifiers to their keyword Kind. The lexer does
// not read this map; it classifies identifiers with its own hand-coded
// trie over the same sixteen words.
var Keywords = map[string]Kind{
	"and": And, "class": Class, "else": Else, "false": False, "for": For,
	"fun": Fun, "if": If, "nil": Nil, "or": Or, "print": Print,
	"return": Return, "super": Super, "this": This, "true": True,
	"var": Var, "while": While,
}

// Token is a lexical token. Lexeme borrows a sub-slice of the source
// buffer the lexer was constructed with; it must not outlive that buffer.
// A Token is a plain value and is cheaply copyable.
type Token struct {
	Kind   Kind
	Line   int
	Lexeme []byte
}

// String renders the token for debugging and trace logging.
func (t Token) String() string {
	return fmt.Sprintf("Token{%s %q line=%d}", t.Kind, t.Lexeme, t.Line)
}
