package lexer

import (
	"testing"

	"nlx/token"
)

func scanAll(t *testing.T, source string) []token.Token {
	t.Helper()
	lex := New([]byte(source))
	var got []token.Token
	for {
		tok := lex.ScanToken()
		got = append(got, tok)
		if tok.Kind == token.Eof {
			break
		}
	}
	return got
}

func TestOperatorsAndPunctuation(t *testing.T) {
	tests := []struct {
		source string
		want   token.Kind
	}{
		{"(", token.LeftParen},
		{")", token.RightParen},
		{"!", token.Bang},
		{"!=", token.BangEqual},
		{"=", token.Equal},
		{"==", token.EqualEqual},
		{"<", token.Less},
		{"<=", token.LessEqual},
		{">", token.Greater},
		{">=", token.GreaterEqual},
		{"+", token.Plus},
		{"-", token.Minus},
		{"*", token.Star},
		{"/", token.Slash},
	}

	for _, tt := range tests {
		got := scanAll(t, tt.source)
		if len(got) != 2 || got[0].Kind != tt.want {
			t.Errorf("scan(%q) = %v, want single token of kind %s", tt.source, got, tt.want)
		}
	}
}

func TestNumberLiteral(t *testing.T) {
	got := scanAll(t, "123.45")
	if len(got) != 2 || got[0].Kind != token.Number || string(got[0].Lexeme) != "123.45" {
		t.Errorf("scan(123.45) = %v", got)
	}
}

func TestKeywordsVsIdentifiers(t *testing.T) {
	tests := []struct {
		source string
		want   token.Kind
	}{
		{"and", token.And},
		{"false", token.False},
		{"for", token.For},
		{"fun", token.Fun},
		{"this", token.This},
		{"true", token.True},
		{"foobar", token.Identifier},
		{"th", token.Identifier},
		{"f", token.Identifier},
	}
	for _, tt := range tests {
		got := scanAll(t, tt.source)
		if len(got) != 2 || got[0].Kind != tt.want {
			t.Errorf("scan(%q)[0].Kind = %v, want %s", tt.source, got[0].Kind, tt.want)
		}
	}
}

func TestUnterminatedString(t *testing.T) {
	got := scanAll(t, `"hello`)
	if len(got) != 2 || got[0].Kind != token.Error || string(got[0].Lexeme) != "Unterminated string." {
		t.Errorf("scan(unterminated string) = %v", got)
	}
}

func TestUnexpectedCharacter(t *testing.T) {
	got := scanAll(t, "@")
	if len(got) != 2 || got[0].Kind != token.Error || string(got[0].Lexeme) != "Unexpected character." {
		t.Errorf("scan(@) = %v", got)
	}
}

func TestLineCounting(t *testing.T) {
	got := scanAll(t, "1\n// comment\n2")
	if len(got) != 3 {
		t.Fatalf("scan() = %v, want 3 tokens (2 numbers + EOF)", got)
	}
	if got[0].Line != 1 {
		t.Errorf("first number line = %d, want 1", got[0].Line)
	}
	if got[1].Line != 3 {
		t.Errorf("second number line = %d, want 3", got[1].Line)
	}
}

func TestStringLexemeIncludesQuotes(t *testing.T) {
	got := scanAll(t, `"hi"`)
	if len(got) != 2 || string(got[0].Lexeme) != `"hi"` {
		t.Errorf("scan(\"hi\") = %v, want lexeme with quotes", got)
	}
}
