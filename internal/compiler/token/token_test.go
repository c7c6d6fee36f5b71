package token

import (
	"math"
	"testing"
)

func TestLookupIdent(t *testing.T) {
	tests := []struct {
		ident string
		want  TokenType
	}{
		{"let", TokenLet},
		{"loop", TokenLoop},
		{"continue", TokenContinue},
		{"class", TokenClass},
		{"Let", TokenIdent},
		{"var", TokenIdent},
		{"lettuce", TokenIdent},
	}
	for _, tt := range tests {
		if got := LookupIdent(tt.ident); got != tt.want {
			t.Errorf("LookupIdent(%q) = %s, want %s", tt.ident, got, tt.want)
		}
	}
}

func TestLiteralString(t *testing.T) {
	tests := []struct {
		lit  Literal
		want string
	}{
		{StringLit("raw\\n"), `raw\n`},
		{NumberLit(42), "42"},
		{NumberLit(0.5), "0.5"},
		{NumberLit(math.Inf(1)), "inf"},
		{BoolLit(true), "true"},
		{NilLit{}, "nil"},
	}
	for _, tt := range tests {
		if got := tt.lit.String(); got != tt.want {
			t.Errorf("%#v.String() = %q, want %q", tt.lit, got, tt.want)
		}
	}
}

func TestWhere(t *testing.T) {
	eof := Token{Type: TokenEOF, Position: Position{Line: 4, Column: 2}}
	if eof.Where() != "at end" {
		t.Errorf("EOF Where() = %q", eof.Where())
	}

	semi := Token{Type: TokenSemicolon, Lexeme: ";"}
	if semi.Where() != "at ';'" {
		t.Errorf("Where() = %q", semi.Where())
	}

	if p := (Position{Line: 2, Column: 9}).String(); p != "ln 2 col 9" {
		t.Errorf("Position.String() = %q", p)
	}
}

func TestSynthetic(t *testing.T) {
	pos := Position{Line: 7, Column: 3}
	tok := Synthetic(TokenTrue, "true", BoolLit(true), pos)
	if tok.Type != TokenTrue || tok.Lexeme != "true" || tok.Literal != BoolLit(true) || tok.Position != pos {
		t.Errorf("Synthetic() = %#v", tok)
	}
}
