package token

import (
	"fmt"
	"strconv"

	"github.com/arnavsurve/lox/internal/compiler/lib"
)

type TokenType string

const (
	// Single character tokens
	TokenLParen    TokenType = "LEFT_PAREN"  // (
	TokenRParen    TokenType = "RIGHT_PAREN" // )
	TokenLBrace    TokenType = "LEFT_BRACE"  // {
	TokenRBrace    TokenType = "RIGHT_BRACE" // }
	TokenComma     TokenType = "COMMA"       // ,
	TokenDot       TokenType = "DOT"         // .
	TokenMinus     TokenType = "MINUS"       // -
	TokenPlus      TokenType = "PLUS"        // +
	TokenSemicolon TokenType = "SEMICOLON"   // ;
	TokenSlash     TokenType = "SLASH"       // /
	TokenStar      TokenType = "STAR"        // *

	// One or two character tokens
	TokenBang         TokenType = "BANG"          // !
	TokenBangEqual    TokenType = "BANG_EQUAL"    // !=
	TokenEqual        TokenType = "EQUAL"         // =
	TokenEqualEqual   TokenType = "EQUAL_EQUAL"   // ==
	TokenGreater      TokenType = "GREATER"       // >
	TokenGreaterEqual TokenType = "GREATER_EQUAL" // >=
	TokenLess         TokenType = "LESS"          // <
	TokenLessEqual    TokenType = "LESS_EQUAL"    // <=

	// Literals & Identifiers
	TokenIdent  TokenType = "IDENTIFIER"
	TokenString TokenType = "STRING" // "..."
	TokenNumber TokenType = "NUMBER" // 42, 3.14

	// Keywords
	TokenAnd      TokenType = "AND"
	TokenClass    TokenType = "CLASS"
	TokenElse     TokenType = "ELSE"
	TokenFalse    TokenType = "FALSE"
	TokenFun      TokenType = "FUN"
	TokenFor      TokenType = "FOR"
	TokenIf       TokenType = "IF"
	TokenNil      TokenType = "NIL"
	TokenOr       TokenType = "OR"
	TokenPrint    TokenType = "PRINT"
	TokenReturn   TokenType = "RETURN"
	TokenSuper    TokenType = "SUPER"
	TokenThis     TokenType = "THIS"
	TokenTrue     TokenType = "TRUE"
	TokenLet      TokenType = "LET"
	TokenWhile    TokenType = "WHILE"
	TokenLoop     TokenType = "LOOP"
	TokenBreak    TokenType = "BREAK"
	TokenContinue TokenType = "CONTINUE"

	// Special
	TokenEOF TokenType = "EOF"
)

// Keywords maps reserved words to their token types. Lookup is case-sensitive.
var Keywords = map[string]TokenType{
	"and":      TokenAnd,
	"class":    TokenClass,
	"else":     TokenElse,
	"false":    TokenFalse,
	"fun":      TokenFun,
	"for":      TokenFor,
	"if":       TokenIf,
	"nil":      TokenNil,
	"or":       TokenOr,
	"print":    TokenPrint,
	"return":   TokenReturn,
	"super":    TokenSuper,
	"this":     TokenThis,
	"true":     TokenTrue,
	"let":      TokenLet,
	"while":    TokenWhile,
	"loop":     TokenLoop,
	"break":    TokenBreak,
	"continue": TokenContinue,
}

// LookupIdent returns the keyword token type for ident, or TokenIdent.
func LookupIdent(ident string) TokenType {
	if tokType, ok := Keywords[ident]; ok {
		return tokType
	}
	return TokenIdent
}

// --- Position ---

// Position is a 1-indexed line/column pair. Columns count code points.
type Position struct {
	Line   int
	Column int
}

func (p Position) String() string {
	return fmt.Sprintf("ln %d col %d", p.Line, p.Column)
}

// --- Literals ---

// Literal is the value the scanner attaches to literal tokens.
// A nil Literal means the token carries none.
type Literal interface {
	literal()
	String() string
}

type StringLit string
type NumberLit float64
type BoolLit bool
type NilLit struct{}

func (StringLit) literal() {}
func (NumberLit) literal() {}
func (BoolLit) literal()   {}
func (NilLit) literal()    {}

func (s StringLit) String() string { return string(s) }
func (n NumberLit) String() string { return lib.FormatNumber(float64(n)) }
func (b BoolLit) String() string   { return strconv.FormatBool(bool(b)) }
func (NilLit) String() string      { return "nil" }

// --- Token ---

type Token struct {
	Type     TokenType
	Lexeme   string  // exact source text
	Literal  Literal // set for STRING, NUMBER, true, false, nil
	Position Position
}

func (t Token) String() string {
	return t.Lexeme
}

// Where describes the token for diagnostics: "at 'x'" or "at end".
func (t Token) Where() string {
	if t.Type == TokenEOF {
		return "at end"
	}
	return fmt.Sprintf("at '%s'", t.Lexeme)
}

// Synthetic builds a token that has no source text of its own, e.g. the
// implicit `true` condition of a desugared loop.
func Synthetic(tokenType TokenType, lexeme string, lit Literal, pos Position) Token {
	return Token{Type: tokenType, Lexeme: lexeme, Literal: lit, Position: pos}
}
