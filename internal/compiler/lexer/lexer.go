package lexer

import (
	"fmt"
	"strconv"
	"unicode"

	"github.com/arnavsurve/lox/internal/compiler/token"
	"github.com/arnavsurve/lox/internal/diag"
)

type Lexer struct {
	input   []rune
	start   int // first rune of the lexeme being scanned
	current int // next rune to consume

	pos      token.Position // position of input[current]
	startPos token.Position // position of input[start]

	tokens []token.Token
	log    diag.Logger
	errors int
}

func NewLexer(input string, log diag.Logger) *Lexer {
	if log == nil {
		log = diag.Discard{}
	}
	return &Lexer{
		input: []rune(input),
		pos:   token.Position{Line: 1, Column: 1},
		log:   log,
	}
}

// ScanTokens scans the whole input. It never fails: bad input is reported
// and skipped, and the result always ends with an EOF token.
func (l *Lexer) ScanTokens() []token.Token {
	for !l.isAtEnd() {
		l.start = l.current
		l.startPos = l.pos
		l.scanToken()
	}
	l.tokens = append(l.tokens, token.Token{Type: token.TokenEOF, Lexeme: "", Position: l.pos})
	return l.tokens
}

// ErrorCount returns how many diagnostics the scan reported.
func (l *Lexer) ErrorCount() int {
	return l.errors
}

func (l *Lexer) scanToken() {
	c := l.advance()
	switch c {
	case '(':
		l.addToken(token.TokenLParen, nil)
	case ')':
		l.addToken(token.TokenRParen, nil)
	case '{':
		l.addToken(token.TokenLBrace, nil)
	case '}':
		l.addToken(token.TokenRBrace, nil)
	case ',':
		l.addToken(token.TokenComma, nil)
	case '.':
		l.addToken(token.TokenDot, nil)
	case '-':
		l.addToken(token.TokenMinus, nil)
	case '+':
		l.addToken(token.TokenPlus, nil)
	case ';':
		l.addToken(token.TokenSemicolon, nil)
	case '*':
		l.addToken(token.TokenStar, nil)
	case '!':
		l.addToken(l.either('=', token.TokenBangEqual, token.TokenBang), nil)
	case '=':
		l.addToken(l.either('=', token.TokenEqualEqual, token.TokenEqual), nil)
	case '<':
		l.addToken(l.either('=', token.TokenLessEqual, token.TokenLess), nil)
	case '>':
		l.addToken(l.either('=', token.TokenGreaterEqual, token.TokenGreater), nil)
	case '/':
		l.commentOrSlash()
	case ' ', '\r', '\t', '\n':
		// whitespace; advance already tracked the line change
	case '"':
		l.readString()
	default:
		if isDigit(c) {
			l.readNumber()
		} else if isAlphanumeric(c) {
			l.readIdentifier()
		} else {
			l.error(fmt.Sprintf("Unexpected character %q", string(c)))
		}
	}
}

// --- Cursor ---

func (l *Lexer) isAtEnd() bool {
	return l.current >= len(l.input)
}

// advance consumes one rune and keeps the line/column position in step.
func (l *Lexer) advance() rune {
	c := l.input[l.current]
	l.current++
	if c == '\n' {
		l.pos.Line++
		l.pos.Column = 1
	} else {
		l.pos.Column++
	}
	return c
}

// Returns the next rune without consuming it
func (l *Lexer) peek() rune {
	if l.isAtEnd() {
		return 0
	}
	return l.input[l.current]
}

// Returns the rune after next without consuming anything
func (l *Lexer) peekNext() rune {
	if l.current+1 >= len(l.input) {
		return 0
	}
	return l.input[l.current+1]
}

// match consumes the next rune only if it is expected.
func (l *Lexer) match(expected rune) bool {
	if l.isAtEnd() || l.input[l.current] != expected {
		return false
	}
	l.advance()
	return true
}

func (l *Lexer) either(next rune, two, one token.TokenType) token.TokenType {
	if l.match(next) {
		return two
	}
	return one
}

func (l *Lexer) addToken(tokenType token.TokenType, lit token.Literal) {
	l.tokens = append(l.tokens, token.Token{
		Type:     tokenType,
		Lexeme:   string(l.input[l.start:l.current]),
		Literal:  lit,
		Position: l.startPos,
	})
}

func (l *Lexer) error(message string) {
	l.errors++
	l.log.Report(l.startPos, diag.Parser, "", message)
}

// --- Lexemes ---

func (l *Lexer) commentOrSlash() {
	switch {
	case l.match('/'):
		// Single line comment
		for l.peek() != '\n' && !l.isAtEnd() {
			l.advance()
		}
	case l.match('*'):
		l.readBlockComment()
	default:
		l.addToken(token.TokenSlash, nil)
	}
}

// readBlockComment consumes up to and including the closing */. Comments do not nest.
func (l *Lexer) readBlockComment() {
	for !l.isAtEnd() {
		if l.peek() == '*' && l.peekNext() == '/' {
			l.advance() // Consume '*'
			l.advance() // Consume '/'
			return
		}
		l.advance()
	}
	l.error("Unterminated block comment.")
}

func (l *Lexer) readString() {
	for l.peek() != '"' && !l.isAtEnd() {
		l.advance()
	}

	if l.isAtEnd() {
		l.error("Unterminated string.")
		return
	}

	l.advance() // Consume closing "

	// Raw contents between the quotes; no escape processing
	value := string(l.input[l.start+1 : l.current-1])
	l.addToken(token.TokenString, token.StringLit(value))
}

func (l *Lexer) readNumber() {
	for isDigit(l.peek()) {
		l.advance()
	}

	// A fractional part needs at least one digit after the '.'
	if l.peek() == '.' && isDigit(l.peekNext()) {
		l.advance() // Consume '.'
		for isDigit(l.peek()) {
			l.advance()
		}
	}

	// Only ASCII digits and one '.' were consumed, so this cannot fail.
	value, _ := strconv.ParseFloat(string(l.input[l.start:l.current]), 64)
	l.addToken(token.TokenNumber, token.NumberLit(value))
}

func (l *Lexer) readIdentifier() {
	for isAlphanumeric(l.peek()) {
		l.advance()
	}

	text := string(l.input[l.start:l.current])
	tokenType := token.LookupIdent(text)

	var lit token.Literal
	switch tokenType {
	case token.TokenTrue:
		lit = token.BoolLit(true)
	case token.TokenFalse:
		lit = token.BoolLit(false)
	case token.TokenNil:
		lit = token.NilLit{}
	}
	l.addToken(tokenType, lit)
}

func isDigit(ch rune) bool {
	return '0' <= ch && ch <= '9'
}

func isAlphanumeric(ch rune) bool {
	return ch == '_' || unicode.IsLetter(ch) || unicode.IsDigit(ch)
}

// Scan is a convenience wrapper around NewLexer(...).ScanTokens().
func Scan(input string, log diag.Logger) []token.Token {
	return NewLexer(input, log).ScanTokens()
}
