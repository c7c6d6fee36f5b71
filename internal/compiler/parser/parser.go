package parser

import (
	"fmt"
	"strings"

	"github.com/arnavsurve/lox/internal/compiler/ast"
	"github.com/arnavsurve/lox/internal/compiler/token"
	"github.com/arnavsurve/lox/internal/diag"
)

// maxArguments is the call arity past which the parser warns.
const maxArguments = 255

// Error is a syntax error at a specific token.
type Error struct {
	Token   token.Token
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%d:%d: Syntax Error %s: %s",
		e.Token.Position.Line, e.Token.Position.Column, e.Token.Where(), e.Message)
}

// Errors aggregates every statement-level syntax error of one parse.
type Errors []*Error

func (e Errors) Error() string {
	if len(e) == 1 {
		return e[0].Error()
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%d syntax errors:", len(e))
	for _, err := range e {
		b.WriteString("\n- ")
		b.WriteString(err.Error())
	}
	return b.String()
}

// The grammar, lowest to highest binding priority:
//
//	program     -> declaration* EOF
//	declaration -> "let" IDENTIFIER ( "=" expression )? ";" | statement
//	statement   -> exprStmt | forStmt | ifStmt | printStmt | whileStmt
//	             | loopStmt | breakStmt | continueStmt | block
//	forStmt     -> "for" "(" ( letDecl | exprStmt | ";" ) expression? ";" expression? ")" statement
//	ifStmt      -> "if" expression block ( "else" statement )?
//	whileStmt   -> "while" expression block
//	loopStmt    -> "loop" block
//	block       -> "{" declaration* "}"
//	expression  -> assignment
//	assignment  -> IDENTIFIER "=" assignment | logic_or
//	logic_or    -> logic_and ( "or" logic_and )*
//	logic_and   -> equality ( "and" equality )*
//	equality    -> comparison ( ( "!=" | "==" ) comparison )*
//	comparison  -> term ( ( ">" | ">=" | "<" | "<=" ) term )*
//	term        -> factor ( ( "-" | "+" ) factor )*
//	factor      -> unary ( ( "/" | "*" ) unary )*
//	unary       -> ( "!" | "-" ) unary | call
//	call        -> primary ( "(" arguments? ")" )*
//	primary     -> "true" | "false" | "nil" | NUMBER | STRING | "(" expression ")" | IDENTIFIER
type Parser struct {
	tokens  []token.Token
	current int
	log     diag.Logger
	errors  Errors
}

func NewParser(tokens []token.Token, log diag.Logger) *Parser {
	if log == nil {
		log = diag.Discard{}
	}
	// Guarantee the EOF sentinel so peek never runs off the end
	if len(tokens) == 0 || tokens[len(tokens)-1].Type != token.TokenEOF {
		var pos token.Position
		if len(tokens) > 0 {
			pos = tokens[len(tokens)-1].Position
		}
		tokens = append(tokens, token.Token{Type: token.TokenEOF, Position: pos})
	}
	return &Parser{tokens: tokens, log: log}
}

// Parse parses the whole token stream. If any declaration failed, it returns
// every collected error as Errors and no statements.
func (p *Parser) Parse() ([]ast.Statement, error) {
	statements := []ast.Statement{}
	for !p.isAtEnd() {
		if stmt := p.declaration(); stmt != nil {
			statements = append(statements, stmt)
		}
	}
	if len(p.errors) > 0 {
		return nil, p.errors
	}
	return statements, nil
}

// ParseProgram wraps Parse for callers that want an *ast.Program.
func (p *Parser) ParseProgram() (*ast.Program, error) {
	stmts, err := p.Parse()
	if err != nil {
		return nil, err
	}
	return &ast.Program{Statements: stmts}, nil
}

// Errors returns the syntax errors collected so far.
func (p *Parser) Errors() Errors {
	return p.errors
}

// --- Error Handling ---

// addError reports a syntax error at tok and returns it for propagation.
func (p *Parser) addError(tok token.Token, format string, args ...any) *Error {
	err := &Error{Token: tok, Message: fmt.Sprintf(format, args...)}
	p.log.Report(tok.Position, diag.Parser, tok.Where(), err.Message)
	return err
}

// synchronize discards tokens until a statement boundary: just past a ';' or
// right before a keyword that starts a declaration or statement.
func (p *Parser) synchronize() {
	p.advance()

	for !p.isAtEnd() {
		if p.previous().Type == token.TokenSemicolon {
			return
		}

		switch p.peek().Type {
		case token.TokenClass, token.TokenFun, token.TokenLet, token.TokenFor, token.TokenIf,
			token.TokenWhile, token.TokenPrint, token.TokenReturn, token.TokenLoop:
			return
		}

		p.advance()
	}
}

// --- Token Handling ---

func (p *Parser) peek() token.Token {
	return p.tokens[p.current]
}

func (p *Parser) previous() token.Token {
	return p.tokens[p.current-1]
}

func (p *Parser) isAtEnd() bool {
	return p.peek().Type == token.TokenEOF
}

func (p *Parser) advance() token.Token {
	if !p.isAtEnd() {
		p.current++
	}
	return p.previous()
}

func (p *Parser) check(tokenType token.TokenType) bool {
	if p.isAtEnd() {
		return false
	}
	return p.peek().Type == tokenType
}

// match consumes the next token if it has one of the given types.
func (p *Parser) match(types ...token.TokenType) bool {
	for _, t := range types {
		if p.check(t) {
			p.advance()
			return true
		}
	}
	return false
}

// consume expects the next token to be of tokenType, otherwise it reports an
// error at that token.
func (p *Parser) consume(tokenType token.TokenType, message string) (token.Token, error) {
	if p.check(tokenType) {
		return p.advance(), nil
	}
	return token.Token{}, p.addError(p.peek(), "%s", message)
}

// --- Declarations ---

// declaration parses one declaration. On error it records the failure,
// resynchronizes and returns nil so parsing can go on.
func (p *Parser) declaration() ast.Statement {
	var (
		stmt ast.Statement
		err  error
	)
	if p.match(token.TokenLet) {
		stmt, err = p.letDeclaration()
	} else {
		stmt, err = p.statement()
	}

	if err != nil {
		if perr, ok := err.(*Error); ok {
			p.errors = append(p.errors, perr)
		}
		p.synchronize()
		return nil
	}
	return stmt
}

func (p *Parser) letDeclaration() (ast.Statement, error) {
	name, err := p.consume(token.TokenIdent, "Expected variable name.")
	if err != nil {
		return nil, err
	}

	stmt := &ast.LetStatement{Name: name}
	if p.match(token.TokenEqual) {
		if stmt.Initializer, err = p.expression(); err != nil {
			return nil, err
		}
	}

	if _, err := p.consume(token.TokenSemicolon, "Expected ';' after variable declaration."); err != nil {
		return nil, err
	}
	return stmt, nil
}

// --- Statements ---

func (p *Parser) statement() (ast.Statement, error) {
	switch {
	case p.match(token.TokenFor):
		return p.forStatement()
	case p.match(token.TokenIf):
		return p.ifStatement()
	case p.match(token.TokenPrint):
		return p.printStatement()
	case p.match(token.TokenWhile):
		return p.whileStatement()
	case p.match(token.TokenLoop):
		return p.loopStatement()
	case p.match(token.TokenLBrace):
		brace := p.previous()
		stmts, err := p.block()
		if err != nil {
			return nil, err
		}
		return &ast.BlockStatement{Token: brace, Statements: stmts}, nil
	case p.match(token.TokenBreak):
		tok := p.previous()
		if _, err := p.consume(token.TokenSemicolon, "Expected ';' after 'break'."); err != nil {
			return nil, err
		}
		return &ast.BreakStatement{Token: tok}, nil
	case p.match(token.TokenContinue):
		tok := p.previous()
		if _, err := p.consume(token.TokenSemicolon, "Expected ';' after 'continue'."); err != nil {
			return nil, err
		}
		return &ast.ContinueStatement{Token: tok}, nil
	default:
		return p.expressionStatement()
	}
}

// forStatement desugars
//
//	for (init; cond; incr) body
//
// into
//
//	{ init; while cond { body incr; } }
//
// body is the loop-body block; the block around it and the increment is a
// plain one, so `continue` inside body still runs the increment.
func (p *Parser) forStatement() (ast.Statement, error) {
	forTok := p.previous()
	if _, err := p.consume(token.TokenLParen, "Expected '(' after 'for'."); err != nil {
		return nil, err
	}

	var (
		initializer ast.Statement
		err         error
	)
	switch {
	case p.match(token.TokenSemicolon):
		// no initializer
	case p.match(token.TokenLet):
		initializer, err = p.letDeclaration()
	default:
		initializer, err = p.expressionStatement()
	}
	if err != nil {
		return nil, err
	}

	var condition ast.Expression
	if !p.check(token.TokenSemicolon) {
		if condition, err = p.expression(); err != nil {
			return nil, err
		}
	}
	if _, err := p.consume(token.TokenSemicolon, "Expected ';' after loop condition."); err != nil {
		return nil, err
	}

	var increment ast.Expression
	if !p.check(token.TokenRParen) {
		if increment, err = p.expression(); err != nil {
			return nil, err
		}
	}
	if _, err := p.consume(token.TokenRParen, "Expected ')' after for clauses."); err != nil {
		return nil, err
	}

	bodyStmt, err := p.statement()
	if err != nil {
		return nil, err
	}

	body, ok := bodyStmt.(*ast.BlockStatement)
	if !ok {
		body = &ast.BlockStatement{Token: forTok, Statements: []ast.Statement{bodyStmt}}
	}
	body.Loop = true

	var loopBody ast.Statement = body
	if increment != nil {
		loopBody = &ast.BlockStatement{
			Token:      body.Token,
			Statements: []ast.Statement{body, &ast.ExpressionStatement{Expression: increment}},
		}
	}

	if condition == nil {
		condition = trueLiteral(forTok)
	}

	var loop ast.Statement = &ast.WhileStatement{Token: forTok, Condition: condition, Body: loopBody}
	if initializer != nil {
		loop = &ast.BlockStatement{Token: forTok, Statements: []ast.Statement{initializer, loop}}
	}
	return loop, nil
}

func (p *Parser) ifStatement() (ast.Statement, error) {
	stmt := &ast.IfStatement{Token: p.previous()}

	var err error
	if stmt.Condition, err = p.expression(); err != nil {
		return nil, err
	}
	if stmt.Then, err = p.blockStatement("Expected '{' after if condition."); err != nil {
		return nil, err
	}
	if p.match(token.TokenElse) {
		if stmt.Else, err = p.statement(); err != nil {
			return nil, err
		}
	}
	return stmt, nil
}

func (p *Parser) printStatement() (ast.Statement, error) {
	stmt := &ast.PrintStatement{Token: p.previous()}

	var err error
	if stmt.Value, err = p.expression(); err != nil {
		return nil, err
	}
	if _, err := p.consume(token.TokenSemicolon, "Expected ';' after value."); err != nil {
		return nil, err
	}
	return stmt, nil
}

func (p *Parser) whileStatement() (ast.Statement, error) {
	stmt := &ast.WhileStatement{Token: p.previous()}

	var err error
	if stmt.Condition, err = p.expression(); err != nil {
		return nil, err
	}
	body, err := p.blockStatement("Expected '{' after while condition.")
	if err != nil {
		return nil, err
	}
	body.Loop = true
	stmt.Body = body
	return stmt, nil
}

// loopStatement desugars `loop { ... }` into `while true { ... }`.
func (p *Parser) loopStatement() (ast.Statement, error) {
	loopTok := p.previous()
	body, err := p.blockStatement("Expected '{' after 'loop'.")
	if err != nil {
		return nil, err
	}
	body.Loop = true
	return &ast.WhileStatement{Token: loopTok, Condition: trueLiteral(loopTok), Body: body}, nil
}

// blockStatement expects a '{' and parses the block that follows it.
func (p *Parser) blockStatement(message string) (*ast.BlockStatement, error) {
	brace, err := p.consume(token.TokenLBrace, message)
	if err != nil {
		return nil, err
	}
	stmts, err := p.block()
	if err != nil {
		return nil, err
	}
	return &ast.BlockStatement{Token: brace, Statements: stmts}, nil
}

// block parses declarations up to the closing '}'. The opening brace has
// already been consumed. Errors inside the block are recorded by declaration.
func (p *Parser) block() ([]ast.Statement, error) {
	statements := []ast.Statement{}
	for !p.check(token.TokenRBrace) && !p.isAtEnd() {
		if stmt := p.declaration(); stmt != nil {
			statements = append(statements, stmt)
		}
	}

	if _, err := p.consume(token.TokenRBrace, "Expected '}' after block."); err != nil {
		return nil, err
	}
	return statements, nil
}

func (p *Parser) expressionStatement() (ast.Statement, error) {
	expr, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(token.TokenSemicolon, "Expected ';' after expression."); err != nil {
		return nil, err
	}
	return &ast.ExpressionStatement{Expression: expr}, nil
}

// --- Expressions ---

func (p *Parser) expression() (ast.Expression, error) {
	return p.assignment()
}

func (p *Parser) assignment() (ast.Expression, error) {
	expr, err := p.logicOr()
	if err != nil {
		return nil, err
	}

	if p.match(token.TokenEqual) {
		equals := p.previous()

		// Only a bare identifier can be assigned to
		variable, ok := expr.(*ast.VariableExpression)
		if !ok {
			return nil, p.addError(equals, "Invalid assignment target.")
		}

		value, err := p.assignment()
		if err != nil {
			return nil, err
		}
		return &ast.AssignExpression{Name: variable.Name, Value: value}, nil
	}

	return expr, nil
}

func (p *Parser) logicOr() (ast.Expression, error) {
	expr, err := p.logicAnd()
	if err != nil {
		return nil, err
	}

	for p.match(token.TokenOr) {
		operator := p.previous()
		right, err := p.logicAnd()
		if err != nil {
			return nil, err
		}
		expr = &ast.LogicalExpression{Left: expr, Operator: operator, Right: right}
	}
	return expr, nil
}

func (p *Parser) logicAnd() (ast.Expression, error) {
	expr, err := p.equality()
	if err != nil {
		return nil, err
	}

	for p.match(token.TokenAnd) {
		operator := p.previous()
		right, err := p.equality()
		if err != nil {
			return nil, err
		}
		expr = &ast.LogicalExpression{Left: expr, Operator: operator, Right: right}
	}
	return expr, nil
}

// binary parses a left-associative chain of operands joined by operators.
func (p *Parser) binary(operand func() (ast.Expression, error), operators ...token.TokenType) (ast.Expression, error) {
	expr, err := operand()
	if err != nil {
		return nil, err
	}

	for p.match(operators...) {
		operator := p.previous()
		right, err := operand()
		if err != nil {
			return nil, err
		}
		expr = &ast.BinaryExpression{Left: expr, Operator: operator, Right: right}
	}
	return expr, nil
}

func (p *Parser) equality() (ast.Expression, error) {
	return p.binary(p.comparison, token.TokenBangEqual, token.TokenEqualEqual)
}

func (p *Parser) comparison() (ast.Expression, error) {
	return p.binary(p.term,
		token.TokenGreater, token.TokenGreaterEqual, token.TokenLess, token.TokenLessEqual)
}

func (p *Parser) term() (ast.Expression, error) {
	return p.binary(p.factor, token.TokenMinus, token.TokenPlus)
}

func (p *Parser) factor() (ast.Expression, error) {
	return p.binary(p.unary, token.TokenSlash, token.TokenStar)
}

func (p *Parser) unary() (ast.Expression, error) {
	if p.match(token.TokenBang, token.TokenMinus) {
		operator := p.previous()
		right, err := p.unary()
		if err != nil {
			return nil, err
		}
		return &ast.UnaryExpression{Operator: operator, Right: right}, nil
	}
	return p.call()
}

func (p *Parser) call() (ast.Expression, error) {
	expr, err := p.primary()
	if err != nil {
		return nil, err
	}

	for p.match(token.TokenLParen) {
		if expr, err = p.finishCall(expr); err != nil {
			return nil, err
		}
	}
	return expr, nil
}

func (p *Parser) finishCall(callee ast.Expression) (ast.Expression, error) {
	args := []ast.Expression{}
	if !p.check(token.TokenRParen) {
		for {
			if len(args) == maxArguments {
				// Reported once, but not a parse failure: keep every argument
				tok := p.peek()
				p.log.Report(tok.Position, diag.Parser, tok.Where(),
					fmt.Sprintf("Can't have more than %d arguments.", maxArguments))
			}
			arg, err := p.expression()
			if err != nil {
				return nil, err
			}
			args = append(args, arg)

			if !p.match(token.TokenComma) {
				break
			}
		}
	}

	paren, err := p.consume(token.TokenRParen, "Expected ')' after arguments.")
	if err != nil {
		return nil, err
	}
	return &ast.CallExpression{Callee: callee, Paren: paren, Arguments: args}, nil
}

func (p *Parser) primary() (ast.Expression, error) {
	switch {
	case p.match(token.TokenFalse, token.TokenTrue, token.TokenNil, token.TokenNumber, token.TokenString):
		tok := p.previous()
		if tok.Literal == nil {
			return nil, p.addError(tok, "Expected literal.")
		}
		return &ast.LiteralExpression{Token: tok, Value: tok.Literal}, nil
	case p.match(token.TokenIdent):
		return &ast.VariableExpression{Name: p.previous()}, nil
	case p.match(token.TokenLParen):
		paren := p.previous()
		expr, err := p.expression()
		if err != nil {
			return nil, err
		}
		if _, err := p.consume(token.TokenRParen, "Expected ')' after expression."); err != nil {
			return nil, err
		}
		return &ast.GroupingExpression{Token: paren, Expression: expr}, nil
	}

	return nil, p.addError(p.peek(), "Expected expression.")
}

func trueLiteral(at token.Token) *ast.LiteralExpression {
	tok := token.Synthetic(token.TokenTrue, "true", token.BoolLit(true), at.Position)
	return &ast.LiteralExpression{Token: tok, Value: tok.Literal}
}

// Parse is a convenience wrapper around NewParser(...).Parse().
func Parse(tokens []token.Token, log diag.Logger) ([]ast.Statement, error) {
	return NewParser(tokens, log).Parse()
}
