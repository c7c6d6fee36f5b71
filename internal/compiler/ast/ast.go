package ast

import (
	"bytes"
	"strings"

	"github.com/arnavsurve/lox/internal/compiler/token"
)

// --- Interfaces ---
type Node interface {
	TokenLiteral() string
	// String renders the node back as source text that parses to the same tree.
	String() string
}

type Statement interface {
	Node
	statementNode()
}

type Expression interface {
	Node
	expressionNode()
	GetToken() token.Token
}

// --- Program ---
type Program struct {
	Statements []Statement
}

func (p *Program) TokenLiteral() string {
	if len(p.Statements) > 0 {
		return p.Statements[0].TokenLiteral()
	}
	return ""
}

// String for Program concatenates the string representations of its statements
func (p *Program) String() string {
	var out bytes.Buffer
	for _, s := range p.Statements {
		out.WriteString(s.String())
		out.WriteString("\n")
	}
	return out.String()
}

// --- Expressions ---

// BinaryExpression -> left op right
type BinaryExpression struct {
	Left     Expression
	Operator token.Token
	Right    Expression
}

func (be *BinaryExpression) expressionNode()       {}
func (be *BinaryExpression) TokenLiteral() string  { return be.Operator.Lexeme }
func (be *BinaryExpression) GetToken() token.Token { return be.Operator }
func (be *BinaryExpression) String() string {
	// Groupings are kept as nodes, so no extra parentheses are needed here
	return be.Left.String() + " " + be.Operator.Lexeme + " " + be.Right.String()
}

// LogicalExpression -> left and/or right (short-circuiting)
type LogicalExpression struct {
	Left     Expression
	Operator token.Token
	Right    Expression
}

func (le *LogicalExpression) expressionNode()       {}
func (le *LogicalExpression) TokenLiteral() string  { return le.Operator.Lexeme }
func (le *LogicalExpression) GetToken() token.Token { return le.Operator }
func (le *LogicalExpression) String() string {
	return le.Left.String() + " " + le.Operator.Lexeme + " " + le.Right.String()
}

// GroupingExpression -> ( inner )
type GroupingExpression struct {
	Token      token.Token // (
	Expression Expression
}

func (ge *GroupingExpression) expressionNode()       {}
func (ge *GroupingExpression) TokenLiteral() string  { return ge.Token.Lexeme }
func (ge *GroupingExpression) GetToken() token.Token { return ge.Token }
func (ge *GroupingExpression) String() string {
	return "(" + ge.Expression.String() + ")"
}

// LiteralExpression -> 12, "str", true, false, nil
type LiteralExpression struct {
	Token token.Token
	Value token.Literal
}

func (le *LiteralExpression) expressionNode()       {}
func (le *LiteralExpression) TokenLiteral() string  { return le.Token.Lexeme }
func (le *LiteralExpression) GetToken() token.Token { return le.Token }
func (le *LiteralExpression) String() string {
	if s, ok := le.Value.(token.StringLit); ok {
		return `"` + string(s) + `"`
	}
	return le.Value.String()
}

// UnaryExpression -> !x or -x
type UnaryExpression struct {
	Operator token.Token
	Right    Expression
}

func (ue *UnaryExpression) expressionNode()       {}
func (ue *UnaryExpression) TokenLiteral() string  { return ue.Operator.Lexeme }
func (ue *UnaryExpression) GetToken() token.Token { return ue.Operator }
func (ue *UnaryExpression) String() string {
	return ue.Operator.Lexeme + ue.Right.String()
}

// VariableExpression -> name
type VariableExpression struct {
	Name token.Token
}

func (ve *VariableExpression) expressionNode()       {}
func (ve *VariableExpression) TokenLiteral() string  { return ve.Name.Lexeme }
func (ve *VariableExpression) GetToken() token.Token { return ve.Name }
func (ve *VariableExpression) String() string        { return ve.Name.Lexeme }

// AssignExpression -> name = value
type AssignExpression struct {
	Name  token.Token
	Value Expression
}

func (ae *AssignExpression) expressionNode()       {}
func (ae *AssignExpression) TokenLiteral() string  { return ae.Name.Lexeme }
func (ae *AssignExpression) GetToken() token.Token { return ae.Name }
func (ae *AssignExpression) String() string {
	return ae.Name.Lexeme + " = " + ae.Value.String()
}

// CallExpression -> callee(arg1, arg2)
type CallExpression struct {
	Callee    Expression
	Paren     token.Token // closing ), used for error positions
	Arguments []Expression
}

func (ce *CallExpression) expressionNode()       {}
func (ce *CallExpression) TokenLiteral() string  { return ce.Paren.Lexeme }
func (ce *CallExpression) GetToken() token.Token { return ce.Paren }
func (ce *CallExpression) String() string {
	args := make([]string, len(ce.Arguments))
	for i, a := range ce.Arguments {
		args[i] = a.String()
	}
	return ce.Callee.String() + "(" + strings.Join(args, ", ") + ")"
}

// --- Statements ---

// ExpressionStatement -> expression ;
type ExpressionStatement struct {
	Expression Expression
}

func (es *ExpressionStatement) statementNode()       {}
func (es *ExpressionStatement) TokenLiteral() string { return es.Expression.TokenLiteral() }
func (es *ExpressionStatement) String() string       { return es.Expression.String() + ";" }

// PrintStatement -> print expression ;
type PrintStatement struct {
	Token token.Token // print
	Value Expression
}

func (ps *PrintStatement) statementNode()       {}
func (ps *PrintStatement) TokenLiteral() string { return ps.Token.Lexeme }
func (ps *PrintStatement) String() string {
	return "print " + ps.Value.String() + ";"
}

// LetStatement -> let name = initializer ; (initializer optional)
type LetStatement struct {
	Name        token.Token
	Initializer Expression
}

func (ls *LetStatement) statementNode()       {}
func (ls *LetStatement) TokenLiteral() string { return ls.Name.Lexeme }
func (ls *LetStatement) String() string {
	if ls.Initializer == nil {
		return "let " + ls.Name.Lexeme + ";"
	}
	return "let " + ls.Name.Lexeme + " = " + ls.Initializer.String() + ";"
}

// BlockStatement -> { statement1 statement2 }
type BlockStatement struct {
	Token      token.Token // {
	Statements []Statement
	// Loop marks the block that forms a loop body. It gets a loop frame at
	// run time and absorbs `continue`.
	Loop bool
}

func (bs *BlockStatement) statementNode()       {}
func (bs *BlockStatement) TokenLiteral() string { return bs.Token.Lexeme }
func (bs *BlockStatement) String() string {
	if len(bs.Statements) == 0 {
		return "{}"
	}
	var out bytes.Buffer
	out.WriteString("{\n")
	for _, s := range bs.Statements {
		out.WriteString(indent(s.String()) + "\n")
	}
	out.WriteString("}")
	return out.String()
}

// IfStatement -> if condition { ... } else statement
type IfStatement struct {
	Token     token.Token // if
	Condition Expression
	Then      Statement
	Else      Statement // nil when absent
}

func (is *IfStatement) statementNode()       {}
func (is *IfStatement) TokenLiteral() string { return is.Token.Lexeme }
func (is *IfStatement) String() string {
	var out bytes.Buffer
	out.WriteString("if " + is.Condition.String() + " " + is.Then.String())
	if is.Else != nil {
		out.WriteString(" else " + is.Else.String())
	}
	return out.String()
}

// WhileStatement -> while condition { ... }
// `loop` and `for` are desugared into this node by the parser.
type WhileStatement struct {
	Token     token.Token // while, loop or for
	Condition Expression
	Body      Statement
}

func (ws *WhileStatement) statementNode()       {}
func (ws *WhileStatement) TokenLiteral() string { return ws.Token.Lexeme }
func (ws *WhileStatement) String() string {
	if body, increment, ok := ws.ForParts(); ok {
		// for (; cond; incr) body restores the same loop-body marking on re-parse
		return "for (; " + ws.Condition.String() + "; " + increment.String() + ") " + body.String()
	}
	return "while " + ws.Condition.String() + " " + ws.Body.String()
}

// ForParts recognises the body shape produced by desugaring a `for` with an
// increment: a plain block holding the loop-body block and the increment.
func (ws *WhileStatement) ForParts() (body *BlockStatement, increment Expression, ok bool) {
	wrapper, isBlock := ws.Body.(*BlockStatement)
	if !isBlock || wrapper.Loop || len(wrapper.Statements) != 2 {
		return nil, nil, false
	}
	body, isBlock = wrapper.Statements[0].(*BlockStatement)
	if !isBlock || !body.Loop {
		return nil, nil, false
	}
	incr, isExpr := wrapper.Statements[1].(*ExpressionStatement)
	if !isExpr {
		return nil, nil, false
	}
	return body, incr.Expression, true
}

// BreakStatement -> break ;
type BreakStatement struct {
	Token token.Token
}

func (bs *BreakStatement) statementNode()       {}
func (bs *BreakStatement) TokenLiteral() string { return bs.Token.Lexeme }
func (bs *BreakStatement) String() string       { return "break;" }

// ContinueStatement -> continue ;
type ContinueStatement struct {
	Token token.Token
}

func (cs *ContinueStatement) statementNode()       {}
func (cs *ContinueStatement) TokenLiteral() string { return cs.Token.Lexeme }
func (cs *ContinueStatement) String() string       { return "continue;" }

// indent prefixes every line of s with a tab.
func indent(s string) string {
	return "\t" + strings.ReplaceAll(s, "\n", "\n\t")
}
