package ast

import (
	"fmt"
	"strings"
)

// Sexpr renders a node as a parenthesised prefix expression, one line per
// statement. It is the form used for debug traces:
//
//	print 1 + 2 * x;  =>  (print (+ 1 (* 2 x)))
func Sexpr(n Node) string {
	var b strings.Builder
	writeSexpr(&b, n, 0)
	return b.String()
}

func writeSexpr(b *strings.Builder, n Node, depth int) {
	switch n := n.(type) {
	// Expressions
	case *BinaryExpression:
		parenthesize(b, n.Operator.Lexeme, n.Left, n.Right)
	case *LogicalExpression:
		parenthesize(b, n.Operator.Lexeme, n.Left, n.Right)
	case *GroupingExpression:
		parenthesize(b, "group", n.Expression)
	case *LiteralExpression:
		b.WriteString(n.String())
	case *UnaryExpression:
		parenthesize(b, n.Operator.Lexeme, n.Right)
	case *VariableExpression:
		b.WriteString(n.Name.Lexeme)
	case *AssignExpression:
		parenthesize(b, "= "+n.Name.Lexeme, n.Value)
	case *CallExpression:
		parenthesize(b, "call", append([]Expression{n.Callee}, n.Arguments...)...)

	// Statements
	case *ExpressionStatement:
		writeSexpr(b, n.Expression, depth)
	case *PrintStatement:
		parenthesize(b, "print", n.Value)
	case *LetStatement:
		if n.Initializer == nil {
			fmt.Fprintf(b, "(let %s)", n.Name.Lexeme)
			return
		}
		parenthesize(b, "let "+n.Name.Lexeme, n.Initializer)
	case *BlockStatement:
		name := "block"
		if n.Loop {
			name = "loop-body"
		}
		b.WriteString("(" + name)
		for _, s := range n.Statements {
			newline(b, depth+1)
			writeSexpr(b, s, depth+1)
		}
		b.WriteString(")")
	case *IfStatement:
		b.WriteString("(if ")
		writeSexpr(b, n.Condition, depth)
		newline(b, depth+1)
		writeSexpr(b, n.Then, depth+1)
		if n.Else != nil {
			newline(b, depth+1)
			writeSexpr(b, n.Else, depth+1)
		}
		b.WriteString(")")
	case *WhileStatement:
		b.WriteString("(while ")
		writeSexpr(b, n.Condition, depth)
		newline(b, depth+1)
		writeSexpr(b, n.Body, depth+1)
		b.WriteString(")")
	case *BreakStatement:
		b.WriteString("(break)")
	case *ContinueStatement:
		b.WriteString("(continue)")
	case *Program:
		for i, s := range n.Statements {
			if i > 0 {
				b.WriteString("\n")
			}
			writeSexpr(b, s, depth)
		}
	default:
		fmt.Fprintf(b, "<%T>", n)
	}
}

func parenthesize(b *strings.Builder, name string, exprs ...Expression) {
	b.WriteString("(" + name)
	for _, e := range exprs {
		b.WriteString(" ")
		writeSexpr(b, e, 0)
	}
	b.WriteString(")")
}

func newline(b *strings.Builder, depth int) {
	b.WriteString("\n" + strings.Repeat("  ", depth))
}
