package interpreter

import (
	"github.com/arnavsurve/lox/internal/compiler/ast"
	"github.com/arnavsurve/lox/internal/compiler/lib"
	"github.com/arnavsurve/lox/internal/compiler/scope"
	"github.com/arnavsurve/lox/internal/compiler/token"
	"github.com/arnavsurve/lox/internal/runtime"
)

func (in *Interpreter) evaluate(expr ast.Expression, env *scope.Scope) (runtime.Value, error) {
	switch node := expr.(type) {
	case *ast.LiteralExpression:
		return runtime.FromLiteral(node.Value), nil

	case *ast.GroupingExpression:
		return in.evaluate(node.Expression, env)

	case *ast.VariableExpression:
		v, err := env.Get(node.Name)
		if err != nil {
			return nil, fromScope(err)
		}
		if v.Kind() == runtime.KindUndefined {
			return nil, newRuntimeError(node.Name, "Variable '%s' used before being defined.", node.Name.Lexeme)
		}
		return v, nil

	case *ast.AssignExpression:
		v, err := in.evaluate(node.Value, env)
		if err != nil {
			return nil, err
		}
		if _, err := env.Assign(node.Name, v); err != nil {
			return nil, fromScope(err)
		}
		return v, nil

	case *ast.UnaryExpression:
		return in.evaluateUnary(node, env)

	case *ast.LogicalExpression:
		left, err := in.evaluate(node.Left, env)
		if err != nil {
			return nil, err
		}
		if node.Operator.Type == token.TokenOr {
			if runtime.Truthy(left) {
				return left, nil
			}
		} else if !runtime.Truthy(left) {
			return left, nil
		}
		return in.evaluate(node.Right, env)

	case *ast.BinaryExpression:
		return in.evaluateBinary(node, env)

	case *ast.CallExpression:
		return in.evaluateCall(node, env)
	}

	return nil, newRuntimeError(expr.GetToken(), "Unsupported expression %T.", expr)
}

func (in *Interpreter) evaluateUnary(node *ast.UnaryExpression, env *scope.Scope) (runtime.Value, error) {
	right, err := in.evaluate(node.Right, env)
	if err != nil {
		return nil, err
	}

	switch node.Operator.Type {
	case token.TokenBang:
		return runtime.BoolValue{Val: !runtime.Truthy(right)}, nil
	case token.TokenMinus:
		n, ok := right.(runtime.NumberValue)
		if !ok {
			return nil, newRuntimeError(node.Operator, "Operand must be a number.")
		}
		return runtime.NumberValue{Val: -n.Val}, nil
	}
	return nil, newRuntimeError(node.Operator, "Operand must be a number.")
}

func (in *Interpreter) evaluateBinary(node *ast.BinaryExpression, env *scope.Scope) (runtime.Value, error) {
	left, err := in.evaluate(node.Left, env)
	if err != nil {
		return nil, err
	}
	right, err := in.evaluate(node.Right, env)
	if err != nil {
		return nil, err
	}

	op := node.Operator
	switch op.Type {
	case token.TokenEqualEqual:
		return runtime.BoolValue{Val: runtime.Equal(left, right)}, nil
	case token.TokenBangEqual:
		return runtime.BoolValue{Val: !runtime.Equal(left, right)}, nil
	case token.TokenPlus:
		return add(op, left, right)
	}

	l, lok := left.(runtime.NumberValue)
	r, rok := right.(runtime.NumberValue)
	if !lok || !rok {
		return nil, newRuntimeError(op, "Operands must be numbers.")
	}

	switch op.Type {
	case token.TokenMinus:
		return runtime.NumberValue{Val: l.Val - r.Val}, nil
	case token.TokenStar:
		return runtime.NumberValue{Val: l.Val * r.Val}, nil
	case token.TokenSlash:
		if lib.ApproxEqual(r.Val, 0) {
			return nil, newRuntimeError(op, "Division by zero.")
		}
		return runtime.NumberValue{Val: l.Val / r.Val}, nil
	case token.TokenGreater:
		return runtime.BoolValue{Val: l.Val > r.Val}, nil
	case token.TokenGreaterEqual:
		return runtime.BoolValue{Val: l.Val >= r.Val}, nil
	case token.TokenLess:
		return runtime.BoolValue{Val: l.Val < r.Val}, nil
	case token.TokenLessEqual:
		return runtime.BoolValue{Val: l.Val <= r.Val}, nil
	}
	return nil, newRuntimeError(op, "Operands must be numbers.")
}

// add handles number + number, string + string, and string + number, where
// the number is appended in its printed form.
func add(op token.Token, left, right runtime.Value) (runtime.Value, error) {
	switch l := left.(type) {
	case runtime.NumberValue:
		if r, ok := right.(runtime.NumberValue); ok {
			return runtime.NumberValue{Val: l.Val + r.Val}, nil
		}
	case runtime.StringValue:
		switch r := right.(type) {
		case runtime.StringValue:
			return runtime.StringValue{Val: l.Val + r.Val}, nil
		case runtime.NumberValue:
			return runtime.StringValue{Val: l.Val + r.String()}, nil
		}
	}
	return nil, newRuntimeError(op, "Operands must be two numbers or two strings.")
}

func (in *Interpreter) evaluateCall(node *ast.CallExpression, env *scope.Scope) (runtime.Value, error) {
	callee, err := in.evaluate(node.Callee, env)
	if err != nil {
		return nil, err
	}
	fn, ok := callee.(*runtime.NativeFunctionValue)
	if !ok {
		return nil, newRuntimeError(node.Paren, "Can only call functions and classes.")
	}

	args := make([]runtime.Value, 0, len(node.Arguments))
	for _, a := range node.Arguments {
		v, err := in.evaluate(a, env)
		if err != nil {
			return nil, err
		}
		args = append(args, v)
	}

	// Fewer arguments than the arity are passed through as is
	if len(args) > fn.Arity {
		return nil, newRuntimeError(node.Paren, "Expected %d arguments but got %d.", fn.Arity, len(args))
	}
	return fn.Call(args), nil
}

// tokenOf finds a token to attach a diagnostic about stmt to.
func tokenOf(stmt ast.Statement) token.Token {
	switch node := stmt.(type) {
	case *ast.ExpressionStatement:
		return node.Expression.GetToken()
	case *ast.LetStatement:
		return node.Name
	case *ast.PrintStatement:
		return node.Token
	case *ast.BlockStatement:
		return node.Token
	case *ast.IfStatement:
		return node.Token
	case *ast.WhileStatement:
		return node.Token
	}
	return token.Token{}
}
