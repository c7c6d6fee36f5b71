package interpreter

import (
	"errors"
	"fmt"

	"github.com/arnavsurve/lox/internal/compiler/scope"
	"github.com/arnavsurve/lox/internal/compiler/token"
)

// RuntimeError abandons the current top-level statement only.
type RuntimeError struct {
	Token   token.Token
	Message string
}

func (e *RuntimeError) Error() string {
	return fmt.Sprintf("%d:%d: Runtime Error %s: %s",
		e.Token.Position.Line, e.Token.Position.Column, e.Token.Where(), e.Message)
}

// PanicError ends the whole run. It is raised when a name is bound nowhere
// in the scope chain.
type PanicError struct {
	Token   token.Token
	Message string
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("%d:%d: Panic Error %s: %s",
		e.Token.Position.Line, e.Token.Position.Column, e.Token.Where(), e.Message)
}

func newRuntimeError(tok token.Token, format string, args ...any) *RuntimeError {
	return &RuntimeError{Token: tok, Message: fmt.Sprintf(format, args...)}
}

// fromScope turns environment lookup failures into panics.
func fromScope(err error) error {
	var undeclared *scope.UndeclaredError
	if errors.As(err, &undeclared) {
		return &PanicError{Token: undeclared.Name, Message: undeclared.Error()}
	}
	return err
}
