package interpreter

import (
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/arnavsurve/lox/internal/compiler/ast"
	"github.com/arnavsurve/lox/internal/compiler/scope"
	"github.com/arnavsurve/lox/internal/diag"
	"github.com/arnavsurve/lox/internal/runtime"
)

// Config holds the output policies and injected collaborators of an
// Interpreter.
type Config struct {
	Debug bool // emit "DEBUG <s-expr>" before each top-level statement
	Echo  bool // emit "=> value" after each top-level expression statement

	// Trace receives scope and control-flow events at Debug level.
	Trace *slog.Logger
	// Now is the clock behind the `clock` native. Defaults to time.Now.
	Now func() time.Time
}

// Signal is the non-local control transfer a statement completed with.
type Signal int

const (
	SignalNone Signal = iota
	SignalBreak
	SignalContinue
)

func (s Signal) String() string {
	switch s {
	case SignalBreak:
		return "break"
	case SignalContinue:
		return "continue"
	default:
		return "none"
	}
}

// Outcome is what executing a statement produces. Every construct holding
// statements checks Signal and propagates it explicitly.
type Outcome struct {
	Signal Signal
	Value  runtime.Value
}

var unit = Outcome{Value: runtime.Unit}

type Interpreter struct {
	log     diag.Logger
	cfg     Config
	trace   *slog.Logger
	globals *scope.Scope
}

func New(log diag.Logger, cfg Config) *Interpreter {
	if log == nil {
		log = diag.Discard{}
	}
	trace := cfg.Trace
	if trace == nil {
		trace = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	globals := scope.NewScope(nil)
	for _, fn := range runtime.Natives(cfg.Now) {
		globals.Declare(fn.Name, fn)
	}

	return &Interpreter{log: log, cfg: cfg, trace: trace, globals: globals}
}

// Globals returns the global frame, pre-populated with the native functions.
func (in *Interpreter) Globals() *scope.Scope {
	return in.globals
}

// Interpret runs each statement against env. A runtime error is reported and
// only abandons its own top-level statement. A panic is reported and stops
// the run; it is also returned.
func (in *Interpreter) Interpret(stmts []ast.Statement, env *scope.Scope) error {
	if env == nil {
		env = in.globals
	}

	for _, stmt := range stmts {
		if in.cfg.Debug {
			in.log.Emit("DEBUG " + ast.Sexpr(stmt))
		}

		out, err := in.execute(stmt, env)
		if err != nil {
			in.report(err)

			var panicErr *PanicError
			if errors.As(err, &panicErr) {
				return panicErr
			}
			continue
		}

		if _, ok := stmt.(*ast.ExpressionStatement); ok && in.cfg.Echo {
			in.log.Emit("=> " + out.Value.String())
		}
	}
	return nil
}

func (in *Interpreter) report(err error) {
	var (
		runtimeErr *RuntimeError
		panicErr   *PanicError
	)
	switch {
	case errors.As(err, &panicErr):
		in.log.Report(panicErr.Token.Position, diag.Panic, panicErr.Token.Where(), panicErr.Message)
	case errors.As(err, &runtimeErr):
		in.log.Report(runtimeErr.Token.Position, diag.Runtime, runtimeErr.Token.Where(), runtimeErr.Message)
	default:
		in.trace.Error("unclassified runtime failure", "err", err)
	}
}

// --- Statements ---

func (in *Interpreter) execute(stmt ast.Statement, env *scope.Scope) (Outcome, error) {
	switch node := stmt.(type) {
	case *ast.ExpressionStatement:
		v, err := in.evaluate(node.Expression, env)
		if err != nil {
			return unit, err
		}
		return Outcome{Value: v}, nil

	case *ast.PrintStatement:
		v, err := in.evaluate(node.Value, env)
		if err != nil {
			return unit, err
		}
		in.log.Emit(v.String())
		return unit, nil

	case *ast.LetStatement:
		value := runtime.Nil
		if node.Initializer != nil {
			v, err := in.evaluate(node.Initializer, env)
			if err != nil {
				return unit, err
			}
			value = v
		}
		env.Declare(node.Name.Lexeme, value)
		return unit, nil

	case *ast.BlockStatement:
		return in.executeBlock(node, env)

	case *ast.IfStatement:
		cond, err := in.evaluate(node.Condition, env)
		if err != nil {
			return unit, err
		}
		if runtime.Truthy(cond) {
			return in.execute(node.Then, env)
		}
		if node.Else != nil {
			return in.execute(node.Else, env)
		}
		return unit, nil

	case *ast.WhileStatement:
		return in.executeWhile(node, env)

	case *ast.BreakStatement:
		if !env.IsInsideLoop() {
			return unit, newRuntimeError(node.Token, "'break' must be inside a loop.")
		}
		return Outcome{Signal: SignalBreak, Value: runtime.Unit}, nil

	case *ast.ContinueStatement:
		if !env.IsInsideLoop() {
			return unit, newRuntimeError(node.Token, "'continue' must be inside a loop.")
		}
		return Outcome{Signal: SignalContinue, Value: runtime.Unit}, nil
	}

	return unit, newRuntimeError(tokenOf(stmt), "Unsupported statement %T.", stmt)
}

// executeBlock runs the statements in a fresh child frame. A loop-body block
// gets a loop frame and absorbs `continue` by skipping the rest of its
// statements; every other block passes signals up unchanged. The absorb test
// reads the parser's loop-body marker rather than the inherited is_loop flag,
// which is also true for plain blocks nested inside a loop body.
func (in *Interpreter) executeBlock(block *ast.BlockStatement, env *scope.Scope) (Outcome, error) {
	var frame *scope.Scope
	if block.Loop {
		frame = scope.NewLoopScope(env)
	} else {
		frame = scope.NewScope(env)
	}
	in.trace.Debug("scope push", "depth", frame.Depth(), "loop", frame.IsLoop(), "loop_body", frame.IsLoopBody())
	defer in.trace.Debug("scope pop", "depth", frame.Depth())

	for _, stmt := range block.Statements {
		out, err := in.execute(stmt, frame)
		if err != nil {
			return unit, err
		}

		switch out.Signal {
		case SignalBreak:
			return out, nil
		case SignalContinue:
			if frame.IsLoopBody() {
				in.trace.Debug("continue absorbed",
					"line", block.Token.Position.Line, "enclosing_loop", frame.IsEnclosingLoop())
				return unit, nil
			}
			return out, nil
		}
	}
	return unit, nil
}

func (in *Interpreter) executeWhile(node *ast.WhileStatement, env *scope.Scope) (Outcome, error) {
	for {
		cond, err := in.evaluate(node.Condition, env)
		if err != nil {
			return unit, err
		}
		if !runtime.Truthy(cond) {
			return unit, nil
		}

		out, err := in.execute(node.Body, env)
		if err != nil {
			return unit, err
		}
		if out.Signal == SignalBreak {
			in.trace.Debug("break consumed", "line", node.Token.Position.Line)
			return unit, nil
		}
		// SignalContinue only reaches here from a body that is not a
		// loop-body block; it means the same as finishing the iteration.
	}
}
