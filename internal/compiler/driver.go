package compiler

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/arnavsurve/lox/internal/compiler/ast"
	"github.com/arnavsurve/lox/internal/compiler/lexer"
	"github.com/arnavsurve/lox/internal/compiler/parser"
	"github.com/arnavsurve/lox/internal/compiler/scope"
	"github.com/arnavsurve/lox/internal/diag"
	"github.com/arnavsurve/lox/internal/interpreter"
)

const SourceExt = ".lox"

// Exit codes of a finished run.
const (
	ExitOK      = 0
	ExitFailure = 1
	ExitSyntax  = 65
	ExitPanic   = 70
)

// Session runs source texts one after another against a single global
// environment. A script is one Run; a REPL is one Run per entered line.
type Session struct {
	log    diag.Logger
	interp *interpreter.Interpreter
}

func NewSession(log diag.Logger, cfg interpreter.Config) *Session {
	if log == nil {
		log = diag.Discard{}
	}
	return &Session{log: log, interp: interpreter.New(log, cfg)}
}

// Globals exposes the session's global frame.
func (s *Session) Globals() *scope.Scope {
	return s.interp.Globals()
}

// Run scans, parses and executes src. It returns parser.Errors if the source
// does not parse (nothing is executed), a *interpreter.PanicError if the run
// was aborted, and nil otherwise. Every diagnostic has already been reported.
func (s *Session) Run(src string) error {
	stmts, err := Parse(src, s.log)
	if err != nil {
		return err
	}
	return s.interp.Interpret(stmts, s.interp.Globals())
}

// Parse scans and parses src, reporting diagnostics to log.
func Parse(src string, log diag.Logger) ([]ast.Statement, error) {
	tokens := lexer.Scan(src, log)
	return parser.Parse(tokens, log)
}

// ParseProgram is Parse for callers that render or dump the whole tree.
func ParseProgram(src string, log diag.Logger) (*ast.Program, error) {
	return parser.NewParser(lexer.Scan(src, log), log).ParseProgram()
}

// RunFile runs the script at path in a fresh session.
func RunFile(path string, log diag.Logger, cfg interpreter.Config) error {
	src, err := LoadScript(path)
	if err != nil {
		return err
	}
	return NewSession(log, cfg).Run(src)
}

// LoadScript validates the extension and reads the script at path.
func LoadScript(path string) (string, error) {
	if err := validateExtension(path); err != nil {
		return "", err
	}
	return readSource(path)
}

// WriteAST writes the rendered program next to the script as
// <name>.ast.lox and returns the written path.
func WriteAST(prog *ast.Program, srcPath string) (string, error) {
	outFile := strings.TrimSuffix(srcPath, filepath.Ext(srcPath)) + ".ast" + SourceExt
	if err := os.WriteFile(outFile, []byte(prog.String()), 0o644); err != nil {
		return "", fmt.Errorf("write ast %s: %w", outFile, err)
	}
	return outFile, nil
}

// ExitCode maps the error of a run to the process exit status.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}

	var (
		syntax   parser.Errors
		panicErr *interpreter.PanicError
	)
	switch {
	case errors.As(err, &syntax):
		return ExitSyntax
	case errors.As(err, &panicErr):
		return ExitPanic
	default:
		return ExitFailure
	}
}

func validateExtension(path string) error {
	if filepath.Ext(path) != SourceExt {
		return fmt.Errorf("source must have %s extension: %s", SourceExt, path)
	}
	return nil
}

func readSource(path string) (string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read script %s: %w", path, err)
	}
	return string(b), nil
}
