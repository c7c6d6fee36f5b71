package cmd

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/peterh/liner"
	"github.com/spf13/pflag"

	"github.com/arnavsurve/lox/internal/compiler"
	"github.com/arnavsurve/lox/internal/config"
	"github.com/arnavsurve/lox/internal/diag"
	"github.com/arnavsurve/lox/internal/interpreter"
)

// --- Test Helper Functions ---

type input struct {
	line string
	err  error
}

// scriptedPrompter replays canned lines, then reports EOF.
type scriptedPrompter struct {
	inputs  []input
	prompts []string
	history []string
}

func lines(ls ...string) *scriptedPrompter {
	p := &scriptedPrompter{}
	for _, l := range ls {
		p.inputs = append(p.inputs, input{line: l})
	}
	return p
}

func (p *scriptedPrompter) Prompt(prompt string) (string, error) {
	p.prompts = append(p.prompts, prompt)
	if len(p.inputs) == 0 {
		return "", io.EOF
	}
	in := p.inputs[0]
	p.inputs = p.inputs[1:]
	return in.line, in.err
}

func (p *scriptedPrompter) AppendHistory(item string) {
	p.history = append(p.history, item)
}

func newTestSession(buf *diag.Buffer) *compiler.Session {
	return compiler.NewSession(buf, interpreter.Config{Echo: true})
}

// --- REPL ---

func TestReplLoop(t *testing.T) {
	var buf diag.Buffer
	p := lines(
		"let a = 1;",
		"{",
		"  a = a + 1;",
		"}",
		"a;",
		"print 1 / 0;",
		"",
		"exit",
		"print 99;",
	)

	if err := replLoop(p, newTestSession(&buf), io.Discard); err != nil {
		t.Fatalf("replLoop: %v", err)
	}

	if got := buf.Output(); got != "=> 2" {
		t.Errorf("output = %q", got)
	}
	if buf.Count(diag.Runtime) != 1 {
		t.Errorf("reports = %v", buf.Reports)
	}
	if len(p.inputs) != 1 {
		t.Errorf("exit should stop reading, %d inputs left", len(p.inputs))
	}

	wantHistory := []string{"let a = 1;", "{   a = a + 1; }", "a;", "print 1 / 0;"}
	if strings.Join(p.history, "|") != strings.Join(wantHistory, "|") {
		t.Errorf("history = %q", p.history)
	}

	d := config.Default()
	wantPrompts := []string{d.REPL.Prompt, d.REPL.Prompt, d.REPL.Continuation, d.REPL.Continuation}
	if strings.Join(p.prompts[:4], "|") != strings.Join(wantPrompts, "|") {
		t.Errorf("prompts = %q", p.prompts)
	}
}

func TestReplStopsOnPanic(t *testing.T) {
	var buf diag.Buffer
	p := lines("print 1;", "print missing;", "print 2;")

	err := replLoop(p, newTestSession(&buf), io.Discard)
	if compiler.ExitCode(err) != compiler.ExitPanic {
		t.Fatalf("err = %v, want a panic", err)
	}
	if buf.Output() != "1" {
		t.Errorf("output = %q", buf.Output())
	}
}

func TestReplSurvivesSyntaxErrors(t *testing.T) {
	var buf diag.Buffer
	p := lines("print ;", "print 2;")

	if err := replLoop(p, newTestSession(&buf), io.Discard); err != nil {
		t.Fatalf("replLoop: %v", err)
	}
	if buf.Output() != "2" || buf.Count(diag.Parser) != 1 {
		t.Errorf("output = %q, reports = %v", buf.Output(), buf.Reports)
	}
}

func TestReplCtrlCDropsPendingInput(t *testing.T) {
	var buf diag.Buffer
	p := &scriptedPrompter{inputs: []input{
		{line: "{ print 1;"},
		{err: liner.ErrPromptAborted},
		{line: "print 2;"},
	}}

	var out bytes.Buffer
	if err := replLoop(p, newTestSession(&buf), &out); err != nil {
		t.Fatalf("replLoop: %v", err)
	}
	if buf.Output() != "2" {
		t.Errorf("output = %q", buf.Output())
	}
	if out.String() != "\n" {
		t.Errorf("EOF should end with a newline, got %q", out.String())
	}
}

func TestOpenBraces(t *testing.T) {
	tests := []struct {
		src  string
		want int
	}{
		{"print 1;", 0},
		{"{", 1},
		{"while true { {", 2},
		{"{ }", 0},
		{`print "{";`, 0},
		{"// {", 0},
		{"}", -1},
	}
	for _, tt := range tests {
		if got := openBraces(tt.src); got != tt.want {
			t.Errorf("openBraces(%q) = %d, want %d", tt.src, got, tt.want)
		}
	}
}

// --- Scaffold ---

func TestScaffold(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "demo")
	if err := scaffold(dir, "demo"); err != nil {
		t.Fatalf("scaffold: %v", err)
	}

	for _, name := range []string{"main.lox", config.FileName, ".gitignore"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("missing %s: %v", name, err)
		}
	}

	if _, err := config.Load(filepath.Join(dir, config.FileName)); err != nil {
		t.Errorf("scaffolded config does not load: %v", err)
	}

	var buf diag.Buffer
	if err := compiler.RunFile(filepath.Join(dir, "main.lox"), &buf, interpreter.Config{}); err != nil {
		t.Fatalf("scaffolded script failed: %v", err)
	}
	want := "hello from demo\ntick 1\ntick 2\ntick 3"
	if buf.Output() != want {
		t.Errorf("output = %q, want %q", buf.Output(), want)
	}

	if err := scaffold(dir, "demo"); err == nil {
		t.Errorf("scaffolding over an existing directory should fail")
	}
}

// --- Commands ---

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
		// Flag values and their Changed marks outlive a single Execute
		for _, name := range []string{"config", "debug", "color", "log-level"} {
			resetFlag(t, rootCmd.PersistentFlags().Lookup(name))
		}
		for _, name := range []string{"sexpr", "raw", "write"} {
			resetFlag(t, AstCmd.Flags().Lookup(name))
		}
		cfg = config.Default()
	})
	err := rootCmd.Execute()
	return stdout.String(), stderr.String(), err
}

func resetFlag(t *testing.T, f *pflag.Flag) {
	t.Helper()
	if err := f.Value.Set(f.DefValue); err != nil {
		t.Fatalf("reset --%s: %v", f.Name, err)
	}
	f.Changed = false
}

func writeScript(t *testing.T, src string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "script.lox")
	if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRunCommand(t *testing.T) {
	path := writeScript(t, "print 1 + 2;\nprint 1 / 0;\n")

	stdout, stderr, err := execute(t, "run", "--color", "never", path)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if stdout != "3\n" {
		t.Errorf("stdout = %q", stdout)
	}
	if !strings.Contains(stderr, "[ln 2 col 9] Runtime Error at '/': Division by zero.") {
		t.Errorf("stderr = %q", stderr)
	}
}

func TestRunCommandExitCodes(t *testing.T) {
	_, _, err := execute(t, writeScript(t, "print ;"))
	if compiler.ExitCode(err) != compiler.ExitSyntax {
		t.Errorf("syntax error exit = %d (%v)", compiler.ExitCode(err), err)
	}

	_, _, err = execute(t, writeScript(t, "print nope;"))
	if compiler.ExitCode(err) != compiler.ExitPanic {
		t.Errorf("panic exit = %d (%v)", compiler.ExitCode(err), err)
	}
}

func TestDebugFlag(t *testing.T) {
	stdout, _, err := execute(t, "--debug", "run", writeScript(t, "print 1;"))
	if err != nil {
		t.Fatal(err)
	}
	if stdout != "DEBUG (print 1)\n1\n" {
		t.Errorf("stdout = %q", stdout)
	}
}

func TestBadColorFlag(t *testing.T) {
	_, _, err := execute(t, "--color", "rainbow", "run", writeScript(t, "print 1;"))
	var verr *config.ValidationError
	if !errors.As(err, &verr) {
		t.Errorf("err = %v, want a validation error", err)
	}
}

func TestAstCommand(t *testing.T) {
	path := writeScript(t, "loop { print 1; break; }")

	stdout, _, err := execute(t, "ast", path)
	if err != nil {
		t.Fatal(err)
	}
	if stdout != "while true {\n\tprint 1;\n\tbreak;\n}\n" {
		t.Errorf("source form = %q", stdout)
	}

	stdout, _, err = execute(t, "ast", "--sexpr", "-w", path)
	if err != nil {
		t.Fatal(err)
	}
	if stdout != "(while true\n  (loop-body\n    (print 1)\n    (break)))\n" {
		t.Errorf("sexpr form = %q", stdout)
	}
	if _, err := os.Stat(strings.TrimSuffix(path, ".lox") + ".ast.lox"); err != nil {
		t.Errorf("-w did not write the file: %v", err)
	}

	stdout, _, err = execute(t, "ast", "--raw", path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(stdout, "WhileStatement") {
		t.Errorf("raw form = %q", stdout)
	}
}
