package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/peterh/liner"
	"github.com/spf13/cobra"

	"github.com/arnavsurve/lox/internal/compiler"
	"github.com/arnavsurve/lox/internal/compiler/lexer"
	"github.com/arnavsurve/lox/internal/compiler/token"
	"github.com/arnavsurve/lox/internal/interpreter"
)

const banner = "Lox REPL\nCtrl+C cancels input, Ctrl+D exits. Type exit or :quit to leave."

// repl: interactive session
var ReplCmd = &cobra.Command{
	Use:   "repl",
	Short: "Start an interactive Lox session",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runREPL(cmd)
	},
}

// prompter is the part of *liner.State the loop needs.
type prompter interface {
	Prompt(prompt string) (string, error)
	AppendHistory(item string)
}

func runREPL(cmd *cobra.Command) error {
	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	histPath, err := cfg.HistoryPath()
	if err != nil {
		logger.Warn("history disabled", "err", err)
	}
	if histPath != "" {
		if f, err := os.Open(histPath); err == nil {
			_, _ = ln.ReadHistory(f)
			_ = f.Close()
		}
		defer func() {
			f, err := os.Create(histPath)
			if err != nil {
				logger.Warn("could not save history", "path", histPath, "err", err)
				return
			}
			if _, err := ln.WriteHistory(f); err != nil {
				logger.Warn("could not save history", "path", histPath, "err", err)
			}
			_ = f.Close()
		}()
	}

	fmt.Fprintln(cmd.OutOrStdout(), banner)
	session := compiler.NewSession(newConsole(cmd), interpreterConfig(cfg.REPL.Echo))
	return replLoop(ln, session, cmd.OutOrStdout())
}

// replLoop runs entered statements until EOF, exit or a panic. Runtime and
// syntax errors are reported by the session and the loop goes on.
func replLoop(p prompter, session *compiler.Session, out io.Writer) error {
	for {
		src, ok := readInput(p, cfg.REPL.Prompt, cfg.REPL.Continuation)
		if !ok {
			fmt.Fprintln(out)
			return nil
		}

		switch strings.TrimSpace(src) {
		case "":
			continue
		case "exit", ":quit":
			return nil
		}
		p.AppendHistory(strings.ReplaceAll(src, "\n", " "))

		err := session.Run(src)
		var panicErr *interpreter.PanicError
		if errors.As(err, &panicErr) {
			return err
		}
	}
}

// readInput reads one line, and continuation lines while braces are still
// open. It returns false at EOF. Ctrl+C drops what was typed so far.
func readInput(p prompter, prompt, cont string) (string, bool) {
	var b strings.Builder

	for {
		var (
			line string
			err  error
		)
		if b.Len() == 0 {
			line, err = p.Prompt(prompt)
		} else {
			line, err = p.Prompt(cont)
		}
		if errors.Is(err, io.EOF) {
			return "", false
		}
		if errors.Is(err, liner.ErrPromptAborted) {
			return "", true
		}
		if err != nil {
			logger.Warn("prompt failed", "err", err)
			return "", false
		}

		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)

		src := b.String()
		if openBraces(src) <= 0 {
			return src, true
		}
	}
}

// openBraces counts unclosed '{' using the scanner, so braces inside strings
// and comments do not count.
func openBraces(src string) int {
	depth := 0
	for _, tok := range lexer.Scan(src, nil) {
		switch tok.Type {
		case token.TokenLBrace:
			depth++
		case token.TokenRBrace:
			depth--
		}
	}
	return depth
}
