package main

import (
	"fmt"
	"os"

	"github.com/arnavsurve/lox/cmd"
	"github.com/arnavsurve/lox/internal/compiler"
)

func main() {
	err := cmd.Execute()
	code := compiler.ExitCode(err)
	// Syntax errors and panics were already reported as diagnostics
	if code == compiler.ExitFailure {
		fmt.Fprintln(os.Stderr, err)
	}
	os.Exit(code)
}
