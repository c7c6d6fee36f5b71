package cmd

import (
	"fmt"

	"github.com/kr/pretty"
	"github.com/spf13/cobra"

	"github.com/arnavsurve/lox/internal/compiler"
	"github.com/arnavsurve/lox/internal/compiler/ast"
)

var (
	astSexpr bool
	astRaw   bool
	astWrite bool
)

// ast: dump the parsed tree of a script
var AstCmd = &cobra.Command{
	Use:   "ast <script.lox>",
	Short: "Print the syntax tree of a Lox script",
	Long: `Print the syntax tree of a Lox script.

By default the tree is printed back as source; the output parses to the same
tree. --sexpr prints the prefix form used by --debug, --raw the Go node
structure.`,
	Args: cobra.ExactArgs(1),
	RunE: astRun,
}

func init() {
	AstCmd.Flags().BoolVar(&astSexpr, "sexpr", false, "print as s-expressions")
	AstCmd.Flags().BoolVar(&astRaw, "raw", false, "print the raw node structure")
	AstCmd.Flags().BoolVarP(&astWrite, "write", "w", false, "also write the source form to <script>.ast.lox")
}

func astRun(cmd *cobra.Command, args []string) error {
	path := args[0]
	src, err := compiler.LoadScript(path)
	if err != nil {
		return err
	}

	prog, err := compiler.ParseProgram(src, newConsole(cmd))
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	switch {
	case astRaw:
		fmt.Fprintf(out, "%# v\n", pretty.Formatter(prog))
	case astSexpr:
		fmt.Fprintln(out, ast.Sexpr(prog))
	default:
		fmt.Fprint(out, prog.String())
	}

	if astWrite {
		outFile, err := compiler.WriteAST(prog, path)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "✔︎ wrote AST to %s\n", outFile)
	}
	return nil
}
