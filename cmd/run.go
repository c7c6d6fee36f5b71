package cmd

import (
	"github.com/spf13/cobra"

	"github.com/arnavsurve/lox/internal/compiler"
)

// run: execute a .lox script
var RunCmd = &cobra.Command{
	Use:   "run <script.lox>",
	Short: "Run a Lox script",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runScript(cmd, args[0])
	},
}

func runScript(cmd *cobra.Command, path string) error {
	err := compiler.RunFile(path, newConsole(cmd), interpreterConfig(false))
	logger.Debug("script finished", "path", path, "exit", compiler.ExitCode(err))
	return err
}
