package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/arnavsurve/lox/internal/config"
	"github.com/arnavsurve/lox/internal/diag"
	"github.com/arnavsurve/lox/internal/interpreter"
)

var (
	configPath string
	debugFlag  bool
	colorFlag  string
	logLevel   string
)

// Resolved once per invocation by loadSettings.
var (
	cfg    = config.Default()
	logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
)

var rootCmd = &cobra.Command{
	Use:   "lox [script]",
	Short: "Lox tree-walking interpreter and REPL",
	Long: `Lox runs scripts written in a small C-like scripting language.

With a script argument it runs the script; without one it starts the REPL.

Commands:
  run    Run a (.lox) script
  repl   Start an interactive session
  ast    Print the parsed syntax tree of a script
  init   Scaffold a new Lox project
`,
	Args:              cobra.MaximumNArgs(1),
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: loadSettings,
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 1 {
			return runScript(cmd, args[0])
		}
		return runREPL(cmd)
	},
}

func Execute() error {
	if err := rootCmd.Execute(); err != nil {
		return err
	}
	return nil
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configPath, "config", "", "config file (default: ./"+config.FileName+" when present)")
	flags.BoolVar(&debugFlag, "debug", false, "print a DEBUG trace of each statement before it runs")
	flags.StringVar(&colorFlag, "color", "", "colour diagnostics: auto, always or never")
	flags.StringVar(&logLevel, "log-level", "", "operational log level: debug, info, warn or error")

	rootCmd.AddCommand(InitCmd, RunCmd, ReplCmd, AstCmd)
}

// loadSettings layers defaults, the config file and flags, then sets up the
// operational logger.
func loadSettings(cmd *cobra.Command, _ []string) error {
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("resolve working directory: %w", err)
	}
	loaded, err := config.Resolve(configPath, cwd)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("debug") {
		loaded.Debug = debugFlag
	}
	if flags.Changed("color") {
		loaded.Color = colorFlag
	}
	if flags.Changed("log-level") {
		loaded.Log.Level = logLevel
	}
	if err := loaded.Validate(); err != nil {
		return err
	}
	cfg = loaded

	logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: cfg.LogLevel()}))
	logger.Debug("config loaded", "path", cfg.Path, "debug", cfg.Debug, "color", cfg.Color)
	return nil
}

func newConsole(cmd *cobra.Command) *diag.Console {
	return diag.NewConsole(cmd.OutOrStdout(), cmd.ErrOrStderr(), cfg.UseColor(isTerminal(os.Stderr)))
}

func interpreterConfig(echo bool) interpreter.Config {
	return interpreter.Config{
		Debug: cfg.Debug,
		Echo:  echo,
		Trace: logger,
	}
}

func isTerminal(f *os.File) bool {
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}
