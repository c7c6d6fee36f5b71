package cmd

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"text/template"

	"github.com/spf13/cobra"

	"github.com/arnavsurve/lox/internal/config"
)

//go:embed templates/*
var tplFS embed.FS

// init: scaffold a new project
var InitCmd = &cobra.Command{
	Use:   "init [project-name]",
	Short: "Scaffold a new Lox project",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var (
			targetDir   string
			projectName string
		)

		// targetDir is where files go, projectName is for templating
		if len(args) == 1 {
			targetDir = args[0]
			projectName = filepath.Base(args[0])
		} else {
			cwd, err := os.Getwd()
			if err != nil {
				return err
			}
			targetDir = "."
			projectName = filepath.Base(cwd)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "↪ scaffolding new project %q ...\n", projectName)
		if err := scaffold(targetDir, projectName); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✓ project %q initialized! Try: lox run %s\n",
			projectName, filepath.Join(targetDir, "main.lox"))
		return nil
	},
}

// scaffold writes the project templates into targetDir. A new subdirectory
// must not exist yet.
func scaffold(targetDir, projectName string) error {
	if targetDir != "." {
		if _, err := os.Stat(targetDir); err == nil {
			return fmt.Errorf("directory %q already exists", targetDir)
		}
		if err := os.MkdirAll(targetDir, 0o755); err != nil {
			return err
		}
	}

	data := map[string]string{"ProjectName": projectName}

	files := map[string]string{
		"templates/main.lox.tpl":  "main.lox",
		"templates/lox.yml.tpl":   config.FileName,
		"templates/gitignore.tpl": ".gitignore",
	}

	for tplPath, outName := range files {
		outPath := filepath.Join(targetDir, outName)
		if err := writeTpl(tplPath, outPath, data); err != nil {
			return err
		}
	}
	return nil
}

// writeTpl loads tplName from tplFS, executes it with data, and writes to outPath
func writeTpl(tplName, outPath string, data any) error {
	t, err := template.ParseFS(tplFS, tplName)
	if err != nil {
		return err
	}

	f, err := os.Create(outPath)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := t.Execute(f, data); err != nil {
		return fmt.Errorf("render %s: %w", outPath, err)
	}
	return nil
}
