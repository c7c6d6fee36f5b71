// Package config loads the interpreter's YAML configuration file.
package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// FileName is looked up in the working directory when no --config is given.
const FileName = ".lox.yml"

const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

type Config struct {
	Path string `yaml:"-"` // file it was loaded from, "" for defaults

	Debug bool   `yaml:"debug"`
	Color string `yaml:"color"`
	REPL  REPL   `yaml:"repl"`
	Log   Log    `yaml:"log"`
}

type REPL struct {
	Prompt       string `yaml:"prompt"`
	Continuation string `yaml:"continuation"`
	History      string `yaml:"history"` // "" disables history
	Echo         bool   `yaml:"echo"`
}

type Log struct {
	Level string `yaml:"level"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Color: ColorAuto,
		REPL: REPL{
			Prompt:       "> ",
			Continuation: "... ",
			History:      "~/.lox_history",
			Echo:         true,
		},
		Log: Log{Level: "warn"},
	}
}

type ValidationError struct {
	Issues []string
}

func (e *ValidationError) Error() string {
	if len(e.Issues) == 0 {
		return "config: invalid configuration"
	}
	var b strings.Builder
	b.WriteString("config validation failed:")
	for _, issue := range e.Issues {
		b.WriteString("\n- ")
		b.WriteString(issue)
	}
	return b.String()
}

// Load reads the file at path over the defaults. Keys the file leaves out
// keep their default values.
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config: empty path")
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("config: resolve %s: %w", path, err)
	}
	file, err := os.Open(absPath)
	if err != nil {
		return nil, fmt.Errorf("config: open %s: %w", absPath, err)
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true)

	cfg := Default()
	if err := decoder.Decode(cfg); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("config: %s is empty", absPath)
		}
		return nil, fmt.Errorf("config: parse %s: %w", absPath, err)
	}
	cfg.Path = absPath

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Resolve loads the explicitly requested file, else FileName from dir when it
// exists, else the defaults.
func Resolve(explicit, dir string) (*Config, error) {
	if explicit != "" {
		return Load(explicit)
	}
	candidate := filepath.Join(dir, FileName)
	info, err := os.Stat(candidate)
	switch {
	case err == nil && !info.IsDir():
		return Load(candidate)
	case err != nil && !errors.Is(err, os.ErrNotExist):
		return nil, fmt.Errorf("config: stat %s: %w", candidate, err)
	}
	return Default(), nil
}

func (c *Config) Validate() error {
	var errs ValidationError
	switch c.Color {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		errs.Issues = append(errs.Issues, fmt.Sprintf("color must be one of auto, always, never (got %q)", c.Color))
	}
	if c.REPL.Prompt == "" {
		errs.Issues = append(errs.Issues, "repl.prompt must be a non-empty string")
	}
	if c.REPL.Continuation == "" {
		errs.Issues = append(errs.Issues, "repl.continuation must be a non-empty string")
	}
	if _, err := ParseLevel(c.Log.Level); err != nil {
		errs.Issues = append(errs.Issues, fmt.Sprintf("log.level: %v", err))
	}

	if len(errs.Issues) > 0 {
		return &errs
	}
	return nil
}

// ParseLevel accepts debug, info, warn and error, case-insensitively.
func ParseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelWarn, fmt.Errorf("unknown level %q", s)
	}
	return level, nil
}

// LogLevel is the validated slog level.
func (c *Config) LogLevel() slog.Level {
	level, _ := ParseLevel(c.Log.Level)
	return level
}

// UseColor decides colouring for an output that is or is not a terminal.
func (c *Config) UseColor(terminal bool) bool {
	switch c.Color {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	default:
		return terminal
	}
}

// HistoryPath expands a leading ~/ in the history setting. It returns "" when
// history is disabled.
func (c *Config) HistoryPath() (string, error) {
	p := c.REPL.History
	if p == "" {
		return "", nil
	}
	if rest, ok := strings.CutPrefix(p, "~/"); ok {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve user home: %w", err)
		}
		return filepath.Join(home, rest), nil
	}
	return p, nil
}
