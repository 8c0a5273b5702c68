// Package config loads the settings of the lox command.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"
)

const appName = "lox"

type Config struct {
	// Prompt is printed before every REPL line.
	Prompt string `yaml:"prompt"`
	// HistoryFile stores REPL history between sessions. Empty disables history.
	HistoryFile string `yaml:"history_file"`
	// TraceTokens prints every token before parsing.
	TraceTokens bool `yaml:"trace_tokens"`
	// TraceAST prints the parsed tree before evaluation.
	TraceAST bool `yaml:"trace_ast"`
}

func Default() Config {
	return Config{
		Prompt:      "> ",
		HistoryFile: filepath.Join(xdg.DataHome, appName, "."+appName+"_history"),
		TraceTokens: false,
		TraceAST:    false,
	}
}

// DefaultPath is $XDG_CONFIG_HOME/lox/config.yaml.
func DefaultPath() string {
	return filepath.Join(xdg.ConfigHome, appName, "config.yaml")
}

// Load overlays the YAML file at path onto the defaults.
// A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()

	bytes, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("config: %w", err)
	}

	if err := Decode(bytes, &cfg); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}

	return cfg, nil
}

// Decode overlays YAML settings onto cfg. Keys absent from s keep their value.
func Decode(s []byte, cfg *Config) error {
	if err := yaml.Unmarshal(s, cfg); err != nil {
		return fmt.Errorf("decode: %w", err)
	}

	return nil
}
