package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/takoeight0821/lox/config"
)

func TestLoadMissingFile(t *testing.T) {
	t.Parallel()

	cfg, err := config.Load(filepath.Join(t.TempDir(), "config.yaml"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if diff := cmp.Diff(config.Default(), cfg); diff != "" {
		t.Errorf("Load mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadOverlaysDefaults(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("prompt: \"lox> \"\ntrace_ast: true\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	expected := config.Default()
	expected.Prompt = "lox> "
	expected.TraceAST = true
	if diff := cmp.Diff(expected, cfg); diff != "" {
		t.Errorf("Load mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadInvalidYAML(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("trace_ast: [\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	if _, err := config.Load(path); err == nil {
		t.Error("expected an error for malformed YAML")
	}
}

func TestDecodeDisablesHistory(t *testing.T) {
	t.Parallel()

	cfg := config.Default()
	if err := config.Decode([]byte(`history_file: ""`), &cfg); err != nil {
		t.Fatalf("Decode returned error: %v", err)
	}
	if cfg.HistoryFile != "" {
		t.Errorf("HistoryFile = %q, expected empty", cfg.HistoryFile)
	}
	if cfg.Prompt != config.Default().Prompt {
		t.Errorf("Prompt = %q, expected the default", cfg.Prompt)
	}
}
