package config

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

func TestLoadExplicitPath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	path := writeFile(t, t.TempDir(), "monkey.yml", `
prompt: "monkey> "
history_file: ~/hist
log_level: DEBUG
show_parse_tree: true
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	want := &Config{
		Prompt:        "monkey> ",
		HistoryFile:   filepath.Join(home, "hist"),
		LogLevel:      "debug",
		ShowParseTree: true,
		Path:          path,
	}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}
	lvl, err := cfg.Level()
	if err != nil || lvl != slog.LevelDebug {
		t.Errorf("Level() = %v, %v; want debug", lvl, err)
	}
}

func TestLoadDefaultsWhenHomeFileMissing(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if diff := cmp.Diff(Default(), cfg); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}
	if cfg.HistoryFile != filepath.Join(home, ".monkey_history") {
		t.Errorf("HistoryFile = %q", cfg.HistoryFile)
	}
}

func TestLoadHomeFile(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	path := writeFile(t, home, DefaultFileName, "prompt: \"$ \"\n")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Prompt != "$ " || cfg.Path != path || cfg.LogLevel != "info" {
		t.Errorf("unexpected config %+v", cfg)
	}
}

func TestLoadMissingExplicitPath(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yml"))
	if err == nil || !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("Load error = %v, want wrapped ErrNotExist", err)
	}
}

func TestDecodeEmpty(t *testing.T) {
	cfg, err := Decode(strings.NewReader(""))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if cfg.Prompt != ">> " || cfg.LogLevel != "info" || cfg.ShowParseTree {
		t.Errorf("unexpected defaults %+v", cfg)
	}
}

func TestDecodeRejectsUnknownFields(t *testing.T) {
	_, err := Decode(strings.NewReader("promt: x\n"))
	if err == nil || !strings.Contains(err.Error(), "promt") {
		t.Fatalf("Decode error = %v, want unknown field promt", err)
	}
}

func TestDecodeValidation(t *testing.T) {
	_, err := Decode(strings.NewReader("log_level: loud\nprompt: \"a\\nb\"\n"))
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("Decode error = %v, want *ValidationError", err)
	}
	want := []string{
		`log_level "loud" is not one of debug, info, warn, error`,
		"prompt must be a single line",
	}
	if diff := cmp.Diff(want, verr.Issues); diff != "" {
		t.Errorf("issues mismatch (-want +got):\n%s", diff)
	}
	if !strings.HasPrefix(verr.Error(), "config validation failed:\n- ") {
		t.Errorf("Error() = %q", verr.Error())
	}
}
