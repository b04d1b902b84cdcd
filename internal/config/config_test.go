package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadMissingFileGivesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(Default(), cfg); diff != "" {
		t.Errorf("defaults mismatch (-want +got):\n%s", diff)
	}
}

func TestDefaults(t *testing.T) {
	cfg := Default()
	if cfg.FilterDebounce != 800*time.Millisecond || cfg.SearchDebounce != 400*time.Millisecond {
		t.Errorf("debounce defaults = %v, %v", cfg.FilterDebounce, cfg.SearchDebounce)
	}
	if cfg.PreviewLength != 280 || cfg.Theme != "dark" {
		t.Errorf("preview/theme defaults = %d, %q", cfg.PreviewLength, cfg.Theme)
	}
}

func TestLoadEmptyFile(t *testing.T) {
	cfg, err := Load(writeConfig(t, ""))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Theme != "dark" {
		t.Errorf("Theme = %q", cfg.Theme)
	}
}

func TestLoadOverrides(t *testing.T) {
	path := writeConfig(t, `
threads_dir: /srv/threads
theme: parchment
filter_debounce: 1s
search_debounce: 0s
preview_length: 80
log_level: debug
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	want := Default()
	want.ThreadsDir = "/srv/threads"
	want.Theme = "parchment"
	want.FilterDebounce = time.Second
	want.SearchDebounce = 0
	want.PreviewLength = 80
	want.LogLevel = "debug"
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := map[string]string{
		"unknown key":      "colour: red\n",
		"bad duration":     "filter_debounce: soon\n",
		"negative preview": "preview_length: -1\n",
		"bad level":        "log_level: loud\n",
		"not a mapping":    "- a\n- b\n",
	}
	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := Load(writeConfig(t, body)); err == nil {
				t.Error("Load succeeded")
			}
		})
	}
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	if got := ExpandHome("~/threads"); got != filepath.Join(home, "threads") {
		t.Errorf("ExpandHome = %q", got)
	}
	if got := ExpandHome("/abs/~/x"); got != "/abs/~/x" {
		t.Errorf("ExpandHome changed %q", got)
	}
}
