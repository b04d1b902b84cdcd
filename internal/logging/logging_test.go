package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestNewWritesLogfmtWithSession(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(&buf, "debug")
	if err != nil {
		t.Fatal(err)
	}
	logger.Debug("cache rebuilt", "posts", 12)

	out := buf.String()
	for _, want := range []string{"session=", "posts=12", "cache rebuilt", "level=debug"} {
		if !strings.Contains(out, want) {
			t.Errorf("output %q lacks %q", out, want)
		}
	}
}

func TestNewFiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(&buf, "warn")
	if err != nil {
		t.Fatal(err)
	}
	logger.Info("hidden")
	if buf.Len() != 0 {
		t.Errorf("info logged at warn level: %q", buf.String())
	}
}

func TestNewRejectsBadLevel(t *testing.T) {
	if _, err := New(&bytes.Buffer{}, "shouty"); err == nil {
		t.Error("bad level accepted")
	}
}

func TestSetupInstallsDefault(t *testing.T) {
	prev := log.Default()
	t.Cleanup(func() { log.SetDefault(prev) })

	path := filepath.Join(t.TempDir(), "logs", "keaton.log")
	closer, err := Setup(path, "info")
	if err != nil {
		t.Fatal(err)
	}
	log.Info("opened thread", "name", "Hyrule")
	if err := closer.Close(); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "name=Hyrule") {
		t.Errorf("log file = %q", data)
	}
}
