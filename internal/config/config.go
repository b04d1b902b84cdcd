// Package config loads the viewer configuration file.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"gopkg.in/yaml.v3"
)

const appName = "keaton"

// Config holds every tunable of the viewer. Zero durations disable
// debouncing; a zero preview length disables truncation.
type Config struct {
	ThreadsDir     string        `yaml:"threads_dir"`
	CacheDir       string        `yaml:"cache_dir"`
	DataDir        string        `yaml:"data_dir"`
	Theme          string        `yaml:"theme"`
	FilterDebounce time.Duration `yaml:"filter_debounce"`
	SearchDebounce time.Duration `yaml:"search_debounce"`
	PreviewLength  int           `yaml:"preview_length"`
	LogFile        string        `yaml:"log_file"`
	LogLevel       string        `yaml:"log_level"`
}

// Default returns the configuration used when no file exists.
func Default() Config {
	data := defaultDataDir()
	return Config{
		ThreadsDir:     ".",
		DataDir:        data,
		Theme:          "dark",
		FilterDebounce: 800 * time.Millisecond,
		SearchDebounce: 400 * time.Millisecond,
		PreviewLength:  280,
		LogFile:        filepath.Join(data, appName+".log"),
		LogLevel:       "info",
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/keaton/config.yaml or the platform
// equivalent.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, appName, "config.yaml")
}

// Load reads path over the defaults. A missing or empty file yields the
// defaults; unknown keys are an error.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	cfg.expand()
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate rejects values the viewer cannot run with.
func (c Config) Validate() error {
	if c.FilterDebounce < 0 || c.SearchDebounce < 0 {
		return errors.New("debounce intervals must not be negative")
	}
	if c.PreviewLength < 0 {
		return errors.New("preview_length must not be negative")
	}
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("log_level: %w", err)
	}
	return nil
}

// SettingsPath is the settings database inside DataDir.
func (c Config) SettingsPath() string {
	return filepath.Join(c.DataDir, "settings.db")
}

func (c *Config) expand() {
	for _, p := range []*string{&c.ThreadsDir, &c.CacheDir, &c.DataDir, &c.LogFile} {
		*p = ExpandHome(*p)
	}
}

// ExpandHome replaces a leading "~/" with the user's home directory.
func ExpandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}

func defaultDataDir() string {
	if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
		return filepath.Join(dir, appName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return appName
	}
	return filepath.Join(home, ".local", "share", appName)
}
