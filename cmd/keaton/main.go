// Command keaton reads archived forum threads in the terminal.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/alecthomas/kong"
	"github.com/mattn/go-isatty"

	"github.com/kyaoi/keaton/internal/app"
	"github.com/kyaoi/keaton/internal/config"
	"github.com/kyaoi/keaton/internal/logging"
)

// CLI defines the command-line interface for keaton.
var CLI struct {
	Config     string         `help:"Configuration file." type:"path" default:"${config_path}"`
	ThreadsDir string         `name:"threads-dir" short:"d" help:"Directory holding thread files." type:"path"`
	CacheDir   string         `name:"cache-dir" help:"Directory for normalization caches (default: next to each thread)." type:"path"`
	Theme      string         `help:"Colour theme (dark, light, parchment, zelda)."`
	LogLevel   string         `name:"log-level" help:"Log level (debug, info, warn, error)."`
	FilterWait *time.Duration `name:"filter-debounce" help:"Delay before the post filter runs while typing."`
	SearchWait *time.Duration `name:"search-debounce" help:"Delay before the post search runs while typing."`

	View   ViewCmd   `cmd:"" default:"withargs" help:"Open a thread in the viewer"`
	List   ListCmd   `cmd:"" help:"List the threads in the threads directory"`
	Render RenderCmd `cmd:"" help:"Print one post as text or HTML"`
	Grep   GrepCmd   `cmd:"" help:"Print the posts matching a query"`
	Find   FindCmd   `cmd:"" help:"Print the matches of a query inside one post"`
}

// ViewCmd opens the interactive viewer.
type ViewCmd struct {
	Thread string `arg:"" optional:"" help:"Thread file, file name or thread name (default: last opened)"`
	Filter string `short:"f" help:"Start with the post list filtered by this query"`
}

func (c *ViewCmd) Run(cfg config.Config) error {
	if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		return errors.New("view needs a terminal; use render, grep or find for piped output")
	}
	return app.Run(cfg, c.Thread, c.Filter)
}

// ListCmd lists the thread catalog.
type ListCmd struct{}

func (c *ListCmd) Run(cfg config.Config) error {
	return app.List(os.Stdout, cfg.ThreadsDir)
}

// RenderCmd prints a single post.
type RenderCmd struct {
	Thread string `arg:"" help:"Thread file, file name or thread name"`
	PostID int64  `arg:"" name:"post-id" help:"Post id"`
	HTML   bool   `name:"html" help:"Print the rendered HTML instead of text"`
}

func (c *RenderCmd) Run(cfg config.Config) error {
	t, err := openThread(cfg, c.Thread)
	if err != nil {
		return err
	}
	return app.RenderPost(os.Stdout, t, c.PostID, c.HTML)
}

// GrepCmd filters the posts of a thread.
type GrepCmd struct {
	Thread string `arg:"" help:"Thread file, file name or thread name"`
	Query  string `arg:"" help:"Text to look for in post bodies and authors"`
}

func (c *GrepCmd) Run(cfg config.Config) error {
	t, err := openThread(cfg, c.Thread)
	if err != nil {
		return err
	}
	n, err := app.Grep(os.Stdout, t, c.Query, cfg.PreviewLength)
	if err != nil {
		return err
	}
	return noMatches(n)
}

// FindCmd searches inside one post.
type FindCmd struct {
	Thread string `arg:"" help:"Thread file, file name or thread name"`
	PostID int64  `arg:"" name:"post-id" help:"Post id"`
	Query  string `arg:"" help:"Text to look for"`
}

func (c *FindCmd) Run(cfg config.Config) error {
	t, err := openThread(cfg, c.Thread)
	if err != nil {
		return err
	}
	n, err := app.Find(os.Stdout, t, c.PostID, c.Query)
	if err != nil {
		return err
	}
	return noMatches(n)
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("keaton"),
		kong.Description("Archived thread reader"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{"config_path": config.DefaultPath()},
	)

	cfg, err := loadConfig()
	ctx.FatalIfErrorf(err)

	var logOut io.Closer
	logOut, err = logging.Setup(cfg.LogFile, cfg.LogLevel)
	ctx.FatalIfErrorf(err)
	defer logOut.Close()

	ctx.Bind(cfg)
	err = ctx.Run()
	if errors.Is(err, errNoMatches) {
		logOut.Close()
		os.Exit(1)
	}
	ctx.FatalIfErrorf(err)
}

// loadConfig reads the configuration file and applies the global flags.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load(CLI.Config)
	if err != nil {
		return cfg, err
	}
	if CLI.ThreadsDir != "" {
		cfg.ThreadsDir = CLI.ThreadsDir
	}
	if CLI.CacheDir != "" {
		cfg.CacheDir = CLI.CacheDir
	}
	if CLI.Theme != "" {
		cfg.Theme = CLI.Theme
	}
	if CLI.LogLevel != "" {
		cfg.LogLevel = CLI.LogLevel
	}
	if CLI.FilterWait != nil {
		cfg.FilterDebounce = *CLI.FilterWait
	}
	if CLI.SearchWait != nil {
		cfg.SearchDebounce = *CLI.SearchWait
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("flags: %w", err)
	}
	return cfg, nil
}
