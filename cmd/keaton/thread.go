package main

import (
	"errors"

	"github.com/kyaoi/keaton/internal/app"
	"github.com/kyaoi/keaton/internal/config"
	"github.com/kyaoi/keaton/internal/thread"
)

// errNoMatches makes grep and find exit with status 1 when nothing matched.
var errNoMatches = errors.New("no matches")

func openThread(cfg config.Config, target string) (*thread.Thread, error) {
	path, err := app.Resolve(cfg.ThreadsDir, target)
	if err != nil {
		return nil, err
	}
	return app.LoadThread(path, cfg.CacheDir)
}

func noMatches(n int) error {
	if n == 0 {
		return errNoMatches
	}
	return nil
}
