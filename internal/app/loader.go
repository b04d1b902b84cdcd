package app

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/kyaoi/keaton/internal/config"
	"github.com/kyaoi/keaton/internal/normcache"
	"github.com/kyaoi/keaton/internal/settings"
	"github.com/kyaoi/keaton/internal/thread"
	"github.com/kyaoi/keaton/internal/ui"
)

// Resolve maps a thread argument to a file. target is either a path to a
// thread file or the file or display name of an entry in threadsDir.
func Resolve(threadsDir, target string) (string, error) {
	if target == "" {
		return "", fmt.Errorf("no thread given: %w", thread.ErrNotFound)
	}
	if info, err := os.Stat(target); err == nil && !info.IsDir() {
		return target, nil
	}
	entry, ok, err := thread.NewCatalog(threadsDir).Find(target)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", fmt.Errorf("%s: %w", target, thread.ErrNotFound)
	}
	return entry.Path, nil
}

// LoadThread opens the thread at path and fills the folded fields of its
// posts through the normalization cache. A cache that cannot be written is
// logged and otherwise ignored.
func LoadThread(path, cacheDir string) (*thread.Thread, error) {
	t, err := thread.Open(path)
	if err != nil {
		return nil, err
	}
	store := normcache.NewFileStore(t.Source, cacheDir)
	stats, err := normcache.Load(t.Posts, store)
	if err != nil {
		log.Warn("normalization cache not saved", "path", store.Path(), "err", err)
	}
	log.Info("thread loaded", "thread", t.Name, "posts", stats.Posts, "cache_hit", stats.Hit)
	return t, nil
}

// LoadInitialState resolves the thread to show and prepares the UI state.
// An empty target reopens the last thread, or the first one in the threads
// directory. prefs may be nil.
func LoadInitialState(cfg config.Config, prefs *settings.Store, target, query string) (ui.State, error) {
	state := ui.State{
		Theme:          cfg.Theme,
		FilterQuery:    query,
		FilterDebounce: cfg.FilterDebounce,
		SearchDebounce: cfg.SearchDebounce,
		PreviewLength:  cfg.PreviewLength,
	}
	if prefs != nil {
		state.Prefs = prefs
		if theme, err := prefs.Theme(); err == nil && theme != "" {
			state.Theme = theme
		}
	}

	path, err := initialThread(cfg, prefs, target)
	if errors.Is(err, thread.ErrNotFound) {
		state.ThreadName = target
		state.Message = emptyMessage(cfg, target)
		return state, nil
	}
	if err != nil {
		return ui.State{}, err
	}

	t, err := LoadThread(path, cfg.CacheDir)
	if errors.Is(err, thread.ErrNotFound) {
		state.ThreadName = thread.DisplayName(path)
		state.Message = fmt.Sprintf("Thread file not found: %s", path)
		return state, nil
	}
	if err != nil {
		return ui.State{}, err
	}

	key := filepath.Base(t.Source)
	state.ThreadName = t.Name
	state.ThreadKey = key
	state.SourcePath = t.Source
	state.Posts = t.Posts
	state.Reload = func() ([]thread.Post, error) {
		fresh, err := LoadThread(t.Source, cfg.CacheDir)
		if err != nil {
			return nil, err
		}
		return fresh.Posts, nil
	}

	if prefs != nil {
		if err := prefs.SetLastThread(t.Source); err != nil {
			log.Warn("saving last thread", "err", err)
		}
		if id, ok, err := prefs.Position(key); err == nil && ok {
			state.InitialPostID, state.HasInitialPost = id, true
		}
	}
	return state, nil
}

func initialThread(cfg config.Config, prefs *settings.Store, target string) (string, error) {
	if target != "" {
		return Resolve(cfg.ThreadsDir, target)
	}
	if prefs != nil {
		if last, err := prefs.LastThread(); err == nil && last != "" {
			if _, err := os.Stat(last); err == nil {
				return last, nil
			}
		}
	}
	entries, err := thread.NewCatalog(cfg.ThreadsDir).List()
	if err != nil {
		return "", err
	}
	if len(entries) == 0 {
		return "", thread.ErrNotFound
	}
	return entries[0].Path, nil
}

func emptyMessage(cfg config.Config, target string) string {
	if target == "" {
		return fmt.Sprintf("No thread files in %s.", cfg.ThreadsDir)
	}
	return fmt.Sprintf("Thread not found: %s", target)
}
