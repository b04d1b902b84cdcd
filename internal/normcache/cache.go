// Package normcache keeps the folded copy of every post's body and author so
// that large threads do not have to be folded again on every load.
package normcache

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/kyaoi/keaton/internal/fold"
	"github.com/kyaoi/keaton/internal/thread"
)

var (
	// ErrMiss reports that a store holds no usable entry.
	ErrMiss = errors.New("normalization cache miss")
	// ErrPersist reports that freshly folded data could not be written back.
	// The posts passed to Load are folded regardless.
	ErrPersist = errors.New("normalization cache not persisted")
)

// Entry is the cached folded form of one post.
type Entry struct {
	PostID int64  `json:"post_id"`
	Body   string `json:"message_norm"`
	Author string `json:"username_norm"`
}

// Store persists the entries of one thread source.
type Store interface {
	Load() ([]Entry, error)
	Save([]Entry) error
}

// Stats describes what Load did.
type Stats struct {
	Hit   bool
	Posts int
}

// Load fills FoldedBody and FoldedAuthor of every post. Cached entries are
// used only when they line up with posts id by id; anything else is thrown
// away and the whole entry list is rebuilt and saved.
func Load(posts []thread.Post, store Store) (Stats, error) {
	stats := Stats{Posts: len(posts)}

	if store != nil {
		entries, err := store.Load()
		switch {
		case err != nil:
			log.Debug("normalization cache unavailable", "err", err)
		case Valid(entries, posts):
			for i := range posts {
				posts[i].FoldedBody = entries[i].Body
				posts[i].FoldedAuthor = entries[i].Author
			}
			stats.Hit = true
			return stats, nil
		default:
			log.Debug("normalization cache stale", "cached", len(entries), "posts", len(posts))
		}
	}

	entries := Fold(posts)
	if store == nil {
		return stats, nil
	}
	if err := store.Save(entries); err != nil {
		return stats, fmt.Errorf("%w: %w", ErrPersist, err)
	}
	return stats, nil
}

// Valid reports whether entries were built from exactly this post sequence.
// Only ids are compared.
func Valid(entries []Entry, posts []thread.Post) bool {
	if len(entries) != len(posts) {
		return false
	}
	for i := range entries {
		if entries[i].PostID != posts[i].ID {
			return false
		}
	}
	return true
}

// Fold folds every post in place and returns the matching entries.
func Fold(posts []thread.Post) []Entry {
	entries := make([]Entry, len(posts))
	for i := range posts {
		posts[i].FoldedBody = fold.String(posts[i].Body)
		posts[i].FoldedAuthor = fold.String(posts[i].Author)
		entries[i] = Entry{
			PostID: posts[i].ID,
			Body:   posts[i].FoldedBody,
			Author: posts[i].FoldedAuthor,
		}
	}
	return entries
}
