// Package thread models an archived discussion thread and reads it from the
// supported on-disk sources.
package thread

import (
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// DateLayout is how post timestamps are shown in lists.
const DateLayout = "02-Jan-2006 15:04"

// Post is a single message of a thread. Everything except the folded fields
// comes from the source; FoldedBody and FoldedAuthor are filled in by the
// normalization cache while the thread is loaded and never change afterwards.
type Post struct {
	ID        int64
	ThreadID  int64
	Author    string
	Body      string
	Timestamp string

	FoldedBody   string
	FoldedAuthor string
}

// Date formats the timestamp when it holds unix seconds and returns it
// unchanged otherwise.
func (p Post) Date() string {
	secs, err := strconv.ParseInt(strings.TrimSpace(p.Timestamp), 10, 64)
	if err != nil {
		return p.Timestamp
	}
	return time.Unix(secs, 0).Format(DateLayout)
}

// Thread is the ordered post list read from one source file.
type Thread struct {
	// Source is the absolute path of the file the posts came from. It is the
	// identity used to key side files such as the normalization cache.
	Source string
	Name   string
	ID     int64
	Posts  []Post
}

// IndexOf returns the position of the post with the given id, or -1.
func (t *Thread) IndexOf(postID int64) int {
	if t == nil {
		return -1
	}
	for i, p := range t.Posts {
		if p.ID == postID {
			return i
		}
	}
	return -1
}

// FirstID returns the id of the first post, or 0 for an empty thread.
func (t *Thread) FirstID() int64 {
	if t == nil || len(t.Posts) == 0 {
		return 0
	}
	return t.Posts[0].ID
}

// DisplayName derives a human name from a thread file name by dropping the
// directory, the extension and a leading "<id>#" prefix.
func DisplayName(path string) string {
	base := filepath.Base(path)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	if _, name, ok := splitID(base); ok {
		return name
	}
	return base
}

func splitID(base string) (int64, string, bool) {
	prefix, name, found := strings.Cut(base, "#")
	if !found {
		return 0, base, false
	}
	id, err := strconv.ParseInt(prefix, 10, 64)
	if err != nil {
		return 0, base, false
	}
	return id, name, true
}
