package search

import (
	"strings"

	"github.com/kyaoi/keaton/internal/fold"
	"github.com/kyaoi/keaton/internal/thread"
)

// Filter returns the indexes of the posts whose folded body or folded author
// contains the folded query. An empty query keeps every post. Posts must have
// been through the normalization cache.
func Filter(posts []thread.Post, query string) []int {
	needle := fold.String(strings.TrimSpace(query))
	visible := make([]int, 0, len(posts))
	for i := range posts {
		if needle == "" ||
			strings.Contains(posts[i].FoldedBody, needle) ||
			strings.Contains(posts[i].FoldedAuthor, needle) {
			visible = append(visible, i)
		}
	}
	return visible
}
