package ui

import (
	"time"

	"github.com/kyaoi/keaton/internal/thread"
)

// Preferences receives the choices the viewer persists.
type Preferences interface {
	SetTheme(name string) error
	SetPosition(thread string, postID int64) error
}

// ReloadFunc reads the thread source again and returns posts with their
// folded fields filled.
type ReloadFunc func() ([]thread.Post, error)

// State contains the data required to bootstrap the Bubble Tea model.
type State struct {
	ThreadName string
	// ThreadKey identifies the thread in Preferences.
	ThreadKey string
	// SourcePath is watched for changes when Reload is set.
	SourcePath string
	Posts      []thread.Post
	// Message replaces the document pane when there are no posts.
	Message string

	Theme          string
	InitialPostID  int64
	HasInitialPost bool
	FilterQuery    string

	FilterDebounce time.Duration
	SearchDebounce time.Duration
	PreviewLength  int

	Reload ReloadFunc
	Prefs  Preferences
}
