package normcache

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/kyaoi/keaton/internal/fold"
	"github.com/kyaoi/keaton/internal/thread"
)

type memStore struct {
	entries []Entry
	loadErr error
	saveErr error
	saves   int
}

func (m *memStore) Load() ([]Entry, error) {
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	return m.entries, nil
}

func (m *memStore) Save(entries []Entry) error {
	m.saves++
	if m.saveErr != nil {
		return m.saveErr
	}
	m.entries = entries
	return nil
}

func samplePosts() []thread.Post {
	return []thread.Post{
		{ID: 1, Author: "Säbel", Body: "[b]Canción[/b] de CUNA"},
		{ID: 2, Author: "Pali", Body: "Miniactualización: el Ñandú"},
		{ID: 3, Author: "Zafiro Bladen", Body: "plain text"},
	}
}

func TestLoadHitMatchesFreshFold(t *testing.T) {
	posts := samplePosts()
	store := &memStore{}
	if _, err := Load(posts, store); err != nil {
		t.Fatal(err)
	}

	again := samplePosts()
	stats, err := Load(again, store)
	if err != nil {
		t.Fatal(err)
	}
	if !stats.Hit {
		t.Fatal("expected cache hit")
	}
	if store.saves != 1 {
		t.Errorf("saves = %d, want 1", store.saves)
	}
	for _, p := range again {
		if p.FoldedBody != fold.String(p.Body) || p.FoldedAuthor != fold.String(p.Author) {
			t.Errorf("post %d: cached fold %q/%q differs from fresh fold", p.ID, p.FoldedBody, p.FoldedAuthor)
		}
	}
}

func TestLoadChangedIDDiscardsEverything(t *testing.T) {
	store := &memStore{entries: []Entry{
		{PostID: 1, Body: "poisoned", Author: "poisoned"},
		{PostID: 99, Body: "poisoned", Author: "poisoned"},
		{PostID: 3, Body: "poisoned", Author: "poisoned"},
	}}
	posts := samplePosts()
	stats, err := Load(posts, store)
	if err != nil {
		t.Fatal(err)
	}
	if stats.Hit {
		t.Fatal("expected miss for mismatched ids")
	}
	for _, p := range posts {
		if p.FoldedBody == "poisoned" || p.FoldedAuthor == "poisoned" {
			t.Errorf("post %d reused a stale entry", p.ID)
		}
	}
	if diff := cmp.Diff(Fold(samplePosts()), store.entries); diff != "" {
		t.Errorf("store not fully rewritten (-want +got):\n%s", diff)
	}
}

func TestLoadLengthMismatch(t *testing.T) {
	store := &memStore{entries: []Entry{{PostID: 1, Body: "x", Author: "y"}}}
	stats, err := Load(samplePosts(), store)
	if err != nil || stats.Hit {
		t.Errorf("Load() = %+v, %v; want miss without error", stats, err)
	}
	if len(store.entries) != 3 {
		t.Errorf("rewritten entries = %d, want 3", len(store.entries))
	}
}

func TestLoadStoreErrors(t *testing.T) {
	store := &memStore{loadErr: ErrMiss, saveErr: errors.New("disk full")}
	posts := samplePosts()
	_, err := Load(posts, store)
	if !errors.Is(err, ErrPersist) {
		t.Fatalf("err = %v, want ErrPersist", err)
	}
	if posts[0].FoldedBody != "[b]cancion[/b] de cuna" {
		t.Errorf("posts not folded after persist failure: %q", posts[0].FoldedBody)
	}
}

func TestLoadWithoutStore(t *testing.T) {
	posts := samplePosts()
	if _, err := Load(posts, nil); err != nil {
		t.Fatal(err)
	}
	if posts[2].FoldedAuthor != "zafiro bladen" {
		t.Errorf("FoldedAuthor = %q", posts[2].FoldedAuthor)
	}
}

func TestFileStoreRoundTrip(t *testing.T) {
	dir := t.TempDir()
	source := filepath.Join(dir, "1#t.json")
	store := NewFileStore(source, "")
	if store.Path() != source+".cache" {
		t.Errorf("Path() = %q", store.Path())
	}

	if _, err := store.Load(); !errors.Is(err, ErrMiss) {
		t.Fatalf("missing file: err = %v, want ErrMiss", err)
	}

	posts := samplePosts()
	if _, err := Load(posts, store); err != nil {
		t.Fatal(err)
	}
	stats, err := Load(samplePosts(), store)
	if err != nil || !stats.Hit {
		t.Fatalf("second load = %+v, %v; want hit", stats, err)
	}
}

func TestFileStoreCorruption(t *testing.T) {
	dir := t.TempDir()
	store := NewFileStore(filepath.Join(dir, "t.json"), "")
	if err := store.Save(Fold(samplePosts())); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(store.Path())
	if err != nil {
		t.Fatal(err)
	}

	cases := map[string][]byte{
		"truncated":   data[:len(data)-10],
		"bad magic":   append([]byte("garbage\n"), data...),
		"empty":       nil,
		"json only":   []byte(`[{"post_id":1}]`),
		"flipped bit": flip(data, len(data)-20),
	}
	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			if err := os.WriteFile(store.Path(), content, 0o644); err != nil {
				t.Fatal(err)
			}
			if _, err := store.Load(); !errors.Is(err, ErrMiss) {
				t.Errorf("err = %v, want ErrMiss", err)
			}
			stats, err := Load(samplePosts(), store)
			if err != nil || stats.Hit {
				t.Errorf("Load() = %+v, %v; want rebuilt miss", stats, err)
			}
		})
	}
}

func TestFileStoreCacheDir(t *testing.T) {
	cacheDir := filepath.Join(t.TempDir(), "cache")
	a := NewFileStore("/threads/1#a.json", cacheDir)
	b := NewFileStore("/threads/2#b.json", cacheDir)
	if filepath.Dir(a.Path()) != cacheDir {
		t.Errorf("Path() = %q, want inside %q", a.Path(), cacheDir)
	}
	if a.Path() == b.Path() {
		t.Error("different sources share a cache file")
	}
	if err := a.Save(nil); err != nil {
		t.Fatalf("Save into missing dir: %v", err)
	}
	entries, err := a.Load()
	if err != nil || len(entries) != 0 {
		t.Errorf("Load() = %v, %v", entries, err)
	}
}

func flip(data []byte, i int) []byte {
	out := append([]byte(nil), data...)
	out[i] ^= 0xff
	return out
}
