package ui

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/google/go-cmp/cmp"

	"github.com/kyaoi/keaton/internal/normcache"
	"github.com/kyaoi/keaton/internal/thread"
)

type fakePrefs struct {
	theme     string
	positions map[string]int64
	err       error
}

func (f *fakePrefs) SetTheme(name string) error {
	f.theme = name
	return f.err
}

func (f *fakePrefs) SetPosition(thread string, postID int64) error {
	if f.positions == nil {
		f.positions = map[string]int64{}
	}
	f.positions[thread] = postID
	return f.err
}

func testPosts() []thread.Post {
	posts := []thread.Post{
		{ID: 10, Author: "Pali", Body: "[b]Actualización[/b] uno: Link llega a Hyrule", Timestamp: "1700000000"},
		{ID: 11, Author: "Säbel", Body: "Zelda espera. [quote=Pali]Link llega[/quote] Zelda sonríe.", Timestamp: "1700000600"},
		{ID: 12, Author: "Soria", Body: "Nada nuevo por aquí", Timestamp: "1700001200"},
	}
	normcache.Fold(posts)
	return posts
}

func newTestModel(t *testing.T, state State) (*Model, *fakePrefs) {
	t.Helper()
	prefs := &fakePrefs{}
	if state.Posts == nil {
		state.Posts = testPosts()
	}
	state.ThreadName = "Hyrule"
	state.ThreadKey = "1#Hyrule"
	state.Prefs = prefs
	m := NewModel(state)
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	return m, prefs
}

func press(m *Model, keys ...string) {
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		case "ctrl+f":
			msg = tea.KeyMsg{Type: tea.KeyCtrlF}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		m.Update(msg)
	}
}

func typeText(m *Model, s string) {
	for _, r := range s {
		press(m, string(r))
	}
}

func visibleIDs(m *Model) []int64 {
	ids := make([]int64, len(m.visible))
	for i, idx := range m.visible {
		ids[i] = m.posts[idx].ID
	}
	return ids
}

func TestFilterSubmitAppliesImmediately(t *testing.T) {
	m, _ := newTestModel(t, State{})
	press(m, "/")
	typeText(m, "SABEL")
	press(m, "enter")

	if diff := cmp.Diff([]int64{11}, visibleIDs(m)); diff != "" {
		t.Errorf("visible mismatch (-want +got):\n%s", diff)
	}
	if m.filterActive {
		t.Error("filter input still active after Enter")
	}
	if got := m.searchInput.Value(); got != "SABEL" {
		t.Errorf("query not copied into post search: %q", got)
	}
}

func TestFilterDebounceHonoursLatestTick(t *testing.T) {
	m, _ := newTestModel(t, State{})
	press(m, "/")
	typeText(m, "zelda")

	stale := debounceMsg{key: "filter", gen: m.filterDeb.gen - 1}
	m.Update(stale)
	if len(m.visible) != 3 {
		t.Fatalf("stale tick applied the filter: %v", visibleIDs(m))
	}

	m.Update(debounceMsg{key: "filter", gen: m.filterDeb.gen})
	if diff := cmp.Diff([]int64{11}, visibleIDs(m)); diff != "" {
		t.Errorf("visible mismatch (-want +got):\n%s", diff)
	}
}

func TestFilterNoResults(t *testing.T) {
	m, _ := newTestModel(t, State{})
	press(m, "/")
	typeText(m, "ganondorf")
	press(m, "enter")
	if len(m.visible) != 0 || !m.filterEmpty {
		t.Fatalf("visible = %v, filterEmpty = %v", visibleIDs(m), m.filterEmpty)
	}
	if !strings.Contains(ansi.Strip(m.View()), "No post matches") {
		t.Error("empty filter message not shown")
	}

	press(m, "/")
	for range "ganondorf" {
		m.Update(tea.KeyMsg{Type: tea.KeyBackspace})
	}
	press(m, "enter")
	if len(m.visible) != 3 || m.filterEmpty {
		t.Errorf("clearing the filter left %v", visibleIDs(m))
	}
}

func TestPostSearchNavigation(t *testing.T) {
	m, _ := newTestModel(t, State{})
	press(m, "j")
	if id := m.posts[m.docPost].ID; id != 11 {
		t.Fatalf("showing post %d, want 11", id)
	}

	press(m, "ctrl+f")
	typeText(m, "zelda")
	press(m, "enter")
	if got := m.nav.Status(); got != "1/2" {
		t.Errorf("after Enter status = %q, want 1/2", got)
	}
	press(m, "enter")
	if got := m.nav.Status(); got != "2/2" {
		t.Errorf("second Enter status = %q, want 2/2", got)
	}
	press(m, "esc")
	press(m, "n")
	if got := m.nav.Status(); got != "1/2" {
		t.Errorf("n after last status = %q, want wraparound to 1/2", got)
	}
	press(m, "N")
	if got := m.nav.Status(); got != "2/2" {
		t.Errorf("N from first status = %q, want 2/2", got)
	}
	press(m, "esc")
	if m.nav.Active() || m.nav.Status() != "0/0" {
		t.Errorf("esc left search %q active", m.nav.Pattern().Query())
	}
}

func TestSearchFollowsSelection(t *testing.T) {
	m, _ := newTestModel(t, State{})
	press(m, "ctrl+f")
	typeText(m, "link")
	press(m, "enter", "esc")
	if _, total := m.nav.Position(); total != 1 {
		t.Fatalf("matches in first post = %d", total)
	}
	press(m, "j")
	if _, total := m.nav.Position(); total != 1 {
		t.Errorf("matches after moving = %d, want 1 in the quote", total)
	}
	press(m, "j")
	if cur, total := m.nav.Position(); cur != 0 || total != 0 {
		t.Errorf("position in post without matches = %d/%d", cur, total)
	}
}

func TestSelectionPersisted(t *testing.T) {
	m, prefs := newTestModel(t, State{})
	press(m, "j", "j", "j")
	if got := prefs.positions["1#Hyrule"]; got != 12 {
		t.Errorf("saved position = %d, want 12", got)
	}
	press(m, "g", "g")
	if got := prefs.positions["1#Hyrule"]; got != 10 {
		t.Errorf("saved position after gg = %d, want 10", got)
	}
}

func TestInitialPostRestored(t *testing.T) {
	m, _ := newTestModel(t, State{InitialPostID: 12, HasInitialPost: true})
	if idx, _ := m.currentPost(); m.posts[idx].ID != 12 {
		t.Errorf("selected post %d, want 12", m.posts[idx].ID)
	}

	m, _ = newTestModel(t, State{InitialPostID: 99, HasInitialPost: true})
	if idx, _ := m.currentPost(); m.posts[idx].ID != 10 {
		t.Errorf("unknown saved id selected %d, want first post", m.posts[idx].ID)
	}
}

func TestThemeCyclePersisted(t *testing.T) {
	m, prefs := newTestModel(t, State{Theme: "parchment"})
	press(m, "T")
	if m.theme.Name != "zelda" || prefs.theme != "zelda" {
		t.Errorf("theme = %q, saved %q", m.theme.Name, prefs.theme)
	}
	prefs.err = errors.New("disk full")
	press(m, "T")
	if m.theme.Name != "dark" {
		t.Errorf("theme after failed save = %q", m.theme.Name)
	}
}

func TestReadingProgress(t *testing.T) {
	m, _ := newTestModel(t, State{})
	last := len(m.posts) - 1
	if got := m.readingProgress(last); got != 1 {
		t.Errorf("progress at last post = %v", got)
	}
	first := m.readingProgress(0)
	if first <= 0 || first >= 1 {
		t.Errorf("progress at first post = %v", first)
	}
	if m.readingProgress(-1) != 0 {
		t.Error("progress without a post should be 0")
	}
}

func TestReloadKeepsSelection(t *testing.T) {
	posts := testPosts()
	reloaded := append(testPosts(), thread.Post{ID: 13, Author: "Legend", Body: "Nuevo"})
	normcache.Fold(reloaded)
	calls := 0
	m, _ := newTestModel(t, State{
		Posts:  posts,
		Reload: func() ([]thread.Post, error) { calls++; return reloaded, nil },
	})
	press(m, "j")

	m.Update(m.reloadDeb.Schedule(0)())
	if calls != 1 {
		t.Fatalf("reload called %d times", calls)
	}
	if len(m.posts) != 4 {
		t.Errorf("posts after reload = %d", len(m.posts))
	}
	if idx, _ := m.currentPost(); m.posts[idx].ID != 11 {
		t.Errorf("selection moved to %d", m.posts[idx].ID)
	}
}

func TestReloadErrorShown(t *testing.T) {
	m, _ := newTestModel(t, State{
		Reload: func() ([]thread.Post, error) { return nil, errors.New("source vanished") },
	})
	m.Update(m.reloadDeb.Schedule(0)())
	if !strings.Contains(ansi.Strip(m.View()), "source vanished") {
		t.Error("reload error not shown")
	}
	if len(m.posts) != 3 {
		t.Error("failed reload dropped the posts")
	}
}

func TestEmptyThread(t *testing.T) {
	m, _ := newTestModel(t, State{Posts: []thread.Post{}, Message: "Thread file not found."})
	view := ansi.Strip(m.View())
	if !strings.Contains(view, "Thread file not found.") {
		t.Errorf("view lacks empty state message:\n%s", view)
	}
	press(m, "j", "n", "N", "/")
	typeText(m, "x")
	press(m, "enter")
}

func TestViewShowsStatus(t *testing.T) {
	m, _ := newTestModel(t, State{})
	view := ansi.Strip(m.View())
	for _, want := range []string{"Hyrule", "1/3", "Pali", "Actualización uno"} {
		if !strings.Contains(view, want) {
			t.Errorf("view lacks %q", want)
		}
	}
	press(m, "?")
	if !m.showHelp || m.helpContent == "" {
		t.Error("help overlay not shown")
	}
	press(m, "?")
	if m.showHelp {
		t.Error("help overlay not closed")
	}
}
