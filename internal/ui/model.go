package ui

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/x/ansi"
	"github.com/fsnotify/fsnotify"

	"github.com/kyaoi/keaton/internal/markup"
	"github.com/kyaoi/keaton/internal/search"
	"github.com/kyaoi/keaton/internal/thread"
)

const (
	barLines        = 2
	docHeaderLines  = 2
	minContentWidth = 20
	minListWidth    = 24
	maxListWidth    = 48
	progressWidth   = 10
	reloadDelay     = 150 * time.Millisecond
)

// Model implements the Bubble Tea program for the thread viewer.
type Model struct {
	listVP      viewport.Model
	contentVP   viewport.Model
	listVisible bool
	listFocus   bool
	showHelp    bool
	helpContent string
	pendingKey  string
	ready       bool
	width       int
	height      int
	err         error

	threadName string
	threadKey  string
	message    string
	posts      []thread.Post
	previews   []string
	badges     []badge
	progress   []int
	visible    []int
	selected   int

	doc     markup.Document
	docPost int
	layout  docLayout
	reveal  bool

	theme Theme
	st    styles

	filterInput  textinput.Model
	filterActive bool
	filterQuery  string
	filterEmpty  bool
	filterDeb    *Debouncer

	searchInput  textinput.Model
	searchActive bool
	nav          *search.Navigator
	searchDeb    *Debouncer

	filterDelay   time.Duration
	searchDelay   time.Duration
	previewLength int

	prefs  Preferences
	reload ReloadFunc

	watcher          *fsnotify.Watcher
	watchDir         string
	watchedFile      string
	watchChan        chan tea.Msg
	reloadDeb        *Debouncer
	initialWatchPath string
}

type fileEventMsg struct {
	path string
	op   fsnotify.Op
}

type fileWatchErrMsg struct {
	err error
}

// NewModel constructs the viewer model with the provided initial state.
func NewModel(state State) *Model {
	contentVP := viewport.New(0, 0)
	contentVP.Style = lipgloss.NewStyle().Padding(0, 1)

	listVP := viewport.New(0, 0)
	listVP.MouseWheelEnabled = false

	m := &Model{
		listVP:        listVP,
		contentVP:     contentVP,
		listVisible:   true,
		listFocus:     true,
		threadName:    state.ThreadName,
		threadKey:     state.ThreadKey,
		message:       state.Message,
		docPost:       -1,
		filterDeb:     NewDebouncer("filter"),
		searchDeb:     NewDebouncer("search"),
		reloadDeb:     NewDebouncer("reload"),
		nav:           search.NewNavigator(),
		filterDelay:   state.FilterDebounce,
		searchDelay:   state.SearchDebounce,
		previewLength: state.PreviewLength,
		prefs:         state.Prefs,
		reload:        state.Reload,
	}
	m.setTheme(ThemeByName(state.Theme))

	filterInput := textinput.New()
	filterInput.Prompt = "/"
	filterInput.CharLimit = 256
	filterInput.Placeholder = "filter posts"
	filterInput.Blur()
	m.filterInput = filterInput

	searchInput := textinput.New()
	searchInput.Prompt = "find: "
	searchInput.CharLimit = 256
	searchInput.Placeholder = "search this post"
	searchInput.Blur()
	m.searchInput = searchInput

	if state.Reload != nil && state.SourcePath != "" {
		m.initialWatchPath = state.SourcePath
	}

	m.setPosts(state.Posts)
	m.filterQuery = strings.TrimSpace(state.FilterQuery)
	m.filterInput.SetValue(m.filterQuery)
	m.visible = search.Filter(m.posts, m.filterQuery)
	m.filterEmpty = len(m.visible) == 0 && m.filterQuery != ""
	if m.filterQuery != "" {
		m.searchInput.SetValue(m.filterQuery)
		m.nav.Search("", search.Compile(m.filterQuery))
	}
	m.selected = 0
	if state.HasInitialPost {
		m.selectPostID(state.InitialPostID)
	}
	m.showPost()

	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{tea.SetWindowTitle("keaton: " + m.threadName)}
	if m.initialWatchPath != "" {
		path := m.initialWatchPath
		m.initialWatchPath = ""
		cmds = append(cmds, m.startWatching(path))
	}
	return tea.Batch(cmds...)
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.showHelp {
		overlay := m.st.help.Render(m.helpContent)
		if m.width > 0 && m.height > 0 {
			return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, overlay)
		}
		return overlay
	}

	body := m.contentVP.View()
	if m.listVisible {
		body = lipgloss.JoinHorizontal(lipgloss.Top, m.listVP.View(), body)
	}
	return lipgloss.JoinVertical(lipgloss.Left, body, m.barLine(), m.statusLine())
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case debounceMsg:
		switch {
		case m.filterDeb.Fire(msg):
			m.applyFilter(m.filterInput.Value())
		case m.searchDeb.Fire(msg):
			m.runSearch(m.searchInput.Value())
		case m.reloadDeb.Fire(msg):
			m.reloadThread()
		}
		return m, nil
	case fileEventMsg:
		return m, m.handleFileEvent(msg)
	case fileWatchErrMsg:
		m.err = msg.err
		return m, m.waitForFileEvent()
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		if m.filterActive {
			return m, m.updateFilterInput(msg)
		}
		if m.searchActive {
			return m, m.updateSearchInput(msg)
		}

		key := msg.String()
		if key != "g" {
			m.pendingKey = ""
		}

		if m.showHelp {
			switch key {
			case "q", "?", "esc":
				m.showHelp = false
			}
			return m, nil
		}

		switch key {
		case "q", "ctrl+c":
			m.closeWatcher()
			return m, tea.Quit
		case "?":
			m.showHelp = true
			return m, nil
		case "ctrl+h":
			if m.listVisible {
				m.focusList()
			}
			return m, nil
		case "ctrl+l":
			m.blurList()
			return m, nil
		case "tab":
			if m.listFocus || !m.listVisible {
				m.blurList()
			} else {
				m.focusList()
			}
			return m, nil
		case "t":
			m.listVisible = !m.listVisible
			if !m.listVisible {
				m.blurList()
			}
			m.resize(m.width, m.height)
			return m, nil
		case "T":
			m.cycleTheme()
			return m, nil
		case "s":
			m.reveal = !m.reveal
			m.relayout(false)
			return m, nil
		case "/":
			return m, m.enterFilterMode()
		case "ctrl+f":
			return m, m.enterSearchMode()
		case "n":
			m.nextMatch()
			return m, nil
		case "N":
			m.previousMatch()
			return m, nil
		case "esc":
			m.clearSearch()
			return m, nil
		case "]":
			m.moveSelection(1)
			return m, nil
		case "[":
			m.moveSelection(-1)
			return m, nil
		}

		if m.listFocus && m.listVisible {
			m.handleListKey(key)
			return m, nil
		}
		if m.handleContentKey(key) {
			return m, nil
		}

		var cmd tea.Cmd
		m.contentVP, cmd = m.contentVP.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.contentVP, cmd = m.contentVP.Update(msg)
	return m, cmd
}

func (m *Model) handleContentKey(key string) bool {
	switch key {
	case "j", "down":
		m.contentVP.ScrollDown(1)
	case "k", "up":
		m.contentVP.ScrollUp(1)
	case "ctrl+d":
		m.contentVP.HalfPageDown()
	case "ctrl+u":
		m.contentVP.HalfPageUp()
	case "g":
		if m.pendingKey == "g" {
			m.contentVP.GotoTop()
			m.pendingKey = ""
		} else {
			m.pendingKey = "g"
		}
		return true
	case "G":
		m.contentVP.GotoBottom()
	default:
		return false
	}
	m.pendingKey = ""
	return true
}

func (m *Model) handleListKey(key string) {
	switch key {
	case "j", "down":
		m.moveSelection(1)
	case "k", "up":
		m.moveSelection(-1)
	case "ctrl+d":
		m.moveSelection(max(1, m.listVP.Height/rowHeight/2))
	case "ctrl+u":
		m.moveSelection(-max(1, m.listVP.Height/rowHeight/2))
	case "enter", "l", "right":
		m.blurList()
	case "g":
		if m.pendingKey == "g" {
			m.pendingKey = ""
			m.moveSelection(-len(m.visible))
		} else {
			m.pendingKey = "g"
		}
	case "G":
		m.moveSelection(len(m.visible))
	}
}

func (m *Model) updateFilterInput(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyEnter:
		m.filterDeb.RunNow()
		query := m.filterInput.Value()
		m.exitFilterMode()
		m.applyFilter(query)
		m.searchInput.SetValue(strings.TrimSpace(query))
		m.runSearch(query)
		return nil
	case tea.KeyEsc, tea.KeyCtrlC:
		m.filterDeb.Cancel()
		m.exitFilterMode()
		return nil
	}
	before := m.filterInput.Value()
	var cmd tea.Cmd
	m.filterInput, cmd = m.filterInput.Update(msg)
	if m.filterInput.Value() == before {
		return cmd
	}
	return tea.Batch(cmd, m.filterDeb.Schedule(m.filterDelay))
}

func (m *Model) updateSearchInput(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyEnter:
		if m.searchDeb.RunNow() || m.nav.Pattern().Query() != strings.TrimSpace(m.searchInput.Value()) {
			m.runSearch(m.searchInput.Value())
			return nil
		}
		m.nextMatch()
		return nil
	case tea.KeyEsc, tea.KeyCtrlC, tea.KeyCtrlF:
		m.exitSearchMode()
		return nil
	}
	before := m.searchInput.Value()
	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	if m.searchInput.Value() == before {
		return cmd
	}
	return tea.Batch(cmd, m.searchDeb.Schedule(m.searchDelay))
}

func (m *Model) resize(width, height int) {
	if width <= 0 || height <= barLines {
		return
	}

	m.width = width
	m.height = height
	m.ready = true

	listWidth := m.listWidth(width)
	contentWidth := max(width-listWidth, minContentWidth)
	contentHeight := max(height-barLines, 1)

	m.contentVP.Width = contentWidth
	m.contentVP.Height = contentHeight
	m.listVP.Width = listWidth
	m.listVP.Height = contentHeight
	m.updateListStyle()

	m.renderHelp()
	m.renderList()
	m.relayout(false)
}

func (m *Model) listWidth(total int) int {
	if !m.listVisible {
		return 0
	}
	width := clamp(total/3, minListWidth, maxListWidth)
	if total-width < minContentWidth {
		width = max(total-minContentWidth, 0)
	}
	return width
}

func (m *Model) setTheme(th Theme) {
	m.theme = th
	m.st = newStyles(th)
	m.updateListStyle()
}

func (m *Model) cycleTheme() {
	m.setTheme(NextTheme(m.theme.Name))
	if m.prefs != nil {
		if err := m.prefs.SetTheme(m.theme.Name); err != nil {
			log.Warn("saving theme", "theme", m.theme.Name, "err", err)
		}
	}
	m.renderHelp()
	m.renderList()
	m.relayout(false)
}

func (m *Model) updateListStyle() {
	color := m.st.listBorder
	if m.listFocus {
		color = m.st.focusBorder
	}
	m.listVP.Style = lipgloss.NewStyle().
		Padding(0, 1).
		BorderStyle(lipgloss.NormalBorder()).
		BorderRight(true).
		BorderForeground(color)
}

func (m *Model) focusList() {
	m.listFocus = true
	m.updateListStyle()
	m.renderList()
}

func (m *Model) blurList() {
	m.listFocus = false
	m.updateListStyle()
	m.renderList()
}

// setPosts replaces the thread contents and everything derived from it.
func (m *Model) setPosts(posts []thread.Post) {
	m.posts = posts
	m.previews = make([]string, len(posts))
	m.badges = make([]badge, len(posts))
	m.progress = make([]int, len(posts))
	total := 0
	for i := range posts {
		m.previews[i] = markup.Preview(posts[i].Body, m.previewLength)
		m.badges[i], _ = postBadge(posts[i])
		total += len(posts[i].FoldedBody)
		m.progress[i] = total
	}
}

func (m *Model) currentPost() (int, bool) {
	if m.selected < 0 || m.selected >= len(m.visible) {
		return -1, false
	}
	return m.visible[m.selected], true
}

func (m *Model) selectPostID(id int64) bool {
	for i, idx := range m.visible {
		if m.posts[idx].ID == id {
			m.selected = i
			return true
		}
	}
	return false
}

func (m *Model) moveSelection(delta int) {
	if len(m.visible) == 0 {
		return
	}
	next := clamp(m.selected+delta, 0, len(m.visible)-1)
	if next == m.selected {
		return
	}
	m.selected = next
	m.showPost()
}

// showPost renders the selected post, re-runs the in-post search on it and
// records the position.
func (m *Model) showPost() {
	idx, ok := m.currentPost()
	if !ok {
		m.doc = markup.Document{}
		m.docPost = -1
		m.nav.Search("", m.nav.Pattern())
		m.renderList()
		m.relayout(true)
		return
	}
	changed := idx != m.docPost
	m.docPost = idx
	m.doc = markup.Render(m.posts[idx].Body)
	m.nav.Search(m.doc.Text, m.nav.Pattern())
	if changed {
		m.reveal = false
		m.savePosition(m.posts[idx])
	}
	m.renderList()
	m.relayout(changed)
	if m.nav.Active() {
		if _, ok := m.nav.Next(true); ok {
			m.relayout(false)
			m.gotoMatch()
		}
	}
}

func (m *Model) savePosition(p thread.Post) {
	if m.prefs == nil || m.threadKey == "" {
		return
	}
	if err := m.prefs.SetPosition(m.threadKey, p.ID); err != nil {
		log.Warn("saving position", "thread", m.threadKey, "post", p.ID, "err", err)
	}
}

func (m *Model) renderList() {
	if len(m.visible) == 0 {
		m.listVP.SetContent(m.st.muted.Render("no posts"))
		return
	}
	width := m.listVP.Width - m.listVP.Style.GetHorizontalFrameSize()
	if width <= 0 {
		width = minListWidth
	}
	rows := make([]string, len(m.visible))
	for i, idx := range m.visible {
		rows[i] = postRow(m.posts[idx], m.previews[idx], m.badges[idx], width, i == m.selected, m.st)
	}
	m.listVP.SetContent(strings.Join(rows, "\n"))
	m.ensureSelectionVisible()
}

func (m *Model) ensureSelectionVisible() {
	if len(m.visible) == 0 || m.listVP.Height == 0 {
		return
	}
	top := m.selected * rowHeight
	bottom := top + rowHeight - 1
	if top < m.listVP.YOffset {
		m.listVP.SetYOffset(top)
		return
	}
	if bottom > m.listVP.YOffset+m.listVP.Height-1 {
		m.listVP.SetYOffset(bottom - m.listVP.Height + 1)
	}
}

// relayout redraws the document pane. top scrolls back to the start.
func (m *Model) relayout(top bool) {
	width := m.contentVP.Width - m.contentVP.Style.GetHorizontalFrameSize()
	if width < 0 {
		width = 0
	}

	idx, ok := m.currentPost()
	if !ok {
		msg := m.message
		switch {
		case m.filterEmpty:
			msg = fmt.Sprintf("No post matches %q.", m.filterQuery)
		case msg == "":
			msg = "This thread has no posts."
		}
		m.layout = docLayout{}
		m.contentVP.SetContent(m.st.muted.Render(wrap(msg, width)))
		return
	}

	m.layout = layoutDocument(m.doc, m.nav.Matches(), m.nav.Current(), width, m.st, m.reveal)
	p := m.posts[idx]
	header := lipgloss.NewStyle().Bold(true).Foreground(AuthorColor(p.Author)).Render(p.Author) +
		"  " + m.st.date.Render(fmt.Sprintf("%s  #%d", p.Date(), p.ID))
	m.contentVP.SetContent(truncateStyled(header, width) + "\n\n" + m.layout.content)
	if top {
		m.contentVP.GotoTop()
	}
}

func (m *Model) enterFilterMode() tea.Cmd {
	m.filterActive = true
	m.pendingKey = ""
	m.filterInput.SetValue(m.filterQuery)
	m.filterInput.CursorEnd()
	return m.filterInput.Focus()
}

func (m *Model) exitFilterMode() {
	m.filterActive = false
	m.filterInput.Blur()
}

// applyFilter narrows the list to the posts matching query, keeping the
// selected post when it survives.
func (m *Model) applyFilter(query string) {
	query = strings.TrimSpace(query)
	var keep int64
	idx, had := m.currentPost()
	if had {
		keep = m.posts[idx].ID
	}
	m.filterQuery = query
	m.visible = search.Filter(m.posts, query)
	m.filterEmpty = len(m.visible) == 0 && query != ""
	if !had || !m.selectPostID(keep) {
		m.selected = 0
	}
	log.Debug("filter applied", "query", query, "visible", len(m.visible))
	m.showPost()
}

func (m *Model) enterSearchMode() tea.Cmd {
	m.searchActive = true
	m.pendingKey = ""
	m.searchInput.CursorEnd()
	return m.searchInput.Focus()
}

func (m *Model) exitSearchMode() {
	m.searchActive = false
	m.searchInput.Blur()
}

// runSearch searches the current document and moves to the first match.
func (m *Model) runSearch(query string) {
	m.nav.Search(m.doc.Text, search.Compile(strings.TrimSpace(query)))
	if _, ok := m.nav.Next(true); ok {
		m.relayout(false)
		m.gotoMatch()
		return
	}
	m.relayout(false)
}

func (m *Model) clearSearch() {
	m.searchDeb.Cancel()
	m.nav.Reset()
	m.searchInput.SetValue("")
	m.relayout(false)
}

func (m *Model) nextMatch() {
	if _, ok := m.nav.Next(true); ok {
		m.relayout(false)
		m.gotoMatch()
	}
}

func (m *Model) previousMatch() {
	if _, ok := m.nav.Previous(true); ok {
		m.relayout(false)
		m.gotoMatch()
	}
}

func (m *Model) gotoMatch() {
	cur := m.nav.Current()
	if cur < 0 || cur >= len(m.layout.matchLines) {
		return
	}
	totalLines := m.layout.lines + docHeaderLines
	target := m.layout.matchLines[cur] + docHeaderLines
	maxOffset := max(totalLines-m.contentVP.Height, 0)
	m.contentVP.SetYOffset(clamp(target, 0, maxOffset))
}

func (m *Model) barLine() string {
	width := max(m.width, 1)
	switch {
	case m.filterActive:
		style := m.st.bar
		if m.filterEmpty {
			style = m.st.barError
		}
		return style.Width(width).Render(m.filterInput.View())
	case m.searchActive:
		return m.st.bar.Width(width).Render(m.searchInput.View() + "  " + m.nav.Status())
	case m.err != nil:
		return m.st.errLine.Width(width).Render(truncateStyled(m.err.Error(), width))
	}
	var parts []string
	if m.filterQuery != "" {
		parts = append(parts, fmt.Sprintf("/%s (%d)", m.filterQuery, len(m.visible)))
	}
	if m.nav.Active() {
		parts = append(parts, fmt.Sprintf("find %q (%s)", m.nav.Pattern().Query(), m.nav.Status()))
	}
	if len(parts) == 0 {
		parts = append(parts, "? help")
	}
	style := m.st.status
	if m.filterEmpty {
		style = m.st.barError
	}
	return style.Width(width).Render(truncateStyled(strings.Join(parts, "  "), width-2))
}

func (m *Model) statusLine() string {
	width := max(m.width, 1)
	pos, total := 0, len(m.visible)
	percent := 0.0
	if idx, ok := m.currentPost(); ok {
		pos = m.selected + 1
		percent = m.readingProgress(idx)
	}
	line := fmt.Sprintf("%s  %d/%d  %s %3.0f%%  %s",
		m.threadName, pos, total, m.progressBar(percent), percent*100, m.theme.Name)
	return m.st.status.Width(width).Render(truncateStyled(line, width-2))
}

// readingProgress is the share of folded thread text up to and including the
// post at idx.
func (m *Model) readingProgress(idx int) float64 {
	if len(m.progress) == 0 || idx < 0 || idx >= len(m.progress) {
		return 0
	}
	total := m.progress[len(m.progress)-1]
	if total == 0 {
		return float64(idx+1) / float64(len(m.progress))
	}
	return float64(m.progress[idx]) / float64(total)
}

func (m *Model) progressBar(fraction float64) string {
	filled := clamp(int(fraction*progressWidth+0.5), 0, progressWidth)
	return m.st.progress.Render(strings.Repeat("█", filled)) +
		m.st.muted.Render(strings.Repeat("░", progressWidth-filled))
}

func truncateStyled(s string, width int) string {
	if width <= 0 {
		return ""
	}
	return ansi.Truncate(s, width, "…")
}

func clamp(value, low, high int) int {
	if value < low {
		return low
	}
	if value > high {
		return high
	}
	return value
}

func (m *Model) startWatching(path string) tea.Cmd {
	if path == "" {
		return nil
	}
	path = filepath.Clean(path)
	if err := m.ensureWatcher(); err != nil {
		m.err = err
		return nil
	}

	dir := filepath.Dir(path)
	if dir != m.watchDir {
		if m.watchDir != "" {
			_ = m.watcher.Remove(m.watchDir)
		}
		if err := m.watcher.Add(dir); err != nil {
			m.err = err
			return nil
		}
		m.watchDir = dir
	}

	m.watchedFile = path
	return m.waitForFileEvent()
}

func (m *Model) ensureWatcher() error {
	if m.watcher != nil {
		return nil
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	m.watcher = watcher
	m.watchChan = make(chan tea.Msg, 10)

	go m.watchLoop(watcher, m.watchChan)
	return nil
}

func (m *Model) closeWatcher() {
	if m.watcher != nil {
		_ = m.watcher.Close()
	}
}

func (m *Model) watchLoop(watcher *fsnotify.Watcher, out chan<- tea.Msg) {
	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
				continue
			}
			out <- fileEventMsg{path: event.Name, op: event.Op}
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			out <- fileWatchErrMsg{err: err}
		}
	}
}

func (m *Model) waitForFileEvent() tea.Cmd {
	if m.watchChan == nil {
		return nil
	}
	ch := m.watchChan
	return func() tea.Msg {
		msg, ok := <-ch
		if !ok {
			return nil
		}
		return msg
	}
}

func (m *Model) handleFileEvent(msg fileEventMsg) tea.Cmd {
	if m.watchedFile == "" || filepath.Clean(msg.path) != m.watchedFile {
		return m.waitForFileEvent()
	}
	log.Debug("thread source changed", "path", msg.path, "op", msg.op.String())
	return tea.Batch(m.reloadDeb.Schedule(reloadDelay), m.waitForFileEvent())
}

// reloadThread reads the source again and restores filter, selection and
// search on the new posts.
func (m *Model) reloadThread() {
	if m.reload == nil {
		return
	}
	posts, err := m.reload()
	if err != nil {
		m.err = err
		log.Warn("reloading thread", "thread", m.threadKey, "err", err)
		return
	}
	m.err = nil

	var keep int64
	idx, had := m.currentPost()
	if had {
		keep = m.posts[idx].ID
	}
	offset := m.contentVP.YOffset

	m.setPosts(posts)
	m.visible = search.Filter(m.posts, m.filterQuery)
	m.filterEmpty = len(m.visible) == 0 && m.filterQuery != ""
	if !had || !m.selectPostID(keep) {
		m.selected = clamp(m.selected, 0, max(len(m.visible)-1, 0))
		m.docPost = -1
	}
	m.showPost()
	if had && m.docPost == idx {
		m.contentVP.SetYOffset(offset)
	}
	log.Info("thread reloaded", "thread", m.threadKey, "posts", len(posts))
}
