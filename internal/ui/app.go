package ui

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/five82/popcorn/internal/hotkey"
	"github.com/five82/popcorn/internal/logging"
	"github.com/five82/popcorn/internal/omdb"
	"github.com/five82/popcorn/internal/prefs"
	"github.com/five82/popcorn/internal/state"
)

// focus identifies the pane that receives keys.
type focus int

const (
	focusSearch focus = iota
	focusResults
	focusWatched
	focusDetail
)

// Hotkey owners.
const (
	ownerSearch = "search"
	ownerDetail = "detail"
)

// Options configures the UI. Store and Searcher are required.
type Options struct {
	Context   context.Context
	Searcher  omdb.Searcher
	Store     *state.Store
	Prefs     prefs.Prefs
	PrefsPath string
	LogPath   string
	Tick      time.Duration
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx       context.Context
	searcher  omdb.Searcher
	store     *state.Store
	prefsPath string
	logPath   string
	tick      time.Duration

	// UI state
	theme   Theme
	keys    keyMap
	help    help.Model
	hotkeys *hotkey.Dispatcher[*Model]
	width   int
	height  int
	ready   bool
	focus   focus
	title   string

	resultsCollapsed bool
	watchedCollapsed bool

	// Search
	input   textinput.Model
	spinner spinner.Model

	// Data state
	snapshot state.Snapshot

	resultCursor  int
	watchedCursor int
	rating        int

	// Footer status
	status      string
	statusError bool
	statusUntil time.Time

	// Overlays
	showHelp    bool
	showLogs    bool
	logViewport viewport.Model
	logLines    []string
	logLevel    log.Level
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	tick := opts.Tick
	if tick == 0 {
		tick = DefaultUIInterval
	}

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	ti := textinput.New()
	ti.Placeholder = "Search movies..."
	ti.Prompt = "🔍 "
	ti.CharLimit = 100
	ti.Focus()

	m := Model{
		ctx:              ctx,
		searcher:         opts.Searcher,
		store:            opts.Store,
		prefsPath:        prefsPath,
		logPath:          opts.LogPath,
		tick:             tick,
		theme:            GetTheme(opts.Prefs.Theme),
		keys:             DefaultKeyMap(),
		help:             help.New(),
		hotkeys:          hotkey.New[*Model](),
		focus:            focusSearch,
		title:            appTitle,
		resultsCollapsed: opts.Prefs.ResultsCollapsed,
		watchedCollapsed: opts.Prefs.WatchedCollapsed,
		input:            ti,
		spinner:          spinner.New(spinner.WithSpinner(spinner.Dot)),
		logLevel:         log.InfoLevel,
	}
	m.snapshot = m.store.Snapshot()

	// The search box is mounted for the program's lifetime.
	m.hotkeys.Subscribe(ownerSearch, "enter", m.keys.Enter, (*Model).onEnter)
	m.hotkeys.Subscribe(ownerSearch, "blur", m.keys.Escape, (*Model).onSearchEscape)
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		textinput.Blink,
		m.spinner.Tick,
		tickCmd(m.tick),
		tea.SetWindowTitle(appTitle),
	)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.resizeLogViewport()
		m.ready = true
		return m, nil

	case tickMsg:
		if m.status != "" && time.Time(msg).After(m.statusUntil) {
			m.status = ""
		}
		return m, tickCmd(m.tick)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case searchResultMsg:
		if !m.store.ApplySearch(state.SearchResult(msg)) {
			return m, nil
		}
		return m, m.refresh()

	case detailResultMsg:
		if !m.store.ApplyDetail(state.DetailResult(msg)) {
			return m, nil
		}
		return m, m.refresh()

	case logLinesMsg:
		m.handleLogLines(msg)
		return m, nil
	}

	// Cursor blink and other input housekeeping.
	if m.focus == focusSearch {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.showHelp {
		return m.renderHelp()
	}
	if m.showLogs {
		return m.renderLogs()
	}
	return m.renderMain()
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		// Any key closes help
		m.showHelp = false
		return m, nil
	}
	if m.showLogs {
		return m.handleLogsKey(msg)
	}
	if key.Matches(msg, m.keys.ForceQuit) {
		return m, m.quit()
	}

	// Subscribed components get first refusal, newest first.
	if cmd, handled := m.hotkeys.Dispatch(&m, msg); handled {
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.Tab):
		return m, m.cycleFocus(1)
	case key.Matches(msg, m.keys.ShiftTab):
		return m, m.cycleFocus(-1)
	}

	if m.focus == focusSearch {
		return m.handleInputKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, m.quit()
	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil
	case key.Matches(msg, m.keys.Logs):
		m.showLogs = true
		return m, readLogsCmd(m.logPath)
	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		m.savePrefs()
		return m, nil
	case key.Matches(msg, m.keys.ToggleLeft):
		m.resultsCollapsed = !m.resultsCollapsed
		m.savePrefs()
		return m, nil
	case key.Matches(msg, m.keys.ToggleRight):
		m.watchedCollapsed = !m.watchedCollapsed
		m.savePrefs()
		return m, nil
	}

	switch m.focus {
	case focusResults:
		return m.handleResultsKey(msg)
	case focusWatched:
		return m.handleWatchedKey(msg)
	case focusDetail:
		return m.handleDetailKey(msg)
	}
	return m, nil
}

// handleInputKey forwards keys to the search box and issues a search when
// the query text changes.
func (m Model) handleInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() == before {
		return m, cmd
	}
	return m, tea.Batch(cmd, m.setQuery(m.input.Value()))
}

// onEnter: inside the search box, jump to the results; anywhere else, start
// a fresh search.
func (m *Model) onEnter(_ tea.KeyMsg) (tea.Cmd, bool) {
	if m.focus == focusSearch {
		return m.setFocus(focusResults), true
	}
	return m.resetSearch(), true
}

// onSearchEscape leaves the search box. It only fires when no detail view
// claimed the key first.
func (m *Model) onSearchEscape(_ tea.KeyMsg) (tea.Cmd, bool) {
	if m.focus != focusSearch {
		return nil, false
	}
	return m.setFocus(focusResults), true
}

// onDetailEscape is subscribed only while a movie is open.
func (m *Model) onDetailEscape(_ tea.KeyMsg) (tea.Cmd, bool) {
	m.store.Close()
	return m.refresh(), true
}

func (m *Model) setQuery(q string) tea.Cmd {
	req := m.store.SetQuery(m.ctx, q)
	if req != nil {
		m.resultCursor = 0
	}
	return tea.Batch(m.refresh(), searchCmd(req, m.searcher))
}

func (m *Model) resetSearch() tea.Cmd {
	m.input.SetValue("")
	m.store.SetQuery(m.ctx, "")
	m.store.Close()
	focusCmd := m.setFocus(focusSearch)
	return tea.Batch(focusCmd, m.refresh())
}

func (m *Model) selectMovie(id string) tea.Cmd {
	req := m.store.Select(m.ctx, id)
	refresh := m.refresh()
	if req == nil {
		return refresh
	}
	return tea.Batch(refresh, detailCmd(req, m.searcher))
}

func (m *Model) setFocus(f focus) tea.Cmd {
	m.focus = f
	if f == focusSearch {
		return m.input.Focus()
	}
	m.input.Blur()
	return nil
}

// focusOrder lists the panes tab cycles through. The right box shows either
// the open movie or the watched list, never both.
func (m *Model) focusOrder() []focus {
	order := []focus{focusSearch, focusResults}
	if m.snapshot.HasSelection() {
		return append(order, focusDetail)
	}
	return append(order, focusWatched)
}

func (m *Model) cycleFocus(delta int) tea.Cmd {
	order := m.focusOrder()
	idx := 0
	for i, f := range order {
		if f == m.focus {
			idx = i
			break
		}
	}
	idx = (idx + delta + len(order)) % len(order)
	return m.setFocus(order[idx])
}

// refresh re-reads the store and reconciles what depends on the selection:
// the detail hotkeys, the rating being entered and the window title.
func (m *Model) refresh() tea.Cmd {
	prev := m.snapshot
	m.snapshot = m.store.Snapshot()
	m.resultCursor = clamp(m.resultCursor, 0, len(m.snapshot.Movies)-1)
	m.watchedCursor = clamp(m.watchedCursor, 0, len(m.snapshot.Watched)-1)

	var cmds []tea.Cmd
	if m.snapshot.SelectedID != prev.SelectedID {
		m.rating = 0
		if m.snapshot.HasSelection() {
			m.hotkeys.Subscribe(ownerDetail, "close", m.keys.Escape, (*Model).onDetailEscape)
		} else {
			m.hotkeys.UnsubscribeOwner(ownerDetail)
			if m.focus == focusDetail {
				m.focus = focusWatched
			}
		}
		if m.snapshot.Detail == nil {
			cmds = append(cmds, m.setTitle(appTitle))
		}
	}
	if d := m.snapshot.Detail; d != nil && (prev.Detail == nil || prev.SelectedID != m.snapshot.SelectedID) {
		cmds = append(cmds, m.setTitle(movieTitlePrefix+d.Title))
	}
	return tea.Batch(cmds...)
}

func (m *Model) setTitle(title string) tea.Cmd {
	if title == m.title {
		return nil
	}
	m.title = title
	return tea.SetWindowTitle(title)
}

func (m *Model) setStatus(text string, isError bool) {
	m.status = text
	m.statusError = isError
	m.statusUntil = time.Now().Add(StatusTTL)
}

func (m *Model) savePrefs() {
	p := prefs.Prefs{
		Theme:            m.theme.Name,
		ResultsCollapsed: m.resultsCollapsed,
		WatchedCollapsed: m.watchedCollapsed,
	}
	if err := prefs.Save(m.prefsPath, p); err != nil {
		logging.Warn("save prefs failed", "error", err)
		m.setStatus("Could not save preferences", true)
	}
}

func (m *Model) quit() tea.Cmd {
	m.store.Shutdown()
	return tea.Quit
}

// renderMain renders header, the two boxes and the footer.
func (m Model) renderMain() string {
	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderBoxes())
	b.WriteString("\n")
	b.WriteString(m.renderFooter())
	return b.String()
}

// Messages

type tickMsg time.Time

type searchResultMsg state.SearchResult

type detailResultMsg state.DetailResult

// Commands

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func searchCmd(req *state.SearchRequest, s omdb.Searcher) tea.Cmd {
	if req == nil {
		return nil
	}
	return func() tea.Msg {
		return searchResultMsg(req.Do(s))
	}
}

func detailCmd(req *state.DetailRequest, s omdb.Searcher) tea.Cmd {
	if req == nil {
		return nil
	}
	return func() tea.Msg {
		return detailResultMsg(req.Do(s))
	}
}

// Run starts the Bubble Tea program and blocks until it exits or ctx is
// cancelled.
func Run(opts Options) error {
	m := New(opts)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(m.ctx))
	_, err := p.Run()
	m.store.Shutdown()
	if errors.Is(err, tea.ErrProgramKilled) && m.ctx.Err() != nil {
		return nil
	}
	return err
}
