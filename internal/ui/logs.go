package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/five82/popcorn/internal/logtail"
)

// logLinesMsg carries the tail of the log file.
type logLinesMsg struct {
	lines []string
	err   error
}

// logLevels is the cycle for the overlay's minimum level.
var logLevels = []log.Level{log.DebugLevel, log.InfoLevel, log.WarnLevel, log.ErrorLevel}

func readLogsCmd(path string) tea.Cmd {
	return func() tea.Msg {
		if strings.TrimSpace(path) == "" {
			return logLinesMsg{}
		}
		lines, err := logtail.Read(path, LogOverlayLines)
		return logLinesMsg{lines: lines, err: err}
	}
}

func (m *Model) resizeLogViewport() {
	w, h := max(m.width-4, 1), max(m.height-4, 1)
	if m.logViewport.Width == 0 {
		m.logViewport = viewport.New(w, h)
	}
	m.logViewport.Width = w
	m.logViewport.Height = h
	m.updateLogViewport()
}

func (m *Model) handleLogLines(msg logLinesMsg) {
	if msg.err != nil {
		m.logLines = []string{"could not read log: " + msg.err.Error()}
	} else {
		m.logLines = msg.lines
	}
	m.updateLogViewport()
	m.logViewport.GotoBottom()
}

func (m *Model) updateLogViewport() {
	if m.logViewport.Width == 0 {
		return
	}
	styles := m.theme.Styles()
	bg := NewBgStyle(m.theme.FocusBg)
	m.logViewport.Style = lipgloss.NewStyle().Background(lipgloss.Color(m.theme.FocusBg))

	lines := logtail.Filter(m.logLines, m.logLevel)
	if len(lines) == 0 {
		m.logViewport.SetContent(bg.Render("No log lines at this level", styles.MutedText))
		return
	}
	rendered := make([]string, len(lines))
	for i, line := range lines {
		rendered[i] = bg.Render(line, m.levelStyle(line, styles))
	}
	m.logViewport.SetContent(strings.Join(rendered, "\n"))
}

// levelStyle colors a whole line by its level.
func (m *Model) levelStyle(line string, styles Styles) lipgloss.Style {
	lvl, ok := logtail.LevelOf(line)
	if !ok {
		return styles.Text
	}
	switch {
	case lvl >= log.ErrorLevel:
		return styles.DangerText
	case lvl >= log.WarnLevel:
		return styles.WarningText
	case lvl >= log.InfoLevel:
		return styles.Text
	default:
		return styles.FaintText
	}
}

// handleLogsKey processes keys while the log overlay is open.
func (m Model) handleLogsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.ForceQuit):
		return m, m.quit()
	case key.Matches(msg, m.keys.Escape), key.Matches(msg, m.keys.Logs), key.Matches(msg, m.keys.Quit):
		m.showLogs = false
		return m, nil
	case key.Matches(msg, m.keys.CycleLevel):
		m.logLevel = nextLogLevel(m.logLevel)
		m.updateLogViewport()
		m.logViewport.GotoBottom()
		return m, nil
	case key.Matches(msg, m.keys.Top):
		m.logViewport.GotoTop()
		return m, nil
	case key.Matches(msg, m.keys.Bottom):
		m.logViewport.GotoBottom()
		return m, nil
	}
	var cmd tea.Cmd
	m.logViewport, cmd = m.logViewport.Update(msg)
	return m, cmd
}

func nextLogLevel(current log.Level) log.Level {
	for i, lvl := range logLevels {
		if lvl == current {
			return logLevels[(i+1)%len(logLevels)]
		}
	}
	return log.InfoLevel
}

// renderLogs renders the log overlay over the whole screen.
func (m Model) renderLogs() string {
	styles := m.theme.Styles()
	bg := NewBgStyle(m.theme.Surface)

	title := "Log ≥ " + strings.ToUpper(m.logLevel.String())
	box := m.renderTitledBox(title, m.logViewport.View(), m.width, m.height-1, true, false)

	hint := bg.Render("f level  g/G top/bottom  esc close", styles.MutedText)
	return box + "\n" + styles.Footer.Width(m.width).Render(hint)
}
