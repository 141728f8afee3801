package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/popcorn/internal/watchlist"
)

// handleWatchedKey processes keys while the watched list is focused.
func (m Model) handleWatchedKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	count := len(m.snapshot.Watched)

	switch {
	case key.Matches(msg, m.keys.Down):
		if m.watchedCursor < count-1 {
			m.watchedCursor++
		}
	case key.Matches(msg, m.keys.Up):
		if m.watchedCursor > 0 {
			m.watchedCursor--
		}
	case key.Matches(msg, m.keys.Top):
		m.watchedCursor = 0
	case key.Matches(msg, m.keys.Bottom):
		m.watchedCursor = max(count-1, 0)
	case key.Matches(msg, m.keys.Delete):
		if m.watchedCursor >= count {
			return m, nil
		}
		entry := m.snapshot.Watched[m.watchedCursor]
		if err := m.store.DeleteWatched(m.ctx, entry.IMDbID); err != nil {
			m.setStatus("Removed, but could not save the watched list", true)
		} else {
			m.setStatus("Removed "+entry.Title, false)
		}
		return m, m.refresh()
	}
	return m, nil
}

// renderWatched renders the summary followed by the watched list.
func (m Model) renderWatched(width, height int) string {
	focused := m.focus == focusWatched
	bgColor := m.paneBg(focused)
	bg := NewBgStyle(bgColor)
	styles := m.theme.Styles()

	lines := []string{
		bg.Render("MOVIES YOU WATCHED", styles.Text.Bold(true)),
		m.renderSummary(m.snapshot.Summary, bg),
		"",
	}

	if len(m.snapshot.Watched) == 0 {
		lines = append(lines, bg.Render("Rate a movie and press a to add it here", styles.MutedText))
		return strings.Join(lines, "\n")
	}

	rows := (height - len(lines)) / 2
	start, end := visibleWindow(len(m.snapshot.Watched), m.watchedCursor, rows)
	for i := start; i < end; i++ {
		lines = append(lines, m.formatWatchedRow(m.snapshot.Watched[i], width, bgColor, focused && i == m.watchedCursor)...)
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderSummary(s watchlist.Summary, bg BgStyle) string {
	styles := m.theme.Styles()
	parts := []string{
		bg.Render("#️⃣ "+pluralize(s.Count, "movie", "movies"), styles.Text),
		bg.Render("⭐ "+formatRating(s.AvgIMDbRating), styles.StarText),
		bg.Render("🌟 "+formatRating(s.AvgUserRating), styles.StarText),
		bg.Render("⏳ "+formatRuntime(s.AvgRuntime), styles.MutedText),
	}
	return strings.Join(parts, bg.Spaces(3))
}

// formatWatchedRow renders one watched entry. The cursor row shows the
// delete action.
func (m Model) formatWatchedRow(e watchlist.Entry, width int, bgColor string, cursor bool) []string {
	if cursor {
		bgColor = m.theme.SelectionBg
	}
	bg := NewBgStyle(bgColor)
	styles := m.theme.Styles()

	titleStyle, metaStyle, starStyle := styles.Text.Bold(true), styles.MutedText, styles.StarText
	if cursor {
		sel := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.SelectionText))
		titleStyle, metaStyle, starStyle = sel.Bold(true), sel, sel
	}

	title := bg.Render(truncate(e.Title, width-2), titleStyle)
	meta := bg.Spaces(2) +
		bg.Render("⭐ "+fmt.Sprintf("%.1f", e.IMDbRating), starStyle) + bg.Spaces(2) +
		bg.Render(fmt.Sprintf("🌟 %d", e.UserRating), starStyle) + bg.Spaces(2) +
		bg.Render(fmt.Sprintf("⏳ %d min", e.Runtime), metaStyle)
	if cursor {
		meta += bg.Spaces(2) + bg.Render("✕ d", styles.DangerText)
	}
	return []string{bg.FillLine(title, width), bg.FillLine(meta, width)}
}
