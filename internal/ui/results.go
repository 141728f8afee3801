package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/popcorn/internal/omdb"
)

// handleResultsKey processes keys while the results box is focused.
func (m Model) handleResultsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	count := len(m.snapshot.Movies)

	switch {
	case key.Matches(msg, m.keys.Down):
		if m.resultCursor < count-1 {
			m.resultCursor++
		}
	case key.Matches(msg, m.keys.Up):
		if m.resultCursor > 0 {
			m.resultCursor--
		}
	case key.Matches(msg, m.keys.Top):
		m.resultCursor = 0
	case key.Matches(msg, m.keys.Bottom):
		m.resultCursor = max(count-1, 0)
	case key.Matches(msg, m.keys.Select):
		if movie := m.cursorMovie(); movie != nil {
			return m, m.selectMovie(movie.IMDbID)
		}
	default:
		// Rating keys reach the open movie from the results box too.
		if m.snapshot.HasSelection() {
			return m.handleDetailKey(msg)
		}
	}
	return m, nil
}

func (m Model) cursorMovie() *omdb.Movie {
	if m.resultCursor < 0 || m.resultCursor >= len(m.snapshot.Movies) {
		return nil
	}
	movie := m.snapshot.Movies[m.resultCursor]
	return &movie
}

// renderResults renders the left box: spinner, error or the result list.
func (m Model) renderResults(width, height int) string {
	focused := m.focus == focusResults
	bgColor := m.paneBg(focused)
	bg := NewBgStyle(bgColor)
	styles := m.theme.Styles()

	switch {
	case m.snapshot.Loading:
		return bg.Render(m.spinner.View(), styles.AccentText) + bg.Space() + bg.Render("Loading...", styles.MutedText)
	case m.snapshot.Error != "":
		return bg.Render("⛔ "+m.snapshot.Error, styles.DangerText)
	case len(m.snapshot.Movies) == 0:
		if strings.TrimSpace(m.snapshot.Query) == "" {
			return bg.Render("Type in the search box to find movies", styles.MutedText)
		}
		return ""
	}

	// Two lines per movie: title, then year.
	start, end := visibleWindow(len(m.snapshot.Movies), m.resultCursor, height/2)
	lines := make([]string, 0, (end-start)*2)
	for i := start; i < end; i++ {
		movie := m.snapshot.Movies[i]
		lines = append(lines, m.formatMovieRow(movie, width, bgColor, i == m.resultCursor && focused)...)
	}
	return strings.Join(lines, "\n")
}

// formatMovieRow renders one result. The open movie is marked with ▶.
func (m Model) formatMovieRow(movie omdb.Movie, width int, bgColor string, cursor bool) []string {
	if cursor {
		bgColor = m.theme.SelectionBg
	}
	bg := NewBgStyle(bgColor)
	styles := m.theme.Styles()

	titleStyle, metaStyle, markStyle := styles.Text.Bold(true), styles.MutedText, styles.AccentText
	if cursor {
		sel := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.SelectionText))
		titleStyle, metaStyle, markStyle = sel.Bold(true), sel, sel
	}

	mark := "  "
	if movie.IMDbID == m.snapshot.SelectedID {
		mark = "▶ "
	}

	title := bg.Render(mark, markStyle) + bg.Render(truncate(movie.Title, width-3), titleStyle)
	year := bg.Spaces(2) + bg.Render("🗓 "+orNA(movie.Year), metaStyle)
	return []string{bg.FillLine(title, width), bg.FillLine(year, width)}
}
