package ui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/popcorn/internal/watchlist"
)

// handleDetailKey processes rating, add and back keys for the open movie.
func (m Model) handleDetailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		return m, m.selectMovie(m.snapshot.SelectedID)
	case key.Matches(msg, m.keys.Rate):
		m.rating = ratingFromKey(msg.String())
	case key.Matches(msg, m.keys.RateUp):
		m.rating = clamp(m.rating+1, watchlist.MinRating, watchlist.MaxRating)
	case key.Matches(msg, m.keys.RateDown):
		m.rating = clamp(m.rating-1, watchlist.MinRating, watchlist.MaxRating)
	case key.Matches(msg, m.keys.Add):
		return m, m.addSelected()
	}
	return m, nil
}

// ratingFromKey maps 1-9 to themselves and 0 to 10.
func ratingFromKey(k string) int {
	if k == "0" {
		return watchlist.MaxRating
	}
	if len(k) == 1 && k[0] >= '1' && k[0] <= '9' {
		return int(k[0] - '0')
	}
	return 0
}

func (m *Model) addSelected() tea.Cmd {
	d := m.snapshot.Detail
	if d == nil {
		return nil
	}
	if _, watched := m.snapshot.WatchedRating(m.snapshot.SelectedID); watched {
		m.setStatus("Already on your watched list", true)
		return nil
	}
	if m.rating < watchlist.MinRating {
		m.setStatus("Rate the movie first (1-9, 0 for 10)", true)
		return nil
	}

	title := d.Title
	err := m.store.AddSelected(m.ctx, m.rating)
	switch {
	case err == nil:
		m.setStatus("Added "+title, false)
	case errors.Is(err, watchlist.ErrDuplicate):
		m.setStatus("Already on your watched list", true)
	default:
		// Kept in memory; only the save failed.
		m.setStatus("Added, but could not save the watched list", true)
	}
	cmd := m.refresh()
	if m.focus == focusDetail {
		m.focus = focusWatched
	}
	return cmd
}

// renderDetail renders the open movie.
func (m Model) renderDetail(width, height int) string {
	focused := m.focus == focusDetail
	bgColor := m.paneBg(focused)
	bg := NewBgStyle(bgColor)
	styles := m.theme.Styles()

	switch {
	case m.snapshot.DetailLoading:
		return bg.Render(m.spinner.View(), styles.AccentText) + bg.Space() + bg.Render("Loading...", styles.MutedText)
	case m.snapshot.DetailError != "":
		return bg.Render("⛔ "+m.snapshot.DetailError, styles.DangerText)
	case m.snapshot.Detail == nil:
		return ""
	}
	d := m.snapshot.Detail

	wrap := lipgloss.NewStyle().Width(width).Background(lipgloss.Color(bgColor))
	lines := []string{
		bg.Render("← b", styles.FaintText),
		bg.Render(truncate(d.Title, width), styles.Text.Bold(true)),
		bg.Render(orNA(d.Released)+" • "+orNA(d.Runtime), styles.MutedText),
		bg.Render(orNA(d.Genre), styles.MutedText),
		bg.Render("⭐ "+orNA(d.IMDbRating)+" IMDb rating", styles.StarText),
	}
	if d.HasPoster() {
		lines = append(lines, bg.Render(truncate(d.Poster, width), styles.FaintText))
	}
	lines = append(lines, "")

	if r, watched := m.snapshot.WatchedRating(m.snapshot.SelectedID); watched {
		lines = append(lines, bg.Render(fmt.Sprintf("You rated this movie %d ⭐", r), styles.SuccessText))
	} else {
		lines = append(lines, m.renderRatingLine(bg))
		if m.rating > 0 {
			lines = append(lines, bg.Render("press a to add to watched", styles.AccentText))
		}
	}
	lines = append(lines, "")

	for _, text := range []string{
		d.Plot,
		"Starring " + orNA(d.Actors),
		"Directed by " + orNA(d.Director),
	} {
		lines = append(lines, strings.Split(wrap.Render(text), "\n")...)
	}

	if len(lines) > height && height > 0 {
		lines = lines[:height]
	}
	return strings.Join(lines, "\n")
}

// renderRatingLine draws ten stars with the current rating filled in.
func (m Model) renderRatingLine(bg BgStyle) string {
	styles := m.theme.Styles()
	filled := strings.Repeat("★", m.rating)
	empty := strings.Repeat("☆", watchlist.MaxRating-m.rating)
	label := "rate 1-9/0"
	if m.rating > 0 {
		label = fmt.Sprintf("%d/%d", m.rating, watchlist.MaxRating)
	}
	return bg.Render(filled, styles.StarText) + bg.Render(empty, styles.FaintText) + bg.Spaces(2) + bg.Render(label, styles.MutedText)
}
