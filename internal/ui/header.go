package ui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

// renderHeader renders the logo, the search box and the result count.
func (m Model) renderHeader() string {
	styles := m.theme.Styles()
	bg := NewBgStyle(m.theme.Surface)
	sep := bg.Spaces(3)

	logo := bg.Render("🍿 usePopcorn", styles.Logo)

	count := bg.Render("Found", styles.MutedText) + bg.Space() +
		bg.Render(fmt.Sprintf("%d", len(m.snapshot.Movies)), styles.Text.Bold(true)) + bg.Space() +
		bg.Render("results", styles.MutedText)

	// Whatever width is left goes to the search box.
	inputWidth := m.width - lipgloss.Width(logo) - lipgloss.Width(count) - 2*lipgloss.Width(sep) - 2
	input := m.input
	input.Width = max(inputWidth-lipgloss.Width(input.Prompt)-1, 10)
	inputStyle := lipgloss.NewStyle().Background(lipgloss.Color(m.theme.Surface))
	if m.focus == focusSearch {
		inputStyle = inputStyle.Foreground(lipgloss.Color(m.theme.Accent))
	}
	search := inputStyle.Render(input.View())

	return styles.Header.Width(m.width).Render(logo + sep + search + sep + count)
}

// renderFooter renders the transient status message and the short key help.
func (m Model) renderFooter() string {
	styles := m.theme.Styles()
	bg := NewBgStyle(m.theme.Surface)

	var left string
	switch {
	case m.status != "" && m.statusError:
		left = bg.Render(m.status, styles.DangerText)
	case m.status != "":
		left = bg.Render(m.status, styles.SuccessText)
	case m.snapshot.LastSaveError != nil:
		left = bg.Render("⚠ watched list not saved", styles.WarningText)
	}

	helpView := m.help.ShortHelpView(m.keys.ShortHelp())
	line := helpView
	if left != "" {
		line = left + bg.Spaces(3) + helpView
	}
	return styles.Footer.Width(m.width).Render(line)
}
