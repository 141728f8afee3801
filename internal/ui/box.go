package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// renderBoxes lays out the results box and the right-hand box (details or
// watched list) side by side, or stacked on narrow terminals.
func (m Model) renderBoxes() string {
	height := max(m.height-chromeRows, 4)

	leftTitle := "Results"
	rightTitle := "Watched"
	rightFocused := m.focus == focusWatched
	var rightContent string
	if m.snapshot.HasSelection() {
		rightTitle = "Movie"
		rightFocused = m.focus == focusDetail
	}

	if m.width < LayoutStackedWidth {
		top := height / 2
		bottom := height - top
		if m.resultsCollapsed {
			top, bottom = 2, height-2
		} else if m.watchedCollapsed {
			top, bottom = height-2, 2
		}
		left := m.renderTitledBox(leftTitle, m.renderResults(m.width-2, top-2), m.width, top, m.focus == focusResults, m.resultsCollapsed)
		rightContent = m.renderRight(m.width-2, bottom-2)
		right := m.renderTitledBox(rightTitle, rightContent, m.width, bottom, rightFocused, m.watchedCollapsed)
		return left + "\n" + right
	}

	leftWidth := m.width / 2
	if m.width >= LayoutWideWidth {
		leftWidth = m.width * 40 / 100
	}
	rightWidth := m.width - leftWidth

	left := m.renderTitledBox(leftTitle, m.renderResults(leftWidth-2, height-2), leftWidth, height, m.focus == focusResults, m.resultsCollapsed)
	rightContent = m.renderRight(rightWidth-2, height-2)
	right := m.renderTitledBox(rightTitle, rightContent, rightWidth, height, rightFocused, m.watchedCollapsed)
	return lipgloss.JoinHorizontal(lipgloss.Top, left, right)
}

func (m Model) renderRight(width, height int) string {
	if m.snapshot.HasSelection() {
		return m.renderDetail(width, height)
	}
	return m.renderWatched(width, height)
}

// renderTitledBox renders content in a box with the title embedded in the
// top border: ┌─── Title [–] ───┐. A collapsed box keeps its borders and
// drops its content.
func (m Model) renderTitledBox(title, content string, width, height int, focused, collapsed bool) string {
	var borderColorStr, bgColorStr string
	if focused {
		borderColorStr = m.theme.BorderFocus
		bgColorStr = m.theme.FocusBg
	} else {
		borderColorStr = m.theme.Border
		bgColorStr = m.theme.SurfaceAlt
	}
	bg := NewBgStyle(bgColorStr)
	borderStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(borderColorStr))
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(m.theme.Text))

	toggle := "[–]"
	if collapsed {
		toggle = "[+]"
		content = ""
	}
	label := " " + title + " " + toggle + " "

	innerWidth := max(width-2, 0)
	labelLen := lipgloss.Width(label)
	leftPad := max((innerWidth-labelLen)/2, 0)
	rightPad := max(innerWidth-labelLen-leftPad, 0)

	topBorder := bg.Render("┌", borderStyle) +
		bg.Render(strings.Repeat("─", leftPad), borderStyle) +
		bg.Render(label, titleStyle) +
		bg.Render(strings.Repeat("─", rightPad), borderStyle) +
		bg.Render("┐", borderStyle)

	bottomBorder := bg.Render("└", borderStyle) +
		bg.Render(strings.Repeat("─", innerWidth), borderStyle) +
		bg.Render("┘", borderStyle)

	contentStyle := lipgloss.NewStyle().Width(innerWidth).MaxWidth(innerWidth).Background(lipgloss.Color(bgColorStr))

	contentLines := strings.Split(content, "\n")
	boxHeight := max(height-2, 0)

	lines := make([]string, 0, boxHeight)
	for i := 0; i < boxHeight; i++ {
		var line string
		if i < len(contentLines) {
			line = contentLines[i]
		}
		lines = append(lines,
			bg.Render("│", borderStyle)+
				contentStyle.Render(line)+
				bg.Render("│", borderStyle))
	}

	if len(lines) == 0 {
		return topBorder + "\n" + bottomBorder
	}
	return topBorder + "\n" + strings.Join(lines, "\n") + "\n" + bottomBorder
}

// paneBg returns the background a pane's content sits on.
func (m Model) paneBg(focused bool) string {
	if focused {
		return m.theme.FocusBg
	}
	return m.theme.SurfaceAlt
}

// visibleWindow returns the [start, end) slice of n rows that keeps cursor
// on screen when only rows rows fit.
func visibleWindow(n, cursor, rows int) (int, int) {
	if rows <= 0 || n == 0 {
		return 0, 0
	}
	if n <= rows {
		return 0, n
	}
	start := clamp(cursor-rows+1, 0, n-rows)
	if cursor < start {
		start = cursor
	}
	return start, start + rows
}
