package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines all keyboard bindings for the application.
type keyMap struct {
	// Global
	Quit        key.Binding
	ForceQuit   key.Binding
	Help        key.Binding
	Logs        key.Binding
	CycleTheme  key.Binding
	Tab         key.Binding
	ShiftTab    key.Binding
	Escape      key.Binding
	Enter       key.Binding
	ToggleLeft  key.Binding
	ToggleRight key.Binding

	// Navigation
	Up     key.Binding
	Down   key.Binding
	Top    key.Binding
	Bottom key.Binding

	// Results
	Select key.Binding

	// Detail
	Rate     key.Binding
	RateUp   key.Binding
	RateDown key.Binding
	Add      key.Binding
	Back     key.Binding

	// Watched
	Delete key.Binding

	// Log overlay
	CycleLevel key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() keyMap {
	return keyMap{
		Quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "Quit"),
		),
		ForceQuit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "Quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "Toggle help"),
		),
		Logs: key.NewBinding(
			key.WithKeys("L"),
			key.WithHelp("L", "Show log"),
		),
		CycleTheme: key.NewBinding(
			key.WithKeys("T"),
			key.WithHelp("T", "Cycle theme"),
		),
		Tab: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "Next pane"),
		),
		ShiftTab: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "Previous pane"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "Close details"),
		),
		Enter: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "New search"),
		),
		ToggleLeft: key.NewBinding(
			key.WithKeys("["),
			key.WithHelp("[", "Collapse results"),
		),
		ToggleRight: key.NewBinding(
			key.WithKeys("]"),
			key.WithHelp("]", "Collapse watched"),
		),

		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/up", "Move up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/down", "Move down"),
		),
		Top: key.NewBinding(
			key.WithKeys("g", "home"),
			key.WithHelp("g", "Go to top"),
		),
		Bottom: key.NewBinding(
			key.WithKeys("G", "end"),
			key.WithHelp("G", "Go to bottom"),
		),

		Select: key.NewBinding(
			key.WithKeys(" ", "space"),
			key.WithHelp("space", "Open/close movie"),
		),

		Rate: key.NewBinding(
			key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8", "9", "0"),
			key.WithHelp("1-9/0", "Rate (0 = 10)"),
		),
		RateUp: key.NewBinding(
			key.WithKeys("+", "="),
			key.WithHelp("+", "Rating up"),
		),
		RateDown: key.NewBinding(
			key.WithKeys("-"),
			key.WithHelp("-", "Rating down"),
		),
		Add: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "Add to watched"),
		),
		Back: key.NewBinding(
			key.WithKeys("b", "backspace"),
			key.WithHelp("b", "Back"),
		),

		Delete: key.NewBinding(
			key.WithKeys("d", "x"),
			key.WithHelp("d/x", "Delete watched"),
		),

		CycleLevel: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "Cycle level"),
		),
	}
}

// ShortHelp returns key bindings for the footer.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Tab, k.Select, k.Escape, k.Help, k.ForceQuit}
}

// helpTitles names the FullHelp columns, in order.
var helpTitles = []string{"Navigation", "Search", "Movie", "Watched", "General"}

// FullHelp returns key bindings for the help overlay, one column per
// entry in helpTitles.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Tab, k.ShiftTab, k.Up, k.Down, k.Top, k.Bottom},
		{k.Enter, k.Escape, k.Select},
		{k.Rate, k.RateUp, k.RateDown, k.Add, k.Back},
		{k.Delete, k.ToggleLeft, k.ToggleRight},
		{k.CycleTheme, k.Logs, k.Help, k.Quit, k.ForceQuit},
	}
}
