package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines all keyboard bindings for the application.
type keyMap struct {
	// Global
	Quit       key.Binding
	Help       key.Binding
	CycleTheme key.Binding
	SwitchKind key.Binding
	Retry      key.Binding
	Escape     key.Binding

	// Filters
	Search     key.Binding
	NextGenre  key.Binding
	PrevGenre  key.Binding
	NextYear   key.Binding
	PrevYear   key.Binding
	ToggleSort key.Binding
	Reset      key.Binding

	// Navigation
	Up       key.Binding
	Down     key.Binding
	NextPage key.Binding
	PrevPage key.Binding
	Open     key.Binding
}

// defaultKeyMap returns the default key bindings.
func defaultKeyMap() keyMap {
	return keyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		CycleTheme: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "theme"),
		),
		SwitchKind: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "movies/series"),
		),
		Retry: key.NewBinding(
			key.WithKeys("R"),
			key.WithHelp("R", "reload"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),

		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "search"),
		),
		NextGenre: key.NewBinding(
			key.WithKeys("g"),
			key.WithHelp("g/G", "genre"),
		),
		PrevGenre: key.NewBinding(
			key.WithKeys("G"),
		),
		NextYear: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y/Y", "year"),
		),
		PrevYear: key.NewBinding(
			key.WithKeys("Y"),
		),
		ToggleSort: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "sort"),
		),
		Reset: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "reset"),
		),

		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		NextPage: key.NewBinding(
			key.WithKeys("right", "l", "pgdown"),
			key.WithHelp("→/l", "next page"),
		),
		PrevPage: key.NewBinding(
			key.WithKeys("left", "h", "pgup"),
			key.WithHelp("←/h", "prev page"),
		),
		Open: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "details"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Search, k.NextGenre, k.NextYear, k.ToggleSort, k.PrevPage, k.NextPage, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Search, k.NextGenre, k.NextYear, k.ToggleSort, k.Reset},
		{k.Up, k.Down, k.PrevPage, k.NextPage, k.Open},
		{k.SwitchKind, k.Retry, k.CycleTheme, k.Help, k.Quit},
	}
}
