package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all key bindings for the application.
type KeyMap struct {
	Fetch          key.Binding
	Previous       key.Binding
	Next           key.Binding
	First          key.Binding
	Last           key.Binding
	Up             key.Binding
	Down           key.Binding
	Edit           key.Binding
	Remove         key.Binding
	AddFavorite    key.Binding
	RemoveFavorite key.Binding
	FocusFavorites key.Binding
	ToggleConfirm  key.Binding
	Search         key.Binding
	Yank           key.Binding
	Export         key.Binding
	Help           key.Binding
	Quit           key.Binding
}

// DefaultKeyMap returns the default vim-style key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Fetch: key.NewBinding(
			key.WithKeys("f", " "),
			key.WithHelp("f/space", "get random joke"),
		),
		Previous: key.NewBinding(
			key.WithKeys("h", "left"),
			key.WithHelp("h/left", "previous joke"),
		),
		Next: key.NewBinding(
			key.WithKeys("l", "right"),
			key.WithHelp("l/right", "next joke"),
		),
		First: key.NewBinding(
			key.WithKeys("g"),
			key.WithHelp("g", "first joke"),
		),
		Last: key.NewBinding(
			key.WithKeys("G"),
			key.WithHelp("G", "last joke"),
		),
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/up", "move up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/down", "move down"),
		),
		Edit: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "edit joke"),
		),
		Remove: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "remove joke"),
		),
		AddFavorite: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add to favorites"),
		),
		RemoveFavorite: key.NewBinding(
			key.WithKeys("x", "d"),
			key.WithHelp("x/d", "remove favorite"),
		),
		FocusFavorites: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "favorites"),
		),
		ToggleConfirm: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "toggle confirm"),
		),
		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "search"),
		),
		Yank: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "yank joke"),
		),
		Export: key.NewBinding(
			key.WithKeys("E"),
			key.WithHelp("E", "export favorites"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}
