package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all key bindings for the application
type KeyMap struct {
	// Navigation
	Up       key.Binding
	Down     key.Binding
	Left     key.Binding
	Right    key.Binding
	NextTab  key.Binding
	PrevTab  key.Binding
	Category key.Binding // 1-6

	// Actions
	Quit       key.Binding
	Help       key.Binding
	Escape     key.Binding
	Search     key.Binding
	Genre      key.Binding
	ToggleList key.Binding
	HeroList   key.Binding
	Play       key.Binding
	Info       key.Binding
	Enter      key.Binding
	ChangeKey  key.Binding
	Chat       key.Binding
	ModeSearch key.Binding
	ModeThink  key.Binding
}

// DefaultKeyMap returns the default key bindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/↑", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/↓", "down"),
		),
		Left: key.NewBinding(
			key.WithKeys("h", "left"),
			key.WithHelp("h/←", "left"),
		),
		Right: key.NewBinding(
			key.WithKeys("l", "right"),
			key.WithHelp("l/→", "right"),
		),
		NextTab: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next category"),
		),
		PrevTab: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("S-tab", "previous category"),
		),
		Category: key.NewBinding(
			key.WithKeys("1", "2", "3", "4", "5", "6"),
			key.WithHelp("1-6", "jump to category"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "close"),
		),
		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "search titles"),
		),
		Genre: key.NewBinding(
			key.WithKeys("g"),
			key.WithHelp("g", "filter by genre"),
		),
		ToggleList: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "add/remove my list"),
		),
		HeroList: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add/remove featured"),
		),
		Play: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "play featured"),
		),
		Info: key.NewBinding(
			key.WithKeys("i"),
			key.WithHelp("i", "featured info"),
		),
		Enter: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "details"),
		),
		ChangeKey: key.NewBinding(
			key.WithKeys("K"),
			key.WithHelp("K", "change TMDb key"),
		),
		Chat: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "assistant"),
		),
		ModeSearch: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("C-s", "web search mode"),
		),
		ModeThink: key.NewBinding(
			key.WithKeys("ctrl+t"),
			key.WithHelp("C-t", "thinking mode"),
		),
	}
}

// Keys is the global key map
var Keys = DefaultKeyMap()
