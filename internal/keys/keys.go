package keys

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the global keybindings for the application.
type KeyMap struct {
	// Navigation
	Down key.Binding
	Up   key.Binding

	// Item state machine
	Toggle    key.Binding
	StartEdit key.Binding
	Save      key.Binding
	Cancel    key.Binding
	Delete    key.Binding

	// Pending-progress slider
	SliderDown key.Binding
	SliderUp   key.Binding

	// Views
	New   key.Binding
	Todos key.Binding
	Help  key.Binding

	// Session
	SignOut key.Binding

	// Back / Quit
	Back key.Binding
	Quit key.Binding
}

// DefaultKeyMap returns the default set of keybindings.
func DefaultKeyMap() *KeyMap {
	return &KeyMap{
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/↓", "down"),
		),
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/↑", "up"),
		),
		Toggle: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "expand/collapse"),
		),
		StartEdit: key.NewBinding(
			key.WithKeys("u"),
			key.WithHelp("u", "update progress"),
		),
		Save: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "save"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "cancel edit"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "remove"),
		),
		SliderDown: key.NewBinding(
			key.WithKeys("h", "left"),
			key.WithHelp("h/←", "less progress"),
		),
		SliderUp: key.NewBinding(
			key.WithKeys("l", "right"),
			key.WithHelp("l/→", "more progress"),
		),
		New: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "new"),
		),
		Todos: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "to-dos"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
		SignOut: key.NewBinding(
			key.WithKeys("O"),
			key.WithHelp("O", "sign out"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp returns the most essential keybindings for the compact help view.
func (k *KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{
		k.Up, k.Down, k.Toggle, k.StartEdit,
		k.New, k.Quit, k.Help,
	}
}

// FullHelp returns all keybindings grouped by category for the expanded
// help view.
func (k *KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Toggle, k.Back, k.Quit},
		{k.StartEdit, k.SliderDown, k.SliderUp, k.Save, k.Cancel, k.Delete},
		{k.New, k.Todos, k.Help, k.SignOut},
	}
}
