package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap holds every binding the board understands
type KeyMap struct {
	Left     key.Binding
	Right    key.Binding
	Up       key.Binding
	Down     key.Binding
	Add      key.Binding
	Edit     key.Binding
	Delete   key.Binding
	Move     key.Binding
	Projects key.Binding
	New      key.Binding
	Rename   key.Binding
	Confirm  key.Binding
	Cancel   key.Binding
	Quit     key.Binding
	Force    key.Binding
}

// DefaultKeyMap returns the arrow-key bindings with vi-style aliases
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Left:     key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/→", "column")),
		Right:    key.NewBinding(key.WithKeys("right", "l")),
		Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/↓", "task")),
		Down:     key.NewBinding(key.WithKeys("down", "j")),
		Add:      key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add")),
		Edit:     key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
		Delete:   key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
		Move:     key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "move")),
		Projects: key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "projects")),
		New:      key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new")),
		Rename:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "rename")),
		Confirm:  key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "confirm")),
		Cancel:   key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
		Quit:     key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
		Force:    key.NewBinding(key.WithKeys("ctrl+c")),
	}
}

// ShortHelp implements help.KeyMap for the board
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Left, k.Up, k.Add, k.Edit, k.Delete, k.Move, k.Projects, k.Quit}
}

// FullHelp implements help.KeyMap
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Left, k.Up},
		{k.Add, k.Edit, k.Delete, k.Move},
		{k.Projects, k.Quit},
	}
}

func (k KeyMap) moveHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("left"), key.WithHelp("←/→", "column")),
		key.NewBinding(key.WithKeys("up"), key.WithHelp("↑/↓", "reorder")),
		k.Confirm,
		k.Cancel,
	}
}

func (k KeyMap) projectHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("up"), key.WithHelp("↑/↓", "navigate")),
		key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select")),
		k.New,
		k.Rename,
		k.Delete,
		key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "close")),
	}
}
