package tui

import (
	"github.com/charmbracelet/bubbles/key"
)

type keyMap struct {
	Quit      key.Binding
	NewDoc    key.Binding
	Documents key.Binding
	Drive     key.Binding
	Auth      key.Binding
	Back      key.Binding
	Save      key.Binding
	Preview   key.Binding
	Collab    key.Binding
	Refresh   key.Binding
	Open      key.Binding
	Delete    key.Binding
	Collabs   key.Binding
	Enter     key.Binding
	FocusNext key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Quit:      key.NewBinding(key.WithKeys("ctrl+q"), key.WithHelp("ctrl+q", "quit")),
		NewDoc:    key.NewBinding(key.WithKeys("ctrl+n"), key.WithHelp("ctrl+n", "new document")),
		Documents: key.NewBinding(key.WithKeys("ctrl+l"), key.WithHelp("ctrl+l", "my documents")),
		Drive:     key.NewBinding(key.WithKeys("ctrl+g"), key.WithHelp("ctrl+g", "google drive")),
		Auth:      key.NewBinding(key.WithKeys("ctrl+a"), key.WithHelp("ctrl+a", "account")),
		Back:      key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		Save:      key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "save")),
		Preview:   key.NewBinding(key.WithKeys("ctrl+p"), key.WithHelp("ctrl+p", "preview")),
		Collab:    key.NewBinding(key.WithKeys("ctrl+k"), key.WithHelp("ctrl+k", "collaborators")),
		Refresh:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		Open:      key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "open in Drive")),
		Delete:    key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
		Collabs:   key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "collaborators")),
		Enter:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select")),
		FocusNext: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "switch focus")),
	}
}
