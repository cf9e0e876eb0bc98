package tui

import "github.com/charmbracelet/bubbles/key"

type globalKeyMap struct {
	ForceQuit key.Binding
	Quit      key.Binding
	Dismiss   key.Binding
}

var globalKeys = globalKeyMap{
	ForceQuit: key.NewBinding(key.WithKeys("ctrl+c")),
	Quit:      key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
	Dismiss:   key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "dismiss")),
}

type browseKeyMap struct {
	Next   key.Binding
	Open   key.Binding
	Add    key.Binding
	List   key.Binding
	Reload key.Binding
	Back   key.Binding
}

var browseKeys = browseKeyMap{
	Next:   key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "switch")),
	Open:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "edit")),
	Add:    key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add")),
	List:   key.NewBinding(key.WithKeys("l"), key.WithHelp("l", "list")),
	Reload: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
	Back:   key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
}

type editorKeyMap struct {
	Next    key.Binding
	Prev    key.Binding
	Enter   key.Binding
	Save    key.Binding
	Cancel  key.Binding
	Delete  key.Binding
	Confirm key.Binding
}

var editorKeys = editorKeyMap{
	Next:    key.NewBinding(key.WithKeys("tab", "down"), key.WithHelp("tab", "next field")),
	Prev:    key.NewBinding(key.WithKeys("shift+tab", "up"), key.WithHelp("shift+tab", "prev field")),
	Enter:   key.NewBinding(key.WithKeys("enter")),
	Save:    key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "save")),
	Cancel:  key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
	Delete:  key.NewBinding(key.WithKeys("ctrl+d"), key.WithHelp("ctrl+d", "delete")),
	Confirm: key.NewBinding(key.WithKeys("y", "Y"), key.WithHelp("y", "confirm")),
}
