package main

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Board   key.Binding
	History key.Binding
	Tools   key.Binding
	Note    key.Binding
	Clear   key.Binding
	Command key.Binding
	Quit    key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Board:   key.NewBinding(key.WithKeys("b"), key.WithHelp("b", "board")),
		History: key.NewBinding(key.WithKeys("h"), key.WithHelp("h", "history")),
		Tools:   key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "tools")),
		Note:    key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "note")),
		Clear:   key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "clear alerts")),
		Command: key.NewBinding(key.WithKeys(":"), key.WithHelp(":", "command")),
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Board, k.History, k.Tools, k.Note, k.Command, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Board, k.History, k.Tools},
		{k.Note, k.Clear, k.Command, k.Quit},
	}
}
