package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the [key.Binding] mapping for the TUI.
type keyMap struct {
	add     key.Binding
	refresh key.Binding
	connect key.Binding
	quit    key.Binding
	close   key.Binding
	next    key.Binding
	prev    key.Binding
	left    key.Binding
	right   key.Binding
	enter   key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		add:     key.NewBinding(key.WithKeys("a", "+"), key.WithHelp("a", "add muffin")),
		refresh: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		connect: key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "connect to zoho")),
		quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		close:   key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
		next:    key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next field")),
		prev:    key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "previous field")),
		left:    key.NewBinding(key.WithKeys("left"), key.WithHelp("←", "previous")),
		right:   key.NewBinding(key.WithKeys("right"), key.WithHelp("→", "next")),
		enter:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.add, k.refresh, k.quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.add, k.refresh, k.connect},
		{k.next, k.prev, k.left, k.right, k.enter},
		{k.close, k.quit},
	}
}

// boardHelp returns the bindings shown under the board or auth section.
func (k keyMap) boardHelp(authenticated bool) []key.Binding {
	if authenticated {
		return []key.Binding{k.add, k.refresh, k.quit}
	}
	return []key.Binding{k.connect, k.refresh, k.quit}
}

// modalHelp returns the bindings shown under the add-muffin form.
func (k keyMap) modalHelp() []key.Binding {
	return []key.Binding{k.next, k.left, k.right, k.enter, k.close}
}
