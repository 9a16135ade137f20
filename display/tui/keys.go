package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
)

// keyMap defines all key bindings for the live view.
// It implements the help.KeyMap interface for bubbles/help integration.
type keyMap struct {
	Quit     key.Binding
	Refresh  key.Binding
	Help     key.Binding
	Section1 key.Binding
	Section2 key.Binding
	Section3 key.Binding
}

// ShortHelp returns the compact set of keybindings shown by default in the footer.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Help, k.Refresh, k.Quit}
}

// FullHelp returns the expanded keybinding groups shown when help is toggled.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Section1, k.Section2, k.Section3},
		{k.Refresh, k.Help, k.Quit},
	}
}

// keys holds the default key bindings used by the live view.
var keys = keyMap{
	Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	Refresh:  key.NewBinding(key.WithKeys("r", "ctrl+r"), key.WithHelp("r", "refresh")),
	Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
	Section1: key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "toggle section 1")),
	Section2: key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "toggle section 2")),
	Section3: key.NewBinding(key.WithKeys("3"), key.WithHelp("3", "toggle section 3")),
}

// KeyHelp returns the live view bindings as key/description pairs in
// help order. The man page generator reads it so the documented
// bindings never drift from the real ones.
func KeyHelp() [][2]string {
	var entries [][2]string
	for _, group := range keys.FullHelp() {
		for _, b := range group {
			entries = append(entries, [2]string{
				strings.Join(b.Keys(), ", "),
				b.Help().Desc,
			})
		}
	}
	return entries
}
