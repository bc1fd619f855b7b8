package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Syuf1514/video-labeler/pkg/types"
)

type keyMap struct {
	Next      key.Binding
	Prev      key.Binding
	Toggle    key.Binding
	Flip      key.Binding
	CycleSort key.Binding
	AddLabel  key.Binding
	RmLabels  key.Binding
	Source    key.Binding
	Logs      key.Binding
	Reload    key.Binding
	Help      key.Binding
	Quit      key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Next: key.NewBinding(
			key.WithKeys("right", " ", "n"),
			key.WithHelp("→/space/n", "next"),
		),
		Prev: key.NewBinding(
			key.WithKeys("left", "p"),
			key.WithHelp("←/p", "previous"),
		),
		Toggle: key.NewBinding(
			key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8", "9"),
			key.WithHelp("1-9", "toggle label"),
		),
		Flip: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "flip order"),
		),
		CycleSort: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "sort column"),
		),
		AddLabel: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add label"),
		),
		RmLabels: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "remove labels"),
		),
		Source: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "open table"),
		),
		Logs: key.NewBinding(
			key.WithKeys("l"),
			key.WithHelp("l", "logs"),
		),
		Reload: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reload"),
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

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.Prev, k.Toggle, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Next, k.Prev, k.Toggle},
		{k.Flip, k.CycleSort, k.Reload},
		{k.AddLabel, k.RmLabels, k.Source},
		{k.Logs, k.Help, k.Quit},
	}
}

// eventKey maps a key press that goes through the event dispatcher to the
// dispatcher's key name. Letter commands are not events.
func eventKey(msg tea.KeyMsg) (string, bool) {
	switch msg.Type {
	case tea.KeyRight:
		return types.KeyRight, true
	case tea.KeyLeft:
		return types.KeyLeft, true
	case tea.KeySpace:
		return types.KeySpace, true
	case tea.KeyRunes:
		if len(msg.Runes) == 1 && msg.Runes[0] >= '0' && msg.Runes[0] <= '9' {
			return string(msg.Runes), true
		}
		if len(msg.Runes) == 1 && msg.Runes[0] == ' ' {
			return types.KeySpace, true
		}
	}
	return "", false
}
