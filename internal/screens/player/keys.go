package player

import "charm.land/bubbles/v2/key"

type keyMap struct {
	Next    key.Binding
	Prev    key.Binding
	Up      key.Binding
	Down    key.Binding
	Submit  key.Binding
	Help    key.Binding
	Audio   key.Binding
	Module  key.Binding
	Outline key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Next: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→", "Next"),
		),
		Prev: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←", "Back"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑↓", "Choose"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
		),
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("Enter", "Answer"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "Help"),
		),
		Audio: key.NewBinding(
			key.WithKeys("space"),
			key.WithHelp("Space", "Pause/Play"),
		),
		Module: key.NewBinding(
			key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8", "9"),
			key.WithHelp("1-9", "Open topic"),
		),
		Outline: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("O", "Outline"),
		),
	}
}
