package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-arcade-engine/internal/core"
)

// KeyMap defines the key bindings for an engine session.
// Printable characters that match no binding are passed through as text so
// names can be typed on the hiscore screen.
type KeyMap struct {
	Quit       key.Binding
	Pause      key.Binding
	Left       key.Binding
	Right      key.Binding
	Up         key.Binding
	Down       key.Binding
	Enter      key.Binding
	Backspace  key.Binding
	Delete     key.Binding
	Home       key.Binding
	End        key.Binding
	Screenshot key.Binding
}

// DefaultKeyMap returns default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("esc", "ctrl+c"),
			key.WithHelp("esc", "quit"),
		),
		Pause: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "pause"),
		),
		Left: key.NewBinding(
			key.WithKeys("left"),
			key.WithHelp("←", "left"),
		),
		Right: key.NewBinding(
			key.WithKeys("right"),
			key.WithHelp("→", "right"),
		),
		Up: key.NewBinding(
			key.WithKeys("up"),
			key.WithHelp("↑", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down"),
			key.WithHelp("↓", "down"),
		),
		Enter: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "confirm"),
		),
		Backspace: key.NewBinding(key.WithKeys("backspace")),
		Delete:    key.NewBinding(key.WithKeys("delete")),
		Home:      key.NewBinding(key.WithKeys("home", "ctrl+a")),
		End:       key.NewBinding(key.WithKeys("end", "ctrl+e")),
		Screenshot: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "screenshot"),
		),
	}
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Left, k.Right, k.Pause, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Left, k.Right, k.Up, k.Down},
		{k.Enter, k.Pause, k.Quit, k.Screenshot},
	}
}

// Map translates one key message into an input snapshot.
// The pause key is also reported as its character.
func (k KeyMap) Map(msg tea.KeyMsg) core.KeyPress {
	var kp core.KeyPress

	switch {
	case key.Matches(msg, k.Quit):
		kp.Quit = true
		return kp
	case key.Matches(msg, k.Left):
		kp.Special = core.KeyLeft
	case key.Matches(msg, k.Right):
		kp.Special = core.KeyRight
	case key.Matches(msg, k.Up):
		kp.Special = core.KeyUp
	case key.Matches(msg, k.Down):
		kp.Special = core.KeyDown
	case key.Matches(msg, k.Enter):
		kp.Special = core.KeyEnter
	case key.Matches(msg, k.Backspace):
		kp.Special = core.KeyBackspace
	case key.Matches(msg, k.Delete):
		kp.Special = core.KeyDelete
	case key.Matches(msg, k.Home):
		kp.Special = core.KeyHome
	case key.Matches(msg, k.End):
		kp.Special = core.KeyEnd
	}
	if kp.Special != core.KeyNone {
		return kp
	}

	switch msg.Type {
	case tea.KeySpace:
		kp.Key = ' '
	case tea.KeyRunes:
		if len(msg.Runes) == 1 && !msg.Alt {
			kp.Key = msg.Runes[0]
		}
	}
	kp.Pause = key.Matches(msg, k.Pause)
	return kp
}
