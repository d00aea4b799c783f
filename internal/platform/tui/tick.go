// Package tui runs engine sessions inside Bubble Tea.
// It maps terminal keys to engine input snapshots, drives engine frames from
// tick messages and renders the engine's screen buffer with lipgloss.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent to trigger one engine frame.
type TickMsg time.Time

// tickCmd returns a Bubble Tea command that sends a tick after interval.
// The engine's delay is read again before every tick, so frame-rate changes
// made by a game apply to the next wait.
func tickCmd(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
