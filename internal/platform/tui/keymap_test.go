package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-arcade-engine/internal/core"
)

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestKeyMapMap(t *testing.T) {
	km := DefaultKeyMap()

	tests := []struct {
		name string
		msg  tea.KeyMsg
		want core.KeyPress
	}{
		{"esc quits", tea.KeyMsg{Type: tea.KeyEsc}, core.KeyPress{Quit: true}},
		{"ctrl+c quits", tea.KeyMsg{Type: tea.KeyCtrlC}, core.KeyPress{Quit: true}},
		{"left", tea.KeyMsg{Type: tea.KeyLeft}, core.KeyPress{Special: core.KeyLeft}},
		{"right", tea.KeyMsg{Type: tea.KeyRight}, core.KeyPress{Special: core.KeyRight}},
		{"up", tea.KeyMsg{Type: tea.KeyUp}, core.KeyPress{Special: core.KeyUp}},
		{"down", tea.KeyMsg{Type: tea.KeyDown}, core.KeyPress{Special: core.KeyDown}},
		{"enter", tea.KeyMsg{Type: tea.KeyEnter}, core.KeyPress{Special: core.KeyEnter}},
		{"backspace", tea.KeyMsg{Type: tea.KeyBackspace}, core.KeyPress{Special: core.KeyBackspace}},
		{"delete", tea.KeyMsg{Type: tea.KeyDelete}, core.KeyPress{Special: core.KeyDelete}},
		{"home", tea.KeyMsg{Type: tea.KeyHome}, core.KeyPress{Special: core.KeyHome}},
		{"ctrl+a is home", tea.KeyMsg{Type: tea.KeyCtrlA}, core.KeyPress{Special: core.KeyHome}},
		{"end", tea.KeyMsg{Type: tea.KeyEnd}, core.KeyPress{Special: core.KeyEnd}},
		{"ctrl+e is end", tea.KeyMsg{Type: tea.KeyCtrlE}, core.KeyPress{Special: core.KeyEnd}},
		{"space", tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}, core.KeyPress{Key: ' '}},
		{"letter", runeKey('a'), core.KeyPress{Key: 'a'}},
		{"uppercase", runeKey('Z'), core.KeyPress{Key: 'Z'}},
		{"pause is also text", runeKey('p'), core.KeyPress{Pause: true, Key: 'p'}},
		{"alt rune ignored", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}, Alt: true}, core.KeyPress{}},
		{"paste ignored", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("abc")}, core.KeyPress{}},
		{"tab ignored", tea.KeyMsg{Type: tea.KeyTab}, core.KeyPress{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := km.Map(tt.msg); got != tt.want {
				t.Errorf("Map(%q) = %+v, expected %+v", tt.msg.String(), got, tt.want)
			}
		})
	}
}

func TestKeyMapHelp(t *testing.T) {
	km := DefaultKeyMap()

	if got := len(km.ShortHelp()); got != 4 {
		t.Errorf("len(ShortHelp()) = %d, expected 4", got)
	}
	for _, b := range km.ShortHelp() {
		if b.Help().Key == "" {
			t.Errorf("short help binding %v has no help text", b.Keys())
		}
	}
	if got := len(km.FullHelp()); got != 2 {
		t.Errorf("len(FullHelp()) = %d, expected 2", got)
	}
}
