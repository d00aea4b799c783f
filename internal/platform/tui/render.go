package tui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-arcade-engine/internal/core"
)

// cellStyle builds the lipgloss style for one foreground/background pair.
func cellStyle(r *lipgloss.Renderer, fg, bg core.Color) lipgloss.Style {
	style := r.NewStyle()
	if n := fg.ANSI(); n >= 0 {
		style = style.Foreground(lipgloss.Color(strconv.Itoa(n)))
	}
	if n := bg.ANSI(); n >= 0 {
		style = style.Background(lipgloss.Color(strconv.Itoa(n)))
	}
	return style
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Cells without a background of their own show bg, the frame background.
func RenderScreen(s *core.Screen, bg core.Color) string {
	return RenderScreenWith(lipgloss.DefaultRenderer(), s, bg)
}

// RenderScreenWith renders through r, so SSH sessions get the color profile
// of the remote terminal instead of the server's.
// Groups adjacent cells with the same colors to minimize ANSI escape sequences.
func RenderScreenWith(r *lipgloss.Renderer, s *core.Screen, bg core.Color) string {
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			fg, cellBG := effective(s.GetCell(x, y), bg)

			var run strings.Builder
			for x < s.Width() {
				cell := s.GetCell(x, y)
				if f, b := effective(cell, bg); f != fg || b != cellBG {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}
			sb.WriteString(cellStyle(r, fg, cellBG).Render(run.String()))
		}
	}
	return sb.String()
}

func effective(c core.Cell, bg core.Color) (core.Color, core.Color) {
	if c.BG == core.ColorDefault {
		return c.FG, bg
	}
	return c.FG, c.BG
}
