package engine

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/vovakirdan/tui-arcade-engine/internal/core"
	"github.com/vovakirdan/tui-arcade-engine/internal/hiscore"
)

// waveState animates a banner: row i is shifted horizontally by
// round(amp * sin(2π * freq * (i/12 + x0))) and x0 advances by step per
// drawn frame.
type waveState struct {
	lines  []string
	fg     core.Color
	rowBGs []core.Color
	freq   float64
	amp    float64
	step   float64
	x0     float64
}

var gameOverArt = []string{
	"  ####    ###   #   #  #####  ",
	" #       #   #  ## ##  #      ",
	" #  ##   #####  # # #  ####   ",
	" #   #   #   #  #   #  #      ",
	"  ####   #   #  #   #  #####  ",
	"                              ",
	"  ###   #   #  #####  ####    ",
	" #   #  #   #  #      #   #   ",
	" #   #  #   #  ####   ####    ",
	" #   #   # #   #      #  #    ",
	"  ###     #    #####  #   #   ",
}

var youWonArt = []string{
	" #   #   ###   #   #     #   #   ###   #   # ",
	"  # #   #   #  #   #     #   #  #   #  ##  # ",
	"   #    #   #  #   #     # # #  #   #  # # # ",
	"   #    #   #  #   #     ## ##  #   #  #  ## ",
	"   #     ###    ###      #   #   ###   #   # ",
}

func gameOverWave() waveState {
	return waveState{
		lines:  gameOverArt,
		fg:     core.ColorDarkRed,
		rowBGs: []core.Color{core.ColorWhite, core.ColorYellow, core.ColorDarkYellow},
		freq:   0.4,
		amp:    5,
		step:   0.1,
	}
}

func youWonWave() waveState {
	return waveState{
		lines:  youWonArt,
		fg:     core.ColorDarkBlue,
		rowBGs: []core.Color{core.ColorCyan, core.ColorDarkCyan},
		freq:   1.5,
		amp:    1,
		step:   0.07,
	}
}

// offset returns the horizontal shift of banner row i.
func (w *waveState) offset(i int) int {
	x := float64(i)/12 + w.x0
	return int(math.Round(w.amp * math.Sin(w.freq*2*math.Pi*x)))
}

func (w *waveState) advance() {
	w.x0 = math.Mod(w.x0+w.step, 1/w.freq)
}

func (e *Engine) drawBanner(w *waveState) {
	width := utf8.RuneCountInString(w.lines[0])
	left := (e.screen.Width() - width) / 2
	top := (e.screen.Height() - len(w.lines)) / 2

	for i, line := range w.lines {
		st := core.Style{FG: w.fg, BG: w.rowBGs[i%len(w.rowBGs)]}
		e.screen.DrawStyled(left+w.offset(i), top+i, line, st)
	}
	w.advance()

	if e.newHiscore && e.animCounter%12 < 8 {
		e.screen.DrawStyledCentered(top+len(w.lines)+1, newHiscoreText,
			core.Style{FG: core.ColorBlack, BG: core.ColorYellow})
	}
}

const newHiscoreText = " NEW HISCORE! "

var pausedFrames = [10]string{
	"      ",
	"  U   ",
	"  U E ",
	"P U E ",
	"P USE ",
	"P USED",
	"PAUSED",
	"PAUSED",
	"PAUSED",
	"PAUSED",
}

// PausedMessage returns the paused indicator for the given animation
// counter. The word assembles over six frames, then holds for four.
func PausedMessage(counter int) string {
	return pausedFrames[((counter%10)+10)%10]
}

func (e *Engine) drawPaused() {
	msg := PausedMessage(e.animCounter)
	x := (e.screen.Width() - utf8.RuneCountInString(msg)) / 2
	e.screen.DrawStyled(x, e.screen.Height()/2, msg, core.Style{FG: core.ColorWhite, BG: core.ColorDarkCyan})
}

const (
	quitDialogW = 38
	quitDialogH = 7
)

func (e *Engine) drawQuitConfirm() {
	styles := e.cfg.QuitConfirm
	x := (e.screen.Width() - quitDialogW) / 2
	y := (e.screen.Height() - quitDialogH) / 2

	blank := fmt.Sprintf("%*s", quitDialogW, "")
	for row := 0; row < quitDialogH; row++ {
		e.screen.DrawStyled(x, y+row, blank, styles.Title)
	}
	e.screen.DrawBox(x, y, quitDialogW, quitDialogH, styles.Title)
	e.screen.DrawStyledCentered(y+1, "Really quit?", styles.Title)

	yes, no := "[ Yes ]", "[ No ]"
	bx := (e.screen.Width() - len(yes) - len(no) - 4) / 2
	e.screen.DrawStyled(bx, y+3, yes, styles.Button.Button(e.quitChoice == ChoiceYes))
	e.screen.DrawStyled(bx+len(yes)+4, y+3, no, styles.Button.Button(e.quitChoice == ChoiceNo))

	e.screen.DrawStyledCentered(y+5, "Left/Right: select  Enter: confirm", styles.Info)
}

// caretVisible blinks the caret at roughly two cycles per second at 12 fps.
func (e *Engine) caretVisible() bool {
	return (e.animCounter/3)%2 == 0
}

func (e *Engine) drawInputHiscore() {
	styles := e.cfg.InputHiscore
	mid := e.screen.Height() / 2

	e.screen.DrawStyledCentered(mid-4, " ENTER YOUR NAME ", styles.Title)
	e.screen.DrawStyledCentered(mid-2, "Score: "+strconv.Itoa(e.entry.Score()),
		core.Style{FG: styles.Prompt.FG, BG: styles.Prompt.BG})

	label := "Name: "
	fieldW := hiscore.MaxNameLen + 1
	x := (e.screen.Width() - len(label) - fieldW) / 2
	e.screen.DrawStyled(x, mid, label, core.Style{FG: styles.Prompt.FG, BG: styles.Prompt.BG})

	fx := x + len(label)
	field := core.Style{FG: styles.Prompt.FG, BG: styles.Prompt.FieldBG}
	name := []rune(e.entry.Name())
	for i := 0; i < fieldW; i++ {
		r := ' '
		if i < len(name) {
			r = name[i]
		}
		cell := core.Cell{Rune: r, FG: field.FG, BG: field.BG}
		if i == e.entry.Caret() && e.caretVisible() {
			cell.FG, cell.BG = field.BG, field.FG
		}
		e.screen.SetCell(fx+i, mid, cell)
	}

	e.screen.DrawStyledCentered(mid+3, "Type your name, Enter to confirm", styles.Info)
}

func (e *Engine) drawHiscores() {
	styles := e.cfg.Hiscores
	h := e.screen.Height()

	e.screen.DrawStyledCentered(1, " HISCORES ", styles.Title)

	const rowW = 4 + 8 + 2 + hiscore.MaxNameLen
	x := (e.screen.Width() - rowW) / 2
	first := 3
	last := h - 3

	if len(e.hiscores) == 0 {
		e.screen.DrawStyledCentered(first, "No hiscores yet", styles.Name.Text(false))
	}
	for i, item := range e.hiscores {
		y := first + i
		if y > last {
			break
		}
		hl := i == e.hiscoreRank
		e.screen.DrawStyled(x, y, fmt.Sprintf("%2d. ", i+1), styles.Rank.Text(hl))
		e.screen.DrawStyled(x+4, y, fmt.Sprintf("%8d  ", item.Score), styles.Score.Text(hl))
		e.screen.DrawStyled(x+14, y, padRight(item.Name, hiscore.MaxNameLen), styles.Name.Text(hl))
	}

	e.screen.DrawStyledCentered(h-2, "Press Space to exit", styles.Info)
}

// padRight pads s with spaces to width cells, counting runes, not bytes.
func padRight(s string, width int) string {
	if n := utf8.RuneCountInString(s); n < width {
		return s + strings.Repeat(" ", width-n)
	}
	return s
}
