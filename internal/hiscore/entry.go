package hiscore

import (
	"unicode"

	"github.com/vovakirdan/tui-arcade-engine/internal/core"
)

// MaxNameLen caps the number of runes in an entered name.
const MaxNameLen = 16

// Entry is the text-entry state for the pending hiscore: the name being typed
// and the caret position within it (in runes).
type Entry struct {
	name  []rune
	score int
	caret int
}

// Reset starts a fresh entry for score with an empty name and the caret at 0.
func (e *Entry) Reset(score int) {
	e.name = e.name[:0]
	e.score = score
	e.caret = 0
}

// Name returns the name as typed so far.
func (e *Entry) Name() string {
	return string(e.name)
}

// Score returns the score being entered.
func (e *Entry) Score() int {
	return e.score
}

// Caret returns the caret index.
func (e *Entry) Caret() int {
	return e.caret
}

// Insert puts r at the caret and advances it. Whitespace, control runes and
// input beyond MaxNameLen are ignored.
func (e *Entry) Insert(r rune) {
	if r == 0 || unicode.IsSpace(r) || !unicode.IsPrint(r) {
		return
	}
	if len(e.name) >= MaxNameLen {
		return
	}
	e.name = append(e.name, 0)
	copy(e.name[e.caret+1:], e.name[e.caret:])
	e.name[e.caret] = r
	e.caret++
}

// Backspace removes the rune before the caret and moves the caret back.
func (e *Entry) Backspace() {
	if e.caret == 0 {
		return
	}
	e.name = append(e.name[:e.caret-1], e.name[e.caret:]...)
	e.caret--
}

// Delete removes the rune under the caret.
func (e *Entry) Delete() {
	if e.caret >= len(e.name) {
		return
	}
	e.name = append(e.name[:e.caret], e.name[e.caret+1:]...)
}

// MoveLeft moves the caret one rune to the left.
func (e *Entry) MoveLeft() {
	if e.caret > 0 {
		e.caret--
	}
}

// MoveRight moves the caret one rune to the right.
func (e *Entry) MoveRight() {
	if e.caret < len(e.name) {
		e.caret++
	}
}

// Home moves the caret to the start of the name.
func (e *Entry) Home() {
	e.caret = 0
}

// End moves the caret past the last rune.
func (e *Entry) End() {
	e.caret = len(e.name)
}

// Handle applies one frame of input. It returns true when the player
// confirmed the entry with Enter.
func (e *Entry) Handle(kp core.KeyPress) bool {
	switch kp.Special {
	case core.KeyEnter:
		return true
	case core.KeyBackspace:
		e.Backspace()
	case core.KeyDelete:
		e.Delete()
	case core.KeyLeft:
		e.MoveLeft()
	case core.KeyRight:
		e.MoveRight()
	case core.KeyHome:
		e.Home()
	case core.KeyEnd:
		e.End()
	case core.KeyNone:
		e.Insert(kp.Key)
	}
	return false
}

// Item returns the finished record as it is stored: an empty name becomes
// AnonymousName.
func (e *Entry) Item() Item {
	return Item{Name: normalizeName(string(e.name)), Score: e.score}
}
