package engine

import (
	"github.com/vovakirdan/tui-arcade-engine/internal/core"
	"github.com/vovakirdan/tui-arcade-engine/internal/hiscore"
)

// Host is the game running inside the engine. The engine decides which screen
// is active each frame and calls into the host for gameplay and for the
// game-specific title and instructions screens.
//
// Lifecycle hooks fire exactly once at each transition edge. Embed NopHooks
// to get no-op defaults and override only the hooks the game needs.
type Host interface {
	// Update advances gameplay by one frame and draws it into e.Screen().
	// It keeps running on the game over and you won screens so the
	// simulation does not freeze behind the banner.
	Update(e *Engine)

	// DrawTitle draws the title screen into e.Screen().
	DrawTitle(e *Engine)

	// DrawInstructions draws the instructions screen into e.Screen().
	DrawInstructions(e *Engine)

	OnQuit()
	OnExitTitle()
	OnExitInstructions()
	OnEnterGameOver()
	OnExitGameOver()
	OnEnterYouWon()
	OnExitYouWon()
	OnEnterInputHiscore()
	OnExitInputHiscore()
	OnEnterHiscores()
}

// NopHooks implements every optional Host hook as a no-op.
type NopHooks struct{}

func (NopHooks) OnQuit()              {}
func (NopHooks) OnExitTitle()         {}
func (NopHooks) OnExitInstructions()  {}
func (NopHooks) OnEnterGameOver()     {}
func (NopHooks) OnExitGameOver()      {}
func (NopHooks) OnEnterYouWon()       {}
func (NopHooks) OnExitYouWon()        {}
func (NopHooks) OnEnterInputHiscore() {}
func (NopHooks) OnExitInputHiscore()  {}
func (NopHooks) OnEnterHiscores()     {}

// Sink receives the finished screen buffer once per frame together with the
// background color selected for the active screen.
type Sink interface {
	Present(screen *core.Screen, bg core.Color)
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(screen *core.Screen, bg core.Color)

// Present calls f(screen, bg).
func (f SinkFunc) Present(screen *core.Screen, bg core.Color) {
	f(screen, bg)
}

// InputSource produces the input snapshot for the next frame. Poll must not block.
type InputSource interface {
	Poll() core.KeyPress
}

// InputFunc adapts a function to the InputSource interface.
type InputFunc func() core.KeyPress

// Poll calls f().
func (f InputFunc) Poll() core.KeyPress {
	return f()
}

// Recorder archives submitted hiscores outside the ranked file,
// e.g. the SQLite history kept by the storage package.
type Recorder interface {
	Record(item hiscore.Item) error
}
