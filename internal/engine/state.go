package engine

import "github.com/vovakirdan/tui-arcade-engine/internal/core"

// State is the mutually exclusive top-level screen. The quit confirmation
// dialog and the paused overlay are tracked separately: the dialog resumes the
// state underneath it, and pause only applies to StateGameplay.
type State int

const (
	StateTitle State = iota
	StateInstructions
	StateGameplay
	StateGameOver
	StateYouWon
	StateInputHiscore
	StateHiscores
)

// String returns a human-readable name for the state.
func (s State) String() string {
	switch s {
	case StateTitle:
		return "Title"
	case StateInstructions:
		return "Instructions"
	case StateGameplay:
		return "Gameplay"
	case StateGameOver:
		return "GameOver"
	case StateYouWon:
		return "YouWon"
	case StateInputHiscore:
		return "InputHiscore"
	case StateHiscores:
		return "Hiscores"
	default:
		return "Unknown"
	}
}

// QuitChoice is the selected button of the quit confirmation dialog.
type QuitChoice int

const (
	ChoiceNo QuitChoice = iota
	ChoiceYes
)

// String returns the button label.
func (c QuitChoice) String() string {
	if c == ChoiceYes {
		return "Yes"
	}
	return "No"
}

// advanceKey moves past the title, instructions, banners and hiscore board.
const advanceKey = ' '

// Frame runs one frame of the state machine with the given input snapshot.
// It returns false when the session is over and the loop must stop.
//
// Evaluation order: quit without confirmation, then the quit dialog (masked
// on the hiscore screens), then the active State. After the branch the
// screen is presented with the selected background and the animation
// counters advance.
func (e *Engine) Frame(kp core.KeyPress) bool {
	e.tickClock()
	e.screen.Clear()
	e.input = kp

	if kp.Quit {
		e.quitConfirm = !e.quitConfirm
		e.quitChoice = ChoiceNo
	} else if kp.Pause {
		e.paused = !e.paused
	}

	switch {
	case !e.cfg.EnableQuitConfirmScreen && kp.Quit:
		e.quit()
		return false
	case e.quitConfirm && e.state != StateInputHiscore && e.state != StateHiscores:
		if !e.frameQuitConfirm(kp) {
			return false
		}
	default:
		if !e.frameState(kp) {
			return false
		}
	}

	if e.sink != nil {
		e.sink.Present(e.screen, e.bg)
	}
	e.animCounter++
	e.time += e.driver.DT()
	return true
}

func (e *Engine) frameQuitConfirm(kp core.KeyPress) bool {
	e.bg = orColor(e.cfg.Background.QuitConfirm, e.bg)

	switch kp.Special {
	case core.KeyLeft:
		e.quitChoice = ChoiceYes
	case core.KeyRight:
		e.quitChoice = ChoiceNo
	}
	e.drawQuitConfirm()

	if kp.Special == core.KeyEnter {
		if e.quitChoice == ChoiceYes {
			e.quit()
			return false
		}
		e.quitConfirm = false
	}
	return true
}

func (e *Engine) frameState(kp core.KeyPress) bool {
	bgs := e.cfg.Background
	e.bg = bgs.Default

	switch e.state {
	case StateTitle:
		e.bg = bgs.Title
		e.host.DrawTitle(e)
		if kp.Key == advanceKey {
			e.host.OnExitTitle()
			e.state = e.afterTitle()
			e.log.Debug("exit title", "next", e.state)
		}

	case StateInstructions:
		e.bg = bgs.Instructions
		e.host.DrawInstructions(e)
		if kp.Key == advanceKey {
			e.host.OnExitInstructions()
			e.state = StateGameplay
			e.log.Debug("exit instructions")
		}

	case StateGameOver:
		e.frameBanner(&e.gameOverTimer, &e.gameOverWave, e.host.OnEnterGameOver)
		if e.cfg.EnableHiscores && kp.Key == advanceKey {
			e.host.OnExitGameOver()
			e.beginHiscoreEntry()
		}

	case StateYouWon:
		e.frameBanner(&e.youWonTimer, &e.youWonWave, e.host.OnEnterYouWon)
		if e.cfg.EnableHiscores && kp.Key == advanceKey {
			e.host.OnExitYouWon()
			e.beginHiscoreEntry()
		}

	case StateInputHiscore:
		e.bg = orColor(bgs.InputHiscore, e.bg)
		submitted := e.entry.Handle(kp)
		e.drawInputHiscore()
		if submitted {
			e.host.OnExitInputHiscore()
			e.submitHiscore()
			e.state = StateHiscores
			e.host.OnEnterHiscores()
		}

	case StateHiscores:
		e.bg = orColor(bgs.Hiscores, e.bg)
		e.drawHiscores()
		if kp.Key == advanceKey || kp.Quit {
			e.quit()
			return false
		}

	case StateGameplay:
		if e.paused {
			e.bg = orColor(bgs.Paused, e.bg)
			e.drawPaused()
		} else {
			e.host.Update(e)
		}
	}
	return true
}

// frameBanner counts a banner timer down, firing enter exactly once when it
// reaches zero. Gameplay keeps updating underneath; the banner is drawn on
// top once the timer has run out.
func (e *Engine) frameBanner(timer *int, wave *waveState, enter func()) {
	e.host.Update(e)
	if *timer == 0 {
		e.drawBanner(wave)
		return
	}
	*timer--
	if *timer == 0 {
		enter()
	}
}

func (e *Engine) beginHiscoreEntry() {
	e.state = StateInputHiscore
	e.entry.Reset(e.score)
	e.host.OnEnterInputHiscore()
}

// submitHiscore runs load-merge-persist for the pending entry. Failures are
// logged and the board shows whatever list is in memory.
func (e *Engine) submitHiscore() {
	item := e.entry.Item()

	list, rank, err := e.store.Submit(item)
	if err != nil {
		e.log.Error("could not save hiscores", "path", e.store.Path(), "err", err)
	}
	if list != nil {
		e.hiscores = list
		e.hiscoreRank = rank
	} else {
		e.hiscoreRank = -1
	}

	if e.recorder != nil {
		if err := e.recorder.Record(item); err != nil {
			e.log.Warn("could not archive hiscore", "err", err)
		}
	}
	e.log.Info("hiscore submitted", "name", item.Name, "score", item.Score, "rank", rank+1)
}

func (e *Engine) quit() {
	e.log.Debug("quit", "state", e.state)
	e.host.OnQuit()
}

// firstState is the state on frame one: title, instructions or gameplay,
// depending on which screens are enabled.
func (e *Engine) firstState() State {
	if e.cfg.EnableTitleScreen {
		return StateTitle
	}
	return e.afterTitle()
}

func (e *Engine) afterTitle() State {
	if e.cfg.EnableInstructionsScreen {
		return StateInstructions
	}
	return StateGameplay
}

func orColor(override *core.Color, fallback core.Color) core.Color {
	if override != nil {
		return *override
	}
	return fallback
}
