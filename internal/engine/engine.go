// Package engine is the run-loop and screen state machine shared by every game.
//
// A game implements Host and owns gameplay. The engine owns everything around
// it: title and instructions sequencing, pause, the quit confirmation dialog,
// the game over and you won banners, hiscore name entry and the hiscore board.
// Each call to Frame consumes one input snapshot, draws into a core.Screen and
// hands it to a Sink; Run drives Frame at a fixed rate until the session ends.
package engine

import (
	"io"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-arcade-engine/internal/config"
	"github.com/vovakirdan/tui-arcade-engine/internal/core"
	"github.com/vovakirdan/tui-arcade-engine/internal/hiscore"
	"github.com/vovakirdan/tui-arcade-engine/internal/timing"
)

// Engine is the per-session state. It is not safe for concurrent use:
// Frame and every Host callback run on the goroutine driving the loop.
type Engine struct {
	cfg  config.EngineConfig
	host Host
	log  *log.Logger

	exePath string
	exeDir  string
	exeFile string

	driver   *timing.Driver
	screen   *core.Screen
	sink     Sink
	store    *hiscore.Store
	recorder Recorder

	state       State
	paused      bool
	quitConfirm bool
	quitChoice  QuitChoice

	gameOverTimer int
	youWonTimer   int
	gameOverWave  waveState
	youWonWave    waveState

	score       int
	entry       hiscore.Entry
	hiscores    hiscore.List
	hiscoreRank int
	newHiscore  bool

	input       core.KeyPress
	bg          core.Color
	animCounter int
	time        float64

	now          func() time.Time
	clockStarted bool
	clockStart   time.Time
	simTime      float64
}

// New creates an engine for host. exePath is the path of the running
// executable; the hiscore file lives next to it. rt supplies the screen size
// and an optional frame rate override (TickRate > 0 wins over cfg.FPS).
func New(exePath string, cfg config.EngineConfig, rt core.RuntimeConfig, host Host) *Engine {
	cfg = cfg.Normalized()
	w, h := rt.ScreenW, rt.ScreenH
	if w <= 0 || h <= 0 {
		def := core.DefaultConfig()
		w, h = def.ScreenW, def.ScreenH
	}
	fps := cfg.FPS
	if rt.TickRate > 0 {
		fps = rt.TickRate
	}

	e := &Engine{
		cfg:          cfg,
		host:         host,
		log:          log.New(io.Discard),
		exePath:      exePath,
		exeDir:       filepath.Dir(exePath),
		exeFile:      filepath.Base(exePath),
		driver:       timing.NewDriver(fps),
		screen:       core.NewScreen(w, h),
		hiscoreRank:  -1,
		bg:           cfg.Background.Default,
		now:          time.Now,
		gameOverWave: gameOverWave(),
		youWonWave:   youWonWave(),
	}
	e.store = hiscore.NewStore(e.exeDir)
	e.state = e.firstState()
	return e
}

// SetLogger replaces the logger. A nil logger discards output.
func (e *Engine) SetLogger(l *log.Logger) {
	if l == nil {
		l = log.New(io.Discard)
	}
	e.log = l
}

// Logger returns the engine's logger so hosts can log with the same prefix.
func (e *Engine) Logger() *log.Logger {
	return e.log
}

// SetSink sets where finished frames are presented. Without a sink frames
// are drawn but not shown, which is what tests want.
func (e *Engine) SetSink(s Sink) {
	e.sink = s
}

// SetRecorder attaches an archive that receives every submitted hiscore.
func (e *Engine) SetRecorder(r Recorder) {
	e.recorder = r
}

// SetClock replaces the wall clock used for SimTime.
func (e *Engine) SetClock(now func() time.Time) {
	if now == nil {
		now = time.Now
	}
	e.now = now
}

// SetSleep replaces the wait between frames used by Run.
func (e *Engine) SetSleep(sleep func(time.Duration)) {
	e.driver.SetSleep(sleep)
}

// Run drives Frame at the configured rate, polling in once per frame, until
// the session ends. Frame-rate changes made by the host apply to the next wait.
func (e *Engine) Run(in InputSource) {
	e.log.Debug("run", "fps", e.driver.FPS(), "state", e.state, "hiscores", e.store.Path())
	e.driver.Run(func() bool {
		return e.Frame(in.Poll())
	})
}

// tickClock starts the simulation clock on the first frame and refreshes
// the elapsed time on every frame after it.
func (e *Engine) tickClock() {
	now := e.now()
	if !e.clockStarted {
		e.clockStarted = true
		e.clockStart = now
	}
	e.simTime = now.Sub(e.clockStart).Seconds()
}

// SetFPS changes the frame rate; delay and DT follow immediately.
func (e *Engine) SetFPS(fps int) { e.driver.SetFPS(fps) }

// SetDelay changes the per-frame delay; FPS and DT follow immediately.
func (e *Engine) SetDelay(d time.Duration) { e.driver.SetDelay(d) }

func (e *Engine) FPS() int             { return e.driver.FPS() }
func (e *Engine) Delay() time.Duration { return e.driver.Delay() }

// DT returns the frame interval in seconds.
func (e *Engine) DT() float64 { return e.driver.DT() }

// Score returns the score that will be offered for the hiscore list.
func (e *Engine) Score() int { return e.score }

// SetScore sets the score. Hosts own scoring; the engine only reads it when
// name entry begins.
func (e *Engine) SetScore(score int) { e.score = score }

// AddScore adds delta to the score.
func (e *Engine) AddScore(delta int) { e.score += delta }

// SetStateGameOver switches to the game over screen and arms its banner
// timer. Calling it while already on that screen does not restart the timer,
// and it is ignored once name entry or the hiscore board has started.
func (e *Engine) SetStateGameOver() {
	if !e.canEndGame(StateGameOver) {
		return
	}
	e.state = StateGameOver
	e.gameOverTimer = e.cfg.GameOverFrames
	e.checkNewHiscore()
	e.log.Debug("game over", "score", e.score)
}

// SetStateYouWon is the winning counterpart of SetStateGameOver.
func (e *Engine) SetStateYouWon() {
	if !e.canEndGame(StateYouWon) {
		return
	}
	e.state = StateYouWon
	e.youWonTimer = e.cfg.YouWonFrames
	e.checkNewHiscore()
	e.log.Debug("you won", "score", e.score)
}

// checkNewHiscore decides whether the banner announces a new hiscore. The
// stored list is read once, when the game ends.
func (e *Engine) checkNewHiscore() {
	e.newHiscore = false
	if !e.cfg.EnableHiscores || e.score <= 0 {
		return
	}
	list, err := e.store.Load()
	if err != nil {
		e.log.Warn("could not read hiscores", "path", e.store.Path(), "err", err)
		return
	}
	e.newHiscore = list.Qualifies(e.score)
}

// NewHiscore reports whether the score that ended the game makes the board.
func (e *Engine) NewHiscore() bool { return e.newHiscore }

func (e *Engine) canEndGame(target State) bool {
	switch e.state {
	case target, StateInputHiscore, StateHiscores:
		return false
	}
	return true
}

// State returns the active top-level screen.
func (e *Engine) State() State { return e.state }

// Paused reports whether gameplay is paused.
func (e *Engine) Paused() bool { return e.paused }

// QuitConfirmVisible reports whether the quit confirmation dialog is open.
func (e *Engine) QuitConfirmVisible() bool { return e.quitConfirm }

// QuitChoice returns the selected quit dialog button.
func (e *Engine) QuitChoice() QuitChoice { return e.quitChoice }

// AnimCounter returns the number of completed frames.
func (e *Engine) AnimCounter() int { return e.animCounter }

// Time returns the animation time in seconds: the sum of DT over completed frames.
func (e *Engine) Time() float64 { return e.time }

// SimTime returns wall-clock seconds since the first frame started.
func (e *Engine) SimTime() float64 { return e.simTime }

// Screen returns the frame buffer hosts draw into.
func (e *Engine) Screen() *core.Screen { return e.screen }

// Input returns the snapshot passed to the current frame.
func (e *Engine) Input() core.KeyPress { return e.input }

// Background returns the background selected by the last frame.
func (e *Engine) Background() core.Color { return e.bg }

// Entry returns the pending hiscore entry.
func (e *Engine) Entry() *hiscore.Entry { return &e.entry }

// Hiscores returns the list shown on the board and the rank of this
// session's entry in it, or -1 if the entry did not make the list.
func (e *Engine) Hiscores() (hiscore.List, int) { return e.hiscores, e.hiscoreRank }

// HiscorePath returns the path of the hiscore file.
func (e *Engine) HiscorePath() string { return e.store.Path() }

// ExePath returns the executable path the engine was created with.
func (e *Engine) ExePath() string { return e.exePath }

// ExeDir returns the directory containing the executable.
func (e *Engine) ExeDir() string { return e.exeDir }

// ExeFile returns the executable's file name.
func (e *Engine) ExeFile() string { return e.exeFile }

// Config returns the engine configuration.
func (e *Engine) Config() config.EngineConfig { return e.cfg }
