package engine

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/vovakirdan/tui-arcade-engine/internal/config"
	"github.com/vovakirdan/tui-arcade-engine/internal/core"
	"github.com/vovakirdan/tui-arcade-engine/internal/hiscore"
)

// testHost counts callbacks and lets a test decide what Update does.
type testHost struct {
	updates      int
	titles       int
	instructions int
	hooks        map[string]int
	onUpdate     func(e *Engine)
}

func newTestHost() *testHost {
	return &testHost{hooks: make(map[string]int)}
}

func (h *testHost) Update(e *Engine) {
	h.updates++
	if h.onUpdate != nil {
		h.onUpdate(e)
	}
}

func (h *testHost) DrawTitle(e *Engine) {
	h.titles++
	e.Screen().DrawTextCentered(2, "TITLE")
}

func (h *testHost) DrawInstructions(e *Engine) {
	h.instructions++
	e.Screen().DrawTextCentered(2, "HOW TO PLAY")
}

func (h *testHost) OnQuit()              { h.hooks["quit"]++ }
func (h *testHost) OnExitTitle()         { h.hooks["exit_title"]++ }
func (h *testHost) OnExitInstructions()  { h.hooks["exit_instructions"]++ }
func (h *testHost) OnEnterGameOver()     { h.hooks["enter_game_over"]++ }
func (h *testHost) OnExitGameOver()      { h.hooks["exit_game_over"]++ }
func (h *testHost) OnEnterYouWon()       { h.hooks["enter_you_won"]++ }
func (h *testHost) OnExitYouWon()        { h.hooks["exit_you_won"]++ }
func (h *testHost) OnEnterInputHiscore() { h.hooks["enter_input_hiscore"]++ }
func (h *testHost) OnExitInputHiscore()  { h.hooks["exit_input_hiscore"]++ }
func (h *testHost) OnEnterHiscores()     { h.hooks["enter_hiscores"]++ }

// nopHost checks that NopHooks satisfies the optional part of Host.
type nopHost struct{ NopHooks }

func (nopHost) Update(*Engine)           {}
func (nopHost) DrawTitle(*Engine)        {}
func (nopHost) DrawInstructions(*Engine) {}

var _ Host = nopHost{}

var (
	noKey    = core.KeyPress{}
	quitKey  = core.KeyPress{Quit: true}
	pauseKey = core.KeyPress{Pause: true, Key: 'p'}
	spaceKey = core.KeyPress{Key: ' '}
	leftKey  = core.KeyPress{Special: core.KeyLeft}
	rightKey = core.KeyPress{Special: core.KeyRight}
	enterKey = core.KeyPress{Special: core.KeyEnter}
)

func gameplayConfig() config.EngineConfig {
	cfg := config.DefaultEngineConfig()
	cfg.EnableTitleScreen = false
	cfg.EnableInstructionsScreen = false
	return cfg
}

func newTestEngine(t *testing.T, cfg config.EngineConfig, host Host) *Engine {
	t.Helper()
	exe := filepath.Join(t.TempDir(), "game")
	return New(exe, cfg, core.RuntimeConfig{ScreenW: 80, ScreenH: 30}, host)
}

func frames(t *testing.T, e *Engine, keys ...core.KeyPress) {
	t.Helper()
	for i, kp := range keys {
		if !e.Frame(kp) {
			t.Fatalf("Frame() #%d returned false, expected true", i+1)
		}
	}
}

func screenContains(s *core.Screen, text string) bool {
	return strings.Contains(s.String(), text)
}

func TestFirstFrameIsGameplayWhenIntroScreensDisabled(t *testing.T) {
	host := newTestHost()
	e := newTestEngine(t, gameplayConfig(), host)

	if e.State() != StateGameplay {
		t.Fatalf("State() = %v, expected Gameplay", e.State())
	}
	frames(t, e, noKey)
	if host.updates != 1 {
		t.Errorf("updates = %d, expected 1", host.updates)
	}
	if host.titles != 0 || host.instructions != 0 {
		t.Error("title and instructions should not be drawn")
	}
}

func TestTitleThenInstructionsThenGameplay(t *testing.T) {
	host := newTestHost()
	e := newTestEngine(t, config.DefaultEngineConfig(), host)

	frames(t, e, noKey)
	if e.State() != StateTitle || host.titles != 1 {
		t.Fatalf("State() = %v with %d title draws, expected Title", e.State(), host.titles)
	}
	if !screenContains(e.Screen(), "TITLE") {
		t.Error("title should be drawn into the screen")
	}

	frames(t, e, spaceKey)
	if e.State() != StateInstructions || host.hooks["exit_title"] != 1 {
		t.Fatalf("State() = %v, expected Instructions after one exit_title", e.State())
	}

	frames(t, e, noKey, spaceKey)
	if e.State() != StateGameplay || host.hooks["exit_instructions"] != 1 {
		t.Fatalf("State() = %v, expected Gameplay after one exit_instructions", e.State())
	}
	if host.updates != 0 {
		t.Errorf("updates = %d, expected none before gameplay", host.updates)
	}

	frames(t, e, noKey)
	if host.updates != 1 {
		t.Errorf("updates = %d, expected 1", host.updates)
	}
}

func TestTitleSkipsDisabledInstructions(t *testing.T) {
	cfg := config.DefaultEngineConfig()
	cfg.EnableInstructionsScreen = false
	e := newTestEngine(t, cfg, newTestHost())

	frames(t, e, spaceKey)
	if e.State() != StateGameplay {
		t.Errorf("State() = %v, expected Gameplay", e.State())
	}
}

func TestInstructionsFirstWhenTitleDisabled(t *testing.T) {
	cfg := config.DefaultEngineConfig()
	cfg.EnableTitleScreen = false
	e := newTestEngine(t, cfg, newTestHost())

	if e.State() != StateInstructions {
		t.Errorf("State() = %v, expected Instructions", e.State())
	}
}

func TestQuitConfirmYesQuits(t *testing.T) {
	host := newTestHost()
	e := newTestEngine(t, gameplayConfig(), host)

	frames(t, e, quitKey)
	if !e.QuitConfirmVisible() || e.QuitChoice() != ChoiceNo {
		t.Fatalf("dialog visible=%v choice=%v, expected visible with No", e.QuitConfirmVisible(), e.QuitChoice())
	}
	if host.updates != 0 {
		t.Error("gameplay should not update behind the dialog")
	}
	if !screenContains(e.Screen(), "Really quit?") {
		t.Error("dialog should be drawn")
	}

	frames(t, e, leftKey)
	if e.QuitChoice() != ChoiceYes {
		t.Fatalf("QuitChoice() = %v, expected Yes", e.QuitChoice())
	}

	if e.Frame(enterKey) {
		t.Error("Frame(Enter on Yes) = true, expected false")
	}
	if host.hooks["quit"] != 1 {
		t.Errorf("quit hook fired %d times, expected 1", host.hooks["quit"])
	}
}

func TestQuitConfirmNoResumes(t *testing.T) {
	host := newTestHost()
	e := newTestEngine(t, gameplayConfig(), host)

	frames(t, e, quitKey, leftKey, rightKey)
	if e.QuitChoice() != ChoiceNo {
		t.Fatalf("QuitChoice() = %v, expected No", e.QuitChoice())
	}
	frames(t, e, enterKey)
	if e.QuitConfirmVisible() {
		t.Fatal("dialog should close on Enter with No selected")
	}

	frames(t, e, noKey)
	if host.updates != 1 {
		t.Errorf("updates = %d, expected gameplay to resume", host.updates)
	}
	if host.hooks["quit"] != 0 {
		t.Error("quit hook should not fire")
	}
}

func TestQuitKeyTogglesDialogAndResetsChoice(t *testing.T) {
	e := newTestEngine(t, gameplayConfig(), newTestHost())

	frames(t, e, quitKey, leftKey, quitKey)
	if e.QuitConfirmVisible() {
		t.Fatal("second quit press should close the dialog")
	}
	frames(t, e, quitKey)
	if e.QuitChoice() != ChoiceNo {
		t.Errorf("QuitChoice() = %v, expected reset to No", e.QuitChoice())
	}
}

func TestQuitWithoutConfirmation(t *testing.T) {
	cfg := gameplayConfig()
	cfg.EnableQuitConfirmScreen = false
	host := newTestHost()
	e := newTestEngine(t, cfg, host)

	if e.Frame(quitKey) {
		t.Error("Frame(quit) = true, expected false")
	}
	if host.hooks["quit"] != 1 {
		t.Errorf("quit hook fired %d times, expected 1", host.hooks["quit"])
	}
	if host.updates != 0 {
		t.Error("no gameplay should run on the quitting frame")
	}
}

func TestQuitConfirmBackground(t *testing.T) {
	cfg := gameplayConfig()
	cfg.Background.Default = core.ColorBlue
	cfg.Background.QuitConfirm = nil
	e := newTestEngine(t, cfg, newTestHost())

	frames(t, e, noKey, quitKey)
	if e.Background() != core.ColorBlue {
		t.Errorf("Background() = %v, expected previous frame's blue", e.Background())
	}

	cfg.Background.QuitConfirm = core.ColorDarkCyan.Ptr()
	e = newTestEngine(t, cfg, newTestHost())
	frames(t, e, quitKey)
	if e.Background() != core.ColorDarkCyan {
		t.Errorf("Background() = %v, expected override dark_cyan", e.Background())
	}
}

func TestPauseStopsGameplay(t *testing.T) {
	host := newTestHost()
	e := newTestEngine(t, gameplayConfig(), host)

	frames(t, e, noKey, pauseKey)
	if !e.Paused() {
		t.Fatal("Paused() = false after pause key")
	}
	if host.updates != 1 {
		t.Errorf("updates = %d, expected 1", host.updates)
	}
	// Frame counter was 1 when the paused frame was drawn.
	if !screenContains(e.Screen(), PausedMessage(1)) {
		t.Errorf("screen should show %q", PausedMessage(1))
	}

	frames(t, e, noKey, noKey, pauseKey, noKey)
	if e.Paused() {
		t.Fatal("second pause key should resume")
	}
	if host.updates != 3 {
		t.Errorf("updates = %d, expected 3", host.updates)
	}
}

func TestPauseMaskedOutsideGameplay(t *testing.T) {
	host := newTestHost()
	e := newTestEngine(t, config.DefaultEngineConfig(), host)

	frames(t, e, pauseKey)
	if host.titles != 1 {
		t.Errorf("title draws = %d, expected the title to keep drawing", host.titles)
	}
	if screenContains(e.Screen(), "PAUSED") {
		t.Error("paused indicator should only appear during gameplay")
	}
}

func TestQuitWinsOverPause(t *testing.T) {
	e := newTestEngine(t, gameplayConfig(), newTestHost())

	frames(t, e, core.KeyPress{Quit: true, Pause: true})
	if e.Paused() {
		t.Error("pause should be ignored when quit is pressed in the same frame")
	}
	if !e.QuitConfirmVisible() {
		t.Error("quit should open the dialog")
	}
}

func TestPausedMessage(t *testing.T) {
	expected := []string{
		"      ", "  U   ", "  U E ", "P U E ", "P USE ",
		"P USED", "PAUSED", "PAUSED", "PAUSED", "PAUSED",
	}

	for i, want := range expected {
		if got := PausedMessage(i); got != want {
			t.Errorf("PausedMessage(%d) = %q, expected %q", i, got, want)
		}
		if got := PausedMessage(i + 20); got != want {
			t.Errorf("PausedMessage(%d) = %q, expected %q", i+20, got, want)
		}
	}
}

func TestGameOverEnterHookFiresOnceAfterTimer(t *testing.T) {
	cfg := gameplayConfig()
	cfg.GameOverFrames = 3
	host := newTestHost()
	// Calling SetStateGameOver every update must not restart the timer.
	host.onUpdate = func(e *Engine) { e.SetStateGameOver() }
	e := newTestEngine(t, cfg, host)

	frames(t, e, noKey)
	if e.State() != StateGameOver {
		t.Fatalf("State() = %v, expected GameOver", e.State())
	}

	frames(t, e, noKey, noKey)
	if host.hooks["enter_game_over"] != 0 {
		t.Fatal("enter hook fired before the timer ran out")
	}
	if screenContains(e.Screen(), "#####") {
		t.Error("banner should not be drawn while the timer runs")
	}

	frames(t, e, noKey)
	if host.hooks["enter_game_over"] != 1 {
		t.Fatalf("enter hook fired %d times, expected 1", host.hooks["enter_game_over"])
	}

	frames(t, e, noKey, noKey, noKey)
	if host.hooks["enter_game_over"] != 1 {
		t.Errorf("enter hook fired %d times, expected exactly once", host.hooks["enter_game_over"])
	}
	if !screenContains(e.Screen(), "#####") {
		t.Error("banner should be drawn once the timer ran out")
	}
	if host.updates != 7 {
		t.Errorf("updates = %d, expected gameplay to keep updating under the banner", host.updates)
	}
}

func TestYouWonEnterHook(t *testing.T) {
	cfg := gameplayConfig()
	cfg.YouWonFrames = 1
	host := newTestHost()
	host.onUpdate = func(e *Engine) { e.SetStateYouWon() }
	e := newTestEngine(t, cfg, host)

	frames(t, e, noKey, noKey)
	if e.State() != StateYouWon || host.hooks["enter_you_won"] != 1 {
		t.Fatalf("State() = %v, enter hooks %d, expected YouWon with one enter", e.State(), host.hooks["enter_you_won"])
	}

	frames(t, e, spaceKey)
	if e.State() != StateInputHiscore {
		t.Fatalf("State() = %v, expected InputHiscore", e.State())
	}
	if host.hooks["exit_you_won"] != 1 || host.hooks["enter_input_hiscore"] != 1 {
		t.Errorf("hooks = %v, expected exit_you_won and enter_input_hiscore once", host.hooks)
	}
}

func TestSpaceIgnoredOnBannerWhenHiscoresDisabled(t *testing.T) {
	cfg := gameplayConfig()
	cfg.EnableHiscores = false
	cfg.GameOverFrames = 1
	host := newTestHost()
	host.onUpdate = func(e *Engine) { e.SetStateGameOver() }
	e := newTestEngine(t, cfg, host)

	frames(t, e, noKey, noKey, spaceKey, spaceKey)
	if e.State() != StateGameOver {
		t.Errorf("State() = %v, expected to stay on GameOver", e.State())
	}
	if host.hooks["exit_game_over"] != 0 {
		t.Error("exit hook should not fire")
	}
}

type recorderFunc func(hiscore.Item) error

func (f recorderFunc) Record(item hiscore.Item) error { return f(item) }

func typeName(t *testing.T, e *Engine, name string) {
	t.Helper()
	for _, r := range name {
		frames(t, e, core.KeyPress{Key: r})
	}
}

func TestHiscoreFlow(t *testing.T) {
	cfg := gameplayConfig()
	cfg.GameOverFrames = 1
	host := newTestHost()
	host.onUpdate = func(e *Engine) {
		e.SetScore(95)
		e.SetStateGameOver()
	}
	e := newTestEngine(t, cfg, host)

	if err := os.WriteFile(e.HiscorePath(), []byte("BOB 100\nANN 90\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	var recorded []hiscore.Item
	e.SetRecorder(recorderFunc(func(item hiscore.Item) error {
		recorded = append(recorded, item)
		return nil
	}))

	frames(t, e, noKey, noKey, spaceKey)
	if e.State() != StateInputHiscore {
		t.Fatalf("State() = %v, expected InputHiscore", e.State())
	}
	if e.Entry().Score() != 95 || e.Entry().Caret() != 0 {
		t.Errorf("entry = score %d caret %d, expected 95 and 0", e.Entry().Score(), e.Entry().Caret())
	}

	typeName(t, e, "CAT")
	if e.Entry().Name() != "CAT" {
		t.Fatalf("Entry().Name() = %q, expected CAT", e.Entry().Name())
	}
	if !screenContains(e.Screen(), "Score: 95") {
		t.Error("entry screen should show the score")
	}

	frames(t, e, enterKey)
	if e.State() != StateHiscores {
		t.Fatalf("State() = %v, expected Hiscores", e.State())
	}
	if host.hooks["exit_input_hiscore"] != 1 || host.hooks["enter_hiscores"] != 1 {
		t.Errorf("hooks = %v, expected one exit_input_hiscore and one enter_hiscores", host.hooks)
	}

	list, rank := e.Hiscores()
	if rank != 1 || len(list) != 3 || list[1] != (hiscore.Item{Name: "CAT", Score: 95}) {
		t.Errorf("Hiscores() = %v rank %d, expected CAT second", list, rank)
	}
	data, err := os.ReadFile(e.HiscorePath())
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "BOB 100\nCAT 95\nANN 90\n" {
		t.Errorf("hiscore file = %q", data)
	}
	if len(recorded) != 1 || recorded[0].Name != "CAT" {
		t.Errorf("recorded = %v, expected CAT", recorded)
	}

	frames(t, e, noKey)
	if !screenContains(e.Screen(), "HISCORES") || !screenContains(e.Screen(), "CAT") {
		t.Error("board should list the hiscores")
	}

	if e.Frame(spaceKey) {
		t.Error("Frame(space) on the board = true, expected false")
	}
	if host.hooks["quit"] != 1 {
		t.Errorf("quit hook fired %d times, expected 1", host.hooks["quit"])
	}
}

func TestHiscoreEmptyNameIsAnonymous(t *testing.T) {
	cfg := gameplayConfig()
	cfg.GameOverFrames = 1
	host := newTestHost()
	host.onUpdate = func(e *Engine) { e.SetStateGameOver() }
	e := newTestEngine(t, cfg, host)

	var recorded []hiscore.Item
	e.SetRecorder(recorderFunc(func(item hiscore.Item) error {
		recorded = append(recorded, item)
		return nil
	}))

	frames(t, e, noKey, noKey, spaceKey, enterKey)
	list, rank := e.Hiscores()
	if rank != 0 || list[0].Name != hiscore.AnonymousName {
		t.Errorf("Hiscores() = %v rank %d, expected Anonymous first", list, rank)
	}
	if len(recorded) != 1 || recorded[0].Name != hiscore.AnonymousName {
		t.Errorf("recorded = %v, expected the archive to get the same name as the file", recorded)
	}
}

func TestZeroConfigBannerTimersStillFireEnterHooks(t *testing.T) {
	tests := []struct {
		name  string
		end   func(e *Engine)
		state State
		hook  string
	}{
		{"game over", (*Engine).SetStateGameOver, StateGameOver, "enter_game_over"},
		{"you won", (*Engine).SetStateYouWon, StateYouWon, "enter_you_won"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			host := newTestHost()
			host.onUpdate = tt.end
			e := newTestEngine(t, config.EngineConfig{}, host)

			for range 20 {
				frames(t, e, noKey)
			}
			if e.State() != tt.state {
				t.Fatalf("State() = %v, expected %v", e.State(), tt.state)
			}
			if host.hooks[tt.hook] != 1 {
				t.Errorf("%s fired %d times, expected 1", tt.hook, host.hooks[tt.hook])
			}
			if e.FPS() <= 0 {
				t.Errorf("FPS() = %d, expected a positive default", e.FPS())
			}
		})
	}
}

func TestHiscoreReadFailureStillShowsBoard(t *testing.T) {
	cfg := gameplayConfig()
	cfg.GameOverFrames = 1
	host := newTestHost()
	host.onUpdate = func(e *Engine) { e.SetStateGameOver() }
	e := newTestEngine(t, cfg, host)

	corrupt := "BOB not-a-number\n"
	if err := os.WriteFile(e.HiscorePath(), []byte(corrupt), 0o644); err != nil {
		t.Fatal(err)
	}

	frames(t, e, noKey, noKey, spaceKey)
	typeName(t, e, "ZED")
	frames(t, e, enterKey)

	if e.State() != StateHiscores {
		t.Fatalf("State() = %v, expected Hiscores despite the read failure", e.State())
	}
	if list, rank := e.Hiscores(); len(list) != 0 || rank != -1 {
		t.Errorf("Hiscores() = %v rank %d, expected empty", list, rank)
	}
	data, _ := os.ReadFile(e.HiscorePath())
	if string(data) != corrupt {
		t.Errorf("hiscore file = %q, expected it untouched", data)
	}
}

func TestQuitMaskedDuringNameEntry(t *testing.T) {
	cfg := gameplayConfig()
	cfg.GameOverFrames = 1
	host := newTestHost()
	host.onUpdate = func(e *Engine) { e.SetStateGameOver() }
	e := newTestEngine(t, cfg, host)

	frames(t, e, noKey, noKey, spaceKey, quitKey)
	if e.State() != StateInputHiscore {
		t.Fatalf("State() = %v, expected InputHiscore", e.State())
	}
	if screenContains(e.Screen(), "Really quit?") {
		t.Error("quit dialog should not be drawn during name entry")
	}

	frames(t, e, enterKey)
	if e.Frame(quitKey) {
		t.Error("quit on the board should end the session")
	}
}

func TestSinkReceivesFrame(t *testing.T) {
	cfg := gameplayConfig()
	cfg.Background.Default = core.ColorDarkBlue
	e := newTestEngine(t, cfg, newTestHost())

	var presented int
	var lastBG core.Color
	e.SetSink(SinkFunc(func(screen *core.Screen, bg core.Color) {
		presented++
		lastBG = bg
		if screen != e.Screen() {
			t.Error("sink should receive the engine's screen")
		}
	}))

	frames(t, e, noKey, noKey)
	if presented != 2 || lastBG != core.ColorDarkBlue {
		t.Errorf("presented %d frames with bg %v, expected 2 with dark_blue", presented, lastBG)
	}
}

func TestTimeAndCounters(t *testing.T) {
	e := newTestEngine(t, gameplayConfig(), newTestHost())

	start := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	now := start
	e.SetClock(func() time.Time { return now })

	frames(t, e, noKey)
	now = start.Add(2 * time.Second)
	frames(t, e, noKey, noKey)

	if e.AnimCounter() != 3 {
		t.Errorf("AnimCounter() = %d, expected 3", e.AnimCounter())
	}
	if want := 3 * e.DT(); e.Time() < want-1e-9 || e.Time() > want+1e-9 {
		t.Errorf("Time() = %v, expected %v", e.Time(), want)
	}
	if e.SimTime() != 2 {
		t.Errorf("SimTime() = %v, expected 2", e.SimTime())
	}
}

func TestFrameRateSettings(t *testing.T) {
	e := newTestEngine(t, gameplayConfig(), newTestHost())

	if e.FPS() != 12 || e.Delay() != 83333*time.Microsecond {
		t.Errorf("defaults = %d fps, %v delay, expected 12 fps, 83.333ms", e.FPS(), e.Delay())
	}

	e.SetFPS(20)
	if e.Delay() != 50*time.Millisecond || e.DT() != 0.05 {
		t.Errorf("SetFPS(20) gave delay %v dt %v", e.Delay(), e.DT())
	}

	e.SetDelay(25 * time.Millisecond)
	if e.FPS() != 40 {
		t.Errorf("SetDelay(25ms) gave %d fps, expected 40", e.FPS())
	}
}

func TestRuntimeTickRateOverridesConfig(t *testing.T) {
	exe := filepath.Join(t.TempDir(), "game")
	e := New(exe, gameplayConfig(), core.RuntimeConfig{TickRate: 30}, newTestHost())

	if e.FPS() != 30 {
		t.Errorf("FPS() = %d, expected 30", e.FPS())
	}
	if e.Screen().Width() != 80 || e.Screen().Height() != 30 {
		t.Errorf("screen = %dx%d, expected default 80x30", e.Screen().Width(), e.Screen().Height())
	}
}

func TestScore(t *testing.T) {
	e := newTestEngine(t, gameplayConfig(), newTestHost())

	e.SetScore(10)
	e.AddScore(5)
	e.AddScore(-3)
	if e.Score() != 12 {
		t.Errorf("Score() = %d, expected 12", e.Score())
	}
}

func TestExePaths(t *testing.T) {
	e := New("/opt/games/catch", gameplayConfig(), core.DefaultConfig(), newTestHost())

	if e.ExeDir() != "/opt/games" || e.ExeFile() != "catch" {
		t.Errorf("ExeDir/ExeFile = %q/%q", e.ExeDir(), e.ExeFile())
	}
	if e.HiscorePath() != filepath.Join("/opt/games", hiscore.FileName) {
		t.Errorf("HiscorePath() = %q", e.HiscorePath())
	}
}

func TestRunStopsWhenFrameReturnsFalse(t *testing.T) {
	cfg := gameplayConfig()
	cfg.EnableQuitConfirmScreen = false
	host := newTestHost()
	e := newTestEngine(t, cfg, host)

	script := []core.KeyPress{noKey, noKey, noKey, quitKey}
	polls := 0
	in := InputFunc(func() core.KeyPress {
		kp := script[polls]
		polls++
		return kp
	})

	var sleeps []time.Duration
	e.SetSleep(func(d time.Duration) { sleeps = append(sleeps, d) })

	e.Run(in)

	if polls != 4 {
		t.Errorf("polls = %d, expected 4", polls)
	}
	if len(sleeps) != 3 {
		t.Errorf("sleeps = %d, expected one after each continuing frame", len(sleeps))
	}
	if host.updates != 3 || host.hooks["quit"] != 1 {
		t.Errorf("updates = %d, quits = %d, expected 3 and 1", host.updates, host.hooks["quit"])
	}
}

func TestRunAppliesFPSChangeToNextWait(t *testing.T) {
	cfg := gameplayConfig()
	cfg.EnableQuitConfirmScreen = false
	host := newTestHost()
	host.onUpdate = func(e *Engine) { e.SetFPS(50) }
	e := newTestEngine(t, cfg, host)

	script := []core.KeyPress{noKey, quitKey}
	polls := 0
	var sleeps []time.Duration
	e.SetSleep(func(d time.Duration) { sleeps = append(sleeps, d) })

	e.Run(InputFunc(func() core.KeyPress {
		kp := script[polls]
		polls++
		return kp
	}))

	if len(sleeps) != 1 || sleeps[0] != 20*time.Millisecond {
		t.Errorf("sleeps = %v, expected [20ms]", sleeps)
	}
}

func TestPadRightCountsRunes(t *testing.T) {
	tests := []struct {
		in       string
		width    int
		expected string
	}{
		{"Zoe", 5, "Zoe  "},
		{"Zoë", 5, "Zoë  "},
		{"ÅÄÖ", 4, "ÅÄÖ "},
		{"LONGNAME", 4, "LONGNAME"},
	}

	for _, tt := range tests {
		if got := padRight(tt.in, tt.width); got != tt.expected {
			t.Errorf("padRight(%q, %d) = %q, expected %q", tt.in, tt.width, got, tt.expected)
		}
	}
}

func TestHiscoreBoardAlignsNonASCIINames(t *testing.T) {
	cfg := gameplayConfig()
	cfg.Hiscores.Name = core.HiliteStyle{FG: core.ColorWhite, BG: core.ColorDarkBlue}
	e := newTestEngine(t, cfg, newTestHost())

	e.hiscores = hiscore.List{{Name: "Zoe", Score: 20}, {Name: "Zoë", Score: 10}}
	e.hiscoreRank = -1
	e.drawHiscores()

	rowW := 4 + 8 + 2 + hiscore.MaxNameLen
	lastCol := (e.Screen().Width()-rowW)/2 + rowW - 1
	for y := 3; y <= 4; y++ {
		if got := e.Screen().GetCell(lastCol, y).BG; got != core.ColorDarkBlue {
			t.Errorf("row %d last name cell BG = %v, expected the name field to span the column", y, got)
		}
	}
}

func TestPausedMessageCentered(t *testing.T) {
	e := newTestEngine(t, gameplayConfig(), newTestHost())
	e.animCounter = 6
	e.drawPaused()

	msg := PausedMessage(6)
	x := (e.Screen().Width() - len([]rune(msg))) / 2
	if got := e.Screen().Row(e.Screen().Height() / 2)[x : x+len(msg)]; got != msg {
		t.Errorf("paused row at %d = %q, expected %q", x, got, msg)
	}
}

func TestBannerAnnouncesNewHiscore(t *testing.T) {
	full := make([]string, hiscore.MaxItems)
	for i := range full {
		full[i] = "BOB 50"
	}
	fullFile := strings.Join(full, "\n") + "\n"

	tests := []struct {
		name     string
		file     string
		score    int
		hiscores bool
		expected bool
	}{
		{"beats a full board", fullFile, 95, true, true},
		{"below a full board", fullFile, 10, true, false},
		{"ties the last entry", fullFile, 50, true, false},
		{"board has room", "BOB 50\n", 1, true, true},
		{"zero score", "", 0, true, false},
		{"hiscores disabled", "", 95, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := gameplayConfig()
			cfg.EnableHiscores = tt.hiscores
			cfg.GameOverFrames = 1
			host := newTestHost()
			host.onUpdate = func(e *Engine) {
				e.SetScore(tt.score)
				e.SetStateGameOver()
			}
			e := newTestEngine(t, cfg, host)
			if tt.file != "" {
				if err := os.WriteFile(e.HiscorePath(), []byte(tt.file), 0o644); err != nil {
					t.Fatal(err)
				}
			}

			frames(t, e, noKey, noKey, noKey)
			if e.NewHiscore() != tt.expected {
				t.Errorf("NewHiscore() = %v, expected %v", e.NewHiscore(), tt.expected)
			}
			if got := screenContains(e.Screen(), "NEW HISCORE!"); got != tt.expected {
				t.Errorf("banner shows NEW HISCORE = %v, expected %v", got, tt.expected)
			}
		})
	}
}
