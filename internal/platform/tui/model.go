package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-arcade-engine/internal/config"
	"github.com/vovakirdan/tui-arcade-engine/internal/core"
	"github.com/vovakirdan/tui-arcade-engine/internal/engine"
	"github.com/vovakirdan/tui-arcade-engine/internal/registry"
	"github.com/vovakirdan/tui-arcade-engine/internal/storage"
)

// maxQueuedKeys bounds how many key events wait for upcoming frames.
// Beyond it, new events are merged into the last queued snapshot.
const maxQueuedKeys = 8

// Options configures one engine session.
type Options struct {
	Engine  config.EngineConfig
	Runtime core.RuntimeConfig

	// ExePath decides where hiscores.txt lives.
	ExePath string

	// Archive, if set, receives every submitted hiscore.
	Archive *storage.Store

	Logger   *log.Logger
	Renderer *lipgloss.Renderer

	// StayOnEnd keeps the program running when the session ends, so an
	// outer model (the SSH menu) can take over.
	StayOnEnd bool
}

// frameSink keeps the last presented frame as a rendered string.
type frameSink struct {
	renderer *lipgloss.Renderer
	view     string
}

func (f *frameSink) Present(screen *core.Screen, bg core.Color) {
	f.view = RenderScreenWith(f.renderer, screen, bg)
}

// Model is the Bubble Tea model for one engine session.
// Key events are queued and handed to the engine one per frame.
type Model struct {
	game      registry.Game
	engine    *engine.Engine
	keys      KeyMap
	queue     *[]core.KeyPress
	sink      *frameSink
	recorder  *storage.Recorder
	stayOnEnd bool
	ended     bool
	quitting  bool
}

// NewModel creates a session for game. The game is reset with the runtime
// config before the first frame.
func NewModel(game registry.Game, opts Options) Model {
	rt := opts.Runtime
	if rt.Seed == 0 {
		rt.Seed = time.Now().UnixNano()
	}
	if rt.ScreenW <= 0 || rt.ScreenH <= 0 {
		def := core.DefaultConfig()
		rt.ScreenW, rt.ScreenH = def.ScreenW, def.ScreenH
	}
	renderer := opts.Renderer
	if renderer == nil {
		renderer = lipgloss.DefaultRenderer()
	}

	game.Reset(rt)

	e := engine.New(opts.ExePath, opts.Engine, rt, game)
	e.SetLogger(opts.Logger)
	var recorder *storage.Recorder
	if opts.Archive != nil {
		recorder = opts.Archive.NewRecorder(game.ID())
		e.SetRecorder(recorder)
	}
	sink := &frameSink{renderer: renderer}
	e.SetSink(sink)

	queue := make([]core.KeyPress, 0, maxQueuedKeys)
	return Model{
		game:      game,
		engine:    e,
		keys:      DefaultKeyMap(),
		queue:     &queue,
		sink:      sink,
		recorder:  recorder,
		stayOnEnd: opts.StayOnEnd,
	}
}

// Init starts the frame loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.engine.Delay())
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.ended {
		return m, nil
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Screenshot) {
			m.saveScreenshot()
			return m, nil
		}
		m.enqueue(m.keys.Map(msg))
		return m, nil

	case tea.WindowSizeMsg:
		m.engine.Screen().Resize(msg.Width, msg.Height)
		return m, nil

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

func (m Model) enqueue(kp core.KeyPress) {
	if kp.Empty() {
		return
	}
	q := *m.queue
	if len(q) == maxQueuedKeys {
		q[len(q)-1].Merge(kp)
		return
	}
	*m.queue = append(q, kp)
}

func (m Model) dequeue() core.KeyPress {
	q := *m.queue
	if len(q) == 0 {
		return core.KeyPress{}
	}
	kp := q[0]
	*m.queue = append(q[:0], q[1:]...)
	return kp
}

// handleTick runs one engine frame.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.engine.Frame(m.dequeue()) {
		return m, tickCmd(m.engine.Delay())
	}

	m.ended = true
	if m.stayOnEnd {
		return m, nil
	}
	m.quitting = true
	return m, tea.Quit
}

// saveScreenshot saves the current screen to ~/.arcade/screenshots.
func (m Model) saveScreenshot() {
	logger := m.engine.Logger()

	home, err := os.UserHomeDir()
	if err != nil {
		logger.Warn("screenshot: no home directory", "err", err)
		return
	}
	dir := filepath.Join(home, ".arcade", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		logger.Warn("screenshot: cannot create directory", "dir", dir, "err", err)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))
	if err := os.WriteFile(path, []byte(m.engine.Screen().String()), 0o600); err != nil {
		logger.Warn("screenshot: cannot write", "path", path, "err", err)
		return
	}
	logger.Info("screenshot saved", "path", path)
}

// View renders the last presented frame.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	return m.sink.view
}

// Ended reports whether the engine finished the session.
func (m Model) Ended() bool {
	return m.ended
}

// SessionID returns the archive session id, or "" when there is no archive.
func (m Model) SessionID() string {
	if m.recorder == nil {
		return ""
	}
	return m.recorder.SessionID()
}

// Engine returns the session's engine.
func (m Model) Engine() *engine.Engine {
	return m.engine
}

// Run starts a Bubble Tea program for one session of game and blocks until
// the player leaves it.
func Run(game registry.Game, opts Options) error {
	opts.StayOnEnd = false
	p := tea.NewProgram(
		NewModel(game, opts),
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
