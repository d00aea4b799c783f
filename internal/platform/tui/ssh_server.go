package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"

	"github.com/vovakirdan/tui-arcade-engine/internal/config"
	"github.com/vovakirdan/tui-arcade-engine/internal/core"
	"github.com/vovakirdan/tui-arcade-engine/internal/registry"
	"github.com/vovakirdan/tui-arcade-engine/internal/storage"
)

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	// Address is the host:port to listen on (e.g., ":23234").
	Address string

	// HostKeyPath is the path to the host key file.
	// If empty, a key will be auto-generated at ~/.arcade/host_key.
	HostKeyPath string

	// DBPath is the path to the hiscore archive.
	DBPath string

	// IdleTimeout is how long to wait before closing idle connections.
	IdleTimeout time.Duration

	// Engine is shared by every session. ExePath decides where hiscores.txt
	// lives, so all players on one server share the table.
	Engine  config.EngineConfig
	ExePath string

	// FPS overrides Engine.FPS when positive.
	FPS int

	// ConfigPath and Preset are passed to Configurable games.
	ConfigPath string
	Preset     config.DifficultyPreset
}

// DefaultSSHServerConfig returns a config with sensible defaults.
func DefaultSSHServerConfig() SSHServerConfig {
	return SSHServerConfig{
		Address:     ":23234",
		DBPath:      storage.DefaultPath,
		IdleTimeout: 30 * time.Minute,
		Engine:      config.DefaultEngineConfig(),
	}
}

// SSHServer wraps a Wish SSH server for the arcade.
type SSHServer struct {
	config SSHServerConfig
	server *ssh.Server
	store  *storage.Store
	logger *log.Logger
}

// NewSSHServer creates a new SSH server with the given configuration.
func NewSSHServer(cfg SSHServerConfig) (*SSHServer, error) {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "arcade-ssh",
	})

	// The archive is optional; sessions still write hiscores.txt without it.
	store, err := storage.Open(cfg.DBPath)
	if err != nil {
		logger.Warn("could not open hiscore archive", "error", err)
		store = nil
	}

	srv := &SSHServer{
		config: cfg,
		store:  store,
		logger: logger,
	}

	hostKeyPath := cfg.HostKeyPath
	if hostKeyPath == "" {
		home, homeErr := os.UserHomeDir()
		if homeErr != nil {
			return nil, fmt.Errorf("cannot get home directory: %w", homeErr)
		}
		hostKeyPath = filepath.Join(home, ".arcade", "host_key")
	}

	if mkdirErr := os.MkdirAll(filepath.Dir(hostKeyPath), 0o700); mkdirErr != nil {
		return nil, fmt.Errorf("cannot create host key directory: %w", mkdirErr)
	}

	opts := []ssh.Option{
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(srv.teaHandler),
			srv.loggingMiddleware,
		),
	}

	server, err := wish.NewServer(opts...)
	if err != nil {
		if store != nil {
			store.Close()
		}
		return nil, fmt.Errorf("cannot create SSH server: %w", err)
	}

	srv.server = server
	return srv, nil
}

// teaHandler creates a Bubble Tea program for each SSH session.
// Every session gets its own engine; only hiscores.txt and the archive are shared.
func (s *SSHServer) teaHandler(sess ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, ok := sess.Pty()
	if !ok {
		s.logger.Warn("no PTY requested", "user", sess.User())
		return nil, nil
	}

	rt := core.RuntimeConfig{
		ScreenW:  pty.Window.Width,
		ScreenH:  pty.Window.Height,
		TickRate: s.config.FPS,
		Seed:     time.Now().UnixNano(),
	}

	model := NewSessionModel(SessionOptions{
		Options: Options{
			Engine:    s.config.Engine,
			Runtime:   rt,
			ExePath:   s.config.ExePath,
			Archive:   s.store,
			Logger:    s.logger.With("user", sess.User()),
			Renderer:  bubbletea.MakeRenderer(sess),
			StayOnEnd: true,
		},
		ConfigPath: s.config.ConfigPath,
		Preset:     s.config.Preset,
	})

	// "ssh -t host catch" skips the menu.
	if cmd := sess.Command(); len(cmd) > 0 {
		if registry.Exists(cmd[0]) {
			model = model.WithGame(cmd[0])
		} else {
			s.logger.Warn("unknown game requested", "user", sess.User(), "game", cmd[0])
		}
	}

	return model, []tea.ProgramOption{
		tea.WithAltScreen(),
	}
}

// loggingMiddleware logs SSH session events.
func (s *SSHServer) loggingMiddleware(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		start := time.Now()
		s.logger.Info("session started",
			"user", sess.User(),
			"remote", sess.RemoteAddr().String(),
		)
		next(sess)
		s.logger.Info("session ended",
			"user", sess.User(),
			"remote", sess.RemoteAddr().String(),
			"duration", time.Since(start).Round(time.Second),
		)
	}
}

// ListenAndServe starts the SSH server and blocks until shutdown.
func (s *SSHServer) ListenAndServe() error {
	s.logger.Info("starting SSH server", "address", s.config.Address)

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-done:
		s.logger.Info("shutting down...")
	case err := <-errCh:
		s.logger.Error("server error", "error", err)
		if s.store != nil {
			s.store.Close()
		}
		return err
	}
	return s.Shutdown()
}

// Shutdown gracefully stops the server.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	err := s.server.Shutdown(ctx)
	if s.store != nil {
		s.store.Close()
	}
	return err
}

// Addr returns the server's listen address string.
func (s *SSHServer) Addr() string {
	return s.config.Address
}

// SessionOptions configures a SessionModel.
type SessionOptions struct {
	Options

	ConfigPath string
	Preset     config.DifficultyPreset
}

type sessionView int

const (
	viewMenu sessionView = iota
	viewGame
	viewScores
)

// SessionModel manages the full arcade session flow: menu -> game -> menu.
// This is the top-level model used for SSH sessions.
type SessionModel struct {
	opts       SessionOptions
	view       sessionView
	menu       MenuModel
	scoreboard ScoreboardModel
	game       Model
	errMsg     string
	notice     string
	quitting   bool
}

// NewSessionModel creates a session that starts on the game picker.
func NewSessionModel(opts SessionOptions) SessionModel {
	opts.StayOnEnd = true
	if opts.Renderer == nil {
		opts.Renderer = lipgloss.DefaultRenderer()
	}
	return SessionModel{
		opts: opts,
		menu: NewMenuModel(opts.Runtime.ScreenW, opts.Runtime.ScreenH),
	}
}

// WithGame returns a copy of the session that starts directly in game id.
func (m SessionModel) WithGame(id string) SessionModel {
	if err := m.startGame(id); err != nil {
		m.errMsg = err.Error()
	}
	return m
}

// startGame replaces the current view with a fresh engine session.
func (m *SessionModel) startGame(id string) error {
	game, err := registry.CreateConfigured(id, m.opts.ConfigPath, m.opts.Preset)
	if err != nil {
		return err
	}
	opts := m.opts.Options
	opts.Runtime.Seed = time.Now().UnixNano()
	m.game = NewModel(game, opts)
	m.view = viewGame
	m.errMsg = ""
	m.notice = ""
	return nil
}

func (m *SessionModel) showMenu() {
	m.menu = NewMenuModel(m.opts.Runtime.ScreenW, m.opts.Runtime.ScreenH)
	m.view = viewMenu
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	if m.view == viewGame {
		return m.game.Init()
	}
	return m.menu.Init()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.opts.Runtime.ScreenW = wsm.Width
		m.opts.Runtime.ScreenH = wsm.Height
	}

	switch m.view {
	case viewGame:
		return m.updateGame(msg)
	case viewScores:
		return m.updateScores(msg)
	}
	return m.updateMenu(msg)
}

// updateMenu handles updates on the game picker. The menu's own tea.Quit is
// dropped unless the player actually wants to leave.
func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	newMenu, cmd := m.menu.Update(msg)
	if menuModel, ok := newMenu.(MenuModel); ok {
		m.menu = menuModel
	}

	switch {
	case m.menu.IsQuitting():
		m.quitting = true
		return m, tea.Quit

	case m.menu.WantsScoreboard():
		m.scoreboard = NewScoreboardModel(m.opts.Archive, m.opts.Runtime.ScreenW, m.opts.Runtime.ScreenH)
		m.view = viewScores
		return m, m.scoreboard.Init()

	case m.menu.Selected() != nil:
		if err := m.startGame(m.menu.Selected().ID); err != nil {
			m.errMsg = err.Error()
			m.showMenu()
			return m, nil
		}
		return m, m.game.Init()
	}

	return m, cmd
}

// updateGame runs the engine session and returns to the menu when it ends.
func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.game.Update(msg)
	if gameModel, ok := newModel.(Model); ok {
		m.game = gameModel
	}

	if m.game.Ended() {
		notice, err := sessionSummary(m.opts.Archive, m.game.SessionID())
		if err != nil && m.opts.Logger != nil {
			m.opts.Logger.Warn("could not read session hiscores", "err", err)
		}
		m.notice = notice
		m.showMenu()
		return m, nil
	}
	return m, cmd
}

func (m SessionModel) updateScores(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.scoreboard.Update(msg)
	if sb, ok := newModel.(ScoreboardModel); ok {
		m.scoreboard = sb
	}

	switch {
	case m.scoreboard.IsQuitting():
		m.quitting = true
		return m, tea.Quit
	case m.scoreboard.IsGoingBack():
		m.showMenu()
		return m, nil
	}
	return m, cmd
}

// View renders the current view.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.view {
	case viewGame:
		return m.game.View()
	case viewScores:
		return m.scoreboard.View()
	}

	view := m.menu.View()
	if m.notice != "" {
		noticeStyle := m.opts.Renderer.NewStyle().Foreground(lipgloss.Color("10"))
		view += "\n" + centerText(noticeStyle.Render(m.notice), m.opts.Runtime.ScreenW)
	}
	if m.errMsg != "" {
		errStyle := m.opts.Renderer.NewStyle().Foreground(lipgloss.Color("9"))
		view += "\n" + centerText(errStyle.Render(m.errMsg), m.opts.Runtime.ScreenW)
	}
	return view
}

// Notice returns the summary of the last finished game, if any.
func (m SessionModel) Notice() string {
	return m.notice
}

// sessionSummary describes what one engine session added to the archive.
func sessionSummary(store *storage.Store, sessionID string) (string, error) {
	if store == nil || sessionID == "" {
		return "", nil
	}
	records, err := store.SessionHiscores(sessionID)
	if err != nil {
		return "", err
	}
	if len(records) == 0 {
		return "", nil
	}
	last := records[len(records)-1]
	return fmt.Sprintf("Archived: %s %d", last.Name, last.Score), nil
}

// CurrentView reports which screen the session shows: "menu", "game" or "scores".
func (m SessionModel) CurrentView() string {
	switch m.view {
	case viewGame:
		return "game"
	case viewScores:
		return "scores"
	}
	return "menu"
}
