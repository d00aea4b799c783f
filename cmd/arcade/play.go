package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-arcade-engine/internal/config"
	"github.com/vovakirdan/tui-arcade-engine/internal/core"
	"github.com/vovakirdan/tui-arcade-engine/internal/platform/console"
	"github.com/vovakirdan/tui-arcade-engine/internal/platform/tui"
	"github.com/vovakirdan/tui-arcade-engine/internal/registry"
	"github.com/vovakirdan/tui-arcade-engine/internal/storage"
)

var (
	flagConfig     string
	flagDifficulty string
	flagLogPath    string
	flagBackend    string
)

var playCmd = &cobra.Command{
	Use:   "play <game>",
	Short: "Play a game",
	Long: `Start playing the specified game.

Controls:
  Space        - Continue (title, instructions, game over, hiscores)
  Arrows       - Move / select
  P            - Pause
  Esc/Ctrl+C   - Quit (asks for confirmation)
  Ctrl+S       - Save a screenshot to ~/.arcade/screenshots

Difficulty options:
  easy   - Start at lowest difficulty, progresses to max
  normal - Start at 30% difficulty, progresses to max
  hard   - Start at 70% difficulty, progresses to max
  fixed  - No progression, stays at config's initial level

Examples:
  arcade play catch
  arcade play catch --difficulty hard
  arcade play catch --config ./my-catch.yaml
  arcade play catch --log ./engine.log
  arcade play flappy --backend console`,
	Args: cobra.ExactArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	playCmd.Flags().StringVar(&flagLogPath, "log", "", "Write engine logs to this file")
	playCmd.Flags().StringVar(&flagBackend, "backend", "tui", "Terminal front end: tui (Bubble Tea) or console (tcell)")

	// menu shares the game flags
	menuCmd.Flags().AddFlagSet(playCmd.Flags())
}

func runPlay(_ *cobra.Command, args []string) {
	gameID := args[0]

	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown game %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'arcade list' to see available games.")
		os.Exit(1)
	}

	game, err := registry.CreateConfigured(gameID, flagConfig, config.DifficultyPreset(flagDifficulty))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	opts, cleanup, err := sessionOptions()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	runErr := runSession(game, opts)
	cleanup()

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}

// runSession plays one session of game on the front end picked by --backend.
func runSession(game registry.Game, opts tui.Options) error {
	switch flagBackend {
	case "console":
		return runConsole(game, opts)
	case "tui", "":
		return tui.Run(game, opts)
	}
	return fmt.Errorf("unknown backend %q", flagBackend)
}

// runConsole plays game on the engine's own frame loop through tcell.
func runConsole(game registry.Game, opts tui.Options) error {
	con, err := console.Open()
	if err != nil {
		return err
	}
	defer con.Close()

	rt := opts.Runtime
	rt.ScreenW, rt.ScreenH = con.Size()
	con.Run(game, console.Options{
		Engine:  opts.Engine,
		Runtime: rt,
		ExePath: opts.ExePath,
		Archive: opts.Archive,
		Logger:  opts.Logger,
	})
	return nil
}

// sessionOptions collects everything an engine session needs from the flags.
// cleanup closes the archive and the log file.
func sessionOptions() (tui.Options, func(), error) {
	engineCfg, err := config.LoadEngine(flagEngineConfig)
	if err != nil {
		return tui.Options{}, nil, err
	}

	exe, err := os.Executable()
	if err != nil {
		return tui.Options{}, nil, fmt.Errorf("cannot locate executable: %w", err)
	}

	logger, logFile, err := openLogger(flagLogPath)
	if err != nil {
		return tui.Options{}, nil, err
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		// The game still works without the archive.
		fmt.Fprintf(os.Stderr, "Warning: could not open hiscore archive: %v\n", err)
		store = nil
	}

	width, height := terminalSize()
	opts := tui.Options{
		Engine: engineCfg,
		Runtime: core.RuntimeConfig{
			ScreenW:  width,
			ScreenH:  height,
			TickRate: flagFPS,
			Seed:     flagSeed,
		},
		ExePath: exe,
		Archive: store,
		Logger:  logger,
	}

	cleanup := func() {
		if store != nil {
			store.Close()
		}
		if logFile != nil {
			logFile.Close()
		}
	}
	return opts, cleanup, nil
}

// openLogger returns nil when path is empty; the engine then discards its
// logs, since anything written to the terminal would corrupt the alt screen.
func openLogger(path string) (*log.Logger, *os.File, error) {
	if path == "" {
		return nil, nil, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("cannot open log file: %w", err)
	}
	logger := log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		Prefix:          "engine",
		Level:           log.DebugLevel,
	})
	return logger, f, nil
}

// terminalSize returns the size of the controlling terminal, or the engine's
// native 80x30 playfield when stdout is not a terminal.
func terminalSize() (int, int) {
	def := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 && h > 0 {
		return w, h
	}
	return def.ScreenW, def.ScreenH
}
